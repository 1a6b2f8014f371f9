package providers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Akash114/SarthiAI/internal/llm"
)

func completionReq(content string) llm.CompletionRequest {
	return llm.CompletionRequest{
		Model:    "mock-model",
		Messages: []llm.Message{llm.NewUserMessage(content)},
	}
}

func TestMockProviderReplaysResponses(t *testing.T) {
	mock := NewMockProvider([]string{"first", "second"})

	resp, err := mock.Complete(context.Background(), completionReq("a"))
	require.NoError(t, err)
	assert.Equal(t, "first", resp.Message.Content)
	assert.Equal(t, llm.RoleAssistant, resp.Message.Role)

	resp, err = mock.Complete(context.Background(), completionReq("b"))
	require.NoError(t, err)
	assert.Equal(t, "second", resp.Message.Content)

	// Wraps around when responses are exhausted.
	resp, err = mock.Complete(context.Background(), completionReq("c"))
	require.NoError(t, err)
	assert.Equal(t, "first", resp.Message.Content)
}

func TestMockProviderRecordsCalls(t *testing.T) {
	mock := NewMockProvider([]string{"ok"})
	_, err := mock.Complete(context.Background(), completionReq("remember me"))
	require.NoError(t, err)

	calls := mock.GetCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, "remember me", calls[0].Request.Messages[0].Content)
}

func TestMockProviderFailAt(t *testing.T) {
	mock := NewMockProvider([]string{"ok"})
	mock.FailAt(1, llm.NewRateLimitError("mock"))

	_, err := mock.Complete(context.Background(), completionReq("a"))
	require.NoError(t, err)

	_, err = mock.Complete(context.Background(), completionReq("b"))
	require.Error(t, err)
	assert.True(t, llm.IsRetryable(err))

	// The failing call still consumed an index; the next one succeeds.
	_, err = mock.Complete(context.Background(), completionReq("c"))
	require.NoError(t, err)
	assert.Len(t, mock.GetCalls(), 3)
}

func TestMockProviderReset(t *testing.T) {
	mock := NewMockProvider([]string{"one", "two"})
	_, _ = mock.Complete(context.Background(), completionReq("a"))
	mock.Reset()

	assert.Empty(t, mock.GetCalls())
	resp, err := mock.Complete(context.Background(), completionReq("b"))
	require.NoError(t, err)
	assert.Equal(t, "one", resp.Message.Content)
}

func TestFactoryMock(t *testing.T) {
	provider, err := NewProvider(llm.ProviderConfig{Type: llm.ProviderMock})
	require.NoError(t, err)
	assert.Equal(t, "mock", provider.Name())

	_, err = NewProvider(llm.ProviderConfig{Type: "carrier-pigeon"})
	assert.Error(t, err)
}

func TestFactoryOpenAIWithoutCredentials(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	_, err := NewProvider(llm.ProviderConfig{Type: llm.ProviderOpenAI})
	require.Error(t, err)
	assert.True(t, llm.IsUnavailable(err))
}
