package reminder

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Akash114/SarthiAI/internal/llm"
	"github.com/Akash114/SarthiAI/internal/llm/providers"
	"github.com/Akash114/SarthiAI/internal/types"
)

var windowStart = time.Date(2026, 9, 7, 8, 0, 0, 0, time.UTC)

func taskAt(offset time.Duration) TaskRef {
	return TaskRef{
		ID:          types.NewID(),
		UserID:      types.NewID(),
		Title:       "Practice scales for 15 minutes",
		ScheduledAt: windowStart.Add(offset),
	}
}

func TestFilterCandidatesWindow(t *testing.T) {
	windowEnd := windowStart.Add(30 * time.Minute)
	tasks := []TaskRef{
		taskAt(-time.Minute),      // before window
		taskAt(10 * time.Minute),  // inside
		taskAt(30 * time.Minute),  // inclusive end
		taskAt(31 * time.Minute),  // after window
	}

	candidates := FilterCandidates(tasks, windowStart, windowEnd)
	require.Len(t, candidates, 2)
	assert.Equal(t, tasks[1].ID, candidates[0].Task.ID)
	assert.Equal(t, tasks[2].ID, candidates[1].Task.ID)
}

func TestFilterCandidatesExclusions(t *testing.T) {
	windowEnd := windowStart.Add(time.Hour)
	reminded := windowStart.Add(-time.Hour)

	completed := taskAt(5 * time.Minute)
	completed.Completed = true

	draft := taskAt(5 * time.Minute)
	draft.Draft = true

	alreadySent := taskAt(5 * time.Minute)
	alreadySent.RemindedAt = &reminded

	unscheduled := TaskRef{ID: types.NewID(), Title: "No time yet"}

	keeper := taskAt(5 * time.Minute)

	candidates := FilterCandidates([]TaskRef{completed, draft, alreadySent, unscheduled, keeper}, windowStart, windowEnd)
	require.Len(t, candidates, 1)
	assert.Equal(t, keeper.ID, candidates[0].Task.ID)
}

func TestFilterCandidatesSortedAndSwappedWindow(t *testing.T) {
	later := taskAt(40 * time.Minute)
	earlier := taskAt(10 * time.Minute)

	// Reversed bounds still define the same window.
	candidates := FilterCandidates([]TaskRef{later, earlier}, windowStart.Add(time.Hour), windowStart)
	require.Len(t, candidates, 2)
	assert.Equal(t, earlier.ID, candidates[0].Task.ID)
}

func TestComposeUsesProvider(t *testing.T) {
	mock := providers.NewMockProvider([]string{"Ten minutes of scales tonight keeps your guitar goal singing. You've got this."})
	composer := NewComposer(WithProvider(mock))

	candidate := Candidate{Task: taskAt(0), ScheduledAt: windowStart}
	message := composer.Compose(context.Background(), candidate, []string{"Learn guitar", "Run a 5k"})

	assert.Contains(t, message, "scales")

	calls := mock.GetCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, "gpt-4o-mini", calls[0].Request.Model)
	assert.Contains(t, calls[0].Request.Messages[1].Content, "Top Goals: Learn guitar, Run a 5k")
}

func TestComposeFallbackWithoutProvider(t *testing.T) {
	composer := NewComposer()
	candidate := Candidate{Task: taskAt(0), ScheduledAt: windowStart}

	message := composer.Compose(context.Background(), candidate, []string{"Learn guitar"})
	assert.Equal(t, `Quick nudge: finishing "Practice scales for 15 minutes" keeps your Learn guitar momentum alive.`, message)

	message = composer.Compose(context.Background(), candidate, nil)
	assert.Equal(t, `Quick nudge: it's time for "Practice scales for 15 minutes". You've got this.`, message)
}

func TestComposeFallbackOnProviderError(t *testing.T) {
	mock := providers.NewMockProvider([]string{"unused"})
	mock.FailAt(0, llm.NewRateLimitError("mock"))
	composer := NewComposer(WithProvider(mock))

	candidate := Candidate{Task: taskAt(0), ScheduledAt: windowStart}
	message := composer.Compose(context.Background(), candidate, nil)
	assert.Contains(t, message, "Quick nudge")
}

func TestNotifierFunc(t *testing.T) {
	var got Notification
	notifier := NotifierFunc(func(ctx context.Context, n Notification) error {
		got = n
		return nil
	})

	want := Notification{UserID: types.NewID(), TaskID: types.NewID(), Title: "Sarathi", Body: "hello"}
	require.NoError(t, notifier.Notify(context.Background(), want))
	assert.Equal(t, want, got)
}
