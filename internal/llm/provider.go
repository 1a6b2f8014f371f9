package llm

import (
	"context"
)

// Provider defines the interface that all LLM providers must implement.
// It provides a unified abstraction for interacting with different LLM
// services (OpenAI GPT, Anthropic Claude, local models, etc.).
type Provider interface {
	// Name returns the provider name (e.g., "openai", "anthropic", "ollama")
	Name() string

	// Complete sends a completion request and returns the full response.
	// This is a blocking call that waits for the entire response.
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)
}

// ProviderType identifies an LLM provider implementation.
type ProviderType string

const (
	ProviderOpenAI    ProviderType = "openai"
	ProviderAnthropic ProviderType = "anthropic"
	ProviderOllama    ProviderType = "ollama"
	ProviderMock      ProviderType = "mock"
)

// ProviderConfig holds the settings needed to construct a provider.
type ProviderConfig struct {
	Type         ProviderType `json:"type" mapstructure:"type"`
	APIKey       string       `json:"api_key,omitempty" mapstructure:"api_key"`
	DefaultModel string       `json:"default_model,omitempty" mapstructure:"default_model"`
	BaseURL      string       `json:"base_url,omitempty" mapstructure:"base_url"`
}
