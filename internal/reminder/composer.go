package reminder

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Akash114/SarthiAI/internal/llm"
	"github.com/Akash114/SarthiAI/internal/types"
)

const (
	defaultModel       = "gpt-4o-mini"
	defaultTemperature = 0.7
	defaultMaxTokens   = 120
)

const systemPrompt = "You are Sarathi, a compassionate accountability partner. " +
	"Compose a short, inspiring reminder (max 30 words) that nudges the user to complete their task. " +
	"Reference their broader resolution when possible and keep the tone gentle yet confident."

// Notification is one composed reminder ready for dispatch.
type Notification struct {
	UserID types.ID
	TaskID types.ID
	Title  string
	Body   string
}

// Notifier delivers notifications. The push transport implements this
// outside the core.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(ctx context.Context, n Notification) error

// Notify calls f.
func (f NotifierFunc) Notify(ctx context.Context, n Notification) error {
	return f(ctx, n)
}

// Composer writes reminder messages, via the model when available and
// a fixed nudge otherwise.
type Composer struct {
	provider llm.Provider
	model    string
	logger   *slog.Logger
}

// ComposerOption configures a Composer.
type ComposerOption func(*Composer)

// WithProvider sets the LLM provider.
func WithProvider(p llm.Provider) ComposerOption {
	return func(c *Composer) {
		c.provider = p
	}
}

// WithModel sets the model used for message generation.
func WithModel(model string) ComposerOption {
	return func(c *Composer) {
		c.model = model
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) ComposerOption {
	return func(c *Composer) {
		c.logger = logger
	}
}

// NewComposer creates a Composer.
func NewComposer(opts ...ComposerOption) *Composer {
	c := &Composer{
		model:  defaultModel,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compose returns the reminder body for one candidate. goals are the
// user's active goal titles, most recent first; the first is woven
// into the fallback. Compose never fails, the fixed nudge covers every
// model problem.
func (c *Composer) Compose(ctx context.Context, candidate Candidate, goals []string) string {
	if c.provider == nil {
		return fallbackMessage(candidate.Task.Title, goals)
	}

	req := llm.CompletionRequest{
		Model: c.model,
		Messages: []llm.Message{
			llm.NewSystemMessage(systemPrompt),
			llm.NewUserMessage(buildContext(candidate, goals)),
		},
		Temperature: defaultTemperature,
		MaxTokens:   defaultMaxTokens,
	}

	resp, err := c.provider.Complete(ctx, req)
	if err != nil {
		c.logger.WarnContext(ctx, "reminder message generation failed",
			slog.String("task_id", candidate.Task.ID.String()),
			slog.Any("error", err),
		)
		return fallbackMessage(candidate.Task.Title, goals)
	}

	message := strings.TrimSpace(resp.Message.Content)
	if message == "" {
		return fallbackMessage(candidate.Task.Title, goals)
	}
	return message
}

func buildContext(candidate Candidate, goals []string) string {
	context := fmt.Sprintf("Task: %s\nScheduled Time (UTC): %s",
		candidate.Task.Title, candidate.ScheduledAt.UTC().Format(time.RFC3339))
	if len(goals) > 0 {
		context += "\nTop Goals: " + strings.Join(goals, ", ")
	}
	return context
}

func fallbackMessage(taskTitle string, goals []string) string {
	if len(goals) > 0 {
		return fmt.Sprintf("Quick nudge: finishing %q keeps your %s momentum alive.", taskTitle, goals[0])
	}
	return fmt.Sprintf("Quick nudge: it's time for %q. You've got this.", taskTitle)
}
