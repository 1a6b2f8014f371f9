// Package braindump extracts structured signals from free-form user
// notes: sentiment, emotions, topics, and actionable items that can
// seed new goals.
package braindump

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Akash114/SarthiAI/internal/llm"
	"github.com/Akash114/SarthiAI/internal/plan"
	"github.com/Akash114/SarthiAI/internal/types"
)

const (
	defaultModel     = "gpt-4o"
	defaultMaxTokens = 600
)

const systemPrompt = "You are Sarathi, a compassionate listener. Analyze the user's mental dump. " +
	"Extract structured signals and write a short, empathetic acknowledgement (max 15 words). " +
	"Respond only with the requested JSON."

const responseSchema = `{
  "sentiment_score": 0.0,
  "emotions": ["one-word emotion labels"],
  "topics": ["short topic labels"],
  "actionable_items": ["things the user said they want to do"],
  "acknowledgement": "short empathetic sentence"
}`

// Signals are the structured signals extracted from a brain dump.
type Signals struct {
	// SentimentScore runs from -1 (distressed) to 1 (energized).
	SentimentScore float64 `json:"sentiment_score"`

	Emotions        []string `json:"emotions"`
	Topics          []string `json:"topics"`
	ActionableItems []string `json:"actionable_items"`

	// Acknowledgement is shown back to the user immediately.
	Acknowledgement string `json:"acknowledgement"`
}

// Result wraps Signals with extraction metadata.
type Result struct {
	Signals Signals

	// Actionable reports whether any actionable items were found.
	Actionable bool

	// Success is false when the neutral fallback was used.
	Success bool
}

// Extractor turns free-form notes into Signals.
type Extractor struct {
	provider llm.Provider
	model    string
	logger   *slog.Logger
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithProvider sets the LLM provider.
func WithProvider(p llm.Provider) Option {
	return func(e *Extractor) {
		e.provider = p
	}
}

// WithModel sets the extraction model.
func WithModel(model string) Option {
	return func(e *Extractor) {
		e.model = model
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Extractor) {
		e.logger = logger
	}
}

// New creates an Extractor.
func New(opts ...Option) *Extractor {
	e := &Extractor{
		model:  defaultModel,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract analyzes one brain dump. It never fails on model trouble;
// the neutral fallback covers that, with Success false.
func (e *Extractor) Extract(ctx context.Context, text string) Result {
	if e.provider == nil || strings.TrimSpace(text) == "" {
		return fallbackResult()
	}

	req := llm.CompletionRequest{
		Model: e.model,
		Messages: []llm.Message{
			llm.NewSystemMessage(systemPrompt),
			llm.NewUserMessage(buildPrompt(text)),
		},
		MaxTokens: defaultMaxTokens,
	}

	resp, err := e.provider.Complete(ctx, req)
	if err != nil {
		e.logger.WarnContext(ctx, "brain dump extraction failed", slog.Any("error", err))
		return fallbackResult()
	}

	signals, err := llm.ExtractJSONAs[Signals](resp.Message.Content)
	if err != nil {
		e.logger.WarnContext(ctx, "brain dump response unusable", slog.Any("error", err))
		return fallbackResult()
	}

	if signals.SentimentScore < -1 {
		signals.SentimentScore = -1
	}
	if signals.SentimentScore > 1 {
		signals.SentimentScore = 1
	}
	if strings.TrimSpace(signals.Acknowledgement) == "" {
		signals.Acknowledgement = fallbackSignals().Acknowledgement
	}

	return Result{
		Signals:    signals,
		Actionable: len(signals.ActionableItems) > 0,
		Success:    true,
	}
}

func buildPrompt(text string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "User Text: %q\n\n", text)
	b.WriteString("Respond with only a JSON object in exactly this shape:\n")
	b.WriteString(responseSchema)
	return b.String()
}

func fallbackSignals() Signals {
	return Signals{
		SentimentScore:  0,
		Emotions:        []string{},
		Topics:          []string{},
		ActionableItems: []string{},
		Acknowledgement: "Thanks for sharing. I'm here and we'll take it one step at a time.",
	}
}

func fallbackResult() Result {
	return Result{Signals: fallbackSignals()}
}

// MicroResolutions drafts one lightweight goal per actionable item,
// each seeded with a small first task.
func (r Result) MicroResolutions() []plan.MicroResolution {
	out := make([]plan.MicroResolution, 0, len(r.Signals.ActionableItems))
	for _, item := range r.Signals.ActionableItems {
		title := strings.TrimSpace(item)
		if title == "" {
			continue
		}
		out = append(out, plan.MicroResolution{
			Title: title,
			Type:  types.ResolutionUnspecified,
			FirstTask: &plan.TaskDraft{
				Title:           "Spend 15 minutes starting on: " + title,
				DurationMinutes: 15,
			},
		})
	}
	return out
}
