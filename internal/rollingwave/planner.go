// Package rollingwave plans the upcoming week from the trailing week's
// results. Unlike the full decomposition pipeline it makes a single
// model call and degrades to a fixed reset week, so a quiet Sunday job
// can run it for every user without a quality ladder.
package rollingwave

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Akash114/SarthiAI/internal/cadence"
	"github.com/Akash114/SarthiAI/internal/llm"
	"github.com/Akash114/SarthiAI/internal/plan"
	"github.com/Akash114/SarthiAI/internal/types"
)

const (
	defaultModel       = "gpt-4o"
	defaultTemperature = 0.6
	defaultMaxTokens   = 1200

	// minTasks and maxTasks bound the materialized week.
	minTasks = 3
	maxTasks = 5
)

// WeeklyStats summarizes the trailing seven days for one user.
type WeeklyStats struct {
	// ActiveGoals is the number of goals with open tasks.
	ActiveGoals int

	// CompletionRate is the share of last week's tasks completed, 0-100.
	CompletionRate int

	// Notes carries the user's own reflections, possibly empty.
	Notes string
}

// ContextSummary renders the stats as the single context sentence given
// to the model.
func (s WeeklyStats) ContextSummary() string {
	summary := fmt.Sprintf("User has %d active goals. Last week completion: %d%%.", s.ActiveGoals, s.CompletionRate)
	if strings.TrimSpace(s.Notes) != "" {
		summary += " Notes: " + strings.TrimSpace(s.Notes)
	}
	return summary
}

// Input is one user's rolling-wave request.
type Input struct {
	UserID types.ID
	Stats  WeeklyStats

	// GoalTitles are the user's active goal titles, newest first.
	GoalTitles []string
}

// WeekPlan is the planned upcoming week, a micro-resolution with its
// tasks placed on the calendar.
type WeekPlan struct {
	// Title is the week's theme.
	Title string

	// Rationale is one sentence on why the week is sized this way.
	Rationale string

	// Suggested are the raw task suggestions, clamped to 3-5.
	Suggested []plan.SuggestedTask

	// Scheduled are the suggestions placed onto concrete days of the
	// upcoming week.
	Scheduled []plan.TaskDraft

	// WeekStart is the Monday the tasks were placed onto.
	WeekStart time.Time

	// FallbackUsed reports whether the fixed reset week was used.
	FallbackUsed bool
}

// Planner produces next-week plans.
type Planner struct {
	provider llm.Provider
	model    string
	logger   *slog.Logger
	now      func() time.Time
}

// Option is a functional option for configuring a Planner.
type Option func(*Planner)

// WithProvider sets the LLM provider. Without one every week is a
// reset week.
func WithProvider(p llm.Provider) Option {
	return func(pl *Planner) {
		pl.provider = p
	}
}

// WithModel sets the model used for the weekly call.
func WithModel(model string) Option {
	return func(pl *Planner) {
		pl.model = model
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(pl *Planner) {
		pl.logger = logger
	}
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(pl *Planner) {
		pl.now = now
	}
}

// New creates a Planner.
func New(opts ...Option) *Planner {
	pl := &Planner{
		model:  defaultModel,
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(pl)
	}
	return pl
}

// PlanWeek produces the upcoming week for one user. It never returns
// an error for model trouble; the reset week covers that. Errors are
// reserved for invalid input.
func (pl *Planner) PlanWeek(ctx context.Context, in Input) (*WeekPlan, error) {
	if in.UserID.IsZero() {
		return nil, fmt.Errorf("rolling wave input has no user id")
	}

	logger := pl.logger.With(slog.String("user_id", in.UserID.String()))

	micro, fallbackUsed := pl.suggest(ctx, logger, in)
	micro.Tasks = clampSuggestions(micro.Tasks)
	if strings.TrimSpace(micro.Title) == "" {
		micro.Title = "Momentum Week"
	}
	if strings.TrimSpace(micro.Rationale) == "" {
		micro.Rationale = "Keep the cadence gentle while sustaining visible progress."
	}

	weekStart := cadence.Midnight(cadence.NextMonday(pl.now().AddDate(0, 0, 1)))
	scheduled := materialize(micro.Tasks, weekStart)

	logger.InfoContext(ctx, "weekly plan ready",
		slog.Int("tasks", len(scheduled)),
		slog.Bool("fallback", fallbackUsed),
		slog.Time("week_start", weekStart),
	)

	return &WeekPlan{
		Title:        micro.Title,
		Rationale:    micro.Rationale,
		Suggested:    micro.Tasks,
		Scheduled:    scheduled,
		WeekStart:    weekStart,
		FallbackUsed: fallbackUsed,
	}, nil
}

type suggestionResponse struct {
	Title     string               `json:"title"`
	Rationale string               `json:"rationale"`
	Tasks     []plan.SuggestedTask `json:"tasks"`
}

func (pl *Planner) suggest(ctx context.Context, logger *slog.Logger, in Input) (suggestionResponse, bool) {
	if pl.provider == nil {
		return resetWeek(), true
	}

	req := llm.CompletionRequest{
		Model: pl.model,
		Messages: []llm.Message{
			llm.NewSystemMessage(systemPrompt),
			llm.NewUserMessage(buildWeeklyPrompt(in)),
		},
		Temperature: defaultTemperature,
		MaxTokens:   defaultMaxTokens,
	}

	resp, err := pl.provider.Complete(ctx, req)
	if err != nil {
		logger.WarnContext(ctx, "weekly suggestion call failed, using reset week", slog.Any("error", err))
		return resetWeek(), true
	}

	decoded, err := llm.ExtractJSONAs[suggestionResponse](resp.Message.Content)
	if err != nil || len(decoded.Tasks) == 0 {
		logger.WarnContext(ctx, "weekly suggestion response unusable, using reset week", slog.Any("error", err))
		return resetWeek(), true
	}

	var tasks []plan.SuggestedTask
	for _, task := range decoded.Tasks {
		if strings.TrimSpace(task.Title) == "" {
			continue
		}
		if task.DurationMinutes <= 0 {
			task.DurationMinutes = 20
		}
		tasks = append(tasks, task)
	}
	if len(tasks) == 0 {
		return resetWeek(), true
	}
	decoded.Tasks = tasks
	return decoded, false
}

const systemPrompt = `You are Sarathi, a wise and supportive charioteer for personal goals. ` +
	`You plan one week at a time, sized to what the user actually did last week, not what they hoped. ` +
	`You respond only with the requested JSON.`

func buildWeeklyPrompt(in Input) string {
	var b strings.Builder
	b.WriteString("Plan the user's upcoming week.\n\n")
	b.WriteString(in.Stats.ContextSummary())
	b.WriteString("\n")
	if len(in.GoalTitles) > 0 {
		b.WriteString("Active goals:\n")
		for _, title := range in.GoalTitles {
			fmt.Fprintf(&b, "- %s\n", title)
		}
	}
	fmt.Fprintf(&b, "\nPropose %d to %d tasks for next week.", minTasks, maxTasks)
	b.WriteString(" If completion was under 50%, shrink the week rather than repeating it.")
	b.WriteString(" Every title names a concrete, countable action.\n\n")
	b.WriteString("Respond with only a JSON object in exactly this shape:\n")
	b.WriteString(plan.SuggestionSchema)
	return b.String()
}

// resetWeek is the deterministic micro-resolution used when no usable
// suggestions exist: three small recovery tasks.
func resetWeek() suggestionResponse {
	return suggestionResponse{
		Title:     "Reset Week",
		Rationale: "Lighten the load, rebuild confidence, and carry momentum into the following week.",
		Tasks: []plan.SuggestedTask{
			{
				Title:           "Schedule three 30-min focus blocks",
				DurationMinutes: 30,
				TimeOfDay:       "morning",
			},
			{
				Title:           "One midweek reflection note",
				DurationMinutes: 10,
				TimeOfDay:       "evening",
			},
			{
				Title:           "Weekend reset + planning ritual",
				DurationMinutes: 25,
				TimeOfDay:       "afternoon",
			},
		},
	}
}

// clampSuggestions enforces the 3-5 task window, padding short lists
// from the reset week and truncating long ones.
func clampSuggestions(tasks []plan.SuggestedTask) []plan.SuggestedTask {
	if len(tasks) > maxTasks {
		return tasks[:maxTasks]
	}
	for _, filler := range resetWeek().Tasks {
		if len(tasks) >= minTasks {
			break
		}
		tasks = append(tasks, filler)
	}
	return tasks
}

// slot clock times used when materializing suggestions.
var timeOfDayClocks = map[string]string{
	"morning":   "09:00",
	"afternoon": "13:00",
	"evening":   "19:00",
}

// materialize turns suggestions into dated tasks spread across the
// week, one per day in order.
func materialize(tasks []plan.SuggestedTask, weekStart time.Time) []plan.TaskDraft {
	drafts := make([]plan.TaskDraft, 0, len(tasks))
	for i, task := range tasks {
		clock, ok := timeOfDayClocks[strings.ToLower(task.TimeOfDay)]
		if !ok {
			clock = timeOfDayClocks["evening"]
		}
		day := weekStart.AddDate(0, 0, i%7)
		spec := cadence.Spec{Type: cadence.Once}.Normalize()
		drafts = append(drafts, plan.TaskDraft{
			Title:           task.Title,
			Description:     task.Description,
			DurationMinutes: task.DurationMinutes,
			Cadence:         spec,
			CadenceLabel:    spec.String(),
			Date:            day.Format("2006-01-02"),
			Time:            clock,
		})
	}
	return drafts
}
