// Package jobs holds the per-user background job runners driven by the
// worker command. Persistence sits behind small source interfaces, so
// the loops here stay testable and storage-free.
package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/Akash114/SarthiAI/internal/reminder"
	"github.com/Akash114/SarthiAI/internal/rollingwave"
	"github.com/Akash114/SarthiAI/internal/types"
)

const defaultReminderLookahead = 30 * time.Minute

// RunStats summarizes one job run.
type RunStats struct {
	UsersProcessed          int
	SnapshotsWritten        int
	SkippedDueToPreferences int
}

// Preferences gates background work per user. A user without a stored
// row gets DefaultPreferences.
type Preferences struct {
	CoachingPaused     bool
	WeeklyPlansEnabled bool
}

// DefaultPreferences is the opt-out default: everything on.
func DefaultPreferences() Preferences {
	return Preferences{WeeklyPlansEnabled: true}
}

// Allows reports whether background coaching may run for this user.
func (p Preferences) Allows() bool {
	return !p.CoachingPaused && p.WeeklyPlansEnabled
}

// WeeklySource supplies the weekly planning job with its inputs and
// accepts its results.
type WeeklySource interface {
	// ActiveUsers lists users with at least one active goal.
	ActiveUsers(ctx context.Context) ([]types.ID, error)

	// Preferences returns the user's coaching preferences.
	Preferences(ctx context.Context, userID types.ID) (Preferences, error)

	// WeeklyInput builds the rolling-wave input for one user.
	WeeklyInput(ctx context.Context, userID types.ID) (rollingwave.Input, error)

	// SaveWeekPlan persists the planned week.
	SaveWeekPlan(ctx context.Context, userID types.ID, week *rollingwave.WeekPlan) error
}

// ReminderSource supplies the reminder job with due tasks and goal
// context, and records sent reminders.
type ReminderSource interface {
	// UpcomingTasks returns incomplete scheduled tasks inside the window.
	UpcomingTasks(ctx context.Context, windowStart, windowEnd time.Time) ([]reminder.TaskRef, error)

	// Preferences returns the user's coaching preferences.
	Preferences(ctx context.Context, userID types.ID) (Preferences, error)

	// GoalTitles returns the user's active goal titles, newest first,
	// at most three.
	GoalTitles(ctx context.Context, userID types.ID) ([]string, error)

	// MarkReminded records that a reminder was sent for the task.
	MarkReminded(ctx context.Context, taskID types.ID, at time.Time) error
}

// Runner executes the background jobs.
type Runner struct {
	planner   *rollingwave.Planner
	composer  *reminder.Composer
	notifier  reminder.Notifier
	logger    *slog.Logger
	now       func() time.Time
	lookahead time.Duration
}

// Option configures a Runner.
type Option func(*Runner)

// WithPlanner sets the rolling-wave planner for the weekly job.
func WithPlanner(p *rollingwave.Planner) Option {
	return func(r *Runner) {
		r.planner = p
	}
}

// WithComposer sets the reminder composer.
func WithComposer(c *reminder.Composer) Option {
	return func(r *Runner) {
		r.composer = c
	}
}

// WithNotifier sets the reminder dispatch target.
func WithNotifier(n reminder.Notifier) Option {
	return func(r *Runner) {
		r.notifier = n
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(r *Runner) {
		r.now = now
	}
}

// WithReminderLookahead sets how far ahead the reminder job looks for
// due tasks.
func WithReminderLookahead(d time.Duration) Option {
	return func(r *Runner) {
		if d > 0 {
			r.lookahead = d
		}
	}
}

// NewRunner creates a Runner.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		logger:    slog.Default(),
		now:       time.Now,
		lookahead: defaultReminderLookahead,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.planner == nil {
		r.planner = rollingwave.New()
	}
	if r.composer == nil {
		r.composer = reminder.NewComposer()
	}
	return r
}

// RunWeeklyPlans plans the upcoming week for every active user,
// sequentially. Per-user failures are logged and skipped; the run
// itself only fails when the user list cannot be loaded.
func (r *Runner) RunWeeklyPlans(ctx context.Context, src WeeklySource) (RunStats, error) {
	start := r.now()
	logger := r.logger.With(slog.String("job", "weekly_plan"))
	logger.InfoContext(ctx, "job starting")

	var stats RunStats
	users, err := src.ActiveUsers(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "job failed to list users", slog.Any("error", err))
		return stats, err
	}

	for _, userID := range users {
		userLogger := logger.With(slog.String("user_id", userID.String()))

		prefs, err := src.Preferences(ctx, userID)
		if err != nil {
			userLogger.WarnContext(ctx, "preferences lookup failed, skipping user", slog.Any("error", err))
			continue
		}
		if !prefs.Allows() {
			stats.SkippedDueToPreferences++
			continue
		}

		input, err := src.WeeklyInput(ctx, userID)
		if err != nil {
			userLogger.WarnContext(ctx, "weekly input failed, skipping user", slog.Any("error", err))
			continue
		}

		week, err := r.planner.PlanWeek(ctx, input)
		if err != nil {
			userLogger.WarnContext(ctx, "weekly planning failed, skipping user", slog.Any("error", err))
			continue
		}

		if err := src.SaveWeekPlan(ctx, userID, week); err != nil {
			userLogger.WarnContext(ctx, "weekly plan save failed", slog.Any("error", err))
			continue
		}

		stats.UsersProcessed++
		stats.SnapshotsWritten += len(week.Scheduled)
	}

	logger.InfoContext(ctx, "job complete",
		slog.Int("users", stats.UsersProcessed),
		slog.Int("snapshots", stats.SnapshotsWritten),
		slog.Int("skipped", stats.SkippedDueToPreferences),
		slog.Duration("duration", r.now().Sub(start)),
	)
	return stats, nil
}

// RunReminders finds tasks due inside the lookahead window and sends
// one nudge per task. Requires a Notifier; without one the run is a
// no-op.
func (r *Runner) RunReminders(ctx context.Context, src ReminderSource) (RunStats, error) {
	start := r.now()
	logger := r.logger.With(slog.String("job", "task_reminders"))

	var stats RunStats
	if r.notifier == nil {
		logger.WarnContext(ctx, "no notifier configured, skipping reminder run")
		return stats, nil
	}
	logger.InfoContext(ctx, "job starting")

	now := r.now()
	tasks, err := src.UpcomingTasks(ctx, now, now.Add(r.lookahead))
	if err != nil {
		logger.ErrorContext(ctx, "job failed to load tasks", slog.Any("error", err))
		return stats, err
	}

	candidates := reminder.FilterCandidates(tasks, now, now.Add(r.lookahead))
	usersNotified := make(map[types.ID]bool)

	for _, candidate := range candidates {
		userID := candidate.Task.UserID
		taskLogger := logger.With(
			slog.String("user_id", userID.String()),
			slog.String("task_id", candidate.Task.ID.String()),
		)

		prefs, err := src.Preferences(ctx, userID)
		if err != nil {
			taskLogger.WarnContext(ctx, "preferences lookup failed, skipping task", slog.Any("error", err))
			continue
		}
		if !prefs.Allows() {
			stats.SkippedDueToPreferences++
			continue
		}

		goals, err := src.GoalTitles(ctx, userID)
		if err != nil {
			taskLogger.WarnContext(ctx, "goal context lookup failed", slog.Any("error", err))
			goals = nil
		}

		body := r.composer.Compose(ctx, candidate, goals)
		notification := reminder.Notification{
			UserID: userID,
			TaskID: candidate.Task.ID,
			Title:  "Sarathi",
			Body:   body,
		}

		if err := r.notifier.Notify(ctx, notification); err != nil {
			taskLogger.WarnContext(ctx, "reminder dispatch failed", slog.Any("error", err))
			continue
		}
		if err := src.MarkReminded(ctx, candidate.Task.ID, now); err != nil {
			taskLogger.WarnContext(ctx, "reminder bookkeeping failed", slog.Any("error", err))
		}

		usersNotified[userID] = true
		stats.SnapshotsWritten++
	}

	stats.UsersProcessed = len(usersNotified)
	logger.InfoContext(ctx, "job complete",
		slog.Int("users", stats.UsersProcessed),
		slog.Int("notifications", stats.SnapshotsWritten),
		slog.Int("skipped", stats.SkippedDueToPreferences),
		slog.Duration("duration", r.now().Sub(start)),
	)
	return stats, nil
}
