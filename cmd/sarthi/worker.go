package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/Akash114/SarthiAI/internal/config"
	"github.com/Akash114/SarthiAI/internal/jobs"
	"github.com/Akash114/SarthiAI/internal/observability"
	"github.com/Akash114/SarthiAI/internal/reminder"
	"github.com/Akash114/SarthiAI/internal/rollingwave"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Run the background job loop",
	Long: `Run the background worker in the foreground until stopped.

The worker drives two jobs:
  - weekly_plan: regenerates each user's upcoming week at the
    configured day and time
  - task_reminders: every few minutes, finds tasks coming due and
    sends one nudge per task

Job timing, timezone, and the model provider come from the config
file. The worker blocks until Ctrl+C or SIGTERM, which makes it
suitable for containers and systemd units.`,
	RunE: runWorker,
}

func runWorker(cmd *cobra.Command, args []string) error {
	logger := slog.Default()
	logger.Info("worker starting", slog.Bool("scheduler_enabled", cfg.Scheduler.Enabled))

	if !cfg.Scheduler.Enabled {
		logger.Warn("scheduler is disabled in config, no jobs will run")
		return nil
	}

	location, err := time.LoadLocation(cfg.Scheduler.Timezone)
	if err != nil {
		return fmt.Errorf("invalid scheduler timezone %q: %w", cfg.Scheduler.Timezone, err)
	}

	tp, err := observability.InitTracing(cmd.Context(), cfg.Tracing)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = observability.ShutdownTracing(shutdownCtx, tp)
	}()

	provider := buildProvider()

	planner := rollingwave.New(
		rollingwave.WithProvider(provider),
		rollingwave.WithLogger(logger),
	)
	composer := reminder.NewComposer(
		reminder.WithProvider(provider),
		reminder.WithLogger(logger),
	)

	runnerOpts := []jobs.Option{
		jobs.WithPlanner(planner),
		jobs.WithComposer(composer),
		jobs.WithLogger(logger),
		jobs.WithReminderLookahead(time.Duration(cfg.Scheduler.ReminderLookaheadMinutes) * time.Minute),
	}
	if cfg.Notifications.Enabled {
		runnerOpts = append(runnerOpts, jobs.WithNotifier(newLogNotifier(logger)))
	}
	runner := jobs.NewRunner(runnerOpts...)

	// TODO: replace with the persistence-backed sources once the
	// storage service exposes them.
	source := jobs.NewMemorySource()

	logger.Info("jobs registered",
		slog.String("timezone", cfg.Scheduler.Timezone),
		slog.Int("weekly_day", cfg.Scheduler.WeeklyJob.Day),
		slog.Int("weekly_hour", cfg.Scheduler.WeeklyJob.Hour),
		slog.Int("weekly_minute", cfg.Scheduler.WeeklyJob.Minute),
		slog.Int("reminder_interval_minutes", cfg.Scheduler.ReminderIntervalMinutes),
	)

	ctx := cmd.Context()
	if cfg.Scheduler.RunOnStartup {
		logger.Info("running jobs once on startup")
		runJob(ctx, logger, "weekly_plan", func() error {
			_, err := runner.RunWeeklyPlans(ctx, source)
			return err
		})
		runJob(ctx, logger, "task_reminders", func() error {
			_, err := runner.RunReminders(ctx, source)
			return err
		})
	}

	reminderTicker := time.NewTicker(time.Duration(cfg.Scheduler.ReminderIntervalMinutes) * time.Minute)
	defer reminderTicker.Stop()

	// The minute ticker fires the weekly job when the local day and
	// clock match the configured slot.
	weeklyTicker := time.NewTicker(time.Minute)
	defer weeklyTicker.Stop()
	var lastWeeklyRun time.Time

	for {
		select {
		case <-ctx.Done():
			logger.Info("worker shutting down")
			return nil

		case <-reminderTicker.C:
			runJob(ctx, logger, "task_reminders", func() error {
				_, err := runner.RunReminders(ctx, source)
				return err
			})

		case now := <-weeklyTicker.C:
			local := now.In(location)
			if !weeklySlotMatches(cfg.Scheduler.WeeklyJob, local) {
				continue
			}
			if local.Sub(lastWeeklyRun) < 2*time.Minute {
				continue
			}
			lastWeeklyRun = local
			runJob(ctx, logger, "weekly_plan", func() error {
				_, err := runner.RunWeeklyPlans(ctx, source)
				return err
			})
		}
	}
}

// weeklySlotMatches reports whether the local time falls in the
// configured weekly slot. JobTime.Day counts from Monday.
func weeklySlotMatches(slot config.JobTime, local time.Time) bool {
	day := (int(local.Weekday()) + 6) % 7
	return day == slot.Day && local.Hour() == slot.Hour && local.Minute() == slot.Minute
}

func runJob(ctx context.Context, logger *slog.Logger, name string, fn func() error) {
	if err := fn(); err != nil {
		logger.Error("job failed", slog.String("job", name), slog.Any("error", err))
	}
}

// newLogNotifier logs notifications instead of dispatching them. The
// push transport integration replaces this.
func newLogNotifier(logger *slog.Logger) reminder.Notifier {
	return reminder.NotifierFunc(func(ctx context.Context, n reminder.Notification) error {
		logger.InfoContext(ctx, "notification",
			slog.String("user_id", n.UserID.String()),
			slog.String("task_id", n.TaskID.String()),
			slog.String("body", n.Body),
		)
		return nil
	})
}
