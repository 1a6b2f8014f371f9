package jobs

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Akash114/SarthiAI/internal/reminder"
	"github.com/Akash114/SarthiAI/internal/rollingwave"
	"github.com/Akash114/SarthiAI/internal/types"
)

func TestMemorySourceEndToEnd(t *testing.T) {
	user := types.NewID()
	src := NewMemorySource()
	src.AddUser(user, []string{"Learn guitar"}, rollingwave.WeeklyStats{ActiveGoals: 1, CompletionRate: 60})
	src.AddTask(reminder.TaskRef{
		ID:          types.NewID(),
		UserID:      user,
		Title:       "Practice chords",
		ScheduledAt: jobNow.Add(10 * time.Minute),
	})

	var sent int
	runner := NewRunner(
		WithNotifier(reminder.NotifierFunc(func(ctx context.Context, n reminder.Notification) error {
			sent++
			return nil
		})),
		WithClock(func() time.Time { return jobNow }),
	)

	weekly, err := runner.RunWeeklyPlans(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, 1, weekly.UsersProcessed)

	saved, ok := src.WeekPlan(user)
	require.True(t, ok)
	assert.NotEmpty(t, saved.Scheduled)

	reminders, err := runner.RunReminders(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, 1, reminders.SnapshotsWritten)
	assert.Equal(t, 1, sent)

	// A second pass sends nothing; the task is marked.
	reminders, err = runner.RunReminders(context.Background(), src)
	require.NoError(t, err)
	assert.Zero(t, reminders.SnapshotsWritten)
	assert.Equal(t, 1, sent)
}
