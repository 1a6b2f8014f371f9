// Package reminder composes and filters task reminder nudges. Storage
// and push transport live outside this package; callers hand in task
// values and a Notifier.
package reminder

import (
	"sort"
	"time"

	"github.com/Akash114/SarthiAI/internal/types"
)

// TaskRef is the caller-supplied view of a scheduled task.
type TaskRef struct {
	ID          types.ID
	UserID      types.ID
	Title       string
	ScheduledAt time.Time

	// Completed and Draft tasks never get reminders.
	Completed bool
	Draft     bool

	// RemindedAt is non-nil once a reminder was sent for this task.
	RemindedAt *time.Time
}

// Candidate is a task due for a reminder inside the lookahead window.
type Candidate struct {
	Task        TaskRef
	ScheduledAt time.Time
}

// FilterCandidates returns the tasks scheduled inside
// [windowStart, windowEnd] that have not been completed, are not
// drafts, and have not already been reminded. Results are ordered by
// scheduled time.
func FilterCandidates(tasks []TaskRef, windowStart, windowEnd time.Time) []Candidate {
	if windowEnd.Before(windowStart) {
		windowStart, windowEnd = windowEnd, windowStart
	}

	var candidates []Candidate
	for _, task := range tasks {
		if task.Completed || task.Draft || task.RemindedAt != nil {
			continue
		}
		if task.ScheduledAt.IsZero() {
			continue
		}
		if task.ScheduledAt.Before(windowStart) || task.ScheduledAt.After(windowEnd) {
			continue
		}
		candidates = append(candidates, Candidate{Task: task, ScheduledAt: task.ScheduledAt})
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].ScheduledAt.Before(candidates[j].ScheduledAt)
	})
	return candidates
}
