package plan

import (
	"github.com/Akash114/SarthiAI/internal/types"
)

// MicroResolution is a lightweight goal extracted from free-form user
// notes. It skips the multi-week pipeline and starts life with a single
// concrete first task.
type MicroResolution struct {
	Title     string               `json:"title"`
	Type      types.ResolutionType `json:"resolution_type"`
	FirstTask *TaskDraft           `json:"first_task,omitempty"`
}

// SuggestedTask is one task proposed by the weekly rolling-wave pass.
// TimeOfDay is a coarse slot name; the materializer turns it into a
// concrete clock time.
type SuggestedTask struct {
	Title           string `json:"title"`
	Description     string `json:"description,omitempty"`
	DurationMinutes int    `json:"duration_minutes"`
	TimeOfDay       string `json:"time_of_day,omitempty"`
}
