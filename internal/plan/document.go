// Package plan defines the plan document produced by the generation
// pipeline: the multi-week resolution plan, its per-week sections and
// task drafts, and the micro-resolution shape used for small one-off
// goals.
package plan

import (
	"fmt"
	"strings"

	"github.com/Akash114/SarthiAI/internal/cadence"
	"github.com/Akash114/SarthiAI/internal/effort"
)

const (
	// MinDurationWeeks and MaxDurationWeeks bound a plan's horizon.
	MinDurationWeeks = 1
	MaxDurationWeeks = 12

	// MinTaskMinutes is the floor for a task's estimated duration.
	MinTaskMinutes = 5
)

// Confidence grades how well a scheduled slot matches the preferences
// the user actually stated.
const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
	ConfidenceLow    = "low"
)

// TaskDraft is a single actionable task inside a plan. Date and Time
// are empty until the scheduler places the task onto the calendar.
type TaskDraft struct {
	Title           string       `json:"title"`
	Description     string       `json:"description,omitempty"`
	DurationMinutes int          `json:"duration_minutes"`
	Cadence         cadence.Spec `json:"cadence"`

	// Note carries an optional free-text remark from generation.
	Note string `json:"note,omitempty"`

	// CadenceLabel is the human-readable form persisted with the task.
	CadenceLabel string `json:"cadence_label,omitempty"`
	// Date holds the scheduled calendar day as YYYY-MM-DD.
	Date string `json:"date,omitempty"`
	// Time holds the scheduled start as HH:MM.
	Time string `json:"time,omitempty"`
	// Confidence grades the slot fit: high, medium, or low.
	Confidence string `json:"confidence,omitempty"`
}

// Scheduled reports whether the task has been placed on the calendar.
func (t TaskDraft) Scheduled() bool {
	return t.Date != "" && t.Time != ""
}

// WeeklyMilestone names the focus of one week of the plan.
type WeeklyMilestone struct {
	Week  int    `json:"week"`
	Focus string `json:"focus"`
}

// WeekSection carries the concrete tasks for one week.
type WeekSection struct {
	Week  int         `json:"week"`
	Focus string      `json:"focus,omitempty"`
	Tasks []TaskDraft `json:"tasks"`
}

// EvaluationSummary records how a plan made it through the quality
// ladder. It is persisted with the plan for later inspection.
type EvaluationSummary struct {
	Score          int      `json:"score"`
	Passed         bool     `json:"passed"`
	RepairUsed     bool     `json:"repair_used"`
	RegenerateUsed bool     `json:"regenerate_used"`
	FallbackUsed   bool     `json:"fallback_used"`
	Notes          []string `json:"notes,omitempty"`
}

// ResolutionPlan is the full multi-week plan for a goal. Week1Tasks is
// the authoritative task list for the opening week; Weeks holds the
// full horizon with Weeks[0] mirroring Week1Tasks.
type ResolutionPlan struct {
	RefinedGoal   string             `json:"refined_goal"`
	WhyItMatters  string             `json:"why_it_matters,omitempty"`
	DurationWeeks int                `json:"duration_weeks"`
	Milestones    []WeeklyMilestone  `json:"weekly_milestones"`
	Week1Tasks    []TaskDraft        `json:"week_1_tasks"`
	Weeks         []WeekSection      `json:"weeks,omitempty"`
	Band          effort.Band        `json:"effort_band,omitempty"`
	BandRationale string             `json:"effort_band_rationale,omitempty"`
	Evaluation    *EvaluationSummary `json:"evaluation_summary,omitempty"`
}

// Normalize coerces a freshly decoded plan into canonical shape:
// horizon clamped to the allowed range, milestone list resized to match
// it, cadence labels filled in, and week 1 mirrored into the week
// sections. Normalize never rejects; Validate reports what remains
// wrong after it.
func (p *ResolutionPlan) Normalize(fallbackTitle string) {
	if strings.TrimSpace(p.RefinedGoal) == "" {
		p.RefinedGoal = fallbackTitle
	}
	if p.DurationWeeks < MinDurationWeeks {
		p.DurationWeeks = MinDurationWeeks
	}
	if p.DurationWeeks > MaxDurationWeeks {
		p.DurationWeeks = MaxDurationWeeks
	}

	// Resize milestones to the horizon, padding with generic focuses
	// and renumbering so week indices stay contiguous from 1.
	if len(p.Milestones) > p.DurationWeeks {
		p.Milestones = p.Milestones[:p.DurationWeeks]
	}
	for len(p.Milestones) < p.DurationWeeks {
		p.Milestones = append(p.Milestones, WeeklyMilestone{
			Focus: fmt.Sprintf("Build on week %d progress", len(p.Milestones)),
		})
	}
	for i := range p.Milestones {
		p.Milestones[i].Week = i + 1
		if strings.TrimSpace(p.Milestones[i].Focus) == "" {
			p.Milestones[i].Focus = fmt.Sprintf("Week %d progress", i+1)
		}
	}

	for i := range p.Week1Tasks {
		normalizeTask(&p.Week1Tasks[i])
	}

	// Week sections track the milestone list; week 1 always mirrors
	// the authoritative opening tasks.
	if len(p.Weeks) > p.DurationWeeks {
		p.Weeks = p.Weeks[:p.DurationWeeks]
	}
	for len(p.Weeks) < p.DurationWeeks {
		p.Weeks = append(p.Weeks, WeekSection{})
	}
	for i := range p.Weeks {
		p.Weeks[i].Week = i + 1
		p.Weeks[i].Focus = p.Milestones[i].Focus
		for j := range p.Weeks[i].Tasks {
			normalizeTask(&p.Weeks[i].Tasks[j])
		}
	}
	p.Weeks[0].Tasks = p.Week1Tasks
}

func normalizeTask(t *TaskDraft) {
	t.Title = strings.TrimSpace(t.Title)
	if t.DurationMinutes <= 0 {
		t.DurationMinutes = 30
	}
	if t.DurationMinutes < MinTaskMinutes {
		t.DurationMinutes = MinTaskMinutes
	}
	t.Cadence = t.Cadence.Normalize()
	if t.CadenceLabel == "" {
		t.CadenceLabel = t.Cadence.String()
	}
}

// Validate reports structural problems left after Normalize. A nil
// error means the document is usable, not that it is a good plan; the
// evaluator judges quality separately.
func (p *ResolutionPlan) Validate() error {
	if strings.TrimSpace(p.RefinedGoal) == "" {
		return fmt.Errorf("plan has no refined goal")
	}
	if len(p.Week1Tasks) == 0 {
		return fmt.Errorf("plan %q has no week 1 tasks", p.RefinedGoal)
	}
	if len(p.Milestones) != p.DurationWeeks {
		return fmt.Errorf("plan %q has %d milestones for %d weeks",
			p.RefinedGoal, len(p.Milestones), p.DurationWeeks)
	}
	for _, task := range p.Week1Tasks {
		if task.Title == "" {
			return fmt.Errorf("plan %q contains an untitled task", p.RefinedGoal)
		}
	}
	return nil
}

// AllTasks returns every task across the plan's weeks, week 1 first.
func (p *ResolutionPlan) AllTasks() []TaskDraft {
	var tasks []TaskDraft
	for _, week := range p.Weeks {
		tasks = append(tasks, week.Tasks...)
	}
	if len(tasks) == 0 {
		tasks = append(tasks, p.Week1Tasks...)
	}
	return tasks
}
