package plan

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Akash114/SarthiAI/internal/cadence"
)

func samplePlan() ResolutionPlan {
	return ResolutionPlan{
		RefinedGoal:   "Run a 5K in under 30 minutes",
		DurationWeeks: 4,
		Milestones: []WeeklyMilestone{
			{Week: 1, Focus: "Base building"},
			{Week: 2, Focus: "Intervals"},
			{Week: 3, Focus: "Distance"},
			{Week: 4, Focus: "Race pace"},
		},
		Week1Tasks: []TaskDraft{
			{Title: "Run 2km at easy pace", DurationMinutes: 25,
				Cadence: cadence.Spec{Type: cadence.XPerWeek, Count: 3}},
		},
	}
}

func TestNormalizeClampsHorizon(t *testing.T) {
	p := samplePlan()
	p.DurationWeeks = 30
	p.Normalize("fallback")
	assert.Equal(t, MaxDurationWeeks, p.DurationWeeks)
	assert.Len(t, p.Milestones, MaxDurationWeeks)
	assert.Len(t, p.Weeks, MaxDurationWeeks)

	p = samplePlan()
	p.DurationWeeks = 0
	p.Normalize("fallback")
	assert.Equal(t, MinDurationWeeks, p.DurationWeeks)
}

func TestNormalizePadsAndRenumbersMilestones(t *testing.T) {
	p := samplePlan()
	p.Milestones = p.Milestones[:2]
	p.Milestones[1].Week = 9
	p.Normalize("fallback")

	require.Len(t, p.Milestones, 4)
	for i, m := range p.Milestones {
		assert.Equal(t, i+1, m.Week)
		assert.NotEmpty(t, m.Focus)
	}
}

func TestNormalizeMirrorsWeekOne(t *testing.T) {
	p := samplePlan()
	p.Normalize("fallback")

	require.Len(t, p.Weeks, 4)
	assert.Equal(t, p.Week1Tasks, p.Weeks[0].Tasks)
	assert.Equal(t, "Base building", p.Weeks[0].Focus)
	assert.Equal(t, "Intervals", p.Weeks[1].Focus)
}

func TestNormalizeFillsTaskDefaults(t *testing.T) {
	p := samplePlan()
	p.Week1Tasks = append(p.Week1Tasks, TaskDraft{Title: "  Stretch  "})
	p.Normalize("fallback")

	task := p.Week1Tasks[1]
	assert.Equal(t, "Stretch", task.Title)
	assert.Equal(t, 30, task.DurationMinutes)
	assert.Equal(t, "flex", task.CadenceLabel)
	assert.Equal(t, "3x per week", p.Week1Tasks[0].CadenceLabel)
}

func TestNormalizeEnforcesDurationFloor(t *testing.T) {
	p := samplePlan()
	p.Week1Tasks = append(p.Week1Tasks, TaskDraft{Title: "Mark a calendar X", DurationMinutes: 2})
	p.Normalize("fallback")

	assert.Equal(t, MinTaskMinutes, p.Week1Tasks[1].DurationMinutes)
}

func TestNormalizeFallbackTitle(t *testing.T) {
	p := samplePlan()
	p.RefinedGoal = "   "
	p.Normalize("Learn guitar")
	assert.Equal(t, "Learn guitar", p.RefinedGoal)
}

func TestValidate(t *testing.T) {
	p := samplePlan()
	p.Normalize("fallback")
	assert.NoError(t, p.Validate())

	empty := samplePlan()
	empty.Week1Tasks = nil
	empty.Normalize("fallback")
	assert.Error(t, empty.Validate())
}

func TestDecodeWithLooseCadence(t *testing.T) {
	raw := `{
		"refined_goal": "Learn 3 guitar songs",
		"duration_weeks": 2,
		"weekly_milestones": [{"week": 1, "focus": "Chords"}, {"week": 2, "focus": "Songs"}],
		"week_1_tasks": [
			{"title": "Practice chord changes for 20 minutes", "duration_minutes": 20, "cadence": "daily"},
			{"title": "Learn the verse of song one", "duration_minutes": 45,
			 "cadence": {"type": "specific_days", "days": ["sat", "sun"]}}
		]
	}`
	var p ResolutionPlan
	require.NoError(t, json.Unmarshal([]byte(raw), &p))
	p.Normalize("fallback")

	require.Len(t, p.Week1Tasks, 2)
	assert.Equal(t, cadence.Daily, p.Week1Tasks[0].Cadence.Type)
	assert.Equal(t, cadence.SpecificDays, p.Week1Tasks[1].Cadence.Type)
	assert.NoError(t, p.Validate())
}

func TestAllTasks(t *testing.T) {
	p := samplePlan()
	p.Normalize("fallback")
	p.Weeks[1].Tasks = []TaskDraft{{Title: "Interval run", DurationMinutes: 30}}

	tasks := p.AllTasks()
	require.Len(t, tasks, 2)
	assert.Equal(t, "Run 2km at easy pace", tasks[0].Title)
	assert.Equal(t, "Interval run", tasks[1].Title)
}
