package planner

import (
	"fmt"

	"github.com/Akash114/SarthiAI/internal/effort"
	"github.com/Akash114/SarthiAI/internal/plan"
)

// buildFallbackPlan produces the deterministic template plan used when
// model generation cannot deliver an acceptable draft. It is
// intentionally conservative: template tasks sized for the low end of
// the band, with the user's explicit duration and frequency honored.
func buildFallbackPlan(goalText string, band effort.Band, facts GoalFacts, tpl Template) *plan.ResolutionPlan {
	duration := tpl.DefaultDurationWeeks
	if duration < plan.MinDurationWeeks {
		duration = 4
	}
	if duration > plan.MaxDurationWeeks {
		duration = plan.MaxDurationWeeks
	}

	milestones := make([]plan.WeeklyMilestone, 0, duration)
	for i := 0; i < duration && i < len(tpl.MilestoneFocuses); i++ {
		milestones = append(milestones, plan.WeeklyMilestone{
			Week:  i + 1,
			Focus: tpl.MilestoneFocuses[i],
		})
	}

	tasks := tpl.Instantiate(facts.Activity)
	if len(tasks) > 0 {
		if facts.SessionMinutes > 0 {
			tasks[0].DurationMinutes = clampSession(facts.SessionMinutes, band)
		}
		if facts.Cadence != nil {
			tasks[0].Cadence = *facts.Cadence
			tasks[0].CadenceLabel = facts.Cadence.String()
		}
	}

	p := &plan.ResolutionPlan{
		RefinedGoal:   goalText,
		WhyItMatters:  fmt.Sprintf("A steady start on %s this week beats a perfect plan next month.", facts.Activity),
		DurationWeeks: duration,
		Milestones:    milestones,
		Week1Tasks:    tasks,
		Band:          band,
	}
	p.Normalize(goalText)
	return p
}

// clampSession keeps a user-stated session length inside the band's
// per-day budget so the fallback never fails its own evaluation.
func clampSession(minutes int, band effort.Band) int {
	budget := effort.BudgetFor(band)
	if minutes > budget.MinutesPerDay.Max {
		return budget.MinutesPerDay.Max
	}
	if minutes < 5 {
		return 5
	}
	return minutes
}
