package planner

import (
	"time"

	"github.com/Akash114/SarthiAI/internal/availability"
	"github.com/Akash114/SarthiAI/internal/cadence"
	"github.com/Akash114/SarthiAI/internal/category"
	"github.com/Akash114/SarthiAI/internal/plan"
	"github.com/Akash114/SarthiAI/internal/types"
)

// scheduleWeek materializes the plan's week 1 tasks onto the calendar.
// Each cadence occurrence becomes its own scheduled copy of the draft,
// and the shared ledger keeps occurrences of different tasks from
// stacking on the same days and clock slots.
func scheduleWeek(p *plan.ResolutionPlan, rtype types.ResolutionType, profile availability.Profile, domain availability.Domain, weekStart time.Time) []plan.TaskDraft {
	ledger := cadence.NewLedger()
	pref := profile.CategoryPreferenceFor(category.Infer(rtype))
	prefs := cadence.PlacementPrefs{PreferWeekend: pref.PreferWeekend}
	confidence := confidenceFor(profile)

	// Work hours constrain the clock when the user stated them, asked
	// for strict work mode, or is scheduling in the work domain.
	var workAware *availability.Profile
	if domain == availability.DomainWork || profile.WorkModeEnabled || profile.WorkHoursSet {
		workAware = &profile
	}

	var scheduled []plan.TaskDraft
	for _, task := range p.Week1Tasks {
		base := cadence.PreferredClock(rtype, task.Cadence.Times, pref)

		for _, target := range cadence.ExpandTargetDays(task.Cadence, weekStart, false) {
			day := ledger.PlaceOnOrAfter(target, task.DurationMinutes, prefs)
			clock := ledger.ReserveClock(day, base, workAware)
			ledger.Record(day, task.DurationMinutes, "")

			occurrence := task
			occurrence.Date = day.Format("2006-01-02")
			occurrence.Time = clock
			occurrence.Confidence = confidence
			scheduled = append(scheduled, occurrence)
		}
	}
	return scheduled
}

// confidenceFor grades how specifically the user stated scheduling
// preferences: both day and time-slot preferences, one of them, or
// neither.
func confidenceFor(profile availability.Profile) string {
	switch {
	case profile.DaysSupplied && profile.SlotsSupplied:
		return plan.ConfidenceHigh
	case profile.DaysSupplied || profile.SlotsSupplied:
		return plan.ConfidenceMedium
	default:
		return plan.ConfidenceLow
	}
}
