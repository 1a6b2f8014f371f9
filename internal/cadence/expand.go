package cadence

import (
	"math"
	"sort"
	"time"
)

// mondayIndex maps a weekday onto a Monday-based 0..6 index.
func mondayIndex(day time.Weekday) int {
	return (int(day) + 6) % 7
}

// DayOnOrAfter returns the first date on or after start that falls on
// the given weekday.
func DayOnOrAfter(start time.Time, day time.Weekday) time.Time {
	offset := (int(day) - int(start.Weekday()) + 7) % 7
	return start.AddDate(0, 0, offset)
}

// NextMonday returns the Monday strictly after the given date, or the
// date itself when it already is a Monday.
func NextMonday(from time.Time) time.Time {
	return DayOnOrAfter(from, time.Monday)
}

// ExpandTargetDays materializes a cadence into concrete dates within
// the week starting at weekStart. The result is sorted and free of
// duplicates. repeatDaily forces one date per day regardless of the
// declared cadence.
func ExpandTargetDays(spec Spec, weekStart time.Time, repeatDaily bool) []time.Time {
	weekStart = Midnight(weekStart)

	if repeatDaily || spec.Type == Daily {
		days := make([]time.Time, 7)
		for i := range days {
			days[i] = weekStart.AddDate(0, 0, i)
		}
		return days
	}

	switch spec.Type {
	case SpecificDays:
		startIdx := mondayIndex(weekStart.Weekday())
		seen := make(map[int]bool)
		var days []time.Time
		for _, day := range spec.Days {
			offset := (mondayIndex(day) - startIdx + 7) % 7
			if !seen[offset] {
				seen[offset] = true
				days = append(days, weekStart.AddDate(0, 0, offset))
			}
		}
		sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
		return days
	case XPerWeek:
		// Sessions spread evenly across the week: offsets 0, ~7/n, ...
		// clamped to stay inside the 7-day window.
		seen := make(map[int]bool)
		var days []time.Time
		for i := 0; i < spec.Count; i++ {
			offset := int(math.Round(float64(i) * 7 / float64(spec.Count)))
			if offset > 6 {
				offset = 6
			}
			if !seen[offset] {
				seen[offset] = true
				days = append(days, weekStart.AddDate(0, 0, offset))
			}
		}
		return days
	default:
		// Once and flex anchor on the start of the week.
		return []time.Time{weekStart}
	}
}

// Midnight truncates a time to the start of its calendar day,
// preserving location.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
