package cadence

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Akash114/SarthiAI/internal/availability"
	"github.com/Akash114/SarthiAI/internal/types"
)

const (
	morningClock   = "07:30"
	afternoonClock = "13:00"
	eveningClock   = "19:00"
	nightClock     = "21:00"
	fallbackClock  = "10:00"
	afterWorkClock = "18:30"

	// slotProbeAttempts and slotProbeStepMinutes bound the search for
	// a free clock slot on an already busy day.
	slotProbeAttempts    = 5
	slotProbeStepMinutes = 30
)

var slotClocks = map[availability.SlotLabel]string{
	availability.SlotMorning:   morningClock,
	availability.SlotAfternoon: afternoonClock,
	availability.SlotEvening:   eveningClock,
	availability.SlotNight:     nightClock,
}

func parseClock(clock string) (int, bool) {
	parts := strings.SplitN(clock, ":", 2)
	if len(parts) != 2 {
		return 0, false
	}
	hours, err1 := strconv.Atoi(parts[0])
	mins, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil {
		return 0, false
	}
	return hours*60 + mins, true
}

func formatClock(minutes int) string {
	minutes %= 24 * 60
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// PreferredClock picks a start time for a task. Explicit slot labels on
// the cadence win, then the category preference window, then a default
// keyed on the resolution type: physical habits land in the morning,
// skill work in the evening.
func PreferredClock(rtype types.ResolutionType, slots []availability.SlotLabel, pref availability.CategoryPreference) string {
	base := fallbackClock
	switch rtype {
	case types.ResolutionHabit, types.ResolutionHealth, types.ResolutionFitness:
		base = morningClock
	case types.ResolutionSkill, types.ResolutionLearning, types.ResolutionProject, types.ResolutionHobby:
		base = eveningClock
	}

	for _, label := range slots {
		if clock, ok := slotClocks[label]; ok {
			base = clock
			break
		}
	}

	if pref.Window != nil {
		if minutes, ok := parseClock(base); !ok || !pref.Window.Contains(minutes) {
			base = formatClock(pref.Window.Start)
		}
	}
	return base
}

// ReserveClock finalizes a start time on a specific day. A time that
// collides with the profile's work hours moves to the end of the work
// day, then the slot set is probed in half-hour steps until a free one
// is found. The chosen slot is marked occupied on the ledger. Callers
// pass a nil profile when work hours should not constrain the task.
func (l *Ledger) ReserveClock(day time.Time, base string, profile *availability.Profile) string {
	clock := base
	if profile != nil && isWorkDay(day, profile) {
		if minutes, ok := parseClock(clock); ok {
			start, okStart := parseClock(profile.WorkStart)
			end, okEnd := parseClock(profile.WorkEnd)
			if okStart && okEnd && minutes >= start && minutes < end {
				clock = afterWorkClock
			}
		}
	}

	chosen := clock
	if minutes, ok := parseClock(clock); ok {
		for attempt := 0; attempt < slotProbeAttempts; attempt++ {
			candidate := formatClock(minutes + attempt*slotProbeStepMinutes)
			if !l.occupied(day, candidate) {
				chosen = candidate
				break
			}
		}
	}

	key := dayKey(Midnight(day))
	if l.slots[key] == nil {
		l.slots[key] = make(map[string]bool)
	}
	l.slots[key][chosen] = true
	return chosen
}

func isWorkDay(day time.Time, profile *availability.Profile) bool {
	for _, wd := range profile.WorkDays {
		if day.Weekday() == wd {
			return true
		}
	}
	return false
}
