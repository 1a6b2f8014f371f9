package cadence

import (
	"time"
)

const (
	// scanHorizonDays bounds the forward search for a free day before
	// the original target is force-used.
	scanHorizonDays = 21
	// heavyTaskMinutes is the threshold above which a task counts
	// toward a day's load.
	heavyTaskMinutes = 15
	// maxHeavyPerDay caps how many substantial tasks share one day.
	maxHeavyPerDay = 2
	// longSessionMinutes marks a session that needs a recovery day
	// before the next long one.
	longSessionMinutes = 60
)

// PlacementPrefs constrains which days qualify during the day scan.
type PlacementPrefs struct {
	// Weekdays restricts placement to the listed weekdays when
	// non-empty.
	Weekdays []time.Weekday
	// PreferWeekend restricts placement to Saturday and Sunday.
	PreferWeekend bool
}

func (p PlacementPrefs) allows(day time.Time) bool {
	if p.PreferWeekend {
		wd := day.Weekday()
		return wd == time.Saturday || wd == time.Sunday
	}
	if len(p.Weekdays) == 0 {
		return true
	}
	for _, wd := range p.Weekdays {
		if day.Weekday() == wd {
			return true
		}
	}
	return false
}

// Ledger tracks per-day load and occupied start times while a plan is
// being scheduled, so successive tasks spread out instead of stacking
// on the same day and clock slot. A Ledger is not safe for concurrent
// use; each scheduling run owns its own.
type Ledger struct {
	loads    map[string][]int
	slots    map[string]map[string]bool
	lastLong time.Time
	hasLong  bool
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{
		loads: make(map[string][]int),
		slots: make(map[string]map[string]bool),
	}
}

func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// Record notes a placed task so later placements see its load and its
// occupied clock slot.
func (l *Ledger) Record(day time.Time, durationMinutes int, clock string) {
	day = Midnight(day)
	key := dayKey(day)
	l.loads[key] = append(l.loads[key], durationMinutes)
	if clock != "" {
		if l.slots[key] == nil {
			l.slots[key] = make(map[string]bool)
		}
		l.slots[key][clock] = true
	}
	if durationMinutes > longSessionMinutes {
		l.lastLong = day
		l.hasLong = true
	}
}

// DayMinutes returns the total minutes already placed on a day.
func (l *Ledger) DayMinutes(day time.Time) int {
	total := 0
	for _, d := range l.loads[dayKey(day)] {
		total += d
	}
	return total
}

func (l *Ledger) heavyCount(day time.Time) int {
	count := 0
	for _, d := range l.loads[dayKey(day)] {
		if d >= heavyTaskMinutes {
			count++
		}
	}
	return count
}

func (l *Ledger) occupied(day time.Time, clock string) bool {
	return l.slots[dayKey(day)][clock]
}

func (l *Ledger) tooCloseToLongSession(day time.Time) bool {
	if !l.hasLong {
		return false
	}
	diff := day.Sub(l.lastLong)
	if diff < 0 {
		diff = -diff
	}
	return diff <= 24*time.Hour
}

// PlaceOnOrAfter finds the first acceptable day at or after target for
// a task of the given duration. A day is acceptable when it matches the
// placement preferences, carries fewer than two substantial tasks, and,
// for long sessions, is not adjacent to the previous long session. When
// no day within the scan horizon qualifies the original target is used
// as-is; a crowded calendar must not push work out indefinitely.
func (l *Ledger) PlaceOnOrAfter(target time.Time, durationMinutes int, prefs PlacementPrefs) time.Time {
	target = Midnight(target)
	for offset := 0; offset < scanHorizonDays; offset++ {
		day := target.AddDate(0, 0, offset)
		if !prefs.allows(day) {
			continue
		}
		if l.heavyCount(day) >= maxHeavyPerDay && durationMinutes >= heavyTaskMinutes {
			continue
		}
		if durationMinutes > longSessionMinutes && l.tooCloseToLongSession(day) {
			continue
		}
		return day
	}
	return target
}
