package cadence

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Akash114/SarthiAI/internal/availability"
	"github.com/Akash114/SarthiAI/internal/types"
)

// monday is an arbitrary Monday used as a week anchor.
var monday = time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

func TestParseSpec(t *testing.T) {
	tests := []struct {
		raw  string
		want Spec
	}{
		{"daily", Spec{Type: Daily}},
		{"Daily morning practice", Spec{Type: Daily}},
		{"3x per week", Spec{Type: XPerWeek, Count: 3}},
		{"3x_per_week", Spec{Type: XPerWeek, Count: 3}},
		{"twice_per_week", Spec{Type: XPerWeek, Count: 2}},
		{"three times a week", Spec{Type: XPerWeek, Count: 3}},
		{"weekly", Spec{Type: XPerWeek, Count: 1}},
		{"once", Spec{Type: Once}},
		{"one-time setup", Spec{Type: Once}},
		{"whenever it fits", Spec{Type: Flex}},
		{"", Spec{Type: Flex}},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got := ParseSpec(tt.raw)
			assert.Equal(t, tt.want.Type, got.Type)
			assert.Equal(t, tt.want.Count, got.Count)
		})
	}
}

func TestParseSpecClampsCount(t *testing.T) {
	assert.Equal(t, 7, ParseSpec("12x per week").Count)
}

func TestSpecUnmarshalString(t *testing.T) {
	var spec Spec
	require.NoError(t, json.Unmarshal([]byte(`"3x per week"`), &spec))
	assert.Equal(t, XPerWeek, spec.Type)
	assert.Equal(t, 3, spec.Count)
}

func TestSpecUnmarshalObject(t *testing.T) {
	var spec Spec
	raw := `{"type": "specific_days", "days": ["mon", "weds", "Friday"], "times": ["Evening"]}`
	require.NoError(t, json.Unmarshal([]byte(raw), &spec))
	assert.Equal(t, SpecificDays, spec.Type)
	assert.Equal(t, []time.Weekday{time.Monday, time.Wednesday, time.Friday}, spec.Days)
	assert.Equal(t, []availability.SlotLabel{availability.SlotEvening}, spec.Times)
}

func TestSpecUnmarshalTimesPerWeek(t *testing.T) {
	var spec Spec
	require.NoError(t, json.Unmarshal([]byte(`{"times_per_week": 4}`), &spec))
	assert.Equal(t, XPerWeek, spec.Type)
	assert.Equal(t, 4, spec.Count)
}

func TestSpecUnmarshalGarbageDegradesToFlex(t *testing.T) {
	var spec Spec
	require.NoError(t, json.Unmarshal([]byte(`42`), &spec))
	assert.Equal(t, Flex, spec.Type)
}

func TestSpecString(t *testing.T) {
	assert.Equal(t, "daily", Spec{Type: Daily}.String())
	assert.Equal(t, "3x per week", Spec{Type: XPerWeek, Count: 3}.String())
	assert.Equal(t, "Specific days: Monday, Thursday",
		Spec{Type: SpecificDays, Days: []time.Weekday{time.Monday, time.Thursday}}.String())
	assert.Equal(t, "flex", Spec{Type: Flex}.String())
}

func TestExpandDaily(t *testing.T) {
	days := ExpandTargetDays(Spec{Type: Daily}, monday, false)
	require.Len(t, days, 7)
	assert.Equal(t, monday, days[0])
	assert.Equal(t, monday.AddDate(0, 0, 6), days[6])
}

func TestExpandXPerWeekAlwaysYieldsCountDays(t *testing.T) {
	// Regardless of which weekday the window opens on, three sessions
	// per week expand to exactly three distinct dates inside it.
	spec := Spec{Type: XPerWeek, Count: 3}
	for offset := 0; offset < 7; offset++ {
		start := monday.AddDate(0, 0, offset)
		days := ExpandTargetDays(spec, start, false)
		require.Len(t, days, 3, "start weekday %s", start.Weekday())
		seen := make(map[string]bool)
		for _, day := range days {
			assert.False(t, seen[dayKey(day)])
			seen[dayKey(day)] = true
			assert.False(t, day.Before(start))
			assert.True(t, day.Before(start.AddDate(0, 0, 7)))
		}
	}
}

func TestExpandXPerWeekSpacing(t *testing.T) {
	days := ExpandTargetDays(Spec{Type: XPerWeek, Count: 3}, monday, false)
	require.Len(t, days, 3)
	assert.Equal(t, monday, days[0])
	assert.Equal(t, monday.AddDate(0, 0, 2), days[1])
	assert.Equal(t, monday.AddDate(0, 0, 5), days[2])
}

func TestExpandSpecificDaysWrapsAroundWeekStart(t *testing.T) {
	spec := Spec{Type: SpecificDays, Days: []time.Weekday{time.Monday, time.Wednesday}}
	wednesday := monday.AddDate(0, 0, 2)
	days := ExpandTargetDays(spec, wednesday, false)
	require.Len(t, days, 2)
	// Wednesday is the window start itself; Monday wraps to next week.
	assert.Equal(t, wednesday, days[0])
	assert.Equal(t, wednesday.AddDate(0, 0, 5), days[1])
}

func TestExpandOnceAndFlex(t *testing.T) {
	for _, kind := range []Type{Once, Flex} {
		days := ExpandTargetDays(Spec{Type: kind}, monday, false)
		assert.Equal(t, []time.Time{monday}, days, string(kind))
	}
}

func TestExpandRepeatDailyOverride(t *testing.T) {
	days := ExpandTargetDays(Spec{Type: Once}, monday, true)
	assert.Len(t, days, 7)
}

func TestLedgerSpreadsHeavyDays(t *testing.T) {
	ledger := NewLedger()
	ledger.Record(monday, 30, "")
	ledger.Record(monday, 45, "")

	day := ledger.PlaceOnOrAfter(monday, 30, PlacementPrefs{})
	assert.Equal(t, monday.AddDate(0, 0, 1), day, "full day should push to the next one")

	// A trivial task still fits on the full day.
	day = ledger.PlaceOnOrAfter(monday, 10, PlacementPrefs{})
	assert.Equal(t, monday, day)
}

func TestLedgerLongSessionRecovery(t *testing.T) {
	ledger := NewLedger()
	ledger.Record(monday, 90, "")

	day := ledger.PlaceOnOrAfter(monday.AddDate(0, 0, 1), 90, PlacementPrefs{})
	assert.Equal(t, monday.AddDate(0, 0, 2), day, "long sessions need a day between them")

	// Short work is unaffected by the recovery rule.
	day = ledger.PlaceOnOrAfter(monday.AddDate(0, 0, 1), 30, PlacementPrefs{})
	assert.Equal(t, monday.AddDate(0, 0, 1), day)
}

func TestLedgerWeekendPreference(t *testing.T) {
	ledger := NewLedger()
	day := ledger.PlaceOnOrAfter(monday, 30, PlacementPrefs{PreferWeekend: true})
	assert.Equal(t, time.Saturday, day.Weekday())
}

func TestLedgerWeekdayPreference(t *testing.T) {
	ledger := NewLedger()
	prefs := PlacementPrefs{Weekdays: []time.Weekday{time.Thursday}}
	day := ledger.PlaceOnOrAfter(monday, 30, prefs)
	assert.Equal(t, time.Thursday, day.Weekday())
}

func TestLedgerForcesTargetWhenHorizonExhausted(t *testing.T) {
	ledger := NewLedger()
	for offset := 0; offset < scanHorizonDays; offset++ {
		day := monday.AddDate(0, 0, offset)
		ledger.Record(day, 30, "")
		ledger.Record(day, 30, "")
	}
	day := ledger.PlaceOnOrAfter(monday, 30, PlacementPrefs{})
	assert.Equal(t, monday, day)
}

func TestPreferredClockByType(t *testing.T) {
	none := availability.CategoryPreference{}
	assert.Equal(t, "07:30", PreferredClock(types.ResolutionFitness, nil, none))
	assert.Equal(t, "07:30", PreferredClock(types.ResolutionHabit, nil, none))
	assert.Equal(t, "19:00", PreferredClock(types.ResolutionSkill, nil, none))
	assert.Equal(t, "19:00", PreferredClock(types.ResolutionHobby, nil, none))
	assert.Equal(t, "10:00", PreferredClock(types.ResolutionFinance, nil, none))
}

func TestPreferredClockSlotLabelWins(t *testing.T) {
	clock := PreferredClock(types.ResolutionFitness,
		[]availability.SlotLabel{availability.SlotNight}, availability.CategoryPreference{})
	assert.Equal(t, "21:00", clock)
}

func TestPreferredClockWindowClamp(t *testing.T) {
	window := &availability.MinuteRange{Start: 6 * 60, End: 8 * 60}
	pref := availability.CategoryPreference{Window: window}

	// Evening default falls outside the window and snaps to its start.
	assert.Equal(t, "06:00", PreferredClock(types.ResolutionSkill, nil, pref))
	// A default already inside the window is kept.
	assert.Equal(t, "07:30", PreferredClock(types.ResolutionFitness, nil, pref))
}

func TestReserveClockShiftsOutOfWorkHours(t *testing.T) {
	profile := availability.DefaultProfile()
	ledger := NewLedger()

	clock := ledger.ReserveClock(monday, "10:00", &profile)
	assert.Equal(t, "18:30", clock)

	// Weekends are outside the work window.
	saturday := monday.AddDate(0, 0, 5)
	clock = ledger.ReserveClock(saturday, "10:00", &profile)
	assert.Equal(t, "10:00", clock)

	// An evening slot never collides with the work window.
	assert.Equal(t, "19:00", ledger.ReserveClock(monday.AddDate(0, 0, 1), "19:00", &profile))
}

func TestReserveClockProbesOccupiedSlots(t *testing.T) {
	ledger := NewLedger()
	assert.Equal(t, "19:00", ledger.ReserveClock(monday, "19:00", nil))
	assert.Equal(t, "19:30", ledger.ReserveClock(monday, "19:00", nil))
	assert.Equal(t, "20:00", ledger.ReserveClock(monday, "19:00", nil))
}

func TestReserveClockReusesBaseWhenAllProbesBusy(t *testing.T) {
	ledger := NewLedger()
	for i := 0; i < slotProbeAttempts; i++ {
		ledger.Record(monday, 0, formatClock(19*60+i*slotProbeStepMinutes))
	}
	assert.Equal(t, "19:00", ledger.ReserveClock(monday, "19:00", nil))
}
