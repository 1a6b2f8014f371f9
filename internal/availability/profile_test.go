package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Akash114/SarthiAI/internal/category"
)

func TestSanitize_NilAndEmptyYieldDefaults(t *testing.T) {
	assert.Equal(t, DefaultProfile(), Sanitize(nil))
	assert.Equal(t, DefaultProfile(), Sanitize(&RawProfile{}))
}

func TestSanitize_Idempotent(t *testing.T) {
	enabled := true
	raw := &RawProfile{
		WorkDays:        []string{"tues", "weds", "garbage", "FRIDAY"},
		WorkStart:       "7:5",
		WorkEnd:         "19:99",
		PeakEnergy:      "Evening",
		WorkModeEnabled: &enabled,
		PersonalSlots:   map[string]string{"fitness": "evening", "admin": "evenings"},
	}
	once := Sanitize(raw)

	// Re-sanitizing the canonical output must be a no-op.
	roundTrip := &RawProfile{
		WorkDays:        []string{"Tue", "Wed", "Fri"},
		WorkStart:       once.WorkStart,
		WorkEnd:         once.WorkEnd,
		PeakEnergy:      once.PeakEnergy,
		WorkModeEnabled: &once.WorkModeEnabled,
		PersonalSlots: map[string]string{
			"fitness":  string(once.PersonalSlots.Fitness),
			"learning": string(once.PersonalSlots.Learning),
			"admin":    string(once.PersonalSlots.Admin),
		},
	}
	assert.Equal(t, once, Sanitize(roundTrip))
}

func TestSanitize_DayNormalization(t *testing.T) {
	raw := &RawProfile{WorkDays: []string{"mon", "MONDAY", "thur", "nope", "sun"}}
	profile := Sanitize(raw)
	assert.Equal(t, []time.Weekday{time.Monday, time.Thursday, time.Sunday}, profile.WorkDays)
}

func TestSanitize_AllDaysUnrecognizedRevertsToDefault(t *testing.T) {
	raw := &RawProfile{WorkDays: []string{"blursday", "someday"}}
	profile := Sanitize(raw)
	assert.Equal(t, DefaultProfile().WorkDays, profile.WorkDays)
}

func TestSanitize_ClockHandling(t *testing.T) {
	tests := []struct {
		name      string
		start     string
		end       string
		wantStart string
		wantEnd   string
	}{
		{"clamped out-of-range", "25:70", "26:80", "09:00", "18:00"}, // both clamp to 23:59, start>=end resets
		{"valid window", "08:30", "16:00", "08:30", "16:00"},
		{"malformed start ignored", "morningish", "16:00", "09:00", "16:00"},
		{"inverted window resets both", "20:00", "08:00", "09:00", "18:00"},
		{"single digit components", "7:5", "18:00", "07:05", "18:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := Sanitize(&RawProfile{WorkStart: tt.start, WorkEnd: tt.end})
			assert.Equal(t, tt.wantStart, profile.WorkStart)
			assert.Equal(t, tt.wantEnd, profile.WorkEnd)
		})
	}
}

func TestSanitize_PersonalSlots(t *testing.T) {
	raw := &RawProfile{PersonalSlots: map[string]string{
		"fitness":  "evening",
		"learning": "midnight", // invalid, keeps default
		"admin":    "evenings",
	}}
	profile := Sanitize(raw)
	assert.Equal(t, SlotEvening, profile.PersonalSlots.Fitness)
	assert.Equal(t, SlotEvening, profile.PersonalSlots.Learning)
	assert.Equal(t, SlotEvenings, profile.PersonalSlots.Admin)
}

func TestSanitize_TracksSuppliedPreferences(t *testing.T) {
	base := Sanitize(nil)
	assert.False(t, base.DaysSupplied)
	assert.False(t, base.SlotsSupplied)
	assert.False(t, base.WorkHoursSet)

	stated := Sanitize(&RawProfile{
		WorkDays:      []string{"mon", "wed"},
		WorkStart:     "08:00",
		WorkEnd:       "16:00",
		PersonalSlots: map[string]string{"fitness": "evening"},
	})
	assert.True(t, stated.DaysSupplied)
	assert.True(t, stated.SlotsSupplied)
	assert.True(t, stated.WorkHoursSet)

	// An inverted window reverts to defaults and does not count as a
	// stated work window.
	inverted := Sanitize(&RawProfile{WorkStart: "20:00", WorkEnd: "08:00"})
	assert.False(t, inverted.WorkHoursSet)
}

func TestPromptBlock_PersonalVsWork(t *testing.T) {
	profile := DefaultProfile()

	personal := profile.PromptBlock(DomainPersonal)
	assert.Contains(t, personal, "Work hours to AVOID for personal tasks")
	assert.Contains(t, personal, "09:00-18:00")
	assert.Contains(t, personal, "peak energy is morning")

	work := profile.PromptBlock(DomainWork)
	assert.Contains(t, work, "ONLY schedule work tasks")
	assert.NotContains(t, work, "Weekends are fully open")
}

func TestPromptBlock_WorkModeStrict(t *testing.T) {
	profile := DefaultProfile()
	profile.WorkModeEnabled = true
	block := profile.PromptBlock(DomainPersonal)
	assert.Contains(t, block, "Strict Work Mode is enabled")
}

func TestCategoryPreferenceFor(t *testing.T) {
	profile := DefaultProfile()

	fitness := profile.CategoryPreferenceFor(category.Fitness)
	assert.NotNil(t, fitness.Window)
	assert.Equal(t, MinuteRange{Start: 6 * 60, End: 8 * 60}, *fitness.Window)
	assert.False(t, fitness.PreferWeekend)

	admin := profile.CategoryPreferenceFor(category.Admin)
	assert.NotNil(t, admin.Window)
	assert.True(t, admin.PreferWeekend)
	assert.Equal(t, MinuteRange{Start: 10 * 60, End: 12 * 60}, *admin.Window)

	general := profile.CategoryPreferenceFor(category.General)
	assert.Nil(t, general.Window)
	assert.False(t, general.PreferWeekend)
}

func TestSlotRange_UnknownLabelFallsBackToEvening(t *testing.T) {
	assert.Equal(t, SlotRange(SlotEvening), SlotRange(SlotLabel("brunch")))
}
