// Package availability normalizes user availability preferences into a
// canonical profile and renders them as prompt constraints.
package availability

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// SlotLabel is a coarse time-of-day preference label.
type SlotLabel string

const (
	SlotMorning   SlotLabel = "morning"
	SlotAfternoon SlotLabel = "afternoon"
	SlotEvening   SlotLabel = "evening"
	SlotEvenings  SlotLabel = "evenings"
	SlotNight     SlotLabel = "night"
	SlotWeekend   SlotLabel = "weekend"
)

// PersonalSlots holds per-category time-slot preferences.
type PersonalSlots struct {
	Fitness  SlotLabel `json:"fitness"`
	Learning SlotLabel `json:"learning"`
	Admin    SlotLabel `json:"admin"`
}

// Profile is a fully-populated availability profile. Sanitize is total:
// after it runs, every field holds either the caller's valid value or
// the documented default, never a partial state.
type Profile struct {
	WorkDays        []time.Weekday `json:"work_days"`
	WorkStart       string         `json:"work_start"` // HH:MM
	WorkEnd         string         `json:"work_end"`   // HH:MM
	PeakEnergy      string         `json:"peak_energy"` // morning|evening
	WorkModeEnabled bool           `json:"work_mode_enabled"`
	PersonalSlots   PersonalSlots  `json:"personal_slots"`

	// DaysSupplied and SlotsSupplied record whether the caller stated
	// usable day and time-slot preferences; scheduling grades its
	// confidence from them.
	DaysSupplied  bool `json:"-"`
	SlotsSupplied bool `json:"-"`

	// WorkHoursSet records whether the work window came from the
	// caller rather than the defaults.
	WorkHoursSet bool `json:"-"`
}

// RawProfile is the loosely-typed shape availability preferences arrive
// in from upstream callers.
type RawProfile struct {
	WorkDays        []string          `json:"work_days"`
	WorkStart       string            `json:"work_start"`
	WorkEnd         string            `json:"work_end"`
	PeakEnergy      string            `json:"peak_energy"`
	WorkModeEnabled *bool             `json:"work_mode_enabled"`
	PersonalSlots   map[string]string `json:"personal_slots"`
}

// DefaultProfile returns the default availability profile: Mon-Fri
// working 09:00-18:00, morning peak energy, work mode off, and the
// default personal slots (fitness=morning, learning=evening,
// admin=weekend).
func DefaultProfile() Profile {
	return Profile{
		WorkDays: []time.Weekday{
			time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday,
		},
		WorkStart:       "09:00",
		WorkEnd:         "18:00",
		PeakEnergy:      "morning",
		WorkModeEnabled: false,
		PersonalSlots: PersonalSlots{
			Fitness:  SlotMorning,
			Learning: SlotEvening,
			Admin:    SlotWeekend,
		},
	}
}

var dayAliases = map[string]time.Weekday{
	"mon": time.Monday, "monday": time.Monday,
	"tue": time.Tuesday, "tues": time.Tuesday, "tuesday": time.Tuesday,
	"wed": time.Wednesday, "weds": time.Wednesday, "wednesday": time.Wednesday,
	"thu": time.Thursday, "thur": time.Thursday, "thurs": time.Thursday, "thursday": time.Thursday,
	"fri": time.Friday, "friday": time.Friday,
	"sat": time.Saturday, "saturday": time.Saturday,
	"sun": time.Sunday, "sunday": time.Sunday,
}

// ParseDay converts common day names, abbreviations and misspellings to
// a weekday. The bool result reports whether the name was recognized.
func ParseDay(name string) (time.Weekday, bool) {
	day, ok := dayAliases[strings.ToLower(strings.TrimSpace(name))]
	return day, ok
}

// Sanitize normalizes a raw profile into a canonical one. It never
// fails: invalid or missing fields are silently replaced with defaults.
// Sanitize is idempotent over its own output.
func Sanitize(raw *RawProfile) Profile {
	profile := DefaultProfile()
	if raw == nil {
		return profile
	}

	if days := normalizeWorkDays(raw.WorkDays); len(days) > 0 {
		profile.WorkDays = days
		profile.DaysSupplied = true
	}

	if start, ok := normalizeClock(raw.WorkStart); ok {
		profile.WorkStart = start
		profile.WorkHoursSet = true
	}
	if end, ok := normalizeClock(raw.WorkEnd); ok {
		profile.WorkEnd = end
		profile.WorkHoursSet = true
	}
	// Start must precede end; otherwise both revert to defaults.
	if clockMinutes(profile.WorkStart) >= clockMinutes(profile.WorkEnd) {
		defaults := DefaultProfile()
		profile.WorkStart = defaults.WorkStart
		profile.WorkEnd = defaults.WorkEnd
		profile.WorkHoursSet = false
	}

	if peak := strings.ToLower(strings.TrimSpace(raw.PeakEnergy)); peak == "morning" || peak == "evening" {
		profile.PeakEnergy = peak
	}

	if raw.WorkModeEnabled != nil {
		profile.WorkModeEnabled = *raw.WorkModeEnabled
	}

	profile.PersonalSlots, profile.SlotsSupplied = normalizePersonalSlots(raw.PersonalSlots)

	return profile
}

func normalizeWorkDays(raw []string) []time.Weekday {
	var days []time.Weekday
	seen := make(map[time.Weekday]bool)
	for _, entry := range raw {
		day, ok := ParseDay(entry)
		if !ok || seen[day] {
			continue
		}
		seen[day] = true
		days = append(days, day)
	}
	return days
}

func normalizePersonalSlots(raw map[string]string) (PersonalSlots, bool) {
	slots := DefaultProfile().PersonalSlots
	if raw == nil {
		return slots, false
	}
	supplied := false
	switch SlotLabel(strings.ToLower(raw["fitness"])) {
	case SlotMorning, SlotAfternoon, SlotEvening:
		slots.Fitness = SlotLabel(strings.ToLower(raw["fitness"]))
		supplied = true
	}
	switch SlotLabel(strings.ToLower(raw["learning"])) {
	case SlotMorning, SlotAfternoon, SlotEvening:
		slots.Learning = SlotLabel(strings.ToLower(raw["learning"]))
		supplied = true
	}
	switch SlotLabel(strings.ToLower(raw["admin"])) {
	case SlotWeekend, SlotEvenings:
		slots.Admin = SlotLabel(strings.ToLower(raw["admin"]))
		supplied = true
	}
	return slots, supplied
}

// normalizeClock parses an HH:MM string, clamping out-of-range hour and
// minute components. Malformed strings are rejected.
func normalizeClock(value string) (string, bool) {
	parts := strings.Split(strings.TrimSpace(value), ":")
	if len(parts) != 2 {
		return "", false
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return "", false
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return "", false
	}
	hour = clamp(hour, 0, 23)
	minute = clamp(minute, 0, 59)
	return fmt.Sprintf("%02d:%02d", hour, minute), true
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// clockMinutes converts an HH:MM string to minutes since midnight.
// Malformed input maps to 0.
func clockMinutes(value string) int {
	parts := strings.Split(value, ":")
	if len(parts) != 2 {
		return 0
	}
	hour, err1 := strconv.Atoi(parts[0])
	minute, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil {
		return 0
	}
	return hour*60 + minute
}

// minutesToClock formats minutes since midnight as HH:MM, wrapping at
// 24 hours.
func minutesToClock(total int) string {
	total %= 24 * 60
	if total < 0 {
		total += 24 * 60
	}
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

func dayAbbrev(day time.Weekday) string {
	return day.String()[:3]
}
