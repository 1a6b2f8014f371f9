package availability

import (
	"fmt"
	"strings"

	"github.com/Akash114/SarthiAI/internal/category"
)

// Domain selects which phrasing PromptBlock uses.
type Domain string

const (
	DomainWork     Domain = "work"
	DomainPersonal Domain = "personal"
)

var slotRanges = map[SlotLabel]MinuteRange{
	SlotMorning:   {Start: 6 * 60, End: 8 * 60},
	SlotAfternoon: {Start: 12 * 60, End: 15 * 60},
	SlotEvening:   {Start: 19 * 60, End: 21 * 60},
	SlotNight:     {Start: 21 * 60, End: 23 * 60},
	SlotWeekend:   {Start: 10 * 60, End: 12 * 60},
	SlotEvenings:  {Start: 19 * 60, End: 21 * 60},
}

// MinuteRange is a [Start, End) span in minutes since midnight.
type MinuteRange struct {
	Start int
	End   int
}

// SlotRange resolves a slot label to its minute-of-day range. Unknown
// labels resolve to the evening window.
func SlotRange(label SlotLabel) MinuteRange {
	if r, ok := slotRanges[SlotLabel(strings.ToLower(string(label)))]; ok {
		return r
	}
	return slotRanges[SlotEvening]
}

func (r MinuteRange) String() string {
	return fmt.Sprintf("%s-%s", minutesToClock(r.Start), minutesToClock(r.End))
}

// Contains reports whether the minute-of-day falls inside the range.
func (r MinuteRange) Contains(minute int) bool {
	return minute >= r.Start && minute < r.End
}

// PromptBlock renders the profile as natural-language scheduling rules
// for LLM prompt injection. Phrasing varies by domain and by whether
// strict work mode is enabled.
func (p Profile) PromptBlock(domain Domain) string {
	workDays := make([]string, len(p.WorkDays))
	for i, day := range p.WorkDays {
		workDays[i] = dayAbbrev(day)
	}
	dayList := strings.Join(workDays, ", ")
	workWindow := fmt.Sprintf("%s-%s", p.WorkStart, p.WorkEnd)

	var b strings.Builder
	b.WriteString("### SMART AVAILABILITY RULES\n")
	fmt.Fprintf(&b, "- Work Rule: Work-domain tasks must stay inside %s on %s.\n", workWindow, dayList)

	fitnessRange := SlotRange(p.PersonalSlots.Fitness)
	learningRange := SlotRange(p.PersonalSlots.Learning)
	fmt.Fprintf(&b, "- Fitness Rule: Fitness resolutions should aim for the %s window (%s).\n",
		p.PersonalSlots.Fitness, fitnessRange)
	fmt.Fprintf(&b, "- Hobby/Learning Rule: Hobby or learning resolutions should aim for the %s window (%s).\n",
		p.PersonalSlots.Learning, learningRange)

	if domain == DomainWork {
		fmt.Fprintf(&b, "- Work focus days: %s. ONLY schedule work tasks on those days between %s.\n", dayList, workWindow)
		b.WriteString("- Never place work tasks on weekends unless the list of work days explicitly includes them.\n")
	} else {
		fmt.Fprintf(&b, "- Work hours to AVOID for personal tasks: %s on %s.\n", workWindow, dayList)
		b.WriteString("- Schedule personal tasks either before work_start or after work_end on work days. Weekends are fully open.\n")
	}

	if p.PeakEnergy == "morning" {
		b.WriteString("- When the user says their peak energy is morning, schedule demanding tasks near the start of the allowed window.\n")
	} else {
		b.WriteString("- When the user says their peak energy is evening, schedule demanding tasks toward the end of the allowed window.\n")
	}

	if p.WorkModeEnabled {
		b.WriteString("- Conflict Rule: Strict Work Mode is enabled, so personal tasks must avoid work hours and vice versa.\n")
	} else {
		b.WriteString("- Conflict Rule: Work Mode is relaxed, but still favor keeping personal focus outside work hours.\n")
	}

	b.WriteString("- Times must always be formatted as HH:MM using 24-hour clocks.\n")
	return b.String()
}

// CategoryPreference is the scheduling hint derived from the user's
// per-category slot labels.
type CategoryPreference struct {
	// Window is the preferred minute-of-day range, nil when the
	// category carries no per-slot preference.
	Window *MinuteRange
	// PreferWeekend marks categories the user routes to weekends.
	PreferWeekend bool
}

// CategoryPreferenceFor maps a resolution journey category to the
// user's preferred scheduling window.
func (p Profile) CategoryPreferenceFor(cat category.Category) CategoryPreference {
	switch cat {
	case category.Fitness:
		window := SlotRange(p.PersonalSlots.Fitness)
		return CategoryPreference{Window: &window}
	case category.Hobby, category.Learning:
		window := SlotRange(p.PersonalSlots.Learning)
		return CategoryPreference{Window: &window}
	case category.Admin, category.Chores:
		window := SlotRange(p.PersonalSlots.Admin)
		return CategoryPreference{
			Window:        &window,
			PreferWeekend: p.PersonalSlots.Admin == SlotWeekend,
		}
	}
	return CategoryPreference{}
}
