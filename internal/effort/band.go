// Package effort classifies resolutions into coarse intensity tiers and
// owns the per-band time budgets the evaluator enforces.
package effort

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Akash114/SarthiAI/internal/types"
)

// Band is a coarse intensity tier controlling per-day and per-week time
// budgets for a generated plan.
type Band string

const (
	BandLow     Band = "low"
	BandMedium  Band = "medium"
	BandHigh    Band = "high"
	BandIntense Band = "intense"
)

// String returns the string representation of the Band.
func (b Band) String() string {
	return string(b)
}

// IsValid checks if the Band is a valid value.
func (b Band) IsValid() bool {
	switch b {
	case BandLow, BandMedium, BandHigh, BandIntense:
		return true
	default:
		return false
	}
}

// MarshalJSON implements json.Marshaler.
func (b Band) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(b))
}

// UnmarshalJSON implements json.Unmarshaler.
func (b *Band) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	band := Band(strings.ToLower(str))
	if !band.IsValid() {
		return fmt.Errorf("invalid effort band: %s", str)
	}
	*b = band
	return nil
}

// ParseBand normalizes a raw band label, defaulting to BandMedium for
// anything unrecognized. Upstream input is untrusted free text, so
// parsing never fails.
func ParseBand(raw string) Band {
	band := Band(strings.ToLower(strings.TrimSpace(raw)))
	if !band.IsValid() {
		return BandMedium
	}
	return band
}

// MinuteRange is an inclusive [Min, Max] minutes span.
type MinuteRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// CountRange is an inclusive [Min, Max] task-count span.
type CountRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Budget is the time budget tuple attached to a band. The values are
// process-wide constants; callers receive copies and cannot mutate the
// table.
type Budget struct {
	MinutesPerDay MinuteRange `json:"minutes_per_day"`
	TasksPerDay   CountRange  `json:"tasks_per_day"`
	WeeklyMinutes int         `json:"weekly_minutes"`
}

var bandBudgets = map[Band]Budget{
	BandLow: {
		MinutesPerDay: MinuteRange{Min: 15, Max: 30},
		TasksPerDay:   CountRange{Min: 1, Max: 1},
		WeeklyMinutes: 180,
	},
	BandMedium: {
		MinutesPerDay: MinuteRange{Min: 30, Max: 60},
		TasksPerDay:   CountRange{Min: 1, Max: 2},
		WeeklyMinutes: 360,
	},
	BandHigh: {
		MinutesPerDay: MinuteRange{Min: 60, Max: 120},
		TasksPerDay:   CountRange{Min: 2, Max: 4},
		WeeklyMinutes: 720,
	},
	BandIntense: {
		MinutesPerDay: MinuteRange{Min: 120, Max: 240},
		TasksPerDay:   CountRange{Min: 3, Max: 6},
		WeeklyMinutes: 1440,
	},
}

// BudgetFor returns the budget tuple for a band. Unknown bands resolve
// to the medium budget so a malformed label can never break evaluation.
func BudgetFor(band Band) Budget {
	if budget, ok := bandBudgets[band]; ok {
		return budget
	}
	return bandBudgets[BandMedium]
}

var (
	lowKeywords       = []string{"casual", "light", "no pressure"}
	intenseKeywords   = []string{"intense", "crash course", "bootcamp"}
	skillPushKeywords = []string{"master", "advanced", "exam", "certification", "daily practice", "serious"}
)

// InferBand infers the effort band and a short rationale from the goal
// text, resolution type, and plan duration. Pure, deterministic, and
// total over any input: empty type is treated as unspecified and a zero
// duration defaults to 8 weeks.
func InferBand(goalText string, resolutionType types.ResolutionType, durationWeeks int) (Band, string) {
	text := strings.ToLower(goalText)
	duration := durationWeeks
	if duration <= 0 {
		duration = 8
	}

	if containsAny(text, lowKeywords) {
		return BandLow, "Goal explicitly requests a casual/light approach."
	}

	band := BandMedium
	rationale := "Defaulted to medium effort."
	switch resolutionType {
	case types.ResolutionHabit, types.ResolutionHealth:
		band = BandMedium
		rationale = "Habits/health default to medium effort."
	case types.ResolutionSkill, types.ResolutionLearning:
		band = BandMedium
		rationale = "Skill/learning defaults to medium effort."
		if containsAny(text, skillPushKeywords) {
			band = BandHigh
			rationale = "Skill goal indicates advanced intensity."
		}
	case types.ResolutionProject, types.ResolutionWork:
		if duration <= 6 {
			band = BandHigh
			rationale = "Short project/work goal defaulted to high effort."
		} else {
			band = BandMedium
			rationale = "Longer project/work plan kept at medium effort."
		}
	default:
		band = BandMedium
		rationale = "No specific type, defaulting to medium effort."
	}

	if containsAny(text, intenseKeywords) {
		if duration <= 4 {
			return BandIntense, "Explicit intense wording with short duration."
		}
		return BandHigh, "Explicit intense wording but duration suggests high effort."
	}

	return band, rationale
}

func containsAny(text string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}
