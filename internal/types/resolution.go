package types

import "strings"

// ResolutionType classifies a user resolution. Values arrive from
// untrusted upstream input, so anything unrecognized normalizes to
// ResolutionUnspecified rather than failing.
type ResolutionType string

const (
	ResolutionHabit       ResolutionType = "habit"
	ResolutionHealth      ResolutionType = "health"
	ResolutionFitness     ResolutionType = "fitness"
	ResolutionSkill       ResolutionType = "skill"
	ResolutionLearning    ResolutionType = "learning"
	ResolutionProject     ResolutionType = "project"
	ResolutionWork        ResolutionType = "work"
	ResolutionHobby       ResolutionType = "hobby"
	ResolutionFinance     ResolutionType = "finance"
	ResolutionUnspecified ResolutionType = ""
)

// NormalizeResolutionType lowercases and validates a raw type string.
func NormalizeResolutionType(raw string) ResolutionType {
	switch t := ResolutionType(strings.ToLower(strings.TrimSpace(raw))); t {
	case ResolutionHabit, ResolutionHealth, ResolutionFitness, ResolutionSkill,
		ResolutionLearning, ResolutionProject, ResolutionWork, ResolutionHobby,
		ResolutionFinance:
		return t
	default:
		return ResolutionUnspecified
	}
}

// String returns the string representation of the type.
func (t ResolutionType) String() string {
	return string(t)
}

// IsRepetitionOriented reports whether the type is expected to carry a
// repeating practice cadence (habits, health, and skill acquisition).
func (t ResolutionType) IsRepetitionOriented() bool {
	switch t {
	case ResolutionHabit, ResolutionHealth, ResolutionSkill, ResolutionLearning:
		return true
	default:
		return false
	}
}
