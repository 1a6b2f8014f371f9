// Package category maps resolution types onto the journey categories
// used for dashboard grouping and slot preferences.
package category

import (
	"strings"

	"github.com/Akash114/SarthiAI/internal/types"
)

// Category is a coarse journey grouping for a resolution.
type Category string

const (
	Fitness  Category = "fitness"
	Learning Category = "learning"
	Hobby    Category = "hobby"
	Admin    Category = "admin"
	Chores   Category = "chores"
	General  Category = "general"
)

var typeToCategory = map[types.ResolutionType]Category{
	types.ResolutionHealth:   Fitness,
	types.ResolutionHabit:    Fitness,
	types.ResolutionFitness:  Fitness,
	types.ResolutionLearning: Learning,
	types.ResolutionSkill:    Learning,
	types.ResolutionProject:  Hobby,
	types.ResolutionFinance:  Hobby,
}

var displayNames = map[Category]string{
	Fitness:  "Fitness",
	Learning: "Learning",
	Hobby:    "Hobby",
	Admin:    "Admin",
	Chores:   "Chores",
	General:  "General",
}

// Infer maps a resolution type to its journey category. Unknown and
// unspecified types map to General.
func Infer(resolutionType types.ResolutionType) Category {
	if c, ok := typeToCategory[resolutionType]; ok {
		return c
	}
	return General
}

// Parse normalizes a raw category label, falling back to General.
func Parse(raw string) Category {
	switch c := Category(strings.ToLower(strings.TrimSpace(raw))); c {
	case Fitness, Learning, Hobby, Admin, Chores, General:
		return c
	default:
		return General
	}
}

// DisplayName returns the user-facing label for a category.
func DisplayName(c Category) string {
	if name, ok := displayNames[c]; ok {
		return name
	}
	return displayNames[General]
}
