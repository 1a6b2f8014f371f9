package planner

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/Akash114/SarthiAI/internal/cadence"
)

// GoalFacts are the concrete signals mined out of the raw goal text.
// They constrain generation: an explicit duration or frequency stated
// by the user overrides whatever the model would prefer.
type GoalFacts struct {
	// Activity is the short noun phrase used for {goal_focus}
	// substitution and prompt focus, e.g. "running".
	Activity string

	// SessionMinutes is a per-session duration the user stated
	// explicitly, or 0.
	SessionMinutes int

	// Cadence is a frequency the user stated explicitly, or nil.
	Cadence *cadence.Spec

	// Focuses are secondary themes mentioned alongside the main
	// activity.
	Focuses []string
}

// activityPhrases maps a keyword in the goal text to the activity noun
// used in prompts and fallback tasks. First hit wins; the order favors
// the more specific phrases.
var activityPhrases = []struct {
	keyword  string
	activity string
}{
	{"marathon", "marathon training"},
	{"run", "running"},
	{"guitar", "guitar practice"},
	{"piano", "piano practice"},
	{"sing", "singing practice"},
	{"swim", "swimming"},
	{"yoga", "yoga"},
	{"meditat", "meditation"},
	{"journal", "journaling"},
	{"spanish", "Spanish practice"},
	{"french", "French practice"},
	{"language", "language practice"},
	{"read", "reading"},
	{"write", "writing"},
	{"draw", "drawing"},
	{"cook", "cooking"},
	{"chess", "chess practice"},
	{"code", "coding practice"},
	{"coding", "coding practice"},
	{"gym", "gym training"},
	{"save", "saving money"},
	{"budget", "budgeting"},
}

var durationRe = regexp.MustCompile(`(\d+)\s*(minutes?|mins?|hours?|hrs?)`)

// frequencyPhrases maps literal phrasing to an explicit cadence.
var frequencyPhrases = []struct {
	phrase string
	spec   cadence.Spec
}{
	{"every day", cadence.Spec{Type: cadence.Daily}},
	{"everyday", cadence.Spec{Type: cadence.Daily}},
	{"daily", cadence.Spec{Type: cadence.Daily}},
	{"twice a week", cadence.Spec{Type: cadence.XPerWeek, Count: 2}},
	{"two times a week", cadence.Spec{Type: cadence.XPerWeek, Count: 2}},
	{"three times a week", cadence.Spec{Type: cadence.XPerWeek, Count: 3}},
	{"once a week", cadence.Spec{Type: cadence.XPerWeek, Count: 1}},
	{"weekly", cadence.Spec{Type: cadence.XPerWeek, Count: 1}},
	{"on weekends", cadence.Spec{Type: cadence.SpecificDays}},
}

var perWeekRe = regexp.MustCompile(`(\d+)\s*(?:x|times)\s*(?:per|a)?\s*week`)

// focusKeywords are secondary themes worth surfacing to the model.
var focusKeywords = []string{
	"endurance", "strength", "flexibility", "technique", "theory",
	"vocabulary", "grammar", "conversation", "consistency", "speed",
}

// RefineGoal extracts concrete facts from the raw goal text.
func RefineGoal(goalText string) GoalFacts {
	text := strings.ToLower(goalText)
	facts := GoalFacts{}

	for _, entry := range activityPhrases {
		if strings.Contains(text, entry.keyword) {
			facts.Activity = entry.activity
			break
		}
	}
	if facts.Activity == "" {
		facts.Activity = fallbackActivity(goalText)
	}

	if match := durationRe.FindStringSubmatch(text); match != nil {
		value, _ := strconv.Atoi(match[1])
		if strings.HasPrefix(match[2], "h") {
			// Hour figures above 3 are almost always totals ("100
			// hours of practice"), not session lengths.
			if value <= 3 {
				facts.SessionMinutes = value * 60
			}
		} else {
			facts.SessionMinutes = value
		}
	}

	if match := perWeekRe.FindStringSubmatch(text); match != nil {
		count, _ := strconv.Atoi(match[1])
		spec := cadence.Spec{Type: cadence.XPerWeek, Count: count}.Normalize()
		facts.Cadence = &spec
	} else {
		for _, entry := range frequencyPhrases {
			if strings.Contains(text, entry.phrase) {
				spec := entry.spec
				if strings.Contains(entry.phrase, "weekend") {
					spec.Days = weekendDays()
				}
				spec = spec.Normalize()
				facts.Cadence = &spec
				break
			}
		}
	}

	for _, keyword := range focusKeywords {
		if strings.Contains(text, keyword) {
			facts.Focuses = append(facts.Focuses, keyword)
		}
	}

	return facts
}

// fallbackActivity trims filler openers and returns a short phrase of
// the goal itself when no known activity keyword matched.
func fallbackActivity(goalText string) string {
	text := strings.TrimSpace(goalText)
	lower := strings.ToLower(text)
	for _, opener := range []string{
		"i want to ", "i'd like to ", "i would like to ",
		"my goal is to ", "learn to ", "learn ", "start ", "get better at ",
	} {
		if strings.HasPrefix(lower, opener) {
			text = text[len(opener):]
			break
		}
	}

	words := strings.Fields(text)
	if len(words) > 4 {
		words = words[:4]
	}
	if len(words) == 0 {
		return "your goal"
	}
	return strings.ToLower(strings.Join(words, " "))
}

func weekendDays() []time.Weekday {
	return []time.Weekday{time.Saturday, time.Sunday}
}
