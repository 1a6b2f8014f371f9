// Package cadence models task repetition patterns and owns the
// day/time allocation algorithm used when a plan is scheduled onto a
// concrete week.
package cadence

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/Akash114/SarthiAI/internal/availability"
)

// Type enumerates the canonical cadence forms. Loose upstream input is
// parsed exactly once at the system boundary; downstream logic switches
// over the closed set and never re-parses free-form strings.
type Type string

const (
	Daily        Type = "daily"
	SpecificDays Type = "specific_days"
	XPerWeek     Type = "x_per_week"
	Once         Type = "once"
	Flex         Type = "flex"
)

// Spec is a normalized cadence descriptor. After ParseSpec or JSON
// decoding, Type always holds one of the five canonical forms, Count is
// within [1,7] when Type is XPerWeek, and Days is non-empty when Type
// is SpecificDays.
type Spec struct {
	Type  Type
	Count int
	Days  []time.Weekday
	Times []availability.SlotLabel
}

// Normalize coerces a spec into canonical shape. Invalid descriptors
// degrade to Flex rather than failing; upstream input is untrusted.
func (s Spec) Normalize() Spec {
	out := s
	switch out.Type {
	case Daily, Once, Flex:
		out.Count = 0
		out.Days = nil
	case XPerWeek:
		if out.Count < 1 {
			out.Count = 1
		}
		if out.Count > 7 {
			out.Count = 7
		}
		out.Days = nil
	case SpecificDays:
		if len(out.Days) == 0 {
			if out.Count > 0 {
				out.Type = XPerWeek
				return out.Normalize()
			}
			out.Type = Flex
		}
	default:
		if out.Count > 0 {
			out.Type = XPerWeek
			return out.Normalize()
		}
		if len(out.Days) > 0 {
			out.Type = SpecificDays
			return out.Normalize()
		}
		out.Type = Flex
	}
	return out
}

var countPrefixRe = regexp.MustCompile(`^(\d+)x`)

// ParseSpec normalizes a loose cadence string ("daily", "3x per week",
// "twice_per_week", "flex", ...) into a canonical Spec. Anything
// unrecognized degrades to Flex.
func ParseSpec(raw string) Spec {
	text := strings.ToLower(strings.TrimSpace(raw))
	text = strings.ReplaceAll(text, "_", " ")

	spec := Spec{Type: Flex}
	switch {
	case strings.Contains(text, "daily"):
		spec.Type = Daily
	case text == "once" || strings.Contains(text, "one time") || strings.Contains(text, "one-time"):
		spec.Type = Once
	case strings.Contains(text, "twice") || strings.Contains(text, "two per week"):
		spec = Spec{Type: XPerWeek, Count: 2}
	case strings.Contains(text, "thrice") || strings.Contains(text, "three times") || strings.Contains(text, "three per week"):
		spec = Spec{Type: XPerWeek, Count: 3}
	case countPrefixRe.MatchString(text):
		count, _ := strconv.Atoi(countPrefixRe.FindStringSubmatch(text)[1])
		spec = Spec{Type: XPerWeek, Count: count}
	case strings.Contains(text, "weekly") || strings.Contains(text, "once per week"):
		spec = Spec{Type: XPerWeek, Count: 1}
	}
	return spec.Normalize()
}

// specJSON mirrors the structured cadence object the language model
// emits: {"type": "...", "count": N, "days": [...], "times": [...]}.
type specJSON struct {
	Type         string   `json:"type"`
	Cadence      string   `json:"cadence"`
	Count        int      `json:"count"`
	TimesPerWeek int      `json:"times_per_week"`
	Days         []string `json:"days"`
	Times        []string `json:"times"`
}

// UnmarshalJSON accepts either a bare string descriptor or a structured
// object, normalizing both into the canonical form.
func (s *Spec) UnmarshalJSON(data []byte) error {
	var asString string
	if err := json.Unmarshal(data, &asString); err == nil {
		*s = ParseSpec(asString)
		return nil
	}

	var obj specJSON
	if err := json.Unmarshal(data, &obj); err != nil {
		// Unparseable cadence degrades to Flex; a malformed task field
		// must never sink the whole plan document.
		*s = Spec{Type: Flex}.Normalize()
		return nil
	}

	typeLabel := obj.Type
	if typeLabel == "" {
		typeLabel = obj.Cadence
	}
	parsed := ParseSpec(typeLabel)
	if parsed.Type == SpecificDays || strings.EqualFold(strings.TrimSpace(typeLabel), "specific_days") {
		parsed = Spec{Type: SpecificDays}
	}

	count := obj.Count
	if count == 0 {
		count = obj.TimesPerWeek
	}
	if count > 0 && (parsed.Type == Flex || parsed.Type == XPerWeek) {
		parsed.Type = XPerWeek
		parsed.Count = count
	}
	if parsed.Type == XPerWeek && parsed.Count == 0 && count > 0 {
		parsed.Count = count
	}

	for _, name := range obj.Days {
		if day, ok := availability.ParseDay(name); ok {
			parsed.Days = append(parsed.Days, day)
		}
	}
	if len(parsed.Days) > 0 && parsed.Type == Flex {
		parsed.Type = SpecificDays
	}
	for _, label := range obj.Times {
		parsed.Times = append(parsed.Times, availability.SlotLabel(strings.ToLower(label)))
	}

	*s = parsed.Normalize()
	return nil
}

// MarshalJSON emits the structured object form.
func (s Spec) MarshalJSON() ([]byte, error) {
	obj := specJSON{Type: string(s.Type)}
	if s.Count > 0 {
		obj.Count = s.Count
	}
	for _, day := range s.Days {
		obj.Days = append(obj.Days, strings.ToLower(day.String()))
	}
	for _, label := range s.Times {
		obj.Times = append(obj.Times, string(label))
	}
	return json.Marshal(obj)
}

// String renders the spec as the short human-readable form stored on
// persisted tasks.
func (s Spec) String() string {
	switch s.Type {
	case Daily:
		return "daily"
	case Once:
		return "once"
	case XPerWeek:
		return fmt.Sprintf("%dx per week", s.Count)
	case SpecificDays:
		names := make([]string, len(s.Days))
		for i, day := range s.Days {
			names[i] = day.String()
		}
		return "Specific days: " + strings.Join(names, ", ")
	default:
		return "flex"
	}
}

// IsRepeating reports whether the cadence resolves to daily practice or
// at least three sessions per week. The evaluator uses this to check
// habit and skill plans for real repetition.
func (s Spec) IsRepeating() bool {
	if s.Type == Daily {
		return true
	}
	if s.Type == XPerWeek && s.Count >= 3 {
		return true
	}
	if s.Type == SpecificDays && len(s.Days) >= 3 {
		return true
	}
	return false
}
