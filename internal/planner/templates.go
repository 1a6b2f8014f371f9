package planner

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Akash114/SarthiAI/internal/cadence"
	"github.com/Akash114/SarthiAI/internal/plan"
	"github.com/Akash114/SarthiAI/internal/types"
)

//go:embed templates.yaml
var templatesRaw []byte

// TemplateTask is one pre-written task in a specialty template.
// {goal_focus} in titles and descriptions is replaced at instantiation.
type TemplateTask struct {
	Title           string `yaml:"title"`
	Description     string `yaml:"description"`
	DurationMinutes int    `yaml:"duration_minutes"`
	Cadence         string `yaml:"cadence"`
}

// Template is a specialty plan template. Templates serve two purposes:
// their prompt hint steers model generation for matching goals, and
// their tasks form the deterministic fallback plan when generation
// fails.
type Template struct {
	Name                 string         `yaml:"name"`
	Types                []string       `yaml:"types"`
	Keywords             []string       `yaml:"keywords"`
	PromptHint           string         `yaml:"prompt_hint"`
	DefaultDurationWeeks int            `yaml:"default_duration_weeks"`
	DefaultCadence       string         `yaml:"default_cadence"`
	MilestoneFocuses     []string       `yaml:"milestone_focuses"`
	Tasks                []TemplateTask `yaml:"tasks"`
}

type templateFile struct {
	Templates []Template `yaml:"templates"`
}

var templates []Template

func init() {
	var file templateFile
	if err := yaml.Unmarshal(templatesRaw, &file); err != nil {
		panic(fmt.Sprintf("planner: embedded templates.yaml is invalid: %v", err))
	}
	if len(file.Templates) == 0 {
		panic("planner: embedded templates.yaml has no templates")
	}
	templates = file.Templates
}

// typeDefaults maps a resolution type to its default template name when
// no keyword matches.
var typeDefaults = map[types.ResolutionType]string{
	types.ResolutionHabit:    "habit",
	types.ResolutionHealth:   "fitness",
	types.ResolutionFitness:  "fitness",
	types.ResolutionSkill:    "skill_generic",
	types.ResolutionLearning: "skill_generic",
	types.ResolutionHobby:    "skill_generic",
	types.ResolutionProject:  "project",
	types.ResolutionWork:     "project",
	types.ResolutionFinance:  "project",
}

// SelectTemplate picks the specialty template for a goal. A keyword hit
// in the goal text wins; otherwise the resolution type's default is
// used, and the generic template is the terminal fallback.
func SelectTemplate(goalText string, rtype types.ResolutionType) Template {
	text := strings.ToLower(goalText)

	for _, tpl := range templates {
		for _, keyword := range tpl.Keywords {
			if strings.Contains(text, keyword) {
				return tpl
			}
		}
	}

	if name, ok := typeDefaults[rtype]; ok {
		if tpl, found := templateByName(name); found {
			return tpl
		}
	}

	tpl, _ := templateByName("generic")
	return tpl
}

func templateByName(name string) (Template, bool) {
	for _, tpl := range templates {
		if tpl.Name == name {
			return tpl, true
		}
	}
	return Template{}, false
}

// Instantiate turns the template's tasks into concrete drafts for the
// given goal focus.
func (t Template) Instantiate(goalFocus string) []plan.TaskDraft {
	drafts := make([]plan.TaskDraft, 0, len(t.Tasks))
	for _, task := range t.Tasks {
		spec := cadence.ParseSpec(task.Cadence)
		drafts = append(drafts, plan.TaskDraft{
			Title:           substituteFocus(task.Title, goalFocus),
			Description:     substituteFocus(task.Description, goalFocus),
			DurationMinutes: task.DurationMinutes,
			Cadence:         spec,
			CadenceLabel:    spec.String(),
		})
	}
	return drafts
}

func substituteFocus(text, goalFocus string) string {
	return strings.ReplaceAll(text, "{goal_focus}", goalFocus)
}
