// Package eval scores generated plans against the user's effort budget
// and a set of quality checks, and produces the repair instructions the
// generation pipeline feeds back to the model.
package eval

import (
	"fmt"
	"strings"
	"time"

	"github.com/Akash114/SarthiAI/internal/cadence"
	"github.com/Akash114/SarthiAI/internal/effort"
	"github.com/Akash114/SarthiAI/internal/plan"
	"github.com/Akash114/SarthiAI/internal/types"
)

// Score weights. A plan starts at a perfect score and loses points per
// finding; the floor is zero.
const (
	perfectScore        = 100
	passingScore        = 60
	penaltySevereBudget = 30
	penaltyMinorBudget  = 10
	penaltyVagueness    = 25
	penaltyCadence      = 10
	penaltyOverload     = 25

	// dailyToleranceRatio bounds the minor-overage band for the per-day
	// average. The weekly cap tolerates more drift: a couple of long
	// sessions legitimately front-load a week without sinking it.
	dailyToleranceRatio  = 0.15
	weeklyToleranceRatio = 0.25

	daysPerWeek = 7
)

// Result is the outcome of evaluating one plan.
type Result struct {
	Score              int      `json:"score"`
	Passed             bool     `json:"passed"`
	BudgetViolations   []string `json:"budget_violations,omitempty"`
	VaguenessFlags     []string `json:"vagueness_flags,omitempty"`
	CadenceIssues      []string `json:"cadence_issues,omitempty"`
	OverloadWarnings   []string `json:"overload_warnings,omitempty"`
	RepairInstructions string   `json:"repair_instructions,omitempty"`

	severeBudget bool
}

// Findings returns every finding across all categories, for logging.
func (r Result) Findings() []string {
	var all []string
	all = append(all, r.BudgetViolations...)
	all = append(all, r.VaguenessFlags...)
	all = append(all, r.CadenceIssues...)
	all = append(all, r.OverloadWarnings...)
	return all
}

// Evaluator applies the quality checks for one effort band.
type Evaluator struct {
	band  effort.Band
	rtype types.ResolutionType
}

// New creates an evaluator for the given band and resolution type.
func New(band effort.Band, rtype types.ResolutionType) *Evaluator {
	return &Evaluator{band: band, rtype: rtype}
}

// Evaluate scores the plan's opening week. It never mutates the plan.
func (e *Evaluator) Evaluate(p *plan.ResolutionPlan) Result {
	result := Result{Score: perfectScore}

	e.checkBudget(p, &result)
	e.checkVagueness(p, &result)
	e.checkCadence(p, &result)

	if result.Score < 0 {
		result.Score = 0
	}
	result.Passed = result.Score >= passingScore &&
		len(result.VaguenessFlags) == 0 &&
		!result.severeBudget
	result.RepairInstructions = buildRepairInstructions(e.band, result)
	return result
}

// checkBudget holds the plan's realized week against the band budget.
// A daily task costs its minutes every day of the week; any other
// cadence counts its minutes once, with the sessions dividing that
// block. The per-day figure is the weekly total averaged over all
// seven days. Small overshoots cost a minor penalty; anything beyond
// the tolerance band is severe.
func (e *Evaluator) checkBudget(p *plan.ResolutionPlan, result *Result) {
	budget := effort.BudgetFor(e.band)

	// Anchor on an arbitrary Monday; only day-of-week structure matters.
	weekStart := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	dayTasks := make(map[string]int)
	weeklyTotal := 0

	for _, task := range p.Week1Tasks {
		days := cadence.ExpandTargetDays(task.Cadence, weekStart, false)
		for _, day := range days {
			dayTasks[day.Format("2006-01-02")]++
		}
		if len(days) >= daysPerWeek {
			weeklyTotal += task.DurationMinutes * daysPerWeek
		} else {
			weeklyTotal += task.DurationMinutes
		}
	}
	if len(dayTasks) == 0 {
		result.BudgetViolations = append(result.BudgetViolations, "plan has no scheduled effort in week 1")
		result.Score -= penaltySevereBudget
		result.severeBudget = true
		return
	}

	avgPerDay := weeklyTotal / daysPerWeek
	dayLimit := budget.MinutesPerDay.Max
	switch {
	case float64(avgPerDay) > float64(dayLimit)*(1+dailyToleranceRatio):
		result.BudgetViolations = append(result.BudgetViolations,
			fmt.Sprintf("average of %d minutes per day exceeds the %d minute daily budget", avgPerDay, dayLimit))
		result.Score -= penaltySevereBudget
		result.severeBudget = true
	case avgPerDay > dayLimit:
		result.BudgetViolations = append(result.BudgetViolations,
			fmt.Sprintf("average of %d minutes per day is slightly over the %d minute daily budget", avgPerDay, dayLimit))
		result.Score -= penaltyMinorBudget
	}

	switch {
	case float64(weeklyTotal) > float64(budget.WeeklyMinutes)*(1+weeklyToleranceRatio):
		result.BudgetViolations = append(result.BudgetViolations,
			fmt.Sprintf("%d total weekly minutes exceeds the %d minute weekly budget", weeklyTotal, budget.WeeklyMinutes))
		result.Score -= penaltySevereBudget
		result.severeBudget = true
	case weeklyTotal > budget.WeeklyMinutes:
		result.BudgetViolations = append(result.BudgetViolations,
			fmt.Sprintf("%d total weekly minutes is slightly over the %d minute weekly budget", weeklyTotal, budget.WeeklyMinutes))
		result.Score -= penaltyMinorBudget
	}

	for key, count := range dayTasks {
		if count > budget.TasksPerDay.Max+1 {
			result.OverloadWarnings = append(result.OverloadWarnings,
				fmt.Sprintf("%d tasks stack on %s; spread them across the week", count, key))
			result.Score -= penaltyOverload
			break
		}
	}
}

// vaguePhrases are openers that signal an unmeasurable task. A title
// starting with one and carrying no number is flagged.
var vaguePhrases = []string{
	"work on",
	"try to",
	"think about",
	"look into",
	"get better at",
	"spend some time",
	"focus on",
	"keep practicing",
	"continue",
}

// bareVerbs are single-word titles with no actionable content at all.
var bareVerbs = map[string]bool{
	"study": true, "practice": true, "exercise": true,
	"read": true, "write": true, "train": true, "research": true,
}

// genericOpeners lead titles that need a number or qualifier to be
// checkable as done or not done. A title of three words or fewer
// starting with one of these and carrying no digit is flagged.
var genericOpeners = map[string]bool{
	"study": true, "practice": true, "exercise": true, "read": true,
	"write": true, "train": true, "research": true, "learn": true,
	"do": true, "play": true, "review": true, "improve": true,
}

func (e *Evaluator) checkVagueness(p *plan.ResolutionPlan, result *Result) {
	for _, task := range p.Week1Tasks {
		if flag, vague := vagueTitle(task.Title); vague {
			result.VaguenessFlags = append(result.VaguenessFlags, flag)
			result.Score -= penaltyVagueness
		}
	}
}

func vagueTitle(title string) (string, bool) {
	lower := strings.ToLower(strings.TrimSpace(title))
	if lower == "" {
		return "a task has an empty title", true
	}
	if bareVerbs[lower] {
		return fmt.Sprintf("task %q names an activity but no concrete action", title), true
	}
	for _, phrase := range vaguePhrases {
		if strings.HasPrefix(lower, phrase) && !containsDigit(lower) {
			return fmt.Sprintf("task %q starts with %q and has no measurable target", title, phrase), true
		}
	}
	words := strings.Fields(lower)
	if len(words) <= 3 && genericOpeners[words[0]] && !containsDigit(lower) {
		return fmt.Sprintf("task %q is too generic; name a measurable target", title), true
	}
	return "", false
}

func containsDigit(s string) bool {
	for _, r := range s {
		if r >= '0' && r <= '9' {
			return true
		}
	}
	return false
}

// checkCadence requires real repetition for repetition-oriented goals:
// a habit or skill plan whose week 1 has no task at three or more
// sessions gets flagged.
func (e *Evaluator) checkCadence(p *plan.ResolutionPlan, result *Result) {
	if !e.rtype.IsRepetitionOriented() {
		return
	}
	for _, task := range p.Week1Tasks {
		if task.Cadence.IsRepeating() {
			return
		}
	}
	result.CadenceIssues = append(result.CadenceIssues,
		fmt.Sprintf("a %s goal needs at least one task repeating 3x per week or more", e.rtype))
	result.Score -= penaltyCadence
}

// buildRepairInstructions turns the findings into the directive text
// sent back to the model on a repair attempt.
func buildRepairInstructions(band effort.Band, result Result) string {
	if result.Passed || len(result.Findings()) == 0 {
		return ""
	}

	budget := effort.BudgetFor(band)
	var b strings.Builder
	b.WriteString("Revise the plan to fix these problems:\n")
	for _, finding := range result.Findings() {
		fmt.Fprintf(&b, "- %s\n", finding)
	}
	fmt.Fprintf(&b, "Keep each active day at or under %d minutes and the whole week at or under %d minutes.\n",
		budget.MinutesPerDay.Max, budget.WeeklyMinutes)
	b.WriteString("Every task title must name a concrete, countable action.")
	return b.String()
}
