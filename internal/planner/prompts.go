package planner

import (
	"fmt"
	"strings"

	"github.com/Akash114/SarthiAI/internal/availability"
	"github.com/Akash114/SarthiAI/internal/category"
	"github.com/Akash114/SarthiAI/internal/effort"
	"github.com/Akash114/SarthiAI/internal/plan"
	"github.com/Akash114/SarthiAI/internal/types"
)

// systemPrompt is the persona used for every plan generation call.
const systemPrompt = `You are Sarathi, a wise and supportive charioteer for personal goals. ` +
	`You guide with Supportive Autonomy: the user owns the goal, you design the path. ` +
	`You are concrete, warm, and allergic to vague advice. ` +
	`You respond only with the requested JSON.`

// promptInput carries everything the user prompt needs.
type promptInput struct {
	goalText  string
	rtype     types.ResolutionType
	band      effort.Band
	rationale string
	facts     GoalFacts
	template  Template
	profile   availability.Profile
	domain    availability.Domain
}

// buildUserPrompt renders the full generation prompt. Section order
// matters: constraints appear after the design guidance so they are the
// freshest instruction before the schema.
func buildUserPrompt(in promptInput) string {
	budget := effort.BudgetFor(in.band)
	cat := category.Infer(in.rtype)

	var b strings.Builder

	fmt.Fprintf(&b, "Create a multi-week plan for this goal: %q\n\n", in.goalText)

	b.WriteString("### CATEGORY DIAGNOSIS\n")
	fmt.Fprintf(&b, "Goal type: %s. Category: %s. Effort level: %s (%s).\n",
		displayType(in.rtype), category.DisplayName(cat), in.band, in.rationale)
	if len(in.facts.Focuses) > 0 {
		fmt.Fprintf(&b, "The user specifically mentioned: %s.\n", strings.Join(in.facts.Focuses, ", "))
	}

	b.WriteString("\n### WEEK 1 DESIGN\n")
	b.WriteString("Week 1 is a cold start: tasks must be smaller than the user thinks they need.\n")
	b.WriteString("Include one environment design task (preparing space, tools, or triggers).\n")
	b.WriteString("Never use vague verbs. \"Work on\", \"try to\" and bare \"practice\" are banned; every title names a countable action.\n")

	b.WriteString("\n### SCHEDULING RULES\n")
	b.WriteString(in.profile.PromptBlock(in.domain))

	b.WriteString("\n### HARD CONSTRAINTS\n")
	b.WriteString("Sarathi's plan reviewer rejects plans that break these; they are not suggestions:\n")
	fmt.Fprintf(&b, "- At most %d minutes of tasks on any active day.\n", budget.MinutesPerDay.Max)
	fmt.Fprintf(&b, "- At most %d total task minutes in week 1.\n", budget.WeeklyMinutes)
	fmt.Fprintf(&b, "- At most %d tasks on a single day.\n", budget.TasksPerDay.Max)
	b.WriteString("- duration_weeks between 1 and 12, with exactly one weekly_milestones entry per week.\n")

	if requirements := userRequirements(in.facts); requirements != "" {
		b.WriteString("\n### USER REQUIREMENTS\n")
		b.WriteString(requirements)
	}

	b.WriteString("\n### DOMAIN FOCUS\n")
	b.WriteString(strings.TrimSpace(in.template.PromptHint))
	b.WriteString("\n")

	b.WriteString("\n### OUTPUT\n")
	b.WriteString("Respond with only a JSON object in exactly this shape:\n")
	b.WriteString(plan.ResponseSchema)

	return b.String()
}

// userRequirements renders the facts the user stated explicitly, which
// override model preferences.
func userRequirements(facts GoalFacts) string {
	var lines []string
	if facts.SessionMinutes > 0 {
		lines = append(lines, fmt.Sprintf("- The user asked for %d minute sessions. Use that duration.", facts.SessionMinutes))
	}
	if facts.Cadence != nil {
		lines = append(lines, fmt.Sprintf("- The user asked for this frequency: %s. Use it for the main task.", facts.Cadence.String()))
	}
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

// buildRepairPrompt asks the model to revise its previous draft rather
// than start over.
func buildRepairPrompt(previousJSON string, repairInstructions string) string {
	var b strings.Builder
	b.WriteString("Your previous plan was rejected by the reviewer. Revise it.\n\n")
	b.WriteString("### PREVIOUS PLAN\n")
	b.WriteString(previousJSON)
	b.WriteString("\n\n### REQUIRED FIXES\n")
	b.WriteString(repairInstructions)
	b.WriteString("\n\nKeep everything that was not flagged. Respond with only the corrected JSON object in the same shape.")
	return b.String()
}

// buildRegeneratePrompt reissues the full generation prompt with the
// rejection appended, asking for a plan built from scratch.
func buildRegeneratePrompt(in promptInput, reason string) string {
	var b strings.Builder
	b.WriteString(buildUserPrompt(in))
	b.WriteString("\n\n### REVIEWER FEEDBACK (previous plan rejected)\n")
	b.WriteString(reason)
	b.WriteString("\nGenerate a brand-new plan from scratch that satisfies every guardrail above. ")
	b.WriteString("Do not reuse the previous plan; prioritize the user staying within budget.")
	return b.String()
}

func displayType(rtype types.ResolutionType) string {
	if rtype == types.ResolutionUnspecified {
		return "general"
	}
	return string(rtype)
}
