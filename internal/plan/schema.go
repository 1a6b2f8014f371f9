package plan

// ResponseSchema is the output contract included verbatim in generation
// prompts. The decoder tolerates cadence as either a bare string or a
// structured object, so the schema shows the simple form.
const ResponseSchema = `{
  "refined_goal": "specific, measurable version of the goal",
  "why_it_matters": "one sentence connecting the goal to the user's motivation",
  "duration_weeks": 4,
  "weekly_milestones": [
    {"week": 1, "focus": "what this week builds"}
  ],
  "week_1_tasks": [
    {
      "title": "concrete action with a number in it",
      "description": "how to do it, one or two sentences",
      "note": "optional setup tip",
      "duration_minutes": 30,
      "cadence": "3x per week"
    }
  ]
}`

// SuggestionSchema is the output contract for the weekly rolling-wave
// prompt, which proposes a micro-resolution for next week rather than
// a full plan.
const SuggestionSchema = `{
  "title": "short theme for the week",
  "rationale": "one sentence on why this week is sized this way",
  "tasks": [
    {
      "title": "concrete action with a number in it",
      "description": "how to do it, one sentence",
      "duration_minutes": 30,
      "time_of_day": "morning | afternoon | evening"
    }
  ]
}`
