// Package planner turns a raw user goal into an evaluated, scheduled
// multi-week plan. Generation runs a bounded quality ladder: draft,
// evaluate, one corrective model call, then a deterministic template
// fallback. The pipeline never makes more than two model calls per
// goal and never returns without a usable plan.
package planner

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/Akash114/SarthiAI/internal/availability"
	"github.com/Akash114/SarthiAI/internal/cadence"
	"github.com/Akash114/SarthiAI/internal/effort"
	"github.com/Akash114/SarthiAI/internal/eval"
	"github.com/Akash114/SarthiAI/internal/llm"
	"github.com/Akash114/SarthiAI/internal/plan"
	"github.com/Akash114/SarthiAI/internal/types"
)

// Stage names which rung of the quality ladder produced the final plan.
type Stage string

const (
	StageGenerated   Stage = "generated"
	StageRepaired    Stage = "repaired"
	StageRegenerated Stage = "regenerated"
	StageFallback    Stage = "fallback"
)

// Request describes one goal to decompose.
type Request struct {
	// ResolutionID identifies the goal; a zero ID gets one assigned.
	ResolutionID types.ID

	// GoalText is the user's own phrasing of the goal.
	GoalText string

	// ResolutionType is the normalized goal type; unspecified is fine.
	ResolutionType types.ResolutionType

	// DurationWeeks is the user's horizon hint, or 0 to let the plan decide.
	DurationWeeks int

	// Availability is the user's raw availability profile; nil uses defaults.
	Availability *availability.RawProfile

	// Domain selects work or personal scheduling phrasing.
	Domain availability.Domain

	// WeekStart anchors week 1; the zero value means the next Monday.
	WeekStart time.Time
}

// Outcome is the result of a decomposition run.
type Outcome struct {
	// Plan is the accepted plan document.
	Plan *plan.ResolutionPlan

	// Scheduled holds every week 1 task occurrence placed on the calendar.
	Scheduled []plan.TaskDraft

	// Evaluation is the final evaluation of the accepted plan.
	Evaluation eval.Result

	// Stage names the ladder rung that produced the plan.
	Stage Stage

	// ModelCalls counts LLM completions spent on this run.
	ModelCalls int
}

// Decomposer coordinates refinement, generation, evaluation, and
// scheduling for one goal at a time.
//
// Thread safety: a Decomposer is stateless between calls and safe for
// concurrent use.
type Decomposer struct {
	provider llm.Provider
	model    string
	emitter  EventEmitter
	logger   *slog.Logger
	tracer   trace.Tracer
	now      func() time.Time
}

// DecomposerOption is a functional option for configuring a Decomposer.
type DecomposerOption func(*Decomposer)

// WithProvider sets the LLM provider. Without one, every request goes
// straight to the template fallback.
func WithProvider(p llm.Provider) DecomposerOption {
	return func(d *Decomposer) {
		d.provider = p
	}
}

// WithModel sets the model name used for generation calls.
func WithModel(model string) DecomposerOption {
	return func(d *Decomposer) {
		d.model = model
	}
}

// WithEmitter sets the event emitter.
// If not provided, creates a new DefaultEventEmitter.
func WithEmitter(e EventEmitter) DecomposerOption {
	return func(d *Decomposer) {
		d.emitter = e
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) DecomposerOption {
	return func(d *Decomposer) {
		d.logger = logger
	}
}

// WithTracer sets the tracer for decomposition spans.
func WithTracer(tracer trace.Tracer) DecomposerOption {
	return func(d *Decomposer) {
		d.tracer = tracer
	}
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) DecomposerOption {
	return func(d *Decomposer) {
		d.now = now
	}
}

// NewDecomposer creates a new Decomposer with optional configuration.
func NewDecomposer(opts ...DecomposerOption) *Decomposer {
	d := &Decomposer{
		emitter: NewDefaultEventEmitter(),
		logger:  slog.Default(),
		tracer:  noop.NewTracerProvider().Tracer("planner"),
		now:     time.Now,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Decompose runs the full pipeline for one goal.
func (d *Decomposer) Decompose(ctx context.Context, req Request) (*Outcome, error) {
	if req.GoalText == "" {
		return nil, NewInvalidParameterError("goal text cannot be empty")
	}
	if req.ResolutionID.IsZero() {
		req.ResolutionID = types.NewID()
	}
	if req.Domain == "" {
		req.Domain = availability.DomainPersonal
	}

	ctx, span := d.tracer.Start(ctx, "planner.decompose")
	defer span.End()

	profile := availability.Sanitize(req.Availability)
	facts := RefineGoal(req.GoalText)
	tpl := SelectTemplate(req.GoalText, req.ResolutionType)
	band, rationale := effort.InferBand(req.GoalText, req.ResolutionType, req.DurationWeeks)

	span.SetAttributes(
		attribute.String("resolution.type", string(req.ResolutionType)),
		attribute.String("effort.band", band.String()),
		attribute.String("template.name", tpl.Name),
	)

	logger := d.logger.With(
		slog.String("resolution_id", req.ResolutionID.String()),
		slog.String("band", band.String()),
		slog.String("template", tpl.Name),
	)
	logger.InfoContext(ctx, "plan generation started", slog.String("goal", req.GoalText))
	d.emit(ctx, NewEvent(EventGenerationStarted, req.ResolutionID, map[string]any{
		"band":     band.String(),
		"template": tpl.Name,
	}))

	in := promptInput{
		goalText:  req.GoalText,
		rtype:     req.ResolutionType,
		band:      band,
		rationale: rationale,
		facts:     facts,
		template:  tpl,
		profile:   profile,
		domain:    req.Domain,
	}
	evaluator := eval.New(band, req.ResolutionType)

	outcome := d.runLadder(ctx, logger, req, in, evaluator)

	outcome.Plan.Band = band
	outcome.Plan.BandRationale = rationale
	outcome.Plan.Evaluation = &plan.EvaluationSummary{
		Score:          outcome.Evaluation.Score,
		Passed:         outcome.Evaluation.Passed,
		RepairUsed:     outcome.Stage == StageRepaired,
		RegenerateUsed: outcome.Stage == StageRegenerated,
		FallbackUsed:   outcome.Stage == StageFallback,
		Notes:          outcome.Evaluation.Findings(),
	}

	weekStart := req.WeekStart
	if weekStart.IsZero() {
		weekStart = cadence.NextMonday(d.now())
	}
	outcome.Scheduled = scheduleWeek(outcome.Plan, req.ResolutionType, profile, req.Domain, weekStart)

	logger.InfoContext(ctx, "plan accepted",
		slog.String("stage", string(outcome.Stage)),
		slog.Int("score", outcome.Evaluation.Score),
		slog.Int("model_calls", outcome.ModelCalls),
		slog.Int("scheduled_tasks", len(outcome.Scheduled)),
	)
	d.emit(ctx, NewEvent(EventPlanScheduled, req.ResolutionID, map[string]any{
		"stage":           string(outcome.Stage),
		"scheduled_tasks": len(outcome.Scheduled),
	}))
	span.SetAttributes(attribute.String("plan.stage", string(outcome.Stage)))

	return outcome, nil
}

// runLadder walks the quality ladder. At most two model calls are
// spent: the initial draft plus either one repair (draft failed
// evaluation) or one regeneration (draft failed to parse). Whatever is
// left after that is replaced by the template fallback, which always
// succeeds.
func (d *Decomposer) runLadder(ctx context.Context, logger *slog.Logger, req Request, in promptInput, evaluator *eval.Evaluator) *Outcome {
	if d.provider == nil {
		logger.InfoContext(ctx, "no provider configured, using template fallback")
		return d.fallbackOutcome(ctx, req, in, evaluator, 0)
	}

	gen := newGenerator(d.provider, d.model)
	calls := 0

	draft, rawJSON, err := gen.generate(ctx, in)
	calls++
	if err != nil {
		logger.WarnContext(ctx, "initial draft failed", slog.Any("error", err))
		if llm.IsUnavailable(err) {
			return d.fallbackOutcome(ctx, req, in, evaluator, calls)
		}

		d.emit(ctx, NewEvent(EventRegenerated, req.ResolutionID, map[string]any{
			"reason": err.Error(),
		}))
		draft, _, err = gen.regenerate(ctx, in, "The earlier attempt was unusable: "+err.Error())
		calls++
		if err != nil {
			logger.WarnContext(ctx, "regeneration failed", slog.Any("error", err))
			return d.fallbackOutcome(ctx, req, in, evaluator, calls)
		}

		result := evaluator.Evaluate(draft)
		if !result.Passed {
			d.emitEvaluationFailed(ctx, req.ResolutionID, result)
			return d.fallbackOutcome(ctx, req, in, evaluator, calls)
		}
		d.emitPlanGenerated(ctx, req.ResolutionID, draft, result)
		return &Outcome{Plan: draft, Evaluation: result, Stage: StageRegenerated, ModelCalls: calls}
	}

	result := evaluator.Evaluate(draft)
	if result.Passed {
		d.emitPlanGenerated(ctx, req.ResolutionID, draft, result)
		return &Outcome{Plan: draft, Evaluation: result, Stage: StageGenerated, ModelCalls: calls}
	}

	logger.InfoContext(ctx, "draft failed evaluation, attempting repair",
		slog.Int("score", result.Score),
		slog.Any("findings", result.Findings()),
	)
	d.emitEvaluationFailed(ctx, req.ResolutionID, result)
	d.emit(ctx, NewEvent(EventRepairAttempted, req.ResolutionID, map[string]any{
		"score": result.Score,
	}))

	repaired, _, err := gen.repair(ctx, in, rawJSON, result.RepairInstructions)
	calls++
	if err == nil {
		repairResult := evaluator.Evaluate(repaired)
		if repairResult.Passed {
			d.emitPlanGenerated(ctx, req.ResolutionID, repaired, repairResult)
			return &Outcome{Plan: repaired, Evaluation: repairResult, Stage: StageRepaired, ModelCalls: calls}
		}
		d.emitEvaluationFailed(ctx, req.ResolutionID, repairResult)
	} else {
		logger.WarnContext(ctx, "repair attempt failed", slog.Any("error", err))
	}

	return d.fallbackOutcome(ctx, req, in, evaluator, calls)
}

func (d *Decomposer) fallbackOutcome(ctx context.Context, req Request, in promptInput, evaluator *eval.Evaluator, calls int) *Outcome {
	p := buildFallbackPlan(req.GoalText, in.band, in.facts, in.template)
	result := evaluator.Evaluate(p)

	d.emit(ctx, NewEvent(EventFallbackUsed, req.ResolutionID, map[string]any{
		"template": in.template.Name,
		"score":    result.Score,
	}))

	return &Outcome{Plan: p, Evaluation: result, Stage: StageFallback, ModelCalls: calls}
}

func (d *Decomposer) emitPlanGenerated(ctx context.Context, id types.ID, p *plan.ResolutionPlan, result eval.Result) {
	d.emit(ctx, NewEvent(EventPlanGenerated, id, map[string]any{
		"refined_goal":   p.RefinedGoal,
		"duration_weeks": p.DurationWeeks,
		"score":          result.Score,
	}))
}

func (d *Decomposer) emitEvaluationFailed(ctx context.Context, id types.ID, result eval.Result) {
	d.emit(ctx, NewEvent(EventEvaluationFailed, id, map[string]any{
		"score":    result.Score,
		"findings": result.Findings(),
	}))
}

func (d *Decomposer) emit(ctx context.Context, event Event) {
	if d.emitter == nil {
		return
	}
	// Event delivery is best effort; a closed emitter must not stop
	// plan generation.
	_ = d.emitter.Emit(ctx, event)
}
