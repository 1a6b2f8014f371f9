package planner

import (
	"context"
	"encoding/json"

	"github.com/Akash114/SarthiAI/internal/llm"
	"github.com/Akash114/SarthiAI/internal/plan"
)

const (
	defaultModel       = "gpt-4o"
	defaultTemperature = 0.7
	defaultMaxTokens   = 2000
)

// generator wraps the LLM provider for plan drafting and repair. It
// owns prompt assembly and response decoding; ladder decisions stay in
// the Decomposer.
type generator struct {
	provider    llm.Provider
	model       string
	temperature float64
	maxTokens   int
}

func newGenerator(provider llm.Provider, model string) *generator {
	if model == "" {
		model = defaultModel
	}
	return &generator{
		provider:    provider,
		model:       model,
		temperature: defaultTemperature,
		maxTokens:   defaultMaxTokens,
	}
}

// generate asks the model for a fresh plan draft. It returns the
// decoded plan and the raw JSON it was decoded from, which a later
// repair round needs verbatim.
func (g *generator) generate(ctx context.Context, in promptInput) (*plan.ResolutionPlan, string, error) {
	return g.complete(ctx, buildUserPrompt(in), in.goalText)
}

// repair asks the model to revise its previous draft using the
// evaluator's instructions.
func (g *generator) repair(ctx context.Context, in promptInput, previousJSON, instructions string) (*plan.ResolutionPlan, string, error) {
	return g.complete(ctx, buildRepairPrompt(previousJSON, instructions), in.goalText)
}

// regenerate asks for a brand-new plan, carrying the reason the
// previous attempt was rejected.
func (g *generator) regenerate(ctx context.Context, in promptInput, reason string) (*plan.ResolutionPlan, string, error) {
	return g.complete(ctx, buildRegeneratePrompt(in, reason), in.goalText)
}

func (g *generator) complete(ctx context.Context, userPrompt, fallbackTitle string) (*plan.ResolutionPlan, string, error) {
	req := llm.CompletionRequest{
		Model: g.model,
		Messages: []llm.Message{
			llm.NewSystemMessage(systemPrompt),
			llm.NewUserMessage(userPrompt),
		},
		Temperature: g.temperature,
		MaxTokens:   g.maxTokens,
	}

	resp, err := g.provider.Complete(ctx, req)
	if err != nil {
		return nil, "", WrapPlannerError(ErrorTypeGeneration, "completion failed", err)
	}

	rawJSON, err := llm.ExtractJSON(resp.Message.Content)
	if err != nil {
		return nil, "", WrapPlannerError(ErrorTypeParse, "response contained no JSON", err)
	}

	var p plan.ResolutionPlan
	if err := json.Unmarshal([]byte(rawJSON), &p); err != nil {
		return nil, "", WrapPlannerError(ErrorTypeParse, "response JSON did not match the plan shape", err)
	}

	p.Normalize(fallbackTitle)
	if err := p.Validate(); err != nil {
		return nil, "", WrapPlannerError(ErrorTypeValidation, "decoded plan is unusable", err)
	}

	return &p, rawJSON, nil
}
