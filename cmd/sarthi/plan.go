package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Akash114/SarthiAI/internal/availability"
	"github.com/Akash114/SarthiAI/internal/llm"
	"github.com/Akash114/SarthiAI/internal/llm/providers"
	"github.com/Akash114/SarthiAI/internal/observability"
	"github.com/Akash114/SarthiAI/internal/planner"
	"github.com/Akash114/SarthiAI/internal/types"
)

var (
	planType     string
	planWeeks    int
	planDomain   string
	planWorkMode bool
)

var planCmd = &cobra.Command{
	Use:   "plan <goal text>",
	Short: "Decompose a goal into a scheduled weekly plan",
	Long: `Decompose a free-text goal into a multi-week plan with concrete,
scheduled first-week tasks, and print the result as JSON.

Without a configured model provider the plan comes from the built-in
templates, so the command works offline.

Examples:

  sarthi plan "learn guitar, 20 minutes a day"
  sarthi plan --type fitness --weeks 8 "run a 5k in spring"
  sarthi plan --domain work "ship the onboarding revamp"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPlan,
}

func init() {
	planCmd.Flags().StringVarP(&planType, "type", "t", "", "Goal type (habit, health, fitness, skill, learning, project, work, hobby, finance)")
	planCmd.Flags().IntVarP(&planWeeks, "weeks", "w", 0, "Plan horizon in weeks (default: let the plan decide)")
	planCmd.Flags().StringVar(&planDomain, "domain", "personal", "Scheduling domain: personal or work")
	planCmd.Flags().BoolVar(&planWorkMode, "work-mode", false, "Shift weekday tasks after working hours")
}

func runPlan(cmd *cobra.Command, args []string) error {
	goalText := strings.TrimSpace(strings.Join(args, " "))

	tp, err := observability.InitTracing(cmd.Context(), cfg.Tracing)
	if err != nil {
		return err
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = observability.ShutdownTracing(ctx, tp)
	}()

	opts := []planner.DecomposerOption{
		planner.WithLogger(slog.Default()),
		planner.WithTracer(tp.Tracer("sarthi/planner")),
	}
	if provider := buildProvider(); provider != nil {
		opts = append(opts, planner.WithProvider(provider))
	}
	decomposer := planner.NewDecomposer(opts...)

	domain := availability.DomainPersonal
	if strings.EqualFold(planDomain, string(availability.DomainWork)) {
		domain = availability.DomainWork
	}

	req := planner.Request{
		GoalText:       goalText,
		ResolutionType: types.NormalizeResolutionType(planType),
		DurationWeeks:  planWeeks,
		Domain:         domain,
	}
	if planWorkMode {
		workMode := true
		req.Availability = &availability.RawProfile{WorkModeEnabled: &workMode}
	}

	outcome, err := decomposer.Decompose(cmd.Context(), req)
	if err != nil {
		return err
	}

	output := struct {
		Plan       any    `json:"plan"`
		Scheduled  any    `json:"scheduled_tasks"`
		Evaluation any    `json:"evaluation"`
		Stage      string `json:"stage"`
		ModelCalls int    `json:"model_calls"`
	}{
		Plan:       outcome.Plan,
		Scheduled:  outcome.Scheduled,
		Evaluation: outcome.Plan.Evaluation,
		Stage:      string(outcome.Stage),
		ModelCalls: outcome.ModelCalls,
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

// buildProvider creates the configured default provider, or nil to run
// on template fallbacks only.
func buildProvider() llm.Provider {
	pc, ok := cfg.DefaultProviderConfig()
	if !ok {
		return nil
	}

	provider, err := providers.NewProvider(pc)
	if err != nil {
		if llm.IsUnavailable(err) {
			slog.Warn("model provider unavailable, using template fallbacks", slog.Any("error", err))
			return nil
		}
		fmt.Fprintf(os.Stderr, "Warning: provider %s unusable: %v\n", pc.Type, err)
		return nil
	}
	return provider
}
