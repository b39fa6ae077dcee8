package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/markm8/synthbench/internal/backend"
	"github.com/markm8/synthbench/internal/bench"
	"github.com/markm8/synthbench/internal/config"
	"github.com/markm8/synthbench/internal/corpus"
	"github.com/markm8/synthbench/internal/judge"
	"github.com/markm8/synthbench/internal/report"
	"github.com/markm8/synthbench/internal/result"
)

var (
	flagModel     string
	flagScenario  string
	flagParallel  int
	flagRunFormat string
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Execute a benchmark run",
		RunE:  runBenchmark,
	}
	cmd.Flags().StringVar(&flagModel, "model", "", "filter to a single candidate model")
	cmd.Flags().StringVar(&flagScenario, "scenario", "", "filter to a single scenario id")
	cmd.Flags().IntVar(&flagParallel, "parallel", 1, "max concurrent cells")
	cmd.Flags().StringVar(&flagRunFormat, "format", "table", "report format (table, markdown, json)")
	return cmd
}

func runBenchmark(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	// Secrets are checked before anything touches the network or disk.
	secrets, err := config.LoadSecrets(ctx)
	if err != nil {
		return err
	}
	judgeModel := cfg.Judge.Model
	if secrets.JudgeModel != "" {
		judgeModel = secrets.JudgeModel
	}

	scenarios, err := corpus.Load(cfg.Corpus)
	if err != nil {
		return err
	}

	models := filterModels(cfg.Models, flagModel)
	scenarios = filterScenarios(scenarios, flagScenario)
	if len(models) == 0 {
		return fmt.Errorf("no models match filter %q", flagModel)
	}
	if len(scenarios) == 0 {
		return fmt.Errorf("no scenarios match filter %q", flagScenario)
	}

	runDir, err := result.CreateRunDir(cfg.Results.Dir)
	if err != nil {
		return err
	}
	fmt.Printf("Run directory: %s\n", runDir)

	genClient := backend.NewClient(secrets.APIKey, secrets.BaseURL,
		time.Duration(cfg.Generation.TimeoutSeconds)*time.Second)
	judgeClient := backend.NewClient(secrets.APIKey, secrets.BaseURL,
		time.Duration(cfg.Judge.TimeoutSeconds)*time.Second)

	orch := &bench.Orchestrator{
		Gen:          genClient,
		Judge:        judge.NewAdapter(judgeClient, judgeModel, *cfg.Judge.Temperature, cfg.Judge.Samples),
		Temperature:  *cfg.Generation.Temperature,
		Instructions: cfg.Generation.Instructions,
		Parallel:     flagParallel,
	}

	cells := orch.Run(ctx, scenarios, models, cfg.Criteria)

	for _, modelCells := range cells {
		for i := range modelCells {
			if err := result.WriteCell(runDir, &modelCells[i]); err != nil {
				return err
			}
		}
	}

	fmt.Println("\n--- Results ---")
	return report.Generate(runDir, flagRunFormat, os.Stdout, cfg.Pricing)
}

func filterModels(models []string, name string) []string {
	if name == "" {
		return models
	}
	var filtered []string
	for _, m := range models {
		if m == name {
			filtered = append(filtered, m)
		}
	}
	return filtered
}

func filterScenarios(scenarios []corpus.Scenario, id string) []corpus.Scenario {
	if id == "" {
		return scenarios
	}
	var filtered []corpus.Scenario
	for _, s := range scenarios {
		if s.ID == id {
			filtered = append(filtered, s)
		}
	}
	return filtered
}
