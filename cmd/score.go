package cmd

import (
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"

	"github.com/markm8/synthbench/internal/backend"
	"github.com/markm8/synthbench/internal/bench"
	"github.com/markm8/synthbench/internal/config"
	"github.com/markm8/synthbench/internal/corpus"
	"github.com/markm8/synthbench/internal/judge"
	"github.com/markm8/synthbench/internal/prompt"
	"github.com/markm8/synthbench/internal/result"
)

func newScoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "score [run-dir]",
		Short: "Re-judge an existing run",
		Long:  "Walk a run directory and re-run the judge on each cell's stored generation, updating the cell files in place. Generations are never re-run.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runDir := args[0]
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
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
			digests := make(map[string]string, len(scenarios))
			for i := range scenarios {
				p, err := prompt.Assemble(&scenarios[i], cfg.Generation.Instructions)
				if err != nil {
					return err
				}
				digests[scenarios[i].ID] = p.GraderDigest
			}

			cells, err := result.CollectCells(runDir)
			if err != nil {
				return err
			}

			judgeClient := backend.NewClient(secrets.APIKey, secrets.BaseURL,
				time.Duration(cfg.Judge.TimeoutSeconds)*time.Second)
			adapter := judge.NewAdapter(judgeClient, judgeModel, *cfg.Judge.Temperature, cfg.Judge.Samples)

			for _, modelCells := range cells {
				for i := range modelCells {
					cell := &modelCells[i]
					if cell.Failed() || cell.Generation == nil {
						continue
					}
					digest, ok := digests[cell.ScenarioID]
					if !ok {
						log.Printf("skipping %s x %s: scenario not in corpus", cell.Model, cell.ScenarioID)
						continue
					}

					fmt.Printf("Scoring %s x %s...\n", cell.Model, cell.ScenarioID)
					scores, err := adapter.Score(ctx, cfg.Criteria, digest, cell.Generation.Content)
					if err != nil && len(scores) == 0 {
						log.Printf("  judge failed: %v", err)
						continue
					}

					for _, old := range cell.Scores {
						for _, now := range scores {
							if now.Criterion == old.Criterion {
								fmt.Printf("  %s: %.2f -> %.2f\n", old.Criterion, old.Score, now.Score)
							}
						}
					}
					cell.Scores = scores
					cell.JudgeFailures = bench.FailureMessages(err)
					if err != nil {
						log.Printf("  partial judge failure: %v", err)
					}

					if err := result.WriteCell(runDir, cell); err != nil {
						log.Printf("  failed to write cell: %v", err)
					}
				}
			}
			return nil
		},
	}
}
