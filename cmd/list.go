package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/markm8/synthbench/internal/config"
	"github.com/markm8/synthbench/internal/corpus"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List configured models, criteria, and scenarios",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			fmt.Println("Models:")
			for _, m := range cfg.Models {
				fmt.Printf("  - %s\n", m)
			}
			fmt.Println("\nCriteria:")
			for _, c := range cfg.Criteria {
				fmt.Printf("  - %s [%g-%g, threshold %.2f]\n", c.Name, c.Scale.Min, c.Scale.Max, c.Threshold)
			}
			scenarios, err := corpus.Load(cfg.Corpus)
			if err != nil {
				return err
			}
			fmt.Println("\nScenarios:")
			for _, s := range scenarios {
				fmt.Printf("  - %s: %s (%d graders)\n", s.ID, s.EssayTitle, len(s.Graders))
			}
			return nil
		},
	}
}
