package cmd

import (
	"github.com/spf13/cobra"
)

var cfgFile string

func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "synthbench",
		Short: "Benchmark harness for essay-feedback synthesis models",
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "synthbench.yaml", "config file path")
	root.AddCommand(newRunCmd())
	root.AddCommand(newListCmd())
	root.AddCommand(newReportCmd())
	root.AddCommand(newScoreCmd())
	return root
}
