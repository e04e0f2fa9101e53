// internal/cli/run_benchmarks.go
package benjmark

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/mwiater/benjmark/internal/runner"
	"github.com/spf13/cobra"
)

var runBenchmarks = runner.Run

// runBenchmarksCmd runs every configured program against every input document.
var runBenchmarksCmd = &cobra.Command{
	Use:   "benchmarks",
	Short: "Run the configured benchmark programs over the input documents",
	Long: `Runs each configured program once per input document under <root>/inputs,
writing measurement documents to <root>/<key>/. Programs run one at a time.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfig()
		if cfg.Root == "" {
			return errors.New("config must name a results root (root)")
		}

		summary, err := runBenchmarks(cmd.Context(), runner.Config{
			Root:     cfg.Root,
			Commands: cfg.Commands,
			Keys:     cfg.Keys,
			Timeout:  cfg.RunTimeout(),
		})

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%d runs, %s, %s\n",
			summary.Runs,
			color.GreenString("%d ok", len(summary.Outputs)),
			color.RedString("%d failed", len(summary.Failures)))
		for _, f := range summary.Failures {
			fmt.Fprintf(out, "  %s %s\n", color.RedString("x"), f.Error())
		}
		return err
	},
}

func init() {
	runCmd.AddCommand(runBenchmarksCmd)
}
