// internal/cli/summary.go
package benjmark

import (
	"github.com/mwiater/benjmark/internal/report"
	"github.com/mwiater/benjmark/internal/results"
	"github.com/spf13/cobra"
)

var (
	summaryOverrides []string
	summaryJSON      bool
)

// summaryCmd prints per-size statistics and deltas against the first key.
var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print a statistical summary of benchmark results",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfig()
		if err := cfg.Validate(); err != nil {
			return err
		}
		s, err := cfg.ReportSettings(summaryOverrides)
		if err != nil {
			return err
		}
		datasets, err := results.Load(cfg.Root, cfg.Keys)
		if err != nil {
			return err
		}
		r, err := report.Build(datasets, s)
		if err != nil {
			return err
		}
		if summaryJSON {
			return report.WriteJSON(cmd.OutOrStdout(), r)
		}
		return report.WriteTable(cmd.OutOrStdout(), r)
	},
}

func init() {
	summaryCmd.Flags().StringArrayVar(&summaryOverrides, "set", nil, "override a report setting (name=value), repeatable")
	summaryCmd.Flags().BoolVar(&summaryJSON, "json", false, "write the summary as JSON")
	rootCmd.AddCommand(summaryCmd)
}
