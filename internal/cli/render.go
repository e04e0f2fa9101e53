// internal/cli/render.go
package benjmark

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/mwiater/benjmark/internal/render"
	"github.com/mwiater/benjmark/internal/settings"
	"github.com/spf13/cobra"
)

var (
	renderBarplots = render.RenderBarplots
	renderLineplot = render.RenderLineplot
)

var (
	renderOverrides []string
	renderBarsOnly  bool
	renderLineOnly  bool
)

// renderCmd draws the bar plots and the line plot for the configured keys.
var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render bar and line plots from benchmark results",
	Long: `Render reads the measurement documents under the results root and writes
grouped bar plots (one per page of sizes) followed by a single line plot.
Settings from the config file can be overridden with --set name=value.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfig()
		if err := cfg.Validate(); err != nil {
			return err
		}
		s, err := cfg.ReportSettings(renderOverrides)
		if err != nil {
			return err
		}
		bars := !renderLineOnly || renderBarsOnly
		line := !renderBarsOnly || renderLineOnly
		return runRender(cmd.OutOrStdout(), cfg.Keys, cfg.Root, s, bars, line)
	},
}

func runRender(out io.Writer, keys []string, root string, s settings.Settings, bars, line bool) error {
	ok := color.New(color.FgGreen).SprintFunc()

	if bars {
		paths, err := renderBarplots(keys, root, s)
		if err != nil {
			return fmt.Errorf("render bar plots: %w", err)
		}
		for _, p := range paths {
			fmt.Fprintf(out, "%s %s\n", ok("wrote"), p)
		}
	}
	if line {
		path, err := renderLineplot(keys, root, s)
		if err != nil {
			return fmt.Errorf("render line plot: %w", err)
		}
		fmt.Fprintf(out, "%s %s\n", ok("wrote"), path)
	}
	return nil
}

func init() {
	renderCmd.Flags().StringArrayVar(&renderOverrides, "set", nil, "override a plot setting (name=value), repeatable")
	renderCmd.Flags().BoolVar(&renderBarsOnly, "bars", false, "render only the bar plots")
	renderCmd.Flags().BoolVar(&renderLineOnly, "line", false, "render only the line plot")
	renderCmd.MarkFlagsMutuallyExclusive("bars", "line")
	rootCmd.AddCommand(renderCmd)
}
