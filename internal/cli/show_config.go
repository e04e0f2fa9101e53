// internal/cli/show_config.go
package benjmark

import (
	"github.com/mwiater/benjmark/internal/appconfig"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var showConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Show config settings",
	Long:  `Show config settings ensuring that the JSON configs are loaded properly and overridden by flags accordingly.`,
	Run: func(cmd *cobra.Command, args []string) {
		appconfig.ShowConfig(cmd.OutOrStdout(), viper.ConfigFileUsed(), *getConfig(), DebugEnabled())
	},
}

func init() {
	showCmd.AddCommand(showConfigCmd)
}
