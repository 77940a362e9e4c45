package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xolan/chrono/internal/cli"
	"github.com/xolan/chrono/internal/cli/handlers"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Display or manage configuration settings",
	Long: `Display the current effective configuration.

chrono works without a configuration file. Keys missing from the file keep
their defaults; a file that cannot be read is reported and ignored.

Configuration file location:
  ~/.config/chrono/config.toml          Linux
  ~/Library/Application Support/chrono  macOS
  %APPDATA%\chrono\config.toml          Windows`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		handlers.ShowConfig(cli.GetDeps())
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a commented sample config file",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		handlers.InitConfig(cli.GetDeps())
	},
}

var configResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Overwrite the config file with the defaults",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		yes, _ := cmd.Flags().GetBool("yes")
		handlers.ResetConfig(cli.GetDeps(), yes)
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configResetCmd)

	configResetCmd.Flags().BoolP("yes", "y", false, "skip confirmation prompt")
}
