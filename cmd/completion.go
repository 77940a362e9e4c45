package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xolan/chrono/internal/cli"
)

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for chrono.

Bash:
  source <(chrono completion bash)
  chrono completion bash > ~/.local/share/bash-completion/completions/chrono

Zsh:
  chrono completion zsh > ~/.zsh/completion/_chrono

Fish:
  chrono completion fish > ~/.config/fish/completions/chrono.fish

PowerShell:
  chrono completion powershell | Out-String | Invoke-Expression`,
	ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	Run: func(cmd *cobra.Command, args []string) {
		generateCompletion(cli.GetDeps(), args[0])
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)
}

// generateCompletion writes the completion script for shell to stdout
func generateCompletion(deps *cli.Deps, shell string) {
	var err error

	switch shell {
	case "bash":
		err = rootCmd.GenBashCompletion(deps.Stdout)
	case "zsh":
		err = rootCmd.GenZshCompletion(deps.Stdout)
	case "fish":
		err = rootCmd.GenFishCompletion(deps.Stdout, true)
	case "powershell":
		err = rootCmd.GenPowerShellCompletionWithDesc(deps.Stdout)
	default:
		cli.PrintError(deps, "Unsupported shell '"+shell+"'", nil, "Supported shells: bash, zsh, fish, powershell")
		return
	}

	if err != nil {
		cli.PrintError(deps, "Failed to generate "+shell+" completion", err, "")
	}
}
