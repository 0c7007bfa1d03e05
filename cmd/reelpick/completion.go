package main

import (
	"os"

	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for reelpick.

To load completions:

Bash:
  $ source <(reelpick completion bash)
  # To load completions for each session, execute once:
  $ reelpick completion bash > /etc/bash_completion.d/reelpick

Zsh:
  $ source <(reelpick completion zsh)
  # To load completions for each session, execute once:
  $ reelpick completion zsh > "${fpath[1]}/_reelpick"

Fish:
  $ reelpick completion fish | source
  # To load completions for each session, execute once:
  $ reelpick completion fish > ~/.config/fish/completions/reelpick.fish

PowerShell:
  PS> reelpick completion powershell | Out-String | Invoke-Expression
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(os.Stdout)
		case "zsh":
			return rootCmd.GenZshCompletion(os.Stdout)
		case "fish":
			return rootCmd.GenFishCompletion(os.Stdout, true)
		case "powershell":
			return rootCmd.GenPowerShellCompletionWithDesc(os.Stdout)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)
}
