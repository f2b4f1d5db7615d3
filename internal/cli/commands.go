package cli

import (
	"github.com/spf13/cobra"

	"github.com/rileyhilliard/rtop/internal/errors"
)

// completionCmd generates shell completion scripts
var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: `Generate shell completion scripts for rtop.

Examples:
  # Bash
  rtop completion bash > /etc/bash_completion.d/rtop

  # Zsh
  rtop completion zsh > "${fpath[1]}/_rtop"

  # Fish
  rtop completion fish > ~/.config/fish/completions/rtop.fish`,
	ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(out)
		case "zsh":
			return rootCmd.GenZshCompletion(out)
		case "fish":
			return rootCmd.GenFishCompletion(out, true)
		case "powershell":
			return rootCmd.GenPowerShellCompletion(out)
		default:
			return errors.New(errors.ErrConfig,
				"Unknown shell: "+args[0],
				"Supported shells: bash, zsh, fish, powershell")
		}
	},
}

// themeNameCompletions completes theme names for commands taking one.
func themeNameCompletions(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveDefault
	}
	m, err := loadThemes()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return m.Names(), cobra.ShellCompDirectiveNoFileComp
}

// fixedCompletions completes a flag from a fixed list.
func fixedCompletions(values ...string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return values, cobra.ShellCompDirectiveNoFileComp
	}
}

// registerDisplayCompletions completes the values of the display flags.
// The flags must already be defined on cmd.
func registerDisplayCompletions(cmd *cobra.Command) {
	_ = cmd.RegisterFlagCompletionFunc("graph-symbol", fixedCompletions("braille", "block", "tty"))
	_ = cmd.RegisterFlagCompletionFunc("corners", fixedCompletions("rounded", "square"))
	_ = cmd.RegisterFlagCompletionFunc("theme", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return themeNameCompletions(cmd, nil, toComplete)
	})
}

func init() {
	rootCmd.AddCommand(completionCmd)
}
