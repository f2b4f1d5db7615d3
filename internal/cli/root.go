package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rileyhilliard/rtop/internal/color"
	"github.com/rileyhilliard/rtop/internal/config"
	"github.com/rileyhilliard/rtop/internal/errors"
	"github.com/rileyhilliard/rtop/internal/logger"
	"github.com/rileyhilliard/rtop/internal/theme"
	"github.com/rileyhilliard/rtop/internal/util"
)

// Global flags
var (
	cfgFile     string
	noColor     bool
	logFile     string
	runDuration string
	rootDisplay DisplayFlags
)

// rootCmd runs the dashboard when called without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "rtop",
	Short: "Themed terminal system monitor",
	Long: `rtop draws live CPU, memory, network and disk graphs in your terminal,
colored by themes you can edit and reload while it runs.

Run without a subcommand to start the dashboard.

Examples:
  rtop
  rtop --theme nord --graph-symbol block
  rtop --duration 5m
  rtop themes list
  rtop preview --theme dracula`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		runFor, err := ParseRunDuration(runDuration)
		if err != nil {
			return err
		}
		return dashboardCommand(rootDisplay, runFor)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.config/rtop/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "where the dashboard writes its log (default ~/.local/state/rtop/rtop.log)")
	AddDisplayFlags(rootCmd, &rootDisplay)
	rootCmd.Flags().StringVar(&runDuration, "duration", "", "quit after this long (e.g., 30s, 5m, or plain seconds)")
	registerDisplayCompletions(rootCmd)
}

// Execute runs the root command and exits with a non-zero status on error.
func Execute() {
	err := rootCmd.Execute()
	if err == nil {
		return
	}

	if code, ok := errors.GetExitCode(err); ok {
		os.Exit(code)
	}

	fmt.Fprint(os.Stderr, formatError(err))
	os.Exit(1)
}

// formatError renders err for stderr, adding a suggestion for mistyped
// commands.
func formatError(err error) string {
	if isUnknownCommandError(err) {
		msg := "✗ " + err.Error() + "\n"
		if name := extractUnknownCommand(err); name != "" {
			if similar := util.SuggestSimilar(name, commandNames(), 3); len(similar) > 0 {
				msg += fmt.Sprintf("\n  Did you mean '%s'?\n", similar[0])
			}
		}
		return msg + "\n  Run 'rtop --help' to see what's available.\n"
	}

	msg := err.Error()
	if !strings.HasSuffix(msg, "\n") {
		msg += "\n"
	}
	return msg
}

// isUnknownCommandError reports whether cobra rejected the command line
// itself rather than a command failing.
func isUnknownCommandError(err error) bool {
	msg := err.Error()
	return strings.HasPrefix(msg, "unknown command") ||
		strings.HasPrefix(msg, "unknown flag") ||
		strings.HasPrefix(msg, "unknown shorthand flag")
}

// extractUnknownCommand pulls the command name out of cobra's
// `unknown command "foo" for "rtop"` message.
func extractUnknownCommand(err error) string {
	msg := err.Error()
	start := strings.Index(msg, `"`)
	if start == -1 {
		return ""
	}
	end := strings.Index(msg[start+1:], `"`)
	if end == -1 {
		return ""
	}
	return msg[start+1 : start+1+end]
}

func commandNames() []string {
	var names []string
	for _, c := range rootCmd.Commands() {
		if c.Hidden {
			continue
		}
		names = append(names, c.Name())
		names = append(names, c.Aliases...)
	}
	return names
}

// loadConfig loads the config file, applies display flag overrides, and
// validates the result. It also settles whether output is colored.
// Returns the config and the path it came from ("" for defaults).
func loadConfig(display *DisplayFlags) (*config.Config, string, error) {
	cfg, path, err := config.LoadOrDefault(cfgFile)
	if err != nil {
		return nil, "", err
	}

	if display != nil {
		if err := display.Apply(cfg); err != nil {
			return nil, "", err
		}
	}

	if err := config.Validate(cfg); err != nil {
		return nil, "", err
	}

	color.ApplyProfile(cfg.Colors.Enabled && !noColor)
	return cfg, path, nil
}

// newThemeManager loads the built-in themes plus every theme file in the
// configured directories, and activates the configured theme.
func newThemeManager(cfg *config.Config, log logger.Logger) (*theme.Manager, error) {
	m := theme.NewManager(log, cfg.ThemeDirs...)
	if err := m.Reload(); err != nil {
		log.Warn("loading themes: %v", err)
	}
	if err := m.SetActive(cfg.Theme); err != nil {
		return nil, err
	}
	return m, nil
}
