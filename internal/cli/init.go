package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/rileyhilliard/rtop/internal/box"
	"github.com/rileyhilliard/rtop/internal/config"
	"github.com/rileyhilliard/rtop/internal/errors"
	"github.com/rileyhilliard/rtop/internal/graph"
	"github.com/rileyhilliard/rtop/internal/logger"
	"github.com/rileyhilliard/rtop/internal/theme"
	"github.com/rileyhilliard/rtop/internal/ui"
)

var (
	initForce bool
	initYes   bool
	initFlags DisplayFlags
)

// initCmd writes a starter config.yaml
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a config file",
	Long: `Create ~/.config/rtop/config.yaml, asking which theme, graph style and
box corners you'd like. Everything else starts at its default and can be
edited in the file afterwards.

Examples:
  rtop init
  rtop init --yes --theme nord
  rtop init --force`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return Init(cmd.OutOrStdout(), InitOptions{
			Path:           cfgFile,
			Theme:          initFlags.Theme,
			GraphSymbol:    initFlags.GraphSymbol,
			Corners:        initFlags.Corners,
			Overwrite:      initForce,
			NonInteractive: initYes,
		})
	},
}

func init() {
	initCmd.Flags().StringVar(&initFlags.Theme, "theme", "", "theme to start with")
	initCmd.Flags().StringVar(&initFlags.GraphSymbol, "graph-symbol", "", "graph glyphs: braille, block or tty")
	initCmd.Flags().StringVar(&initFlags.Corners, "corners", "", "box corners: rounded or square")
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite existing config")
	initCmd.Flags().BoolVarP(&initYes, "yes", "y", false, "skip prompts and use flags or defaults")
	registerDisplayCompletions(initCmd)
	rootCmd.AddCommand(initCmd)
}

// InitOptions holds options for the init command.
type InitOptions struct {
	Path           string // Config file to write; config.DefaultPath() when empty
	Theme          string // Pre-selected theme
	GraphSymbol    string // Pre-selected graph style
	Corners        string // Pre-selected corner style
	Overwrite      bool   // Overwrite existing config without asking
	NonInteractive bool   // Skip prompts, use defaults
}

// getInitDefaults reads init defaults from the environment. CI or
// RTOP_NON_INTERACTIVE=true turn off prompts.
func getInitDefaults() InitOptions {
	nonInteractive := os.Getenv("CI") != ""
	switch strings.ToLower(os.Getenv(config.EnvPrefix + "_NON_INTERACTIVE")) {
	case "1", "true", "yes":
		nonInteractive = true
	}
	return InitOptions{
		Theme:          os.Getenv(config.EnvPrefix + "_THEME"),
		GraphSymbol:    os.Getenv(config.EnvPrefix + "_GRAPH_SYMBOL"),
		Corners:        os.Getenv(config.EnvPrefix + "_BOX_CORNERS"),
		NonInteractive: nonInteractive,
	}
}

// mergeInitOptions fills empty options from the environment. Flags win.
func mergeInitOptions(opts InitOptions) InitOptions {
	env := getInitDefaults()
	if opts.Theme == "" {
		opts.Theme = env.Theme
	}
	if opts.GraphSymbol == "" {
		opts.GraphSymbol = env.GraphSymbol
	}
	if opts.Corners == "" {
		opts.Corners = env.Corners
	}
	if env.NonInteractive {
		opts.NonInteractive = true
	}
	return opts
}

// Init creates a new config file.
func Init(w io.Writer, opts InitOptions) error {
	opts = mergeInitOptions(opts)
	configPath := opts.Path
	if configPath == "" {
		configPath = config.DefaultPath()
	}
	configPath = config.Expand(configPath)

	// Check for existing config
	if _, err := os.Stat(configPath); err == nil && !opts.Overwrite {
		if opts.NonInteractive {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Config file already exists: %s", configPath),
				"Use --force to overwrite")
		}

		var overwrite bool
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("Config file '%s' already exists. Overwrite?", configPath)).
					Value(&overwrite),
			),
		)
		if err := form.Run(); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to get user input",
				"Try running with --force to overwrite")
		}
		if !overwrite {
			fmt.Fprintln(w, "Cancelled.")
			return nil
		}
	}

	cfg := config.DefaultConfig()
	themes := theme.NewManager(logger.Default(), cfg.ThemeDirs...)
	if err := themes.Reload(); err != nil {
		logger.Default().Warn("loading themes: %v", err)
	}

	if opts.Theme != "" {
		cfg.Theme = opts.Theme
	}
	if opts.GraphSymbol != "" {
		cfg.Graph.Symbol = opts.GraphSymbol
	}
	if opts.Corners != "" {
		cfg.Box.Corners = opts.Corners
	}

	if !opts.NonInteractive {
		if err := promptInit(cfg, themes.Names()); err != nil {
			return err
		}
	}

	if _, ok := themes.Get(cfg.Theme); !ok {
		return themes.SetActive(cfg.Theme)
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}

	if err := config.Write(configPath, cfg); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("Failed to write config file: %s", configPath),
			"Check directory permissions")
	}

	fmt.Fprintf(w, "%s Created %s\n\n", ui.SymbolSuccess, configPath)
	fmt.Fprintln(w, "Next steps:")
	fmt.Fprintln(w, "  rtop               - Start the dashboard")
	fmt.Fprintln(w, "  rtop preview       - See the theme without the dashboard")
	fmt.Fprintln(w, "  rtop themes list   - Browse the other themes")
	return nil
}

// promptInit asks for the theme, graph style, corners and gradients,
// starting from the values already in cfg.
func promptInit(cfg *config.Config, themeNames []string) error {
	var styles []string
	for _, s := range graph.Styles {
		styles = append(styles, s.String())
	}
	corners := []string{box.Rounded.String(), box.Square.String()}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Theme").
				Description("You can switch while rtop runs with t / T").
				Options(huh.NewOptions(themeNames...)...).
				Value(&cfg.Theme),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Graph style").
				Description("braille is the most detailed; tty works in any font").
				Options(huh.NewOptions(styles...)...).
				Value(&cfg.Graph.Symbol),
			huh.NewSelect[string]().
				Title("Box corners").
				Options(huh.NewOptions(corners...)...).
				Value(&cfg.Box.Corners),
			huh.NewConfirm().
				Title("Color meters and graphs with gradients?").
				Value(&cfg.Colors.Gradient),
		),
	)

	if err := form.Run(); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to get user input",
			"Check terminal compatibility or use --yes to skip prompts")
	}
	return nil
}
