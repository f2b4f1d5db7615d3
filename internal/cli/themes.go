package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/rileyhilliard/rtop/internal/config"
	"github.com/rileyhilliard/rtop/internal/errors"
	"github.com/rileyhilliard/rtop/internal/logger"
	"github.com/rileyhilliard/rtop/internal/meter"
	"github.com/rileyhilliard/rtop/internal/theme"
	"github.com/rileyhilliard/rtop/internal/ui"
	"github.com/rileyhilliard/rtop/internal/util"
)

// gradientWidth is how many cells 'themes show' uses per gradient.
const gradientWidth = 32

var exportForce bool

var themesCmd = &cobra.Command{
	Use:     "themes",
	Aliases: []string{"theme"},
	Short:   "List, inspect, export and check themes",
	Long: `Manage rtop themes.

Built-in themes are always available. Theme files (*.theme or *.toml) in the
directories listed under 'theme_dirs' are loaded on startup and whenever you
press r in the dashboard. A file's name, without extension, is the theme name.

Examples:
  rtop themes list
  rtop themes show nord
  rtop themes export dracula ~/.config/rtop/themes/mine.theme
  rtop themes check ~/.config/rtop/themes/mine.theme
  rtop themes use mine`,
}

var themesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available themes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := loadThemes()
		if err != nil {
			return err
		}
		return listThemes(cmd.OutOrStdout(), m)
	},
}

var themesShowCmd = &cobra.Command{
	Use:   "show [name]",
	Short: "Show a theme's colors and gradients",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := loadThemes()
		if err != nil {
			return err
		}
		th, err := pickTheme(m, args)
		if err != nil {
			return err
		}
		return showTheme(cmd.OutOrStdout(), th)
	},
}

var themesExportCmd = &cobra.Command{
	Use:   "export <name> [file]",
	Short: "Write a theme as an editable theme file",
	Long: `Write a theme in theme file format, to stdout or to a file.

Exporting a built-in theme is the quickest way to start your own: export it
into a theme directory under a new file name and edit the colors.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := loadThemes()
		if err != nil {
			return err
		}
		th, err := pickTheme(m, args[:1])
		if err != nil {
			return err
		}
		if len(args) == 1 {
			return th.Encode(cmd.OutOrStdout())
		}
		return exportTheme(cmd.OutOrStdout(), th, args[1], exportForce)
	},
}

var themesCheckCmd = &cobra.Command{
	Use:   "check <file>...",
	Short: "Validate theme files",
	Long: `Parse theme files and report problems.

Invalid colors are reported per key; rtop would fall back to the default
theme's color for them. A file that isn't valid TOML fails the check.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return checkThemes(cmd.OutOrStdout(), args)
	},
}

var themesUseCmd = &cobra.Command{
	Use:   "use <name>",
	Short: "Make a theme the default in your config",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := loadThemes()
		if err != nil {
			return err
		}
		path := cfgFile
		if path == "" {
			path = config.DefaultPath()
		}
		return useTheme(cmd.OutOrStdout(), m, args[0], path)
	},
}

func init() {
	themesShowCmd.ValidArgsFunction = themeNameCompletions
	themesExportCmd.ValidArgsFunction = themeNameCompletions
	themesUseCmd.ValidArgsFunction = themeNameCompletions

	themesExportCmd.Flags().BoolVarP(&exportForce, "force", "f", false, "overwrite an existing file")

	themesCmd.AddCommand(themesListCmd)
	themesCmd.AddCommand(themesShowCmd)
	themesCmd.AddCommand(themesExportCmd)
	themesCmd.AddCommand(themesCheckCmd)
	themesCmd.AddCommand(themesUseCmd)
	rootCmd.AddCommand(themesCmd)
}

// loadThemes builds a theme manager from the config without failing on an
// unknown active theme, so the theme commands can still list what exists.
func loadThemes() (*theme.Manager, error) {
	cfg, _, err := loadConfig(nil)
	if err != nil {
		return nil, err
	}
	log := logger.Default()
	m := theme.NewManager(log, cfg.ThemeDirs...)
	if err := m.Reload(); err != nil {
		log.Warn("loading themes: %v", err)
	}
	if err := m.SetActive(cfg.Theme); err != nil {
		log.Warn("%s", errors.Message(err))
	}
	return m, nil
}

// pickTheme returns the named theme, or the active one when args is empty.
func pickTheme(m *theme.Manager, args []string) (*theme.Theme, error) {
	if len(args) == 0 {
		return m.Current(), nil
	}
	if th, ok := m.Get(args[0]); ok {
		return th, nil
	}
	// SetActive fails with the not-found error and its suggestions.
	return nil, m.SetActive(args[0])
}

// listThemes prints a table of themes with the active one marked.
func listThemes(w io.Writer, m *theme.Manager) error {
	active := m.Current().Name()

	var rows [][]string
	for _, name := range m.Names() {
		th, _ := m.Get(name)
		mark := " "
		if name == active {
			mark = ui.SymbolComplete
		}
		rows = append(rows, []string{mark, name, th.DisplayName(), themeSource(th)})
	}

	columns := []ui.TableColumn{
		{Title: "", Width: 1},
		{Title: "NAME", Width: columnWidth(rows, 1, 12)},
		{Title: "DISPLAY NAME", Width: columnWidth(rows, 2, 14)},
		{Title: "SOURCE", Width: columnWidth(rows, 3, 10)},
	}
	_, err := fmt.Fprintln(w, ui.RenderSimpleTable(columns, rows))
	return err
}

func themeSource(th *theme.Theme) string {
	if th.Source() == "" {
		return "built-in"
	}
	return th.Source()
}

// columnWidth sizes a column to its widest cell, at least min.
func columnWidth(rows [][]string, col, min int) int {
	width := min
	for _, r := range rows {
		if n := lipgloss.Width(r[col]); n > width {
			width = n
		}
	}
	return width
}

// showTheme prints every color role and a full-scale meter per gradient.
func showTheme(w io.Writer, th *theme.Theme) error {
	label := lipgloss.NewStyle().Foreground(th.Color(theme.KeyTitle).Lipgloss()).Bold(true)
	muted := lipgloss.NewStyle().Foreground(th.Color(theme.KeyInactiveFG).Lipgloss())

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", label.Render(th.DisplayName()), muted.Render("("+themeSource(th)+")"))

	b.WriteString("\nColors\n")
	for _, k := range theme.RoleKeys {
		fmt.Fprintf(&b, "  %-12s %s\n", k, ui.ColorLabel(th.Color(k)))
	}

	b.WriteString("\nGradients\n")
	bg := th.Color(theme.KeyMeterBG)
	for _, m := range theme.Metrics {
		var hexes []string
		for _, c := range th.Anchors(m) {
			hexes = append(hexes, c.Hex())
		}
		cells := meter.RenderSegmented(100, gradientWidth, th.Gradient(m))
		fmt.Fprintf(&b, "  %-12s %s %s\n", m, meter.Styled(cells, bg), muted.Render(strings.Join(hexes, " → ")))
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// exportTheme writes th to path. Existing files are kept unless force is set.
func exportTheme(w io.Writer, th *theme.Theme, path string, force bool) error {
	path = config.Expand(path)
	if _, err := os.Stat(path); err == nil && !force {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("%s already exists", path),
			"Use --force to overwrite it, or pick another file name.")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("Can't create %s", filepath.Dir(path)),
			"Check directory permissions.")
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("Can't write %s", path),
			"Check directory permissions.")
	}
	if err := th.Encode(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("Can't write %s", path),
			"Check the disk isn't full.")
	}

	fmt.Fprintf(w, "%s Exported %s to %s\n", ui.SymbolSuccess, th.Name(), path)
	return nil
}

// checkThemes parses each file and reports warnings and failures. Returns
// an ExitError when any file fails to parse.
func checkThemes(w io.Writer, paths []string) error {
	failed := 0
	for _, path := range paths {
		log := logger.NewBufferLogger()
		th, err := theme.LoadFile(path, log)
		if err != nil {
			failed++
			fmt.Fprintf(w, "%s %s\n  %s\n", ui.SymbolFail, path, errors.Message(err))
			continue
		}

		warnings := log.AtLevel("warn")
		if len(warnings) == 0 {
			fmt.Fprintf(w, "%s %s (%s)\n", ui.SymbolSuccess, path, th.DisplayName())
			continue
		}
		fmt.Fprintf(w, "%s %s (%s), %d %s\n", ui.SymbolSkipped, path, th.DisplayName(),
			len(warnings), util.Pluralize(len(warnings), "warning", "warnings"))
		for _, msg := range warnings {
			fmt.Fprintf(w, "  %s\n", msg)
		}
	}

	if failed > 0 {
		return errors.NewExitError(1)
	}
	return nil
}

// useTheme records name as the startup theme in the config at path,
// creating the config with defaults if it doesn't exist.
func useTheme(w io.Writer, m *theme.Manager, name, path string) error {
	if _, ok := m.Get(name); !ok {
		return m.SetActive(name)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := config.DefaultConfig()
		cfg.Theme = name
		if err := config.Write(path, cfg); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to create config", "Check directory permissions.")
		}
	} else if err := config.SetTheme(path, name); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("Failed to update %s", path),
			"Check that it's valid YAML, or set 'theme' by hand.")
	}

	fmt.Fprintf(w, "%s Theme set to %s in %s\n", ui.SymbolSuccess, name, path)
	return nil
}
