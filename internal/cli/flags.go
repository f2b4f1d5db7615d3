package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rileyhilliard/rtop/internal/config"
	"github.com/rileyhilliard/rtop/internal/errors"
)

// DisplayFlags holds the command-line overrides for how graphs, boxes and
// themes are drawn. They take precedence over the config file.
type DisplayFlags struct {
	Theme       string
	GraphSymbol string
	Corners     string
	Interval    string
	NoGradient  bool
}

// AddDisplayFlags registers --theme, --graph-symbol, --corners, --interval
// and --no-gradient on a command.
func AddDisplayFlags(cmd *cobra.Command, flags *DisplayFlags) {
	cmd.Flags().StringVar(&flags.Theme, "theme", "", "theme to start with (see 'rtop themes list')")
	cmd.Flags().StringVar(&flags.GraphSymbol, "graph-symbol", "", "graph glyphs: braille, block or tty")
	cmd.Flags().StringVar(&flags.Corners, "corners", "", "box corners: rounded or square")
	cmd.Flags().StringVar(&flags.Interval, "interval", "", "refresh interval (e.g., 1s, 500ms)")
	cmd.Flags().BoolVar(&flags.NoGradient, "no-gradient", false, "color meters and graphs with one color per metric")
}

// Apply overlays the flags that were set onto cfg. Values are checked later
// by config.Validate.
func (f DisplayFlags) Apply(cfg *config.Config) error {
	if f.Theme != "" {
		cfg.Theme = f.Theme
	}
	if f.GraphSymbol != "" {
		cfg.Graph.Symbol = f.GraphSymbol
	}
	if f.Corners != "" {
		cfg.Box.Corners = f.Corners
	}
	if f.NoGradient {
		cfg.Colors.Gradient = false
	}

	interval, err := ParseInterval(f.Interval)
	if err != nil {
		return err
	}
	if interval > 0 {
		cfg.Refresh = interval
	}
	return nil
}

// ParseInterval parses a refresh interval flag. Returns zero duration if the
// flag is empty.
func ParseInterval(flag string) (time.Duration, error) {
	if flag == "" {
		return 0, nil
	}

	d, err := time.ParseDuration(flag)
	if err != nil {
		return 0, errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("'%s' doesn't look like a valid interval", flag),
			"Try something like 1s, 2s, or 500ms.")
	}
	if d < config.MinRefresh {
		return 0, errors.New(errors.ErrConfig,
			fmt.Sprintf("Interval %s is too short", d),
			fmt.Sprintf("The minimum refresh interval is %s.", config.MinRefresh))
	}
	return d, nil
}

// ParseRunDuration parses --duration. A bare number is read as seconds.
// Returns zero, meaning no limit, if the flag is empty.
func ParseRunDuration(flag string) (time.Duration, error) {
	flag = strings.TrimSpace(flag)
	if flag == "" {
		return 0, nil
	}

	d, err := time.ParseDuration(flag)
	if err != nil {
		secs, convErr := strconv.ParseInt(flag, 10, 32)
		if convErr != nil {
			return 0, errors.WrapWithCode(err, errors.ErrConfig,
				fmt.Sprintf("'%s' doesn't look like a valid duration", flag),
				"Try something like 30s, 5m, 1h, or a number of seconds.")
		}
		d = time.Duration(secs) * time.Second
	}
	if d <= 0 {
		return 0, errors.New(errors.ErrConfig,
			fmt.Sprintf("Duration %s must be positive", flag),
			"Leave --duration off to run until you quit.")
	}
	return d, nil
}
