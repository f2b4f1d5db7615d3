package cli

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rileyhilliard/rtop/internal/box"
	"github.com/rileyhilliard/rtop/internal/color"
	"github.com/rileyhilliard/rtop/internal/graph"
	"github.com/rileyhilliard/rtop/internal/logger"
	"github.com/rileyhilliard/rtop/internal/meter"
	"github.com/rileyhilliard/rtop/internal/theme"
	"github.com/rileyhilliard/rtop/internal/ui"
)

const (
	// previewMinWidth is the narrowest preview that still fits a labeled meter.
	previewMinWidth = 24
	previewMaxWidth = 100
	previewHeight   = 4
)

var (
	previewDisplay DisplayFlags
	previewWidth   int
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Print sample graphs and meters in a theme",
	Long: `Print a static preview of the active theme: a graph in every glyph
style and meters at 0, 25, 50, 75 and 100 percent.

Handy for comparing themes without starting the dashboard, and works when
output isn't a terminal.

Examples:
  rtop preview
  rtop preview --theme gruvbox --corners square
  rtop preview --no-gradient --width 60`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadConfig(&previewDisplay)
		if err != nil {
			return err
		}
		themes, err := newThemeManager(cfg, logger.Default())
		if err != nil {
			return err
		}
		corners, err := box.ParseCornerStyle(cfg.Box.Corners)
		if err != nil {
			return err
		}

		opts := previewOptions{
			Width:    previewTermWidth(previewWidth),
			Corners:  corners,
			Gradient: cfg.Colors.Gradient,
			NoZero:   cfg.Graph.NoZero,
		}
		ui.PrintHeader(cmd.OutOrStdout(), ui.HeaderInfo{
			Version: formatVersion(version),
			Tagline: "theme: " + themes.Current().DisplayName(),
			Width:   opts.Width,
		})
		return renderPreview(cmd.OutOrStdout(), themes.Current(), opts)
	},
}

func init() {
	AddDisplayFlags(previewCmd, &previewDisplay)
	previewCmd.Flags().IntVar(&previewWidth, "width", 0, "preview width in columns (default: terminal width)")
	registerDisplayCompletions(previewCmd)
	rootCmd.AddCommand(previewCmd)
}

// previewOptions controls renderPreview.
type previewOptions struct {
	Width    int
	Corners  box.CornerStyle
	Gradient bool
	NoZero   bool
}

// previewTermWidth picks the preview width: the flag if set, else the
// terminal width, clamped to a readable range.
func previewTermWidth(flag int) int {
	width := flag
	if width <= 0 {
		width = 80
		if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
			width = w
		}
	}
	if width < previewMinWidth {
		return previewMinWidth
	}
	if width > previewMaxWidth {
		return previewMaxWidth
	}
	return width
}

// previewSamples is a deterministic wave used for the sample graphs.
func previewSamples(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		x := float64(i)
		out[i] = 50 + 35*math.Sin(x/5) + 12*math.Sin(x/1.7)
	}
	return out
}

// renderPreview writes a framed graph per glyph style and a meter box.
func renderPreview(w io.Writer, th *theme.Theme, opts previewOptions) error {
	if opts.Width < previewMinWidth {
		opts.Width = previewMinWidth
	}
	inner := opts.Width - 2
	samples := graph.Resample(previewSamples(90), inner*2)

	grad := th.Gradient(theme.CPU)
	if !opts.Gradient {
		grad = color.Solid(grad.At(50))
	}

	var out []string
	for _, style := range graph.Styles {
		cfg := graph.Config{Width: inner, Height: previewHeight, Style: style, NoZero: opts.NoZero}
		lines, err := graph.Render(samples, cfg)
		if err != nil {
			return err
		}
		rowColors := graph.RowColors(grad, cfg)
		for i := range lines {
			lines[i] = paintColor(rowColors[i], lines[i])
		}
		framed, err := box.Frame(lines, opts.Width, previewHeight+2, style.String(), opts.Corners)
		if err != nil {
			return err
		}
		out = append(out, box.Styled(framed, th.Color(theme.KeyCPUBox), th.Color(theme.KeyTitle))...)
	}

	var meters []string
	bg := th.Color(theme.KeyMeterBG)
	for _, pct := range []float64{0, 25, 50, 75, 100} {
		label := fmt.Sprintf("%3.0f%% ", pct)
		width := inner - len(label)
		var bar string
		if opts.Gradient {
			bar = meter.Styled(meter.RenderSegmented(pct, width, th.Gradient(theme.Memory)), bg)
		} else {
			bar = meter.Flat(pct, width, th.Gradient(theme.Memory).At(50), bg)
		}
		meters = append(meters, paintColor(th.Color(theme.KeyGraphText), label)+bar)
	}
	framed, err := box.Frame(meters, opts.Width, len(meters)+2, "meters", opts.Corners)
	if err != nil {
		return err
	}
	out = append(out, box.Styled(framed, th.Color(theme.KeyMemBox), th.Color(theme.KeyTitle))...)

	_, err = io.WriteString(w, strings.Join(out, "\n")+"\n")
	return err
}

func paintColor(c color.Color, text string) string {
	return lipgloss.NewStyle().Foreground(c.Lipgloss()).Render(text)
}
