// Package meter renders horizontal percentage bars, either in a single
// color or with each cell colored from a gradient.
package meter

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rileyhilliard/rtop/internal/color"
)

const (
	FilledGlyph = "■"
	EmptyGlyph  = "░"
)

// Cell is one character of a segmented meter.
type Cell struct {
	Glyph  string
	Color  color.Color
	Filled bool
}

// filledCount returns how many of width cells a percentage lights up.
func filledCount(percent float64, width int) int {
	if math.IsNaN(percent) || percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	n := int(math.Round(float64(width) * percent / 100))
	if n > width {
		n = width
	}
	return n
}

// Render returns an unstyled meter of width cells.
func Render(percent float64, width int) string {
	if width < 1 {
		return ""
	}
	n := filledCount(percent, width)
	return strings.Repeat(FilledGlyph, n) + strings.Repeat(EmptyGlyph, width-n)
}

// RenderSegmented returns one cell per column. Each cell's color is the
// gradient value at the cell's right edge, so a full meter always ends on
// the hot color no matter how wide it is.
func RenderSegmented(percent float64, width int, g *color.Gradient) []Cell {
	if width < 1 {
		return nil
	}
	n := filledCount(percent, width)
	cells := make([]Cell, width)
	for i := range cells {
		cells[i] = Cell{
			Glyph:  EmptyGlyph,
			Color:  g.At(float64(i+1) / float64(width) * 100),
			Filled: i < n,
		}
		if cells[i].Filled {
			cells[i].Glyph = FilledGlyph
		}
	}
	return cells
}

// Styled paints cells. Filled cells use their own color, empty cells bg.
// Consecutive cells with the same color share one styled run.
func Styled(cells []Cell, bg color.Color) string {
	var b strings.Builder
	var run strings.Builder
	var runColor color.Color
	flush := func() {
		if run.Len() == 0 {
			return
		}
		b.WriteString(lipgloss.NewStyle().Foreground(runColor.Lipgloss()).Render(run.String()))
		run.Reset()
	}

	for _, c := range cells {
		fg := bg
		if c.Filled {
			fg = c.Color
		}
		if run.Len() > 0 && fg != runColor {
			flush()
		}
		runColor = fg
		run.WriteString(c.Glyph)
	}
	flush()
	return b.String()
}

// Flat renders a meter with one color for the filled part and another for
// the remainder. Used when gradients are turned off.
func Flat(percent float64, width int, fg, bg color.Color) string {
	if width < 1 {
		return ""
	}
	n := filledCount(percent, width)
	var b strings.Builder
	if n > 0 {
		b.WriteString(lipgloss.NewStyle().Foreground(fg.Lipgloss()).Render(strings.Repeat(FilledGlyph, n)))
	}
	if n < width {
		b.WriteString(lipgloss.NewStyle().Foreground(bg.Lipgloss()).Render(strings.Repeat(EmptyGlyph, width-n)))
	}
	return b.String()
}
