package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rileyhilliard/rtop/internal/color"
)

// SwatchWidth is the default number of cells in a color swatch.
const SwatchWidth = 4

// Swatch renders width cells filled with c. Without color support it is
// blank space of the same width.
func Swatch(c color.Color, width int) string {
	if width <= 0 {
		return ""
	}
	return lipgloss.NewStyle().Background(c.Lipgloss()).Render(strings.Repeat(" ", width))
}

// ColorLabel renders text in c followed by a swatch, as in "#5e81ac ████".
func ColorLabel(c color.Color) string {
	return lipgloss.NewStyle().Foreground(c.Lipgloss()).Render(c.Hex()) + " " + Swatch(c, SwatchWidth)
}
