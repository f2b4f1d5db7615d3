package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// HeaderInfo contains information to display in the header.
type HeaderInfo struct {
	Version string // Version string (e.g., "v0.4.0")
	Tagline string // Optional tagline (e.g., "theme: nord")
	Width   int    // Divider width; HeaderWidth when zero
}

// HeaderWidth is the default width of the header divider
const HeaderWidth = 50

// RenderHeader renders the name, version, optional tagline and a divider.
func RenderHeader(info HeaderInfo) string {
	titleStyle := lipgloss.NewStyle().
		Foreground(ColorInfo).
		Bold(true)

	versionStyle := lipgloss.NewStyle().
		Foreground(ColorSecondary)

	taglineStyle := lipgloss.NewStyle().
		Foreground(ColorPrimary)

	dividerStyle := lipgloss.NewStyle().
		Foreground(ColorMuted)

	width := info.Width
	if width <= 0 {
		width = HeaderWidth
	}

	var output strings.Builder

	// Title line: "rtop v0.5.0"
	output.WriteString(titleStyle.Render("rtop"))
	if info.Version != "" {
		output.WriteString(" ")
		output.WriteString(versionStyle.Render(info.Version))
	}
	output.WriteString("\n")

	if info.Tagline != "" {
		output.WriteString(taglineStyle.Render(info.Tagline))
		output.WriteString("\n")
	}

	output.WriteString(dividerStyle.Render(strings.Repeat("━", width)))
	output.WriteString("\n")

	return output.String()
}

// PrintHeader writes the styled header to w.
func PrintHeader(w io.Writer, info HeaderInfo) {
	fmt.Fprint(w, RenderHeader(info))
}
