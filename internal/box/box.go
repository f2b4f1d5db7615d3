// Package box draws titled frames around dashboard widgets.
package box

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/rileyhilliard/rtop/internal/color"
	"github.com/rileyhilliard/rtop/internal/errors"
)

// CornerStyle selects the corner glyphs of a box.
type CornerStyle int

const (
	Rounded CornerStyle = iota
	Square
)

func (c CornerStyle) String() string {
	switch c {
	case Rounded:
		return "rounded"
	case Square:
		return "square"
	}
	return fmt.Sprintf("CornerStyle(%d)", int(c))
}

// Next toggles between rounded and square.
func (c CornerStyle) Next() CornerStyle {
	if c == Rounded {
		return Square
	}
	return Rounded
}

// Border returns the lipgloss border with the matching corners.
func (c CornerStyle) Border() lipgloss.Border {
	if c == Square {
		return lipgloss.NormalBorder()
	}
	return lipgloss.RoundedBorder()
}

// ParseCornerStyle maps a config string to a CornerStyle. Callers fall back
// to Rounded on error.
func ParseCornerStyle(text string) (CornerStyle, error) {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "rounded":
		return Rounded, nil
	case "square":
		return Square, nil
	}
	return Rounded, errors.New(errors.ErrUnknownCornerStyle,
		fmt.Sprintf("Unknown corner style %q", text),
		"Use one of: rounded, square")
}

const (
	titleLeft  = "┤"
	titleRight = "├"
)

// Draw returns height lines of exactly width cells forming an empty box.
// The title is centered in the top border when it fits with one border
// cell and one bracket on each side, and left out otherwise.
func Draw(width, height int, title string, corners CornerStyle) ([]string, error) {
	if width < 2 || height < 2 {
		return nil, errors.New(errors.ErrInvalidDimensions,
			fmt.Sprintf("Box needs at least 2x2 cells, got %dx%d", width, height),
			"")
	}

	b := corners.Border()
	inner := width - 2

	lines := make([]string, height)
	lines[0] = b.TopLeft + topEdge(b.Top, inner, title) + b.TopRight
	middle := b.Left + strings.Repeat(" ", inner) + b.Right
	for i := 1; i < height-1; i++ {
		lines[i] = middle
	}
	lines[height-1] = b.BottomLeft + strings.Repeat(b.Bottom, inner) + b.BottomRight
	return lines, nil
}

func topEdge(edge string, inner int, title string) string {
	tw := ansi.StringWidth(title)
	if title == "" || tw+2 > inner {
		return strings.Repeat(edge, inner)
	}
	rest := inner - tw - 2
	left := rest / 2
	return strings.Repeat(edge, left) + titleLeft + title + titleRight + strings.Repeat(edge, rest-left)
}

// Frame draws a box and writes content into its interior. Lines wider than
// the interior are truncated, shorter ones padded, and lines beyond the
// interior height dropped. Content may carry ANSI styling.
func Frame(content []string, width, height int, title string, corners CornerStyle) ([]string, error) {
	lines, err := Draw(width, height, title, corners)
	if err != nil {
		return nil, err
	}

	b := corners.Border()
	inner := width - 2
	for i := 1; i < height-1 && i-1 < len(content); i++ {
		lines[i] = b.Left + fit(content[i-1], inner) + b.Right
	}
	return lines, nil
}

func fit(s string, width int) string {
	s = ansi.Truncate(s, width, "")
	if pad := width - ansi.StringWidth(s); pad > 0 {
		s += strings.Repeat(" ", pad)
	}
	return s
}

// Styled paints the border of lines produced by Draw or Frame in border and
// the title in title. Interior content is left as is.
func Styled(lines []string, border, title color.Color) []string {
	if len(lines) == 0 {
		return nil
	}
	bs := lipgloss.NewStyle().Foreground(border.Lipgloss())
	ts := lipgloss.NewStyle().Foreground(title.Lipgloss()).Bold(true)

	out := make([]string, len(lines))
	out[0] = styleTop(lines[0], bs, ts)
	for i := 1; i < len(lines)-1; i++ {
		out[i] = styleSides(lines[i], bs)
	}
	if len(lines) > 1 {
		out[len(lines)-1] = bs.Render(lines[len(lines)-1])
	}
	return out
}

// styleTop relies on topEdge placing only edge glyphs outside the brackets,
// so the first ┤ and last ├ delimit the title whatever it contains.
func styleTop(line string, bs, ts lipgloss.Style) string {
	open := strings.Index(line, titleLeft)
	closing := strings.LastIndex(line, titleRight)
	if open < 0 || closing <= open {
		return bs.Render(line)
	}
	start := open + len(titleLeft)
	return bs.Render(line[:start]) + ts.Render(line[start:closing]) + bs.Render(line[closing:])
}

func styleSides(line string, bs lipgloss.Style) string {
	for _, side := range []lipgloss.Border{lipgloss.RoundedBorder(), lipgloss.NormalBorder()} {
		if strings.HasPrefix(line, side.Left) && strings.HasSuffix(line, side.Right) && len(line) >= len(side.Left)+len(side.Right) {
			mid := line[len(side.Left) : len(line)-len(side.Right)]
			return bs.Render(side.Left) + mid + bs.Render(side.Right)
		}
	}
	return line
}
