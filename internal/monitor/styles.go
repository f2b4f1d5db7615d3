package monitor

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"

	"github.com/rileyhilliard/rtop/internal/color"
	"github.com/rileyhilliard/rtop/internal/config"
	"github.com/rileyhilliard/rtop/internal/theme"
)

// styles are the lipgloss styles derived from one theme. They are rebuilt
// on every render so a theme switch shows up on the next frame.
type styles struct {
	title   lipgloss.Style
	text    lipgloss.Style
	muted   lipgloss.Style
	label   lipgloss.Style
	hi      lipgloss.Style
	status  lipgloss.Style
	divider lipgloss.Style
}

func newStyles(th *theme.Theme) styles {
	fg := func(k theme.Key) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(th.Color(k).Lipgloss())
	}
	return styles{
		title:   fg(theme.KeyTitle).Bold(true),
		text:    fg(theme.KeyMainFG),
		muted:   fg(theme.KeyInactiveFG),
		label:   fg(theme.KeyGraphText),
		hi:      fg(theme.KeyHiFG).Bold(true),
		status:  fg(theme.KeySelectedFG).Background(th.Color(theme.KeySelectedBG).Lipgloss()).Padding(0, 1),
		divider: fg(theme.KeyDivLine),
	}
}

// value picks the style for a reading: hi_fg once it reaches the warning
// threshold, main_fg below it.
func (s styles) value(v float64, t config.ThresholdValues) lipgloss.Style {
	if t.Level(v) >= config.LevelWarning {
		return s.hi
	}
	return s.text
}

// helpStyles themes the bubbles help footer.
func helpStyles(th *theme.Theme) help.Styles {
	keyStyle := lipgloss.NewStyle().Foreground(th.Color(theme.KeyHiFG).Lipgloss())
	descStyle := lipgloss.NewStyle().Foreground(th.Color(theme.KeyMainFG).Lipgloss())
	sepStyle := lipgloss.NewStyle().Foreground(th.Color(theme.KeyDivLine).Lipgloss())
	return help.Styles{
		Ellipsis:       sepStyle,
		ShortKey:       keyStyle,
		ShortDesc:      descStyle,
		ShortSeparator: sepStyle,
		FullKey:        keyStyle,
		FullDesc:       descStyle,
		FullSeparator:  sepStyle,
	}
}

// boxColor returns the border color of a widget box.
func boxColor(th *theme.Theme, w widget) color.Color {
	switch w {
	case widgetCPU:
		return th.Color(theme.KeyCPUBox)
	case widgetMemory, widgetDisk:
		return th.Color(theme.KeyMemBox)
	case widgetNetwork:
		return th.Color(theme.KeyNetBox)
	case widgetGPU:
		return th.Color(theme.KeyGPUBox)
	default:
		return th.Color(theme.KeyProcBox)
	}
}

// paint renders text in c.
func paint(c color.Color, text string) string {
	return lipgloss.NewStyle().Foreground(c.Lipgloss()).Render(text)
}
