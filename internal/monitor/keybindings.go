package monitor

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// keyMap defines the dashboard's key bindings.
type keyMap struct {
	Quit       key.Binding
	NextTheme  key.Binding
	PrevTheme  key.Binding
	GraphStyle key.Binding
	Corners    key.Binding
	Gradient   key.Binding
	Reload     key.Binding
	Sort       key.Binding
	Reverse    key.Binding
	Up         key.Binding
	Down       key.Binding
	Help       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		NextTheme: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "next theme"),
		),
		PrevTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "prev theme"),
		),
		GraphStyle: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "graph symbols"),
		),
		Corners: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "corners"),
		),
		Gradient: key.NewBinding(
			key.WithKeys("G"),
			key.WithHelp("G", "gradients"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload themes"),
		),
		Sort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sort processes"),
		),
		Reverse: key.NewBinding(
			key.WithKeys("S"),
			key.WithHelp("S", "reverse order"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "scroll down"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextTheme, k.GraphStyle, k.Reload, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextTheme, k.PrevTheme, k.Reload},
		{k.GraphStyle, k.Corners, k.Gradient},
		{k.Sort, k.Reverse},
		{k.Up, k.Down},
		{k.Help, k.Quit},
	}
}

// HandleKeyMsg applies a dashboard key. It returns false for keys it doesn't
// own, which the caller forwards to the viewport.
func (m *Model) HandleKeyMsg(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
		return true, nil

	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return true, tea.Quit

	case key.Matches(msg, m.keys.NextTheme):
		m.status = "theme: " + m.themes.Cycle(1).Name()
		return true, nil

	case key.Matches(msg, m.keys.PrevTheme):
		m.status = "theme: " + m.themes.Cycle(-1).Name()
		return true, nil

	case key.Matches(msg, m.keys.GraphStyle):
		m.settings.Style = m.settings.Style.Next()
		m.status = "graph: " + m.settings.Style.String()
		return true, nil

	case key.Matches(msg, m.keys.Corners):
		m.settings.Corners = m.settings.Corners.Next()
		m.status = "corners: " + m.settings.Corners.String()
		return true, nil

	case key.Matches(msg, m.keys.Gradient):
		m.settings.Gradient = !m.settings.Gradient
		if m.settings.Gradient {
			m.status = "gradients on"
		} else {
			m.status = "gradients off"
		}
		return true, nil

	case key.Matches(msg, m.keys.Sort):
		m.settings.ProcessSort = m.settings.ProcessSort.Next()
		m.status = m.sortStatus()
		return true, nil

	case key.Matches(msg, m.keys.Reverse):
		m.settings.ProcessReverse = !m.settings.ProcessReverse
		m.status = m.sortStatus()
		return true, nil

	case key.Matches(msg, m.keys.Reload):
		m.status = "reloading themes..."
		return true, m.reloadCmd()
	}

	return false, nil
}

func (m *Model) sortStatus() string {
	status := "sort: " + m.settings.ProcessSort.String()
	if m.settings.ProcessReverse {
		status += " reversed"
	}
	return status
}
