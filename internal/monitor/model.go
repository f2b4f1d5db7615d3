package monitor

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rileyhilliard/rtop/internal/box"
	"github.com/rileyhilliard/rtop/internal/config"
	"github.com/rileyhilliard/rtop/internal/graph"
	"github.com/rileyhilliard/rtop/internal/logger"
	"github.com/rileyhilliard/rtop/internal/theme"
)

// BreakpointColumns is the width below which widgets stack in one column.
const BreakpointColumns = 80

// DefaultTimeout bounds a single collection when Settings.Timeout is zero.
const DefaultTimeout = 5 * time.Second

// DefaultProcessRows is the process box height when Settings.ProcessRows is zero.
const DefaultProcessRows = 10

// Settings are the display options the dashboard starts with. Style,
// Corners, Gradient and the process order can be changed at runtime by key.
type Settings struct {
	Interval    time.Duration
	Timeout     time.Duration
	HistorySize int

	// RunFor quits the dashboard after this long. Zero runs until quit.
	RunFor time.Duration

	Style       graph.Style
	Corners     box.CornerStyle
	GraphHeight int
	NoZero      bool
	Gradient    bool

	ProcessSort    ProcessSort
	ProcessReverse bool
	ProcessRows    int

	Display    config.DisplayConfig
	Thresholds config.ThresholdsConfig
}

// SettingsFromConfig converts a loaded config. Unknown graph symbols or
// corner styles fall back to their defaults with a warning; config.Validate
// reports them properly before the dashboard starts.
func SettingsFromConfig(cfg *config.Config, log logger.Logger) Settings {
	if log == nil {
		log = logger.Noop()
	}

	style, err := graph.ParseStyle(cfg.Graph.Symbol)
	if err != nil {
		log.Warn("graph.symbol: %v", err)
	}
	corners, err := box.ParseCornerStyle(cfg.Box.Corners)
	if err != nil {
		log.Warn("box.corners: %v", err)
	}
	order, err := ParseProcessSort(cfg.Display.ProcessSort)
	if err != nil {
		log.Warn("display.process_sort: %v", err)
	}

	return Settings{
		Interval:    cfg.Refresh,
		HistorySize: cfg.History,
		Style:       style,
		Corners:     corners,
		GraphHeight: cfg.Graph.Height,
		NoZero:      cfg.Graph.NoZero,
		Gradient:    cfg.Colors.Gradient,
		ProcessSort: order,
		ProcessRows: cfg.Display.ProcessCount,
		Display:     cfg.Display,
		Thresholds:  cfg.Thresholds,
	}
}

func (s Settings) withDefaults() Settings {
	if s.Interval <= 0 {
		s.Interval = time.Second
	}
	if s.Timeout <= 0 {
		s.Timeout = DefaultTimeout
	}
	if s.HistorySize < 2 {
		s.HistorySize = DefaultHistorySize
	}
	if s.GraphHeight < 1 {
		s.GraphHeight = 1
	}
	if s.ProcessRows < 1 {
		s.ProcessRows = DefaultProcessRows
	}
	return s
}

// Model is the Bubble Tea model for the dashboard.
type Model struct {
	themes   *theme.Manager
	source   Source
	history  *History
	settings Settings
	log      logger.Logger

	keys     keyMap
	help     help.Model
	viewport viewport.Model
	ready    bool

	width  int
	height int

	sample     *Sample
	lastErr    error
	lastUpdate time.Time
	status     string
	collecting bool
	quitting   bool
	showHelp   bool
}

// tickMsg signals a periodic refresh.
type tickMsg time.Time

// sampleMsg carries the result of one collection.
type sampleMsg struct {
	sample *Sample
	err    error
	time   time.Time
}

// deadlineMsg ends a dashboard started with Settings.RunFor.
type deadlineMsg struct{}

// reloadMsg reports the end of a theme reload.
type reloadMsg struct {
	err   error
	count int
}

// NewModel creates a dashboard model.
func NewModel(themes *theme.Manager, source Source, settings Settings, log logger.Logger) Model {
	if log == nil {
		log = logger.Noop()
	}
	settings = settings.withDefaults()

	return Model{
		themes:   themes,
		source:   source,
		history:  NewHistory(settings.HistorySize),
		settings: settings,
		log:      log,
		keys:     defaultKeyMap(),
		help:     help.New(),
	}
}

// Init starts the tick timer and triggers the first collection.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.tickCmd(), m.collectCmd()}
	if m.settings.RunFor > 0 {
		cmds = append(cmds, tea.Tick(m.settings.RunFor, func(time.Time) tea.Msg {
			return deadlineMsg{}
		}))
	}
	return tea.Batch(cmds...)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		handled, cmd := m.HandleKeyMsg(msg)
		if handled {
			m.refreshViewport()
			return m, cmd
		}
		var vpCmd tea.Cmd
		m.viewport, vpCmd = m.viewport.Update(msg)
		return m, vpCmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height)
			m.ready = true
		}
		m.refreshViewport()

	case deadlineMsg:
		m.log.Info("run time of %s reached", m.settings.RunFor)
		m.quitting = true
		return m, tea.Quit

	case tickMsg:
		if m.collecting {
			return m, m.tickCmd()
		}
		m.collecting = true
		return m, tea.Batch(m.tickCmd(), m.collectCmd())

	case sampleMsg:
		m.collecting = false
		m.lastErr = msg.err
		if msg.err != nil {
			m.log.Warn("collect: %v", msg.err)
		}
		if msg.sample != nil {
			m.sample = msg.sample
			m.history.Push(msg.sample)
			m.lastUpdate = msg.time
		}
		m.refreshViewport()

	case reloadMsg:
		if msg.err != nil {
			m.status = "reload failed"
			m.lastErr = msg.err
			m.log.Warn("theme reload: %v", msg.err)
		} else {
			m.status = fmt.Sprintf("reloaded %d themes", msg.count)
		}
		m.refreshViewport()
	}

	return m, nil
}

// View renders the dashboard.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return lipgloss.JoinVertical(lipgloss.Left, m.renderHeader(), m.renderBody(), m.renderFooter())
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.renderHeader(), m.viewport.View(), m.renderFooter())
}

// refreshViewport re-renders the scrollable body and fits the viewport
// between header and footer.
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}
	h := m.height - lipgloss.Height(m.renderHeader()) - lipgloss.Height(m.renderFooter())
	if h < 1 {
		h = 1
	}
	m.viewport.Width = m.width
	m.viewport.Height = h
	m.viewport.SetContent(m.renderBody())
}

// tickCmd returns a command that sends a tick after the refresh interval.
func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.settings.Interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// collectCmd samples the source once, bounded by the collection timeout.
func (m Model) collectCmd() tea.Cmd {
	source, timeout := m.source, m.settings.Timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		s, err := source.Collect(ctx)
		return sampleMsg{sample: s, err: err, time: time.Now()}
	}
}

// reloadCmd rescans the theme directories off the UI goroutine.
func (m Model) reloadCmd() tea.Cmd {
	themes := m.themes
	return func() tea.Msg {
		err := themes.Reload()
		return reloadMsg{err: err, count: len(themes.Names())}
	}
}

// Theme returns the active theme.
func (m Model) Theme() *theme.Theme {
	return m.themes.Current()
}

// Settings returns the current display settings.
func (m Model) Settings() Settings {
	return m.settings
}

// History returns the sample history.
func (m Model) History() *History {
	return m.history
}

// SecondsSinceUpdate returns how many seconds have passed since the last sample.
func (m Model) SecondsSinceUpdate() int {
	if m.lastUpdate.IsZero() {
		return 0
	}
	return int(time.Since(m.lastUpdate).Seconds())
}

// Stacked reports whether widgets are laid out in a single column.
func (m Model) Stacked() bool {
	return m.width < BreakpointColumns
}
