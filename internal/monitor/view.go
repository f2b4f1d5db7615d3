package monitor

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/rileyhilliard/rtop/internal/errors"
)

// renderHeader renders the title bar: host, uptime, theme and graph style,
// plus the last status message and collection error if any.
func (m Model) renderHeader() string {
	th := m.Theme()
	st := newStyles(th)
	sep := st.divider.Render(" │ ")

	parts := []string{st.title.Render("rtop")}
	if m.sample != nil {
		sys := m.sample.System
		if sys.Hostname != "" {
			parts = append(parts, st.text.Render(sys.Hostname))
		}
		if sys.Platform != "" {
			parts = append(parts, st.muted.Render(sys.Platform))
		}
		if sys.Uptime > 0 {
			parts = append(parts, st.muted.Render("up "+formatUptime(sys.Uptime)))
		}
	}
	parts = append(parts, st.muted.Render(th.Name()+" · "+m.settings.Style.String()))

	line := strings.Join(parts, sep)
	if m.status != "" {
		line += " " + st.status.Render(m.status)
	}
	if m.lastErr != nil {
		line += "\n" + st.hi.Render("! "+errors.Message(m.lastErr))
	}
	return line
}

// renderBody lays out the widget boxes. CPU and processes always span the
// full width; memory and network, and disk and GPU, share a row unless the
// terminal is narrow.
func (m Model) renderBody() string {
	th := m.Theme()
	if m.sample == nil {
		return newStyles(th).muted.Render("Collecting metrics...")
	}

	width := m.width
	if width <= 0 {
		width = BreakpointColumns
	}

	r := renderer{
		th:       th,
		st:       newStyles(th),
		settings: m.settings,
		history:  m.history,
		sample:   m.sample,
		log:      m.log,
	}

	middle := []widget{widgetMemory}
	if m.settings.Display.ShowNetwork {
		middle = append(middle, widgetNetwork)
	}
	var storage []widget
	if m.settings.Display.ShowDisk {
		storage = append(storage, widgetDisk)
	}
	if m.settings.Display.ShowGPU && len(m.sample.GPUs) > 0 {
		storage = append(storage, widgetGPU)
	}

	rows := [][]widget{{widgetCPU}}
	for _, group := range [][]widget{middle, storage} {
		if len(group) == 0 {
			continue
		}
		if m.Stacked() {
			for _, w := range group {
				rows = append(rows, []widget{w})
			}
		} else {
			rows = append(rows, group)
		}
	}
	if m.settings.Display.ShowProcesses && m.sample.Processes != nil {
		rows = append(rows, []widget{widgetProcess})
	}

	var blocks []string
	for _, row := range rows {
		if out := r.row(row, width); out != "" {
			blocks = append(blocks, out)
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, blocks...)
}

// formatUptime renders d as "3d 4h", "4h 12m" or "12m".
func formatUptime(d time.Duration) string {
	d = d.Truncate(time.Minute)
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60

	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh", days, hours)
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	default:
		return fmt.Sprintf("%dm", minutes)
	}
}
