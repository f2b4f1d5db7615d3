package monitor

// renderFooter renders the key help: one line of the most used keys, or
// every binding in columns when full help is toggled on.
func (m Model) renderFooter() string {
	h := m.help
	h.Styles = helpStyles(m.Theme())
	return h.View(m.keys)
}
