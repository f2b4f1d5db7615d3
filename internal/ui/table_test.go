package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/table"
	"github.com/stretchr/testify/assert"
)

func TestNewTable(t *testing.T) {
	columns := []TableColumn{
		{Title: "NAME", Width: 20},
		{Title: "SOURCE", Width: 10},
	}
	rows := []table.Row{
		{"nord", "built-in"},
		{"ocean", "file"},
	}

	view := NewTable(columns, rows).View()

	assert.Contains(t, view, "NAME")
	assert.Contains(t, view, "SOURCE")
	assert.Contains(t, view, "nord")
	assert.Contains(t, view, "ocean")
}

func TestNewTable_EmptyRows(t *testing.T) {
	view := NewTable([]TableColumn{{Title: "NAME", Width: 20}}, []table.Row{}).View()

	assert.NotEmpty(t, view)
	assert.Contains(t, view, "NAME")
}

func TestRenderSimpleTable(t *testing.T) {
	columns := []TableColumn{
		{Title: "NAME", Width: 15},
		{Title: "DISPLAY NAME", Width: 15},
	}
	rows := [][]string{
		{"dracula", "Dracula"},
		{"tokyo-night", "Tokyo Night"},
	}

	output := RenderSimpleTable(columns, rows)

	assert.Contains(t, output, "DISPLAY NAME")
	assert.Contains(t, output, "dracula")
	assert.Contains(t, output, "Tokyo Night")
	assert.GreaterOrEqual(t, strings.Count(output, "\n"), 3, "header, divider and two rows")
}

func TestRenderSimpleTable_EmptyRows(t *testing.T) {
	assert.Empty(t, RenderSimpleTable([]TableColumn{{Title: "NAME", Width: 20}}, nil))
}

func TestRenderSimpleTable_TruncatesToWidth(t *testing.T) {
	output := RenderSimpleTable([]TableColumn{{Title: "NAME", Width: 6}}, [][]string{{"a-very-long-theme-name"}})
	assert.NotContains(t, output, "a-very-long-theme-name")
}
