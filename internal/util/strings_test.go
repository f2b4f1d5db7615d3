package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	themeNames   = []string{"default", "nord", "dracula", "gruvbox", "tokyo-night"}
	commandNames = []string{"themes", "preview", "doctor", "init", "version", "completion", "help", "export"}
)

func TestJoinOrNone(t *testing.T) {
	tests := []struct {
		name  string
		items []string
		want  string
	}{
		{name: "no themes loaded", items: nil, want: "(none)"},
		{name: "empty search path", items: []string{}, want: "(none)"},
		{name: "single theme", items: []string{"nord"}, want: "nord"},
		{name: "theme list", items: []string{"default", "nord", "dracula"}, want: "default, nord, dracula"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, JoinOrNone(tt.items))
		})
	}
}

func TestJoinOrDefault(t *testing.T) {
	tests := []struct {
		name  string
		items []string
		def   string
		want  string
	}{
		{name: "no theme dirs", items: []string{}, def: "built-in only", want: "built-in only"},
		{name: "empty default", items: []string{}, def: "", want: ""},
		{
			name:  "dirs ignore default",
			items: []string{"~/.config/rtop/themes", "/usr/share/rtop/themes"},
			def:   "built-in only",
			want:  "~/.config/rtop/themes, /usr/share/rtop/themes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, JoinOrDefault(tt.items, tt.def))
		})
	}
}

func TestPluralize(t *testing.T) {
	tests := []struct {
		count int
		want  string
	}{
		{0, "theme files"},
		{1, "theme file"},
		{4, "theme files"},
		{-1, "theme files"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, Pluralize(tt.count, "theme file", "theme files"))
		})
	}
}

func TestLevenshteinDistance(t *testing.T) {
	tests := []struct {
		a, b     string
		expected int
	}{
		{"", "", 0},
		{"", "nord", 4},
		{"init", "", 4},
		{"gruvbox", "gruvbox", 0},
		{"nord", "nrod", 2},              // transposition
		{"themes", "theme", 1},           // deletion
		{"dracula", "drakula", 1},        // substitution
		{"theme", "Theme", 1},            // case difference
		{"tokyo-night", "tokyonight", 1}, // missing separator
		{"doctor", "docter", 1},
	}

	for _, tt := range tests {
		t.Run(tt.a+"->"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.expected, LevenshteinDistance(tt.a, tt.b))
		})
	}
}

func TestSuggestSimilar_ThemeNames(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{name: "misspelled theme", input: "drakula", expected: []string{"dracula"}},
		{name: "swapped letters", input: "nrod", expected: []string{"nord"}},
		{name: "case insensitive", input: "Gruvbox", expected: []string{"gruvbox"}},
		{name: "missing hyphen", input: "tokyonight", expected: []string{"tokyo-night"}},
		{name: "prefix too short to match", input: "tokyo", expected: nil},
		{name: "unknown theme", input: "solarized", expected: nil},
		{name: "empty input", input: "", expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SuggestSimilar(tt.input, themeNames, 3))
		})
	}
}

func TestSuggestSimilar_CommandNames(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		limit    int
		expected []string
	}{
		{name: "singular of themes", input: "theme", limit: 3, expected: []string{"themes"}},
		{name: "typo in doctor", input: "docter", limit: 3, expected: []string{"doctor"}},
		{name: "dropped letter", input: "prevew", limit: 3, expected: []string{"preview"}},
		{name: "ties keep command order", input: "heit", limit: 3, expected: []string{"init", "help"}},
		{name: "limit applies after sorting", input: "heit", limit: 1, expected: []string{"init"}},
		{name: "zero limit", input: "theme", limit: 0, expected: nil},
		{name: "no close command", input: "xyz", limit: 3, expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SuggestSimilar(tt.input, commandNames, tt.limit))
		})
	}
}

func TestSuggestSimilar_EmptyCandidates(t *testing.T) {
	assert.Nil(t, SuggestSimilar("nord", nil, 3))
	assert.Nil(t, SuggestSimilar("nord", []string{}, 3))
}
