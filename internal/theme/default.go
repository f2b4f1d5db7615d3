package theme

import (
	"embed"
	"path"
	"strings"
	"sync"

	"github.com/rileyhilliard/rtop/internal/color"
	"github.com/rileyhilliard/rtop/internal/logger"
)

// DefaultName is the key of the compiled-in theme.
const DefaultName = "default"

var defaultRoles = map[Key]string{
	KeyMainFG:     "#cc",
	KeyMainBG:     "#00",
	KeyTitle:      "#ee",
	KeyHiFG:       "#b54040",
	KeySelectedBG: "#7e2626",
	KeySelectedFG: "#ee",
	KeyInactiveFG: "#40",
	KeyDivLine:    "#30",
	KeyGraphText:  "#60",
	KeyMeterBG:    "#40",
	KeyCPUBox:     "#3d7b46",
	KeyMemBox:     "#8a882e",
	KeyNetBox:     "#423ba5",
	KeyProcBox:    "#923535",
	KeyGPUBox:     "#35934d",
}

var defaultAnchors = map[Metric][3]string{
	CPU:         {"#4897d8", "#7ce567", "#eb7070"},
	Memory:      {"#ffc345", "#f3a32e", "#e05a5a"},
	Network:     {"#90e0b5", "#50d097", "#30b572"},
	Download:    {"#80d0a3", "#26e85f", "#0de756"},
	Upload:      {"#d08090", "#e82656", "#e70d56"},
	Temperature: {"#4897d8", "#f3a32e", "#eb7070"},
	Process:     {"#80d0a3", "#26e85f", "#0de756"},
}

var defaultTheme = sync.OnceValue(func() *Theme {
	colors := make(map[Key]color.Color, len(defaultRoles))
	for k, hex := range defaultRoles {
		colors[k] = color.MustParse(hex)
	}
	anchors := make(map[Metric][]color.Color, len(defaultAnchors))
	for m, hexes := range defaultAnchors {
		for _, hex := range hexes {
			anchors[m] = append(anchors[m], color.MustParse(hex))
		}
	}
	return newTheme(DefaultName, "Default", "", colors, anchors)
})

// Default returns the compiled-in theme. Every other theme falls back to
// its values key by key.
func Default() *Theme {
	return defaultTheme()
}

//go:embed builtin/*.theme
var builtinFS embed.FS

// Builtins returns the themes shipped inside the binary, including the
// default. Built-in files are parsed once.
func Builtins() []*Theme {
	return builtinThemes()
}

var builtinThemes = sync.OnceValue(func() []*Theme {
	out := []*Theme{Default()}
	entries, err := builtinFS.ReadDir("builtin")
	if err != nil {
		return out
	}
	for _, e := range entries {
		data, err := builtinFS.ReadFile(path.Join("builtin", e.Name()))
		if err != nil {
			continue
		}
		t, err := Parse(strings.TrimSuffix(e.Name(), ".theme"), data, logger.Default())
		if err != nil {
			logger.Default().Error("built-in theme %s: %v", e.Name(), err)
			continue
		}
		out = append(out, t)
	}
	return out
})
