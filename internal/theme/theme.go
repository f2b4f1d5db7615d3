// Package theme loads color themes and tracks which one is active.
//
// A theme file is a flat TOML document of hex colors:
//
//	name = "Nord"
//	main_fg = "#eceff4"
//	cpu_start = "#81a1c1"
//	cpu_end = "#bf616a"
//
// Every key is optional. Missing keys take the compiled-in default, and a
// key that doesn't parse as a color is reported and replaced by the default
// for that key alone. Themes are immutable after loading; reloading builds
// new Theme values and swaps them in through the Manager.
package theme

import (
	"fmt"
	"io"

	"github.com/BurntSushi/toml"

	"github.com/rileyhilliard/rtop/internal/color"
	"github.com/rileyhilliard/rtop/internal/errors"
	"github.com/rileyhilliard/rtop/internal/logger"
)

// Theme is a fully resolved set of UI colors and per-metric gradients.
type Theme struct {
	name        string
	displayName string
	source      string
	colors      map[Key]color.Color
	anchors     map[Metric][]color.Color
	gradients   map[Metric]*color.Gradient
}

func newTheme(name, displayName, source string, colors map[Key]color.Color, anchors map[Metric][]color.Color) *Theme {
	t := &Theme{
		name:        name,
		displayName: displayName,
		source:      source,
		colors:      colors,
		anchors:     anchors,
		gradients:   make(map[Metric]*color.Gradient, len(anchors)),
	}
	for m, a := range anchors {
		t.gradients[m] = color.MustGradient(a, color.DefaultSteps)
	}
	return t
}

// Name is the lookup key: the file name without extension.
func (t *Theme) Name() string { return t.name }

// DisplayName is the name declared inside the file, or Name when absent.
func (t *Theme) DisplayName() string { return t.displayName }

// Source is the file the theme was read from, empty for built-ins.
func (t *Theme) Source() string { return t.source }

// Color returns the color for a role key. Unknown keys resolve to main_fg.
func (t *Theme) Color(k Key) color.Color {
	if c, ok := t.colors[k]; ok {
		return c
	}
	return t.colors[KeyMainFG]
}

// Anchors returns a copy of the gradient anchors for m.
func (t *Theme) Anchors(m Metric) []color.Color {
	return append([]color.Color(nil), t.anchors[m]...)
}

// Gradient returns the 101-step gradient for m. Gradients are built when the
// theme is created, so this never allocates.
func (t *Theme) Gradient(m Metric) *color.Gradient {
	if g, ok := t.gradients[m]; ok {
		return g
	}
	return t.gradients[CPU]
}

// Parse builds a theme named name from a TOML document. Only invalid TOML
// is an error; bad or missing colors fall back to the defaults key by key,
// with a warning for each bad one.
func Parse(name string, data []byte, log logger.Logger) (*Theme, error) {
	if log == nil {
		log = logger.Noop()
	}

	var doc map[string]any
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrThemeParse,
			fmt.Sprintf("Theme %q is not valid TOML", name),
			"Fix the syntax, or run 'rtop themes check <file>' for details")
	}

	r := &thResolver{name: name, doc: doc, log: log, fallback: Default()}

	displayName, _ := doc["name"].(string)
	if displayName == "" {
		displayName = name
	}

	colors := make(map[Key]color.Color, len(RoleKeys))
	for _, k := range RoleKeys {
		colors[k] = r.color(k, r.fallback.colors[k])
	}

	anchors := make(map[Metric][]color.Color, len(Metrics))
	for _, m := range Metrics {
		anchors[m] = r.anchors(m)
	}

	// A file that only styles "net" colors both directions with it.
	if r.defines(Network) {
		for _, m := range []Metric{Download, Upload} {
			if !r.defines(m) {
				anchors[m] = anchors[Network]
			}
		}
	}

	return newTheme(name, displayName, "", colors, anchors), nil
}

type thResolver struct {
	name     string
	doc      map[string]any
	log      logger.Logger
	fallback *Theme
}

func (r *thResolver) color(k Key, fallback color.Color) color.Color {
	raw, ok := r.doc[string(k)]
	if !ok {
		return fallback
	}
	s, ok := raw.(string)
	if !ok {
		r.log.Warn("theme %s: %s should be a hex color string, got %v; using default %s", r.name, k, raw, fallback.Hex())
		return fallback
	}
	c, err := color.Parse(s)
	if err != nil {
		r.log.Warn("theme %s: %s has invalid color %q; using default %s", r.name, k, s, fallback.Hex())
		return fallback
	}
	return c
}

func (r *thResolver) defines(m Metric) bool {
	start, mid, end := m.Keys()
	for _, k := range []Key{start, mid, end} {
		if _, ok := r.doc[string(k)]; ok {
			return true
		}
	}
	return false
}

// anchors resolves a metric's gradient. Untouched metrics keep the default
// anchors; a metric with start/end but no mid becomes a two-point gradient.
func (r *thResolver) anchors(m Metric) []color.Color {
	def := r.fallback.anchors[m]
	if !r.defines(m) {
		return append([]color.Color(nil), def...)
	}

	start, mid, end := m.Keys()
	out := []color.Color{r.color(start, def[0])}
	if _, ok := r.doc[string(mid)]; ok {
		out = append(out, r.color(mid, def[len(def)/2]))
	}
	return append(out, r.color(end, def[len(def)-1]))
}

// Encode writes the theme as a TOML theme file that Parse reads back to an
// identical theme.
func (t *Theme) Encode(w io.Writer) error {
	doc := make(map[string]string, len(RoleKeys)+3*len(Metrics)+1)
	doc["name"] = t.displayName
	for _, k := range RoleKeys {
		doc[string(k)] = t.colors[k].Hex()
	}
	for _, m := range Metrics {
		a := t.anchors[m]
		start, mid, end := m.Keys()
		doc[string(start)] = a[0].Hex()
		if len(a) > 2 {
			doc[string(mid)] = a[1].Hex()
		}
		doc[string(end)] = a[len(a)-1].Hex()
	}

	if err := toml.NewEncoder(w).Encode(doc); err != nil {
		return errors.WrapWithCode(err, errors.ErrThemeParse,
			fmt.Sprintf("Failed to encode theme %q", t.name), "")
	}
	return nil
}

// withSource returns a copy of t that records where it was loaded from.
func (t *Theme) withSource(path string) *Theme {
	cp := *t
	cp.source = path
	return &cp
}
