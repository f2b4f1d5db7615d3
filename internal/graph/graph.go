// Package graph renders sample histories as multi-row character graphs.
//
// The value domain 0..Max is cut into one band per output row, and each
// band into five fill levels. Every output column shows two consecutive
// samples, one per half cell, so a graph Width columns wide holds 2*Width
// samples. The glyph for a cell comes from a 25-entry table selected by the
// pair of fill levels; styles differ only in their tables.
package graph

import (
	"fmt"
	"math"
	"strings"

	"github.com/rileyhilliard/rtop/internal/color"
	"github.com/rileyhilliard/rtop/internal/errors"
)

// Style selects a glyph set.
type Style int

const (
	Braille Style = iota
	Block
	Tty
)

// Styles lists every style in cycling order.
var Styles = []Style{Braille, Block, Tty}

func (s Style) String() string {
	switch s {
	case Braille:
		return "braille"
	case Block:
		return "block"
	case Tty:
		return "tty"
	}
	return fmt.Sprintf("Style(%d)", int(s))
}

// Next returns the style after s, wrapping around.
func (s Style) Next() Style {
	for i, st := range Styles {
		if st == s {
			return Styles[(i+1)%len(Styles)]
		}
	}
	return Block
}

// ParseStyle maps a config string to a Style. Callers fall back to Block
// on error.
func ParseStyle(text string) (Style, error) {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "braille":
		return Braille, nil
	case "block":
		return Block, nil
	case "tty":
		return Tty, nil
	}
	return Block, errors.New(errors.ErrUnknownGraphStyle,
		fmt.Sprintf("Unknown graph style %q", text),
		"Use one of: braille, block, tty")
}

// DefaultMax is the top of the value domain when Config.Max is zero.
const DefaultMax = 100.0

// Config describes one graph.
type Config struct {
	Width  int
	Height int
	Style  Style

	// Inverted fills from the top row down instead of from the bottom up.
	Inverted bool

	// Max is the value drawn as completely full. Zero means DefaultMax.
	Max float64

	// NoZero lights at least the lowest level of the baseline row for any
	// sample above zero, so small non-zero values stay visible.
	NoZero bool
}

func (c Config) domain() float64 {
	if c.Max <= 0 {
		return DefaultMax
	}
	return c.Max
}

func (c Config) validate() error {
	if c.Width < 1 || c.Height < 1 {
		return errors.New(errors.ErrInvalidDimensions,
			fmt.Sprintf("Graph needs at least 1x1 cells, got %dx%d", c.Width, c.Height),
			"")
	}
	return nil
}

// Render draws samples into cfg.Height lines of cfg.Width glyphs, top row
// first. Only the newest 2*Width samples are shown; shorter histories are
// padded on the left with the oldest sample.
func Render(samples []float64, cfg Config) ([]string, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	cols := columns(samples, cfg.Width)
	table := tableFor(cfg.Style, cfg.Inverted)
	top := cfg.domain()

	lines := make([]string, cfg.Height)
	var b strings.Builder
	for row := 0; row < cfg.Height; row++ {
		band := row
		if !cfg.Inverted {
			band = cfg.Height - 1 - row
		}
		low := top * float64(band) / float64(cfg.Height)
		high := top * float64(band+1) / float64(cfg.Height)
		noZero := cfg.NoZero && band == 0

		b.Reset()
		for _, pair := range cols {
			a := clamp(pair[0], top)
			z := clamp(pair[1], top)

			switch {
			case a >= high && z >= high:
				b.WriteString(table[24])
			case a <= low && z <= low && !(noZero && (a > 0 || z > 0)):
				b.WriteString(table[0])
			default:
				la := level(a, low, high, noZero)
				lz := level(z, low, high, noZero)
				b.WriteString(table[la*5+lz])
			}
		}
		lines[row] = b.String()
	}
	return lines, nil
}

// columns pairs up the last 2*width samples, padding as needed, and returns
// exactly width pairs.
func columns(samples []float64, width int) [][2]float64 {
	if len(samples) == 0 {
		samples = []float64{0}
	}
	if len(samples) > 2*width {
		samples = samples[len(samples)-2*width:]
	}

	vals := samples
	if len(vals)%2 == 1 {
		vals = append(append(make([]float64, 0, len(vals)+1), vals...), vals[len(vals)-1])
	}

	pairs := make([][2]float64, 0, width)
	for pad := width - len(vals)/2; pad > 0; pad-- {
		pairs = append(pairs, [2]float64{vals[0], vals[0]})
	}
	for i := 0; i+1 < len(vals); i += 2 {
		pairs = append(pairs, [2]float64{vals[i], vals[i+1]})
	}
	return pairs
}

// level quantizes v within the band [low, high] to 0..4.
func level(v, low, high float64, noZero bool) int {
	var l int
	switch {
	case v >= high:
		l = 4
	case v <= low:
		l = 0
	default:
		l = int(math.Round((v - low) / (high - low) * 4))
	}
	if l > 4 {
		l = 4
	}
	if l < 0 {
		l = 0
	}
	if noZero && l == 0 && v > 0 {
		l = 1
	}
	return l
}

func clamp(v, limit float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > limit {
		return limit
	}
	return v
}

// RowColors returns one color per output row, taken from g at the upper
// bound of the row's band, so the top of an upward graph gets the hot end
// of the gradient.
func RowColors(g *color.Gradient, cfg Config) []color.Color {
	if cfg.Height < 1 {
		return nil
	}
	out := make([]color.Color, cfg.Height)
	for row := range out {
		band := row
		if !cfg.Inverted {
			band = cfg.Height - 1 - row
		}
		out[row] = g.At(float64(band+1) * 100 / float64(cfg.Height))
	}
	return out
}
