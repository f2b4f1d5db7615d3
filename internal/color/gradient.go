package color

import (
	"fmt"
	"math"

	"github.com/rileyhilliard/rtop/internal/errors"
)

// DefaultSteps covers percentages 0..100 inclusive.
const DefaultSteps = 101

// Gradient is a precomputed palette interpolated between two or more
// anchors. Anchors split the 0..100 domain into equal segments, each
// interpolated independently. A Gradient is immutable once built.
type Gradient struct {
	anchors []Color
	steps   []Color
}

// NewGradient builds a gradient with the given number of steps.
func NewGradient(anchors []Color, steps int) (*Gradient, error) {
	if len(anchors) < 2 {
		return nil, errors.New(errors.ErrInvalidGradient,
			fmt.Sprintf("A gradient needs at least 2 anchors, got %d", len(anchors)),
			"Give the metric a start and an end color")
	}
	if steps < 2 {
		return nil, errors.New(errors.ErrInvalidGradient,
			fmt.Sprintf("A gradient needs at least 2 steps, got %d", steps),
			"")
	}

	g := &Gradient{
		anchors: append([]Color(nil), anchors...),
		steps:   make([]Color, steps),
	}
	for i := range g.steps {
		pos := float64(i) * 100 / float64(steps-1)
		g.steps[i] = interpolate(g.anchors, pos)
	}
	return g, nil
}

// MustGradient is NewGradient for compiled-in anchors. It panics on error.
func MustGradient(anchors []Color, steps int) *Gradient {
	g, err := NewGradient(anchors, steps)
	if err != nil {
		panic(err)
	}
	return g
}

// interpolate evaluates the gradient at pos (0..100) directly from anchors.
func interpolate(anchors []Color, pos float64) Color {
	pos = clampPercent(pos)
	segments := len(anchors) - 1
	width := 100 / float64(segments)

	seg := int(math.Floor(pos / width))
	if seg >= segments {
		seg = segments - 1
	}
	offset := (pos - float64(seg)*width) / width
	return anchors[seg].Blend(anchors[seg+1], offset)
}

// At returns the color at position, clamped to 0..100. The result is the
// nearest precomputed step, so a gradient only resolves as many distinct
// colors as it has steps. With DefaultSteps that is one per whole percent
// and 50.4 reads the same color as 50.
func (g *Gradient) At(position float64) Color {
	position = clampPercent(position)
	idx := int(math.Round(position / 100 * float64(len(g.steps)-1)))
	return g.steps[idx]
}

// Step returns the i-th precomputed color, clamped to the valid range.
func (g *Gradient) Step(i int) Color {
	if i < 0 {
		i = 0
	}
	if i >= len(g.steps) {
		i = len(g.steps) - 1
	}
	return g.steps[i]
}

// Steps returns the gradient's resolution.
func (g *Gradient) Steps() int {
	return len(g.steps)
}

// Anchors returns a copy of the anchor colors.
func (g *Gradient) Anchors() []Color {
	return append([]Color(nil), g.anchors...)
}

// Solid builds a two-anchor gradient of a single color, used when gradients
// are turned off.
func Solid(c Color) *Gradient {
	return MustGradient([]Color{c, c}, 2)
}

func clampPercent(p float64) float64 {
	if math.IsNaN(p) || p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
