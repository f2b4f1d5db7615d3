// Package color parses theme colors and builds interpolated gradients.
//
// Colors are plain 8-bit RGB triples. Anything that came from user input is
// parsed here and resolved to a Color before it reaches a renderer, so the
// render path never sees an unparsable value.
package color

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/rileyhilliard/rtop/internal/errors"
)

// Color is an RGB triple.
type Color struct {
	R, G, B uint8
}

// RGB builds a Color from channel values.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// Gray builds a Color with all three channels set to v.
func Gray(v uint8) Color {
	return Color{R: v, G: v, B: v}
}

// Parse accepts "#RRGGBB", "#RGB" (each digit doubled) and "#GG" (a gray
// level applied to all channels). Digits are case-insensitive and
// surrounding whitespace is ignored.
func Parse(text string) (Color, error) {
	s := strings.TrimSpace(text)
	if !strings.HasPrefix(s, "#") {
		return Color{}, invalid(text)
	}
	hex := s[1:]

	switch len(hex) {
	case 6:
		r, errR := parseChannel(hex[0:2])
		g, errG := parseChannel(hex[2:4])
		b, errB := parseChannel(hex[4:6])
		if errR != nil || errG != nil || errB != nil {
			return Color{}, invalid(text)
		}
		return Color{R: r, G: g, B: b}, nil
	case 3:
		r, errR := parseChannel(strings.Repeat(hex[0:1], 2))
		g, errG := parseChannel(strings.Repeat(hex[1:2], 2))
		b, errB := parseChannel(strings.Repeat(hex[2:3], 2))
		if errR != nil || errG != nil || errB != nil {
			return Color{}, invalid(text)
		}
		return Color{R: r, G: g, B: b}, nil
	case 2:
		v, err := parseChannel(hex)
		if err != nil {
			return Color{}, invalid(text)
		}
		return Gray(v), nil
	}

	return Color{}, invalid(text)
}

func parseChannel(s string) (uint8, error) {
	v, err := strconv.ParseUint(s, 16, 8)
	if err != nil {
		return 0, err
	}
	return uint8(v), nil
}

func invalid(text string) error {
	return errors.New(errors.ErrInvalidColor,
		fmt.Sprintf("Can't parse color %q", text),
		"Use a hex color like #RRGGBB, #RGB or #GG")
}

// ParseOr returns the parsed color, or fallback when text is not a valid color.
func ParseOr(text string, fallback Color) Color {
	c, err := Parse(text)
	if err != nil {
		return fallback
	}
	return c
}

// MustParse is Parse for compiled-in tables. It panics on bad input.
func MustParse(text string) Color {
	c, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex returns the color as lowercase "#rrggbb".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// String implements fmt.Stringer.
func (c Color) String() string {
	return c.Hex()
}

// Lipgloss converts the color for use in lipgloss styles. lipgloss degrades
// it to the terminal's color profile at render time.
func (c Color) Lipgloss() lipgloss.Color {
	return lipgloss.Color(c.Hex())
}

// Blend linearly interpolates each channel from c towards other. t is
// clamped to [0, 1]; t=0 returns c and t=1 returns other.
func (c Color) Blend(other Color, t float64) Color {
	if t <= 0 {
		return c
	}
	if t >= 1 {
		return other
	}
	return fromColorful(c.colorful().BlendRgb(other.colorful(), t))
}

func (c Color) colorful() colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
}

func fromColorful(cf colorful.Color) Color {
	r, g, b := cf.Clamped().RGB255()
	return Color{R: r, G: g, B: b}
}
