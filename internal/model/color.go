package model

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Color is a non-premultiplied RGBA color with components in [0, 1].
// It marshals to and from "#rrggbb" or "#rrggbbaa".
type Color struct {
	R, G, B, A float64
}

// Common colors.
var (
	White = Color{R: 1, G: 1, B: 1, A: 1}
	Black = Color{A: 1}
	Clear = Color{}
)

// RGB returns an opaque color.
func RGB(r, g, b float64) Color {
	return Color{R: r, G: g, B: b, A: 1}
}

// Gray returns a color with equal channels, matching a two-component
// (white, alpha) color.
func Gray(white, alpha float64) Color {
	return Color{R: white, G: white, B: white, A: alpha}
}

// ParseColor parses "#rgb", "#rrggbb" or "#rrggbbaa". The leading '#' is optional.
func ParseColor(s string) (Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return Color{}, fmt.Errorf("invalid color %q: expected #rgb, #rrggbb or #rrggbbaa", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return Color{
		R: float64((v>>24)&0xff) / 255,
		G: float64((v>>16)&0xff) / 255,
		B: float64((v>>8)&0xff) / 255,
		A: float64(v&0xff) / 255,
	}, nil
}

// MustParseColor is ParseColor for literals; it panics on error.
func MustParseColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex formats the color as "#rrggbb", or "#rrggbbaa" when not fully opaque.
func (c Color) Hex() string {
	r, g, b, a := to8(c.R), to8(c.G), to8(c.B), to8(c.A)
	if a == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", r, g, b)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", r, g, b, a)
}

// Scale multiplies the color channels by k and adds lift, clamping to [0, 1].
// Alpha is preserved.
func (c Color) Scale(k, lift float64) Color {
	return Color{
		R: clamp01(c.R*k + lift),
		G: clamp01(c.G*k + lift),
		B: clamp01(c.B*k + lift),
		A: c.A,
	}
}

// WithAlpha returns c with its alpha replaced.
func (c Color) WithAlpha(a float64) Color {
	c.A = a
	return c
}

// NRGBA converts to the standard library's non-premultiplied color.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: to8(c.R), G: to8(c.G), B: to8(c.B), A: to8(c.A)}
}

// MarshalText implements encoding.TextMarshaler.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.Hex()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func to8(v float64) uint8 {
	return uint8(clamp01(v)*255 + 0.5)
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
