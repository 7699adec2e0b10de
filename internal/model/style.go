package model

import (
	"errors"
	"fmt"
)

// Font describes a text face by size in points and weight.
type Font struct {
	Size float64 `json:"size" yaml:"size" toml:"size"`
	Bold bool    `json:"bold" yaml:"bold" toml:"bold"`
}

// Default style values.
const (
	DefaultCornerRadius = 10
	DefaultPointerSize  = 12
	DefaultSidePadding  = 2
	DefaultTopMargin    = 2
	DefaultBorderWidth  = 0.1
	DefaultTitleSize    = 16
	DefaultTextSize     = 14
)

// Style holds every visual parameter of a bubble.
type Style struct {
	PopColor       Color     `json:"pop_color" yaml:"pop_color" toml:"pop_color"`
	TitleColor     Color     `json:"title_color" yaml:"title_color" toml:"title_color"`
	TitleFont      Font      `json:"title_font" yaml:"title_font" toml:"title_font"`
	TitleAlignment Alignment `json:"title_alignment" yaml:"title_alignment" toml:"title_alignment"`
	TextColor      Color     `json:"text_color" yaml:"text_color" toml:"text_color"`
	TextFont       Font      `json:"text_font" yaml:"text_font" toml:"text_font"`
	TextAlignment  Alignment `json:"text_alignment" yaml:"text_alignment" toml:"text_alignment"`
	BorderColor    Color     `json:"border_color" yaml:"border_color" toml:"border_color"`
	BorderWidth    float64   `json:"border_width" yaml:"border_width" toml:"border_width"`
	CornerRadius   float64   `json:"corner_radius" yaml:"corner_radius" toml:"corner_radius"`
	PointerSize    float64   `json:"pointer_size" yaml:"pointer_size" toml:"pointer_size"`
	SidePadding    float64   `json:"side_padding" yaml:"side_padding" toml:"side_padding"`
	TopMargin      float64   `json:"top_margin" yaml:"top_margin" toml:"top_margin"`
	MaxWidth       float64   `json:"max_width" yaml:"max_width" toml:"max_width"` // 0 = unset
	Gradient       bool      `json:"gradient" yaml:"gradient" toml:"gradient"`
	Style3D        bool      `json:"style_3d" yaml:"style_3d" toml:"style_3d"`
	Shadow         bool      `json:"shadow" yaml:"shadow" toml:"shadow"`
}

// DefaultStyle returns the stock white bubble with black text.
func DefaultStyle() Style {
	return Style{
		PopColor:       White,
		TitleColor:     Black,
		TitleFont:      Font{Size: DefaultTitleSize, Bold: true},
		TitleAlignment: AlignCenter,
		TextColor:      Black,
		TextFont:       Font{Size: DefaultTextSize},
		TextAlignment:  AlignCenter,
		BorderColor:    Black,
		BorderWidth:    DefaultBorderWidth,
		CornerRadius:   DefaultCornerRadius,
		PointerSize:    DefaultPointerSize,
		SidePadding:    DefaultSidePadding,
		TopMargin:      DefaultTopMargin,
	}
}

// ErrInvalidStyle is wrapped by every Style validation error.
var ErrInvalidStyle = errors.New("invalid style")

// Validate rejects negative geometry and non-positive font sizes.
func (s Style) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"border_width", s.BorderWidth},
		{"corner_radius", s.CornerRadius},
		{"pointer_size", s.PointerSize},
		{"side_padding", s.SidePadding},
		{"top_margin", s.TopMargin},
		{"max_width", s.MaxWidth},
	}
	for _, f := range fields {
		if f.value < 0 {
			return fmt.Errorf("%w: %s must not be negative, got %v", ErrInvalidStyle, f.name, f.value)
		}
	}
	if s.TitleFont.Size <= 0 {
		return fmt.Errorf("%w: title_font.size must be positive", ErrInvalidStyle)
	}
	if s.TextFont.Size <= 0 {
		return fmt.Errorf("%w: text_font.size must be positive", ErrInvalidStyle)
	}
	return nil
}

// Shadow describes a drop shadow for the paint backend.
type Shadow struct {
	Offset  Point
	Radius  float64
	Color   Color
	Opacity float64
}

// ShadowParams returns the drop shadow a painter should apply for the style.
// A disabled shadow has zero opacity.
func (s Style) ShadowParams() Shadow {
	if !s.Shadow {
		return Shadow{Color: Black}
	}
	return Shadow{
		Offset:  Point{X: 0, Y: 3},
		Radius:  2,
		Color:   Black,
		Opacity: 0.3,
	}
}
