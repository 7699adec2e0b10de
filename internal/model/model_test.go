package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    Color
		wantHex string
	}{
		{"#ffffff", White, "#ffffff"},
		{"000000", Black, "#000000"},
		{"#f00", RGB(1, 0, 0), "#ff0000"},
		{"#00000080", Color{A: 128.0 / 255}, "#00000080"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			c, err := ParseColor(tt.in)
			require.NoError(t, err)
			assert.InDelta(t, tt.want.R, c.R, 1e-9)
			assert.InDelta(t, tt.want.G, c.G, 1e-9)
			assert.InDelta(t, tt.want.B, c.B, 1e-9)
			assert.InDelta(t, tt.want.A, c.A, 1e-9)
			assert.Equal(t, tt.wantHex, c.Hex())
		})
	}
}

func TestParseColor_Invalid(t *testing.T) {
	for _, in := range []string{"", "#12", "#zzzzzz", "#1234567"} {
		_, err := ParseColor(in)
		assert.Error(t, err, in)
	}
}

func TestColor_Scale(t *testing.T) {
	c := Color{R: 0.5, G: 0.9, B: 0.1, A: 0.7}.Scale(1.16, 0.25)

	assert.InDelta(t, 0.83, c.R, 1e-9)
	assert.InDelta(t, 1.0, c.G, 1e-9)
	assert.InDelta(t, 0.366, c.B, 1e-9)
	assert.InDelta(t, 0.7, c.A, 1e-9)
}

func TestColor_TextRoundTrip(t *testing.T) {
	var c Color
	require.NoError(t, c.UnmarshalText([]byte("#336699")))
	text, err := c.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "#336699", string(text))
}

func TestDirection_Text(t *testing.T) {
	var d Direction
	require.NoError(t, d.UnmarshalText([]byte("down")))
	assert.Equal(t, DirectionDown, d)
	assert.Equal(t, "down", d.String())

	assert.Error(t, d.UnmarshalText([]byte("sideways")))
	assert.Equal(t, []string{"any", "up", "down"}, ValidDirections())
}

func TestPointerDirection(t *testing.T) {
	assert.Equal(t, "up", PointerUp.String())
	assert.Equal(t, DirectionDown, PointerDown.Request())
	assert.Equal(t, DirectionUp, PointerUp.Request())

	_, err := PointerDirection(0).MarshalText()
	assert.Error(t, err)
}

func TestAnimationAndAlignment_Text(t *testing.T) {
	var a Animation
	require.NoError(t, a.UnmarshalText([]byte("pop")))
	assert.Equal(t, AnimationPop, a)

	var al Alignment
	require.NoError(t, al.UnmarshalText([]byte("right")))
	assert.Equal(t, AlignRight, al)

	var dc DeviceClass
	require.NoError(t, dc.UnmarshalText([]byte("regular")))
	assert.Equal(t, DeviceRegular, dc)
}

func TestStyle_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Style)
		wantErr bool
	}{
		{"default is valid", func(s *Style) {}, false},
		{"negative corner radius", func(s *Style) { s.CornerRadius = -1 }, true},
		{"negative max width", func(s *Style) { s.MaxWidth = -10 }, true},
		{"zero title size", func(s *Style) { s.TitleFont.Size = 0 }, true},
		{"zero text size", func(s *Style) { s.TextFont.Size = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultStyle()
			tt.modify(&s)
			err := s.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidStyle)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestStyle_ShadowParams(t *testing.T) {
	s := DefaultStyle()
	assert.Zero(t, s.ShadowParams().Opacity)

	s.Shadow = true
	sh := s.ShadowParams()
	assert.InDelta(t, 0.3, sh.Opacity, 1e-9)
	assert.InDelta(t, 2, sh.Radius, 1e-9)
	assert.Equal(t, Pt(0, 3), sh.Offset)
}

func TestRect(t *testing.T) {
	r := R(10, 20, 30, 40)

	assert.InDelta(t, 40, r.MaxX(), 1e-9)
	assert.InDelta(t, 60, r.MaxY(), 1e-9)
	assert.Equal(t, Pt(25, 40), r.Center())
	assert.True(t, r.Contains(Pt(10, 20)))
	assert.False(t, r.Contains(Pt(40, 20)))
	assert.Equal(t, R(15, 25, 20, 30), r.Inset(5, 5))
	assert.Equal(t, R(11, 22, 30, 40), r.Offset(1, 2))
	assert.Equal(t, R(0, 0, 3, 3), R(0.5, 0.2, 2, 2.1).Integral())
}

func TestContent(t *testing.T) {
	c := Content{Title: "Hello", Message: "World"}
	assert.True(t, c.HasTitle())
	assert.True(t, c.HasMessage())
	assert.False(t, c.IsEmpty())
	assert.True(t, Content{}.IsEmpty())

	assert.Equal(t, "Hello", c.Summary(0))
	assert.Equal(t, "a b...", Content{Message: "a\nbcdefgh"}.Summary(6))
}

func TestNewPresentationID(t *testing.T) {
	a, err := NewPresentationID()
	require.NoError(t, err)
	b, err := NewPresentationID()
	require.NoError(t, err)

	assert.Len(t, a, 26)
	assert.NotEqual(t, a, b)
}

func TestDuration_YAML(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{"d: 3000", 3 * time.Second},
		{"d: 0", 0},
		{"d: 2s", 2 * time.Second},
		{"d: \"1m30s\"", 90 * time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var doc struct {
				D Duration `yaml:"d"`
			}
			require.NoError(t, yaml.Unmarshal([]byte(tt.in), &doc))
			assert.Equal(t, tt.want, doc.D.Duration())
		})
	}

	var doc struct {
		D Duration `yaml:"d"`
	}
	assert.Error(t, yaml.Unmarshal([]byte("d: later"), &doc))
	assert.Error(t, yaml.Unmarshal([]byte("d: [1, 2]"), &doc))
}
