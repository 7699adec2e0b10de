package render

import (
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/jmylchreest/poptip/internal/layout"
	"github.com/jmylchreest/poptip/internal/model"
)

type faceKey struct {
	size float64
	bold bool
}

// Fonts holds the parsed Go fonts and caches faces by size and weight.
// It is safe for concurrent use.
type Fonts struct {
	regular *truetype.Font
	bold    *truetype.Font

	mu    sync.Mutex
	faces map[faceKey]font.Face
}

var _ layout.Measurer = (*Fonts)(nil)

// LoadFonts parses the bundled Go regular and bold fonts.
func LoadFonts() (*Fonts, error) {
	regular, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse regular font: %w", err)
	}
	bold, err := truetype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse bold font: %w", err)
	}
	return &Fonts{
		regular: regular,
		bold:    bold,
		faces:   make(map[faceKey]font.Face),
	}, nil
}

// Face returns the face for f rasterised at scale device pixels per point.
func (fs *Fonts) Face(f model.Font, scale float64) font.Face {
	key := faceKey{size: f.Size * scale, bold: f.Bold}

	fs.mu.Lock()
	defer fs.mu.Unlock()

	if face, ok := fs.faces[key]; ok {
		return face
	}
	ttf := fs.regular
	if f.Bold {
		ttf = fs.bold
	}
	face := truetype.NewFace(ttf, &truetype.Options{Size: key.size})
	fs.faces[key] = face
	return face
}

// MeasureText returns the bounding box of text in points. Word wrap breaks
// at maxWidth; clip mode keeps each paragraph on one line and caps the width
// at maxWidth. Alignment does not change the box.
func (fs *Fonts) MeasureText(text string, f model.Font, maxWidth float64, mode model.LineBreakMode, _ model.Alignment) model.Size {
	if text == "" || f.Size <= 0 {
		return model.Size{}
	}
	dc := gg.NewContext(1, 1)
	dc.SetFontFace(fs.Face(f, 1))

	var lines []string
	if mode == model.BreakClip {
		lines = strings.Split(text, "\n")
	} else {
		lines = dc.WordWrap(text, maxWidth)
	}

	var width float64
	for _, line := range lines {
		w, _ := dc.MeasureString(line)
		width = math.Max(width, w)
	}
	if mode == model.BreakClip && maxWidth > 0 {
		width = math.Min(width, maxWidth)
	}

	return model.Size{
		Width:  math.Ceil(width),
		Height: math.Ceil(float64(len(lines)) * dc.FontHeight()),
	}
}
