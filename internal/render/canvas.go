package render

import (
	"fmt"
	"image"
	"io"
	"math"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"

	"github.com/jmylchreest/poptip/internal/display"
	"github.com/jmylchreest/poptip/internal/model"
	"github.com/jmylchreest/poptip/internal/scene"
)

var (
	windowColor    = model.MustParseColor("#eef1f5")
	containerColor = model.MustParseColor("#ffffff")
	viewColor      = model.MustParseColor("#c9d4e3")
	barColor       = model.MustParseColor("#5b6b82")
	outlineColor   = model.MustParseColor("#8a96a8")
	labelColor     = model.MustParseColor("#1f2733")
	labelFont      = model.Font{Size: 10}
)

// Scene paints the scene's views as labelled boxes and composites every
// attached bubble over them, honouring layer alpha and scale.
func (p *Painter) Scene(s *scene.Scene) *image.NRGBA {
	size := s.Window().Frame().Size
	w := int(math.Ceil(size.Width * p.ratio))
	h := int(math.Ceil(size.Height * p.ratio))

	dc := gg.NewContext(w, h)
	dc.SetColor(windowColor.NRGBA())
	dc.Clear()
	dc.Scale(p.ratio, p.ratio)

	s.Window().Walk(func(n *scene.Node) {
		if n == s.Window() {
			return
		}
		p.node(dc, n)
	})

	out := imaging.Clone(dc.Image())
	for _, layer := range s.Bubbles() {
		tip := layer.Tip()
		if tip == nil {
			continue
		}
		frame := layer.WindowFrame()
		sprite := p.Bubble(tip.Snapshot())
		out = Composite(out, sprite,
			image.Pt(int(math.Round(frame.Size.Width*p.ratio)), int(math.Round(frame.Size.Height*p.ratio))),
			image.Pt(int(math.Round(frame.MinX()*p.ratio)), int(math.Round(frame.MinY()*p.ratio))),
			layer.Alpha(), layer.Scale())
		p.logger.Debug("composited bubble", "id", tip.PresentationID(), "frame", frame)
	}
	return out
}

func (p *Painter) node(dc *gg.Context, n *scene.Node) {
	r := n.WindowFrame()
	fill := viewColor
	label := labelColor
	switch n.Kind {
	case display.ViewNavigationBar, display.ViewToolbar:
		fill = barColor
		label = model.White
	case display.ViewPlain:
		if len(n.Children()) > 0 {
			fill = containerColor
		}
	}

	dc.DrawRoundedRectangle(r.MinX(), r.MinY(), r.Size.Width, r.Size.Height, 4)
	dc.SetColor(fill.NRGBA())
	dc.FillPreserve()
	dc.SetColor(outlineColor.NRGBA())
	dc.SetLineWidth(1)
	dc.Stroke()

	if p.fonts == nil || n.Name == "" || len(n.Children()) > 0 {
		return
	}
	dc.Push()
	dc.Identity()
	dc.SetFontFace(p.fonts.Face(labelFont, p.ratio))
	dc.SetColor(label.NRGBA())
	c := r.Center()
	if tw, _ := dc.MeasureString(n.Name); tw <= r.Size.Width*p.ratio {
		dc.DrawStringAnchored(n.Name, c.X*p.ratio, c.Y*p.ratio, 0.5, 0.35)
	}
	dc.Pop()
}

// EncodePNG writes img as PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	if err := imaging.Encode(w, img, imaging.PNG); err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return nil
}
