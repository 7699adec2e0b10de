package render

import (
	"image"
	"log/slog"
	"math"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"

	"github.com/jmylchreest/poptip/internal/display"
	"github.com/jmylchreest/poptip/internal/layout"
	"github.com/jmylchreest/poptip/internal/model"
)

const (
	// spriteMargin leaves room around the overlay frame for the drop shadow.
	spriteMargin = 8.0

	// innerBleed is how far past the bubble the 3D highlight and shadow
	// source shape extends.
	innerBleed = 30.0

	innerBlur = 4.0
)

var (
	innerHighlight = model.Color{R: 1, G: 1, B: 1, A: 0.75}
	innerShadow    = model.Color{A: 0.4}
)

// Sprite is a painted overlay. Origin is where the overlay frame's top-left
// corner lies inside Image, in device pixels.
type Sprite struct {
	Image  *image.NRGBA
	Origin image.Point
}

// Painter draws bubbles.
type Painter struct {
	fonts  *Fonts
	ratio  float64
	logger *slog.Logger
}

// NewPainter creates a painter producing ratio device pixels per point.
// A ratio below 1 is treated as 1.
func NewPainter(fonts *Fonts, ratio float64, logger *slog.Logger) *Painter {
	if logger == nil {
		logger = slog.Default()
	}
	if ratio < 1 {
		ratio = 1
	}
	return &Painter{fonts: fonts, ratio: ratio, logger: logger}
}

// Ratio returns the device pixel ratio.
func (p *Painter) Ratio() float64 { return p.ratio }

// Bubble paints a snapshot's overlay: drop shadow, body fill, 3D edges,
// border, title and message.
func (p *Painter) Bubble(snap display.Snapshot) Sprite {
	pl := snap.Placement
	g := snap.Geometry()
	w := int(math.Ceil((pl.Frame.Size.Width + spriteMargin*2) * p.ratio))
	h := int(math.Ceil((pl.Frame.Size.Height + spriteMargin*2) * p.ratio))
	outline := layout.BubbleOutline(pl, g)

	dc := gg.NewContext(w, h)

	if snap.Shadow.Opacity > 0 {
		shadow := p.layer(w, h)
		traceOutline(shadow, outline, snap.Shadow.Offset)
		shadow.SetColor(snap.Shadow.Color.WithAlpha(snap.Shadow.Color.A * snap.Shadow.Opacity).NRGBA())
		shadow.Fill()
		dc.DrawImage(imaging.Blur(shadow.Image(), snap.Shadow.Radius*p.ratio/2), 0, 0)
	}

	dc.Scale(p.ratio, p.ratio)
	dc.Translate(spriteMargin, spriteMargin)

	traceOutline(dc, outline, model.Point{})
	if snap.Style.Gradient {
		dc.SetFillStyle(p.gradient(snap, pl, g))
	} else {
		dc.SetColor(snap.Style.PopColor.NRGBA())
	}
	dc.Fill()

	if snap.Style.Style3D {
		p.innerEdges(dc, w, h, outline)
	}

	if snap.Style.BorderWidth > 0 {
		traceOutline(dc, outline, model.Point{})
		dc.SetColor(snap.Style.BorderColor.NRGBA())
		dc.SetLineWidth(snap.Style.BorderWidth)
		dc.Stroke()
	}

	p.text(dc, snap, layout.ContentFrame(pl, g))

	origin := int(math.Round(spriteMargin * p.ratio))
	return Sprite{
		Image:  imaging.Clone(dc.Image()),
		Origin: image.Pt(origin, origin),
	}
}

// layer returns a transparent context with the sprite transform applied.
func (p *Painter) layer(w, h int) *gg.Context {
	dc := gg.NewContext(w, h)
	dc.Scale(p.ratio, p.ratio)
	dc.Translate(spriteMargin, spriteMargin)
	return dc
}

// gradient builds the five-stop vertical body gradient. Gradient coordinates
// are in device pixels.
func (p *Painter) gradient(snap display.Snapshot, pl layout.Placement, g layout.Geometry) gg.Gradient {
	bubble := layout.BubbleFrame(pl, g)
	height := pl.Frame.Size.Height
	mid := (bubble.MinY() + bubble.Size.Height/2) / height

	var lift float64
	if snap.Highlight {
		lift = 0.25
	}
	pop := snap.Style.PopColor

	top := spriteMargin * p.ratio
	grad := gg.NewLinearGradient(0, top, 0, top+height*p.ratio)
	grad.AddColorStop(0, pop.Scale(1.16, lift).NRGBA())
	grad.AddColorStop(mid-0.03, pop.Scale(1.16, lift).NRGBA())
	grad.AddColorStop(mid, pop.Scale(1.08, lift).NRGBA())
	grad.AddColorStop(mid+0.03, pop.Scale(1, lift).NRGBA())
	grad.AddColorStop(1, pop.Scale(1, lift).NRGBA())
	return grad
}

// innerEdges paints a light edge along the top inside of the bubble and a
// dark one along the bottom. Each is the blurred, offset region outside the
// bubble, clipped to the bubble.
func (p *Painter) innerEdges(dc *gg.Context, w, h int, outline layout.Outline) {
	edges := []struct {
		color  model.Color
		offset model.Point
	}{
		{innerHighlight, model.Pt(0, 4)},
		{innerShadow, model.Pt(0, -4)},
	}

	bounds := outline.Bounds().Inset(-innerBleed, -innerBleed)
	for _, e := range edges {
		src := p.layer(w, h)
		src.SetFillRuleEvenOdd()
		src.DrawRectangle(bounds.MinX()+e.offset.X, bounds.MinY()+e.offset.Y, bounds.Size.Width, bounds.Size.Height)
		traceOutline(src, outline, e.offset)
		src.SetColor(e.color.NRGBA())
		src.Fill()

		traceOutline(dc, outline, model.Point{})
		dc.Clip()
		dc.Push()
		dc.Identity()
		dc.DrawImage(imaging.Blur(src.Image(), innerBlur*p.ratio/2), 0, 0)
		dc.Pop()
		dc.ResetClip()
	}
}

// text draws the clipped title and the wrapped message inside content. Text
// is drawn in device space with faces rasterised at the device ratio.
func (p *Painter) text(dc *gg.Context, snap display.Snapshot, content model.Rect) {
	if p.fonts == nil {
		return
	}
	style := snap.Style
	r := p.ratio
	x := (content.MinX() + spriteMargin) * r
	y := (content.MinY() + spriteMargin) * r
	width := content.Size.Width * r

	dc.Push()
	dc.Identity()
	defer dc.Pop()

	if snap.Content.HasTitle() {
		dc.SetFontFace(p.fonts.Face(style.TitleFont, r))
		dc.SetColor(style.TitleColor.NRGBA())
		dc.DrawRectangle(x, y, width, snap.Sizing.TitleSize.Height*r)
		dc.Clip()
		lineY := y
		for _, line := range strings.Split(snap.Content.Title, "\n") {
			ax, lx := anchorX(style.TitleAlignment, x, width)
			dc.DrawStringAnchored(line, lx, lineY, ax, 1)
			lineY += dc.FontHeight()
		}
		dc.ResetClip()
		y += snap.Sizing.TitleSize.Height * r
	}

	if snap.Content.HasMessage() {
		dc.SetFontFace(p.fonts.Face(style.TextFont, r))
		dc.SetColor(style.TextColor.NRGBA())
		dc.DrawStringWrapped(snap.Content.Message, x, y, 0, 0, width, 1, ggAlign(style.TextAlignment))
	}
}

func anchorX(a model.Alignment, x, width float64) (ax, lx float64) {
	switch a {
	case model.AlignLeft:
		return 0, x
	case model.AlignRight:
		return 1, x + width
	default:
		return 0.5, x + width/2
	}
}

func ggAlign(a model.Alignment) gg.Align {
	switch a {
	case model.AlignLeft:
		return gg.AlignLeft
	case model.AlignRight:
		return gg.AlignRight
	default:
		return gg.AlignCenter
	}
}

// traceOutline replays outline segments as a gg path, shifted by offset.
func traceOutline(dc *gg.Context, o layout.Outline, offset model.Point) {
	dc.NewSubPath()
	for _, s := range o {
		switch s.Kind {
		case layout.SegmentMove:
			dc.MoveTo(s.To.X+offset.X, s.To.Y+offset.Y)
		case layout.SegmentLine:
			dc.LineTo(s.To.X+offset.X, s.To.Y+offset.Y)
		case layout.SegmentArc:
			dc.DrawArc(s.Center.X+offset.X, s.Center.Y+offset.Y, s.Radius, s.Start, s.End)
		case layout.SegmentClose:
			dc.ClosePath()
		}
	}
}

// Composite draws a sprite onto dst with its overlay frame's top-left at
// origin (device pixels), scaled about the frame centre and faded by alpha.
func Composite(dst *image.NRGBA, s Sprite, frameSize image.Point, origin image.Point, alpha, scale float64) *image.NRGBA {
	img := s.Image
	at := origin.Sub(s.Origin)
	if scale > 0 && scale != 1 {
		b := img.Bounds()
		sw := int(math.Round(float64(b.Dx()) * scale))
		sh := int(math.Round(float64(b.Dy()) * scale))
		if sw < 1 || sh < 1 {
			return dst
		}
		img = imaging.Resize(img, sw, sh, imaging.Linear)
		centre := origin.Add(image.Pt(frameSize.X/2, frameSize.Y/2))
		spriteCentre := image.Pt(
			int(math.Round((float64(s.Origin.X)+float64(frameSize.X)/2)*scale)),
			int(math.Round((float64(s.Origin.Y)+float64(frameSize.Y)/2)*scale)),
		)
		at = centre.Sub(spriteCentre)
	}
	return imaging.Overlay(dst, img, at, clamp(alpha))
}

func clamp(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
