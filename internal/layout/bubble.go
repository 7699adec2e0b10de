package layout

import (
	"math"

	"github.com/jmylchreest/poptip/internal/model"
)

// BubbleFrame returns the rounded rectangle inside the overlay frame, in
// overlay-local coordinates.
func BubbleFrame(p Placement, g Geometry) model.Rect {
	y := p.TargetPoint.Y + g.PointerSize
	if p.Direction == model.PointerDown {
		y = p.TargetPoint.Y - g.PointerSize - p.BubbleSize.Height
	}
	return model.Rect{
		Origin: model.Point{X: g.SidePadding, Y: y},
		Size:   p.BubbleSize,
	}
}

// ContentFrame returns the area text and custom content are laid out in:
// the bubble inset by the corner radius on every side.
func ContentFrame(p Placement, g Geometry) model.Rect {
	return BubbleFrame(p, g).Inset(g.CornerRadius, g.CornerRadius)
}

// SegmentKind identifies an outline step.
type SegmentKind int

const (
	SegmentMove SegmentKind = iota
	SegmentLine
	SegmentArc
	SegmentClose
)

// Segment is one step of a bubble outline. Arcs run clockwise (in y-down
// space) from Start to End radians around Center.
type Segment struct {
	Kind   SegmentKind
	To     model.Point
	Center model.Point
	Radius float64
	Start  float64
	End    float64
}

// Outline is a closed bubble path: pointer tip, one pointer edge, four
// quarter-circle corners, the other pointer edge.
type Outline []Segment

// BubbleOutline builds the outline in overlay-local coordinates.
func BubbleOutline(p Placement, g Geometry) Outline {
	b := BubbleFrame(p, g)
	r := g.CornerRadius
	tipX := p.TargetPoint.X + g.SidePadding
	tipY := p.TargetPoint.Y

	topLeft := model.Point{X: b.MinX() + r, Y: b.MinY() + r}
	topRight := model.Point{X: b.MaxX() - r, Y: b.MinY() + r}
	bottomRight := model.Point{X: b.MaxX() - r, Y: b.MaxY() - r}
	bottomLeft := model.Point{X: b.MinX() + r, Y: b.MaxY() - r}

	arc := func(c model.Point, start float64) Segment {
		return Segment{Kind: SegmentArc, Center: c, Radius: r, Start: start, End: start + math.Pi/2}
	}

	if p.Direction == model.PointerUp {
		return Outline{
			{Kind: SegmentMove, To: model.Point{X: tipX, Y: tipY}},
			{Kind: SegmentLine, To: model.Point{X: tipX + g.PointerSize, Y: tipY + g.PointerSize}},
			arc(topRight, -math.Pi/2),
			arc(bottomRight, 0),
			arc(bottomLeft, math.Pi/2),
			arc(topLeft, math.Pi),
			{Kind: SegmentLine, To: model.Point{X: tipX - g.PointerSize, Y: tipY + g.PointerSize}},
			{Kind: SegmentClose},
		}
	}
	return Outline{
		{Kind: SegmentMove, To: model.Point{X: tipX, Y: tipY}},
		{Kind: SegmentLine, To: model.Point{X: tipX - g.PointerSize, Y: tipY - g.PointerSize}},
		arc(bottomLeft, math.Pi/2),
		arc(topLeft, math.Pi),
		arc(topRight, 3*math.Pi/2),
		arc(bottomRight, 0),
		{Kind: SegmentLine, To: model.Point{X: tipX + g.PointerSize, Y: tipY - g.PointerSize}},
		{Kind: SegmentClose},
	}
}

// Bounds returns the smallest rectangle containing every vertex and arc of
// the outline.
func (o Outline) Bounds() model.Rect {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	add := func(p model.Point) {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	for _, s := range o {
		switch s.Kind {
		case SegmentMove, SegmentLine:
			add(s.To)
		case SegmentArc:
			add(model.Point{X: s.Center.X + s.Radius*math.Cos(s.Start), Y: s.Center.Y + s.Radius*math.Sin(s.Start)})
			add(model.Point{X: s.Center.X + s.Radius*math.Cos(s.End), Y: s.Center.Y + s.Radius*math.Sin(s.End)})
		}
	}
	if math.IsInf(minX, 1) {
		return model.Rect{}
	}
	return model.R(minX, minY, maxX-minX, maxY-minY)
}
