package layout

import (
	"math"

	"github.com/jmylchreest/poptip/internal/model"
)

// Clearance is added below the bubble and pointer in the overlay frame so a
// sliding bubble never touches the container edge.
const Clearance = 10

// Geometry holds the style parameters the solver and outline depend on.
type Geometry struct {
	CornerRadius float64
	PointerSize  float64
	SidePadding  float64
	TopMargin    float64
}

// GeometryOf extracts the solver parameters from a style.
func GeometryOf(s model.Style) Geometry {
	return Geometry{
		CornerRadius: s.CornerRadius,
		PointerSize:  s.PointerSize,
		SidePadding:  s.SidePadding,
		TopMargin:    s.TopMargin,
	}
}

// PlacementRequest is the input to Place. All coordinates are in the
// container's coordinate space, whose origin is the container's top-left.
type PlacementRequest struct {
	Container  model.Size
	Anchor     model.Rect
	BubbleSize model.Size
	Preferred  model.Direction
	Geometry   Geometry
}

// Placement is where a bubble goes.
type Placement struct {
	Direction model.PointerDirection `json:"direction" yaml:"direction"`
	// PointerY is the container y the pointer aims at.
	PointerY float64 `json:"pointer_y" yaml:"pointer_y"`
	// PointerX is the clamped pointer tip x in container coordinates.
	PointerX float64 `json:"pointer_x" yaml:"pointer_x"`
	// BubbleOrigin is the bubble's left edge and the overlay frame's top in
	// container coordinates.
	BubbleOrigin model.Point `json:"bubble_origin" yaml:"bubble_origin"`
	BubbleSize   model.Size  `json:"bubble_size" yaml:"bubble_size"`
	FullHeight   float64     `json:"full_height" yaml:"full_height"`
	// TargetPoint is the pointer tip relative to the bubble's left edge and the
	// overlay frame's top.
	TargetPoint model.Point `json:"target_point" yaml:"target_point"`
	// Frame is the overlay frame in container coordinates.
	Frame model.Rect `json:"frame" yaml:"frame"`
}

// ResolveDirection picks the pointer direction and the container y the
// pointer aims at.
//
// An anchor entirely above the container forces PointerUp at y 0; one
// entirely below forces PointerDown at the container's height. Otherwise the
// preferred direction is honoured, and DirectionAny picks PointerUp when
// there is more room below the anchor's top than above it.
func ResolveDirection(container model.Size, anchor model.Rect, preferred model.Direction) (model.PointerDirection, float64) {
	switch {
	case anchor.MaxY() < 0:
		return model.PointerUp, 0
	case anchor.MinY() > container.Height:
		return model.PointerDown, container.Height
	}

	top := anchor.MinY()
	switch preferred {
	case model.DirectionUp:
		return model.PointerUp, top + anchor.Size.Height
	case model.DirectionDown:
		return model.PointerDown, top
	default:
		sizeBelow := container.Height - top
		if sizeBelow > top {
			return model.PointerUp, top + anchor.Size.Height
		}
		return model.PointerDown, top
	}
}

// ClampHorizontal centres a bubble on anchorX, keeps it sidePadding inside the
// container, then pulls the pointer tip clear of the rounded corners. It
// returns the bubble's left edge and the tip x.
func ClampHorizontal(containerWidth, anchorX, bubbleWidth float64, g Geometry) (bubbleX, pointerX float64) {
	pointerX = anchorX
	bubbleX = pointerX - math.Round(bubbleWidth/2)

	if bubbleX < g.SidePadding {
		bubbleX = g.SidePadding
	}
	if bubbleX+bubbleWidth+g.SidePadding > containerWidth {
		bubbleX = containerWidth - bubbleWidth - g.SidePadding
	}

	if pointerX-g.PointerSize < bubbleX+g.CornerRadius {
		pointerX = bubbleX + g.CornerRadius + g.PointerSize
	}
	if pointerX+g.PointerSize > bubbleX+bubbleWidth-g.CornerRadius {
		pointerX = bubbleX + bubbleWidth - g.CornerRadius - g.PointerSize
	}
	return bubbleX, pointerX
}

// Place solves a placement request.
func Place(req PlacementRequest) Placement {
	g := req.Geometry
	dir, pointerY := ResolveDirection(req.Container, req.Anchor, req.Preferred)
	bubbleX, pointerX := ClampHorizontal(req.Container.Width, req.Anchor.Center().X, req.BubbleSize.Width, g)

	fullHeight := req.BubbleSize.Height + g.PointerSize + Clearance

	var bubbleY float64
	var target model.Point
	if dir == model.PointerUp {
		bubbleY = g.TopMargin + pointerY
		target = model.Point{X: pointerX - bubbleX, Y: 0}
	} else {
		bubbleY = pointerY - fullHeight
		target = model.Point{X: pointerX - bubbleX, Y: fullHeight - 2}
	}

	return Placement{
		Direction:    dir,
		PointerY:     pointerY,
		PointerX:     pointerX,
		BubbleOrigin: model.Point{X: bubbleX, Y: bubbleY},
		BubbleSize:   req.BubbleSize,
		FullHeight:   fullHeight,
		TargetPoint:  target,
		Frame: model.Rect{
			Origin: model.Point{X: bubbleX - g.SidePadding, Y: bubbleY},
			Size:   model.Size{Width: req.BubbleSize.Width + g.SidePadding*2, Height: fullHeight},
		},
	}
}
