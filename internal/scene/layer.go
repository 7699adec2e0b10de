package scene

import (
	"github.com/jmylchreest/poptip/internal/display"
	"github.com/jmylchreest/poptip/internal/model"
)

// LayerKind distinguishes bubbles from tap-catchers.
type LayerKind int

const (
	LayerBubble LayerKind = iota
	LayerTapCatcher
)

func (k LayerKind) String() string {
	if k == LayerTapCatcher {
		return "tap-catcher"
	}
	return "bubble"
}

// Layer is an overlay attached to a container node.
type Layer struct {
	kind      LayerKind
	scene     *Scene
	container *Node
	tip       *display.PopTip
	onTap     func()

	frame        model.Rect
	alpha        float64
	scale        float64
	content      *Node
	contentFrame model.Rect
	repaints     int
	detached     bool
}

var _ display.Overlay = (*Layer)(nil)

func (l *Layer) Kind() LayerKind { return l.kind }

// Container returns the node the layer was attached to.
func (l *Layer) Container() *Node { return l.container }

// Tip returns the PopTip a bubble layer belongs to, nil for tap-catchers.
func (l *Layer) Tip() *display.PopTip { return l.tip }

func (l *Layer) Frame() model.Rect { return l.frame }

func (l *Layer) SetFrame(r model.Rect) {
	l.frame = r
	l.scene.invalidate(l)
}

// WindowFrame returns the layer's frame in window coordinates.
func (l *Layer) WindowFrame() model.Rect {
	r := l.frame
	if l.container != nil {
		r.Origin = r.Origin.Add(l.container.WindowOrigin())
	}
	return r
}

func (l *Layer) Alpha() float64 { return l.alpha }

func (l *Layer) SetAlpha(a float64) {
	l.alpha = a
	l.scene.invalidate(l)
}

func (l *Layer) Scale() float64 { return l.scale }

func (l *Layer) SetScale(k float64) {
	l.scale = k
	l.scene.invalidate(l)
}

// Embed positions a content node at an overlay-local frame.
func (l *Layer) Embed(content display.View, frame model.Rect) {
	n := asNode(content)
	if n == nil {
		return
	}
	n.SetFrame(frame)
	l.content = n
	l.contentFrame = frame
}

// Content returns the embedded custom content and its overlay-local frame.
func (l *Layer) Content() (*Node, model.Rect) { return l.content, l.contentFrame }

func (l *Layer) Invalidate() {
	l.repaints++
	l.scene.invalidate(l)
}

// Repaints counts explicit Invalidate calls.
func (l *Layer) Repaints() int { return l.repaints }

func (l *Layer) Detach() {
	if l.detached {
		return
	}
	l.detached = true
	l.scene.detach(l)
}

func (l *Layer) Detached() bool { return l.detached }
