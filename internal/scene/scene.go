package scene

import (
	"log/slog"
	"time"

	"github.com/jmylchreest/poptip/internal/display"
	"github.com/jmylchreest/poptip/internal/layout"
	"github.com/jmylchreest/poptip/internal/model"
)

// Animator runs a transition. apply sets the end state; done, if non-nil,
// must be called once the transition completes.
type Animator func(d time.Duration, apply, done func())

// Immediate applies transitions instantly.
func Immediate(_ time.Duration, apply, done func()) {
	apply()
	if done != nil {
		done()
	}
}

// Option configures a Scene.
type Option func(*Scene)

// WithDevice sets the device class reported to the sizer.
func WithDevice(d model.DeviceClass) Option {
	return func(s *Scene) { s.device = d }
}

// WithScheduler replaces the default ManualScheduler.
func WithScheduler(sch Scheduler) Option {
	return func(s *Scene) { s.scheduler = sch }
}

// WithAnimator replaces the default Immediate animator.
func WithAnimator(a Animator) Option {
	return func(s *Scene) { s.animator = a }
}

// WithInvalidateHook registers a callback run whenever a layer changes.
func WithInvalidateHook(fn func(*Layer)) Option {
	return func(s *Scene) { s.onInvalidate = fn }
}

// WithLogger sets the logger. A nil logger means slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scene) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Scene is a display.Host over a Node tree rooted at a window.
type Scene struct {
	window       *Node
	measurer     layout.Measurer
	device       model.DeviceClass
	scheduler    Scheduler
	animator     Animator
	onInvalidate func(*Layer)
	logger       *slog.Logger

	layers     []*Layer
	animations []time.Duration
}

var _ display.Host = (*Scene)(nil)

// New creates a scene. A nil window gets an empty one.
func New(window *Node, measurer layout.Measurer, opts ...Option) *Scene {
	if window == nil {
		window = NewNode("window", display.ViewWindow, model.Rect{})
	}
	s := &Scene{
		window:    window,
		measurer:  measurer,
		device:    model.DeviceCompact,
		scheduler: NewManualScheduler(),
		animator:  Immediate,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Window returns the root node.
func (s *Scene) Window() *Node { return s.window }

// Scheduler returns the scene's timer scheduler.
func (s *Scene) Scheduler() Scheduler { return s.scheduler }

// Layers returns the attached layers, bottom first.
func (s *Scene) Layers() []*Layer {
	out := make([]*Layer, len(s.layers))
	copy(out, s.layers)
	return out
}

// Bubbles returns the attached bubble layers, bottom first.
func (s *Scene) Bubbles() []*Layer {
	var out []*Layer
	for _, l := range s.layers {
		if l.kind == LayerBubble {
			out = append(out, l)
		}
	}
	return out
}

// Animations returns the durations of every transition run so far.
func (s *Scene) Animations() []time.Duration {
	out := make([]time.Duration, len(s.animations))
	copy(out, s.animations)
	return out
}

// Tap dispatches a tap at a window point to the topmost layer under it. A
// bubble swallows the tap even when its tip ignores it. It reports whether
// any layer consumed the tap.
func (s *Scene) Tap(p model.Point) bool {
	layers := s.Layers()
	for i := len(layers) - 1; i >= 0; i-- {
		l := layers[i]
		if l.detached || !l.WindowFrame().Contains(p) {
			continue
		}
		switch l.kind {
		case LayerBubble:
			if l.tip != nil {
				l.tip.HandleTap()
				return true
			}
		case LayerTapCatcher:
			if l.onTap != nil {
				s.logger.Debug("tap caught outside bubble", "x", p.X, "y", p.Y)
				l.onTap()
				return true
			}
		}
	}
	return false
}

// MeasureText delegates to the scene's measurer.
func (s *Scene) MeasureText(text string, font model.Font, maxWidth float64, mode model.LineBreakMode, align model.Alignment) model.Size {
	if s.measurer == nil {
		return model.Size{}
	}
	return s.measurer.MeasureText(text, font, maxWidth, mode, align)
}

func (s *Scene) Frame(v display.View) model.Rect {
	if n := asNode(v); n != nil {
		return n.frame
	}
	return model.Rect{}
}

func (s *Scene) Bounds(v display.View) model.Rect {
	if n := asNode(v); n != nil {
		return n.Bounds()
	}
	return model.Rect{}
}

// Superview returns an untyped nil for roots so callers can compare with nil.
func (s *Scene) Superview(v display.View) display.View {
	n := asNode(v)
	if n == nil || n.parent == nil {
		return nil
	}
	return n.parent
}

func (s *Scene) Kind(v display.View) display.ViewKind {
	if n := asNode(v); n != nil {
		return n.Kind
	}
	return display.ViewPlain
}

func (s *Scene) KeyWindow() display.View { return s.window }

// Convert maps p between node spaces. A nil view means the window's space.
func (s *Scene) Convert(p model.Point, from, to display.View) model.Point {
	return p.Add(originOf(from)).Sub(originOf(to))
}

func (s *Scene) DeviceClass() model.DeviceClass { return s.device }

func (s *Scene) AttachBubble(container display.View, tip *display.PopTip) display.Overlay {
	l := &Layer{kind: LayerBubble, scene: s, container: asNode(container), tip: tip, alpha: 1, scale: 1}
	s.layers = append(s.layers, l)
	return l
}

func (s *Scene) AttachTapCatcher(container display.View, onTap func()) display.Overlay {
	c := asNode(container)
	l := &Layer{kind: LayerTapCatcher, scene: s, container: c, onTap: onTap, alpha: 1, scale: 1}
	if c != nil {
		l.frame = c.Bounds()
	}
	s.layers = append(s.layers, l)
	return l
}

func (s *Scene) Animate(d time.Duration, apply, done func()) {
	s.animations = append(s.animations, d)
	s.animator(d, apply, done)
}

func (s *Scene) AfterFunc(d time.Duration, f func()) display.Timer {
	return s.scheduler.AfterFunc(d, f)
}

func (s *Scene) detach(l *Layer) {
	for i, c := range s.layers {
		if c == l {
			s.layers = append(s.layers[:i], s.layers[i+1:]...)
			break
		}
	}
	s.invalidate(l)
}

func (s *Scene) invalidate(l *Layer) {
	if s.onInvalidate != nil {
		s.onInvalidate(l)
	}
}

func asNode(v display.View) *Node {
	n, _ := v.(*Node)
	return n
}

func originOf(v display.View) model.Point {
	if n := asNode(v); n != nil {
		return n.WindowOrigin()
	}
	return model.Point{}
}
