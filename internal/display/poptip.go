package display

import (
	"log/slog"
	"time"

	"github.com/jmylchreest/poptip/internal/layout"
	"github.com/jmylchreest/poptip/internal/model"
)

// Transition timings.
const (
	SlideDuration     = 200 * time.Millisecond
	PopDuration       = 150 * time.Millisecond
	PopSettleDuration = 100 * time.Millisecond
	DismissDuration   = 200 * time.Millisecond

	// SlideDistance is how far below its final frame a sliding bubble starts,
	// and how far a dismissing bubble drops.
	SlideDistance = 10.0

	PopStartScale = 0.75
	PopStartAlpha = 0.5
	PopPeakScale  = 1.1
)

// Behavior holds the non-visual settings of a PopTip.
type Behavior struct {
	PreferredDirection model.Direction
	Animation          model.Animation
	// DismissTapAnywhere installs a tap-catcher over the container while showing.
	DismissTapAnywhere bool
	// DisableTapToDismiss makes taps on the bubble itself do nothing.
	DisableTapToDismiss bool
}

// DefaultBehavior returns auto direction, slide animation and tap-anywhere dismissal.
func DefaultBehavior() Behavior {
	return Behavior{
		PreferredDirection: model.DirectionAny,
		Animation:          model.AnimationSlide,
		DismissTapAnywhere: true,
	}
}

// Snapshot is the state a painter needs to draw a showing bubble.
type Snapshot struct {
	ID        string
	Content   model.Content
	Style     model.Style
	Shadow    model.Shadow
	Sizing    layout.Sizing
	Placement layout.Placement
	Highlight bool
}

// Geometry returns the bubble geometry of the snapshot's style.
func (s Snapshot) Geometry() layout.Geometry {
	return layout.GeometryOf(s.Style)
}

// Option configures a PopTip at construction.
type Option func(*PopTip)

// WithLogger sets the logger. A nil logger means slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *PopTip) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithStyle replaces the default style.
func WithStyle(style model.Style) Option {
	return func(p *PopTip) { p.style = style }
}

// WithBehavior replaces the default behaviour.
func WithBehavior(b Behavior) Option {
	return func(p *PopTip) { p.behavior = b }
}

// WithCustomContent embeds a host view as the bubble's content. Its current
// frame size replaces the measured message size.
func WithCustomContent(v View) Option {
	return func(p *PopTip) { p.custom = v }
}

// WithDelegate sets the delegate notified on user and timer dismissal.
func WithDelegate(d Delegate) Option {
	return func(p *PopTip) { p.delegate = d }
}

// PopTip is a speech-bubble overlay pointing at an anchor view.
type PopTip struct {
	host     Host
	logger   *slog.Logger
	content  model.Content
	custom   View
	style    model.Style
	behavior Behavior
	delegate Delegate

	showing    bool
	highlight  bool
	anchor     any
	id         string
	generation int
	sizing     layout.Sizing
	placement  layout.Placement
	overlay    Overlay
	tapCatcher Overlay
	timer      Timer
}

// New creates an idle PopTip rendering content on host.
func New(host Host, content model.Content, opts ...Option) *PopTip {
	p := &PopTip{
		host:     host,
		logger:   slog.Default(),
		content:  content,
		style:    model.DefaultStyle(),
		behavior: DefaultBehavior(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Content returns the tip's title and message.
func (p *PopTip) Content() model.Content { return p.content }

// SetContent replaces the title and message. It takes effect on the next presentation.
func (p *PopTip) SetContent(c model.Content) { p.content = c }

// Style returns the current style.
func (p *PopTip) Style() model.Style { return p.style }

// SetStyle replaces the style. Geometry changes take effect on the next
// presentation; colours repaint a showing bubble immediately.
func (p *PopTip) SetStyle(s model.Style) {
	p.style = s
	p.invalidate()
}

// SetShadow toggles the drop shadow and repaints a showing bubble.
func (p *PopTip) SetShadow(on bool) {
	p.style.Shadow = on
	p.invalidate()
}

// HasShadow reports whether the drop shadow is on.
func (p *PopTip) HasShadow() bool { return p.style.Shadow }

// Behavior returns the current behaviour settings.
func (p *PopTip) Behavior() Behavior { return p.behavior }

// SetBehavior replaces the behaviour settings for the next presentation.
func (p *PopTip) SetBehavior(b Behavior) { p.behavior = b }

// SetDelegate sets the dismissal delegate.
func (p *PopTip) SetDelegate(d Delegate) { p.delegate = d }

// IsShowing reports whether the tip is presented.
func (p *PopTip) IsShowing() bool { return p.showing }

// Highlighted reports whether the bubble is drawn highlighted, which it is
// from a user dismissal until the fade-out completes.
func (p *PopTip) Highlighted() bool { return p.highlight }

// Anchor returns the view or bar item the tip was presented at, or nil.
func (p *PopTip) Anchor() any { return p.anchor }

// PresentationID returns the ULID of the current presentation, or "".
func (p *PopTip) PresentationID() string { return p.id }

// Placement returns the solved placement. It is only meaningful while showing.
func (p *PopTip) Placement() (layout.Placement, bool) {
	return p.placement, p.showing
}

// Sizing returns the measured sizes. It is only meaningful while showing.
func (p *PopTip) Sizing() (layout.Sizing, bool) {
	return p.sizing, p.showing
}

// Snapshot captures what a painter needs. It remains valid during the
// dismiss transition, until the overlay is detached.
func (p *PopTip) Snapshot() Snapshot {
	return Snapshot{
		ID:        p.id,
		Content:   p.content,
		Style:     p.style,
		Shadow:    p.style.ShadowParams(),
		Sizing:    p.sizing,
		Placement: p.placement,
		Highlight: p.highlight,
	}
}

// Present shows the tip pointing at anchor inside container. It reports
// whether the presentation proceeded: presenting while showing is a no-op,
// and a nil container or an anchor without a superview aborts.
func (p *PopTip) Present(anchor, container View, animated bool) bool {
	if p.showing {
		p.logger.Debug("pop tip already showing", "id", p.id)
		return false
	}
	if container == nil {
		p.logger.Warn("cannot present pop tip: no container view")
		p.anchor = nil
		return false
	}
	if anchor == nil {
		p.logger.Warn("cannot present pop tip: no anchor view")
		p.anchor = nil
		return false
	}
	anchorParent := p.host.Superview(anchor)
	if anchorParent == nil {
		p.logger.Warn("cannot present pop tip: anchor is not attached to a view")
		p.anchor = nil
		return false
	}

	id, err := model.NewPresentationID()
	if err != nil {
		p.logger.Warn("failed to generate presentation id", "error", err)
	}

	p.showing = true
	p.highlight = false
	p.id = id
	p.generation++
	if p.anchor == nil {
		p.anchor = anchor
	}

	if p.behavior.DismissTapAnywhere {
		p.tapCatcher = p.host.AttachTapCatcher(container, p.dismissTapAnywhereFired)
	}
	p.overlay = p.host.AttachBubble(container, p)

	bounds := p.host.Bounds(container)
	req := layout.SizeRequest{
		Content:        p.content,
		Style:          p.style,
		ContainerWidth: bounds.Size.Width,
		Device:         p.host.DeviceClass(),
	}
	if p.custom != nil {
		size := p.host.Frame(p.custom).Size
		req.CustomSize = &size
	}
	p.sizing = layout.Measure(p.host, req)

	anchorFrame := p.host.Frame(anchor)
	anchorRect := model.Rect{
		Origin: p.host.Convert(anchorFrame.Origin, anchorParent, container),
		Size:   anchorFrame.Size,
	}
	geometry := layout.GeometryOf(p.style)
	p.placement = layout.Place(layout.PlacementRequest{
		Container:  bounds.Size,
		Anchor:     anchorRect,
		BubbleSize: p.sizing.BubbleSize,
		Preferred:  p.behavior.PreferredDirection,
		Geometry:   geometry,
	})

	if p.custom != nil {
		p.overlay.Embed(p.custom, layout.ContentFrame(p.placement, geometry))
	}

	p.applyFrame(animated)

	p.logger.Debug("pop tip presented",
		"id", p.id,
		"direction", p.placement.Direction.String(),
		"pointer_y", p.placement.PointerY,
		"frame", p.placement.Frame,
		"animated", animated,
	)
	return true
}

// PresentAtBarItem shows the tip pointing at a bar item. The container is the
// key window when the item sits in a navigation bar and its view's
// grandparent otherwise.
func (p *PopTip) PresentAtBarItem(item BarItem, animated bool) bool {
	if p.showing {
		p.logger.Debug("pop tip already showing", "id", p.id)
		return false
	}
	if item == nil {
		p.logger.Warn("cannot present pop tip: no bar item")
		return false
	}
	view := item.ItemView()
	container := p.barContainer(view)
	if container == nil {
		p.logger.Warn("cannot determine container view from bar item")
		p.anchor = nil
		return false
	}
	p.anchor = item
	return p.Present(view, container, animated)
}

func (p *PopTip) barContainer(view View) View {
	if view == nil {
		return nil
	}
	parent := p.host.Superview(view)
	if parent == nil {
		return nil
	}
	if p.host.Kind(parent) == ViewNavigationBar {
		return p.host.KeyWindow()
	}
	return p.host.Superview(parent)
}

// PresentAndAutoDismiss presents animated and dismisses after interval.
func (p *PopTip) PresentAndAutoDismiss(anchor, container View, after time.Duration) bool {
	if !p.Present(anchor, container, true) {
		return false
	}
	p.AutoDismiss(true, after)
	return true
}

// PresentAtBarItemAndAutoDismiss presents animated at a bar item and
// dismisses after interval.
func (p *PopTip) PresentAtBarItemAndAutoDismiss(item BarItem, after time.Duration) bool {
	if !p.PresentAtBarItem(item, true) {
		return false
	}
	p.AutoDismiss(true, after)
	return true
}

// AutoDismiss schedules a dismissal after interval, replacing any pending
// one. When it fires the delegate is notified after the tip is dismissed.
// It reports false and schedules nothing while the tip is not showing.
func (p *PopTip) AutoDismiss(animated bool, after time.Duration) bool {
	if !p.showing {
		return false
	}
	if p.timer != nil {
		p.timer.Stop()
	}
	gen := p.generation
	p.timer = p.host.AfterFunc(after, func() {
		if !p.showing || p.generation != gen {
			return
		}
		p.timer = nil
		p.logger.Debug("pop tip auto-dismissed", "id", p.id)
		p.Dismiss(animated)
		p.notifyDelegate()
	})
	return true
}

// Dismiss hides the tip. Dismissing an idle tip is a no-op that reports false.
// The auto-dismiss timer and tap-catcher go immediately; the bubble is
// detached once the optional fade-out completes.
func (p *PopTip) Dismiss(animated bool) bool {
	if !p.showing {
		return false
	}
	p.showing = false
	p.anchor = nil

	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
	if p.tapCatcher != nil {
		p.tapCatcher.Detach()
		p.tapCatcher = nil
	}

	overlay := p.overlay
	p.overlay = nil
	gen := p.generation
	id := p.id

	finalise := func() {
		if overlay != nil {
			overlay.Detach()
		}
		// A new presentation may have started during the fade.
		if p.generation == gen {
			p.highlight = false
		}
		p.logger.Debug("pop tip dismissed", "id", id)
	}

	if !animated || overlay == nil {
		finalise()
		return true
	}
	p.host.Animate(DismissDuration, func() {
		overlay.SetAlpha(0)
		overlay.SetFrame(overlay.Frame().Offset(0, SlideDistance))
	}, finalise)
	return true
}

// DismissByUser highlights the bubble, dismisses it animated and notifies
// the delegate.
func (p *PopTip) DismissByUser() bool {
	if !p.showing {
		return false
	}
	p.highlight = true
	p.invalidate()
	p.Dismiss(true)
	p.notifyDelegate()
	return true
}

// HandleTap is called by the host when the bubble itself is tapped. It
// reports whether the tap dismissed the tip.
func (p *PopTip) HandleTap() bool {
	if p.behavior.DisableTapToDismiss {
		return false
	}
	return p.DismissByUser()
}

func (p *PopTip) dismissTapAnywhereFired() {
	p.DismissByUser()
}

func (p *PopTip) notifyDelegate() {
	if p.delegate != nil {
		p.delegate.PopTipDismissedByUser(p)
	}
}

func (p *PopTip) invalidate() {
	if p.overlay != nil {
		p.overlay.Invalidate()
	}
}

func (p *PopTip) applyFrame(animated bool) {
	o := p.overlay
	final := p.placement.Frame

	if !animated {
		o.SetFrame(final)
		o.SetAlpha(1)
		o.SetScale(1)
		o.Invalidate()
		return
	}

	switch p.behavior.Animation {
	case model.AnimationPop:
		o.SetFrame(final)
		o.SetAlpha(PopStartAlpha)
		o.SetScale(PopStartScale)
		o.Invalidate()
		p.host.Animate(PopDuration, func() {
			o.SetScale(PopPeakScale)
			o.SetAlpha(1)
		}, func() {
			p.host.Animate(PopSettleDuration, func() {
				o.SetScale(1)
			}, nil)
		})
	default:
		o.SetFrame(final.Offset(0, SlideDistance))
		o.SetAlpha(0)
		o.SetScale(1)
		o.Invalidate()
		p.host.Animate(SlideDuration, func() {
			o.SetAlpha(1)
			o.SetFrame(final)
		}, nil)
	}
}
