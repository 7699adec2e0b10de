package display

import (
	"time"

	"github.com/jmylchreest/poptip/internal/layout"
	"github.com/jmylchreest/poptip/internal/model"
)

// View is an opaque handle to a node in the host's display tree.
type View interface{}

// ViewKind classifies host views for bar item container resolution.
type ViewKind int

const (
	ViewPlain ViewKind = iota
	ViewWindow
	ViewNavigationBar
	ViewToolbar
)

func (k ViewKind) String() string {
	switch k {
	case ViewWindow:
		return "window"
	case ViewNavigationBar:
		return "navigation-bar"
	case ViewToolbar:
		return "toolbar"
	default:
		return "plain"
	}
}

// Overlay is a host element the PopTip owns while showing: the bubble itself
// or the tap-catcher. Frames are in the container's coordinate space.
type Overlay interface {
	Frame() model.Rect
	SetFrame(frame model.Rect)
	SetAlpha(alpha float64)
	SetScale(scale float64)
	// Embed places custom content inside the overlay at an overlay-local frame.
	Embed(content View, frame model.Rect)
	// Invalidate asks the host to repaint the overlay.
	Invalidate()
	Detach()
}

// Timer is a pending one-shot callback.
type Timer interface {
	// Stop cancels the timer. It reports whether the call stopped it before it fired.
	Stop() bool
}

// Host is the set of UI framework services a PopTip depends on.
type Host interface {
	layout.Measurer

	// Frame returns v's frame in its superview's coordinate space.
	Frame(v View) model.Rect
	// Bounds returns v's bounds in its own coordinate space.
	Bounds(v View) model.Rect
	// Superview returns v's parent, or nil when v is not attached.
	Superview(v View) View
	Kind(v View) ViewKind
	// KeyWindow returns the application's key window.
	KeyWindow() View
	// Convert maps p from from's coordinate space into to's.
	Convert(p model.Point, from, to View) model.Point
	DeviceClass() model.DeviceClass

	// AttachBubble inserts the bubble for tip into container.
	AttachBubble(container View, tip *PopTip) Overlay
	// AttachTapCatcher inserts an invisible overlay covering container that
	// calls onTap when tapped.
	AttachTapCatcher(container View, onTap func()) Overlay

	// Animate runs apply as a timed transition and calls done, if non-nil,
	// when it completes.
	Animate(d time.Duration, apply func(), done func())
	// AfterFunc calls f once after d.
	AfterFunc(d time.Duration, f func()) Timer
}

// BarItem is an anchor that is not a view itself but is backed by one, like
// a toolbar or navigation bar button.
type BarItem interface {
	ItemView() View
}

// Delegate is notified when a tip goes away because of the user or its
// auto-dismiss timer.
type Delegate interface {
	PopTipDismissedByUser(tip *PopTip)
}

// DelegateFunc adapts a function to Delegate.
type DelegateFunc func(tip *PopTip)

// PopTipDismissedByUser calls f.
func (f DelegateFunc) PopTipDismissedByUser(tip *PopTip) { f(tip) }
