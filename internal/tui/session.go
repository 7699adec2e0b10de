package tui

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/jmylchreest/poptip/internal/config"
	"github.com/jmylchreest/poptip/internal/display"
	"github.com/jmylchreest/poptip/internal/model"
	"github.com/jmylchreest/poptip/internal/scenario"
	"github.com/jmylchreest/poptip/internal/scene"
	"github.com/jmylchreest/poptip/internal/theme"
)

// defaultAutoDismiss is used by the auto-dismiss key when none is configured.
const defaultAutoDismiss = 3 * time.Second

// session is the demo's mutable state. It lives behind a pointer so the
// PopTip delegate and the value-typed Model see the same state.
type session struct {
	built   *scenario.Built
	sched   *scene.ManualScheduler
	cells   CellMeasurer
	logger  *slog.Logger
	anchors []*scene.Node

	selected    int
	themeIdx    int
	autoDismiss time.Duration
	dismissals  int

	status    string
	statusErr bool
}

func newSession(sc *scenario.Scenario, defaults scenario.Defaults, cells CellMeasurer, logger *slog.Logger) (*session, error) {
	if logger == nil {
		logger = slog.Default()
	}
	s := &session{
		sched:       scene.NewManualScheduler(),
		cells:       cells,
		logger:      logger,
		autoDismiss: defaults.Behavior.AutoDismiss.Duration(),
		themeIdx:    -1,
	}
	if s.autoDismiss == 0 {
		s.autoDismiss = defaultAutoDismiss
	}

	defaults.Style = cells.Geometry(defaults.Style)
	b, err := scenario.Build(sc, cells, defaults, logger,
		scene.WithScheduler(s.sched),
		scene.WithAnimator(s.animate),
	)
	if err != nil {
		return nil, err
	}
	s.built = b
	b.Tip.SetStyle(cells.Geometry(b.Style))
	b.Tip.SetDelegate(display.DelegateFunc(func(*display.PopTip) {
		s.dismissals++
		s.setStatus(fmt.Sprintf("dismissed (%d)", s.dismissals), false)
	}))

	b.Scene.Window().Walk(func(n *scene.Node) {
		if n == b.Scene.Window() {
			return
		}
		if n == b.Anchor {
			s.selected = len(s.anchors)
		}
		s.anchors = append(s.anchors, n)
	})
	return s, nil
}

// animate applies the end state at once and runs done when the transition
// would have finished, so dismissals stay on screen for their fade.
func (s *session) animate(d time.Duration, apply, done func()) {
	apply()
	if done != nil {
		s.sched.AfterFunc(d, done)
	}
}

func (s *session) tip() *display.PopTip { return s.built.Tip }

func (s *session) anchor() *scene.Node {
	if len(s.anchors) == 0 {
		return s.built.Scene.Window()
	}
	return s.anchors[s.selected]
}

func (s *session) setStatus(msg string, isErr bool) {
	s.status = msg
	s.statusErr = isErr
}

// advance moves the timer clock forward.
func (s *session) advance(d time.Duration) int {
	return s.sched.Advance(d)
}

// present shows the tip at the selected anchor. The scenario's bar item
// anchor is presented through the bar item path.
func (s *session) present(animated, autoDismiss bool) bool {
	tip := s.tip()
	anchor := s.anchor()

	var ok bool
	if s.built.Scenario.BarItem && isBar(anchor.Parent()) {
		ok = tip.PresentAtBarItem(scenario.AsBarItem(anchor), animated)
	} else {
		ok = tip.Present(anchor, s.built.Container, animated)
	}
	if !ok {
		s.setStatus("cannot present at "+anchor.Name, true)
		return false
	}
	if autoDismiss {
		tip.AutoDismiss(animated, s.autoDismiss)
		s.setStatus(fmt.Sprintf("auto-dismiss in %s", s.autoDismiss), false)
	} else {
		s.setStatus("", false)
	}
	return true
}

func isBar(n *scene.Node) bool {
	return n != nil && (n.Kind == display.ViewNavigationBar || n.Kind == display.ViewToolbar)
}

// toggle presents the tip, or dismisses it when showing.
func (s *session) toggle() {
	if s.tip().IsShowing() {
		s.tip().Dismiss(true)
		return
	}
	s.present(true, false)
}

// relayout re-presents a showing tip without animation after the scene changed.
func (s *session) relayout() {
	if !s.tip().IsShowing() {
		return
	}
	s.tip().Dismiss(false)
	s.present(false, false)
}

// selectNext moves the selection by delta, wrapping around.
func (s *session) selectNext(delta int) {
	if len(s.anchors) == 0 {
		return
	}
	s.selected = (s.selected + delta + len(s.anchors)) % len(s.anchors)
	s.relayout()
}

// moveAnchor shifts the selected view by whole cells.
func (s *session) moveAnchor(dcol, drow int) {
	n := s.anchor()
	n.SetFrame(n.Frame().Offset(float64(dcol)*s.cells.CellWidth, float64(drow)*s.cells.CellHeight))
	s.relayout()
}

// resize fits the window, and every view that filled it, to the terminal.
func (s *session) resize(cols, rows int) {
	window := s.built.Scene.Window()
	old := window.Frame().Size
	size := model.Sz(float64(cols)*s.cells.CellWidth, float64(rows)*s.cells.CellHeight)
	window.SetFrame(model.Rect{Size: size})
	window.Walk(func(n *scene.Node) {
		if n != window && n.Frame() == (model.Rect{Size: old}) {
			n.SetFrame(model.Rect{Size: size})
		}
	})
	s.relayout()
}

// tap dispatches a click at a cell. A click no layer consumes selects the
// innermost view under it.
func (s *session) tap(col, row int) {
	p := s.cells.Point(col, row)
	if s.built.Scene.Tap(p) {
		return
	}
	for i := len(s.anchors) - 1; i >= 0; i-- {
		if s.anchors[i].WindowFrame().Contains(p) {
			s.selected = i
			s.present(true, false)
			return
		}
	}
}

// cycleAnimation switches between slide and pop.
func (s *session) cycleAnimation() {
	b := s.tip().Behavior()
	if b.Animation == model.AnimationPop {
		b.Animation = model.AnimationSlide
	} else {
		b.Animation = model.AnimationPop
	}
	s.tip().SetBehavior(b)
	s.setStatus("animation: "+b.Animation.String(), false)
}

// cycleDirection steps the preferred direction through any, up and down.
func (s *session) cycleDirection() {
	b := s.tip().Behavior()
	b.PreferredDirection = (b.PreferredDirection + 1) % 3
	s.tip().SetBehavior(b)
	s.setStatus("direction: "+b.PreferredDirection.String(), false)
	s.relayout()
}

// toggleShadow flips the drop shadow; a showing bubble repaints.
func (s *session) toggleShadow() {
	on := !s.tip().HasShadow()
	s.tip().SetShadow(on)
	s.setStatus(fmt.Sprintf("shadow: %t", on), false)
}

// cycleTheme applies the next bundled theme.
func (s *session) cycleTheme() {
	names := theme.BundledThemes
	s.themeIdx = (s.themeIdx + 1) % len(names)
	th, err := theme.Load(names[s.themeIdx])
	if err != nil {
		s.setStatus(err.Error(), true)
		return
	}
	s.tip().SetStyle(s.cells.Geometry(th.Style))
	s.setStatus("theme: "+th.Name, false)
	s.relayout()
}

// applyConfig takes style and behaviour from a reloaded configuration.
func (s *session) applyConfig(cfg *config.Config) {
	s.tip().SetStyle(s.cells.Geometry(cfg.Style))
	s.tip().SetBehavior(cfg.Behavior.PopTipBehavior())
	if d := cfg.Behavior.AutoDismiss.Duration(); d > 0 {
		s.autoDismiss = d
	}
	s.setStatus("configuration reloaded", false)
	s.relayout()
}

// summary is the header line.
func (s *session) summary() string {
	b := s.tip().Behavior()
	state := "idle"
	if s.tip().IsShowing() {
		pl, _ := s.tip().Placement()
		state = "pointing " + pl.Direction.String()
	}
	return fmt.Sprintf("%s  anchor=%s  prefer=%s  anim=%s  %s",
		s.built.Scenario.Title(), s.anchor().Name, b.PreferredDirection, b.Animation, state)
}
