package scenario

import (
	"fmt"
	"log/slog"

	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/poptip/internal/display"
	"github.com/jmylchreest/poptip/internal/layout"
	"github.com/jmylchreest/poptip/internal/model"
	"github.com/jmylchreest/poptip/internal/scene"
	"github.com/jmylchreest/poptip/internal/theme"
)

// Defaults are the configured values a scenario overrides.
type Defaults struct {
	Style    model.Style
	Behavior Behavior
	Device   model.DeviceClass
	// ThemesDir is searched for user themes before the embedded ones.
	ThemesDir string
}

// DefaultDefaults returns the stock style and behaviour.
func DefaultDefaults() Defaults {
	b := display.DefaultBehavior()
	return Defaults{
		Style: model.DefaultStyle(),
		Behavior: Behavior{
			PreferredDirection:  b.PreferredDirection,
			Animation:           b.Animation,
			DismissTapAnywhere:  b.DismissTapAnywhere,
			DisableTapToDismiss: b.DisableTapToDismiss,
		},
		Device: model.DeviceCompact,
	}
}

// Built is a scenario turned into a live scene with an idle tip.
type Built struct {
	Scenario  *Scenario
	Scene     *scene.Scene
	Container *scene.Node
	Anchor    *scene.Node
	Custom    *scene.Node
	Tip       *display.PopTip
	Style     model.Style
	Behavior  Behavior
}

// Build resolves the scenario's style and behaviour against defaults and
// constructs the scene. Scene options (scheduler, animator) are passed
// through; the device option is derived from the scenario.
func Build(sc *Scenario, measurer layout.Measurer, defaults Defaults, logger *slog.Logger, opts ...scene.Option) (*Built, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}

	style, err := sc.resolveStyle(defaults)
	if err != nil {
		return nil, err
	}
	behavior := defaults.Behavior
	if !isEmptyNode(&sc.Behavior) {
		if err := sc.Behavior.Decode(&behavior); err != nil {
			return nil, fmt.Errorf("failed to decode behavior: %w", err)
		}
	}
	if behavior.AutoDismiss < 0 {
		return nil, fmt.Errorf("auto_dismiss must not be negative, got %s", behavior.AutoDismiss.Duration())
	}

	device := defaults.Device
	if sc.Device != nil {
		device = *sc.Device
	}

	window := scene.NewNode(WindowName, display.ViewWindow, model.Rect{Size: sc.Window})
	for _, v := range sc.Views {
		window.Add(buildNode(v))
	}

	b := &Built{
		Scenario: sc,
		Anchor:   window.Find(sc.Anchor),
		Style:    style,
		Behavior: behavior,
	}
	b.Container = window
	if sc.Container != "" {
		b.Container = window.Find(sc.Container)
	}

	sceneOpts := append([]scene.Option{scene.WithDevice(device), scene.WithLogger(logger)}, opts...)
	b.Scene = scene.New(window, measurer, sceneOpts...)

	tipOpts := []display.Option{
		display.WithLogger(logger),
		display.WithStyle(style),
		display.WithBehavior(behavior.PopTipBehavior()),
	}
	if sc.Custom != nil {
		b.Custom = scene.NewNode("custom", display.ViewPlain, model.Rect{Size: *sc.Custom})
		tipOpts = append(tipOpts, display.WithCustomContent(b.Custom))
	}
	b.Tip = display.New(b.Scene, sc.Content, tipOpts...)

	logger.Debug("built scenario",
		"name", sc.Title(),
		"device", device,
		"anchor", sc.Anchor,
		"bar_item", sc.BarItem,
	)
	return b, nil
}

// resolveStyle layers defaults, the named theme and the inline style table.
func (sc *Scenario) resolveStyle(defaults Defaults) (model.Style, error) {
	style := defaults.Style
	if sc.Theme != "" {
		th, err := theme.LoadFrom(defaults.ThemesDir, sc.Theme)
		if err != nil {
			return style, fmt.Errorf("failed to apply theme: %w", err)
		}
		style = th.Style
	}
	if !isEmptyNode(&sc.Style) {
		if err := sc.Style.Decode(&style); err != nil {
			return style, fmt.Errorf("failed to decode style: %w", err)
		}
	}
	if err := style.Validate(); err != nil {
		return style, err
	}
	return style, nil
}

func isEmptyNode(n *yaml.Node) bool {
	return n.Kind == 0
}

func buildNode(v View) *scene.Node {
	kind, _ := parseKind(v.Kind)
	n := scene.NewNode(v.Name, kind, v.Frame.Rect())
	for _, c := range v.Children {
		n.Add(buildNode(c))
	}
	return n
}

// barItem exposes a node as a bar button item.
type barItem struct{ node *scene.Node }

func (b barItem) ItemView() display.View { return b.node }

// AsBarItem wraps a node sitting in a navigation bar or toolbar.
func AsBarItem(n *scene.Node) display.BarItem { return barItem{n} }

// Present shows the tip at the anchor, as a bar item when the scenario says
// so, and schedules the auto-dismiss when one is configured.
func (b *Built) Present() bool {
	animated := b.Behavior.Animated
	after := b.Behavior.AutoDismiss.Duration()
	if animated && after > 0 {
		if b.Scenario.BarItem {
			return b.Tip.PresentAtBarItemAndAutoDismiss(barItem{b.Anchor}, after)
		}
		return b.Tip.PresentAndAutoDismiss(b.Anchor, b.Container, after)
	}

	var ok bool
	if b.Scenario.BarItem {
		ok = b.Tip.PresentAtBarItem(barItem{b.Anchor}, animated)
	} else {
		ok = b.Tip.Present(b.Anchor, b.Container, animated)
	}
	if ok && after > 0 {
		b.Tip.AutoDismiss(animated, after)
	}
	return ok
}
