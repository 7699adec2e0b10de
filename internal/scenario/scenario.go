package scenario

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/poptip/internal/display"
	"github.com/jmylchreest/poptip/internal/model"
)

// WindowName is the name of the implicit root view.
const WindowName = "window"

var (
	// ErrNoAnchor is returned when a scenario names no anchor view.
	ErrNoAnchor = errors.New("scenario has no anchor")
	// ErrUnknownView is returned when an anchor or container name matches no view.
	ErrUnknownView = errors.New("unknown view")
	// ErrUnknownKind is returned for an unrecognised view kind.
	ErrUnknownKind = errors.New("unknown view kind")
	// ErrDuplicateView is returned when two views share a name.
	ErrDuplicateView = errors.New("duplicate view name")
)

// Box is a frame written as flat x, y, width and height keys.
type Box struct {
	X      float64 `yaml:"x" json:"x"`
	Y      float64 `yaml:"y" json:"y"`
	Width  float64 `yaml:"width" json:"width"`
	Height float64 `yaml:"height" json:"height"`
}

// Rect converts the box to a model rectangle.
func (b Box) Rect() model.Rect { return model.R(b.X, b.Y, b.Width, b.Height) }

// View is one node of the described hierarchy. Frames are relative to the
// parent view.
type View struct {
	Name     string `yaml:"name"`
	Kind     string `yaml:"kind,omitempty"` // plain, navigation-bar, toolbar
	Frame    Box    `yaml:"frame"`
	Children []View `yaml:"children,omitempty"`
}

// Behavior is the presentation section of a scenario.
type Behavior struct {
	PreferredDirection  model.Direction `yaml:"preferred_direction"`
	Animation           model.Animation `yaml:"animation"`
	DismissTapAnywhere  bool            `yaml:"dismiss_tap_anywhere"`
	DisableTapToDismiss bool            `yaml:"disable_tap_to_dismiss"`
	AutoDismiss         model.Duration  `yaml:"auto_dismiss"` // "3s" or integer milliseconds
	Animated            bool            `yaml:"animated"`
}

// PopTipBehavior converts the section for display.New.
func (b Behavior) PopTipBehavior() display.Behavior {
	return display.Behavior{
		PreferredDirection:  b.PreferredDirection,
		Animation:           b.Animation,
		DismissTapAnywhere:  b.DismissTapAnywhere,
		DisableTapToDismiss: b.DisableTapToDismiss,
	}
}

// Scenario is a parsed scenario document. Style and Behavior are kept as raw
// nodes so they can be decoded on top of configured defaults.
type Scenario struct {
	Name      string             `yaml:"name"`
	Window    model.Size         `yaml:"window"`
	Device    *model.DeviceClass `yaml:"device,omitempty"`
	Views     []View             `yaml:"views"`
	Container string             `yaml:"container,omitempty"`
	Anchor    string             `yaml:"anchor"`
	BarItem   bool               `yaml:"bar_item,omitempty"`
	Content   model.Content      `yaml:"content"`
	Custom    *model.Size        `yaml:"custom_content,omitempty"`
	Theme     string             `yaml:"theme,omitempty"`
	Style     yaml.Node          `yaml:"style,omitempty"`
	Behavior  yaml.Node          `yaml:"behavior,omitempty"`
}

// Parse decodes a YAML (or JSON) scenario document and checks its structure.
func Parse(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("failed to parse scenario: %w", err)
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

// Validate checks view names and kinds and that the anchor is set.
func (sc *Scenario) Validate() error {
	if sc.Anchor == "" {
		return ErrNoAnchor
	}
	if sc.Window.Width <= 0 || sc.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %vx%v", sc.Window.Width, sc.Window.Height)
	}
	seen := map[string]bool{WindowName: true}
	var walk func(views []View) error
	walk = func(views []View) error {
		for _, v := range views {
			if v.Name == "" {
				return fmt.Errorf("%w: view without a name", ErrUnknownView)
			}
			if seen[v.Name] {
				return fmt.Errorf("%w: %q", ErrDuplicateView, v.Name)
			}
			seen[v.Name] = true
			if _, err := parseKind(v.Kind); err != nil {
				return err
			}
			if err := walk(v.Children); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(sc.Views); err != nil {
		return err
	}
	if !seen[sc.Anchor] {
		return fmt.Errorf("%w: anchor %q", ErrUnknownView, sc.Anchor)
	}
	if sc.Container != "" && !seen[sc.Container] {
		return fmt.Errorf("%w: container %q", ErrUnknownView, sc.Container)
	}
	return nil
}

// Title returns the scenario name, falling back to the content summary.
func (sc *Scenario) Title() string {
	if sc.Name != "" {
		return sc.Name
	}
	return sc.Content.Summary(40)
}

func parseKind(s string) (display.ViewKind, error) {
	switch strings.ToLower(s) {
	case "", "plain", "view":
		return display.ViewPlain, nil
	case "navigation-bar", "navbar", "navigation_bar":
		return display.ViewNavigationBar, nil
	case "toolbar":
		return display.ViewToolbar, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}

// Default returns the built-in scenario: a button near the top of a phone
// sized window with a short message.
func Default() *Scenario {
	return &Scenario{
		Name:   "default",
		Window: model.Sz(320, 480),
		Views: []View{{
			Name:  "container",
			Frame: Box{Width: 320, Height: 480},
			Children: []View{{
				Name:  "button",
				Frame: Box{X: 140, Y: 100, Width: 40, Height: 30},
			}},
		}},
		Container: "container",
		Anchor:    "button",
		Content: model.Content{
			Title:   "Tip",
			Message: "Tap anywhere to dismiss this bubble.",
		},
	}
}
