package model

import "fmt"

// Direction is the caller's pointer direction request. DirectionAny asks the
// placement solver to pick; it is never a placement result.
type Direction int

const (
	DirectionAny Direction = iota
	DirectionUp
	DirectionDown
)

var directionNames = []string{"any", "up", "down"}

func (d Direction) String() string { return enumName(directionNames, int(d)) }

// MarshalText implements encoding.TextMarshaler.
func (d Direction) MarshalText() ([]byte, error) { return marshalEnum(directionNames, int(d)) }

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Direction) UnmarshalText(text []byte) error {
	return unmarshalEnum("direction", directionNames, text, (*int)(d))
}

// ValidDirections returns the accepted direction names.
func ValidDirections() []string { return append([]string(nil), directionNames...) }

// PointerDirection is the direction the solver settled on. PointerUp means the
// pointer sits on the bubble's top edge and points up at an anchor above the
// bubble; PointerDown means the bubble sits above the anchor.
type PointerDirection int

const (
	PointerUp PointerDirection = iota + 1
	PointerDown
)

func (d PointerDirection) String() string {
	switch d {
	case PointerUp:
		return "up"
	case PointerDown:
		return "down"
	default:
		return fmt.Sprintf("PointerDirection(%d)", int(d))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (d PointerDirection) MarshalText() ([]byte, error) {
	switch d {
	case PointerUp, PointerDown:
		return []byte(d.String()), nil
	default:
		return nil, fmt.Errorf("invalid pointer direction %d", int(d))
	}
}

// Request converts the resolved direction back to an explicit request.
func (d PointerDirection) Request() Direction {
	if d == PointerDown {
		return DirectionDown
	}
	return DirectionUp
}

// Animation selects the presentation transition.
type Animation int

const (
	AnimationSlide Animation = iota
	AnimationPop
)

var animationNames = []string{"slide", "pop"}

func (a Animation) String() string { return enumName(animationNames, int(a)) }

// MarshalText implements encoding.TextMarshaler.
func (a Animation) MarshalText() ([]byte, error) { return marshalEnum(animationNames, int(a)) }

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Animation) UnmarshalText(text []byte) error {
	return unmarshalEnum("animation", animationNames, text, (*int)(a))
}

// Alignment is horizontal text alignment.
type Alignment int

const (
	AlignCenter Alignment = iota
	AlignLeft
	AlignRight
)

var alignmentNames = []string{"center", "left", "right"}

func (a Alignment) String() string { return enumName(alignmentNames, int(a)) }

// MarshalText implements encoding.TextMarshaler.
func (a Alignment) MarshalText() ([]byte, error) { return marshalEnum(alignmentNames, int(a)) }

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Alignment) UnmarshalText(text []byte) error {
	return unmarshalEnum("alignment", alignmentNames, text, (*int)(a))
}

// LineBreakMode controls how text measurement treats lines wider than the limit.
type LineBreakMode int

const (
	// BreakWordWrap wraps at word boundaries.
	BreakWordWrap LineBreakMode = iota
	// BreakClip keeps each line whole and clips it at the limit.
	BreakClip
)

func (m LineBreakMode) String() string {
	if m == BreakClip {
		return "clip"
	}
	return "word-wrap"
}

// DeviceClass selects sizing margins: compact displays are phone-class,
// regular displays are tablet or desktop class.
type DeviceClass int

const (
	DeviceCompact DeviceClass = iota
	DeviceRegular
)

var deviceNames = []string{"compact", "regular"}

func (c DeviceClass) String() string { return enumName(deviceNames, int(c)) }

// MarshalText implements encoding.TextMarshaler.
func (c DeviceClass) MarshalText() ([]byte, error) { return marshalEnum(deviceNames, int(c)) }

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *DeviceClass) UnmarshalText(text []byte) error {
	return unmarshalEnum("device class", deviceNames, text, (*int)(c))
}

func enumName(names []string, v int) string {
	if v < 0 || v >= len(names) {
		return fmt.Sprintf("%d", v)
	}
	return names[v]
}

func marshalEnum(names []string, v int) ([]byte, error) {
	if v < 0 || v >= len(names) {
		return nil, fmt.Errorf("invalid enum value %d", v)
	}
	return []byte(names[v]), nil
}

func unmarshalEnum(kind string, names []string, text []byte, dst *int) error {
	s := string(text)
	for i, name := range names {
		if name == s {
			*dst = i
			return nil
		}
	}
	return fmt.Errorf("invalid %s %q: must be one of %v", kind, s, names)
}
