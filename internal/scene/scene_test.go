package scene

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/poptip/internal/display"
	"github.com/jmylchreest/poptip/internal/model"
)

func TestNodeTree(t *testing.T) {
	window := NewNode("window", display.ViewWindow, model.R(0, 0, 320, 480))
	container := NewNode("container", display.ViewPlain, model.R(0, 50, 320, 400))
	button := NewNode("button", display.ViewPlain, model.R(10, 20, 40, 30))
	window.Add(container.Add(button))

	assert.Equal(t, container, button.Parent())
	assert.Equal(t, model.Pt(10, 70), button.WindowOrigin())
	assert.Equal(t, model.R(10, 70, 40, 30), button.WindowFrame())
	assert.Equal(t, model.R(0, 0, 40, 30), button.Bounds())
	assert.Same(t, button, window.Find("button"))
	assert.Nil(t, window.Find("missing"))

	other := NewNode("other", display.ViewPlain, model.R(0, 0, 10, 10))
	other.Add(button)
	assert.Empty(t, container.Children())
	assert.Equal(t, other, button.Parent())

	button.Remove()
	assert.Nil(t, button.Parent())
	assert.Empty(t, other.Children())

	var names []string
	window.Walk(func(n *Node) { names = append(names, n.Name) })
	assert.Equal(t, []string{"window", "container"}, names)
}

func TestSceneConvertAndSuperview(t *testing.T) {
	window := NewNode("window", display.ViewWindow, model.R(0, 0, 320, 480))
	container := NewNode("container", display.ViewPlain, model.R(0, 50, 320, 400))
	button := NewNode("button", display.ViewPlain, model.R(10, 0, 40, 30))
	window.Add(container, button)
	s := New(window, nil)

	assert.Equal(t, model.Pt(10, -50), s.Convert(model.Pt(10, 0), window, container))
	assert.Equal(t, model.Pt(5, 55), s.Convert(model.Pt(5, 5), container, nil))

	assert.Nil(t, s.Superview(window), "root must yield an untyped nil")
	assert.Nil(t, s.Superview(NewNode("loose", display.ViewPlain, model.Rect{})))
	assert.Equal(t, display.View(window), s.Superview(button))
	assert.Equal(t, display.View(window), s.KeyWindow())
	assert.Equal(t, display.ViewPlain, s.Kind("not a node"))
	assert.Equal(t, model.Size{}, s.MeasureText("x", model.Font{Size: 12}, 100, model.BreakWordWrap, model.AlignLeft))
}

func TestSceneDefaultsToManualScheduler(t *testing.T) {
	s := New(NewNode("window", display.ViewWindow, model.R(0, 0, 320, 480)), nil)
	sched, ok := s.Scheduler().(*ManualScheduler)
	require.True(t, ok)

	fired := false
	s.AfterFunc(time.Second, func() { fired = true })
	assert.Equal(t, 1, sched.Pending())
	assert.False(t, fired, "timers wait for Advance")
	sched.Advance(time.Second)
	assert.True(t, fired)
}

func TestManualScheduler(t *testing.T) {
	s := NewManualScheduler()
	var fired []string

	s.AfterFunc(2*time.Second, func() { fired = append(fired, "b") })
	s.AfterFunc(time.Second, func() {
		fired = append(fired, "a")
		s.AfterFunc(500*time.Millisecond, func() { fired = append(fired, "a2") })
	})
	stopped := s.AfterFunc(1500*time.Millisecond, func() { fired = append(fired, "never") })

	assert.True(t, stopped.Stop())
	assert.False(t, stopped.Stop())
	assert.Equal(t, 2, s.Pending())

	assert.Equal(t, 0, s.Advance(999*time.Millisecond))
	assert.Equal(t, 3, s.Advance(2*time.Second))
	assert.Equal(t, []string{"a", "a2", "b"}, fired)
	assert.Equal(t, 2999*time.Millisecond, s.Now())
	assert.Zero(t, s.Pending())
}

func TestManualSchedulerStopAfterFire(t *testing.T) {
	s := NewManualScheduler()
	timer := s.AfterFunc(time.Millisecond, func() {})
	s.Advance(time.Millisecond)
	assert.False(t, timer.Stop())
}

func TestTapDispatch(t *testing.T) {
	window := NewNode("window", display.ViewWindow, model.R(0, 0, 320, 480))
	container := NewNode("container", display.ViewPlain, model.R(0, 40, 320, 440))
	window.Add(container)

	var invalidated int
	s := New(window, nil, WithInvalidateHook(func(*Layer) { invalidated++ }))

	var caught int
	catcher := s.AttachTapCatcher(container, func() { caught++ })
	require.IsType(t, &Layer{}, catcher)
	assert.Equal(t, model.R(0, 0, 320, 440), catcher.Frame())

	assert.False(t, s.Tap(model.Pt(5, 5)), "outside the container")
	assert.True(t, s.Tap(model.Pt(5, 45)))
	assert.Equal(t, 1, caught)

	catcher.Detach()
	catcher.Detach()
	assert.Empty(t, s.Layers())
	assert.False(t, s.Tap(model.Pt(5, 45)))
	assert.Positive(t, invalidated)
}

func TestLayerState(t *testing.T) {
	window := NewNode("window", display.ViewWindow, model.R(0, 0, 100, 100))
	container := NewNode("container", display.ViewPlain, model.R(10, 10, 80, 80))
	window.Add(container)
	s := New(window, nil)

	o := s.AttachBubble(container, nil)
	l := o.(*Layer)
	assert.Equal(t, LayerBubble, l.Kind())
	assert.Equal(t, 1.0, l.Alpha())
	assert.Equal(t, 1.0, l.Scale())

	o.SetFrame(model.R(5, 5, 20, 20))
	o.SetAlpha(0.5)
	o.SetScale(0.75)
	o.Invalidate()
	assert.Equal(t, model.R(15, 15, 20, 20), l.WindowFrame())
	assert.Equal(t, 0.5, l.Alpha())
	assert.Equal(t, 0.75, l.Scale())
	assert.Equal(t, 1, l.Repaints())
	assert.Len(t, s.Bubbles(), 1)

	custom := NewNode("custom", display.ViewPlain, model.R(0, 0, 30, 12))
	o.Embed(custom, model.R(12, 22, 30, 12))
	node, frame := l.Content()
	assert.Same(t, custom, node)
	assert.Equal(t, model.R(12, 22, 30, 12), frame)
	assert.Equal(t, model.R(12, 22, 30, 12), custom.Frame())

	// A bubble without a tip never consumes taps.
	assert.False(t, s.Tap(model.Pt(20, 20)))
}

func TestAnimateRecordsDurations(t *testing.T) {
	s := New(nil, nil)
	var order []string
	s.Animate(time.Second, func() { order = append(order, "apply") }, func() { order = append(order, "done") })
	s.Animate(time.Millisecond, func() { order = append(order, "apply2") }, nil)

	assert.Equal(t, []string{"apply", "done", "apply2"}, order)
	assert.Equal(t, []time.Duration{time.Second, time.Millisecond}, s.Animations())
	assert.Equal(t, "window", s.Window().Name)
}
