package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/poptip/internal/config"
	"github.com/jmylchreest/poptip/internal/model"
	"github.com/jmylchreest/poptip/internal/scenario"
)

func TestCellMeasurer_MeasureText(t *testing.T) {
	c := DefaultCellMeasurer()
	font := model.Font{Size: 14}

	tests := []struct {
		name     string
		text     string
		maxWidth float64
		mode     model.LineBreakMode
		want     model.Size
	}{
		{"empty", "", 100, model.BreakWordWrap, model.Size{}},
		{"one line", "hello", 120, model.BreakWordWrap, model.Sz(30, 12)},
		{"hard wraps long words", "abcdefghij", 24, model.BreakWordWrap, model.Sz(24, 36)},
		{"clip truncates", "hello world", 36, model.BreakClip, model.Sz(36, 12)},
		{"clip keeps paragraphs", "ab\ncdef", 120, model.BreakClip, model.Sz(24, 24)},
		{"wide runes", "日本", 120, model.BreakWordWrap, model.Sz(24, 12)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.MeasureText(tt.text, font, tt.maxWidth, tt.mode, model.AlignCenter))
		})
	}

	assert.Equal(t, model.Size{}, c.MeasureText("x", model.Font{}, 100, model.BreakClip, model.AlignLeft))

	wrapped := c.MeasureText("hello world", font, 36, model.BreakWordWrap, model.AlignLeft)
	assert.Equal(t, 24.0, wrapped.Height)
	assert.LessOrEqual(t, wrapped.Width, 36.0)
}

func TestCellMeasurer_Rect(t *testing.T) {
	c := DefaultCellMeasurer()
	assert.Equal(t, CellRect{Col: 2, Row: 1, Cols: 3, Rows: 2}, c.Rect(model.R(12, 12, 18, 24)))
	assert.Equal(t, CellRect{Col: 1, Row: 0, Cols: 2, Rows: 1}, c.Rect(model.R(7, 1, 6, 6)))
	assert.Equal(t, model.Pt(9, 18), c.Point(1, 1))
}

func TestCellMeasurer_Geometry(t *testing.T) {
	s := DefaultCellMeasurer().Geometry(model.DefaultStyle())
	assert.Equal(t, 12.0, s.CornerRadius)
	assert.Equal(t, 12.0, s.PointerSize)
	assert.Equal(t, 6.0, s.SidePadding)
	assert.Zero(t, s.TopMargin)
}

func TestCanvas(t *testing.T) {
	cv := newCanvas(6, 3)
	cv.box(CellRect{Col: 0, Row: 0, Cols: 6, Rows: 3}, squareCorners, 0)
	cv.text(1, 1, "hi there", 4, 0)
	cv.set(10, 10, 'x', 0)

	assert.Equal(t, "┌────┐\n│hi t│\n└────┘", cv.String())
}

func TestCanvasStyles(t *testing.T) {
	cv := newCanvas(3, 1)
	cv.palette = append(cv.palette, cv.palette[0].Bold(true))
	cv.set(1, 0, 'x', 1)
	assert.Equal(t, " x ", ansi.Strip(cv.String()))
}

func newTestSession(t *testing.T, sc *scenario.Scenario) *session {
	t.Helper()
	if sc == nil {
		sc = scenario.Default()
	}
	s, err := newSession(sc, scenario.DefaultDefaults(), DefaultCellMeasurer(), nil)
	require.NoError(t, err)
	s.resize(80, 40)
	return s
}

func TestSession_PresentAndPaint(t *testing.T) {
	s := newTestSession(t, nil)
	assert.Equal(t, "button", s.anchor().Name)
	assert.Equal(t, model.Sz(480, 480), s.built.Scene.Window().Frame().Size)
	assert.Equal(t, model.Sz(480, 480), s.built.Container.Frame().Size, "full-window container tracks the terminal")

	require.True(t, s.present(false, false))
	pl, _ := s.tip().Placement()
	assert.Equal(t, model.PointerUp, pl.Direction)

	out := ansi.Strip(paintScene(s.built.Scene, s.cells, 80, 40, s.anchor()).String())
	assert.Contains(t, out, "container")
	assert.Contains(t, out, "Tip")

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 40)
	pointerRow := -1
	for i, l := range lines {
		if strings.Contains(l, "▲") {
			pointerRow = i
			break
		}
	}
	require.GreaterOrEqual(t, pointerRow, 0)
	assert.Contains(t, lines[pointerRow+1], "╭", "body starts right under the pointer")
}

func TestSession_DismissFadesThenDetaches(t *testing.T) {
	s := newTestSession(t, nil)
	require.True(t, s.present(false, false))

	s.toggle()
	assert.False(t, s.tip().IsShowing())
	require.Len(t, s.built.Scene.Bubbles(), 1, "bubble stays for the fade")
	assert.Less(t, s.built.Scene.Bubbles()[0].Alpha(), 1.0)

	s.advance(200 * time.Millisecond)
	assert.Empty(t, s.built.Scene.Bubbles())
}

func TestSession_AutoDismiss(t *testing.T) {
	s := newTestSession(t, nil)
	require.True(t, s.present(true, true))
	assert.Contains(t, s.status, "auto-dismiss")

	s.advance(defaultAutoDismiss)
	assert.False(t, s.tip().IsShowing())
	assert.Equal(t, 1, s.dismissals)
}

func TestSession_TapOutsideDismisses(t *testing.T) {
	s := newTestSession(t, nil)
	require.True(t, s.present(false, false))

	s.tap(0, 39)
	assert.False(t, s.tip().IsShowing())
	assert.Equal(t, 1, s.dismissals)
	assert.Contains(t, s.status, "dismissed")
}

func TestSession_TapSelectsView(t *testing.T) {
	s := newTestSession(t, nil)
	s.selected = 0
	r := s.cells.Rect(s.built.Anchor.WindowFrame())

	s.tap(r.Col, r.Row)
	assert.Equal(t, "button", s.anchor().Name)
	assert.True(t, s.tip().IsShowing())
}

func TestSession_MoveAndCycle(t *testing.T) {
	s := newTestSession(t, nil)
	require.True(t, s.present(false, false))
	before, _ := s.tip().Placement()

	s.moveAnchor(2, 0)
	after, _ := s.tip().Placement()
	assert.InDelta(t, before.PointerX+12, after.PointerX, 1e-9)
	assert.True(t, s.tip().IsShowing())

	s.cycleDirection()
	assert.Equal(t, model.DirectionUp, s.tip().Behavior().PreferredDirection)
	s.cycleDirection()
	pl, _ := s.tip().Placement()
	assert.Equal(t, model.PointerDown, pl.Direction)

	s.cycleAnimation()
	assert.Equal(t, model.AnimationPop, s.tip().Behavior().Animation)

	s.toggleShadow()
	assert.True(t, s.tip().HasShadow())

	s.cycleTheme()
	assert.Equal(t, 12.0, s.tip().Style().CornerRadius, "themes keep cell geometry")
	assert.Contains(t, s.status, "theme: ")

	s.selectNext(1)
	assert.NotEqual(t, "button", s.anchor().Name)
}

func TestSession_ApplyConfig(t *testing.T) {
	s := newTestSession(t, nil)
	cfg := config.DefaultConfig()
	cfg.Style.PopColor = model.MustParseColor("#ff0000")
	cfg.Behavior.Animation = model.AnimationPop
	cfg.Behavior.AutoDismiss = config.Duration(time.Second)

	s.applyConfig(cfg)
	assert.Equal(t, model.MustParseColor("#ff0000"), s.tip().Style().PopColor)
	assert.Equal(t, model.AnimationPop, s.tip().Behavior().Animation)
	assert.Equal(t, time.Second, s.autoDismiss)
}

func TestSession_BarItem(t *testing.T) {
	sc, err := scenario.Parse([]byte(`
window: {width: 320, height: 480}
views:
  - name: nav
    kind: navigation-bar
    frame: {x: 0, y: 20, width: 320, height: 44}
    children:
      - name: done
        frame: {x: 270, y: 5, width: 40, height: 34}
anchor: done
bar_item: true
content: {message: Save}
`))
	require.NoError(t, err)
	s := newTestSession(t, sc)

	require.True(t, s.present(false, false))
	pl, _ := s.tip().Placement()
	assert.Equal(t, model.PointerUp, pl.Direction)
	assert.InDelta(t, 59, pl.PointerY, 1e-9)
}

func TestModel_Update(t *testing.T) {
	m, err := New(nil, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "Initializing...", m.View())

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 30})
	m = updated.(Model)
	assert.True(t, m.ready)
	assert.True(t, m.sess.tip().IsShowing(), "presents on first layout")

	view := ansi.Strip(m.View())
	assert.Contains(t, view, "anchor=button")
	assert.Contains(t, view, "quit")
	assert.Len(t, strings.Split(view, "\n"), 30)

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("p")})
	m = updated.(Model)
	assert.Equal(t, model.AnimationPop, m.sess.tip().Behavior().Animation)

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("?")})
	m = updated.(Model)
	assert.True(t, m.showHelp)
	assert.Contains(t, ansi.Strip(m.View()), "present/dismiss")

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = updated.(Model)
	assert.False(t, m.showHelp)

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("d")})
	m = updated.(Model)
	assert.False(t, m.sess.tip().IsShowing())

	updated, cmd := m.Update(tickMsg(time.Now()))
	m = updated.(Model)
	assert.NotNil(t, cmd)

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestModel_Mouse(t *testing.T) {
	m, err := New(nil, nil, nil)
	require.NoError(t, err)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 30})
	m = updated.(Model)

	updated, _ = m.Update(tea.MouseMsg{X: 0, Y: 28, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = updated.(Model)
	assert.False(t, m.sess.tip().IsShowing())
}
