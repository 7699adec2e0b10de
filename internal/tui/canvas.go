package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/jmylchreest/poptip/internal/display"
	"github.com/jmylchreest/poptip/internal/layout"
	"github.com/jmylchreest/poptip/internal/model"
	"github.com/jmylchreest/poptip/internal/scene"
)

type cell struct {
	r     rune
	style int
}

// canvas is a grid of runes, each tagged with an index into a style palette.
// Style 0 is unstyled.
type canvas struct {
	cols, rows int
	cells      [][]cell
	palette    []lipgloss.Style
}

func newCanvas(cols, rows int) *canvas {
	c := &canvas{cols: max(cols, 0), rows: max(rows, 0), palette: []lipgloss.Style{lipgloss.NewStyle()}}
	c.cells = make([][]cell, c.rows)
	for i := range c.cells {
		row := make([]cell, c.cols)
		for j := range row {
			row[j] = cell{r: ' '}
		}
		c.cells[i] = row
	}
	return c
}

func (c *canvas) addStyle(s lipgloss.Style) int {
	c.palette = append(c.palette, s)
	return len(c.palette) - 1
}

func (c *canvas) set(col, row int, r rune, style int) {
	if col < 0 || row < 0 || col >= c.cols || row >= c.rows {
		return
	}
	c.cells[row][col] = cell{r: r, style: style}
}

func (c *canvas) fill(r CellRect, style int) {
	for row := r.Row; row <= r.Bottom(); row++ {
		for col := r.Col; col <= r.Right(); col++ {
			c.set(col, row, ' ', style)
		}
	}
}

// box draws a frame using corners tl, tr, bl, br.
func (c *canvas) box(r CellRect, corners [4]rune, style int) {
	if r.Cols < 2 || r.Rows < 2 {
		c.fill(r, style)
		return
	}
	for col := r.Col + 1; col < r.Right(); col++ {
		c.set(col, r.Row, '─', style)
		c.set(col, r.Bottom(), '─', style)
	}
	for row := r.Row + 1; row < r.Bottom(); row++ {
		c.set(r.Col, row, '│', style)
		c.set(r.Right(), row, '│', style)
	}
	c.set(r.Col, r.Row, corners[0], style)
	c.set(r.Right(), r.Row, corners[1], style)
	c.set(r.Col, r.Bottom(), corners[2], style)
	c.set(r.Right(), r.Bottom(), corners[3], style)
}

// text writes s from col, clipped to maxCols cells.
func (c *canvas) text(col, row int, s string, maxCols, style int) {
	for _, r := range ansi.Truncate(s, maxCols, "") {
		w := ansi.StringWidth(string(r))
		if w == 0 {
			continue
		}
		c.set(col, row, r, style)
		col += w
	}
}

// String renders the grid, styling each run of equally styled cells once.
func (c *canvas) String() string {
	var sb strings.Builder
	for i, row := range c.cells {
		if i > 0 {
			sb.WriteByte('\n')
		}
		start := 0
		for j := 1; j <= len(row); j++ {
			if j < len(row) && row[j].style == row[start].style {
				continue
			}
			var run strings.Builder
			for _, cl := range row[start:j] {
				run.WriteRune(cl.r)
			}
			if row[start].style == 0 {
				sb.WriteString(run.String())
			} else {
				sb.WriteString(c.palette[row[start].style].Render(run.String()))
			}
			start = j
		}
	}
	return sb.String()
}

var (
	squareCorners  = [4]rune{'┌', '┐', '└', '┘'}
	roundedCorners = [4]rune{'╭', '╮', '╰', '╯'}
)

// paintScene draws the scene's views as labelled boxes and its bubbles on top.
func paintScene(sc *scene.Scene, cells CellMeasurer, cols, rows int, selected *scene.Node) *canvas {
	cv := newCanvas(cols, rows)
	viewStyle := cv.addStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("8")))
	selStyle := cv.addStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true))
	barStyle := cv.addStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("12")))

	sc.Window().Walk(func(n *scene.Node) {
		if n == sc.Window() {
			return
		}
		style := viewStyle
		switch {
		case n == selected:
			style = selStyle
		case n.Kind == display.ViewNavigationBar || n.Kind == display.ViewToolbar:
			style = barStyle
		}
		r := cells.Rect(n.WindowFrame())
		cv.box(r, squareCorners, style)
		if r.Cols > 2 {
			cv.text(r.Col+1, r.Row, n.Name, r.Cols-2, style)
		}
	})

	for _, l := range sc.Bubbles() {
		paintBubble(cv, cells, l)
	}
	return cv
}

// paintBubble draws one bubble layer: body, border, pointer and text.
func paintBubble(cv *canvas, cells CellMeasurer, l *scene.Layer) {
	tip := l.Tip()
	if tip == nil {
		return
	}
	snap := tip.Snapshot()
	g := snap.Geometry()
	pl := snap.Placement
	origin := l.WindowFrame().Origin
	st := snap.Style

	bg := lipgloss.Color(opaqueHex(st.PopColor))
	if snap.Highlight {
		bg = lipgloss.Color(opaqueHex(st.PopColor.Scale(1, 0.25)))
	}
	faint := l.Alpha() < 1
	base := lipgloss.NewStyle().Background(bg).Faint(faint)
	body := cv.addStyle(base)
	border := cv.addStyle(base.Foreground(lipgloss.Color(opaqueHex(st.BorderColor))))
	title := cv.addStyle(base.Foreground(lipgloss.Color(opaqueHex(st.TitleColor))).Bold(st.TitleFont.Bold))
	text := cv.addStyle(base.Foreground(lipgloss.Color(opaqueHex(st.TextColor))).Bold(st.TextFont.Bold))
	pointer := cv.addStyle(lipgloss.NewStyle().Foreground(bg).Faint(faint))

	bodyRect := cells.Rect(layout.BubbleFrame(pl, g).Offset(origin.X, origin.Y))
	cv.fill(bodyRect, body)
	if st.BorderWidth > 0 {
		cv.box(bodyRect, roundedCorners, border)
	}

	tipCol := cells.Rect(model.Rect{Origin: model.Pt(origin.X+pl.TargetPoint.X+g.SidePadding, 0), Size: model.Sz(1, 1)}).Col
	if pl.Direction == model.PointerDown {
		cv.set(tipCol, bodyRect.Bottom()+1, '▼', pointer)
	} else {
		cv.set(tipCol, bodyRect.Row-1, '▲', pointer)
	}

	if snap.Sizing.ContentSize.Width == 0 {
		return
	}
	content := cells.Rect(layout.ContentFrame(pl, g).Offset(origin.X, origin.Y))
	row := content.Row
	if snap.Content.HasTitle() {
		for _, line := range cells.Lines(snap.Content.Title, content.Cols, model.BreakClip) {
			if row > content.Bottom() {
				return
			}
			cv.text(content.Col+alignOffset(st.TitleAlignment, line, content.Cols), row, line, content.Cols, title)
			row++
		}
	}
	for _, line := range cells.Lines(snap.Content.Message, content.Cols, model.BreakWordWrap) {
		if row > content.Bottom() {
			return
		}
		cv.text(content.Col+alignOffset(st.TextAlignment, line, content.Cols), row, line, content.Cols, text)
		row++
	}
}

func alignOffset(a model.Alignment, line string, cols int) int {
	pad := cols - ansi.StringWidth(line)
	if pad <= 0 {
		return 0
	}
	switch a {
	case model.AlignLeft:
		return 0
	case model.AlignRight:
		return pad
	default:
		return pad / 2
	}
}

// opaqueHex drops the alpha channel lipgloss cannot show.
func opaqueHex(c model.Color) string {
	h := c.Hex()
	if len(h) > 7 {
		h = h[:7]
	}
	return h
}
