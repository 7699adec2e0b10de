package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/jmylchreest/poptip/internal/model"
)

// Cell dimensions in points. A terminal cell is roughly twice as tall as wide.
const (
	DefaultCellWidth  = 6.0
	DefaultCellHeight = 12.0
)

// CellMeasurer measures text in whole terminal cells. Font size and weight
// are ignored: every glyph is one cell high and its display width wide.
type CellMeasurer struct {
	CellWidth  float64
	CellHeight float64
}

// DefaultCellMeasurer returns a measurer for the default cell size.
func DefaultCellMeasurer() CellMeasurer {
	return CellMeasurer{CellWidth: DefaultCellWidth, CellHeight: DefaultCellHeight}
}

// Columns converts a point width to whole columns, rounding down.
func (c CellMeasurer) Columns(width float64) int {
	return int(math.Floor(width/c.CellWidth + 1e-9))
}

// Lines lays text out in at most cols columns. Clip mode keeps one line per
// paragraph and truncates it; wrap mode word-wraps and hard-wraps long words.
func (c CellMeasurer) Lines(text string, cols int, mode model.LineBreakMode) []string {
	if text == "" || cols <= 0 {
		return nil
	}
	if mode == model.BreakWordWrap {
		text = ansi.Wrap(text, cols, "")
	}
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = ansi.Truncate(l, cols, "")
	}
	return lines
}

// MeasureText implements layout.Measurer.
func (c CellMeasurer) MeasureText(text string, font model.Font, maxWidth float64, mode model.LineBreakMode, _ model.Alignment) model.Size {
	if text == "" || font.Size <= 0 {
		return model.Size{}
	}
	lines := c.Lines(text, c.Columns(maxWidth), mode)
	var cols int
	for _, l := range lines {
		cols = max(cols, ansi.StringWidth(l))
	}
	return model.Sz(float64(cols)*c.CellWidth, float64(len(lines))*c.CellHeight)
}

// Geometry snaps a style's bubble geometry to the cell grid: the pointer and
// the content inset take one row, the side padding one column.
func (c CellMeasurer) Geometry(s model.Style) model.Style {
	s.CornerRadius = c.CellHeight
	s.PointerSize = c.CellHeight
	s.SidePadding = c.CellWidth
	s.TopMargin = 0
	return s
}

// Rect converts a point rectangle to the cells it covers.
func (c CellMeasurer) Rect(r model.Rect) CellRect {
	col0 := int(math.Floor(r.MinX()/c.CellWidth + 1e-9))
	row0 := int(math.Floor(r.MinY()/c.CellHeight + 1e-9))
	col1 := int(math.Ceil(r.MaxX()/c.CellWidth-1e-9)) - 1
	row1 := int(math.Ceil(r.MaxY()/c.CellHeight-1e-9)) - 1
	return CellRect{Col: col0, Row: row0, Cols: col1 - col0 + 1, Rows: row1 - row0 + 1}
}

// Point returns the point at the centre of a cell.
func (c CellMeasurer) Point(col, row int) model.Point {
	return model.Pt((float64(col)+0.5)*c.CellWidth, (float64(row)+0.5)*c.CellHeight)
}

// CellRect is a rectangle of terminal cells.
type CellRect struct {
	Col, Row   int
	Cols, Rows int
}

// Right returns the last column.
func (r CellRect) Right() int { return r.Col + r.Cols - 1 }

// Bottom returns the last row.
func (r CellRect) Bottom() int { return r.Row + r.Rows - 1 }
