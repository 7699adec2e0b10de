package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/template"

	"github.com/jmylchreest/poptip/internal/model"
)

// PlainFormatter formats reports as plain text.
type PlainFormatter struct {
	opts     FormatterOptions
	template *template.Template
}

// templateData is passed to custom templates.
type templateData struct {
	Index int
	Report
}

// NewPlainFormatter creates a new plain text formatter. A custom template
// that fails to parse is an error.
func NewPlainFormatter(opts FormatterOptions) (*PlainFormatter, error) {
	f := &PlainFormatter{opts: opts}

	if opts.Template != "" {
		tmpl, err := template.New("plain").Funcs(f.templateFuncs()).Parse(opts.Template)
		if err != nil {
			return nil, fmt.Errorf("invalid template: %w", err)
		}
		f.template = tmpl
	}

	return f, nil
}

// Format writes reports as plain text.
func (f *PlainFormatter) Format(w io.Writer, reports []Report) error {
	for i, r := range reports {
		if err := f.formatReport(w, i+1, r); err != nil {
			return err
		}
	}
	return nil
}

func (f *PlainFormatter) formatReport(w io.Writer, index int, r Report) error {
	if f.template != nil {
		if err := f.template.Execute(w, templateData{Index: index, Report: r}); err != nil {
			return err
		}
		_, err := io.WriteString(w, "\n")
		return err
	}

	var sb strings.Builder

	if f.opts.ShowIndex {
		sb.WriteString(fmt.Sprintf("[%d] ", index))
	}
	sb.WriteString(r.Scenario)

	if !r.Presented || r.Placement == nil {
		sb.WriteString(": not presented\n")
		_, err := io.WriteString(w, sb.String())
		return err
	}

	pl := r.Placement
	sb.WriteString(fmt.Sprintf(": %s, frame %s, pointer %s\n",
		pl.Direction, f.rect(pl.Frame), f.point(model.Pt(pl.PointerX, pl.PointerY))))

	if r.Sizing != nil {
		sb.WriteString(fmt.Sprintf("    bubble %s, content %s",
			f.size(r.Sizing.BubbleSize), f.size(r.Sizing.ContentSize)))
		if r.Sizing.TitleSize.Height > 0 {
			sb.WriteString(fmt.Sprintf(", title %s", f.size(r.Sizing.TitleSize)))
		}
		sb.WriteString("\n")
	}
	if r.ID != "" {
		sb.WriteString("    id " + r.ID + "\n")
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

func (f *PlainFormatter) num(v float64) string {
	return strconv.FormatFloat(v, 'f', f.opts.Precision, 64)
}

func (f *PlainFormatter) point(p model.Point) string {
	return "(" + f.num(p.X) + ", " + f.num(p.Y) + ")"
}

func (f *PlainFormatter) size(s model.Size) string {
	return f.num(s.Width) + "x" + f.num(s.Height)
}

func (f *PlainFormatter) rect(r model.Rect) string {
	return f.point(r.Origin) + " " + f.size(r.Size)
}

func (f *PlainFormatter) templateFuncs() template.FuncMap {
	return template.FuncMap{
		"num":   f.num,
		"point": f.point,
		"size":  f.size,
		"rect":  f.rect,
		"upper": strings.ToUpper,
		"lower": strings.ToLower,
		"truncate": func(maxLen int, s string) string {
			if maxLen > 3 && len(s) > maxLen {
				return s[:maxLen-3] + "..."
			}
			return s
		},
	}
}

// FormatField outputs a specific field from a report.
func FormatField(r Report, field string) string {
	switch strings.ToLower(field) {
	case "id":
		return r.ID
	case "scenario", "name":
		return r.Scenario
	case "title":
		return r.Content.Title
	case "message":
		return r.Content.Message
	case "direction":
		if r.Placement == nil {
			return ""
		}
		return r.Placement.Direction.String()
	case "pointer_y":
		if r.Placement == nil {
			return ""
		}
		return strconv.FormatFloat(r.Placement.PointerY, 'f', -1, 64)
	default:
		return r.Scenario
	}
}
