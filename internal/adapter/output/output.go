// Package output provides output formatters for layout reports.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/jmylchreest/poptip/internal/display"
	"github.com/jmylchreest/poptip/internal/layout"
	"github.com/jmylchreest/poptip/internal/model"
)

// Report is the outcome of presenting one tip.
type Report struct {
	Scenario  string            `json:"scenario" yaml:"scenario"`
	ID        string            `json:"id,omitempty" yaml:"id,omitempty"`
	Presented bool              `json:"presented" yaml:"presented"`
	Content   model.Content     `json:"content" yaml:"content"`
	Placement *layout.Placement `json:"placement,omitempty" yaml:"placement,omitempty"`
	Sizing    *layout.Sizing    `json:"sizing,omitempty" yaml:"sizing,omitempty"`
}

// NewReport captures a tip's current presentation state.
func NewReport(name string, tip *display.PopTip) Report {
	r := Report{
		Scenario:  name,
		ID:        tip.PresentationID(),
		Presented: tip.IsShowing(),
		Content:   tip.Content(),
	}
	if pl, ok := tip.Placement(); ok {
		r.Placement = &pl
	}
	if sz, ok := tip.Sizing(); ok {
		r.Sizing = &sz
	}
	return r
}

// Formatter formats layout reports for output.
type Formatter interface {
	// Format writes formatted reports to the writer.
	Format(w io.Writer, reports []Report) error
}

// FormatType represents an output format type.
type FormatType string

const (
	FormatJSON  FormatType = "json"
	FormatYAML  FormatType = "yaml"
	FormatPlain FormatType = "plain"
	FormatIDs   FormatType = "ids"
)

// FormatTypes lists the accepted --format values.
func FormatTypes() []string {
	return []string{string(FormatPlain), string(FormatJSON), string(FormatYAML), string(FormatIDs)}
}

// ParseFormat validates a --format value.
func ParseFormat(s string) (FormatType, error) {
	f := FormatType(strings.ToLower(s))
	switch f {
	case FormatJSON, FormatYAML, FormatPlain, FormatIDs:
		return f, nil
	case "":
		return FormatPlain, nil
	default:
		return "", fmt.Errorf("unknown format %q (valid: %s)", s, strings.Join(FormatTypes(), ", "))
	}
}

// NewFormatter creates a formatter for the specified format type.
func NewFormatter(format FormatType, opts FormatterOptions) (Formatter, error) {
	switch format {
	case FormatJSON:
		return NewJSONFormatter(opts), nil
	case FormatYAML:
		return NewYAMLFormatter(opts), nil
	case FormatIDs:
		return NewIDsFormatter(), nil
	case FormatPlain:
		fallthrough
	default:
		f, err := NewPlainFormatter(opts)
		if err != nil {
			return nil, err
		}
		return f, nil
	}
}

// FormatterOptions configures formatter behavior.
type FormatterOptions struct {
	Template  string // Custom text/template for plain format
	ShowIndex bool   // Show 1-based index prefix
	Precision int    // Decimal places for coordinates in plain format
}

// DefaultFormatterOptions returns sensible defaults for plain output.
func DefaultFormatterOptions() FormatterOptions {
	return FormatterOptions{
		ShowIndex: true,
		Precision: 1,
	}
}
