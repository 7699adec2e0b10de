package output

import (
	"fmt"
	"io"
)

// IDsFormatter outputs just the presentation IDs, one per line. Reports that
// were never presented are skipped.
type IDsFormatter struct{}

// NewIDsFormatter creates a new IDs formatter.
func NewIDsFormatter() *IDsFormatter {
	return &IDsFormatter{}
}

// Format writes presentation IDs to the writer, one per line.
func (f *IDsFormatter) Format(w io.Writer, reports []Report) error {
	for _, r := range reports {
		if r.ID == "" {
			continue
		}
		if _, err := fmt.Fprintln(w, r.ID); err != nil {
			return err
		}
	}
	return nil
}
