package model

import (
	"crypto/rand"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

// Content is the text shown inside a bubble. Empty strings mean absent.
type Content struct {
	Title   string `json:"title,omitempty" yaml:"title,omitempty" toml:"title"`
	Message string `json:"message,omitempty" yaml:"message,omitempty" toml:"message"`
}

// HasTitle reports whether a title is present.
func (c Content) HasTitle() bool { return c.Title != "" }

// HasMessage reports whether a message is present.
func (c Content) HasMessage() bool { return c.Message != "" }

// IsEmpty reports whether neither title nor message is present.
func (c Content) IsEmpty() bool { return !c.HasTitle() && !c.HasMessage() }

// Summary returns a single-line description suitable for log records.
func (c Content) Summary(maxLen int) string {
	s := c.Title
	if s == "" {
		s = c.Message
	}
	s = strings.ReplaceAll(s, "\n", " ")
	if maxLen > 3 && len(s) > maxLen {
		s = s[:maxLen-3] + "..."
	}
	return s
}

// NewPresentationID returns a fresh ULID identifying one presentation of a tip.
func NewPresentationID() (string, error) {
	id, err := ulid.New(ulid.Timestamp(time.Now()), rand.Reader)
	if err != nil {
		return "", fmt.Errorf("failed to generate ULID: %w", err)
	}
	return id.String(), nil
}
