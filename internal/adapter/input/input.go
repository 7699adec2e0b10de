// Package input provides adapters that load scenarios from their sources.
package input

import (
	"context"

	"github.com/jmylchreest/poptip/internal/scenario"
)

// InputAdapter loads a scenario from a source.
type InputAdapter interface {
	// Name returns the adapter identifier (e.g., "file", "stdin").
	Name() string

	// Import reads and parses the scenario.
	Import(ctx context.Context) (*scenario.Scenario, error)
}

// NewAdapter creates an InputAdapter for the specified source.
// An empty source selects the built-in scenario, "-" reads standard input,
// anything else is a file path.
func NewAdapter(source string) (InputAdapter, error) {
	switch source {
	case "", "builtin":
		return BuiltinAdapter{}, nil
	case "-", "stdin":
		return NewStdinAdapter(), nil
	default:
		return NewFileAdapter(source), nil
	}
}

// BuiltinAdapter returns the default scenario.
type BuiltinAdapter struct{}

// Name returns the adapter identifier.
func (BuiltinAdapter) Name() string { return "builtin" }

// Import returns a fresh copy of the default scenario.
func (BuiltinAdapter) Import(ctx context.Context) (*scenario.Scenario, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return scenario.Default(), nil
}

// AdapterError represents an adapter-related error.
type AdapterError struct {
	Source  string
	Message string
	Err     error
}

func (e *AdapterError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AdapterError) Unwrap() error {
	return e.Err
}

// parse wraps scenario.Parse errors with the source they came from.
func parse(source string, data []byte) (*scenario.Scenario, error) {
	if len(data) == 0 {
		return nil, &AdapterError{Source: source, Message: "empty scenario"}
	}
	sc, err := scenario.Parse(data)
	if err != nil {
		return nil, &AdapterError{
			Source:  source,
			Message: "failed to load scenario",
			Err:     err,
		}
	}
	return sc, nil
}
