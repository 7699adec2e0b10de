package input

import (
	"context"
	"fmt"
	"os"

	"github.com/jmylchreest/poptip/internal/scenario"
)

// FileAdapter reads a scenario from a file.
type FileAdapter struct {
	path string
}

// NewFileAdapter creates a FileAdapter for path.
func NewFileAdapter(path string) *FileAdapter {
	return &FileAdapter{path: path}
}

// Name returns the adapter identifier.
func (a *FileAdapter) Name() string {
	return "file"
}

// Path returns the scenario file path.
func (a *FileAdapter) Path() string { return a.path }

// Import reads and parses the file.
func (a *FileAdapter) Import(ctx context.Context) (*scenario.Scenario, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	info, err := os.Stat(a.path)
	if err != nil {
		return nil, &AdapterError{Source: a.path, Message: "failed to open scenario", Err: err}
	}
	if info.Size() > maxScenarioSize {
		return nil, &AdapterError{
			Source:  a.path,
			Message: fmt.Sprintf("scenario larger than %d bytes", maxScenarioSize),
		}
	}

	data, err := os.ReadFile(a.path)
	if err != nil {
		return nil, &AdapterError{Source: a.path, Message: "failed to read scenario", Err: err}
	}
	return parse(a.path, data)
}
