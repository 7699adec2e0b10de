package input

import (
	"bufio"
	"context"
	"io"
	"os"

	"github.com/jmylchreest/poptip/internal/scenario"
)

// maxScenarioSize bounds how much of a stream is read.
const maxScenarioSize = 1024 * 1024

// StdinAdapter reads a scenario from standard input.
type StdinAdapter struct {
	reader io.Reader
}

// NewStdinAdapter creates a new StdinAdapter reading from os.Stdin.
func NewStdinAdapter() *StdinAdapter {
	return &StdinAdapter{reader: os.Stdin}
}

// NewStdinAdapterWithReader creates a new StdinAdapter with a custom reader.
func NewStdinAdapterWithReader(r io.Reader) *StdinAdapter {
	return &StdinAdapter{reader: r}
}

// Name returns the adapter identifier.
func (a *StdinAdapter) Name() string {
	return "stdin"
}

// Import reads a YAML or JSON scenario from standard input.
func (a *StdinAdapter) Import(ctx context.Context) (*scenario.Scenario, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	scanner := bufio.NewScanner(a.reader)
	scanner.Buffer(make([]byte, 64*1024), maxScenarioSize)

	var data []byte
	for scanner.Scan() {
		data = append(data, scanner.Bytes()...)
		data = append(data, '\n')
	}

	if err := scanner.Err(); err != nil {
		return nil, &AdapterError{
			Source:  "stdin",
			Message: "failed to read stdin",
			Err:     err,
		}
	}

	return parse("stdin", data)
}
