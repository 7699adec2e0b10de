package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/poptip/internal/adapter/input"
	"github.com/jmylchreest/poptip/internal/layout"
	"github.com/jmylchreest/poptip/internal/model"
	"github.com/jmylchreest/poptip/internal/scenario"
)

// overrideOpts are flags shared by commands that build scenarios.
type overrideOpts struct {
	theme     string
	direction string
	device    string
}

func (o *overrideOpts) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.theme, "theme", "",
		"Theme applied beneath the scenario's inline style")
	cmd.Flags().StringVar(&o.direction, "direction", "",
		"Preferred pointer direction (any, up, down)")
	cmd.Flags().StringVar(&o.device, "device", "",
		"Device class for bubble margins (compact, regular)")
}

// loadScenarios imports one scenario per source; no sources means the
// built-in scenario and "-" reads stdin.
func loadScenarios(ctx context.Context, sources []string) ([]*scenario.Scenario, error) {
	if len(sources) == 0 {
		sources = []string{""}
	}

	var out []*scenario.Scenario
	for _, src := range sources {
		adapter, err := input.NewAdapter(src)
		if err != nil {
			return nil, fmt.Errorf("failed to create adapter: %w", err)
		}
		logger.Debug("loading scenario", "adapter", adapter.Name(), "source", src)

		sc, err := adapter.Import(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to import scenario: %w", err)
		}
		out = append(out, sc)
	}
	return out, nil
}

// buildScenario applies the override flags and builds sc against the
// loaded configuration.
func buildScenario(sc *scenario.Scenario, measurer layout.Measurer, o overrideOpts) (*scenario.Built, error) {
	if o.theme != "" {
		sc.Theme = o.theme
	}
	if o.device != "" {
		var d model.DeviceClass
		if err := d.UnmarshalText([]byte(o.device)); err != nil {
			return nil, err
		}
		sc.Device = &d
	}

	b, err := scenario.Build(sc, measurer, cfg.ScenarioDefaults(), logger)
	if err != nil {
		return nil, fmt.Errorf("scenario %q: %w", sc.Title(), err)
	}

	if o.direction != "" {
		var d model.Direction
		if err := d.UnmarshalText([]byte(o.direction)); err != nil {
			return nil, err
		}
		b.Behavior.PreferredDirection = d
		b.Tip.SetBehavior(b.Behavior.PopTipBehavior())
	}
	return b, nil
}
