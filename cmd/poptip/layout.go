package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/poptip/internal/adapter/output"
	"github.com/jmylchreest/poptip/internal/render"
)

var layoutOpts struct {
	overrideOpts

	// Output options
	format   string
	field    string
	template string
	noIndex  bool
}

var layoutCmd = &cobra.Command{
	Use:   "layout [scenario...]",
	Short: "Compute bubble placement for scenarios",
	Long: `Present the tip of each scenario and print where the bubble went.

Scenarios are YAML (or JSON) files; "-" reads one from stdin and no
argument uses the built-in scenario. Text is measured with the bundled
Go fonts, the same metrics "poptip render" draws with.

Examples:
  # Placement of the built-in scenario
  poptip layout

  # Several scenarios as JSON
  poptip layout toolbar.yaml navbar.yaml --format json

  # Force the pointer below the anchor
  poptip layout tip.yaml --direction down

  # Just the pointer direction
  poptip layout tip.yaml --field direction

  # Custom line format
  poptip layout tip.yaml --template '{{.Scenario}} {{rect .Placement.Frame}}'`,
	RunE: runLayout,
}

func init() {
	rootCmd.AddCommand(layoutCmd)

	layoutOpts.register(layoutCmd)

	layoutCmd.Flags().StringVarP(&layoutOpts.format, "format", "f", "plain",
		"Output format (plain, json, yaml, ids)")
	layoutCmd.Flags().StringVar(&layoutOpts.field, "field", "",
		"Output a single field per scenario (id, scenario, title, message, direction, pointer_y)")
	layoutCmd.Flags().StringVar(&layoutOpts.template, "template", "",
		"Custom Go template for plain output")
	layoutCmd.Flags().BoolVar(&layoutOpts.noIndex, "no-index", false,
		"Omit the index prefix in plain output")
}

func runLayout(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	scenarios, err := loadScenarios(ctx, args)
	if err != nil {
		return err
	}

	fonts, err := render.LoadFonts()
	if err != nil {
		return fmt.Errorf("failed to load fonts: %w", err)
	}

	reports := make([]output.Report, 0, len(scenarios))
	for _, sc := range scenarios {
		b, err := buildScenario(sc, fonts, layoutOpts.overrideOpts)
		if err != nil {
			return err
		}
		if !b.Present() {
			logger.Warn("tip was not presented", "scenario", sc.Title())
		}
		reports = append(reports, output.NewReport(sc.Title(), b.Tip))
	}

	if layoutOpts.field != "" {
		for _, r := range reports {
			fmt.Println(output.FormatField(r, layoutOpts.field))
		}
		return nil
	}

	format, err := output.ParseFormat(layoutOpts.format)
	if err != nil {
		return err
	}
	opts := output.DefaultFormatterOptions()
	opts.Template = layoutOpts.template
	opts.ShowIndex = !layoutOpts.noIndex
	formatter, err := output.NewFormatter(format, opts)
	if err != nil {
		return err
	}
	return formatter.Format(os.Stdout, reports)
}
