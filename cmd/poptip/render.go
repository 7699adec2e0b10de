package main

import (
	"bufio"
	"context"
	"fmt"
	"image"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/poptip/internal/render"
)

var renderOpts struct {
	overrideOpts

	output     string
	ratio      float64
	bubbleOnly bool
	highlight  bool
}

var renderCmd = &cobra.Command{
	Use:   "render [scenario]",
	Short: "Render a scenario to PNG",
	Long: `Present the scenario's tip and paint it to a PNG image.

By default the container and views are drawn behind the bubble; set
[render] scene = false in the config or pass --bubble-only to paint just
the bubble with its shadow.

Examples:
  poptip render tip.yaml -o tip.png
  poptip render --theme gradient --ratio 3 -o gradient.png
  poptip render tip.yaml --bubble-only -o - | wl-copy`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderOpts.register(renderCmd)

	renderCmd.Flags().StringVarP(&renderOpts.output, "output", "o", "poptip.png",
		"Output file (- for stdout)")
	renderCmd.Flags().Float64Var(&renderOpts.ratio, "ratio", 0,
		"Device pixels per point (default from config)")
	renderCmd.Flags().BoolVar(&renderOpts.bubbleOnly, "bubble-only", false,
		"Paint only the bubble")
	renderCmd.Flags().BoolVar(&renderOpts.highlight, "highlight", false,
		"Paint the bubble in its tapped state")
}

func runRender(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	scenarios, err := loadScenarios(ctx, args)
	if err != nil {
		return err
	}
	sc := scenarios[0]

	fonts, err := render.LoadFonts()
	if err != nil {
		return fmt.Errorf("failed to load fonts: %w", err)
	}

	b, err := buildScenario(sc, fonts, renderOpts.overrideOpts)
	if err != nil {
		return err
	}
	if !b.Present() {
		return fmt.Errorf("scenario %q: tip could not be presented", sc.Title())
	}

	ratio := cfg.Render.PixelRatio
	if cmd.Flags().Changed("ratio") {
		ratio = renderOpts.ratio
	}
	painter := render.NewPainter(fonts, ratio, logger)

	var img image.Image
	if renderOpts.bubbleOnly || !cfg.Render.Scene {
		snap := b.Tip.Snapshot()
		snap.Highlight = renderOpts.highlight
		img = painter.Bubble(snap).Image
	} else {
		img = painter.Scene(b.Scene)
	}

	if renderOpts.output == "-" {
		w := bufio.NewWriter(os.Stdout)
		if err := render.EncodePNG(w, img); err != nil {
			return err
		}
		return w.Flush()
	}

	if err := writePNG(renderOpts.output, img); err != nil {
		return err
	}

	info, err := os.Stat(renderOpts.output)
	if err != nil {
		return err
	}
	bounds := img.Bounds()
	fmt.Printf("Wrote %s (%s, %dx%d)\n", renderOpts.output,
		humanize.Bytes(uint64(info.Size())), bounds.Dx(), bounds.Dy())
	return nil
}

// writePNG encodes img to path atomically via a temp file.
func writePNG(path string, img image.Image) error {
	tmpPath := path + ".tmp"
	f, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("failed to create image file: %w", err)
	}
	if err := render.EncodePNG(f, img); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to encode image: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmpPath, path)
}
