package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/poptip/internal/tui"
)

var demoCmd = &cobra.Command{
	Use:   "demo [scenario]",
	Short: "Launch the interactive demo",
	Long: `Present a scenario's tip in the terminal and play with it.

The config file is watched; saving it restyles the bubble live.

Key bindings:
  enter       Present or dismiss
  a           Present with auto-dismiss
  tab/n       Select the next view as anchor
  ↑↓←→/hjkl   Move the selected view
  p           Switch slide/pop animation
  o           Cycle preferred direction
  s           Toggle shadow
  t           Next bundled theme
  click       Tap (outside the bubble dismisses it)
  ?           Show help
  q           Quit`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDemo,
}

func init() {
	rootCmd.AddCommand(demoCmd)
}

func runDemo(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	scenarios, err := loadScenarios(ctx, args)
	cancel()
	if err != nil {
		return err
	}

	return tui.Run(tui.RunOptions{
		Config:     cfg,
		ConfigPath: configPath(),
		Scenario:   scenarios[0],
		Logger:     logger,
	})
}
