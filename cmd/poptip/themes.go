package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/poptip/internal/theme"
)

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List available themes",
	Long: `List bundled themes and themes in ~/.config/poptip/themes.

A user theme with the same name as a bundled one replaces it.`,
	Args: cobra.NoArgs,
	RunE: runThemesList,
}

var themesShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Print a theme as TOML",
	Args:  cobra.ExactArgs(1),
	RunE:  runThemesShow,
}

func init() {
	rootCmd.AddCommand(themesCmd)
	themesCmd.AddCommand(themesShowCmd)
}

func runThemesList(cmd *cobra.Command, args []string) error {
	dir, err := theme.ThemesDir()
	if err != nil {
		logger.Warn("failed to resolve themes directory", "error", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 2, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSOURCE\tMODIFIED\tDESCRIPTION")
	for _, t := range theme.Available(dir) {
		source, modified := "bundled", "-"
		if !t.Embedded {
			source = t.Path
			modified = humanize.Time(t.ModTime)
		}
		marker := ""
		if t.Name == cfg.Theme.Name {
			marker = " *"
		}
		fmt.Fprintf(w, "%s%s\t%s\t%s\t%s\n", t.Name, marker, source, modified, t.Description)
	}
	return w.Flush()
}

func runThemesShow(cmd *cobra.Command, args []string) error {
	dir, _ := theme.ThemesDir()
	t, err := theme.LoadFrom(dir, args[0])
	if err != nil {
		return err
	}
	data, err := toml.Marshal(t)
	if err != nil {
		return fmt.Errorf("failed to marshal theme: %w", err)
	}
	_, err = os.Stdout.Write(data)
	return err
}
