package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"blc/internal/diag"
	"blc/internal/diagfmt"
	"blc/internal/source"
)

// globalFlags mirrors the persistent flags of the root command.
type globalFlags struct {
	color          string
	quiet          bool
	timings        bool
	maxDiagnostics int
}

func readGlobalFlags(cmd *cobra.Command) (globalFlags, error) {
	var g globalFlags
	var err error
	flags := cmd.Root().PersistentFlags()
	if g.color, err = flags.GetString("color"); err != nil {
		return g, fmt.Errorf("failed to get color flag: %w", err)
	}
	switch g.color {
	case "auto", "on", "off":
	default:
		return g, fmt.Errorf("invalid --color value %q (expected auto|on|off)", g.color)
	}
	if g.quiet, err = flags.GetBool("quiet"); err != nil {
		return g, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if g.timings, err = flags.GetBool("timings"); err != nil {
		return g, fmt.Errorf("failed to get timings flag: %w", err)
	}
	if g.maxDiagnostics, err = flags.GetInt("max-diagnostics"); err != nil {
		return g, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	return g, nil
}

// useColor resolves --color against the writer diagnostics go to.
func (g globalFlags) useColor(cmd *cobra.Command) bool {
	switch g.color {
	case "on":
		return true
	case "off":
		return false
	}
	f, ok := cmd.ErrOrStderr().(*os.File)
	return ok && isTerminal(f)
}

// printDiagnostics renders bag to stderr.
func printDiagnostics(cmd *cobra.Command, g globalFlags, bag *diag.Bag, fs *source.FileSet) {
	if bag == nil || bag.Len() == 0 {
		return
	}
	opts := diagfmt.PrettyOpts{
		Color:     g.useColor(cmd),
		Context:   2,
		PathMode:  diagfmt.PathModeRelative,
		ShowNotes: true,
		ShowFixes: true,
	}
	diagfmt.Pretty(cmd.ErrOrStderr(), bag, fs, opts)
}
