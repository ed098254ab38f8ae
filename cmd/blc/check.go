package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"blc/internal/diagfmt"
	"blc/internal/driver"
	"blc/internal/project"
	"blc/internal/source"
	"blc/internal/trace"
)

const cacheAppName = "blc"

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [flags] [dir]",
		Short: "Check every BL file of a project for syntax errors",
		Long: `Check parses every *.bl file under the project source root (or the
given directory) and reports all syntax errors. It exits with a non-zero
status if any file fails.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runCheck,
	}
	cmd.Flags().Int("jobs", 0, "max parallel workers (0=manifest or auto)")
	cmd.Flags().Bool("no-cache", false, "do not read or write the parse cache")
	cmd.Flags().String("ui", "auto", "progress UI (auto|on|off)")
	cmd.Flags().String("format", "pretty", "diagnostics format (pretty|json)")
	return cmd
}

// checkPlan is what check resolved from flags and bl.toml.
type checkPlan struct {
	root     string
	manifest *project.Manifest
	opts     driver.Options
	useCache bool
}

func runCheck(cmd *cobra.Command, args []string) error {
	g, err := readGlobalFlags(cmd)
	if err != nil {
		return err
	}
	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}

	plan, err := planCheck(cmd, args, g)
	if err != nil {
		return err
	}
	if plan.useCache {
		cache, cerr := driver.OpenDiskCache(cacheAppName)
		if cerr != nil {
			trace.Point(trace.FromContext(cmd.Context()), trace.ScopeDriver, "cache-disabled", cerr.Error(), trace.CurrentSpan(cmd.Context()).SpanID)
		} else {
			plan.opts.Cache = cache
		}
	}

	files, err := driver.ListSourceFiles(plan.root)
	if err != nil {
		return fmt.Errorf("failed to list sources: %w", err)
	}
	if len(files) == 0 {
		if !g.quiet {
			fmt.Fprintf(cmd.ErrOrStderr(), "no %s files under %s\n", driver.SourceExt, plan.root)
		}
		return nil
	}

	var (
		fs      *source.FileSet
		results []driver.ParseDirResult
	)
	if !g.quiet && shouldUseTUI(mode) {
		fs, results, err = runCheckWithUI(cmd.Context(), "blc check", plan.root, files, plan.opts)
	} else {
		fs, results, err = driver.ParseFiles(cmd.Context(), plan.root, files, plan.opts)
	}
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	bag := driver.MergeBags(results, plan.opts.MaxDiagnostics)
	if format == "json" {
		out := diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         diagfmt.PathModeRelative,
			IncludeNotes:     true,
			IncludeFixes:     true,
		}
		if err := diagfmt.JSON(cmd.OutOrStdout(), bag, fs, out); err != nil {
			return err
		}
	} else {
		printDiagnostics(cmd, g, bag, fs)
	}

	failed, cached := 0, 0
	for _, r := range results {
		if r.Bag != nil && r.Bag.HasErrors() {
			failed++
		}
		if r.Cached {
			cached++
		}
	}
	if !g.quiet && format == "pretty" {
		fmt.Fprintf(cmd.ErrOrStderr(), "checked %d files: %d failed, %d from cache\n", len(results), failed, cached)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files have errors", failed, len(results))
	}
	return nil
}

// planCheck resolves the source root and driver options. Flags that were
// set explicitly win over bl.toml.
func planCheck(cmd *cobra.Command, args []string, g globalFlags) (checkPlan, error) {
	start := "."
	if len(args) == 1 {
		start = args[0]
	}
	st, err := os.Stat(start)
	if err != nil {
		return checkPlan{}, fmt.Errorf("failed to stat path: %w", err)
	}
	if !st.IsDir() {
		return checkPlan{}, fmt.Errorf("%s is not a directory", start)
	}

	m, err := manifestFor(start)
	if err != nil {
		return checkPlan{}, err
	}
	vocab, err := m.Vocabulary()
	if err != nil {
		return checkPlan{}, err
	}

	plan := checkPlan{
		root:     start,
		manifest: m,
		opts: driver.Options{
			MaxDiagnostics: g.maxDiagnostics,
			Vocab:          vocab,
			Timings:        g.timings,
		},
		useCache: m.CacheEnabled(),
	}
	if m != nil {
		if len(args) == 0 {
			plan.root = m.SourceRoot()
		}
		plan.opts.Jobs = m.Config.Check.Jobs
		if !cmd.Root().PersistentFlags().Changed("max-diagnostics") && m.Config.Check.MaxDiagnostics > 0 {
			plan.opts.MaxDiagnostics = m.Config.Check.MaxDiagnostics
		}
	}
	if cmd.Flags().Changed("jobs") {
		if plan.opts.Jobs, err = cmd.Flags().GetInt("jobs"); err != nil {
			return checkPlan{}, fmt.Errorf("failed to get jobs flag: %w", err)
		}
	}
	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return checkPlan{}, fmt.Errorf("failed to get no-cache flag: %w", err)
	}
	if noCache {
		plan.useCache = false
	}
	if abs, err := filepath.Abs(plan.root); err == nil {
		plan.root = abs
	}
	return plan, nil
}
