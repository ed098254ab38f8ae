package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"blc/internal/ast"
	"blc/internal/diagfmt"
	"blc/internal/driver"
	"blc/internal/source"
)

func newParseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [flags] <file.bl|directory>",
		Short: "Parse a BL source file or directory and print the statement tree",
		Long:  `Parse analyzes a BL source file or every *.bl file in a directory and prints the resulting statement trees`,
		Args:  cobra.ExactArgs(1),
		RunE:  runParse,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|tree|json|yaml|dump)")
	cmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	return cmd
}

var parseFormats = map[string]bool{"pretty": true, "tree": true, "json": true, "yaml": true, "dump": true}

// parsedFile is one tree ready for output.
type parsedFile struct {
	path string
	root *ast.Stmt
}

func runParse(cmd *cobra.Command, args []string) error {
	target := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if !parseFormats[format] {
		return fmt.Errorf("unknown format: %s", format)
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	g, err := readGlobalFlags(cmd)
	if err != nil {
		return err
	}
	vocab, err := vocabularyFor(target)
	if err != nil {
		return err
	}
	opts := driver.Options{
		MaxDiagnostics: g.maxDiagnostics,
		Jobs:           jobs,
		Vocab:          vocab,
		Timings:        g.timings,
	}

	st, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("failed to stat path: %w", err)
	}

	if !st.IsDir() {
		result, err := driver.Parse(cmd.Context(), target, opts)
		if err != nil {
			return fmt.Errorf("parsing failed: %w", err)
		}
		printDiagnostics(cmd, g, result.Bag, result.FileSet)
		if result.Root == nil {
			return fmt.Errorf("%s: %w", result.File.Path, result.Err)
		}
		display := result.File.FormatPath("relative", result.FileSet.BaseDir())
		return writeTrees(cmd.OutOrStdout(), format, g.quiet, result.FileSet, []parsedFile{{path: display, root: result.Root}}, false)
	}

	fs, results, err := driver.ParseDir(cmd.Context(), target, opts)
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}
	printDiagnostics(cmd, g, driver.MergeBags(results, 0), fs)

	var files []parsedFile
	failed := 0
	for _, r := range results {
		if r.Root == nil {
			failed++
			continue
		}
		display := fs.Get(r.FileID).FormatPath("relative", fs.BaseDir())
		files = append(files, parsedFile{path: display, root: r.Root})
	}
	if err := writeTrees(cmd.OutOrStdout(), format, g.quiet, fs, files, true); err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed to parse", failed, len(results))
	}
	return nil
}

// writeTrees prints trees in the requested format. Text formats get a
// "== path ==" header per file in directory mode unless quiet is set.
func writeTrees(w io.Writer, format string, quiet bool, fs *source.FileSet, files []parsedFile, multi bool) error {
	switch format {
	case "json", "yaml":
		var v any
		if multi {
			outs := make([]diagfmt.FileASTOutput, 0, len(files))
			for _, f := range files {
				outs = append(outs, diagfmt.BuildFileASTOutput(f.root, fs, f.path))
			}
			v = outs
		} else {
			v = diagfmt.BuildFileASTOutput(files[0].root, fs, files[0].path)
		}
		if format == "json" {
			return diagfmt.WriteASTJSON(w, v)
		}
		return diagfmt.WriteASTYAML(w, v)
	}

	for idx, f := range files {
		if multi && !quiet {
			if _, err := fmt.Fprintf(w, "== %s ==\n", f.path); err != nil {
				return err
			}
		}
		var err error
		switch format {
		case "pretty":
			err = diagfmt.FormatASTPretty(w, f.root, fs)
		case "tree":
			err = diagfmt.FormatASTTree(w, f.root)
		case "dump":
			err = diagfmt.FormatASTDump(w, f.root)
		}
		if err != nil {
			return err
		}
		if multi && !quiet && idx < len(files)-1 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
	}
	return nil
}
