package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"blc/internal/diag"
	"blc/internal/driver"
	"blc/internal/format"
	"blc/internal/source"
)

func newFmtCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fmt [flags] <file.bl|directory>...",
		Short: "Format BL source files",
		Long: `Fmt rewrites BL programs in canonical layout. With one file and no
flags the result goes to stdout; --write updates files in place and --check
lists files whose layout differs.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runFmt,
	}
	cmd.Flags().Bool("write", false, "write result to the source files")
	cmd.Flags().Bool("check", false, "report files that are not formatted and exit non-zero")
	cmd.Flags().Int("indent", 2, "spaces per indentation level")
	cmd.Flags().Bool("tabs", false, "indent with tabs")
	return cmd
}

func runFmt(cmd *cobra.Command, args []string) error {
	g, err := readGlobalFlags(cmd)
	if err != nil {
		return err
	}
	write, _ := cmd.Flags().GetBool("write")
	check, _ := cmd.Flags().GetBool("check")
	indent, _ := cmd.Flags().GetInt("indent")
	tabs, _ := cmd.Flags().GetBool("tabs")
	if write && check {
		return fmt.Errorf("--write and --check are mutually exclusive")
	}

	var files []string
	for _, arg := range args {
		st, err := os.Stat(arg)
		if err != nil {
			return fmt.Errorf("failed to stat path: %w", err)
		}
		if !st.IsDir() {
			files = append(files, arg)
			continue
		}
		found, err := driver.ListSourceFiles(arg)
		if err != nil {
			return fmt.Errorf("failed to list sources: %w", err)
		}
		files = append(files, found...)
	}
	if !write && !check && len(files) != 1 {
		return fmt.Errorf("formatting %d files needs --write or --check", len(files))
	}

	var failed, unformatted int
	fs := source.NewFileSet()
	for _, path := range files {
		// a file named directly and through its directory is handled once
		if _, seen := fs.GetLatest(path); seen {
			continue
		}
		vocab, err := vocabularyFor(path)
		if err != nil {
			return err
		}
		fileID, err := fs.Load(path)
		if err != nil {
			return fmt.Errorf("failed to load %s: %w", path, err)
		}
		file := fs.Get(fileID)

		bag := diag.NewBag(g.maxDiagnostics)
		out, err := format.FormatFile(file, format.Options{
			IndentWidth: indent,
			UseTabs:     tabs,
			Vocab:       vocab,
			Reporter:    diag.BagReporter{Bag: bag},
		})
		if err != nil {
			failed++
			// полная диагностика с подсказками
			res := driver.ParseSource(cmd.Context(), file.Path, file.Content, driver.Options{MaxDiagnostics: g.maxDiagnostics, Vocab: vocab})
			printDiagnostics(cmd, g, res.Bag, res.FileSet)
			continue
		}

		changed := !bytes.Equal(out, file.Content)
		switch {
		case check:
			if changed {
				unformatted++
				fmt.Fprintln(cmd.OutOrStdout(), path)
			}
		case write:
			if !changed {
				continue
			}
			mode := os.FileMode(0o644)
			if info, err := os.Stat(path); err == nil {
				mode = info.Mode()
			}
			if err := os.WriteFile(path, out, mode); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}
			if !g.quiet {
				fmt.Fprintf(cmd.ErrOrStderr(), "formatted %s\n", path)
			}
		default:
			if _, err := cmd.OutOrStdout().Write(out); err != nil {
				return err
			}
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d files could not be formatted", failed)
	}
	if unformatted > 0 {
		return fmt.Errorf("%d files need formatting", unformatted)
	}
	return nil
}
