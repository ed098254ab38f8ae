package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"blc/internal/directive"
	"blc/internal/driver"
	"blc/internal/source"
)

func newTestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "test [path...]",
		Short: "Verify #! expect directives in BL fixtures",
		Long: `Test scans BL files for lines of the form

    #! expect: ok
    #! expect: SYN2304
    #! expect: SYN2304 at 3:5

and checks each one against the diagnostics the parser reports for that
file. Paths may be files or directories; the default is the current one.`,
		RunE: runTest,
	}
}

func runTest(cmd *cobra.Command, args []string) error {
	g, err := readGlobalFlags(cmd)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		args = []string{"."}
	}

	var out io.Writer = cmd.OutOrStdout()
	if g.quiet {
		out = io.Discard
	}

	var total directive.RunResult
	for _, path := range args {
		res, err := testPath(cmd, path, g, out)
		if err != nil {
			return err
		}
		total.Total += res.Total
		total.Passed += res.Passed
		total.Failed += res.Failed
		total.Failures = append(total.Failures, res.Failures...)
	}

	if total.Total == 0 {
		if !g.quiet {
			fmt.Fprintln(cmd.ErrOrStderr(), "no expectations found")
		}
		return nil
	}
	if !total.OK() {
		if g.quiet {
			for _, f := range total.Failures {
				fmt.Fprintf(cmd.ErrOrStderr(), "FAIL %s: %s\n", f.Scenario.Name(), f.Reason)
			}
		}
		return fmt.Errorf("%d of %d expectations failed", total.Failed, total.Total)
	}
	return nil
}

// testPath runs the expectations of one argument with the vocabulary of
// the project it belongs to.
func testPath(cmd *cobra.Command, path string, g globalFlags, out io.Writer) (directive.RunResult, error) {
	st, err := os.Stat(path)
	if err != nil {
		return directive.RunResult{}, fmt.Errorf("failed to stat path: %w", err)
	}
	files := []string{path}
	if st.IsDir() {
		if files, err = driver.ListSourceFiles(path); err != nil {
			return directive.RunResult{}, fmt.Errorf("failed to list sources: %w", err)
		}
	}
	vocab, err := vocabularyFor(path)
	if err != nil {
		return directive.RunResult{}, err
	}

	reg := directive.NewRegistry()
	fs := source.NewFileSet()
	for _, f := range files {
		id, err := fs.Load(f)
		if err != nil {
			return directive.RunResult{}, fmt.Errorf("failed to read %s: %w", f, err)
		}
		if _, err := reg.CollectFromFile(fs.Get(id)); err != nil {
			return directive.RunResult{}, err
		}
	}
	if reg.Len() == 0 {
		return directive.RunResult{}, nil
	}

	runner := directive.NewRunner(reg, directive.RunnerConfig{
		Driver: driver.Options{MaxDiagnostics: g.maxDiagnostics, Vocab: vocab},
		Output: out,
	})
	return runner.Run(cmd.Context())
}
