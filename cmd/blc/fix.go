package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"blc/internal/driver"
	"blc/internal/fix"
)

func newFixCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fix [flags] file.bl",
		Short: "Apply suggested fixes to a BL source file",
		Long: `Fix repeatedly parses the file and applies the suggested fix of the
first syntax error until the program parses or no fix applies. The
repaired source goes to stdout unless --write is set.`,
		Args: cobra.ExactArgs(1),
		RunE: runFix,
	}
	cmd.Flags().Bool("write", false, "write the repaired source back to the file")
	cmd.Flags().Int("max-rounds", 16, "maximum number of fixes to apply")
	return cmd
}

func runFix(cmd *cobra.Command, args []string) error {
	path := args[0]
	g, err := readGlobalFlags(cmd)
	if err != nil {
		return err
	}
	write, err := cmd.Flags().GetBool("write")
	if err != nil {
		return fmt.Errorf("failed to get write flag: %w", err)
	}
	maxRounds, err := cmd.Flags().GetInt("max-rounds")
	if err != nil {
		return fmt.Errorf("failed to get max-rounds flag: %w", err)
	}
	vocab, err := vocabularyFor(path)
	if err != nil {
		return err
	}

	res, err := fix.RepairFile(cmd.Context(), path, fix.Options{
		Driver:    driver.Options{MaxDiagnostics: g.maxDiagnostics, Vocab: vocab},
		MaxRounds: maxRounds,
	}, write)
	if err != nil && !errors.Is(err, fix.ErrNoFixes) {
		return err
	}

	errOut := cmd.ErrOrStderr()
	if !g.quiet {
		for _, a := range res.Applied {
			fmt.Fprintf(errOut, "fixed %s:%d:%d %s: %s\n", path, a.Line, a.Col, a.Code.ID(), a.Title)
		}
		for _, s := range res.Skipped {
			fmt.Fprintf(errOut, "stopped: %s (%s)\n", s.Title, s.Reason)
		}
	}
	if !write && res.Changed() {
		if _, werr := cmd.OutOrStdout().Write(res.Content); werr != nil {
			return werr
		}
	}

	switch {
	case res.Clean:
		return nil
	case errors.Is(err, fix.ErrNoFixes):
		return fmt.Errorf("%s: %w", path, err)
	default:
		return fmt.Errorf("%s still has syntax errors", path)
	}
}
