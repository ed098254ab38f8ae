package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"blc/internal/lsp"
)

func newLSPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Run the BL language server over stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			g, err := readGlobalFlags(cmd)
			if err != nil {
				return err
			}
			server := lsp.NewServer(cmd.InOrStdin(), cmd.OutOrStdout(), lsp.ServerOptions{
				MaxDiagnostics: g.maxDiagnostics,
				Log:            cmd.ErrOrStderr(),
			})
			if err := server.Run(cmd.Context()); err != nil {
				if errors.Is(err, lsp.ErrExitWithoutShutdown) {
					return err
				}
				return fmt.Errorf("lsp: %w", err)
			}
			return nil
		},
	}
}
