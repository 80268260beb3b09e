package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cppedit/internal/lsp"
	"cppedit/internal/version"
)

var lspCmd = &cobra.Command{
	Use:          "lsp",
	Short:        "Run the C++ language server over stdio",
	SilenceUsage: true,
	RunE:         runLSP,
}

func runLSP(cmd *cobra.Command, _ []string) error {
	m, err := loadManifest(cmd)
	if err != nil {
		return err
	}
	cfg, err := formatConfig(cmd, m)
	if err != nil {
		return err
	}
	// the server still works without a store, it only loses autosave
	st, err := openStore(m)
	if err != nil {
		fmt.Fprintf(os.Stderr, "lsp: autosave disabled: %v\n", err)
		st = nil
	}

	server := lsp.NewServer(os.Stdin, os.Stdout, lsp.ServerOptions{
		Format:  cfg,
		Store:   st,
		Version: version.Version,
	})
	if err := server.Run(cmd.Context()); err != nil {
		if errors.Is(err, lsp.ErrExit) {
			return nil
		}
		if errors.Is(err, lsp.ErrExitWithoutShutdown) {
			return fmt.Errorf("lsp exit without shutdown")
		}
		return err
	}
	return nil
}
