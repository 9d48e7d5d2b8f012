package main

import (
	"bennypowers.dev/gqlls/internal/log"
	"bennypowers.dev/gqlls/lsp"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:          "serve",
	Short:        "Run the language server over stdio",
	SilenceUsage: true,
	RunE:         runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	server, err := lsp.NewServer()
	if err != nil {
		log.Error("Failed to create LSP server: %v", err)
		return err
	}
	defer server.Close()

	// Stdio transport, for VSCode and other editors
	if err := server.RunStdio(); err != nil {
		log.Error("Server error: %v", err)
		return err
	}
	return nil
}
