package main

import (
	"os"

	"github.com/spf13/cobra"

	"bennypowers.dev/gqlls/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "graphql-language-server",
	Short: "GraphQL intelligence for JavaScript and TypeScript sources",
	Long: `graphql-language-server provides completion, hover, and diagnostics for
GraphQL documents embedded in tagged template literals of JavaScript and
TypeScript sources.`,
	Version: version.GetVersion(),
	// Launching with no subcommand starts the server, so editors can point
	// at the bare binary.
	RunE:         runServe,
	SilenceUsage: true,
}

func main() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(validateCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
