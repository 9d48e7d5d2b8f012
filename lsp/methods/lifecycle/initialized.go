package lifecycle

import (
	"fmt"
	"os"

	"bennypowers.dev/gqlls/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Initialized handles the LSP initialized notification
func Initialized(req *types.RequestContext, params *protocol.InitializedParams) error {
	fmt.Fprintf(os.Stderr, "[GQLLS] Server initialized\n")

	// Store context for later use (diagnostics)
	req.Server.SetGLSPContext(req.GLSP)

	// Merge workspace graphql-config files under the client's settings
	if err := req.Server.LoadWorkspaceConfig(); err != nil {
		fmt.Fprintf(os.Stderr, "[GQLLS] Warning: failed to load workspace config: %v\n", err)
	}

	// Load the schema from configuration, or discover one in the workspace
	if err := req.Server.LoadSchemaFromConfig(); err != nil {
		fmt.Fprintf(os.Stderr, "[GQLLS] Warning: failed to load schema: %v\n", err)
		// Don't fail initialization, just log the error
	}

	// Register file watchers for the schema file
	if err := req.Server.RegisterFileWatchers(req.GLSP); err != nil {
		fmt.Fprintf(os.Stderr, "[GQLLS] Warning: failed to register file watchers: %v\n", err)
	}

	return nil
}
