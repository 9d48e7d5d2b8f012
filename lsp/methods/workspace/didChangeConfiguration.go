package workspace

import (
	"fmt"
	"os"

	"bennypowers.dev/gqlls/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// DidChangeConfiguration handles the workspace/didChangeConfiguration notification
func DidChangeConfiguration(req *types.RequestContext, params *protocol.DidChangeConfigurationParams) error {
	fmt.Fprintf(os.Stderr, "[GQLLS] Configuration changed\n")

	config, err := types.ParseClientConfig(types.DefaultConfig(), params.Settings)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[GQLLS] Warning: failed to parse configuration: %v\n", err)
		return nil // Don't fail, just use defaults
	}

	req.Server.SetConfig(config)

	// Client settings replace the whole config, so re-merge the workspace
	// config file underneath them; it only fills values still unset.
	if err := req.Server.LoadWorkspaceConfig(); err != nil {
		fmt.Fprintf(os.Stderr, "[GQLLS] Warning: failed to reload workspace config: %v\n", err)
	}

	fmt.Fprintf(os.Stderr, "[GQLLS] New configuration: %+v\n", req.Server.GetConfig())

	// Reload the schema with the new configuration
	if err := req.Server.LoadSchemaFromConfig(); err != nil {
		fmt.Fprintf(os.Stderr, "[GQLLS] Warning: failed to reload schema: %v\n", err)
	}

	// Republish diagnostics for all open documents
	glspCtx := req.Server.GLSPContext()
	if glspCtx != nil {
		for _, doc := range req.Server.AllDocuments() {
			if err := req.Server.PublishDiagnostics(glspCtx, doc.URI()); err != nil {
				fmt.Fprintf(os.Stderr, "[GQLLS] Warning: failed to publish diagnostics for %s: %v\n", doc.URI(), err)
			}
		}
	}

	return nil
}
