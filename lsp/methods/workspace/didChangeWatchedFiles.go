package workspace

import (
	"fmt"
	"os"

	"bennypowers.dev/gqlls/internal/uriutil"
	"bennypowers.dev/gqlls/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// DidChangeWatchedFiles handles the workspace/didChangeWatchedFiles notification
func DidChangeWatchedFiles(req *types.RequestContext, params *protocol.DidChangeWatchedFilesParams) error {
	fmt.Fprintf(os.Stderr, "[GQLLS] Watched files changed: %d files\n", len(params.Changes))

	needsReload := false

	for _, change := range params.Changes {
		path := uriutil.URIToPath(change.URI)
		fmt.Fprintf(os.Stderr, "[GQLLS] File change: %s (type: %d)\n", path, change.Type)

		if req.Server.IsSchemaFile(path) {
			if change.Type == protocol.FileChangeTypeDeleted {
				fmt.Fprintf(os.Stderr, "[GQLLS] Schema file deleted: %s\n", path)
			}
			// Created, modified, or deleted - reload either way. A deleted
			// schema path triggers re-discovery of an alternative file.
			needsReload = true
		}
	}

	if needsReload {
		fmt.Fprintf(os.Stderr, "[GQLLS] Reloading schema due to changes\n")

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
	}

	return nil
}
