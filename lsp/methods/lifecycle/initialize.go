package lifecycle

import (
	"fmt"
	"os"

	"bennypowers.dev/gqlls/internal/uriutil"
	"bennypowers.dev/gqlls/internal/version"
	"bennypowers.dev/gqlls/lsp/methods/textDocument/diagnostic"
	"bennypowers.dev/gqlls/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Initialize handles the LSP initialize request
func Initialize(req *types.RequestContext, params *protocol.InitializeParams) (any, error) {
	clientName := "unknown"
	if params.ClientInfo != nil {
		clientName = params.ClientInfo.Name
	}

	fmt.Fprintf(os.Stderr, "[GQLLS] Initializing for client: %s\n", clientName)

	// The CustomHandler parses the raw initialize params before this handler
	// runs and records whether the client declared the LSP 3.17
	// textDocument.diagnostic capability. glsp v0.2.2 is LSP 3.16 so the
	// parsed params struct can't carry that field itself.
	supportsPullDiagnostics := false
	if capability := req.Server.ClientDiagnosticCapability(); capability != nil {
		supportsPullDiagnostics = *capability
	}
	req.Server.SetUsePullDiagnostics(supportsPullDiagnostics)

	if supportsPullDiagnostics {
		fmt.Fprintf(os.Stderr, "[GQLLS] Using pull diagnostics model (LSP 3.17) - client will request diagnostics\n")
	} else {
		fmt.Fprintf(os.Stderr, "[GQLLS] Using push diagnostics model (LSP 3.0) - server will push diagnostics\n")
	}

	// Store the workspace root
	if params.RootURI != nil {
		req.Server.SetRootURI(*params.RootURI)
		req.Server.SetRootPath(uriutil.URIToPath(*params.RootURI))
		fmt.Fprintf(os.Stderr, "[GQLLS] Workspace root: %s\n", req.Server.RootPath())
	} else if params.RootPath != nil {
		req.Server.SetRootPath(*params.RootPath)
		req.Server.SetRootURI(uriutil.PathToURI(*params.RootPath))
		fmt.Fprintf(os.Stderr, "[GQLLS] Workspace root (from rootPath): %s\n", req.Server.RootPath())
	}

	// Apply configuration from initializationOptions, if the client sent any
	if params.InitializationOptions != nil {
		if config, err := types.ParseClientConfig(req.Server.GetConfig(), params.InitializationOptions); err != nil {
			fmt.Fprintf(os.Stderr, "[GQLLS] Warning: bad initializationOptions: %v\n", err)
		} else {
			req.Server.SetConfig(config)
		}
	}

	// Build server capabilities
	//
	// WORKAROUND: We use map[string]any instead of protocol.ServerCapabilities
	// to include LSP 3.17 fields that don't exist in glsp v0.2.2's struct.
	syncKind := protocol.TextDocumentSyncKindIncremental
	capabilities := map[string]any{
		"textDocumentSync": protocol.TextDocumentSyncOptions{
			OpenClose: boolPtr(true),
			Change:    &syncKind,
		},
		"hoverProvider": true,
		"completionProvider": protocol.CompletionOptions{
			TriggerCharacters: []string{"{", " ", ".", "@"},
		},
	}

	// LSP 3.17: Only advertise pull diagnostics if client supports it.
	// For older clients we fall back to push diagnostics.
	if supportsPullDiagnostics {
		capabilities["diagnosticProvider"] = diagnostic.DiagnosticOptions{
			InterFileDependencies: false,
			WorkspaceDiagnostics:  false,
		}
	}

	// WORKAROUND: custom result struct with an any-typed Capabilities field,
	// for the same LSP 3.16 vs 3.17 reason as above.
	return struct {
		Capabilities any                                  `json:"capabilities"`
		ServerInfo   *protocol.InitializeResultServerInfo `json:"serverInfo,omitempty"`
	}{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    "graphql-language-server",
			Version: strPtr(version.GetVersion()),
		},
	}, nil
}

func boolPtr(b bool) *bool {
	return &b
}

func strPtr(s string) *string {
	return &s
}
