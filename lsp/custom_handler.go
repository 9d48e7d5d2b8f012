package lsp

import (
	"encoding/json"

	"bennypowers.dev/gqlls/lsp/methods/textDocument/diagnostic"
	"bennypowers.dev/gqlls/lsp/types"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// CustomHandler wraps protocol.Handler to add custom method support
//
// WORKAROUND: glsp v0.2.2 implements LSP 3.16, so protocol.Handler has no
// fields for LSP 3.17 methods like textDocument/diagnostic. This wrapper
// intercepts those methods before they reach protocol.Handler. When glsp
// gains LSP 3.17 support, handlers can be registered directly instead.
type CustomHandler struct {
	*protocol.Handler // Pointer to avoid copying embedded mutex
	server            *Server
}

// Handle implements glsp.Handler interface
func (h *CustomHandler) Handle(context *glsp.Context) (r any, validMethod bool, validParams bool, err error) {
	// Intercept initialize to detect the LSP 3.17 diagnostic capability from
	// the raw params, then fall through so normal initialization proceeds.
	if context.Method == "initialize" {
		supportsPullDiagnostics := DetectPullDiagnosticsSupport(context.Params)
		h.server.SetClientDiagnosticCapability(supportsPullDiagnostics)
	}

	// textDocument/diagnostic doesn't exist in protocol.Handler (LSP 3.16),
	// so parse params and dispatch manually.
	if context.Method == "textDocument/diagnostic" {
		var params diagnostic.DocumentDiagnosticParams
		if err := json.Unmarshal(context.Params, &params); err != nil {
			return nil, true, false, err
		}

		req := types.NewRequestContext(h.server, context)
		result, err := diagnostic.DocumentDiagnostic(req, &params)
		if err != nil {
			return nil, true, true, err
		}

		return result, true, true, nil
	}

	// Fall through to default protocol.Handler
	return h.Handler.Handle(context)
}
