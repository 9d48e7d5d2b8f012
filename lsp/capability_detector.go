package lsp

import (
	"encoding/json"
)

// DetectPullDiagnosticsSupport detects whether the client supports pull
// diagnostics by parsing the raw initialize request parameters for the
// textDocument.diagnostic capability.
//
// LSP 3.17 introduced pull diagnostics via the textDocument/diagnostic
// method. Clients that support it include a "diagnostic" field in their
// textDocument capabilities. glsp v0.2.2 only models LSP 3.16, so the field
// has to be read from the raw JSON. Parse failures and absent fields both
// report false, which keeps the server on the push model.
func DetectPullDiagnosticsSupport(rawParams json.RawMessage) bool {
	var initParams struct {
		Capabilities struct {
			TextDocument *struct {
				Diagnostic *json.RawMessage `json:"diagnostic"`
			} `json:"textDocument"`
		} `json:"capabilities"`
	}

	if err := json.Unmarshal(rawParams, &initParams); err != nil {
		return false
	}

	if initParams.Capabilities.TextDocument == nil {
		return false
	}

	// Presence of the field is the signal, even when its value is empty
	return initParams.Capabilities.TextDocument.Diagnostic != nil
}
