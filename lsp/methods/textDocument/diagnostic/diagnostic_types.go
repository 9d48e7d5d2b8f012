package diagnostic

import (
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// LSP 3.17 pull diagnostics types.
//
// WORKAROUND: glsp v0.2.2 only ships LSP 3.16, which predates the
// textDocument/diagnostic method. These types mirror the 3.17 wire format
// so the CustomHandler can unmarshal requests and the handler can answer
// them. When glsp gains LSP 3.17 support these can be replaced with the
// library's own definitions.

// DocumentDiagnosticParams are the parameters of a textDocument/diagnostic request
type DocumentDiagnosticParams struct {
	TextDocument protocol.TextDocumentIdentifier `json:"textDocument"`

	// Identifier is an optional result identifier from the server's
	// DiagnosticOptions
	Identifier *string `json:"identifier,omitempty"`

	// PreviousResultID of a previous response, for unchanged reporting
	PreviousResultID *string `json:"previousResultId,omitempty"`
}

// DocumentDiagnosticReportKind distinguishes full from unchanged reports
type DocumentDiagnosticReportKind string

const (
	// DiagnosticFull signals a report containing all known diagnostics
	DiagnosticFull DocumentDiagnosticReportKind = "full"

	// DiagnosticUnchanged signals the diagnostics are unchanged since
	// the previous result
	DiagnosticUnchanged DocumentDiagnosticReportKind = "unchanged"
)

// RelatedFullDocumentDiagnosticReport is a full diagnostic report for a document
type RelatedFullDocumentDiagnosticReport struct {
	Kind     string                `json:"kind"`
	ResultID *string               `json:"resultId,omitempty"`
	Items    []protocol.Diagnostic `json:"items"`
}

// DiagnosticOptions advertise the server's pull-diagnostics capability
type DiagnosticOptions struct {
	Identifier            *string `json:"identifier,omitempty"`
	InterFileDependencies bool    `json:"interFileDependencies"`
	WorkspaceDiagnostics  bool    `json:"workspaceDiagnostics"`
}
