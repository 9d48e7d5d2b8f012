package diagnostic

import (
	"fmt"
	"os"

	"bennypowers.dev/gqlls/internal/overlay"
	"bennypowers.dev/gqlls/internal/parser/js"
	"bennypowers.dev/gqlls/internal/uriutil"
	"bennypowers.dev/gqlls/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// DocumentDiagnostic handles the textDocument/diagnostic request (pull diagnostics)
//
// This is an LSP 3.17 feature. Since glsp v0.2.2 only supports LSP 3.16, this
// handler is reached via CustomHandler, which intercepts the method before it
// falls through to protocol.Handler.
func DocumentDiagnostic(req *types.RequestContext, params *DocumentDiagnosticParams) (any, error) {
	uri := params.TextDocument.URI
	fmt.Fprintf(os.Stderr, "[GQLLS] Pull diagnostics requested for: %s\n", uri)

	diagnostics, err := GetDiagnostics(req.Server, uri)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[GQLLS] Error getting diagnostics: %v\n", err)
		return nil, err
	}

	return RelatedFullDocumentDiagnosticReport{
		Kind:  string(DiagnosticFull),
		Items: diagnostics,
	}, nil
}

// GetDiagnostics returns diagnostics for a document. Non-script documents
// and unknown URIs yield nil. Host diagnostics are not produced here; only
// GraphQL findings from analyzed template literals are reported.
func GetDiagnostics(ctx types.ServerContext, uri string) ([]protocol.Diagnostic, error) {
	doc := ctx.Document(uri)
	if doc == nil {
		return nil, nil
	}

	if !js.IsScriptLanguage(doc.LanguageID()) {
		return nil, nil
	}

	parser := js.AcquireParser()
	defer js.ReleaseParser(parser)
	file := parser.Parse(uriutil.URIToPath(uri), doc.Content())

	ov := overlay.New(ctx.SchemaRegistry(), ctx.TagCondition())
	return ov.Diagnostics(func() []protocol.Diagnostic { return nil }, file), nil
}
