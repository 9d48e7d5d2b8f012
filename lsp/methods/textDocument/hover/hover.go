package hover

import (
	"bennypowers.dev/gqlls/internal/overlay"
	"bennypowers.dev/gqlls/internal/parser/js"
	"bennypowers.dev/gqlls/internal/position"
	"bennypowers.dev/gqlls/internal/uriutil"
	"bennypowers.dev/gqlls/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Hover handles the textDocument/hover request. Inside an analyzable GraphQL
// template the response describes the schema element under the cursor;
// elsewhere the response is nil.
func Hover(req *types.RequestContext, params *protocol.HoverParams) (*protocol.Hover, error) {
	uri := params.TextDocument.URI

	doc := req.Server.Document(uri)
	if doc == nil {
		return nil, nil
	}
	if !js.IsScriptLanguage(doc.LanguageID()) {
		return nil, nil
	}

	content := doc.Content()
	offset := position.UTF16PointToOffset(content,
		int(params.Position.Line), int(params.Position.Character))

	parser := js.AcquireParser()
	defer js.ReleaseParser(parser)
	file := parser.Parse(uriutil.URIToPath(uri), content)

	ov := overlay.New(req.Server.SchemaRegistry(), req.Server.TagCondition())
	return ov.Hover(func() *protocol.Hover { return nil }, file, offset), nil
}
