package completion

import (
	"fmt"
	"os"

	"bennypowers.dev/gqlls/internal/overlay"
	"bennypowers.dev/gqlls/internal/parser/js"
	"bennypowers.dev/gqlls/internal/position"
	"bennypowers.dev/gqlls/internal/uriutil"
	"bennypowers.dev/gqlls/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Completion handles the textDocument/completion request. Positions inside
// an analyzable GraphQL template yield schema-driven suggestions; everywhere
// else the response is empty so the client's other providers take over.
func Completion(req *types.RequestContext, params *protocol.CompletionParams) (any, error) {
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
	items := ov.Completion(func() []protocol.CompletionItem { return nil }, file, offset)
	if len(items) == 0 {
		return nil, nil
	}

	fmt.Fprintf(os.Stderr, "[GQLLS] Completion: %d items at %s:%d:%d\n",
		len(items), uri, params.Position.Line, params.Position.Character)
	return items, nil
}
