package completion

import (
	"testing"

	"bennypowers.dev/gqlls/lsp/testutil"
	"bennypowers.dev/gqlls/lsp/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
)

const testSDL = `
type Query {
  hero: Character
  heroes: [Character!]
}

type Character {
  id: ID!
  name: String
}
`

func newContext(t *testing.T) *testutil.MockServerContext {
	t.Helper()
	ctx := testutil.NewMockServerContext()
	schema, err := gqlparser.LoadSchema(&ast.Source{Name: "schema.graphql", Input: testSDL})
	require.NoError(t, err)
	ctx.SchemaRegistry().Set(schema)
	return ctx
}

func request(ctx types.ServerContext) *types.RequestContext {
	return types.NewRequestContext(ctx, &glsp.Context{})
}

func TestCompletionInsideTemplate(t *testing.T) {
	ctx := newContext(t)
	source := "const q = gql`{ h }`;"
	require.NoError(t, ctx.DocumentManager().DidOpen("file:///app.ts", "typescript", 1, source))

	// Cursor right after the "h"
	result, err := Completion(request(ctx), &protocol.CompletionParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: "file:///app.ts"},
			Position:     protocol.Position{Line: 0, Character: 17},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, result)

	items := result.([]protocol.CompletionItem)
	labels := make([]string, 0, len(items))
	for _, item := range items {
		labels = append(labels, item.Label)
	}
	assert.Contains(t, labels, "hero")
	assert.Contains(t, labels, "heroes")
	assert.NotContains(t, labels, "id", "nested fields are out of scope at the root")
}

func TestCompletionOutsideTemplate(t *testing.T) {
	ctx := newContext(t)
	source := "const q = gql`{ h }`;"
	require.NoError(t, ctx.DocumentManager().DidOpen("file:///app.ts", "typescript", 1, source))

	// Cursor in plain TypeScript, before the template
	result, err := Completion(request(ctx), &protocol.CompletionParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: "file:///app.ts"},
			Position:     protocol.Position{Line: 0, Character: 3},
		},
	})
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestCompletionNonScriptDocument(t *testing.T) {
	ctx := newContext(t)
	require.NoError(t, ctx.DocumentManager().DidOpen("file:///style.css", "css", 1, "a { color: red }"))

	result, err := Completion(request(ctx), &protocol.CompletionParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: "file:///style.css"},
			Position:     protocol.Position{Line: 0, Character: 2},
		},
	})
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestCompletionUnknownDocument(t *testing.T) {
	ctx := newContext(t)

	result, err := Completion(request(ctx), &protocol.CompletionParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: "file:///missing.ts"},
			Position:     protocol.Position{Line: 0, Character: 0},
		},
	})
	require.NoError(t, err)
	assert.Nil(t, result)
}
