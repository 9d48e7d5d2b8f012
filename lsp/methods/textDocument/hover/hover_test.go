package hover

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

func TestHoverOnField(t *testing.T) {
	ctx := newContext(t)
	source := "const q = gql`{ hero }`;"
	require.NoError(t, ctx.DocumentManager().DidOpen("file:///app.ts", "typescript", 1, source))

	// Cursor inside the "hero" token
	result, err := Hover(request(ctx), &protocol.HoverParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: "file:///app.ts"},
			Position:     protocol.Position{Line: 0, Character: 17},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, result)

	content, ok := result.Contents.(protocol.MarkupContent)
	require.True(t, ok, "hover contents should be MarkupContent")
	assert.Equal(t, protocol.MarkupKindMarkdown, content.Kind)
	assert.Contains(t, content.Value, "Query.hero")
}

func TestHoverOutsideTemplate(t *testing.T) {
	ctx := newContext(t)
	source := "const q = gql`{ hero }`;"
	require.NoError(t, ctx.DocumentManager().DidOpen("file:///app.ts", "typescript", 1, source))

	result, err := Hover(request(ctx), &protocol.HoverParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: "file:///app.ts"},
			Position:     protocol.Position{Line: 0, Character: 3},
		},
	})
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestHoverUnknownDocument(t *testing.T) {
	ctx := newContext(t)

	result, err := Hover(request(ctx), &protocol.HoverParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: "file:///missing.ts"},
			Position:     protocol.Position{Line: 0, Character: 0},
		},
	})
	require.NoError(t, err)
	assert.Nil(t, result)
}
