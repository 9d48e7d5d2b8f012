package diagnostic

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

func TestGetDiagnosticsUnknownField(t *testing.T) {
	ctx := newContext(t)
	source := "const q = gql`{ heroo }`;"
	require.NoError(t, ctx.DocumentManager().DidOpen("file:///app.ts", "typescript", 1, source))

	diagnostics, err := GetDiagnostics(ctx, "file:///app.ts")
	require.NoError(t, err)
	require.Len(t, diagnostics, 1)
	assert.Contains(t, diagnostics[0].Message, "heroo")
	assert.Equal(t, uint32(0), diagnostics[0].Range.Start.Line)
}

func TestGetDiagnosticsValidDocument(t *testing.T) {
	ctx := newContext(t)
	source := "const q = gql`{ hero { id } }`;"
	require.NoError(t, ctx.DocumentManager().DidOpen("file:///app.ts", "typescript", 1, source))

	diagnostics, err := GetDiagnostics(ctx, "file:///app.ts")
	require.NoError(t, err)
	assert.Empty(t, diagnostics)
}

func TestGetDiagnosticsNonScriptDocument(t *testing.T) {
	ctx := newContext(t)
	require.NoError(t, ctx.DocumentManager().DidOpen("file:///style.css", "css", 1, "a { }"))

	diagnostics, err := GetDiagnostics(ctx, "file:///style.css")
	require.NoError(t, err)
	assert.Nil(t, diagnostics)
}

func TestGetDiagnosticsUnknownDocument(t *testing.T) {
	ctx := newContext(t)

	diagnostics, err := GetDiagnostics(ctx, "file:///missing.ts")
	require.NoError(t, err)
	assert.Nil(t, diagnostics)
}

func TestDocumentDiagnosticReturnsFullReport(t *testing.T) {
	ctx := newContext(t)
	source := "const q = gql`{ heroo }`;"
	require.NoError(t, ctx.DocumentManager().DidOpen("file:///app.ts", "typescript", 1, source))

	req := types.NewRequestContext(ctx, &glsp.Context{})
	result, err := DocumentDiagnostic(req, &DocumentDiagnosticParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: "file:///app.ts"},
	})
	require.NoError(t, err)

	report, ok := result.(RelatedFullDocumentDiagnosticReport)
	require.True(t, ok)
	assert.Equal(t, string(DiagnosticFull), report.Kind)
	assert.Len(t, report.Items, 1)
}
