package overlay

import (
	"strings"
	"testing"

	"bennypowers.dev/gqlls/internal/parser/js"
	"bennypowers.dev/gqlls/internal/template"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
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
  name: String!
}
`

// fixedSchema implements SchemaProvider around a fixed value.
type fixedSchema struct {
	schema *ast.Schema
}

func (p *fixedSchema) Schema() *ast.Schema { return p.schema }

func withSchema(t *testing.T) *fixedSchema {
	t.Helper()
	schema, err := gqlparser.LoadSchema(&ast.Source{Name: "schema.graphql", Input: testSDL})
	require.NoError(t, err)
	return &fixedSchema{schema: schema}
}

func noSchema() *fixedSchema { return &fixedSchema{} }

func parseSource(t *testing.T, source string) *js.ScriptFile {
	t.Helper()
	parser := js.AcquireParser()
	defer js.ReleaseParser(parser)
	return parser.Parse("main.ts", source)
}

func gqlCondition() template.TagCondition {
	return template.TagCondition{Name: "gql"}
}

var (
	emptyCompletions = func() []protocol.CompletionItem { return nil }
	emptyDiagnostics = func() []protocol.Diagnostic { return nil }
	emptyHover       = func() *protocol.Hover { return nil }
)

func TestCompletionSimple(t *testing.T) {
	source := "const q = gql`query {  }`;"
	file := parseSource(t, source)
	o := New(withSchema(t), gqlCondition())

	cursor := strings.Index(source, "{ ") + 2
	items := o.Completion(emptyCompletions, file, cursor)

	require.Len(t, items, 1)
	assert.Equal(t, "hero", items[0].Label)
	require.NotNil(t, items[0].SortText)
	assert.Equal(t, "0", *items[0].SortText)
	require.NotNil(t, items[0].Detail)
	assert.Equal(t, "Field Character", *items[0].Detail)
	assert.Equal(t, map[string]any{"provenance": "graphql"}, items[0].Data)
}

func TestCompletionPreservesEngineOrder(t *testing.T) {
	source := "const q = gql`query { hero {  } }`;"
	file := parseSource(t, source)
	o := New(withSchema(t), gqlCondition())

	cursor := strings.Index(source, "hero { ") + len("hero { ")
	items := o.Completion(emptyCompletions, file, cursor)

	require.Len(t, items, 2)
	assert.Equal(t, "id", items[0].Label)
	assert.Equal(t, "name", items[1].Label)
	for _, item := range items {
		assert.Equal(t, "0", *item.SortText)
	}
}

func TestCompletionNoSchemaPassthrough(t *testing.T) {
	source := "const q = gql`query {  }`;"
	file := parseSource(t, source)
	o := New(noSchema(), gqlCondition())

	delegated := []protocol.CompletionItem{{Label: "hostItem"}}
	items := o.Completion(func() []protocol.CompletionItem { return delegated }, file, strings.Index(source, "{ ")+2)
	assert.Equal(t, delegated, items)
}

func TestCompletionOutsideTemplateDefers(t *testing.T) {
	source := "const n = 1; const q = gql`query {  }`;"
	file := parseSource(t, source)
	o := New(withSchema(t), gqlCondition())

	called := false
	o.Completion(func() []protocol.CompletionItem { called = true; return nil }, file, 2)
	assert.True(t, called)
}

func TestCompletionTagFiltering(t *testing.T) {
	source := "const q = sql`query {  }`;"
	file := parseSource(t, source)
	o := New(withSchema(t), gqlCondition())

	called := false
	o.Completion(func() []protocol.CompletionItem { called = true; return nil }, file, strings.Index(source, "{ ")+2)
	assert.True(t, called)
}

func TestCompletionUnresolvableDefers(t *testing.T) {
	source := "const q = gql`query { ${dynamic ? a : b} }`;"
	file := parseSource(t, source)
	o := New(withSchema(t), gqlCondition())

	called := false
	o.Completion(func() []protocol.CompletionItem { called = true; return nil }, file, strings.Index(source, "query")+2)
	assert.True(t, called)
}

func TestDiagnosticsPinpoint(t *testing.T) {
	source := "const q = gql`query { unknownField }`;"
	file := parseSource(t, source)
	o := New(withSchema(t), gqlCondition())

	diagnostics := o.Diagnostics(emptyDiagnostics, file)
	require.Len(t, diagnostics, 1)

	d := diagnostics[0]
	fieldStart := strings.Index(source, "unknownField")
	assert.Equal(t, uint32(0), d.Range.Start.Line)
	assert.Equal(t, uint32(fieldStart), d.Range.Start.Character)
	assert.Equal(t, uint32(fieldStart+len("unknownField")), d.Range.End.Character)
	require.NotNil(t, d.Severity)
	assert.Equal(t, protocol.DiagnosticSeverityError, *d.Severity)
	assert.Contains(t, d.Message, "unknownField")
}

func TestDiagnosticsMessageTruncatedToFirstLine(t *testing.T) {
	file := parseSource(t, "const q = gql`query { unknownField }`;")
	o := New(withSchema(t), gqlCondition())

	for _, d := range o.Diagnostics(emptyDiagnostics, file) {
		assert.NotContains(t, d.Message, "\n")
	}
}

func TestDiagnosticsTooComplexWarning(t *testing.T) {
	source := "const q = gql`query { ${dynamic ? a : b} }`;"
	file := parseSource(t, source)
	node := file.Templates[0]
	o := New(withSchema(t), gqlCondition())

	diagnostics := o.Diagnostics(emptyDiagnostics, file)
	require.Len(t, diagnostics, 1)

	d := diagnostics[0]
	require.NotNil(t, d.Severity)
	assert.Equal(t, protocol.DiagnosticSeverityWarning, *d.Severity)
	assert.Equal(t, tooComplexMessage, d.Message)
	require.NotNil(t, d.Code)
	assert.Equal(t, codeTooComplex, d.Code.Value)
	assert.Equal(t, uint32(node.Start), d.Range.Start.Character)
	assert.Equal(t, uint32(node.End), d.Range.End.Character)
}

func TestDiagnosticsCoarseForSplicedErrors(t *testing.T) {
	// the referenced fragment itself has a GraphQL error; the finding
	// lands inside spliced text and degrades to the generic diagnostic
	// spanning the whole outer node
	source := "const frag = sql`fragment F on Character { bogusField }`;\n" +
		"const q = gql`query { hero { ...F } }${frag}`;"
	file := parseSource(t, source)
	o := New(withSchema(t), gqlCondition())

	diagnostics := o.Diagnostics(emptyDiagnostics, file)
	require.Len(t, diagnostics, 1)

	d := diagnostics[0]
	assert.Equal(t, inOtherExpressionMessage, d.Message)
	require.NotNil(t, d.Code)
	assert.Equal(t, codeInOtherExpression, d.Code.Value)

	// anchored at the entire enclosing node's outer span
	node := file.Templates[1]
	lineStart := strings.Index(source, "\n") + 1
	assert.Equal(t, uint32(1), d.Range.Start.Line)
	assert.Equal(t, uint32(node.Start-lineStart), d.Range.Start.Character)
	assert.Equal(t, uint32(1), d.Range.End.Line)
	assert.Equal(t, uint32(node.End-lineStart), d.Range.End.Character)
}

func TestDiagnosticsHostResultsComeFirst(t *testing.T) {
	file := parseSource(t, "const q = gql`query { unknownField }`;")
	o := New(withSchema(t), gqlCondition())

	host := protocol.Diagnostic{Message: "host finding"}
	diagnostics := o.Diagnostics(func() []protocol.Diagnostic { return []protocol.Diagnostic{host} }, file)
	require.Len(t, diagnostics, 2)
	assert.Equal(t, "host finding", diagnostics[0].Message)
}

func TestDiagnosticsNoSchemaPassthrough(t *testing.T) {
	file := parseSource(t, "const q = gql`query { unknownField }`;")
	o := New(noSchema(), gqlCondition())

	host := []protocol.Diagnostic{{Message: "host finding"}}
	diagnostics := o.Diagnostics(func() []protocol.Diagnostic { return host }, file)
	assert.Equal(t, host, diagnostics)
}

func TestDiagnosticsTagFiltering(t *testing.T) {
	file := parseSource(t, "const q = sql`select * from t`;")
	o := New(withSchema(t), gqlCondition())

	assert.Empty(t, o.Diagnostics(emptyDiagnostics, file))
}

func TestDiagnosticsUntaggedCondition(t *testing.T) {
	// with no tag condition every template is in scope
	file := parseSource(t, "const q = `query { unknownField }`;")
	o := New(withSchema(t), template.TagCondition{})

	assert.Len(t, o.Diagnostics(emptyDiagnostics, file), 1)
}

func TestHoverAnchorsAtOuterPosition(t *testing.T) {
	source := "const q = gql`query { hero }`;"
	file := parseSource(t, source)
	o := New(withSchema(t), gqlCondition())

	cursor := strings.Index(source, "hero") + 1
	hover := o.Hover(emptyHover, file, cursor)
	require.NotNil(t, hover)

	content, ok := hover.Contents.(protocol.MarkupContent)
	require.True(t, ok)
	assert.Contains(t, content.Value, "Query.hero: Character")

	require.NotNil(t, hover.Range)
	assert.Equal(t, uint32(cursor), hover.Range.Start.Character)
	assert.Equal(t, uint32(cursor+1), hover.Range.End.Character)
}

func TestHoverEmptyContentDefers(t *testing.T) {
	source := "const q = gql`query { unknownField }`;"
	file := parseSource(t, source)
	o := New(withSchema(t), gqlCondition())

	delegated := &protocol.Hover{Contents: protocol.MarkupContent{Value: "host hover"}}
	hover := o.Hover(func() *protocol.Hover { return delegated }, file, strings.Index(source, "unknownField")+1)
	assert.Same(t, delegated, hover)
}

func TestHoverNoSchemaPassthrough(t *testing.T) {
	source := "const q = gql`query { hero }`;"
	file := parseSource(t, source)
	o := New(noSchema(), gqlCondition())

	assert.Nil(t, o.Hover(emptyHover, file, strings.Index(source, "hero")))
}

func TestFirstLine(t *testing.T) {
	assert.Equal(t, "first", firstLine("first\nsecond"))
	assert.Equal(t, "whole", firstLine("whole"))
}
