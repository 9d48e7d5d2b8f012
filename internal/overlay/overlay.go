// Package overlay wires GraphQL analysis onto template literals discovered
// in a host source file. Each operation wraps a delegate (the host's own
// handler) and either returns the delegate's result unchanged or a
// translated GraphQL result; nothing in here is allowed to fail past the
// public operations.
package overlay

import (
	"bennypowers.dev/gqlls/internal/graphql"
	"bennypowers.dev/gqlls/internal/log"
	"bennypowers.dev/gqlls/internal/parser/js"
	"bennypowers.dev/gqlls/internal/template"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/vektah/gqlparser/v2/ast"
)

// SchemaProvider yields the schema queries analyze against. A nil schema
// means the overlay is inert and every operation defers to its delegate.
type SchemaProvider interface {
	Schema() *ast.Schema
}

// Overlay is the query surface for one tag configuration. Stateless apart
// from the schema reference behind the provider; everything else is built
// per query.
type Overlay struct {
	provider  SchemaProvider
	condition template.TagCondition
}

// New creates an overlay reading its schema from provider and restricting
// analysis to templates matching condition.
func New(provider SchemaProvider, condition template.TagCondition) *Overlay {
	return &Overlay{provider: provider, condition: condition}
}

// Delegate result producers: the host's own unmodified handlers.
type (
	CompletionDelegate  func() []protocol.CompletionItem
	DiagnosticsDelegate func() []protocol.Diagnostic
	HoverDelegate       func() *protocol.Hover
)

// decision is the outcome of the shared short-circuit table for
// position-based queries.
type decision int

const (
	// decideDefer falls back to the delegate
	decideDefer decision = iota
	// decideAnalyze runs GraphQL analysis over the resolved template
	decideAnalyze
)

// gate evaluates the short-circuit table for a position query: schema
// missing, no enclosing template, tag mismatch, or resolution failure all
// defer to the delegate. On analyze, the schema and resolved template info
// are returned.
func (o *Overlay) gate(file *js.ScriptFile, offset int) (*ast.Schema, *template.ResolvedTemplateInfo, decision) {
	schema := o.provider.Schema()
	if schema == nil {
		return nil, nil, decideDefer
	}

	node := file.TemplateAt(offset)
	if node == nil || !template.IsTagged(node, o.condition) {
		return nil, nil, decideDefer
	}

	info, ok := template.Resolve(node, file)
	if !ok {
		log.Debug("Template at %d in %s has too complex expressions; skipping analysis", node.Start, file.FileName)
		return nil, nil, decideDefer
	}
	return schema, info, decideAnalyze
}

// Completion returns GraphQL completion items for a position inside a
// tagged template, or the delegate's result when the overlay opts out.
// Items keep the suggestion engine's return order through a constant sort
// key; ranking is entirely the engine's responsibility.
func (o *Overlay) Completion(delegate CompletionDelegate, file *js.ScriptFile, offset int) []protocol.CompletionItem {
	schema, info, d := o.gate(file, offset)
	if d == decideDefer {
		return delegate()
	}

	// one past the insertion boundary: the suggestion engine returns
	// nothing when the cursor sits exactly on a token edge
	inner := info.OuterToInner(offset) + 1
	suggestions := graphql.Completions(schema, info.CombinedText, info.InnerOffsetToPoint(inner))

	items := make([]protocol.CompletionItem, 0, len(suggestions))
	for _, s := range suggestions {
		items = append(items, completionItem(s))
	}
	return items
}

const constantSortKey = "0"

// completionItem maps an engine suggestion onto the host's completion
// shape: label preserved, semantic kind carried as an opaque string tag,
// provenance marked, sort key pinned so clients never reorder.
func completionItem(s graphql.Suggestion) protocol.CompletionItem {
	detail := s.Kind
	if s.Detail != "" {
		detail = s.Kind + " " + s.Detail
	}
	sortText := constantSortKey
	return protocol.CompletionItem{
		Label:    s.Label,
		Detail:   &detail,
		SortText: &sortText,
		Data:     map[string]any{"provenance": "graphql"},
	}
}

// Hover returns GraphQL hover content for a position inside a tagged
// template, anchored at the original outer position with a one-character
// span. Empty analysis results fall back to the delegate.
func (o *Overlay) Hover(delegate HoverDelegate, file *js.ScriptFile, offset int) *protocol.Hover {
	schema, info, d := o.gate(file, offset)
	if d == decideDefer {
		return delegate()
	}

	inner := info.OuterToInner(offset)
	text := graphql.HoverText(schema, info.CombinedText, info.InnerOffsetToPoint(inner))
	if text == "" {
		return delegate()
	}

	start := protoPosition(file.Text, offset)
	end := protocol.Position{Line: start.Line, Character: start.Character + 1}
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: text,
		},
		Range: &protocol.Range{Start: start, End: end},
	}
}

// Diagnostics appends GraphQL findings to the delegate's result. Templates
// matching the tag condition are visited in discovery order; each
// unresolvable one contributes exactly one coarse warning, each resolvable
// one contributes its translated findings.
func (o *Overlay) Diagnostics(delegate DiagnosticsDelegate, file *js.ScriptFile) []protocol.Diagnostic {
	result := delegate()

	schema := o.provider.Schema()
	if schema == nil {
		return result
	}

	for _, node := range file.Templates {
		if !template.IsTagged(node, o.condition) {
			continue
		}
		info, ok := template.Resolve(node, file)
		if !ok {
			result = append(result, tooComplexDiagnostic(file, node))
			continue
		}
		for _, finding := range graphql.Diagnose(info.CombinedText, schema) {
			result = append(result, translateDiagnostic(file, info, finding))
		}
	}
	return result
}
