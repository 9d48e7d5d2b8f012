package js

import "bennypowers.dev/gqlls/internal/position"

// PartKind classifies a sub-span of a template literal.
type PartKind int

const (
	// PartLiteral is the single fragment of a template with no substitutions
	PartLiteral PartKind = iota
	// PartHead is the fragment before the first ${...} substitution
	PartHead
	// PartMiddle is a fragment between two substitutions
	PartMiddle
	// PartTail is the fragment after the last substitution
	PartTail
	// PartSubstitution is a ${...} substitution
	PartSubstitution
)

// Part is one contiguous sub-span of a template literal, in source order.
// Fragment parts (literal/head/middle/tail) carry the raw literal text.
// Substitution parts carry the embedded expression instead.
type Part struct {
	Kind PartKind
	// Start and End delimit the part in outer-source byte offsets.
	// For fragments this is the text itself; for substitutions it spans
	// the whole ${...} including the delimiters.
	Start int
	End   int
	// Text is the raw literal text (fragment parts only)
	Text string
	// Expr is the embedded expression text (substitution parts only)
	Expr string
	// ExprIsIdentifier reports whether the embedded expression is a bare
	// identifier, the only shape that can be statically resolved to
	// another template binding
	ExprIsIdentifier bool
}

// TemplateNode is the canonical template-expression root for one template
// literal found in JS/TS source. Head/middle/tail sub-fragments are never
// exposed on their own; discovery always normalizes up to this node.
// The outer span [Start, End) includes the backticks and is never empty.
type TemplateNode struct {
	Start int
	End   int
	// Tag is the callee name of the call or tag expression directly
	// wrapping the template ("gql", "graphql.experimental", ...).
	// Empty for untagged templates.
	Tag string
	// Binding is the identifier this template is bound to through an
	// enclosing variable declarator, or "" when the template is anonymous.
	Binding string
	Parts   []Part
}

// Substitutions returns the substitution parts of the node in source order.
func (n *TemplateNode) Substitutions() []Part {
	var subs []Part
	for _, p := range n.Parts {
		if p.Kind == PartSubstitution {
			subs = append(subs, p)
		}
	}
	return subs
}

// Contains reports whether the outer offset falls within the node's span.
func (n *TemplateNode) Contains(offset int) bool {
	return offset >= n.Start && offset < n.End
}

// ScriptFile is the parsed view of one JS/TS source file: its raw text plus
// every template literal discovered in it, in depth-first source order.
type ScriptFile struct {
	FileName  string
	Text      string
	Templates []*TemplateNode

	bindings map[string]*TemplateNode
}

// TemplateAt returns the smallest template node whose outer span contains
// offset, or nil when the offset is not inside any template. Templates
// nested inside substitutions shadow their enclosing template.
func (f *ScriptFile) TemplateAt(offset int) *TemplateNode {
	var best *TemplateNode
	for _, node := range f.Templates {
		if !node.Contains(offset) {
			continue
		}
		if best == nil || node.End-node.Start < best.End-best.Start {
			best = node
		}
	}
	return best
}

// Binding returns the template bound to the given identifier via a variable
// declarator, e.g. the fragment document in
//
//	const memberFragment = gql`fragment MemberFragment on User { id }`
func (f *ScriptFile) Binding(name string) (*TemplateNode, bool) {
	node, ok := f.bindings[name]
	return node, ok
}

// OffsetToPoint converts an outer byte offset to a line/character coordinate
// within the file.
func (f *ScriptFile) OffsetToPoint(offset int) position.Point {
	return position.OffsetToPoint(f.Text, offset)
}

// PointToOffset converts a line/character coordinate to an outer byte offset
// within the file.
func (f *ScriptFile) PointToOffset(p position.Point) int {
	return position.PointToOffset(f.Text, p)
}

// IsScriptLanguage reports whether an LSP language identifier names a
// JavaScript or TypeScript document this parser can handle.
func IsScriptLanguage(languageID string) bool {
	switch languageID {
	case "javascript", "javascriptreact", "typescript", "typescriptreact":
		return true
	}
	return false
}
