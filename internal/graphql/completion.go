package graphql

import (
	"strings"

	"bennypowers.dev/gqlls/internal/position"
	"github.com/vektah/gqlparser/v2/ast"
)

// Suggestion is one completion candidate. Suggestions come back in schema
// definition order; the caller is responsible for not re-sorting them.
type Suggestion struct {
	Label string
	// Kind is a coarse semantic tag: "Field", "Type" or "Keyword"
	Kind   string
	Detail string
}

var operationKeywords = []string{"query", "mutation", "subscription", "fragment"}

// Completions suggests what can be typed at the given coordinate of a
// GraphQL document. The coordinate is one past the insertion boundary:
// callers position it immediately after the cursor, which keeps
// suggestions flowing when the cursor sits exactly on a token edge.
func Completions(schema *ast.Schema, text string, pos position.Point) []Suggestion {
	if schema == nil {
		return nil
	}

	at := position.PointToOffset(text, pos) - 1
	if at < 0 {
		at = 0
	}
	if at > len(text) {
		at = len(text)
	}

	// the partially-typed word ending at the insertion point
	start := at
	for start > 0 && isIdentChar(text[start-1]) {
		start--
	}
	prefix := text[start:at]

	path, prev := selectionPath(scanTokens(text, start))

	if prev.ident && prev.text == "on" {
		return typeConditionSuggestions(schema, prefix)
	}

	if len(path) == 0 {
		var suggestions []Suggestion
		for _, keyword := range operationKeywords {
			if strings.HasPrefix(keyword, prefix) {
				suggestions = append(suggestions, Suggestion{Label: keyword, Kind: "Keyword"})
			}
		}
		return suggestions
	}

	parent := resolveParentType(schema, path)
	if parent == nil {
		return nil
	}

	var suggestions []Suggestion
	for _, field := range parent.Fields {
		// gqlparser injects __schema/__type on the query root; keep
		// introspection machinery out of suggestions.
		if strings.HasPrefix(field.Name, "__") || !strings.HasPrefix(field.Name, prefix) {
			continue
		}
		suggestions = append(suggestions, Suggestion{
			Label:  field.Name,
			Kind:   "Field",
			Detail: field.Type.String(),
		})
	}
	return suggestions
}

// typeConditionSuggestions lists the composite types usable after "on" in a
// fragment or inline-fragment type condition.
func typeConditionSuggestions(schema *ast.Schema, prefix string) []Suggestion {
	var suggestions []Suggestion
	for _, name := range sortedTypeNames(schema) {
		def := schema.Types[name]
		switch def.Kind {
		case ast.Object, ast.Interface, ast.Union:
		default:
			continue
		}
		if strings.HasPrefix(name, "__") || !strings.HasPrefix(name, prefix) {
			continue
		}
		suggestions = append(suggestions, Suggestion{
			Label:  name,
			Kind:   "Type",
			Detail: strings.ToLower(string(def.Kind)),
		})
	}
	return suggestions
}
