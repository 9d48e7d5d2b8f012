package graphql

import (
	"fmt"
	"sort"
	"strings"

	"bennypowers.dev/gqlls/internal/position"
	"github.com/vektah/gqlparser/v2/ast"
)

// HoverText describes the schema element under the given coordinate of a
// GraphQL document: the field selected there, or the named type when the
// identifier is a type reference. Returns "" when nothing is known.
func HoverText(schema *ast.Schema, text string, pos position.Point) string {
	if schema == nil {
		return ""
	}

	offset := position.PointToOffset(text, pos)
	start, end := wordAt(text, offset)
	if start == end {
		return ""
	}
	word := text[start:end]

	path, _ := selectionPath(scanTokens(text, start))
	if parent := resolveParentType(schema, path); parent != nil {
		if field := parent.Fields.ForName(word); field != nil {
			return renderField(parent, field)
		}
	}

	if def, ok := schema.Types[word]; ok {
		return renderType(def)
	}
	return ""
}

func renderField(parent *ast.Definition, field *ast.FieldDefinition) string {
	text := fmt.Sprintf("%s.%s: %s", parent.Name, field.Name, field.Type.String())
	if field.Description != "" {
		text += "\n\n" + field.Description
	}
	return text
}

func renderType(def *ast.Definition) string {
	text := fmt.Sprintf("%s %s", strings.ToLower(string(def.Kind)), def.Name)
	if def.Description != "" {
		text += "\n\n" + def.Description
	}
	return text
}

// wordAt returns the identifier span containing or immediately preceding
// the offset, or an empty span when the offset touches no identifier.
func wordAt(text string, offset int) (int, int) {
	if offset > len(text) {
		offset = len(text)
	}
	if offset < 0 {
		offset = 0
	}

	start := offset
	for start > 0 && isIdentChar(text[start-1]) {
		start--
	}
	end := offset
	for end < len(text) && isIdentChar(text[end]) {
		end++
	}
	return start, end
}

// sortedTypeNames returns the schema's type names in lexical order, so
// suggestion lists are deterministic across runs.
func sortedTypeNames(schema *ast.Schema) []string {
	names := make([]string, 0, len(schema.Types))
	for name := range schema.Types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
