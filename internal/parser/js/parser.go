package js

import (
	"fmt"
	"sync"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
)

// Parser extracts template literals from JS/TS source for GraphQL analysis
type Parser struct {
	parser        *sitter.Parser
	templateQuery *sitter.Query
}

var jsLang = sitter.NewLanguage(tree_sitter_javascript.Language())

// parserPool is a pool of reusable JS parsers
var parserPool = sync.Pool{
	New: func() any {
		parser := sitter.NewParser()
		if err := parser.SetLanguage(jsLang); err != nil {
			panic(fmt.Sprintf("failed to set JS language: %v", err))
		}

		// Every template literal, tagged or not; the tag condition is
		// applied later by the caller. Matches arrive in tree order,
		// which gives deterministic depth-first discovery.
		templateQuery, qerr := sitter.NewQuery(jsLang, `(template_string) @template`)
		if qerr != nil {
			panic(fmt.Sprintf("failed to compile template query: %v", qerr))
		}

		return &Parser{
			parser:        parser,
			templateQuery: templateQuery,
		}
	},
}

// AcquireParser gets a parser from the pool
func AcquireParser() *Parser {
	p := parserPool.Get().(*Parser)
	p.parser.Reset()
	return p
}

// ReleaseParser returns a parser to the pool
func ReleaseParser(p *Parser) {
	if p != nil {
		parserPool.Put(p)
	}
}

// Close closes the parser and releases its resources
func (p *Parser) Close() {
	if p.parser != nil {
		p.parser.Close()
	}
	if p.templateQuery != nil {
		p.templateQuery.Close()
	}
}

// ClosePool closes all parsers in the pool
func ClosePool() {
	for range 100 {
		if p, ok := parserPool.Get().(*Parser); ok && p != nil {
			p.Close()
		}
	}
}

// Parse parses JS/TS source and returns its template literals in
// depth-first source order, with tags and variable bindings attached.
func (p *Parser) Parse(fileName, source string) *ScriptFile {
	file := &ScriptFile{
		FileName: fileName,
		Text:     source,
		bindings: make(map[string]*TemplateNode),
	}

	sourceBytes := []byte(source)
	tree := p.parser.Parse(sourceBytes, nil)
	if tree == nil {
		return file
	}
	defer tree.Close()

	cursor := sitter.NewQueryCursor()
	defer cursor.Close()

	matches := cursor.Matches(p.templateQuery, tree.RootNode(), sourceBytes)
	for match := matches.Next(); match != nil; match = matches.Next() {
		for _, capture := range match.Captures {
			tmplNode := capture.Node
			node := &TemplateNode{
				Start:   int(tmplNode.StartByte()),
				End:     int(tmplNode.EndByte()),
				Tag:     tagFor(&tmplNode, sourceBytes),
				Binding: bindingFor(&tmplNode, sourceBytes),
				Parts:   extractParts(&tmplNode, sourceBytes),
			}
			file.Templates = append(file.Templates, node)
			if node.Binding != "" {
				file.bindings[node.Binding] = node
			}
		}
	}

	return file
}

// tagFor extracts the callee name of the call or tag expression directly
// wrapping the template, or "" when the template is untagged. Handles the
// standard tagged form (gql`...`), qualified tags (graphql.experimental`...`),
// and the generic form gql<Type>`...` which tree-sitter-javascript misparses
// as nested binary expressions.
// See: https://github.com/tree-sitter/tree-sitter-typescript/issues/341
func tagFor(node *sitter.Node, sourceBytes []byte) string {
	parent := node.Parent()
	if parent == nil {
		return ""
	}

	switch parent.Kind() {
	case "call_expression":
		fn := parent.ChildByFieldName("function")
		if fn == nil {
			return ""
		}
		switch fn.Kind() {
		case "identifier", "member_expression":
			return string(sourceBytes[fn.StartByte():fn.EndByte()])
		}
	case "binary_expression":
		right := parent.ChildByFieldName("right")
		if right == nil || right.StartByte() != node.StartByte() {
			return ""
		}
		left := parent.ChildByFieldName("left")
		if left == nil || left.Kind() != "binary_expression" {
			return ""
		}
		tag := left.ChildByFieldName("left")
		if tag != nil && tag.Kind() == "identifier" {
			return string(sourceBytes[tag.StartByte():tag.EndByte()])
		}
	}
	return ""
}

// bindingFor finds the identifier a template is bound to through its
// enclosing variable declarator, looking past the tag wrapper if present.
func bindingFor(node *sitter.Node, sourceBytes []byte) string {
	wrapper := node
	if parent := node.Parent(); parent != nil && parent.Kind() == "call_expression" {
		wrapper = parent
	}

	decl := wrapper.Parent()
	if decl == nil || decl.Kind() != "variable_declarator" {
		return ""
	}
	name := decl.ChildByFieldName("name")
	if name == nil || name.Kind() != "identifier" {
		return ""
	}
	return string(sourceBytes[name.StartByte():name.EndByte()])
}

// extractParts splits a template_string node into fragment and substitution
// parts. Adjacent literal children (string fragments and escape sequences)
// merge into a single fragment; fragment kinds are classified relative to
// the substitutions around them.
func extractParts(templateNode *sitter.Node, sourceBytes []byte) []Part {
	var parts []Part

	for i := uint(0); i < templateNode.ChildCount(); i++ {
		child := templateNode.Child(i)
		switch child.Kind() {
		case "string_fragment", "escape_sequence":
			start := int(child.StartByte())
			end := int(child.EndByte())
			if n := len(parts); n > 0 && parts[n-1].Kind != PartSubstitution && parts[n-1].End == start {
				parts[n-1].End = end
				parts[n-1].Text = string(sourceBytes[parts[n-1].Start:end])
				continue
			}
			parts = append(parts, Part{
				Kind:  PartLiteral,
				Start: start,
				End:   end,
				Text:  string(sourceBytes[start:end]),
			})
		case "template_substitution":
			part := Part{
				Kind:  PartSubstitution,
				Start: int(child.StartByte()),
				End:   int(child.EndByte()),
			}
			if child.NamedChildCount() > 0 {
				expr := child.NamedChild(0)
				part.Expr = string(sourceBytes[expr.StartByte():expr.EndByte()])
				part.ExprIsIdentifier = expr.Kind() == "identifier"
			}
			parts = append(parts, part)
		}
	}

	return classifyFragments(parts)
}

// classifyFragments assigns head/middle/tail kinds to fragment parts of a
// template that has substitutions. A substitution-free template keeps its
// single fragment as PartLiteral.
func classifyFragments(parts []Part) []Part {
	firstSub, lastSub := -1, -1
	for i, p := range parts {
		if p.Kind == PartSubstitution {
			if firstSub < 0 {
				firstSub = i
			}
			lastSub = i
		}
	}
	if firstSub < 0 {
		return parts
	}

	for i := range parts {
		if parts[i].Kind == PartSubstitution {
			continue
		}
		switch {
		case i < firstSub:
			parts[i].Kind = PartHead
		case i > lastSub:
			parts[i].Kind = PartTail
		default:
			parts[i].Kind = PartMiddle
		}
	}
	return parts
}
