package graphql

import (
	"github.com/vektah/gqlparser/v2/ast"
)

// token is one lexical unit of a GraphQL document prefix.
type token struct {
	text  string
	start int
	end   int
	ident bool
}

// scanTokens lexes text up to (not including) the end offset. Comments,
// commas and whitespace are dropped; strings and numbers come through as
// opaque punctuation-like tokens since selection-path tracking only cares
// about identifiers and brackets.
func scanTokens(text string, end int) []token {
	if end > len(text) {
		end = len(text)
	}

	var tokens []token
	i := 0
	for i < end {
		c := text[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == ',':
			i++
		case c == '#':
			for i < end && text[i] != '\n' {
				i++
			}
		case c == '"':
			// block or single-line string; skipped wholesale
			if i+2 < end && text[i+1] == '"' && text[i+2] == '"' {
				j := i + 3
				for j+2 < end && !(text[j] == '"' && text[j+1] == '"' && text[j+2] == '"') {
					j++
				}
				i = min(j+3, end)
			} else {
				j := i + 1
				for j < end && text[j] != '"' && text[j] != '\n' {
					if text[j] == '\\' {
						j++
					}
					j++
				}
				i = min(j+1, end)
			}
		case isIdentStart(c):
			start := i
			for i < end && isIdentChar(text[i]) {
				i++
			}
			tokens = append(tokens, token{text: text[start:i], start: start, end: i, ident: true})
		case c == '.' && i+2 < end && text[i+1] == '.' && text[i+2] == '.':
			tokens = append(tokens, token{text: "...", start: i, end: i + 3})
			i += 3
		default:
			tokens = append(tokens, token{text: string(c), start: i, end: i + 1})
			i++
		}
	}
	return tokens
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentChar(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

type scopeKind int

const (
	scopeOperation scopeKind = iota // query / mutation / subscription root
	scopeField                      // nested selection under a field
	scopeType                       // fragment or inline-fragment type condition
)

type scopeEntry struct {
	kind scopeKind
	name string
}

// selectionPath replays the token stream and reconstructs the stack of open
// selection sets at its end. The second return is the last meaningful token
// before that point ("on" signals a type-condition position).
func selectionPath(tokens []token) (path []scopeEntry, prev token) {
	parenDepth := 0
	var firstIdent, lastIdent, secondLast string
	resetScope := func() {
		firstIdent, lastIdent, secondLast = "", "", ""
	}

	for i, tok := range tokens {
		prev = tok

		switch tok.text {
		case "(":
			parenDepth++
			continue
		case ")":
			if parenDepth > 0 {
				parenDepth--
			}
			continue
		}
		if parenDepth > 0 {
			continue
		}

		switch {
		case tok.ident:
			// identifiers after @ (directives) and $ (variables)
			// never name a field
			if i > 0 && (tokens[i-1].text == "@" || tokens[i-1].text == "$") {
				continue
			}
			if firstIdent == "" {
				firstIdent = tok.text
			}
			secondLast = lastIdent
			lastIdent = tok.text
		case tok.text == "{":
			switch {
			case secondLast == "on" && lastIdent != "":
				path = append(path, scopeEntry{kind: scopeType, name: lastIdent})
			case len(path) == 0 && lastIdent == "":
				// anonymous operation shorthand
				path = append(path, scopeEntry{kind: scopeOperation, name: "query"})
			case len(path) == 0 && isOperationKeyword(firstIdent):
				path = append(path, scopeEntry{kind: scopeOperation, name: firstIdent})
			case lastIdent != "":
				path = append(path, scopeEntry{kind: scopeField, name: lastIdent})
			default:
				path = append(path, scopeEntry{kind: scopeField})
			}
			resetScope()
		case tok.text == "}":
			if len(path) > 0 {
				path = path[:len(path)-1]
			}
			resetScope()
		}
	}
	return path, prev
}

func isOperationKeyword(word string) bool {
	return word == "query" || word == "mutation" || word == "subscription"
}

// resolveParentType walks the schema along a selection path and returns the
// composite type whose fields are selectable at the innermost open scope.
// Returns nil when any step of the path is unknown to the schema.
func resolveParentType(schema *ast.Schema, path []scopeEntry) *ast.Definition {
	var def *ast.Definition
	for _, entry := range path {
		switch entry.kind {
		case scopeOperation:
			switch entry.name {
			case "mutation":
				def = schema.Mutation
			case "subscription":
				def = schema.Subscription
			default:
				def = schema.Query
			}
		case scopeType:
			def = schema.Types[entry.name]
		case scopeField:
			if def == nil || entry.name == "" {
				return nil
			}
			field := def.Fields.ForName(entry.name)
			if field == nil {
				return nil
			}
			def = schema.Types[namedType(field.Type)]
		}
		if def == nil {
			return nil
		}
	}
	return def
}

// namedType unwraps list and non-null wrappers down to the named type.
func namedType(t *ast.Type) string {
	for t != nil && t.Elem != nil {
		t = t.Elem
	}
	if t == nil {
		return ""
	}
	return t.NamedType
}
