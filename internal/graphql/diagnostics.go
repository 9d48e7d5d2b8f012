// Package graphql is the schema-aware analysis layer: diagnostics,
// completion suggestions and hover text over a single GraphQL document
// text, built on vektah/gqlparser.
package graphql

import (
	"bennypowers.dev/gqlls/internal/position"
	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
)

// Severity of a diagnostic.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

// Diagnostic is one finding over a document text. Start is the byte offset
// of the offending token; End is inclusive-style, one unit past the token's
// exclusive end, so consumers deriving a half-open span subtract one.
type Diagnostic struct {
	Start    int
	End      int
	Severity Severity
	// Code is the validation rule that produced the finding, "" for
	// syntax errors
	Code    string
	Message string
}

// Diagnose parses and validates a GraphQL document against the schema and
// returns every finding. Parse errors and validation errors both surface
// as error-severity diagnostics; the range covers the token at the
// reported location.
func Diagnose(text string, schema *ast.Schema) []Diagnostic {
	if schema == nil {
		return nil
	}

	_, errs := gqlparser.LoadQuery(schema, text)

	diagnostics := make([]Diagnostic, 0, len(errs))
	seen := make(map[Diagnostic]struct{}, len(errs))
	for _, gqlErr := range errs {
		if gqlErr == nil {
			continue
		}
		start := 0
		if len(gqlErr.Locations) > 0 {
			loc := gqlErr.Locations[0]
			start = position.PointToOffset(text, position.Point{
				Line:      loc.Line - 1,
				Character: loc.Column - 1,
			})
		}
		d := Diagnostic{
			Start:    start,
			End:      tokenEnd(text, start) + 1,
			Severity: SeverityError,
			Code:     gqlErr.Rule,
			Message:  gqlErr.Message,
		}
		// The validator can report one error through both the fragment
		// definition and its spread site; keep a single finding.
		if _, dup := seen[d]; dup {
			continue
		}
		seen[d] = struct{}{}
		diagnostics = append(diagnostics, d)
	}
	return diagnostics
}

// tokenEnd extends a diagnostic start offset over the identifier it points
// at, so findings underline the whole token rather than one character.
func tokenEnd(text string, start int) int {
	end := start
	for end < len(text) && isIdentChar(text[end]) {
		end++
	}
	if end == start && end < len(text) {
		end++
	}
	return end
}
