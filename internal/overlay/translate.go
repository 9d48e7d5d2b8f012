package overlay

import (
	"strings"

	"bennypowers.dev/gqlls/internal/graphql"
	"bennypowers.dev/gqlls/internal/parser/js"
	"bennypowers.dev/gqlls/internal/position"
	"bennypowers.dev/gqlls/internal/template"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// diagnosticSource tags every diagnostic this overlay synthesizes.
const diagnosticSource = "graphql"

const (
	// codeTooComplex marks templates whose interpolations defeat static
	// analysis
	codeTooComplex = "too-complex-expression"
	// codeInOtherExpression marks findings whose precise range lies
	// inside spliced text with no exact outer counterpart
	codeInOtherExpression = "expression-has-graphql-errors"
)

const (
	tooComplexMessage        = "too complex dynamic expression(s) to analyze"
	inOtherExpressionMessage = "this expression has GraphQL errors"
)

// translateDiagnostic maps one combined-text finding back onto the outer
// source. Findings whose start lies inside spliced substitution text have
// no reliable outer range and degrade to a generic diagnostic spanning the
// whole template node; an unmappable end degrades to a zero-length span.
func translateDiagnostic(file *js.ScriptFile, info *template.ResolvedTemplateInfo, finding graphql.Diagnostic) protocol.Diagnostic {
	outerStart, isInOtherExpression, err := info.InnerToOuter(finding.Start)
	if err != nil || isInOtherExpression {
		return genericDiagnostic(file, info.Node)
	}

	length := 0
	if outerEnd, _, endErr := info.InnerToOuter(finding.End); endErr == nil {
		// the finding's end is inclusive-style; one unit comes off when
		// deriving the half-open outer span
		length = outerEnd - outerStart - 1
		if length < 0 {
			length = 0
		}
	}

	severity := protocolSeverity(finding.Severity)
	diagnostic := protocol.Diagnostic{
		Range:    protoRange(file.Text, outerStart, outerStart+length),
		Severity: &severity,
		Source:   sourcePtr(),
		Message:  firstLine(finding.Message),
	}
	if finding.Code != "" {
		diagnostic.Code = &protocol.IntegerOrString{Value: finding.Code}
	}
	return diagnostic
}

// tooComplexDiagnostic is the single coarse warning an unresolvable
// template contributes, spanning the node's full outer range.
func tooComplexDiagnostic(file *js.ScriptFile, node *js.TemplateNode) protocol.Diagnostic {
	severity := protocol.DiagnosticSeverityWarning
	return protocol.Diagnostic{
		Range:    protoRange(file.Text, node.Start, node.End),
		Severity: &severity,
		Code:     &protocol.IntegerOrString{Value: codeTooComplex},
		Source:   sourcePtr(),
		Message:  tooComplexMessage,
	}
}

// genericDiagnostic anchors an imprecise finding at the entire enclosing
// node's outer span.
func genericDiagnostic(file *js.ScriptFile, node *js.TemplateNode) protocol.Diagnostic {
	severity := protocol.DiagnosticSeverityError
	return protocol.Diagnostic{
		Range:    protoRange(file.Text, node.Start, node.End),
		Severity: &severity,
		Code:     &protocol.IntegerOrString{Value: codeInOtherExpression},
		Source:   sourcePtr(),
		Message:  inOtherExpressionMessage,
	}
}

func protocolSeverity(s graphql.Severity) protocol.DiagnosticSeverity {
	if s == graphql.SeverityWarning {
		return protocol.DiagnosticSeverityWarning
	}
	return protocol.DiagnosticSeverityError
}

// firstLine truncates a possibly multi-line message to its first line.
func firstLine(message string) string {
	if i := strings.IndexByte(message, '\n'); i >= 0 {
		return message[:i]
	}
	return message
}

func sourcePtr() *string {
	source := diagnosticSource
	return &source
}

// protoPosition converts an outer byte offset to an LSP position with
// UTF-16 character counts.
func protoPosition(text string, offset int) protocol.Position {
	if offset < 0 {
		offset = 0
	}
	if offset > len(text) {
		offset = len(text)
	}
	point := position.OffsetToPoint(text, offset)
	lineStart := offset - point.Character
	return protocol.Position{
		Line:      uint32(point.Line),                                                     //nolint:gosec // G115: positions are bounded by file size
		Character: uint32(position.ByteOffsetToUTF16(text[lineStart:], point.Character)), //nolint:gosec // G115: positions are bounded by file size
	}
}

// protoRange converts a half-open outer byte span to an LSP range.
func protoRange(text string, start, end int) protocol.Range {
	return protocol.Range{
		Start: protoPosition(text, start),
		End:   protoPosition(text, end),
	}
}
