// Package template builds the combined GraphQL text for one template
// literal and the bidirectional offset mapping between the outer source
// file and that combined text.
package template

import (
	"fmt"

	"bennypowers.dev/gqlls/internal/parser/js"
	"bennypowers.dev/gqlls/internal/position"
)

// Origin records how a segment of combined text was produced.
type Origin int

const (
	// OriginLiteral text was copied verbatim from a template fragment
	OriginLiteral Origin = iota
	// OriginSubstitution text was spliced in for a ${...} interpolation
	OriginSubstitution
)

// Segment maps one contiguous run of combined text back to an outer span.
// Literal segments preserve length; substitution segments may not, since
// the spliced text stands in for the whole ${...} span.
type Segment struct {
	OuterStart int
	OuterEnd   int
	InnerStart int
	InnerEnd   int
	Origin     Origin
}

// Source supplies the binding lookups resolution needs from the host file.
type Source interface {
	Binding(name string) (*js.TemplateNode, bool)
}

// ResolvedTemplateInfo owns the combined text and segment table for one
// template node. Built fresh per query; the mapping methods are pure and
// never mutate it.
type ResolvedTemplateInfo struct {
	Node         *js.TemplateNode
	CombinedText string
	Segments     []Segment
}

// Resolve builds the combined text and segment table for a template node.
// Returns ok == false when the node contains an interpolation that cannot
// be statically resolved to another template binding — including non-
// identifier expressions, unknown identifiers and reference cycles. There
// is no placeholder substitution: resolution fully succeeds or fully fails.
func Resolve(node *js.TemplateNode, source Source) (*ResolvedTemplateInfo, bool) {
	return resolve(node, source, map[*js.TemplateNode]bool{node: true})
}

func resolve(node *js.TemplateNode, source Source, visiting map[*js.TemplateNode]bool) (*ResolvedTemplateInfo, bool) {
	info := &ResolvedTemplateInfo{Node: node}

	var combined []byte
	for _, part := range node.Parts {
		inner := len(combined)

		switch part.Kind {
		case js.PartSubstitution:
			if !part.ExprIsIdentifier {
				return nil, false
			}
			referenced, ok := source.Binding(part.Expr)
			if !ok || visiting[referenced] {
				return nil, false
			}
			visiting[referenced] = true
			resolved, ok := resolve(referenced, source, visiting)
			delete(visiting, referenced)
			if !ok {
				return nil, false
			}
			combined = append(combined, resolved.CombinedText...)
			info.Segments = append(info.Segments, Segment{
				OuterStart: part.Start,
				OuterEnd:   part.End,
				InnerStart: inner,
				InnerEnd:   len(combined),
				Origin:     OriginSubstitution,
			})
		default:
			combined = append(combined, part.Text...)
			info.Segments = append(info.Segments, Segment{
				OuterStart: part.Start,
				OuterEnd:   part.End,
				InnerStart: inner,
				InnerEnd:   len(combined),
				Origin:     OriginLiteral,
			})
		}
	}

	info.CombinedText = string(combined)
	return info, true
}

// OuterToInner maps an outer source offset into the combined text. Inside a
// literal segment the mapping is exact. A position inside a substitution's
// outer span maps to the start of its spliced text: no finer-grained
// mapping exists there. Positions outside the node's content (on the
// backticks) clamp to the nearest combined-text boundary.
func (info *ResolvedTemplateInfo) OuterToInner(outer int) int {
	for _, seg := range info.Segments {
		if outer < seg.OuterStart {
			return seg.InnerStart
		}
		if outer < seg.OuterEnd {
			if seg.Origin == OriginLiteral {
				return seg.InnerStart + (outer - seg.OuterStart)
			}
			return seg.InnerStart
		}
	}
	return len(info.CombinedText)
}

// InnerToOuter maps a combined-text offset back to the outer source. For
// literal segments the mapping is exact and isInOtherExpression is false.
// For substitution segments it returns the outer start of the ${...} span
// with isInOtherExpression true: the position has no exact outer
// counterpart and must be reported at coarse granularity. Offsets outside
// the combined text return an error.
func (info *ResolvedTemplateInfo) InnerToOuter(inner int) (outer int, isInOtherExpression bool, err error) {
	for _, seg := range info.Segments {
		if inner < seg.InnerStart || inner >= seg.InnerEnd {
			continue
		}
		if seg.Origin == OriginLiteral {
			return seg.OuterStart + (inner - seg.InnerStart), false, nil
		}
		return seg.OuterStart, true, nil
	}
	return 0, false, fmt.Errorf("offset %d outside combined text of length %d", inner, len(info.CombinedText))
}

// InnerOffsetToPoint converts a combined-text offset to a line/character
// coordinate over the combined text.
func (info *ResolvedTemplateInfo) InnerOffsetToPoint(inner int) position.Point {
	return position.OffsetToPoint(info.CombinedText, inner)
}

// PointToInnerOffset converts a line/character coordinate over the combined
// text back to an offset.
func (info *ResolvedTemplateInfo) PointToInnerOffset(p position.Point) int {
	return position.PointToOffset(info.CombinedText, p)
}
