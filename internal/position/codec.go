package position

import "strings"

// Point is a zero-based line/character coordinate within a text.
// Character counts bytes; texts handled by this codec use linefeed-only
// line endings.
type Point struct {
	Line      int
	Character int
}

// Compare orders two points: by line first, then by character.
// Returns -1 when a precedes b, 0 when equal, 1 when a follows b.
func Compare(a, b Point) int {
	if a.Line != b.Line {
		if a.Line < b.Line {
			return -1
		}
		return 1
	}
	if a.Character != b.Character {
		if a.Character < b.Character {
			return -1
		}
		return 1
	}
	return 0
}

// OffsetToPoint converts a byte offset within text to a line/character
// coordinate by scanning line breaks. Offsets beyond the text clamp to its
// end; negative offsets clamp to the start.
func OffsetToPoint(text string, offset int) Point {
	if offset < 0 {
		offset = 0
	}
	if offset > len(text) {
		offset = len(text)
	}

	line := strings.Count(text[:offset], "\n")
	lineStart := 0
	if line > 0 {
		lineStart = strings.LastIndexByte(text[:offset], '\n') + 1
	}
	return Point{Line: line, Character: offset - lineStart}
}

// PointToOffset converts a line/character coordinate to a byte offset within
// text. Lines beyond the last clamp to the text end; characters beyond the
// line end clamp to the line end.
func PointToOffset(text string, p Point) int {
	if p.Line < 0 {
		return 0
	}

	lineStart := 0
	for l := 0; l < p.Line; l++ {
		next := strings.IndexByte(text[lineStart:], '\n')
		if next < 0 {
			return len(text)
		}
		lineStart += next + 1
	}

	lineEnd := strings.IndexByte(text[lineStart:], '\n')
	if lineEnd < 0 {
		lineEnd = len(text) - lineStart
	}

	ch := p.Character
	if ch < 0 {
		ch = 0
	}
	if ch > lineEnd {
		ch = lineEnd
	}
	return lineStart + ch
}

// UTF16PointToOffset converts an LSP position (zero-based line, UTF-16
// character column) into a byte offset within text. Out-of-range lines and
// columns clamp the same way PointToOffset does.
func UTF16PointToOffset(text string, line, character int) int {
	lineStartOffset := PointToOffset(text, Point{Line: line, Character: 0})

	lineEnd := strings.IndexByte(text[lineStartOffset:], '\n')
	if lineEnd < 0 {
		lineEnd = len(text) - lineStartOffset
	}
	lineText := text[lineStartOffset : lineStartOffset+lineEnd]

	return lineStartOffset + UTF16ToByteOffset(lineText, character)
}
