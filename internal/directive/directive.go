package directive

import (
	"regexp"
	"strings"
)

// OperationInsert is the only operation the engine supports.
const OperationInsert = "insert"

const (
	openToken  = "<MarkDownExtension"
	closeToken = "/>"
)

// Attribute names are case-sensitive and located by name, not position.
var (
	operationAttrRegex = regexp.MustCompile(`\boperation\s*=\s*"([^"]*)"`)
	fileAttrRegex      = regexp.MustCompile(`\bfile\s*=\s*"([^"]*)"`)
)

// Occurrence is one directive found in a document's content.
//
// RawText is the exact substring from the opening token through the
// closing token (or through end of line when the directive is never
// closed). Offset and Length give the byte span of RawText within the
// scanned content, so callers can rebuild the content by splicing
// replacements over spans in ascending offset order. Line is 1-based.
type Occurrence struct {
	RawText string
	Line    int
	Offset  int
	Length  int

	Operation    string
	HasOperation bool
	// Target is the file attribute value with surrounding whitespace
	// trimmed, case preserved as written.
	Target  string
	HasFile bool
}

// End returns the byte offset just past the occurrence.
func (o Occurrence) End() int {
	return o.Offset + o.Length
}

// OperationValid reports whether the operation attribute is present and
// names the one supported operation.
func (o Occurrence) OperationValid() bool {
	return o.HasOperation && o.Operation == OperationInsert
}

// Usable reports whether the occurrence carries everything needed to
// resolve a target: a valid operation and a non-blank file value.
func (o Occurrence) Usable() bool {
	return o.OperationValid() && o.HasFile && o.Target != ""
}

// Scan finds every directive occurrence in content, in source order.
// Empty content yields no occurrences. Malformed directives still
// produce an occurrence, with the absent attributes unset, so callers
// can report them; an opening token with no closing token on its line
// produces an unterminated occurrence spanning to end of line with no
// attributes parsed.
func Scan(content string) []Occurrence {
	if content == "" {
		return nil
	}

	var occs []Occurrence
	line := 1
	pos := 0
	for {
		rel := strings.Index(content[pos:], openToken)
		if rel < 0 {
			return occs
		}
		start := pos + rel
		line += strings.Count(content[pos:start], "\n")

		after := start + len(openToken)
		if after < len(content) && isNameByte(content[after]) {
			// A longer element name, not ours.
			pos = after
			continue
		}

		end, terminated := findEnd(content, after)
		raw := content[start:end]

		occ := Occurrence{
			RawText: raw,
			Line:    line,
			Offset:  start,
			Length:  end - start,
		}
		if terminated {
			if m := operationAttrRegex.FindStringSubmatch(raw); m != nil {
				occ.HasOperation = true
				occ.Operation = m[1]
			}
			if m := fileAttrRegex.FindStringSubmatch(raw); m != nil {
				occ.HasFile = true
				occ.Target = strings.TrimSpace(m[1])
			}
		}
		occs = append(occs, occ)
		pos = end
	}
}

// findEnd locates the end of a directive that opened just before from:
// the first closing token on the same line, or end of line when the
// directive is never closed.
func findEnd(content string, from int) (end int, terminated bool) {
	lineEnd := strings.IndexByte(content[from:], '\n')
	if lineEnd < 0 {
		lineEnd = len(content)
	} else {
		lineEnd += from
	}
	if rel := strings.Index(content[from:lineEnd], closeToken); rel >= 0 {
		return from + rel + len(closeToken), true
	}
	if lineEnd > from && content[lineEnd-1] == '\r' {
		lineEnd--
	}
	return lineEnd, false
}

func isNameByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}
