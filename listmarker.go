package mdblock

import "strconv"

// MarkerKind separates bullet markers from ordered markers. Sibling items in
// one list always share a kind.
type MarkerKind uint8

const (
	BulletMarker MarkerKind = iota + 1
	OrderedMarker
)

func (k MarkerKind) String() string {
	switch k {
	case BulletMarker:
		return "bullet"
	case OrderedMarker:
		return "ordered"
	default:
		return "none"
	}
}

const maxOrderedDigits = 9

// ListMarker is a detected list marker. Bullet markers set Bullet; ordered
// markers set Number, Digits and Delimiter.
type ListMarker struct {
	Kind      MarkerKind
	Bullet    byte // '-', '+' or '*'
	Number    int
	Digits    int
	Delimiter byte // '.' or ')'
}

// Width returns the marker width in columns.
func (m ListMarker) Width() int {
	if m.Kind == OrderedMarker {
		return m.Digits + 1
	}
	return 1
}

func (m ListMarker) String() string {
	if m.Kind == OrderedMarker {
		return strconv.Itoa(m.Number) + string(m.Delimiter)
	}
	return string(m.Bullet)
}

// MarkerMatch is the result of list marker detection.
type MarkerMatch struct {
	Marker        ListMarker
	Indent        int  // columns before the marker
	Padding       int  // columns between the marker and the content
	ContentIndent int  // Indent + marker width + Padding
	Blank         bool // nothing but whitespace follows the marker

	markerEnd int // byte offset just past the marker, relative to the line
}

// DetectListMarker recognizes a bullet or ordered list marker at the start of
// the line under c. The marker may be preceded by up to three columns of
// indentation and must be followed by a space, a tab or the end of the line.
//
// Whitespace after the marker is padding up to four columns. Anything beyond
// four columns stays in the item content. With nothing after the marker the
// padding is a single column.
func DetectListMarker(c Cursor) (MarkerMatch, bool) {
	if c.EOF() || !c.AtLineStart() {
		return MarkerMatch{}, false
	}
	return detectMarker(c.Text())
}

func detectMarker(line []byte) (MarkerMatch, bool) {
	indent, i := LeadingIndent(line)
	if indent > 3 || i >= len(line) {
		return MarkerMatch{}, false
	}
	marker, end, ok := parseOrderedMarker(line, i)
	if !ok {
		marker, end, ok = parseBulletMarker(line, i)
	}
	if !ok {
		return MarkerMatch{}, false
	}
	rest := line[end:]
	if len(rest) > 0 && !isSpace(rest[0]) && rest[0] != '\r' {
		return MarkerMatch{}, false
	}
	m := MarkerMatch{Marker: marker, Indent: indent, markerEnd: end}
	markerCol := indent + marker.Width()
	switch {
	case isBlank(rest):
		m.Blank = true
		m.Padding = 1
	default:
		w := Columns(rest, markerCol)
		if w > 4 {
			w = 4
		}
		m.Padding = w
	}
	m.ContentIndent = markerCol + m.Padding
	return m, true
}

func parseOrderedMarker(line []byte, i int) (ListMarker, int, bool) {
	j := i
	num := 0
	for j < len(line) && line[j] >= '0' && line[j] <= '9' {
		if j-i == maxOrderedDigits {
			return ListMarker{}, 0, false
		}
		num = num*10 + int(line[j]-'0')
		j++
	}
	if j == i || j >= len(line) || (line[j] != '.' && line[j] != ')') {
		return ListMarker{}, 0, false
	}
	return ListMarker{
		Kind:      OrderedMarker,
		Number:    num,
		Digits:    j - i,
		Delimiter: line[j],
	}, j + 1, true
}

func parseBulletMarker(line []byte, i int) (ListMarker, int, bool) {
	switch line[i] {
	case '-', '+', '*':
		return ListMarker{Kind: BulletMarker, Bullet: line[i]}, i + 1, true
	}
	return ListMarker{}, 0, false
}
