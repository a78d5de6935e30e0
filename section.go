package mdblock

// splitParser recognizes HTML blocks while splitting. Strict kind 6 handling
// runs every block tag to a blank line, which never yields a boundary the
// lenient parser would not also accept.
var splitParser = New(WithStrictHTMLBlocks(true))

// SplitSections cuts src into spans that parse independently: the block
// tree of the whole equals the concatenation of the trees of the parts.
//
// A cut is made only at the first non-blank line after one or more blank
// lines, when that line starts at column zero and is not a list marker, and
// only outside fenced code and outside HTML blocks. Every byte of src belongs
// to exactly one span and spans are in order.
func SplitSections(src []byte) []Span {
	var (
		spans      []Span
		start      int
		fence      Fence
		inFence    bool
		afterBlank bool
	)
	c := NewCursor(src)
	for !c.EOF() {
		ln := c.Text()
		switch {
		case inFence:
			inFence = !fence.closes(ln)
		case isBlank(ln):
			afterBlank = true
			c = c.NextLine()
			continue
		default:
			if afterBlank && c.Offset > start && sectionBoundary(ln) {
				spans = append(spans, Span{Start: start, End: c.Offset})
				start = c.Offset
			}
			if f, ok := FenceOpen(ln); ok {
				fence, inFence = f, true
				break
			}
			if rest, ok := blockStart(ln); ok && len(rest) > 0 && rest[0] == '<' {
				if _, next, ok := splitParser.ParseHTMLBlock(c); ok {
					afterBlank = false
					c = next
					continue
				}
			}
		}
		afterBlank = false
		c = c.NextLine()
	}
	if start < len(src) {
		spans = append(spans, Span{Start: start, End: len(src)})
	}
	return spans
}

func sectionBoundary(line []byte) bool {
	if cols, _ := LeadingIndent(line); cols != 0 {
		return false
	}
	_, marker := detectMarker(line)
	return !marker
}
