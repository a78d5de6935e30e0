package mdblock

// ListItem is one segmented list item.
type ListItem struct {
	Marker        ListMarker
	Indent        int // columns before the marker
	Padding       int // columns between the marker and the content
	ContentIndent int // column at which the item content begins
	// Content runs from just after the marker through the terminator of the
	// item's last line. Whitespace after the marker stays in the span.
	Content          Span
	HasInternalBlank bool
	// FollowedByBlank is set by the list assembler when blank lines separate
	// this item from the next one.
	FollowedByBlank bool
	// Empty reports an item with no content at all.
	Empty bool
}

type itemState uint8

const (
	itemFirstLine itemState = iota
	itemBlank
	itemContinuing
	itemFencedCode
)

// ParseListItem segments one list item with the default parser.
func ParseListItem(c Cursor, expect *MarkerKind) (ListItem, Cursor, bool) {
	return defaultParser.ParseListItem(c, expect)
}

// ParseListItem consumes every line that belongs to the list item starting at
// c. When expect is non-nil the marker must be of that kind.
//
// The item keeps non-blank lines indented at least ContentIndent columns. A
// blank line keeps it open only when the next non-blank line is indented
// enough, which marks the item as having an internal blank. An under-indented
// line right after content is a lazy continuation unless a sibling-block
// probe claims it. A list marker only claims it when the marker sits no deeper
// than this item's own. Blank lines inside an open fence are plain content.
func (p *Parser) ParseListItem(c Cursor, expect *MarkerKind) (ListItem, Cursor, bool) {
	if c.EOF() || !c.AtLineStart() {
		p.noMatch("list-item", c)
		return ListItem{}, c, false
	}
	src := c.Src
	line, next := lineAt(src, c.Offset)
	m, ok := detectMarker(line)
	if !ok || (expect != nil && m.Marker.Kind != *expect) {
		p.noMatch("list-item", c)
		return ListItem{}, c, false
	}
	item := ListItem{
		Marker:        m.Marker,
		Indent:        m.Indent,
		Padding:       m.Padding,
		ContentIndent: m.ContentIndent,
		Content:       Span{Start: c.Offset + m.markerEnd},
	}

	var (
		off        = next // start of the line under examination
		end        = next // end of accepted content
		fence      Fence
		lazyOK     bool
		iterations int
		state      = itemFirstLine
	)

loop:
	for off < len(src) {
		iterations++
		if iterations > p.cfg.maxItemLines {
			p.ceilingHit("item-lines", p.cfg.maxItemLines, c.AdvanceTo(off))
			break
		}
		switch state {
		case itemFirstLine:
			if m.Blank {
				// An item may begin with at most one blank line.
				ln, _ := lineAt(src, off)
				if isBlank(ln) {
					item.Empty = true
					break loop
				}
				if _, ok := detectMarker(ln); ok {
					item.Empty = true
					break loop
				}
				if cols, _ := LeadingIndent(ln); cols < m.ContentIndent {
					item.Empty = true
					break loop
				}
				state = itemContinuing
				continue
			}
			first := stripColumns(line[m.markerEnd:], m.Indent+m.Marker.Width(), m.Padding)
			if f, ok := FenceOpen(first); ok {
				fence = f
				state = itemFencedCode
			} else {
				lazyOK = paragraphLike(first)
				state = itemContinuing
			}
			iterations--
			continue

		case itemFencedCode:
			ln, nx := lineAt(src, off)
			if isBlank(ln) {
				off, end = nx, nx
				continue
			}
			if cols, _ := LeadingIndent(ln); cols < m.ContentIndent {
				break loop
			}
			if fence.closes(stripColumns(ln, 0, m.ContentIndent)) {
				state = itemContinuing
				lazyOK = false
			}
			off, end = nx, nx

		case itemBlank:
			// Blank run: look ahead for the next non-blank line.
			j := off
			for j < len(src) {
				ln, nx := lineAt(src, j)
				if !isBlank(ln) {
					break
				}
				j = nx
				iterations++
				if iterations > p.cfg.maxItemLines {
					p.ceilingHit("item-lines", p.cfg.maxItemLines, c.AdvanceTo(j))
					break loop
				}
			}
			if j >= len(src) {
				break loop
			}
			ln, _ := lineAt(src, j)
			if cols, _ := LeadingIndent(ln); cols < m.ContentIndent {
				break loop
			}
			item.HasInternalBlank = true
			off, end = j, j
			lazyOK = false
			state = itemContinuing

		case itemContinuing:
			ln, nx := lineAt(src, off)
			if isBlank(ln) {
				state = itemBlank
				continue
			}
			cols, _ := LeadingIndent(ln)
			if cols >= m.ContentIndent {
				rel := stripColumns(ln, 0, m.ContentIndent)
				if f, ok := FenceOpen(rel); ok {
					fence = f
					state = itemFencedCode
					lazyOK = false
				} else {
					lazyOK = paragraphLike(rel)
				}
				off, end = nx, nx
				continue
			}
			if probe, ok := closingProbe(ln, m.Indent); ok {
				p.noMatch("list-item-continuation:"+probe.String(), c.AdvanceTo(off))
				break loop
			}
			if p.cfg.strictLazy && !lazyOK {
				break loop
			}
			// Lazy continuation of the item's open paragraph.
			off, end = nx, nx
		}
	}

	if m.Blank && end == next && !item.Empty {
		// EOF right after an empty first line.
		item.Empty = true
	}
	item.Content.End = end
	return item, c.AdvanceTo(end), true
}

// closingProbe reports the sibling probe that ends an item whose marker sits
// at markerIndent columns. A more deeply indented marker does not.
func closingProbe(line []byte, markerIndent int) (Probe, bool) {
	for _, probe := range itemClosers {
		if !probe.Match(line) {
			continue
		}
		if probe == ProbeListMarker {
			if m, _ := detectMarker(line); m.Indent > markerIndent {
				continue
			}
		}
		return probe, true
	}
	return 0, false
}

// Lines returns the item content with the item's indentation removed: the
// first line without marker and padding, indented lines without ContentIndent
// columns, lazy lines without leading whitespace, blank lines empty.
func (it ListItem) Lines(src []byte) [][]byte {
	content := it.Content.Bytes(src)
	if len(content) == 0 {
		return nil
	}
	var out [][]byte
	first := true
	for off := 0; off < len(content); {
		ln, nx := lineAt(content, off)
		switch {
		case first:
			first = false
			if isBlank(ln) {
				break
			}
			out = append(out, stripColumns(ln, it.Indent+it.Marker.Width(), it.Padding))
		case isBlank(ln):
			out = append(out, nil)
		default:
			if cols, _ := LeadingIndent(ln); cols >= it.ContentIndent {
				out = append(out, stripColumns(ln, 0, it.ContentIndent))
			} else {
				out = append(out, trimLeftSpace(ln))
			}
		}
		off = nx
	}
	return out
}
