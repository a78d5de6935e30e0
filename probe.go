package mdblock

import "bytes"

// Probe is a read-only recognizer for the start of a sibling block. Probes are
// used to decide whether an under-indented line continues the current block
// lazily or starts something new. They never consume input.
type Probe uint8

const (
	ProbeThematicBreak Probe = iota + 1
	ProbeATXHeading
	ProbeFenceOpen
	ProbeHTMLCommentStart
	ProbeBlockQuote
	ProbeListMarker
)

// itemClosers are the probes that end a list item when they match an
// under-indented line. Thematic breaks are tried before list markers so that
// "* * *" closes the item as a break rather than a sibling.
var itemClosers = [...]Probe{
	ProbeThematicBreak,
	ProbeListMarker,
	ProbeATXHeading,
	ProbeFenceOpen,
	ProbeHTMLCommentStart,
	ProbeBlockQuote,
}

func (p Probe) String() string {
	switch p {
	case ProbeThematicBreak:
		return "thematic-break"
	case ProbeATXHeading:
		return "atx-heading"
	case ProbeFenceOpen:
		return "fence-open"
	case ProbeHTMLCommentStart:
		return "html-comment-start"
	case ProbeBlockQuote:
		return "block-quote"
	case ProbeListMarker:
		return "list-marker"
	default:
		return "unknown"
	}
}

// Match reports whether line, taken from column zero, starts the block the
// probe recognizes.
func (p Probe) Match(line []byte) bool {
	switch p {
	case ProbeThematicBreak:
		return IsThematicBreak(line)
	case ProbeATXHeading:
		return IsATXHeading(line)
	case ProbeFenceOpen:
		_, ok := FenceOpen(line)
		return ok
	case ProbeHTMLCommentStart:
		rest, ok := blockStart(line)
		return ok && bytes.HasPrefix(rest, commentOpen)
	case ProbeBlockQuote:
		rest, ok := blockStart(line)
		return ok && len(rest) > 0 && rest[0] == '>'
	case ProbeListMarker:
		_, ok := detectMarker(line)
		return ok
	default:
		return false
	}
}

// FirstMatch returns the first probe that matches line.
func FirstMatch(line []byte, probes ...Probe) (Probe, bool) {
	for _, p := range probes {
		if p.Match(line) {
			return p, true
		}
	}
	return 0, false
}

// blockStart strips at most three columns of indentation. It fails when the
// line is indented four or more columns.
func blockStart(line []byte) ([]byte, bool) {
	cols, n := LeadingIndent(line)
	if cols > 3 {
		return nil, false
	}
	return line[n:], true
}

// IsThematicBreak reports whether line is a thematic break: three or more
// matching '-', '*' or '_' characters, optionally separated by spaces or tabs.
func IsThematicBreak(line []byte) bool {
	rest, ok := blockStart(line)
	if !ok || len(rest) == 0 {
		return false
	}
	ch := rest[0]
	if ch != '-' && ch != '*' && ch != '_' {
		return false
	}
	count := 0
	for _, b := range rest {
		switch {
		case b == ch:
			count++
		case isSpace(b) || b == '\r':
		default:
			return false
		}
	}
	return count >= 3
}

// IsATXHeading reports whether line opens an ATX heading.
func IsATXHeading(line []byte) bool {
	_, ok := ATXHeadingLevel(line)
	return ok
}

// ATXHeadingLevel returns the level of the ATX heading opened by line.
func ATXHeadingLevel(line []byte) (int, bool) {
	rest, ok := blockStart(line)
	if !ok {
		return 0, false
	}
	level := 0
	for level < len(rest) && rest[level] == '#' {
		level++
	}
	if level == 0 || level > 6 {
		return 0, false
	}
	if level < len(rest) && !isSpace(rest[level]) && rest[level] != '\r' {
		return 0, false
	}
	return level, true
}

// Fence describes an opening code fence.
type Fence struct {
	Char   byte // '`' or '~'
	Len    int
	Indent int
	Info   string
}

// FenceOpen reports whether line opens a fenced code block.
func FenceOpen(line []byte) (Fence, bool) {
	cols, n := LeadingIndent(line)
	if cols > 3 {
		return Fence{}, false
	}
	rest := line[n:]
	if len(rest) < 3 || (rest[0] != '`' && rest[0] != '~') {
		return Fence{}, false
	}
	ch := rest[0]
	run := 0
	for run < len(rest) && rest[run] == ch {
		run++
	}
	if run < 3 {
		return Fence{}, false
	}
	info := bytes.TrimSpace(rest[run:])
	if ch == '`' && bytes.IndexByte(info, '`') >= 0 {
		return Fence{}, false
	}
	return Fence{Char: ch, Len: run, Indent: cols, Info: string(info)}, true
}

// closes reports whether line closes the fence f.
func (f Fence) closes(line []byte) bool {
	rest, ok := blockStart(line)
	if !ok {
		return false
	}
	run := 0
	for run < len(rest) && rest[run] == f.Char {
		run++
	}
	return run >= f.Len && isBlank(rest[run:])
}

// paragraphLike reports whether line would leave an open paragraph behind it.
// Container prefixes (block quote markers, list markers) are looked through.
// It decides whether the next under-indented line may continue lazily.
func paragraphLike(line []byte) bool {
	for depth := 0; depth < maxLazyPrefixes; depth++ {
		if isBlank(line) {
			return false
		}
		cols, n := LeadingIndent(line)
		if cols > 3 {
			return false
		}
		rest := line[n:]
		if rest[0] == '>' {
			line = rest[1:]
			continue
		}
		if IsThematicBreak(line) {
			return false
		}
		if m, ok := detectMarker(line); ok {
			if m.Blank {
				return false
			}
			line = stripColumns(line[m.markerEnd:], m.Indent+m.Marker.Width(), m.Padding)
			continue
		}
		_, fence := FenceOpen(line)
		return !fence && !IsATXHeading(line) && !bytes.HasPrefix(rest, commentOpen)
	}
	return true
}

const maxLazyPrefixes = 16
