package mdblock

import "bytes"

// Cursor is a position in a source buffer. Recognizers take a Cursor at the
// start of a line and return an advanced copy on success.
type Cursor struct {
	Src    []byte
	Offset int
	Line   int // 1-based
	Column int // 1-based, in bytes
}

// Span is a half-open byte range [Start, End) in a source buffer.
type Span struct {
	Start int
	End   int
}

// Len returns the number of bytes covered by the span.
func (s Span) Len() int { return s.End - s.Start }

// Bytes returns the bytes of src covered by the span.
func (s Span) Bytes(src []byte) []byte {
	if s.Start < 0 || s.End > len(src) || s.Start > s.End {
		return nil
	}
	return src[s.Start:s.End]
}

// Shift returns the span moved by delta bytes.
func (s Span) Shift(delta int) Span {
	return Span{Start: s.Start + delta, End: s.End + delta}
}

// NewCursor returns a cursor at the start of src.
func NewCursor(src []byte) Cursor {
	return Cursor{Src: src, Line: 1, Column: 1}
}

// EOF reports whether the cursor is at or past the end of the source.
func (c Cursor) EOF() bool {
	return c.Offset >= len(c.Src)
}

// AtLineStart reports whether the cursor sits on the first byte of a line.
func (c Cursor) AtLineStart() bool {
	return c.Offset == 0 || (c.Offset <= len(c.Src) && c.Src[c.Offset-1] == '\n')
}

// Text returns the rest of the current line, without its terminator.
func (c Cursor) Text() []byte {
	if c.EOF() {
		return nil
	}
	end, _ := lineBounds(c.Src, c.Offset)
	return c.Src[c.Offset:end]
}

// NextLine returns a cursor at the start of the following line.
func (c Cursor) NextLine() Cursor {
	if c.EOF() {
		return c
	}
	_, next := lineBounds(c.Src, c.Offset)
	return c.AdvanceTo(next)
}

// AdvanceTo returns a cursor at off, updating line and column.
// Offsets before the current position return c unchanged.
func (c Cursor) AdvanceTo(off int) Cursor {
	if off > len(c.Src) {
		off = len(c.Src)
	}
	if off <= c.Offset {
		return c
	}
	seg := c.Src[c.Offset:off]
	if n := bytes.Count(seg, newline); n > 0 {
		c.Line += n
		c.Column = off - (c.Offset + bytes.LastIndexByte(seg, '\n'))
	} else {
		c.Column += len(seg)
	}
	c.Offset = off
	return c
}

var newline = []byte{'\n'}

// lineBounds returns the end of the line starting at off, excluding any
// "\n" or "\r\n" terminator, and the offset of the next line.
func lineBounds(src []byte, off int) (end, next int) {
	i := bytes.IndexByte(src[off:], '\n')
	if i < 0 {
		end = len(src)
		next = len(src)
	} else {
		end = off + i
		next = end + 1
	}
	if end > off && src[end-1] == '\r' {
		end--
	}
	return end, next
}

// lineAt returns the line starting at off and the offset of the next line.
func lineAt(src []byte, off int) ([]byte, int) {
	end, next := lineBounds(src, off)
	return src[off:end], next
}
