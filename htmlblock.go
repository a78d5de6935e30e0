package mdblock

import (
	"bytes"
)

// HTMLKind identifies one of the seven CommonMark HTML block kinds.
type HTMLKind uint8

const (
	HTMLRawText               HTMLKind = iota + 1 // <script>, <pre>, <style>, <textarea>
	HTMLComment                                   // <!-- ... -->
	HTMLProcessingInstruction                     // <? ... ?>
	HTMLDeclaration                               // <!X ... >
	HTMLCDATA                                     // <![CDATA[ ... ]]>
	HTMLBlockTag                                  // known block-level tag names
	HTMLCompleteTag                               // any complete open or close tag alone on its line
)

func (k HTMLKind) String() string {
	switch k {
	case HTMLRawText:
		return "raw-text"
	case HTMLComment:
		return "comment"
	case HTMLProcessingInstruction:
		return "processing-instruction"
	case HTMLDeclaration:
		return "declaration"
	case HTMLCDATA:
		return "cdata"
	case HTMLBlockTag:
		return "block-tag"
	case HTMLCompleteTag:
		return "complete-tag"
	default:
		return "unknown"
	}
}

// CanInterruptParagraph reports whether a block of this kind may start on a
// line that would otherwise continue a paragraph.
func (k HTMLKind) CanInterruptParagraph() bool {
	return k >= HTMLRawText && k < HTMLCompleteTag
}

// HTMLBlock is a raw HTML block span. The span covers whole lines, including
// the terminator of the last line when there is one.
type HTMLBlock struct {
	Kind HTMLKind
	Span Span
	// ClosedOnOpenLine is set when a block-tag block ended at its first line
	// because the matching close tag sat on that line.
	ClosedOnOpenLine bool
}

// Raw returns the block's source bytes.
func (b HTMLBlock) Raw(src []byte) []byte {
	return b.Span.Bytes(src)
}

var (
	commentOpen  = []byte("<!--")
	commentClose = []byte("-->")
	piOpen       = []byte("<?")
	piClose      = []byte("?>")
	cdataOpen    = []byte("<![CDATA[")
	cdataClose   = []byte("]]>")
)

var rawTextTags = [...]string{"script", "pre", "style", "textarea"}

var rawTextClosers = [...][]byte{
	[]byte("</script>"),
	[]byte("</pre>"),
	[]byte("</style>"),
	[]byte("</textarea>"),
}

// blockTagNames are the tag names that open an HTML block of kind 6.
var blockTagNames = map[string]struct{}{
	"address": {}, "article": {}, "aside": {}, "base": {}, "basefont": {},
	"blockquote": {}, "body": {}, "caption": {}, "center": {}, "col": {},
	"colgroup": {}, "dd": {}, "details": {}, "dialog": {}, "dir": {},
	"div": {}, "dl": {}, "dt": {}, "fieldset": {}, "figcaption": {},
	"figure": {}, "footer": {}, "form": {}, "frame": {}, "frameset": {},
	"h1": {}, "h2": {}, "h3": {}, "h4": {}, "h5": {}, "h6": {},
	"head": {}, "header": {}, "hr": {}, "html": {}, "iframe": {},
	"legend": {}, "li": {}, "link": {}, "main": {}, "menu": {},
	"menuitem": {}, "nav": {}, "noframes": {}, "ol": {}, "optgroup": {},
	"option": {}, "p": {}, "param": {}, "search": {}, "section": {},
	"summary": {}, "table": {}, "tbody": {}, "td": {}, "tfoot": {},
	"th": {}, "thead": {}, "title": {}, "tr": {}, "track": {}, "ul": {},
}

// ParseHTMLBlock tries the seven kinds in priority order with the default
// parser.
func ParseHTMLBlock(c Cursor) (HTMLBlock, Cursor, bool) {
	return defaultParser.ParseHTMLBlock(c)
}

// ParseHTMLBlock tries the seven HTML block matchers in CommonMark priority
// order and returns the first match.
func (p *Parser) ParseHTMLBlock(c Cursor) (HTMLBlock, Cursor, bool) {
	return p.parseHTMLBlock(c, false)
}

// parseHTMLBlock skips kind 7 when the block would interrupt a paragraph.
func (p *Parser) parseHTMLBlock(c Cursor, interrupting bool) (HTMLBlock, Cursor, bool) {
	if _, ok := htmlLineStart(c); !ok {
		p.noMatch("html-block", c)
		return HTMLBlock{}, c, false
	}
	matchers := [...]func(Cursor) (HTMLBlock, Cursor, bool){
		p.ParseHTMLRawText,
		p.ParseHTMLComment,
		p.ParseHTMLProcessingInstruction,
		p.ParseHTMLDeclaration,
		p.ParseHTMLCDATA,
		p.ParseHTMLBlockTag,
		p.ParseHTMLCompleteTag,
	}
	for i, match := range matchers {
		if interrupting && !HTMLKind(i+1).CanInterruptParagraph() {
			break
		}
		if blk, next, ok := match(c); ok {
			return blk, next, true
		}
	}
	return HTMLBlock{}, c, false
}

// htmlLineStart returns the line under c from its '<' on, enforcing at most
// three leading spaces.
func htmlLineStart(c Cursor) ([]byte, bool) {
	if c.EOF() || !c.AtLineStart() {
		return nil, false
	}
	rest, ok := blockStart(c.Text())
	if !ok || len(rest) == 0 || rest[0] != '<' {
		return nil, false
	}
	return rest, true
}

// endAtLineContaining returns the offset just past the line that contains
// closer, searching the first line from firstFrom (relative to the line
// start) and later lines in full. found is false when EOF comes first; end is
// then len(src).
func endAtLineContaining(c Cursor, firstFrom int, closer func(line []byte) bool) (end int, found bool) {
	src := c.Src
	off := c.Offset
	line, next := lineAt(src, off)
	if closer(line[firstFrom:]) {
		return next, true
	}
	for off = next; off < len(src); off = next {
		line, next = lineAt(src, off)
		if closer(line) {
			return next, true
		}
	}
	return len(src), false
}

// endAtBlankLine returns the start of the first blank line after c's line,
// or len(src).
func endAtBlankLine(c Cursor) int {
	src := c.Src
	_, next := lineAt(src, c.Offset)
	for off := next; off < len(src); {
		line, nx := lineAt(src, off)
		if isBlank(line) {
			return off
		}
		off = nx
	}
	return len(src)
}

func (p *Parser) htmlResult(name string, c Cursor, kind HTMLKind, end int, ok bool) (HTMLBlock, Cursor, bool) {
	if !ok {
		p.noMatch(name, c)
		return HTMLBlock{}, c, false
	}
	return HTMLBlock{Kind: kind, Span: Span{Start: c.Offset, End: end}}, c.AdvanceTo(end), true
}

// ParseHTMLRawText matches kind 1 with the default parser.
func ParseHTMLRawText(c Cursor) (HTMLBlock, Cursor, bool) { return defaultParser.ParseHTMLRawText(c) }

// ParseHTMLRawText matches a <script>, <pre>, <style> or <textarea> block. It
// is consumed verbatim, blank lines included, through the line holding a
// closing tag of any of the four names, or to EOF.
func (p *Parser) ParseHTMLRawText(c Cursor) (HTMLBlock, Cursor, bool) {
	rest, ok := htmlLineStart(c)
	if !ok {
		return p.htmlResult("html-raw-text", c, HTMLRawText, 0, false)
	}
	nameEnd := 0
	for _, tag := range rawTextTags {
		if n := matchTagPrefix(rest[1:], tag); n > 0 {
			after := rest[1+n:]
			if len(after) == 0 || isSpace(after[0]) || after[0] == '>' || after[0] == '\r' {
				nameEnd = 1 + n
				break
			}
		}
	}
	if nameEnd == 0 {
		return p.htmlResult("html-raw-text", c, HTMLRawText, 0, false)
	}
	from := len(c.Text()) - len(rest) + nameEnd
	end, _ := endAtLineContaining(c, from, containsRawTextCloser)
	return p.htmlResult("html-raw-text", c, HTMLRawText, end, true)
}

func containsRawTextCloser(line []byte) bool {
	lower := bytes.ToLower(line)
	for _, closer := range rawTextClosers {
		if bytes.Contains(lower, closer) {
			return true
		}
	}
	return false
}

// ParseHTMLComment matches kind 2 with the default parser.
func ParseHTMLComment(c Cursor) (HTMLBlock, Cursor, bool) { return defaultParser.ParseHTMLComment(c) }

// ParseHTMLComment matches a comment block. The comment must be closed, and
// "-->" must be followed by nothing but whitespace up to the end of its line.
// An unterminated comment does not match.
func (p *Parser) ParseHTMLComment(c Cursor) (HTMLBlock, Cursor, bool) {
	rest, ok := htmlLineStart(c)
	if !ok || !bytes.HasPrefix(rest, commentOpen) {
		return p.htmlResult("html-comment", c, HTMLComment, 0, false)
	}
	from := len(c.Text()) - len(rest) + len(commentOpen)
	// "<!-->" and "<!--->" are complete, empty comments.
	line := c.Text()
	switch {
	case bytes.HasPrefix(line[from:], []byte(">")):
		from -= 2
	case bytes.HasPrefix(line[from:], []byte("->")):
		from--
	}
	valid := true
	end, found := endAtLineContaining(c, from, func(l []byte) bool {
		i := bytes.Index(l, commentClose)
		if i < 0 {
			return false
		}
		valid = isBlank(l[i+len(commentClose):])
		return true
	})
	return p.htmlResult("html-comment", c, HTMLComment, end, found && valid)
}

// ParseHTMLProcessingInstruction matches kind 3 with the default parser.
func ParseHTMLProcessingInstruction(c Cursor) (HTMLBlock, Cursor, bool) {
	return defaultParser.ParseHTMLProcessingInstruction(c)
}

// ParseHTMLProcessingInstruction matches "<?" through the line holding "?>",
// or to EOF.
func (p *Parser) ParseHTMLProcessingInstruction(c Cursor) (HTMLBlock, Cursor, bool) {
	rest, ok := htmlLineStart(c)
	if !ok || !bytes.HasPrefix(rest, piOpen) {
		return p.htmlResult("html-processing-instruction", c, HTMLProcessingInstruction, 0, false)
	}
	from := len(c.Text()) - len(rest) + len(piOpen)
	end, _ := endAtLineContaining(c, from, func(l []byte) bool { return bytes.Contains(l, piClose) })
	return p.htmlResult("html-processing-instruction", c, HTMLProcessingInstruction, end, true)
}

// ParseHTMLDeclaration matches kind 4 with the default parser.
func ParseHTMLDeclaration(c Cursor) (HTMLBlock, Cursor, bool) {
	return defaultParser.ParseHTMLDeclaration(c)
}

// ParseHTMLDeclaration matches "<!" followed by an ASCII letter, through the
// line holding ">", or to EOF.
func (p *Parser) ParseHTMLDeclaration(c Cursor) (HTMLBlock, Cursor, bool) {
	rest, ok := htmlLineStart(c)
	if !ok || len(rest) < 3 || rest[1] != '!' || !isASCIILetter(rest[2]) {
		return p.htmlResult("html-declaration", c, HTMLDeclaration, 0, false)
	}
	from := len(c.Text()) - len(rest) + 2
	end, _ := endAtLineContaining(c, from, func(l []byte) bool { return bytes.IndexByte(l, '>') >= 0 })
	return p.htmlResult("html-declaration", c, HTMLDeclaration, end, true)
}

// ParseHTMLCDATA matches kind 5 with the default parser.
func ParseHTMLCDATA(c Cursor) (HTMLBlock, Cursor, bool) { return defaultParser.ParseHTMLCDATA(c) }

// ParseHTMLCDATA matches "<![CDATA[" through the line holding "]]>", or to
// EOF.
func (p *Parser) ParseHTMLCDATA(c Cursor) (HTMLBlock, Cursor, bool) {
	rest, ok := htmlLineStart(c)
	if !ok || !bytes.HasPrefix(rest, cdataOpen) {
		return p.htmlResult("html-cdata", c, HTMLCDATA, 0, false)
	}
	from := len(c.Text()) - len(rest) + len(cdataOpen)
	end, _ := endAtLineContaining(c, from, func(l []byte) bool { return bytes.Contains(l, cdataClose) })
	return p.htmlResult("html-cdata", c, HTMLCDATA, end, true)
}

// ParseHTMLBlockTag matches kind 6 with the default parser.
func ParseHTMLBlockTag(c Cursor) (HTMLBlock, Cursor, bool) { return defaultParser.ParseHTMLBlockTag(c) }

// ParseHTMLBlockTag matches an open or close tag with a known block-level
// name, followed by whitespace, ">", "/>" or the end of the line. The block
// runs to the next blank line.
//
// Unless the parser is strict, an open tag whose matching close tag also sits
// on the first line ends the block with that line, so prose right after a
// one-line element is not swallowed. CommonMark would keep consuming.
func (p *Parser) ParseHTMLBlockTag(c Cursor) (HTMLBlock, Cursor, bool) {
	const name = "html-block-tag"
	rest, ok := htmlLineStart(c)
	if !ok {
		return p.htmlResult(name, c, HTMLBlockTag, 0, false)
	}
	i := 1
	closing := false
	if i < len(rest) && rest[i] == '/' {
		closing = true
		i++
	}
	tagStart := i
	for i < len(rest) && isTagNameByte(rest[i], i == tagStart) {
		i++
	}
	if i == tagStart {
		return p.htmlResult(name, c, HTMLBlockTag, 0, false)
	}
	tag := string(bytes.ToLower(rest[tagStart:i]))
	if _, known := blockTagNames[tag]; !known {
		return p.htmlResult(name, c, HTMLBlockTag, 0, false)
	}
	after := rest[i:]
	switch {
	case len(after) == 0, isSpace(after[0]), after[0] == '>', after[0] == '\r':
	case bytes.HasPrefix(after, []byte("/>")):
	default:
		return p.htmlResult(name, c, HTMLBlockTag, 0, false)
	}
	if !closing && !p.cfg.strictHTML {
		closeTag := []byte("</" + tag + ">")
		if bytes.Contains(bytes.ToLower(after), closeTag) {
			_, next := lineAt(c.Src, c.Offset)
			blk, nc, ok := p.htmlResult(name, c, HTMLBlockTag, next, true)
			blk.ClosedOnOpenLine = true
			return blk, nc, ok
		}
	}
	return p.htmlResult(name, c, HTMLBlockTag, endAtBlankLine(c), true)
}

// ParseHTMLCompleteTag matches kind 7 with the default parser.
func ParseHTMLCompleteTag(c Cursor) (HTMLBlock, Cursor, bool) {
	return defaultParser.ParseHTMLCompleteTag(c)
}

// ParseHTMLCompleteTag matches a single well-formed open or close tag with any
// name other than the raw-text names, alone on its line. The block runs to the
// next blank line. Malformed attributes reject the line.
func (p *Parser) ParseHTMLCompleteTag(c Cursor) (HTMLBlock, Cursor, bool) {
	const name = "html-complete-tag"
	rest, ok := htmlLineStart(c)
	if !ok {
		return p.htmlResult(name, c, HTMLCompleteTag, 0, false)
	}
	n, tag, ok := scanCompleteTag(rest)
	if !ok || !isBlank(rest[n:]) {
		return p.htmlResult(name, c, HTMLCompleteTag, 0, false)
	}
	for _, raw := range rawTextTags {
		if tag == raw {
			return p.htmlResult(name, c, HTMLCompleteTag, 0, false)
		}
	}
	return p.htmlResult(name, c, HTMLCompleteTag, endAtBlankLine(c), true)
}

// scanCompleteTag scans an open tag "<name attr...>" or "<name .../>" or a
// close tag "</name>" at the start of s. It returns the bytes consumed and
// the lower-cased tag name.
func scanCompleteTag(s []byte) (int, string, bool) {
	if len(s) < 3 || s[0] != '<' {
		return 0, "", false
	}
	i := 1
	closing := s[i] == '/'
	if closing {
		i++
	}
	start := i
	for i < len(s) && isTagNameByte(s[i], i == start) {
		i++
	}
	if i == start {
		return 0, "", false
	}
	tag := string(bytes.ToLower(s[start:i]))
	if closing {
		for i < len(s) && isSpace(s[i]) {
			i++
		}
		if i < len(s) && s[i] == '>' {
			return i + 1, tag, true
		}
		return 0, "", false
	}
	for {
		ws := i
		for i < len(s) && isSpace(s[i]) {
			i++
		}
		if i >= len(s) {
			return 0, "", false
		}
		switch {
		case s[i] == '>':
			return i + 1, tag, true
		case s[i] == '/':
			if i+1 < len(s) && s[i+1] == '>' {
				return i + 2, tag, true
			}
			return 0, "", false
		}
		if i == ws {
			// Attributes must be separated by whitespace.
			return 0, "", false
		}
		n, ok := scanAttribute(s[i:])
		if !ok {
			return 0, "", false
		}
		i += n
	}
}

// scanAttribute scans one attribute: a name, optionally followed by "=" and
// an unquoted, single-quoted or double-quoted value.
func scanAttribute(s []byte) (int, bool) {
	if len(s) == 0 || !isAttrNameStart(s[0]) {
		return 0, false
	}
	i := 1
	for i < len(s) && isAttrNameByte(s[i]) {
		i++
	}
	j := i
	for j < len(s) && isSpace(s[j]) {
		j++
	}
	if j >= len(s) || s[j] != '=' {
		return i, true
	}
	j++
	for j < len(s) && isSpace(s[j]) {
		j++
	}
	if j >= len(s) {
		return 0, false
	}
	switch q := s[j]; q {
	case '"', '\'':
		k := bytes.IndexByte(s[j+1:], q)
		if k < 0 {
			return 0, false
		}
		return j + 1 + k + 1, true
	default:
		k := j
		for k < len(s) && !isSpace(s[k]) && bytes.IndexByte([]byte("\"'=<>`"), s[k]) < 0 {
			k++
		}
		if k == j {
			return 0, false
		}
		return k, true
	}
}

// matchTagPrefix reports the length of tag when s starts with it, ignoring
// ASCII case.
func matchTagPrefix(s []byte, tag string) int {
	if len(s) < len(tag) {
		return 0
	}
	if !bytes.EqualFold(s[:len(tag)], []byte(tag)) {
		return 0
	}
	return len(tag)
}

func isASCIILetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isTagNameByte(b byte, first bool) bool {
	if first {
		return isASCIILetter(b)
	}
	return isASCIILetter(b) || isDigit(b) || b == '-'
}

func isAttrNameStart(b byte) bool {
	return isASCIILetter(b) || b == '_' || b == ':'
}

func isAttrNameByte(b byte) bool {
	return isAttrNameStart(b) || isDigit(b) || b == '.' || b == '-'
}
