package mdblock

import (
	"bytes"
	"strings"
	"time"
)

// Parse parses src with the default parser.
func Parse(src []byte) *Document {
	return defaultParser.Parse(src)
}

// Parse builds the block tree of src. Reference links are left unresolved:
// call CollectDefinitions and then ResolveReferences on the result.
//
// Recognizers are tried on each line in a fixed order: blank line, indented
// code, fenced code, ATX heading, thematic break, block quote, HTML block,
// list and finally paragraph. List item and block quote content is parsed
// again as its own document, one nesting level deeper.
func (p *Parser) Parse(src []byte) *Document {
	started := time.Now()
	doc := &Document{
		Root:   &Node{Kind: DocumentNode, Span: Span{End: len(src)}},
		Source: src,
		parser: p,
	}
	c := NewCursor(src)
	if p.cfg.frontMatter {
		if fm, ok := SplitFrontMatter(src); ok {
			doc.FrontMatter = fm
			c = c.AdvanceTo(fm.End)
		}
	}

	sections := 1
	if p.cfg.cache == nil {
		doc.Root.Children = p.parseBlocks(c, 0, true)
	} else {
		spans := SplitSections(src[c.Offset:])
		sections = len(spans)
		base := c.Offset
		for _, sec := range spans {
			sec = sec.Shift(base)
			c = c.AdvanceTo(sec.Start)
			doc.Root.Children = append(doc.Root.Children, p.parseSection(c, sec)...)
		}
	}
	p.cfg.recorder.ObserveParse(time.Since(started), sections)
	return doc
}

// parseSection parses one independently parseable section, going through the
// section cache. Cached trees are stored with spans relative to the section.
func (p *Parser) parseSection(c Cursor, sec Span) []*Node {
	body := sec.Bytes(c.Src)
	key := sectionKey(body)
	if nodes, ok := p.cfg.cache.Get(key); ok {
		p.cfg.recorder.ObserveCache(true)
		shiftSpans(nodes, sec.Start)
		return nodes
	}
	p.cfg.recorder.ObserveCache(false)
	bounded := c
	bounded.Src = c.Src[:sec.End]
	nodes := p.parseBlocks(bounded, 0, true)
	shiftSpans(nodes, -sec.Start)
	if evicted := p.cfg.cache.Put(key, nodes); evicted {
		p.cfg.recorder.IncCacheEviction()
	}
	shiftSpans(nodes, sec.Start)
	return nodes
}

func shiftSpans(nodes []*Node, delta int) {
	for _, n := range nodes {
		n.Span = n.Span.Shift(delta)
	}
}

// parseBlocks parses blocks from c to the end of its source. Only top-level
// blocks keep their spans.
func (p *Parser) parseBlocks(c Cursor, depth int, top bool) []*Node {
	var out []*Node
	for !c.EOF() {
		if isBlank(c.Text()) {
			c = c.NextLine()
			continue
		}
		nodes, next := p.parseBlock(c, depth)
		if next.Offset <= c.Offset {
			next = c.NextLine()
		}
		if !top {
			for _, n := range nodes {
				n.Span = Span{}
			}
		}
		out = append(out, nodes...)
		c = next
	}
	return out
}

func (p *Parser) parseBlock(c Cursor, depth int) ([]*Node, Cursor) {
	line := c.Text()
	if cols, _ := LeadingIndent(line); cols >= 4 {
		return one(p.parseIndentedCode(c))
	}
	if f, ok := FenceOpen(line); ok {
		return one(p.parseFencedCode(c, f))
	}
	if level, ok := ATXHeadingLevel(line); ok {
		return one(p.parseATXHeading(c, level))
	}
	if IsThematicBreak(line) {
		next := c.NextLine()
		return []*Node{{Kind: ThematicBreakNode, Span: Span{Start: c.Offset, End: next.Offset}}}, next
	}
	if _, ok := quoteContent(line); ok {
		return one(p.parseBlockQuote(c, depth))
	}
	if rest, _ := blockStart(line); len(rest) > 0 && rest[0] == '<' {
		if blk, next, ok := p.ParseHTMLBlock(c); ok {
			return []*Node{{
				Kind:             HTMLBlockNode,
				Span:             blk.Span,
				HTML:             blk.Kind,
				Literal:          string(blk.Raw(c.Src)),
				ClosedOnOpenLine: blk.ClosedOnOpenLine,
			}}, next
		}
	}
	if _, ok := detectMarker(line); ok {
		if list, next, ok := p.ParseList(c); ok {
			return []*Node{p.listNode(list, c, depth)}, next
		}
	}
	return p.parseParagraph(c)
}

func one(n *Node, c Cursor) ([]*Node, Cursor) {
	return []*Node{n}, c
}

// parseContainer parses the dedented content of a list item or block quote.
// Past the nesting ceiling the content is kept as a single paragraph.
func (p *Parser) parseContainer(buf []byte, depth int, at Cursor) []*Node {
	if depth > p.cfg.maxNestingDepth {
		p.ceilingHit("nesting-depth", p.cfg.maxNestingDepth, at)
		text := strings.TrimSpace(string(buf))
		if text == "" {
			return nil
		}
		return []*Node{{Kind: ParagraphNode, Literal: text, Children: []*Node{NewText(text)}}}
	}
	return p.parseBlocks(NewCursor(buf), depth, false)
}

func (p *Parser) parseIndentedCode(c Cursor) (*Node, Cursor) {
	src := c.Src
	var lines [][]byte
	off, end, kept := c.Offset, c.Offset, 0
	for off < len(src) {
		ln, nx := lineAt(src, off)
		if isBlank(ln) {
			lines = append(lines, stripColumns(ln, 0, 4))
			off = nx
			continue
		}
		if cols, _ := LeadingIndent(ln); cols < 4 {
			break
		}
		lines = append(lines, stripColumns(ln, 0, 4))
		off, end = nx, nx
		kept = len(lines)
	}
	// Trailing blank lines are not part of the block.
	lines = lines[:kept]
	return &Node{
		Kind:    CodeBlockNode,
		Span:    Span{Start: c.Offset, End: end},
		Literal: string(joinLines(lines)),
	}, c.AdvanceTo(end)
}

func (p *Parser) parseFencedCode(c Cursor, f Fence) (*Node, Cursor) {
	src := c.Src
	_, off := lineAt(src, c.Offset)
	var lines [][]byte
	for off < len(src) {
		ln, nx := lineAt(src, off)
		off = nx
		if f.closes(ln) {
			break
		}
		lines = append(lines, stripColumns(ln, 0, f.Indent))
	}
	return &Node{
		Kind:    FencedCodeNode,
		Span:    Span{Start: c.Offset, End: off},
		Info:    unescape(f.Info),
		Literal: string(joinLines(lines)),
	}, c.AdvanceTo(off)
}

func (p *Parser) parseATXHeading(c Cursor, level int) (*Node, Cursor) {
	rest, _ := blockStart(c.Text())
	text := bytes.TrimSpace(rest[level:])
	// Optional closing sequence: a run of '#' preceded by whitespace.
	j := len(text)
	for j > 0 && text[j-1] == '#' {
		j--
	}
	switch {
	case j == 0:
		text = nil
	case j < len(text) && isSpace(text[j-1]):
		text = trimRightSpace(text[:j])
	}
	next := c.NextLine()
	s := string(text)
	return &Node{
		Kind:     HeadingNode,
		Span:     Span{Start: c.Offset, End: next.Offset},
		Level:    level,
		Literal:  s,
		Children: p.cfg.inline.Scan(s),
	}, next
}

// quoteContent strips a block quote marker and one optional following
// column from line.
func quoteContent(line []byte) ([]byte, bool) {
	cols, n := LeadingIndent(line)
	if cols > 3 || n >= len(line) || line[n] != '>' {
		return nil, false
	}
	return stripColumns(line[n+1:], cols+1, 1), true
}

// parseBlockQuote collects the quote's lines, including lazy paragraph
// continuations, and parses their content one level deeper.
func (p *Parser) parseBlockQuote(c Cursor, depth int) (*Node, Cursor) {
	var (
		lines   [][]byte
		cur     = c
		lazyOK  bool
		inFence bool
		fence   Fence
	)
	for !cur.EOF() {
		ln := cur.Text()
		if isBlank(ln) {
			break
		}
		if content, ok := quoteContent(ln); ok {
			lines = append(lines, content)
			switch {
			case inFence:
				inFence = !fence.closes(content)
				lazyOK = false
			default:
				if f, ok := FenceOpen(content); ok {
					inFence, fence = true, f
					lazyOK = false
				} else {
					lazyOK = paragraphLike(content)
				}
			}
			cur = cur.NextLine()
			continue
		}
		if !lazyOK || p.interruptsParagraph(cur) {
			break
		}
		lines = append(lines, trimLeftSpace(ln))
		cur = cur.NextLine()
	}
	return &Node{
		Kind:     BlockQuoteNode,
		Span:     Span{Start: c.Offset, End: cur.Offset},
		Children: p.parseContainer(joinLines(lines), depth+1, c),
	}, cur
}

func (p *Parser) listNode(list List, c Cursor, depth int) *Node {
	first := list.Items[0].Marker
	n := &Node{
		Kind: ListNode,
		Span: list.Span,
		List: &ListInfo{
			Kind:      list.Kind,
			Bullet:    first.Bullet,
			Delimiter: first.Delimiter,
			Start:     list.Start(),
			Tight:     list.Tight(),
		},
		Children: make([]*Node, 0, len(list.Items)),
	}
	for _, it := range list.Items {
		n.Children = append(n.Children, &Node{
			Kind: ListItemNode,
			Item: &ItemInfo{
				Marker:           it.Marker,
				ContentIndent:    it.ContentIndent,
				HasInternalBlank: it.HasInternalBlank,
				FollowedByBlank:  it.FollowedByBlank,
			},
			Children: p.parseContainer(joinLines(it.Lines(c.Src)), depth+1, c.AdvanceTo(it.Content.Start)),
		})
	}
	return n
}

// interruptsParagraph reports whether the line under c ends an open
// paragraph instead of continuing it.
func (p *Parser) interruptsParagraph(c Cursor) bool {
	line := c.Text()
	if isBlank(line) {
		return true
	}
	rest, ok := blockStart(line)
	if !ok {
		return false
	}
	if IsThematicBreak(line) || IsATXHeading(line) {
		return true
	}
	if _, ok := FenceOpen(line); ok {
		return true
	}
	if rest[0] == '>' {
		return true
	}
	if rest[0] == '<' {
		if _, _, ok := p.parseHTMLBlock(c, true); ok {
			return true
		}
	}
	if m, ok := detectMarker(line); ok && !m.Blank {
		return m.Marker.Kind == BulletMarker || m.Marker.Number == 1
	}
	return false
}

// setextLevel reports whether line underlines a setext heading.
func setextLevel(line []byte) (int, bool) {
	rest, ok := blockStart(line)
	if !ok || len(rest) == 0 || (rest[0] != '=' && rest[0] != '-') {
		return 0, false
	}
	ch := rest[0]
	i := 0
	for i < len(rest) && rest[i] == ch {
		i++
	}
	if !isBlank(rest[i:]) {
		return 0, false
	}
	if ch == '=' {
		return 1, true
	}
	return 2, true
}

// parseParagraph collects paragraph lines up to a blank line, an
// interrupting block or a setext underline. Link reference definitions at
// the start become sibling nodes ahead of the paragraph.
func (p *Parser) parseParagraph(c Cursor) ([]*Node, Cursor) {
	var (
		lines     []string
		starts    []int
		cur       = c
		level     int
		underline Span
	)
	for !cur.EOF() {
		ln := cur.Text()
		if isBlank(ln) {
			break
		}
		if len(lines) > 0 {
			if l, ok := setextLevel(ln); ok {
				level = l
				next := cur.NextLine()
				underline = Span{Start: cur.Offset, End: next.Offset}
				cur = next
				break
			}
			if p.interruptsParagraph(cur) {
				break
			}
		}
		starts = append(starts, cur.Offset)
		lines = append(lines, string(trimLeftSpace(ln)))
		cur = cur.NextLine()
	}
	bodyEnd := cur.Offset
	if level > 0 {
		bodyEnd = underline.Start
	}

	defs, rest := parseReferenceDefinitions(strings.Join(lines, "\n"))
	out := make([]*Node, 0, len(defs)+1)
	used := 0
	for _, d := range defs {
		start := starts[used]
		used += d.lines
		end := bodyEnd
		if used < len(starts) {
			end = starts[used]
		}
		out = append(out, &Node{
			Kind: ReferenceDefinitionNode,
			Span: Span{Start: start, End: end},
			Ref: &RefInfo{
				Label:       d.def.Label,
				Destination: d.def.Destination,
				Title:       d.def.Title,
			},
		})
	}
	bodyStart := bodyEnd
	if used < len(starts) {
		bodyStart = starts[used]
	}
	rest = strings.TrimRight(rest, " \t\r")

	switch {
	case rest != "" && level > 0:
		out = append(out, &Node{
			Kind:     HeadingNode,
			Span:     Span{Start: bodyStart, End: cur.Offset},
			Level:    level,
			Literal:  rest,
			Children: p.cfg.inline.Scan(rest),
		})
	case rest != "":
		out = append(out, &Node{
			Kind:     ParagraphNode,
			Span:     Span{Start: bodyStart, End: bodyEnd},
			Literal:  rest,
			Children: p.cfg.inline.Scan(rest),
		})
	case level > 0:
		// Only definitions above the underline: it reads as text.
		text := string(bytes.TrimSpace(underline.Bytes(c.Src)))
		out = append(out, &Node{
			Kind:     ParagraphNode,
			Span:     underline,
			Literal:  text,
			Children: p.cfg.inline.Scan(text),
		})
	}
	return out, cur
}

func joinLines(lines [][]byte) []byte {
	n := 0
	for _, ln := range lines {
		n += len(ln) + 1
	}
	buf := make([]byte, 0, n)
	for _, ln := range lines {
		buf = append(buf, ln...)
		buf = append(buf, '\n')
	}
	return buf
}
