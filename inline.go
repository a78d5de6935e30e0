package mdblock

import "strings"

// InlineScanner turns the raw inline text of a paragraph or heading into
// child nodes. Full inline parsing belongs to a downstream collaborator; the
// block engine only needs reference-style links split out.
type InlineScanner interface {
	Scan(text string) []*Node
}

// maxLabelLen is the longest link label CommonMark accepts.
const maxLabelLen = 999

// ReferenceScanner recognizes reference links and images in the full
// ([text][label]), collapsed ([label][]) and shortcut ([label]) forms.
// Everything else, including code spans, autolinks and inline links
// [text](url), stays in Text nodes untouched.
type ReferenceScanner struct{}

// Scan implements InlineScanner.
func (ReferenceScanner) Scan(text string) []*Node {
	var (
		out  []*Node
		flat int // start of the pending text run
	)
	flush := func(to int) {
		if to > flat {
			out = append(out, NewText(text[flat:to]))
		}
	}
	for i := 0; i < len(text); {
		switch text[i] {
		case '\\':
			i += 2
			continue
		case '`':
			i = skipCodeSpan(text, i)
			continue
		case '<':
			i = skipAutolink(text, i)
			continue
		case '!', '[':
		default:
			i++
			continue
		}
		start := i
		image := text[i] == '!'
		open := i
		if image {
			if i+1 >= len(text) || text[i+1] != '[' {
				i++
				continue
			}
			open = i + 1
		}
		node, end, ok := scanReference(text, open, image)
		if !ok {
			if end > open {
				// Inline link: leave it to the inline parser.
				i = end
				continue
			}
			i = open + 1
			continue
		}
		flush(start)
		out = append(out, node)
		i = end
		flat = end
	}
	flush(len(text))
	return out
}

// scanReference scans a reference starting at the '[' at open. When the
// brackets form an inline link instead it returns ok == false and the end of
// the link so the caller can skip it.
func scanReference(text string, open int, image bool) (*Node, int, bool) {
	closeIdx := matchBracket(text, open)
	if closeIdx < 0 {
		return nil, open, false
	}
	inner := text[open+1 : closeIdx]
	after := closeIdx + 1
	if after < len(text) && text[after] == '(' {
		if end := matchParen(text, after); end > 0 {
			return nil, end, false
		}
	}
	kind := ReferenceLinkNode
	if image {
		kind = ReferenceImageNode
	}
	if after < len(text) && text[after] == '[' {
		labelEnd := strings.IndexByte(text[after+1:], ']')
		if labelEnd >= 0 {
			label := text[after+1 : after+1+labelEnd]
			if label == "" {
				if !validLabel(inner) {
					return nil, open, false
				}
				return &Node{Kind: kind, Ref: &RefInfo{Label: inner, Text: inner, Form: RefCollapsed}}, after + 2, true
			}
			if validLabel(label) {
				return &Node{Kind: kind, Ref: &RefInfo{Label: label, Text: inner, Form: RefFull}}, after + 1 + labelEnd + 1, true
			}
		}
	}
	if !validLabel(inner) {
		return nil, open, false
	}
	return &Node{Kind: kind, Ref: &RefInfo{Label: inner, Text: inner, Form: RefShortcut}}, after, true
}

// validLabel reports whether s can be a link label: non-blank, at most 999
// bytes, no unescaped brackets.
func validLabel(s string) bool {
	if len(s) > maxLabelLen || isBlankString(s) {
		return false
	}
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '[', ']':
			return false
		}
	}
	return true
}

func isBlankString(s string) bool {
	return strings.TrimSpace(s) == ""
}

// matchBracket returns the index of the ']' matching the '[' at open, or -1.
// Escapes and code spans are skipped.
func matchBracket(text string, open int) int {
	depth := 0
	for i := open; i < len(text); {
		switch text[i] {
		case '\\':
			i += 2
			continue
		case '`':
			i = skipCodeSpan(text, i)
			continue
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return i
			}
		}
		i++
	}
	return -1
}

// matchParen returns the index just past the ')' matching the '(' at open,
// or -1.
func matchParen(text string, open int) int {
	depth := 0
	for i := open; i < len(text); i++ {
		switch text[i] {
		case '\\':
			i++
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i + 1
			}
		}
	}
	return -1
}

// skipCodeSpan returns the index just past the code span opened by the
// backtick run at i, or just past the run when it is never closed.
func skipCodeSpan(text string, i int) int {
	run := 0
	for i+run < len(text) && text[i+run] == '`' {
		run++
	}
	marker := text[i : i+run]
	for j := i + run; j < len(text); {
		k := strings.Index(text[j:], marker)
		if k < 0 {
			break
		}
		k += j
		end := k + run
		if end < len(text) && text[end] == '`' {
			// Longer run; not a match.
			for end < len(text) && text[end] == '`' {
				end++
			}
			j = end
			continue
		}
		return end
	}
	return i + run
}

// skipAutolink returns the index just past an autolink "<scheme:...>" or
// "<user@host>" starting at i, or i+1.
func skipAutolink(text string, i int) int {
	end := strings.IndexByte(text[i:], '>')
	if end < 0 {
		return i + 1
	}
	body := text[i+1 : i+end]
	if body == "" || strings.ContainsAny(body, " \t\n<") {
		return i + 1
	}
	if strings.Contains(body, ":") || strings.Contains(body, "@") {
		return i + end + 1
	}
	return i + 1
}
