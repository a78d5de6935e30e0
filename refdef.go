package mdblock

import "strings"

// parsedDefinition is a definition with the number of source lines it took.
type parsedDefinition struct {
	def   ReferenceDefinition
	lines int
}

// parseReferenceDefinitions consumes link reference definitions from the
// start of a paragraph's text and returns them with the remaining text.
// Definitions cannot interrupt a paragraph, so only a leading run counts.
func parseReferenceDefinitions(text string) ([]parsedDefinition, string) {
	var defs []parsedDefinition
	for text != "" {
		def, n, ok := parseReferenceDefinition(text)
		if !ok {
			break
		}
		lines := strings.Count(text[:n], "\n")
		if n > 0 && text[n-1] != '\n' {
			lines++
		}
		defs = append(defs, parsedDefinition{def: def, lines: lines})
		text = text[n:]
	}
	return defs, text
}

// parseReferenceDefinition parses `[label]: destination "title"` at the start
// of s. The destination may follow on the next line, and so may the title.
// It returns the bytes consumed including the final line terminator.
func parseReferenceDefinition(s string) (ReferenceDefinition, int, bool) {
	i := skipIndent(s, 0)
	if i >= len(s) || s[i] != '[' {
		return ReferenceDefinition{}, 0, false
	}
	labelEnd := scanLabel(s, i)
	if labelEnd < 0 || labelEnd+1 >= len(s) || s[labelEnd+1] != ':' {
		return ReferenceDefinition{}, 0, false
	}
	label := s[i+1 : labelEnd]
	if !validLabel(label) {
		return ReferenceDefinition{}, 0, false
	}
	i = labelEnd + 2
	i, _ = skipSpaceAndOneNewline(s, i)
	dest, i, ok := scanDestination(s, i)
	if !ok {
		return ReferenceDefinition{}, 0, false
	}
	def := ReferenceDefinition{Label: label, Destination: unescape(dest)}

	// Without a title the definition ends here.
	destEnd := i
	if end, ok := restOfLineBlank(s, destEnd); ok {
		withTitle, n, titled := parseTitleAfter(s, end, def)
		if titled {
			return withTitle, n, true
		}
		return def, end, true
	}
	withTitle, n, titled := parseTitleAfter(s, destEnd, def)
	if !titled {
		return ReferenceDefinition{}, 0, false
	}
	return withTitle, n, true
}

// parseTitleAfter tries a title starting at i, preceded by whitespace. The
// title must be followed by nothing but whitespace on its line.
func parseTitleAfter(s string, i int, def ReferenceDefinition) (ReferenceDefinition, int, bool) {
	j := i
	for j < len(s) && (s[j] == ' ' || s[j] == '\t') {
		j++
	}
	if j == i && i > 0 && s[i-1] != '\n' {
		return def, 0, false
	}
	title, k, ok := scanTitle(s, j)
	if !ok {
		return def, 0, false
	}
	end, ok := restOfLineBlank(s, k)
	if !ok {
		return def, 0, false
	}
	def.Title = unescape(title)
	return def, end, true
}

func skipIndent(s string, i int) int {
	n := 0
	for i < len(s) && s[i] == ' ' && n < 3 {
		i++
		n++
	}
	return i
}

// scanLabel returns the index of the ']' closing the label opened at i, or -1.
func scanLabel(s string, i int) int {
	for j := i + 1; j < len(s) && j-i <= maxLabelLen+1; j++ {
		switch s[j] {
		case '\\':
			j++
		case '[':
			return -1
		case ']':
			return j
		}
	}
	return -1
}

func skipSpaceAndOneNewline(s string, i int) (int, bool) {
	newline := false
	for i < len(s) {
		switch s[i] {
		case ' ', '\t':
		case '\n':
			if newline {
				return i, newline
			}
			newline = true
		default:
			return i, newline
		}
		i++
	}
	return i, newline
}

// scanDestination scans a link destination: either <...> without line breaks
// or a non-empty run without spaces or control characters and with balanced
// parentheses.
func scanDestination(s string, i int) (string, int, bool) {
	if i >= len(s) {
		return "", i, false
	}
	if s[i] == '<' {
		for j := i + 1; j < len(s); j++ {
			switch s[j] {
			case '\\':
				j++
			case '\n', '<':
				return "", i, false
			case '>':
				return s[i+1 : j], j + 1, true
			}
		}
		return "", i, false
	}
	depth := 0
	j := i
loop:
	for ; j < len(s); j++ {
		c := s[j]
		switch {
		case c == '\\' && j+1 < len(s):
			j++
		case c == '(':
			depth++
		case c == ')':
			if depth == 0 {
				break loop
			}
			depth--
		case c <= ' ' || c == 0x7f:
			break loop
		}
	}
	if j == i || depth != 0 {
		return "", i, false
	}
	return s[i:j], j, true
}

// scanTitle scans a title in double quotes, single quotes or parentheses.
// Titles may span lines but not blank lines.
func scanTitle(s string, i int) (string, int, bool) {
	if i >= len(s) {
		return "", i, false
	}
	var closer byte
	switch s[i] {
	case '"':
		closer = '"'
	case '\'':
		closer = '\''
	case '(':
		closer = ')'
	default:
		return "", i, false
	}
	for j := i + 1; j < len(s); j++ {
		switch s[j] {
		case '\\':
			j++
		case '\n':
			if j+1 < len(s) && isBlankString(lineOf(s, j+1)) {
				return "", i, false
			}
		case closer:
			return s[i+1 : j], j + 1, true
		case '(':
			if closer == ')' {
				return "", i, false
			}
		}
	}
	return "", i, false
}

func lineOf(s string, i int) string {
	if k := strings.IndexByte(s[i:], '\n'); k >= 0 {
		return s[i : i+k]
	}
	return s[i:]
}

// restOfLineBlank reports whether only spaces and tabs remain on the line at
// i, and returns the offset just past its terminator.
func restOfLineBlank(s string, i int) (int, bool) {
	for i < len(s) {
		switch s[i] {
		case ' ', '\t', '\r':
			i++
		case '\n':
			return i + 1, true
		default:
			return i, false
		}
	}
	return i, true
}

// unescape removes backslashes before ASCII punctuation.
func unescape(s string) string {
	if strings.IndexByte(s, '\\') < 0 {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) && isASCIIPunct(s[i+1]) {
			i++
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func isASCIIPunct(c byte) bool {
	return (c >= '!' && c <= '/') || (c >= ':' && c <= '@') || (c >= '[' && c <= '`') || (c >= '{' && c <= '~')
}
