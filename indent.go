package mdblock

// TabStop is the tab width used for all indentation decisions.
const TabStop = 4

// Columns returns the width of the leading run of spaces and tabs in run when
// the run begins at column startCol. A space advances one column; a tab
// advances to the next multiple of TabStop. Scanning stops at the first byte
// that is neither.
func Columns(run []byte, startCol int) int {
	col := startCol
	for _, b := range run {
		switch b {
		case ' ':
			col++
		case '\t':
			col += TabStop - col%TabStop
		default:
			return col - startCol
		}
	}
	return col - startCol
}

// LeadingIndent returns the effective column count of the leading whitespace
// of line and the number of bytes it occupies.
func LeadingIndent(line []byte) (cols int, n int) {
	for n < len(line) {
		switch line[n] {
		case ' ':
			cols++
		case '\t':
			cols += TabStop - cols%TabStop
		default:
			return cols, n
		}
		n++
	}
	return cols, n
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t'
}

func isBlank(line []byte) bool {
	for _, b := range line {
		if !isSpace(b) && b != '\r' {
			return false
		}
	}
	return true
}

func trimLeftSpace(line []byte) []byte {
	i := 0
	for i < len(line) && isSpace(line[i]) {
		i++
	}
	return line[i:]
}

func trimRightSpace(line []byte) []byte {
	i := len(line)
	for i > 0 && (isSpace(line[i-1]) || line[i-1] == '\r') {
		i--
	}
	return line[:i]
}

// stripColumns removes up to cols columns of leading whitespace from line,
// which begins at column startCol. A tab that straddles the cut keeps its
// remaining columns as spaces. Whitespace left at the front of the result is
// expanded to spaces so later column counts do not depend on startCol.
func stripColumns(line []byte, startCol, cols int) []byte {
	col := startCol
	target := startCol + cols
	i := 0
	for i < len(line) && col < target {
		switch line[i] {
		case ' ':
			col++
			i++
		case '\t':
			next := col + TabStop - col%TabStop
			if next > target {
				expanded := expandLeading(line[i:], col)
				return expanded[target-col:]
			}
			col = next
			i++
		default:
			return expandLeading(line[i:], col)
		}
	}
	return expandLeading(line[i:], col)
}

// expandLeading rewrites tabs in the leading whitespace of line, which begins
// at column startCol, into spaces. line is returned as-is when it has none.
func expandLeading(line []byte, startCol int) []byte {
	hasTab := false
	n := 0
	for n < len(line) && isSpace(line[n]) {
		if line[n] == '\t' {
			hasTab = true
		}
		n++
	}
	if !hasTab {
		return line
	}
	width := Columns(line[:n], startCol)
	out := make([]byte, 0, width+len(line)-n)
	for i := 0; i < width; i++ {
		out = append(out, ' ')
	}
	return append(out, line[n:]...)
}
