package mdblock

import (
	"bytes"
	"strings"
	"testing"

	"github.com/muesli/reflow/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDumpString(t *testing.T) {
	doc := Parse([]byte("# Hi\n\n- a\n"))
	want := `Document
  Heading level=1
    Text "Hi"
  List kind=bullet bullet=- tight
    ListItem marker=- content-indent=2
      Paragraph
        Text "a"
`
	assert.Equal(t, want, DumpString(doc.Root))
}

func TestDumpSpans(t *testing.T) {
	doc := Parse([]byte("# Hi\n\n- a\n"))
	var b strings.Builder
	require.NoError(t, Dump(&b, doc.Root, DumpOptions{Spans: true}))
	lines := strings.Split(strings.TrimSuffix(b.String(), "\n"), "\n")
	require.Len(t, lines, 7)
	assert.Equal(t, "Document [0,10)", lines[0])
	assert.Equal(t, "  Heading level=1 [0,5)", lines[1])
	assert.Equal(t, `    Text "Hi"`, lines[2])
	assert.Equal(t, "  List kind=bullet bullet=- tight [6,10)", lines[3])
}

func TestDumpAttributes(t *testing.T) {
	doc := Parse([]byte("<div>x</div>\n\n```go\ncode\n```\n\n3) a\n\n4) b\n\n[l]: /u 'T'\n"))
	out := DumpString(doc.Root)
	assert.Contains(t, out, `HTMLBlock kind=6(block-tag) closed-on-open-line "<div>x</div>\n"`)
	assert.Contains(t, out, `FencedCode info="go" "code\n"`)
	assert.Contains(t, out, "List kind=ordered start=3 delim=) loose")
	assert.Contains(t, out, "ListItem marker=3) content-indent=3 followed-by-blank")
	assert.Contains(t, out, `ReferenceDefinition label="l" dest="/u" title="T"`)
}

func TestDumpUnresolvedReference(t *testing.T) {
	doc := Parse([]byte("[text][Label]\n"))
	assert.Contains(t, DumpString(doc.Root), `ReferenceLink label="Label" form=full text="text"`)
}

func TestDumpThemeAndWidth(t *testing.T) {
	doc := Parse([]byte("A paragraph with a rather long line of text in it.\n"))

	var styled bytes.Buffer
	require.NoError(t, Dump(&styled, doc.Root, DumpOptions{Theme: DefaultTheme()}))
	assert.Contains(t, styled.String(), "\x1b[")
	assert.Contains(t, styled.String(), "Paragraph")

	var narrow bytes.Buffer
	require.NoError(t, Dump(&narrow, doc.Root, DumpOptions{Width: 20}))
	for _, line := range strings.Split(strings.TrimSuffix(narrow.String(), "\n"), "\n") {
		assert.LessOrEqual(t, ansi.PrintableRuneWidth(line), 20, line)
	}
	assert.Contains(t, narrow.String(), "…")
}

func TestDumpYAML(t *testing.T) {
	doc := Parse([]byte("# Hi\n"))
	var b bytes.Buffer
	require.NoError(t, DumpYAML(&b, doc.Root))
	out := b.String()
	assert.Contains(t, out, "kind: Document")
	assert.Contains(t, out, "kind: Heading")
	assert.Contains(t, out, "span: [0, 5]")
	assert.Contains(t, out, "literal: Hi")
}

func TestThemes(t *testing.T) {
	names := AvailableThemes()
	assert.Contains(t, names, "default")
	assert.Contains(t, names, "boring")
	assert.IsIncreasing(t, names)

	th, ok := ThemeByName("")
	require.True(t, ok)
	assert.Equal(t, "default", th.Name())

	th, ok = ThemeByName(" NORD ")
	require.True(t, ok)
	assert.Equal(t, "nord", th.Name())

	_, ok = ThemeByName("no-such-theme")
	assert.False(t, ok)

	assert.Equal(t, "x", BoringTheme().Styles().Leaf.Wrap("x"))
	assert.Equal(t, "\x1b[1mx\x1b[0m", Style{Prefix: ansiBold}.Wrap("x"))
	assert.Equal(t, "\x1b[38;2;7;100;255m", fg(7, 100, 255))

	custom := NewTheme("mine", Styles{})
	assert.Equal(t, "mine", custom.Name())
}
