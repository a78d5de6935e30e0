package mdblock

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHTMLBlockKinds(t *testing.T) {
	tests := []struct {
		name string
		src  string
		kind HTMLKind
		span Span
	}{
		{"script through closer", "<script>\na\n\nb\n</script>", HTMLRawText, Span{0, 23}},
		{"pre closes on other raw-text name", "<pre>\nx </style>\ny\n", HTMLRawText, Span{0, 17}},
		{"raw text to EOF", "<style>\np {}\n", HTMLRawText, Span{0, 13}},
		{"comment", "<!-- c -->", HTMLComment, Span{0, 10}},
		{"multi-line comment", "<!-- a\nb -->\nafter\n", HTMLComment, Span{0, 13}},
		{"empty comment", "<!-->\nx\n", HTMLComment, Span{0, 6}},
		{"processing instruction", "<?php echo 1; ?>\nafter\n", HTMLProcessingInstruction, Span{0, 17}},
		{"unterminated processing instruction", "<?x\nfoo\n", HTMLProcessingInstruction, Span{0, 8}},
		{"declaration", "<!DOCTYPE html>\n", HTMLDeclaration, Span{0, 16}},
		{"cdata", "<![CDATA[\nx\n]]>\nafter\n", HTMLCDATA, Span{0, 16}},
		{"block tag to blank line", "<div>\nfoo\n\nbar\n", HTMLBlockTag, Span{0, 10}},
		{"closing block tag", "</div>\nfoo\n", HTMLBlockTag, Span{0, 11}},
		{"indented three", "   <table>\n", HTMLBlockTag, Span{0, 11}},
		{"complete tag", "<custom-tag attr=\"x\">\nfoo\n\nbar", HTMLCompleteTag, Span{0, 26}},
		{"complete close tag", "</span>\n", HTMLCompleteTag, Span{0, 8}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blk, next, ok := ParseHTMLBlock(NewCursor([]byte(tt.src)))
			require.True(t, ok)
			assert.Equal(t, tt.kind, blk.Kind)
			assert.Equal(t, tt.span, blk.Span)
			assert.Equal(t, tt.span.End, next.Offset)
			assert.False(t, blk.ClosedOnOpenLine)
		})
	}
}

func TestParseHTMLBlockRejects(t *testing.T) {
	for _, src := range []string{
		"    <div>",
		"<!-- open",
		"<!-- a --> trailing",
		"<!-- a\nb --> x\n",
		"<a href=>",
		"<span>text",
		"not html",
		"<>",
	} {
		_, next, ok := ParseHTMLBlock(NewCursor([]byte(src)))
		assert.False(t, ok, src)
		assert.Zero(t, next.Offset, src)
	}
}

func TestRawTextNeedsDelimitedName(t *testing.T) {
	blk, _, ok := ParseHTMLBlock(NewCursor([]byte("<scripts>\n")))
	require.True(t, ok)
	assert.Equal(t, HTMLCompleteTag, blk.Kind)

	_, _, ok = ParseHTMLRawText(NewCursor([]byte("<scripts>\n")))
	assert.False(t, ok)
}

func TestBlockTagClosedOnOpenLine(t *testing.T) {
	src := []byte("<div>html</div>\nNext line\n")
	blk, next, ok := ParseHTMLBlockTag(NewCursor(src))
	require.True(t, ok)
	assert.True(t, blk.ClosedOnOpenLine)
	assert.Equal(t, Span{0, 16}, blk.Span)
	assert.Equal(t, 2, next.Line)

	strict := New(WithStrictHTMLBlocks(true))
	blk, _, ok = strict.ParseHTMLBlockTag(NewCursor(src))
	require.True(t, ok)
	assert.False(t, blk.ClosedOnOpenLine)
	assert.Equal(t, Span{0, len(src)}, blk.Span)
}

func TestHTMLKindInterruptsParagraph(t *testing.T) {
	for k := HTMLRawText; k < HTMLCompleteTag; k++ {
		assert.True(t, k.CanInterruptParagraph(), k.String())
	}
	assert.False(t, HTMLCompleteTag.CanInterruptParagraph())

	doc := Parse([]byte("foo\n<custom>\nbar\n"))
	require.Len(t, doc.Root.Children, 1)
	assert.Equal(t, ParagraphNode, doc.Root.Children[0].Kind)

	doc = Parse([]byte("foo\n<div>\nbar\n"))
	require.Len(t, doc.Root.Children, 2)
	assert.Equal(t, ParagraphNode, doc.Root.Children[0].Kind)
	assert.Equal(t, HTMLBlockNode, doc.Root.Children[1].Kind)
	assert.Equal(t, "<div>\nbar\n", doc.Root.Children[1].Literal)
}

func TestHTMLBlockRaw(t *testing.T) {
	src := []byte("<!-- c -->\ntext\n")
	blk, _, ok := ParseHTMLComment(NewCursor(src))
	require.True(t, ok)
	assert.Equal(t, "<!-- c -->\n", string(blk.Raw(src)))
}
