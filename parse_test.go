package mdblock

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kinds(nodes []*Node) []NodeKind {
	out := make([]NodeKind, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.Kind)
	}
	return out
}

func TestParseDispatch(t *testing.T) {
	src := "# Title\n\nSome *text* here.\n\n- one\n- two\n\n---\n"
	doc := Parse([]byte(src))
	require.Equal(t, []NodeKind{HeadingNode, ParagraphNode, ListNode, ThematicBreakNode}, kinds(doc.Root.Children))

	h := doc.Root.Children[0]
	assert.Equal(t, 1, h.Level)
	assert.Equal(t, "Title", h.Literal)
	assert.Equal(t, Span{0, 8}, h.Span)

	para := doc.Root.Children[1]
	assert.Equal(t, "Some *text* here.", para.Literal)
	require.Len(t, para.Children, 1)
	assert.Equal(t, TextNode, para.Children[0].Kind)

	list := doc.Root.Children[2]
	assert.True(t, list.List.Tight)
	require.Len(t, list.Children, 2)
	item := list.Children[0]
	assert.Equal(t, ListItemNode, item.Kind)
	assert.Equal(t, Span{}, item.Span)
	require.Len(t, item.Children, 1)
	assert.Equal(t, "one", item.Children[0].Literal)
	assert.Equal(t, Span{}, item.Children[0].Span)

	assert.Equal(t, Span{len(src) - 4, len(src)}, doc.Root.Children[3].Span)
	assert.Equal(t, Span{0, len(src)}, doc.Root.Span)
}

func TestParseHeadings(t *testing.T) {
	doc := Parse([]byte("## Closed ##\n\nSetext\n======\n\nFoo\nbar\n---\n\n#\n"))
	require.Equal(t, []NodeKind{HeadingNode, HeadingNode, HeadingNode, HeadingNode}, kinds(doc.Root.Children))
	assert.Equal(t, "Closed", doc.Root.Children[0].Literal)
	assert.Equal(t, 2, doc.Root.Children[0].Level)
	assert.Equal(t, 1, doc.Root.Children[1].Level)
	assert.Equal(t, "Foo\nbar", doc.Root.Children[2].Literal)
	assert.Equal(t, 2, doc.Root.Children[2].Level)
	assert.Empty(t, doc.Root.Children[3].Literal)
}

func TestParseCodeBlocks(t *testing.T) {
	doc := Parse([]byte("    code\n\n    more\n\ntext\n\n```go\nfmt.Println()\n```\n"))
	require.Equal(t, []NodeKind{CodeBlockNode, ParagraphNode, FencedCodeNode}, kinds(doc.Root.Children))
	assert.Equal(t, "code\n\nmore\n", doc.Root.Children[0].Literal)
	assert.Equal(t, Span{0, 19}, doc.Root.Children[0].Span)
	assert.Equal(t, "go", doc.Root.Children[2].Info)
	assert.Equal(t, "fmt.Println()\n", doc.Root.Children[2].Literal)
}

func TestParseUnclosedFenceRunsToEOF(t *testing.T) {
	doc := Parse([]byte("~~~\na\n\nb\n"))
	require.Len(t, doc.Root.Children, 1)
	assert.Equal(t, "a\n\nb\n", doc.Root.Children[0].Literal)
}

func TestParseBlockQuote(t *testing.T) {
	doc := Parse([]byte("> quote\ncontinued\n> > nested\n"))
	require.Len(t, doc.Root.Children, 1)
	q := doc.Root.Children[0]
	assert.Equal(t, BlockQuoteNode, q.Kind)
	require.Equal(t, []NodeKind{ParagraphNode, BlockQuoteNode}, kinds(q.Children))
	assert.Equal(t, "quote\ncontinued", q.Children[0].Literal)
	assert.Equal(t, "nested", q.Children[1].Children[0].Literal)
}

func TestParseNestedList(t *testing.T) {
	doc := Parse([]byte("- a\n  - b\n"))
	list := doc.Root.Children[0]
	require.Len(t, list.Children, 1)
	item := list.Children[0]
	require.Equal(t, []NodeKind{ParagraphNode, ListNode}, kinds(item.Children))
	assert.Equal(t, "b", item.Children[1].Children[0].Children[0].Literal)
}

func TestParseOrderedListInterruption(t *testing.T) {
	doc := Parse([]byte("The year\n1986. was good\n"))
	require.Len(t, doc.Root.Children, 1)
	assert.Equal(t, ParagraphNode, doc.Root.Children[0].Kind)

	doc = Parse([]byte("Steps:\n1. first\n"))
	assert.Equal(t, []NodeKind{ParagraphNode, ListNode}, kinds(doc.Root.Children))
}

func TestParseReferenceDefinitionNodes(t *testing.T) {
	src := "[a]: /a\n[b]: /b \"B\"\ntext after\n"
	doc := Parse([]byte(src))
	require.Equal(t, []NodeKind{ReferenceDefinitionNode, ReferenceDefinitionNode, ParagraphNode}, kinds(doc.Root.Children))
	assert.Equal(t, Span{0, 8}, doc.Root.Children[0].Span)
	assert.Equal(t, Span{8, 20}, doc.Root.Children[1].Span)
	assert.Equal(t, "B", doc.Root.Children[1].Ref.Title)
	assert.Equal(t, Span{20, len(src)}, doc.Root.Children[2].Span)
	assert.Equal(t, "text after", doc.Root.Children[2].Literal)
}

func TestParseDefinitionsCannotInterruptParagraph(t *testing.T) {
	doc := Parse([]byte("text\n[a]: /a\n"))
	require.Len(t, doc.Root.Children, 1)
	assert.Equal(t, "text\n[a]: /a", doc.Root.Children[0].Literal)
}

func TestParseNestingCeiling(t *testing.T) {
	rec := newCountingRecorder()
	p := New(WithMaxNestingDepth(1), WithRecorder(rec))
	doc := p.Parse([]byte("> > > a\n"))
	outer := doc.Root.Children[0]
	require.Equal(t, BlockQuoteNode, outer.Kind)
	inner := outer.Children[0]
	require.Equal(t, BlockQuoteNode, inner.Kind)
	require.Len(t, inner.Children, 1)
	assert.Equal(t, ParagraphNode, inner.Children[0].Kind)
	assert.Equal(t, "> a", inner.Children[0].Literal)
	assert.Equal(t, 1, rec.ceilings["nesting-depth"])
}

func TestParseFrontMatter(t *testing.T) {
	src := []byte("---\ntitle: Post\n---\n# Hello\n")

	doc := New(WithFrontMatter(true)).Parse(src)
	require.NotNil(t, doc.FrontMatter)
	assert.Equal(t, []NodeKind{HeadingNode}, kinds(doc.Root.Children))
	assert.Equal(t, Span{20, len(src)}, doc.Root.Children[0].Span)

	doc = Parse(src)
	assert.Nil(t, doc.FrontMatter)
	assert.Equal(t, []NodeKind{ThematicBreakNode, HeadingNode, HeadingNode}, kinds(doc.Root.Children))
}

func TestParseEmptyAndBlank(t *testing.T) {
	assert.Empty(t, Parse(nil).Root.Children)
	assert.Empty(t, Parse([]byte("\n  \n\t\n")).Root.Children)
}
