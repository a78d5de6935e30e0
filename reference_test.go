package mdblock

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resolved(t *testing.T, src string) *Document {
	t.Helper()
	doc := Parse([]byte(src))
	doc.CollectDefinitions()
	require.NoError(t, doc.ResolveReferences())
	return doc
}

func TestNormalizeLabel(t *testing.T) {
	assert.Equal(t, "foo bar", NormalizeLabel("  Foo \t\n BAR "))
	assert.Equal(t, NormalizeLabel("Straße"), NormalizeLabel("STRASSE"))
	assert.Empty(t, NormalizeLabel(" \t"))
}

func TestCollectDefinitionsFirstWins(t *testing.T) {
	doc := Parse([]byte("[Foo]: /a\n[foo]: /b\n\n- [FOO]: /c\n"))
	table := doc.CollectDefinitions()
	assert.Equal(t, 1, table.Len())
	def, ok := table.Lookup("  fOO ")
	require.True(t, ok)
	assert.Equal(t, "/a", def.Destination)
	assert.Equal(t, "Foo", def.Label)
	assert.Equal(t, []string{"foo"}, table.Labels())
}

func TestCollectDefinitionsInsideContainers(t *testing.T) {
	doc := Parse([]byte("> [q]: /quoted\n\n- [l]: /listed\n"))
	table := doc.CollectDefinitions()
	assert.Equal(t, 2, table.Len())
	_, ok := table.Lookup("Q")
	assert.True(t, ok)
}

func TestResolveReferences(t *testing.T) {
	doc := resolved(t, "[Foo]: /a \"T\"\n\n[x][FOO] and [x][bar] and ![pic][foo]\n")
	para := doc.Root.Children[1]
	require.Equal(t, ParagraphNode, para.Kind)
	require.Len(t, para.Children, 5)

	link := para.Children[0]
	assert.Equal(t, LinkNode, link.Kind)
	assert.Equal(t, "/a", link.Destination)
	assert.Equal(t, "T", link.Title)
	require.Len(t, link.Children, 1)
	assert.Equal(t, "x", link.Children[0].Literal)

	assert.Equal(t, TextNode, para.Children[2].Kind)
	assert.Equal(t, "[x][bar]", para.Children[2].Literal)

	img := para.Children[4]
	assert.Equal(t, ImageNode, img.Kind)
	assert.Equal(t, "pic", img.Children[0].Literal)

	assert.Zero(t, Count(doc.Root, ReferenceLinkNode))
	assert.Zero(t, Count(doc.Root, ReferenceImageNode))
}

func TestResolveDemotesShortForm(t *testing.T) {
	doc := resolved(t, "[nope] and ![nope] and [nope][]\n")
	para := doc.Root.Children[0]
	var lits []string
	for _, c := range para.Children {
		lits = append(lits, c.Literal)
	}
	assert.Equal(t, []string{"[nope]", " and ", "![nope]", " and ", "[nope]"}, lits)
}

func TestResolveReferencesIdempotent(t *testing.T) {
	doc := resolved(t, "[a]: /a\n\n[a] [b] [x][a]\n")
	before := DumpString(doc.Root)
	require.NoError(t, doc.ResolveReferences())
	require.NoError(t, ResolveReferences(doc.Root, doc.References()))
	assert.Equal(t, before, DumpString(doc.Root))
}

func TestResolveReferencesRequiresTable(t *testing.T) {
	doc := Parse([]byte("[a]\n"))
	assert.ErrorIs(t, doc.ResolveReferences(), ErrDefinitionsNotCollected)
	assert.ErrorIs(t, ResolveReferences(doc.Root, nil), ErrDefinitionsNotCollected)
	assert.Equal(t, ReferenceLinkNode, doc.Root.Children[0].Children[0].Kind)
}

func TestResolveLogsMisses(t *testing.T) {
	var buf bytes.Buffer
	rec := newCountingRecorder()
	p := New(WithLogger(newBufferLogger(&buf)), WithRecorder(rec))
	doc := p.Parse([]byte("[missing]\n"))
	doc.CollectDefinitions()
	require.NoError(t, doc.ResolveReferences())
	assert.Contains(t, buf.String(), "label=missing")
	assert.Equal(t, 1, rec.noMatches["reference"])
}
