package mdblock

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReferenceScannerForms(t *testing.T) {
	nodes := ReferenceScanner{}.Scan("[x][FOO] and [Foo][] or [bar]")
	require.Len(t, nodes, 5)

	assert.Equal(t, ReferenceLinkNode, nodes[0].Kind)
	assert.Equal(t, RefInfo{Label: "FOO", Text: "x", Form: RefFull}, *nodes[0].Ref)
	assert.Equal(t, " and ", nodes[1].Literal)
	assert.Equal(t, RefInfo{Label: "Foo", Text: "Foo", Form: RefCollapsed}, *nodes[2].Ref)
	assert.Equal(t, " or ", nodes[3].Literal)
	assert.Equal(t, RefInfo{Label: "bar", Text: "bar", Form: RefShortcut}, *nodes[4].Ref)
}

func TestReferenceScannerImage(t *testing.T) {
	nodes := ReferenceScanner{}.Scan("![alt][img]")
	require.Len(t, nodes, 1)
	assert.Equal(t, ReferenceImageNode, nodes[0].Kind)
	assert.Equal(t, "img", nodes[0].Ref.Label)
	assert.Equal(t, "alt", nodes[0].Ref.Text)
}

func TestReferenceScannerLeavesOtherInlines(t *testing.T) {
	text := "see `[x]` and [a](b) and <http://x> and "
	nodes := ReferenceScanner{}.Scan(text + "[ref]")
	require.Len(t, nodes, 2)
	assert.Equal(t, TextNode, nodes[0].Kind)
	assert.Equal(t, text, nodes[0].Literal)
	assert.Equal(t, RefShortcut, nodes[1].Ref.Form)

	nodes = ReferenceScanner{}.Scan(`\[not\] a link`)
	require.Len(t, nodes, 1)
	assert.Equal(t, TextNode, nodes[0].Kind)

	assert.Empty(t, ReferenceScanner{}.Scan(""))
}
