package mdblock

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func linesOf(it ListItem, src []byte) []string {
	var out []string
	for _, ln := range it.Lines(src) {
		out = append(out, string(ln))
	}
	return out
}

func TestParseListItem(t *testing.T) {
	tests := []struct {
		name          string
		src           string
		content       Span
		internalBlank bool
		empty         bool
	}{
		{"continuation then sibling", "- foo\n  bar\n- baz\n", Span{1, 12}, false, false},
		{"lazy continuation", "- foo\nbar\n", Span{1, 10}, false, false},
		{"internal blank", "- a\n\n  b\n", Span{1, 9}, true, false},
		{"blank then unindented", "- foo\n\nbar\n", Span{1, 6}, false, false},
		{"blank inside fence", "- ```\n  a\n\n  b\n  ```\nc\n", Span{1, 21}, false, false},
		{"empty first line with content", "-\n  foo\n", Span{1, 8}, false, false},
		{"empty first line then blank", "-\n\n  foo\n", Span{1, 2}, false, true},
		{"thematic break closes", "- a\n***\n", Span{1, 4}, false, false},
		{"heading closes", "- a\n# b\n", Span{1, 4}, false, false},
		{"quote closes", "- a\n> b\n", Span{1, 4}, false, false},
		{"wide padding then lazy", "-     code\nx\n", Span{1, 13}, false, false},
		{"deeper marker is lazy", "- a\n - b\n", Span{1, 9}, false, false},
		{"shallower marker closes", "  - a\n- b\n", Span{3, 6}, false, false},
		{"same indent marker closes", " - a\n - b\n", Span{2, 5}, false, false},
		{"lazy after heading", "- # h\nfoo\n", Span{1, 10}, false, false},
		{"lazy after fence close", "- ```\n  a\n  ```\nx\n", Span{1, 18}, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := []byte(tt.src)
			item, next, ok := ParseListItem(NewCursor(src), nil)
			require.True(t, ok)
			assert.Equal(t, tt.content, item.Content)
			assert.Equal(t, tt.internalBlank, item.HasInternalBlank)
			assert.Equal(t, tt.empty, item.Empty)
			assert.Equal(t, tt.content.End, next.Offset)
			assert.False(t, item.FollowedByBlank)
		})
	}
}

func TestParseListItemLines(t *testing.T) {
	src := []byte("- foo\n  bar\n- baz\n")
	item, next, ok := ParseListItem(NewCursor(src), nil)
	require.True(t, ok)
	assert.Equal(t, []string{"foo", "bar"}, linesOf(item, src))
	assert.Equal(t, 12, next.Offset)
	assert.Equal(t, 3, next.Line)

	src = []byte("1.  a\n\n    b\nlazy\n")
	item, _, ok = ParseListItem(NewCursor(src), nil)
	require.True(t, ok)
	assert.Equal(t, 4, item.ContentIndent)
	assert.Equal(t, []string{"a", "", "b", "lazy"}, linesOf(item, src))
}

func TestParseListItemExcessPaddingStaysInContent(t *testing.T) {
	src := []byte("-      foo\n       bar\n")
	item, _, ok := ParseListItem(NewCursor(src), nil)
	require.True(t, ok)
	assert.Equal(t, 4, item.Padding)
	assert.Equal(t, 5, item.ContentIndent)
	assert.Equal(t, []string{"  foo", "  bar"}, linesOf(item, src))
}

func TestParseListItemStrictLazyContinuation(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		content Span
	}{
		{"after paragraph", "- foo\nbar\n", Span{1, 10}},
		{"after heading", "- # h\nfoo\n", Span{1, 6}},
		{"after fence close", "- ```\n  a\n  ```\nx\n", Span{1, 16}},
		{"after deeper marker line", "- a\n - b\nc\n", Span{1, 11}},
	}
	p := New(WithStrictLazyContinuation(true))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item, _, ok := p.ParseListItem(NewCursor([]byte(tt.src)), nil)
			require.True(t, ok)
			assert.Equal(t, tt.content, item.Content)
		})
	}
}

func TestParseListItemExpectKind(t *testing.T) {
	kind := OrderedMarker
	c := NewCursor([]byte("- foo\n"))
	_, next, ok := ParseListItem(c, &kind)
	assert.False(t, ok)
	assert.Equal(t, c, next)
}

func TestParseListItemCeiling(t *testing.T) {
	rec := newCountingRecorder()
	p := New(WithMaxItemLines(2), WithRecorder(rec))
	item, _, ok := p.ParseListItem(NewCursor([]byte("- a\n  b\n  c\n  d\n")), nil)
	require.True(t, ok)
	assert.Equal(t, Span{1, 12}, item.Content)
	assert.Equal(t, 1, rec.ceilings["item-lines"])
}
