package mdblock

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseList(t *testing.T) {
	list, next, ok := ParseList(NewCursor([]byte("- a\n- b\n- c\n")))
	require.True(t, ok)
	assert.Equal(t, BulletMarker, list.Kind)
	assert.Len(t, list.Items, 3)
	assert.True(t, list.Tight())
	assert.Equal(t, Span{0, 12}, list.Span)
	assert.True(t, next.EOF())
}

func TestParseListLoose(t *testing.T) {
	list, _, ok := ParseList(NewCursor([]byte("- a\n\n- b\n")))
	require.True(t, ok)
	require.Len(t, list.Items, 2)
	assert.True(t, list.Loose())
	assert.True(t, list.Items[0].FollowedByBlank)
	assert.False(t, list.Items[1].FollowedByBlank)
	assert.Equal(t, Span{0, 9}, list.Span)

	list, _, ok = ParseList(NewCursor([]byte("- a\n\n  b\n- c\n")))
	require.True(t, ok)
	require.Len(t, list.Items, 2)
	assert.True(t, list.Loose())
	assert.True(t, list.Items[0].HasInternalBlank)
}

func TestParseListKindChangeEndsList(t *testing.T) {
	list, next, ok := ParseList(NewCursor([]byte("- a\n1. b")))
	require.True(t, ok)
	assert.Len(t, list.Items, 1)
	assert.Equal(t, 4, next.Offset)
}

func TestParseListBulletCharMayChange(t *testing.T) {
	list, _, ok := ParseList(NewCursor([]byte("- a\n* b\n")))
	require.True(t, ok)
	assert.Len(t, list.Items, 2)
}

func TestParseListDeeperMarkerContinuesItem(t *testing.T) {
	list, next, ok := ParseList(NewCursor([]byte("- a\n - b\n- c\n")))
	require.True(t, ok)
	require.Len(t, list.Items, 2)
	assert.Equal(t, Span{1, 9}, list.Items[0].Content)
	assert.Equal(t, Span{10, 12}, list.Items[1].Content)
	assert.True(t, next.EOF())
}

func TestParseListOrderedStart(t *testing.T) {
	list, _, ok := ParseList(NewCursor([]byte("3. a\n4. b\n")))
	require.True(t, ok)
	assert.Equal(t, OrderedMarker, list.Kind)
	assert.Equal(t, 3, list.Start())
}

func TestParseListExcludesTrailingBlanks(t *testing.T) {
	list, next, ok := ParseList(NewCursor([]byte("- a\n\n\n")))
	require.True(t, ok)
	assert.Equal(t, Span{0, 4}, list.Span)
	assert.Equal(t, 4, next.Offset)
	assert.True(t, list.Tight())
}

func TestParseListCeiling(t *testing.T) {
	rec := newCountingRecorder()
	p := New(WithMaxListItems(2), WithRecorder(rec))
	list, next, ok := p.ParseList(NewCursor([]byte("- a\n- b\n- c\n")))
	require.True(t, ok)
	assert.Len(t, list.Items, 2)
	assert.Equal(t, 8, next.Offset)
	assert.Equal(t, 1, rec.ceilings["list-items"])
}

func TestParseListNoMarker(t *testing.T) {
	_, _, ok := ParseList(NewCursor([]byte("paragraph\n")))
	assert.False(t, ok)
}
