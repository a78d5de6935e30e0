package mdblock

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectListMarker(t *testing.T) {
	tests := []struct {
		line          string
		kind          MarkerKind
		marker        string
		indent        int
		padding       int
		contentIndent int
		blank         bool
	}{
		{"- foo", BulletMarker, "-", 0, 1, 2, false},
		{"1. foo", OrderedMarker, "1.", 0, 1, 3, false},
		{"  10) bar", OrderedMarker, "10)", 2, 1, 6, false},
		{"-    foo", BulletMarker, "-", 0, 4, 5, false},
		{"-     foo", BulletMarker, "-", 0, 4, 5, false},
		{"-        foo", BulletMarker, "-", 0, 4, 5, false},
		{"1.       x", OrderedMarker, "1.", 0, 4, 6, false},
		{"-\t\tfoo", BulletMarker, "-", 0, 4, 5, false},
		{"-  \tfoo", BulletMarker, "-", 0, 3, 4, false},
		{"-", BulletMarker, "-", 0, 1, 2, true},
		{"*   ", BulletMarker, "*", 0, 1, 2, true},
		{"-\tfoo", BulletMarker, "-", 0, 3, 4, false},
		{"123456789. nine", OrderedMarker, "123456789.", 0, 1, 11, false},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			m, ok := DetectListMarker(NewCursor([]byte(tt.line)))
			require.True(t, ok)
			assert.Equal(t, tt.kind, m.Marker.Kind)
			assert.Equal(t, tt.marker, m.Marker.String())
			assert.Equal(t, tt.indent, m.Indent)
			assert.Equal(t, tt.padding, m.Padding)
			assert.Equal(t, tt.contentIndent, m.ContentIndent)
			assert.Equal(t, tt.blank, m.Blank)
			assert.LessOrEqual(t, m.ContentIndent-m.Indent, m.Marker.Width()+4)
		})
	}
}

func TestDetectListMarkerRejects(t *testing.T) {
	for _, line := range []string{
		"1234567890. ten digits",
		"-foo",
		"1.foo",
		"    - indented",
		"text",
		"",
	} {
		_, ok := DetectListMarker(NewCursor([]byte(line)))
		assert.False(t, ok, line)
	}

	c := NewCursor([]byte("x - foo")).AdvanceTo(2)
	_, ok := DetectListMarker(c)
	assert.False(t, ok)
}

func TestOrderedMarkerNumber(t *testing.T) {
	m, ok := DetectListMarker(NewCursor([]byte("007) seven")))
	require.True(t, ok)
	assert.Equal(t, 7, m.Marker.Number)
	assert.Equal(t, 3, m.Marker.Digits)
	assert.Equal(t, byte(')'), m.Marker.Delimiter)
	assert.Equal(t, "ordered", m.Marker.Kind.String())
}
