package mdblock

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newBufferLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestNoMatchLogsAtDebug(t *testing.T) {
	var buf bytes.Buffer
	p := New(WithLogger(newBufferLogger(&buf)))

	_, _, ok := p.ParseListItem(NewCursor([]byte("plain text\n")), nil)
	assert.False(t, ok)
	assert.Contains(t, buf.String(), "level=DEBUG")
	assert.Contains(t, buf.String(), "recognizer=list-item")
	assert.Contains(t, buf.String(), "line=1")
}

func TestNoMatchSilentAboveDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
	p := New(WithLogger(logger))

	_, _, ok := p.ParseHTMLComment(NewCursor([]byte("<!-- open\n")))
	assert.False(t, ok)
	assert.Empty(t, buf.String())
}

func TestCeilingLogsWarning(t *testing.T) {
	var buf bytes.Buffer
	p := New(WithLogger(newBufferLogger(&buf)), WithMaxListItems(2))

	list, _, ok := p.ParseList(NewCursor([]byte("- a\n- b\n- c\n")))
	assert.True(t, ok)
	assert.Len(t, list.Items, 2)
	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "ceiling=list-items")
	assert.Contains(t, buf.String(), "limit=2")
}

func TestOptionsIgnoreInvalidValues(t *testing.T) {
	p := New(WithMaxItemLines(0), WithMaxListItems(-1), WithMaxNestingDepth(0), WithRecorder(nil), WithInlineScanner(nil), nil)
	assert.Equal(t, DefaultMaxItemLines, p.cfg.maxItemLines)
	assert.Equal(t, DefaultMaxListItems, p.cfg.maxListItems)
	assert.Equal(t, DefaultMaxNestingDepth, p.cfg.maxNestingDepth)
	assert.IsType(t, NoopRecorder{}, p.cfg.recorder)
	assert.IsType(t, ReferenceScanner{}, p.cfg.inline)
}
