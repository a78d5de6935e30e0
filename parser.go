package mdblock

import (
	"context"
	"log/slog"

	"pkt.systems/mdblock/internal/logfields"
)

// Parser runs the block recognizers. A Parser holds only configuration and
// may be shared between goroutines; every call owns its own state.
type Parser struct {
	cfg config
}

// New returns a Parser configured by opts.
func New(opts ...Option) *Parser {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return &Parser{cfg: cfg}
}

var defaultParser = New()

func (p *Parser) logger() *slog.Logger {
	if p.cfg.logger != nil {
		return p.cfg.logger
	}
	return slog.Default()
}

// noMatch records a recoverable decline by a recognizer.
func (p *Parser) noMatch(recognizer string, c Cursor) {
	p.cfg.recorder.IncNoMatch(recognizer)
	log := p.logger()
	if !log.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	log.LogAttrs(context.Background(), slog.LevelDebug, "recognizer declined",
		logfields.Recognizer(recognizer),
		logfields.Line(c.Line),
		logfields.Offset(c.Offset),
	)
}

// ceilingHit records a hard limit forcing a construct to end early.
func (p *Parser) ceilingHit(ceiling string, limit int, c Cursor) {
	p.cfg.recorder.IncCeiling(ceiling)
	p.logger().LogAttrs(context.Background(), slog.LevelWarn, "parse ceiling reached",
		logfields.Ceiling(ceiling),
		logfields.Limit(limit),
		logfields.Line(c.Line),
		logfields.Offset(c.Offset),
	)
}
