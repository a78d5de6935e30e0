package mdblock

import "log/slog"

const (
	// DefaultMaxItemLines bounds the lines a single list item may consume.
	DefaultMaxItemLines = 10000
	// DefaultMaxListItems bounds the items a single list may hold.
	DefaultMaxListItems = 10000
	// DefaultMaxNestingDepth bounds container nesting (lists, block quotes).
	DefaultMaxNestingDepth = 64
)

// Option configures a Parser.
type Option func(*config)

type config struct {
	logger          *slog.Logger
	recorder        Recorder
	cache           *SectionCache
	inline          InlineScanner
	maxItemLines    int
	maxListItems    int
	maxNestingDepth int
	strictHTML      bool
	strictLazy      bool
	frontMatter     bool
}

func defaultConfig() config {
	return config{
		recorder:        NoopRecorder{},
		inline:          ReferenceScanner{},
		maxItemLines:    DefaultMaxItemLines,
		maxListItems:    DefaultMaxListItems,
		maxNestingDepth: DefaultMaxNestingDepth,
	}
}

// WithLogger sets the structured logger. No-matches are logged at debug
// level, ceiling hits at warn level. The default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) {
		cfg.logger = logger
	}
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r Recorder) Option {
	return func(cfg *config) {
		if r != nil {
			cfg.recorder = r
		}
	}
}

// WithSectionCache enables per-section caching of block trees.
func WithSectionCache(c *SectionCache) Option {
	return func(cfg *config) {
		cfg.cache = c
	}
}

// WithInlineScanner replaces the scanner that turns paragraph and heading
// text into inline child nodes.
func WithInlineScanner(s InlineScanner) Option {
	return func(cfg *config) {
		if s != nil {
			cfg.inline = s
		}
	}
}

// WithMaxItemLines sets the per-item line ceiling.
func WithMaxItemLines(n int) Option {
	return func(cfg *config) {
		if n > 0 {
			cfg.maxItemLines = n
		}
	}
}

// WithMaxListItems sets the per-list item ceiling.
func WithMaxListItems(n int) Option {
	return func(cfg *config) {
		if n > 0 {
			cfg.maxListItems = n
		}
	}
}

// WithMaxNestingDepth sets the container nesting ceiling.
func WithMaxNestingDepth(n int) Option {
	return func(cfg *config) {
		if n > 0 {
			cfg.maxNestingDepth = n
		}
	}
}

// WithStrictHTMLBlocks makes block-tag HTML (kind 6) always run to the next
// blank line, as CommonMark prescribes. By default a block whose opening and
// closing tag share the first line ends with that line.
func WithStrictHTMLBlocks(enabled bool) Option {
	return func(cfg *config) {
		cfg.strictHTML = enabled
	}
}

// WithStrictLazyContinuation limits lazy continuation lines in list items to
// those following paragraph text, as CommonMark prescribes. By default any
// under-indented line that no sibling block claims continues the item.
func WithStrictLazyContinuation(enabled bool) Option {
	return func(cfg *config) {
		cfg.strictLazy = enabled
	}
}

// WithFrontMatter strips a leading front matter block before parsing. YAML
// front matter is decoded into Document.FrontMatter.
func WithFrontMatter(enabled bool) Option {
	return func(cfg *config) {
		cfg.frontMatter = enabled
	}
}
