package mdblock

import (
	"sort"
	"strings"
)

// Style describes a terminal style as an ANSI prefix sequence.
type Style struct {
	Prefix string
}

// Wrap surrounds s with the style and a reset. An empty style returns s.
func (s Style) Wrap(text string) string {
	if s.Prefix == "" || text == "" {
		return text
	}
	return s.Prefix + text + ansiReset
}

// Styles groups the semantic styles used by the tree dump.
type Styles struct {
	Container Style // document, block quote, list, list item
	Leaf      Style // paragraph, heading, code, HTML, break
	Inline    Style // text, links, images, references
	Attr      Style // key=value details
	Span      Style // byte ranges
	Literal   Style // quoted content
	Known     Style // flagged divergences
}

// Theme provides named styles for tree dumps.
type Theme interface {
	Name() string
	Styles() Styles
}

type theme struct {
	name   string
	styles Styles
}

func (t theme) Name() string   { return t.name }
func (t theme) Styles() Styles { return t.styles }

// NewTheme returns a Theme from a Styles definition.
func NewTheme(name string, styles Styles) Theme {
	return theme{name: name, styles: styles}
}

const (
	ansiReset     = "\x1b[0m"
	ansiBold      = "\x1b[1m"
	ansiDim       = "\x1b[2m"
	ansiItalic    = "\x1b[3m"
	ansiUnderline = "\x1b[4m"
)

func fg(r, g, b uint8) string {
	var sb strings.Builder
	sb.WriteString("\x1b[38;2;")
	writeUint8(&sb, r)
	sb.WriteByte(';')
	writeUint8(&sb, g)
	sb.WriteByte(';')
	writeUint8(&sb, b)
	sb.WriteByte('m')
	return sb.String()
}

func writeUint8(sb *strings.Builder, v uint8) {
	if v >= 100 {
		sb.WriteByte('0' + v/100)
	}
	if v >= 10 {
		sb.WriteByte('0' + v/10%10)
	}
	sb.WriteByte('0' + v%10)
}

func style(prefixes ...string) Style {
	return Style{Prefix: strings.Join(prefixes, "")}
}

var builtinThemes = map[string]Theme{
	"default": theme{name: "default", styles: Styles{
		Container: style(ansiBold, fg(0x7a, 0xa2, 0xf7)),
		Leaf:      style(ansiBold, fg(0x9e, 0xce, 0x6a)),
		Inline:    style(fg(0xe0, 0xaf, 0x68)),
		Attr:      style(fg(0xbb, 0x9a, 0xf7)),
		Span:      style(ansiDim),
		Literal:   style(fg(0xc0, 0xca, 0xf5)),
		Known:     style(ansiItalic, fg(0xf7, 0x76, 0x8e)),
	}},
	"nord": theme{name: "nord", styles: Styles{
		Container: style(ansiBold, fg(0x88, 0xc0, 0xd0)),
		Leaf:      style(ansiBold, fg(0xa3, 0xbe, 0x8c)),
		Inline:    style(fg(0xeb, 0xcb, 0x8b)),
		Attr:      style(fg(0xb4, 0x8e, 0xad)),
		Span:      style(fg(0x4c, 0x56, 0x6a)),
		Literal:   style(fg(0xd8, 0xde, 0xe9)),
		Known:     style(ansiItalic, fg(0xbf, 0x61, 0x6a)),
	}},
	"gruvbox": theme{name: "gruvbox", styles: Styles{
		Container: style(ansiBold, fg(0x83, 0xa5, 0x98)),
		Leaf:      style(ansiBold, fg(0xb8, 0xbb, 0x26)),
		Inline:    style(fg(0xfa, 0xbd, 0x2f)),
		Attr:      style(fg(0xd3, 0x86, 0x9b)),
		Span:      style(fg(0x92, 0x83, 0x74)),
		Literal:   style(fg(0xeb, 0xdb, 0xb2)),
		Known:     style(ansiItalic, fg(0xfb, 0x49, 0x34)),
	}},
	"solarized-light": theme{name: "solarized-light", styles: Styles{
		Container: style(ansiBold, fg(0x26, 0x8b, 0xd2)),
		Leaf:      style(ansiBold, fg(0x85, 0x99, 0x00)),
		Inline:    style(fg(0xb5, 0x89, 0x00)),
		Attr:      style(fg(0x6c, 0x71, 0xc4)),
		Span:      style(fg(0x93, 0xa1, 0xa1)),
		Literal:   style(fg(0x58, 0x6e, 0x75)),
		Known:     style(ansiUnderline, fg(0xdc, 0x32, 0x2f)),
	}},
	"boring": theme{name: "boring"},
}

// AvailableThemes returns the names of built-in themes.
func AvailableThemes() []string {
	names := make([]string, 0, len(builtinThemes))
	for name := range builtinThemes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ThemeByName returns a built-in theme by name.
func ThemeByName(name string) (Theme, bool) {
	if name == "" {
		return builtinThemes["default"], true
	}
	normalized := strings.ToLower(strings.TrimSpace(name))
	theme, ok := builtinThemes[normalized]
	return theme, ok
}

// DefaultTheme returns the default built-in theme.
func DefaultTheme() Theme {
	return builtinThemes["default"]
}

// BoringTheme returns the theme without any styling.
func BoringTheme() Theme {
	return builtinThemes["boring"]
}
