package mdblock

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/muesli/reflow/ansi"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/truncate"
	"gopkg.in/yaml.v3"
)

// DumpOptions controls the text tree dump.
type DumpOptions struct {
	// Theme styles the output. Nil means no styling.
	Theme Theme
	// Width truncates lines to this many printable columns. Zero disables
	// truncation.
	Width int
	// Spans prints byte ranges of nodes that carry one.
	Spans bool
}

const indentWidth = 2

// Dump writes root as an indented tree, one node per line.
func Dump(w io.Writer, root *Node, opts DumpOptions) error {
	var styles Styles
	if opts.Theme != nil {
		styles = opts.Theme.Styles()
	}
	bw := bufio.NewWriter(w)
	depth := map[*Node]int{root: 0}
	var err error
	Walk(root, func(n, parent *Node, _ int) bool {
		d := 0
		if parent != nil {
			d = depth[parent] + 1
		}
		depth[n] = d
		line := indent.String(nodeLine(n, styles, opts.Spans), uint(d*indentWidth))
		if opts.Width > 0 && ansi.PrintableRuneWidth(line) > opts.Width {
			line = truncate.StringWithTail(line, uint(opts.Width), "…")
		}
		if _, err = bw.WriteString(line); err != nil {
			return false
		}
		if err = bw.WriteByte('\n'); err != nil {
			return false
		}
		return true
	})
	if err != nil {
		return err
	}
	return bw.Flush()
}

// DumpString returns the unstyled dump of root.
func DumpString(root *Node) string {
	var b strings.Builder
	_ = Dump(&b, root, DumpOptions{})
	return b.String()
}

func kindStyle(k NodeKind, styles Styles) Style {
	switch {
	case k.IsInline():
		return styles.Inline
	case k == DocumentNode, k == BlockQuoteNode, k == ListNode, k == ListItemNode:
		return styles.Container
	default:
		return styles.Leaf
	}
}

func nodeLine(n *Node, styles Styles, spans bool) string {
	var b strings.Builder
	b.WriteString(kindStyle(n.Kind, styles).Wrap(n.Kind.String()))
	attr := func(key, value string) {
		b.WriteByte(' ')
		b.WriteString(styles.Attr.Wrap(key + "=" + value))
	}
	flag := func(name string, s Style) {
		b.WriteByte(' ')
		b.WriteString(s.Wrap(name))
	}
	switch n.Kind {
	case HeadingNode:
		attr("level", strconv.Itoa(n.Level))
	case FencedCodeNode:
		if n.Info != "" {
			attr("info", strconv.Quote(n.Info))
		}
	case HTMLBlockNode:
		attr("kind", strconv.Itoa(int(n.HTML))+"("+n.HTML.String()+")")
		if n.ClosedOnOpenLine {
			flag("closed-on-open-line", styles.Known)
		}
	case ListNode:
		if li := n.List; li != nil {
			attr("kind", li.Kind.String())
			if li.Kind == OrderedMarker {
				attr("start", strconv.Itoa(li.Start))
				attr("delim", string(li.Delimiter))
			} else {
				attr("bullet", string(li.Bullet))
			}
			if li.Tight {
				flag("tight", styles.Attr)
			} else {
				flag("loose", styles.Attr)
			}
		}
	case ListItemNode:
		if it := n.Item; it != nil {
			attr("marker", it.Marker.String())
			attr("content-indent", strconv.Itoa(it.ContentIndent))
			if it.HasInternalBlank {
				flag("internal-blank", styles.Attr)
			}
			if it.FollowedByBlank {
				flag("followed-by-blank", styles.Attr)
			}
		}
	case ReferenceDefinitionNode, ReferenceLinkNode, ReferenceImageNode:
		if r := n.Ref; r != nil {
			attr("label", strconv.Quote(r.Label))
			if n.Kind == ReferenceDefinitionNode {
				attr("dest", strconv.Quote(r.Destination))
				if r.Title != "" {
					attr("title", strconv.Quote(r.Title))
				}
			} else {
				attr("form", r.Form.String())
				if r.Text != r.Label {
					attr("text", strconv.Quote(r.Text))
				}
			}
		}
	case LinkNode, ImageNode:
		attr("dest", strconv.Quote(n.Destination))
		if n.Title != "" {
			attr("title", strconv.Quote(n.Title))
		}
	}
	if spans && n.Span != (Span{}) {
		b.WriteByte(' ')
		b.WriteString(styles.Span.Wrap("[" + strconv.Itoa(n.Span.Start) + "," + strconv.Itoa(n.Span.End) + ")"))
	}
	switch n.Kind {
	case TextNode, CodeBlockNode, FencedCodeNode, HTMLBlockNode:
		b.WriteByte(' ')
		b.WriteString(styles.Literal.Wrap(strconv.Quote(n.Literal)))
	}
	return b.String()
}

// yamlNode is the serialized form used by DumpYAML.
type yamlNode struct {
	Kind     string            `yaml:"kind"`
	Span     []int             `yaml:"span,flow,omitempty"`
	Attrs    map[string]string `yaml:"attrs,omitempty"`
	Literal  string            `yaml:"literal,omitempty"`
	Children []*yamlNode       `yaml:"children,omitempty"`
}

// DumpYAML writes root as a YAML document.
func DumpYAML(w io.Writer, root *Node) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(toYAMLNode(root)); err != nil {
		return err
	}
	return enc.Close()
}

func toYAMLNode(n *Node) *yamlNode {
	out := &yamlNode{Kind: n.Kind.String()}
	if n.Span != (Span{}) {
		out.Span = []int{n.Span.Start, n.Span.End}
	}
	attrs := map[string]string{}
	switch n.Kind {
	case HeadingNode:
		attrs["level"] = strconv.Itoa(n.Level)
	case FencedCodeNode:
		if n.Info != "" {
			attrs["info"] = n.Info
		}
	case HTMLBlockNode:
		attrs["kind"] = n.HTML.String()
		if n.ClosedOnOpenLine {
			attrs["closed_on_open_line"] = "true"
		}
	case ListNode:
		if li := n.List; li != nil {
			attrs["kind"] = li.Kind.String()
			attrs["tight"] = strconv.FormatBool(li.Tight)
			if li.Kind == OrderedMarker {
				attrs["start"] = strconv.Itoa(li.Start)
			}
		}
	case ListItemNode:
		if it := n.Item; it != nil {
			attrs["marker"] = it.Marker.String()
			attrs["content_indent"] = strconv.Itoa(it.ContentIndent)
		}
	case ReferenceDefinitionNode, ReferenceLinkNode, ReferenceImageNode:
		if r := n.Ref; r != nil {
			attrs["label"] = r.Label
			if r.Destination != "" {
				attrs["destination"] = r.Destination
			}
			if r.Title != "" {
				attrs["title"] = r.Title
			}
		}
	case LinkNode, ImageNode:
		attrs["destination"] = n.Destination
		if n.Title != "" {
			attrs["title"] = n.Title
		}
	}
	if len(attrs) > 0 {
		out.Attrs = attrs
	}
	switch n.Kind {
	case TextNode, CodeBlockNode, FencedCodeNode, HTMLBlockNode:
		out.Literal = n.Literal
	}
	for _, c := range n.Children {
		if c != nil {
			out.Children = append(out.Children, toYAMLNode(c))
		}
	}
	return out
}
