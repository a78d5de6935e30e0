// Package conformance compares the block structure produced by mdblock with
// the structure a CommonMark reference parser builds from the same source.
package conformance

import (
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"pkt.systems/mdblock"
)

// Side names where a divergence was found.
type Side uint8

const (
	// OnlyMdblock is a block present only in the mdblock tree.
	OnlyMdblock Side = iota + 1
	// OnlyReference is a block present only in the reference tree.
	OnlyReference
	// ReferenceTable is a definition missing from or differing in one table.
	ReferenceTable
)

func (s Side) String() string {
	switch s {
	case OnlyMdblock:
		return "mdblock"
	case OnlyReference:
		return "reference"
	case ReferenceTable:
		return "definitions"
	default:
		return "unknown"
	}
}

// Block is one entry of a flattened block tree.
type Block struct {
	Depth int
	Label string
	// closedOnOpenLine marks a block-tag HTML block cut short on purpose.
	closedOnOpenLine bool
}

func (b Block) key() string {
	return strconv.Itoa(b.Depth) + ":" + b.Label
}

// Divergence is one difference between the two trees.
type Divergence struct {
	Side  Side
	Block Block
	// Detail describes reference table differences.
	Detail string
	// Known marks differences caused by the one-line block-tag HTML
	// behavior, which departs from CommonMark on purpose.
	Known bool
}

func (d Divergence) String() string {
	var b strings.Builder
	b.WriteString(d.Side.String())
	b.WriteString(": ")
	if d.Side == ReferenceTable {
		b.WriteString(d.Detail)
	} else {
		b.WriteString(strings.Repeat("  ", d.Block.Depth))
		b.WriteString(d.Block.Label)
	}
	if d.Known {
		b.WriteString(" (known)")
	}
	return b.String()
}

// Report is the outcome of a comparison.
type Report struct {
	Mdblock     []Block
	Reference   []Block
	Matched     int
	Divergences []Divergence
}

// Unknown returns the divergences not explained by a known deviation.
func (r Report) Unknown() []Divergence {
	var out []Divergence
	for _, d := range r.Divergences {
		if !d.Known {
			out = append(out, d)
		}
	}
	return out
}

// Equivalent reports whether every divergence is a known one.
func (r Report) Equivalent() bool {
	return len(r.Unknown()) == 0
}

// Compare parses src with mdblock, configured by opts, and with the
// reference parser, and diffs the flattened block trees and the reference
// definition tables.
func Compare(src []byte, opts ...mdblock.Option) Report {
	doc := mdblock.New(opts...).Parse(src)
	table := doc.CollectDefinitions()
	ours := Flatten(doc.Root)

	ctx := parser.NewContext()
	root := goldmark.New().Parser().Parse(text.NewReader(src), parser.WithContext(ctx))
	theirs := FlattenGoldmark(root)

	report := diff(ours, theirs)
	report.Divergences = append(report.Divergences, compareDefinitions(table, ctx.References())...)
	return report
}

// Flatten lists the block nodes of root in document order. Reference
// definitions are left out; the reference parser keeps them out of its tree.
func Flatten(root *mdblock.Node) []Block {
	var out []Block
	depth := map[*mdblock.Node]int{}
	mdblock.Walk(root, func(n, parent *mdblock.Node, _ int) bool {
		if n.Kind.IsInline() {
			return false
		}
		d := 0
		if parent != nil {
			d = depth[parent] + 1
		}
		depth[n] = d
		if n.Kind == mdblock.ReferenceDefinitionNode {
			return false
		}
		out = append(out, Block{Depth: d, Label: label(n), closedOnOpenLine: n.ClosedOnOpenLine})
		return true
	})
	return out
}

func label(n *mdblock.Node) string {
	switch n.Kind {
	case mdblock.HeadingNode:
		return "Heading(" + strconv.Itoa(n.Level) + ")"
	case mdblock.HTMLBlockNode:
		return "HTMLBlock(" + strconv.Itoa(int(n.HTML)) + ")"
	case mdblock.ListNode:
		if n.List != nil {
			return listLabel(n.List.Kind == mdblock.OrderedMarker, n.List.Start, n.List.Tight)
		}
	}
	return n.Kind.String()
}

func listLabel(ordered bool, start int, tight bool) string {
	var b strings.Builder
	b.WriteString("List(")
	if ordered {
		b.WriteString("ordered,start=")
		b.WriteString(strconv.Itoa(start))
	} else {
		b.WriteString("bullet")
	}
	if tight {
		b.WriteString(",tight)")
	} else {
		b.WriteString(",loose)")
	}
	return b.String()
}

// FlattenGoldmark lists the block nodes of a goldmark tree in document
// order, using the same labels as Flatten.
func FlattenGoldmark(root gmast.Node) []Block {
	var out []Block
	depth := -1
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if n.Type() == gmast.TypeInline {
			return gmast.WalkSkipChildren, nil
		}
		if !entering {
			depth--
			return gmast.WalkContinue, nil
		}
		depth++
		out = append(out, Block{Depth: depth, Label: goldmarkLabel(n)})
		return gmast.WalkContinue, nil
	})
	return out
}

func goldmarkLabel(n gmast.Node) string {
	switch node := n.(type) {
	case *gmast.Document:
		return mdblock.DocumentNode.String()
	case *gmast.Paragraph, *gmast.TextBlock:
		return mdblock.ParagraphNode.String()
	case *gmast.Heading:
		return "Heading(" + strconv.Itoa(node.Level) + ")"
	case *gmast.ThematicBreak:
		return mdblock.ThematicBreakNode.String()
	case *gmast.FencedCodeBlock:
		return mdblock.FencedCodeNode.String()
	case *gmast.CodeBlock:
		return mdblock.CodeBlockNode.String()
	case *gmast.HTMLBlock:
		return "HTMLBlock(" + strconv.Itoa(int(node.HTMLBlockType)) + ")"
	case *gmast.Blockquote:
		return mdblock.BlockQuoteNode.String()
	case *gmast.List:
		return listLabel(node.IsOrdered(), node.Start, node.IsTight)
	case *gmast.ListItem:
		return mdblock.ListItemNode.String()
	default:
		return n.Kind().String()
	}
}

// diff aligns the two block lists with a longest common subsequence and
// reports the leftovers. Leftovers that follow a block-tag HTML block closed
// on its opening line, up to the next aligned block, are known.
func diff(ours, theirs []Block) Report {
	n, m := len(ours), len(theirs)
	lcs := make([][]int, n+1)
	for i := range lcs {
		lcs[i] = make([]int, m+1)
	}
	for i := n - 1; i >= 0; i-- {
		for j := m - 1; j >= 0; j-- {
			switch {
			case ours[i].key() == theirs[j].key():
				lcs[i][j] = lcs[i+1][j+1] + 1
			case lcs[i+1][j] >= lcs[i][j+1]:
				lcs[i][j] = lcs[i+1][j]
			default:
				lcs[i][j] = lcs[i][j+1]
			}
		}
	}

	report := Report{Mdblock: ours, Reference: theirs}
	known := false
	i, j := 0, 0
	for i < n || j < m {
		switch {
		case i < n && j < m && ours[i].key() == theirs[j].key():
			report.Matched++
			known = ours[i].closedOnOpenLine
			i++
			j++
		case j >= m || (i < n && lcs[i+1][j] >= lcs[i][j+1]):
			if ours[i].closedOnOpenLine {
				known = true
			}
			report.Divergences = append(report.Divergences, Divergence{Side: OnlyMdblock, Block: ours[i], Known: known})
			i++
		default:
			report.Divergences = append(report.Divergences, Divergence{Side: OnlyReference, Block: theirs[j], Known: known})
			j++
		}
	}
	return report
}

// compareDefinitions checks that both parsers saw the same labels with the
// same destinations.
func compareDefinitions(table *mdblock.ReferenceTable, refs []parser.Reference) []Divergence {
	var out []Divergence
	seen := map[string]bool{}
	for _, ref := range refs {
		key := mdblock.NormalizeLabel(string(ref.Label()))
		if seen[key] {
			continue
		}
		seen[key] = true
		def, ok := table.Lookup(string(ref.Label()))
		switch {
		case !ok:
			out = append(out, Divergence{Side: ReferenceTable, Detail: "missing definition " + strconv.Quote(key)})
		case def.Destination != string(ref.Destination()):
			out = append(out, Divergence{
				Side:   ReferenceTable,
				Detail: "destination of " + strconv.Quote(key) + ": " + strconv.Quote(def.Destination) + " != " + strconv.Quote(string(ref.Destination())),
			})
		}
	}
	for _, key := range table.Labels() {
		if !seen[key] {
			out = append(out, Divergence{Side: ReferenceTable, Detail: "extra definition " + strconv.Quote(key)})
		}
	}
	return out
}
