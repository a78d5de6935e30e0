package mdblock

import (
	"errors"
	"strings"

	"golang.org/x/text/cases"
)

// ErrDefinitionsNotCollected reports a resolve call made without a table.
var ErrDefinitionsNotCollected = errors.New("reference definitions not collected")

// ReferenceDefinition is a link reference definition.
type ReferenceDefinition struct {
	Label       string
	Destination string
	Title       string
}

// ReferenceTable maps normalized labels to the first definition seen for
// each. It is filled by CollectDefinitions and read-only afterwards.
type ReferenceTable struct {
	defs  map[string]ReferenceDefinition
	order []string
}

// NewReferenceTable returns an empty table.
func NewReferenceTable() *ReferenceTable {
	return &ReferenceTable{defs: make(map[string]ReferenceDefinition)}
}

// add inserts def unless its label is already present. Definitions whose
// label normalizes to nothing are ignored.
func (t *ReferenceTable) add(def ReferenceDefinition) bool {
	key := NormalizeLabel(def.Label)
	if key == "" {
		return false
	}
	if _, exists := t.defs[key]; exists {
		return false
	}
	t.defs[key] = def
	t.order = append(t.order, key)
	return true
}

// Lookup returns the definition for label, matched case-insensitively with
// whitespace collapsed.
func (t *ReferenceTable) Lookup(label string) (ReferenceDefinition, bool) {
	if t == nil {
		return ReferenceDefinition{}, false
	}
	key := NormalizeLabel(label)
	if key == "" {
		return ReferenceDefinition{}, false
	}
	def, ok := t.defs[key]
	return def, ok
}

// Len returns the number of distinct labels.
func (t *ReferenceTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.order)
}

// Labels returns the normalized labels in definition order.
func (t *ReferenceTable) Labels() []string {
	if t == nil {
		return nil
	}
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// NormalizeLabel case-folds label and collapses internal runs of whitespace
// to a single space, trimming both ends.
func NormalizeLabel(label string) string {
	fields := strings.Fields(label)
	if len(fields) == 0 {
		return ""
	}
	// A Caser keeps state, so each call gets its own.
	return cases.Fold().String(strings.Join(fields, " "))
}

// CollectDefinitions walks the whole tree once and builds the reference
// table. The first definition of a label wins regardless of where later ones
// appear.
func CollectDefinitions(root *Node) *ReferenceTable {
	table := NewReferenceTable()
	Walk(root, func(n, _ *Node, _ int) bool {
		if n.Kind == ReferenceDefinitionNode && n.Ref != nil {
			table.add(ReferenceDefinition{
				Label:       n.Ref.Label,
				Destination: n.Ref.Destination,
				Title:       n.Ref.Title,
			})
		}
		return !n.Kind.IsInline()
	})
	return table
}

// ResolveReferences replaces every ReferenceLink and ReferenceImage under
// root in place: with a Link or Image when the label is in table, otherwise
// with a Text node holding the original bracket syntax. Running it again on a
// resolved tree changes nothing. A nil table is a caller error.
func ResolveReferences(root *Node, table *ReferenceTable) error {
	return resolveReferences(root, table, nil)
}

// resolveReferences calls miss with the label of every reference that is
// demoted to text.
func resolveReferences(root *Node, table *ReferenceTable, miss func(label string)) error {
	if table == nil {
		return ErrDefinitionsNotCollected
	}
	Walk(root, func(n, parent *Node, index int) bool {
		if parent == nil || (n.Kind != ReferenceLinkNode && n.Kind != ReferenceImageNode) {
			return true
		}
		resolved, ok := resolveReference(n, table)
		if !ok && miss != nil && n.Ref != nil {
			miss(n.Ref.Label)
		}
		parent.Children[index] = resolved
		return false
	})
	return nil
}

func resolveReference(n *Node, table *ReferenceTable) (*Node, bool) {
	ref := n.Ref
	if ref == nil {
		return NewText(""), false
	}
	def, ok := table.Lookup(ref.Label)
	if !ok {
		return NewText(literalReference(n.Kind == ReferenceImageNode, ref)), false
	}
	kind := LinkNode
	if n.Kind == ReferenceImageNode {
		kind = ImageNode
	}
	return &Node{
		Kind:        kind,
		Children:    []*Node{NewText(ref.Text)},
		Destination: def.Destination,
		Title:       def.Title,
	}, true
}

// literalReference rebuilds the bracket syntax of an unresolved reference.
// When the text equals the label the short form is used.
func literalReference(image bool, ref *RefInfo) string {
	var b strings.Builder
	if image {
		b.WriteByte('!')
	}
	b.WriteByte('[')
	b.WriteString(ref.Text)
	b.WriteByte(']')
	if ref.Text != ref.Label {
		b.WriteByte('[')
		b.WriteString(ref.Label)
		b.WriteByte(']')
	}
	return b.String()
}
