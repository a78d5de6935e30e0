package mdblock

// NodeKind identifies the variant held by a Node.
type NodeKind uint8

const (
	DocumentNode NodeKind = iota + 1
	ParagraphNode
	HeadingNode
	ThematicBreakNode
	CodeBlockNode
	FencedCodeNode
	HTMLBlockNode
	BlockQuoteNode
	ListNode
	ListItemNode
	ReferenceDefinitionNode
	TextNode
	ReferenceLinkNode
	ReferenceImageNode
	LinkNode
	ImageNode
)

var nodeKindNames = [...]string{
	DocumentNode:            "Document",
	ParagraphNode:           "Paragraph",
	HeadingNode:             "Heading",
	ThematicBreakNode:       "ThematicBreak",
	CodeBlockNode:           "CodeBlock",
	FencedCodeNode:          "FencedCode",
	HTMLBlockNode:           "HTMLBlock",
	BlockQuoteNode:          "BlockQuote",
	ListNode:                "List",
	ListItemNode:            "ListItem",
	ReferenceDefinitionNode: "ReferenceDefinition",
	TextNode:                "Text",
	ReferenceLinkNode:       "ReferenceLink",
	ReferenceImageNode:      "ReferenceImage",
	LinkNode:                "Link",
	ImageNode:               "Image",
}

func (k NodeKind) String() string {
	if int(k) < len(nodeKindNames) && nodeKindNames[k] != "" {
		return nodeKindNames[k]
	}
	return "Unknown"
}

// IsInline reports whether nodes of this kind appear inside paragraphs and
// headings.
func (k NodeKind) IsInline() bool {
	return k >= TextNode
}

// RefForm is the bracket syntax a reference was written in.
type RefForm uint8

const (
	RefFull      RefForm = iota + 1 // [text][label]
	RefCollapsed                    // [label][]
	RefShortcut                     // [label]
)

func (f RefForm) String() string {
	switch f {
	case RefFull:
		return "full"
	case RefCollapsed:
		return "collapsed"
	case RefShortcut:
		return "shortcut"
	default:
		return "none"
	}
}

// ListInfo describes a List node.
type ListInfo struct {
	Kind      MarkerKind
	Bullet    byte
	Delimiter byte
	Start     int
	Tight     bool
}

// ItemInfo describes a ListItem node.
type ItemInfo struct {
	Marker           ListMarker
	ContentIndent    int
	HasInternalBlank bool
	FollowedByBlank  bool
}

// RefInfo describes reference definitions and unresolved references.
type RefInfo struct {
	Label string // as written
	Text  string // link text or image alt, as written
	Form  RefForm
	// Destination and Title are set on definitions.
	Destination string
	Title       string
}

// Node is a tagged tree node. Which fields are meaningful depends on Kind.
// Span locates top-level blocks in the document source; nested blocks and
// inline nodes carry a zero Span.
type Node struct {
	Kind     NodeKind
	Children []*Node
	Span     Span

	// Literal holds text for Text nodes, raw bytes for HTML blocks, code
	// for code blocks and the raw inline source of paragraphs and headings.
	Literal string
	Level   int      // Heading
	Info    string   // FencedCode
	HTML    HTMLKind // HTMLBlock
	List    *ListInfo
	Item    *ItemInfo
	Ref     *RefInfo
	// Destination and Title are set on Link and Image nodes.
	Destination string
	Title       string
	// ClosedOnOpenLine marks an HTML block-tag block that ended at its
	// first line because the close tag shared it.
	ClosedOnOpenLine bool
}

// NewText returns a Text node.
func NewText(s string) *Node {
	return &Node{Kind: TextNode, Literal: s}
}

// Clone returns a deep copy of n.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	c := *n
	if n.List != nil {
		li := *n.List
		c.List = &li
	}
	if n.Item != nil {
		it := *n.Item
		c.Item = &it
	}
	if n.Ref != nil {
		ref := *n.Ref
		c.Ref = &ref
	}
	if n.Children != nil {
		c.Children = make([]*Node, len(n.Children))
		for i, child := range n.Children {
			c.Children[i] = child.Clone()
		}
	}
	return &c
}

// WalkFunc is called for every node in pre-order with the node's parent and
// its index among the parent's children. The root has a nil parent. The
// callback may replace parent.Children[index]; the walk then descends into the
// replacement. Returning false skips the node's children.
type WalkFunc func(n, parent *Node, index int) bool

type walkFrame struct {
	parent *Node
	index  int
}

// Walk visits root and its descendants in document order using an explicit
// stack.
func Walk(root *Node, fn WalkFunc) {
	if root == nil {
		return
	}
	if !fn(root, nil, 0) {
		return
	}
	stack := []walkFrame{{parent: root, index: 0}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.index >= len(top.parent.Children) {
			stack = stack[:len(stack)-1]
			continue
		}
		parent, idx := top.parent, top.index
		top.index++
		if parent.Children[idx] == nil {
			continue
		}
		if !fn(parent.Children[idx], parent, idx) {
			continue
		}
		if child := parent.Children[idx]; len(child.Children) > 0 {
			stack = append(stack, walkFrame{parent: child})
		}
	}
}

// Count returns the number of nodes of kind k under root, root included.
func Count(root *Node, k NodeKind) int {
	n := 0
	Walk(root, func(node, _ *Node, _ int) bool {
		if node.Kind == k {
			n++
		}
		return true
	})
	return n
}
