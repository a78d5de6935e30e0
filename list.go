package mdblock

// List is an assembled run of same-kind sibling items.
type List struct {
	Kind  MarkerKind
	Items []ListItem
	Span  Span
}

// Loose reports whether any item holds an internal blank line or any two
// items are separated by one.
func (l List) Loose() bool {
	for _, it := range l.Items {
		if it.HasInternalBlank || it.FollowedByBlank {
			return true
		}
	}
	return false
}

// Tight is the negation of Loose.
func (l List) Tight() bool { return !l.Loose() }

// Start returns the number of the first item of an ordered list.
func (l List) Start() int {
	if l.Kind != OrderedMarker || len(l.Items) == 0 {
		return 0
	}
	return l.Items[0].Marker.Number
}

// ParseList assembles a list with the default parser.
func ParseList(c Cursor) (List, Cursor, bool) {
	return defaultParser.ParseList(c)
}

// ParseList parses the first item without constraint, which fixes the list
// kind, then keeps parsing items of the same kind. Only bullet versus ordered
// must agree between siblings; the bullet character and the ordered delimiter
// may change. Blank lines between items mark the preceding item
// FollowedByBlank. The list stops at the first line that does not start a
// same-kind item, when no progress is made, or at the item ceiling. Trailing
// blank lines are not part of the list.
func (p *Parser) ParseList(c Cursor) (List, Cursor, bool) {
	first, cur, ok := p.ParseListItem(c, nil)
	if !ok {
		p.noMatch("list", c)
		return List{}, c, false
	}
	list := List{
		Kind:  first.Marker.Kind,
		Items: []ListItem{first},
		Span:  Span{Start: c.Offset},
	}
	kind := list.Kind
	for {
		if len(list.Items) >= p.cfg.maxListItems {
			p.ceilingHit("list-items", p.cfg.maxListItems, cur)
			break
		}
		probe := cur
		skipped := false
		for !probe.EOF() && isBlank(probe.Text()) {
			probe = probe.NextLine()
			skipped = true
		}
		if probe.EOF() {
			break
		}
		item, after, ok := p.ParseListItem(probe, &kind)
		if !ok {
			break
		}
		if after.Offset <= probe.Offset {
			break
		}
		if skipped {
			list.Items[len(list.Items)-1].FollowedByBlank = true
		}
		list.Items = append(list.Items, item)
		cur = after
	}
	list.Span.End = cur.Offset
	return list, cur, true
}
