package worktree

import (
	"github.com/dshills/docstorm/internal/document"
	"github.com/dshills/docstorm/internal/style"
	"github.com/dshills/docstorm/internal/treepath"
)

// JoinSiblingIntoNode merges a sibling of node into node. Forward appends
// the following sibling, Backward prepends the preceding one. Both nodes
// must have the same type. The emptied sibling is deleted and any two
// mergeable children brought together at the seam are joined in turn.
func (t *Tree) JoinSiblingIntoNode(id NodeID, dir Direction) error {
	const op = "join nodes"
	dst, err := t.lookup(op, id)
	if err != nil {
		return err
	}
	if !dst.hasPart {
		return invariantf(op, "the document root has no siblings")
	}
	ids := t.nodes[dst.parent].childIDs(dst.part.Facet)
	si := dst.part.Index + 1
	if dir == Backward {
		si = dst.part.Index - 1
	}
	if si < 0 || si >= len(ids) {
		return invariantf(op, "%s has no %s sibling", dst.typ.Name, dir)
	}
	src := t.nodes[ids[si]]
	if src.typ != dst.typ {
		return invariantf(op, "cannot join %s into %s", src.typ.Name, dst.typ.Name)
	}
	t.join(dst, src, dir)
	return nil
}

// join moves the content of src into dst and deletes src.
func (t *Tree) join(dst, src *Node, dir Direction) {
	forward := dir == Forward
	dstLen, srcLen := dst.Len(), src.Len()
	seamAt := dstLen
	if !forward {
		seamAt = srcLen
	}

	if forward {
		dst.text = append(dst.text, src.text...)
		dst.fancy = append(dst.fancy, src.fancy...)
		dst.children = append(dst.children, src.children...)
	} else {
		dst.text = append(append([]string(nil), src.text...), dst.text...)
		dst.fancy = append(append([]document.FancyGrapheme(nil), src.fancy...), dst.fancy...)
		dst.children = append(append([]NodeID(nil), src.children...), dst.children...)
	}
	dst.reindex("")
	src.text, src.fancy, src.children = nil, nil, nil

	for _, name := range dst.typ.Behavior().NodeFacets {
		a, b := dst.childIDs(name), src.childIDs(name)
		if len(b) == 0 {
			continue
		}
		var merged []NodeID
		if forward {
			merged = append(append(merged, a...), b...)
		} else {
			merged = append(append(merged, b...), a...)
		}
		dst.setChildIDs(name, merged)
		dst.reindex(name)
		delete(src.facets, name)
	}

	for _, name := range dst.typ.Behavior().StyleFacets {
		a, b := dst.Styles(name), src.Styles(name)
		if a == nil && b == nil {
			continue
		}
		var head *style.Runs
		if forward {
			head = orEmpty(a)
			head.Join(orEmpty(b), dstLen)
		} else {
			head = orEmpty(b).Clone()
			head.Join(orEmpty(a), srcLen)
		}
		dst.facets[name] = head
	}

	// Anchors with a grapheme index keep pointing at the same grapheme;
	// node anchors of src and invalidated node anchors of dst go to the seam.
	own := dst.Anchors()
	var toSeam []*Anchor
	for _, id := range src.Anchors() {
		a := t.anchors[id]
		if idx, ok := a.GraphemeIndex(); ok {
			if forward {
				idx += dstLen
			}
			t.retarget(a, AtGrapheme(dst.id, idx, a.spec.Orientation))
			t.anchorEvent(TopicAnchorUpdated, a)
			continue
		}
		toSeam = append(toSeam, a)
	}
	for _, id := range own {
		a := t.anchors[id]
		if idx, ok := a.GraphemeIndex(); ok {
			if !forward {
				t.retarget(a, AtGrapheme(dst.id, idx+srcLen, a.spec.Orientation))
				t.anchorEvent(TopicAnchorUpdated, a)
			}
			continue
		}
		if a.spec.Orientation == treepath.On && dst.Len() > 0 {
			toSeam = append(toSeam, a)
		}
	}
	if len(toSeam) > 0 {
		spec, err := t.AnchorFromCursor(t.seamPosition(dst, seamAt))
		if err == nil {
			for _, a := range toSeam {
				t.retarget(a, spec)
				t.anchorEvent(TopicAnchorUpdated, a)
			}
		} else {
			t.log.Error("join seam of %s: %v", dst.typ.Name, err)
		}
	}

	t.deleteItems([]deleteItem{{node: src}}, deleteConfig{direction: dir})
	publish(t, TopicNodesJoined, NodesJoinedEvent{Destination: dst.id, Source: src.id, Direction: dir})

	if seamAt > 0 && seamAt < len(dst.children) {
		left := t.nodes[dst.children[seamAt-1]]
		right := t.nodes[dst.children[seamAt]]
		if mergeable(left, right) {
			t.log.Debug("cascading join of %s at seam %d of %s", left.typ.Name, seamAt, dst.typ.Name)
			t.join(left, right, Forward)
		}
	}
}

// seamPosition returns the position between the first at children of n and
// the rest.
func (t *Tree) seamPosition(n *Node, at int) treepath.Cursor {
	switch {
	case n.Len() == 0:
		return treepath.NewCursor(t.PathOf(n), treepath.On)
	case n.HasGraphemes() && at > 0:
		return t.positionInText(n, at, Backward)
	case n.HasGraphemes():
		return t.positionInText(n, 0, Forward)
	case at > 0:
		return t.positionAfter(t.nodes[n.children[at-1]])
	default:
		return t.positionBefore(t.nodes[n.children[0]])
	}
}

func orEmpty(r *style.Runs) *style.Runs {
	if r == nil {
		return &style.Runs{}
	}
	return r
}

// mergeable reports whether a and b can be joined without losing anything
// but style boundaries: same type, grapheme children and equal scalar
// facets.
func mergeable(a, b *Node) bool {
	if a.typ != b.typ || !a.HasGraphemes() {
		return false
	}
	for _, spec := range a.typ.Facets {
		// only scalar values are stored as document.FacetValue
		av, aok := a.facets[spec.Name].(document.FacetValue)
		bv, bok := b.facets[spec.Name].(document.FacetValue)
		if aok != bok || (aok && av != bv) {
			return false
		}
	}
	return true
}
