package worktree

import (
	"github.com/dshills/docstorm/internal/document"
	"github.com/dshills/docstorm/internal/schema"
	"github.com/dshills/docstorm/internal/treepath"
)

// SplitNode splits node in two at the position addressed by at, a path of
// child indices relative to node. The content from at onward moves to a new
// sibling inserted right after node, which is returned. With a deeper path
// the child on the boundary is split first, recursively, so that its tail
// travels with the new sibling.
func (t *Tree) SplitNode(id NodeID, at treepath.Path) (*Node, error) {
	const op = "split node"
	n, err := t.lookup(op, id)
	if err != nil {
		return nil, err
	}
	if err := t.checkSplit(op, n, at); err != nil {
		return nil, err
	}
	return t.split(n, at), nil
}

// checkSplit validates the whole split path before anything changes.
func (t *Tree) checkSplit(op string, n *Node, at treepath.Path) error {
	if at.Len() == 0 {
		return structuralf(op, "empty split path")
	}
	cur := n
	for d, part := range at {
		if !cur.typ.Behavior().Splittable || !cur.hasPart {
			return invariantf(op, "%s is not splittable", cur.typ.Name)
		}
		if part.IsFacet() || !part.HasIndex {
			return structuralf(op, "split path %s must address ordinary children", at)
		}
		last := d == at.Len()-1
		if last {
			if part.Index < 0 || part.Index > cur.Len() {
				return structuralf(op, "split index %d out of range [0,%d]", part.Index, cur.Len())
			}
			break
		}
		if cur.HasGraphemes() || part.Index < 0 || part.Index >= len(cur.children) {
			return structuralf(op, "split path %s does not address a child of %s", at, cur.typ.Name)
		}
		cur = t.nodes[cur.children[part.Index]]
	}
	return nil
}

func (t *Tree) split(n *Node, at treepath.Path) *Node {
	sib := t.cloneEmpty(n)
	parent := t.nodes[n.parent]
	facet := n.part.Facet
	ids := parent.childIDs(facet)
	i := n.part.Index + 1
	spliced := make([]NodeID, 0, len(ids)+1)
	spliced = append(spliced, ids[:i]...)
	spliced = append(spliced, sib.id)
	spliced = append(spliced, ids[i:]...)
	parent.setChildIDs(facet, spliced)
	parent.reindex(facet)

	k := at[0].Index
	if at.Len() > 1 {
		// the boundary child's own tail lands at k+1
		t.split(t.nodes[n.children[k]], at[1:])
		k++
	}
	t.moveTail(n, sib, k)
	t.log.Debug("split %s at %s", n.typ.Name, at)
	return sib
}

// cloneEmpty creates a node of n's type holding n's scalar facets.
func (t *Tree) cloneEmpty(n *Node) *Node {
	c := t.newNode(n.typ)
	for name, v := range n.facets {
		if fv, ok := v.(document.FacetValue); ok {
			c.facets[name] = fv
		}
	}
	return c
}

// moveTail moves the children of n from k onward to the start of dst, which
// must be empty.
func (t *Tree) moveTail(n, dst *Node, k int) {
	switch {
	case n.HasGraphemes():
		if n.typ.Children == schema.ChildrenFancyText {
			dst.fancy = append([]document.FancyGrapheme(nil), n.fancy[k:]...)
			n.fancy = n.fancy[:k:k]
		} else {
			dst.text = append([]string(nil), n.text[k:]...)
			n.text = n.text[:k:k]
		}
		for _, name := range n.typ.Behavior().StyleFacets {
			if r := n.Styles(name); r != nil {
				dst.facets[name] = r.SplitAt(k)
			}
		}
	default:
		dst.children = append([]NodeID(nil), n.children[k:]...)
		n.children = n.children[:k:k]
		dst.reindex("")
	}

	for _, id := range n.Anchors() {
		a := t.anchors[id]
		if idx, ok := a.GraphemeIndex(); ok && idx >= k {
			t.retarget(a, AtGrapheme(dst.id, idx-k, a.spec.Orientation))
			t.anchorEvent(TopicAnchorUpdated, a)
		}
	}
}
