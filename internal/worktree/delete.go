package worktree

import (
	"github.com/dshills/docstorm/internal/schema"
	"github.com/dshills/docstorm/internal/treepath"
)

// deleteItem is either a whole subtree (count == 0) or a run of count
// graphemes of node starting at from.
type deleteItem struct {
	node  *Node
	from  int
	count int
}

func (d deleteItem) isRun() bool { return d.count > 0 }

type relocKind int

const (
	relocText relocKind = iota
	relocSibling
	relocParent
)

// relocation is the single target computed for all orphaned anchors of one
// delete, before anything is mutated. It names a node that survives the
// delete; the concrete cursor is derived from it afterwards.
type relocation struct {
	kind relocKind
	node *Node
	from int
}

// seam is a pair of siblings separated only by deleted nodes.
type seam struct {
	left, right NodeID
}

// DeleteNode deletes a node and its subtree. Anchors originating from the
// deleted nodes are deleted; anchors that merely target them are relocated
// to the nearest valid position outside the deleted subtree.
func (t *Tree) DeleteNode(id NodeID, opts ...DeleteOption) error {
	const op = "delete node"
	n, err := t.lookup(op, id)
	if err != nil {
		return err
	}
	if id == t.root {
		return invariantf(op, "cannot delete the document root")
	}
	t.deleteItems([]deleteItem{{node: n}}, t.deleteConfig(opts))
	return nil
}

// DeleteGrapheme deletes the grapheme at index of node.
func (t *Tree) DeleteGrapheme(node NodeID, index int, opts ...DeleteOption) error {
	const op = "delete grapheme"
	n, err := t.lookup(op, node)
	if err != nil {
		return err
	}
	if !n.HasGraphemes() {
		return structuralf(op, "%s holds no graphemes", n.typ.Name)
	}
	if index < 0 || index >= n.Len() {
		return structuralf(op, "index %d out of range [0,%d)", index, n.Len())
	}
	t.deleteItems([]deleteItem{{node: n, from: index, count: 1}}, t.deleteConfig(opts))
	return nil
}

// DeleteAtPath deletes the node or grapheme at p. It reports false, without
// error, when p does not resolve.
func (t *Tree) DeleteAtPath(p treepath.Path, opts ...DeleteOption) (bool, error) {
	tip, ok := t.Resolve(p)
	if !ok {
		return false, nil
	}
	switch n := tip.(type) {
	case Grapheme:
		return true, t.DeleteGrapheme(n.node.id, n.index, opts...)
	case *Node:
		return true, t.DeleteNode(n.id, opts...)
	}
	return false, nil
}

// deleteItems removes items, given in document order. Every decision that
// depends on the tree shape is taken before the first mutation.
func (t *Tree) deleteItems(items []deleteItem, cfg deleteConfig) {
	if len(items) == 0 {
		return
	}

	doomed := make(map[NodeID]bool)
	var doomedOrder []*Node
	for _, it := range items {
		if !it.isRun() {
			doomedOrder = t.collectSubtree(it.node, doomed, doomedOrder)
		}
	}

	var originating, orphans []*Anchor
	claimed := make(map[AnchorID]bool)
	for _, n := range doomedOrder {
		for _, id := range n.facetAnchorIDs() {
			if a, ok := t.anchors[id]; ok && !claimed[id] {
				claimed[id] = true
				originating = append(originating, a)
			}
		}
	}
	for _, n := range doomedOrder {
		for _, id := range n.Anchors() {
			if !claimed[id] {
				claimed[id] = true
				orphans = append(orphans, t.anchors[id])
			}
		}
	}
	for _, it := range items {
		if !it.isRun() {
			continue
		}
		for _, id := range it.node.Anchors() {
			a := t.anchors[id]
			idx, ok := a.GraphemeIndex()
			if ok && idx >= it.from && idx < it.from+it.count && !claimed[id] {
				claimed[id] = true
				orphans = append(orphans, a)
			}
		}
	}

	edge := items[0]
	if cfg.direction == Forward {
		edge = items[len(items)-1]
	}
	plan := t.planRelocation(edge, doomed, cfg.direction)

	var seams []seam
	if cfg.merge {
		seams = t.findSeams(items, doomed)
	}

	for i := len(items) - 1; i >= 0; i-- {
		it := items[i]
		if it.isRun() {
			t.removeGraphemes(it.node, it.from, it.count)
		} else {
			t.detach(it.node)
		}
	}
	for _, a := range originating {
		t.removeAnchor(a)
	}
	for _, n := range doomedOrder {
		delete(t.nodes, n.id)
	}

	if len(orphans) > 0 {
		t.relocate(orphans, plan, cfg.direction)
	}
	for i := len(seams) - 1; i >= 0; i-- {
		t.mergeSeam(seams[i])
	}
}

// collectSubtree appends n and every node below it, facet nodes included,
// in pre-order.
func (t *Tree) collectSubtree(n *Node, doomed map[NodeID]bool, order []*Node) []*Node {
	doomed[n.id] = true
	order = append(order, n)
	for _, id := range n.children {
		order = t.collectSubtree(t.nodes[id], doomed, order)
	}
	for _, name := range n.typ.Behavior().NodeFacets {
		for _, id := range n.childIDs(name) {
			order = t.collectSubtree(t.nodes[id], doomed, order)
		}
	}
	return order
}

// facetAnchorIDs returns the anchors owned by n's anchor facets.
func (n *Node) facetAnchorIDs() []AnchorID {
	var out []AnchorID
	for _, name := range n.typ.Behavior().AnchorFacet {
		switch v := n.facets[name].(type) {
		case anchorFacet:
			out = append(out, AnchorID(v))
		case anchorRangeFacet:
			out = append(out, v.from, v.to)
		}
	}
	return out
}

func (t *Tree) planRelocation(edge deleteItem, doomed map[NodeID]bool, dir Direction) relocation {
	if edge.isRun() {
		return relocation{kind: relocText, node: edge.node, from: edge.from}
	}
	parent := t.nodes[edge.node.parent]
	ids := parent.childIDs(edge.node.part.Facet)
	step := -1
	if dir == Forward {
		step = 1
	}
	for i := edge.node.part.Index + step; i >= 0 && i < len(ids); i += step {
		if !doomed[ids[i]] {
			return relocation{kind: relocSibling, node: t.nodes[ids[i]]}
		}
	}
	return relocation{kind: relocParent, node: parent}
}

func (t *Tree) findSeams(items []deleteItem, doomed map[NodeID]bool) []seam {
	var out []seam
	seen := make(map[NodeID]bool)
	for _, it := range items {
		if it.isRun() {
			continue
		}
		ids := t.nodes[it.node.parent].childIDs(it.node.part.Facet)
		var left, right NodeID
		for i := it.node.part.Index - 1; i >= 0; i-- {
			if !doomed[ids[i]] {
				left = ids[i]
				break
			}
		}
		for i := it.node.part.Index + 1; i < len(ids); i++ {
			if !doomed[ids[i]] {
				right = ids[i]
				break
			}
		}
		if left == "" || right == "" || seen[left] {
			continue
		}
		seen[left] = true
		out = append(out, seam{left: left, right: right})
	}
	return out
}

// detach unlinks n from its parent and re-indexes the remaining siblings.
func (t *Tree) detach(n *Node) {
	parent := t.nodes[n.parent]
	facet := n.part.Facet
	ids := parent.childIDs(facet)
	i := n.part.Index
	rest := make([]NodeID, 0, len(ids)-1)
	rest = append(rest, ids[:i]...)
	rest = append(rest, ids[i+1:]...)
	parent.setChildIDs(facet, rest)
	parent.reindex(facet)
	n.parent, n.hasPart = "", false
}

// removeGraphemes splices out [from, from+count) of n and shifts the
// anchors and style runs beyond the run.
func (t *Tree) removeGraphemes(n *Node, from, count int) {
	end := from + count
	if n.typ.Children == schema.ChildrenFancyText {
		n.fancy = append(n.fancy[:from], n.fancy[end:]...)
	} else {
		n.text = append(n.text[:from], n.text[end:]...)
	}
	for _, id := range n.Anchors() {
		a := t.anchors[id]
		if idx, ok := a.GraphemeIndex(); ok && idx >= end {
			s := a.spec
			s.GraphemeIndex -= count
			t.moveAnchor(a, s)
			t.anchorEvent(TopicAnchorUpdated, a)
		}
	}
	for _, r := range n.styleRuns() {
		r.UpdateDueToGraphemeDeletion(from, count)
		// a deleted suffix folds into an entry past the last grapheme
		r.Truncate(n.Len())
	}
}

func (t *Tree) relocationCursor(plan relocation, dir Direction) treepath.Cursor {
	switch plan.kind {
	case relocText:
		return t.positionInText(plan.node, plan.from, dir)
	case relocSibling:
		if dir == Backward {
			return t.positionAfter(plan.node)
		}
		return t.positionBefore(plan.node)
	default:
		return t.positionInside(plan.node, dir == Forward)
	}
}

// relocate points every orphan at the position derived from plan.
func (t *Tree) relocate(orphans []*Anchor, plan relocation, dir Direction) {
	cur := t.relocationCursor(plan, dir)
	spec, err := t.AnchorFromCursor(cur)
	if err != nil {
		t.log.Error("relocation target %s: %v", cur, err)
		spec = AtNode(t.root, treepath.On)
	}
	for _, a := range orphans {
		t.anchorEvent(TopicAnchorOrphaned, a)
		t.retarget(a, spec)
		t.anchorEvent(TopicAnchorUpdated, a)
	}
	t.log.Debug("relocated %d orphaned anchors to %s", len(orphans), cur)
}

func (t *Tree) mergeSeam(s seam) {
	left, ok := t.nodes[s.left]
	if !ok {
		return
	}
	right, ok := t.nodes[s.right]
	if !ok || !left.hasPart || !right.hasPart {
		return
	}
	if left.parent != right.parent || left.part.Facet != right.part.Facet || right.part.Index != left.part.Index+1 {
		return
	}
	if !mergeable(left, right) {
		return
	}
	t.log.Debug("merging %s siblings made adjacent by delete", left.typ.Name)
	t.join(left, right, Forward)
}
