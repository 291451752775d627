package worktree

import (
	"github.com/dshills/docstorm/internal/document"
	"github.com/dshills/docstorm/internal/schema"
	"github.com/dshills/docstorm/internal/treepath"
)

// InsertNode hydrates tpl and inserts it under parent at index. An empty
// facet inserts among the ordinary children; otherwise the node goes into
// the named node array facet.
func (t *Tree) InsertNode(parent NodeID, tpl *document.Node, index int, facet string) (*Node, error) {
	const op = "insert node"
	p, err := t.lookup(op, parent)
	if err != nil {
		return nil, err
	}
	if tpl == nil || tpl.Type == nil {
		return nil, structuralf(op, "missing template")
	}
	if facet == "" {
		if !p.typ.CanContain(tpl.Type) {
			return nil, structuralf(op, "%s cannot contain %s (%s)", p.typ.Name, tpl.Type.Name, tpl.Type.Category)
		}
	} else if err := p.typ.CanHoldInFacet(facet, tpl.Type); err != nil {
		return nil, wrapStructural(op, "facet rejects node", err)
	}
	ids := p.childIDs(facet)
	if index < 0 || index > len(ids) {
		return nil, structuralf(op, "index %d out of range [0,%d]", index, len(ids))
	}
	if err := validateTemplate(tpl); err != nil {
		return nil, wrapStructural(op, "invalid template", err)
	}

	n := t.hydrate(tpl)
	spliced := make([]NodeID, 0, len(ids)+1)
	spliced = append(spliced, ids[:index]...)
	spliced = append(spliced, n.id)
	spliced = append(spliced, ids[index:]...)
	p.setChildIDs(facet, spliced)
	p.reindex(facet)
	if facet == "" && len(ids) == 0 {
		t.settleOnAnchors(p)
	}
	t.log.Debug("inserted %s under %s at %d", n.typ.Name, p.typ.Name, index)
	return n, nil
}

// settleOnAnchors moves the On anchors of n, which just stopped being
// empty, to the last position inside it.
func (t *Tree) settleOnAnchors(n *Node) {
	var moved []*Anchor
	for _, id := range n.Anchors() {
		a := t.anchors[id]
		if !a.spec.HasGraphemeIndex && a.spec.Orientation == treepath.On {
			moved = append(moved, a)
		}
	}
	if len(moved) == 0 {
		return
	}
	spec, err := t.AnchorFromCursor(t.positionInside(n, true))
	if err != nil {
		t.log.Error("settling anchors of %s: %v", n.typ.Name, err)
		return
	}
	for _, a := range moved {
		t.retarget(a, spec)
		t.anchorEvent(TopicAnchorUpdated, a)
	}
}

// InsertNodeText segments text into graphemes and inserts them into node at
// index.
func (t *Tree) InsertNodeText(node NodeID, index int, text string) error {
	const op = "insert text"
	n, err := t.graphemeTarget(op, node, index)
	if err != nil {
		return err
	}
	if t.normalize {
		text = document.Normalize(text)
	}
	parts := document.Graphemes(text)
	gs := make([]document.FancyGrapheme, len(parts))
	for i, g := range parts {
		gs[i] = document.FancyGrapheme{Value: g}
	}
	t.insertGraphemes(n, index, gs)
	return nil
}

// InsertNodeGrapheme inserts a single grapheme into node at index. Emblems
// are only accepted by fancy text nodes.
func (t *Tree) InsertNodeGrapheme(node NodeID, index int, g document.FancyGrapheme) error {
	const op = "insert grapheme"
	n, err := t.graphemeTarget(op, node, index)
	if err != nil {
		return err
	}
	if len(document.Graphemes(g.Value)) != 1 {
		return structuralf(op, "%q is not a single grapheme", g.Value)
	}
	if g.Emblem != "" && n.typ.Children != schema.ChildrenFancyText {
		return structuralf(op, "%s does not accept emblems", n.typ.Name)
	}
	t.insertGraphemes(n, index, []document.FancyGrapheme{g})
	return nil
}

func (t *Tree) graphemeTarget(op string, id NodeID, index int) (*Node, error) {
	n, err := t.lookup(op, id)
	if err != nil {
		return nil, err
	}
	if !n.HasGraphemes() {
		return nil, structuralf(op, "%s holds no graphemes", n.typ.Name)
	}
	if index < 0 || index > n.Len() {
		return nil, structuralf(op, "index %d out of range [0,%d]", index, n.Len())
	}
	return n, nil
}

// insertGraphemes splices gs into n at index and shifts every anchor and
// style run at or beyond index. An On anchor of an empty container moves
// after the last inserted grapheme.
func (t *Tree) insertGraphemes(n *Node, index int, gs []document.FancyGrapheme) {
	count := len(gs)
	if count == 0 {
		return
	}
	wasEmpty := n.Len() == 0
	if n.typ.Children == schema.ChildrenFancyText {
		fancy := make([]document.FancyGrapheme, 0, len(n.fancy)+count)
		fancy = append(fancy, n.fancy[:index]...)
		fancy = append(fancy, gs...)
		n.fancy = append(fancy, n.fancy[index:]...)
	} else {
		text := make([]string, 0, len(n.text)+count)
		text = append(text, n.text[:index]...)
		for _, g := range gs {
			text = append(text, g.Value)
		}
		n.text = append(text, n.text[index:]...)
	}

	for _, id := range n.Anchors() {
		a := t.anchors[id]
		switch {
		case a.spec.HasGraphemeIndex && a.spec.GraphemeIndex >= index:
			s := a.spec
			s.GraphemeIndex += count
			t.moveAnchor(a, s)
		case !a.spec.HasGraphemeIndex && wasEmpty && a.spec.Orientation == treepath.On:
			t.retarget(a, AtGrapheme(n.id, count-1, treepath.After))
		default:
			continue
		}
		t.anchorEvent(TopicAnchorUpdated, a)
	}
	for _, r := range n.styleRuns() {
		r.UpdateDueToGraphemeInsertion(index, count)
	}
}
