package worktree

import (
	"github.com/dshills/docstorm/internal/document"
)

// SetFacet replaces the value of a facet of node. The old value is
// released first: node array subtrees are deleted, with anchors targeting
// them relocated to node, and anchors created by an old anchor value are
// deleted. Anchor targets in v are paths from the document root; anchors
// declared inside node array templates are relative to each template.
func (t *Tree) SetFacet(id NodeID, name string, v document.FacetValue) error {
	const op = "set facet"
	n, err := t.lookup(op, id)
	if err != nil {
		return err
	}
	if err := document.CheckFacet(n.typ, name, v); err != nil {
		return wrapStructural(op, "facet rejects value", err)
	}

	var refs []resolvedRef
	switch fv := v.(type) {
	case document.AnchorRef:
		r, err := resolveRef(t.Root(), fv)
		if err != nil {
			return wrapStructural(op, "invalid anchor", err)
		}
		refs = append(refs, r)
	case document.AnchorRange:
		for _, ref := range []document.AnchorRef{fv.From, fv.To} {
			r, err := resolveRef(t.Root(), ref)
			if err != nil {
				return wrapStructural(op, "invalid anchor", err)
			}
			refs = append(refs, r)
		}
	case document.Nodes:
		for _, tpl := range fv {
			if err := validateTemplate(tpl); err != nil {
				return wrapStructural(op, "invalid template", err)
			}
		}
	}

	t.releaseFacet(n, name)

	switch fv := v.(type) {
	case document.AnchorRef:
		t.attachFacetAnchor(n, name, slotSingle, refs[0], fv.Name)
	case document.AnchorRange:
		t.attachFacetAnchor(n, name, slotFrom, refs[0], fv.From.Name)
		t.attachFacetAnchor(n, name, slotTo, refs[1], fv.To.Name)
	case document.Nodes:
		ids := make([]NodeID, len(fv))
		for i, tpl := range fv {
			ids[i] = t.hydrate(tpl).id
		}
		n.setChildIDs(name, ids)
		n.reindex(name)
	case document.Styles:
		n.facets[name] = cloneRuns(fv.Runs)
	default:
		n.facets[name] = v
	}
	return nil
}

// releaseFacet drops the current value of a facet.
func (t *Tree) releaseFacet(n *Node, name string) {
	switch n.facets[name].(type) {
	case nodeArray:
		var items []deleteItem
		for _, id := range n.childIDs(name) {
			items = append(items, deleteItem{node: t.nodes[id]})
		}
		t.deleteItems(items, deleteConfig{direction: Backward})
	case anchorFacet, anchorRangeFacet:
		t.releaseFacetAnchors(n, name)
	}
	delete(n.facets, name)
}

// releaseFacetAnchors deletes the anchors created by an anchor facet and
// removes the facet value.
func (t *Tree) releaseFacetAnchors(n *Node, name string) {
	var ids []AnchorID
	switch v := n.facets[name].(type) {
	case anchorFacet:
		ids = append(ids, AnchorID(v))
	case anchorRangeFacet:
		ids = append(ids, v.from, v.to)
	}
	delete(n.facets, name)
	for _, id := range ids {
		if a, ok := t.anchors[id]; ok {
			t.removeAnchor(a)
		}
	}
}
