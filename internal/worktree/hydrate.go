package worktree

import (
	"fmt"
	"sort"

	"github.com/dshills/docstorm/internal/document"
	"github.com/dshills/docstorm/internal/style"
	"github.com/dshills/docstorm/internal/treepath"
)

// anchor slots inside an anchor facet
const (
	slotSingle = iota
	slotFrom
	slotTo
)

// pendingAnchor is an anchor declared by a template facet. It is resolved
// once the whole template has been hydrated, since it may target any node
// of it.
type pendingAnchor struct {
	owner *Node
	facet string
	slot  int
	ref   document.AnchorRef
}

// validateTemplate checks the template against its schema and resolves
// every anchor it declares against the template itself.
func validateTemplate(tpl *document.Node) error {
	if err := document.Validate(tpl); err != nil {
		return err
	}
	return forEachRef(tpl, func(ref document.AnchorRef) error {
		_, err := resolveRef(tpl, ref)
		return err
	})
}

// forEachRef calls fn for every anchor ref declared in the subtree of tpl,
// facet node arrays included.
func forEachRef(tpl *document.Node, fn func(document.AnchorRef) error) error {
	for _, name := range sortedFacets(tpl) {
		switch v := tpl.Facets[name].(type) {
		case document.AnchorRef:
			if err := fn(v); err != nil {
				return err
			}
		case document.AnchorRange:
			if err := fn(v.From); err != nil {
				return err
			}
			if err := fn(v.To); err != nil {
				return err
			}
		case document.Nodes:
			for _, c := range v {
				if err := forEachRef(c, fn); err != nil {
					return err
				}
			}
		}
	}
	for _, c := range tpl.Children {
		if err := forEachRef(c, fn); err != nil {
			return err
		}
	}
	return nil
}

func sortedFacets(tpl *document.Node) []string {
	names := make([]string, 0, len(tpl.Facets))
	for name := range tpl.Facets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// resolvedRef is an anchor ref resolved against a tree. index is -1 when
// the anchor targets the node itself.
type resolvedRef struct {
	node        treepath.Node
	index       int
	orientation treepath.Orientation
}

// resolveRef resolves ref relative to top. A target path ending on a
// grapheme is turned into its container plus a grapheme index.
func resolveRef(top treepath.Node, ref document.AnchorRef) (resolvedRef, error) {
	chain, ok := treepath.ChainFrom(top, ref.Target)
	if !ok {
		return resolvedRef{}, fmt.Errorf("anchor target %q does not resolve", ref.Target)
	}
	if ref.Orientation < treepath.Before || ref.Orientation > treepath.After {
		return resolvedRef{}, fmt.Errorf("anchor target %q: invalid orientation %d", ref.Target, ref.Orientation)
	}
	out := resolvedRef{node: chain.Tip(), index: -1, orientation: ref.Orientation}
	if treepath.IsGrapheme(chain.Tip()) {
		if ref.HasGraphemeIndex {
			return resolvedRef{}, fmt.Errorf("anchor target %q is a grapheme and also has an index", ref.Target)
		}
		parent, _ := chain.ParentNode()
		out.node = parent
		out.index = chain.TipLink().Part.Index
	} else if ref.HasGraphemeIndex {
		t := out.node.NodeType()
		if !t.Children.HasGraphemes() {
			return resolvedRef{}, fmt.Errorf("anchor target %q holds no graphemes", ref.Target)
		}
		if ref.GraphemeIndex < 0 || ref.GraphemeIndex >= out.node.ChildCount() {
			return resolvedRef{}, fmt.Errorf("anchor target %q: grapheme index %d out of range", ref.Target, ref.GraphemeIndex)
		}
		out.index = ref.GraphemeIndex
	}
	if out.index >= 0 && out.orientation == treepath.On {
		return resolvedRef{}, fmt.Errorf("anchor target %q: grapheme anchors cannot use orientation on", ref.Target)
	}
	if out.index < 0 && out.orientation == treepath.On && out.node.ChildCount() > 0 {
		return resolvedRef{}, fmt.Errorf("anchor target %q is not empty and cannot hold orientation on", ref.Target)
	}
	return out, nil
}

// hydrate builds working nodes for a validated template and attaches the
// anchors it declares.
func (t *Tree) hydrate(tpl *document.Node) *Node {
	var pending []pendingAnchor
	n := t.hydrateNode(tpl, &pending)
	t.attachPending(n, pending)
	return n
}

func (t *Tree) hydrateNode(tpl *document.Node, pending *[]pendingAnchor) *Node {
	n := t.newNode(tpl.Type)
	n.text = append([]string(nil), tpl.Text...)
	n.fancy = append([]document.FancyGrapheme(nil), tpl.Fancy...)
	for _, c := range tpl.Children {
		child := t.hydrateNode(c, pending)
		n.children = append(n.children, child.id)
	}
	n.reindex("")

	for _, name := range sortedFacets(tpl) {
		switch v := tpl.Facets[name].(type) {
		case document.Nodes:
			ids := make([]NodeID, len(v))
			for i, c := range v {
				ids[i] = t.hydrateNode(c, pending).id
			}
			n.setChildIDs(name, ids)
			n.reindex(name)
		case document.AnchorRef:
			*pending = append(*pending, pendingAnchor{owner: n, facet: name, slot: slotSingle, ref: v})
		case document.AnchorRange:
			*pending = append(*pending,
				pendingAnchor{owner: n, facet: name, slot: slotFrom, ref: v.From},
				pendingAnchor{owner: n, facet: name, slot: slotTo, ref: v.To})
		case document.Styles:
			n.facets[name] = cloneRuns(v.Runs)
		default:
			n.facets[name] = v
		}
	}
	return n
}

func cloneRuns(r *style.Runs) *style.Runs {
	if r == nil {
		return &style.Runs{}
	}
	return r.Clone()
}

// attachPending creates the facet anchors of a freshly hydrated subtree.
// Targets are resolved relative to top, which has the same shape as the
// template they were declared in.
func (t *Tree) attachPending(top *Node, pending []pendingAnchor) {
	for _, p := range pending {
		r, err := resolveRef(top, p.ref)
		if err != nil {
			// validated before hydration
			t.log.Error("dropping facet anchor %s on %s: %v", p.facet, p.owner.typ.Name, err)
			continue
		}
		t.attachFacetAnchor(p.owner, p.facet, p.slot, r, p.ref.Name)
	}
}

func (t *Tree) attachFacetAnchor(owner *Node, facet string, slot int, r resolvedRef, name string) *Anchor {
	spec := AnchorSpec{Node: r.node.(*Node).id, Orientation: r.orientation, Name: name}
	if r.index >= 0 {
		spec.GraphemeIndex, spec.HasGraphemeIndex = r.index, true
	}

	a := t.addAnchor(spec)
	a.originNode, a.originFacet = owner.id, facet
	switch slot {
	case slotSingle:
		owner.facets[facet] = anchorFacet(a.id)
	case slotFrom:
		rng, _ := owner.facets[facet].(anchorRangeFacet)
		rng.from = a.id
		owner.facets[facet] = rng
	case slotTo:
		rng, _ := owner.facets[facet].(anchorRangeFacet)
		rng.to = a.id
		owner.facets[facet] = rng
	}
	t.anchorEvent(TopicAnchorAdded, a)
	return a
}
