package worktree

import (
	"github.com/google/uuid"

	"github.com/dshills/docstorm/internal/treepath"
)

// AnchorID identifies an anchor.
type AnchorID string

// AnchorSpec describes where an anchor points. A grapheme anchor targets a
// text container plus a grapheme index and uses Before or After; a node
// anchor targets the node itself.
type AnchorSpec struct {
	Node             NodeID
	Orientation      treepath.Orientation
	GraphemeIndex    int
	HasGraphemeIndex bool
	Name             string
}

// AtNode returns a spec anchored on node.
func AtNode(node NodeID, o treepath.Orientation) AnchorSpec {
	return AnchorSpec{Node: node, Orientation: o}
}

// AtGrapheme returns a spec anchored on grapheme index of node.
func AtGrapheme(node NodeID, index int, o treepath.Orientation) AnchorSpec {
	return AnchorSpec{Node: node, Orientation: o, GraphemeIndex: index, HasGraphemeIndex: true}
}

// Named returns a copy of s with the name set.
func (s AnchorSpec) Named(name string) AnchorSpec {
	s.Name = name
	return s
}

// Anchor is a stable reference to a cursor position that survives edits.
// An anchor is owned by at most one of an interactor or a facet of an
// originating node.
type Anchor struct {
	id   AnchorID
	spec AnchorSpec

	interactor  InteractorID
	originNode  NodeID
	originFacet string
}

// ID returns the anchor id.
func (a *Anchor) ID() AnchorID { return a.id }

// Spec returns the current target of the anchor.
func (a *Anchor) Spec() AnchorSpec { return a.spec }

// Node returns the target node.
func (a *Anchor) Node() NodeID { return a.spec.Node }

// Orientation returns the anchor orientation.
func (a *Anchor) Orientation() treepath.Orientation { return a.spec.Orientation }

// GraphemeIndex returns the grapheme index, if the anchor has one.
func (a *Anchor) GraphemeIndex() (int, bool) {
	return a.spec.GraphemeIndex, a.spec.HasGraphemeIndex
}

// Name returns the anchor name.
func (a *Anchor) Name() string { return a.spec.Name }

// Interactor returns the owning interactor.
func (a *Anchor) Interactor() (InteractorID, bool) {
	return a.interactor, a.interactor != ""
}

// Origin returns the node and facet that own the anchor.
func (a *Anchor) Origin() (NodeID, string, bool) {
	return a.originNode, a.originFacet, a.originNode != ""
}

func (a *Anchor) owned() bool {
	return a.interactor != "" || a.originNode != ""
}

// resolveAnchorSpec validates s and returns its stored form. A grapheme
// index equal to the text length addresses the end of the text and is
// stored as After on the last grapheme, or On the container when it is
// empty.
func (t *Tree) resolveAnchorSpec(op string, s AnchorSpec) (AnchorSpec, error) {
	n, ok := t.nodes[s.Node]
	if !ok {
		return s, lookupf(op, "unknown node %s", s.Node)
	}
	if s.Orientation < treepath.Before || s.Orientation > treepath.After {
		return s, structuralf(op, "invalid orientation %d", s.Orientation)
	}
	if !s.HasGraphemeIndex {
		if s.Orientation == treepath.On && !onAllowed(n) {
			return s, structuralf(op, "%s is not empty and cannot hold orientation on", n.typ.Name)
		}
		return s, nil
	}
	if !n.HasGraphemes() {
		return s, structuralf(op, "%s holds no graphemes", n.typ.Name)
	}
	if s.Orientation == treepath.On {
		return s, structuralf(op, "grapheme anchors cannot use orientation on")
	}
	length := n.Len()
	switch {
	case s.GraphemeIndex < 0 || s.GraphemeIndex > length:
		return s, structuralf(op, "grapheme index %d out of range [0,%d]", s.GraphemeIndex, length)
	case s.GraphemeIndex < length:
		return s, nil
	case length == 0:
		return AtNode(n.id, treepath.On).Named(s.Name), nil
	default:
		return AtGrapheme(n.id, length-1, treepath.After).Named(s.Name), nil
	}
}

// onAllowed reports whether an anchor may sit On n itself: only nodes
// without children, which are empty containers and atomic inlines.
func onAllowed(n *Node) bool {
	return n.Len() == 0
}

// addAnchor registers an anchor without validating s.
func (t *Tree) addAnchor(s AnchorSpec) *Anchor {
	a := &Anchor{id: AnchorID(uuid.NewString()), spec: s}
	t.anchors[a.id] = a
	t.nodes[s.Node].anchors[a.id] = struct{}{}
	return a
}

// AddAnchor creates an unowned anchor.
func (t *Tree) AddAnchor(s AnchorSpec) (*Anchor, error) {
	s, err := t.resolveAnchorSpec("add anchor", s)
	if err != nil {
		return nil, err
	}
	a := t.addAnchor(s)
	t.anchorEvent(TopicAnchorAdded, a)
	return a, nil
}

// UpdateAnchor retargets an anchor and replaces its name.
func (t *Tree) UpdateAnchor(id AnchorID, s AnchorSpec) error {
	a, ok := t.anchors[id]
	if !ok {
		return lookupf("update anchor", "unknown anchor %s", id)
	}
	s, err := t.resolveAnchorSpec("update anchor", s)
	if err != nil {
		return err
	}
	t.moveAnchor(a, s)
	t.anchorEvent(TopicAnchorUpdated, a)
	return nil
}

// moveAnchor retargets a without validation.
func (t *Tree) moveAnchor(a *Anchor, s AnchorSpec) {
	if old, ok := t.nodes[a.spec.Node]; ok {
		delete(old.anchors, a.id)
	}
	a.spec = s
	t.nodes[s.Node].anchors[a.id] = struct{}{}
}

// retarget moves a to a new position, keeping its name.
func (t *Tree) retarget(a *Anchor, s AnchorSpec) {
	s.Name = a.spec.Name
	t.moveAnchor(a, s)
}

// DeleteAnchor removes an anchor. Anchors owned by an interactor or a node
// facet are refused unless bypassOwnership is set; with it, the owner lets
// go of the anchor too.
func (t *Tree) DeleteAnchor(id AnchorID, bypassOwnership bool) error {
	a, ok := t.anchors[id]
	if !ok {
		return lookupf("delete anchor", "unknown anchor %s", id)
	}
	if a.owned() && !bypassOwnership {
		return invariantf("delete anchor", "anchor %s is owned", id)
	}
	if in, ok := t.interactors[a.interactor]; ok {
		if in.main == id {
			return t.DeleteInteractor(in.id)
		}
		in.selection = ""
		t.removeAnchor(a)
		t.interactorEvent(TopicInteractorUpdated, in)
		return nil
	}
	if owner, ok := t.nodes[a.originNode]; ok {
		t.releaseFacetAnchors(owner, a.originFacet)
		return nil
	}
	t.removeAnchor(a)
	return nil
}

// removeAnchor unregisters a and publishes anchor.deleted.
func (t *Tree) removeAnchor(a *Anchor) {
	if n, ok := t.nodes[a.spec.Node]; ok {
		delete(n.anchors, a.id)
	}
	delete(t.anchors, a.id)
	t.anchorEvent(TopicAnchorDeleted, a)
}
