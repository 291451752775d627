package worktree

import (
	"errors"
	"fmt"

	"github.com/dshills/docstorm/internal/treepath"
)

// Check verifies the structural invariants of the tree: every node is
// reachable exactly once with a part matching its position, every anchor
// targets a live node with an in-range grapheme index and a legal
// orientation, and ownership links
// are consistent in both directions. It returns all violations joined.
func (t *Tree) Check() error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	root, ok := t.nodes[t.root]
	if !ok {
		return &Error{Kind: ErrInvariant, Op: "check", Msg: "root is missing"}
	}
	if root.hasPart || root.parent != "" {
		fail("root has a parent")
	}

	seen := make(map[NodeID]bool, len(t.nodes))
	var walk func(n *Node)
	walk = func(n *Node) {
		if seen[n.id] {
			fail("node %s reachable twice", n.id)
			return
		}
		seen[n.id] = true
		facets := append([]string{""}, n.typ.Behavior().NodeFacets...)
		for _, facet := range facets {
			for i, id := range n.childIDs(facet) {
				c, ok := t.nodes[id]
				if !ok {
					fail("%s child %d of %s is not registered", facet, i, n.id)
					continue
				}
				want := treepath.PathPart{Facet: facet, Index: i, HasIndex: true}
				if c.parent != n.id || !c.hasPart || !c.part.Equal(want) {
					fail("node %s at %s/%s has part %s under %s", c.id, t.PathOf(n), want, c.part, c.parent)
				}
				walk(c)
			}
		}
	}
	walk(root)
	if len(seen) != len(t.nodes) {
		fail("%d nodes registered, %d reachable", len(t.nodes), len(seen))
	}

	for id, n := range t.nodes {
		for aid := range n.anchors {
			a, ok := t.anchors[aid]
			if !ok || a.spec.Node != id {
				fail("node %s lists anchor %s that does not target it", id, aid)
			}
		}
	}

	for id, a := range t.anchors {
		n, ok := t.nodes[a.spec.Node]
		if !ok || !seen[n.id] {
			fail("anchor %s targets dead node %s", id, a.spec.Node)
			continue
		}
		if _, ok := n.anchors[id]; !ok {
			fail("anchor %s missing from its node", id)
		}
		if idx, ok := a.GraphemeIndex(); ok && (!n.HasGraphemes() || idx < 0 || idx >= n.Len()) {
			fail("anchor %s grapheme index %d out of range for %s of length %d", id, idx, n.typ.Name, n.Len())
		}
		if a.spec.Orientation == treepath.On && (a.spec.HasGraphemeIndex || !onAllowed(n)) {
			fail("anchor %s is on %s, which cannot hold orientation on", id, t.PathOf(n))
		}
		if a.interactor != "" && a.originNode != "" {
			fail("anchor %s has two owners", id)
		}
		if a.interactor != "" {
			in, ok := t.interactors[a.interactor]
			if !ok || (in.main != id && in.selection != id) {
				fail("anchor %s claims interactor %s", id, a.interactor)
			}
		}
		if a.originNode != "" {
			owner, ok := t.nodes[a.originNode]
			if !ok {
				fail("anchor %s originates from dead node %s", id, a.originNode)
				continue
			}
			found := false
			for _, fid := range owner.facetAnchorIDs() {
				found = found || fid == id
			}
			if !found {
				fail("anchor %s not held by facet %s of %s", id, a.originFacet, a.originNode)
			}
		}
	}

	for id, in := range t.interactors {
		if a, ok := t.anchors[in.main]; !ok || a.interactor != id {
			fail("interactor %s main anchor %s is not owned by it", id, in.main)
		}
		if in.selection == "" {
			continue
		}
		if a, ok := t.anchors[in.selection]; !ok || a.interactor != id {
			fail("interactor %s selection anchor %s is not owned by it", id, in.selection)
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return &Error{Kind: ErrInvariant, Op: "check", Msg: fmt.Sprintf("%d violations", len(errs)), Err: errors.Join(errs...)}
}
