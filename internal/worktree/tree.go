package worktree

import (
	"sort"

	"github.com/dshills/docstorm/internal/document"
	"github.com/dshills/docstorm/internal/event"
	"github.com/dshills/docstorm/internal/logging"
	"github.com/dshills/docstorm/internal/navigate"
	"github.com/dshills/docstorm/internal/schema"
	"github.com/dshills/docstorm/internal/treepath"
)

// Tree is the mutable working copy of a document. It owns every working
// node, anchor and interactor; all mutation goes through its methods. A Tree
// is not safe for concurrent use.
type Tree struct {
	root        NodeID
	nodes       map[NodeID]*Node
	anchors     map[AnchorID]*Anchor
	interactors map[InteractorID]*Interactor

	log           *logging.Logger
	bus           event.Publisher
	layout        navigate.LayoutOracle
	direction     Direction
	mergeAdjacent bool
	normalize     bool
}

// New hydrates a working tree from a document template. The template must
// be a document node that validates against its schema.
func New(root *document.Node, opts ...Option) (*Tree, error) {
	const op = "new tree"
	t := &Tree{
		nodes:       make(map[NodeID]*Node),
		anchors:     make(map[AnchorID]*Anchor),
		interactors: make(map[InteractorID]*Interactor),
		log:         logging.NullLogger,
	}
	for _, opt := range opts {
		opt(t)
	}
	if root == nil || root.Type == nil {
		return nil, structuralf(op, "missing root template")
	}
	if root.Type.Category != schema.CategoryDocument {
		return nil, structuralf(op, "root must be a document, got %s", root.Type.Category)
	}
	if err := validateTemplate(root); err != nil {
		return nil, wrapStructural(op, "invalid template", err)
	}
	n := t.hydrate(root)
	t.root = n.id
	t.log.Debug("hydrated %d nodes, %d anchors", len(t.nodes), len(t.anchors))
	return t, nil
}

// Root returns the document node.
func (t *Tree) Root() *Node { return t.nodes[t.root] }

// Node returns the node with the given id.
func (t *Tree) Node(id NodeID) (*Node, bool) {
	n, ok := t.nodes[id]
	return n, ok
}

// Anchor returns the anchor with the given id.
func (t *Tree) Anchor(id AnchorID) (*Anchor, bool) {
	a, ok := t.anchors[id]
	return a, ok
}

// Interactor returns the interactor with the given id.
func (t *Tree) Interactor(id InteractorID) (*Interactor, bool) {
	in, ok := t.interactors[id]
	return in, ok
}

// Anchors returns every anchor, sorted by id.
func (t *Tree) Anchors() []*Anchor {
	out := make([]*Anchor, 0, len(t.anchors))
	for _, a := range t.anchors {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].id < out[j].id })
	return out
}

// Interactors returns every interactor, sorted by id.
func (t *Tree) Interactors() []*Interactor {
	out := make([]*Interactor, 0, len(t.interactors))
	for _, in := range t.interactors {
		out = append(out, in)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].id < out[j].id })
	return out
}

// NodeCount returns the number of live nodes.
func (t *Tree) NodeCount() int { return len(t.nodes) }

// Text returns the concatenated text of the document.
func (t *Tree) Text() string { return t.Root().Text() }

func (t *Tree) lookup(op string, id NodeID) (*Node, error) {
	n, ok := t.nodes[id]
	if !ok {
		return nil, lookupf(op, "unknown node %s", id)
	}
	return n, nil
}

// PathOf returns the path of n from the root.
func (t *Tree) PathOf(n *Node) treepath.Path {
	var parts []treepath.PathPart
	for cur := n; cur.hasPart; {
		parts = append(parts, cur.part)
		p, ok := t.nodes[cur.parent]
		if !ok {
			break
		}
		cur = p
	}
	out := make(treepath.Path, len(parts))
	for i, p := range parts {
		out[len(parts)-1-i] = p
	}
	return out
}

// ChainOf returns the chain from the root to n.
func (t *Tree) ChainOf(n *Node) treepath.Chain {
	c, _ := treepath.ChainFrom(t.Root(), t.PathOf(n))
	return c
}

// Resolve returns the node or grapheme at p.
func (t *Tree) Resolve(p treepath.Path) (treepath.Node, bool) {
	c, ok := treepath.ChainFrom(t.Root(), p)
	if !ok {
		return nil, false
	}
	return c.Tip(), true
}

// Navigator returns a cursor navigator over the tree, placed on the root.
func (t *Tree) Navigator() *navigate.CursorNavigator {
	return navigate.NewCursorNavigator(t.Root(), t.layout)
}

// CursorOf returns the cursor an anchor designates.
func (t *Tree) CursorOf(id AnchorID) (treepath.Cursor, error) {
	a, ok := t.anchors[id]
	if !ok {
		return treepath.Cursor{}, lookupf("cursor of", "unknown anchor %s", id)
	}
	return t.cursorOfSpec(a.spec), nil
}

func (t *Tree) cursorOfSpec(s AnchorSpec) treepath.Cursor {
	p := t.PathOf(t.nodes[s.Node])
	if s.HasGraphemeIndex {
		p = p.Child(s.GraphemeIndex)
	}
	return treepath.NewCursor(p, s.Orientation)
}

// NavigatorFor returns a cursor navigator placed exactly on an anchor.
func (t *Tree) NavigatorFor(id AnchorID) (*navigate.CursorNavigator, error) {
	cur, err := t.CursorOf(id)
	if err != nil {
		return nil, err
	}
	nav := t.Navigator()
	if !nav.NavigateToUnchecked(cur.Path, cur.Orientation) {
		return nil, invariantf("navigator for", "anchor %s does not resolve", id)
	}
	return nav, nil
}

// AnchorFromCursor converts a cursor into an anchor spec. A cursor on a
// grapheme becomes a grapheme anchor on its container.
func (t *Tree) AnchorFromCursor(cur treepath.Cursor) (AnchorSpec, error) {
	tip, ok := t.Resolve(cur.Path)
	if !ok {
		return AnchorSpec{}, lookupf("anchor from cursor", "path %s does not resolve", cur.Path)
	}
	switch n := tip.(type) {
	case Grapheme:
		return AtGrapheme(n.node.id, n.index, cur.Orientation), nil
	case *Node:
		return AtNode(n.id, cur.Orientation), nil
	}
	return AnchorSpec{}, lookupf("anchor from cursor", "path %s is not a working node", cur.Path)
}
