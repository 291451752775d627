package worktree

import (
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/dshills/docstorm/internal/document"
	"github.com/dshills/docstorm/internal/schema"
	"github.com/dshills/docstorm/internal/style"
	"github.com/dshills/docstorm/internal/treepath"
)

// NodeID identifies a working node for the lifetime of the tree.
type NodeID string

func newNodeID() NodeID { return NodeID(uuid.NewString()) }

// facet storage shapes
type (
	nodeArray        []NodeID
	anchorFacet      AnchorID
	anchorRangeFacet struct{ from, to AnchorID }
)

// Node is a mutable node owned by a Tree. Nodes are only changed through
// Tree methods; the accessors here are read-only.
type Node struct {
	id      NodeID
	tree    *Tree
	typ     *schema.NodeType
	parent  NodeID
	part    treepath.PathPart
	hasPart bool

	children []NodeID
	text     []string
	fancy    []document.FancyGrapheme

	// facets holds scalar document values, nodeArray, anchorFacet,
	// anchorRangeFacet or *style.Runs keyed by facet name.
	facets  map[string]any
	anchors map[AnchorID]struct{}
}

func (t *Tree) newNode(typ *schema.NodeType) *Node {
	n := &Node{
		id:      newNodeID(),
		tree:    t,
		typ:     typ,
		facets:  make(map[string]any),
		anchors: make(map[AnchorID]struct{}),
	}
	t.nodes[n.id] = n
	return n
}

// ID returns the node id.
func (n *Node) ID() NodeID { return n.id }

// Type returns the node type.
func (n *Node) Type() *schema.NodeType { return n.typ }

// Part returns the path part under the parent. ok is false for the root.
func (n *Node) Part() (treepath.PathPart, bool) { return n.part, n.hasPart }

// Parent returns the parent node.
func (n *Node) Parent() (*Node, bool) {
	if n.parent == "" {
		return nil, false
	}
	p, ok := n.tree.nodes[n.parent]
	return p, ok
}

// Len returns the number of ordinary children (graphemes or nodes).
func (n *Node) Len() int {
	switch n.typ.Children {
	case schema.ChildrenText:
		return len(n.text)
	case schema.ChildrenFancyText:
		return len(n.fancy)
	default:
		return len(n.children)
	}
}

// HasGraphemes reports whether the children are graphemes.
func (n *Node) HasGraphemes() bool { return n.typ.Children.HasGraphemes() }

// Children returns the node children.
func (n *Node) Children() []*Node {
	out := make([]*Node, len(n.children))
	for i, id := range n.children {
		out[i] = n.tree.nodes[id]
	}
	return out
}

// ChildAt returns the node child at index.
func (n *Node) ChildAt(index int) (*Node, bool) {
	if index < 0 || index >= len(n.children) {
		return nil, false
	}
	return n.tree.nodes[n.children[index]], true
}

// Graphemes returns a copy of the grapheme values.
func (n *Node) Graphemes() []string {
	switch n.typ.Children {
	case schema.ChildrenText:
		return append([]string(nil), n.text...)
	case schema.ChildrenFancyText:
		out := make([]string, len(n.fancy))
		for i, g := range n.fancy {
			out[i] = g.Value
		}
		return out
	}
	return nil
}

// FancyGraphemes returns a copy of the fancy graphemes.
func (n *Node) FancyGraphemes() []document.FancyGrapheme {
	return append([]document.FancyGrapheme(nil), n.fancy...)
}

// Text returns the concatenated graphemes of the subtree.
func (n *Node) Text() string {
	var sb strings.Builder
	n.writeText(&sb)
	return sb.String()
}

func (n *Node) writeText(sb *strings.Builder) {
	for _, g := range n.Graphemes() {
		sb.WriteString(g)
	}
	for _, c := range n.Children() {
		c.writeText(sb)
	}
}

// Facet returns a scalar facet value.
func (n *Node) Facet(name string) (document.FacetValue, bool) {
	v, ok := n.facets[name].(document.FacetValue)
	return v, ok
}

// FacetNodes returns the nodes of a node array facet.
func (n *Node) FacetNodes(name string) []*Node {
	arr, _ := n.facets[name].(nodeArray)
	out := make([]*Node, len(arr))
	for i, id := range arr {
		out[i] = n.tree.nodes[id]
	}
	return out
}

// FacetAnchor returns the anchor held by an anchor facet.
func (n *Node) FacetAnchor(name string) (AnchorID, bool) {
	id, ok := n.facets[name].(anchorFacet)
	return AnchorID(id), ok
}

// FacetAnchorRange returns the anchors held by an anchor range facet.
func (n *Node) FacetAnchorRange(name string) (from, to AnchorID, ok bool) {
	r, ok := n.facets[name].(anchorRangeFacet)
	return r.from, r.to, ok
}

// Styles returns the style runs of a styles facet, or nil.
func (n *Node) Styles(name string) *style.Runs {
	r, _ := n.facets[name].(*style.Runs)
	return r
}

// styleRuns returns the runs of every styles facet present on n.
func (n *Node) styleRuns() []*style.Runs {
	var out []*style.Runs
	for _, name := range n.typ.Behavior().StyleFacets {
		if r := n.Styles(name); r != nil {
			out = append(out, r)
		}
	}
	return out
}

// Anchors returns the ids of the anchors targeting n, sorted.
func (n *Node) Anchors() []AnchorID {
	out := make([]AnchorID, 0, len(n.anchors))
	for id := range n.anchors {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// NodeType implements treepath.Node.
func (n *Node) NodeType() *schema.NodeType { return n.typ }

// ChildCount implements treepath.Node.
func (n *Node) ChildCount() int { return n.Len() }

// Child implements treepath.Node. Grapheme children are returned as
// lightweight grapheme views.
func (n *Node) Child(index int) (treepath.Node, bool) {
	if index < 0 || index >= n.Len() {
		return nil, false
	}
	if n.HasGraphemes() {
		return Grapheme{node: n, index: index}, true
	}
	return n.tree.nodes[n.children[index]], true
}

// FacetCount implements treepath.Node.
func (n *Node) FacetCount(facet string) int {
	arr, _ := n.facets[facet].(nodeArray)
	return len(arr)
}

// FacetChild implements treepath.Node.
func (n *Node) FacetChild(facet string, index int) (treepath.Node, bool) {
	arr, _ := n.facets[facet].(nodeArray)
	if index < 0 || index >= len(arr) {
		return nil, false
	}
	return n.tree.nodes[arr[index]], true
}

// childIDs returns the id slice of the ordinary children or of a node array
// facet.
func (n *Node) childIDs(facet string) []NodeID {
	if facet == "" {
		return n.children
	}
	arr, _ := n.facets[facet].(nodeArray)
	return arr
}

func (n *Node) setChildIDs(facet string, ids []NodeID) {
	if facet == "" {
		n.children = ids
		return
	}
	n.facets[facet] = nodeArray(ids)
}

// reindex rewrites the parts of every node in one child array.
func (n *Node) reindex(facet string) {
	for i, id := range n.childIDs(facet) {
		c := n.tree.nodes[id]
		c.parent = n.id
		c.part = treepath.PathPart{Facet: facet, Index: i, HasIndex: true}
		c.hasPart = true
	}
}

// Grapheme is a view of one grapheme of a working node.
type Grapheme struct {
	node  *Node
	index int
}

// Container returns the node holding the grapheme.
func (g Grapheme) Container() *Node { return g.node }

// Index returns the grapheme index.
func (g Grapheme) Index() int { return g.index }

// Grapheme implements treepath.Grapheme.
func (g Grapheme) Grapheme() string {
	if g.node.typ.Children == schema.ChildrenFancyText {
		return g.node.fancy[g.index].Value
	}
	return g.node.text[g.index]
}

// NodeType implements treepath.Node; graphemes have no type.
func (Grapheme) NodeType() *schema.NodeType { return nil }

// ChildCount implements treepath.Node.
func (Grapheme) ChildCount() int { return 0 }

// Child implements treepath.Node.
func (Grapheme) Child(int) (treepath.Node, bool) { return nil, false }

// FacetCount implements treepath.Node.
func (Grapheme) FacetCount(string) int { return 0 }

// FacetChild implements treepath.Node.
func (Grapheme) FacetChild(string, int) (treepath.Node, bool) { return nil, false }
