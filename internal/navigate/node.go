package navigate

import "github.com/dshills/docstorm/internal/treepath"

// NodeNavigator is a depth-first cursor over the nodes of a tree. Every
// movement is all-or-nothing: when a move fails the navigator stays where
// it was.
type NodeNavigator struct {
	chain treepath.Chain
}

// NewNodeNavigator returns a navigator positioned on root.
func NewNodeNavigator(root treepath.Node) *NodeNavigator {
	return &NodeNavigator{chain: treepath.NewChain(root)}
}

// NewNodeNavigatorAt returns a navigator positioned at the tip of chain.
func NewNodeNavigatorAt(chain treepath.Chain) *NodeNavigator {
	return &NodeNavigator{chain: chain.Clone()}
}

// Clone returns an independent navigator at the same position.
func (n *NodeNavigator) Clone() *NodeNavigator {
	return &NodeNavigator{chain: n.chain.Clone()}
}

// Chain returns the current chain.
func (n *NodeNavigator) Chain() treepath.Chain { return n.chain }

// Path returns the path of the current node.
func (n *NodeNavigator) Path() treepath.Path { return n.chain.Path() }

// Tip returns the current node.
func (n *NodeNavigator) Tip() treepath.Node { return n.chain.Tip() }

// Parent returns the parent of the current node.
func (n *NodeNavigator) Parent() (treepath.Node, bool) { return n.chain.ParentNode() }

// Depth returns the number of parts in the current path.
func (n *NodeNavigator) Depth() int { return n.chain.Len() - 1 }

// NavigateTo moves to path, resolved from the current root.
func (n *NodeNavigator) NavigateTo(p treepath.Path) bool {
	c, ok := treepath.ChainFrom(n.chain.Root(), p)
	if !ok {
		return false
	}
	n.chain = c
	return true
}

// NavigateToChain moves to the tip of chain.
func (n *NodeNavigator) NavigateToChain(c treepath.Chain) {
	n.chain = c.Clone()
}

// ToRoot moves to the root.
func (n *NodeNavigator) ToRoot() {
	n.chain = treepath.NewChain(n.chain.Root())
}

// ToParent moves to the parent of the current node.
func (n *NodeNavigator) ToParent() bool {
	c, ok := n.chain.DropTip()
	if !ok {
		return false
	}
	n.chain = c
	return true
}

// ToNthChild moves to the ordinary child at index.
func (n *NodeNavigator) ToNthChild(index int) bool {
	c, ok := n.chain.Append(treepath.Child(index))
	if !ok {
		return false
	}
	n.chain = c
	return true
}

// ToFirstChild moves to the first ordinary child.
func (n *NodeNavigator) ToFirstChild() bool {
	return n.ToNthChild(0)
}

// ToLastChild moves to the last ordinary child.
func (n *NodeNavigator) ToLastChild() bool {
	count := n.Tip().ChildCount()
	if count == 0 {
		return false
	}
	return n.ToNthChild(count - 1)
}

// ToFacetEntry moves to entry index of the named node array facet.
func (n *NodeNavigator) ToFacetEntry(facet string, index int) bool {
	c, ok := n.chain.Append(treepath.FacetEntry(facet, index))
	if !ok {
		return false
	}
	n.chain = c
	return true
}

func (n *NodeNavigator) siblingChain(delta int) (treepath.Chain, bool) {
	if n.chain.Len() < 2 {
		return n.chain, false
	}
	part := n.chain.TipLink().Part
	if !part.HasIndex || part.Index+delta < 0 {
		return n.chain, false
	}
	return n.chain.ReplaceTip(part.WithIndex(part.Index + delta))
}

// ToNextSibling moves to the next node in the same child array (or facet
// array). It never leaves the current parent.
func (n *NodeNavigator) ToNextSibling() bool {
	c, ok := n.siblingChain(1)
	if !ok {
		return false
	}
	n.chain = c
	return true
}

// ToPrecedingSibling moves to the previous node in the same child array.
func (n *NodeNavigator) ToPrecedingSibling() bool {
	c, ok := n.siblingChain(-1)
	if !ok {
		return false
	}
	n.chain = c
	return true
}

// NextSibling returns the next sibling without moving.
func (n *NodeNavigator) NextSibling() (treepath.Node, bool) {
	c, ok := n.siblingChain(1)
	if !ok {
		return nil, false
	}
	return c.Tip(), true
}

// PrecedingSibling returns the previous sibling without moving.
func (n *NodeNavigator) PrecedingSibling() (treepath.Node, bool) {
	c, ok := n.siblingChain(-1)
	if !ok {
		return nil, false
	}
	return c.Tip(), true
}

// ForwardsDfs takes one pre-order step. With skipDescendants the children
// of the current node are not entered.
func (n *NodeNavigator) ForwardsDfs(skipDescendants bool) bool {
	if !skipDescendants && n.ToFirstChild() {
		return true
	}
	saved := n.chain
	for {
		if n.ToNextSibling() {
			return true
		}
		if !n.ToParent() {
			n.chain = saved
			return false
		}
	}
}

// BackwardsDfs takes one step of the mirrored pre-order walk: last child
// first, and parents still visited before their children.
func (n *NodeNavigator) BackwardsDfs(skipDescendants bool) bool {
	if !skipDescendants && n.ToLastChild() {
		return true
	}
	saved := n.chain
	for {
		if n.ToPrecedingSibling() {
			return true
		}
		if !n.ToParent() {
			n.chain = saved
			return false
		}
	}
}

// ReverseForwardsDfs steps to the node visited just before the current one
// by ForwardsDfs. Children are therefore visited before their parents.
func (n *NodeNavigator) ReverseForwardsDfs() bool {
	if n.ToPrecedingSibling() {
		for n.ToLastChild() {
		}
		return true
	}
	return n.ToParent()
}

// IsDescendantOf reports whether the current node lies strictly below path.
func (n *NodeNavigator) IsDescendantOf(p treepath.Path) bool {
	return n.Path().CompareTo(p) == treepath.Descendant
}
