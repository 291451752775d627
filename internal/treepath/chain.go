package treepath

import "github.com/dshills/docstorm/internal/schema"

// Node is the read-only view of a tree node needed to resolve paths. Both
// immutable templates and working nodes implement it. Graphemes are nodes
// too; they report a nil NodeType and have no children.
type Node interface {
	NodeType() *schema.NodeType
	ChildCount() int
	Child(index int) (Node, bool)
	FacetCount(facet string) int
	FacetChild(facet string, index int) (Node, bool)
}

// Grapheme is implemented by grapheme nodes.
type Grapheme interface {
	Node
	Grapheme() string
}

// IsGrapheme reports whether n is a grapheme.
func IsGrapheme(n Node) bool {
	return n != nil && n.NodeType() == nil
}

// Resolve returns the node addressed by part under n.
func Resolve(n Node, part PathPart) (Node, bool) {
	if n == nil || !part.HasIndex || part.Index < 0 {
		return nil, false
	}
	if part.IsFacet() {
		return n.FacetChild(part.Facet, part.Index)
	}
	return n.Child(part.Index)
}

// Link is one resolved step of a chain. The root link has no part.
type Link struct {
	Node    Node
	Part    PathPart
	HasPart bool
}

// Chain is a path resolved against a concrete tree: root first, tip last.
// Chains are values; methods return new chains and leave the receiver alone.
type Chain struct {
	links []Link
}

// NewChain returns the chain holding only root.
func NewChain(root Node) Chain {
	return Chain{links: []Link{{Node: root}}}
}

// ChainFrom resolves p against root. It fails silently (ok=false) as soon as
// one part cannot be resolved.
func ChainFrom(root Node, p Path) (Chain, bool) {
	if root == nil {
		return Chain{}, false
	}
	links := make([]Link, 1, len(p)+1)
	links[0] = Link{Node: root}
	cur := root
	for _, part := range p {
		next, ok := Resolve(cur, part)
		if !ok {
			return Chain{}, false
		}
		links = append(links, Link{Node: next, Part: part, HasPart: true})
		cur = next
	}
	return Chain{links: links}, true
}

// ChainFromLinks builds a chain from links; the first link must be the root.
func ChainFromLinks(links []Link) Chain {
	out := make([]Link, len(links))
	copy(out, links)
	if len(out) > 0 {
		out[0].HasPart = false
		out[0].Part = PathPart{}
	}
	return Chain{links: out}
}

// IsZero reports whether the chain is empty (unresolved).
func (c Chain) IsZero() bool { return len(c.links) == 0 }

// Len returns the number of links including the root.
func (c Chain) Len() int { return len(c.links) }

// Link returns link i.
func (c Chain) Link(i int) Link { return c.links[i] }

// Links returns a copy of the links.
func (c Chain) Links() []Link {
	out := make([]Link, len(c.links))
	copy(out, c.links)
	return out
}

// Root returns the root node.
func (c Chain) Root() Node {
	if len(c.links) == 0 {
		return nil
	}
	return c.links[0].Node
}

// Tip returns the last node.
func (c Chain) Tip() Node {
	if len(c.links) == 0 {
		return nil
	}
	return c.links[len(c.links)-1].Node
}

// TipLink returns the last link.
func (c Chain) TipLink() Link {
	return c.links[len(c.links)-1]
}

// ParentNode returns the parent of the tip. ok is false at the root.
func (c Chain) ParentNode() (Node, bool) {
	if len(c.links) < 2 {
		return nil, false
	}
	return c.links[len(c.links)-2].Node, true
}

// Path returns the path the chain was resolved from.
func (c Chain) Path() Path {
	if len(c.links) <= 1 {
		return Root()
	}
	p := make(Path, 0, len(c.links)-1)
	for _, l := range c.links[1:] {
		p = append(p, l.Part)
	}
	return p
}

// Clone returns an independent copy.
func (c Chain) Clone() Chain {
	return Chain{links: c.Links()}
}

// Append resolves part under the tip and returns the extended chain.
func (c Chain) Append(part PathPart) (Chain, bool) {
	next, ok := Resolve(c.Tip(), part)
	if !ok {
		return c, false
	}
	links := make([]Link, len(c.links), len(c.links)+1)
	copy(links, c.links)
	links = append(links, Link{Node: next, Part: part, HasPart: true})
	return Chain{links: links}, true
}

// DropTip returns the chain of the tip's parent. ok is false at the root.
func (c Chain) DropTip() (Chain, bool) {
	if len(c.links) < 2 {
		return c, false
	}
	return Chain{links: c.Links()[:len(c.links)-1]}, true
}

// Truncate returns the first n links.
func (c Chain) Truncate(n int) Chain {
	if n >= len(c.links) {
		return c.Clone()
	}
	return Chain{links: c.Links()[:n]}
}

// ReplaceTip swaps the tip for another node addressed by part under the same parent.
func (c Chain) ReplaceTip(part PathPart) (Chain, bool) {
	parent, ok := c.DropTip()
	if !ok {
		return c, false
	}
	return parent.Append(part)
}

// SearchBackwardsAndSplit finds the link nearest the tip (the tip included)
// whose node satisfies match. It returns the chain ending at that node and the
// links below it.
func (c Chain) SearchBackwardsAndSplit(match func(Node) bool) (Chain, []Link, bool) {
	for i := len(c.links) - 1; i >= 0; i-- {
		if match(c.links[i].Node) {
			head := Chain{links: c.Links()[:i+1]}
			tail := make([]Link, len(c.links)-i-1)
			copy(tail, c.links[i+1:])
			return head, tail, true
		}
	}
	return Chain{}, nil, false
}
