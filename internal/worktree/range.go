package worktree

import (
	"sort"

	"github.com/dshills/docstorm/internal/navigate"
	"github.com/dshills/docstorm/internal/treepath"
)

// DeleteNodesInRange deletes everything between the two endpoints of r,
// both inclusive, as one edit. A node is deleted whole when all of its
// children fall inside the range; graphemes of partially covered text
// containers are deleted as runs. Facet entries are never entered on their
// own and go with their owner. It reports false when either endpoint does
// not resolve or the range covers nothing below the root.
func (t *Tree) DeleteNodesInRange(r treepath.Range, opts ...DeleteOption) (bool, error) {
	r = treepath.NewRange(r.From, r.To)
	start, ok := treepath.ChainFrom(t.Root(), r.From)
	if !ok {
		return false, nil
	}
	if _, ok := t.Resolve(r.To); !ok {
		return false, nil
	}

	visited := make(map[treepath.Node]bool)
	nav := navigate.NewNodeNavigatorAt(start)
	for r.Contains(nav.Path()) {
		visited[nav.Tip()] = true
		if !nav.ForwardsDfs(false) {
			break
		}
	}

	items := t.coverRange(visited)
	if len(items) == 0 {
		return false, nil
	}
	t.log.Debug("deleting range %s as %d items", r, len(items))
	t.deleteItems(items, t.deleteConfig(opts))
	return true, nil
}

// coverRange reduces a set of visited positions to the smallest list of
// delete items, in document order.
func (t *Tree) coverRange(visited map[treepath.Node]bool) []deleteItem {
	memo := make(map[treepath.Node]bool)
	var covered func(n treepath.Node) bool
	covered = func(n treepath.Node) bool {
		if c, ok := memo[n]; ok {
			return c
		}
		c := visited[n]
		if count := n.ChildCount(); count > 0 {
			c = true
			for i := 0; i < count && c; i++ {
				child, _ := n.Child(i)
				c = covered(child)
			}
		}
		memo[n] = c
		return c
	}

	root := t.Root()
	var nodes []*Node
	runs := make(map[*Node][]int)
	seen := make(map[treepath.Node]bool)
	for n := range visited {
		if n == treepath.Node(root) || !covered(n) {
			continue
		}
		top := n
		for {
			p, ok := parentOf(top)
			if !ok || p == root || !covered(p) {
				break
			}
			top = p
		}
		if seen[top] {
			continue
		}
		seen[top] = true
		switch v := top.(type) {
		case Grapheme:
			runs[v.node] = append(runs[v.node], v.index)
		case *Node:
			nodes = append(nodes, v)
		}
	}

	type located struct {
		item deleteItem
		path treepath.Path
	}
	var out []located
	for _, n := range nodes {
		out = append(out, located{item: deleteItem{node: n}, path: t.PathOf(n)})
	}
	for n, idx := range runs {
		sort.Ints(idx)
		base := t.PathOf(n)
		for i := 0; i < len(idx); {
			j := i + 1
			for j < len(idx) && idx[j] == idx[j-1]+1 {
				j++
			}
			out = append(out, located{
				item: deleteItem{node: n, from: idx[i], count: j - i},
				path: base.Child(idx[i]),
			})
			i = j
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].path.Order(out[j].path) < 0 })

	items := make([]deleteItem, len(out))
	for i, l := range out {
		items[i] = l.item
	}
	return items
}

// parentOf returns the node holding n.
func parentOf(n treepath.Node) (*Node, bool) {
	switch v := n.(type) {
	case Grapheme:
		return v.node, true
	case *Node:
		return v.Parent()
	}
	return nil, false
}
