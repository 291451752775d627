package treepath

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dshills/docstorm/internal/schema"
)

type fakeNode struct {
	name     string
	typ      *schema.NodeType
	children []*fakeNode
	facets   map[string][]*fakeNode
}

func (n *fakeNode) NodeType() *schema.NodeType { return n.typ }
func (n *fakeNode) ChildCount() int            { return len(n.children) }
func (n *fakeNode) Child(i int) (Node, bool) {
	if i < 0 || i >= len(n.children) {
		return nil, false
	}
	return n.children[i], true
}
func (n *fakeNode) FacetCount(f string) int { return len(n.facets[f]) }
func (n *fakeNode) FacetChild(f string, i int) (Node, bool) {
	arr := n.facets[f]
	if i < 0 || i >= len(arr) {
		return nil, false
	}
	return arr[i], true
}

var blockType = &schema.NodeType{Name: "B", Category: schema.CategoryBlock, Children: schema.ChildrenBlocks}

func fake(name string, children ...*fakeNode) *fakeNode {
	return &fakeNode{name: name, typ: blockType, children: children}
}

func sampleTree() *fakeNode {
	note := fake("note", fake("note-body"))
	root := fake("root",
		fake("a", fake("a0"), fake("a1")),
		fake("b"),
	)
	root.facets = map[string][]*fakeNode{"notes": {note}}
	return root
}

func TestChainFrom(t *testing.T) {
	root := sampleTree()

	c, ok := ChainFrom(root, MustParse("0/1"))
	require.True(t, ok)
	require.Equal(t, 3, c.Len())
	require.Equal(t, "a1", c.Tip().(*fakeNode).name)
	require.Equal(t, "0/1", c.Path().String())
	require.False(t, c.Link(0).HasPart)

	parent, ok := c.ParentNode()
	require.True(t, ok)
	require.Equal(t, "a", parent.(*fakeNode).name)

	c, ok = ChainFrom(root, MustParse("notes:0/0"))
	require.True(t, ok)
	require.Equal(t, "note-body", c.Tip().(*fakeNode).name)
	require.Equal(t, "notes:0/0", c.Path().String())

	for _, bad := range []string{"5", "0/1/0", "notes:1", "notes", "other:0"} {
		_, ok := ChainFrom(root, MustParse(bad))
		require.False(t, ok, bad)
	}

	c, ok = ChainFrom(root, Root())
	require.True(t, ok)
	require.Equal(t, 1, c.Len())
	require.True(t, c.Path().IsRoot())
}

func TestChainAppendAndDrop(t *testing.T) {
	root := sampleTree()
	c := NewChain(root)

	c2, ok := c.Append(Child(0))
	require.True(t, ok)
	require.Equal(t, 1, c.Len(), "receiver unchanged")

	c3, ok := c2.Append(Child(1))
	require.True(t, ok)
	require.Equal(t, "0/1", c3.Path().String())

	_, ok = c3.Append(Child(0))
	require.False(t, ok)

	up, ok := c3.DropTip()
	require.True(t, ok)
	require.Equal(t, "0", up.Path().String())

	sib, ok := c3.ReplaceTip(Child(0))
	require.True(t, ok)
	require.Equal(t, "a0", sib.Tip().(*fakeNode).name)

	_, ok = NewChain(root).DropTip()
	require.False(t, ok)
}

func TestSearchBackwardsAndSplit(t *testing.T) {
	root := sampleTree()
	c, ok := ChainFrom(root, MustParse("0/1"))
	require.True(t, ok)

	head, tail, ok := c.SearchBackwardsAndSplit(func(n Node) bool {
		return n.(*fakeNode).name == "a"
	})
	require.True(t, ok)
	require.Equal(t, "0", head.Path().String())
	require.Len(t, tail, 1)
	require.Equal(t, "a1", tail[0].Node.(*fakeNode).name)

	head, tail, ok = c.SearchBackwardsAndSplit(func(n Node) bool { return true })
	require.True(t, ok)
	require.Equal(t, "0/1", head.Path().String())
	require.Empty(t, tail)

	_, _, ok = c.SearchBackwardsAndSplit(func(n Node) bool { return false })
	require.False(t, ok)
}
