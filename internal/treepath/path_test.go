package treepath

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseRoundTrip(t *testing.T) {
	inputs := []string{
		"",
		"0",
		"12",
		"0/1/2",
		"caption",
		"footnotes:3",
		"0/footnotes:3/1",
		"a_b/c-d:0/7",
	}
	for _, in := range inputs {
		p, err := Parse(in)
		require.NoError(t, err, in)
		require.Equal(t, in, p.String())

		again, err := Parse(p.String())
		require.NoError(t, err)
		require.True(t, again.Equal(p))
	}
}

func TestParseErrors(t *testing.T) {
	for _, in := range []string{"/", "0/", "/0", "-1", "01", "+1", "a:", "a:x", "a:-1", ":3", "9a", "a b"} {
		_, err := Parse(in)
		require.ErrorIs(t, err, ErrInvalidPath, in)
	}
}

func TestCompareTo(t *testing.T) {
	tests := []struct {
		a, b string
		want Comparison
	}{
		{"", "", Equal},
		{"0/1", "0/1", Equal},
		{"", "0", Ancestor},
		{"0", "0/3/1", Ancestor},
		{"0/3/1", "0", Descendant},
		{"0/1", "0/2", EarlierSibling},
		{"0/2", "0/1", LaterSibling},
		{"0/1/5", "0/2/0", EarlierBranch},
		{"0/2/0", "0/1/5", LaterBranch},
		{"0", "1/2", EarlierBranch},
		{"1/2", "0", LaterBranch},
		{"0/1", "0/2/4", EarlierBranch},
		{"0/a:1", "0/b:1", Incomparable},
		{"0/a:1", "0/1", Incomparable},
		{"0/a:0", "0/a:1", EarlierSibling},
		{"a", "a", Equal},
		{"a", "a:0", Incomparable},
	}
	for _, tt := range tests {
		got := MustParse(tt.a).CompareTo(MustParse(tt.b))
		require.Equal(t, tt.want, got, "%q vs %q", tt.a, tt.b)
	}
}

func TestCompareToIsConsistentWithPreorder(t *testing.T) {
	// Pre-order listing of a small tree.
	preorder := []string{"", "0", "0/0", "0/1", "0/1/0", "0/2", "1", "1/0", "2"}
	for i, a := range preorder {
		require.Equal(t, Equal, MustParse(a).CompareTo(MustParse(a)))
		for j, b := range preorder {
			got := MustParse(a).CompareTo(MustParse(b)).Ordering()
			want := cmpInt(i, j)
			require.Equal(t, want, got, "%q vs %q", a, b)
		}
	}

	shuffled := []Path{}
	for i := len(preorder) - 1; i >= 0; i-- {
		shuffled = append(shuffled, MustParse(preorder[i]))
	}
	sort.Slice(shuffled, func(i, j int) bool { return shuffled[i].Order(shuffled[j]) < 0 })
	for i, p := range shuffled {
		require.Equal(t, preorder[i], p.String())
	}
}

func TestOrderIncomparable(t *testing.T) {
	require.Equal(t, -1, MustParse("0/1").Order(MustParse("0/a:0")))
	require.Equal(t, 1, MustParse("0/b:0").Order(MustParse("0/a:5")))
	require.Equal(t, -1, MustParse("a").Order(MustParse("a:0")))
}

func TestAdjustDueToRelativeDeletionAt(t *testing.T) {
	tests := []struct {
		path, deleted string
		want          string
		adj           Adjustment
	}{
		{"0/3/1", "0/1", "0/2/1", AdjustmentShifted},
		{"0/1/4", "0/1", "0/1/4", AdjustmentRemoved},
		{"0/1", "0/1", "0/1", AdjustmentRemoved},
		{"0/0/4", "0/1", "0/0/4", AdjustmentNone},
		{"1/3", "0/1", "1/3", AdjustmentNone},
		{"0", "0/1", "0", AdjustmentNone},
		{"0/a:2", "0/a:1", "0/a:1", AdjustmentShifted},
		{"0/b:2", "0/a:1", "0/b:2", AdjustmentNone},
		{"0/2", "0/a:1", "0/2", AdjustmentNone},
		{"2", "", "2", AdjustmentNone},
	}
	for _, tt := range tests {
		got, adj := MustParse(tt.path).AdjustDueToRelativeDeletionAt(MustParse(tt.deleted))
		require.Equal(t, tt.adj, adj, "%s after deleting %s", tt.path, tt.deleted)
		require.Equal(t, tt.want, got.String())
	}
}

func TestAdjustDueToRelativeInsertionBefore(t *testing.T) {
	tests := []struct {
		path, inserted string
		want           string
		adj            Adjustment
	}{
		{"0/1", "0/1", "0/2", AdjustmentShifted},
		{"0/1/5", "0/1", "0/2/5", AdjustmentShifted},
		{"0/0/5", "0/1", "0/0/5", AdjustmentNone},
		{"0", "0/1", "0", AdjustmentNone},
		{"1/0", "0/0", "1/0", AdjustmentNone},
		{"1", "0", "2", AdjustmentShifted},
	}
	for _, tt := range tests {
		got, adj := MustParse(tt.path).AdjustDueToRelativeInsertionBefore(MustParse(tt.inserted))
		require.Equal(t, tt.adj, adj, "%s after inserting %s", tt.path, tt.inserted)
		require.Equal(t, tt.want, got.String())
	}
}

func TestAdjustDueToMove(t *testing.T) {
	tests := []struct {
		path, from, to string
		want           string
		adj            Adjustment
	}{
		// the moved node and its subtree are rebased
		{"0/1", "0/1", "2/0", "2/0", AdjustmentShifted},
		{"0/1/3", "0/1", "2/0", "2/0/3", AdjustmentShifted},
		// later siblings of the source close the gap
		{"0/2", "0/1", "1/0", "0/1", AdjustmentShifted},
		// siblings at or after the destination make room
		{"1/0", "0/1", "1/0", "1/1", AdjustmentShifted},
		// a move within one parent
		{"0/1", "0/0", "0/2", "0/0", AdjustmentShifted},
		{"0/3", "0/0", "0/2", "0/3", AdjustmentNone},
		{"1/5", "0/0", "0/2", "1/5", AdjustmentNone},
	}
	for _, tt := range tests {
		got, adj := MustParse(tt.path).AdjustDueToMove(MustParse(tt.from), MustParse(tt.to))
		require.Equal(t, tt.adj, adj, "%s moving %s -> %s", tt.path, tt.from, tt.to)
		require.Equal(t, tt.want, got.String(), "%s moving %s -> %s", tt.path, tt.from, tt.to)
	}
}

func TestAdjustDueToTailMove(t *testing.T) {
	tests := []struct {
		path, oldPrefix string
		from            int
		newPrefix       string
		offset          int
		want            string
		adj             Adjustment
	}{
		// a split of 0/1 before child 3 into the new sibling 0/2
		{"0/1/3", "0/1", 3, "0/2", 0, "0/2/0", AdjustmentShifted},
		{"0/1/5/2", "0/1", 3, "0/2", 0, "0/2/2/2", AdjustmentShifted},
		{"0/1/2", "0/1", 3, "0/2", 0, "0/1/2", AdjustmentNone},
		// the prefix itself is not below it
		{"0/1", "0/1", 0, "0/2", 0, "0/1", AdjustmentNone},
		{"0/2/4", "0/1", 0, "0/3", 0, "0/2/4", AdjustmentNone},
		// a join appends every child of 1 after the two children of 0
		{"1/0", "1", 0, "0", 2, "0/2", AdjustmentShifted},
		{"1/1/0", "1", 0, "0", 2, "0/3/0", AdjustmentShifted},
		// facet entries are not ordinary children
		{"0/footnotes:0", "0", 0, "1", 0, "0/footnotes:0", AdjustmentNone},
		// moving onto itself changes nothing
		{"0/4", "0", 2, "0", 2, "0/4", AdjustmentNone},
	}
	for _, tt := range tests {
		got, adj := MustParse(tt.path).AdjustDueToTailMove(MustParse(tt.oldPrefix), tt.from, MustParse(tt.newPrefix), tt.offset)
		require.Equal(t, tt.adj, adj, "%s moving %s[%d:] -> %s@%d", tt.path, tt.oldPrefix, tt.from, tt.newPrefix, tt.offset)
		require.Equal(t, tt.want, got.String(), "%s moving %s[%d:] -> %s@%d", tt.path, tt.oldPrefix, tt.from, tt.newPrefix, tt.offset)
	}
}

func TestAdjustDueToSplitAt(t *testing.T) {
	tests := []struct {
		path, at string
		want     string
		adj      Adjustment
	}{
		{"0/1/5", "0/1/3", "0/2/2", AdjustmentShifted},
		{"0/1/3/0", "0/1/3", "0/2/0/0", AdjustmentShifted},
		{"0/1/2", "0/1/3", "0/1/2", AdjustmentNone},
		{"0/1", "0/1/3", "0/1", AdjustmentNone},
		{"0/2/0", "0/1/3", "0/3/0", AdjustmentShifted},
		{"1/0", "0/1/3", "1/0", AdjustmentNone},
		// the root has no siblings to split into
		{"0/1", "0", "0/1", AdjustmentNone},
	}
	for _, tt := range tests {
		got, adj := MustParse(tt.path).AdjustDueToSplitAt(MustParse(tt.at))
		require.Equal(t, tt.adj, adj, "%s split at %s", tt.path, tt.at)
		require.Equal(t, tt.want, got.String(), "%s split at %s", tt.path, tt.at)
	}
}

func TestPathHelpers(t *testing.T) {
	p := New(0, 2)
	require.Equal(t, "0/2", p.String())
	require.Equal(t, "0", p.Parent().String())
	require.Equal(t, "0/2/1", p.Child(1).String())
	require.Equal(t, "0/5", p.WithTipIndex(5).String())
	require.Equal(t, "0/2", p.String(), "receiver unchanged")
	require.True(t, p.Child(1).HasPrefix(p))
	require.False(t, p.HasPrefix(p.Child(1)))
	require.True(t, Root().IsRoot())
	require.True(t, Root().Parent().IsRoot())
}

func TestCursorCompareAndParse(t *testing.T) {
	c, err := ParseCursor("after:0/1")
	require.NoError(t, err)
	require.Equal(t, After, c.Orientation)
	require.Equal(t, "after:0/1", c.String())

	root, err := ParseCursor("on:")
	require.NoError(t, err)
	require.True(t, root.Path.IsRoot())

	before := NewCursor(New(0), Before)
	inside := NewCursor(New(0, 3), After)
	after := NewCursor(New(0), After)
	require.Equal(t, -1, before.Compare(inside))
	require.Equal(t, -1, inside.Compare(after))
	require.Equal(t, 1, after.Compare(inside))
	require.Equal(t, -1, before.Compare(after))

	_, err = ParseCursor("0/1")
	require.Error(t, err)
}

func TestRange(t *testing.T) {
	r := NewRange(New(2, 0), New(0, 1))
	require.Equal(t, "0/1..2/0", r.String())
	require.True(t, r.Contains(New(1)))
	require.True(t, r.Contains(New(2, 0, 4)))
	require.False(t, r.Contains(New(0, 0)))
	require.False(t, r.Contains(New(2, 1)))
}
