package treepath

import (
	"errors"
	"strings"
)

// ErrInvalidPath indicates malformed path text.
var ErrInvalidPath = errors.New("invalid path")

// Path is an ordered sequence of parts from the root. The empty path is the root.
// Paths are values: every method returns a new path and never mutates the receiver.
type Path []PathPart

// Root returns the empty path.
func Root() Path { return nil }

// New builds a path from ordinary child indices.
func New(indices ...int) Path {
	p := make(Path, len(indices))
	for i, n := range indices {
		p[i] = Child(n)
	}
	return p
}

// Len returns the number of parts.
func (p Path) Len() int { return len(p) }

// IsRoot reports whether p addresses the root.
func (p Path) IsRoot() bool { return len(p) == 0 }

// Tip returns the last part. ok is false for the root.
func (p Path) Tip() (PathPart, bool) {
	if len(p) == 0 {
		return PathPart{}, false
	}
	return p[len(p)-1], true
}

// Parent returns the path without its last part. The root is its own parent.
func (p Path) Parent() Path {
	if len(p) == 0 {
		return nil
	}
	return p.clone(len(p) - 1)
}

// Append returns p extended by parts.
func (p Path) Append(parts ...PathPart) Path {
	out := make(Path, len(p), len(p)+len(parts))
	copy(out, p)
	return append(out, parts...)
}

// Child returns p extended by an ordinary child index.
func (p Path) Child(index int) Path {
	return p.Append(Child(index))
}

// WithTipIndex returns p with the index of its last part replaced.
func (p Path) WithTipIndex(index int) Path {
	if len(p) == 0 {
		return p
	}
	out := p.clone(len(p))
	out[len(out)-1] = out[len(out)-1].WithIndex(index)
	return out
}

func (p Path) clone(n int) Path {
	out := make(Path, n)
	copy(out, p[:n])
	return out
}

// Equal reports whether two paths address the same slot.
func (p Path) Equal(o Path) bool {
	return p.CompareTo(o) == Equal
}

// HasPrefix reports whether prefix is p or an ancestor of p.
func (p Path) HasPrefix(prefix Path) bool {
	if len(prefix) > len(p) {
		return false
	}
	for i := range prefix {
		if !p[i].Equal(prefix[i]) {
			return false
		}
	}
	return true
}

// String renders the path in its text form, e.g. "0/caption/items:2".
func (p Path) String() string {
	parts := make([]string, len(p))
	for i, part := range p {
		parts[i] = part.String()
	}
	return strings.Join(parts, "/")
}

// Parse parses the text form of a path. The empty string is the root.
func Parse(s string) (Path, error) {
	if s == "" {
		return Root(), nil
	}
	segs := strings.Split(s, "/")
	p := make(Path, 0, len(segs))
	for _, seg := range segs {
		part, err := ParsePart(seg)
		if err != nil {
			return nil, err
		}
		p = append(p, part)
	}
	return p, nil
}

// MustParse is Parse for literals; it panics on malformed input.
func MustParse(s string) Path {
	p, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return p
}

// Comparison is the structural relationship of one path to another.
type Comparison int

const (
	Incomparable Comparison = iota
	Equal
	Ancestor
	Descendant
	EarlierSibling
	LaterSibling
	EarlierBranch
	LaterBranch
)

var comparisonNames = [...]string{
	Incomparable:   "incomparable",
	Equal:          "equal",
	Ancestor:       "ancestor",
	Descendant:     "descendant",
	EarlierSibling: "earlier-sibling",
	LaterSibling:   "later-sibling",
	EarlierBranch:  "earlier-branch",
	LaterBranch:    "later-branch",
}

// String returns the name of the comparison.
func (c Comparison) String() string {
	if int(c) < len(comparisonNames) {
		return comparisonNames[c]
	}
	return "unknown"
}

// Ordering collapses the comparison to document pre-order: -1 when the
// receiver is visited first, 1 when it is visited later, 0 when equal or
// incomparable. Ancestors come before descendants and a later branch comes
// after.
func (c Comparison) Ordering() int {
	switch c {
	case Ancestor, EarlierSibling, EarlierBranch:
		return -1
	case Descendant, LaterSibling, LaterBranch:
		return 1
	}
	return 0
}

// CompareTo describes p relative to o. Ancestor means p is an ancestor of o.
func (p Path) CompareTo(o Path) Comparison {
	n := min(len(p), len(o))
	for i := 0; i < n; i++ {
		c, ok := p[i].Compare(o[i])
		if !ok {
			return Incomparable
		}
		if c == 0 {
			continue
		}
		sibling := len(p) == len(o) && i == len(p)-1
		switch {
		case c < 0 && sibling:
			return EarlierSibling
		case c < 0:
			return EarlierBranch
		case sibling:
			return LaterSibling
		default:
			return LaterBranch
		}
	}
	switch {
	case len(p) == len(o):
		return Equal
	case len(p) < len(o):
		return Ancestor
	default:
		return Descendant
	}
}

// Order is a total order consistent with CompareTo for comparable paths.
// Incomparable paths are ordered with ordinary children before facets, then
// by facet name, then by index.
func (p Path) Order(o Path) int {
	if c := p.CompareTo(o); c != Incomparable {
		return c.Ordering()
	}
	for i := 0; i < min(len(p), len(o)); i++ {
		a, b := p[i], o[i]
		if a.SameContainer(b) {
			if a.Index != b.Index {
				return cmpInt(a.Index, b.Index)
			}
			continue
		}
		switch {
		case a.Facet != b.Facet:
			if a.Facet == "" {
				return -1
			}
			if b.Facet == "" {
				return 1
			}
			return strings.Compare(a.Facet, b.Facet)
		case !a.HasIndex:
			return -1
		default:
			return 1
		}
	}
	return cmpInt(len(p), len(o))
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// Adjustment is the reason code returned by the AdjustDueTo functions.
type Adjustment int

const (
	// AdjustmentNone means the path is unaffected by the change.
	AdjustmentNone Adjustment = iota
	// AdjustmentShifted means the returned path differs from the input.
	AdjustmentShifted
	// AdjustmentRemoved means the path addressed the removed node or lies inside it.
	AdjustmentRemoved
)

// String returns the name of the adjustment.
func (a Adjustment) String() string {
	switch a {
	case AdjustmentShifted:
		return "shifted"
	case AdjustmentRemoved:
		return "removed"
	default:
		return "none"
	}
}

// divergence splits p at the depth of ref's last part. ok is false when p is
// too short, the prefixes differ, or the parts at that depth address
// different containers.
func (p Path) divergence(ref Path) (depth int, cmp int, ok bool) {
	depth = len(ref) - 1
	if depth < 0 || len(p) <= depth {
		return 0, 0, false
	}
	for i := 0; i < depth; i++ {
		if !p[i].Equal(ref[i]) {
			return 0, 0, false
		}
	}
	cmp, ok = p[depth].Compare(ref[depth])
	if ok && !p[depth].HasIndex {
		ok = false
	}
	return depth, cmp, ok
}

func (p Path) shift(depth, delta int) Path {
	out := p.clone(len(p))
	out[depth] = out[depth].WithIndex(out[depth].Index + delta)
	return out
}

// AdjustDueToRelativeDeletionAt recomputes p after the node at deleted was
// removed from its parent. Later siblings (and their descendants) move back
// by one; p itself or anything inside it reports AdjustmentRemoved.
func (p Path) AdjustDueToRelativeDeletionAt(deleted Path) (Path, Adjustment) {
	depth, cmp, ok := p.divergence(deleted)
	switch {
	case !ok || cmp < 0:
		return p, AdjustmentNone
	case cmp == 0:
		return p, AdjustmentRemoved
	default:
		return p.shift(depth, -1), AdjustmentShifted
	}
}

// AdjustDueToRelativeInsertionBefore recomputes p after a node was inserted
// at inserted, pushing the sibling previously there (and everything after it)
// forward by one.
func (p Path) AdjustDueToRelativeInsertionBefore(inserted Path) (Path, Adjustment) {
	depth, cmp, ok := p.divergence(inserted)
	if !ok || cmp < 0 {
		return p, AdjustmentNone
	}
	return p.shift(depth, 1), AdjustmentShifted
}

// AdjustDueToMove recomputes p after the node at from was moved to to. The
// destination is expressed in the tree after the move. Paths at or below
// from are rebased onto to; other paths see the removal at from followed by
// the insertion at to.
func (p Path) AdjustDueToMove(from, to Path) (Path, Adjustment) {
	if len(from) == 0 {
		return p, AdjustmentNone
	}
	if p.HasPrefix(from) {
		out := to.Append(p[len(from):]...)
		if out.Equal(p) {
			return p, AdjustmentNone
		}
		return out, AdjustmentShifted
	}
	q, a1 := p.AdjustDueToRelativeDeletionAt(from)
	q, a2 := q.AdjustDueToRelativeInsertionBefore(to)
	if (a1 == AdjustmentNone && a2 == AdjustmentNone) || q.Equal(p) {
		return p, AdjustmentNone
	}
	return q, AdjustmentShifted
}

// AdjustDueToTailMove recomputes p after the ordinary children of oldPrefix
// from fromIndex onward were moved under newPrefix, the first of them
// landing at offset. This is the rebase a split or a join applies to
// paths inside the node it cuts or merges; other paths are unaffected.
func (p Path) AdjustDueToTailMove(oldPrefix Path, fromIndex int, newPrefix Path, offset int) (Path, Adjustment) {
	depth := len(oldPrefix)
	if len(p) <= depth || !p.HasPrefix(oldPrefix) {
		return p, AdjustmentNone
	}
	part := p[depth]
	if part.IsFacet() || !part.HasIndex || part.Index < fromIndex {
		return p, AdjustmentNone
	}
	out := newPrefix.Child(part.Index - fromIndex + offset).Append(p[depth+1:]...)
	if out.Equal(p) {
		return p, AdjustmentNone
	}
	return out, AdjustmentShifted
}

// AdjustDueToSplitAt recomputes p after a one-level split of the node at
// at.Parent() before its child at.Tip(): a new sibling is inserted right
// after the split node and receives the tail of its children.
func (p Path) AdjustDueToSplitAt(at Path) (Path, Adjustment) {
	tip, ok := at.Tip()
	if !ok || len(at) < 2 || tip.IsFacet() {
		return p, AdjustmentNone
	}
	node := at.Parent()
	nodeTip, _ := node.Tip()
	if !nodeTip.HasIndex {
		return p, AdjustmentNone
	}
	sibling := node.WithTipIndex(nodeTip.Index + 1)
	q, a1 := p.AdjustDueToRelativeInsertionBefore(sibling)
	q, a2 := q.AdjustDueToTailMove(node, tip.Index, sibling, 0)
	if a1 == AdjustmentNone && a2 == AdjustmentNone {
		return p, AdjustmentNone
	}
	return q, AdjustmentShifted
}
