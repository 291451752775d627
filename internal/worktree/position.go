package worktree

import (
	"github.com/dshills/docstorm/internal/treepath"
)

// positionBefore returns the valid cursor position that sits immediately
// before s in document order, preferring positions inside s.
func (t *Tree) positionBefore(s *Node) treepath.Cursor {
	nav := t.Navigator()
	p := t.PathOf(s)
	nav.NavigateToUnchecked(p, treepath.Before)
	switch {
	case nav.IsValid():
	case s.HasGraphemes() && s.Len() > 0:
		nav.NavigateTo(p.Child(0), treepath.Before)
	case len(s.children) > 0:
		return t.positionBefore(t.nodes[s.children[0]])
	case s.typ.Behavior().Atomic:
		if !nav.ToPrecedingCursorPosition() {
			nav.ChangeCursorOrientationFreely(treepath.On)
		}
	default:
		nav.ChangeCursorOrientationFreely(treepath.On)
	}
	return nav.Cursor()
}

// positionAfter returns the valid cursor position that sits immediately
// after s in document order, preferring positions inside s.
func (t *Tree) positionAfter(s *Node) treepath.Cursor {
	nav := t.Navigator()
	p := t.PathOf(s)
	nav.NavigateToUnchecked(p, treepath.After)
	switch {
	case nav.IsValid():
	case s.HasGraphemes() && s.Len() > 0:
		nav.NavigateTo(p.Child(s.Len()-1), treepath.After)
	case len(s.children) > 0:
		return t.positionAfter(t.nodes[s.children[len(s.children)-1]])
	case s.typ.Behavior().Atomic:
		if !nav.ToNextCursorPosition() {
			nav.ChangeCursorOrientationFreely(treepath.On)
		}
	default:
		nav.ChangeCursorOrientationFreely(treepath.On)
	}
	return nav.Cursor()
}

// positionInside returns the first valid position inside n, or the last one
// when last is set. An empty n yields its own On position.
func (t *Tree) positionInside(n *Node, last bool) treepath.Cursor {
	nav := t.Navigator()
	nav.NavigateToUnchecked(t.PathOf(n), treepath.On)
	var ok bool
	if last {
		ok = nav.ToLastDescendantCursorPosition()
	} else {
		ok = nav.ToFirstDescendantCursorPosition()
	}
	if !ok {
		nav.ChangeCursorOrientationFreely(treepath.On)
	}
	return nav.Cursor()
}

// positionInText returns the canonical position left in container n after
// the graphemes [from, from+count) were removed. Backward deletion lands
// after the grapheme preceding the removed run; forward deletion lands
// before the grapheme that followed it.
func (t *Tree) positionInText(n *Node, from int, dir Direction) treepath.Cursor {
	p := t.PathOf(n)
	length := n.Len()
	var cur treepath.Cursor
	switch {
	case length == 0:
		cur = treepath.NewCursor(p, treepath.On)
	case dir == Backward && from > 0:
		cur = treepath.NewCursor(p.Child(from-1), treepath.After)
	case dir == Backward:
		cur = treepath.NewCursor(p.Child(0), treepath.Before)
	case from < length:
		cur = treepath.NewCursor(p.Child(from), treepath.Before)
	default:
		cur = treepath.NewCursor(p.Child(length-1), treepath.After)
	}
	nav := t.Navigator()
	if !nav.NavigateToCursor(cur) {
		return cur
	}
	return nav.Cursor()
}
