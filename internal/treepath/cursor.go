package treepath

import (
	"fmt"
	"strings"
)

// Orientation places a cursor relative to a node.
type Orientation int

const (
	// Before is the position immediately preceding the node.
	Before Orientation = iota
	// On is the node itself, used for empty containers and atomic inlines.
	On
	// After is the position immediately following the node.
	After
)

// String returns the lower case name of the orientation.
func (o Orientation) String() string {
	switch o {
	case Before:
		return "before"
	case On:
		return "on"
	case After:
		return "after"
	}
	return "unknown"
}

// ParseOrientation parses "before", "on" or "after".
func ParseOrientation(s string) (Orientation, error) {
	switch strings.ToLower(s) {
	case "before":
		return Before, nil
	case "on":
		return On, nil
	case "after":
		return After, nil
	}
	return 0, fmt.Errorf("unknown orientation %q", s)
}

// Cursor is a logical text cursor position: a path plus an orientation.
type Cursor struct {
	Path        Path
	Orientation Orientation
}

// NewCursor returns a cursor at path with orientation o.
func NewCursor(path Path, o Orientation) Cursor {
	return Cursor{Path: path, Orientation: o}
}

// Equal reports whether two cursors have the same path and orientation.
// Equivalent but differently expressed positions are not equal; canonicalize
// them through a navigator first.
func (c Cursor) Equal(o Cursor) bool {
	return c.Orientation == o.Orientation && c.Path.Equal(o.Path)
}

// Compare orders cursors in document order. Before sorts ahead of On and
// On ahead of After for the same path; a descendant of a node sorts after
// the node's Before and On positions but ahead of its After position.
func (c Cursor) Compare(o Cursor) int {
	switch cmp := c.Path.CompareTo(o.Path); cmp {
	case Equal:
		return cmpInt(int(c.Orientation), int(o.Orientation))
	case Ancestor:
		if c.Orientation == After {
			return 1
		}
		return -1
	case Descendant:
		if o.Orientation == After {
			return -1
		}
		return 1
	default:
		return c.Path.Order(o.Path)
	}
}

// String renders the cursor as "orientation:path".
func (c Cursor) String() string {
	return c.Orientation.String() + ":" + c.Path.String()
}

// ParseCursor parses the String form of a cursor.
func ParseCursor(s string) (Cursor, error) {
	o, rest, ok := strings.Cut(s, ":")
	if !ok {
		return Cursor{}, fmt.Errorf("%w: cursor %q lacks orientation", ErrInvalidPath, s)
	}
	orientation, err := ParseOrientation(o)
	if err != nil {
		return Cursor{}, err
	}
	p, err := Parse(rest)
	if err != nil {
		return Cursor{}, err
	}
	return Cursor{Path: p, Orientation: orientation}, nil
}

// Range is an ordered pair of paths bounding a span, both ends inclusive.
type Range struct {
	From Path
	To   Path
}

// NewRange returns a range with the endpoints ordered in document order.
func NewRange(a, b Path) Range {
	if a.Order(b) > 0 {
		a, b = b, a
	}
	return Range{From: a, To: b}
}

// Contains reports whether p lies within the range, counting every
// descendant of To as inside.
func (r Range) Contains(p Path) bool {
	if p.Order(r.From) < 0 {
		return false
	}
	return p.Order(r.To) <= 0 || p.HasPrefix(r.To)
}

// String renders the range as "from..to".
func (r Range) String() string {
	return r.From.String() + ".." + r.To.String()
}
