package navigate

import (
	"math"

	"github.com/dshills/docstorm/internal/treepath"
)

// CursorNavigator walks the valid cursor positions of a tree in document
// order. Internally it visits every (node, orientation) event:
//
//	(N, before) (N, on) children... (N, after)
//
// and stops only on events that Classify accepts.
type CursorNavigator struct {
	nav         *NodeNavigator
	orientation treepath.Orientation
	layout      LayoutOracle
}

// NewCursorNavigator returns a navigator on root with orientation On. The
// position is not canonicalized; call NavigateTo or one of the To* methods
// to land on a valid position. layout may be nil.
func NewCursorNavigator(root treepath.Node, layout LayoutOracle) *CursorNavigator {
	return &CursorNavigator{
		nav:         NewNodeNavigator(root),
		orientation: treepath.On,
		layout:      layout,
	}
}

// Clone returns an independent navigator at the same position.
func (c *CursorNavigator) Clone() *CursorNavigator {
	return &CursorNavigator{nav: c.nav.Clone(), orientation: c.orientation, layout: c.layout}
}

// Cursor returns the current position.
func (c *CursorNavigator) Cursor() treepath.Cursor {
	return treepath.Cursor{Path: c.nav.Path(), Orientation: c.orientation}
}

// Chain returns the chain of the current node.
func (c *CursorNavigator) Chain() treepath.Chain { return c.nav.Chain() }

// Path returns the path of the current node.
func (c *CursorNavigator) Path() treepath.Path { return c.nav.Path() }

// Tip returns the current node.
func (c *CursorNavigator) Tip() treepath.Node { return c.nav.Tip() }

// Orientation returns the current orientation.
func (c *CursorNavigator) Orientation() treepath.Orientation { return c.orientation }

// Classification classifies the current node.
func (c *CursorNavigator) Classification() Classification {
	return Classify(c.nav.Chain(), c.layout)
}

// IsValid reports whether the current position is a valid cursor position.
func (c *CursorNavigator) IsValid() bool {
	return c.Classification().Valid(c.orientation)
}

func (c *CursorNavigator) save() (treepath.Chain, treepath.Orientation) {
	return c.nav.Chain(), c.orientation
}

func (c *CursorNavigator) restore(chain treepath.Chain, o treepath.Orientation) {
	c.nav.chain = chain
	c.orientation = o
}

// NavigateToUnchecked moves to path with orientation o without
// canonicalizing. The result may be an invalid position.
func (c *CursorNavigator) NavigateToUnchecked(p treepath.Path, o treepath.Orientation) bool {
	if !c.nav.NavigateTo(p) {
		return false
	}
	c.orientation = o
	return true
}

// ChangeCursorOrientationFreely sets the orientation without validation.
func (c *CursorNavigator) ChangeCursorOrientationFreely(o treepath.Orientation) {
	c.orientation = o
}

// NavigateTo moves to path with orientation o and canonicalizes: one step
// forward then one step back, so equivalent positions always land on the
// same cursor. When there is nothing valid ahead, the position falls back
// to the nearest valid position behind it.
func (c *CursorNavigator) NavigateTo(p treepath.Path, o treepath.Orientation) bool {
	if !c.NavigateToUnchecked(p, o) {
		return false
	}
	c.canonicalize()
	return true
}

// NavigateToCursor is NavigateTo for a cursor value.
func (c *CursorNavigator) NavigateToCursor(cur treepath.Cursor) bool {
	return c.NavigateTo(cur.Path, cur.Orientation)
}

func (c *CursorNavigator) canonicalize() {
	if c.ToNextCursorPosition() {
		c.ToPrecedingCursorPosition()
		return
	}
	if !c.IsValid() {
		c.ToPrecedingCursorPosition()
	}
}

func (c *CursorNavigator) stepForward() bool {
	switch c.orientation {
	case treepath.Before:
		c.orientation = treepath.On
		return true
	case treepath.On:
		if c.nav.ToFirstChild() {
			c.orientation = treepath.Before
			return true
		}
		c.orientation = treepath.After
		return true
	default:
		if c.nav.ToNextSibling() {
			c.orientation = treepath.Before
			return true
		}
		if c.nav.ToParent() {
			c.orientation = treepath.After
			return true
		}
		return false
	}
}

func (c *CursorNavigator) stepBackward() bool {
	switch c.orientation {
	case treepath.After:
		if c.nav.ToLastChild() {
			c.orientation = treepath.After
			return true
		}
		c.orientation = treepath.On
		return true
	case treepath.On:
		c.orientation = treepath.Before
		return true
	default:
		if c.nav.ToPrecedingSibling() {
			c.orientation = treepath.After
			return true
		}
		if c.nav.ToParent() {
			c.orientation = treepath.On
			return true
		}
		return false
	}
}

// ToNextCursorPosition moves to the next valid position in document order.
func (c *CursorNavigator) ToNextCursorPosition() bool {
	chain, o := c.save()
	for c.stepForward() {
		if c.IsValid() {
			return true
		}
	}
	c.restore(chain, o)
	return false
}

// ToPrecedingCursorPosition moves to the previous valid position.
func (c *CursorNavigator) ToPrecedingCursorPosition() bool {
	chain, o := c.save()
	for c.stepBackward() {
		if c.IsValid() {
			return true
		}
	}
	c.restore(chain, o)
	return false
}

// ToFirstDescendantCursorPosition moves to the first valid position inside
// the current node. An empty insertion point yields its own On position.
func (c *CursorNavigator) ToFirstDescendantCursorPosition() bool {
	if c.Classification().On {
		c.orientation = treepath.On
		return true
	}
	chain, o := c.save()
	depth := chain.Len()
	c.orientation = treepath.On
	for c.stepForward() && c.nav.Chain().Len() > depth {
		if c.IsValid() {
			return true
		}
	}
	c.restore(chain, o)
	return false
}

// ToLastDescendantCursorPosition moves to the last valid position inside
// the current node. An empty insertion point yields its own On position.
func (c *CursorNavigator) ToLastDescendantCursorPosition() bool {
	if c.Classification().On {
		c.orientation = treepath.On
		return true
	}
	chain, o := c.save()
	depth := chain.Len()
	c.orientation = treepath.After
	for c.stepBackward() && c.nav.Chain().Len() > depth {
		if c.IsValid() {
			return true
		}
	}
	c.restore(chain, o)
	return false
}

// ToDocumentStart moves to the first valid position of the tree.
func (c *CursorNavigator) ToDocumentStart() bool {
	c.nav.ToRoot()
	return c.ToFirstDescendantCursorPosition()
}

// ToDocumentEnd moves to the last valid position of the tree.
func (c *CursorNavigator) ToDocumentEnd() bool {
	c.nav.ToRoot()
	return c.ToLastDescendantCursorPosition()
}

// ToVerticalNeighbor moves to the position on the adjacent visual line
// closest to the goal column. The goal column is taken from hint when set,
// otherwise from the current position; it is returned so the caller can
// keep it across successive vertical moves. Without a layout oracle the
// move always fails.
func (c *CursorNavigator) ToVerticalNeighbor(forward bool, hint *float64) (float64, bool) {
	if c.layout == nil {
		return 0, false
	}
	var target float64
	if hint != nil {
		target = *hint
	} else {
		x, ok := c.layout.TargetHorizontalAnchor(c.nav.Chain(), c.orientation)
		if !ok {
			return 0, false
		}
		target = x
	}

	chain, o := c.save()
	step := c.ToNextCursorPosition
	if !forward {
		step = c.ToPrecedingCursorPosition
	}

	var (
		best      treepath.Chain
		bestO     treepath.Orientation
		bestDist  = math.Inf(1)
		lines     int
		lastTip   = c.nav.Tip()
		candidate bool
	)
	for step() {
		tip := c.nav.Tip()
		a, b := lastTip, tip
		if !forward {
			a, b = tip, lastTip
		}
		if detectWrap(c.layout, a, b) {
			lines++
		}
		lastTip = tip
		if lines > 1 {
			break
		}
		if lines == 0 {
			continue
		}
		d, ok := c.layout.HorizontalDistanceFromTargetHorizontalAnchor(c.nav.Chain(), c.orientation, target)
		if !ok {
			continue
		}
		d = math.Abs(d)
		if d > bestDist && candidate {
			break
		}
		if d < bestDist {
			best, bestO, bestDist, candidate = c.nav.Chain(), c.orientation, d, true
		}
	}
	if !candidate {
		c.restore(chain, o)
		return target, false
	}
	c.restore(best, bestO)
	return target, true
}
