package navigate

import (
	"strings"

	"github.com/dshills/docstorm/internal/treepath"
)

// Classification lists the orientations that are valid cursor positions
// for a node.
type Classification struct {
	Before bool
	On     bool
	After  bool
}

// Valid reports whether o is one of the valid orientations.
func (c Classification) Valid(o treepath.Orientation) bool {
	switch o {
	case treepath.Before:
		return c.Before
	case treepath.On:
		return c.On
	case treepath.After:
		return c.After
	}
	return false
}

// Any reports whether at least one orientation is valid.
func (c Classification) Any() bool {
	return c.Before || c.On || c.After
}

// String renders the valid orientations, e.g. "before|after".
func (c Classification) String() string {
	var parts []string
	if c.Before {
		parts = append(parts, "before")
	}
	if c.On {
		parts = append(parts, "on")
	}
	if c.After {
		parts = append(parts, "after")
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}

// Classify decides which orientations are valid cursor positions at the
// tip of chain. Between two adjacent graphemes there is exactly one valid
// position: After on the first. Before is only used where nothing precedes
// the grapheme on the same line. Empty containers and atomic inlines accept
// On. Nodes with children never hold a cursor themselves.
func Classify(chain treepath.Chain, layout LayoutOracle) Classification {
	if chain.IsZero() {
		return Classification{}
	}
	tip := chain.Tip()
	if treepath.IsGrapheme(tip) {
		return classifyGrapheme(chain, layout)
	}

	var c Classification
	if tip.ChildCount() == 0 {
		c.On = true
	}
	if !tip.NodeType().Behavior().Atomic {
		return c
	}
	prev, _ := siblingOf(chain, -1)
	next, _ := siblingOf(chain, 1)
	c.Before = prev == nil || !hasTrailingPosition(prev)
	c.After = next == nil || !isFilledText(next)
	return c
}

func classifyGrapheme(chain treepath.Chain, layout LayoutOracle) Classification {
	tip := chain.Tip()
	prev := adjacentGrapheme(chain, -1)
	next := adjacentGrapheme(chain, 1)
	return Classification{
		Before: prev == nil || detectWrap(layout, prev, tip),
		After:  next == nil || !detectWrap(layout, tip, next),
	}
}

// adjacentGrapheme returns the grapheme visually adjacent to the grapheme
// at the tip of chain. It crosses into a neighbouring text-bearing inline
// when the grapheme is at the edge of its own container.
func adjacentGrapheme(chain treepath.Chain, delta int) treepath.Node {
	parentChain, ok := chain.DropTip()
	if !ok {
		return nil
	}
	container := parentChain.Tip()
	index := chain.TipLink().Part.Index + delta
	if index >= 0 && index < container.ChildCount() {
		g, _ := container.Child(index)
		return g
	}
	if !container.NodeType().Behavior().TextBearing {
		return nil
	}
	sib, ok := siblingOf(parentChain, delta)
	if !ok || !isFilledText(sib) {
		return nil
	}
	at := 0
	if delta < 0 {
		at = sib.ChildCount() - 1
	}
	g, _ := sib.Child(at)
	return g
}

func siblingOf(chain treepath.Chain, delta int) (treepath.Node, bool) {
	if chain.Len() < 2 {
		return nil, false
	}
	part := chain.TipLink().Part
	if !part.HasIndex || part.Index+delta < 0 {
		return nil, false
	}
	parent, _ := chain.ParentNode()
	return treepath.Resolve(parent, part.WithIndex(part.Index+delta))
}

// isFilledText reports whether n is a text-bearing inline holding at least
// one grapheme.
func isFilledText(n treepath.Node) bool {
	t := n.NodeType()
	return t != nil && t.Behavior().TextBearing && n.ChildCount() > 0
}

// hasTrailingPosition reports whether the position immediately after n is
// already expressed through n itself.
func hasTrailingPosition(n treepath.Node) bool {
	t := n.NodeType()
	if t == nil {
		return false
	}
	return t.Behavior().Atomic || isFilledText(n)
}
