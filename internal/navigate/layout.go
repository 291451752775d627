package navigate

import "github.com/dshills/docstorm/internal/treepath"

// LayoutOracle reports visual layout facts computed by a renderer. Every
// method may answer "unknown" (ok=false); the navigator then behaves as if
// there were no layout at all.
type LayoutOracle interface {
	// DetectLineWrapOrBreakBetweenNodes reports whether preceding and
	// subsequent are rendered on different visual lines.
	DetectLineWrapOrBreakBetweenNodes(preceding, subsequent treepath.Node) (wrap bool, ok bool)

	// TargetHorizontalAnchor returns the horizontal coordinate of a cursor
	// position, used as the goal column for vertical movement.
	TargetHorizontalAnchor(chain treepath.Chain, o treepath.Orientation) (x float64, ok bool)

	// HorizontalDistanceFromTargetHorizontalAnchor returns how far the
	// position is from the goal column. Negative is left of the goal.
	HorizontalDistanceFromTargetHorizontalAnchor(chain treepath.Chain, o treepath.Orientation, target float64) (distance float64, ok bool)
}

func detectWrap(layout LayoutOracle, a, b treepath.Node) bool {
	if layout == nil || a == nil || b == nil {
		return false
	}
	wrap, ok := layout.DetectLineWrapOrBreakBetweenNodes(a, b)
	return ok && wrap
}
