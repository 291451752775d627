package worktree

import (
	"fmt"
	"strings"

	"github.com/dshills/docstorm/internal/event"
	"github.com/dshills/docstorm/internal/logging"
	"github.com/dshills/docstorm/internal/navigate"
)

// Direction biases deletion repair and joins.
type Direction int

const (
	// Backward relocates orphaned anchors toward the start of the document.
	Backward Direction = iota
	// Forward relocates orphaned anchors toward the end of the document.
	Forward
)

// String returns "backward" or "forward".
func (d Direction) String() string {
	if d == Forward {
		return "forward"
	}
	return "backward"
}

// ParseDirection parses "backward" or "forward".
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "backward", "back":
		return Backward, nil
	case "forward", "fwd":
		return Forward, nil
	}
	return Backward, fmt.Errorf("unknown direction %q", s)
}

// Option configures a Tree.
type Option func(*Tree)

// WithLogger sets the logger. The default discards output.
func WithLogger(l *logging.Logger) Option {
	return func(t *Tree) {
		if l != nil {
			t.log = l.WithComponent("worktree")
		}
	}
}

// WithBus publishes change notifications on p.
func WithBus(p event.Publisher) Option {
	return func(t *Tree) {
		t.bus = p
	}
}

// WithLayout sets the layout oracle used when classifying cursor positions.
func WithLayout(l navigate.LayoutOracle) Option {
	return func(t *Tree) {
		t.layout = l
	}
}

// WithDeleteDirection sets the default direction of deletion repair.
func WithDeleteDirection(d Direction) Option {
	return func(t *Tree) {
		t.direction = d
	}
}

// WithMergeAdjacentOnDelete joins two mergeable text siblings that become
// adjacent when the node between them is deleted.
func WithMergeAdjacentOnDelete(enabled bool) Option {
	return func(t *Tree) {
		t.mergeAdjacent = enabled
	}
}

// WithNormalizeText converts inserted text to NFC before segmenting it.
func WithNormalizeText(enabled bool) Option {
	return func(t *Tree) {
		t.normalize = enabled
	}
}

// DeleteOption adjusts a single delete call.
type DeleteOption func(*deleteConfig)

type deleteConfig struct {
	direction Direction
	merge     bool
}

// InDirection overrides the tree's delete direction for one call.
func InDirection(d Direction) DeleteOption {
	return func(c *deleteConfig) {
		c.direction = d
	}
}

func (t *Tree) deleteConfig(opts []DeleteOption) deleteConfig {
	c := deleteConfig{direction: t.direction, merge: t.mergeAdjacent}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}
