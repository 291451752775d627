package worktree

import (
	"context"

	"github.com/dshills/docstorm/internal/event"
)

// Topics published by a Tree.
const (
	TopicAnchorAdded       event.Topic = "anchor.added"
	TopicAnchorUpdated     event.Topic = "anchor.updated"
	TopicAnchorDeleted     event.Topic = "anchor.deleted"
	TopicAnchorOrphaned    event.Topic = "anchor.orphaned"
	TopicInteractorAdded   event.Topic = "interactor.added"
	TopicInteractorUpdated event.Topic = "interactor.updated"
	TopicInteractorDeleted event.Topic = "interactor.deleted"
	TopicNodesJoined       event.Topic = "node.joined"
)

const eventSource = "worktree"

// AnchorEvent is the payload of the anchor topics. Spec describes the
// anchor after the change; for anchor.deleted and anchor.orphaned it is the
// last position the anchor held.
type AnchorEvent struct {
	Anchor AnchorID
	Spec   AnchorSpec
}

// InteractorEvent is the payload of the interactor topics.
type InteractorEvent struct {
	Interactor InteractorID
	Main       AnchorID
	Selection  AnchorID
}

// NodesJoinedEvent is the payload of node.joined.
type NodesJoinedEvent struct {
	Destination NodeID
	Source      NodeID
	Direction   Direction
}

func publish[T any](t *Tree, topic event.Topic, payload T) {
	if t.bus == nil {
		return
	}
	if err := t.bus.Publish(context.Background(), event.NewEvent(topic, payload, eventSource)); err != nil {
		t.log.Warn("notification handler failed on %s: %v", topic, err)
	}
}

func (t *Tree) anchorEvent(topic event.Topic, a *Anchor) {
	publish(t, topic, AnchorEvent{Anchor: a.id, Spec: a.Spec()})
}

func (t *Tree) interactorEvent(topic event.Topic, in *Interactor) {
	publish(t, topic, InteractorEvent{Interactor: in.id, Main: in.main, Selection: in.selection})
}
