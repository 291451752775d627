// Package event provides the change notification bus of the document core.
//
// Mutations of a working tree publish typed events on hierarchical topics:
//
//	anchor.added        - an anchor was created
//	anchor.updated      - an anchor was retargeted or renamed
//	anchor.deleted      - an anchor was removed
//	anchor.orphaned     - an anchor lost its target and is being relocated
//	interactor.added    - an interactor was created
//	interactor.updated  - an interactor changed
//	interactor.deleted  - an interactor was removed
//	node.joined         - two sibling nodes were joined
//
// # Wildcard Patterns
//
// Subscriptions may use wildcards:
//
//	anchor.*    - matches anchor.added, anchor.deleted (single segment)
//	**          - matches every topic (zero or more segments)
//
// # Delivery
//
// Delivery is synchronous: Publish returns after every matching handler ran,
// in priority order, on the publishing goroutine. Handlers must not mutate
// the tree that published the event.
//
//	bus := event.NewBus()
//	sub, err := bus.Subscribe("anchor.*", event.HandlerFunc(func(ctx context.Context, e any) error {
//	    return nil
//	}))
//	defer bus.Unsubscribe(sub)
package event
