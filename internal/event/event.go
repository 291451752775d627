package event

import (
	"time"

	"github.com/google/uuid"
)

// Event is a typed notification. Events are immutable once created.
type Event[T any] struct {
	Topic    Topic
	Payload  T
	Metadata Metadata
}

// Metadata is attached to every event.
type Metadata struct {
	// ID uniquely identifies this event instance.
	ID string
	// Timestamp is when the event was created.
	Timestamp time.Time
	// Source names the component that published the event.
	Source string
	// CausationID links to the operation or event that caused this one.
	CausationID string
}

// NewEvent creates an event with fresh metadata.
func NewEvent[T any](t Topic, payload T, source string) Event[T] {
	return Event[T]{
		Topic:   t,
		Payload: payload,
		Metadata: Metadata{
			ID:        uuid.NewString(),
			Timestamp: time.Now(),
			Source:    source,
		},
	}
}

// EventTopic implements TopicProvider.
func (e Event[T]) EventTopic() Topic {
	return e.Topic
}

// EventMetadata implements MetadataProvider.
func (e Event[T]) EventMetadata() Metadata {
	return e.Metadata
}

// WithCausation returns a copy of the event with a causation ID set.
func (e Event[T]) WithCausation(id string) Event[T] {
	e.Metadata.CausationID = id
	return e
}

// TopicProvider is implemented by every publishable event.
type TopicProvider interface {
	EventTopic() Topic
}

// MetadataProvider is implemented by events carrying metadata.
type MetadataProvider interface {
	EventMetadata() Metadata
}
