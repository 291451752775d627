package event

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// Bus delivers events synchronously to subscriptions whose pattern matches
// the event topic. It is safe for concurrent use, though the document core
// only ever publishes from the goroutine that mutates the tree.
type Bus struct {
	mu   sync.RWMutex
	subs []*Subscription

	paused       atomic.Bool
	panicHandler PanicHandler

	eventsPublished atomic.Uint64
	eventsDelivered atomic.Uint64
	handlerErrors   atomic.Uint64
	handlerPanics   atomic.Uint64
}

// BusOption configures a Bus.
type BusOption func(*Bus)

// WithPanicHandler sets a callback for recovered handler panics.
func WithPanicHandler(h PanicHandler) BusOption {
	return func(b *Bus) {
		b.panicHandler = h
	}
}

// NewBus creates a bus.
func NewBus(opts ...BusOption) *Bus {
	b := &Bus{}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Subscribe registers handler for pattern.
func (b *Bus) Subscribe(pattern Topic, handler Handler, opts ...SubscriptionOption) (*Subscription, error) {
	if handler == nil {
		return nil, ErrNilHandler
	}
	if !pattern.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTopic, pattern)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	sub := newSubscription(uuid.NewString(), pattern, handler, opts...)
	b.subs = append(b.subs, sub)
	sort.SliceStable(b.subs, func(i, j int) bool {
		return b.subs[i].config.Priority < b.subs[j].config.Priority
	})
	return sub, nil
}

// SubscribeFunc registers a function handler.
func (b *Bus) SubscribeFunc(pattern Topic, fn HandlerFunc, opts ...SubscriptionOption) (*Subscription, error) {
	return b.Subscribe(pattern, fn, opts...)
}

// Unsubscribe cancels and removes sub.
func (b *Bus) Unsubscribe(sub *Subscription) error {
	if sub == nil {
		return ErrSubscriptionNotFound
	}
	sub.Cancel()
	if !b.remove(sub.id) {
		return ErrSubscriptionNotFound
	}
	return nil
}

func (b *Bus) remove(id string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, s := range b.subs {
		if s.id == id {
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
			return true
		}
	}
	return false
}

func (b *Bus) match(t Topic) []*Subscription {
	b.mu.RLock()
	defer b.mu.RUnlock()
	var out []*Subscription
	for _, s := range b.subs {
		if s.IsActive() && t.Matches(s.pattern) {
			out = append(out, s)
		}
	}
	return out
}

// Publish delivers event to every matching subscription and returns the
// joined handler errors. A panicking handler does not stop delivery to the
// others.
func (b *Bus) Publish(ctx context.Context, event any) error {
	tp, ok := event.(TopicProvider)
	if !ok || tp.EventTopic() == "" {
		return ErrInvalidEvent
	}
	if b.paused.Load() {
		return nil
	}
	t := tp.EventTopic()
	b.eventsPublished.Add(1)

	var errs []error
	for _, sub := range b.match(t) {
		if !sub.shouldDeliver(event) {
			continue
		}
		if err := b.deliver(ctx, sub, t, event); err != nil {
			errs = append(errs, err)
			continue
		}
		b.eventsDelivered.Add(1)
		if sub.config.Once {
			sub.Cancel()
			b.remove(sub.id)
		}
	}
	return errors.Join(errs...)
}

func (b *Bus) deliver(ctx context.Context, sub *Subscription, t Topic, event any) (err error) {
	defer func() {
		if r := recover(); r != nil {
			b.handlerPanics.Add(1)
			if b.panicHandler != nil {
				b.panicHandler(event, sub, r)
			}
			err = &PanicError{SubscriptionID: sub.id, Topic: t, Value: r, Stack: string(debug.Stack())}
		}
	}()
	if herr := sub.handler.Handle(ctx, event); herr != nil {
		b.handlerErrors.Add(1)
		return &HandlerError{SubscriptionID: sub.id, Topic: t, Err: herr}
	}
	return nil
}

// Pause drops published events until Resume.
func (b *Bus) Pause() { b.paused.Store(true) }

// Resume restarts delivery.
func (b *Bus) Resume() { b.paused.Store(false) }

// IsPaused reports whether the bus is paused.
func (b *Bus) IsPaused() bool { return b.paused.Load() }

// Stats returns the bus counters.
func (b *Bus) Stats() Stats {
	b.mu.RLock()
	active := 0
	for _, s := range b.subs {
		if s.IsActive() {
			active++
		}
	}
	b.mu.RUnlock()
	return Stats{
		EventsPublished:   b.eventsPublished.Load(),
		EventsDelivered:   b.eventsDelivered.Load(),
		HandlerErrors:     b.handlerErrors.Load(),
		HandlerPanics:     b.handlerPanics.Load(),
		ActiveSubscribers: active,
	}
}
