package event

import "sync/atomic"

// SubscriptionState is the lifecycle state of a subscription.
type SubscriptionState int32

const (
	SubscriptionActive SubscriptionState = iota
	SubscriptionPaused
	SubscriptionCancelled
)

// String returns a human-readable state name.
func (s SubscriptionState) String() string {
	switch s {
	case SubscriptionActive:
		return "active"
	case SubscriptionPaused:
		return "paused"
	case SubscriptionCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// SubscriptionConfig configures a subscription.
type SubscriptionConfig struct {
	Priority Priority
	Filter   FilterFunc
	// Once cancels the subscription after its first successful delivery.
	Once bool
}

// SubscriptionOption configures a subscription.
type SubscriptionOption func(*SubscriptionConfig)

// WithPriority sets the subscription priority.
func WithPriority(p Priority) SubscriptionOption {
	return func(c *SubscriptionConfig) {
		c.Priority = p
	}
}

// WithFilter sets a delivery filter.
func WithFilter(f FilterFunc) SubscriptionOption {
	return func(c *SubscriptionConfig) {
		c.Filter = f
	}
}

// WithOnce cancels the subscription after the first delivered event.
func WithOnce() SubscriptionOption {
	return func(c *SubscriptionConfig) {
		c.Once = true
	}
}

// Subscription is a registered handler for a topic pattern.
type Subscription struct {
	id      string
	pattern Topic
	handler Handler
	config  SubscriptionConfig
	state   atomic.Int32
}

func newSubscription(id string, pattern Topic, h Handler, opts ...SubscriptionOption) *Subscription {
	config := SubscriptionConfig{Priority: PriorityNormal}
	for _, opt := range opts {
		opt(&config)
	}
	return &Subscription{id: id, pattern: pattern, handler: h, config: config}
}

// ID returns the subscription identifier.
func (s *Subscription) ID() string { return s.id }

// Topic returns the subscribed pattern.
func (s *Subscription) Topic() Topic { return s.pattern }

// Config returns the subscription configuration.
func (s *Subscription) Config() SubscriptionConfig { return s.config }

// State returns the current state.
func (s *Subscription) State() SubscriptionState {
	return SubscriptionState(s.state.Load())
}

// IsActive reports whether the subscription receives events.
func (s *Subscription) IsActive() bool {
	return s.State() == SubscriptionActive
}

// Pause stops delivery until Resume.
func (s *Subscription) Pause() {
	s.state.CompareAndSwap(int32(SubscriptionActive), int32(SubscriptionPaused))
}

// Resume restarts delivery after Pause.
func (s *Subscription) Resume() {
	s.state.CompareAndSwap(int32(SubscriptionPaused), int32(SubscriptionActive))
}

// Cancel permanently stops delivery.
func (s *Subscription) Cancel() {
	s.state.Store(int32(SubscriptionCancelled))
}

func (s *Subscription) shouldDeliver(event any) bool {
	return s.config.Filter == nil || s.config.Filter(event)
}
