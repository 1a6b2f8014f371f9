package planner

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Akash114/SarthiAI/internal/types"
)

// EventType identifies the type of plan generation event.
type EventType string

const (
	// EventGenerationStarted indicates a plan generation run began.
	EventGenerationStarted EventType = "planner.generation_started"

	// EventPlanGenerated indicates a plan draft was produced by the model.
	EventPlanGenerated EventType = "planner.plan_generated"

	// EventEvaluationFailed indicates a draft did not pass evaluation.
	EventEvaluationFailed EventType = "planner.evaluation_failed"

	// EventRepairAttempted indicates the model was asked to revise a draft.
	EventRepairAttempted EventType = "planner.repair_attempted"

	// EventRegenerated indicates a fresh draft was requested after a failure.
	EventRegenerated EventType = "planner.regenerated"

	// EventFallbackUsed indicates the deterministic template plan was used.
	EventFallbackUsed EventType = "planner.fallback_used"

	// EventPlanScheduled indicates the final plan was placed on the calendar.
	EventPlanScheduled EventType = "planner.plan_scheduled"
)

// String returns the string representation of the event type.
func (t EventType) String() string {
	return string(t)
}

// Event represents a plan generation event. Events are emitted
// throughout the generation lifecycle to enable real-time monitoring of
// pipeline decisions.
type Event struct {
	// Type identifies the event type.
	Type EventType `json:"type"`

	// ResolutionID is the unique identifier of the goal being planned.
	ResolutionID types.ID `json:"resolution_id"`

	// Timestamp is when the event occurred.
	Timestamp time.Time `json:"timestamp"`

	// Payload contains type-specific event data.
	Payload map[string]any `json:"payload,omitempty"`
}

// EventEmitter publishes generation events to subscribers.
// Implementations must be thread-safe and support multiple concurrent
// subscribers.
type EventEmitter interface {
	// Emit publishes an event to all subscribers. Emit must be
	// non-blocking; it does not wait for subscribers to consume events.
	Emit(ctx context.Context, event Event) error

	// Subscribe creates a new subscription and returns a channel for
	// receiving events and a cleanup function to unsubscribe.
	Subscribe(ctx context.Context) (<-chan Event, func())

	// Close shuts down the emitter and all subscriptions.
	Close() error
}

// DefaultEventEmitter implements EventEmitter using buffered channels.
// Slow consumers have events dropped rather than blocking the pipeline.
type DefaultEventEmitter struct {
	mu          sync.RWMutex
	subscribers map[string]chan Event
	bufferSize  int
	closed      bool
}

// EventEmitterOption is a functional option for configuring DefaultEventEmitter.
type EventEmitterOption func(*DefaultEventEmitter)

// WithBufferSize sets the buffer size for subscriber channels.
// Default is 100.
func WithBufferSize(size int) EventEmitterOption {
	return func(e *DefaultEventEmitter) {
		e.bufferSize = size
	}
}

// NewDefaultEventEmitter creates a new DefaultEventEmitter with optional configuration.
func NewDefaultEventEmitter(opts ...EventEmitterOption) *DefaultEventEmitter {
	emitter := &DefaultEventEmitter{
		subscribers: make(map[string]chan Event),
		bufferSize:  100,
	}

	for _, opt := range opts {
		opt(emitter)
	}

	return emitter
}

// Emit publishes an event to all subscribers. If a subscriber's channel
// is full the event is dropped for that subscriber so one slow consumer
// cannot block the others.
func (e *DefaultEventEmitter) Emit(ctx context.Context, event Event) error {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if e.closed {
		return fmt.Errorf("event emitter is closed")
	}

	for _, ch := range e.subscribers {
		select {
		case ch <- event:
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
	}

	return nil
}

// Subscribe creates a new subscription and returns a channel for receiving events.
// The returned cleanup function must be called to unsubscribe and prevent leaks.
func (e *DefaultEventEmitter) Subscribe(ctx context.Context) (<-chan Event, func()) {
	e.mu.Lock()
	defer e.mu.Unlock()

	subscriberID := types.NewID().String()
	ch := make(chan Event, e.bufferSize)
	e.subscribers[subscriberID] = ch

	cleanup := func() {
		e.mu.Lock()
		defer e.mu.Unlock()

		if subCh, exists := e.subscribers[subscriberID]; exists {
			delete(e.subscribers, subscriberID)
			close(subCh)
		}
	}

	return ch, cleanup
}

// Close shuts down the emitter and closes all subscriber channels.
func (e *DefaultEventEmitter) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return nil
	}
	e.closed = true

	for id, ch := range e.subscribers {
		close(ch)
		delete(e.subscribers, id)
	}

	return nil
}

// SubscriberCount returns the current number of active subscribers.
func (e *DefaultEventEmitter) SubscriberCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.subscribers)
}

// NewEvent creates a new generation event with the current timestamp.
func NewEvent(eventType EventType, resolutionID types.ID, payload map[string]any) Event {
	return Event{
		Type:         eventType,
		ResolutionID: resolutionID,
		Timestamp:    time.Now(),
		Payload:      payload,
	}
}

var _ EventEmitter = (*DefaultEventEmitter)(nil)
