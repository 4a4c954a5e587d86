package events

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"
)

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeBalanceChange   EventType = "balance_change"
	EventTypeUserWarned      EventType = "user_warned"
	EventTypeScriptAdded     EventType = "script_added"
	EventTypeMessageFiltered EventType = "message_filtered"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// BalanceChangeEvent represents a balance change that occurred
type BalanceChangeEvent struct {
	UserID       int64
	OldBalance   int64
	NewBalance   int64
	ChangeAmount int64
	Reason       string
}

func (e BalanceChangeEvent) Type() EventType {
	return EventTypeBalanceChange
}

// UserWarnedEvent represents a warning committed against a user. Subscribers
// handle the notification side effects; their failure never unwinds the
// committed warning.
type UserWarnedEvent struct {
	UserID           int64
	ModeratorID      int64
	Reason           string
	WarningCount     int64
	ThresholdReached bool
}

func (e UserWarnedEvent) Type() EventType {
	return EventTypeUserWarned
}

// ScriptAddedEvent represents a new catalog entry
type ScriptAddedEvent struct {
	ScriptID int64
	Name     string
	GameName string
	AuthorID int64
}

func (e ScriptAddedEvent) Type() EventType {
	return EventTypeScriptAdded
}

// MessageFilteredEvent represents a message removed by auto-moderation
type MessageFilteredEvent struct {
	UserID    int64
	ChannelID string
	Reason    string
}

func (e MessageFilteredEvent) Type() EventType {
	return EventTypeMessageFiltered
}

// Handler is a function that handles events
type Handler func(ctx context.Context, event Event)

// Bus manages event subscriptions and dispatching
type Bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]Handler
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[EventType][]Handler),
	}
}

// Subscribe adds a handler for a specific event type
func (b *Bus) Subscribe(eventType EventType, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)

	log.WithFields(log.Fields{
		"eventType":    eventType,
		"handlerCount": len(b.handlers[eventType]),
	}).Debug("Subscribed handler to event type")
}

// Emit publishes an event to all registered handlers
func (b *Bus) Emit(ctx context.Context, event Event) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers[event.Type()]))
	copy(handlers, b.handlers[event.Type()])
	b.mu.RUnlock()

	// Call handlers asynchronously to avoid blocking the emitter
	for _, handler := range handlers {
		go func(h Handler) {
			defer func() {
				if r := recover(); r != nil {
					log.WithFields(log.Fields{
						"eventType": event.Type(),
						"panic":     r,
					}).Error("Event handler panicked")
				}
			}()
			h(ctx, event)
		}(handler)
	}
}

// TransactionalBus holds pending events coupled to a unit of work and
// flushes them to the underlying bus only after a successful commit.
type TransactionalBus struct {
	real    *Bus
	pending []Event
}

func NewTransactionalBus(real *Bus) *TransactionalBus {
	return &TransactionalBus{real: real}
}

func (b *TransactionalBus) Publish(e Event) {
	b.pending = append(b.pending, e)
}

// Flush is called after successful DB commit
func (b *TransactionalBus) Flush(ctx context.Context) {
	// Events outlive the transaction context they were queued under
	eventCtx := context.Background()

	for _, ev := range b.pending {
		b.real.Emit(eventCtx, ev)
	}
	b.pending = nil
}

// Discard is called after rollback
func (b *TransactionalBus) Discard() {
	b.pending = nil
}
