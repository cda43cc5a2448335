package events

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"

	"santa/models"
)

// EventType represents different types of events in the system
type EventType string

const (
	EventTypePlayerRegistered EventType = "player_registered"
	EventTypeDrawCompleted    EventType = "draw_completed"
	EventTypeGameReset        EventType = "game_reset"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// PlayerRegisteredEvent fires when a player finishes both registration steps.
type PlayerRegisteredEvent struct {
	PlayerID    int64
	DiscordID   int64
	DisplayName string
}

func (e PlayerRegisteredEvent) Type() EventType {
	return EventTypePlayerRegistered
}

// DrawCompletedEvent fires after a draw has committed. Pairs carries the
// full assignment so subscribers can notify every santa.
type DrawCompletedEvent struct {
	PlayerCount int
	Pairs       []models.Pair
}

func (e DrawCompletedEvent) Type() EventType {
	return EventTypeDrawCompleted
}

// GameResetEvent fires after a soft or hard reset has committed.
type GameResetEvent struct {
	Hard bool
}

func (e GameResetEvent) Type() EventType {
	return EventTypeGameReset
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

	// Call handlers asynchronously to avoid blocking
	for i, handler := range handlers {
		go func(h Handler, handlerIndex int) {
			defer func() {
				if r := recover(); r != nil {
					log.WithFields(log.Fields{
						"eventType":    event.Type(),
						"handlerIndex": handlerIndex,
						"panic":        r,
					}).Error("Event handler panicked")
				}
			}()
			h(ctx, event)
		}(handler, i)
	}
}

// TransactionalBus stashes events published during a unit of work and
// forwards them to the real bus only after the database commit succeeds.
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

// Flush emits all pending events. Called after a successful commit; events
// run on a background context so they outlive the transaction's context.
func (b *TransactionalBus) Flush(ctx context.Context) error {
	eventCtx := context.Background()

	for _, ev := range b.pending {
		b.real.Emit(eventCtx, ev)
	}
	b.pending = nil
	return nil
}

// Discard drops the pending events. Called after a rollback.
func (b *TransactionalBus) Discard() {
	b.pending = nil
}
