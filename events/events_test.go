package events

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"santa/models"
)

func TestBus_SubscribeAndEmit(t *testing.T) {
	bus := NewBus()

	var mu sync.Mutex
	var received []Event
	done := make(chan struct{})

	bus.Subscribe(EventTypeDrawCompleted, func(ctx context.Context, e Event) {
		mu.Lock()
		received = append(received, e)
		mu.Unlock()
		close(done)
	})

	bus.Emit(context.Background(), DrawCompletedEvent{
		PlayerCount: 3,
		Pairs:       []models.Pair{{SantaID: 1, RecipientID: 2}},
	})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("handler was not called")
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Len(t, received, 1)
	event, ok := received[0].(DrawCompletedEvent)
	assert.True(t, ok)
	assert.Equal(t, 3, event.PlayerCount)
}

func TestBus_EmitOnlyMatchingType(t *testing.T) {
	bus := NewBus()

	called := make(chan Event, 1)
	bus.Subscribe(EventTypeGameReset, func(ctx context.Context, e Event) {
		called <- e
	})

	bus.Emit(context.Background(), DrawCompletedEvent{PlayerCount: 2})

	select {
	case <-called:
		t.Fatal("handler for a different event type was called")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestTransactionalBus_FlushAfterCommit(t *testing.T) {
	bus := NewBus()
	txBus := NewTransactionalBus(bus)

	received := make(chan Event, 2)
	bus.Subscribe(EventTypeGameReset, func(ctx context.Context, e Event) {
		received <- e
	})

	txBus.Publish(GameResetEvent{Hard: false})

	// Nothing is emitted before Flush.
	select {
	case <-received:
		t.Fatal("event emitted before flush")
	case <-time.After(100 * time.Millisecond):
	}

	err := txBus.Flush(context.Background())
	assert.NoError(t, err)

	select {
	case e := <-received:
		reset, ok := e.(GameResetEvent)
		assert.True(t, ok)
		assert.False(t, reset.Hard)
	case <-time.After(time.Second):
		t.Fatal("event not emitted after flush")
	}
}

func TestTransactionalBus_DiscardDropsPending(t *testing.T) {
	bus := NewBus()
	txBus := NewTransactionalBus(bus)

	received := make(chan Event, 1)
	bus.Subscribe(EventTypeGameReset, func(ctx context.Context, e Event) {
		received <- e
	})

	txBus.Publish(GameResetEvent{Hard: true})
	txBus.Discard()

	err := txBus.Flush(context.Background())
	assert.NoError(t, err)

	select {
	case <-received:
		t.Fatal("discarded event was emitted")
	case <-time.After(100 * time.Millisecond):
	}
}
