package store

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_PublishReachesSubscribers(t *testing.T) {
	hub := NewHub()
	ch1, cancel1 := hub.Subscribe()
	ch2, cancel2 := hub.Subscribe()
	defer cancel1()
	defer cancel2()

	id := uuid.New()
	hub.Publish(ChangeEvent{Op: OpCreate, ID: id})

	ev := <-ch1
	assert.Equal(t, OpCreate, ev.Op)
	assert.Equal(t, id, ev.ID)

	ev = <-ch2
	assert.Equal(t, id, ev.ID)
}

func TestHub_CancelStopsDelivery(t *testing.T) {
	hub := NewHub()
	ch, cancel := hub.Subscribe()
	cancel()
	// Cancel is idempotent.
	cancel()

	_, open := <-ch
	assert.False(t, open, "channel must be closed after cancel")

	// Publishing after cancel must not panic or block.
	assert.NotPanics(t, func() {
		hub.Publish(ChangeEvent{Op: OpDelete, ID: uuid.New()})
	})
}

func TestHub_SlowSubscriberDoesNotBlock(t *testing.T) {
	hub := NewHub()
	_, cancel := hub.Subscribe()
	defer cancel()

	// Nobody reads; publishing past the buffer must drop, not deadlock.
	for i := 0; i < 100; i++ {
		hub.Publish(ChangeEvent{Op: OpUpdate, ID: uuid.New()})
	}
}

func TestHub_EventOrderPerSubscriber(t *testing.T) {
	hub := NewHub()
	ch, cancel := hub.Subscribe()
	defer cancel()

	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	for _, id := range ids {
		hub.Publish(ChangeEvent{Op: OpCreate, ID: id})
	}
	for _, want := range ids {
		ev := <-ch
		require.Equal(t, want, ev.ID)
	}
}
