package store

import (
	"sync"

	"github.com/google/uuid"

	"cardkeep/internal/models"
)

// ChangeOp labels what happened to an item.
type ChangeOp string

const (
	OpCreate ChangeOp = "create"
	OpUpdate ChangeOp = "update"
	OpDelete ChangeOp = "delete"
)

// ChangeEvent is one entry in the realtime item feed. Item is nil for
// deletions; ID is always set.
type ChangeEvent struct {
	Op   ChangeOp     `json:"op"`
	ID   uuid.UUID    `json:"id"`
	Item *models.Item `json:"item,omitempty"`
}

// Hub fans item change events out to subscribers. It is the realtime list
// subscription the UI layer consumes; the only mutable state shared across
// tagging calls, guarded by its mutex. Slow subscribers drop events rather
// than block writers.
type Hub struct {
	mu   sync.Mutex
	subs map[int]chan ChangeEvent
	next int
}

func NewHub() *Hub {
	return &Hub{subs: make(map[int]chan ChangeEvent)}
}

// Subscribe returns a buffered event channel and a cancel function that
// closes it. Cancel is safe to call more than once.
func (h *Hub) Subscribe() (<-chan ChangeEvent, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := h.next
	h.next++
	ch := make(chan ChangeEvent, 16)
	h.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			delete(h.subs, id)
			close(ch)
		})
	}
	return ch, cancel
}

// Publish delivers the event to every current subscriber without blocking.
func (h *Hub) Publish(ev ChangeEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, ch := range h.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}
