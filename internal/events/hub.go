// Package events provides the in-process fan-out hub that carries
// registry changes to live subscribers (the SSE feed).
package events

import (
	"sync"
	"time"
)

const (
	TypeReady           = "events.ready"
	TypeSignupCompleted = "activity.signup.completed"
)

type Event struct {
	Type      string         `json:"type"`
	Timestamp string         `json:"timestamp"`
	Payload   map[string]any `json:"payload,omitempty"`
}

func NewEvent(eventType string, payload map[string]any) Event {
	return Event{
		Type:      eventType,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Payload:   payload,
	}
}

// NewSignupEvent describes one successful enrollment.
func NewSignupEvent(activity, email string, enrolled int) Event {
	return NewEvent(TypeSignupCompleted, map[string]any{
		"activity": activity,
		"email":    email,
		"enrolled": enrolled,
	})
}

type Hub struct {
	mu          sync.RWMutex
	nextID      int64
	subscribers map[int64]chan Event
}

func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[int64]chan Event),
	}
}

// Subscribe registers a buffered listener and returns its channel plus an
// unsubscribe func. Unsubscribing closes the channel; calling it more than
// once is safe.
func (h *Hub) Subscribe(buffer int) (<-chan Event, func()) {
	if h == nil {
		ch := make(chan Event)
		close(ch)
		return ch, func() {}
	}
	if buffer <= 0 {
		buffer = 16
	}
	ch := make(chan Event, buffer)

	h.mu.Lock()
	h.nextID++
	id := h.nextID
	h.subscribers[id] = ch
	h.mu.Unlock()

	unsubscribe := func() {
		h.mu.Lock()
		current, ok := h.subscribers[id]
		if ok {
			delete(h.subscribers, id)
		}
		h.mu.Unlock()
		if ok {
			close(current)
		}
	}
	return ch, unsubscribe
}

// Publish delivers the event to every subscriber without blocking.
func (h *Hub) Publish(event Event) {
	if h == nil {
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, sub := range h.subscribers {
		select {
		case sub <- event:
		default:
			// Skip when a subscriber is slow; the feed is best-effort.
		}
	}
}
