// Package httpapi exposes the player over HTTP: a status/command API,
// a WebSocket stream of view updates, and Prometheus metrics.
package httpapi

import (
	"sync"

	"github.com/nufluxx/spinbox/internal/app/player"
)

// Update is one view update pushed to subscribers. Kind is one of
// "title", "duration", "position" (Text set) or "progress" (Fraction
// set).
type Update struct {
	Kind     string  `json:"kind"`
	Text     string  `json:"text,omitempty"`
	Fraction float64 `json:"fraction"`
}

// Hub fans view updates out to WebSocket subscribers. Slow subscribers
// drop updates rather than blocking playback.
type Hub struct {
	mu   sync.Mutex
	subs map[chan Update]struct{}
}

// NewHub creates a new hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[chan Update]struct{})}
}

// Subscribe registers a new subscriber channel.
func (h *Hub) Subscribe() chan Update {
	ch := make(chan Update, 16)
	h.mu.Lock()
	defer h.mu.Unlock()
	h.subs[ch] = struct{}{}
	return ch
}

// Unsubscribe removes a subscriber channel.
func (h *Hub) Unsubscribe(ch chan Update) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.subs, ch)
}

// Publish delivers an update to every subscriber without blocking.
func (h *Hub) Publish(u Update) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs {
		select {
		case ch <- u:
		default:
			// subscriber is behind, drop
		}
	}
}

// Bindings returns view bindings that publish into the hub. This is
// the remote equivalent of the in-page rendering layer.
func (h *Hub) Bindings() player.Bindings {
	return player.Bindings{
		TitleChanged: func(text string) {
			h.Publish(Update{Kind: "title", Text: text})
		},
		DurationText: func(text string) {
			h.Publish(Update{Kind: "duration", Text: text})
		},
		PositionText: func(text string) {
			h.Publish(Update{Kind: "position", Text: text})
		},
		ProgressFraction: func(fraction float64) {
			h.Publish(Update{Kind: "progress", Fraction: fraction})
		},
	}
}
