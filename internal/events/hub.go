// Package events fans out member activity to connected SSE clients.
package events

import (
	"context"
	"log/slog"
	"sync"

	"github.com/kuriftu/essence/internal/config"
)

// Event types.
const (
	TypePoints      = "points"
	TypeTierChanged = "tier_changed"
	TypeCheckIn     = "checkin"
)

// Event is one SSE message. MemberID is used for per-member filtering and
// is not part of the payload.
type Event struct {
	Type     string `json:"type"`
	MemberID string `json:"-"`
	Data     any    `json:"data"`
}

// PointsData is the payload for points events.
type PointsData struct {
	MemberID string `json:"member_id"`
	Kind     string `json:"kind"`
	Delta    int    `json:"delta"`
	Balance  int    `json:"balance"`
	Tier     string `json:"tier"`
	Percent  int    `json:"percent"`
}

// TierChangedData is the payload for tier_changed events.
type TierChangedData struct {
	MemberID  string `json:"member_id"`
	From      string `json:"from"`
	To        string `json:"to"`
	Direction string `json:"direction"` // "up" or "down"
}

// CheckInData is the payload for checkin events.
type CheckInData struct {
	ID       string `json:"id"`
	MemberID string `json:"member_id"`
	ResortID string `json:"resort_id"`
	Status   string `json:"status"`
	Points   int    `json:"points"`
}

// Hub manages fan-out broadcasting of events to subscribed clients.
// A nil *Hub accepts broadcasts and drops them.
type Hub struct {
	clients map[chan Event]struct{}
	closed  bool
	mu      sync.RWMutex
}

// NewHub creates an empty event hub.
func NewHub() *Hub {
	slog.Info("event hub created")
	return &Hub{
		clients: make(map[chan Event]struct{}),
	}
}

// Run blocks until ctx is cancelled, then closes every client channel.
func (h *Hub) Run(ctx context.Context) {
	slog.Info("event hub running")
	<-ctx.Done()

	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true
	for ch := range h.clients {
		close(ch)
		delete(h.clients, ch)
	}

	slog.Info("event hub stopped", "reason", ctx.Err())
}

// Subscribe registers a new client and returns a channel to receive events.
// Once Run has returned the channel comes back already closed.
func (h *Hub) Subscribe() chan Event {
	ch := make(chan Event, config.EventChannelBuffer)

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		close(ch)
		slog.Debug("event client rejected, hub stopped")
		return ch
	}
	h.clients[ch] = struct{}{}
	clientCount := len(h.clients)
	h.mu.Unlock()

	slog.Info("event client subscribed", "totalClients", clientCount)

	return ch
}

// Unsubscribe removes a client and closes its channel. Safe to call after Run
// has already closed it.
func (h *Hub) Unsubscribe(ch chan Event) {
	h.mu.Lock()
	if _, ok := h.clients[ch]; ok {
		delete(h.clients, ch)
		close(ch)
	}
	clientCount := len(h.clients)
	h.mu.Unlock()

	slog.Info("event client unsubscribed", "totalClients", clientCount)
}

// Broadcast sends an event to all connected clients without blocking.
// Clients whose buffer is full miss the event.
func (h *Hub) Broadcast(event Event) {
	if h == nil {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for ch := range h.clients {
		select {
		case ch <- event:
		default:
			slog.Warn("event dropped for slow client",
				"eventType", event.Type,
				"memberID", event.MemberID,
			)
		}
	}

	slog.Debug("event broadcast",
		"type", event.Type,
		"clients", len(h.clients),
	)
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	if h == nil {
		return 0
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
