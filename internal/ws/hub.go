package ws

import (
	"log/slog"
	"sync"
)

// Registry tracks which users currently hold a live connection and carries
// the push side of the channel. At most one connection per user: a later
// registration supersedes the earlier one.
type Registry interface {
	Register(userID int, c *Client)
	Lookup(userID int) (*Client, bool)
	Unregister(userID int, c *Client)
	Push(userID int, event string, data any) bool
}

// Hub is the in-process Registry and the push side of the real-time channel.
type Hub struct {
	mu      sync.RWMutex
	clients map[int]*Client
}

func NewHub() *Hub {
	return &Hub{clients: make(map[int]*Client)}
}

func (h *Hub) Register(userID int, c *Client) {
	h.mu.Lock()
	prev := h.clients[userID]
	h.clients[userID] = c
	h.mu.Unlock()

	if prev != nil && prev != c {
		// Superseded by a newer connection for the same user.
		prev.Close()
	}
	slog.Info("user joined", "userID", userID)
}

func (h *Hub) Lookup(userID int) (*Client, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	c, ok := h.clients[userID]
	return c, ok
}

// Unregister removes the entry only if it still points at c, so a stale
// disconnect cannot evict a superseding connection.
func (h *Hub) Unregister(userID int, c *Client) {
	h.mu.Lock()
	if h.clients[userID] == c {
		delete(h.clients, userID)
	}
	h.mu.Unlock()
	slog.Info("user left", "userID", userID)
}

// Push delivers an event to the user's live connection if one exists.
// Delivery is best-effort: absence and write failures are not errors, the
// client recovers state from the REST surface on its next fetch.
func (h *Hub) Push(userID int, event string, data any) bool {
	c, ok := h.Lookup(userID)
	if !ok {
		return false
	}
	if err := c.Send(event, data); err != nil {
		slog.Warn("push failed", "userID", userID, "event", event, "error", err)
		return false
	}
	return true
}
