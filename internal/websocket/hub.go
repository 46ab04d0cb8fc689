package websocket

import (
	"encoding/json"
	"sync"
)

// BalanceUpdate is pushed to the owning user whenever a mutation changes an
// account's derived balance.
type BalanceUpdate struct {
	AccountID int    `json:"account_id"`
	Balance   string `json:"balance"`
	Currency  string `json:"currency"`
}

// Hub tracks live connections per user. A user may hold several connections
// (multiple tabs), each of which receives every update for that user.
type Hub struct {
	mu    sync.RWMutex
	conns map[int]map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{conns: make(map[int]map[*Client]struct{})}
}

// BroadcastBalance fans the update out to every connection of the user.
// Slow clients are skipped rather than blocking the mutation path.
func (h *Hub) BroadcastBalance(userID int, update BalanceUpdate) {
	payload, err := json.Marshal(update)
	if err != nil {
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.conns[userID] {
		select {
		case c.send <- payload:
		default:
		}
	}
}

func (h *Hub) attach(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.conns[c.userID]
	if !ok {
		set = make(map[*Client]struct{})
		h.conns[c.userID] = set
	}
	set[c] = struct{}{}
}

// detach is safe to call twice; both pumps close through it.
func (h *Hub) detach(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.conns[c.userID]
	if !ok {
		return
	}
	delete(set, c)
	if len(set) == 0 {
		delete(h.conns, c.userID)
	}
}
