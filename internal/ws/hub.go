package ws

import (
	"context"
	"encoding/json"
	"sync"

	"kuztube_backend/internal/domain"
	"kuztube_backend/internal/notify"
)

// Hub fans engine change events out to the websocket sessions of each user.
// A user can hold several sessions at once (multiple tabs or devices); every
// session gets every event. Delivery is best-effort: a session with a full
// send buffer is skipped, it will re-read on its next poll.
type Hub struct {
	mu       sync.RWMutex
	sessions map[int64]map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{sessions: make(map[int64]map[*Client]struct{})}
}

func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.sessions[c.UserID] == nil {
		h.sessions[c.UserID] = make(map[*Client]struct{})
	}
	h.sessions[c.UserID][c] = struct{}{}
}

func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	clients, ok := h.sessions[c.UserID]
	if !ok {
		return
	}
	if _, ok := clients[c]; ok {
		delete(clients, c)
		close(c.Send)
	}
	if len(clients) == 0 {
		delete(h.sessions, c.UserID)
	}
}

// Publish sends raw bytes to all sessions of the user.
func (h *Hub) Publish(userID int64, msg []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.sessions[userID] {
		select {
		case c.Send <- msg:
		default:
		}
	}
}

// SessionCount returns the number of open sessions for a user.
func (h *Hub) SessionCount(userID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions[userID])
}

func (h *Hub) publishEvent(ev notify.Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		return
	}
	h.Publish(ev.UserID, data)
}

// StatsChanged implements notify.Notifier.
func (h *Hub) StatsChanged(_ context.Context, userID int64, stats *domain.UserStats) {
	h.publishEvent(notify.Event{Type: notify.EventStatsChanged, UserID: userID, Payload: stats})
}

// AchievementUnlocked implements notify.Notifier.
func (h *Hub) AchievementUnlocked(_ context.Context, userID int64, ach domain.Achievement) {
	h.publishEvent(notify.Event{Type: notify.EventAchievementUnlocked, UserID: userID, Payload: ach})
}
