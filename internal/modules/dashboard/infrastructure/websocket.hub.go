package infrastructure

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"storeAdmin/internal/modules/dashboard/application/port"
	"storeAdmin/internal/modules/dashboard/domain"
)

// Hub delivers dashboard messages to the notification sockets, grouped by session. Messages
// addressed to a session reach every tab of that session; the rest reach the sockets whose
// subscription patterns match the topic.
type Hub struct {
	mu       sync.RWMutex
	sessions map[string]map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{sessions: make(map[string]map[*Client]struct{})}
}

// Attach registers c under its session and subscribes it to patterns.
func (h *Hub) Attach(c *Client, patterns ...string) {
	h.mu.Lock()
	tabs := h.sessions[c.sessionID]
	if tabs == nil {
		tabs = make(map[*Client]struct{})
		h.sessions[c.sessionID] = tabs
	}
	tabs[c] = struct{}{}
	for _, pattern := range patterns {
		c.follow(pattern)
	}
	open := len(tabs)
	h.mu.Unlock()
	slog.Info("ws client attached", append(c.logAttrs(), slog.Any("topics", patterns), slog.Int("sessionTabs", open))...)
}

func (h *Hub) subscribe(c *Client, pattern string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	c.follow(pattern)
}

func (h *Hub) unsubscribe(c *Client, pattern string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	c.unfollow(pattern)
}

func (h *Hub) subscriptions(c *Client) []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return c.following()
}

func (h *Hub) detach(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.detachLocked(c)
}

func (h *Hub) detachLocked(c *Client) {
	if c == nil {
		return
	}
	if tabs, ok := h.sessions[c.sessionID]; ok {
		delete(tabs, c)
		if len(tabs) == 0 {
			delete(h.sessions, c.sessionID)
		}
	}
	c.close()
	slog.Info("ws client detached", c.logAttrs()...)
}

// Broadcast delivers msg to its audience. A socket whose buffer is full is detached.
func (h *Hub) Broadcast(_ context.Context, msg *domain.Message) {
	if msg == nil {
		return
	}
	data, err := json.Marshal(msg)
	if err != nil {
		slog.Error("broadcast marshal error", slog.String("topic", msg.Topic), slog.Any("error", err))
		return
	}
	for _, c := range h.recipients(msg.Topic, domain.AudienceOf(msg)) {
		if !c.enqueue(data) {
			slog.Warn("ws send buffer full", append(c.logAttrs(), slog.String("topic", msg.Topic))...)
			go h.detach(c)
		}
	}
}

func (h *Hub) recipients(topic string, audience domain.Audience) []*Client {
	h.mu.RLock()
	defer h.mu.RUnlock()
	var out []*Client
	collect := func(tabs map[*Client]struct{}) {
		for c := range tabs {
			if !audience.Includes(c.userID, c.sessionID) {
				continue
			}
			if audience.Targeted() || c.follows(topic) {
				out = append(out, c)
			}
		}
	}
	if audience.Targeted() {
		collect(h.sessions[audience.SessionID])
		return out
	}
	for _, tabs := range h.sessions {
		collect(tabs)
	}
	return out
}

// CloseSession disconnects every tab of the session, used on sign-out.
func (h *Hub) CloseSession(sessionID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	tabs := h.sessions[sessionID]
	closed := len(tabs)
	for c := range tabs {
		h.detachLocked(c)
	}
	return closed
}

// Connected returns how many sockets are open.
func (h *Hub) Connected() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	total := 0
	for _, tabs := range h.sessions {
		total += len(tabs)
	}
	return total
}

var _ port.Broadcaster = (*Hub)(nil)
