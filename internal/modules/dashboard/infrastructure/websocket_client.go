package infrastructure

import (
	"encoding/json"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"storeAdmin/internal/modules/dashboard/domain"
)

const (
	writeWait  = 5 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
	readLimit  = 1 << 16
)

// Client is one notification socket of a signed-in session. A session may hold several, one
// per browser tab.
type Client struct {
	hub       *Hub
	conn      *websocket.Conn
	send      chan []byte
	connID    string
	userID    string
	sessionID string

	// patterns is guarded by hub.mu.
	patterns map[string]struct{}

	sendMu    sync.Mutex
	closed    bool
	closeOnce sync.Once

	closeHooks []func(*Client)
	hookMu     sync.Mutex
}

// NewClient creates a client with a send buffer of buf messages.
func NewClient(hub *Hub, conn *websocket.Conn, userID, sessionID string, buf int) *Client {
	if buf <= 0 {
		buf = 32
	}
	return &Client{
		hub:       hub,
		conn:      conn,
		send:      make(chan []byte, buf),
		connID:    uuid.NewString(),
		userID:    strings.TrimSpace(userID),
		sessionID: strings.TrimSpace(sessionID),
		patterns:  make(map[string]struct{}),
	}
}

func (c *Client) SessionID() string { return c.sessionID }

func (c *Client) UserID() string { return c.userID }

func (c *Client) logAttrs() []any {
	return []any{slog.String("userId", c.userID), slog.String("sessionId", c.sessionID), slog.String("connId", c.connID)}
}

func (c *Client) follow(pattern string) {
	if pattern = strings.ToLower(strings.TrimSpace(pattern)); pattern != "" {
		c.patterns[pattern] = struct{}{}
	}
}

func (c *Client) unfollow(pattern string) {
	delete(c.patterns, strings.ToLower(strings.TrimSpace(pattern)))
}

func (c *Client) follows(topic string) bool {
	for pattern := range c.patterns {
		if domain.MatchTopic(pattern, topic) {
			return true
		}
	}
	return false
}

func (c *Client) following() []string {
	patterns := make([]string, 0, len(c.patterns))
	for pattern := range c.patterns {
		patterns = append(patterns, pattern)
	}
	sort.Strings(patterns)
	return patterns
}

// enqueue queues data without blocking. It reports false when the buffer is full.
func (c *Client) enqueue(data []byte) bool {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	if c.closed {
		return true
	}
	select {
	case c.send <- data:
		return true
	default:
		return false
	}
}

func (c *Client) close() {
	c.closeOnce.Do(func() {
		c.sendMu.Lock()
		c.closed = true
		close(c.send)
		c.sendMu.Unlock()
		if c.conn != nil {
			_ = c.conn.Close()
		}
		c.invokeCloseHooks()
	})
}

// AddCloseHook registers a callback run once when the client closes.
func (c *Client) AddCloseHook(fn func(*Client)) {
	if fn == nil {
		return
	}
	c.hookMu.Lock()
	c.closeHooks = append(c.closeHooks, fn)
	c.hookMu.Unlock()
}

func (c *Client) invokeCloseHooks() {
	c.hookMu.Lock()
	hooks := append([]func(*Client){}, c.closeHooks...)
	c.closeHooks = nil
	c.hookMu.Unlock()

	for _, hook := range hooks {
		func(h func(*Client)) {
			defer func() {
				if r := recover(); r != nil {
					slog.Warn("ws close hook panic", slog.Any("error", r))
				}
			}()
			h(c)
		}(hook)
	}
}

func (c *Client) SendDomainMessage(msg *domain.Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		slog.Error("websocket marshal error", slog.Any("error", err))
		return
	}
	if !c.enqueue(data) {
		slog.Warn("websocket send buffer full", c.logAttrs()...)
		go c.hub.detach(c)
	}
}

func (c *Client) WritePump() {
	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				slog.Warn("websocket write error", append(c.logAttrs(), slog.Any("error", err))...)
				return
			}
		case <-ping.C:
			if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				slog.Warn("websocket ping error", append(c.logAttrs(), slog.Any("error", err))...)
				return
			}
		}
	}
}

func (c *Client) ReadPump() {
	c.conn.SetReadLimit(readLimit)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	defer c.hub.detach(c)
	for {
		var cmd Command
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		if err := c.conn.ReadJSON(&cmd); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				slog.Warn("websocket read error", append(c.logAttrs(), slog.Any("error", err))...)
			}
			return
		}
		c.handleCommand(cmd)
	}
}
