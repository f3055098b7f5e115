package infrastructure

import (
	"log/slog"
	"strings"
	"time"

	"storeAdmin/internal/modules/dashboard/domain"
)

// Command is a frame sent by the dashboard to its notification socket, e.g.
// {"action":"subscribe","topics":["products","messages.created"]}.
type Command struct {
	Action string   `json:"action"`
	Topic  string   `json:"topic,omitempty"`
	Topics []string `json:"topics,omitempty"`
}

// patterns returns Topic and Topics as one list.
func (c Command) patterns() []string {
	out := make([]string, 0, len(c.Topics)+1)
	for _, raw := range append([]string{c.Topic}, c.Topics...) {
		if trimmed := strings.TrimSpace(raw); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

var commandHandlers = map[string]func(*Client, Command){
	"subscribe":     (*Client).subscribeCommand,
	"unsubscribe":   (*Client).unsubscribeCommand,
	"subscriptions": (*Client).subscriptionsCommand,
	"ping":          (*Client).pingCommand,
}

func (c *Client) handleCommand(cmd Command) {
	action := strings.ToLower(strings.TrimSpace(cmd.Action))
	if action == "" {
		return
	}
	handler, ok := commandHandlers[action]
	if !ok {
		c.reply(domain.TopicSystemError, domain.ActionError, map[string]string{"error": "unknown action " + action})
		return
	}
	handler(c, cmd)
}

// subscribeCommand adds topic patterns and answers with the resulting subscriptions.
func (c *Client) subscribeCommand(cmd Command) {
	patterns := cmd.patterns()
	if len(patterns) == 0 {
		c.reply(domain.TopicSystemError, domain.ActionError, map[string]string{"error": "subscribe needs a topic"})
		return
	}
	for _, pattern := range patterns {
		c.hub.subscribe(c, pattern)
	}
	slog.Debug("ws subscribe", append(c.logAttrs(), slog.Any("topics", patterns))...)
	c.subscriptionsCommand(cmd)
}

func (c *Client) unsubscribeCommand(cmd Command) {
	for _, pattern := range cmd.patterns() {
		c.hub.unsubscribe(c, pattern)
	}
	c.subscriptionsCommand(cmd)
}

func (c *Client) subscriptionsCommand(Command) {
	c.reply(domain.TopicSystemSubscriptions, domain.ActionSubscriptions, map[string]any{"topics": c.hub.subscriptions(c)})
}

func (c *Client) pingCommand(Command) {
	c.reply(domain.TopicSystemPong, domain.ActionPong, nil)
}

// reply sends a system message to this socket only.
func (c *Client) reply(topic, action string, data any) {
	msg := &domain.Message{
		Topic:     topic,
		Entity:    domain.SystemEntity,
		Action:    action,
		Data:      data,
		Timestamp: time.Now().UTC(),
	}
	c.SendDomainMessage(msg.ForSession(c.sessionID))
}
