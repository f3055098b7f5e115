package domain

import (
	"strings"
	"time"
)

// Metadata carries routing and descriptive attributes of a message.
type Metadata map[string]string

// Message is the envelope pushed to websocket clients and decoded from change events.
type Message struct {
	Topic      string            `json:"topic"`
	Entity     string            `json:"entity"`
	Action     string            `json:"action"`
	ResourceID string            `json:"resourceId,omitempty"`
	Metadata   map[string]string `json:"metadata,omitempty"`
	Data       any               `json:"data,omitempty"`
	Timestamp  time.Time         `json:"timestamp"`
}

// Metadata keys understood by the hub when routing a message.
const (
	MetaUserID    = "userId"
	MetaSessionID = "sessionId"
)

// ForSession scopes the message to a single session.
func (m *Message) ForSession(sessionID string) *Message {
	if m == nil {
		return nil
	}
	trimmed := strings.TrimSpace(sessionID)
	if trimmed == "" {
		return m
	}
	m.Metadata = mergeInto(m.Metadata, Metadata{MetaSessionID: trimmed})
	return m
}

// SessionID returns the session the message is addressed to, if any.
func (m *Message) SessionID() string {
	if m == nil || m.Metadata == nil {
		return ""
	}
	return strings.TrimSpace(m.Metadata[MetaSessionID])
}

func mergeInto(target map[string]string, extras Metadata) map[string]string {
	if len(extras) == 0 {
		return target
	}
	if target == nil {
		target = make(map[string]string, len(extras))
	}
	for key, value := range extras {
		trimmedKey := strings.TrimSpace(key)
		trimmedValue := strings.TrimSpace(value)
		if trimmedKey == "" || trimmedValue == "" {
			continue
		}
		target[trimmedKey] = trimmedValue
	}
	return target
}
