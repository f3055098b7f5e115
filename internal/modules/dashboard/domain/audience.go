package domain

import "strings"

// AllTopics is the subscription pattern matching every topic.
const AllTopics = "*"

// Audience narrows who receives a message. The zero value reaches every socket.
type Audience struct {
	UserID    string
	SessionID string
}

// AudienceOf reads the audience from the message metadata.
func AudienceOf(m *Message) Audience {
	if m == nil || m.Metadata == nil {
		return Audience{}
	}
	return Audience{
		UserID:    strings.TrimSpace(m.Metadata[MetaUserID]),
		SessionID: strings.TrimSpace(m.Metadata[MetaSessionID]),
	}
}

// Targeted reports whether the message belongs to a single session, like a toast.
func (a Audience) Targeted() bool {
	return a.SessionID != ""
}

// Includes reports whether a socket of userID opened by sessionID is part of the audience.
func (a Audience) Includes(userID, sessionID string) bool {
	if a.UserID != "" && a.UserID != userID {
		return false
	}
	return a.SessionID == "" || a.SessionID == sessionID
}

// MatchTopic reports whether topic is covered by a subscription pattern: "*" covers
// everything, "products" and "products.*" cover every products topic, anything else must be
// equal.
func MatchTopic(pattern, topic string) bool {
	pattern = strings.ToLower(strings.TrimSpace(pattern))
	topic = strings.ToLower(strings.TrimSpace(topic))
	switch {
	case pattern == "" || topic == "":
		return false
	case pattern == AllTopics || pattern == topic:
		return true
	}
	entity := strings.TrimSuffix(pattern, ".*")
	if strings.Contains(entity, ".") {
		return false
	}
	topicEntity, _ := SplitTopic(topic)
	return topicEntity == entity
}
