package domain

import (
	"log/slog"
	"math"
	"strings"
	"time"

	"storeAdmin/internal/shared/listengine"
	"storeAdmin/internal/shared/normalization"
)

// Message is a contact-form message sent by a customer.
type Message struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Body      string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

// Initials are the uppercase first letters of each word of the sender name.
func (m Message) Initials() string {
	var builder strings.Builder
	for _, part := range strings.Fields(m.Name) {
		builder.WriteString(strings.ToUpper(string([]rune(part)[:1])))
	}
	return builder.String()
}

// RelativeDate renders CreatedAt as "Today 03:04 PM", "Yesterday" or "Jan 2".
func (m Message) RelativeDate(now time.Time) string {
	if m.CreatedAt.IsZero() {
		return ""
	}
	days := int(math.Floor(math.Abs(now.Sub(m.CreatedAt).Hours()) / 24))
	switch days {
	case 0:
		return "Today " + m.CreatedAt.Format("03:04 PM")
	case 1:
		return "Yesterday"
	default:
		return m.CreatedAt.Format("Jan 2")
	}
}

// NormalizeMessage attempts to construct a Message from an arbitrary map payload.
func NormalizeMessage(raw map[string]any) (Message, bool) {
	id := normalization.AsString(raw["id"])
	if id == "" {
		return Message{}, false
	}
	return Message{
		ID:        id,
		Name:      normalization.AsString(raw["name"]),
		Email:     normalization.AsString(raw["email"]),
		Subject:   normalization.AsString(raw["subject"]),
		Body:      normalization.AsString(raw["message"]),
		Read:      normalization.AsBool(raw["read"]),
		CreatedAt: normalization.AsTime(normalization.FirstString(raw, "created_at", "date")),
	}, true
}

// BuildMessageList projects {"data": [...]} into messages, dropping entries without an id.
func BuildMessageList(payload any) []Message {
	rawItems := normalization.ListFromPayload(payload, "messages")
	messages := make([]Message, 0, len(rawItems))
	for _, item := range rawItems {
		rawMap, ok := item.(map[string]any)
		if !ok {
			continue
		}
		message, ok := NormalizeMessage(rawMap)
		if !ok {
			slog.Warn("message dropped: missing id")
			continue
		}
		messages = append(messages, message)
	}
	return messages
}

// UnreadCount counts messages not yet opened.
func UnreadCount(messages []Message) int {
	count := 0
	for _, message := range messages {
		if !message.Read {
			count++
		}
	}
	return count
}

// MarkRead is the local update applied once the backend acknowledged a read.
func MarkRead(m Message) Message {
	m.Read = true
	return m
}

// Schema describes how the messages view searches and orders messages.
func Schema() listengine.Schema[Message] {
	return listengine.Schema[Message]{
		ID: func(m Message) string { return m.ID },
		Fields: map[string]listengine.Field[Message]{
			"name":      {Text: func(m Message) string { return m.Name }},
			"email":     {Text: func(m Message) string { return m.Email }},
			"subject":   {Text: func(m Message) string { return m.Subject }},
			"message":   {Text: func(m Message) string { return m.Body }},
			"createdAt": {Time: func(m Message) time.Time { return m.CreatedAt }},
		},
		Searchable: []string{"name", "email", "subject", "message"},
		SortOptions: []listengine.SortOption{
			{Label: "Newest", Key: "createdAt", Direction: listengine.Descending},
			{Label: "Oldest", Key: "createdAt", Direction: listengine.Ascending},
		},
		DefaultSort: "Newest",
	}
}
