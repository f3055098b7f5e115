package domain

import (
	"strings"
	"time"
)

// Toast is a short user-visible notification.
type Toast struct {
	Level   ToastLevel `json:"level"`
	Title   string     `json:"title,omitempty"`
	Message string     `json:"message"`
}

// SuccessToast reports a completed action.
func SuccessToast(message string) Toast {
	return Toast{Level: ToastSuccess, Message: message}
}

// ErrorToast reports a failed action. The error text is appended when present.
func ErrorToast(message string, err error) Toast {
	toast := Toast{Level: ToastError, Message: message}
	if err != nil {
		toast.Title = message
		toast.Message = err.Error()
	}
	return toast
}

// BuildToastMessage wraps a toast for delivery to one session.
func BuildToastMessage(sessionID string, toast Toast, at time.Time) *Message {
	if toast.Level == "" {
		toast.Level = ToastInfo
	}
	msg := &Message{
		Topic:     ToastTopic(toast.Level),
		Entity:    ToastEntity,
		Action:    string(toast.Level),
		Data:      toast,
		Timestamp: at.UTC(),
	}
	return msg.ForSession(sessionID)
}

// ViewChange describes how a mounted view changed so clients can refetch the visible page.
type ViewChange struct {
	View       string   `json:"view"`
	Reason     string   `json:"reason"`
	IDs        []string `json:"ids,omitempty"`
	TotalItems int      `json:"totalItems"`
}

// BuildViewChangedMessage announces a view change. An empty sessionID reaches every session.
func BuildViewChangedMessage(sessionID string, change ViewChange, at time.Time) *Message {
	entity := strings.TrimSpace(change.View)
	msg := &Message{
		Topic:     ChangedTopic(entity),
		Entity:    entity,
		Action:    ActionChanged,
		Metadata:  map[string]string{"reason": change.Reason},
		Data:      change,
		Timestamp: at.UTC(),
	}
	if len(change.IDs) == 1 {
		msg.ResourceID = change.IDs[0]
	}
	return msg.ForSession(sessionID)
}
