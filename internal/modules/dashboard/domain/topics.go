package domain

import "strings"

const (
	SystemEntity = "system"
	ToastEntity  = "toast"

	TopicSystemConnected     = SystemEntity + ".connected"
	TopicSystemPong          = SystemEntity + ".pong"
	TopicSystemError         = SystemEntity + ".error"
	TopicSystemSubscriptions = SystemEntity + ".subscriptions"

	ActionConnected     = "connected"
	ActionPong          = "pong"
	ActionError         = "error"
	ActionSubscriptions = "subscriptions"
	ActionChanged       = "changed"
	ActionCreated       = "created"
	ActionUpdated       = "updated"
	ActionDeleted       = "deleted"
	ActionRead          = "read"
)

// ToastLevel is the severity shown on a toast.
type ToastLevel string

const (
	ToastSuccess ToastLevel = "success"
	ToastError   ToastLevel = "error"
	ToastInfo    ToastLevel = "info"
)

// ToastTopic returns the topic toasts of the given level are published on.
func ToastTopic(level ToastLevel) string {
	return buildEntityTopic(ToastEntity, string(level))
}

// ChangedTopic returns the topic announcing that a mounted view changed.
func ChangedTopic(entity string) string {
	return buildEntityTopic(entity, ActionChanged)
}

// CreatedTopic returns the canonical created topic for the given entity.
func CreatedTopic(entity string) string {
	return buildEntityTopic(entity, ActionCreated)
}

// UpdatedTopic returns the canonical updated topic for the given entity.
func UpdatedTopic(entity string) string {
	return buildEntityTopic(entity, ActionUpdated)
}

// DeletedTopic returns the canonical deleted topic for the given entity.
func DeletedTopic(entity string) string {
	return buildEntityTopic(entity, ActionDeleted)
}

// CustomTopic returns the canonical topic for the given entity and action.
func CustomTopic(entity, action string) string {
	return buildEntityTopic(entity, action)
}

// SplitTopic splits "entity.action" into its parts. Prefixed topics such as
// "store.products.created" keep only the last two segments.
func SplitTopic(topic string) (string, string) {
	parts := strings.Split(strings.TrimSpace(topic), ".")
	if len(parts) < 2 {
		return strings.TrimSpace(topic), ""
	}
	return strings.TrimSpace(parts[len(parts)-2]), strings.TrimSpace(parts[len(parts)-1])
}

func buildEntityTopic(entity, action string) string {
	cleanEntity := strings.TrimSpace(entity)
	cleanAction := strings.TrimSpace(action)
	if cleanEntity == "" || cleanAction == "" {
		return ""
	}
	return cleanEntity + "." + cleanAction
}
