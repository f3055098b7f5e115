package handler

import (
	"context"
	"log/slog"
	"strings"

	"storeAdmin/internal/modules/dashboard/application/port"
	"storeAdmin/internal/modules/dashboard/application/usecase"
	"storeAdmin/internal/modules/dashboard/domain"
	"storeAdmin/internal/shared/normalization"
)

// ChangeApplier folds a backend change event into the mounted views of one entity and returns
// how many views it touched.
type ChangeApplier interface {
	ApplyChange(ctx context.Context, msg *domain.Message) int
}

// entityViews maps canonical entities to the view that lists them.
var entityViews = map[string]string{
	normalization.EntityProducts:    domain.ViewProducts,
	normalization.EntityCoupons:     domain.ViewCoupons,
	normalization.EntitySubscribers: domain.ViewNewsletter,
	normalization.EntityMessages:    domain.ViewMessages,
}

// EntityChangeHandler applies the change events of one Kafka topic to the mounted views and
// relays them to websocket clients. Actions outside allowedActions are dropped when the set is
// not empty.
type EntityChangeHandler struct {
	entity         string
	kafkaTopic     string
	allowedActions map[string]struct{}
	applier        ChangeApplier
	broadcastUC    *usecase.BroadcastUseCase
}

func NewEntityChangeHandler(entity, kafkaTopic string, allowedActions []string, applier ChangeApplier, broadcastUC *usecase.BroadcastUseCase) *EntityChangeHandler {
	actionSet := make(map[string]struct{}, len(allowedActions))
	for _, a := range allowedActions {
		if v := strings.TrimSpace(strings.ToLower(a)); v != "" {
			actionSet[v] = struct{}{}
		}
	}
	return &EntityChangeHandler{
		entity:         normalization.NormalizeEntity(entity),
		kafkaTopic:     kafkaTopic,
		allowedActions: actionSet,
		applier:        applier,
		broadcastUC:    broadcastUC,
	}
}

func (h *EntityChangeHandler) Topic() string { return h.kafkaTopic }

func (h *EntityChangeHandler) Handle(ctx context.Context, msg *domain.Message) error {
	if msg == nil {
		return nil
	}
	if msg.Entity == "" || msg.Action == "" {
		entity, action := domain.SplitTopic(msg.Topic)
		if msg.Entity == "" {
			msg.Entity = entity
		}
		if msg.Action == "" {
			msg.Action = action
		}
	}
	msg.Entity = normalization.NormalizeEntity(msg.Entity)
	if msg.Entity == "" {
		msg.Entity = h.entity
	}
	msg.Action = strings.ToLower(strings.TrimSpace(msg.Action))
	if len(h.allowedActions) > 0 {
		if _, ok := h.allowedActions[msg.Action]; !ok {
			return nil
		}
	}
	if msg.Entity != h.entity {
		slog.Debug("entity-change skipped: foreign entity", slog.String("topic", h.kafkaTopic), slog.String("entity", msg.Entity))
		return nil
	}
	msg.Topic = domain.CustomTopic(msg.Entity, msg.Action)

	touched := 0
	if h.applier != nil {
		touched = h.applier.ApplyChange(ctx, msg)
	}
	slog.Info("entity-change applied",
		slog.String("entity", msg.Entity),
		slog.String("action", msg.Action),
		slog.String("resourceId", msg.ResourceID),
		slog.Int("views", touched),
	)

	// Change events carry no session; the hub delivers them to every client.
	h.broadcastUC.Execute(ctx, msg)
	if view, ok := entityViews[msg.Entity]; ok && touched > 0 {
		change := domain.ViewChange{View: view, Reason: msg.Action}
		if msg.ResourceID != "" {
			change.IDs = []string{msg.ResourceID}
		}
		h.broadcastUC.ViewChanged(ctx, "", change)
	}
	return nil
}

var _ port.TopicHandler = (*EntityChangeHandler)(nil)
