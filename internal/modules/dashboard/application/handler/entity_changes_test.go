package handler

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storeAdmin/internal/modules/dashboard/application/usecase"
	"storeAdmin/internal/modules/dashboard/domain"
)

type countingApplier struct {
	touched int
	seen    []*domain.Message
}

func (a *countingApplier) ApplyChange(_ context.Context, msg *domain.Message) int {
	a.seen = append(a.seen, msg)
	return a.touched
}

type capture struct {
	mu       sync.Mutex
	messages []*domain.Message
}

func (c *capture) Broadcast(_ context.Context, msg *domain.Message) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = append(c.messages, msg)
}

func TestEntityChangeHandlerAppliesAndRelays(t *testing.T) {
	t.Parallel()

	applier := &countingApplier{touched: 2}
	relay := &capture{}
	h := NewEntityChangeHandler("product", "products.events", nil, applier, usecase.NewBroadcastUseCase(relay))
	assert.Equal(t, "products.events", h.Topic())

	msg := &domain.Message{Topic: "store.Product.Created", ResourceID: "p1", Data: map[string]any{"id": "p1"}}
	require.NoError(t, h.Handle(context.Background(), msg))

	require.Len(t, applier.seen, 1)
	assert.Equal(t, "products", msg.Entity)
	assert.Equal(t, "created", msg.Action)
	assert.Equal(t, "products.created", msg.Topic)

	require.Len(t, relay.messages, 2)
	assert.Same(t, msg, relay.messages[0])
	changed := relay.messages[1]
	assert.Equal(t, "products.changed", changed.Topic)
	assert.Equal(t, "p1", changed.ResourceID)
	assert.Empty(t, changed.SessionID())
}

func TestEntityChangeHandlerFilters(t *testing.T) {
	t.Parallel()

	applier := &countingApplier{}
	relay := &capture{}
	h := NewEntityChangeHandler("messages", "messages.events", []string{"Created"}, applier, usecase.NewBroadcastUseCase(relay))

	require.NoError(t, h.Handle(context.Background(), &domain.Message{Entity: "message", Action: "deleted"}))
	require.NoError(t, h.Handle(context.Background(), &domain.Message{Entity: "coupon", Action: "created"}))
	assert.Empty(t, applier.seen)
	assert.Empty(t, relay.messages)

	require.NoError(t, h.Handle(context.Background(), &domain.Message{Action: "created", ResourceID: "m1"}))
	require.Len(t, applier.seen, 1)
	assert.Equal(t, "messages", applier.seen[0].Entity)
	require.Len(t, relay.messages, 1, "nothing touched, so no view change")
	assert.NoError(t, h.Handle(context.Background(), nil))
}
