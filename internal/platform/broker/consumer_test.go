package broker

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDecodeMessage(t *testing.T) {
	t.Parallel()

	at := time.Date(2024, time.March, 3, 10, 0, 0, 0, time.UTC)
	cases := []struct {
		name       string
		topic      string
		value      string
		entity     string
		action     string
		resourceID string
		msgTopic   string
	}{
		{
			name:       "full envelope",
			topic:      "products.events",
			value:      `{"entity":"products","action":"Created","resourceId":"p1","data":{"id":"p1"}}`,
			entity:     "products",
			action:     "created",
			resourceID: "p1",
			msgTopic:   "products.created",
		},
		{
			name:       "action from topic, id from data",
			topic:      "store.messages.created",
			value:      `{"data":{"id":"m7","name":"Ada"}}`,
			entity:     "messages",
			action:     "created",
			resourceID: "m7",
			msgTopic:   "messages.created",
		},
		{
			name:     "raw payload",
			topic:    "coupons.deleted",
			value:    `not json`,
			entity:   "coupons",
			action:   "deleted",
			msgTopic: "coupons.deleted",
		},
		{
			name:     "bare topic",
			topic:    "newsletter",
			value:    `{}`,
			entity:   "newsletter",
			action:   "unknown",
			msgTopic: "newsletter.unknown",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			msg := decodeMessage(tc.topic, []byte(tc.value), at)
			assert.Equal(t, tc.entity, msg.Entity)
			assert.Equal(t, tc.action, msg.Action)
			assert.Equal(t, tc.resourceID, msg.ResourceID)
			assert.Equal(t, tc.msgTopic, msg.Topic)
			assert.Equal(t, at, msg.Timestamp)
		})
	}
}

func TestStartKafkaConsumersWithoutBrokers(t *testing.T) {
	t.Parallel()

	wait := StartKafkaConsumers(context.Background(), nil, nil, "group", []string{"products.events"})
	done := make(chan struct{})
	go func() {
		wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("wait blocked without consumers")
	}
}
