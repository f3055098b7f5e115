package broker

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"

	"storeAdmin/internal/modules/dashboard/application/port"
	"storeAdmin/internal/modules/dashboard/domain"
	"storeAdmin/internal/shared/normalization"
)

const readBackoff = 2 * time.Second

// KafkaConsumer reads backend change events from one topic.
type KafkaConsumer struct {
	topic  string
	reader *kafka.Reader
}

func NewKafkaConsumer(brokers []string, groupID string, topic string) *KafkaConsumer {
	return &KafkaConsumer{
		topic: topic,
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers: brokers,
			GroupID: groupID,
			Topic:   topic,
		}),
	}
}

// Consume feeds decoded messages to handler until ctx is cancelled. Handler errors are logged
// and the offset is committed anyway.
func (c *KafkaConsumer) Consume(ctx context.Context, handler func(*domain.Message) error) error {
	defer func() {
		if err := c.reader.Close(); err != nil {
			slog.Warn("kafka reader close error", slog.String("topic", c.topic), slog.Any("error", err))
		}
	}()
	for {
		m, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, io.EOF) {
				slog.Info("kafka consumer stopped", slog.String("topic", c.topic))
				return nil
			}
			slog.Warn("kafka read error", slog.String("topic", c.topic), slog.Any("error", err))
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(readBackoff):
			}
			continue
		}
		msg := decodeMessage(m.Topic, m.Value, m.Time)
		slog.Info("kafka message consumed",
			slog.String("topic", m.Topic),
			slog.Int("partition", m.Partition),
			slog.Int64("offset", m.Offset),
			slog.String("entity", msg.Entity),
			slog.String("action", msg.Action),
			slog.String("resourceId", msg.ResourceID),
		)
		if err := handler(msg); err != nil {
			slog.Warn("kafka handler error", slog.String("topic", m.Topic), slog.Any("error", err))
		}
	}
}

type rawEvent struct {
	Entity     string            `json:"entity"`
	Action     string            `json:"action"`
	ResourceID string            `json:"resourceId"`
	Topic      string            `json:"topic"`
	Metadata   map[string]string `json:"metadata"`
	Data       any               `json:"data"`
}

// decodeMessage turns a Kafka record into a Message. Undecodable payloads keep the raw text and
// take entity and action from the topic name.
func decodeMessage(topic string, value []byte, at time.Time) *domain.Message {
	if at.IsZero() {
		at = time.Now()
	}
	msg := &domain.Message{Timestamp: at.UTC()}

	var event rawEvent
	if err := json.Unmarshal(value, &event); err != nil {
		msg.Topic = topic
		msg.Entity, msg.Action = inferEntityActionFromTopic(topic)
		msg.Data = string(value)
		return msg
	}

	topicEntity, topicAction := inferEntityActionFromTopic(firstNonEmpty(event.Topic, topic))
	msg.Entity = firstNonEmpty(event.Entity, topicEntity)
	msg.Action = strings.ToLower(firstNonEmpty(event.Action, topicAction))
	msg.ResourceID = firstNonEmpty(event.ResourceID, resourceIDFromData(event.Data))
	msg.Metadata = event.Metadata
	msg.Data = event.Data
	msg.Topic = firstNonEmpty(event.Topic, domain.CustomTopic(msg.Entity, msg.Action))
	return msg
}

func resourceIDFromData(data any) string {
	payload, ok := data.(map[string]any)
	if !ok {
		return ""
	}
	return normalization.FirstString(payload, "id", "resourceId")
}

// inferEntityActionFromTopic reads "products.created" style names. A bare name such as
// "products.events" yields the entity with an unknown action.
func inferEntityActionFromTopic(topic string) (string, string) {
	entity, action := domain.SplitTopic(topic)
	if entity != "" && action != "" && isKnownAction(action) {
		return entity, action
	}
	if entity != "" && action != "" {
		return entity, "unknown"
	}
	return strings.TrimSpace(topic), "unknown"
}

func isKnownAction(action string) bool {
	switch strings.ToLower(action) {
	case domain.ActionCreated, domain.ActionUpdated, domain.ActionDeleted, domain.ActionRead:
		return true
	}
	return false
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

var _ port.PubSubPort = (*KafkaConsumer)(nil)
