package broker

import (
	"context"
	"log/slog"
	"sync"

	"storeAdmin/internal/modules/dashboard/domain"
)

// Dispatcher routes a consumed message by the Kafka topic it came from.
type Dispatcher interface {
	Dispatch(ctx context.Context, kafkaTopic string, msg *domain.Message) error
}

// StartKafkaConsumers runs one consumer goroutine per topic. The returned function blocks until
// every consumer has stopped after ctx is cancelled.
func StartKafkaConsumers(
	ctx context.Context,
	dispatcher Dispatcher,
	brokers []string,
	groupID string,
	topics []string,
) (wait func()) {
	var wg sync.WaitGroup
	if len(brokers) == 0 {
		slog.Warn("kafka disabled: no brokers configured")
		return wg.Wait
	}
	for _, topic := range topics {
		wg.Add(1)
		go func(tp string) {
			defer wg.Done()
			consumer := NewKafkaConsumer(brokers, groupID, tp)
			_ = consumer.Consume(ctx, func(msg *domain.Message) error {
				return dispatcher.Dispatch(ctx, tp, msg)
			})
		}(topic)
	}
	slog.Info("kafka consumers started", slog.Any("topics", topics), slog.String("groupId", groupID))
	return wg.Wait
}
