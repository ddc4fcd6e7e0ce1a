package producer

import (
	"context"

	"resto-ops/internal/messaging/kafka"

	kafkago "github.com/segmentio/kafka-go"
)

// Messages are keyed by restaurant so every event for one restaurant lands
// on the same partition, in order. The cache invalidation consumer relies
// on that ordering.
func publishEvent(ctx context.Context, writer *kafkago.Writer, event kafka.OutboxEvent) error {
	return writer.WriteMessages(ctx, kafkago.Message{
		Topic: event.Topic,
		Key:   []byte(event.AggregateID),
		Value: event.Payload,
		Headers: []kafkago.Header{
			{Key: "event_type", Value: []byte(event.EventType)},
			{Key: "aggregate_type", Value: []byte(event.AggregateType)},
			{Key: "request_id", Value: []byte(event.RequestID)},
		},
	})
}
