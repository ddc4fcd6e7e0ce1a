package producer

import (
	"context"
	"time"

	"resto-ops/internal/messaging/kafka"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const drainBatchSize = 50

// ProcessOutboxEvents polls the lifecycle outbox and relays due rows to
// Kafka until the context is cancelled. A failed publish only marks the row;
// the backoff recorded on it decides when the next attempt happens.
func ProcessOutboxEvents(
	ctx context.Context,
	repo kafka.OutboxRepository,
	writer *kafkago.Writer,
	logger *zap.Logger,
	pollInterval time.Duration,
) {
	if pollInterval <= 0 {
		pollInterval = 3 * time.Second
	}

	log := logger.Named("kafka.producer.worker")
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	log.Info("outbox relay started", zap.Duration("poll_interval", pollInterval))

	for {
		select {
		case <-ctx.Done():
			log.Info("outbox relay stopped")
			return
		case <-ticker.C:
			relayBatch(ctx, repo, writer, log)
		}
	}
}

func relayBatch(
	ctx context.Context,
	repo kafka.OutboxRepository,
	writer *kafkago.Writer,
	log *zap.Logger,
) {
	events, err := repo.ListPending(ctx, drainBatchSize)
	if err != nil {
		log.Error("list pending outbox rows failed", zap.Error(err))
		return
	}
	if len(events) == 0 {
		return
	}

	sent := 0
	for _, event := range events {
		if err := publishEvent(ctx, writer, event); err != nil {
			log.Error("publish lifecycle event failed",
				zap.String("outbox_id", event.ID),
				zap.String("event_type", event.EventType),
				zap.Int("attempts", event.Attempts),
				zap.Error(err),
			)
			_ = repo.MarkFailed(ctx, event.ID, err.Error())
			continue
		}
		if err := repo.MarkSent(ctx, event.ID); err != nil {
			// The message went out; the row stays pending and will be
			// published again. Consumers must tolerate duplicates.
			log.Error("mark outbox row sent failed",
				zap.String("outbox_id", event.ID),
				zap.Error(err),
			)
			continue
		}
		sent++
	}

	log.Info("outbox batch relayed",
		zap.Int("sent", sent),
		zap.Int("failed", len(events)-sent),
	)
}
