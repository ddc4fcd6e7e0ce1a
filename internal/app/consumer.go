package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"resto-ops/internal/events"
	"resto-ops/internal/messaging/kafka/consumer"
	"resto-ops/internal/shared/connection"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// RunConsumer invalidates per-restaurant caches from lifecycle events so
// every API instance observes mutations made by its siblings.
func RunConsumer() error {
	logger := zap.L().Named("app.consumer")

	broker := os.Getenv("KAFKA_BROKER")
	if broker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	redisClient, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	// CommitInterval 0 commits synchronously: an invalidation is never
	// acknowledged before the cache keys are actually gone.
	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{broker},
		Topic:          events.EmployeeLifecycleTopic,
		GroupID:        "resto-ops-cache-invalidation",
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer reader.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	consumer.ConsumeEmployeeLifecycle(ctx, reader, redisClient, logger)

	logger.Info("cache invalidation consumer shut down")
	return nil
}
