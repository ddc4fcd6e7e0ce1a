package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"resto-ops/internal/messaging/kafka"
	"resto-ops/internal/messaging/kafka/producer"
	"resto-ops/internal/shared/connection"

	"go.uber.org/zap"
)

const defaultOutboxPoll = 3 * time.Second

// RunWorker relays pending lifecycle outbox rows to Kafka until interrupted.
func RunWorker() error {
	logger := zap.L().Named("app.worker")

	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	broker := os.Getenv("KAFKA_BROKER")
	if broker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	writer, err := connection.ConnectKafkaWithRetry(broker, 5)
	if err != nil {
		return err
	}
	defer writer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	producer.ProcessOutboxEvents(
		ctx,
		kafka.NewOutboxRepository(sqlDB),
		writer,
		logger,
		outboxPollInterval(),
	)

	logger.Info("outbox relay shut down")
	return nil
}

func outboxPollInterval() time.Duration {
	raw := os.Getenv("OUTBOX_POLL_INTERVAL_SECONDS")
	if raw == "" {
		return defaultOutboxPoll
	}
	secs, err := strconv.Atoi(raw)
	if err != nil || secs <= 0 {
		return defaultOutboxPoll
	}
	return time.Duration(secs) * time.Second
}
