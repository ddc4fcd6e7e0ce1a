package consumer

import (
	"context"
	"encoding/json"

	"resto-ops/internal/compliance"
	"resto-ops/internal/employee"
	"resto-ops/internal/events"

	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeEmployeeLifecycle drops per-restaurant Redis caches whenever a
// roster transition event arrives, so every API instance serves a fresh
// roster and compliance snapshot after a mutation made elsewhere.
func ConsumeEmployeeLifecycle(
	ctx context.Context,
	reader *kafkago.Reader,
	rdb *redis.Client,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.employee_lifecycle")
	log.Info("employee lifecycle consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("employee lifecycle consumer stopped")
				return
			}
			log.Error("fetch lifecycle message failed", zap.Error(err))
			continue
		}

		var event events.EmployeeLifecycleEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			// Poison message: commit and move on.
			log.Error("decode lifecycle event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		keys := []string{
			employee.RosterOptionsKey(event.RestaurantID),
			compliance.DashboardKey(event.RestaurantID),
		}
		if err := rdb.Del(ctx, keys...).Err(); err != nil {
			// Leave the message uncommitted, it will be retried.
			log.Error("invalidate caches failed",
				zap.String("restaurant_id", event.RestaurantID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit lifecycle message failed", zap.Error(err))
			continue
		}

		log.Info("caches invalidated from lifecycle event",
			zap.String("event_type", event.EventType),
			zap.String("employee_id", event.EmployeeID),
			zap.String("restaurant_id", event.RestaurantID),
		)
	}
}
