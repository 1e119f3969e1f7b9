package kafkamiddleware

import (
	"context"
	"time"

	"studio/pkg/kafka"
	"studio/pkg/logger"
)

func ProducerLogging(log *logger.Logger) kafka.ProducerMiddleware {
	return func(next kafka.PublishFunc) kafka.PublishFunc {
		return func(ctx context.Context, msg kafka.Message) error {
			start := time.Now()
			err := next(ctx, msg)

			attrs := []any{
				"topic", msg.Topic,
				"key", msg.Key,
				"event_id", msg.EventID(),
				"event_type", msg.EventType(),
				"request_id", msg.Header(kafka.HeaderRequestID),
				"duration", time.Since(start),
			}
			if err != nil {
				log.Error("Failed to publish message", append(attrs, "error", err)...)
			} else {
				log.Debug("Published message", attrs...)
			}
			return err
		}
	}
}

func ConsumerLogging(log *logger.Logger) kafka.ConsumerMiddleware {
	return func(next kafka.MessageHandler) kafka.MessageHandler {
		return func(ctx context.Context, msg kafka.Message) error {
			start := time.Now()
			err := next(ctx, msg)

			attrs := []any{
				"topic", msg.Topic,
				"partition", msg.Partition,
				"offset", msg.Offset,
				"event_id", msg.EventID(),
				"retry_count", msg.RetryCount(),
				"duration", time.Since(start),
			}
			if err != nil {
				log.Warn("Failed to process message", append(attrs, "error", err)...)
			} else {
				log.Debug("Processed message", attrs...)
			}
			return err
		}
	}
}
