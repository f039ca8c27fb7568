package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/benvon/trackme/internal/queue"
	"go.uber.org/zap"
)

const (
	queueMaxRetries   = 10
	queueInitialDelay = 2 * time.Second
	queueMaxDelay     = 30 * time.Second
)

// ConnectQueue dials RabbitMQ with exponential backoff so the API and worker
// survive a broker that is still starting
func ConnectQueue(ctx context.Context, amqpURL string, logger *zap.Logger) (*queue.RabbitMQQueue, error) {
	var lastErr error
	for attempt := 0; attempt < queueMaxRetries; attempt++ {
		q, err := queue.NewRabbitMQQueue(amqpURL)
		if err == nil {
			logger.Info("connected_to_rabbitmq")
			return q, nil
		}
		lastErr = err

		delay := backoffDelay(attempt)
		logger.Warn("failed_to_connect_to_rabbitmq_retrying",
			zap.Int("attempt", attempt+1),
			zap.Int("max_retries", queueMaxRetries),
			zap.Error(err),
			zap.Duration("retry_delay", delay),
		)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
	}
	return nil, fmt.Errorf("failed to connect to RabbitMQ after %d attempts: %w", queueMaxRetries, lastErr)
}

func backoffDelay(attempt int) time.Duration {
	delay := queueInitialDelay * time.Duration(1<<uint(attempt))
	if delay > queueMaxDelay || delay <= 0 {
		return queueMaxDelay
	}
	return delay
}
