package queue

import (
	"context"
	"fmt"
	"strings"

	redisqueue "storefront-events/internal/redis"
	storefront_errors "storefront-events/pkg/errors"
	"storefront-events/pkg/logger"
)

const (
	DriverRedis  = "redis"
	DriverKafka  = "kafka"
	DriverMemory = "memory"
)

type Config struct {
	Driver string
	// Prefix namespaces Redis keys as "<prefix>:<queue>".
	Prefix string
	Redis  redisqueue.Config
	Kafka  KafkaConfig
}

var _ Port = (*redisqueue.ListQueue)(nil)
var _ Port = (*KafkaQueue)(nil)
var _ Port = (*MemoryQueue)(nil)

// Open builds the driver named by cfg.Driver.
func Open(ctx context.Context, cfg Config, log *logger.Logger) (Port, error) {
	switch strings.ToLower(cfg.Driver) {
	case DriverRedis, "":
		q := redisqueue.NewListQueue(redisqueue.NewClient(cfg.Redis), cfg.Prefix)
		if err := q.Ping(ctx); err != nil {
			_ = q.Close()
			return nil, fmt.Errorf("%w: redis: %v", storefront_errors.ErrQueueUnavailable, err)
		}
		return q, nil
	case DriverKafka:
		q, err := NewKafkaQueue(cfg.Kafka, log)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", storefront_errors.ErrQueueUnavailable, err)
		}
		return q, nil
	case DriverMemory:
		return NewMemoryQueue(), nil
	default:
		return nil, fmt.Errorf("%w: %q", storefront_errors.ErrUnknownDriver, cfg.Driver)
	}
}
