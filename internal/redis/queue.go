package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// ListQueue stores each named queue as a Redis list under "<prefix>:<name>".
// Producers LPUSH and consumers RPOP, which gives FIFO order per queue.
type ListQueue struct {
	client *redis.Client
	prefix string
}

func NewListQueue(client *redis.Client, prefix string) *ListQueue {
	return &ListQueue{client: client, prefix: prefix}
}

func (q *ListQueue) key(queueName string) string {
	if q.prefix == "" {
		return queueName
	}
	return q.prefix + ":" + queueName
}

func (q *ListQueue) Enqueue(ctx context.Context, queueName, payload string) error {
	if err := q.client.LPush(ctx, q.key(queueName), payload).Err(); err != nil {
		return fmt.Errorf("lpush %s: %w", queueName, err)
	}
	return nil
}

func (q *ListQueue) Dequeue(ctx context.Context, queueName string) (string, bool, error) {
	payload, err := q.client.RPop(ctx, q.key(queueName)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("rpop %s: %w", queueName, err)
	}
	return payload, true, nil
}

func (q *ListQueue) Depth(ctx context.Context, queueName string) (int64, error) {
	return q.client.LLen(ctx, q.key(queueName)).Result()
}

func (q *ListQueue) Ping(ctx context.Context) error {
	return q.client.Ping(ctx).Err()
}

func (q *ListQueue) Close() error {
	return q.client.Close()
}
