package queue

import (
	"context"
	"sync"
)

// MemoryQueue keeps every queue in process. Used by tests and by the
// "memory" driver for local runs.
type MemoryQueue struct {
	mu     sync.Mutex
	queues map[string][]string
}

func NewMemoryQueue() *MemoryQueue {
	return &MemoryQueue{queues: make(map[string][]string)}
}

func (m *MemoryQueue) Enqueue(ctx context.Context, queueName, payload string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queues[queueName] = append(m.queues[queueName], payload)
	return nil
}

func (m *MemoryQueue) Dequeue(ctx context.Context, queueName string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	items := m.queues[queueName]
	if len(items) == 0 {
		return "", false, nil
	}
	head := items[0]
	items[0] = ""
	m.queues[queueName] = items[1:]
	return head, true, nil
}

func (m *MemoryQueue) Depth(ctx context.Context, queueName string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.queues[queueName])), nil
}
