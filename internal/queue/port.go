// Package queue defines the named string-payload queue the workers poll and
// the producers push onto, along with the drivers that back it.
package queue

import (
	"context"
)

// Port is a set of named FIFO queues of string payloads. Implementations are
// safe for concurrent use. Dequeue removes the item it returns, so a consumer
// that fails after a successful Dequeue does not get the item back.
type Port interface {
	Enqueue(ctx context.Context, queueName, payload string) error
	// Dequeue returns ok=false with a nil error when the queue is empty.
	Dequeue(ctx context.Context, queueName string) (payload string, ok bool, err error)
}

// DepthReporter is implemented by drivers that can report queue length.
type DepthReporter interface {
	Depth(ctx context.Context, queueName string) (int64, error)
}

// Pinger is implemented by drivers backed by a remote broker.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Close releases driver resources when the driver holds any.
func Close(p Port) error {
	if c, ok := p.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
