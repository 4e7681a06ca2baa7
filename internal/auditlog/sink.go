package auditlog

import (
	"context"
	"sync"

	"storefront-events/internal/domain/audit"
)

// Sink is the append-only destination for processing records.
// Implementations must be safe for concurrent use.
type Sink interface {
	Append(ctx context.Context, record audit.Record) error
}

// MemorySink keeps records in process memory. It backs AUDIT_DRIVER=memory
// and the package tests.
type MemorySink struct {
	mu      sync.Mutex
	records []audit.Record
}

func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

func (s *MemorySink) Append(ctx context.Context, record audit.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, record)
	return nil
}

// Records returns a copy of everything appended so far, oldest first.
func (s *MemorySink) Records() []audit.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]audit.Record, len(s.records))
	copy(out, s.records)
	return out
}

func (s *MemorySink) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

func (s *MemorySink) Ping(ctx context.Context) error {
	return ctx.Err()
}
