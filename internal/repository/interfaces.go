package repository

import (
	"context"

	"storefront-events/internal/domain/audit"
)

// AuditRepository is the Postgres-backed audit sink. There is deliberately no
// update or delete path.
type AuditRepository interface {
	Append(ctx context.Context, record audit.Record) error
	CountByPartition(ctx context.Context, partitionKey string) (int64, error)
	Ping(ctx context.Context) error
}
