package repository

import (
	"context"
	"fmt"
	"time"

	"storefront-events/internal/domain/audit"
	storefront_errors "storefront-events/pkg/errors"

	"github.com/google/uuid"
)

type auditRepository struct {
	db DBTX
}

func NewAuditRepository(db DBTX) AuditRepository {
	return &auditRepository{db: db}
}

func (r *auditRepository) Append(ctx context.Context, record audit.Record) error {
	if record.RowKey == uuid.Nil {
		record.RowKey = uuid.New()
	}
	if record.ProcessedAt.IsZero() {
		record.ProcessedAt = time.Now().UTC()
	}
	var details interface{}
	if len(record.Details) > 0 {
		details = []byte(record.Details)
	}

	_, err := r.db.ExecContext(ctx, `
        INSERT INTO audit_records (row_key, partition_key, entity_id, entity_name, action, status, message, details, processed_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
    `,
		record.RowKey,
		record.PartitionKey,
		record.EntityID,
		record.EntityName,
		record.Action,
		record.Status,
		record.Message,
		details,
		record.ProcessedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("audit record %s: %w", record.RowKey, storefront_errors.ErrAlreadyExists)
		}
		return fmt.Errorf("insert audit record: %w", err)
	}
	return nil
}

func (r *auditRepository) CountByPartition(ctx context.Context, partitionKey string) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `
        SELECT COUNT(*) FROM audit_records WHERE partition_key = $1
    `, partitionKey).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *auditRepository) Ping(ctx context.Context) error {
	pinger, ok := r.db.(interface {
		PingContext(ctx context.Context) error
	})
	if !ok {
		return nil
	}
	if err := pinger.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %v", storefront_errors.ErrServiceUnavailable, err)
	}
	return nil
}
