package repository

import (
	"context"
	"fmt"
)

// InitSchema creates the audit table and its indexes. Every statement is
// idempotent so it can run on each deploy.
func InitSchema(ctx context.Context, db DBTX) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS audit_records (
			row_key       UUID PRIMARY KEY,
			partition_key VARCHAR(32)  NOT NULL,
			entity_id     VARCHAR(64)  NOT NULL,
			entity_name   VARCHAR(255) NOT NULL DEFAULT '',
			action        VARCHAR(64)  NOT NULL,
			status        VARCHAR(32)  NOT NULL,
			message       TEXT         NOT NULL DEFAULT '',
			details       JSONB,
			processed_at  TIMESTAMPTZ  NOT NULL DEFAULT now()
		);`,
		`CREATE INDEX IF NOT EXISTS idx_audit_records_partition_processed
			ON audit_records (partition_key, processed_at DESC);`,
		`CREATE INDEX IF NOT EXISTS idx_audit_records_entity
			ON audit_records (entity_id);`,
	}

	return WithTx(ctx, db, func(tx DBTX) error {
		for _, stmt := range statements {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("failed to apply audit schema: %w", err)
			}
		}
		return nil
	})
}

// DropSchema removes the audit table. Only the migrate CLI calls this.
func DropSchema(ctx context.Context, db DBTX) error {
	if _, err := db.ExecContext(ctx, `DROP TABLE IF EXISTS audit_records;`); err != nil {
		return fmt.Errorf("failed to drop audit schema: %w", err)
	}
	return nil
}
