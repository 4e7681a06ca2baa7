package audit

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Partition keys, one per queue kind.
const (
	PartitionOrderProcess = "OrderProcess"
	PartitionStockAudit   = "StockAudit"
	PartitionImageProcess = "ImageProcess"
)

const (
	StatusCompleted = "Completed"
	StatusIgnored   = "Ignored"
)

// Record is written once per successfully processed message and never
// updated afterwards.
type Record struct {
	PartitionKey string          `json:"partitionKey"`
	RowKey       uuid.UUID       `json:"rowKey"`
	EntityID     string          `json:"entityId"`
	EntityName   string          `json:"entityName"`
	Action       string          `json:"action"`
	Status       string          `json:"status"`
	Message      string          `json:"message"`
	Details      json.RawMessage `json:"details,omitempty"`
	ProcessedAt  time.Time       `json:"processedAt"`
}
