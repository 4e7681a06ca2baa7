package notification

import "strings"

// StockEvent reports a product stock level change. Both levels are observed
// by the producer at enqueue time; the primary store may have moved on by the
// time a worker reads the event.
type StockEvent struct {
	ProductID     string    `json:"productId"`
	ProductName   string    `json:"productName"`
	PreviousStock int       `json:"previousStock"`
	NewStock      int       `json:"newStock"`
	UpdatedBy     string    `json:"updatedBy"`
	UpdateDate    Timestamp `json:"updateDate"`
}

type StockMovement string

const (
	StockRestocked StockMovement = "Restocked"
	StockDepleted  StockMovement = "Depleted"
	StockUnchanged StockMovement = "Unchanged"
)

func (e StockEvent) Validate() error {
	if strings.TrimSpace(e.ProductID) == "" {
		return invalid("productId is required")
	}
	if e.PreviousStock < 0 {
		return invalid("previousStock must be non-negative, got %d", e.PreviousStock)
	}
	if e.NewStock < 0 {
		return invalid("newStock must be non-negative, got %d", e.NewStock)
	}
	return nil
}

func (e StockEvent) Movement() StockMovement {
	switch {
	case e.NewStock > e.PreviousStock:
		return StockRestocked
	case e.NewStock < e.PreviousStock:
		return StockDepleted
	default:
		return StockUnchanged
	}
}
