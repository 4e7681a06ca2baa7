package notification

import "strings"

type OrderStatus string

const (
	OrderSubmitted  OrderStatus = "Submitted"
	OrderPending    OrderStatus = "Pending"
	OrderConfirmed  OrderStatus = "Confirmed"
	OrderProcessing OrderStatus = "Processing"
	OrderShipped    OrderStatus = "Shipped"
	OrderDelivered  OrderStatus = "Delivered"
	OrderCompleted  OrderStatus = "Completed"
	OrderCancelled  OrderStatus = "Cancelled"
	OrderRefunded   OrderStatus = "Refunded"
	OrderDeleted    OrderStatus = "Deleted"
)

// OrderEvent is placed on order-notifications whenever an order is created,
// changes status or is deleted. PreviousStatus/NewStatus are only set for
// transition events.
type OrderEvent struct {
	OrderID        string      `json:"orderId"`
	CustomerID     string      `json:"customerId"`
	CustomerName   string      `json:"customerName"`
	ProductName    string      `json:"productName"`
	Quantity       int         `json:"quantity"`
	TotalPrice     float64     `json:"totalPrice"`
	OrderDate      Timestamp   `json:"orderDate"`
	Status         OrderStatus `json:"status"`
	PreviousStatus OrderStatus `json:"previousStatus,omitempty"`
	NewStatus      OrderStatus `json:"newStatus,omitempty"`
}

func (e OrderEvent) Validate() error {
	if strings.TrimSpace(e.OrderID) == "" {
		return invalid("orderId is required")
	}
	if e.Quantity < 0 {
		return invalid("quantity must be non-negative, got %d", e.Quantity)
	}
	if e.TotalPrice < 0 {
		return invalid("totalPrice must be non-negative, got %v", e.TotalPrice)
	}
	return nil
}

// IsTransition reports whether the event carries a status change pair.
func (e OrderEvent) IsTransition() bool {
	return e.PreviousStatus != "" && e.NewStatus != ""
}

// EffectiveStatus is the status an event should be dispatched on. Transition
// events that only carry the previous/new pair dispatch on the new status.
func (e OrderEvent) EffectiveStatus() OrderStatus {
	if e.Status == "" {
		return e.NewStatus
	}
	return e.Status
}
