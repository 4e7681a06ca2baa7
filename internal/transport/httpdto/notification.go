package httpdto

import (
	"time"

	"storefront-events/internal/domain/notification"
)

type OrderNotificationRequest struct {
	OrderID      string     `json:"orderId" binding:"required"`
	CustomerID   string     `json:"customerId"`
	CustomerName string     `json:"customerName"`
	ProductName  string     `json:"productName"`
	Quantity     int        `json:"quantity" binding:"gte=0"`
	TotalPrice   float64    `json:"totalPrice" binding:"gte=0"`
	OrderDate    *time.Time `json:"orderDate"`
}

func (r OrderNotificationRequest) ToEvent() notification.OrderEvent {
	e := notification.OrderEvent{
		OrderID:      r.OrderID,
		CustomerID:   r.CustomerID,
		CustomerName: r.CustomerName,
		ProductName:  r.ProductName,
		Quantity:     r.Quantity,
		TotalPrice:   r.TotalPrice,
	}
	if r.OrderDate != nil {
		e.OrderDate = notification.NewTimestamp(*r.OrderDate)
	}
	return e
}

type OrderStatusRequest struct {
	OrderNotificationRequest
	PreviousStatus notification.OrderStatus `json:"previousStatus" binding:"required"`
	NewStatus      notification.OrderStatus `json:"newStatus" binding:"required"`
}

type StockNotificationRequest struct {
	ProductID     string     `json:"productId" binding:"required"`
	ProductName   string     `json:"productName"`
	PreviousStock *int       `json:"previousStock" binding:"required,gte=0"`
	NewStock      *int       `json:"newStock" binding:"required,gte=0"`
	UpdatedBy     string     `json:"updatedBy"`
	UpdateDate    *time.Time `json:"updateDate"`
}

func (r StockNotificationRequest) ToEvent() notification.StockEvent {
	e := notification.StockEvent{
		ProductID:   r.ProductID,
		ProductName: r.ProductName,
		UpdatedBy:   r.UpdatedBy,
	}
	if r.PreviousStock != nil {
		e.PreviousStock = *r.PreviousStock
	}
	if r.NewStock != nil {
		e.NewStock = *r.NewStock
	}
	if r.UpdateDate != nil {
		e.UpdateDate = notification.NewTimestamp(*r.UpdateDate)
	}
	return e
}

type ImageNotificationRequest struct {
	ProductID   string `json:"productId" binding:"required"`
	ProductName string `json:"productName"`
	ImageURL    string `json:"imageUrl" binding:"required,url"`
	Action      string `json:"action" binding:"omitempty,oneof=CREATE UPDATE"`
	FileName    string `json:"fileName"`
	FileSize    int64  `json:"fileSize" binding:"gte=0"`
}

func (r ImageNotificationRequest) ToEvent() notification.ImageEvent {
	return notification.ImageEvent{
		ProductID:   r.ProductID,
		ProductName: r.ProductName,
		ImageURL:    r.ImageURL,
		Action:      notification.ImageAction(r.Action),
		FileName:    r.FileName,
		FileSize:    r.FileSize,
	}
}

// AcceptedResponse is returned for every accepted notification, whether or
// not the enqueue itself succeeded.
type AcceptedResponse struct {
	Queue    string `json:"queue"`
	EntityID string `json:"entityId"`
}

type QueueStatus struct {
	Name  string `json:"name"`
	Depth *int64 `json:"depth,omitempty"`
	Error string `json:"error,omitempty"`
}
