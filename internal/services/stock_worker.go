package services

import (
	"context"
	"fmt"

	"storefront-events/internal/auditlog"
	"storefront-events/internal/domain/audit"
	"storefront-events/internal/domain/notification"
	"storefront-events/internal/queue"
	"storefront-events/internal/worker"
	"storefront-events/pkg/logger"

	"go.uber.org/zap"
)

const DefaultLowStockThreshold = 10

type stockDetails struct {
	notification.StockEvent
	LowStock  bool `json:"lowStock"`
	Threshold int  `json:"threshold"`
}

type stockHandlers struct {
	log       *logger.Logger
	threshold int
}

func NewStockWorker(s WorkerSettings, port queue.Port, sink auditlog.Sink, log *logger.Logger) (*worker.Worker[notification.StockEvent], error) {
	if log == nil {
		log = logger.NewNop()
	}
	threshold := s.LowStockThreshold
	if threshold <= 0 {
		threshold = DefaultLowStockThreshold
	}
	h := &stockHandlers{
		log:       log.With(zap.String("component", "stock_worker")),
		threshold: threshold,
	}

	return worker.New(worker.Config[notification.StockEvent]{
		Name:            "stock_worker",
		QueueName:       notification.QueueStockUpdates,
		PartitionKey:    audit.PartitionStockAudit,
		IdleInterval:    s.StockIdleInterval,
		BackoffInterval: s.StockBackoffInterval,
		Kind:            func(e notification.StockEvent) string { return string(e.Movement()) },
		Entity:          func(e notification.StockEvent) (string, string) { return e.ProductID, e.ProductName },
		Handlers: map[string]worker.HandlerFunc[notification.StockEvent]{
			string(notification.StockRestocked): h.handle,
			string(notification.StockDepleted):  h.handle,
			string(notification.StockUnchanged): h.handle,
		},
		Sleep:         s.Sleep,
		OnStateChange: s.onStateChange("stock_worker", log),
	}, port, sink, log)
}

// handle applies the alerting rules. The stock levels are what the producer
// saw at enqueue time and are not re-read.
func (h *stockHandlers) handle(ctx context.Context, e notification.StockEvent) (worker.Outcome, error) {
	fields := []zap.Field{
		zap.String("product_id", e.ProductID),
		zap.String("product_name", e.ProductName),
		zap.Int("previous_stock", e.PreviousStock),
		zap.Int("new_stock", e.NewStock),
	}
	h.log.Info("stock update", fields...)

	low := e.NewStock < h.threshold
	if low {
		h.log.Warn(fmt.Sprintf("LOW STOCK ALERT: %s has only %d units remaining", e.ProductName, e.NewStock), fields...)
	}
	if e.NewStock > e.PreviousStock {
		h.log.Info(fmt.Sprintf("%s restocked by %d units", e.ProductName, e.NewStock-e.PreviousStock), fields...)
	}

	movement := e.Movement()
	return worker.Outcome{
		Action:  string(movement),
		Message: fmt.Sprintf("%s stock %d -> %d", e.ProductName, e.PreviousStock, e.NewStock),
		Details: stockDetails{StockEvent: e, LowStock: low, Threshold: h.threshold},
	}, nil
}
