package services

import (
	"context"
	"fmt"
	"time"

	"storefront-events/internal/auditlog"
	"storefront-events/internal/domain/audit"
	"storefront-events/internal/domain/notification"
	"storefront-events/internal/queue"
	"storefront-events/internal/worker"
	"storefront-events/pkg/logger"

	"go.uber.org/zap"
)

// orderMessages is the log line written for each known status.
var orderMessages = map[notification.OrderStatus]string{
	notification.OrderSubmitted:  "Order %s submitted by %s",
	notification.OrderPending:    "Order %s is pending confirmation",
	notification.OrderConfirmed:  "Order %s confirmed",
	notification.OrderProcessing: "Order %s is now processing",
	notification.OrderShipped:    "Order %s has shipped",
	notification.OrderDelivered:  "Order %s delivered",
	notification.OrderCompleted:  "Order %s completed successfully",
	notification.OrderCancelled:  "Order %s was cancelled",
	notification.OrderRefunded:   "Order %s was refunded",
	notification.OrderDeleted:    "Order %s was deleted",
}

type orderHandlers struct {
	log   *logger.Logger
	delay time.Duration
	pause worker.SleepFunc
}

func NewOrderWorker(s WorkerSettings, port queue.Port, sink auditlog.Sink, log *logger.Logger) (*worker.Worker[notification.OrderEvent], error) {
	if log == nil {
		log = logger.NewNop()
	}
	h := &orderHandlers{
		log:   log.With(zap.String("component", "order_worker")),
		delay: s.OrderProcessingDelay,
		pause: s.pause(),
	}

	handlers := make(map[string]worker.HandlerFunc[notification.OrderEvent], len(orderMessages))
	for status := range orderMessages {
		handlers[string(status)] = h.handle
	}

	return worker.New(worker.Config[notification.OrderEvent]{
		Name:            "order_worker",
		QueueName:       notification.QueueOrderNotifications,
		PartitionKey:    audit.PartitionOrderProcess,
		IdleInterval:    s.OrderIdleInterval,
		BackoffInterval: s.OrderBackoffInterval,
		Kind:            func(e notification.OrderEvent) string { return string(e.EffectiveStatus()) },
		Entity:          func(e notification.OrderEvent) (string, string) { return e.OrderID, e.CustomerName },
		Handlers:        handlers,
		Sleep:           s.Sleep,
		OnStateChange:   s.onStateChange("order_worker", log),
	}, port, sink, log)
}

// handle logs the status and simulates fulfilment latency. A cancelled order
// does not restore inventory here; that stays with the storefront.
func (h *orderHandlers) handle(ctx context.Context, e notification.OrderEvent) (worker.Outcome, error) {
	status := e.EffectiveStatus()
	h.log.Info("processing order",
		zap.String("order_id", e.OrderID),
		zap.String("status", string(status)))

	var msg string
	if status == notification.OrderSubmitted {
		msg = fmt.Sprintf(orderMessages[status], e.OrderID, e.CustomerName)
	} else {
		msg = fmt.Sprintf(orderMessages[status], e.OrderID)
	}
	if e.IsTransition() {
		msg = fmt.Sprintf("Order %s updated from %s to %s", e.OrderID, e.PreviousStatus, e.NewStatus)
	}
	h.log.Info(msg,
		zap.String("order_id", e.OrderID),
		zap.String("customer_id", e.CustomerID),
		zap.Int("quantity", e.Quantity),
		zap.Float64("total_price", e.TotalPrice))

	if err := h.pause(ctx, h.delay); err != nil {
		return worker.Outcome{}, err
	}

	return worker.Outcome{
		Action:  string(status),
		Message: msg,
		Details: e,
	}, nil
}
