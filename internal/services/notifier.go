package services

import (
	"context"
	"time"

	"storefront-events/internal/domain/notification"
	"storefront-events/internal/queue"
	"storefront-events/pkg/logger"

	"go.uber.org/zap"
)

const defaultEnqueueTimeout = 3 * time.Second

// Notifier pushes storefront changes onto the worker queues. Call it only
// after the primary-store write has committed. Publishing is best effort: a
// failed enqueue is logged and dropped, it never undoes the write and never
// reaches the caller.
type Notifier struct {
	port           queue.Port
	log            *logger.Logger
	clock          func() time.Time
	enqueueTimeout time.Duration
}

func NewNotifier(port queue.Port, log *logger.Logger) *Notifier {
	if log == nil {
		log = logger.NewNop()
	}
	return &Notifier{
		port:           port,
		log:            log.With(zap.String("component", "notifier")),
		clock:          time.Now,
		enqueueTimeout: defaultEnqueueTimeout,
	}
}

// OrderPlaced publishes a newly created order with status Submitted.
func (n *Notifier) OrderPlaced(ctx context.Context, e notification.OrderEvent) {
	e.Status = notification.OrderSubmitted
	e.PreviousStatus, e.NewStatus = "", ""
	n.stampOrder(&e)
	n.publish(ctx, notification.QueueOrderNotifications, e, e.OrderID)
}

// OrderStatusChanged publishes a status transition. The event status is set
// to next.
func (n *Notifier) OrderStatusChanged(ctx context.Context, e notification.OrderEvent, previous, next notification.OrderStatus) {
	e.Status = next
	e.PreviousStatus = previous
	e.NewStatus = next
	n.stampOrder(&e)
	n.publish(ctx, notification.QueueOrderNotifications, e, e.OrderID)
}

func (n *Notifier) OrderDeleted(ctx context.Context, e notification.OrderEvent) {
	e.Status = notification.OrderDeleted
	e.PreviousStatus, e.NewStatus = "", ""
	n.stampOrder(&e)
	n.publish(ctx, notification.QueueOrderNotifications, e, e.OrderID)
}

// StockChanged publishes whatever levels the caller observed. Whether the
// stock actually moved is the caller's decision.
func (n *Notifier) StockChanged(ctx context.Context, e notification.StockEvent) {
	if e.UpdateDate.IsZero() {
		e.UpdateDate = notification.NewTimestamp(n.clock())
	}
	if e.UpdatedBy == "" {
		e.UpdatedBy = "System"
	}
	n.publish(ctx, notification.QueueStockUpdates, e, e.ProductID)
}

func (n *Notifier) ImageUploaded(ctx context.Context, e notification.ImageEvent) {
	if e.Action == "" {
		e.Action = notification.ImageCreate
	}
	if e.ProcessTime.IsZero() {
		e.ProcessTime = notification.NewTimestamp(n.clock())
	}
	n.publish(ctx, notification.QueueImageProcessing, e, e.ProductID)
}

func (n *Notifier) stampOrder(e *notification.OrderEvent) {
	if e.OrderDate.IsZero() {
		e.OrderDate = notification.NewTimestamp(n.clock())
	}
}

func (n *Notifier) publish(ctx context.Context, queueName string, e notification.Envelope, entityID string) {
	log := n.log.WithContext(ctx).With(zap.String("queue", queueName), zap.String("entity_id", entityID))

	if err := e.Validate(); err != nil {
		log.Error("refusing to enqueue invalid envelope", zap.Error(err))
		return
	}
	payload, err := notification.Encode(e)
	if err != nil {
		log.Error("failed to encode envelope", zap.Error(err))
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), n.enqueueTimeout)
	defer cancel()
	if err := n.port.Enqueue(ctx, queueName, payload); err != nil {
		log.Error("failed to enqueue notification", zap.Error(err))
		return
	}
	log.Debug("notification enqueued")
}
