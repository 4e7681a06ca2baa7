package services

import (
	"fmt"
	"time"

	"storefront-events/config"
	"storefront-events/internal/auditlog"
	"storefront-events/internal/domain/notification"
	"storefront-events/internal/queue"
	"storefront-events/internal/worker"
	"storefront-events/pkg/logger"

	"go.uber.org/zap"
)

// WorkerSettings holds the timing and threshold knobs for the three workers.
type WorkerSettings struct {
	OrderIdleInterval    time.Duration
	OrderBackoffInterval time.Duration
	StockIdleInterval    time.Duration
	StockBackoffInterval time.Duration
	ImageIdleInterval    time.Duration
	ImageBackoffInterval time.Duration

	OrderProcessingDelay time.Duration
	ImageProcessingDelay time.Duration
	LowStockThreshold    int

	// Sleep overrides the idle/backoff wait. Pause overrides the simulated
	// processing latency. Both default to worker.SleepContext.
	Sleep worker.SleepFunc
	Pause worker.SleepFunc
	// LogStateChanges logs every worker state transition at debug level.
	LogStateChanges bool
}

func DefaultWorkerSettings() WorkerSettings {
	return WorkerSettings{
		OrderIdleInterval:    5 * time.Second,
		OrderBackoffInterval: 10 * time.Second,
		StockIdleInterval:    5 * time.Second,
		StockBackoffInterval: 10 * time.Second,
		ImageIdleInterval:    10 * time.Second,
		ImageBackoffInterval: 15 * time.Second,
		OrderProcessingDelay: time.Second,
		ImageProcessingDelay: 2 * time.Second,
		LowStockThreshold:    DefaultLowStockThreshold,
	}
}

func SettingsFromConfig(cfg *config.Config) WorkerSettings {
	return WorkerSettings{
		OrderIdleInterval:    cfg.OrderIdleInterval,
		OrderBackoffInterval: cfg.OrderBackoffInterval,
		StockIdleInterval:    cfg.StockIdleInterval,
		StockBackoffInterval: cfg.StockBackoffInterval,
		ImageIdleInterval:    cfg.ImageIdleInterval,
		ImageBackoffInterval: cfg.ImageBackoffInterval,
		OrderProcessingDelay: cfg.OrderProcessingDelay,
		ImageProcessingDelay: cfg.ImageProcessingDelay,
		LowStockThreshold:    cfg.LowStockThreshold,
		LogStateChanges:      cfg.AppMode != "release",
	}
}

func (s WorkerSettings) pause() worker.SleepFunc {
	if s.Pause != nil {
		return s.Pause
	}
	return worker.SleepContext
}

func (s WorkerSettings) onStateChange(name string, log *logger.Logger) func(worker.State) {
	if !s.LogStateChanges || log == nil {
		return nil
	}
	l := log.With(zap.String("worker", name))
	return func(st worker.State) {
		l.Debug("worker state changed", zap.Stringer("state", st))
	}
}

type Workers struct {
	Order *worker.Worker[notification.OrderEvent]
	Stock *worker.Worker[notification.StockEvent]
	Image *worker.Worker[notification.ImageEvent]
}

// Tasks lists the workers in startup order.
func (w *Workers) Tasks() []worker.Task {
	return []worker.Task{w.Order, w.Stock, w.Image}
}

func BuildWorkers(s WorkerSettings, port queue.Port, sink auditlog.Sink, inspector ImageInspector, log *logger.Logger) (*Workers, error) {
	order, err := NewOrderWorker(s, port, sink, log)
	if err != nil {
		return nil, fmt.Errorf("order worker: %w", err)
	}
	stock, err := NewStockWorker(s, port, sink, log)
	if err != nil {
		return nil, fmt.Errorf("stock worker: %w", err)
	}
	image, err := NewImageWorker(s, port, sink, inspector, log)
	if err != nil {
		return nil, fmt.Errorf("image worker: %w", err)
	}
	return &Workers{Order: order, Stock: stock, Image: image}, nil
}
