// Package worker runs the poll-decode-dispatch-audit loop shared by every
// queue consumer.
package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"storefront-events/internal/auditlog"
	"storefront-events/internal/domain/audit"
	"storefront-events/internal/domain/notification"
	"storefront-events/internal/queue"
	storefront_errors "storefront-events/pkg/errors"
	"storefront-events/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	DefaultIdleInterval    = 5 * time.Second
	DefaultBackoffInterval = 10 * time.Second

	appendTimeout = 10 * time.Second
)

// Outcome is what a handler reports back for the audit record.
type Outcome struct {
	// Action defaults to the dispatched kind.
	Action string
	// Status defaults to audit.StatusCompleted.
	Status  string
	Message string
	// Details is marshalled to JSON. Nil leaves the column empty.
	Details any
}

type HandlerFunc[E any] func(ctx context.Context, event E) (Outcome, error)

// SleepFunc blocks for d or until ctx is done, returning ctx.Err() in the
// latter case.
type SleepFunc func(ctx context.Context, d time.Duration) error

type Config[E notification.Envelope] struct {
	Name            string
	QueueName       string
	PartitionKey    string
	IdleInterval    time.Duration
	BackoffInterval time.Duration

	// Decode defaults to notification.Decode[E].
	Decode func(payload []byte) (E, error)
	// Kind selects the handler.
	Kind func(event E) string
	// Entity names the business entity the record is about.
	Entity   func(event E) (id, name string)
	Handlers map[string]HandlerFunc[E]
	// Unhandled runs for kinds missing from Handlers. The default logs a
	// warning and records the message as ignored.
	Unhandled HandlerFunc[E]

	Sleep         SleepFunc
	Now           func() time.Time
	OnStateChange func(State)
}

type Worker[E notification.Envelope] struct {
	cfg   Config[E]
	port  queue.Port
	sink  auditlog.Sink
	log   *logger.Logger
	state atomic.Int32
}

func New[E notification.Envelope](cfg Config[E], port queue.Port, sink auditlog.Sink, log *logger.Logger) (*Worker[E], error) {
	if !notification.IsKnownQueue(cfg.QueueName) {
		return nil, fmt.Errorf("%w: %q", storefront_errors.ErrUnknownQueue, cfg.QueueName)
	}
	if cfg.Kind == nil {
		return nil, fmt.Errorf("worker %s: kind selector is required", cfg.QueueName)
	}
	if port == nil || sink == nil {
		return nil, fmt.Errorf("worker %s: queue and audit sink are required", cfg.QueueName)
	}
	if cfg.Name == "" {
		cfg.Name = cfg.QueueName
	}
	if cfg.IdleInterval <= 0 {
		cfg.IdleInterval = DefaultIdleInterval
	}
	if cfg.BackoffInterval <= 0 {
		cfg.BackoffInterval = DefaultBackoffInterval
	}
	if cfg.Decode == nil {
		cfg.Decode = notification.Decode[E]
	}
	if cfg.Entity == nil {
		cfg.Entity = func(E) (string, string) { return "", "" }
	}
	if cfg.Sleep == nil {
		cfg.Sleep = SleepContext
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if log == nil {
		log = logger.NewNop()
	}

	w := &Worker[E]{
		cfg:  cfg,
		port: port,
		sink: sink,
		log: log.With(
			zap.String("component", "worker"),
			zap.String("worker", cfg.Name),
			zap.String("queue", cfg.QueueName),
		),
	}
	if w.cfg.Unhandled == nil {
		w.cfg.Unhandled = w.ignore
	}
	w.state.Store(int32(Starting))
	return w, nil
}

func (w *Worker[E]) Name() string { return w.cfg.Name }

func (w *Worker[E]) State() State { return State(w.state.Load()) }

func (w *Worker[E]) setState(s State) {
	if State(w.state.Swap(int32(s))) == s {
		return
	}
	if w.cfg.OnStateChange != nil {
		w.cfg.OnStateChange(s)
	}
}

// Run polls until ctx is cancelled. A message already being processed when
// ctx is cancelled is finished before Run returns.
func (w *Worker[E]) Run(ctx context.Context) {
	w.setState(Starting)
	w.log.Info("worker started",
		zap.Duration("idle_interval", w.cfg.IdleInterval),
		zap.Duration("backoff_interval", w.cfg.BackoffInterval))
	defer func() {
		w.setState(Stopped)
		w.log.Info("worker stopped")
	}()

	for {
		if ctx.Err() != nil {
			w.setState(Stopping)
			return
		}
		w.setState(Polling)

		payload, ok, err := w.port.Dequeue(ctx, w.cfg.QueueName)
		if err != nil {
			if ctx.Err() != nil {
				w.setState(Stopping)
				return
			}
			w.log.Error("dequeue failed, backing off", zap.Error(err), zap.Duration("backoff", w.cfg.BackoffInterval))
			if w.cfg.Sleep(ctx, w.cfg.BackoffInterval) != nil {
				w.setState(Stopping)
				return
			}
			continue
		}
		if !ok {
			if w.cfg.Sleep(ctx, w.cfg.IdleInterval) != nil {
				w.setState(Stopping)
				return
			}
			continue
		}

		w.setState(Processing)
		if panicked := w.process(context.WithoutCancel(ctx), payload); panicked {
			if w.cfg.Sleep(ctx, w.cfg.BackoffInterval) != nil {
				w.setState(Stopping)
				return
			}
		}
	}
}

func (w *Worker[E]) process(ctx context.Context, payload string) (panicked bool) {
	defer func() {
		if r := recover(); r != nil {
			w.log.Error("panic while processing message",
				zap.Any("panic", r),
				zap.String("payload", payload),
				zap.Stack("stack"))
			panicked = true
		}
	}()

	event, err := w.cfg.Decode([]byte(payload))
	if err != nil {
		// well-formed JSON that fails validation is kept apart from syntax errors
		if errors.Is(err, storefront_errors.ErrInvalidEnvelope) {
			w.log.Warn("dropping invalid envelope", zap.Error(err), zap.String("payload", payload))
		} else {
			w.log.Error("dropping malformed message", zap.Error(err), zap.String("payload", payload))
		}
		return false
	}

	kind := w.cfg.Kind(event)
	id, name := w.cfg.Entity(event)
	log := w.log.With(zap.String("kind", kind), zap.String("entity_id", id))

	handler, ok := w.cfg.Handlers[kind]
	if !ok {
		handler = w.cfg.Unhandled
	}
	outcome, err := handler(ctx, event)
	if err != nil {
		log.Error("dispatch failed", zap.Error(err))
		return false
	}

	record, err := w.record(kind, id, name, outcome)
	if err != nil {
		log.Error("failed to build audit record", zap.Error(err))
		return false
	}

	appendCtx, cancel := context.WithTimeout(ctx, appendTimeout)
	defer cancel()
	if err := w.sink.Append(appendCtx, record); err != nil {
		log.Error("audit append failed", zap.Error(err), zap.String("row_key", record.RowKey.String()))
		return false
	}
	log.Debug("message processed", zap.String("action", record.Action), zap.String("status", record.Status))
	return false
}

func (w *Worker[E]) record(kind, id, name string, outcome Outcome) (audit.Record, error) {
	r := audit.Record{
		PartitionKey: w.cfg.PartitionKey,
		RowKey:       uuid.New(),
		EntityID:     id,
		EntityName:   name,
		Action:       outcome.Action,
		Status:       outcome.Status,
		Message:      outcome.Message,
		ProcessedAt:  w.cfg.Now().UTC(),
	}
	if r.Action == "" {
		r.Action = kind
	}
	if r.Status == "" {
		r.Status = audit.StatusCompleted
	}
	if outcome.Details != nil {
		details, err := json.Marshal(outcome.Details)
		if err != nil {
			return audit.Record{}, fmt.Errorf("marshal audit details: %w", err)
		}
		r.Details = details
	}
	return r, nil
}

func (w *Worker[E]) ignore(ctx context.Context, event E) (Outcome, error) {
	kind := w.cfg.Kind(event)
	id, _ := w.cfg.Entity(event)
	w.log.Warn("no handler for event kind", zap.String("kind", kind), zap.String("entity_id", id))
	return Outcome{
		Action:  kind,
		Status:  audit.StatusIgnored,
		Message: fmt.Sprintf("no handler for %q", kind),
	}, nil
}

// SleepContext is the default SleepFunc.
func SleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
