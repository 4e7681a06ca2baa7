package services

import (
	"context"
	"fmt"
	"time"

	"storefront-events/internal/auditlog"
	"storefront-events/internal/domain/audit"
	"storefront-events/internal/domain/notification"
	"storefront-events/internal/queue"
	"storefront-events/internal/storage"
	"storefront-events/internal/worker"
	"storefront-events/pkg/logger"

	"go.uber.org/zap"
)

// ImageInspector looks up the stored object behind an image URL.
// *storage.Client satisfies it.
type ImageInspector interface {
	HeadImage(ctx context.Context, imageURL string) (storage.ObjectInfo, error)
}

var _ ImageInspector = (*storage.Client)(nil)

type imageDetails struct {
	notification.ImageEvent
	ContentType string `json:"contentType,omitempty"`
	StoredSize  int64  `json:"storedSize,omitempty"`
	ETag        string `json:"etag,omitempty"`
}

type imageHandlers struct {
	log       *logger.Logger
	delay     time.Duration
	pause     worker.SleepFunc
	inspector ImageInspector
}

// NewImageWorker builds the image-processing consumer. inspector may be nil,
// in which case objects are not looked up.
func NewImageWorker(s WorkerSettings, port queue.Port, sink auditlog.Sink, inspector ImageInspector, log *logger.Logger) (*worker.Worker[notification.ImageEvent], error) {
	if log == nil {
		log = logger.NewNop()
	}
	h := &imageHandlers{
		log:       log.With(zap.String("component", "image_worker")),
		delay:     s.ImageProcessingDelay,
		pause:     s.pause(),
		inspector: inspector,
	}

	return worker.New(worker.Config[notification.ImageEvent]{
		Name:            "image_worker",
		QueueName:       notification.QueueImageProcessing,
		PartitionKey:    audit.PartitionImageProcess,
		IdleInterval:    s.ImageIdleInterval,
		BackoffInterval: s.ImageBackoffInterval,
		Kind:            func(e notification.ImageEvent) string { return string(e.Action) },
		Entity:          func(e notification.ImageEvent) (string, string) { return e.ProductID, e.ProductName },
		Handlers: map[string]worker.HandlerFunc[notification.ImageEvent]{
			string(notification.ImageCreate): h.handle,
			string(notification.ImageUpdate): h.handle,
		},
		Sleep:         s.Sleep,
		OnStateChange: s.onStateChange("image_worker", log),
	}, port, sink, log)
}

func (h *imageHandlers) handle(ctx context.Context, e notification.ImageEvent) (worker.Outcome, error) {
	log := h.log.With(
		zap.String("product_id", e.ProductID),
		zap.String("product_name", e.ProductName),
		zap.String("action", string(e.Action)))
	log.Info("processing image", zap.String("image_url", e.ImageURL), zap.String("file_name", e.FileName))

	if err := h.pause(ctx, h.delay); err != nil {
		return worker.Outcome{}, err
	}

	details := imageDetails{ImageEvent: e}
	if h.inspector != nil && e.ImageURL != "" {
		info, err := h.inspector.HeadImage(ctx, e.ImageURL)
		if err != nil {
			log.Warn("image lookup failed", zap.Error(err))
		} else {
			details.ContentType = info.ContentType
			details.StoredSize = info.Size
			details.ETag = info.ETag
			if e.FileSize > 0 && info.Size != e.FileSize {
				log.Warn("stored image size differs from upload",
					zap.Int64("file_size", e.FileSize),
					zap.Int64("stored_size", info.Size))
			}
		}
	}

	log.Info("completed image processing")
	return worker.Outcome{
		Action:  string(e.Action),
		Status:  audit.StatusCompleted,
		Message: fmt.Sprintf("Completed image processing for %s", e.ProductName),
		Details: details,
	}, nil
}
