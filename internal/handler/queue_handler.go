package handler

import (
	"net/http"

	"storefront-events/internal/domain/notification"
	"storefront-events/internal/queue"
	"storefront-events/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
)

type QueueHandler struct {
	port queue.Port
}

func NewQueueHandler(port queue.Port) *QueueHandler {
	return &QueueHandler{port: port}
}

// List reports every worker queue, with its depth when the driver can tell.
func (h *QueueHandler) List(c *gin.Context) {
	reporter, canReport := h.port.(queue.DepthReporter)

	out := make([]httpdto.QueueStatus, 0, len(notification.Queues()))
	for _, name := range notification.Queues() {
		status := httpdto.QueueStatus{Name: name}
		if canReport {
			depth, err := reporter.Depth(c.Request.Context(), name)
			if err != nil {
				status.Error = err.Error()
			} else {
				status.Depth = &depth
			}
		}
		out = append(out, status)
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(out))
}
