package handler

import (
	"net/http"

	"storefront-events/internal/domain/notification"
	"storefront-events/internal/services"
	"storefront-events/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
)

// NotificationHandler is the HTTP surface producers call after their write
// has committed. It answers 202 once the request is valid; enqueue failures
// are absorbed by the Notifier.
type NotificationHandler struct {
	notifier *services.Notifier
}

func NewNotificationHandler(notifier *services.Notifier) *NotificationHandler {
	return &NotificationHandler{notifier: notifier}
}

func (h *NotificationHandler) OrderPlaced(c *gin.Context) {
	var req httpdto.OrderNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", "INVALID_REQUEST"))
		return
	}
	h.notifier.OrderPlaced(c.Request.Context(), req.ToEvent())
	accepted(c, notification.QueueOrderNotifications, req.OrderID)
}

func (h *NotificationHandler) OrderStatusChanged(c *gin.Context) {
	var req httpdto.OrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", "INVALID_REQUEST"))
		return
	}
	h.notifier.OrderStatusChanged(c.Request.Context(), req.ToEvent(), req.PreviousStatus, req.NewStatus)
	accepted(c, notification.QueueOrderNotifications, req.OrderID)
}

func (h *NotificationHandler) OrderDeleted(c *gin.Context) {
	var req httpdto.OrderNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", "INVALID_REQUEST"))
		return
	}
	h.notifier.OrderDeleted(c.Request.Context(), req.ToEvent())
	accepted(c, notification.QueueOrderNotifications, req.OrderID)
}

func (h *NotificationHandler) StockChanged(c *gin.Context) {
	var req httpdto.StockNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", "INVALID_REQUEST"))
		return
	}
	h.notifier.StockChanged(c.Request.Context(), req.ToEvent())
	accepted(c, notification.QueueStockUpdates, req.ProductID)
}

func (h *NotificationHandler) ImageUploaded(c *gin.Context) {
	var req httpdto.ImageNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", "INVALID_REQUEST"))
		return
	}
	h.notifier.ImageUploaded(c.Request.Context(), req.ToEvent())
	accepted(c, notification.QueueImageProcessing, req.ProductID)
}

func accepted(c *gin.Context, queueName, entityID string) {
	c.JSON(http.StatusAccepted, httpdto.NewSuccessResponse(httpdto.AcceptedResponse{
		Queue:    queueName,
		EntityID: entityID,
	}))
}
