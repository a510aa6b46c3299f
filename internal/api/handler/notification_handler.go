package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jdu211171/schedule-website-sub007/pkg/response"

	"github.com/jdu211171/schedule-website-sub007/internal/dto"
	"github.com/jdu211171/schedule-website-sub007/internal/service"
)

// NotificationHandler serves the notification feed.
type NotificationHandler struct {
	svc *service.Service
	log *zap.Logger
}

// NewNotificationHandler builds the handler.
func NewNotificationHandler(svc *service.Service, log *zap.Logger) *NotificationHandler {
	return &NotificationHandler{svc: svc, log: log}
}

// List handles GET /notifications.
func (h *NotificationHandler) List(c *gin.Context) {
	var page dto.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		response.BadRequest(c, 40000, "invalid query: "+err.Error())
		return
	}
	unreadOnly := c.Query("unread_only") == "true"

	list, total, err := h.svc.Notification.List(
		c.Request.Context(),
		c.Query("user_id"),
		unreadOnly,
		page.GetOffset(),
		page.GetPageSize(),
	)
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	response.OKPage(c, list, total, page.GetPage(), page.GetPageSize())
}

// MarkRead handles POST /notifications/:id/read.
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	if err := h.svc.Notification.MarkRead(c.Request.Context(), c.Param("id")); err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	response.OK(c, nil)
}
