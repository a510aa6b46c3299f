package handler

import (
	"io"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jdu211171/schedule-website-sub007/pkg/response"

	"github.com/jdu211171/schedule-website-sub007/internal/dto"
	"github.com/jdu211171/schedule-website-sub007/internal/service"
)

// maxICSSize bounds uploaded calendar files.
const maxICSSize = 1 << 20

// AvailabilityHandler serves the weekly-availability endpoints.
type AvailabilityHandler struct {
	svc *service.Service
	log *zap.Logger
}

// NewAvailabilityHandler builds the handler.
func NewAvailabilityHandler(svc *service.Service, log *zap.Logger) *AvailabilityHandler {
	return &AvailabilityHandler{svc: svc, log: log}
}

// List handles GET /availability.
func (h *AvailabilityHandler) List(c *gin.Context) {
	userID := c.Query("user_id")
	userType := c.Query("user_type")
	if userID == "" || userType == "" {
		response.BadRequest(c, 40000, "user_id and user_type are required")
		return
	}

	list, err := h.svc.Availability.ListByUser(c.Request.Context(), userID, userType)
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}

	items := make([]*dto.AvailabilityResponse, len(list))
	for i := range list {
		items[i] = dto.NewAvailabilityResponse(&list[i])
	}
	response.OK(c, items)
}

// Replace handles PUT /availability.
func (h *AvailabilityHandler) Replace(c *gin.Context) {
	var req dto.ReplaceAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 40000, "invalid request body: "+err.Error())
		return
	}

	rows, err := h.svc.Availability.Replace(c.Request.Context(), &req)
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}

	items := make([]*dto.AvailabilityResponse, len(rows))
	for i := range rows {
		items[i] = dto.NewAvailabilityResponse(&rows[i])
	}
	response.OK(c, items)
}

// ImportICS handles POST /availability/import-ics. The body is the raw
// iCalendar file.
func (h *AvailabilityHandler) ImportICS(c *gin.Context) {
	userID := c.Query("user_id")
	userType := c.Query("user_type")
	if userID == "" || userType == "" {
		response.BadRequest(c, 40000, "user_id and user_type are required")
		return
	}

	data, err := io.ReadAll(io.LimitReader(c.Request.Body, maxICSSize))
	if err != nil {
		response.BadRequest(c, 40000, "read request body: "+err.Error())
		return
	}
	if len(data) == 0 {
		response.BadRequest(c, 40000, "request body is empty")
		return
	}

	rows, err := h.svc.Availability.ImportICS(c.Request.Context(), userID, userType, data)
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}

	items := make([]*dto.AvailabilityResponse, len(rows))
	for i := range rows {
		items[i] = dto.NewAvailabilityResponse(&rows[i])
	}
	response.OK(c, items)
}
