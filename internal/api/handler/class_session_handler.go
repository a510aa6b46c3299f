package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jdu211171/schedule-website-sub007/pkg/response"

	"github.com/jdu211171/schedule-website-sub007/internal/dto"
	"github.com/jdu211171/schedule-website-sub007/internal/service"
)

// ClassSessionHandler serves the class-session endpoints.
type ClassSessionHandler struct {
	svc *service.Service
	log *zap.Logger
}

// NewClassSessionHandler builds the handler.
func NewClassSessionHandler(svc *service.Service, log *zap.Logger) *ClassSessionHandler {
	return &ClassSessionHandler{svc: svc, log: log}
}

// List handles GET /class-sessions.
func (h *ClassSessionHandler) List(c *gin.Context) {
	var req dto.ListClassSessionsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 40000, "invalid query: "+err.Error())
		return
	}

	list, total, err := h.svc.ClassSession.List(c.Request.Context(), &req)
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}

	items := make([]*dto.ClassSessionResponse, len(list))
	for i := range list {
		items[i] = dto.NewClassSessionResponse(&list[i])
	}
	response.OKPage(c, items, total, req.GetPage(), req.GetPageSize())
}

// Get handles GET /class-sessions/:id.
func (h *ClassSessionHandler) Get(c *gin.Context) {
	session, err := h.svc.ClassSession.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	response.OK(c, dto.NewClassSessionResponse(session))
}

// Update handles PUT /class-sessions/:id.
func (h *ClassSessionHandler) Update(c *gin.Context) {
	var req dto.UpdateClassSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 40000, "invalid request body: "+err.Error())
		return
	}

	session, err := h.svc.ClassSession.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	response.OK(c, dto.NewClassSessionResponse(session))
}

// Cancel handles POST /class-sessions/:id/cancel.
func (h *ClassSessionHandler) Cancel(c *gin.Context) {
	var req dto.CancelClassSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 40000, "invalid request body: "+err.Error())
		return
	}

	session, err := h.svc.ClassSession.Cancel(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	response.OK(c, dto.NewClassSessionResponse(session))
}

// Reactivate handles POST /class-sessions/:id/reactivate.
func (h *ClassSessionHandler) Reactivate(c *gin.Context) {
	session, err := h.svc.ClassSession.Reactivate(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	response.OK(c, dto.NewClassSessionResponse(session))
}

// Confirm handles POST /class-sessions/confirm: the batch confirmation gate.
func (h *ClassSessionHandler) Confirm(c *gin.Context) {
	var req dto.BatchConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 40000, "invalid request body: "+err.Error())
		return
	}
	if len(req.ClassIDs) == 0 {
		response.BadRequest(c, 40000, "class_ids must not be empty")
		return
	}

	result, err := h.svc.Confirmation.ConfirmSessions(c.Request.Context(), req.ClassIDs, req.BranchID)
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	response.OK(c, result)
}
