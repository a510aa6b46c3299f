package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jdu211171/schedule-website-sub007/pkg/response"

	"github.com/jdu211171/schedule-website-sub007/internal/dto"
	"github.com/jdu211171/schedule-website-sub007/internal/service"
)

// ClassSeriesHandler serves the class-series endpoints.
type ClassSeriesHandler struct {
	svc *service.Service
	log *zap.Logger
}

// NewClassSeriesHandler builds the handler.
func NewClassSeriesHandler(svc *service.Service, log *zap.Logger) *ClassSeriesHandler {
	return &ClassSeriesHandler{svc: svc, log: log}
}

// Create handles POST /class-series.
func (h *ClassSeriesHandler) Create(c *gin.Context) {
	var req dto.CreateClassSeriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 40000, "invalid request body: "+err.Error())
		return
	}

	series, err := h.svc.ClassSeries.Create(c.Request.Context(), &req)
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	response.Created(c, dto.NewClassSeriesResponse(series))
}

// Get handles GET /class-series/:id.
func (h *ClassSeriesHandler) Get(c *gin.Context) {
	series, err := h.svc.ClassSeries.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	response.OK(c, dto.NewClassSeriesResponse(series))
}

// List handles GET /class-series.
func (h *ClassSeriesHandler) List(c *gin.Context) {
	var req dto.ListClassSeriesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 40000, "invalid query: "+err.Error())
		return
	}

	list, total, err := h.svc.ClassSeries.List(c.Request.Context(), &req)
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}

	items := make([]*dto.ClassSeriesResponse, len(list))
	for i := range list {
		items[i] = dto.NewClassSeriesResponse(&list[i])
	}
	response.OKPage(c, items, total, req.GetPage(), req.GetPageSize())
}

// Update handles PUT /class-series/:id.
func (h *ClassSeriesHandler) Update(c *gin.Context) {
	var req dto.UpdateClassSeriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 40000, "invalid request body: "+err.Error())
		return
	}

	series, err := h.svc.ClassSeries.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	response.OK(c, dto.NewClassSeriesResponse(series))
}

// UpdateStatus handles PUT /class-series/:id/status.
func (h *ClassSeriesHandler) UpdateStatus(c *gin.Context) {
	var req dto.UpdateSeriesStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 40000, "invalid request body: "+err.Error())
		return
	}

	series, err := h.svc.ClassSeries.UpdateStatus(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	response.OK(c, dto.NewClassSeriesResponse(series))
}

// UpdatePolicy handles PUT /class-series/:id/policy.
func (h *ClassSeriesHandler) UpdatePolicy(c *gin.Context) {
	var req dto.UpdateSeriesPolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 40000, "invalid request body: "+err.Error())
		return
	}

	series, err := h.svc.ClassSeries.UpdatePolicy(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	response.OK(c, dto.NewClassSeriesResponse(series))
}

// Generate handles POST /class-series/:id/generate.
func (h *ClassSeriesHandler) Generate(c *gin.Context) {
	opts, ok := parseGenerateOptions(c)
	if !ok {
		return
	}

	result, err := h.svc.Generation.AdvanceSeries(c.Request.Context(), c.Param("id"), opts)
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	response.OK(c, result)
}
