package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jdu211171/schedule-website-sub007/pkg/response"

	"github.com/jdu211171/schedule-website-sub007/internal/service"
)

// GenerationHandler serves the generation trigger endpoints.
type GenerationHandler struct {
	svc *service.Service
	log *zap.Logger
}

// NewGenerationHandler builds the handler.
func NewGenerationHandler(svc *service.Service, log *zap.Logger) *GenerationHandler {
	return &GenerationHandler{svc: svc, log: log}
}

// parseGenerateOptions reads the trigger query parameters. On a bad value it
// writes the error response and returns ok=false.
func parseGenerateOptions(c *gin.Context) (service.GenerateOptions, bool) {
	var opts service.GenerateOptions

	if v := c.Query("lead_days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			response.BadRequest(c, 40000, "lead_days must be a positive integer")
			return opts, false
		}
		opts.LeadDays = n
	}
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			response.BadRequest(c, 40000, "limit must be a positive integer")
			return opts, false
		}
		opts.Limit = n
	}
	if v := c.Query("branch_id"); v != "" {
		opts.BranchID = &v
	}
	if v := c.Query("series_id"); v != "" {
		opts.SeriesID = &v
	}
	return opts, true
}

// Trigger handles POST /cron/generate: the external scheduler's entry point
// for advancing all active series.
func (h *GenerationHandler) Trigger(c *gin.Context) {
	opts, ok := parseGenerateOptions(c)
	if !ok {
		return
	}

	summary, err := h.svc.Generation.GenerateForActiveSeries(c.Request.Context(), opts)
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	response.OK(c, summary)
}
