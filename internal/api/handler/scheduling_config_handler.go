package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jdu211171/schedule-website-sub007/pkg/response"

	"github.com/jdu211171/schedule-website-sub007/internal/dto"
	"github.com/jdu211171/schedule-website-sub007/internal/model"
	"github.com/jdu211171/schedule-website-sub007/internal/service"
)

// SchedulingConfigHandler serves the policy endpoints.
type SchedulingConfigHandler struct {
	svc *service.Service
	log *zap.Logger
}

// NewSchedulingConfigHandler builds the handler.
func NewSchedulingConfigHandler(svc *service.Service, log *zap.Logger) *SchedulingConfigHandler {
	return &SchedulingConfigHandler{svc: svc, log: log}
}

// GetEffective handles GET /scheduling-config/effective. It resolves the
// policy for a branch, optionally with a series override layered on top.
func (h *SchedulingConfigHandler) GetEffective(c *gin.Context) {
	branchID := c.Query("branch_id")
	if branchID == "" {
		response.BadRequest(c, 40000, "branch_id is required")
		return
	}

	var seriesOverride *model.ConflictPolicy
	var seriesID *string
	if id := c.Query("series_id"); id != "" {
		series, err := h.svc.ClassSeries.Get(c.Request.Context(), id)
		if err != nil {
			writeServiceError(c, h.log, err)
			return
		}
		seriesOverride = series.ConflictPolicy
		seriesID = &id
	}

	cfg, warnings, err := h.svc.Policy.Resolve(c.Request.Context(), branchID, seriesOverride)
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}

	response.OK(c, &dto.EffectiveConfigResponse{
		BranchID:                        branchID,
		SeriesID:                        seriesID,
		MarkAsConflicted:                cfg.MarkAsConflicted,
		AllowOutsideAvailabilityTeacher: cfg.AllowOutsideAvailabilityTeacher,
		AllowOutsideAvailabilityStudent: cfg.AllowOutsideAvailabilityStudent,
		GenerationMonths:                cfg.GenerationMonths,
		Warnings:                        warnings,
	})
}

// UpdateBranchPolicy handles PUT /scheduling-config/branch/:id.
func (h *SchedulingConfigHandler) UpdateBranchPolicy(c *gin.Context) {
	var req dto.UpdateBranchPolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 40000, "invalid request body: "+err.Error())
		return
	}

	merged, err := h.svc.Policy.UpsertBranchPolicy(c.Request.Context(), c.Param("id"), &req.Policy)
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	response.OK(c, merged)
}
