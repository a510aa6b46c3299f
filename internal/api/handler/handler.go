package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apperrors "github.com/jdu211171/schedule-website-sub007/pkg/errors"
	"github.com/jdu211171/schedule-website-sub007/pkg/response"

	"github.com/jdu211171/schedule-website-sub007/internal/service"
)

// Handler aggregates all HTTP handlers for injection.
type Handler struct {
	ClassSeries      *ClassSeriesHandler
	ClassSession     *ClassSessionHandler
	SchedulingConfig *SchedulingConfigHandler
	Availability     *AvailabilityHandler
	Generation       *GenerationHandler
	Notification     *NotificationHandler
}

// NewHandler wires all handlers.
func NewHandler(svc *service.Service, log *zap.Logger) *Handler {
	return &Handler{
		ClassSeries:      NewClassSeriesHandler(svc, log),
		ClassSession:     NewClassSessionHandler(svc, log),
		SchedulingConfig: NewSchedulingConfigHandler(svc, log),
		Availability:     NewAvailabilityHandler(svc, log),
		Generation:       NewGenerationHandler(svc, log),
		Notification:     NewNotificationHandler(svc, log),
	}
}

// writeServiceError maps service errors onto the response envelope.
func writeServiceError(c *gin.Context, log *zap.Logger, err error) {
	switch {
	case errors.Is(err, service.ErrSeriesNotFound),
		errors.Is(err, service.ErrSessionNotFound):
		response.NotFound(c, 40400, err.Error())
	case errors.Is(err, apperrors.ErrOptimisticLock):
		response.Error(c, 409, 40900, err.Error())
	case errors.Is(err, service.ErrSeriesNotActive),
		errors.Is(err, service.ErrSeriesAlreadyEnded),
		errors.Is(err, service.ErrEmptyDaysOfWeek),
		errors.Is(err, service.ErrInvalidDaysOfWeek),
		errors.Is(err, service.ErrInvalidTimeWindow),
		errors.Is(err, service.ErrInvalidDateRange),
		errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, service.ErrInvalidUserType),
		errors.Is(err, service.ErrInvalidSlot),
		errors.Is(err, service.ErrSessionNotCancelled),
		errors.Is(err, service.ErrSessionCancelled):
		response.BadRequest(c, 40000, err.Error())
	default:
		log.Error("request failed", zap.Error(err))
		response.InternalError(c)
	}
}
