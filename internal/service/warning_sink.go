package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jdu211171/schedule-website-sub007/internal/model"
	"github.com/jdu211171/schedule-website-sub007/internal/repository"
)

// WarningSink receives non-fatal problems detected during policy resolution
// and generation so administrators can see them later.
type WarningSink interface {
	Record(ctx context.Context, relatedType, relatedID string, warnings []string)
}

type warningSink struct {
	notifications repository.NotificationRepository
	log           *zap.Logger
}

// NewWarningSink builds a sink that logs warnings and stores them as
// notifications. Notification failures are logged and swallowed; a warning
// must never fail the operation that produced it.
func NewWarningSink(notifications repository.NotificationRepository, log *zap.Logger) WarningSink {
	return &warningSink{notifications: notifications, log: log}
}

func (s *warningSink) Record(ctx context.Context, relatedType, relatedID string, warnings []string) {
	if len(warnings) == 0 {
		return
	}

	s.log.Warn("scheduling warnings",
		zap.String("related_type", relatedType),
		zap.String("related_id", relatedID),
		zap.Strings("warnings", warnings),
	)

	if s.notifications == nil {
		return
	}

	notifType := model.NotificationPolicyWarning
	title := "Scheduling policy warning"
	if relatedType == "class_series" {
		notifType = model.NotificationGenerationProblem
		title = "Class generation problem"
	}

	rt := relatedType
	rid := relatedID
	n := &model.Notification{
		BaseModel:   model.BaseModel{ID: uuid.NewString()},
		Title:       title,
		Content:     strings.Join(warnings, "\n"),
		Type:        notifType,
		RelatedType: &rt,
		RelatedID:   &rid,
	}
	if err := s.notifications.Create(ctx, n); err != nil {
		s.log.Error("store warning notification", zap.Error(err))
	}
}
