package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/jdu211171/schedule-website-sub007/config"
	"github.com/jdu211171/schedule-website-sub007/pkg/redis"

	"github.com/jdu211171/schedule-website-sub007/internal/model"
	"github.com/jdu211171/schedule-website-sub007/internal/repository"
)

// Service aggregates all business services for injection.
type Service struct {
	Policy       *PolicyService
	ClassType    *ClassTypeService
	Generation   *GenerationService
	Confirmation *ConfirmationService
	ClassSeries  *ClassSeriesService
	ClassSession *ClassSessionService
	Availability *AvailabilityService
	Notification *NotificationService
}

// NewService wires all services. cache may be nil when Redis is unavailable.
func NewService(cfg *config.Config, repo *repository.Repository, cache *redis.Client, log *zap.Logger) *Service {
	policy := NewPolicyService(repo.SchedulingConfig, cache, log)
	classType := NewClassTypeService(repo.ClassType, cfg.Generation.SpecialClassTypeName, log)
	sink := NewWarningSink(repo.Notification, log)

	return &Service{
		Policy:    policy,
		ClassType: classType,
		Generation: NewGenerationService(
			repo.ClassSeries,
			repo.ClassSession,
			repo.Availability,
			policy,
			classType,
			sink,
			cfg.Generation.MaxSeriesPerRun,
			log,
		),
		Confirmation: NewConfirmationService(repo.ClassSession, log),
		ClassSeries:  NewClassSeriesService(repo.ClassSeries, policy, log),
		ClassSession: NewClassSessionService(repo.ClassSession, repo.Availability, policy, log),
		Availability: NewAvailabilityService(repo.Availability, log),
		Notification: NewNotificationService(repo.Notification, log),
	}
}

// NotificationService exposes the in-app notification feed.
type NotificationService struct {
	notifications repository.NotificationRepository
	log           *zap.Logger
}

// NewNotificationService wires the notification service.
func NewNotificationService(notifications repository.NotificationRepository, log *zap.Logger) *NotificationService {
	return &NotificationService{notifications: notifications, log: log}
}

// List returns notifications for a user, newest first.
func (s *NotificationService) List(ctx context.Context, userID string, unreadOnly bool, offset, limit int) ([]model.Notification, int64, error) {
	return s.notifications.List(ctx, userID, unreadOnly, offset, limit)
}

// MarkRead flags one notification as read.
func (s *NotificationService) MarkRead(ctx context.Context, id string) error {
	return s.notifications.MarkRead(ctx, id)
}
