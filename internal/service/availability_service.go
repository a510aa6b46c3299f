package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jdu211171/schedule-website-sub007/pkg/timeslot"

	"github.com/jdu211171/schedule-website-sub007/internal/dto"
	"github.com/jdu211171/schedule-website-sub007/internal/model"
	"github.com/jdu211171/schedule-website-sub007/internal/repository"
)

var (
	ErrInvalidUserType = errors.New("user_type must be TEACHER or STUDENT")
	ErrInvalidSlot     = errors.New("invalid availability slot")
)

// AvailabilityService manages weekly availability for teachers and students.
type AvailabilityService struct {
	availabilities repository.AvailabilityRepository
	log            *zap.Logger
}

// NewAvailabilityService wires the availability service.
func NewAvailabilityService(availabilities repository.AvailabilityRepository, log *zap.Logger) *AvailabilityService {
	return &AvailabilityService{availabilities: availabilities, log: log}
}

// ListByUser returns a user's weekly availability.
func (s *AvailabilityService) ListByUser(ctx context.Context, userID, userType string) ([]model.Availability, error) {
	if err := validateUserType(userType); err != nil {
		return nil, err
	}
	return s.availabilities.ListByUser(ctx, userID, userType)
}

// Replace swaps a user's whole weekly availability for the given slots.
func (s *AvailabilityService) Replace(ctx context.Context, req *dto.ReplaceAvailabilityRequest) ([]model.Availability, error) {
	if err := validateUserType(req.UserType); err != nil {
		return nil, err
	}

	rows := make([]model.Availability, 0, len(req.Slots))
	for _, slot := range req.Slots {
		if err := validateSlot(slot); err != nil {
			return nil, err
		}
		rows = append(rows, model.Availability{
			BaseModel: model.BaseModel{ID: uuid.NewString()},
			UserID:    req.UserID,
			UserType:  req.UserType,
			DayOfWeek: slot.DayOfWeek,
			StartTime: slot.StartTime,
			EndTime:   slot.EndTime,
		})
	}

	if err := s.availabilities.ReplaceByUser(ctx, req.UserID, req.UserType, rows); err != nil {
		return nil, fmt.Errorf("replace availability: %w", err)
	}

	s.log.Info("availability replaced",
		zap.String("user_id", req.UserID),
		zap.String("user_type", req.UserType),
		zap.Int("slots", len(rows)),
	)
	return rows, nil
}

// ImportICS replaces a user's availability with slots parsed from an
// iCalendar export.
func (s *AvailabilityService) ImportICS(ctx context.Context, userID, userType string, data []byte) ([]model.Availability, error) {
	slots, err := ParseAvailabilityICS(data)
	if err != nil {
		return nil, err
	}
	return s.Replace(ctx, &dto.ReplaceAvailabilityRequest{
		UserID:   userID,
		UserType: userType,
		Slots:    slots,
	})
}

func validateUserType(userType string) error {
	if userType != model.UserTypeTeacher && userType != model.UserTypeStudent {
		return ErrInvalidUserType
	}
	return nil
}

func validateSlot(slot dto.AvailabilitySlot) error {
	if !timeslot.ValidWeekday(slot.DayOfWeek) {
		return fmt.Errorf("%w: day_of_week %d", ErrInvalidSlot, slot.DayOfWeek)
	}
	startMin, err := timeslot.MinuteOfDay(slot.StartTime)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSlot, err)
	}
	endMin, err := timeslot.MinuteOfDay(slot.EndTime)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSlot, err)
	}
	if startMin >= endMin {
		return fmt.Errorf("%w: start_time not before end_time", ErrInvalidSlot)
	}
	return nil
}
