package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/jdu211171/schedule-website-sub007/pkg/timeslot"

	"github.com/jdu211171/schedule-website-sub007/internal/dto"
	"github.com/jdu211171/schedule-website-sub007/internal/model"
	"github.com/jdu211171/schedule-website-sub007/internal/repository"
)

var (
	ErrInvalidDaysOfWeek  = errors.New("days_of_week must contain values 0-6 with no duplicates")
	ErrInvalidTimeWindow  = errors.New("start_time must be before end_time")
	ErrInvalidDateRange   = errors.New("end_date must not be before start_date")
	ErrInvalidStatus      = errors.New("invalid series status")
	ErrSeriesAlreadyEnded = errors.New("an ended series cannot change status")
)

// ClassSeriesService manages recurring class blueprints.
type ClassSeriesService struct {
	series repository.ClassSeriesRepository
	policy *PolicyService
	log    *zap.Logger
}

// NewClassSeriesService wires the series service.
func NewClassSeriesService(series repository.ClassSeriesRepository, policy *PolicyService, log *zap.Logger) *ClassSeriesService {
	return &ClassSeriesService{series: series, policy: policy, log: log}
}

// Create validates and stores a new series.
func (s *ClassSeriesService) Create(ctx context.Context, req *dto.CreateClassSeriesRequest) (*model.ClassSeries, error) {
	if err := validateDaysOfWeek(req.DaysOfWeek); err != nil {
		return nil, err
	}

	startMin, endMin, err := validateTimeWindow(req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	startDate, err := timeslot.ParseDate(req.StartDate)
	if err != nil {
		return nil, fmt.Errorf("start_date: %w", err)
	}

	var endDate *time.Time
	if req.EndDate != nil && *req.EndDate != "" {
		d, err := timeslot.ParseDate(*req.EndDate)
		if err != nil {
			return nil, fmt.Errorf("end_date: %w", err)
		}
		if d.Before(startDate) {
			return nil, ErrInvalidDateRange
		}
		endDate = &d
	}

	duration := endMin - startMin
	series := &model.ClassSeries{
		VersionedModel: model.VersionedModel{
			BaseModel: model.BaseModel{ID: uuid.NewString()},
			Version:   1,
		},
		BranchID:       req.BranchID,
		TeacherID:      req.TeacherID,
		StudentID:      req.StudentID,
		SubjectID:      req.SubjectID,
		ClassTypeID:    req.ClassTypeID,
		BoothID:        req.BoothID,
		Status:         model.SeriesStatusActive,
		StartDate:      startDate,
		EndDate:        endDate,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		DaysOfWeek:     model.IntArray(req.DaysOfWeek),
		Duration:       &duration,
		ConflictPolicy: req.ConflictPolicy,
		Notes:          req.Notes,
	}

	if err := s.series.Create(ctx, series); err != nil {
		return nil, fmt.Errorf("create series: %w", err)
	}

	s.log.Info("class series created",
		zap.String("series_id", series.ID),
		zap.String("branch_id", series.BranchID),
	)
	return series, nil
}

// Get loads one series.
func (s *ClassSeriesService) Get(ctx context.Context, id string) (*model.ClassSeries, error) {
	series, err := s.series.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSeriesNotFound
		}
		return nil, err
	}
	return series, nil
}

// List returns series matching the filter.
func (s *ClassSeriesService) List(ctx context.Context, req *dto.ListClassSeriesRequest) ([]model.ClassSeries, int64, error) {
	return s.series.List(ctx, repository.ClassSeriesFilter{
		BranchID:  req.BranchID,
		TeacherID: req.TeacherID,
		StudentID: req.StudentID,
		Status:    req.Status,
		Offset:    req.GetOffset(),
		Limit:     req.GetPageSize(),
	})
}

// Update applies a partial edit under optimistic lock.
func (s *ClassSeriesService) Update(ctx context.Context, id string, req *dto.UpdateClassSeriesRequest) (*model.ClassSeries, error) {
	series, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	series.Version = req.Version

	if req.TeacherID != nil {
		series.TeacherID = req.TeacherID
	}
	if req.StudentID != nil {
		series.StudentID = req.StudentID
	}
	if req.SubjectID != nil {
		series.SubjectID = req.SubjectID
	}
	if req.ClassTypeID != nil {
		series.ClassTypeID = req.ClassTypeID
	}
	if req.BoothID != nil {
		series.BoothID = req.BoothID
	}
	if req.StartDate != nil {
		d, err := timeslot.ParseDate(*req.StartDate)
		if err != nil {
			return nil, fmt.Errorf("start_date: %w", err)
		}
		series.StartDate = d
	}
	if req.EndDate != nil {
		if *req.EndDate == "" {
			series.EndDate = nil
		} else {
			d, err := timeslot.ParseDate(*req.EndDate)
			if err != nil {
				return nil, fmt.Errorf("end_date: %w", err)
			}
			series.EndDate = &d
		}
	}
	if req.StartTime != nil {
		series.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		series.EndTime = *req.EndTime
	}
	if req.DaysOfWeek != nil {
		if err := validateDaysOfWeek(req.DaysOfWeek); err != nil {
			return nil, err
		}
		series.DaysOfWeek = model.IntArray(req.DaysOfWeek)
	}
	if req.Notes != nil {
		series.Notes = *req.Notes
	}

	startMin, endMin, err := validateTimeWindow(series.StartTime, series.EndTime)
	if err != nil {
		return nil, err
	}
	duration := endMin - startMin
	series.Duration = &duration

	if series.EndDate != nil && series.EndDate.Before(series.StartDate) {
		return nil, ErrInvalidDateRange
	}

	if err := s.series.Update(ctx, series); err != nil {
		return nil, err
	}
	return series, nil
}

// UpdateStatus moves the series through its lifecycle. ENDED is terminal.
func (s *ClassSeriesService) UpdateStatus(ctx context.Context, id string, req *dto.UpdateSeriesStatusRequest) (*model.ClassSeries, error) {
	switch req.Status {
	case model.SeriesStatusActive, model.SeriesStatusPaused, model.SeriesStatusEnded:
	default:
		return nil, ErrInvalidStatus
	}

	series, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if series.Status == model.SeriesStatusEnded {
		return nil, ErrSeriesAlreadyEnded
	}

	series.Version = req.Version
	series.Status = req.Status
	if err := s.series.Update(ctx, series); err != nil {
		return nil, err
	}

	s.log.Info("class series status changed",
		zap.String("series_id", id),
		zap.String("status", req.Status),
	)
	return series, nil
}

// UpdatePolicy replaces the series policy override and optionally saves it
// as the branch default too.
func (s *ClassSeriesService) UpdatePolicy(ctx context.Context, id string, req *dto.UpdateSeriesPolicyRequest) (*model.ClassSeries, error) {
	series, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	series.Version = req.Version
	series.ConflictPolicy = req.Policy
	if err := s.series.Update(ctx, series); err != nil {
		return nil, err
	}

	if req.SaveAsBranchDefault && req.Policy != nil {
		if _, err := s.policy.UpsertBranchPolicy(ctx, series.BranchID, req.Policy); err != nil {
			return nil, fmt.Errorf("save branch default: %w", err)
		}
	}
	return series, nil
}

func validateDaysOfWeek(days []int) error {
	if len(days) == 0 {
		return ErrEmptyDaysOfWeek
	}
	seen := make(map[int]bool, len(days))
	for _, d := range days {
		if !timeslot.ValidWeekday(d) || seen[d] {
			return ErrInvalidDaysOfWeek
		}
		seen[d] = true
	}
	return nil
}

func validateTimeWindow(startTime, endTime string) (int, int, error) {
	startMin, err := timeslot.MinuteOfDay(startTime)
	if err != nil {
		return 0, 0, fmt.Errorf("start_time: %w", err)
	}
	endMin, err := timeslot.MinuteOfDay(endTime)
	if err != nil {
		return 0, 0, fmt.Errorf("end_time: %w", err)
	}
	if startMin >= endMin {
		return 0, 0, ErrInvalidTimeWindow
	}
	return startMin, endMin, nil
}
