package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/jdu211171/schedule-website-sub007/pkg/timeslot"

	"github.com/jdu211171/schedule-website-sub007/internal/dto"
	"github.com/jdu211171/schedule-website-sub007/internal/model"
	"github.com/jdu211171/schedule-website-sub007/internal/repository"
)

var (
	ErrSessionNotFound     = errors.New("class session not found")
	ErrSessionNotCancelled = errors.New("class session is not cancelled")
	ErrSessionCancelled    = errors.New("class session is cancelled")
)

// ClassSessionService manages individual class occurrences. Edits that move
// a session in time or change its resources re-classify it against the
// effective policy.
type ClassSessionService struct {
	sessions       repository.ClassSessionRepository
	availabilities repository.AvailabilityRepository
	policy         *PolicyService
	log            *zap.Logger

	now func() time.Time
}

// NewClassSessionService wires the session service.
func NewClassSessionService(
	sessions repository.ClassSessionRepository,
	availabilities repository.AvailabilityRepository,
	policy *PolicyService,
	log *zap.Logger,
) *ClassSessionService {
	return &ClassSessionService{
		sessions:       sessions,
		availabilities: availabilities,
		policy:         policy,
		log:            log,
		now:            time.Now,
	}
}

// Get loads one session.
func (s *ClassSessionService) Get(ctx context.Context, id string) (*model.ClassSession, error) {
	session, err := s.sessions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return session, nil
}

// List returns sessions matching the filter.
func (s *ClassSessionService) List(ctx context.Context, req *dto.ListClassSessionsRequest) ([]model.ClassSession, int64, error) {
	filter := repository.ClassSessionFilter{
		BranchID:  req.BranchID,
		SeriesID:  req.SeriesID,
		TeacherID: req.TeacherID,
		StudentID: req.StudentID,
		Status:    req.Status,
		Offset:    req.GetOffset(),
		Limit:     req.GetPageSize(),
	}
	if req.DateFrom != "" {
		d, err := timeslot.ParseDate(req.DateFrom)
		if err != nil {
			return nil, 0, fmt.Errorf("date_from: %w", err)
		}
		filter.DateFrom = &d
	}
	if req.DateTo != "" {
		d, err := timeslot.ParseDate(req.DateTo)
		if err != nil {
			return nil, 0, fmt.Errorf("date_to: %w", err)
		}
		filter.DateTo = &d
	}
	return s.sessions.List(ctx, filter)
}

// Cancel marks a session cancelled. Cancelled sessions release their
// resources, so later conflict checks ignore them.
func (s *ClassSessionService) Cancel(ctx context.Context, id string, req *dto.CancelClassSessionRequest) (*model.ClassSession, error) {
	session, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if session.IsCancelled {
		return session, nil
	}

	now := s.now()
	session.IsCancelled = true
	session.CancelledAt = &now
	session.CancelReason = req.Reason
	if req.CancelledBy != "" {
		by := req.CancelledBy
		session.CancelledBy = &by
	}

	if err := s.sessions.Update(ctx, session); err != nil {
		return nil, err
	}

	s.log.Info("class session cancelled", zap.String("class_id", id))
	return session, nil
}

// Reactivate undoes a cancellation and re-classifies the session, since the
// slot may have been taken while it was cancelled.
func (s *ClassSessionService) Reactivate(ctx context.Context, id string) (*model.ClassSession, error) {
	session, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !session.IsCancelled {
		return nil, ErrSessionNotCancelled
	}

	session.IsCancelled = false
	session.CancelledAt = nil
	session.CancelledBy = nil
	session.CancelReason = ""

	status, err := s.classify(ctx, session)
	if err != nil {
		return nil, err
	}
	session.Status = status

	if err := s.sessions.Update(ctx, session); err != nil {
		return nil, err
	}

	s.log.Info("class session reactivated",
		zap.String("class_id", id),
		zap.String("status", status),
	)
	return session, nil
}

// Update applies a partial edit and re-classifies the session.
func (s *ClassSessionService) Update(ctx context.Context, id string, req *dto.UpdateClassSessionRequest) (*model.ClassSession, error) {
	session, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if session.IsCancelled {
		return nil, ErrSessionCancelled
	}
	session.Version = req.Version

	if req.TeacherID != nil {
		session.TeacherID = req.TeacherID
	}
	if req.StudentID != nil {
		session.StudentID = req.StudentID
	}
	if req.BoothID != nil {
		session.BoothID = req.BoothID
	}
	if req.Date != nil {
		d, err := timeslot.ParseDate(*req.Date)
		if err != nil {
			return nil, fmt.Errorf("date: %w", err)
		}
		session.Date = d
	}
	if req.StartTime != nil {
		session.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		session.EndTime = *req.EndTime
	}
	if req.Notes != nil {
		session.Notes = *req.Notes
	}

	startMin, endMin, err := validateTimeWindow(session.StartTime, session.EndTime)
	if err != nil {
		return nil, err
	}
	duration := endMin - startMin
	session.Duration = &duration

	status, err := s.classify(ctx, session)
	if err != nil {
		return nil, err
	}
	session.Status = status

	if err := s.sessions.Update(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// classify re-runs conflict detection for the session's current shape using
// the branch policy (series overrides do not apply to manual edits).
func (s *ClassSessionService) classify(ctx context.Context, session *model.ClassSession) (string, error) {
	cfg, _, err := s.policy.Resolve(ctx, session.BranchID, nil)
	if err != nil {
		return "", fmt.Errorf("resolve policy: %w", err)
	}

	startMin, err := timeslot.MinuteOfDay(session.StartTime)
	if err != nil {
		return "", fmt.Errorf("start_time: %w", err)
	}
	endMin, err := timeslot.MinuteOfDay(session.EndTime)
	if err != nil {
		return "", fmt.Errorf("end_time: %w", err)
	}

	neighbors, err := s.sessions.ListByDate(ctx, timeslot.DateOnly(session.Date))
	if err != nil {
		return "", fmt.Errorf("load sessions for classification: %w", err)
	}

	var teacherSlots, studentSlots []model.Availability
	if session.TeacherID != nil {
		teacherSlots, err = s.availabilities.ListByUser(ctx, *session.TeacherID, model.UserTypeTeacher)
		if err != nil {
			return "", fmt.Errorf("load teacher availability: %w", err)
		}
	}
	if session.StudentID != nil {
		studentSlots, err = s.availabilities.ListByUser(ctx, *session.StudentID, model.UserTypeStudent)
		if err != nil {
			return "", fmt.Errorf("load student availability: %w", err)
		}
	}

	selfID := session.ID
	cand := sessionCandidate{
		ClassID:   &selfID,
		Date:      session.Date,
		StartMin:  startMin,
		EndMin:    endMin,
		TeacherID: session.TeacherID,
		StudentID: session.StudentID,
		BoothID:   session.BoothID,
	}

	reasons := classifyHardConflicts(cand, neighbors)
	soft := classifyAvailability(cand, teacherSlots, studentSlots)
	soft = filterAllowedAvailability(soft,
		cfg.AllowOutsideAvailabilityTeacher,
		cfg.AllowOutsideAvailabilityStudent)
	reasons = append(reasons, soft...)

	for _, r := range reasons {
		if cfg.MarkAsConflicted[r.Type] {
			return model.SessionStatusConflicted, nil
		}
	}
	return model.SessionStatusConfirmed, nil
}
