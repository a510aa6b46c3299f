package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/jdu211171/schedule-website-sub007/pkg/timeslot"

	"github.com/jdu211171/schedule-website-sub007/internal/dto"
	"github.com/jdu211171/schedule-website-sub007/internal/model"
	"github.com/jdu211171/schedule-website-sub007/internal/repository"
)

// Failure reasons reported per session in a confirmation batch.
const (
	confirmReasonNotFound      = "not found"
	confirmReasonPermission    = "permission denied"
	confirmReasonCancelled     = "session is cancelled"
	confirmReasonHardConflicts = "hard conflicts remain"
	confirmReasonInternal      = "internal error"
)

// ConfirmationService flips conflicted sessions to confirmed after verifying
// that no hard conflict remains. Soft availability reasons never block
// confirmation; an administrator accepting them is the point of the gate.
type ConfirmationService struct {
	sessions repository.ClassSessionRepository
	log      *zap.Logger
}

// NewConfirmationService wires the confirmation gate.
func NewConfirmationService(sessions repository.ClassSessionRepository, log *zap.Logger) *ConfirmationService {
	return &ConfirmationService{sessions: sessions, log: log}
}

// ConfirmSessions processes each requested session independently and reports
// per-session outcomes. One bad ID never aborts the batch. When branchID is
// set, sessions outside that branch are refused.
func (s *ConfirmationService) ConfirmSessions(ctx context.Context, classIDs []string, branchID *string) (*dto.BatchConfirmResult, error) {
	result := &dto.BatchConfirmResult{
		Updated: []string{},
		Failed:  []dto.ConfirmFailure{},
	}

	for _, id := range classIDs {
		reason := s.confirmOne(ctx, id, branchID)
		if reason == "" {
			result.Updated = append(result.Updated, id)
		} else {
			result.Failed = append(result.Failed, dto.ConfirmFailure{ClassID: id, Reason: reason})
		}
	}

	s.log.Info("confirmation batch finished",
		zap.Int("requested", len(classIDs)),
		zap.Int("updated", len(result.Updated)),
		zap.Int("failed", len(result.Failed)),
	)
	return result, nil
}

// confirmOne returns an empty string on success, or the failure reason.
func (s *ConfirmationService) confirmOne(ctx context.Context, id string, branchID *string) string {
	session, err := s.sessions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return confirmReasonNotFound
		}
		s.log.Error("load session for confirmation", zap.String("class_id", id), zap.Error(err))
		return confirmReasonInternal
	}

	if branchID != nil && session.BranchID != *branchID {
		return confirmReasonPermission
	}
	if session.IsCancelled {
		return confirmReasonCancelled
	}
	if session.Status == model.SessionStatusConfirmed {
		// already confirmed, nothing to do
		return ""
	}

	startMin, err := timeslot.MinuteOfDay(session.StartTime)
	if err != nil {
		s.log.Error("session has invalid start time", zap.String("class_id", id), zap.Error(err))
		return confirmReasonInternal
	}
	endMin, err := timeslot.MinuteOfDay(session.EndTime)
	if err != nil {
		s.log.Error("session has invalid end time", zap.String("class_id", id), zap.Error(err))
		return confirmReasonInternal
	}

	neighbors, err := s.sessions.ListByDate(ctx, timeslot.DateOnly(session.Date))
	if err != nil {
		s.log.Error("load sessions for conflict recheck", zap.String("class_id", id), zap.Error(err))
		return confirmReasonInternal
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
	if hasHardConflict(classifyHardConflicts(cand, neighbors)) {
		return confirmReasonHardConflicts
	}

	if err := s.sessions.UpdateStatus(ctx, id, model.SessionStatusConfirmed); err != nil {
		s.log.Error("update session status", zap.String("class_id", id), zap.Error(err))
		return confirmReasonInternal
	}
	return ""
}
