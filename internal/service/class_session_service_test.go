package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/jdu211171/schedule-website-sub007/internal/dto"
	"github.com/jdu211171/schedule-website-sub007/internal/model"
)

func newTestSessionService() (*ClassSessionService, *mockSessionRepo, *mockAvailabilityRepo) {
	sessions := newMockSessionRepo()
	avail := &mockAvailabilityRepo{}
	policy := NewPolicyService(newMockConfigRepo(), nil, zap.NewNop())
	svc := NewClassSessionService(sessions, avail, policy, zap.NewNop())
	svc.now = func() time.Time { return date(2025, time.January, 15) }
	return svc, sessions, avail
}

func baseSession(id string) *model.ClassSession {
	return &model.ClassSession{
		VersionedModel: model.VersionedModel{BaseModel: model.BaseModel{ID: id}, Version: 1},
		BranchID:       "branch-1",
		TeacherID:      strPtr("t1"),
		StudentID:      strPtr("s1"),
		Date:           date(2025, time.January, 20),
		StartTime:      "16:00",
		EndTime:        "17:00",
		Status:         model.SessionStatusConfirmed,
	}
}

func TestCancelAndReactivateSession(t *testing.T) {
	svc, sessions, _ := newTestSessionService()
	ctx := context.Background()
	sessions.put(baseSession("c1"))

	cancelled, err := svc.Cancel(ctx, "c1", &dto.CancelClassSessionRequest{
		Reason:      "student sick",
		CancelledBy: "admin-1",
	})
	if err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if !cancelled.IsCancelled || cancelled.CancelledAt == nil || cancelled.CancelReason != "student sick" {
		t.Errorf("cancellation metadata incomplete: %+v", cancelled)
	}

	// cancelling again is a no-op
	again, err := svc.Cancel(ctx, "c1", &dto.CancelClassSessionRequest{Reason: "dup"})
	if err != nil {
		t.Fatalf("second Cancel: %v", err)
	}
	if again.CancelReason != "student sick" {
		t.Error("second cancel must not overwrite the original reason")
	}

	reactivated, err := svc.Reactivate(ctx, "c1")
	if err != nil {
		t.Fatalf("Reactivate: %v", err)
	}
	if reactivated.IsCancelled || reactivated.CancelledAt != nil || reactivated.CancelReason != "" {
		t.Errorf("cancellation metadata not cleared: %+v", reactivated)
	}
	if reactivated.Status != model.SessionStatusConfirmed {
		t.Errorf("status = %s, want CONFIRMED with a free slot", reactivated.Status)
	}
}

func TestReactivateDetectsNewConflict(t *testing.T) {
	svc, sessions, _ := newTestSessionService()
	ctx := context.Background()

	s := baseSession("c1")
	s.IsCancelled = true
	now := date(2025, time.January, 10)
	s.CancelledAt = &now
	sessions.put(s)

	// the slot was taken while c1 was cancelled
	taken := baseSession("c2")
	taken.StudentID = strPtr("s2")
	sessions.put(taken)

	reactivated, err := svc.Reactivate(ctx, "c1")
	if err != nil {
		t.Fatalf("Reactivate: %v", err)
	}
	if reactivated.Status != model.SessionStatusConflicted {
		t.Errorf("status = %s, want CONFLICTED: the teacher was rebooked", reactivated.Status)
	}
}

func TestReactivateRequiresCancelled(t *testing.T) {
	svc, sessions, _ := newTestSessionService()
	sessions.put(baseSession("c1"))

	if _, err := svc.Reactivate(context.Background(), "c1"); !errors.Is(err, ErrSessionNotCancelled) {
		t.Errorf("err = %v, want ErrSessionNotCancelled", err)
	}
}

func TestUpdateSessionReclassifies(t *testing.T) {
	svc, sessions, _ := newTestSessionService()
	ctx := context.Background()
	sessions.put(baseSession("c1"))

	// another booking occupies 18:00-19:00 for the same teacher
	other := baseSession("c2")
	other.StudentID = strPtr("s2")
	other.StartTime = "18:00"
	other.EndTime = "19:00"
	sessions.put(other)

	moved, err := svc.Update(ctx, "c1", &dto.UpdateClassSessionRequest{
		StartTime: strPtr("18:30"),
		EndTime:   strPtr("19:30"),
		Version:   1,
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if moved.Status != model.SessionStatusConflicted {
		t.Errorf("status = %s, want CONFLICTED after moving onto a busy slot", moved.Status)
	}

	back, err := svc.Update(ctx, "c1", &dto.UpdateClassSessionRequest{
		StartTime: strPtr("16:00"),
		EndTime:   strPtr("17:00"),
		Version:   moved.Version,
	})
	if err != nil {
		t.Fatalf("move back: %v", err)
	}
	if back.Status != model.SessionStatusConfirmed {
		t.Errorf("status = %s, want CONFIRMED after moving back", back.Status)
	}
}

func TestUpdateSessionRejectsCancelled(t *testing.T) {
	svc, sessions, _ := newTestSessionService()
	s := baseSession("c1")
	s.IsCancelled = true
	sessions.put(s)

	_, err := svc.Update(context.Background(), "c1", &dto.UpdateClassSessionRequest{
		Notes: strPtr("edit"), Version: 1,
	})
	if !errors.Is(err, ErrSessionCancelled) {
		t.Errorf("err = %v, want ErrSessionCancelled", err)
	}
}

func TestGetSessionNotFound(t *testing.T) {
	svc, _, _ := newTestSessionService()
	if _, err := svc.Get(context.Background(), "missing"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("err = %v, want ErrSessionNotFound", err)
	}
}
