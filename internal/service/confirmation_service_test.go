package service

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/jdu211171/schedule-website-sub007/internal/model"
)

func conflictedSession(id, branchID string, teacherID *string, startTime, endTime string) *model.ClassSession {
	return &model.ClassSession{
		VersionedModel: model.VersionedModel{BaseModel: model.BaseModel{ID: id}, Version: 1},
		BranchID:       branchID,
		TeacherID:      teacherID,
		Date:           date(2025, time.January, 6),
		StartTime:      startTime,
		EndTime:        endTime,
		Status:         model.SessionStatusConflicted,
	}
}

func TestConfirmSessionsBatch(t *testing.T) {
	sessions := newMockSessionRepo()
	svc := NewConfirmationService(sessions, zap.NewNop())

	// c1 and c3 are only soft-conflicted; c2's teacher is still double booked
	sessions.put(conflictedSession("c1", "branch-1", strPtr("t1"), "10:00", "11:00"))
	sessions.put(conflictedSession("c2", "branch-1", strPtr("t2"), "10:00", "11:00"))
	sessions.put(conflictedSession("c3", "branch-1", strPtr("t3"), "10:00", "11:00"))

	blocker := conflictedSession("blocker", "branch-1", strPtr("t2"), "10:30", "11:30")
	blocker.Status = model.SessionStatusConfirmed
	sessions.put(blocker)

	result, err := svc.ConfirmSessions(context.Background(), []string{"c1", "c2", "c3"}, nil)
	if err != nil {
		t.Fatalf("ConfirmSessions: %v", err)
	}

	if len(result.Updated) != 2 || result.Updated[0] != "c1" || result.Updated[1] != "c3" {
		t.Errorf("Updated = %v, want [c1 c3]", result.Updated)
	}
	if len(result.Failed) != 1 || result.Failed[0].ClassID != "c2" || result.Failed[0].Reason != "hard conflicts remain" {
		t.Errorf("Failed = %v, want c2 with hard conflicts remain", result.Failed)
	}

	for _, id := range []string{"c1", "c3"} {
		s, _ := sessions.GetByID(context.Background(), id)
		if s.Status != model.SessionStatusConfirmed {
			t.Errorf("%s status = %s, want CONFIRMED", id, s.Status)
		}
	}
	s, _ := sessions.GetByID(context.Background(), "c2")
	if s.Status != model.SessionStatusConflicted {
		t.Errorf("c2 status = %s, want still CONFLICTED", s.Status)
	}
}

func TestConfirmSessionsRefusals(t *testing.T) {
	sessions := newMockSessionRepo()
	svc := NewConfirmationService(sessions, zap.NewNop())
	ctx := context.Background()

	sessions.put(conflictedSession("other-branch", "branch-2", strPtr("t1"), "10:00", "11:00"))

	cancelled := conflictedSession("cancelled", "branch-1", strPtr("t2"), "10:00", "11:00")
	cancelled.IsCancelled = true
	sessions.put(cancelled)

	result, err := svc.ConfirmSessions(ctx, []string{"missing", "other-branch", "cancelled"}, strPtr("branch-1"))
	if err != nil {
		t.Fatalf("ConfirmSessions: %v", err)
	}

	if len(result.Updated) != 0 {
		t.Errorf("Updated = %v, want none", result.Updated)
	}
	want := map[string]string{
		"missing":      "not found",
		"other-branch": "permission denied",
		"cancelled":    "session is cancelled",
	}
	if len(result.Failed) != len(want) {
		t.Fatalf("Failed = %v, want %d entries", result.Failed, len(want))
	}
	for _, f := range result.Failed {
		if want[f.ClassID] != f.Reason {
			t.Errorf("%s reason = %q, want %q", f.ClassID, f.Reason, want[f.ClassID])
		}
	}
}

func TestConfirmSessionsCancelledNeighborDoesNotBlock(t *testing.T) {
	sessions := newMockSessionRepo()
	svc := NewConfirmationService(sessions, zap.NewNop())

	sessions.put(conflictedSession("c1", "branch-1", strPtr("t1"), "10:00", "11:00"))

	// the overlapping booking was cancelled since generation ran
	cancelled := conflictedSession("was-blocking", "branch-1", strPtr("t1"), "10:30", "11:30")
	cancelled.IsCancelled = true
	sessions.put(cancelled)

	result, err := svc.ConfirmSessions(context.Background(), []string{"c1"}, nil)
	if err != nil {
		t.Fatalf("ConfirmSessions: %v", err)
	}
	if len(result.Updated) != 1 || result.Updated[0] != "c1" {
		t.Errorf("Updated = %v, want [c1]", result.Updated)
	}
}

func TestConfirmSessionsAlreadyConfirmedIsNoOp(t *testing.T) {
	sessions := newMockSessionRepo()
	svc := NewConfirmationService(sessions, zap.NewNop())

	s := conflictedSession("c1", "branch-1", strPtr("t1"), "10:00", "11:00")
	s.Status = model.SessionStatusConfirmed
	sessions.put(s)

	result, err := svc.ConfirmSessions(context.Background(), []string{"c1"}, nil)
	if err != nil {
		t.Fatalf("ConfirmSessions: %v", err)
	}
	if len(result.Updated) != 1 || len(result.Failed) != 0 {
		t.Errorf("result = %+v, want c1 counted as updated", result)
	}
}
