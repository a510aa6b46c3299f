package dto

import (
	"time"

	"github.com/jdu211171/schedule-website-sub007/internal/model"
)

// ListClassSessionsRequest filters the session list.
type ListClassSessionsRequest struct {
	PageRequest
	BranchID  string `form:"branch_id"`
	SeriesID  string `form:"series_id"`
	TeacherID string `form:"teacher_id"`
	StudentID string `form:"student_id"`
	Status    string `form:"status"`
	DateFrom  string `form:"date_from"`
	DateTo    string `form:"date_to"`
}

// UpdateClassSessionRequest partially edits one session.
type UpdateClassSessionRequest struct {
	TeacherID *string `json:"teacher_id"`
	StudentID *string `json:"student_id"`
	BoothID   *string `json:"booth_id"`
	Date      *string `json:"date"`
	StartTime *string `json:"start_time"`
	EndTime   *string `json:"end_time"`
	Notes     *string `json:"notes"`
	Version   int64   `json:"version" binding:"required"`
}

// CancelClassSessionRequest cancels one session.
type CancelClassSessionRequest struct {
	Reason      string `json:"reason"`
	CancelledBy string `json:"cancelled_by"`
}

// BatchConfirmRequest asks to flip a set of conflicted sessions to confirmed.
type BatchConfirmRequest struct {
	ClassIDs []string `json:"class_ids" binding:"required"`
	// BranchID scopes the confirmation; sessions outside it are refused.
	BranchID *string `json:"branch_id"`
}

// ConfirmFailure explains why one session was not confirmed.
type ConfirmFailure struct {
	ClassID string `json:"class_id"`
	Reason  string `json:"reason"`
}

// BatchConfirmResult reports the per-session outcome of a confirmation batch.
type BatchConfirmResult struct {
	Updated []string         `json:"updated"`
	Failed  []ConfirmFailure `json:"failed"`
}

// ClassSessionResponse is the API shape of a session.
type ClassSessionResponse struct {
	ID          string  `json:"id"`
	SeriesID    *string `json:"series_id"`
	BranchID    string  `json:"branch_id"`
	TeacherID   *string `json:"teacher_id"`
	StudentID   *string `json:"student_id"`
	SubjectID   *string `json:"subject_id"`
	ClassTypeID *string `json:"class_type_id"`
	BoothID     *string `json:"booth_id"`

	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Status    string `json:"status"`

	IsCancelled  bool       `json:"is_cancelled"`
	CancelledAt  *time.Time `json:"cancelled_at,omitempty"`
	CancelledBy  *string    `json:"cancelled_by,omitempty"`
	CancelReason string     `json:"cancel_reason,omitempty"`

	Notes     string    `json:"notes"`
	Version   int64     `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewClassSessionResponse converts a model to its API shape.
func NewClassSessionResponse(s *model.ClassSession) *ClassSessionResponse {
	return &ClassSessionResponse{
		ID:           s.ID,
		SeriesID:     s.SeriesID,
		BranchID:     s.BranchID,
		TeacherID:    s.TeacherID,
		StudentID:    s.StudentID,
		SubjectID:    s.SubjectID,
		ClassTypeID:  s.ClassTypeID,
		BoothID:      s.BoothID,
		Date:         s.Date.Format("2006-01-02"),
		StartTime:    s.StartTime,
		EndTime:      s.EndTime,
		Status:       s.Status,
		IsCancelled:  s.IsCancelled,
		CancelledAt:  s.CancelledAt,
		CancelledBy:  s.CancelledBy,
		CancelReason: s.CancelReason,
		Notes:        s.Notes,
		Version:      s.Version,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}
