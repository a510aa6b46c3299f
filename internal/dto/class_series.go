package dto

import (
	"time"

	"github.com/jdu211171/schedule-website-sub007/internal/model"
)

// CreateClassSeriesRequest creates a new recurring class blueprint.
type CreateClassSeriesRequest struct {
	BranchID    string  `json:"branch_id" binding:"required"`
	TeacherID   *string `json:"teacher_id"`
	StudentID   *string `json:"student_id"`
	SubjectID   *string `json:"subject_id"`
	ClassTypeID *string `json:"class_type_id"`
	BoothID     *string `json:"booth_id"`

	StartDate  string  `json:"start_date" binding:"required"`
	EndDate    *string `json:"end_date"`
	StartTime  string  `json:"start_time" binding:"required"`
	EndTime    string  `json:"end_time" binding:"required"`
	DaysOfWeek []int   `json:"days_of_week" binding:"required"`

	ConflictPolicy *model.ConflictPolicy `json:"conflict_policy"`
	Notes          string                `json:"notes"`
}

// UpdateClassSeriesRequest partially updates a series. Nil fields are left
// unchanged.
type UpdateClassSeriesRequest struct {
	TeacherID   *string `json:"teacher_id"`
	StudentID   *string `json:"student_id"`
	SubjectID   *string `json:"subject_id"`
	ClassTypeID *string `json:"class_type_id"`
	BoothID     *string `json:"booth_id"`

	StartDate  *string `json:"start_date"`
	EndDate    *string `json:"end_date"`
	StartTime  *string `json:"start_time"`
	EndTime    *string `json:"end_time"`
	DaysOfWeek []int   `json:"days_of_week"`

	Notes   *string `json:"notes"`
	Version int64   `json:"version" binding:"required"`
}

// UpdateSeriesStatusRequest changes the series lifecycle status.
type UpdateSeriesStatusRequest struct {
	Status  string `json:"status" binding:"required"`
	Version int64  `json:"version" binding:"required"`
}

// UpdateSeriesPolicyRequest replaces the series-level policy override.
type UpdateSeriesPolicyRequest struct {
	Policy *model.ConflictPolicy `json:"policy"`
	// SaveAsBranchDefault also merges the policy into the branch defaults.
	SaveAsBranchDefault bool  `json:"save_as_branch_default"`
	Version             int64 `json:"version" binding:"required"`
}

// ListClassSeriesRequest filters the series list.
type ListClassSeriesRequest struct {
	PageRequest
	BranchID  string `form:"branch_id"`
	TeacherID string `form:"teacher_id"`
	StudentID string `form:"student_id"`
	Status    string `form:"status"`
}

// ClassSeriesResponse is the API shape of a series.
type ClassSeriesResponse struct {
	ID          string  `json:"id"`
	BranchID    string  `json:"branch_id"`
	TeacherID   *string `json:"teacher_id"`
	StudentID   *string `json:"student_id"`
	SubjectID   *string `json:"subject_id"`
	ClassTypeID *string `json:"class_type_id"`
	BoothID     *string `json:"booth_id"`

	Status     string  `json:"status"`
	StartDate  string  `json:"start_date"`
	EndDate    *string `json:"end_date"`
	StartTime  string  `json:"start_time"`
	EndTime    string  `json:"end_time"`
	DaysOfWeek []int   `json:"days_of_week"`

	LastGeneratedThrough *string               `json:"last_generated_through"`
	ConflictPolicy       *model.ConflictPolicy `json:"conflict_policy"`
	Notes                string                `json:"notes"`
	Version              int64                 `json:"version"`
	CreatedAt            time.Time             `json:"created_at"`
	UpdatedAt            time.Time             `json:"updated_at"`
}

// NewClassSeriesResponse converts a model to its API shape.
func NewClassSeriesResponse(s *model.ClassSeries) *ClassSeriesResponse {
	resp := &ClassSeriesResponse{
		ID:             s.ID,
		BranchID:       s.BranchID,
		TeacherID:      s.TeacherID,
		StudentID:      s.StudentID,
		SubjectID:      s.SubjectID,
		ClassTypeID:    s.ClassTypeID,
		BoothID:        s.BoothID,
		Status:         s.Status,
		StartDate:      s.StartDate.Format("2006-01-02"),
		StartTime:      s.StartTime,
		EndTime:        s.EndTime,
		DaysOfWeek:     s.DaysOfWeek,
		ConflictPolicy: s.ConflictPolicy,
		Notes:          s.Notes,
		Version:        s.Version,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
	if s.EndDate != nil {
		d := s.EndDate.Format("2006-01-02")
		resp.EndDate = &d
	}
	if s.LastGeneratedThrough != nil {
		d := s.LastGeneratedThrough.Format("2006-01-02")
		resp.LastGeneratedThrough = &d
	}
	return resp
}
