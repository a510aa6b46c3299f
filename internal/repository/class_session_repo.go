package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	apperrors "github.com/jdu211171/schedule-website-sub007/pkg/errors"

	"github.com/jdu211171/schedule-website-sub007/internal/model"
)

// ClassSessionFilter narrows List queries.
type ClassSessionFilter struct {
	BranchID  string
	SeriesID  string
	TeacherID string
	StudentID string
	Status    string
	DateFrom  *time.Time
	DateTo    *time.Time
	Offset    int
	Limit     int
}

// ClassSessionRepository is the data-access surface for class sessions.
type ClassSessionRepository interface {
	Create(ctx context.Context, session *model.ClassSession) error
	GetByID(ctx context.Context, id string) (*model.ClassSession, error)
	List(ctx context.Context, filter ClassSessionFilter) ([]model.ClassSession, int64, error)
	// ListByDateRange returns all sessions within [from, to] inclusive.
	ListByDateRange(ctx context.Context, branchID string, from, to time.Time) ([]model.ClassSession, error)
	// ListByDate returns all sessions on a single date across branches.
	ListByDate(ctx context.Context, date time.Time) ([]model.ClassSession, error)
	// ListDatesBySeries returns the dates that already have a session for the
	// series within [from, to] inclusive.
	ListDatesBySeries(ctx context.Context, seriesID string, from, to time.Time) ([]time.Time, error)
	// Update persists changes under optimistic lock; version must match.
	Update(ctx context.Context, session *model.ClassSession) error
	UpdateStatus(ctx context.Context, id string, status string) error
}

type classSessionRepository struct {
	db *gorm.DB
}

// NewClassSessionRepository builds the GORM implementation.
func NewClassSessionRepository(db *gorm.DB) ClassSessionRepository {
	return &classSessionRepository{db: db}
}

func (r *classSessionRepository) Create(ctx context.Context, session *model.ClassSession) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *classSessionRepository) GetByID(ctx context.Context, id string) (*model.ClassSession, error) {
	var session model.ClassSession
	if err := r.db.WithContext(ctx).First(&session, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *classSessionRepository) List(ctx context.Context, filter ClassSessionFilter) ([]model.ClassSession, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.ClassSession{})

	if filter.BranchID != "" {
		query = query.Where("branch_id = ?", filter.BranchID)
	}
	if filter.SeriesID != "" {
		query = query.Where("series_id = ?", filter.SeriesID)
	}
	if filter.TeacherID != "" {
		query = query.Where("teacher_id = ?", filter.TeacherID)
	}
	if filter.StudentID != "" {
		query = query.Where("student_id = ?", filter.StudentID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.DateFrom != nil {
		query = query.Where("date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("date <= ?", *filter.DateTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var list []model.ClassSession
	if filter.Limit > 0 {
		query = query.Offset(filter.Offset).Limit(filter.Limit)
	}
	if err := query.Order("date ASC, start_time ASC").Find(&list).Error; err != nil {
		return nil, 0, err
	}

	return list, total, nil
}

func (r *classSessionRepository) ListByDateRange(ctx context.Context, branchID string, from, to time.Time) ([]model.ClassSession, error) {
	query := r.db.WithContext(ctx).
		Where("date >= ? AND date <= ?", from, to)
	if branchID != "" {
		query = query.Where("branch_id = ?", branchID)
	}

	var list []model.ClassSession
	if err := query.Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *classSessionRepository) ListByDate(ctx context.Context, date time.Time) ([]model.ClassSession, error) {
	var list []model.ClassSession
	if err := r.db.WithContext(ctx).
		Where("date = ?", date).
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *classSessionRepository) ListDatesBySeries(ctx context.Context, seriesID string, from, to time.Time) ([]time.Time, error) {
	var dates []time.Time
	if err := r.db.WithContext(ctx).
		Model(&model.ClassSession{}).
		Where("series_id = ? AND date >= ? AND date <= ?", seriesID, from, to).
		Pluck("date", &dates).Error; err != nil {
		return nil, err
	}
	return dates, nil
}

func (r *classSessionRepository) Update(ctx context.Context, session *model.ClassSession) error {
	currentVersion := session.Version
	session.Version++

	result := r.db.WithContext(ctx).
		Model(&model.ClassSession{}).
		Where("id = ? AND version = ?", session.ID, currentVersion).
		Updates(map[string]interface{}{
			"teacher_id":    session.TeacherID,
			"student_id":    session.StudentID,
			"booth_id":      session.BoothID,
			"date":          session.Date,
			"start_time":    session.StartTime,
			"end_time":      session.EndTime,
			"status":        session.Status,
			"is_cancelled":  session.IsCancelled,
			"cancelled_at":  session.CancelledAt,
			"cancelled_by":  session.CancelledBy,
			"cancel_reason": session.CancelReason,
			"notes":         session.Notes,
			"version":       session.Version,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrOptimisticLock
	}
	return nil
}

func (r *classSessionRepository) UpdateStatus(ctx context.Context, id string, status string) error {
	return r.db.WithContext(ctx).
		Model(&model.ClassSession{}).
		Where("id = ?", id).
		Update("status", status).Error
}
