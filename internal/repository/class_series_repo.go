package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	apperrors "github.com/jdu211171/schedule-website-sub007/pkg/errors"

	"github.com/jdu211171/schedule-website-sub007/internal/model"
)

// ClassSeriesFilter narrows List queries.
type ClassSeriesFilter struct {
	BranchID  string
	TeacherID string
	StudentID string
	Status    string
	Offset    int
	Limit     int
}

// ClassSeriesRepository is the data-access surface for class series.
type ClassSeriesRepository interface {
	Create(ctx context.Context, series *model.ClassSeries) error
	GetByID(ctx context.Context, id string) (*model.ClassSeries, error)
	List(ctx context.Context, filter ClassSeriesFilter) ([]model.ClassSeries, int64, error)
	// ListActive returns ACTIVE series, optionally scoped to one branch or
	// one series, ordered by creation time. limit<=0 means no limit.
	ListActive(ctx context.Context, branchID, seriesID *string, limit int) ([]model.ClassSeries, error)
	// Update persists changes under optimistic lock; version must match.
	Update(ctx context.Context, series *model.ClassSeries) error
	// UpdateWatermark moves last_generated_through without bumping version,
	// so generation never races user edits into lock failures.
	UpdateWatermark(ctx context.Context, id string, through time.Time) error
}

type classSeriesRepository struct {
	db *gorm.DB
}

// NewClassSeriesRepository builds the GORM implementation.
func NewClassSeriesRepository(db *gorm.DB) ClassSeriesRepository {
	return &classSeriesRepository{db: db}
}

func (r *classSeriesRepository) Create(ctx context.Context, series *model.ClassSeries) error {
	return r.db.WithContext(ctx).Create(series).Error
}

func (r *classSeriesRepository) GetByID(ctx context.Context, id string) (*model.ClassSeries, error) {
	var series model.ClassSeries
	if err := r.db.WithContext(ctx).First(&series, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &series, nil
}

func (r *classSeriesRepository) List(ctx context.Context, filter ClassSeriesFilter) ([]model.ClassSeries, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.ClassSeries{})

	if filter.BranchID != "" {
		query = query.Where("branch_id = ?", filter.BranchID)
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

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var list []model.ClassSeries
	if filter.Limit > 0 {
		query = query.Offset(filter.Offset).Limit(filter.Limit)
	}
	if err := query.Order("created_at DESC").Find(&list).Error; err != nil {
		return nil, 0, err
	}

	return list, total, nil
}

func (r *classSeriesRepository) ListActive(ctx context.Context, branchID, seriesID *string, limit int) ([]model.ClassSeries, error) {
	query := r.db.WithContext(ctx).
		Where("status = ?", model.SeriesStatusActive)

	if branchID != nil && *branchID != "" {
		query = query.Where("branch_id = ?", *branchID)
	}
	if seriesID != nil && *seriesID != "" {
		query = query.Where("id = ?", *seriesID)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var list []model.ClassSeries
	if err := query.Order("created_at ASC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *classSeriesRepository) Update(ctx context.Context, series *model.ClassSeries) error {
	currentVersion := series.Version
	series.Version++

	result := r.db.WithContext(ctx).
		Model(&model.ClassSeries{}).
		Where("id = ? AND version = ?", series.ID, currentVersion).
		Updates(map[string]interface{}{
			"teacher_id":      series.TeacherID,
			"student_id":      series.StudentID,
			"subject_id":      series.SubjectID,
			"class_type_id":   series.ClassTypeID,
			"booth_id":        series.BoothID,
			"status":          series.Status,
			"start_date":      series.StartDate,
			"end_date":        series.EndDate,
			"start_time":      series.StartTime,
			"end_time":        series.EndTime,
			"days_of_week":    series.DaysOfWeek,
			"duration":        series.Duration,
			"conflict_policy": series.ConflictPolicy,
			"notes":           series.Notes,
			"version":         series.Version,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrOptimisticLock
	}
	return nil
}

func (r *classSeriesRepository) UpdateWatermark(ctx context.Context, id string, through time.Time) error {
	return r.db.WithContext(ctx).
		Model(&model.ClassSeries{}).
		Where("id = ?", id).
		Update("last_generated_through", through).Error
}
