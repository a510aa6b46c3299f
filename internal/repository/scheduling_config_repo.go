package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jdu211171/schedule-website-sub007/internal/model"
)

// SchedulingConfigRepository is the data-access surface for branch policy
// defaults.
type SchedulingConfigRepository interface {
	// GetByBranch returns nil (no error) when the branch has no stored config.
	GetByBranch(ctx context.Context, branchID string) (*model.BranchSchedulingConfig, error)
	Upsert(ctx context.Context, cfg *model.BranchSchedulingConfig) error
}

type schedulingConfigRepository struct {
	db *gorm.DB
}

// NewSchedulingConfigRepository builds the GORM implementation.
func NewSchedulingConfigRepository(db *gorm.DB) SchedulingConfigRepository {
	return &schedulingConfigRepository{db: db}
}

func (r *schedulingConfigRepository) GetByBranch(ctx context.Context, branchID string) (*model.BranchSchedulingConfig, error) {
	var cfg model.BranchSchedulingConfig
	err := r.db.WithContext(ctx).First(&cfg, "branch_id = ?", branchID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (r *schedulingConfigRepository) Upsert(ctx context.Context, cfg *model.BranchSchedulingConfig) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "branch_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"policy", "updated_at"}),
		}).
		Create(cfg).Error
}
