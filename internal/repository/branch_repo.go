package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/jdu211171/schedule-website-sub007/internal/model"
)

// BranchRepository is the data-access surface for branches.
type BranchRepository interface {
	GetByID(ctx context.Context, id string) (*model.Branch, error)
	List(ctx context.Context) ([]model.Branch, error)
}

type branchRepository struct {
	db *gorm.DB
}

// NewBranchRepository builds the GORM implementation.
func NewBranchRepository(db *gorm.DB) BranchRepository {
	return &branchRepository{db: db}
}

func (r *branchRepository) GetByID(ctx context.Context, id string) (*model.Branch, error) {
	var branch model.Branch
	if err := r.db.WithContext(ctx).First(&branch, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &branch, nil
}

func (r *branchRepository) List(ctx context.Context) ([]model.Branch, error) {
	var list []model.Branch
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}
