package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/jdu211171/schedule-website-sub007/internal/model"
)

// ClassTypeRepository is the data-access surface for class types.
type ClassTypeRepository interface {
	GetByID(ctx context.Context, id string) (*model.ClassType, error)
	List(ctx context.Context) ([]model.ClassType, error)
}

type classTypeRepository struct {
	db *gorm.DB
}

// NewClassTypeRepository builds the GORM implementation.
func NewClassTypeRepository(db *gorm.DB) ClassTypeRepository {
	return &classTypeRepository{db: db}
}

func (r *classTypeRepository) GetByID(ctx context.Context, id string) (*model.ClassType, error) {
	var ct model.ClassType
	if err := r.db.WithContext(ctx).First(&ct, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &ct, nil
}

func (r *classTypeRepository) List(ctx context.Context) ([]model.ClassType, error) {
	var list []model.ClassType
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}
