package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/jdu211171/schedule-website-sub007/internal/model"
)

// AvailabilityRepository is the data-access surface for weekly availability.
type AvailabilityRepository interface {
	ListByUser(ctx context.Context, userID, userType string) ([]model.Availability, error)
	// ReplaceByUser atomically swaps a user's whole weekly availability.
	ReplaceByUser(ctx context.Context, userID, userType string, slots []model.Availability) error
}

type availabilityRepository struct {
	db *gorm.DB
}

// NewAvailabilityRepository builds the GORM implementation.
func NewAvailabilityRepository(db *gorm.DB) AvailabilityRepository {
	return &availabilityRepository{db: db}
}

func (r *availabilityRepository) ListByUser(ctx context.Context, userID, userType string) ([]model.Availability, error) {
	var list []model.Availability
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND user_type = ?", userID, userType).
		Order("day_of_week ASC, start_time ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *availabilityRepository) ReplaceByUser(ctx context.Context, userID, userType string, slots []model.Availability) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ? AND user_type = ?", userID, userType).
			Delete(&model.Availability{}).Error; err != nil {
			return err
		}
		if len(slots) == 0 {
			return nil
		}
		return tx.Create(&slots).Error
	})
}
