package repository

import "gorm.io/gorm"

// Repository aggregates all data-access interfaces for injection.
type Repository struct {
	ClassSeries      ClassSeriesRepository
	ClassSession     ClassSessionRepository
	Availability     AvailabilityRepository
	SchedulingConfig SchedulingConfigRepository
	ClassType        ClassTypeRepository
	Branch           BranchRepository
	Notification     NotificationRepository
}

// NewRepository wires all GORM-backed repositories.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		ClassSeries:      NewClassSeriesRepository(db),
		ClassSession:     NewClassSessionRepository(db),
		Availability:     NewAvailabilityRepository(db),
		SchedulingConfig: NewSchedulingConfigRepository(db),
		ClassType:        NewClassTypeRepository(db),
		Branch:           NewBranchRepository(db),
		Notification:     NewNotificationRepository(db),
	}
}
