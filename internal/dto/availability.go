package dto

import "github.com/jdu211171/schedule-website-sub007/internal/model"

// AvailabilitySlot is one weekly slot in API form.
type AvailabilitySlot struct {
	DayOfWeek int    `json:"day_of_week"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
}

// ReplaceAvailabilityRequest replaces a user's whole weekly availability.
type ReplaceAvailabilityRequest struct {
	UserID   string             `json:"user_id" binding:"required"`
	UserType string             `json:"user_type" binding:"required"`
	Slots    []AvailabilitySlot `json:"slots"`
}

// AvailabilityResponse is the API shape of one availability row.
type AvailabilityResponse struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	UserType  string `json:"user_type"`
	DayOfWeek int    `json:"day_of_week"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// NewAvailabilityResponse converts a model to its API shape.
func NewAvailabilityResponse(a *model.Availability) *AvailabilityResponse {
	return &AvailabilityResponse{
		ID:        a.ID,
		UserID:    a.UserID,
		UserType:  a.UserType,
		DayOfWeek: a.DayOfWeek,
		StartTime: a.StartTime,
		EndTime:   a.EndTime,
	}
}
