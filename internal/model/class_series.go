package model

import "time"

// Class series statuses.
const (
	SeriesStatusActive = "ACTIVE"
	SeriesStatusPaused = "PAUSED"
	SeriesStatusEnded  = "ENDED"
)

// ClassSeries is the blueprint of a recurring class: who, where, which
// weekdays and time window, plus how far sessions have been generated.
type ClassSeries struct {
	VersionedModel
	BranchID    string  `gorm:"type:varchar(36);not null;index" json:"branch_id"`
	TeacherID   *string `gorm:"type:varchar(36);index" json:"teacher_id"`
	StudentID   *string `gorm:"type:varchar(36);index" json:"student_id"`
	SubjectID   *string `gorm:"type:varchar(36)" json:"subject_id"`
	ClassTypeID *string `gorm:"type:varchar(36)" json:"class_type_id"`
	BoothID     *string `gorm:"type:varchar(36)" json:"booth_id"`

	Status    string     `gorm:"type:varchar(20);not null;default:ACTIVE;index" json:"status"`
	StartDate time.Time  `gorm:"type:date;not null" json:"start_date"`
	EndDate   *time.Time `gorm:"type:date" json:"end_date"`

	StartTime  string   `gorm:"type:varchar(8);not null" json:"start_time"`
	EndTime    string   `gorm:"type:varchar(8);not null" json:"end_time"`
	DaysOfWeek IntArray `gorm:"type:integer[];not null" json:"days_of_week"`
	Duration   *int     `json:"duration"`

	// LastGeneratedThrough is the watermark: sessions exist for every matching
	// weekday up to and including this date. Nil means nothing generated yet.
	LastGeneratedThrough *time.Time `gorm:"type:date" json:"last_generated_through"`

	// ConflictPolicy is the series-level policy override. Nil means the
	// branch defaults apply unchanged.
	ConflictPolicy *ConflictPolicy `gorm:"type:jsonb" json:"conflict_policy"`

	Notes string `gorm:"type:text" json:"notes"`
}

func (ClassSeries) TableName() string { return "class_series" }
