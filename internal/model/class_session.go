package model

import "time"

// Class session statuses.
const (
	SessionStatusConfirmed  = "CONFIRMED"
	SessionStatusConflicted = "CONFLICTED"
)

// Availability party types.
const (
	UserTypeTeacher = "TEACHER"
	UserTypeStudent = "STUDENT"
)

// ClassSession is a single class occurrence on a concrete date. Sessions are
// either generated from a series (SeriesID set) or created ad hoc.
type ClassSession struct {
	VersionedModel
	SeriesID    *string `gorm:"type:varchar(36);index" json:"series_id"`
	BranchID    string  `gorm:"type:varchar(36);not null;index" json:"branch_id"`
	TeacherID   *string `gorm:"type:varchar(36);index" json:"teacher_id"`
	StudentID   *string `gorm:"type:varchar(36);index" json:"student_id"`
	SubjectID   *string `gorm:"type:varchar(36)" json:"subject_id"`
	ClassTypeID *string `gorm:"type:varchar(36)" json:"class_type_id"`
	BoothID     *string `gorm:"type:varchar(36)" json:"booth_id"`

	Date      time.Time `gorm:"type:date;not null;index" json:"date"`
	StartTime string    `gorm:"type:varchar(8);not null" json:"start_time"`
	EndTime   string    `gorm:"type:varchar(8);not null" json:"end_time"`
	Duration  *int      `json:"duration"`

	Status string `gorm:"type:varchar(20);not null;default:CONFIRMED;index" json:"status"`

	IsCancelled  bool       `gorm:"default:false" json:"is_cancelled"`
	CancelledAt  *time.Time `json:"cancelled_at"`
	CancelledBy  *string    `gorm:"type:varchar(36)" json:"cancelled_by"`
	CancelReason string     `gorm:"type:text" json:"cancel_reason"`

	Notes string `gorm:"type:text" json:"notes"`
}

func (ClassSession) TableName() string { return "class_sessions" }
