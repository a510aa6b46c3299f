package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Conflict type identifiers shared by the classifier, policies and the API.
const (
	ConflictTeacher              = "TEACHER_CONFLICT"
	ConflictStudent              = "STUDENT_CONFLICT"
	ConflictBooth                = "BOOTH_CONFLICT"
	ConflictTeacherUnavailable   = "TEACHER_UNAVAILABLE"
	ConflictStudentUnavailable   = "STUDENT_UNAVAILABLE"
	ConflictTeacherWrongTime     = "TEACHER_WRONG_TIME"
	ConflictStudentWrongTime     = "STUDENT_WRONG_TIME"
	ConflictNoSharedAvailability = "NO_SHARED_AVAILABILITY"
)

// ConflictPolicy is a sparse policy layer stored as JSONB. Nil fields inherit
// from the layer below; only set fields override.
type ConflictPolicy struct {
	MarkTeacherConflict             *bool `json:"mark_teacher_conflict,omitempty"`
	MarkStudentConflict             *bool `json:"mark_student_conflict,omitempty"`
	MarkBoothConflict               *bool `json:"mark_booth_conflict,omitempty"`
	MarkTeacherUnavailable          *bool `json:"mark_teacher_unavailable,omitempty"`
	MarkStudentUnavailable          *bool `json:"mark_student_unavailable,omitempty"`
	MarkTeacherWrongTime            *bool `json:"mark_teacher_wrong_time,omitempty"`
	MarkStudentWrongTime            *bool `json:"mark_student_wrong_time,omitempty"`
	MarkNoSharedAvailability        *bool `json:"mark_no_shared_availability,omitempty"`
	AllowOutsideAvailabilityTeacher *bool `json:"allow_outside_availability_teacher,omitempty"`
	AllowOutsideAvailabilityStudent *bool `json:"allow_outside_availability_student,omitempty"`
	GenerationMonths                *int  `json:"generation_months,omitempty"`
}

// Scan implements sql.Scanner for a JSONB column.
func (p *ConflictPolicy) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into ConflictPolicy", value)
	}
	return json.Unmarshal(data, p)
}

// Value implements driver.Valuer.
func (p ConflictPolicy) Value() (driver.Value, error) {
	return json.Marshal(p)
}

// BranchSchedulingConfig stores a branch's conflict-policy defaults.
type BranchSchedulingConfig struct {
	BranchID  string         `gorm:"type:varchar(36);primaryKey" json:"branch_id"`
	Policy    ConflictPolicy `gorm:"type:jsonb" json:"policy"`
	CreatedAt time.Time      `json:"-"`
	UpdatedAt time.Time      `json:"-"`
}

func (BranchSchedulingConfig) TableName() string { return "branch_scheduling_configs" }
