package model

// Availability is one weekly availability slot for a teacher or student.
type Availability struct {
	BaseModel
	UserID    string `gorm:"type:varchar(36);not null;index:idx_avail_user" json:"user_id"`
	UserType  string `gorm:"type:varchar(10);not null;index:idx_avail_user" json:"user_type"`
	DayOfWeek int    `gorm:"not null" json:"day_of_week"`
	StartTime string `gorm:"type:varchar(8);not null" json:"start_time"`
	EndTime   string `gorm:"type:varchar(8);not null" json:"end_time"`
}

func (Availability) TableName() string { return "availabilities" }
