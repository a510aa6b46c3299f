package model

// Teacher is a member of the teaching staff.
type Teacher struct {
	BaseModel
	BranchID string `gorm:"type:varchar(36);not null;index" json:"branch_id"`
	Name     string `gorm:"type:varchar(100);not null" json:"name"`
	Email    string `gorm:"type:varchar(255)" json:"email"`
	IsActive bool   `gorm:"default:true" json:"is_active"`
}

func (Teacher) TableName() string { return "teachers" }

// Student is an enrolled student.
type Student struct {
	BaseModel
	BranchID string `gorm:"type:varchar(36);not null;index" json:"branch_id"`
	Name     string `gorm:"type:varchar(100);not null" json:"name"`
	Email    string `gorm:"type:varchar(255)" json:"email"`
	IsActive bool   `gorm:"default:true" json:"is_active"`
}

func (Student) TableName() string { return "students" }
