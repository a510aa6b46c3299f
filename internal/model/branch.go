package model

// Branch is a physical school location.
type Branch struct {
	BaseModel
	Name string `gorm:"type:varchar(100);not null" json:"name"`
}

func (Branch) TableName() string { return "branches" }

// Booth is a teaching booth inside a branch.
type Booth struct {
	BaseModel
	BranchID string `gorm:"type:varchar(36);not null;index" json:"branch_id"`
	Name     string `gorm:"type:varchar(100);not null" json:"name"`
	IsActive bool   `gorm:"default:true" json:"is_active"`
}

func (Booth) TableName() string { return "booths" }
