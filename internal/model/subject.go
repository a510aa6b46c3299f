package model

// Subject is a taught subject.
type Subject struct {
	BaseModel
	Name string `gorm:"type:varchar(100);not null" json:"name"`
}

func (Subject) TableName() string { return "subjects" }

// ClassType categorizes classes. Types form a tree via ParentID; behavior
// (such as skipping availability checks) can attach to a root type and apply
// to all of its descendants.
type ClassType struct {
	BaseModel
	Name     string  `gorm:"type:varchar(100);not null" json:"name"`
	ParentID *string `gorm:"type:varchar(36);index" json:"parent_id"`
}

func (ClassType) TableName() string { return "class_types" }
