package model

// Notification types.
const (
	NotificationPolicyWarning     = "POLICY_WARNING"
	NotificationGenerationProblem = "GENERATION_PROBLEM"
)

// Notification is an in-app message for administrators. A nil UserID means
// the notification targets all administrators.
type Notification struct {
	BaseModel
	UserID      *string `gorm:"type:varchar(36);index" json:"user_id"`
	Title       string  `gorm:"type:varchar(200);not null" json:"title"`
	Content     string  `gorm:"type:text;not null" json:"content"`
	Type        string  `gorm:"type:varchar(30);not null" json:"type"`
	IsRead      bool    `gorm:"default:false" json:"is_read"`
	RelatedType *string `gorm:"type:varchar(30)" json:"related_type"`
	RelatedID   *string `gorm:"type:varchar(36)" json:"related_id"`
}

func (Notification) TableName() string { return "notifications" }
