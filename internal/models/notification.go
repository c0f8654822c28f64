package models

import (
	"time"
)

// Notification - одно уведомление на пару (документ, получатель).
// IsRead меняется только false -> true.
type Notification struct {
	BaseModel
	FileID  uint       `gorm:"not null;index" json:"file_id"`
	UserID  uint       `gorm:"not null;index:idx_notification_user_read" json:"user_id"`
	Message string     `gorm:"size:512;not null" json:"message"`
	IsRead  bool       `gorm:"not null;default:false;index:idx_notification_user_read" json:"is_read"`
	ReadAt  *time.Time `json:"read_at,omitempty"`
}

func (Notification) TableName() string {
	return "notifications"
}
