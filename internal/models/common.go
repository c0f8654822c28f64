package models

import (
	"time"
)

// BaseModel - общие поля. Идентификаторы - автоинкрементные целые.
type BaseModel struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// All возвращает модели в порядке миграции (сначала листовые)
func All() []any {
	return []any{
		&Department{},
		&User{},
		&Responsible{},
		&DocType{},
		&Document{},
		&Notification{},
	}
}
