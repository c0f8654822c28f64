package models

// Responsible - назначение пользователя ответственным за отдел.
// Пара (user_id, department_id) уникальна.
type Responsible struct {
	BaseModel
	UserID       uint `gorm:"not null;uniqueIndex:idx_responsible_user_department" json:"user_id"`
	DepartmentID uint `gorm:"not null;uniqueIndex:idx_responsible_user_department;index" json:"department_id"`
}

func (Responsible) TableName() string {
	return "responsibles"
}
