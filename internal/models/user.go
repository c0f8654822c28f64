package models

// User - сотрудник. Принадлежит ровно одному отделу.
type User struct {
	BaseModel
	Username     string `gorm:"size:150;not null;uniqueIndex" json:"username"`
	PasswordHash string `gorm:"not null" json:"-"`
	Name         string `gorm:"size:255;not null" json:"name"`
	DepartmentID uint   `gorm:"not null;index" json:"department_id"`
	Admin        bool   `gorm:"not null;default:false" json:"admin"`
}

func (User) TableName() string {
	return "users"
}
