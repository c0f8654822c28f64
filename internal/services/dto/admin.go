package dto

import "time"

// NameRequest - создание/переименование отдела или типа документа
type NameRequest struct {
	Name string `json:"name" validate:"required,notblank,max=100"`
}

// AssignResponsibleRequest - назначение ответственного за отдел
type AssignResponsibleRequest struct {
	UserID uint `json:"user_id" validate:"required,gt=0"`
}

// ResponsibleResponse - назначение с именами
type ResponsibleResponse struct {
	ID         uint      `json:"id"`
	User       Ref       `json:"user"`
	Department Ref       `json:"department"`
	CreatedAt  time.Time `json:"created_at"`
}
