package dto

import (
	"time"
)

// SignInRequest - запрос входа
type SignInRequest struct {
	Username string `json:"username" validate:"required,max=150"`
	Password string `json:"password" validate:"required"`
}

// SignUpRequest - создание пользователя администратором
type SignUpRequest struct {
	Username     string `json:"username" validate:"required,username,max=150"`
	Password     string `json:"password" validate:"required,min=6"`
	Name         string `json:"name" validate:"required,notblank,max=255"`
	DepartmentID uint   `json:"department_id" validate:"required,gt=0"`
	Admin        bool   `json:"admin"`
}

// UserResponse - пользователь с отделом
type UserResponse struct {
	ID         uint      `json:"id"`
	Username   string    `json:"username"`
	Name       string    `json:"name"`
	Department *Ref      `json:"department"`
	Admin      bool      `json:"admin"`
	CreatedAt  time.Time `json:"created_at"`
}

// SignInResponse - ответ на вход. Токен также уходит в cookie.
type SignInResponse struct {
	Message   string       `json:"message"`
	User      UserResponse `json:"user"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
}

// CheckAuthResponse - результат необязательной проверки сессии
type CheckAuthResponse struct {
	Authenticated bool          `json:"authenticated"`
	User          *UserResponse `json:"user,omitempty"`
}
