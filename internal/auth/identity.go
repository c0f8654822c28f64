package auth

import "time"

// Identity - аутентифицированный пользователь текущего запроса
type Identity struct {
	UserID       uint
	Username     string
	Name         string
	DepartmentID uint
	Admin        bool

	// TokenID и ExpiresAt нужны для отзыва токена при выходе
	TokenID   string
	ExpiresAt time.Time
}

// CanManage - может ли пользователь менять документ, загруженный uploaderID
func (i *Identity) CanManage(uploaderID uint) bool {
	return i != nil && (i.Admin || i.UserID == uploaderID)
}
