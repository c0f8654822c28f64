package dto

// UpdateUserRequest - частичное обновление пользователя. Пароль перехешируется.
type UpdateUserRequest struct {
	Username     *string `json:"username" validate:"omitempty,username,max=150"`
	Password     *string `json:"password" validate:"omitempty,min=6"`
	Name         *string `json:"name" validate:"omitempty,notblank,max=255"`
	DepartmentID *uint   `json:"department_id" validate:"omitempty,gt=0"`
	Admin        *bool   `json:"admin"`
}
