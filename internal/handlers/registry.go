package handlers

import "github.com/gin-gonic/gin"

// RouteRegistrar - хэндлер, который сам вешает свои маршруты на группу /api
type RouteRegistrar interface {
	RegisterRoutes(r *gin.RouterGroup)
}

// AppHandlers содержит все HTTP хэндлеры приложения
type AppHandlers struct {
	AuthHandler         *AuthHandler
	FileHandler         *FileHandler
	NotificationHandler *NotificationHandler
	UserHandler         *UserHandler
	AdminHandler        *AdminHandler
}

// All возвращает хэндлеры в порядке регистрации маршрутов
func (h *AppHandlers) All() []RouteRegistrar {
	return []RouteRegistrar{
		h.AuthHandler,
		h.FileHandler,
		h.NotificationHandler,
		h.UserHandler,
		h.AdminHandler,
	}
}
