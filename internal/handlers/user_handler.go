package handlers

import (
	"net/http"

	"docflow_backend/internal/middleware"
	"docflow_backend/internal/services"
	"docflow_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

// UserHandler - управление пользователями администратором
type UserHandler struct {
	*BaseHandler
	userService services.UserService
	gate        *middleware.Auth
}

func NewUserHandler(base *BaseHandler, userService services.UserService, gate *middleware.Auth) *UserHandler {
	return &UserHandler{
		BaseHandler: base,
		userService: userService,
		gate:        gate,
	}
}

func (h *UserHandler) RegisterRoutes(r *gin.RouterGroup) {
	users := r.Group("/admin/users")
	users.Use(h.gate.RequireUser(), h.gate.RequireAdmin())
	{
		users.GET("", h.ListUsers)
		users.PUT("/:id", h.UpdateUser)
		users.DELETE("/:id", h.DeleteUser)
	}
}

// ListUsers godoc
// @Summary Пользователи с отделами
// @Tags admin
// @Produce json
// @Success 200 {array} dto.UserResponse
// @Failure 403 {object} apperrors.ErrorResponse
// @Router /api/admin/users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.List(h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// UpdateUser godoc
// @Summary Изменить пользователя
// @Description Частичное обновление. Новый пароль хешируется.
// @Tags admin
// @Accept json
// @Produce json
// @Param id path int true "ID пользователя"
// @Param request body dto.UpdateUserRequest true "Изменяемые поля"
// @Success 200 {object} dto.UserResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Failure 409 {object} apperrors.ErrorResponse
// @Router /api/admin/users/{id} [put]
func (h *UserHandler) UpdateUser(c *gin.Context) {
	identity, ok := h.GetIdentity(c)
	if !ok {
		return
	}
	id, err := ParseParamUint(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	var req dto.UpdateUserRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	user, err := h.userService.Update(c.Request.Context(), h.GetDB(c), identity.UserID, id, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// DeleteUser godoc
// @Summary Удалить пользователя
// @Description Удаляет назначения, уведомления и загруженные пользователем документы. Удалить себя нельзя.
// @Tags admin
// @Produce json
// @Param id path int true "ID пользователя"
// @Success 200 {object} dto.StatusResponse
// @Failure 403 {object} apperrors.ErrorResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /api/admin/users/{id} [delete]
func (h *UserHandler) DeleteUser(c *gin.Context) {
	identity, ok := h.GetIdentity(c)
	if !ok {
		return
	}
	id, err := ParseParamUint(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	if err := h.userService.Delete(c.Request.Context(), h.GetDB(c), identity.UserID, id); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.StatusResponse{Status: "deleted"})
}
