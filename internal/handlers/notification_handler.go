package handlers

import (
	"net/http"

	"docflow_backend/internal/middleware"
	"docflow_backend/internal/services"
	"docflow_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	*BaseHandler
	notificationService services.NotificationService
	gate                *middleware.Auth
}

func NewNotificationHandler(base *BaseHandler, notificationService services.NotificationService, gate *middleware.Auth) *NotificationHandler {
	return &NotificationHandler{
		BaseHandler:         base,
		notificationService: notificationService,
		gate:                gate,
	}
}

func (h *NotificationHandler) RegisterRoutes(r *gin.RouterGroup) {
	notifications := r.Group("/notification")
	notifications.Use(h.gate.RequireUser())
	{
		notifications.GET("", h.GetUnread)
		notifications.GET("/", h.GetUnread)
		notifications.GET("/unread-count", h.GetUnreadCount)
		notifications.PATCH("/read-all", h.MarkAllAsRead)
		notifications.PATCH("/:id/read", h.MarkAsRead)
	}
}

// GetUnread godoc
// @Summary Непрочитанные уведомления
// @Tags notifications
// @Produce json
// @Success 200 {array} dto.NotificationResponse
// @Failure 401 {object} apperrors.ErrorResponse
// @Router /api/notification [get]
func (h *NotificationHandler) GetUnread(c *gin.Context) {
	identity, ok := h.GetIdentity(c)
	if !ok {
		return
	}

	notifications, err := h.notificationService.ListUnread(h.GetDB(c), identity.UserID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, notifications)
}

// GetUnreadCount godoc
// @Summary Число непрочитанных уведомлений
// @Tags notifications
// @Produce json
// @Success 200 {object} dto.UnreadCountResponse
// @Router /api/notification/unread-count [get]
func (h *NotificationHandler) GetUnreadCount(c *gin.Context) {
	identity, ok := h.GetIdentity(c)
	if !ok {
		return
	}

	count, err := h.notificationService.UnreadCount(h.GetDB(c), identity.UserID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.UnreadCountResponse{Count: count})
}

// MarkAsRead godoc
// @Summary Отметить уведомление прочитанным
// @Description Повторная отметка не ошибка. Чужое уведомление не найдено.
// @Tags notifications
// @Produce json
// @Param id path int true "ID уведомления"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /api/notification/{id}/read [patch]
func (h *NotificationHandler) MarkAsRead(c *gin.Context) {
	identity, ok := h.GetIdentity(c)
	if !ok {
		return
	}
	id, err := ParseParamUint(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	if err := h.notificationService.MarkRead(c.Request.Context(), h.GetDB(c), id, identity.UserID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Отмечено как прочитанное"})
}

// MarkAllAsRead godoc
// @Summary Отметить все уведомления прочитанными
// @Tags notifications
// @Produce json
// @Success 200 {object} dto.MarkAllReadResponse
// @Router /api/notification/read-all [patch]
func (h *NotificationHandler) MarkAllAsRead(c *gin.Context) {
	identity, ok := h.GetIdentity(c)
	if !ok {
		return
	}

	updated, err := h.notificationService.MarkAllRead(c.Request.Context(), h.GetDB(c), identity.UserID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MarkAllReadResponse{Updated: updated})
}
