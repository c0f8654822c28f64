package services

import (
	"context"

	"docflow_backend/internal/logger"
	"docflow_backend/internal/models"
	"docflow_backend/internal/services/dto"
)

// EventNotificationCreated - тип websocket-события о новом уведомлении
const EventNotificationCreated = "notification.created"

// NotificationPublisher доставляет события подключенным клиентам.
// Реализуется websocket-хабом.
type NotificationPublisher interface {
	PublishToUser(userID uint, event interface{}) bool
}

type noopPublisher struct{}

func (noopPublisher) PublishToUser(uint, interface{}) bool { return false }

func publishNotifications(ctx context.Context, publisher NotificationPublisher, notifications []models.Notification) {
	delivered := 0
	for _, n := range notifications {
		event := dto.NotificationEvent{
			Type:         EventNotificationCreated,
			Notification: toNotificationResponse(n),
		}
		if publisher.PublishToUser(n.UserID, event) {
			delivered++
		}
	}
	if len(notifications) > 0 {
		logger.CtxDebug(ctx, "Notification events published",
			"total", len(notifications), "delivered", delivered)
	}
}
