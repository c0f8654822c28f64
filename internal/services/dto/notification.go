package dto

import (
	"time"
)

// NotificationResponse - уведомление получателя
type NotificationResponse struct {
	ID        uint      `json:"id"`
	FileID    uint      `json:"file_id"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
	IsRead    bool      `json:"is_read"`
}

// RecipientInfo - получатель в сводке
type RecipientInfo struct {
	UserID     uint    `json:"user_id"`
	Name       string  `json:"name"`
	Department *string `json:"department"`
}

// DocumentSummary - сводка прочтения по документу загрузившего
type DocumentSummary struct {
	ID                uint            `json:"id"`
	OriginalFilename  string          `json:"original_filename"`
	DocType           *Ref            `json:"doc_type"`
	ValidUntil        *string         `json:"valid_until"`
	UploadedAt        time.Time       `json:"uploaded_at"`
	TotalResponsibles int             `json:"total_responsibles"`
	ReadCount         int             `json:"read_count"`
	UnreadCount       int             `json:"unread_count"`
	ReadBy            []RecipientInfo `json:"read_by"`
	UnreadBy          []RecipientInfo `json:"unread_by"`
}

// UnreadCountResponse - число непрочитанных
type UnreadCountResponse struct {
	Count int64 `json:"count"`
}

// MarkAllReadResponse - сколько уведомлений отмечено
type MarkAllReadResponse struct {
	Updated int64 `json:"updated"`
}

// NotificationEvent - событие, отправляемое по websocket
type NotificationEvent struct {
	Type         string               `json:"type"`
	Notification NotificationResponse `json:"notification"`
}
