package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"docflow_backend/internal/logger"
	"docflow_backend/internal/models"
	"docflow_backend/internal/repositories"
	"docflow_backend/internal/services/dto"
	"docflow_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// NewFileMessagePrefix - начало текста уведомления о назначенном файле
const NewFileMessagePrefix = "Вам назначен новый файл: "

// ============================================
// Рассылка уведомлений и учет прочтения
// ============================================

type NotificationService interface {
	// FanOut создает по уведомлению на каждого ответственного отдела.
	// Вызывается внутри транзакции загрузки.
	FanOut(db *gorm.DB, document *models.Document, departmentID uint) ([]models.Notification, error)

	MarkRead(ctx context.Context, db *gorm.DB, notificationID, userID uint) error
	MarkAllRead(ctx context.Context, db *gorm.DB, userID uint) (int64, error)
	ListUnread(db *gorm.DB, userID uint) ([]dto.NotificationResponse, error)
	UnreadCount(db *gorm.DB, userID uint) (int64, error)

	// ReadSummary - сводка прочтения по документам загрузившего
	ReadSummary(db *gorm.DB, uploaderID uint) ([]dto.DocumentSummary, error)

	// InWork - документы, по которым у пользователя есть уведомления
	InWork(db *gorm.DB, userID uint, includeRead bool) ([]dto.DocumentResponse, error)
}

type notificationService struct {
	notificationRepo repositories.NotificationRepository
	responsibleRepo  repositories.ResponsibleRepository
	documentRepo     repositories.DocumentRepository
	now              func() time.Time
}

func NewNotificationService(
	notificationRepo repositories.NotificationRepository,
	responsibleRepo repositories.ResponsibleRepository,
	documentRepo repositories.DocumentRepository,
) NotificationService {
	return &notificationService{
		notificationRepo: notificationRepo,
		responsibleRepo:  responsibleRepo,
		documentRepo:     documentRepo,
		now:              func() time.Time { return time.Now().UTC() },
	}
}

func (s *notificationService) FanOut(db *gorm.DB, document *models.Document, departmentID uint) ([]models.Notification, error) {
	userIDs, err := s.responsibleRepo.FindUserIDsByDepartment(db, departmentID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if len(userIDs) == 0 {
		return []models.Notification{}, nil
	}

	message := fmt.Sprintf("%s%s", NewFileMessagePrefix, document.OriginalFilename)
	notifications := make([]models.Notification, 0, len(userIDs))
	for _, userID := range userIDs {
		notifications = append(notifications, models.Notification{
			FileID:  document.ID,
			UserID:  userID,
			Message: message,
			IsRead:  false,
		})
	}

	if err := s.notificationRepo.CreateBatch(db, notifications); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return notifications, nil
}

func (s *notificationService) MarkRead(ctx context.Context, db *gorm.DB, notificationID, userID uint) error {
	notification, err := s.notificationRepo.FindByIDForUser(db, notificationID, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotificationNotFound) {
			logger.Failure(ctx, "Notification not found on mark read",
				"notification_id", notificationID, "user_id", userID)
		}
		return mapRepoError(err)
	}

	if notification.IsRead {
		return nil
	}

	if err := s.notificationRepo.MarkRead(db, notification.ID, s.now()); err != nil {
		return apperrors.InternalError(err)
	}

	logger.Action(ctx, "Notification marked as read",
		"notification_id", notification.ID, "file_id", notification.FileID, "user_id", userID)
	return nil
}

func (s *notificationService) MarkAllRead(ctx context.Context, db *gorm.DB, userID uint) (int64, error) {
	updated, err := s.notificationRepo.MarkAllRead(db, userID, s.now())
	if err != nil {
		return 0, apperrors.InternalError(err)
	}
	if updated > 0 {
		logger.Action(ctx, "All notifications marked as read", "user_id", userID, "updated", updated)
	}
	return updated, nil
}

func (s *notificationService) ListUnread(db *gorm.DB, userID uint) ([]dto.NotificationResponse, error) {
	notifications, err := s.notificationRepo.FindUnreadByUser(db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	result := make([]dto.NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		result = append(result, toNotificationResponse(n))
	}
	return result, nil
}

func (s *notificationService) UnreadCount(db *gorm.DB, userID uint) (int64, error) {
	count, err := s.notificationRepo.CountUnread(db, userID)
	if err != nil {
		return 0, apperrors.InternalError(err)
	}
	return count, nil
}

// recipientState - последнее увиденное состояние получателя по документу
type recipientState struct {
	info dto.RecipientInfo
	read bool
}

func (s *notificationService) ReadSummary(db *gorm.DB, uploaderID uint) ([]dto.DocumentSummary, error) {
	documents, err := s.documentRepo.FindByUploader(db, uploaderID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	result := make([]dto.DocumentSummary, 0, len(documents))
	if len(documents) == 0 {
		return result, nil
	}

	fileIDs := make([]uint, 0, len(documents))
	for _, d := range documents {
		fileIDs = append(fileIDs, d.ID)
	}

	rows, err := s.notificationRepo.FindRecipientStates(db, fileIDs)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	// Ключ - получатель. Строки идут по id уведомления, поэтому
	// более позднее уведомление перезаписывает более раннее.
	states := make(map[uint]map[uint]recipientState, len(documents))
	order := make(map[uint][]uint, len(documents))
	for _, row := range rows {
		byUser, ok := states[row.FileID]
		if !ok {
			byUser = make(map[uint]recipientState)
			states[row.FileID] = byUser
		}
		if _, seen := byUser[row.UserID]; !seen {
			order[row.FileID] = append(order[row.FileID], row.UserID)
		}
		byUser[row.UserID] = recipientState{
			info: dto.RecipientInfo{
				UserID:     row.UserID,
				Name:       row.UserName,
				Department: row.DepartmentName,
			},
			read: row.IsRead,
		}
	}

	for _, d := range documents {
		readBy := make([]dto.RecipientInfo, 0)
		unreadBy := make([]dto.RecipientInfo, 0)
		for _, userID := range order[d.ID] {
			state := states[d.ID][userID]
			if state.read {
				readBy = append(readBy, state.info)
			} else {
				unreadBy = append(unreadBy, state.info)
			}
		}

		docTypeID := d.DocTypeID
		var docTypeName *string
		if d.DocTypeName != "" {
			name := d.DocTypeName
			docTypeName = &name
		}

		result = append(result, dto.DocumentSummary{
			ID:                d.ID,
			OriginalFilename:  d.OriginalFilename,
			DocType:           dto.NewRef(&docTypeID, docTypeName),
			ValidUntil:        formatDate(d.ValidUntil),
			UploadedAt:        d.UploadedAt,
			TotalResponsibles: len(readBy) + len(unreadBy),
			ReadCount:         len(readBy),
			UnreadCount:       len(unreadBy),
			ReadBy:            readBy,
			UnreadBy:          unreadBy,
		})
	}

	return result, nil
}

func (s *notificationService) InWork(db *gorm.DB, userID uint, includeRead bool) ([]dto.DocumentResponse, error) {
	rows, err := s.documentRepo.FindInWork(db, userID, includeRead)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return toDocumentResponses(rows), nil
}
