package repositories

import (
	"time"

	"docflow_backend/internal/models"

	"gorm.io/gorm"
)

// RecipientStateRow - состояние уведомления получателя с его именем и отделом
type RecipientStateRow struct {
	NotificationID uint
	FileID         uint
	UserID         uint
	IsRead         bool
	UserName       string
	DepartmentName *string
}

type NotificationRepository interface {
	CreateBatch(db *gorm.DB, notifications []models.Notification) error
	FindByIDForUser(db *gorm.DB, id, userID uint) (*models.Notification, error)
	MarkRead(db *gorm.DB, id uint, at time.Time) error
	MarkAllRead(db *gorm.DB, userID uint, at time.Time) (int64, error)
	FindUnreadByUser(db *gorm.DB, userID uint) ([]models.Notification, error)
	CountUnread(db *gorm.DB, userID uint) (int64, error)
	FindRecipientStates(db *gorm.DB, fileIDs []uint) ([]RecipientStateRow, error)
	DeleteByFileIDs(db *gorm.DB, fileIDs []uint) error
	DeleteByUser(db *gorm.DB, userID uint) error
}

type NotificationRepositoryImpl struct{}

func NewNotificationRepository() NotificationRepository {
	return &NotificationRepositoryImpl{}
}

func (r *NotificationRepositoryImpl) CreateBatch(db *gorm.DB, notifications []models.Notification) error {
	if len(notifications) == 0 {
		return nil
	}
	return db.Create(&notifications).Error
}

func (r *NotificationRepositoryImpl) FindByIDForUser(db *gorm.DB, id, userID uint) (*models.Notification, error) {
	var notification models.Notification
	err := db.Where("id = ? AND user_id = ?", id, userID).First(&notification).Error
	if err != nil {
		return nil, translate(err, ErrNotificationNotFound, nil)
	}
	return &notification, nil
}

// MarkRead переводит уведомление в прочитанное. Уже прочитанное не трогаем.
func (r *NotificationRepositoryImpl) MarkRead(db *gorm.DB, id uint, at time.Time) error {
	return db.Model(&models.Notification{}).
		Where("id = ? AND is_read = ?", id, false).
		Updates(map[string]interface{}{"is_read": true, "read_at": at}).Error
}

func (r *NotificationRepositoryImpl) MarkAllRead(db *gorm.DB, userID uint, at time.Time) (int64, error) {
	result := db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Updates(map[string]interface{}{"is_read": true, "read_at": at})
	return result.RowsAffected, result.Error
}

func (r *NotificationRepositoryImpl) FindUnreadByUser(db *gorm.DB, userID uint) ([]models.Notification, error) {
	var notifications []models.Notification
	err := db.Where("user_id = ? AND is_read = ?", userID, false).
		Order("created_at DESC, id DESC").
		Find(&notifications).Error
	return notifications, err
}

func (r *NotificationRepositoryImpl) CountUnread(db *gorm.DB, userID uint) (int64, error) {
	var count int64
	err := db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

// FindRecipientStates - все уведомления по документам, в порядке создания
func (r *NotificationRepositoryImpl) FindRecipientStates(db *gorm.DB, fileIDs []uint) ([]RecipientStateRow, error) {
	var rows []RecipientStateRow
	if len(fileIDs) == 0 {
		return rows, nil
	}
	err := db.Table("notifications").
		Select("notifications.id AS notification_id, notifications.file_id, notifications.user_id, "+
			"notifications.is_read, users.name AS user_name, departments.name AS department_name").
		Joins("JOIN users ON users.id = notifications.user_id").
		Joins("LEFT JOIN departments ON departments.id = users.department_id").
		Where("notifications.file_id IN ?", fileIDs).
		Order("notifications.id ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *NotificationRepositoryImpl) DeleteByFileIDs(db *gorm.DB, fileIDs []uint) error {
	if len(fileIDs) == 0 {
		return nil
	}
	return db.Where("file_id IN ?", fileIDs).Delete(&models.Notification{}).Error
}

func (r *NotificationRepositoryImpl) DeleteByUser(db *gorm.DB, userID uint) error {
	return db.Where("user_id = ?", userID).Delete(&models.Notification{}).Error
}
