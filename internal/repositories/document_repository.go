package repositories

import (
	"docflow_backend/internal/models"

	"gorm.io/gorm"
)

// DocumentRow - документ с названием типа и отдела (явные JOIN вместо preload)
type DocumentRow struct {
	models.Document
	DocTypeName    string
	DepartmentName *string
	UploaderName   *string
}

type DocumentRepository interface {
	Create(db *gorm.DB, document *models.Document) error
	FindByID(db *gorm.DB, id uint) (*models.Document, error)
	FindRowByID(db *gorm.DB, id uint) (*DocumentRow, error)
	FindAll(db *gorm.DB) ([]DocumentRow, error)
	FindByUploader(db *gorm.DB, userID uint) ([]DocumentRow, error)
	FindInWork(db *gorm.DB, userID uint, includeRead bool) ([]DocumentRow, error)
	FindByDocType(db *gorm.DB, docTypeID uint) ([]models.Document, error)
	FindUploadedBy(db *gorm.DB, userID uint) ([]models.Document, error)
	HasNotificationFor(db *gorm.DB, documentID, userID uint) (bool, error)
	Update(db *gorm.DB, document *models.Document) error
	ClearDepartment(db *gorm.DB, departmentID uint) error
	DeleteByIDs(db *gorm.DB, ids []uint) error
}

type DocumentRepositoryImpl struct{}

func NewDocumentRepository() DocumentRepository {
	return &DocumentRepositoryImpl{}
}

func (r *DocumentRepositoryImpl) Create(db *gorm.DB, document *models.Document) error {
	return db.Create(document).Error
}

func (r *DocumentRepositoryImpl) FindByID(db *gorm.DB, id uint) (*models.Document, error) {
	var document models.Document
	if err := db.First(&document, id).Error; err != nil {
		return nil, translate(err, ErrDocumentNotFound, nil)
	}
	return &document, nil
}

func (r *DocumentRepositoryImpl) rows(db *gorm.DB) *gorm.DB {
	return db.Table("documents").
		Select("documents.*, doc_types.name AS doc_type_name, " +
			"departments.name AS department_name, users.name AS uploader_name").
		Joins("LEFT JOIN doc_types ON doc_types.id = documents.doc_type_id").
		Joins("LEFT JOIN departments ON departments.id = documents.responsible_id").
		Joins("LEFT JOIN users ON users.id = documents.uploaded_by")
}

func (r *DocumentRepositoryImpl) FindRowByID(db *gorm.DB, id uint) (*DocumentRow, error) {
	var rows []DocumentRow
	if err := r.rows(db).Where("documents.id = ?", id).Limit(1).Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrDocumentNotFound
	}
	return &rows[0], nil
}

func (r *DocumentRepositoryImpl) FindAll(db *gorm.DB) ([]DocumentRow, error) {
	var rows []DocumentRow
	err := r.rows(db).Order("documents.uploaded_at DESC, documents.id DESC").Scan(&rows).Error
	return rows, err
}

func (r *DocumentRepositoryImpl) FindByUploader(db *gorm.DB, userID uint) ([]DocumentRow, error) {
	var rows []DocumentRow
	err := r.rows(db).
		Where("documents.uploaded_by = ?", userID).
		Order("documents.uploaded_at DESC, documents.id DESC").
		Scan(&rows).Error
	return rows, err
}

// FindInWork - документы, по которым у пользователя есть уведомление.
// Без includeRead - только с непрочитанным уведомлением.
func (r *DocumentRepositoryImpl) FindInWork(db *gorm.DB, userID uint, includeRead bool) ([]DocumentRow, error) {
	sub := db.Table("notifications").
		Select("1").
		Where("notifications.file_id = documents.id AND notifications.user_id = ?", userID)
	if !includeRead {
		sub = sub.Where("notifications.is_read = ?", false)
	}

	var rows []DocumentRow
	err := r.rows(db).
		Where("EXISTS (?)", sub).
		Order("documents.uploaded_at DESC, documents.id DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *DocumentRepositoryImpl) FindByDocType(db *gorm.DB, docTypeID uint) ([]models.Document, error) {
	var documents []models.Document
	err := db.Where("doc_type_id = ?", docTypeID).Order("id ASC").Find(&documents).Error
	return documents, err
}

func (r *DocumentRepositoryImpl) FindUploadedBy(db *gorm.DB, userID uint) ([]models.Document, error) {
	var documents []models.Document
	err := db.Where("uploaded_by = ?", userID).Order("id ASC").Find(&documents).Error
	return documents, err
}

func (r *DocumentRepositoryImpl) HasNotificationFor(db *gorm.DB, documentID, userID uint) (bool, error) {
	var count int64
	err := db.Model(&models.Notification{}).
		Where("file_id = ? AND user_id = ?", documentID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *DocumentRepositoryImpl) Update(db *gorm.DB, document *models.Document) error {
	return db.Save(document).Error
}

// ClearDepartment отвязывает документы от удаляемого отдела
func (r *DocumentRepositoryImpl) ClearDepartment(db *gorm.DB, departmentID uint) error {
	return db.Model(&models.Document{}).
		Where("responsible_id = ?", departmentID).
		Update("responsible_id", nil).Error
}

func (r *DocumentRepositoryImpl) DeleteByIDs(db *gorm.DB, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	return db.Where("id IN ?", ids).Delete(&models.Document{}).Error
}
