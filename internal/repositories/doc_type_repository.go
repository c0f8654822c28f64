package repositories

import (
	"docflow_backend/internal/models"

	"gorm.io/gorm"
)

type DocTypeRepository interface {
	Create(db *gorm.DB, docType *models.DocType) error
	FindByID(db *gorm.DB, id uint) (*models.DocType, error)
	FindAll(db *gorm.DB) ([]models.DocType, error)
	NameTaken(db *gorm.DB, name string, exceptID uint) (bool, error)
	Update(db *gorm.DB, docType *models.DocType) error
	Delete(db *gorm.DB, id uint) error
}

type DocTypeRepositoryImpl struct{}

func NewDocTypeRepository() DocTypeRepository {
	return &DocTypeRepositoryImpl{}
}

func (r *DocTypeRepositoryImpl) Create(db *gorm.DB, docType *models.DocType) error {
	return translate(db.Create(docType).Error, nil, ErrDocTypeAlreadyExists)
}

func (r *DocTypeRepositoryImpl) FindByID(db *gorm.DB, id uint) (*models.DocType, error) {
	var docType models.DocType
	if err := db.First(&docType, id).Error; err != nil {
		return nil, translate(err, ErrDocTypeNotFound, nil)
	}
	return &docType, nil
}

func (r *DocTypeRepositoryImpl) FindAll(db *gorm.DB) ([]models.DocType, error) {
	var docTypes []models.DocType
	err := db.Order("name ASC").Find(&docTypes).Error
	return docTypes, err
}

func (r *DocTypeRepositoryImpl) NameTaken(db *gorm.DB, name string, exceptID uint) (bool, error) {
	var count int64
	q := db.Model(&models.DocType{}).Where("name = ?", name)
	if exceptID != 0 {
		q = q.Where("id <> ?", exceptID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *DocTypeRepositoryImpl) Update(db *gorm.DB, docType *models.DocType) error {
	result := db.Model(&models.DocType{}).Where("id = ?", docType.ID).Update("name", docType.Name)
	return translate(result.Error, nil, ErrDocTypeAlreadyExists)
}

func (r *DocTypeRepositoryImpl) Delete(db *gorm.DB, id uint) error {
	result := db.Delete(&models.DocType{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrDocTypeNotFound
	}
	return nil
}
