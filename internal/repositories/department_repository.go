package repositories

import (
	"docflow_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DepartmentRepository interface {
	Create(db *gorm.DB, department *models.Department) error
	FindByID(db *gorm.DB, id uint) (*models.Department, error)
	// LockByID - FindByID с SELECT ... FOR UPDATE. Удаление отдела и все записи,
	// ссылающиеся на отдел, берут эту блокировку внутри своей транзакции.
	LockByID(db *gorm.DB, id uint) (*models.Department, error)
	FindByName(db *gorm.DB, name string) (*models.Department, error)
	FindAll(db *gorm.DB) ([]models.Department, error)
	Update(db *gorm.DB, department *models.Department) error
	Delete(db *gorm.DB, id uint) error
	CountUsers(db *gorm.DB, id uint) (int64, error)
}

type DepartmentRepositoryImpl struct{}

func NewDepartmentRepository() DepartmentRepository {
	return &DepartmentRepositoryImpl{}
}

func (r *DepartmentRepositoryImpl) Create(db *gorm.DB, department *models.Department) error {
	return translate(db.Create(department).Error, nil, ErrDepartmentAlreadyExists)
}

func (r *DepartmentRepositoryImpl) FindByID(db *gorm.DB, id uint) (*models.Department, error) {
	var department models.Department
	if err := db.First(&department, id).Error; err != nil {
		return nil, translate(err, ErrDepartmentNotFound, nil)
	}
	return &department, nil
}

func (r *DepartmentRepositoryImpl) LockByID(db *gorm.DB, id uint) (*models.Department, error) {
	return r.FindByID(db.Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}), id)
}

func (r *DepartmentRepositoryImpl) FindByName(db *gorm.DB, name string) (*models.Department, error) {
	var department models.Department
	if err := db.Where("name = ?", name).First(&department).Error; err != nil {
		return nil, translate(err, ErrDepartmentNotFound, nil)
	}
	return &department, nil
}

func (r *DepartmentRepositoryImpl) FindAll(db *gorm.DB) ([]models.Department, error) {
	var departments []models.Department
	err := db.Order("name ASC").Find(&departments).Error
	return departments, err
}

func (r *DepartmentRepositoryImpl) Update(db *gorm.DB, department *models.Department) error {
	result := db.Model(&models.Department{}).
		Where("id = ?", department.ID).
		Update("name", department.Name)
	return translate(result.Error, nil, ErrDepartmentAlreadyExists)
}

func (r *DepartmentRepositoryImpl) Delete(db *gorm.DB, id uint) error {
	result := db.Delete(&models.Department{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrDepartmentNotFound
	}
	return nil
}

func (r *DepartmentRepositoryImpl) CountUsers(db *gorm.DB, id uint) (int64, error) {
	var count int64
	err := db.Model(&models.User{}).Where("department_id = ?", id).Count(&count).Error
	return count, err
}
