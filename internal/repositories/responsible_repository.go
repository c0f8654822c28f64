package repositories

import (
	"time"

	"docflow_backend/internal/models"

	"gorm.io/gorm"
)

// ResponsibleRow - назначение с именами пользователя и отдела
type ResponsibleRow struct {
	ID             uint
	UserID         uint
	UserName       string
	DepartmentID   uint
	DepartmentName string
	CreatedAt      time.Time
}

type ResponsibleRepository interface {
	Create(db *gorm.DB, responsible *models.Responsible) error
	FindByID(db *gorm.DB, id uint) (*models.Responsible, error)
	Exists(db *gorm.DB, userID, departmentID uint) (bool, error)
	FindUserIDsByDepartment(db *gorm.DB, departmentID uint) ([]uint, error)
	FindAllDetailed(db *gorm.DB) ([]ResponsibleRow, error)
	Delete(db *gorm.DB, id uint) error
	DeleteByDepartment(db *gorm.DB, departmentID uint) error
	DeleteByUser(db *gorm.DB, userID uint) error
}

type ResponsibleRepositoryImpl struct{}

func NewResponsibleRepository() ResponsibleRepository {
	return &ResponsibleRepositoryImpl{}
}

func (r *ResponsibleRepositoryImpl) Create(db *gorm.DB, responsible *models.Responsible) error {
	return translate(db.Create(responsible).Error, nil, ErrResponsibleAlreadyExists)
}

func (r *ResponsibleRepositoryImpl) FindByID(db *gorm.DB, id uint) (*models.Responsible, error) {
	var responsible models.Responsible
	if err := db.First(&responsible, id).Error; err != nil {
		return nil, translate(err, ErrResponsibleNotFound, nil)
	}
	return &responsible, nil
}

func (r *ResponsibleRepositoryImpl) Exists(db *gorm.DB, userID, departmentID uint) (bool, error) {
	var count int64
	err := db.Model(&models.Responsible{}).
		Where("user_id = ? AND department_id = ?", userID, departmentID).
		Count(&count).Error
	return count > 0, err
}

// FindUserIDsByDepartment - снимок ответственных отдела на момент вызова
func (r *ResponsibleRepositoryImpl) FindUserIDsByDepartment(db *gorm.DB, departmentID uint) ([]uint, error) {
	var userIDs []uint
	err := db.Model(&models.Responsible{}).
		Distinct("user_id").
		Where("department_id = ?", departmentID).
		Order("user_id ASC").
		Pluck("user_id", &userIDs).Error
	return userIDs, err
}

func (r *ResponsibleRepositoryImpl) FindAllDetailed(db *gorm.DB) ([]ResponsibleRow, error) {
	var rows []ResponsibleRow
	err := db.Table("responsibles").
		Select("responsibles.id, responsibles.user_id, users.name AS user_name, " +
			"responsibles.department_id, departments.name AS department_name, responsibles.created_at").
		Joins("JOIN users ON users.id = responsibles.user_id").
		Joins("JOIN departments ON departments.id = responsibles.department_id").
		Order("departments.name ASC, users.name ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *ResponsibleRepositoryImpl) Delete(db *gorm.DB, id uint) error {
	result := db.Delete(&models.Responsible{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrResponsibleNotFound
	}
	return nil
}

func (r *ResponsibleRepositoryImpl) DeleteByDepartment(db *gorm.DB, departmentID uint) error {
	return db.Where("department_id = ?", departmentID).Delete(&models.Responsible{}).Error
}

func (r *ResponsibleRepositoryImpl) DeleteByUser(db *gorm.DB, userID uint) error {
	return db.Where("user_id = ?", userID).Delete(&models.Responsible{}).Error
}
