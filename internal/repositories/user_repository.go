package repositories

import (
	"docflow_backend/internal/models"

	"gorm.io/gorm"
)

// UserWithDepartment - пользователь с названием отдела (явный LEFT JOIN)
type UserWithDepartment struct {
	models.User
	DepartmentName *string
}

type UserRepository interface {
	Create(db *gorm.DB, user *models.User) error
	FindByID(db *gorm.DB, id uint) (*models.User, error)
	FindByUsername(db *gorm.DB, username string) (*models.User, error)
	FindWithDepartment(db *gorm.DB, id uint) (*UserWithDepartment, error)
	FindAllWithDepartments(db *gorm.DB) ([]UserWithDepartment, error)
	UsernameTaken(db *gorm.DB, username string, exceptID uint) (bool, error)
	Update(db *gorm.DB, user *models.User) error
	Delete(db *gorm.DB, id uint) error
}

type UserRepositoryImpl struct{}

func NewUserRepository() UserRepository {
	return &UserRepositoryImpl{}
}

func (r *UserRepositoryImpl) Create(db *gorm.DB, user *models.User) error {
	return translate(db.Create(user).Error, nil, ErrUserAlreadyExists)
}

func (r *UserRepositoryImpl) FindByID(db *gorm.DB, id uint) (*models.User, error) {
	var user models.User
	if err := db.First(&user, id).Error; err != nil {
		return nil, translate(err, ErrUserNotFound, nil)
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByUsername(db *gorm.DB, username string) (*models.User, error) {
	var user models.User
	if err := db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, translate(err, ErrUserNotFound, nil)
	}
	return &user, nil
}

func (r *UserRepositoryImpl) withDepartment(db *gorm.DB) *gorm.DB {
	return db.Table("users").
		Select("users.*, departments.name AS department_name").
		Joins("LEFT JOIN departments ON departments.id = users.department_id")
}

func (r *UserRepositoryImpl) FindWithDepartment(db *gorm.DB, id uint) (*UserWithDepartment, error) {
	var rows []UserWithDepartment
	if err := r.withDepartment(db).Where("users.id = ?", id).Limit(1).Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrUserNotFound
	}
	return &rows[0], nil
}

func (r *UserRepositoryImpl) FindAllWithDepartments(db *gorm.DB) ([]UserWithDepartment, error) {
	var rows []UserWithDepartment
	err := r.withDepartment(db).Order("users.id ASC").Scan(&rows).Error
	return rows, err
}

func (r *UserRepositoryImpl) UsernameTaken(db *gorm.DB, username string, exceptID uint) (bool, error) {
	var count int64
	q := db.Model(&models.User{}).Where("username = ?", username)
	if exceptID != 0 {
		q = q.Where("id <> ?", exceptID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *UserRepositoryImpl) Update(db *gorm.DB, user *models.User) error {
	result := db.Model(&models.User{}).
		Where("id = ?", user.ID).
		Select("username", "password_hash", "name", "department_id", "admin").
		Updates(user)
	return translate(result.Error, nil, ErrUserAlreadyExists)
}

func (r *UserRepositoryImpl) Delete(db *gorm.DB, id uint) error {
	result := db.Delete(&models.User{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}
