package helpers

import (
	"fmt"
	"path/filepath"
	"testing"

	"docflow_backend/database"
	"docflow_backend/internal/auth"
	"docflow_backend/internal/models"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// DefaultPassword - пароль всех пользователей, созданных через CreateUser
const DefaultPassword = "secret123"

// NewTestDB открывает мигрированную sqlite-базу во временной папке теста
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	auth.HashCost = bcrypt.MinCost

	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_txlock=immediate",
		filepath.Join(t.TempDir(), "test.db"))
	db, err := database.Open(database.Options{
		Driver:   "sqlite",
		DSN:      dsn,
		LogLevel: gormlogger.Silent,
	})
	require.NoError(t, err, "Не удалось открыть тестовую БД")
	require.NoError(t, database.AutoMigrate(db), "Не удалось выполнить миграции")

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// CreateDepartment создает отдел
func CreateDepartment(t *testing.T, db *gorm.DB, name string) *models.Department {
	t.Helper()
	department := &models.Department{Name: name}
	require.NoError(t, db.Create(department).Error, "Создание отдела %s", name)
	return department
}

// CreateUser создает пользователя с паролем DefaultPassword
func CreateUser(t *testing.T, db *gorm.DB, username, name string, departmentID uint, admin bool) *models.User {
	t.Helper()
	hash, err := auth.HashPassword(DefaultPassword)
	require.NoError(t, err)

	user := &models.User{
		Username:     username,
		PasswordHash: hash,
		Name:         name,
		DepartmentID: departmentID,
		Admin:        admin,
	}
	require.NoError(t, db.Create(user).Error, "Создание пользователя %s", username)
	return user
}

// CreateDocType создает тип документа
func CreateDocType(t *testing.T, db *gorm.DB, name string) *models.DocType {
	t.Helper()
	docType := &models.DocType{Name: name}
	require.NoError(t, db.Create(docType).Error, "Создание типа документа %s", name)
	return docType
}

// AssignResponsible назначает пользователя ответственным за отдел
func AssignResponsible(t *testing.T, db *gorm.DB, userID, departmentID uint) *models.Responsible {
	t.Helper()
	responsible := &models.Responsible{UserID: userID, DepartmentID: departmentID}
	require.NoError(t, db.Create(responsible).Error)
	return responsible
}

// CountRows возвращает число строк таблицы модели, удовлетворяющих условию
func CountRows(t *testing.T, db *gorm.DB, model any, query string, args ...any) int64 {
	t.Helper()
	var count int64
	q := db.Model(model)
	if query != "" {
		q = q.Where(query, args...)
	}
	require.NoError(t, q.Count(&count).Error)
	return count
}
