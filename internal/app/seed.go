package app

import (
	"errors"
	"fmt"

	"docflow_backend/internal/auth"
	"docflow_backend/internal/logger"
	"docflow_backend/internal/models"
	"docflow_backend/internal/repositories"

	"gorm.io/gorm"
)

// AdminSeed - учетная запись первого администратора
type AdminSeed struct {
	Username   string
	Password   string
	Name       string
	Department string
}

// SeedFirstAdmin создает администратора и его отдел, если такого пользователя еще нет.
// Возвращает true, если пользователь создан.
func SeedFirstAdmin(db *gorm.DB, seed AdminSeed) (bool, error) {
	if seed.Username == "" || seed.Password == "" {
		logger.Warn("FIRST_ADMIN_USERNAME or FIRST_ADMIN_PASSWORD is not set. Skipping admin seeding.")
		return false, nil
	}
	if err := auth.ValidatePassword(seed.Password); err != nil {
		return false, fmt.Errorf("first admin password: %w", err)
	}

	userRepo := repositories.NewUserRepository()
	departmentRepo := repositories.NewDepartmentRepository()

	created := false
	err := db.Transaction(func(tx *gorm.DB) error {
		_, err := userRepo.FindByUsername(tx, seed.Username)
		if err == nil {
			logger.Info("Admin user already exists. Skipping creation.", "username", seed.Username)
			return nil
		}
		if !errors.Is(err, repositories.ErrUserNotFound) {
			return fmt.Errorf("failed to check for admin user: %w", err)
		}

		logger.Warn("No admin user found. Creating first admin...", "username", seed.Username)

		department, err := departmentRepo.FindByName(tx, seed.Department)
		if errors.Is(err, repositories.ErrDepartmentNotFound) {
			department = &models.Department{Name: seed.Department}
			err = departmentRepo.Create(tx, department)
		}
		if err != nil {
			return fmt.Errorf("failed to prepare admin department: %w", err)
		}

		hash, err := auth.HashPassword(seed.Password)
		if err != nil {
			return fmt.Errorf("failed to hash admin password: %w", err)
		}

		admin := &models.User{
			Username:     seed.Username,
			PasswordHash: hash,
			Name:         seed.Name,
			DepartmentID: department.ID,
			Admin:        true,
		}
		if err := userRepo.Create(tx, admin); err != nil {
			return fmt.Errorf("failed to create admin user in database: %w", err)
		}

		created = true
		logger.Info("Successfully created first admin user", "username", seed.Username, "department", department.Name)
		return nil
	})
	return created, err
}
