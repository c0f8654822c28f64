package database

import (
	"fmt"

	"docflow_backend/internal/models"

	"gorm.io/gorm"
)

// AutoMigrate создает/обновляет все таблицы
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("auto migrate failed: %w", err)
	}
	return nil
}
