package services

import (
	"context"

	"docflow_backend/internal/logger"
	"docflow_backend/internal/models"
	"docflow_backend/internal/repositories"
	"docflow_backend/internal/storage"

	"gorm.io/gorm"
)

// purgeDocuments удаляет документы вместе с их уведомлениями внутри tx.
// Возвращает пути blob-ов, которые нужно удалить после коммита.
func purgeDocuments(
	tx *gorm.DB,
	documentRepo repositories.DocumentRepository,
	notificationRepo repositories.NotificationRepository,
	documents []models.Document,
) ([]string, error) {
	if len(documents) == 0 {
		return nil, nil
	}

	ids := make([]uint, 0, len(documents))
	paths := make([]string, 0, len(documents))
	for _, d := range documents {
		ids = append(ids, d.ID)
		paths = append(paths, d.FilePath)
	}

	if err := notificationRepo.DeleteByFileIDs(tx, ids); err != nil {
		return nil, err
	}
	if err := documentRepo.DeleteByIDs(tx, ids); err != nil {
		return nil, err
	}
	return paths, nil
}

// removeBlobs удаляет файлы из хранилища. Ошибки только логируются:
// строки в БД уже удалены.
func removeBlobs(ctx context.Context, store storage.Storage, paths []string) {
	for _, p := range paths {
		if err := store.Delete(ctx, p); err != nil {
			logger.CtxWithError(ctx, "Failed to delete blob", err, "path", p)
			logger.Failure(ctx, "Blob deletion failed", "path", p, "error", err.Error())
		}
	}
}
