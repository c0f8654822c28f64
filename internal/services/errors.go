package services

import (
	"errors"

	"docflow_backend/internal/repositories"
	"docflow_backend/internal/storage"
	"docflow_backend/pkg/apperrors"
)

// mapRepoError переводит sentinel-ошибки репозиториев в AppError
func mapRepoError(err error) error {
	if err == nil {
		return nil
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, repositories.ErrDocumentNotFound):
		return apperrors.ErrDocumentNotFound
	case errors.Is(err, repositories.ErrDocTypeNotFound):
		return apperrors.ErrDocTypeNotFound
	case errors.Is(err, repositories.ErrDocTypeAlreadyExists):
		return apperrors.ErrDocTypeExists
	case errors.Is(err, repositories.ErrNotificationNotFound):
		return apperrors.ErrNotificationNotFound
	case errors.Is(err, repositories.ErrUserNotFound):
		return apperrors.ErrUserNotFound
	case errors.Is(err, repositories.ErrUserAlreadyExists):
		return apperrors.ErrUsernameTaken
	case errors.Is(err, repositories.ErrDepartmentNotFound):
		return apperrors.ErrDepartmentNotFound
	case errors.Is(err, repositories.ErrDepartmentAlreadyExists):
		return apperrors.ErrDepartmentExists
	case errors.Is(err, repositories.ErrResponsibleNotFound):
		return apperrors.ErrResponsibleNotFound
	case errors.Is(err, repositories.ErrResponsibleAlreadyExists):
		return apperrors.ErrResponsibleExists
	case errors.Is(err, storage.ErrNotFound):
		return apperrors.ErrDocumentNotFound
	default:
		return apperrors.InternalError(err)
	}
}
