package services

import (
	"context"
	"strings"

	"docflow_backend/internal/logger"
	"docflow_backend/internal/models"
	"docflow_backend/internal/repositories"
	"docflow_backend/internal/services/dto"
	"docflow_backend/internal/storage"
	"docflow_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type DocTypeService interface {
	Create(ctx context.Context, db *gorm.DB, actorID uint, name string) (*dto.Ref, error)
	Rename(ctx context.Context, db *gorm.DB, actorID, docTypeID uint, name string) (*dto.Ref, error)
	Delete(ctx context.Context, db *gorm.DB, actorID, docTypeID uint) error
}

type docTypeService struct {
	docTypeRepo      repositories.DocTypeRepository
	documentRepo     repositories.DocumentRepository
	notificationRepo repositories.NotificationRepository
	storage          storage.Storage
}

func NewDocTypeService(
	docTypeRepo repositories.DocTypeRepository,
	documentRepo repositories.DocumentRepository,
	notificationRepo repositories.NotificationRepository,
	store storage.Storage,
) DocTypeService {
	return &docTypeService{
		docTypeRepo:      docTypeRepo,
		documentRepo:     documentRepo,
		notificationRepo: notificationRepo,
		storage:          store,
	}
}

func (s *docTypeService) Create(ctx context.Context, db *gorm.DB, actorID uint, name string) (*dto.Ref, error) {
	docType := &models.DocType{Name: strings.TrimSpace(name)}

	err := db.Transaction(func(tx *gorm.DB) error {
		taken, err := s.docTypeRepo.NameTaken(tx, docType.Name, 0)
		if err != nil {
			return apperrors.InternalError(err)
		}
		if taken {
			return apperrors.ErrDocTypeExists
		}
		return mapRepoError(s.docTypeRepo.Create(tx, docType))
	})
	if err != nil {
		return nil, err
	}

	logger.Action(ctx, "Doc type created", "actor_id", actorID, "doc_type_id", docType.ID, "name", docType.Name)
	return &dto.Ref{ID: docType.ID, Name: docType.Name}, nil
}

func (s *docTypeService) Rename(ctx context.Context, db *gorm.DB, actorID, docTypeID uint, name string) (*dto.Ref, error) {
	name = strings.TrimSpace(name)

	var docType *models.DocType
	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		docType, err = s.docTypeRepo.FindByID(tx, docTypeID)
		if err != nil {
			return mapRepoError(err)
		}
		taken, err := s.docTypeRepo.NameTaken(tx, name, docTypeID)
		if err != nil {
			return apperrors.InternalError(err)
		}
		if taken {
			return apperrors.ErrDocTypeExists
		}
		docType.Name = name
		return mapRepoError(s.docTypeRepo.Update(tx, docType))
	})
	if err != nil {
		logger.Failure(ctx, "Doc type rename failed", "actor_id", actorID, "doc_type_id", docTypeID, "error", err.Error())
		return nil, err
	}

	logger.Action(ctx, "Doc type renamed", "actor_id", actorID, "doc_type_id", docTypeID, "name", name)
	return &dto.Ref{ID: docType.ID, Name: docType.Name}, nil
}

// Delete удаляет тип вместе с документами этого типа и их уведомлениями
func (s *docTypeService) Delete(ctx context.Context, db *gorm.DB, actorID, docTypeID uint) error {
	var paths []string
	err := db.Transaction(func(tx *gorm.DB) error {
		if _, err := s.docTypeRepo.FindByID(tx, docTypeID); err != nil {
			return mapRepoError(err)
		}

		documents, err := s.documentRepo.FindByDocType(tx, docTypeID)
		if err != nil {
			return apperrors.InternalError(err)
		}
		paths, err = purgeDocuments(tx, s.documentRepo, s.notificationRepo, documents)
		if err != nil {
			return apperrors.InternalError(err)
		}
		return mapRepoError(s.docTypeRepo.Delete(tx, docTypeID))
	})
	if err != nil {
		logger.Failure(ctx, "Doc type delete failed", "actor_id", actorID, "doc_type_id", docTypeID, "error", err.Error())
		return err
	}

	removeBlobs(ctx, s.storage, paths)
	logger.Action(ctx, "Doc type deleted", "actor_id", actorID, "doc_type_id", docTypeID, "documents", len(paths))
	return nil
}
