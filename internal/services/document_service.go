package services

import (
	"context"
	"errors"
	"path"
	"strings"
	"time"

	"docflow_backend/internal/auth"
	"docflow_backend/internal/logger"
	"docflow_backend/internal/models"
	"docflow_backend/internal/repositories"
	"docflow_backend/internal/services/dto"
	"docflow_backend/internal/storage"
	"docflow_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// DefaultMaxUploadSize - лимит размера файла, если в конфиге не задан
const DefaultMaxUploadSize int64 = 50 << 20

const defaultContentType = "application/octet-stream"

// ============================================
// ДОКУМЕНТЫ
// ============================================

type DocumentService interface {
	Upload(ctx context.Context, db *gorm.DB, uploaderID uint, req *dto.UploadDocumentRequest, file *dto.FilePayload) (*dto.UploadResponse, error)
	ListAll(db *gorm.DB) ([]dto.DocumentResponse, error)
	GetInfo(db *gorm.DB, documentID uint) (*dto.DocumentInfoResponse, error)
	Open(ctx context.Context, db *gorm.DB, documentID uint) (*dto.DownloadFile, error)
	Update(ctx context.Context, db *gorm.DB, userID, documentID uint, req *dto.UpdateDocumentRequest) error
	Replace(ctx context.Context, db *gorm.DB, actor *auth.Identity, documentID uint, file *dto.FilePayload) (*dto.ReplaceResponse, error)
	Delete(ctx context.Context, db *gorm.DB, actor *auth.Identity, documentID uint) error
	ListDocTypes(db *gorm.DB) ([]dto.Ref, error)
}

type documentService struct {
	documentRepo     repositories.DocumentRepository
	docTypeRepo      repositories.DocTypeRepository
	departmentRepo   repositories.DepartmentRepository
	notificationRepo repositories.NotificationRepository
	notifications    NotificationService
	storage          storage.Storage
	publisher        NotificationPublisher
	maxUploadSize    int64
	now              func() time.Time
}

func NewDocumentService(
	documentRepo repositories.DocumentRepository,
	docTypeRepo repositories.DocTypeRepository,
	departmentRepo repositories.DepartmentRepository,
	notificationRepo repositories.NotificationRepository,
	notifications NotificationService,
	store storage.Storage,
	publisher NotificationPublisher,
	maxUploadSize int64,
) DocumentService {
	if publisher == nil {
		publisher = noopPublisher{}
	}
	if maxUploadSize <= 0 {
		maxUploadSize = DefaultMaxUploadSize
	}
	return &documentService{
		documentRepo:     documentRepo,
		docTypeRepo:      docTypeRepo,
		departmentRepo:   departmentRepo,
		notificationRepo: notificationRepo,
		notifications:    notifications,
		storage:          store,
		publisher:        publisher,
		maxUploadSize:    maxUploadSize,
		now:              func() time.Time { return time.Now().UTC() },
	}
}

// Upload сохраняет документ и рассылает уведомления ответственным отдела.
// Строка документа и уведомления создаются в одной транзакции; blob
// записывается последним и удаляется, если транзакция не зафиксирована.
func (s *documentService) Upload(ctx context.Context, db *gorm.DB, uploaderID uint, req *dto.UploadDocumentRequest, file *dto.FilePayload) (*dto.UploadResponse, error) {
	if err := s.checkFile(file); err != nil {
		return nil, err
	}

	validUntil, ok := parseDate(req.ValidUntil)
	if !ok {
		return nil, apperrors.ErrInvalidDate
	}

	now := s.now()
	departmentID := req.ResponsibleID
	originalName := cleanOriginalName(file.Name)
	objectPath := storage.NewObjectPath(originalName, now)

	document := &models.Document{
		Filename:         path.Base(objectPath),
		OriginalFilename: originalName,
		FilePath:         objectPath,
		FileNumber:       emptyToNil(req.DocNumber),
		DocTypeID:        req.DocTypeID,
		ResponsibleID:    &departmentID,
		Permanent:        req.IsPermanent,
		ValidUntil:       validUntil,
		UploadedAt:       now,
		UploadedBy:       uploaderID,
	}

	var created []models.Notification
	blobSaved := false

	err := db.Transaction(func(tx *gorm.DB) error {
		if _, err := s.docTypeRepo.FindByID(tx, req.DocTypeID); err != nil {
			return mapRepoError(err)
		}
		if _, err := s.departmentRepo.LockByID(tx, req.ResponsibleID); err != nil {
			return mapRepoError(err)
		}

		if err := s.documentRepo.Create(tx, document); err != nil {
			return apperrors.InternalError(err)
		}

		notifications, err := s.notifications.FanOut(tx, document, req.ResponsibleID)
		if err != nil {
			return err
		}
		created = notifications

		if err := s.storage.Save(ctx, objectPath, file.Reader, contentTypeOf(file)); err != nil {
			return apperrors.ErrStorage(err)
		}
		blobSaved = true
		return nil
	})
	if err != nil {
		if blobSaved {
			removeBlobs(ctx, s.storage, []string{objectPath})
		}
		logger.Failure(ctx, "Document upload failed",
			"user_id", uploaderID, "filename", originalName, "error", err.Error())
		return nil, err
	}

	publishNotifications(ctx, s.publisher, created)
	logger.Action(ctx, "Document uploaded",
		"user_id", uploaderID,
		"document_id", document.ID,
		"filename", originalName,
		"department_id", req.ResponsibleID,
		"recipients", len(created),
	)

	return &dto.UploadResponse{
		Message:    "Документ загружен и маршрут применён",
		ID:         document.ID,
		Recipients: len(created),
	}, nil
}

func (s *documentService) ListAll(db *gorm.DB) ([]dto.DocumentResponse, error) {
	rows, err := s.documentRepo.FindAll(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return toDocumentResponses(rows), nil
}

func (s *documentService) GetInfo(db *gorm.DB, documentID uint) (*dto.DocumentInfoResponse, error) {
	row, err := s.documentRepo.FindRowByID(db, documentID)
	if err != nil {
		return nil, mapRepoError(err)
	}

	doc := toDocumentResponse(*row)
	return &dto.DocumentInfoResponse{
		ID:               doc.ID,
		OriginalFilename: doc.OriginalFilename,
		DocNumber:        doc.FileNumber,
		DocType:          doc.DocType,
		Responsible:      doc.Responsible,
		ValidUntil:       doc.ValidUntil,
		Permanent:        doc.Permanent,
	}, nil
}

// Open открывает содержимое документа. Отсутствие строки или blob-а - NotFound.
func (s *documentService) Open(ctx context.Context, db *gorm.DB, documentID uint) (*dto.DownloadFile, error) {
	document, err := s.documentRepo.FindByID(db, documentID)
	if err != nil {
		if errors.Is(err, repositories.ErrDocumentNotFound) {
			logger.Failure(ctx, "Download of missing document", "document_id", documentID)
		}
		return nil, mapRepoError(err)
	}

	size, err := s.storage.GetSize(ctx, document.FilePath)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			logger.Failure(ctx, "Download of document without blob",
				"document_id", documentID, "path", document.FilePath)
			return nil, apperrors.ErrDocumentNotFound
		}
		return nil, apperrors.ErrStorage(err)
	}

	content, err := s.storage.Get(ctx, document.FilePath)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, apperrors.ErrDocumentNotFound
		}
		return nil, apperrors.ErrStorage(err)
	}

	return &dto.DownloadFile{
		Filename: DownloadName(document.OriginalFilename, document.FilePath),
		Size:     size,
		Content:  content,
	}, nil
}

// Update меняет метаданные. Чужой документ неотличим от несуществующего.
// Смена отдела не рассылает уведомления повторно.
func (s *documentService) Update(ctx context.Context, db *gorm.DB, userID, documentID uint, req *dto.UpdateDocumentRequest) error {
	var document *models.Document
	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		document, err = s.documentRepo.FindByID(tx, documentID)
		if err != nil || document.UploadedBy != userID {
			logger.Failure(ctx, "Document update rejected", "document_id", documentID, "user_id", userID)
			if err != nil && !errors.Is(err, repositories.ErrDocumentNotFound) {
				return apperrors.InternalError(err)
			}
			return apperrors.ErrDocumentNotFound
		}
		return s.applyUpdate(tx, document, req)
	})
	if err != nil {
		return err
	}

	logger.Action(ctx, "Document updated",
		"user_id", userID, "document_id", documentID, "filename", document.OriginalFilename)
	return nil
}

func (s *documentService) applyUpdate(tx *gorm.DB, document *models.Document, req *dto.UpdateDocumentRequest) error {
	if req.DocTypeID != nil {
		if _, err := s.docTypeRepo.FindByID(tx, *req.DocTypeID); err != nil {
			return mapRepoError(err)
		}
		document.DocTypeID = *req.DocTypeID
	}
	if req.ResponsibleID != nil {
		if _, err := s.departmentRepo.LockByID(tx, *req.ResponsibleID); err != nil {
			return mapRepoError(err)
		}
		responsibleID := *req.ResponsibleID
		document.ResponsibleID = &responsibleID
	}
	if req.Permanent != nil {
		document.Permanent = *req.Permanent
	}
	if req.DocNumber != nil {
		document.FileNumber = emptyToNil(req.DocNumber)
	}
	if req.OriginalFilename != nil {
		name := strings.TrimSpace(*req.OriginalFilename)
		if name == "" {
			return apperrors.ValidationError(map[string]string{"original_filename": "Must not be blank"})
		}
		document.OriginalFilename = name
	}
	if req.ValidUntil != nil {
		validUntil, ok := parseDate(req.ValidUntil)
		if !ok {
			return apperrors.ErrInvalidDate
		}
		document.ValidUntil = validUntil
	}

	if err := s.documentRepo.Update(tx, document); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// Replace подменяет файл документа. Новый blob пишется до транзакции,
// старый удаляется только после коммита.
func (s *documentService) Replace(ctx context.Context, db *gorm.DB, actor *auth.Identity, documentID uint, file *dto.FilePayload) (*dto.ReplaceResponse, error) {
	document, err := s.documentRepo.FindByID(db, documentID)
	if err != nil {
		return nil, mapRepoError(err)
	}
	if !actor.CanManage(document.UploadedBy) {
		logger.Failure(ctx, "Document replace forbidden", "document_id", documentID, "user_id", actor.UserID)
		return nil, apperrors.ErrDocumentAccessDenied
	}
	if err := s.checkFile(file); err != nil {
		return nil, err
	}

	now := s.now()
	oldPath := document.FilePath
	originalName := cleanOriginalName(file.Name)
	newPath := storage.NewObjectPath(originalName, now)

	if err := s.storage.Save(ctx, newPath, file.Reader, contentTypeOf(file)); err != nil {
		return nil, apperrors.ErrStorage(err)
	}

	document.Filename = path.Base(newPath)
	document.OriginalFilename = originalName
	document.FilePath = newPath
	document.UploadedAt = now

	err = db.Transaction(func(tx *gorm.DB) error {
		return s.documentRepo.Update(tx, document)
	})
	if err != nil {
		removeBlobs(ctx, s.storage, []string{newPath})
		return nil, apperrors.InternalError(err)
	}

	removeBlobs(ctx, s.storage, []string{oldPath})
	logger.Action(ctx, "Document file replaced",
		"user_id", actor.UserID, "document_id", documentID, "filename", originalName)

	return &dto.ReplaceResponse{
		Status:           "file replaced",
		ID:               document.ID,
		OriginalFilename: document.OriginalFilename,
		Filename:         document.Filename,
		UploadedAt:       document.UploadedAt,
	}, nil
}

// Delete удаляет документ с уведомлениями, затем его blob
func (s *documentService) Delete(ctx context.Context, db *gorm.DB, actor *auth.Identity, documentID uint) error {
	document, err := s.documentRepo.FindByID(db, documentID)
	if err != nil {
		if errors.Is(err, repositories.ErrDocumentNotFound) {
			logger.Failure(ctx, "Delete of missing document", "document_id", documentID, "user_id", actor.UserID)
		}
		return mapRepoError(err)
	}
	if !actor.CanManage(document.UploadedBy) {
		logger.Failure(ctx, "Document delete forbidden", "document_id", documentID, "user_id", actor.UserID)
		return apperrors.ErrDocumentAccessDenied
	}

	var paths []string
	err = db.Transaction(func(tx *gorm.DB) error {
		var err error
		paths, err = purgeDocuments(tx, s.documentRepo, s.notificationRepo, []models.Document{*document})
		return err
	})
	if err != nil {
		return apperrors.InternalError(err)
	}

	removeBlobs(ctx, s.storage, paths)
	logger.Action(ctx, "Document deleted", "user_id", actor.UserID, "document_id", documentID)
	return nil
}

func (s *documentService) ListDocTypes(db *gorm.DB) ([]dto.Ref, error) {
	docTypes, err := s.docTypeRepo.FindAll(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	result := make([]dto.Ref, 0, len(docTypes))
	for _, t := range docTypes {
		result = append(result, dto.Ref{ID: t.ID, Name: t.Name})
	}
	return result, nil
}

func (s *documentService) checkFile(file *dto.FilePayload) error {
	if file == nil || file.Reader == nil || strings.TrimSpace(file.Name) == "" {
		return apperrors.ErrFileRequired
	}
	if file.Size > s.maxUploadSize {
		return apperrors.ErrFileTooLarge.WithDetails(map[string]int64{"max_size": s.maxUploadSize})
	}
	return nil
}

// DownloadName - имя файла для Content-Disposition. Расширение хранимого
// blob-а добавляется, только если в оригинальном имени его нет.
func DownloadName(originalFilename, filePath string) string {
	if path.Ext(originalFilename) != "" {
		return originalFilename
	}
	return originalFilename + path.Ext(filePath)
}

// cleanOriginalName отрезает от имени клиента каталоги
func cleanOriginalName(name string) string {
	name = strings.ReplaceAll(strings.TrimSpace(name), "\\", "/")
	base := path.Base(name)
	if base == "." || base == "/" || base == "" {
		return "file"
	}
	return base
}

func contentTypeOf(file *dto.FilePayload) string {
	if file.ContentType == "" {
		return defaultContentType
	}
	return file.ContentType
}

func emptyToNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
