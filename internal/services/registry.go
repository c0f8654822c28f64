package services

import (
	"docflow_backend/internal/auth"
	"docflow_backend/internal/repositories"
	"docflow_backend/internal/session"
	"docflow_backend/internal/storage"
)

// ServiceContainer содержит все сервисы приложения.
type ServiceContainer struct {
	AuthService         AuthService
	UserService         UserService
	DepartmentService   DepartmentService
	ResponsibleService  ResponsibleService
	DocTypeService      DocTypeService
	DocumentService     DocumentService
	NotificationService NotificationService
	LogService          LogService
}

// Dependencies - внешние зависимости сервисов
type Dependencies struct {
	Storage       storage.Storage
	Tokens        *auth.TokenManager
	Revocations   session.RevocationStore
	Publisher     NotificationPublisher
	MaxUploadSize int64
	LogTailLines  int
}

// NewServiceContainer собирает репозитории и сервисы
func NewServiceContainer(deps Dependencies) *ServiceContainer {
	userRepo := repositories.NewUserRepository()
	departmentRepo := repositories.NewDepartmentRepository()
	responsibleRepo := repositories.NewResponsibleRepository()
	docTypeRepo := repositories.NewDocTypeRepository()
	documentRepo := repositories.NewDocumentRepository()
	notificationRepo := repositories.NewNotificationRepository()

	notificationService := NewNotificationService(notificationRepo, responsibleRepo, documentRepo)

	return &ServiceContainer{
		AuthService:        NewAuthService(userRepo, departmentRepo, deps.Tokens, deps.Revocations),
		UserService:        NewUserService(userRepo, departmentRepo, responsibleRepo, documentRepo, notificationRepo, deps.Storage),
		DepartmentService:  NewDepartmentService(departmentRepo, responsibleRepo, documentRepo),
		ResponsibleService: NewResponsibleService(responsibleRepo, userRepo, departmentRepo),
		DocTypeService:     NewDocTypeService(docTypeRepo, documentRepo, notificationRepo, deps.Storage),
		DocumentService: NewDocumentService(
			documentRepo,
			docTypeRepo,
			departmentRepo,
			notificationRepo,
			notificationService,
			deps.Storage,
			deps.Publisher,
			deps.MaxUploadSize,
		),
		NotificationService: notificationService,
		LogService:          NewLogService(deps.LogTailLines),
	}
}
