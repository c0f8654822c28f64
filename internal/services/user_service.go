package services

import (
	"context"

	"docflow_backend/internal/auth"
	"docflow_backend/internal/logger"
	"docflow_backend/internal/repositories"
	"docflow_backend/internal/services/dto"
	"docflow_backend/internal/storage"
	"docflow_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type UserService interface {
	List(db *gorm.DB) ([]dto.UserResponse, error)
	Update(ctx context.Context, db *gorm.DB, actorID, userID uint, req *dto.UpdateUserRequest) (*dto.UserResponse, error)
	Delete(ctx context.Context, db *gorm.DB, actorID, userID uint) error
}

type userService struct {
	userRepo         repositories.UserRepository
	departmentRepo   repositories.DepartmentRepository
	responsibleRepo  repositories.ResponsibleRepository
	documentRepo     repositories.DocumentRepository
	notificationRepo repositories.NotificationRepository
	storage          storage.Storage
}

func NewUserService(
	userRepo repositories.UserRepository,
	departmentRepo repositories.DepartmentRepository,
	responsibleRepo repositories.ResponsibleRepository,
	documentRepo repositories.DocumentRepository,
	notificationRepo repositories.NotificationRepository,
	store storage.Storage,
) UserService {
	return &userService{
		userRepo:         userRepo,
		departmentRepo:   departmentRepo,
		responsibleRepo:  responsibleRepo,
		documentRepo:     documentRepo,
		notificationRepo: notificationRepo,
		storage:          store,
	}
}

func (s *userService) List(db *gorm.DB) ([]dto.UserResponse, error) {
	users, err := s.userRepo.FindAllWithDepartments(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	result := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		result = append(result, toUserResponse(u))
	}
	return result, nil
}

func (s *userService) Update(ctx context.Context, db *gorm.DB, actorID, userID uint, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if req.Admin != nil && !*req.Admin && actorID == userID {
		return nil, apperrors.ErrCannotModifySelf
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		user, err := s.userRepo.FindByID(tx, userID)
		if err != nil {
			return mapRepoError(err)
		}

		if req.Username != nil && *req.Username != user.Username {
			taken, err := s.userRepo.UsernameTaken(tx, *req.Username, user.ID)
			if err != nil {
				return apperrors.InternalError(err)
			}
			if taken {
				return apperrors.ErrUsernameTaken
			}
			user.Username = *req.Username
		}
		if req.Name != nil {
			user.Name = *req.Name
		}
		if req.DepartmentID != nil {
			if _, err := s.departmentRepo.LockByID(tx, *req.DepartmentID); err != nil {
				return mapRepoError(err)
			}
			user.DepartmentID = *req.DepartmentID
		}
		if req.Admin != nil {
			user.Admin = *req.Admin
		}
		if req.Password != nil && *req.Password != "" {
			if err := auth.ValidatePassword(*req.Password); err != nil {
				return apperrors.ValidationError(map[string]string{"password": err.Error()})
			}
			hash, err := auth.HashPassword(*req.Password)
			if err != nil {
				return apperrors.InternalError(err)
			}
			user.PasswordHash = hash
		}

		return mapRepoError(s.userRepo.Update(tx, user))
	})
	if err != nil {
		logger.Failure(ctx, "User update failed", "actor_id", actorID, "user_id", userID, "error", err.Error())
		return nil, err
	}

	logger.Action(ctx, "User updated", "actor_id", actorID, "user_id", userID)

	user, err := s.userRepo.FindWithDepartment(db, userID)
	if err != nil {
		return nil, mapRepoError(err)
	}
	resp := toUserResponse(*user)
	return &resp, nil
}

// Delete удаляет пользователя вместе с назначениями, уведомлениями
// и загруженными им документами
func (s *userService) Delete(ctx context.Context, db *gorm.DB, actorID, userID uint) error {
	if actorID == userID {
		logger.Failure(ctx, "Attempt to delete self", "user_id", actorID)
		return apperrors.ErrCannotModifySelf
	}

	var paths []string
	err := db.Transaction(func(tx *gorm.DB) error {
		if _, err := s.userRepo.FindByID(tx, userID); err != nil {
			return mapRepoError(err)
		}
		if err := s.responsibleRepo.DeleteByUser(tx, userID); err != nil {
			return apperrors.InternalError(err)
		}
		if err := s.notificationRepo.DeleteByUser(tx, userID); err != nil {
			return apperrors.InternalError(err)
		}

		documents, err := s.documentRepo.FindUploadedBy(tx, userID)
		if err != nil {
			return apperrors.InternalError(err)
		}
		paths, err = purgeDocuments(tx, s.documentRepo, s.notificationRepo, documents)
		if err != nil {
			return apperrors.InternalError(err)
		}

		return mapRepoError(s.userRepo.Delete(tx, userID))
	})
	if err != nil {
		logger.Failure(ctx, "User delete failed", "actor_id", actorID, "user_id", userID, "error", err.Error())
		return err
	}

	removeBlobs(ctx, s.storage, paths)
	logger.Action(ctx, "User deleted", "actor_id", actorID, "user_id", userID, "documents", len(paths))
	return nil
}
