package services

import (
	"context"

	"docflow_backend/internal/logger"
	"docflow_backend/internal/models"
	"docflow_backend/internal/repositories"
	"docflow_backend/internal/services/dto"
	"docflow_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// ResponsibleService - реестр ответственных за отделы.
// Изменения не затрагивают уже созданные уведомления.
type ResponsibleService interface {
	List(db *gorm.DB) ([]dto.ResponsibleResponse, error)
	Assign(ctx context.Context, db *gorm.DB, actorID, departmentID, userID uint) (*dto.ResponsibleResponse, error)
	Remove(ctx context.Context, db *gorm.DB, actorID, responsibleID uint) error
}

type responsibleService struct {
	responsibleRepo repositories.ResponsibleRepository
	userRepo        repositories.UserRepository
	departmentRepo  repositories.DepartmentRepository
}

func NewResponsibleService(
	responsibleRepo repositories.ResponsibleRepository,
	userRepo repositories.UserRepository,
	departmentRepo repositories.DepartmentRepository,
) ResponsibleService {
	return &responsibleService{
		responsibleRepo: responsibleRepo,
		userRepo:        userRepo,
		departmentRepo:  departmentRepo,
	}
}

func (s *responsibleService) List(db *gorm.DB) ([]dto.ResponsibleResponse, error) {
	rows, err := s.responsibleRepo.FindAllDetailed(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	result := make([]dto.ResponsibleResponse, 0, len(rows))
	for _, r := range rows {
		result = append(result, dto.ResponsibleResponse{
			ID:         r.ID,
			User:       dto.Ref{ID: r.UserID, Name: r.UserName},
			Department: dto.Ref{ID: r.DepartmentID, Name: r.DepartmentName},
			CreatedAt:  r.CreatedAt,
		})
	}
	return result, nil
}

func (s *responsibleService) Assign(ctx context.Context, db *gorm.DB, actorID, departmentID, userID uint) (*dto.ResponsibleResponse, error) {
	var (
		user       *models.User
		department *models.Department
		assignment = &models.Responsible{UserID: userID, DepartmentID: departmentID}
	)

	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		if department, err = s.departmentRepo.LockByID(tx, departmentID); err != nil {
			return mapRepoError(err)
		}
		if user, err = s.userRepo.FindByID(tx, userID); err != nil {
			return mapRepoError(err)
		}

		exists, err := s.responsibleRepo.Exists(tx, userID, departmentID)
		if err != nil {
			return apperrors.InternalError(err)
		}
		if exists {
			return apperrors.ErrResponsibleExists
		}
		return mapRepoError(s.responsibleRepo.Create(tx, assignment))
	})
	if err != nil {
		logger.Failure(ctx, "Responsible assignment failed",
			"actor_id", actorID, "department_id", departmentID, "user_id", userID, "error", err.Error())
		return nil, err
	}

	logger.Action(ctx, "Responsible assigned",
		"actor_id", actorID, "department_id", departmentID, "user_id", userID)

	return &dto.ResponsibleResponse{
		ID:         assignment.ID,
		User:       dto.Ref{ID: user.ID, Name: user.Name},
		Department: dto.Ref{ID: department.ID, Name: department.Name},
		CreatedAt:  assignment.CreatedAt,
	}, nil
}

func (s *responsibleService) Remove(ctx context.Context, db *gorm.DB, actorID, responsibleID uint) error {
	responsible, err := s.responsibleRepo.FindByID(db, responsibleID)
	if err != nil {
		logger.Failure(ctx, "Responsible removal failed", "actor_id", actorID, "responsible_id", responsibleID)
		return mapRepoError(err)
	}
	if err := s.responsibleRepo.Delete(db, responsibleID); err != nil {
		return mapRepoError(err)
	}

	logger.Action(ctx, "Responsible removed", "actor_id", actorID,
		"department_id", responsible.DepartmentID, "user_id", responsible.UserID)
	return nil
}
