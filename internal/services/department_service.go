package services

import (
	"context"
	"strings"

	"docflow_backend/internal/logger"
	"docflow_backend/internal/models"
	"docflow_backend/internal/repositories"
	"docflow_backend/internal/services/dto"
	"docflow_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type DepartmentService interface {
	List(db *gorm.DB) ([]dto.Ref, error)
	Create(ctx context.Context, db *gorm.DB, actorID uint, name string) (*dto.Ref, error)
	Rename(ctx context.Context, db *gorm.DB, actorID, departmentID uint, name string) (*dto.Ref, error)
	Delete(ctx context.Context, db *gorm.DB, actorID, departmentID uint) error
}

type departmentService struct {
	departmentRepo  repositories.DepartmentRepository
	responsibleRepo repositories.ResponsibleRepository
	documentRepo    repositories.DocumentRepository
}

func NewDepartmentService(
	departmentRepo repositories.DepartmentRepository,
	responsibleRepo repositories.ResponsibleRepository,
	documentRepo repositories.DocumentRepository,
) DepartmentService {
	return &departmentService{
		departmentRepo:  departmentRepo,
		responsibleRepo: responsibleRepo,
		documentRepo:    documentRepo,
	}
}

func (s *departmentService) List(db *gorm.DB) ([]dto.Ref, error) {
	departments, err := s.departmentRepo.FindAll(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	result := make([]dto.Ref, 0, len(departments))
	for _, d := range departments {
		result = append(result, dto.Ref{ID: d.ID, Name: d.Name})
	}
	return result, nil
}

func (s *departmentService) Create(ctx context.Context, db *gorm.DB, actorID uint, name string) (*dto.Ref, error) {
	department := &models.Department{Name: strings.TrimSpace(name)}

	err := db.Transaction(func(tx *gorm.DB) error {
		if _, err := s.departmentRepo.FindByName(tx, department.Name); err == nil {
			return apperrors.ErrDepartmentExists
		}
		return mapRepoError(s.departmentRepo.Create(tx, department))
	})
	if err != nil {
		return nil, err
	}

	logger.Action(ctx, "Department created", "actor_id", actorID, "department_id", department.ID, "name", department.Name)
	return &dto.Ref{ID: department.ID, Name: department.Name}, nil
}

func (s *departmentService) Rename(ctx context.Context, db *gorm.DB, actorID, departmentID uint, name string) (*dto.Ref, error) {
	name = strings.TrimSpace(name)

	var department *models.Department
	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		department, err = s.departmentRepo.FindByID(tx, departmentID)
		if err != nil {
			return mapRepoError(err)
		}
		if existing, err := s.departmentRepo.FindByName(tx, name); err == nil && existing.ID != departmentID {
			return apperrors.ErrDepartmentExists
		}
		department.Name = name
		return mapRepoError(s.departmentRepo.Update(tx, department))
	})
	if err != nil {
		logger.Failure(ctx, "Department rename failed", "actor_id", actorID, "department_id", departmentID, "error", err.Error())
		return nil, err
	}

	logger.Action(ctx, "Department renamed", "actor_id", actorID, "department_id", departmentID, "name", name)
	return &dto.Ref{ID: department.ID, Name: department.Name}, nil
}

// Delete запрещен, пока в отделе есть пользователи. Назначения удаляются,
// документы отдела остаются без отдела.
func (s *departmentService) Delete(ctx context.Context, db *gorm.DB, actorID, departmentID uint) error {
	err := db.Transaction(func(tx *gorm.DB) error {
		if _, err := s.departmentRepo.LockByID(tx, departmentID); err != nil {
			return mapRepoError(err)
		}

		users, err := s.departmentRepo.CountUsers(tx, departmentID)
		if err != nil {
			return apperrors.InternalError(err)
		}
		if users > 0 {
			return apperrors.ErrDepartmentInUse.WithDetails(map[string]int64{"users": users})
		}

		if err := s.responsibleRepo.DeleteByDepartment(tx, departmentID); err != nil {
			return apperrors.InternalError(err)
		}
		if err := s.documentRepo.ClearDepartment(tx, departmentID); err != nil {
			return apperrors.InternalError(err)
		}
		return mapRepoError(s.departmentRepo.Delete(tx, departmentID))
	})
	if err != nil {
		logger.Failure(ctx, "Department delete failed", "actor_id", actorID, "department_id", departmentID, "error", err.Error())
		return err
	}

	logger.Action(ctx, "Department deleted", "actor_id", actorID, "department_id", departmentID)
	return nil
}
