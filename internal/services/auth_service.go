package services

import (
	"context"
	"errors"
	"time"

	"docflow_backend/internal/auth"
	"docflow_backend/internal/logger"
	"docflow_backend/internal/models"
	"docflow_backend/internal/repositories"
	"docflow_backend/internal/services/dto"
	"docflow_backend/internal/session"
	"docflow_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// ============================================
// АУТЕНТИФИКАЦИЯ
// ============================================

type AuthService interface {
	SignIn(ctx context.Context, db *gorm.DB, req *dto.SignInRequest) (*dto.SignInResponse, error)
	SignOut(ctx context.Context, identity *auth.Identity) error

	// ResolveIdentity проверяет токен и возвращает текущего пользователя.
	// Любая ошибка проверки возвращается как Unauthenticated.
	ResolveIdentity(ctx context.Context, db *gorm.DB, token string) (*auth.Identity, error)

	SignUp(ctx context.Context, db *gorm.DB, actorID uint, req *dto.SignUpRequest) (*dto.UserResponse, error)
	CurrentUser(db *gorm.DB, userID uint) (*dto.UserResponse, error)
	TokenTTL() time.Duration
}

type authService struct {
	userRepo       repositories.UserRepository
	departmentRepo repositories.DepartmentRepository
	tokens         *auth.TokenManager
	revocations    session.RevocationStore
}

func NewAuthService(
	userRepo repositories.UserRepository,
	departmentRepo repositories.DepartmentRepository,
	tokens *auth.TokenManager,
	revocations session.RevocationStore,
) AuthService {
	return &authService{
		userRepo:       userRepo,
		departmentRepo: departmentRepo,
		tokens:         tokens,
		revocations:    revocations,
	}
}

func (s *authService) TokenTTL() time.Duration {
	return s.tokens.TTL()
}

func (s *authService) SignIn(ctx context.Context, db *gorm.DB, req *dto.SignInRequest) (*dto.SignInResponse, error) {
	user, err := s.userRepo.FindByUsername(db, req.Username)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			logger.Failure(ctx, "Sign-in failed: unknown user", "username", req.Username)
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		logger.Failure(ctx, "Sign-in failed: wrong password", "username", req.Username)
		return nil, apperrors.ErrInvalidCredentials
	}

	token, claims, err := s.tokens.Issue(user.ID, user.Username, user.Admin)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	profile, err := s.CurrentUser(db, user.ID)
	if err != nil {
		return nil, err
	}

	logger.Action(logger.WithUserID(ctx, user.ID), "User signed in", "username", user.Username)

	return &dto.SignInResponse{
		Message:   "Вход выполнен",
		User:      *profile,
		Token:     token,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

func (s *authService) SignOut(ctx context.Context, identity *auth.Identity) error {
	if identity == nil {
		return apperrors.ErrNotAuthenticated
	}
	if identity.TokenID != "" {
		if err := s.revocations.Revoke(ctx, identity.TokenID, identity.ExpiresAt); err != nil {
			return apperrors.InternalError(err)
		}
	}
	logger.Action(ctx, "User signed out", "user_id", identity.UserID, "username", identity.Username)
	return nil
}

func (s *authService) ResolveIdentity(ctx context.Context, db *gorm.DB, token string) (*auth.Identity, error) {
	if token == "" {
		return nil, apperrors.ErrNotAuthenticated
	}

	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	revoked, err := s.revocations.IsRevoked(ctx, claims.ID)
	if err != nil {
		logger.CtxWithError(ctx, "Revocation store unavailable", err)
		return nil, apperrors.ErrInvalidToken
	}
	if revoked {
		return nil, apperrors.ErrInvalidToken
	}

	user, err := s.userRepo.FindByID(db, claims.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotAuthenticated
		}
		return nil, apperrors.InternalError(err)
	}

	identity := &auth.Identity{
		UserID:       user.ID,
		Username:     user.Username,
		Name:         user.Name,
		DepartmentID: user.DepartmentID,
		Admin:        user.Admin,
		TokenID:      claims.ID,
	}
	if claims.ExpiresAt != nil {
		identity.ExpiresAt = claims.ExpiresAt.Time
	}
	return identity, nil
}

func (s *authService) SignUp(ctx context.Context, db *gorm.DB, actorID uint, req *dto.SignUpRequest) (*dto.UserResponse, error) {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.ValidationError(map[string]string{"password": err.Error()})
	}

	var created *models.User
	err := db.Transaction(func(tx *gorm.DB) error {
		taken, err := s.userRepo.UsernameTaken(tx, req.Username, 0)
		if err != nil {
			return apperrors.InternalError(err)
		}
		if taken {
			return apperrors.ErrUsernameTaken
		}
		if _, err := s.departmentRepo.LockByID(tx, req.DepartmentID); err != nil {
			return mapRepoError(err)
		}

		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			return apperrors.InternalError(err)
		}

		user := &models.User{
			Username:     req.Username,
			PasswordHash: hash,
			Name:         req.Name,
			DepartmentID: req.DepartmentID,
			Admin:        req.Admin,
		}
		if err := s.userRepo.Create(tx, user); err != nil {
			return mapRepoError(err)
		}
		created = user
		return nil
	})
	if err != nil {
		logger.Failure(ctx, "User sign-up failed", "actor_id", actorID, "username", req.Username, "error", err.Error())
		return nil, err
	}

	logger.Action(ctx, "User created", "actor_id", actorID, "user_id", created.ID, "username", created.Username)
	return s.CurrentUser(db, created.ID)
}

func (s *authService) CurrentUser(db *gorm.DB, userID uint) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindWithDepartment(db, userID)
	if err != nil {
		return nil, mapRepoError(err)
	}
	resp := toUserResponse(*user)
	return &resp, nil
}
