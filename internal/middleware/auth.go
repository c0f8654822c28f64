package middleware

import (
	"context"
	"errors"
	"strings"

	"docflow_backend/internal/auth"
	"docflow_backend/internal/logger"
	"docflow_backend/pkg/apperrors"
	"docflow_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// DefaultTokenCookie - имя cookie с токеном сессии
const DefaultTokenCookie = "token"

// IdentityResolver проверяет токен и возвращает пользователя
type IdentityResolver interface {
	ResolveIdentity(ctx context.Context, db *gorm.DB, token string) (*auth.Identity, error)
}

// Auth - проверки сессии для маршрутов
type Auth struct {
	resolver   IdentityResolver
	cookieName string
}

func NewAuth(resolver IdentityResolver, cookieName string) *Auth {
	if cookieName == "" {
		cookieName = DefaultTokenCookie
	}
	return &Auth{resolver: resolver, cookieName: cookieName}
}

// CookieName - имя cookie, из которого читается токен
func (a *Auth) CookieName() string {
	return a.cookieName
}

// RequireUser - пропускает только аутентифицированных пользователей, иначе 401
func (a *Auth) RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, err := a.resolve(c)
		if err != nil {
			logger.Failure(c.Request.Context(), "Authentication failed",
				"path", c.Request.URL.Path,
				"ip", c.ClientIP(),
				"error", err.Error(),
			)
			apperrors.HandleError(c, err)
			return
		}
		setIdentity(c, identity)
		c.Next()
	}
}

// OptionalUser - определяет пользователя, если это возможно. Ошибки не прерывают запрос.
func (a *Auth) OptionalUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, err := a.resolve(c)
		if err == nil {
			setIdentity(c, identity)
		}
		c.Next()
	}
}

// RequireAdmin - ставится после RequireUser
func (a *Auth) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := CurrentIdentity(c)
		if !ok {
			apperrors.HandleError(c, apperrors.ErrNotAuthenticated)
			return
		}
		if !identity.Admin {
			logger.Failure(c.Request.Context(), "Admin access denied",
				"user_id", identity.UserID,
				"path", c.Request.URL.Path,
			)
			apperrors.HandleError(c, apperrors.ErrAdminOnly)
			return
		}
		c.Next()
	}
}

func (a *Auth) resolve(c *gin.Context) (*auth.Identity, error) {
	db, ok := DBFromContext(c)
	if !ok {
		return nil, apperrors.InternalError(errors.New("db handle is missing in context"))
	}
	return a.resolver.ResolveIdentity(c.Request.Context(), db, TokenFromRequest(c, a.cookieName))
}

// TokenFromRequest берет токен из cookie, затем из заголовка Authorization: Bearer
func TokenFromRequest(c *gin.Context, cookieName string) string {
	if token, err := c.Cookie(cookieName); err == nil && token != "" {
		return token
	}
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	return ""
}

// CurrentIdentity возвращает пользователя, положенного RequireUser/OptionalUser
func CurrentIdentity(c *gin.Context) (*auth.Identity, bool) {
	val, exists := c.Get(string(contextkeys.UserContextKey))
	if !exists {
		return nil, false
	}
	identity, ok := val.(*auth.Identity)
	return identity, ok && identity != nil
}

func setIdentity(c *gin.Context, identity *auth.Identity) {
	c.Set(string(contextkeys.UserContextKey), identity)
	ctx := logger.WithUserID(c.Request.Context(), identity.UserID)
	c.Request = c.Request.WithContext(ctx)
}

// DBFromContext - *gorm.DB, положенный DBMiddleware
func DBFromContext(c *gin.Context) (*gorm.DB, bool) {
	val, exists := c.Get(string(contextkeys.DBContextKey))
	if !exists {
		return nil, false
	}
	db, ok := val.(*gorm.DB)
	return db, ok
}
