package handlers

import (
	"strconv"

	"docflow_backend/internal/auth"
	"docflow_backend/internal/logger"
	"docflow_backend/internal/middleware"
	"docflow_backend/internal/validator"
	"docflow_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ============================================================================
// 1. Базовая структура обработчика
// ============================================================================

type BaseHandler struct {
	validator *validator.Validator
}

func NewBaseHandler(v *validator.Validator) *BaseHandler {
	return &BaseHandler{
		validator: v,
	}
}

// ============================================================================
// 2. Извлечение DB
// ============================================================================

// GetDB - *gorm.DB, положенный DBMiddleware. Без него маршрут собран неверно.
func (h *BaseHandler) GetDB(c *gin.Context) *gorm.DB {
	db, ok := middleware.DBFromContext(c)
	if !ok {
		logger.CtxError(c.Request.Context(), "DB handle missing in request context", "path", c.Request.URL.Path)
		panic("handlers: DBMiddleware is not installed")
	}
	return db
}

// ============================================================================
// 3. Методы привязки и валидации
// ============================================================================

func (h *BaseHandler) BindAndValidate_JSON(c *gin.Context, obj interface{}) bool {
	return h.bindAndValidate(c, obj, c.ShouldBindJSON, "Invalid request body: ")
}

// BindAndValidate_Form - поля multipart/urlencoded формы
func (h *BaseHandler) BindAndValidate_Form(c *gin.Context, obj interface{}) bool {
	return h.bindAndValidate(c, obj, c.ShouldBind, "Invalid form data: ")
}

func (h *BaseHandler) BindAndValidate_Query(c *gin.Context, obj interface{}) bool {
	return h.bindAndValidate(c, obj, c.ShouldBindQuery, "Invalid query parameters: ")
}

func (h *BaseHandler) bindAndValidate(c *gin.Context, obj interface{}, bind func(interface{}) error, prefix string) bool {
	ctx := c.Request.Context()

	if err := bind(obj); err != nil {
		logger.CtxWithError(ctx, "Failed to bind request", err, "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.NewBadRequestError(prefix+err.Error()))
		return false
	}

	if err := h.validator.Validate(obj); err != nil {
		if vErr, ok := err.(*validator.ValidationError); ok {
			logger.CtxWarn(ctx, "Validation failed", "errors", vErr.Errors, "path", c.Request.URL.Path)
			apperrors.HandleError(c, apperrors.ValidationError(vErr.Errors))
		} else {
			logger.CtxWithError(ctx, "Internal validator error", err, "path", c.Request.URL.Path)
			apperrors.HandleError(c, apperrors.InternalError(err))
		}
		return false
	}
	return true
}

// ============================================================================
// 4. Обработчики ошибок
// ============================================================================

// HandleServiceError пишет ошибку сервиса клиенту. Ошибки 5xx логируются
// с причиной, 4xx только на уровне debug: их аудит ведут сами сервисы.
func (h *BaseHandler) HandleServiceError(c *gin.Context, err error) {
	ctx := c.Request.Context()

	appErr, ok := apperrors.AsAppError(err)
	if !ok {
		appErr = apperrors.InternalError(err)
	}

	if appErr.HTTPCode >= 500 {
		logger.CtxWithError(ctx, "Request failed", err, "path", c.Request.URL.Path, "code", appErr.Code)
	} else {
		logger.CtxDebug(ctx, "Request rejected",
			"path", c.Request.URL.Path,
			"code", appErr.Code,
			"status", appErr.HTTPCode,
		)
	}
	apperrors.HandleError(c, appErr)
}

// ============================================================================
// 5. Текущий пользователь
// ============================================================================

// GetIdentity возвращает пользователя или пишет 401.
// Нужен только на маршрутах за RequireUser.
func (h *BaseHandler) GetIdentity(c *gin.Context) (*auth.Identity, bool) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		logger.CtxWarn(c.Request.Context(), "Unauthorized access: identity not found in context",
			"path", c.Request.URL.Path,
			"ip", c.ClientIP(),
		)
		apperrors.HandleError(c, apperrors.ErrNotAuthenticated)
		return nil, false
	}
	return identity, true
}

// ============================================================================
// 6. Функции парсинга
// ============================================================================

func ParseParamUint(c *gin.Context, key string) (uint, error) {
	valueStr := c.Param(key)
	if valueStr == "" {
		return 0, apperrors.NewBadRequestError("Missing required path parameter: " + key)
	}
	value, err := strconv.ParseUint(valueStr, 10, 64)
	if err != nil || value == 0 {
		return 0, apperrors.NewBadRequestError("Invalid path parameter: " + key + " is not a positive integer")
	}
	return uint(value), nil
}

func ParseQueryBool(c *gin.Context, key string, defaultValue bool) bool {
	valueStr := c.Query(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
