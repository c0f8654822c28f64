package handlers

import (
	"net/http"

	"docflow_backend/internal/middleware"
	"docflow_backend/internal/services"
	"docflow_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	*BaseHandler
	authService   services.AuthService
	gate          *middleware.Auth
	signinLimiter gin.HandlerFunc
	cookieSecure  bool
}

func NewAuthHandler(
	base *BaseHandler,
	authService services.AuthService,
	gate *middleware.Auth,
	signinLimiter gin.HandlerFunc,
	cookieSecure bool,
) *AuthHandler {
	return &AuthHandler{
		BaseHandler:   base,
		authService:   authService,
		gate:          gate,
		signinLimiter: signinLimiter,
		cookieSecure:  cookieSecure,
	}
}

// RegisterRoutes регистрирует маршруты /auth
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		signin := []gin.HandlerFunc{h.SignIn}
		if h.signinLimiter != nil {
			signin = append([]gin.HandlerFunc{h.signinLimiter}, signin...)
		}
		auth.POST("/signin", signin...)
		auth.POST("/signout", h.gate.OptionalUser(), h.SignOut)
		auth.POST("/logout", h.gate.OptionalUser(), h.SignOut)
		auth.GET("/check_auth", h.gate.OptionalUser(), h.CheckAuth)
		auth.GET("/user_info", h.gate.RequireUser(), h.UserInfo)
		auth.POST("/signup", h.gate.RequireUser(), h.gate.RequireAdmin(), h.SignUp)
	}
}

// SignIn godoc
// @Summary Вход
// @Description Проверяет логин и пароль, ставит cookie с токеном сессии
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.SignInRequest true "Учетные данные"
// @Success 200 {object} dto.SignInResponse
// @Failure 401 {object} apperrors.ErrorResponse
// @Failure 429 {object} apperrors.ErrorResponse
// @Router /api/auth/signin [post]
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req dto.SignInRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	response, err := h.authService.SignIn(c.Request.Context(), h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.setTokenCookie(c, response.Token, int(h.authService.TokenTTL().Seconds()))
	c.JSON(http.StatusOK, response)
}

// SignOut godoc
// @Summary Выход
// @Description Отзывает токен текущей сессии и удаляет cookie
// @Tags auth
// @Produce json
// @Success 200 {object} dto.MessageResponse
// @Router /api/auth/signout [post]
func (h *AuthHandler) SignOut(c *gin.Context) {
	if identity, ok := middleware.CurrentIdentity(c); ok {
		if err := h.authService.SignOut(c.Request.Context(), identity); err != nil {
			h.HandleServiceError(c, err)
			return
		}
	}

	h.setTokenCookie(c, "", -1)
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Выход выполнен"})
}

// CheckAuth godoc
// @Summary Проверка сессии
// @Description Никогда не возвращает 401: при отсутствии сессии authenticated=false
// @Tags auth
// @Produce json
// @Success 200 {object} dto.CheckAuthResponse
// @Router /api/auth/check_auth [get]
func (h *AuthHandler) CheckAuth(c *gin.Context) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusOK, dto.CheckAuthResponse{Authenticated: false})
		return
	}

	user, err := h.authService.CurrentUser(h.GetDB(c), identity.UserID)
	if err != nil {
		c.JSON(http.StatusOK, dto.CheckAuthResponse{Authenticated: false})
		return
	}
	c.JSON(http.StatusOK, dto.CheckAuthResponse{Authenticated: true, User: user})
}

// UserInfo godoc
// @Summary Текущий пользователь
// @Tags auth
// @Produce json
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} apperrors.ErrorResponse
// @Router /api/auth/user_info [get]
func (h *AuthHandler) UserInfo(c *gin.Context) {
	identity, ok := h.GetIdentity(c)
	if !ok {
		return
	}

	user, err := h.authService.CurrentUser(h.GetDB(c), identity.UserID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// SignUp godoc
// @Summary Создать пользователя
// @Description Только для администратора
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.SignUpRequest true "Новый пользователь"
// @Success 201 {object} dto.UserResponse
// @Failure 403 {object} apperrors.ErrorResponse
// @Failure 404 {object} apperrors.ErrorResponse "Отдел не найден"
// @Failure 409 {object} apperrors.ErrorResponse "Имя занято"
// @Router /api/auth/signup [post]
func (h *AuthHandler) SignUp(c *gin.Context) {
	identity, ok := h.GetIdentity(c)
	if !ok {
		return
	}

	var req dto.SignUpRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	user, err := h.authService.SignUp(c.Request.Context(), h.GetDB(c), identity.UserID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (h *AuthHandler) setTokenCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.gate.CookieName(), token, maxAge, "/", "", h.cookieSecure, true)
}
