package routes

import (
	"net/http"

	_ "docflow_backend/docs"
	"docflow_backend/internal/handlers"
	"docflow_backend/internal/logger"
	"docflow_backend/internal/middleware"
	"docflow_backend/ws"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// RegisterRoutes регистрирует все HTTP и WebSocket маршруты.
func RegisterRoutes(
	ginRouter *gin.Engine,
	appHandlers *handlers.AppHandlers,
	wsHandler *ws.WebSocketHandler,
	gate *middleware.Auth,
	db *gorm.DB,
) {
	ginRouter.GET("/health", healthCheck(db))
	ginRouter.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := ginRouter.Group("/api")
	{
		for _, h := range appHandlers.All() {
			h.RegisterRoutes(api)
		}

		api.GET("/ws", gate.RequireUser(), wsHandler.ServeWS)
	}
	logger.Info("Routes registered", "websocket", "/api/ws", "swagger", "/swagger/index.html")
}

// healthCheck godoc
// @Summary Проверка состояния
// @Tags system
// @Produce json
// @Success 200 {object} dto.StatusResponse
// @Failure 503 {object} dto.StatusResponse
// @Router /health [get]
func healthCheck(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			logger.CtxWithError(c.Request.Context(), "Health check failed", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
