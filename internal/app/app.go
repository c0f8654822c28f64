package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"docflow_backend/database"
	"docflow_backend/internal/auth"
	"docflow_backend/internal/config"
	"docflow_backend/internal/handlers"
	"docflow_backend/internal/logger"
	"docflow_backend/internal/middleware"
	"docflow_backend/internal/routes"
	"docflow_backend/internal/services"
	"docflow_backend/internal/session"
	"docflow_backend/internal/storage"
	"docflow_backend/internal/validator"
	"docflow_backend/internal/workers"
	"docflow_backend/ws"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	if err := logger.InitAudit(logger.AuditConfig{
		Dir:        cfg.Logs.Dir,
		MaxSizeMB:  cfg.Logs.MaxSizeMB,
		MaxBackups: cfg.Logs.MaxBackups,
	}); err != nil {
		logger.Fatal("Failed to open audit logs", "error", err)
	}
	defer logger.CloseAudit()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("Connecting to database...", "driver", cfg.Database.Driver)
	gormDB, err := database.Open(database.Options{
		Driver:       cfg.Database.Driver,
		DSN:          cfg.Database.DSN,
		MaxOpenConns: cfg.Database.MaxOpenConns,
		MaxIdleConns: cfg.Database.MaxIdleConns,
	})
	if err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if cfg.Database.AutoMigrate {
		if err := database.AutoMigrate(gormDB); err != nil {
			logger.Fatal("Failed to migrate database", "error", err)
		}
		logger.Info("Database migrated")
	}

	if _, err := SeedFirstAdmin(gormDB, AdminSeed{
		Username:   cfg.FirstAdmin.Username,
		Password:   cfg.FirstAdmin.Password,
		Name:       cfg.FirstAdmin.Name,
		Department: cfg.FirstAdmin.Department,
	}); err != nil {
		// без администратора сервер не запускаем
		logger.Fatal("Failed to seed first admin user", "error", err)
	}

	ginRouter, cleanup, err := SetupRouter(ctx, cfg, gormDB)
	if err != nil {
		logger.Fatal("Failed to build router", "error", err)
	}
	defer cleanup()

	if cfg.Backup.Enabled {
		startBackupWorker(ctx, cfg)
	}

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              address,
		Handler:           ginRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server starting", "address", address)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server startup error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}
	logger.Info("Server stopped")
}

// SetupRouter собирает хранилище, сервисы, хэндлеры и маршруты.
// Хаб websocket живет, пока не отменен ctx. cleanup закрывает внешние подключения.
func SetupRouter(ctx context.Context, cfg *config.Config, gormDB *gorm.DB) (*gin.Engine, func(), error) {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	storageInstance, err := storage.NewStorage(storage.Config{
		Type:      cfg.Storage.Type,
		BasePath:  cfg.Storage.BasePath,
		Bucket:    cfg.Storage.Bucket,
		Region:    cfg.Storage.Region,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		Endpoint:  cfg.Storage.Endpoint,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	logger.Info("Storage initialized", "type", cfg.Storage.Type)

	revocations, redisClient, err := initializeRevocations(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if redisClient != nil {
			_ = redisClient.Close()
		}
	}

	// 1. WebSocket
	wsManager := ws.NewWebSocketManager()
	go wsManager.Run(ctx)

	// 2. Сервисы
	serviceContainer := services.NewServiceContainer(services.Dependencies{
		Storage:       storageInstance,
		Tokens:        auth.NewTokenManager(cfg.JWT.Secret, cfg.TokenTTL()),
		Revocations:   revocations,
		Publisher:     wsManager,
		MaxUploadSize: cfg.Upload.MaxSize,
		LogTailLines:  cfg.Logs.TailLines,
	})

	// 3. Хэндлеры
	gate := middleware.NewAuth(serviceContainer.AuthService, cfg.JWT.CookieName)
	signinLimiter, err := middleware.RateLimiter(cfg.RateLimit.SignIn, "docflow:signin", redisClient)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	appHandlers := initializeHandlers(cfg, serviceContainer, gate, signinLimiter)

	originAllowed := middleware.OriginAllowed(cfg.Server.AllowOrigins)
	wsHandler := ws.NewWebSocketHandler(wsManager, originAllowed, func(c *gin.Context) (uint, bool) {
		identity, ok := middleware.CurrentIdentity(c)
		if !ok {
			return 0, false
		}
		return identity.UserID, true
	})

	// 4. Gin
	ginRouter := initializeGinRouter(cfg, gormDB)
	routes.RegisterRoutes(ginRouter, appHandlers, wsHandler, gate, gormDB)

	return ginRouter, cleanup, nil
}

func initializeRevocations(ctx context.Context, cfg *config.Config) (session.RevocationStore, *redis.Client, error) {
	if cfg.Redis.URL == "" {
		logger.Warn("REDIS_URL is not set, revoked tokens are kept in memory")
		return session.NewMemoryStore(), nil, nil
	}
	store, err := session.NewRedisStoreFromURL(ctx, cfg.Redis.URL)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("Redis connected")
	return store, store.Client(), nil
}

func initializeHandlers(cfg *config.Config, svc *services.ServiceContainer, gate *middleware.Auth, signinLimiter gin.HandlerFunc) *handlers.AppHandlers {
	baseHandler := handlers.NewBaseHandler(validator.New())

	return &handlers.AppHandlers{
		AuthHandler:         handlers.NewAuthHandler(baseHandler, svc.AuthService, gate, signinLimiter, cfg.JWT.CookieSecure),
		FileHandler:         handlers.NewFileHandler(baseHandler, svc.DocumentService, svc.NotificationService, gate, cfg.Upload.MaxSize),
		NotificationHandler: handlers.NewNotificationHandler(baseHandler, svc.NotificationService, gate),
		UserHandler:         handlers.NewUserHandler(baseHandler, svc.UserService, gate),
		AdminHandler: handlers.NewAdminHandler(
			baseHandler,
			svc.DepartmentService,
			svc.DocTypeService,
			svc.ResponsibleService,
			svc.LogService,
			gate,
		),
	}
}

func initializeGinRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	router := gin.New()
	router.MaxMultipartMemory = 8 << 20
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.Server.AllowOrigins))
	router.Use(middleware.DBMiddleware(db))
	return router
}

func startBackupWorker(ctx context.Context, cfg *config.Config) {
	at, err := cfg.BackupTime()
	if err != nil {
		logger.Error("Backup worker disabled", "error", err)
		return
	}
	workers.NewBackupWorker(BackupConfig(cfg, at), NewMailer(cfg)).Start(ctx)
	logger.Info("Backup worker started", "at", cfg.Backup.At, "dir", cfg.Backup.Dir)
}

// BackupConfig переводит конфигурацию приложения в параметры воркера
func BackupConfig(cfg *config.Config, at time.Duration) workers.BackupConfig {
	return workers.BackupConfig{
		Driver:   cfg.Database.Driver,
		DSN:      cfg.Database.DSN,
		Dir:      cfg.Backup.Dir,
		At:       at,
		KeepDays: cfg.Backup.KeepDays,
		AlertTo:  alertRecipients(cfg.Backup.AlertTo),
	}
}
