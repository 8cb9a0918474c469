package routes

import (
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"urbanreport/internal/controllers"
	"urbanreport/internal/listeners"
	"urbanreport/internal/repositories"
	"urbanreport/internal/services"
	"urbanreport/pkg/config"
	"urbanreport/pkg/eventbus"
	"urbanreport/pkg/filestorage"
	"urbanreport/pkg/middleware"
	"urbanreport/pkg/service"
	"urbanreport/pkg/websocket"
)

// InitRouter builds the whole dependency graph and mounts every route under
// /api. Routers only receive the controllers they serve.
func InitRouter(
	e *echo.Echo,
	dbConn *pgxpool.Pool,
	redisClient *redis.Client,
	jwtSvc service.JWTService,
	hub *websocket.Hub,
	bus *eventbus.Bus,
	cfg *config.Config,
	logger *zap.Logger,
) {
	api := e.Group("/api")
	authMW := middleware.NewAuthMiddleware(jwtSvc, logger)

	fileStorage, err := filestorage.NewLocalFileStorage(cfg.Upload.BasePath)
	if err != nil {
		logger.Fatal("no se pudo crear el almacenamiento de archivos", zap.Error(err))
	}

	userRepo := repositories.NewUserRepository(dbConn)
	categoryRepo := repositories.NewCategoryRepository(dbConn)
	entityRepo := repositories.NewEntityRepository(dbConn)
	entityAuditRepo := repositories.NewEntityAuditRepository(dbConn)
	reportRepo := repositories.NewReportRepository(dbConn)
	historyRepo := repositories.NewReportHistoryRepository(dbConn)
	commentRepo := repositories.NewReportCommentRepository(dbConn)
	attachmentRepo := repositories.NewReportAttachmentRepository(dbConn)
	notificationRepo := repositories.NewNotificationRepository(dbConn)
	sessionRepo := repositories.NewSessionRepository(redisClient)

	authService := services.NewAuthService(userRepo, entityRepo, sessionRepo, jwtSvc, fileStorage, logger)
	categoryService := services.NewCategoryService(categoryRepo)
	entityService := services.NewEntityService(entityRepo, entityAuditRepo, categoryRepo, bus, logger)
	reportService := services.NewReportService(
		reportRepo, historyRepo, commentRepo, attachmentRepo,
		categoryRepo, entityRepo, fileStorage, bus, cfg.Upload, logger,
	)
	exportService := services.NewReportExportService(reportRepo, categoryRepo)
	notificationService := services.NewNotificationService(notificationRepo, logger)
	wsNotificationService := services.NewWebSocketNotificationService(hub, logger)

	notificationListener := listeners.NewNotificationListener(notificationService, wsNotificationService, logger)
	notificationListener.Register(bus)

	authController := controllers.NewAuthController(authService, logger)
	categoryController := controllers.NewCategoryController(categoryService, logger)
	entityController := controllers.NewEntityController(entityService, logger)
	reportController := controllers.NewReportController(reportService, exportService, logger)
	notificationController := controllers.NewNotificationController(notificationService, logger)
	wsController := controllers.NewWebSocketController(hub, jwtSvc, logger)

	secureGroup := api.Group("", authMW.Auth)

	runAuthRouter(api, secureGroup, authController)
	runCategoryRouter(api, categoryController)
	runReportRouter(api, secureGroup, reportController, authMW)
	runEntityRouter(secureGroup, entityController, authMW)
	runNotificationRouter(secureGroup, notificationController)
	runWebSocketRouter(e, wsController)

	logger.Info("InitRouter: rutas registradas")
}
