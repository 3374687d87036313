package routes

import (
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/MakMD/floor-boss-work-sub000/internal/controllers"
	"github.com/MakMD/floor-boss-work-sub000/internal/repositories"
	"github.com/MakMD/floor-boss-work-sub000/internal/services"
	"github.com/MakMD/floor-boss-work-sub000/pkg/config"
	"github.com/MakMD/floor-boss-work-sub000/pkg/filestorage"
	"github.com/MakMD/floor-boss-work-sub000/pkg/middleware"
	"github.com/MakMD/floor-boss-work-sub000/pkg/service"
)

// InitRouter wires repositories, services and controllers and mounts every
// route on the echo instance.
func InitRouter(e *echo.Echo, dbConn *pgxpool.Pool, redisClient *redis.Client, jwtSvc service.JWTService, logger *zap.Logger, cfg *config.Config) {
	api := e.Group("/api")

	fileStorage, err := filestorage.NewLocalFileStorage(cfg.Upload.BasePath, cfg.Upload.PublicBaseURL)
	if err != nil {
		logger.Fatal("failed to create file storage", zap.Error(err))
	}
	e.Static("/uploads", cfg.Upload.BasePath)

	// Repositories.
	workerRepo := repositories.NewWorkerRepository(dbConn, logger)
	companyRepo := repositories.NewCompanyRepository(dbConn)
	jobRepo := repositories.NewJobRepository(dbConn, logger)
	invoiceRepo := repositories.NewInvoiceRepository(dbConn, logger)
	noteRepo := repositories.NewNoteRepository(dbConn)
	photoRepo := repositories.NewPhotoRepository(dbConn)
	activityRepo := repositories.NewActivityRepository(dbConn, logger)
	cacheRepo := repositories.NewRedisCacheRepository(redisClient)

	// Services.
	roleService := services.NewWorkerRoleService(workerRepo, cacheRepo, logger, cfg.RoleCacheTTL)
	authService := services.NewAuthService(workerRepo, jwtSvc, roleService, logger)
	jobOrderService := services.NewJobOrderService(jobRepo, invoiceRepo, activityRepo, fileStorage, logger)
	jobService := services.NewJobService(jobRepo, noteRepo, photoRepo, invoiceRepo, activityRepo, companyRepo, fileStorage, logger)
	feedService := services.NewActivityFeedService(activityRepo, logger)
	directoryService := services.NewDirectoryService(workerRepo, companyRepo, logger)
	reportService := services.NewReportService(invoiceRepo, logger)

	// Controllers.
	authController := controllers.NewAuthController(authService, logger)
	jobController := controllers.NewJobController(jobOrderService, jobService, cfg.Upload, logger)
	activityController := controllers.NewActivityController(feedService, logger)
	directoryController := controllers.NewDirectoryController(directoryService, logger)
	reportController := controllers.NewReportController(reportService, logger)

	authMW := middleware.NewAuthMiddleware(jwtSvc, roleService, logger)
	secureGroup := api.Group("", authMW.Auth)

	runAuthRouter(api, authController)
	runJobRouter(secureGroup, jobController)
	runActivityRouter(secureGroup, activityController)
	runDirectoryRouter(secureGroup, directoryController)
	runReportRouter(secureGroup, reportController)
}
