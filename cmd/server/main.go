package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/JETKIDS/trae-milk2-sub000/config"
	"github.com/JETKIDS/trae-milk2-sub000/internal/app/controller"
	"github.com/JETKIDS/trae-milk2-sub000/internal/app/repository"
	"github.com/JETKIDS/trae-milk2-sub000/internal/app/service"
	"github.com/JETKIDS/trae-milk2-sub000/internal/db"
	"github.com/JETKIDS/trae-milk2-sub000/internal/middleware"
	"github.com/JETKIDS/trae-milk2-sub000/internal/router"
	"github.com/JETKIDS/trae-milk2-sub000/internal/scheduler"
	"github.com/JETKIDS/trae-milk2-sub000/internal/storage"
	"github.com/JETKIDS/trae-milk2-sub000/pkg/logger"
	"github.com/JETKIDS/trae-milk2-sub000/pkg/redis"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting MILK LEDGER Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	// Run migrations
	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Redis는 배달 목록 캐시 전용이라 없어도 서버는 뜬다
	if err := redis.Init(&cfg.Redis); err != nil {
		logger.Warn("Redis unavailable, route sheet caching disabled", map[string]interface{}{
			"error": err.Error(),
		})
	} else {
		defer func() {
			if err := redis.Close(); err != nil {
				logger.Error("Failed to close Redis connection", err)
			}
		}()
	}

	// Initialize repositories
	customerRepo := repository.NewCustomerRepository(db.GetDB())
	courseRepo := repository.NewCourseRepository(db.GetDB())
	productRepo := repository.NewProductRepository(db.GetDB())
	patternRepo := repository.NewPatternRepository(db.GetDB())
	changeRepo := repository.NewTemporaryChangeRepository(db.GetDB())
	invoiceRepo := repository.NewInvoiceRepository(db.GetDB())
	paymentRepo := repository.NewPaymentRepository(db.GetDB())
	operationLogRepo := repository.NewOperationLogRepository(db.GetDB())
	operatorRepo := repository.NewOperatorRepository(db.GetDB())

	// Initialize services
	authService := service.NewAuthService(
		operatorRepo,
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)
	masterService := service.NewMasterService(customerRepo, courseRepo, productRepo)
	calendarService := service.NewCalendarService(customerRepo, patternRepo, changeRepo)
	monthLockService := service.NewMonthLockService(invoiceRepo)
	scheduleService := service.NewScheduleService(customerRepo, productRepo, patternRepo, changeRepo, monthLockService)
	billingService := service.NewBillingService(customerRepo, invoiceRepo, paymentRepo, calendarService, monthLockService)
	bulkService := service.NewBulkService(customerRepo, courseRepo, productRepo, patternRepo, changeRepo, operationLogRepo, monthLockService)

	var s3Storage *storage.S3Storage
	if cfg.S3.Bucket != "" {
		s3Storage = storage.NewS3Storage(
			cfg.S3.Region,
			cfg.S3.Bucket,
			cfg.S3.AccessKeyID,
			cfg.S3.SecretAccessKey,
			cfg.S3.BaseURL,
		)
	} else {
		logger.Warn("S3 bucket not configured, invoice upload disabled", nil)
	}
	exportService := service.NewExportService(customerRepo, courseRepo, billingService, s3Storage)

	// Initialize controllers
	authController := controller.NewAuthController(authService)
	masterController := controller.NewMasterController(masterService)
	calendarController := controller.NewCalendarController(calendarService, cfg.Scheduler.RouteSheetTTL)
	scheduleController := controller.NewScheduleController(scheduleService)
	billingController := controller.NewBillingController(billingService)
	bulkController := controller.NewBulkController(bulkService)
	exportController := controller.NewExportController(exportService)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)

	// 새벽마다 코스별 배달 목록을 미리 만들어 둔다
	var routeSheetScheduler *scheduler.RouteSheetScheduler
	if cfg.Scheduler.Enabled && redis.GetClient() != nil {
		routeSheetScheduler = scheduler.NewRouteSheetScheduler(
			cfg.Scheduler.RouteSheetSpec,
			cfg.Scheduler.RouteSheetTTL,
			calendarService,
			courseRepo,
		)
		if err := routeSheetScheduler.Start(); err != nil {
			logger.Error("Failed to start route sheet scheduler", err)
		}
	}

	// Setup router
	r := router.NewRouter(
		authController,
		masterController,
		calendarController,
		scheduleController,
		billingController,
		bulkController,
		exportController,
		authMiddleware,
		cfg,
	)
	engine := r.Setup()

	// Start server in a goroutine
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started successfully", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	if routeSheetScheduler != nil {
		routeSheetScheduler.Stop()
	}
	logger.Info("Server stopped successfully")
}
