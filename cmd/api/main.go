package main

import (
	"fmt"
	"net/http"
	"os"

	"auditdesk/internal/config"
	"auditdesk/internal/database"
	"auditdesk/internal/handlers"
	"auditdesk/internal/logger"
	"auditdesk/internal/middleware"
	"auditdesk/internal/services"
	"auditdesk/internal/storage"
	"auditdesk/internal/validator"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "auditdesk/internal/docs" // Import swagger docs
)

// @title           Auditdesk API
// @version         1.0
// @description     Auditdesk is a compliance audit backend: audits, media evidence, findings and report generation.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Register custom binding validators
	validator.Register()

	// Initialize database configuration
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Initialize file storage
	store, err := storage.NewAdapter(appConfig.StorageRoot)
	if err != nil {
		return fmt.Errorf("failed to initialize file storage: %w", err)
	}

	// Initialize services
	db := dbManager.DB()
	userService := services.NewUserService(db)
	auditService := services.NewAuditService(db)
	mediaService := services.NewMediaService(db, store, appConfig.MaxUploadBytes)
	findingService := services.NewFindingService(db)
	activityService := services.NewActivityService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService, activityService)
	auditHandler := handlers.NewAuditHandler(auditService, activityService)
	mediaHandler := handlers.NewMediaHandler(auditService, mediaService, activityService, appConfig.MaxUploadBytes)
	findingHandler := handlers.NewFindingHandler(auditService, findingService, activityService)
	reportHandler := handlers.NewReportHandler(auditService, activityService, appConfig.MaxReportCSVBytes, appConfig.ReportTemplatePath)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint: liveness plus a config echo
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"ok":          true,
			"status":      "ok",
			"env":         appConfig.Env,
			"port":        appConfig.Port,
			"storageRoot": store.Root(),
		})
	})

	// Public auth routes
	auth := router.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.GET("/me", middleware.AuthMiddleware(), authHandler.Me)

	// Protected API v1 group
	v1 := router.Group("/api/v1")
	v1.Use(middleware.AuthMiddleware())

	// Audit routes
	audits := v1.Group("/audits")
	audits.POST("", auditHandler.CreateAudit)
	audits.GET("", auditHandler.ListAudits)
	audits.GET("/:id", auditHandler.GetAudit)

	// Media routes
	audits.POST("/:id/media", mediaHandler.UploadMedia)
	audits.GET("/:id/media", mediaHandler.ListMedia)
	v1.GET("/media/:id/download", mediaHandler.DownloadMedia)

	// Finding & evidence routes
	audits.POST("/:id/findings", findingHandler.CreateFinding)
	audits.GET("/:id/findings", findingHandler.ListFindings)
	v1.POST("/findings/:id/evidence", findingHandler.AttachEvidence)

	// Report routes
	audits.POST("/:id/report/upload", reportHandler.UploadReport)
	audits.GET("/:id/report", reportHandler.GetReport)
	audits.GET("/:id/report.pdf", reportHandler.GetReportPDF)
	audits.GET("/:id/report.xlsx", reportHandler.GetReportXLSX)
	audits.GET("/:id/report.docx", reportHandler.GetReportDOCX)

	log.Infof("Starting Auditdesk backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
