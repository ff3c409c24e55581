package main

import (
	"fmt"
	"net/http"
	"os"

	"debtfreepro/internal/config"
	"debtfreepro/internal/database"
	"debtfreepro/internal/extractor"
	"debtfreepro/internal/handlers"
	"debtfreepro/internal/logger"
	"debtfreepro/internal/middleware"
	"debtfreepro/internal/services"
	"debtfreepro/internal/validator"

	"github.com/gin-gonic/gin"
)

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

	if err := os.MkdirAll(appConfig.UploadDir, 0o755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(appConfig.DBPath)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Register custom request validators
	validator.Register()

	// Initialize services
	db := dbManager.DB()
	pdfExtractor := extractor.NewPDFExtractor()
	debtService := services.NewDebtService(db)
	documentService := services.NewDocumentService(db, pdfExtractor, appConfig.MaxPDFSizeBytes)
	statementService := services.NewStatementService(db, pdfExtractor)
	strategyService := services.NewStrategyService(db)
	settingsService := services.NewSettingsService(db)

	// Initialize handlers
	debtHandler := handlers.NewDebtHandler(debtService, statementService)
	documentHandler := handlers.NewDocumentHandler(documentService, appConfig.UploadDir)
	statementHandler := handlers.NewStatementHandler(statementService)
	strategyHandler := handlers.NewStrategyHandler(strategyService, settingsService)
	settingsHandler := handlers.NewSettingsHandler(settingsService)

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

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Debt routes
	debts := v1.Group("/debts")
	debts.POST("", debtHandler.CreateDebt)
	debts.POST("/import", debtHandler.ImportDebt)
	debts.GET("", debtHandler.GetDebts)
	debts.GET("/:id", debtHandler.GetDebtByID)
	debts.PUT("/:id", debtHandler.UpdateDebt)
	debts.DELETE("/:id", debtHandler.DeleteDebt)
	debts.GET("/:id/statements", debtHandler.GetDebtStatements)

	// Document routes
	documents := v1.Group("/documents")
	documents.POST("", documentHandler.UploadDocument)
	documents.GET("", documentHandler.GetDocuments)
	documents.GET("/:id", documentHandler.GetDocumentByID)
	documents.POST("/:id/validate", documentHandler.ValidateDocument)
	documents.POST("/:id/process", statementHandler.ProcessDocument)

	// Statement routes
	statements := v1.Group("/statements")
	statements.GET("", statementHandler.GetStatements)
	statements.GET("/:id", statementHandler.GetStatementByID)
	statements.GET("/:id/analysis", statementHandler.AnalyzeStatement)
	statements.POST("/:id/link", statementHandler.LinkStatement)

	// Strategy routes
	strategy := v1.Group("/strategy")
	strategy.GET("/snowball", strategyHandler.GetSnowball)
	strategy.GET("/consolidation", strategyHandler.GetConsolidationOpportunities)

	// Settings routes
	settings := v1.Group("/settings")
	settings.GET("", settingsHandler.GetSettings)
	settings.PUT("", settingsHandler.UpdateSettings)

	log.Infof("Starting DebtFree Pro backend server on port %s", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
