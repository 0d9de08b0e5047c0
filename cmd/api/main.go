package main

import (
	"fmt"
	"net/http"
	"os"

	"expenshare/internal/config"
	"expenshare/internal/database"
	"expenshare/internal/handlers"
	"expenshare/internal/logger"
	"expenshare/internal/middleware"
	"expenshare/internal/services"
	"expenshare/internal/stats"
	"expenshare/internal/validator"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "expenshare/internal/docs" // Import swagger docs
)

// @title           Expenshare API
// @version         1.0
// @description     Expenshare is a shared expense and budget tracker: projects with members, hierarchical categories, multi-currency statistics, and report exports.
// @termsOfService  http://swagger.io/terms/

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
	dbConfig, err := database.NewConfig(appConfig)
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Initialize services
	db := dbManager.DB()
	settingsService := services.NewSettingsService(db)
	userService := services.NewUserService(db, settingsService)
	projectService := services.NewProjectService(db)
	categoryService := services.NewCategoryService(db, projectService)
	transactionService := services.NewTransactionService(db, projectService)
	statsService := stats.NewService(db, projectService, settingsService)

	// Bootstrap the admin account
	if _, err := userService.EnsureAdmin(appConfig.AdminName, appConfig.AdminPIN); err != nil {
		return fmt.Errorf("failed to bootstrap admin account: %w", err)
	}

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	projectHandler := handlers.NewProjectHandler(projectService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	transactionHandler := handlers.NewTransactionHandler(transactionService)
	statsHandler := handlers.NewStatsHandler(statsService)
	settingsHandler := handlers.NewSettingsHandler(settingsService, projectService)
	adminHandler := handlers.NewAdminHandler(userService, projectService)
	exportHandler := handlers.NewExportHandler(projectService, categoryService, userService, settingsService, statsService)

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

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/check", authHandler.Check)
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	// User profile
	protected.GET("/profile", authHandler.GetProfile)

	// Project routes
	projects := protected.Group("/projects")
	projects.POST("", projectHandler.CreateProject)
	projects.GET("", projectHandler.GetUserProjects)
	projects.GET("/:id", projectHandler.GetProjectByID)
	projects.PUT("/:id", projectHandler.UpdateProject)
	projects.DELETE("/:id", projectHandler.DeleteProject)

	// Membership routes
	projects.POST("/:id/members", projectHandler.AddMember)
	projects.GET("/:id/members", projectHandler.ListMembers)
	projects.PUT("/:id/members/:userId", projectHandler.UpdateMemberRole)
	projects.DELETE("/:id/members/:userId", projectHandler.RemoveMember)

	// Category routes
	projects.POST("/:id/categories", categoryHandler.CreateCategory)
	projects.GET("/:id/categories", categoryHandler.GetProjectCategories)
	categories := protected.Group("/categories")
	categories.GET("/:id", categoryHandler.GetCategoryByID)
	categories.PUT("/:id", categoryHandler.UpdateCategory)
	categories.DELETE("/:id", categoryHandler.DeleteCategory)

	// Transaction routes
	projects.POST("/:id/transactions", transactionHandler.CreateTransaction)
	projects.GET("/:id/transactions", transactionHandler.GetProjectTransactions)
	transactions := protected.Group("/transactions")
	transactions.GET("/:id", transactionHandler.GetTransactionByID)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	// Note routes
	transactions.POST("/:id/notes", transactionHandler.AddNote)
	transactions.GET("/:id/notes", transactionHandler.GetNotes)
	protected.DELETE("/notes/:id", transactionHandler.DeleteNote)

	// Statistics routes
	protected.GET("/stats", statsHandler.GetGlobalStats)
	projects.GET("/:id/stats", statsHandler.GetProjectStats)
	projects.GET("/:id/stats/hierarchy", statsHandler.GetCategoryHierarchy)

	// Export routes
	projects.GET("/:id/export/csv", exportHandler.ExportCSV)
	projects.GET("/:id/export/xlsx", exportHandler.ExportXLSX)

	// Settings routes
	settings := protected.Group("/settings")
	settings.GET("/currency", settingsHandler.GetCurrency)
	settings.PUT("/currency", settingsHandler.UpdateCurrency)
	settings.GET("/rates", settingsHandler.GetRates)
	settings.PUT("/rates", settingsHandler.UpdateRates)

	// Admin routes
	admin := protected.Group("/admin")
	admin.Use(middleware.AdminMiddleware())
	admin.GET("/users", adminHandler.ListUsers)
	admin.DELETE("/users/:id", adminHandler.DeleteUser)
	admin.GET("/projects", adminHandler.ListProjects)

	log.Infof("Starting Expenshare backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
