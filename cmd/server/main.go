package main

import (
	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/jmcastellanos/doctrack-api/internal/config"
	"github.com/jmcastellanos/doctrack-api/internal/constants"
	"github.com/jmcastellanos/doctrack-api/internal/database"
	"github.com/jmcastellanos/doctrack-api/internal/handlers"
	"github.com/jmcastellanos/doctrack-api/internal/middleware"
	"github.com/jmcastellanos/doctrack-api/internal/repository"
	"github.com/jmcastellanos/doctrack-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode and logging format
	gin.SetMode(cfg.GinMode)
	if cfg.GinMode == "release" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		logrus.Fatalf("Failed to run migrations: %v", err)
	}
	if err := database.AddIndexes(database.GetDB()); err != nil {
		logrus.Fatalf("Failed to add indexes: %v", err)
	}

	// Initialize Gin router
	r := gin.Default()

	// Setup session middleware with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,        // Redis pool size
		"tcp",     // network type
		redisAddr, // Redis address from config
		"",        // password (empty = no password)
		[]byte(cfg.SessionSecret), // authentication key
	)
	if err != nil {
		logrus.Fatalf("Failed to create Redis store: %v", err)
	}
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // SameSite=Lax
	})
	r.Use(sessions.Sessions(constants.SessionName, store))

	// Initialize repositories
	db := database.GetDB()
	assignmentRepo := repository.NewAssignmentRepository(db)
	documentRepo := repository.NewDocumentRepository(db)
	caseRepo := repository.NewCaseRepository(db)
	userRepo := repository.NewUserRepository(db)

	// Initialize AI service when configured
	var aiService *services.AIService
	if cfg.OpenAIAPIKey != "" {
		aiService = services.NewAIService(cfg.OpenAIAPIKey)
	}

	// Initialize services
	authService := services.NewAuthService(userRepo)
	documentService := services.NewDocumentService(documentRepo)
	assignmentService := services.NewAssignmentService(assignmentRepo, documentRepo, caseRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	documentHandler := handlers.NewDocumentHandler(documentService, aiService)
	assignmentHandler := handlers.NewAssignmentHandler(assignmentService)
	caseHandler := handlers.NewCaseHandler()
	catalogHandler := handlers.NewCatalogHandler()

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Document Tracking API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}

		// Catalog routes (protected)
		areas := api.Group("/areas")
		areas.Use(middleware.RequireAuth())
		{
			areas.GET("", catalogHandler.ListAreas)
			areas.POST("", catalogHandler.CreateArea)
			areas.PATCH("/:id", catalogHandler.UpdateArea)
			areas.DELETE("/:id", catalogHandler.DeleteArea)
		}

		positions := api.Group("/positions")
		positions.Use(middleware.RequireAuth())
		{
			positions.GET("", catalogHandler.ListPositions)
			positions.POST("", catalogHandler.CreatePosition)
			positions.PATCH("/:id", catalogHandler.UpdatePosition)
			positions.DELETE("/:id", catalogHandler.DeletePosition)
		}

		documentTypes := api.Group("/document-types")
		documentTypes.Use(middleware.RequireAuth())
		{
			documentTypes.GET("", catalogHandler.ListDocumentTypes)
			documentTypes.POST("", catalogHandler.CreateDocumentType)
			documentTypes.PATCH("/:id", catalogHandler.UpdateDocumentType)
			documentTypes.DELETE("/:id", catalogHandler.DeleteDocumentType)
		}

		// Case routes (protected)
		cases := api.Group("/cases")
		cases.Use(middleware.RequireAuth())
		{
			cases.GET("", caseHandler.ListCases)
			cases.POST("", caseHandler.CreateCase)
			cases.GET("/:id", caseHandler.GetCase)
			cases.PATCH("/:id", caseHandler.UpdateCase)
			cases.DELETE("/:id", caseHandler.DeleteCase)
		}

		// Document routes (protected)
		documents := api.Group("/documents")
		documents.Use(middleware.RequireAuth())
		{
			documents.GET("", documentHandler.ListDocuments)
			documents.POST("", documentHandler.CreateDocument)
			documents.GET("/:id", middleware.RequireDocumentAccess(), documentHandler.GetDocument)
			documents.PATCH("/:id", middleware.RequireDocumentAccess(), documentHandler.UpdateDocument)
			documents.DELETE("/:id", middleware.RequireDocumentAccess(), documentHandler.DeleteDocument)
			documents.POST("/:id/summarize", middleware.RequireDocumentAccess(), documentHandler.SummarizeDocument)
			documents.GET("/:id/assignments", middleware.RequireDocumentAccess(), assignmentHandler.ListDocumentAssignments)
			documents.POST("/:id/assignments", middleware.RequireDocumentAccess(), assignmentHandler.CreateAssignment)
			documents.GET("/:id/assignments/pending-count", middleware.RequireDocumentAccess(), assignmentHandler.PendingCount)
		}

		// Assignment workflow routes (protected)
		assignments := api.Group("/assignments")
		assignments.Use(middleware.RequireAuth())
		{
			assignments.GET("/pending-extensions", assignmentHandler.ListPendingExtensions)
			assignments.POST("/:id/request-extension", assignmentHandler.RequestExtension)
			assignments.POST("/:id/approve-extension", assignmentHandler.ApproveExtension)
			assignments.POST("/:id/respond", assignmentHandler.Respond)
		}
	}

	// Start server
	logrus.Info("Server starting on :8080")
	if err := r.Run(":8080"); err != nil {
		logrus.Fatalf("Failed to start server: %v", err)
	}
}
