package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/promanager/promanager-api/internal/auth"
	"github.com/promanager/promanager-api/internal/config"
	"github.com/promanager/promanager-api/internal/database"
	"github.com/promanager/promanager-api/internal/handlers"
	"github.com/promanager/promanager-api/internal/middleware"
	"github.com/promanager/promanager-api/internal/repository"
	"github.com/promanager/promanager-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	if cfg.DBDriver == "postgres" {
		if err := database.AddIndexes(database.GetDB()); err != nil {
			log.Fatalf("Failed to add indexes: %v", err)
		}
	}

	// Initialize collaborators
	tokenManager := auth.NewTokenManager(cfg.JWTSecret)
	userRepo := repository.NewUserRepository(database.GetDB())
	taskRepo := repository.NewTaskRepository(database.GetDB())

	authService := services.NewAuthService(userRepo, tokenManager)
	taskService := services.NewTaskService(taskRepo, userRepo, cfg.ShareBaseURL)

	authHandler := handlers.NewAuthHandler(authService)
	taskHandler := handlers.NewTaskHandler(taskService)
	shareHandler := handlers.NewShareHandler(taskService)

	requireAuth := middleware.RequireAuth(tokenManager)

	// Initialize Gin router
	r := gin.Default()

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Pro Manager API is running",
		})
	})

	// Public share view, the only unauthenticated route
	r.GET("/shared/:id", shareHandler.ViewSharedTask)

	// API routes
	api := r.Group("/api")
	{
		// User routes
		users := api.Group("/users")
		{
			users.POST("/register", authHandler.Register)
			users.POST("/login", authHandler.Login)
			users.GET("", requireAuth, authHandler.ListUsers)
			users.GET("/me", requireAuth, authHandler.GetCurrentUser)
			users.PATCH("/me", requireAuth, authHandler.UpdateProfile)
			users.GET("/:id", requireAuth, authHandler.GetUser)
		}

		// Task routes (protected)
		tasks := api.Group("/tasks")
		tasks.Use(requireAuth)
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.POST("", taskHandler.CreateTask)
			tasks.GET("/analytics", taskHandler.GetAnalytics)
			tasks.GET("/status/:status", taskHandler.ListByStatus)
			tasks.GET("/filter/:window", taskHandler.FilterByDueDate)
			tasks.PUT("/assignboard", taskHandler.ReassignBoard)
			tasks.GET("/:id", taskHandler.GetTask)
			tasks.PUT("/:id", taskHandler.UpdateTask)
			tasks.DELETE("/:id", taskHandler.DeleteTask)
			tasks.PUT("/:id/move", taskHandler.MoveTask)
			tasks.PUT("/:id/share", shareHandler.GenerateShareLink)
		}
	}

	// Start server
	log.Printf("Server starting on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
