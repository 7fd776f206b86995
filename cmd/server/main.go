package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/thefankor/KanbanBoard/internal/auth"
	"github.com/thefankor/KanbanBoard/internal/config"
	"github.com/thefankor/KanbanBoard/internal/database"
	"github.com/thefankor/KanbanBoard/internal/handlers"
	"github.com/thefankor/KanbanBoard/internal/middleware"
	"github.com/thefankor/KanbanBoard/internal/repository"
	"github.com/thefankor/KanbanBoard/internal/services"
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

	db := database.GetDB()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	columnRepo := repository.NewColumnRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	logRepo := repository.NewLogRepository(db)

	// Initialize services
	tokenService := auth.NewTokenService(cfg)
	logService := services.NewLogService(logRepo)
	authService := services.NewAuthService(userRepo, tokenService)
	projectService := services.NewProjectService(projectRepo, userRepo, logService)
	columnService := services.NewColumnService(columnRepo, logService)
	taskService := services.NewTaskService(taskRepo, columnRepo, projectRepo, logService)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	projectHandler := handlers.NewProjectHandler(projectService)
	columnHandler := handlers.NewColumnHandler(columnService)
	taskHandler := handlers.NewTaskHandler(taskService)
	logHandler := handlers.NewLogHandler(logService)

	// Initialize Gin router
	r := gin.Default()

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "KanbanBoard API is running",
		})
	})

	requireAuth := middleware.RequireAuth(tokenService)

	// API routes
	api := r.Group("/api/v1")
	{
		// Auth routes (public except profile)
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/refresh", authHandler.Refresh)
		}

		users := api.Group("/users")
		users.Use(requireAuth)
		{
			users.GET("/profile", authHandler.GetProfile)
		}

		// Project routes (protected)
		projects := api.Group("/projects")
		projects.Use(requireAuth)
		{
			projects.POST("", projectHandler.CreateProject)
			projects.GET("", projectHandler.ListMyProjects)
			projects.GET("/:project_id", middleware.RequireProjectAccess(), projectHandler.GetProject)
			projects.PATCH("/:project_id", middleware.RequireProjectAccess(), middleware.RequireProjectAdmin(), projectHandler.UpdateProject)
			projects.DELETE("/:project_id", middleware.RequireProjectAccess(), middleware.RequireProjectOwner(), projectHandler.DeleteProject)

			projects.POST("/:project_id/members", middleware.RequireProjectAccess(), middleware.RequireProjectAdmin(), projectHandler.InviteMember)
			projects.PATCH("/:project_id/members/:user_id", middleware.RequireProjectAccess(), middleware.RequireProjectOwner(), projectHandler.UpdateMemberRole)
			projects.DELETE("/:project_id/members/:user_id", middleware.RequireProjectAccess(), middleware.RequireProjectAdmin(), projectHandler.RemoveMember)

			projects.GET("/:project_id/columns", middleware.RequireProjectAccess(), columnHandler.ListColumns)
			projects.POST("/:project_id/columns", middleware.RequireProjectAccess(), middleware.RequireProjectAdmin(), columnHandler.CreateColumn)

			projects.GET("/:project_id/board", middleware.RequireProjectAccess(), taskHandler.GetBoard)
			projects.GET("/:project_id/tasks", middleware.RequireProjectAccess(), taskHandler.ListTasks)
			projects.GET("/:project_id/logs", middleware.RequireProjectAccess(), logHandler.ListByProject)
		}

		// Column routes (protected; chain-resolved to the owning project)
		columns := api.Group("/columns")
		columns.Use(requireAuth)
		{
			columns.PATCH("/:id", middleware.RequireColumnAdmin(), columnHandler.UpdateColumn)
			columns.DELETE("/:id", middleware.RequireColumnAdmin(), columnHandler.DeleteColumn)
		}

		// Task routes (protected; chain-resolved to the owning project)
		tasks := api.Group("/tasks")
		tasks.Use(requireAuth)
		{
			tasks.POST("", taskHandler.CreateTask)
			tasks.GET("/:id", middleware.RequireTaskAccess(), taskHandler.GetTask)
			tasks.PATCH("/:id", middleware.RequireTaskAccess(), middleware.RequireTaskAdmin(), taskHandler.UpdateTask)
			tasks.PATCH("/:id/column", middleware.RequireTaskAccess(), middleware.RequireTaskMoveAccess(), taskHandler.MoveTask)
			tasks.DELETE("/:id", middleware.RequireTaskAccess(), middleware.RequireTaskAdmin(), taskHandler.DeleteTask)
			tasks.GET("/:id/logs", middleware.RequireTaskAccess(), middleware.RequireTaskAdmin(), logHandler.ListByTask)
		}
	}

	// Start server
	log.Printf("Server starting on :%s", cfg.ServerPort)
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
