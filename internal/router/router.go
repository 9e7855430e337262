package router

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/task-tracker-api/internal/handlers"
	"github.com/yukikurage/task-tracker-api/internal/middleware"
	"github.com/yukikurage/task-tracker-api/internal/repository"
	"github.com/yukikurage/task-tracker-api/internal/services"
	"gorm.io/gorm"
)

// Dependencies are the long-lived collaborators built once at startup.
type Dependencies struct {
	DB     *gorm.DB
	Hasher services.PasswordHasher
	Tokens services.TokenService
	Logger *slog.Logger
}

// New assembles the middleware chain and every route.
func New(deps Dependencies) *gin.Engine {
	userRepo := repository.NewUserRepository(deps.DB)
	taskRepo := repository.NewTaskRepository(deps.DB)

	authHandler := handlers.NewAuthHandler(services.NewAuthService(userRepo, deps.Hasher, deps.Tokens))
	taskHandler := handlers.NewTaskHandler(services.NewTaskService(taskRepo))

	log := deps.Logger
	if log == nil {
		log = slog.Default()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(log))

	r.GET("/", handlers.Root)

	// Auth routes (public)
	auth := r.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
	}

	// Task routes (protected)
	tasks := r.Group("/tasks")
	tasks.Use(middleware.RequireAuth(deps.Tokens))
	{
		tasks.GET("", taskHandler.ListTasks)
		tasks.POST("", taskHandler.CreateTask)
		tasks.GET("/:id", middleware.RequireTaskID(), taskHandler.GetTask)
		tasks.PUT("/:id", middleware.RequireTaskID(), taskHandler.UpdateTask)
		tasks.DELETE("/:id", middleware.RequireTaskID(), taskHandler.DeleteTask)
	}

	return r
}
