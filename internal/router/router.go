package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"codetogether-api/internal/auth"
	"codetogether-api/internal/client"
	"codetogether-api/internal/config"
	"codetogether-api/internal/handler"
	"codetogether-api/internal/metrics"
	"codetogether-api/internal/middleware"
	"codetogether-api/internal/repository"
	"codetogether-api/internal/service"
)

// Config holds router configuration
type Config struct {
	DB       *gorm.DB
	Logger   *zap.Logger
	Metrics  *metrics.Metrics
	BasePath string

	Tokens   auth.TokenIssuer
	Hasher   auth.PasswordHasher
	TokenTTL time.Duration

	// Optional dependencies; nil disables the feature they back
	Redis              *redis.Client
	Storage            client.ObjectStorage
	NotificationClient client.NotificationClient

	RateLimit   config.RateLimitConfig
	CORSOrigins string
}

// Setup sets up the router with all routes
func Setup(cfg Config) *gin.Engine {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.CORSOrigins == "" {
		cfg.CORSOrigins = "*"
	}

	r := gin.New()

	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(middleware.Metrics(cfg.Metrics))

	healthHandler := handler.NewHealthHandler(cfg.DB, cfg.Redis, cfg.Logger)
	metricsHandler := gin.WrapH(promhttp.Handler())

	// Probes and metrics at the root for kubelet and prometheus
	r.GET("/metrics", metricsHandler)
	r.GET("/health", healthHandler.Health)
	r.GET("/ready", healthHandler.Ready)

	// Initialize repositories
	userRepo := repository.NewUserRepository(cfg.DB)
	projectRepo := repository.NewProjectRepository(cfg.DB)
	positionRepo := repository.NewPositionRepository(cfg.DB)
	applicationRepo := repository.NewApplicationRepository(cfg.DB)

	// Initialize services
	authService := service.NewAuthService(userRepo, cfg.Hasher, cfg.Tokens, cfg.TokenTTL, cfg.Metrics, cfg.Logger)
	userService := service.NewUserService(userRepo, cfg.Storage, cfg.Logger)
	projectService := service.NewProjectService(projectRepo, positionRepo, cfg.Metrics, cfg.Logger)
	positionService := service.NewPositionService(positionRepo, projectRepo)
	applicationService := service.NewApplicationService(
		applicationRepo, positionRepo, projectRepo, cfg.NotificationClient, cfg.Metrics, cfg.Logger,
	)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, cfg.Logger)
	userHandler := handler.NewUserHandler(userService, cfg.Logger)
	projectHandler := handler.NewProjectHandler(projectService, cfg.Logger)
	positionHandler := handler.NewPositionHandler(positionService, cfg.Logger)
	applicationHandler := handler.NewApplicationHandler(applicationService, cfg.Logger)

	api := r.Group(cfg.BasePath)
	if cfg.BasePath != "" && cfg.BasePath != "/" {
		api.GET("/metrics", metricsHandler)
		api.GET("/health", healthHandler.Health)
		api.GET("/ready", healthHandler.Ready)
	}

	authMiddleware := middleware.AuthWithValidator(authService)

	v1 := api.Group("/v1")

	// ============================================================
	// Auth routes (public, rate limited)
	// ============================================================
	authRoutes := v1.Group("/auth")
	if cfg.RateLimit.Enabled && cfg.RateLimit.Requests > 0 && cfg.RateLimit.Window > 0 {
		limiter := middleware.NewRateLimiter(cfg.Redis, cfg.RateLimit.Requests, cfg.RateLimit.Window, cfg.Metrics, cfg.Logger)
		authRoutes.Use(limiter.Handler())
	}
	{
		authRoutes.POST("/signup", authHandler.Signup)
		authRoutes.POST("/login", authHandler.Login)
	}

	// ============================================================
	// User routes
	// ============================================================
	users := v1.Group("/users")
	{
		me := users.Group("/me", authMiddleware)
		me.GET("", userHandler.GetMe)
		me.PUT("", userHandler.UpdateMe)
		me.DELETE("", userHandler.DeleteMe)
		me.POST("/avatar/upload-url", userHandler.CreateAvatarUploadURL)
		me.PUT("/avatar", userHandler.ConfirmAvatar)

		users.GET("/:userId", userHandler.GetUser)
	}

	// ============================================================
	// Project routes
	// ============================================================
	projects := v1.Group("/projects")
	{
		projects.POST("", authMiddleware, projectHandler.CreateProject)
		projects.GET("/:projectId", projectHandler.GetProject)
		projects.PUT("/:projectId", authMiddleware, projectHandler.UpdateProject)
		projects.DELETE("/:projectId", authMiddleware, projectHandler.DeleteProject)

		projects.POST("/:projectId/positions", authMiddleware, positionHandler.CreatePosition)
		projects.GET("/:projectId/positions", positionHandler.ListPositions)
	}

	// ============================================================
	// Position routes
	// ============================================================
	positions := v1.Group("/positions")
	{
		positions.PUT("/:positionId", authMiddleware, positionHandler.UpdatePosition)
		positions.DELETE("/:positionId", authMiddleware, positionHandler.DeletePosition)

		positions.POST("/:positionId/applications", authMiddleware, applicationHandler.CreateApplication)
		positions.GET("/:positionId/applications", authMiddleware, applicationHandler.ListApplications)
	}

	// ============================================================
	// Application routes
	// ============================================================
	applications := v1.Group("/applications", authMiddleware)
	{
		applications.PUT("/:applicationId", applicationHandler.UpdateApplication)
		applications.DELETE("/:applicationId", applicationHandler.DeleteApplication)
		applications.POST("/:applicationId/approved", applicationHandler.ApproveApplication)
		applications.POST("/:applicationId/rejected", applicationHandler.RejectApplication)
	}

	return r
}
