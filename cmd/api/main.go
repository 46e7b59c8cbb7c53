package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/crypto/bcrypt"

	"codetogether-api/internal/auth"
	"codetogether-api/internal/client"
	"codetogether-api/internal/config"
	"codetogether-api/internal/database"
	"codetogether-api/internal/job"
	"codetogether-api/internal/metrics"
	"codetogether-api/internal/repository"
	"codetogether-api/internal/router"
)

const (
	dbConnectAttempts = 10
	dbConnectInterval = 5 * time.Second
	dbStatsInterval   = 15 * time.Second
)

func main() {
	// .env is optional; real environment variables win
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, err := initLogger(cfg.Logger.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Set Gin mode
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	logger.Info("Starting CodeTogether API",
		zap.String("port", cfg.Server.Port),
		zap.String("mode", cfg.Server.Mode),
		zap.String("base_path", cfg.Server.BasePath),
	)

	// SIGINT/SIGTERM cancel startup retries as well as the running server
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize database
	db, err := database.ConnectWithRetry(ctx, database.Config{
		DSN:             cfg.Database.GetDSN(),
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}, dbConnectAttempts, dbConnectInterval, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.Close(db)
	logger.Info("Database connected successfully")

	if cfg.Database.AutoMigrate {
		if err := database.AutoMigrate(db, logger); err != nil {
			logger.Fatal("Failed to run database migrations", zap.Error(err))
		}
	}

	// Initialize metrics
	m := metrics.New(logger)
	if err := database.RegisterMetricsCallbacks(db, m); err != nil {
		logger.Warn("Failed to register database metrics callbacks", zap.Error(err))
	}
	stopDBStats := database.StartDBStatsCollector(db, m, dbStatsInterval)
	defer close(stopDBStats)

	collector, err := metrics.NewBusinessMetricsCollector(db, m, logger, cfg.Metrics.CollectSchedule)
	if err != nil {
		logger.Warn("Business metrics collector disabled", zap.Error(err))
	} else {
		collector.Start()
		defer collector.Stop()
	}
	logger.Info("Metrics initialized")

	// Initialize redis (optional; rate limiting falls back to in-process limiters)
	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient, err = database.NewRedis(ctx, cfg.Redis, logger)
		if err != nil {
			logger.Warn("Redis unavailable, rate limiting will be per instance", zap.Error(err))
			redisClient = nil
		} else {
			defer redisClient.Close()
		}
	}

	// Initialize S3 client
	var storage client.ObjectStorage
	if cfg.S3.Bucket != "" && cfg.S3.Region != "" {
		s3Client, err := client.NewS3Client(&cfg.S3)
		if err != nil {
			logger.Warn("Failed to initialize S3 client, avatar upload disabled", zap.Error(err))
		} else {
			storage = s3Client
			logger.Info("S3 client initialized",
				zap.String("bucket", cfg.S3.Bucket),
				zap.String("region", cfg.S3.Region),
			)

			if cfg.S3.CleanupSchedule != "" {
				cleanup := job.NewAvatarCleanupJob(repository.NewUserRepository(db), s3Client, job.DefaultUploadGrace, logger)
				scheduler, err := cleanup.Schedule(cfg.S3.CleanupSchedule)
				if err != nil {
					logger.Warn("Avatar cleanup job disabled", zap.Error(err))
				} else {
					defer scheduler.Stop()
					logger.Info("Avatar cleanup job scheduled", zap.String("schedule", cfg.S3.CleanupSchedule))
				}
			}
		}
	} else {
		logger.Warn("S3 configuration incomplete, avatar upload disabled")
	}

	// Initialize notification client
	notifier := client.NewNoOpNotificationClient()
	if cfg.Notification.BaseURL != "" {
		notifier = client.NewNotificationClient(
			cfg.Notification.BaseURL,
			cfg.Notification.InternalAPIKey,
			cfg.Notification.Timeout,
			logger,
			m,
		)
		logger.Info("Notification client initialized", zap.String("base_url", cfg.Notification.BaseURL))
	}

	// Setup router with all dependencies
	r := router.Setup(router.Config{
		DB:                 db,
		Logger:             logger,
		Metrics:            m,
		BasePath:           cfg.Server.BasePath,
		Tokens:             auth.NewJWTIssuer(cfg.JWT.Secret),
		Hasher:             auth.NewBcryptHasher(bcrypt.DefaultCost),
		TokenTTL:           cfg.JWT.AccessTokenTTL,
		Redis:              redisClient,
		Storage:            storage,
		NotificationClient: notifier,
		RateLimit:          cfg.RateLimit,
		CORSOrigins:        cfg.CORS.AllowedOrigins,
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in goroutine
	go func() {
		logger.Info("CodeTogether API started successfully", zap.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	<-ctx.Done()
	logger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited gracefully")
}

// initLogger initializes the zap logger with the specified level
func initLogger(level string) (*zap.Logger, error) {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	zapConfig := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      zapLevel == zapcore.DebugLevel,
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	return zapConfig.Build()
}
