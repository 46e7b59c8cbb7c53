package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"codetogether-api/internal/database"
)

const serviceName = "codetogether-api"

// HealthHandler serves liveness and readiness probes
type HealthHandler struct {
	db     *gorm.DB
	redis  *redis.Client
	logger *zap.Logger
}

// NewHealthHandler creates a HealthHandler. redisClient may be nil.
func NewHealthHandler(db *gorm.DB, redisClient *redis.Client, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		db:     db,
		redis:  redisClient,
		logger: logger,
	}
}

// Health reports liveness only
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": serviceName})
}

// Ready pings the database, and redis when configured
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if h.db == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready", "service": serviceName, "reason": "database not connected"})
		return
	}
	if err := database.Ping(ctx, h.db); err != nil {
		h.logger.Warn("Readiness check failed", zap.String("dependency", "database"), zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready", "service": serviceName, "reason": "database unreachable"})
		return
	}

	if h.redis != nil {
		if err := h.redis.Ping(ctx).Err(); err != nil {
			h.logger.Warn("Readiness check failed", zap.String("dependency", "redis"), zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready", "service": serviceName, "reason": "redis unreachable"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"status": "ready", "service": serviceName})
}
