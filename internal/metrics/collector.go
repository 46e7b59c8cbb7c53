package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// BusinessMetricsCollector refreshes row-count gauges on a cron schedule
type BusinessMetricsCollector struct {
	db      *gorm.DB
	metrics *Metrics
	logger  *zap.Logger
	cron    *cron.Cron
}

// NewBusinessMetricsCollector creates a collector. schedule uses cron syntax or descriptors like "@every 60s".
func NewBusinessMetricsCollector(db *gorm.DB, metrics *Metrics, logger *zap.Logger, schedule string) (*BusinessMetricsCollector, error) {
	c := &BusinessMetricsCollector{
		db:      db,
		metrics: metrics,
		logger:  logger,
		cron:    cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
	}
	if _, err := c.cron.AddFunc(schedule, c.Collect); err != nil {
		return nil, fmt.Errorf("invalid metrics collect schedule %q: %w", schedule, err)
	}
	return c, nil
}

// Start collects once immediately and then on every tick
func (c *BusinessMetricsCollector) Start() {
	go c.Collect()
	c.cron.Start()
}

// Stop stops the scheduler and waits for a running collection to finish
func (c *BusinessMetricsCollector) Stop() {
	<-c.cron.Stop().Done()
}

// Collect gathers business metrics once
func (c *BusinessMetricsCollector) Collect() {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("Panic in business metrics collection", zap.Any("panic", r))
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	for _, table := range []string{EntityUsers, EntityProjects, EntityPositions, EntityApplications} {
		var count int64
		if err := c.db.WithContext(ctx).Table(table).Count(&count).Error; err != nil {
			c.logger.Error("Failed to count rows", zap.String("table", table), zap.Error(err))
			continue
		}
		c.metrics.SetEntityTotal(table, count)
	}

	var rows []struct {
		Status string
		Count  int64
	}
	if err := c.db.WithContext(ctx).
		Table(EntityApplications).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error; err != nil {
		c.logger.Error("Failed to count applications by status", zap.Error(err))
		return
	}
	for _, row := range rows {
		c.metrics.SetApplicationsByStatus(row.Status, row.Count)
	}
}
