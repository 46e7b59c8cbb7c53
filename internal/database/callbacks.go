package database

import (
	"database/sql"
	"time"

	"gorm.io/gorm"
)

const startTimeKey = "metrics:start_time"

// MetricsRecorder is implemented by metrics.Metrics
type MetricsRecorder interface {
	RecordDBQuery(operation, table string, duration time.Duration, err error)
	UpdateDBStats(stats sql.DBStats)
}

// RegisterMetricsCallbacks times every query, create, update, delete and row/raw statement
func RegisterMetricsCallbacks(db *gorm.DB, recorder MetricsRecorder) error {
	before := func(tx *gorm.DB) {
		tx.InstanceSet(startTimeKey, time.Now())
	}
	after := func(operation string) func(*gorm.DB) {
		return func(tx *gorm.DB) {
			start, ok := tx.InstanceGet(startTimeKey)
			if !ok {
				return
			}
			table := tx.Statement.Table
			if table == "" {
				table = "unknown"
			}
			recorder.RecordDBQuery(operation, table, time.Since(start.(time.Time)), tx.Error)
		}
	}

	cb := db.Callback()
	registrations := []func() error{
		func() error { return cb.Query().Before("gorm:query").Register("metrics:query_before", before) },
		func() error { return cb.Query().After("gorm:query").Register("metrics:query_after", after("select")) },
		func() error { return cb.Create().Before("gorm:create").Register("metrics:create_before", before) },
		func() error {
			return cb.Create().After("gorm:create").Register("metrics:create_after", after("insert"))
		},
		func() error { return cb.Update().Before("gorm:update").Register("metrics:update_before", before) },
		func() error {
			return cb.Update().After("gorm:update").Register("metrics:update_after", after("update"))
		},
		func() error { return cb.Delete().Before("gorm:delete").Register("metrics:delete_before", before) },
		func() error {
			return cb.Delete().After("gorm:delete").Register("metrics:delete_after", after("delete"))
		},
		func() error { return cb.Row().Before("gorm:row").Register("metrics:row_before", before) },
		func() error { return cb.Row().After("gorm:row").Register("metrics:row_after", after("select")) },
	}
	for _, register := range registrations {
		if err := register(); err != nil {
			return err
		}
	}
	return nil
}

// StartDBStatsCollector samples pool stats every interval until the returned channel is closed
func StartDBStatsCollector(db *gorm.DB, recorder MetricsRecorder, interval time.Duration) chan struct{} {
	done := make(chan struct{})

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				sqlDB, err := db.DB()
				if err != nil {
					continue
				}
				recorder.UpdateDBStats(sqlDB.Stats())
			case <-done:
				return
			}
		}
	}()

	return done
}
