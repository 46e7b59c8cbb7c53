package database

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"codetogether-api/internal/domain"
)

// Models lists every persisted domain model
func Models() []interface{} {
	return []interface{}{
		&domain.User{},
		&domain.Project{},
		&domain.Position{},
		&domain.Application{},
	}
}

// AutoMigrate creates or updates tables, indexes and foreign keys for all models
func AutoMigrate(db *gorm.DB, log *zap.Logger) error {
	migrator := db.Migrator()
	models := Models()

	for _, model := range models {
		if migrator.HasTable(model) {
			log.Debug("Table exists, updating schema", zap.String("model", fmt.Sprintf("%T", model)))
		} else {
			log.Info("Creating table", zap.String("model", fmt.Sprintf("%T", model)))
		}
	}

	// All models go in one call so gorm orders them by foreign key dependencies
	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("failed to run auto-migration: %w", err)
	}

	log.Info("Auto-migration completed", zap.Int("models", len(models)))
	return nil
}
