package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"codetogether-api/internal/domain"
)

// PositionRepository defines the interface for position data access
type PositionRepository interface {
	Create(ctx context.Context, position *domain.Position) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Position, error)
	FindByProjectID(ctx context.Context, projectID uuid.UUID) ([]*domain.Position, error)
	Update(ctx context.Context, position *domain.Position) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type positionRepositoryImpl struct {
	crudRepository[domain.Position]
}

// NewPositionRepository creates a new instance of PositionRepository
func NewPositionRepository(db *gorm.DB) PositionRepository {
	return &positionRepositoryImpl{crudRepository[domain.Position]{db: db}}
}

// FindByProjectID lists positions of a project in creation order
func (r *positionRepositoryImpl) FindByProjectID(ctx context.Context, projectID uuid.UUID) ([]*domain.Position, error) {
	var positions []*domain.Position
	if err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at ASC").
		Find(&positions).Error; err != nil {
		return nil, err
	}
	return positions, nil
}

// Update saves a position. The row is locked like ApplicationRepository.Approve
// and count may not drop below the APPROVED applications.
func (r *positionRepositoryImpl) Update(ctx context.Context, position *domain.Position) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var locked domain.Position
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", position.ID).
			First(&locked).Error; err != nil {
			return translateError(err)
		}

		approved, err := countByPositionAndStatus(tx, position.ID, domain.ApplicationApproved)
		if err != nil {
			return err
		}
		if int64(position.Count) < approved {
			return ErrCountBelowApproved
		}

		return translateError(tx.Save(position).Error)
	})
}
