package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"codetogether-api/internal/domain"
)

// ApplicationRepository defines the interface for application data access
type ApplicationRepository interface {
	Create(ctx context.Context, application *domain.Application) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Application, error)
	FindByUserAndPosition(ctx context.Context, userID, positionID uuid.UUID) (*domain.Application, error)
	FindByPositionID(ctx context.Context, positionID uuid.UUID) ([]*domain.Application, error)
	CountByPositionAndStatus(ctx context.Context, positionID uuid.UUID, status domain.ApplicationStatus) (int64, error)
	UpdateMessage(ctx context.Context, id uuid.UUID, message string) error
	Approve(ctx context.Context, id, positionID uuid.UUID) error
	Reject(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type applicationRepositoryImpl struct {
	crudRepository[domain.Application]
}

// NewApplicationRepository creates a new instance of ApplicationRepository
func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &applicationRepositoryImpl{crudRepository[domain.Application]{db: db}}
}

// FindByUserAndPosition returns the single application a user made to a position
func (r *applicationRepositoryImpl) FindByUserAndPosition(ctx context.Context, userID, positionID uuid.UUID) (*domain.Application, error) {
	var application domain.Application
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND position_id = ?", userID, positionID).
		First(&application).Error; err != nil {
		return nil, translateError(err)
	}
	return &application, nil
}

// FindByPositionID lists applications of a position, oldest first
func (r *applicationRepositoryImpl) FindByPositionID(ctx context.Context, positionID uuid.UUID) ([]*domain.Application, error) {
	var applications []*domain.Application
	if err := r.db.WithContext(ctx).
		Where("position_id = ?", positionID).
		Order("created_at ASC").
		Find(&applications).Error; err != nil {
		return nil, err
	}
	return applications, nil
}

func (r *applicationRepositoryImpl) CountByPositionAndStatus(ctx context.Context, positionID uuid.UUID, status domain.ApplicationStatus) (int64, error) {
	return countByPositionAndStatus(r.db.WithContext(ctx), positionID, status)
}

// UpdateMessage only touches message and updated_at so a concurrent decision is never overwritten
func (r *applicationRepositoryImpl) UpdateMessage(ctx context.Context, id uuid.UUID, message string) error {
	result := r.db.WithContext(ctx).
		Model(&domain.Application{}).
		Where("id = ?", id).
		Update("message", message)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Approve marks a PENDING application APPROVED.
// The position row is locked for the duration of the transaction so concurrent
// approvals on the same position are serialized and the approved count is fresh.
func (r *applicationRepositoryImpl) Approve(ctx context.Context, id, positionID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var position domain.Position
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", positionID).
			First(&position).Error; err != nil {
			return translateError(err)
		}

		approved, err := countByPositionAndStatus(tx, positionID, domain.ApplicationApproved)
		if err != nil {
			return err
		}
		if approved >= int64(position.Count) {
			return ErrNoVacancy
		}

		return transitionFromPending(tx, id, domain.ApplicationApproved)
	})
}

// Reject marks a PENDING application REJECTED
func (r *applicationRepositoryImpl) Reject(ctx context.Context, id uuid.UUID) error {
	return transitionFromPending(r.db.WithContext(ctx), id, domain.ApplicationRejected)
}

func countByPositionAndStatus(db *gorm.DB, positionID uuid.UUID, status domain.ApplicationStatus) (int64, error) {
	var count int64
	if err := db.Model(&domain.Application{}).
		Where("position_id = ? AND status = ?", positionID, status).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// transitionFromPending is a conditional update: it only succeeds while the row is still PENDING.
// A row deleted since it was loaded reports ErrNotFound rather than a status conflict.
func transitionFromPending(db *gorm.DB, id uuid.UUID, to domain.ApplicationStatus) error {
	result := db.Model(&domain.Application{}).
		Where("id = ? AND status = ?", id, domain.ApplicationPending).
		Update("status", to)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		var remaining int64
		if err := db.Model(&domain.Application{}).Where("id = ?", id).Count(&remaining).Error; err != nil {
			return translateError(err)
		}
		if remaining == 0 {
			return ErrNotFound
		}
		return ErrStatusConflict
	}
	return nil
}
