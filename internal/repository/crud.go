package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// crudRepository implements the operations every entity repository shares.
// Entity repositories embed it and add their own filtered queries.
type crudRepository[T any] struct {
	db *gorm.DB
}

func (r crudRepository[T]) Create(ctx context.Context, entity *T) error {
	return translateError(r.db.WithContext(ctx).Create(entity).Error)
}

func (r crudRepository[T]) FindByID(ctx context.Context, id uuid.UUID) (*T, error) {
	var entity T
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&entity).Error; err != nil {
		return nil, translateError(err)
	}
	return &entity, nil
}

func (r crudRepository[T]) Update(ctx context.Context, entity *T) error {
	return translateError(r.db.WithContext(ctx).Save(entity).Error)
}

func (r crudRepository[T]) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(new(T))
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
