package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"codetogether-api/internal/domain"
)

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	Create(ctx context.Context, project *domain.Project) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Project, error)
	Update(ctx context.Context, project *domain.Project) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type projectRepositoryImpl struct {
	crudRepository[domain.Project]
}

// NewProjectRepository creates a new instance of ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepositoryImpl{crudRepository[domain.Project]{db: db}}
}
