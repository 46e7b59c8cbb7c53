package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"codetogether-api/internal/domain"
	"codetogether-api/internal/dto"
	"codetogether-api/internal/metrics"
	"codetogether-api/internal/repository"
	"codetogether-api/internal/response"
)

// ProjectService defines the interface for project business logic
type ProjectService interface {
	Create(ctx context.Context, ownerID uuid.UUID, req *dto.ProjectRequest) (*dto.ProjectResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.ProjectResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.ProjectRequest, requesterID uuid.UUID) (*dto.ProjectResponse, error)
	Delete(ctx context.Context, id, requesterID uuid.UUID) error
}

type projectServiceImpl struct {
	projectRepo repository.ProjectRepository
	owners      ownershipResolver
	metrics     *metrics.Metrics
	logger      *zap.Logger
}

// NewProjectService creates a new instance of ProjectService
func NewProjectService(projectRepo repository.ProjectRepository, positionRepo repository.PositionRepository, m *metrics.Metrics, logger *zap.Logger) ProjectService {
	return &projectServiceImpl{
		projectRepo: projectRepo,
		owners:      ownershipResolver{projectRepo: projectRepo, positionRepo: positionRepo},
		metrics:     m,
		logger:      logger,
	}
}

func (s *projectServiceImpl) Create(ctx context.Context, ownerID uuid.UUID, req *dto.ProjectRequest) (*dto.ProjectResponse, error) {
	if !req.Difficulty.IsValid() {
		return nil, response.NewValidationError("Invalid difficulty", string(req.Difficulty))
	}

	project := &domain.Project{
		OwnerID:     ownerID,
		Name:        req.Name,
		Description: req.Description,
		Difficulty:  req.Difficulty,
	}
	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, internalError("Failed to create project", err)
	}

	s.metrics.IncrementProjectCreated()
	s.logger.Info("Project created",
		zap.String("project_id", project.ID.String()),
		zap.String("owner_id", ownerID.String()),
	)
	return dto.ToProjectResponse(project), nil
}

func (s *projectServiceImpl) GetByID(ctx context.Context, id uuid.UUID) (*dto.ProjectResponse, error) {
	project, err := s.owners.project(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.ToProjectResponse(project), nil
}

// Update checks existence first, then ownership
func (s *projectServiceImpl) Update(ctx context.Context, id uuid.UUID, req *dto.ProjectRequest, requesterID uuid.UUID) (*dto.ProjectResponse, error) {
	project, err := s.owners.project(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := assertOwnership(project.OwnerID, requesterID); err != nil {
		return nil, err
	}
	if !req.Difficulty.IsValid() {
		return nil, response.NewValidationError("Invalid difficulty", string(req.Difficulty))
	}

	project.Name = req.Name
	project.Description = req.Description
	project.Difficulty = req.Difficulty
	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, internalError("Failed to update project", err)
	}
	return dto.ToProjectResponse(project), nil
}

// Delete removes the project; its positions and their applications cascade
func (s *projectServiceImpl) Delete(ctx context.Context, id, requesterID uuid.UUID) error {
	project, err := s.owners.project(ctx, id)
	if err != nil {
		return err
	}
	if err := assertOwnership(project.OwnerID, requesterID); err != nil {
		return err
	}

	if err := s.projectRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return response.NewNotFoundError(response.MsgProjectNotFound, "")
		}
		return internalError("Failed to delete project", err)
	}
	s.logger.Info("Project deleted", zap.String("project_id", id.String()))
	return nil
}
