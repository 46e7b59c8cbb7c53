package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"codetogether-api/internal/domain"
	"codetogether-api/internal/dto"
	"codetogether-api/internal/repository"
	"codetogether-api/internal/response"
)

// PositionService defines the interface for position business logic
type PositionService interface {
	Create(ctx context.Context, projectID uuid.UUID, req *dto.PositionRequest, requesterID uuid.UUID) (*dto.PositionResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.PositionResponse, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]*dto.PositionResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.PositionRequest, requesterID uuid.UUID) (*dto.PositionResponse, error)
	Delete(ctx context.Context, id, requesterID uuid.UUID) error
}

type positionServiceImpl struct {
	positionRepo repository.PositionRepository
	owners       ownershipResolver
}

// NewPositionService creates a new instance of PositionService
func NewPositionService(positionRepo repository.PositionRepository, projectRepo repository.ProjectRepository) PositionService {
	return &positionServiceImpl{
		positionRepo: positionRepo,
		owners:       ownershipResolver{projectRepo: projectRepo, positionRepo: positionRepo},
	}
}

func (s *positionServiceImpl) Create(ctx context.Context, projectID uuid.UUID, req *dto.PositionRequest, requesterID uuid.UUID) (*dto.PositionResponse, error) {
	project, err := s.owners.project(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if err := assertOwnership(project.OwnerID, requesterID); err != nil {
		return nil, err
	}

	count := req.CountOrDefault()
	if count < 1 {
		return nil, response.NewValidationError("Count must be at least 1", "")
	}

	position := &domain.Position{
		ProjectID:   project.ID,
		Name:        req.Name,
		Description: req.Description,
		Count:       count,
	}
	if err := s.positionRepo.Create(ctx, position); err != nil {
		return nil, internalError("Failed to create position", err)
	}
	return dto.ToPositionResponse(position), nil
}

func (s *positionServiceImpl) GetByID(ctx context.Context, id uuid.UUID) (*dto.PositionResponse, error) {
	position, err := s.owners.position(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.ToPositionResponse(position), nil
}

// ListByProject returns an empty list for unknown projects
func (s *positionServiceImpl) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*dto.PositionResponse, error) {
	positions, err := s.positionRepo.FindByProjectID(ctx, projectID)
	if err != nil {
		return nil, internalError("Failed to fetch positions", err)
	}
	return dto.ToPositionResponses(positions), nil
}

// Update resolves ownership through the stored project_id of the position
func (s *positionServiceImpl) Update(ctx context.Context, id uuid.UUID, req *dto.PositionRequest, requesterID uuid.UUID) (*dto.PositionResponse, error) {
	position, ownerID, err := s.owners.positionOwner(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := assertOwnership(ownerID, requesterID); err != nil {
		return nil, err
	}

	count := req.CountOrDefault()
	if count < 1 {
		return nil, response.NewValidationError("Count must be at least 1", "")
	}

	position.Name = req.Name
	position.Description = req.Description
	position.Count = count
	if err := s.positionRepo.Update(ctx, position); err != nil {
		switch {
		case errors.Is(err, repository.ErrCountBelowApproved):
			return nil, response.NewPolicyError(response.MsgCountBelowApproved, "")
		case errors.Is(err, repository.ErrNotFound):
			return nil, response.NewNotFoundError(response.MsgPositionNotFound, "")
		}
		return nil, internalError("Failed to update position", err)
	}
	return dto.ToPositionResponse(position), nil
}

func (s *positionServiceImpl) Delete(ctx context.Context, id, requesterID uuid.UUID) error {
	_, ownerID, err := s.owners.positionOwner(ctx, id)
	if err != nil {
		return err
	}
	if err := assertOwnership(ownerID, requesterID); err != nil {
		return err
	}

	if err := s.positionRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return response.NewNotFoundError(response.MsgPositionNotFound, "")
		}
		return internalError("Failed to delete position", err)
	}
	return nil
}
