package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"codetogether-api/internal/domain"
	"codetogether-api/internal/repository"
	"codetogether-api/internal/response"
)

// assertOwnership fails with AccessDenied unless the acting user owns the resource
func assertOwnership(resourceOwnerID, actingUserID uuid.UUID) error {
	if resourceOwnerID != actingUserID {
		return response.NewForbiddenError(response.MsgAccessDenied, "")
	}
	return nil
}

// ownershipResolver walks from a leaf entity up to the owning project.
// Ownership is always taken from stored rows, never from caller input.
type ownershipResolver struct {
	projectRepo  repository.ProjectRepository
	positionRepo repository.PositionRepository
}

func (r ownershipResolver) project(ctx context.Context, projectID uuid.UUID) (*domain.Project, error) {
	project, err := r.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, response.NewNotFoundError(response.MsgProjectNotFound, "")
		}
		return nil, internalError("Failed to fetch project", err)
	}
	return project, nil
}

func (r ownershipResolver) position(ctx context.Context, positionID uuid.UUID) (*domain.Position, error) {
	position, err := r.positionRepo.FindByID(ctx, positionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, response.NewNotFoundError(response.MsgPositionNotFound, "")
		}
		return nil, internalError("Failed to fetch position", err)
	}
	return position, nil
}

// positionOwner returns the position and the ID of the user owning its project
func (r ownershipResolver) positionOwner(ctx context.Context, positionID uuid.UUID) (*domain.Position, uuid.UUID, error) {
	position, err := r.position(ctx, positionID)
	if err != nil {
		return nil, uuid.Nil, err
	}
	project, err := r.project(ctx, position.ProjectID)
	if err != nil {
		return nil, uuid.Nil, err
	}
	return position, project.OwnerID, nil
}

func internalError(message string, err error) *response.AppError {
	return response.NewInternalError(message, err.Error())
}
