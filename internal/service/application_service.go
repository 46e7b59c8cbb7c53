package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"codetogether-api/internal/client"
	"codetogether-api/internal/domain"
	"codetogether-api/internal/dto"
	"codetogether-api/internal/metrics"
	"codetogether-api/internal/repository"
	"codetogether-api/internal/response"
)

// ApplicationService drives the application lifecycle: submit, edit, withdraw, approve and reject
type ApplicationService interface {
	Create(ctx context.Context, positionID uuid.UUID, req *dto.ApplicationRequest, applicantID uuid.UUID) (*dto.ApplicationResponse, error)
	ListByPosition(ctx context.Context, positionID, actorID uuid.UUID) ([]*dto.ApplicationResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.ApplicationRequest, actorID uuid.UUID) (*dto.ApplicationResponse, error)
	Delete(ctx context.Context, id, actorID uuid.UUID) error
	Approve(ctx context.Context, id, actorID uuid.UUID) (*dto.ApplicationResponse, error)
	Reject(ctx context.Context, id, actorID uuid.UUID) (*dto.ApplicationResponse, error)
}

type applicationServiceImpl struct {
	applicationRepo repository.ApplicationRepository
	owners          ownershipResolver
	notifier        client.NotificationClient
	metrics         *metrics.Metrics
	logger          *zap.Logger
}

// NewApplicationService creates a new instance of ApplicationService
func NewApplicationService(
	applicationRepo repository.ApplicationRepository,
	positionRepo repository.PositionRepository,
	projectRepo repository.ProjectRepository,
	notifier client.NotificationClient,
	m *metrics.Metrics,
	logger *zap.Logger,
) ApplicationService {
	if notifier == nil {
		notifier = client.NewNoOpNotificationClient()
	}
	return &applicationServiceImpl{
		applicationRepo: applicationRepo,
		owners:          ownershipResolver{projectRepo: projectRepo, positionRepo: positionRepo},
		notifier:        notifier,
		metrics:         m,
		logger:          logger,
	}
}

// Create submits an application. Checks run in a fixed order:
// position exists, applicant is not the owner, no earlier application, a slot is free.
func (s *applicationServiceImpl) Create(ctx context.Context, positionID uuid.UUID, req *dto.ApplicationRequest, applicantID uuid.UUID) (*dto.ApplicationResponse, error) {
	position, ownerID, err := s.owners.positionOwner(ctx, positionID)
	if err != nil {
		return nil, err
	}
	if ownerID == applicantID {
		return nil, response.NewPolicyError(response.MsgOwnerCannotApply, "")
	}

	if _, err := s.applicationRepo.FindByUserAndPosition(ctx, applicantID, positionID); err == nil {
		return nil, response.NewPolicyError(response.MsgAlreadyApplied, "")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, internalError("Failed to check existing application", err)
	}

	if err := s.ensureVacancy(ctx, position); err != nil {
		return nil, err
	}

	application := &domain.Application{
		UserID:     applicantID,
		PositionID: positionID,
		Message:    req.Message,
		Status:     domain.ApplicationPending,
	}
	if err := s.applicationRepo.Create(ctx, application); err != nil {
		if errors.Is(err, repository.ErrDuplicateEntry) {
			return nil, response.NewPolicyError(response.MsgAlreadyApplied, "")
		}
		return nil, internalError("Failed to create application", err)
	}

	s.metrics.IncrementApplicationSubmitted()
	s.logger.Info("Application submitted",
		zap.String("application_id", application.ID.String()),
		zap.String("position_id", positionID.String()),
		zap.String("user_id", applicantID.String()),
	)
	s.notify(ctx, client.NotificationApplicationReceived, applicantID, ownerID, application, position)

	return dto.ToApplicationResponse(application), nil
}

// ListByPosition is restricted to the owner of the position's project
func (s *applicationServiceImpl) ListByPosition(ctx context.Context, positionID, actorID uuid.UUID) ([]*dto.ApplicationResponse, error) {
	_, ownerID, err := s.owners.positionOwner(ctx, positionID)
	if err != nil {
		return nil, err
	}
	if err := assertOwnership(ownerID, actorID); err != nil {
		return nil, err
	}

	applications, err := s.applicationRepo.FindByPositionID(ctx, positionID)
	if err != nil {
		return nil, internalError("Failed to fetch applications", err)
	}
	return dto.ToApplicationResponses(applications), nil
}

// Update edits the message. Only the applicant may edit, regardless of status.
func (s *applicationServiceImpl) Update(ctx context.Context, id uuid.UUID, req *dto.ApplicationRequest, actorID uuid.UUID) (*dto.ApplicationResponse, error) {
	application, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := assertOwnership(application.UserID, actorID); err != nil {
		return nil, err
	}

	if err := s.applicationRepo.UpdateMessage(ctx, id, req.Message); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, response.NewNotFoundError(response.MsgApplicationNotFound, "")
		}
		return nil, internalError("Failed to update application", err)
	}

	return s.reload(ctx, id)
}

// Delete withdraws the application. Only the applicant may withdraw, regardless of status.
func (s *applicationServiceImpl) Delete(ctx context.Context, id, actorID uuid.UUID) error {
	application, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if err := assertOwnership(application.UserID, actorID); err != nil {
		return err
	}

	if err := s.applicationRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return response.NewNotFoundError(response.MsgApplicationNotFound, "")
		}
		return internalError("Failed to delete application", err)
	}
	return nil
}

// Approve checks status, then ownership, then vacancy. The repository repeats the
// vacancy and status checks under a row lock so concurrent approvals cannot overfill.
func (s *applicationServiceImpl) Approve(ctx context.Context, id, actorID uuid.UUID) (*dto.ApplicationResponse, error) {
	application, position, ownerID, err := s.loadForDecision(ctx, id, actorID)
	if err != nil {
		return nil, err
	}

	if err := s.ensureVacancy(ctx, position); err != nil {
		return nil, err
	}

	if err := s.applicationRepo.Approve(ctx, id, position.ID); err != nil {
		return nil, decisionError(err)
	}

	s.metrics.IncrementApplicationDecision(string(domain.ApplicationApproved))
	s.logger.Info("Application approved",
		zap.String("application_id", id.String()),
		zap.String("position_id", position.ID.String()),
	)
	s.notify(ctx, client.NotificationApplicationApproved, ownerID, application.UserID, application, position)

	return s.reload(ctx, id)
}

// Reject applies the same status and ownership checks as Approve; vacancy is irrelevant
func (s *applicationServiceImpl) Reject(ctx context.Context, id, actorID uuid.UUID) (*dto.ApplicationResponse, error) {
	application, position, ownerID, err := s.loadForDecision(ctx, id, actorID)
	if err != nil {
		return nil, err
	}

	if err := s.applicationRepo.Reject(ctx, id); err != nil {
		return nil, decisionError(err)
	}

	s.metrics.IncrementApplicationDecision(string(domain.ApplicationRejected))
	s.logger.Info("Application rejected",
		zap.String("application_id", id.String()),
		zap.String("position_id", position.ID.String()),
	)
	s.notify(ctx, client.NotificationApplicationRejected, ownerID, application.UserID, application, position)

	return s.reload(ctx, id)
}

// loadForDecision: application exists, is PENDING, and actor owns the position's project
func (s *applicationServiceImpl) loadForDecision(ctx context.Context, id, actorID uuid.UUID) (*domain.Application, *domain.Position, uuid.UUID, error) {
	application, err := s.load(ctx, id)
	if err != nil {
		return nil, nil, uuid.Nil, err
	}
	if !application.IsPending() {
		return nil, nil, uuid.Nil, response.NewPolicyError(response.MsgOnlyPendingChange, "")
	}

	position, ownerID, err := s.owners.positionOwner(ctx, application.PositionID)
	if err != nil {
		return nil, nil, uuid.Nil, err
	}
	if err := assertOwnership(ownerID, actorID); err != nil {
		return nil, nil, uuid.Nil, err
	}
	return application, position, ownerID, nil
}

func (s *applicationServiceImpl) ensureVacancy(ctx context.Context, position *domain.Position) error {
	approved, err := s.applicationRepo.CountByPositionAndStatus(ctx, position.ID, domain.ApplicationApproved)
	if err != nil {
		return internalError("Failed to count approved applications", err)
	}
	if approved >= int64(position.Count) {
		return response.NewPolicyError(response.MsgNoVacantSlots, "")
	}
	return nil
}

func (s *applicationServiceImpl) load(ctx context.Context, id uuid.UUID) (*domain.Application, error) {
	application, err := s.applicationRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, response.NewNotFoundError(response.MsgApplicationNotFound, "")
		}
		return nil, internalError("Failed to fetch application", err)
	}
	return application, nil
}

func (s *applicationServiceImpl) reload(ctx context.Context, id uuid.UUID) (*dto.ApplicationResponse, error) {
	application, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.ToApplicationResponse(application), nil
}

// decisionError maps the repository's write-time guards onto client errors
func decisionError(err error) error {
	switch {
	case errors.Is(err, repository.ErrNoVacancy):
		return response.NewPolicyError(response.MsgNoVacantSlots, "")
	case errors.Is(err, repository.ErrStatusConflict):
		return response.NewPolicyError(response.MsgOnlyPendingChange, "")
	case errors.Is(err, repository.ErrNotFound):
		// deleting the position cascades to its applications
		return response.NewNotFoundError(response.MsgApplicationNotFound, "")
	}
	return internalError("Failed to change application status", err)
}

func (s *applicationServiceImpl) notify(ctx context.Context, kind client.NotificationType, actorID, targetID uuid.UUID, application *domain.Application, position *domain.Position) {
	event := client.NotificationEvent{
		Type:         kind,
		ActorID:      actorID,
		TargetUserID: targetID,
		ResourceType: "application",
		ResourceID:   application.ID,
		ResourceName: position.Name,
		Metadata: map[string]interface{}{
			"positionId": position.ID.String(),
			"projectId":  position.ProjectID.String(),
		},
	}
	if err := s.notifier.SendNotification(ctx, event); err != nil {
		s.logger.Warn("Failed to send notification",
			zap.String("type", string(kind)),
			zap.String("application_id", application.ID.String()),
			zap.Error(err),
		)
	}
}
