package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"codetogether-api/internal/client"
	"codetogether-api/internal/domain"
	"codetogether-api/internal/repository"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	CreateFunc         func(ctx context.Context, user *domain.User) error
	FindByIDFunc       func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	FindByEmailFunc    func(ctx context.Context, email string) (*domain.User, error)
	FindByUsernameFunc func(ctx context.Context, username string) (*domain.User, error)
	UpdateFunc         func(ctx context.Context, user *domain.User) error
	DeleteFunc         func(ctx context.Context, id uuid.UUID) error
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	user.ID = uuid.New()
	return nil
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, repository.ErrNotFound
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	return nil, repository.ErrNotFound
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	if m.FindByUsernameFunc != nil {
		return m.FindByUsernameFunc(ctx, username)
	}
	return nil, repository.ErrNotFound
}

func (m *MockUserRepository) Update(ctx context.Context, user *domain.User) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, user)
	}
	return nil
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockProjectRepository is a mock implementation of ProjectRepository
type MockProjectRepository struct {
	CreateFunc   func(ctx context.Context, project *domain.Project) error
	FindByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.Project, error)
	UpdateFunc   func(ctx context.Context, project *domain.Project) error
	DeleteFunc   func(ctx context.Context, id uuid.UUID) error
}

func (m *MockProjectRepository) Create(ctx context.Context, project *domain.Project) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, project)
	}
	project.ID = uuid.New()
	return nil
}

func (m *MockProjectRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, repository.ErrNotFound
}

func (m *MockProjectRepository) Update(ctx context.Context, project *domain.Project) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, project)
	}
	return nil
}

func (m *MockProjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockPositionRepository is a mock implementation of PositionRepository
type MockPositionRepository struct {
	CreateFunc          func(ctx context.Context, position *domain.Position) error
	FindByIDFunc        func(ctx context.Context, id uuid.UUID) (*domain.Position, error)
	FindByProjectIDFunc func(ctx context.Context, projectID uuid.UUID) ([]*domain.Position, error)
	UpdateFunc          func(ctx context.Context, position *domain.Position) error
	DeleteFunc          func(ctx context.Context, id uuid.UUID) error
}

func (m *MockPositionRepository) Create(ctx context.Context, position *domain.Position) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, position)
	}
	position.ID = uuid.New()
	return nil
}

func (m *MockPositionRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Position, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, repository.ErrNotFound
}

func (m *MockPositionRepository) FindByProjectID(ctx context.Context, projectID uuid.UUID) ([]*domain.Position, error) {
	if m.FindByProjectIDFunc != nil {
		return m.FindByProjectIDFunc(ctx, projectID)
	}
	return nil, nil
}

func (m *MockPositionRepository) Update(ctx context.Context, position *domain.Position) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, position)
	}
	return nil
}

func (m *MockPositionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockApplicationRepository is a mock implementation of ApplicationRepository
type MockApplicationRepository struct {
	CreateFunc                   func(ctx context.Context, application *domain.Application) error
	FindByIDFunc                 func(ctx context.Context, id uuid.UUID) (*domain.Application, error)
	FindByUserAndPositionFunc    func(ctx context.Context, userID, positionID uuid.UUID) (*domain.Application, error)
	FindByPositionIDFunc         func(ctx context.Context, positionID uuid.UUID) ([]*domain.Application, error)
	CountByPositionAndStatusFunc func(ctx context.Context, positionID uuid.UUID, status domain.ApplicationStatus) (int64, error)
	UpdateMessageFunc            func(ctx context.Context, id uuid.UUID, message string) error
	ApproveFunc                  func(ctx context.Context, id, positionID uuid.UUID) error
	RejectFunc                   func(ctx context.Context, id uuid.UUID) error
	DeleteFunc                   func(ctx context.Context, id uuid.UUID) error
}

func (m *MockApplicationRepository) Create(ctx context.Context, application *domain.Application) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, application)
	}
	application.ID = uuid.New()
	application.CreatedAt = time.Now()
	application.UpdatedAt = application.CreatedAt
	return nil
}

func (m *MockApplicationRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Application, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, repository.ErrNotFound
}

func (m *MockApplicationRepository) FindByUserAndPosition(ctx context.Context, userID, positionID uuid.UUID) (*domain.Application, error) {
	if m.FindByUserAndPositionFunc != nil {
		return m.FindByUserAndPositionFunc(ctx, userID, positionID)
	}
	return nil, repository.ErrNotFound
}

func (m *MockApplicationRepository) FindByPositionID(ctx context.Context, positionID uuid.UUID) ([]*domain.Application, error) {
	if m.FindByPositionIDFunc != nil {
		return m.FindByPositionIDFunc(ctx, positionID)
	}
	return nil, nil
}

func (m *MockApplicationRepository) CountByPositionAndStatus(ctx context.Context, positionID uuid.UUID, status domain.ApplicationStatus) (int64, error) {
	if m.CountByPositionAndStatusFunc != nil {
		return m.CountByPositionAndStatusFunc(ctx, positionID, status)
	}
	return 0, nil
}

func (m *MockApplicationRepository) UpdateMessage(ctx context.Context, id uuid.UUID, message string) error {
	if m.UpdateMessageFunc != nil {
		return m.UpdateMessageFunc(ctx, id, message)
	}
	return nil
}

func (m *MockApplicationRepository) Approve(ctx context.Context, id, positionID uuid.UUID) error {
	if m.ApproveFunc != nil {
		return m.ApproveFunc(ctx, id, positionID)
	}
	return nil
}

func (m *MockApplicationRepository) Reject(ctx context.Context, id uuid.UUID) error {
	if m.RejectFunc != nil {
		return m.RejectFunc(ctx, id)
	}
	return nil
}

func (m *MockApplicationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockPasswordHasher prefixes the plaintext instead of hashing it
type MockPasswordHasher struct {
	HashFunc func(plaintext string) (string, error)
}

func (m *MockPasswordHasher) Hash(plaintext string) (string, error) {
	if m.HashFunc != nil {
		return m.HashFunc(plaintext)
	}
	return "hashed:" + plaintext, nil
}

func (m *MockPasswordHasher) Verify(plaintext, hash string) bool {
	return hash == "hashed:"+plaintext
}

// MockTokenIssuer is a mock implementation of auth.TokenIssuer
type MockTokenIssuer struct {
	IssueFunc  func(subject uuid.UUID, ttl time.Duration) (string, error)
	DecodeFunc func(token string) (uuid.UUID, error)
}

func (m *MockTokenIssuer) Issue(subject uuid.UUID, ttl time.Duration) (string, error) {
	if m.IssueFunc != nil {
		return m.IssueFunc(subject, ttl)
	}
	return "token-" + subject.String(), nil
}

func (m *MockTokenIssuer) Decode(token string) (uuid.UUID, error) {
	if m.DecodeFunc != nil {
		return m.DecodeFunc(token)
	}
	return uuid.Nil, nil
}

// MockNotificationClient records every event it is given
type MockNotificationClient struct {
	mu     sync.Mutex
	Events []client.NotificationEvent
	Err    error
}

func (m *MockNotificationClient) SendNotification(ctx context.Context, event client.NotificationEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = append(m.Events, event)
	return m.Err
}
