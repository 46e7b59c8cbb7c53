package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"codetogether-api/internal/dto"
)

// MockAuthService is a mock implementation of AuthService
type MockAuthService struct {
	SignupFunc        func(ctx context.Context, req *dto.SignupRequest) (*dto.UserResponse, error)
	LoginFunc         func(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	ValidateTokenFunc func(ctx context.Context, token string) (uuid.UUID, error)
}

func (m *MockAuthService) Signup(ctx context.Context, req *dto.SignupRequest) (*dto.UserResponse, error) {
	if m.SignupFunc != nil {
		return m.SignupFunc(ctx, req)
	}
	return &dto.UserResponse{ID: uuid.New(), Email: req.Email, Username: req.Username}, nil
}

func (m *MockAuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, req)
	}
	return &dto.TokenResponse{AccessToken: "token", TokenType: "bearer"}, nil
}

func (m *MockAuthService) ValidateToken(ctx context.Context, token string) (uuid.UUID, error) {
	if m.ValidateTokenFunc != nil {
		return m.ValidateTokenFunc(ctx, token)
	}
	return uuid.Nil, nil
}

// MockProjectService is a mock implementation of ProjectService
type MockProjectService struct {
	CreateFunc  func(ctx context.Context, ownerID uuid.UUID, req *dto.ProjectRequest) (*dto.ProjectResponse, error)
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (*dto.ProjectResponse, error)
	UpdateFunc  func(ctx context.Context, id uuid.UUID, req *dto.ProjectRequest, requesterID uuid.UUID) (*dto.ProjectResponse, error)
	DeleteFunc  func(ctx context.Context, id, requesterID uuid.UUID) error
}

func (m *MockProjectService) Create(ctx context.Context, ownerID uuid.UUID, req *dto.ProjectRequest) (*dto.ProjectResponse, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, ownerID, req)
	}
	return &dto.ProjectResponse{ID: uuid.New(), OwnerID: ownerID, Name: req.Name}, nil
}

func (m *MockProjectService) GetByID(ctx context.Context, id uuid.UUID) (*dto.ProjectResponse, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return &dto.ProjectResponse{ID: id}, nil
}

func (m *MockProjectService) Update(ctx context.Context, id uuid.UUID, req *dto.ProjectRequest, requesterID uuid.UUID) (*dto.ProjectResponse, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, req, requesterID)
	}
	return &dto.ProjectResponse{ID: id, Name: req.Name}, nil
}

func (m *MockProjectService) Delete(ctx context.Context, id, requesterID uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id, requesterID)
	}
	return nil
}

// MockApplicationService is a mock implementation of ApplicationService
type MockApplicationService struct {
	CreateFunc         func(ctx context.Context, positionID uuid.UUID, req *dto.ApplicationRequest, applicantID uuid.UUID) (*dto.ApplicationResponse, error)
	ListByPositionFunc func(ctx context.Context, positionID, actorID uuid.UUID) ([]*dto.ApplicationResponse, error)
	UpdateFunc         func(ctx context.Context, id uuid.UUID, req *dto.ApplicationRequest, actorID uuid.UUID) (*dto.ApplicationResponse, error)
	DeleteFunc         func(ctx context.Context, id, actorID uuid.UUID) error
	ApproveFunc        func(ctx context.Context, id, actorID uuid.UUID) (*dto.ApplicationResponse, error)
	RejectFunc         func(ctx context.Context, id, actorID uuid.UUID) (*dto.ApplicationResponse, error)
}

func (m *MockApplicationService) Create(ctx context.Context, positionID uuid.UUID, req *dto.ApplicationRequest, applicantID uuid.UUID) (*dto.ApplicationResponse, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, positionID, req, applicantID)
	}
	return &dto.ApplicationResponse{ID: uuid.New(), PositionID: positionID, UserID: applicantID, Message: req.Message, Status: "PENDING"}, nil
}

func (m *MockApplicationService) ListByPosition(ctx context.Context, positionID, actorID uuid.UUID) ([]*dto.ApplicationResponse, error) {
	if m.ListByPositionFunc != nil {
		return m.ListByPositionFunc(ctx, positionID, actorID)
	}
	return []*dto.ApplicationResponse{}, nil
}

func (m *MockApplicationService) Update(ctx context.Context, id uuid.UUID, req *dto.ApplicationRequest, actorID uuid.UUID) (*dto.ApplicationResponse, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, req, actorID)
	}
	return &dto.ApplicationResponse{ID: id, Message: req.Message}, nil
}

func (m *MockApplicationService) Delete(ctx context.Context, id, actorID uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id, actorID)
	}
	return nil
}

func (m *MockApplicationService) Approve(ctx context.Context, id, actorID uuid.UUID) (*dto.ApplicationResponse, error) {
	if m.ApproveFunc != nil {
		return m.ApproveFunc(ctx, id, actorID)
	}
	return &dto.ApplicationResponse{ID: id, Status: "APPROVED"}, nil
}

func (m *MockApplicationService) Reject(ctx context.Context, id, actorID uuid.UUID) (*dto.ApplicationResponse, error) {
	if m.RejectFunc != nil {
		return m.RejectFunc(ctx, id, actorID)
	}
	return &dto.ApplicationResponse{ID: id, Status: "REJECTED"}, nil
}

// withUser stands in for the auth middleware
func withUser(userID uuid.UUID) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextKeyUserID, userID)
		c.Set(ContextKeyToken, "test-token")
		c.Next()
	}
}

func performRequest(r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(w *httptest.ResponseRecorder) map[string]interface{} {
	var resp map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return resp
}

// MockPositionService is a mock implementation of PositionService
type MockPositionService struct {
	CreateFunc        func(ctx context.Context, projectID uuid.UUID, req *dto.PositionRequest, requesterID uuid.UUID) (*dto.PositionResponse, error)
	ListByProjectFunc func(ctx context.Context, projectID uuid.UUID) ([]*dto.PositionResponse, error)
	UpdateFunc        func(ctx context.Context, id uuid.UUID, req *dto.PositionRequest, requesterID uuid.UUID) (*dto.PositionResponse, error)
	DeleteFunc        func(ctx context.Context, id, requesterID uuid.UUID) error
}

func (m *MockPositionService) Create(ctx context.Context, projectID uuid.UUID, req *dto.PositionRequest, requesterID uuid.UUID) (*dto.PositionResponse, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, projectID, req, requesterID)
	}
	return &dto.PositionResponse{ID: uuid.New(), ProjectID: projectID, Name: req.Name, Count: 1}, nil
}

func (m *MockPositionService) GetByID(ctx context.Context, id uuid.UUID) (*dto.PositionResponse, error) {
	return &dto.PositionResponse{ID: id}, nil
}

func (m *MockPositionService) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*dto.PositionResponse, error) {
	if m.ListByProjectFunc != nil {
		return m.ListByProjectFunc(ctx, projectID)
	}
	return []*dto.PositionResponse{}, nil
}

func (m *MockPositionService) Update(ctx context.Context, id uuid.UUID, req *dto.PositionRequest, requesterID uuid.UUID) (*dto.PositionResponse, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, req, requesterID)
	}
	return &dto.PositionResponse{ID: id, Name: req.Name}, nil
}

func (m *MockPositionService) Delete(ctx context.Context, id, requesterID uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id, requesterID)
	}
	return nil
}

// MockUserService is a mock implementation of UserService
type MockUserService struct {
	GetByIDFunc               func(ctx context.Context, id uuid.UUID) (*dto.UserResponse, error)
	UpdateFunc                func(ctx context.Context, userID uuid.UUID, req *dto.UpdateUserRequest) (*dto.UserResponse, error)
	DeleteFunc                func(ctx context.Context, userID uuid.UUID) error
	CreateAvatarUploadURLFunc func(ctx context.Context, userID uuid.UUID, req *dto.AvatarUploadURLRequest) (*dto.AvatarUploadURLResponse, error)
	ConfirmAvatarFunc         func(ctx context.Context, userID uuid.UUID, req *dto.ConfirmAvatarRequest) (*dto.UserResponse, error)
}

func (m *MockUserService) GetByID(ctx context.Context, id uuid.UUID) (*dto.UserResponse, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return &dto.UserResponse{ID: id, Username: "dev"}, nil
}

func (m *MockUserService) Update(ctx context.Context, userID uuid.UUID, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, userID, req)
	}
	return &dto.UserResponse{ID: userID, Username: req.Username}, nil
}

func (m *MockUserService) Delete(ctx context.Context, userID uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, userID)
	}
	return nil
}

func (m *MockUserService) CreateAvatarUploadURL(ctx context.Context, userID uuid.UUID, req *dto.AvatarUploadURLRequest) (*dto.AvatarUploadURLResponse, error) {
	if m.CreateAvatarUploadURLFunc != nil {
		return m.CreateAvatarUploadURLFunc(ctx, userID, req)
	}
	return &dto.AvatarUploadURLResponse{UploadURL: "https://upload.test/put", FileKey: "avatars/" + userID.String() + "/a.png", ExpiresIn: 300}, nil
}

func (m *MockUserService) ConfirmAvatar(ctx context.Context, userID uuid.UUID, req *dto.ConfirmAvatarRequest) (*dto.UserResponse, error) {
	if m.ConfirmAvatarFunc != nil {
		return m.ConfirmAvatarFunc(ctx, userID, req)
	}
	url := "https://bucket.test/" + req.FileKey
	return &dto.UserResponse{ID: userID, AvatarURL: &url}, nil
}
