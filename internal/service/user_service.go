package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"codetogether-api/internal/client"
	"codetogether-api/internal/dto"
	"codetogether-api/internal/repository"
	"codetogether-api/internal/response"
)

// UserService defines the interface for profile operations
type UserService interface {
	GetByID(ctx context.Context, id uuid.UUID) (*dto.UserResponse, error)
	Update(ctx context.Context, userID uuid.UUID, req *dto.UpdateUserRequest) (*dto.UserResponse, error)
	Delete(ctx context.Context, userID uuid.UUID) error
	CreateAvatarUploadURL(ctx context.Context, userID uuid.UUID, req *dto.AvatarUploadURLRequest) (*dto.AvatarUploadURLResponse, error)
	ConfirmAvatar(ctx context.Context, userID uuid.UUID, req *dto.ConfirmAvatarRequest) (*dto.UserResponse, error)
}

type userServiceImpl struct {
	userRepo repository.UserRepository
	storage  client.ObjectStorage
	logger   *zap.Logger
}

// NewUserService creates a new instance of UserService. storage may be nil when S3 is not configured.
func NewUserService(userRepo repository.UserRepository, storage client.ObjectStorage, logger *zap.Logger) UserService {
	return &userServiceImpl{
		userRepo: userRepo,
		storage:  storage,
		logger:   logger,
	}
}

func (s *userServiceImpl) GetByID(ctx context.Context, id uuid.UUID) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, response.NewNotFoundError(response.MsgUserNotFound, "")
		}
		return nil, internalError("Failed to fetch user", err)
	}
	return dto.ToUserResponse(user), nil
}

// Update replaces the username; it must not belong to another user
func (s *userServiceImpl) Update(ctx context.Context, userID uuid.UUID, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, response.NewNotFoundError(response.MsgUserNotFound, "")
		}
		return nil, internalError("Failed to fetch user", err)
	}

	if req.Username != user.Username {
		existing, err := s.userRepo.FindByUsername(ctx, req.Username)
		if err == nil && existing.ID != user.ID {
			return nil, response.NewPolicyError(response.MsgUsernameRegistered, "")
		}
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, internalError("Failed to check username", err)
		}
	}

	user.Username = req.Username
	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEntry) {
			return nil, response.NewPolicyError(response.MsgUsernameRegistered, "")
		}
		return nil, internalError("Failed to update user", err)
	}
	return dto.ToUserResponse(user), nil
}

// Delete removes the user; owned projects and submitted applications cascade
func (s *userServiceImpl) Delete(ctx context.Context, userID uuid.UUID) error {
	if err := s.userRepo.Delete(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return response.NewNotFoundError(response.MsgUserNotFound, "")
		}
		return internalError("Failed to delete user", err)
	}
	s.logger.Info("User deleted", zap.String("user_id", userID.String()))
	return nil
}

func (s *userServiceImpl) CreateAvatarUploadURL(ctx context.Context, userID uuid.UUID, req *dto.AvatarUploadURLRequest) (*dto.AvatarUploadURLResponse, error) {
	if s.storage == nil {
		return nil, response.NewAppError(response.ErrCodeServiceUnavailable, "Avatar storage is not configured", "")
	}
	if !strings.HasPrefix(req.ContentType, "image/") {
		return nil, response.NewValidationError("Avatar must be an image", req.ContentType)
	}

	url, key, err := s.storage.GenerateAvatarUploadURL(ctx, userID, req.FileName, req.ContentType)
	if err != nil {
		return nil, response.NewValidationError("Unsupported avatar file", err.Error())
	}

	return &dto.AvatarUploadURLResponse{
		UploadURL: url,
		FileKey:   key,
		ExpiresIn: int(client.AvatarUploadExpiry.Seconds()),
	}, nil
}

// ConfirmAvatar points avatar_url at an uploaded object under the user's own prefix
func (s *userServiceImpl) ConfirmAvatar(ctx context.Context, userID uuid.UUID, req *dto.ConfirmAvatarRequest) (*dto.UserResponse, error) {
	if s.storage == nil {
		return nil, response.NewAppError(response.ErrCodeServiceUnavailable, "Avatar storage is not configured", "")
	}
	if !strings.HasPrefix(req.FileKey, client.AvatarKeyPrefix(userID)) {
		return nil, response.NewForbiddenError(response.MsgAccessDenied, "file key outside user prefix")
	}

	exists, err := s.storage.ObjectExists(ctx, req.FileKey)
	if err != nil {
		return nil, internalError("Failed to check uploaded file", err)
	}
	if !exists {
		return nil, response.NewValidationError("Uploaded file not found", req.FileKey)
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, response.NewNotFoundError(response.MsgUserNotFound, "")
		}
		return nil, internalError("Failed to fetch user", err)
	}

	url := s.storage.GetFileURL(req.FileKey)
	user.AvatarURL = &url
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, internalError("Failed to update avatar", err)
	}
	return dto.ToUserResponse(user), nil
}
