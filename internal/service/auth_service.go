package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"codetogether-api/internal/auth"
	"codetogether-api/internal/domain"
	"codetogether-api/internal/dto"
	"codetogether-api/internal/metrics"
	"codetogether-api/internal/repository"
	"codetogether-api/internal/response"
)

const tokenTypeBearer = "bearer"

// AuthService handles signup, login and bearer validation
type AuthService interface {
	Signup(ctx context.Context, req *dto.SignupRequest) (*dto.UserResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	ValidateToken(ctx context.Context, token string) (uuid.UUID, error)
}

type authServiceImpl struct {
	userRepo repository.UserRepository
	hasher   auth.PasswordHasher
	tokens   auth.TokenIssuer
	tokenTTL time.Duration
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

// NewAuthService creates a new instance of AuthService
func NewAuthService(
	userRepo repository.UserRepository,
	hasher auth.PasswordHasher,
	tokens auth.TokenIssuer,
	tokenTTL time.Duration,
	m *metrics.Metrics,
	logger *zap.Logger,
) AuthService {
	return &authServiceImpl{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
		tokenTTL: tokenTTL,
		metrics:  m,
		logger:   logger,
	}
}

// Signup registers a user. Email uniqueness is checked before username uniqueness.
func (s *authServiceImpl) Signup(ctx context.Context, req *dto.SignupRequest) (*dto.UserResponse, error) {
	email := strings.TrimSpace(req.Email)

	if err := s.ensureIdentityFree(ctx, email, req.Username); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, internalError("Failed to hash password", err)
	}

	user := &domain.User{
		Email:          email,
		Username:       req.Username,
		HashedPassword: hash,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEntry) {
			// lost a race with a concurrent signup; report which identity is taken
			if identityErr := s.ensureIdentityFree(ctx, email, req.Username); identityErr != nil {
				return nil, identityErr
			}
			return nil, response.NewPolicyError(response.MsgEmailRegistered, "")
		}
		return nil, internalError("Failed to create user", err)
	}

	s.metrics.IncrementUserRegistered()
	s.logger.Info("User registered", zap.String("user_id", user.ID.String()))

	return dto.ToUserResponse(user), nil
}

func (s *authServiceImpl) ensureIdentityFree(ctx context.Context, email, username string) error {
	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return response.NewPolicyError(response.MsgEmailRegistered, "")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return internalError("Failed to check email", err)
	}

	if _, err := s.userRepo.FindByUsername(ctx, username); err == nil {
		return response.NewPolicyError(response.MsgUsernameRegistered, "")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return internalError("Failed to check username", err)
	}
	return nil
}

// Login exchanges email and password for an access token
func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, response.NewUnauthorizedError(response.MsgInvalidCredentials, "")
		}
		return nil, internalError("Failed to fetch user", err)
	}

	if !s.hasher.Verify(req.Password, user.HashedPassword) {
		return nil, response.NewUnauthorizedError(response.MsgInvalidCredentials, "")
	}

	token, err := s.tokens.Issue(user.ID, s.tokenTTL)
	if err != nil {
		return nil, internalError("Failed to issue token", err)
	}

	return &dto.TokenResponse{AccessToken: token, TokenType: tokenTypeBearer}, nil
}

// ValidateToken decodes a bearer token and checks that its subject still exists
func (s *authServiceImpl) ValidateToken(ctx context.Context, token string) (uuid.UUID, error) {
	userID, err := s.tokens.Decode(token)
	if err != nil {
		return uuid.Nil, response.NewUnauthorizedError(response.MsgCouldNotValidate, err.Error())
	}

	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return uuid.Nil, response.NewUnauthorizedError(response.MsgCouldNotValidate, "user no longer exists")
		}
		return uuid.Nil, internalError("Failed to fetch user", err)
	}
	return userID, nil
}
