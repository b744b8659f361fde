package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/rct/connect/internal/app/models"
	"github.com/rct/connect/internal/app/models/dto"
	"github.com/rct/connect/internal/app/repositories"
	"github.com/rct/connect/internal/pkg/apperrors"
	"github.com/rct/connect/internal/pkg/auth"
)

// AuthService defines the interface for authentication operations
type AuthService interface {
	Register(req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(req *dto.LoginRequest) (*dto.AuthResponse, error)
	GetCurrentUser(userID string) (*dto.UserResponse, error)
}

// authServiceImpl implements AuthService
type authServiceImpl struct {
	userRepo   *repositories.UserRepository
	jwtService *auth.JWTService
	logger     zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo *repositories.UserRepository, jwtService *auth.JWTService, logger zerolog.Logger) AuthService {
	return &authServiceImpl{
		userRepo:   userRepo,
		jwtService: jwtService,
		logger:     logger.With().Str("service", "auth").Logger(),
	}
}

// Register creates a member account and returns a signed token for it.
func (s *authServiceImpl) Register(req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to hash password")
		return nil, err
	}

	now := time.Now()
	user := models.User{
		ID:        uuid.New().String(),
		Email:     req.Email,
		Password:  hash,
		Name:      req.Name,
		Role:      models.RoleMember,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, repositories.ErrAlreadyExists) {
			return nil, apperrors.NewConflictError("Cet email est déjà utilisé")
		}
		return nil, err
	}

	s.logger.Info().Str("userID", user.ID).Msg("User registered")
	return s.issueToken(&user)
}

// Login verifies credentials and returns a signed token.
func (s *authServiceImpl) Login(req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		s.logger.Debug().Str("email", req.Email).Msg("Password mismatch")
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.issueToken(user)
}

// GetCurrentUser returns the authenticated user's profile.
func (s *authServiceImpl) GetCurrentUser(userID string) (*dto.UserResponse, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}
	return dto.NewUserResponse(user), nil
}

func (s *authServiceImpl) issueToken(user *models.User) (*dto.AuthResponse, error) {
	token, expiresIn, err := s.jwtService.GenerateToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		s.logger.Error().Err(err).Str("userID", user.ID).Msg("Failed to generate token")
		return nil, err
	}
	return &dto.AuthResponse{
		Token:     token,
		ExpiresIn: expiresIn,
		User:      dto.NewUserResponse(user),
	}, nil
}
