package services

import (
	"context"
	"fmt"

	"ecommerce/internal/auth"
	"ecommerce/internal/models"
	"ecommerce/internal/repositories"
	"ecommerce/pkg/logger"
)

// AuthService handles registration, login and token checks.
type AuthService struct {
	userRepo repositories.UserRepository
	auth     auth.Config
	log      *logger.Logger
}

// NewAuthService creates a new AuthService. cfg must be the same settings
// the user repository signs tokens with.
func NewAuthService(userRepo repositories.UserRepository, cfg auth.Config, log *logger.Logger) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		auth:     cfg,
		log:      log.Component("auth_service"),
	}
}

// RegisterUser stores a new user and returns its public view.
func (s *AuthService) RegisterUser(ctx context.Context, dto models.CreateUserDto) (*models.UserDataDto, error) {
	user, err := s.userRepo.Register(ctx, dto)
	if err != nil {
		return nil, err
	}
	s.log.Info().Uint("id", user.ID).Str("username", user.Username).Str("role", user.Role).Msg("user registered")
	return user.ToUserData(), nil
}

// LoginUser authenticates a user and returns the issued token.
func (s *AuthService) LoginUser(ctx context.Context, dto models.UserLoginDto) (*models.UserLoginResponseDto, error) {
	if err := models.Validate.Struct(dto); err != nil {
		return nil, fmt.Errorf("%w: %s", models.ErrValidationFailed, models.ValidationMessage(err))
	}
	resp, err := s.userRepo.Login(ctx, dto)
	if err != nil {
		return nil, err
	}
	if !resp.Succeeded() {
		// Don't reveal whether the username exists.
		s.log.Debug().Str("username", dto.Username).Msg("login rejected")
		return nil, models.ErrAuthenticationFailed
	}
	return resp, nil
}

// ValidateToken parses and validates a token, returning its claims.
func (s *AuthService) ValidateToken(tokenString string) (*auth.Claims, error) {
	return s.auth.ParseToken(tokenString)
}

// GetUsers lists every user without password hashes.
func (s *AuthService) GetUsers(ctx context.Context) ([]models.UserDataDto, error) {
	users, err := s.userRepo.GetUsers(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.UserDataDto, 0, len(users))
	for i := range users {
		out = append(out, *users[i].ToUserData())
	}
	return out, nil
}

// GetUser returns the public view of user id.
func (s *AuthService) GetUser(ctx context.Context, id uint) (*models.UserDataDto, error) {
	user, err := s.userRepo.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user with id %d", models.ErrNotFound, id)
	}
	return user.ToUserData(), nil
}
