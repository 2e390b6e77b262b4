package repositories

import (
	"context"

	"ecommerce/internal/models"
)

// UserRepository defines the interface for user data access and credential checks.
type UserRepository interface {
	GetUsers(ctx context.Context) ([]models.User, error)
	GetUser(ctx context.Context, id uint) (*models.User, error)
	IsUniqueUser(ctx context.Context, username string) (bool, error)
	Register(ctx context.Context, dto models.CreateUserDto) (*models.User, error)
	Login(ctx context.Context, dto models.UserLoginDto) (*models.UserLoginResponseDto, error)
}
