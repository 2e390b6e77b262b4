package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"ecommerce/internal/auth"
	"ecommerce/internal/models"

	"gorm.io/gorm"
)

// GORMUserRepository is a GORM implementation of UserRepository.
type GORMUserRepository struct {
	db   *gorm.DB
	auth auth.Config
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository(db *gorm.DB, cfg auth.Config) *GORMUserRepository {
	return &GORMUserRepository{
		db:   db,
		auth: cfg,
	}
}

// GetUsers retrieves all users.
func (r *GORMUserRepository) GetUsers(ctx context.Context) ([]models.User, error) {
	users := []models.User{}
	if err := r.db.WithContext(ctx).Find(&users).Error; err != nil {
		return nil, persistenceError("get all users", err)
	}
	return users, nil
}

// GetUser retrieves a user by ID, or nil if there is none.
func (r *GORMUserRepository) GetUser(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, persistenceError(fmt.Sprintf("get user by ID %d", id), err)
	}
	return &user, nil
}

// IsUniqueUser reports whether no user has the given username yet.
func (r *GORMUserRepository) IsUniqueUser(ctx context.Context, username string) (bool, error) {
	found, err := exists(ctx, r.db, &models.User{}, "username = ?", username)
	if err != nil {
		return false, persistenceError("check username", err)
	}
	return !found, nil
}

// Register validates dto, hashes the password and stores the new user. The
// username is checked again inside the insert transaction; the unique index
// catches whatever still slips through.
func (r *GORMUserRepository) Register(ctx context.Context, dto models.CreateUserDto) (*models.User, error) {
	if err := models.Validate.Struct(dto); err != nil {
		return nil, fmt.Errorf("%w: %s", models.ErrValidationFailed, models.ValidationMessage(err))
	}
	if strings.TrimSpace(dto.Password) == "" {
		return nil, fmt.Errorf("%w: password must not be blank", models.ErrValidationFailed)
	}

	hash, err := r.auth.HashPassword(dto.Password)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Name:         dto.Name,
		Username:     dto.Username,
		PasswordHash: hash,
		Role:         dto.Role,
	}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).Where("username = ?", user.Username).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return models.ErrUsernameTaken
		}
		return tx.Create(user).Error
	})
	switch {
	case err == nil:
		return user, nil
	case errors.Is(err, models.ErrUsernameTaken), isUniqueViolation(err):
		return nil, fmt.Errorf("%w: %q", models.ErrUsernameTaken, dto.Username)
	default:
		return nil, persistenceError("register user", err)
	}
}

// Login checks the credentials and issues a token. Unknown users and wrong
// passwords produce the same empty response and a nil error.
func (r *GORMUserRepository) Login(ctx context.Context, dto models.UserLoginDto) (*models.UserLoginResponseDto, error) {
	failed := &models.UserLoginResponseDto{}

	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "username = ?", dto.Username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return failed, nil
		}
		return nil, persistenceError("get user by username", err)
	}

	if !r.auth.CheckPassword(user.PasswordHash, dto.Password) {
		return failed, nil
	}

	token, expiresAt, err := r.auth.IssueToken(&user)
	if err != nil {
		return nil, err
	}
	return &models.UserLoginResponseDto{
		User:      user.ToUserData(),
		Token:     token,
		ExpiresAt: expiresAt.Unix(),
	}, nil
}
