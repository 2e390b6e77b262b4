package repositories

import (
	"context"

	"ecommerce/internal/models"
)

// CategoryRepository defines the interface for category data access.
//
// Mutations return false with a nil error when the store rejected the change
// (duplicate name, no matching row). A non-nil error is a store failure, except
// for DeleteCategory on a category that products still reference.
type CategoryRepository interface {
	GetCategories(ctx context.Context) ([]models.Category, error)
	GetCategory(ctx context.Context, id uint) (*models.Category, error)
	CategoryExists(ctx context.Context, id uint) (bool, error)
	CategoryExistsByName(ctx context.Context, name string) (bool, error)
	CreateCategory(ctx context.Context, category *models.Category) (bool, error)
	UpdateCategory(ctx context.Context, category *models.Category) (bool, error)
	DeleteCategory(ctx context.Context, category *models.Category) (bool, error)
}
