package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"ecommerce/internal/models"

	"gorm.io/gorm"
)

// GORMCategoryRepository is a GORM implementation of CategoryRepository.
type GORMCategoryRepository struct {
	db *gorm.DB
}

// NewGORMCategoryRepository creates a new instance of GORMCategoryRepository.
func NewGORMCategoryRepository(db *gorm.DB) *GORMCategoryRepository {
	return &GORMCategoryRepository{
		db: db,
	}
}

// GetCategories returns every category in store order.
func (r *GORMCategoryRepository) GetCategories(ctx context.Context) ([]models.Category, error) {
	categories := []models.Category{}
	if err := r.db.WithContext(ctx).Find(&categories).Error; err != nil {
		return nil, persistenceError("get all categories", err)
	}
	return categories, nil
}

// GetCategory returns the category with the given id, or nil if there is none.
func (r *GORMCategoryRepository) GetCategory(ctx context.Context, id uint) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, persistenceError(fmt.Sprintf("get category by ID %d", id), err)
	}
	return &category, nil
}

// CategoryExists reports whether a category with id exists.
func (r *GORMCategoryRepository) CategoryExists(ctx context.Context, id uint) (bool, error) {
	found, err := exists(ctx, r.db, &models.Category{}, "id = ?", id)
	if err != nil {
		return false, persistenceError("check category id", err)
	}
	return found, nil
}

// CategoryExistsByName reports whether a category is named name.
func (r *GORMCategoryRepository) CategoryExistsByName(ctx context.Context, name string) (bool, error) {
	found, err := exists(ctx, r.db, &models.Category{}, "name = ?", name)
	if err != nil {
		return false, persistenceError("check category name", err)
	}
	return found, nil
}

// CreateCategory inserts category and fills in its generated id.
func (r *GORMCategoryRepository) CreateCategory(ctx context.Context, category *models.Category) (bool, error) {
	if !validCategory(category) {
		return false, nil
	}
	return Save("create category", r.db.WithContext(ctx).Create(category))
}

// UpdateCategory replaces every column of the row with category.ID.
func (r *GORMCategoryRepository) UpdateCategory(ctx context.Context, category *models.Category) (bool, error) {
	if !validCategory(category) || category.ID == 0 {
		return false, nil
	}
	res := r.db.WithContext(ctx).
		Model(category).
		Select("name", "description").
		Updates(category)
	return Save("update category", res)
}

// DeleteCategory removes the row with category.ID.
func (r *GORMCategoryRepository) DeleteCategory(ctx context.Context, category *models.Category) (bool, error) {
	if category == nil || category.ID == 0 {
		return false, nil
	}
	res := r.db.WithContext(ctx).Delete(&models.Category{}, category.ID)
	if res.Error != nil && isForeignKeyViolation(res.Error) {
		return false, fmt.Errorf("%w: category %d is still referenced by products", models.ErrValidationFailed, category.ID)
	}
	return Save("delete category", res)
}

func validCategory(c *models.Category) bool {
	if c == nil || strings.TrimSpace(c.Name) == "" {
		return false
	}
	return models.Validate.Struct(c) == nil
}
