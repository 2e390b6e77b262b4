package services

import (
	"context"
	"fmt"
	"sort"

	"ecommerce/internal/models"
	"ecommerce/internal/repositories"
	"ecommerce/pkg/logger"
)

// CategoryService handles business logic related to categories.
type CategoryService struct {
	repo repositories.CategoryRepository
	log  *logger.Logger
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(repo repositories.CategoryRepository, log *logger.Logger) *CategoryService {
	return &CategoryService{
		repo: repo,
		log:  log.Component("category_service"),
	}
}

// GetCategories returns every category ordered by id.
func (s *CategoryService) GetCategories(ctx context.Context) ([]models.Category, error) {
	categories, err := s.repo.GetCategories(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].ID < categories[j].ID })
	return categories, nil
}

// GetCategory retrieves a single category by its ID.
func (s *CategoryService) GetCategory(ctx context.Context, id uint) (*models.Category, error) {
	category, err := s.repo.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, fmt.Errorf("%w: category with id %d", models.ErrNotFound, id)
	}
	return category, nil
}

// CreateCategory validates dto and stores a new category.
func (s *CategoryService) CreateCategory(ctx context.Context, dto models.CreateCategoryDto) (*models.Category, error) {
	if err := models.Validate.Struct(dto); err != nil {
		return nil, fmt.Errorf("%w: %s", models.ErrValidationFailed, models.ValidationMessage(err))
	}
	taken, err := s.repo.CategoryExistsByName(ctx, dto.Name)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("%w: category %q already exists", models.ErrValidationFailed, dto.Name)
	}

	category := &models.Category{Name: dto.Name, Description: dto.Description}
	ok, err := s.repo.CreateCategory(ctx, category)
	if err != nil {
		return nil, err
	}
	if !ok {
		// A concurrent insert of the same name hit the unique index.
		return nil, fmt.Errorf("%w: category %q already exists", models.ErrValidationFailed, dto.Name)
	}
	s.log.Info().Uint("id", category.ID).Str("name", category.Name).Msg("category created")
	return category, nil
}

// UpdateCategory replaces the name and description of category id.
func (s *CategoryService) UpdateCategory(ctx context.Context, id uint, dto models.CreateCategoryDto) (*models.Category, error) {
	current, err := s.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := models.Validate.Struct(dto); err != nil {
		return nil, fmt.Errorf("%w: %s", models.ErrValidationFailed, models.ValidationMessage(err))
	}
	if dto.Name != current.Name {
		taken, err := s.repo.CategoryExistsByName(ctx, dto.Name)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, fmt.Errorf("%w: category %q already exists", models.ErrValidationFailed, dto.Name)
		}
	}

	category := &models.Category{ID: id, Name: dto.Name, Description: dto.Description}
	ok, err := s.repo.UpdateCategory(ctx, category)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: could not update category %d", models.ErrConflictOnMutation, id)
	}
	s.log.Info().Uint("id", id).Msg("category updated")
	return category, nil
}

// DeleteCategory removes category id. Categories that still hold products
// cannot be deleted.
func (s *CategoryService) DeleteCategory(ctx context.Context, id uint) error {
	category, err := s.GetCategory(ctx, id)
	if err != nil {
		return err
	}
	ok, err := s.repo.DeleteCategory(ctx, category)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: could not delete category %d", models.ErrConflictOnMutation, id)
	}
	s.log.Info().Uint("id", id).Msg("category deleted")
	return nil
}
