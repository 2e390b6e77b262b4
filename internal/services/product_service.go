package services

import (
	"context"
	"fmt"
	"strings"

	"ecommerce/internal/models"
	"ecommerce/internal/repositories"
	"ecommerce/pkg/logger"
)

// Catalog event types.
const (
	EventProductCreated   = "product.created"
	EventProductUpdated   = "product.updated"
	EventProductDeleted   = "product.deleted"
	EventProductPurchased = "product.purchased"
)

// EventPublisher sends catalog events to a broker.
type EventPublisher interface {
	Publish(ctx context.Context, eventType string, payload interface{}) error
}

// PurchaseEvent is published after a successful purchase.
type PurchaseEvent struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	UserID   uint   `json:"user_id,omitempty"`
}

// ProductService handles business logic related to products.
type ProductService struct {
	repo       repositories.ProductRepository
	categories repositories.CategoryRepository
	events     EventPublisher
	log        *logger.Logger
}

// NewProductService creates a new ProductService. A nil publisher disables
// catalog events.
func NewProductService(repo repositories.ProductRepository, categories repositories.CategoryRepository, events EventPublisher, log *logger.Logger) *ProductService {
	return &ProductService{
		repo:       repo,
		categories: categories,
		events:     events,
		log:        log.Component("product_service"),
	}
}

// GetProducts retrieves all products.
func (s *ProductService) GetProducts(ctx context.Context) ([]models.Product, error) {
	return s.repo.GetProducts(ctx)
}

// GetProduct retrieves a single product by its ID.
func (s *ProductService) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	product, err := s.repo.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: product with id %d", models.ErrNotFound, id)
	}
	return product, nil
}

// GetProductsForCategory lists the products of a category. No match is
// reported as not found.
func (s *ProductService) GetProductsForCategory(ctx context.Context, categoryID uint) ([]models.Product, error) {
	products, err := s.repo.GetProductsForCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, fmt.Errorf("%w: no products for category %d", models.ErrNotFound, categoryID)
	}
	return products, nil
}

// SearchProducts matches term against name and description.
func (s *ProductService) SearchProducts(ctx context.Context, term string) ([]models.Product, error) {
	if strings.TrimSpace(term) == "" {
		return nil, fmt.Errorf("%w: search term must not be blank", models.ErrValidationFailed)
	}
	products, err := s.repo.SearchProducts(ctx, term)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, fmt.Errorf("%w: no products match %q", models.ErrNotFound, term)
	}
	return products, nil
}

// CreateProduct validates dto, checks its category and stores the product.
func (s *ProductService) CreateProduct(ctx context.Context, dto models.ProductDto) (*models.Product, error) {
	if err := validateProductDto(dto); err != nil {
		return nil, err
	}
	taken, err := s.repo.ProductExistsByName(ctx, dto.Name)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("%w: product %q already exists", models.ErrValidationFailed, dto.Name)
	}
	if err := s.requireCategory(ctx, dto.CategoryID); err != nil {
		return nil, err
	}

	product := dto.ToProduct()
	if product.ImageURL == "" {
		product.ImageURL = models.DefaultImageURL
	}
	ok, err := s.repo.CreateProduct(ctx, product)
	if err != nil {
		return nil, err
	}
	if !ok {
		// Only a constraint violation gets past the checks above.
		return nil, fmt.Errorf("%w: product %q violates a store constraint", models.ErrValidationFailed, dto.Name)
	}

	s.log.Info().Uint("id", product.ProductID).Str("name", product.Name).Msg("product created")
	s.publish(ctx, EventProductCreated, product)
	return product, nil
}

// UpdateProduct replaces product id with dto.
func (s *ProductService) UpdateProduct(ctx context.Context, id uint, dto models.ProductDto) (*models.Product, error) {
	current, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := validateProductDto(dto); err != nil {
		return nil, err
	}
	if dto.Name != current.Name {
		taken, err := s.repo.ProductExistsByName(ctx, dto.Name)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, fmt.Errorf("%w: product %q already exists", models.ErrValidationFailed, dto.Name)
		}
	}
	if err := s.requireCategory(ctx, dto.CategoryID); err != nil {
		return nil, err
	}

	product := dto.ToProduct()
	product.ProductID = id
	if product.ImageURL == "" {
		product.ImageURL = models.DefaultImageURL
	}
	ok, err := s.repo.UpdateProduct(ctx, product)
	if err != nil {
		return nil, err
	}
	if !ok {
		// Deleted or renamed into a taken name since the checks above.
		return nil, fmt.Errorf("%w: could not update product %d", models.ErrConflictOnMutation, id)
	}

	s.log.Info().Uint("id", id).Msg("product updated")
	s.publish(ctx, EventProductUpdated, product)
	return product, nil
}

// DeleteProduct removes product id.
func (s *ProductService) DeleteProduct(ctx context.Context, id uint) error {
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return err
	}
	ok, err := s.repo.DeleteProduct(ctx, product)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: could not delete product %d", models.ErrConflictOnMutation, id)
	}

	s.log.Info().Uint("id", id).Msg("product deleted")
	s.publish(ctx, EventProductDeleted, map[string]interface{}{"product_id": id, "name": product.Name})
	return nil
}

// BuyProduct takes quantity units of the named product for userID and
// returns the confirmation message.
func (s *ProductService) BuyProduct(ctx context.Context, name string, quantity int, userID uint) (string, error) {
	if strings.TrimSpace(name) == "" || quantity <= 0 {
		return "", fmt.Errorf("%w: product name or quantity is not valid", models.ErrValidationFailed)
	}
	found, err := s.repo.ProductExistsByName(ctx, name)
	if err != nil {
		return "", err
	}
	if !found {
		return "", fmt.Errorf("%w: product %q", models.ErrNotFound, name)
	}

	ok, err := s.repo.BuyProduct(ctx, name, quantity)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("%w: could not buy product %q, the requested quantity exceeds the available stock", models.ErrValidationFailed, name)
	}

	s.log.Info().Str("name", name).Int("quantity", quantity).Uint("user_id", userID).Msg("product purchased")
	s.publish(ctx, EventProductPurchased, PurchaseEvent{Name: name, Quantity: quantity, UserID: userID})
	return PurchaseMessage(name, quantity), nil
}

// PurchaseMessage renders the confirmation for a purchase.
func PurchaseMessage(name string, quantity int) string {
	units := "units"
	if quantity == 1 {
		units = "unit"
	}
	return fmt.Sprintf("purchased %d %s of product '%s'", quantity, units, name)
}

func (s *ProductService) requireCategory(ctx context.Context, categoryID uint) error {
	found, err := s.categories.CategoryExists(ctx, categoryID)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("%w: category with id %d does not exist", models.ErrValidationFailed, categoryID)
	}
	return nil
}

// publish logs and swallows broker failures; the store change is already final.
func (s *ProductService) publish(ctx context.Context, eventType string, payload interface{}) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, eventType, payload); err != nil {
		s.log.Warn().Err(err).Str("event", eventType).Msg("failed to publish catalog event")
	}
}

func validateProductDto(dto models.ProductDto) error {
	if err := models.Validate.Struct(dto); err != nil {
		return fmt.Errorf("%w: %s", models.ErrValidationFailed, models.ValidationMessage(err))
	}
	if err := models.CheckPrice(dto.Price); err != nil {
		return fmt.Errorf("%w: %s", models.ErrValidationFailed, err)
	}
	return nil
}
