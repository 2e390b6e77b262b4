package repositories

import (
	"context"

	"ecommerce/internal/models"
)

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	GetProducts(ctx context.Context) ([]models.Product, error)
	GetProduct(ctx context.Context, id uint) (*models.Product, error)
	GetProductsForCategory(ctx context.Context, categoryID uint) ([]models.Product, error)
	SearchProducts(ctx context.Context, term string) ([]models.Product, error)
	ProductExists(ctx context.Context, id uint) (bool, error)
	ProductExistsByName(ctx context.Context, name string) (bool, error)
	CreateProduct(ctx context.Context, product *models.Product) (bool, error)
	UpdateProduct(ctx context.Context, product *models.Product) (bool, error)
	DeleteProduct(ctx context.Context, product *models.Product) (bool, error)
	// BuyProduct takes quantity units from the named product's stock. It
	// returns false when the product is unknown, quantity is not positive or
	// the stock cannot cover it; stock is left untouched in every such case.
	BuyProduct(ctx context.Context, name string, quantity int) (bool, error)
}
