package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"ecommerce/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var productColumns = []string{
	"name", "description", "price", "stock", "category_id", "image_url", "image_local_path", "updated_at",
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// GetProducts retrieves all products from the database.
func (r *GORMProductRepository) GetProducts(ctx context.Context) ([]models.Product, error) {
	products := []models.Product{}
	if err := r.db.WithContext(ctx).Find(&products).Error; err != nil {
		return nil, persistenceError("get all products", err)
	}
	return products, nil
}

// GetProduct retrieves a single product by its ID, or nil if there is none.
func (r *GORMProductRepository) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "product_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, persistenceError(fmt.Sprintf("get product by ID %d", id), err)
	}
	return &product, nil
}

// GetProductsForCategory returns the products filed under categoryID. An
// unknown category yields an empty slice.
func (r *GORMProductRepository) GetProductsForCategory(ctx context.Context, categoryID uint) ([]models.Product, error) {
	products := []models.Product{}
	if err := r.db.WithContext(ctx).Where("category_id = ?", categoryID).Find(&products).Error; err != nil {
		return nil, persistenceError(fmt.Sprintf("get products for category %d", categoryID), err)
	}
	return products, nil
}

// SearchProducts matches term case-insensitively against name or description.
// A blank term matches nothing.
func (r *GORMProductRepository) SearchProducts(ctx context.Context, term string) ([]models.Product, error) {
	products := []models.Product{}
	term = strings.TrimSpace(term)
	if term == "" {
		return products, nil
	}

	// Both sides go through the store's LOWER so they fold the same way.
	pattern := "%" + likeEscaper.Replace(term) + "%"
	err := r.db.WithContext(ctx).
		Where(`LOWER(name) LIKE LOWER(?) ESCAPE '\' OR LOWER(description) LIKE LOWER(?) ESCAPE '\'`, pattern, pattern).
		Find(&products).Error
	if err != nil {
		return nil, persistenceError("search products", err)
	}
	return products, nil
}

// ProductExists reports whether a product with id exists.
func (r *GORMProductRepository) ProductExists(ctx context.Context, id uint) (bool, error) {
	found, err := exists(ctx, r.db, &models.Product{}, "product_id = ?", id)
	if err != nil {
		return false, persistenceError("check product id", err)
	}
	return found, nil
}

// ProductExistsByName reports whether a product is named name.
func (r *GORMProductRepository) ProductExistsByName(ctx context.Context, name string) (bool, error) {
	found, err := exists(ctx, r.db, &models.Product{}, "name = ?", name)
	if err != nil {
		return false, persistenceError("check product name", err)
	}
	return found, nil
}

// CreateProduct inserts product and fills in its generated id and timestamps.
// A duplicate name or an unknown category yields false.
func (r *GORMProductRepository) CreateProduct(ctx context.Context, product *models.Product) (bool, error) {
	if !validProduct(product) {
		return false, nil
	}
	return Save("create product", r.db.WithContext(ctx).Omit(clause.Associations).Create(product))
}

// UpdateProduct replaces every column of the row with product.ProductID.
func (r *GORMProductRepository) UpdateProduct(ctx context.Context, product *models.Product) (bool, error) {
	if !validProduct(product) || product.ProductID == 0 {
		return false, nil
	}
	res := r.db.WithContext(ctx).
		Model(product).
		Select(productColumns).
		Updates(product)
	return Save("update product", res)
}

// DeleteProduct deletes a product by its ID.
func (r *GORMProductRepository) DeleteProduct(ctx context.Context, product *models.Product) (bool, error) {
	if product == nil || product.ProductID == 0 {
		return false, nil
	}
	return Save("delete product", r.db.WithContext(ctx).Delete(&models.Product{}, product.ProductID))
}

// BuyProduct decrements stock with one conditional UPDATE, so the check and
// the write happen under the same row lock and concurrent purchases cannot
// oversell.
func (r *GORMProductRepository) BuyProduct(ctx context.Context, name string, quantity int) (bool, error) {
	if quantity <= 0 || strings.TrimSpace(name) == "" {
		return false, nil
	}
	res := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("name = ? AND stock >= ?", name, quantity).
		Update("stock", gorm.Expr("stock - ?", quantity))
	if res.Error != nil {
		return false, persistenceError(fmt.Sprintf("buy product %q", name), res.Error)
	}
	return res.RowsAffected == 1, nil
}

func validProduct(p *models.Product) bool {
	if p == nil || strings.TrimSpace(p.Name) == "" || models.CheckPrice(p.Price) != nil {
		return false
	}
	return models.Validate.Struct(p) == nil
}
