package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultImageURL is used when a product is saved without an image.
const DefaultImageURL = "https://placehold.co/300x300"

// MaxPrice is the first value that no longer fits the decimal(12,2) column.
var MaxPrice = decimal.New(1, 10)

// CheckPrice reports why price cannot be stored exactly, or nil.
func CheckPrice(price decimal.Decimal) error {
	switch {
	case price.IsNegative():
		return errors.New("price must not be negative")
	case !price.Equal(price.Truncate(2)):
		return errors.New("price must have at most 2 decimal places")
	case price.GreaterThanOrEqual(MaxPrice):
		return fmt.Errorf("price must be below %s", MaxPrice)
	}
	return nil
}

// Product represents a product in the store.
type Product struct {
	ProductID      uint            `json:"product_id" gorm:"primaryKey"`
	Name           string          `json:"name" gorm:"type:varchar(100);uniqueIndex;not null" validate:"required,max=100"`
	Description    string          `json:"description" gorm:"type:varchar(500)" validate:"max=500"`
	Price          decimal.Decimal `json:"price" gorm:"type:decimal(12,2);not null;check:price >= 0"`
	Stock          int             `json:"stock" gorm:"not null;check:stock >= 0" validate:"gte=0"`
	CategoryID     uint            `json:"category_id" gorm:"not null;index" validate:"required"`
	Category       *Category       `json:"-" gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	ImageURL       string          `json:"image_url" gorm:"type:varchar(500)"`
	ImageLocalPath string          `json:"image_local_path" gorm:"type:varchar(500)"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// ProductDto is the payload accepted when creating or replacing a product.
type ProductDto struct {
	Name           string          `json:"name" validate:"required,min=3,max=100"`
	Description    string          `json:"description" validate:"omitempty,max=500"`
	Price          decimal.Decimal `json:"price"`
	Stock          int             `json:"stock" validate:"gte=0"`
	CategoryID     uint            `json:"category_id" validate:"required"`
	ImageURL       string          `json:"image_url" validate:"omitempty,url"`
	ImageLocalPath string          `json:"image_local_path"`
}

// ToProduct builds a Product from the DTO. The id is left for the caller.
func (d ProductDto) ToProduct() *Product {
	return &Product{
		Name:           d.Name,
		Description:    d.Description,
		Price:          d.Price,
		Stock:          d.Stock,
		CategoryID:     d.CategoryID,
		ImageURL:       d.ImageURL,
		ImageLocalPath: d.ImageLocalPath,
	}
}
