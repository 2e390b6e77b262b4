package models

// Category groups products in the catalog.
type Category struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Name        string `json:"name" gorm:"type:varchar(100);uniqueIndex;not null" validate:"required,max=100"`
	Description string `json:"description" gorm:"type:varchar(500)" validate:"max=500"`
}

// CreateCategoryDto is the payload accepted when creating or renaming a category.
type CreateCategoryDto struct {
	Name        string `json:"name" validate:"required,min=3,max=100"`
	Description string `json:"description" validate:"omitempty,max=500"`
}
