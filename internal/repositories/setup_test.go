package repositories_test

import (
	"context"
	"strings"
	"testing"

	"ecommerce/internal/database"
	"ecommerce/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var dsnReplacer = strings.NewReplacer("/", "_", " ", "_", "#", "_")

// newTestDB opens an isolated, migrated in-memory sqlite database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open(context.Background(), database.Config{
		Driver: database.DriverSQLite,
		DSN:    database.MemoryDSN(dsnReplacer.Replace(t.Name())),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

func seedCategory(t *testing.T, db *gorm.DB, name string) *models.Category {
	t.Helper()
	category := &models.Category{Name: name, Description: name + " category"}
	require.NoError(t, db.Create(category).Error)
	return category
}

func seedProduct(t *testing.T, db *gorm.DB, name string, categoryID uint, stock int) *models.Product {
	t.Helper()
	product := &models.Product{
		Name:        name,
		Description: name + " description",
		Price:       decimal.RequireFromString("49.90"),
		Stock:       stock,
		CategoryID:  categoryID,
		ImageURL:    models.DefaultImageURL,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}
