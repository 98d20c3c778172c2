package products

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/brandiaga/storefront-backend/pkg/db/models"
	"github.com/brandiaga/storefront-backend/pkg/pagination"
)

func setupCatalogTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS products (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  description TEXT,
  brand TEXT,
  price NUMERIC NOT NULL,
  images TEXT,
  colors TEXT,
  is_prime INTEGER NOT NULL DEFAULT 0,
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, conn.Exec(schema).Error)
	return conn
}

func seedProduct(t *testing.T, repo *Repository, name, brand string, active bool, createdAt time.Time) *models.Product {
	t.Helper()

	product, err := repo.Create(context.Background(), &models.Product{
		Name:      name,
		Brand:     brand,
		Price:     decimal.RequireFromString("19.99"),
		Images:    []string{"https://cdn.example.com/" + name + ".jpg"},
		Colors:    []string{"red", "blue"},
		IsActive:  active,
		CreatedAt: createdAt,
	})
	require.NoError(t, err)
	return product
}

func TestCreateAssignsID(t *testing.T) {
	repo := NewRepository(setupCatalogTestDB(t))

	product := seedProduct(t, repo, "Widget", "Acme", true, time.Now())
	assert.NotEqual(t, uuid.Nil, product.ID)

	loaded, err := repo.FindByID(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, "Widget", loaded.Name)
	assert.Equal(t, []string{"red", "blue"}, loaded.Colors)
	assert.True(t, loaded.Price.Equal(decimal.RequireFromString("19.99")))
}

func TestListFiltersInactive(t *testing.T) {
	repo := NewRepository(setupCatalogTestDB(t))
	now := time.Now()

	seedProduct(t, repo, "Visible", "Acme", true, now.Add(-time.Minute))
	seedProduct(t, repo, "Hidden", "Acme", false, now)

	result, err := repo.List(context.Background(), listQuery{ActiveOnly: true})
	require.NoError(t, err)
	require.Len(t, result.Products, 1)
	assert.Equal(t, "Visible", result.Products[0].Name)

	all, err := repo.List(context.Background(), listQuery{ActiveOnly: false})
	require.NoError(t, err)
	assert.Len(t, all.Products, 2)
}

func TestListBrandAndSearchFilters(t *testing.T) {
	repo := NewRepository(setupCatalogTestDB(t))
	now := time.Now()

	seedProduct(t, repo, "Toaster", "Acme", true, now.Add(-2*time.Minute))
	seedProduct(t, repo, "Kettle", "Bravo", true, now.Add(-time.Minute))
	seedProduct(t, repo, "Kettle Pro", "Acme", true, now)

	byBrand, err := repo.List(context.Background(), listQuery{
		Filters:    ListFilters{Brand: "acme"},
		ActiveOnly: true,
	})
	require.NoError(t, err)
	assert.Len(t, byBrand.Products, 2)

	bySearch, err := repo.List(context.Background(), listQuery{
		Filters:    ListFilters{Query: "kettle"},
		ActiveOnly: true,
	})
	require.NoError(t, err)
	assert.Len(t, bySearch.Products, 2)
}

func TestListPaginatesWithCursor(t *testing.T) {
	repo := NewRepository(setupCatalogTestDB(t))
	base := time.Now().Add(-time.Hour)

	for i := 0; i < 5; i++ {
		seedProduct(t, repo, "Product", "Acme", true, base.Add(time.Duration(i)*time.Minute))
	}

	first, err := repo.List(context.Background(), listQuery{
		Pagination: pagination.Params{Limit: 2},
		ActiveOnly: true,
	})
	require.NoError(t, err)
	require.Len(t, first.Products, 2)
	require.NotEmpty(t, first.NextCursor)

	second, err := repo.List(context.Background(), listQuery{
		Pagination: pagination.Params{Limit: 2, Cursor: first.NextCursor},
		ActiveOnly: true,
	})
	require.NoError(t, err)
	require.Len(t, second.Products, 2)

	seen := map[uuid.UUID]bool{}
	for _, p := range append(first.Products, second.Products...) {
		assert.False(t, seen[p.ID], "page overlap on %s", p.ID)
		seen[p.ID] = true
	}
}

func TestUpdateAndDelete(t *testing.T) {
	repo := NewRepository(setupCatalogTestDB(t))
	ctx := context.Background()

	product := seedProduct(t, repo, "Widget", "Acme", true, time.Now())
	product.Name = "Widget v2"
	_, err := repo.Update(ctx, product)
	require.NoError(t, err)

	loaded, err := repo.FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, "Widget v2", loaded.Name)

	require.NoError(t, repo.Delete(ctx, product.ID))
	_, err = repo.FindByID(ctx, product.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
