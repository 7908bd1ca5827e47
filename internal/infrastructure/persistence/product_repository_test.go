package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tienda/backend/internal/domain/catalog"
	"github.com/tienda/backend/internal/domain/shared"
	"github.com/tienda/backend/internal/domain/shared/valueobject"
)

func seedProduct(t *testing.T, repo *GormProductRepository, categoryRepo *GormCategoryRepository, price string, stock int) *catalog.Product {
	t.Helper()
	ctx := context.Background()

	category, err := catalog.NewCategory("Category "+uuid.NewString(), "")
	require.NoError(t, err)
	require.NoError(t, categoryRepo.Save(ctx, category))

	p, err := valueobject.NewMoneyFromString(price)
	require.NoError(t, err)
	product, err := catalog.NewProduct("Widget", p, stock, category.ID)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, product))
	return product
}

func TestProductRepository_SaveAndFind(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormProductRepository(db)
	categoryRepo := NewGormCategoryRepository(db)
	ctx := context.Background()

	product := seedProduct(t, repo, categoryRepo, "19.99", 7)

	found, err := repo.FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, product.Name, found.Name)
	assert.Equal(t, "19.99", found.SalePrice.String())
	assert.Equal(t, 7, found.Stock)
	assert.Equal(t, catalog.ProductStatusActive, found.Status)
}

func TestProductRepository_FindMissing(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormProductRepository(db)

	_, err := repo.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestProductRepository_DecrementStockIfAvailable(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormProductRepository(db)
	categoryRepo := NewGormCategoryRepository(db)
	ctx := context.Background()

	product := seedProduct(t, repo, categoryRepo, "10.00", 5)

	ok, err := repo.DecrementStockIfAvailable(ctx, product.ID, 3)
	require.NoError(t, err)
	assert.True(t, ok)

	stock, err := repo.AvailableStock(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stock)

	// more than remaining: refused, stock unchanged
	ok, err = repo.DecrementStockIfAvailable(ctx, product.ID, 3)
	require.NoError(t, err)
	assert.False(t, ok)

	stock, err = repo.AvailableStock(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stock)

	// exact remaining: allowed, stock hits zero
	ok, err = repo.DecrementStockIfAvailable(ctx, product.ID, 2)
	require.NoError(t, err)
	assert.True(t, ok)

	stock, err = repo.AvailableStock(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stock)
}

func TestProductRepository_DecrementMissingProduct(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormProductRepository(db)

	ok, err := repo.DecrementStockIfAvailable(context.Background(), uuid.New(), 1)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestProductRepository_DecrementContention(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormProductRepository(db)
	categoryRepo := NewGormCategoryRepository(db)
	ctx := context.Background()

	product := seedProduct(t, repo, categoryRepo, "10.00", 3)

	// five buyers for three units: exactly three decrements win
	wins := 0
	for i := 0; i < 5; i++ {
		ok, err := repo.DecrementStockIfAvailable(ctx, product.ID, 1)
		require.NoError(t, err)
		if ok {
			wins++
		}
	}
	assert.Equal(t, 3, wins)

	stock, err := repo.AvailableStock(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stock)
}

func TestProductRepository_UpdateDetailsPreservesConcurrentDecrement(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormProductRepository(db)
	categoryRepo := NewGormCategoryRepository(db)
	ctx := context.Background()

	product := seedProduct(t, repo, categoryRepo, "10.00", 5)

	// a catalog edit reads the product, then a checkout decrements stock
	// before the edit is written back
	stale, err := repo.FindByID(ctx, product.ID)
	require.NoError(t, err)

	ok, err := repo.DecrementStockIfAvailable(ctx, product.ID, 3)
	require.NoError(t, err)
	require.True(t, ok)

	newPrice, err := valueobject.NewMoneyFromString("12.50")
	require.NoError(t, err)
	stale.Name = "Widget Pro"
	stale.SalePrice = newPrice
	stale.Touch()
	require.NoError(t, repo.UpdateDetails(ctx, stale))

	found, err := repo.FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, "Widget Pro", found.Name)
	assert.Equal(t, "12.50", found.SalePrice.String())
	assert.Equal(t, 2, found.Stock, "descriptive update must not write the stale stock back")
}

func TestProductRepository_UpdateDetailsMissingProduct(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormProductRepository(db)
	categoryRepo := NewGormCategoryRepository(db)

	product := seedProduct(t, repo, categoryRepo, "10.00", 1)
	product.ID = uuid.New()

	err := repo.UpdateDetails(context.Background(), product)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestProductRepository_SortFieldWhitelist(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormProductRepository(db)
	categoryRepo := NewGormCategoryRepository(db)
	ctx := context.Background()

	cheap := seedProduct(t, repo, categoryRepo, "1.00", 1)
	expensive := seedProduct(t, repo, categoryRepo, "9.00", 1)

	filter := shared.DefaultFilter()
	filter.OrderBy = "sale_price"
	filter.OrderDir = "asc"
	products, err := repo.FindAll(ctx, filter)
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, cheap.ID, products[0].ID)
	assert.Equal(t, expensive.ID, products[1].ID)

	// hostile sort expressions never reach SQL; ordering falls back to
	// the default column
	filter.OrderBy = "(SELECT name FROM usuarios LIMIT 1); DROP TABLE productos"
	filter.OrderDir = "asc; --"
	products, err = repo.FindAll(ctx, filter)
	require.NoError(t, err)
	assert.Len(t, products, 2)

	stock, err := repo.AvailableStock(ctx, cheap.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stock)
}

func TestProductRepository_AdjustStock(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormProductRepository(db)
	categoryRepo := NewGormCategoryRepository(db)
	ctx := context.Background()

	product := seedProduct(t, repo, categoryRepo, "10.00", 5)

	ok, err := repo.AdjustStock(ctx, product.ID, 10)
	require.NoError(t, err)
	assert.True(t, ok)

	stock, err := repo.AvailableStock(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 15, stock)

	// adjustment below zero is refused
	ok, err = repo.AdjustStock(ctx, product.ID, -20)
	require.NoError(t, err)
	assert.False(t, ok)

	stock, err = repo.AvailableStock(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 15, stock)

	ok, err = repo.AdjustStock(ctx, product.ID, -15)
	require.NoError(t, err)
	assert.True(t, ok)

	stock, err = repo.AvailableStock(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stock)
}
