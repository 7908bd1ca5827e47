package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/tienda/backend/internal/domain/shared"
)

// ProductRepository persists products. Stock mutations are restricted to
// AdjustStock and DecrementStockIfAvailable so the non-negativity invariant
// holds under concurrent access.
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Product, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)
	FindByCategory(ctx context.Context, categoryID uuid.UUID, filter shared.Filter) ([]Product, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, product *Product) error

	// UpdateDetails persists the descriptive fields of an existing product.
	// Stock is never written here: a catalog edit carries a stock counter
	// read outside any transaction, and writing it back would overwrite
	// concurrent decrements.
	UpdateDetails(ctx context.Context, product *Product) error

	Delete(ctx context.Context, id uuid.UUID) error

	// DecrementStockIfAvailable atomically applies
	//   stock = stock - quantity WHERE stock >= quantity
	// and reports whether a row was updated. A false return means the
	// product was missing or had insufficient stock; the caller decides
	// how to surface that. This is the sole serialization point for
	// stock contention.
	DecrementStockIfAvailable(ctx context.Context, id uuid.UUID, quantity int) (bool, error)

	// AdjustStock atomically adds delta to stock, refusing adjustments
	// that would drive it negative
	AdjustStock(ctx context.Context, id uuid.UUID, delta int) (bool, error)

	// AvailableStock returns the current stock counter, for error reporting
	AvailableStock(ctx context.Context, id uuid.UUID) (int, error)
}

// CategoryRepository persists categories
type CategoryRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Category, error)
	Save(ctx context.Context, category *Category) error
	Delete(ctx context.Context, id uuid.UUID) error
}
