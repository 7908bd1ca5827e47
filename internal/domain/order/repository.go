package order

import (
	"context"

	"github.com/google/uuid"

	"github.com/tienda/backend/internal/domain/shared"
)

// Repository persists orders and their items. Create is only ever invoked
// inside the checkout transaction scope so the order header, its items, the
// stock decrements and the cart cleanup commit or roll back together.
type Repository interface {
	Create(ctx context.Context, order *Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]Order, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Order, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error
	Delete(ctx context.Context, id uuid.UUID) error
}
