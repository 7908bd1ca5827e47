package cart

import (
	"context"

	"github.com/google/uuid"
)

// Repository persists carts and their items
type Repository interface {
	FindByUser(ctx context.Context, userID uuid.UUID) (*Cart, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Cart, error)
	Save(ctx context.Context, cart *Cart) error

	// Touch bumps the cart's last-modified timestamp
	Touch(ctx context.Context, cartID uuid.UUID) error

	FindItemByID(ctx context.Context, itemID uuid.UUID) (*Item, error)
	FindItem(ctx context.Context, cartID, productID uuid.UUID) (*Item, error)
	SaveItem(ctx context.Context, item *Item) error
	DeleteItem(ctx context.Context, itemID uuid.UUID) error

	// FindItemsWithProduct reads all lines of a cart joined with the
	// referenced product's current name, price, stock and status
	FindItemsWithProduct(ctx context.Context, cartID uuid.UUID) ([]ItemDetail, error)

	// DeleteItems removes every line of a cart, used when the cart is
	// emptied or checked out
	DeleteItems(ctx context.Context, cartID uuid.UUID) error
}
