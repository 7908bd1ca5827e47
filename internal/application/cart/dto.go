package cart

import (
	"time"

	"github.com/google/uuid"

	"github.com/tienda/backend/internal/domain/cart"
)

// AddItemRequest contains the input for adding a product to the cart
type AddItemRequest struct {
	ProductID uuid.UUID
	Quantity  int
}

// UpdateItemRequest contains the input for changing a cart line's quantity
type UpdateItemRequest struct {
	Quantity int
}

// ItemResponse is the public representation of a cart line
type ItemResponse struct {
	ID          uuid.UUID `json:"id"`
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	Quantity    int       `json:"quantity"`
	UnitPrice   string    `json:"unit_price"`
	Subtotal    string    `json:"subtotal"`
	Stock       int       `json:"stock"`
}

// CartResponse is the public representation of a cart with its lines
type CartResponse struct {
	ID        uuid.UUID      `json:"id"`
	UserID    uuid.UUID      `json:"user_id"`
	Items     []ItemResponse `json:"items"`
	Total     string         `json:"total"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// toItemResponse maps a cart line detail to its public representation
func toItemResponse(d *cart.ItemDetail) ItemResponse {
	unitPrice := d.EffectiveUnitPrice()
	return ItemResponse{
		ID:          d.ID,
		ProductID:   d.ProductID,
		ProductName: d.ProductName,
		Quantity:    d.Quantity,
		UnitPrice:   unitPrice.String(),
		Subtotal:    unitPrice.MulInt(int64(d.Quantity)).Round().String(),
		Stock:       d.ProductStock,
	}
}
