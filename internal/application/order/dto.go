package order

import (
	"time"

	"github.com/google/uuid"

	"github.com/tienda/backend/internal/domain/order"
)

// CreateOrderRequest contains the input for a management-created order,
// bypassing the cart
type CreateOrderRequest struct {
	UserID uuid.UUID
	Lines  []CreateOrderLine
}

// CreateOrderLine is a single requested line of a management-created order
type CreateOrderLine struct {
	ProductID uuid.UUID
	Quantity  int
}

// ItemResponse is the public representation of an order line
type ItemResponse struct {
	ID          uuid.UUID `json:"id"`
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	Quantity    int       `json:"quantity"`
	UnitPrice   string    `json:"unit_price"`
	Subtotal    string    `json:"subtotal"`
}

// OrderResponse is the public representation of an order
type OrderResponse struct {
	ID       uuid.UUID      `json:"id"`
	UserID   uuid.UUID      `json:"user_id"`
	Subtotal string         `json:"subtotal"`
	Tax      string         `json:"tax"`
	Total    string         `json:"total"`
	Status   string         `json:"status"`
	PlacedAt time.Time      `json:"placed_at"`
	Items    []ItemResponse `json:"items"`
}

// ToOrderResponse maps a domain order to its public representation
func ToOrderResponse(o *order.Order) *OrderResponse {
	items := make([]ItemResponse, len(o.Items))
	for i := range o.Items {
		items[i] = ItemResponse{
			ID:          o.Items[i].ID,
			ProductID:   o.Items[i].ProductID,
			ProductName: o.Items[i].ProductName,
			Quantity:    o.Items[i].Quantity,
			UnitPrice:   o.Items[i].UnitPrice.String(),
			Subtotal:    o.Items[i].Subtotal.String(),
		}
	}
	return &OrderResponse{
		ID:       o.ID,
		UserID:   o.UserID,
		Subtotal: o.Subtotal.String(),
		Tax:      o.Tax.String(),
		Total:    o.Total.String(),
		Status:   string(o.Status),
		PlacedAt: o.PlacedAt,
		Items:    items,
	}
}

// ListFilter contains filter options for listing orders
type ListFilter struct {
	Status   string
	Page     int
	PageSize int
}
