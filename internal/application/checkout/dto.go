package checkout

import (
	"github.com/google/uuid"

	"github.com/tienda/backend/internal/domain/shared/valueobject"
)

// Result is the summary returned after a successful checkout
type Result struct {
	OrderID    uuid.UUID         `json:"order_id"`
	Subtotal   valueobject.Money `json:"subtotal"`
	Tax        valueobject.Money `json:"tax"`
	Total      valueobject.Money `json:"total"`
	ItemsCount int               `json:"items_count"`
}
