package cart

import (
	"github.com/google/uuid"

	"github.com/tienda/backend/internal/domain/shared"
	"github.com/tienda/backend/internal/domain/shared/valueobject"
)

// Cart is a user's mutable collection of pending purchase intentions.
// At most one cart exists per user; it is created lazily on the first
// add-to-cart and emptied (never deleted) on checkout.
type Cart struct {
	shared.BaseEntity
	UserID uuid.UUID
}

// NewCart creates a cart for a user
func NewCart(userID uuid.UUID) *Cart {
	return &Cart{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
	}
}

// Item is a single cart line referencing exactly one product
type Item struct {
	shared.BaseEntity
	CartID    uuid.UUID
	ProductID uuid.UUID
	Quantity  int

	// UnitPrice is the price snapshot captured when the line was added.
	// Nil means no snapshot was captured and checkout falls back to the
	// product's current catalog price.
	UnitPrice *valueobject.Money
}

// NewItem creates a cart line with a captured price snapshot
func NewItem(cartID, productID uuid.UUID, quantity int, unitPrice valueobject.Money) (*Item, error) {
	if quantity < 1 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Quantity must be at least 1")
	}
	return &Item{
		BaseEntity: shared.NewBaseEntity(),
		CartID:     cartID,
		ProductID:  productID,
		Quantity:   quantity,
		UnitPrice:  &unitPrice,
	}, nil
}

// SetQuantity replaces the line quantity
func (i *Item) SetQuantity(quantity int) error {
	if quantity < 1 {
		return shared.NewDomainError("INVALID_INPUT", "Quantity must be at least 1")
	}
	i.Quantity = quantity
	i.Touch()
	return nil
}

// AddQuantity increases the line quantity
func (i *Item) AddQuantity(delta int) error {
	if delta < 1 {
		return shared.NewDomainError("INVALID_INPUT", "Quantity must be at least 1")
	}
	i.Quantity += delta
	i.Touch()
	return nil
}

// ItemDetail is a cart line joined with its product's current state, read
// as one snapshot for pricing and stock validation.
type ItemDetail struct {
	Item
	ProductName   string
	ProductPrice  valueobject.Money
	ProductStock  int
	ProductStatus string
}

// EffectiveUnitPrice resolves the price used at checkout: the captured
// snapshot when present, otherwise the product's current catalog price.
func (d *ItemDetail) EffectiveUnitPrice() valueobject.Money {
	if d.UnitPrice != nil {
		return *d.UnitPrice
	}
	return d.ProductPrice
}
