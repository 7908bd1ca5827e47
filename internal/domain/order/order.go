package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tienda/backend/internal/domain/shared"
	"github.com/tienda/backend/internal/domain/shared/valueobject"
)

// TaxRate is the fixed sales tax applied to every order subtotal.
var TaxRate = decimal.RequireFromString("0.19")

// Status represents the order lifecycle
type Status string

const (
	StatusPending   Status = "pending"
	StatusPaid      Status = "paid"
	StatusShipped   Status = "shipped"
	StatusCancelled Status = "cancelled"
)

// allowed status transitions; financial fields never change
var transitions = map[Status][]Status{
	StatusPending: {StatusPaid, StatusCancelled},
	StatusPaid:    {StatusShipped, StatusCancelled},
}

// Order is an immutable record of a completed checkout. Monetary fields are
// write-once; only Status may change afterwards, through management
// transitions.
type Order struct {
	shared.BaseEntity
	UserID   uuid.UUID
	Subtotal valueobject.Money
	Tax      valueobject.Money
	Total    valueobject.Money
	Status   Status
	PlacedAt time.Time
	Items    []Item
}

// Item is a single order line with the unit price captured at order time.
// Later catalog price edits never change the value of historical orders.
type Item struct {
	shared.BaseEntity
	OrderID     uuid.UUID
	ProductID   uuid.UUID
	ProductName string
	Quantity    int
	UnitPrice   valueobject.Money
	Subtotal    valueobject.Money
}

// NewOrder starts an empty pending order for a user
func NewOrder(userID uuid.UUID) *Order {
	return &Order{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
		Subtotal:   valueobject.Zero(),
		Tax:        valueobject.Zero(),
		Total:      valueobject.Zero(),
		Status:     StatusPending,
		PlacedAt:   time.Now(),
	}
}

// AddLine appends an order line, capturing the unit price as of now.
// Line subtotal is quantity times unit price, rounded to the monetary scale.
func (o *Order) AddLine(productID uuid.UUID, productName string, quantity int, unitPrice valueobject.Money) (*Item, error) {
	if quantity < 1 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Quantity must be at least 1")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Unit price cannot be negative")
	}
	item := Item{
		BaseEntity:  shared.NewBaseEntity(),
		OrderID:     o.ID,
		ProductID:   productID,
		ProductName: productName,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		Subtotal:    unitPrice.MulInt(int64(quantity)).Round(),
	}
	o.Items = append(o.Items, item)
	return &o.Items[len(o.Items)-1], nil
}

// Finalize computes subtotal, tax and total from the order lines.
// All arithmetic is fixed-point decimal rounded to two places.
func (o *Order) Finalize() error {
	if len(o.Items) == 0 {
		return shared.NewDomainError("INVALID_STATE", "Order has no items")
	}
	subtotal := valueobject.Zero()
	for _, item := range o.Items {
		subtotal = subtotal.Add(item.Subtotal)
	}
	o.Subtotal = subtotal.Round()
	o.Tax = subtotal.MulRate(TaxRate).Round()
	o.Total = o.Subtotal.Add(o.Tax).Round()
	o.Touch()
	return nil
}

// TransitionTo moves the order to a new status if the transition is allowed
func (o *Order) TransitionTo(next Status) error {
	for _, allowed := range transitions[o.Status] {
		if allowed == next {
			o.Status = next
			o.Touch()
			return nil
		}
	}
	return shared.NewDomainError("INVALID_STATE",
		"Order cannot transition from "+string(o.Status)+" to "+string(next))
}

// ItemCount returns the number of lines on the order
func (o *Order) ItemCount() int {
	return len(o.Items)
}
