package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tienda/backend/internal/domain/cart"
	"github.com/tienda/backend/internal/domain/shared/valueobject"
)

// CartModel is the persistence model for the Cart domain entity.
// Each user holds at most one cart, enforced by the unique index.
type CartModel struct {
	BaseModel
	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
}

// TableName returns the table name for GORM
func (CartModel) TableName() string {
	return "carrito"
}

// ToDomain converts the persistence model to a domain Cart entity.
func (m *CartModel) ToDomain() *cart.Cart {
	return &cart.Cart{
		BaseEntity: m.BaseModel.ToDomain(),
		UserID:     m.UserID,
	}
}

// FromDomain populates the persistence model from a domain Cart entity.
func (m *CartModel) FromDomain(c *cart.Cart) {
	m.FromDomainBaseEntity(c.BaseEntity)
	m.UserID = c.UserID
}

// CartModelFromDomain creates a new persistence model from a domain Cart entity.
func CartModelFromDomain(c *cart.Cart) *CartModel {
	m := &CartModel{}
	m.FromDomain(c)
	return m
}

// CartItemModel is the persistence model for a cart line. UnitPrice is the
// optional price snapshot; NULL means the line falls back to the product's
// current catalog price at checkout.
type CartItemModel struct {
	BaseModel
	CartID    uuid.UUID           `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID           `gorm:"type:uuid;not null;index"`
	Quantity  int                 `gorm:"not null;check:quantity >= 1"`
	UnitPrice decimal.NullDecimal `gorm:"column:unit_price;type:numeric(12,2)"`
}

// TableName returns the table name for GORM
func (CartItemModel) TableName() string {
	return "itemscarrito"
}

// ToDomain converts the persistence model to a domain cart Item.
func (m *CartItemModel) ToDomain() *cart.Item {
	item := &cart.Item{
		BaseEntity: m.BaseModel.ToDomain(),
		CartID:     m.CartID,
		ProductID:  m.ProductID,
		Quantity:   m.Quantity,
	}
	if m.UnitPrice.Valid {
		price := valueobject.NewMoney(m.UnitPrice.Decimal)
		item.UnitPrice = &price
	}
	return item
}

// FromDomain populates the persistence model from a domain cart Item.
func (m *CartItemModel) FromDomain(i *cart.Item) {
	m.FromDomainBaseEntity(i.BaseEntity)
	m.CartID = i.CartID
	m.ProductID = i.ProductID
	m.Quantity = i.Quantity
	if i.UnitPrice != nil {
		m.UnitPrice = decimal.NullDecimal{Decimal: i.UnitPrice.Amount(), Valid: true}
	} else {
		m.UnitPrice = decimal.NullDecimal{}
	}
}

// CartItemModelFromDomain creates a new persistence model from a domain cart Item.
func CartItemModelFromDomain(i *cart.Item) *CartItemModel {
	m := &CartItemModel{}
	m.FromDomain(i)
	return m
}

// CartItemDetailRow is the joined projection of a cart line and its product,
// read in a single query so pricing and stock validation see one snapshot.
type CartItemDetailRow struct {
	CartItemModel
	ProductName   string          `gorm:"column:product_name"`
	ProductPrice  decimal.Decimal `gorm:"column:product_price"`
	ProductStock  int             `gorm:"column:product_stock"`
	ProductStatus string          `gorm:"column:product_status"`
}

// ToDomain converts the joined row to a domain ItemDetail.
func (r *CartItemDetailRow) ToDomain() cart.ItemDetail {
	return cart.ItemDetail{
		Item:          *r.CartItemModel.ToDomain(),
		ProductName:   r.ProductName,
		ProductPrice:  valueobject.NewMoney(r.ProductPrice),
		ProductStock:  r.ProductStock,
		ProductStatus: r.ProductStatus,
	}
}
