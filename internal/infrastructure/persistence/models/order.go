package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tienda/backend/internal/domain/order"
	"github.com/tienda/backend/internal/domain/shared/valueobject"
)

// OrderModel is the persistence model for the Order domain entity.
// Monetary columns are write-once; only the status column changes after
// the order is created.
type OrderModel struct {
	BaseModel
	UserID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Subtotal decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Tax      decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Total    decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Status   order.Status    `gorm:"type:varchar(20);not null;default:'pending';index"`
	PlacedAt time.Time       `gorm:"column:placed_at;not null;index"`

	Items []OrderItemModel `gorm:"foreignKey:OrderID"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "ordenes"
}

// ToDomain converts the persistence model to a domain Order entity.
func (m *OrderModel) ToDomain() *order.Order {
	o := &order.Order{
		BaseEntity: m.BaseModel.ToDomain(),
		UserID:     m.UserID,
		Subtotal:   valueobject.NewMoney(m.Subtotal),
		Tax:        valueobject.NewMoney(m.Tax),
		Total:      valueobject.NewMoney(m.Total),
		Status:     m.Status,
		PlacedAt:   m.PlacedAt,
	}
	if len(m.Items) > 0 {
		o.Items = make([]order.Item, 0, len(m.Items))
		for i := range m.Items {
			o.Items = append(o.Items, m.Items[i].ToDomain())
		}
	}
	return o
}

// FromDomain populates the persistence model from a domain Order entity,
// including its items.
func (m *OrderModel) FromDomain(o *order.Order) {
	m.FromDomainBaseEntity(o.BaseEntity)
	m.UserID = o.UserID
	m.Subtotal = o.Subtotal.Amount()
	m.Tax = o.Tax.Amount()
	m.Total = o.Total.Amount()
	m.Status = o.Status
	m.PlacedAt = o.PlacedAt
	m.Items = make([]OrderItemModel, 0, len(o.Items))
	for i := range o.Items {
		var im OrderItemModel
		im.FromDomain(&o.Items[i])
		m.Items = append(m.Items, im)
	}
}

// OrderModelFromDomain creates a new persistence model from a domain Order entity.
func OrderModelFromDomain(o *order.Order) *OrderModel {
	m := &OrderModel{}
	m.FromDomain(o)
	return m
}

// OrderItemModel is the persistence model for an order line. ProductName and
// UnitPrice are captured at order time and never follow later catalog edits.
type OrderItemModel struct {
	BaseModel
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductName string          `gorm:"column:product_name;type:varchar(200);not null"`
	Quantity    int             `gorm:"not null;check:quantity >= 1"`
	UnitPrice   decimal.Decimal `gorm:"column:unit_price;type:numeric(12,2);not null"`
	Subtotal    decimal.Decimal `gorm:"type:numeric(12,2);not null"`
}

// TableName returns the table name for GORM
func (OrderItemModel) TableName() string {
	return "orden_items"
}

// ToDomain converts the persistence model to a domain order Item.
func (m *OrderItemModel) ToDomain() order.Item {
	return order.Item{
		BaseEntity:  m.BaseModel.ToDomain(),
		OrderID:     m.OrderID,
		ProductID:   m.ProductID,
		ProductName: m.ProductName,
		Quantity:    m.Quantity,
		UnitPrice:   valueobject.NewMoney(m.UnitPrice),
		Subtotal:    valueobject.NewMoney(m.Subtotal),
	}
}

// FromDomain populates the persistence model from a domain order Item.
func (m *OrderItemModel) FromDomain(i *order.Item) {
	m.FromDomainBaseEntity(i.BaseEntity)
	m.OrderID = i.OrderID
	m.ProductID = i.ProductID
	m.ProductName = i.ProductName
	m.Quantity = i.Quantity
	m.UnitPrice = i.UnitPrice.Amount()
	m.Subtotal = i.Subtotal.Amount()
}
