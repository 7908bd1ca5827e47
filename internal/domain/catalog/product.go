package catalog

import (
	"strings"

	"github.com/google/uuid"

	"github.com/tienda/backend/internal/domain/shared"
	"github.com/tienda/backend/internal/domain/shared/valueobject"
)

// ProductStatus represents the lifecycle state of a product
type ProductStatus string

const (
	ProductStatusActive       ProductStatus = "active"
	ProductStatusInactive     ProductStatus = "inactive"
	ProductStatusDiscontinued ProductStatus = "discontinued"
)

// Product is a catalog entry with a unit sale price and a stock counter.
// Stock is never negative: all decrements go through the repository's
// conditional decrement, never through a read-then-write pair.
type Product struct {
	shared.BaseEntity
	Name        string
	Description string
	SalePrice   valueobject.Money
	Stock       int
	ImageURL    string
	CategoryID  uuid.UUID
	Status      ProductStatus
}

// NewProduct creates an active product
func NewProduct(name string, salePrice valueobject.Money, stock int, categoryID uuid.UUID) (*Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Product name cannot be empty")
	}
	if salePrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Sale price cannot be negative")
	}
	if stock < 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Stock cannot be negative")
	}
	return &Product{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		SalePrice:  salePrice,
		Stock:      stock,
		CategoryID: categoryID,
		Status:     ProductStatusActive,
	}, nil
}

// IsSellable reports whether the product may appear in a checkout
func (p *Product) IsSellable() bool {
	return p.Status == ProductStatusActive
}

// HasStock reports whether the requested quantity is currently covered.
// This is a fast-fail check only; the authoritative guard is the conditional
// decrement applied at commit time.
func (p *Product) HasStock(quantity int) bool {
	return p.Stock >= quantity
}

// ChangePrice sets a new sale price. Existing orders keep the price captured
// at order time.
func (p *Product) ChangePrice(price valueobject.Money) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_INPUT", "Sale price cannot be negative")
	}
	p.SalePrice = price
	p.Touch()
	return nil
}

// Discontinue removes the product from sale permanently
func (p *Product) Discontinue() {
	p.Status = ProductStatusDiscontinued
	p.Touch()
}

// Deactivate temporarily removes the product from sale
func (p *Product) Deactivate() error {
	if p.Status == ProductStatusDiscontinued {
		return shared.NewDomainError("INVALID_STATE", "Discontinued products cannot change status")
	}
	p.Status = ProductStatusInactive
	p.Touch()
	return nil
}

// Activate returns the product to sale
func (p *Product) Activate() error {
	if p.Status == ProductStatusDiscontinued {
		return shared.NewDomainError("INVALID_STATE", "Discontinued products cannot change status")
	}
	p.Status = ProductStatusActive
	p.Touch()
	return nil
}
