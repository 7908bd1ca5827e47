package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/tienda/backend/internal/domain/catalog"
)

// CreateProductRequest contains the input for product creation
type CreateProductRequest struct {
	Name        string
	Description string
	SalePrice   string
	Stock       int
	ImageURL    string
	CategoryID  uuid.UUID
}

// UpdateProductRequest contains the fields a product update may change.
// Nil fields are left untouched; stock is deliberately absent, stock changes
// go through AdjustStock so the non-negativity guard applies.
type UpdateProductRequest struct {
	Name        *string
	Description *string
	SalePrice   *string
	ImageURL    *string
	CategoryID  *uuid.UUID
	Status      *string
}

// ProductResponse is the public representation of a product
type ProductResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	SalePrice   string    `json:"sale_price"`
	Stock       int       `json:"stock"`
	ImageURL    string    `json:"image_url"`
	CategoryID  uuid.UUID `json:"category_id"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToProductResponse maps a domain product to its public representation
func ToProductResponse(p *catalog.Product) *ProductResponse {
	return &ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		SalePrice:   p.SalePrice.String(),
		Stock:       p.Stock,
		ImageURL:    p.ImageURL,
		CategoryID:  p.CategoryID,
		Status:      string(p.Status),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// ProductListFilter contains filter options for listing products
type ProductListFilter struct {
	Search     string
	Status     string
	CategoryID *uuid.UUID
	Page       int
	PageSize   int
	SortBy     string
	SortDesc   bool
}

// CreateCategoryRequest contains the input for category creation
type CreateCategoryRequest struct {
	Name        string
	Description string
}

// UpdateCategoryRequest contains the fields a category update may change
type UpdateCategoryRequest struct {
	Name        *string
	Description *string
}

// CategoryResponse is the public representation of a category
type CategoryResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToCategoryResponse maps a domain category to its public representation
func ToCategoryResponse(c *catalog.Category) *CategoryResponse {
	return &CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
