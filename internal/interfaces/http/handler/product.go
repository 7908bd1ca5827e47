package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tienda/backend/internal/application/catalog"
	"github.com/tienda/backend/internal/interfaces/http/middleware"
)

// CreateProductRequest represents the request body for product creation
type CreateProductRequest struct {
	Name        string    `json:"name" binding:"required,min=2,max=200"`
	Description string    `json:"description" binding:"omitempty,max=2000"`
	SalePrice   string    `json:"sale_price" binding:"required"`
	Stock       int       `json:"stock" binding:"omitempty,min=0"`
	ImageURL    string    `json:"image_url" binding:"omitempty,max=500,url"`
	CategoryID  uuid.UUID `json:"category_id" binding:"required"`
}

// UpdateProductRequest represents the request body for product updates.
// Stock is not updatable here; stock changes go through the adjust endpoint.
type UpdateProductRequest struct {
	Name        *string    `json:"name" binding:"omitempty,min=2,max=200"`
	Description *string    `json:"description" binding:"omitempty,max=2000"`
	SalePrice   *string    `json:"sale_price" binding:"omitempty"`
	ImageURL    *string    `json:"image_url" binding:"omitempty,max=500,url"`
	CategoryID  *uuid.UUID `json:"category_id" binding:"omitempty"`
	Status      *string    `json:"status" binding:"omitempty,oneof=active inactive discontinued"`
}

// AdjustStockRequest represents the request body for stock adjustments
type AdjustStockRequest struct {
	Delta int `json:"delta" binding:"required"`
}

// productListQuery extends the common list query with catalog filters
type productListQuery struct {
	listQuery
	CategoryID string `form:"category_id" binding:"omitempty,uuid"`
}

// ProductHandler handles product HTTP requests
type ProductHandler struct {
	BaseHandler
	productService *catalog.ProductService
}

// NewProductHandler creates a new product handler
func NewProductHandler(productService *catalog.ProductService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
	}
}

// RegisterRoutes registers all product routes
func (h *ProductHandler) RegisterRoutes(rg *gin.RouterGroup) {
	products := rg.Group("/products")
	{
		products.GET("", h.List)
		products.GET("/:id", h.Get)

		admin := products.Group("", middleware.RequireManagement())
		{
			admin.POST("", h.Create)
			admin.PUT("/:id", h.Update)
			admin.POST("/:id/stock", h.AdjustStock)
			admin.DELETE("/:id", h.Delete)
		}
	}
}

// List returns a paginated list of products
func (h *ProductHandler) List(c *gin.Context) {
	var req productListQuery
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}
	req.applyDefaults()

	filter := catalog.ProductListFilter{
		Search:   req.Search,
		Status:   req.Status,
		Page:     req.Page,
		PageSize: req.PageSize,
		SortBy:   req.SortBy,
		SortDesc: req.SortDesc,
	}
	if req.CategoryID != "" {
		categoryID, err := uuid.Parse(req.CategoryID)
		if err != nil {
			h.BadRequest(c, "Invalid category ID")
			return
		}
		filter.CategoryID = &categoryID
	}

	products, total, err := h.productService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, products, total, req.Page, req.PageSize)
}

// Get returns a single product by ID
func (h *ProductHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	product, err := h.productService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// Create creates a new product
func (h *ProductHandler) Create(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	product, err := h.productService.Create(c.Request.Context(), catalog.CreateProductRequest{
		Name:        req.Name,
		Description: req.Description,
		SalePrice:   req.SalePrice,
		Stock:       req.Stock,
		ImageURL:    req.ImageURL,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, product)
}

// Update applies a partial update to a product
func (h *ProductHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	product, err := h.productService.Update(c.Request.Context(), id, catalog.UpdateProductRequest{
		Name:        req.Name,
		Description: req.Description,
		SalePrice:   req.SalePrice,
		ImageURL:    req.ImageURL,
		CategoryID:  req.CategoryID,
		Status:      req.Status,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// AdjustStock applies a signed stock delta. Adjustments that would take
// stock below zero are rejected.
func (h *ProductHandler) AdjustStock(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	var req AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	product, err := h.productService.AdjustStock(c.Request.Context(), id, req.Delta)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// Delete removes a product
func (h *ProductHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	if err := h.productService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
