package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tienda/backend/internal/application/checkout"
	"github.com/tienda/backend/internal/application/order"
	"github.com/tienda/backend/internal/domain/identity"
	"github.com/tienda/backend/internal/interfaces/http/middleware"
)

// CreateOrderRequest represents the request body for a management-created
// order that bypasses the cart
type CreateOrderRequest struct {
	UserID uuid.UUID              `json:"user_id" binding:"required"`
	Lines  []CreateOrderLineInput `json:"lines" binding:"required,min=1,dive"`
}

// CreateOrderLineInput is a single requested line of a management-created
// order
type CreateOrderLineInput struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,min=1"`
}

// UpdateOrderStatusRequest represents the request body for status
// transitions
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending paid shipped cancelled"`
}

// orderListQuery extends the common list query with order filters
type orderListQuery struct {
	Status   string `form:"status" binding:"omitempty,oneof=pending paid shipped cancelled"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

func (q *orderListQuery) applyDefaults() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = 20
	}
}

// OrderHandler handles order and checkout HTTP requests
type OrderHandler struct {
	BaseHandler
	orderService    *order.Service
	checkoutService *checkout.Service
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *order.Service, checkoutService *checkout.Service) *OrderHandler {
	return &OrderHandler{
		orderService:    orderService,
		checkoutService: checkoutService,
	}
}

// RegisterRoutes registers checkout and order routes
func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/checkout", middleware.RequireCapability(identity.CapabilityCustomer), h.Checkout)

	orders := rg.Group("/orders")
	{
		orders.GET("/my-orders", h.ListMine)
		orders.GET("/:id", h.Get)

		admin := orders.Group("", middleware.RequireManagement())
		{
			admin.GET("", h.ListAll)
			admin.POST("", h.Create)
			admin.PUT("/:id", h.UpdateStatus)
			admin.DELETE("/:id", h.Delete)
		}
	}
}

// Checkout converts the authenticated user's cart into an order. The stock
// decrement, order creation and cart emptying happen in one transaction.
func (h *OrderHandler) Checkout(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	result, err := h.checkoutService.Checkout(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// ListMine returns the authenticated user's own orders
func (h *OrderHandler) ListMine(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req orderListQuery
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}
	req.applyDefaults()

	orders, total, err := h.orderService.ListMine(c.Request.Context(), userID, order.ListFilter{
		Status:   req.Status,
		Page:     req.Page,
		PageSize: req.PageSize,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, orders, total, req.Page, req.PageSize)
}

// Get returns a single order. Customers can only read their own orders;
// management can read any.
func (h *OrderHandler) Get(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	orderID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	response, err := h.orderService.GetByID(c.Request.Context(), userID, middleware.IsManagement(c), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, response)
}

// ListAll returns orders across all users
func (h *OrderHandler) ListAll(c *gin.Context) {
	var req orderListQuery
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}
	req.applyDefaults()

	orders, total, err := h.orderService.ListAll(c.Request.Context(), order.ListFilter{
		Status:   req.Status,
		Page:     req.Page,
		PageSize: req.PageSize,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, orders, total, req.Page, req.PageSize)
}

// Create places an order for a user without going through their cart. The
// same conditional stock decrement applies as in checkout.
func (h *OrderHandler) Create(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	lines := make([]order.CreateOrderLine, len(req.Lines))
	for i, line := range req.Lines {
		lines[i] = order.CreateOrderLine{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
		}
	}

	response, err := h.orderService.Create(c.Request.Context(), order.CreateOrderRequest{
		UserID: req.UserID,
		Lines:  lines,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, response)
}

// UpdateStatus transitions an order to a new status
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	orderID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	response, err := h.orderService.UpdateStatus(c.Request.Context(), orderID, req.Status)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, response)
}

// Delete removes an order and its lines
func (h *OrderHandler) Delete(c *gin.Context) {
	orderID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	if err := h.orderService.Delete(c.Request.Context(), orderID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
