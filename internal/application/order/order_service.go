package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tienda/backend/internal/application/checkout"
	"github.com/tienda/backend/internal/domain/catalog"
	"github.com/tienda/backend/internal/domain/order"
	"github.com/tienda/backend/internal/domain/shared"
)

// Service handles order queries and management operations. Checkout itself
// lives in the checkout service; this service covers everything after an
// order exists, plus the management path that creates orders without a cart.
type Service struct {
	orderRepo   order.Repository
	productRepo catalog.ProductRepository
	txScope     checkout.TransactionScope
	logger      *zap.Logger
}

// NewService creates a new order service
func NewService(
	orderRepo order.Repository,
	productRepo catalog.ProductRepository,
	txScope checkout.TransactionScope,
	logger *zap.Logger,
) *Service {
	return &Service{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		txScope:     txScope,
		logger:      logger,
	}
}

// Create places an order directly from a list of product lines, without a
// cart. This is the management path; it applies the same conditional stock
// decrements as checkout, inside one transaction.
func (s *Service) Create(ctx context.Context, req CreateOrderRequest) (*OrderResponse, error) {
	if len(req.Lines) == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Order must have at least one line")
	}

	ids := make([]uuid.UUID, 0, len(req.Lines))
	for _, line := range req.Lines {
		ids = append(ids, line.ProductID)
	}
	products, err := s.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*catalog.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	newOrder := order.NewOrder(req.UserID)
	for _, line := range req.Lines {
		product, ok := byID[line.ProductID]
		if !ok {
			return nil, shared.NewDomainError("NOT_FOUND", "Product not found: "+line.ProductID.String())
		}
		if !product.HasStock(line.Quantity) {
			return nil, insufficientStockError(product.Name, line.Quantity, product.Stock)
		}
		if _, err := newOrder.AddLine(product.ID, product.Name, line.Quantity, product.SalePrice); err != nil {
			return nil, err
		}
	}
	if err := newOrder.Finalize(); err != nil {
		return nil, err
	}

	err = s.txScope.Execute(ctx, func(repos checkout.TransactionalRepositories) error {
		if err := repos.Orders().Create(ctx, newOrder); err != nil {
			return err
		}
		for _, line := range req.Lines {
			ok, err := repos.Products().DecrementStockIfAvailable(ctx, line.ProductID, line.Quantity)
			if err != nil {
				return err
			}
			if !ok {
				available, availErr := repos.Products().AvailableStock(ctx, line.ProductID)
				if availErr != nil {
					available = 0
				}
				return insufficientStockError(byID[line.ProductID].Name, line.Quantity, available)
			}
		}
		return nil
	})
	if err != nil {
		var domainErr *shared.DomainError
		if errors.As(err, &domainErr) {
			return nil, err
		}
		s.logger.Error("Order creation transaction failed",
			zap.String("user_id", req.UserID.String()),
			zap.Error(err))
		return nil, shared.ErrPersistenceFailure
	}

	s.logger.Info("Order created",
		zap.String("order_id", newOrder.ID.String()),
		zap.String("user_id", req.UserID.String()),
		zap.String("total", newOrder.Total.String()))

	return ToOrderResponse(newOrder), nil
}

// GetByID retrieves an order. Non-management callers only see their own
// orders.
func (s *Service) GetByID(ctx context.Context, requesterID uuid.UUID, isManagement bool, orderID uuid.UUID) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !isManagement && o.UserID != requesterID {
		return nil, shared.ErrForbidden
	}
	return ToOrderResponse(o), nil
}

// ListMine retrieves the caller's own orders
func (s *Service) ListMine(ctx context.Context, userID uuid.UUID, filter ListFilter) ([]OrderResponse, int64, error) {
	domainFilter := toDomainFilter(filter)
	orders, err := s.orderRepo.FindByUser(ctx, userID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	countFilter := domainFilter
	countFilter.Filters = map[string]interface{}{"user_id": userID}
	if filter.Status != "" {
		countFilter.Filters["status"] = filter.Status
	}
	total, err := s.orderRepo.Count(ctx, countFilter)
	if err != nil {
		return nil, 0, err
	}
	return toResponses(orders), total, nil
}

// ListAll retrieves all orders, for management
func (s *Service) ListAll(ctx context.Context, filter ListFilter) ([]OrderResponse, int64, error) {
	domainFilter := toDomainFilter(filter)
	orders, err := s.orderRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.orderRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return toResponses(orders), total, nil
}

// UpdateStatus transitions an order to a new status. Disallowed transitions
// are refused; monetary fields are never touched.
func (s *Service) UpdateStatus(ctx context.Context, orderID uuid.UUID, status string) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := o.TransitionTo(order.Status(status)); err != nil {
		return nil, err
	}
	if err := s.orderRepo.UpdateStatus(ctx, orderID, o.Status); err != nil {
		return nil, err
	}
	s.logger.Info("Order status changed",
		zap.String("order_id", orderID.String()),
		zap.String("status", status))
	return ToOrderResponse(o), nil
}

// Delete removes an order and its items
func (s *Service) Delete(ctx context.Context, orderID uuid.UUID) error {
	if err := s.orderRepo.Delete(ctx, orderID); err != nil {
		return err
	}
	s.logger.Info("Order deleted", zap.String("order_id", orderID.String()))
	return nil
}

func toDomainFilter(filter ListFilter) shared.Filter {
	domainFilter := shared.DefaultFilter()
	domainFilter.OrderBy = "placed_at"
	domainFilter.OrderDir = "desc"
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	if filter.Page > 0 && filter.PageSize > 0 {
		domainFilter.Page = filter.Page
		domainFilter.PageSize = filter.PageSize
	}
	return domainFilter
}

func toResponses(orders []order.Order) []OrderResponse {
	responses := make([]OrderResponse, len(orders))
	for i := range orders {
		responses[i] = *ToOrderResponse(&orders[i])
	}
	return responses
}

// insufficientStockError reports a line whose requested quantity exceeds the
// available stock
func insufficientStockError(productName string, requested, available int) *shared.DomainError {
	return shared.NewDomainError("INSUFFICIENT_STOCK",
		fmt.Sprintf("Insufficient stock for %q: requested %d, available %d", productName, requested, available))
}
