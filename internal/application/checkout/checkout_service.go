package checkout

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tienda/backend/internal/domain/cart"
	"github.com/tienda/backend/internal/domain/order"
	"github.com/tienda/backend/internal/domain/shared"
)

// Service converts a user's cart into an immutable order. The conversion is
// all-or-nothing: order creation, stock decrements and cart cleanup share one
// transaction, and stock never goes negative even under concurrent checkouts
// of the same product.
type Service struct {
	cartRepo cart.Repository
	txScope  TransactionScope
	logger   *zap.Logger
}

// NewService creates a new checkout service
func NewService(cartRepo cart.Repository, txScope TransactionScope, logger *zap.Logger) *Service {
	return &Service{
		cartRepo: cartRepo,
		txScope:  txScope,
		logger:   logger,
	}
}

// Checkout places an order from the user's cart.
//
// The cart lines and their products are read as one snapshot, the order totals
// are computed from that snapshot, and the commit applies each stock decrement
// conditionally. A decrement that finds insufficient stock rolls the whole
// transaction back, so a competing checkout that won the race leaves this one
// failing cleanly with no partial effects.
func (s *Service) Checkout(ctx context.Context, userID uuid.UUID) (*Result, error) {
	userCart, err := s.cartRepo.FindByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrCartNotFound
		}
		return nil, err
	}

	details, err := s.cartRepo.FindItemsWithProduct(ctx, userCart.ID)
	if err != nil {
		return nil, err
	}
	if len(details) == 0 {
		return nil, shared.ErrEmptyCart
	}

	// Fast-fail validation on the snapshot. The checked quantities can still
	// be raced away before commit; the conditional decrement below is the
	// authoritative guard.
	for i := range details {
		if details[i].ProductStock < details[i].Quantity {
			return nil, insufficientStockError(details[i].ProductName, details[i].Quantity, details[i].ProductStock)
		}
	}

	newOrder := order.NewOrder(userID)
	for i := range details {
		d := &details[i]
		if _, err := newOrder.AddLine(d.ProductID, d.ProductName, d.Quantity, d.EffectiveUnitPrice()); err != nil {
			return nil, err
		}
	}
	if err := newOrder.Finalize(); err != nil {
		return nil, err
	}

	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := repos.Orders().Create(ctx, newOrder); err != nil {
			return err
		}
		for i := range details {
			d := &details[i]
			ok, err := repos.Products().DecrementStockIfAvailable(ctx, d.ProductID, d.Quantity)
			if err != nil {
				return err
			}
			if !ok {
				available, availErr := repos.Products().AvailableStock(ctx, d.ProductID)
				if availErr != nil {
					available = 0
				}
				return insufficientStockError(d.ProductName, d.Quantity, available)
			}
		}
		if err := repos.Carts().DeleteItems(ctx, userCart.ID); err != nil {
			return err
		}
		return repos.Carts().Touch(ctx, userCart.ID)
	})
	if err != nil {
		var domainErr *shared.DomainError
		if errors.As(err, &domainErr) {
			return nil, err
		}
		s.logger.Error("Checkout transaction failed",
			zap.String("user_id", userID.String()),
			zap.String("order_id", newOrder.ID.String()),
			zap.Error(err))
		return nil, shared.ErrPersistenceFailure
	}

	s.logger.Info("Order placed",
		zap.String("user_id", userID.String()),
		zap.String("order_id", newOrder.ID.String()),
		zap.String("total", newOrder.Total.String()),
		zap.Int("items_count", newOrder.ItemCount()))

	return &Result{
		OrderID:    newOrder.ID,
		Subtotal:   newOrder.Subtotal,
		Tax:        newOrder.Tax,
		Total:      newOrder.Total,
		ItemsCount: newOrder.ItemCount(),
	}, nil
}

// insufficientStockError reports the first line whose requested quantity
// exceeds the available stock
func insufficientStockError(productName string, requested, available int) *shared.DomainError {
	return shared.NewDomainError("INSUFFICIENT_STOCK",
		fmt.Sprintf("Insufficient stock for %q: requested %d, available %d", productName, requested, available))
}
