package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tienda/backend/internal/domain/cart"
	"github.com/tienda/backend/internal/domain/catalog"
	"github.com/tienda/backend/internal/domain/shared"
	"github.com/tienda/backend/internal/domain/shared/valueobject"
)

// Service handles cart operations. A cart is created lazily on the first
// add-to-cart and survives checkout as an empty cart.
type Service struct {
	cartRepo    cart.Repository
	productRepo catalog.ProductRepository
	logger      *zap.Logger
}

// NewService creates a new cart service
func NewService(cartRepo cart.Repository, productRepo catalog.ProductRepository, logger *zap.Logger) *Service {
	return &Service{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		logger:      logger,
	}
}

// Get returns the user's cart with its lines. A user without a cart sees an
// empty cart; none is created by reading.
func (s *Service) Get(ctx context.Context, userID uuid.UUID) (*CartResponse, error) {
	userCart, err := s.cartRepo.FindByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return &CartResponse{
				UserID: userID,
				Items:  []ItemResponse{},
				Total:  valueobject.Zero().String(),
			}, nil
		}
		return nil, err
	}
	return s.buildResponse(ctx, userCart)
}

// AddItem adds a product to the user's cart, creating the cart if needed.
// Adding a product already in the cart increases the line quantity. The
// line captures the product's current price as a snapshot.
func (s *Service) AddItem(ctx context.Context, userID uuid.UUID, req AddItemRequest) (*CartResponse, error) {
	if req.Quantity < 1 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Quantity must be at least 1")
	}

	product, err := s.productRepo.FindByID(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Product not found")
		}
		return nil, err
	}
	if !product.IsSellable() {
		return nil, shared.NewDomainError("INVALID_STATE", "Product is not available for sale")
	}

	userCart, err := s.cartRepo.FindByUser(ctx, userID)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		userCart = cart.NewCart(userID)
		if err := s.cartRepo.Save(ctx, userCart); err != nil {
			return nil, err
		}
	}

	existing, err := s.cartRepo.FindItem(ctx, userCart.ID, req.ProductID)
	switch {
	case err == nil:
		if !product.HasStock(existing.Quantity + req.Quantity) {
			return nil, stockError(product, existing.Quantity+req.Quantity)
		}
		if err := existing.AddQuantity(req.Quantity); err != nil {
			return nil, err
		}
		if err := s.cartRepo.SaveItem(ctx, existing); err != nil {
			return nil, err
		}
	case errors.Is(err, shared.ErrNotFound):
		if !product.HasStock(req.Quantity) {
			return nil, stockError(product, req.Quantity)
		}
		item, err := cart.NewItem(userCart.ID, req.ProductID, req.Quantity, product.SalePrice)
		if err != nil {
			return nil, err
		}
		if err := s.cartRepo.SaveItem(ctx, item); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	if err := s.cartRepo.Touch(ctx, userCart.ID); err != nil {
		return nil, err
	}

	s.logger.Info("Item added to cart",
		zap.String("user_id", userID.String()),
		zap.String("product_id", req.ProductID.String()),
		zap.Int("quantity", req.Quantity))

	return s.buildResponse(ctx, userCart)
}

// UpdateItem replaces the quantity of a cart line
func (s *Service) UpdateItem(ctx context.Context, userID, itemID uuid.UUID, req UpdateItemRequest) (*CartResponse, error) {
	userCart, item, err := s.findOwnedItem(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}

	product, err := s.productRepo.FindByID(ctx, item.ProductID)
	if err != nil {
		return nil, err
	}
	if !product.HasStock(req.Quantity) {
		return nil, stockError(product, req.Quantity)
	}

	if err := item.SetQuantity(req.Quantity); err != nil {
		return nil, err
	}
	if err := s.cartRepo.SaveItem(ctx, item); err != nil {
		return nil, err
	}
	if err := s.cartRepo.Touch(ctx, userCart.ID); err != nil {
		return nil, err
	}
	return s.buildResponse(ctx, userCart)
}

// RemoveItem deletes a cart line
func (s *Service) RemoveItem(ctx context.Context, userID, itemID uuid.UUID) (*CartResponse, error) {
	userCart, item, err := s.findOwnedItem(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}
	if err := s.cartRepo.DeleteItem(ctx, item.ID); err != nil {
		return nil, err
	}
	if err := s.cartRepo.Touch(ctx, userCart.ID); err != nil {
		return nil, err
	}
	return s.buildResponse(ctx, userCart)
}

// Empty removes every line from the user's cart. Emptying a nonexistent or
// already empty cart is a no-op.
func (s *Service) Empty(ctx context.Context, userID uuid.UUID) error {
	userCart, err := s.cartRepo.FindByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil
		}
		return err
	}
	if err := s.cartRepo.DeleteItems(ctx, userCart.ID); err != nil {
		return err
	}
	return s.cartRepo.Touch(ctx, userCart.ID)
}

// findOwnedItem resolves a cart line and verifies it belongs to the user
func (s *Service) findOwnedItem(ctx context.Context, userID, itemID uuid.UUID) (*cart.Cart, *cart.Item, error) {
	userCart, err := s.cartRepo.FindByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, nil, shared.ErrCartNotFound
		}
		return nil, nil, err
	}
	item, err := s.cartRepo.FindItemByID(ctx, itemID)
	if err != nil {
		return nil, nil, err
	}
	if item.CartID != userCart.ID {
		return nil, nil, shared.ErrForbidden
	}
	return userCart, item, nil
}

// buildResponse reads the cart lines with their products and computes totals
func (s *Service) buildResponse(ctx context.Context, userCart *cart.Cart) (*CartResponse, error) {
	details, err := s.cartRepo.FindItemsWithProduct(ctx, userCart.ID)
	if err != nil {
		return nil, err
	}
	items := make([]ItemResponse, len(details))
	total := valueobject.Zero()
	for i := range details {
		items[i] = toItemResponse(&details[i])
		total = total.Add(details[i].EffectiveUnitPrice().MulInt(int64(details[i].Quantity)))
	}
	return &CartResponse{
		ID:        userCart.ID,
		UserID:    userCart.UserID,
		Items:     items,
		Total:     total.Round().String(),
		UpdatedAt: userCart.UpdatedAt,
	}, nil
}

// stockError reports a requested quantity not covered by current stock
func stockError(product *catalog.Product, requested int) *shared.DomainError {
	return shared.NewDomainError("INSUFFICIENT_STOCK",
		fmt.Sprintf("Insufficient stock for %q: requested %d, available %d", product.Name, requested, product.Stock))
}
