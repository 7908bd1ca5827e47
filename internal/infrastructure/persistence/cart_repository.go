package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tienda/backend/internal/domain/cart"
	"github.com/tienda/backend/internal/domain/shared"
	"github.com/tienda/backend/internal/infrastructure/persistence/models"
)

// GormCartRepository implements cart.Repository using GORM
type GormCartRepository struct {
	db *gorm.DB
}

// NewGormCartRepository creates a new GormCartRepository
func NewGormCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// FindByUser finds the cart belonging to a user
func (r *GormCartRepository) FindByUser(ctx context.Context, userID uuid.UUID) (*cart.Cart, error) {
	var model models.CartModel
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByID finds a cart by its ID
func (r *GormCartRepository) FindByID(ctx context.Context, id uuid.UUID) (*cart.Cart, error) {
	var model models.CartModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates or updates a cart
func (r *GormCartRepository) Save(ctx context.Context, c *cart.Cart) error {
	model := models.CartModelFromDomain(c)
	return r.db.WithContext(ctx).Save(model).Error
}

// Touch bumps the cart's last-modified timestamp
func (r *GormCartRepository) Touch(ctx context.Context, cartID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.CartModel{}).
		Where("id = ?", cartID).
		UpdateColumn("updated_at", time.Now()).Error
}

// FindItemByID finds a cart line by its ID
func (r *GormCartRepository) FindItemByID(ctx context.Context, itemID uuid.UUID) (*cart.Item, error) {
	var model models.CartItemModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindItem finds the line for a product in a cart, if any
func (r *GormCartRepository) FindItem(ctx context.Context, cartID, productID uuid.UUID) (*cart.Item, error) {
	var model models.CartItemModel
	if err := r.db.WithContext(ctx).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// SaveItem creates or updates a cart line
func (r *GormCartRepository) SaveItem(ctx context.Context, item *cart.Item) error {
	model := models.CartItemModelFromDomain(item)
	return r.db.WithContext(ctx).Save(model).Error
}

// DeleteItem removes a single cart line
func (r *GormCartRepository) DeleteItem(ctx context.Context, itemID uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.CartItemModel{}, "id = ?", itemID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindItemsWithProduct reads all lines of a cart joined with the referenced
// product's current name, price, stock and status as a single snapshot.
func (r *GormCartRepository) FindItemsWithProduct(ctx context.Context, cartID uuid.UUID) ([]cart.ItemDetail, error) {
	var rows []models.CartItemDetailRow
	err := r.db.WithContext(ctx).
		Model(&models.CartItemModel{}).
		Select("itemscarrito.*, productos.name AS product_name, productos.sale_price AS product_price, productos.stock AS product_stock, productos.status AS product_status").
		Joins("JOIN productos ON productos.id = itemscarrito.product_id").
		Where("itemscarrito.cart_id = ?", cartID).
		Order("itemscarrito.created_at ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	details := make([]cart.ItemDetail, 0, len(rows))
	for i := range rows {
		details = append(details, rows[i].ToDomain())
	}
	return details, nil
}

// DeleteItems removes every line of a cart. Deleting zero rows is not an
// error: emptying an already empty cart is a no-op.
func (r *GormCartRepository) DeleteItems(ctx context.Context, cartID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.CartItemModel{}, "cart_id = ?", cartID).Error
}

// Ensure GormCartRepository implements cart.Repository
var _ cart.Repository = (*GormCartRepository)(nil)
