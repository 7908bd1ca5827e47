package cart

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tienda/backend/internal/domain/cart"
	"github.com/tienda/backend/internal/domain/catalog"
	"github.com/tienda/backend/internal/domain/shared"
	"github.com/tienda/backend/internal/domain/shared/valueobject"
)

// MockCartRepository is a mock implementation of cart.Repository
type MockCartRepository struct {
	mock.Mock
}

func (m *MockCartRepository) FindByUser(ctx context.Context, userID uuid.UUID) (*cart.Cart, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.Cart), args.Error(1)
}

func (m *MockCartRepository) FindByID(ctx context.Context, id uuid.UUID) (*cart.Cart, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.Cart), args.Error(1)
}

func (m *MockCartRepository) Save(ctx context.Context, c *cart.Cart) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCartRepository) Touch(ctx context.Context, cartID uuid.UUID) error {
	args := m.Called(ctx, cartID)
	return args.Error(0)
}

func (m *MockCartRepository) FindItemByID(ctx context.Context, itemID uuid.UUID) (*cart.Item, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.Item), args.Error(1)
}

func (m *MockCartRepository) FindItem(ctx context.Context, cartID, productID uuid.UUID) (*cart.Item, error) {
	args := m.Called(ctx, cartID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.Item), args.Error(1)
}

func (m *MockCartRepository) SaveItem(ctx context.Context, item *cart.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockCartRepository) DeleteItem(ctx context.Context, itemID uuid.UUID) error {
	args := m.Called(ctx, itemID)
	return args.Error(0)
}

func (m *MockCartRepository) FindItemsWithProduct(ctx context.Context, cartID uuid.UUID) ([]cart.ItemDetail, error) {
	args := m.Called(ctx, cartID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]cart.ItemDetail), args.Error(1)
}

func (m *MockCartRepository) DeleteItems(ctx context.Context, cartID uuid.UUID) error {
	args := m.Called(ctx, cartID)
	return args.Error(0)
}

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByCategory(ctx context.Context, categoryID uuid.UUID, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, categoryID, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) UpdateDetails(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) DecrementStockIfAvailable(ctx context.Context, id uuid.UUID, quantity int) (bool, error) {
	args := m.Called(ctx, id, quantity)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) AdjustStock(ctx context.Context, id uuid.UUID, delta int) (bool, error) {
	args := m.Called(ctx, id, delta)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) AvailableStock(ctx context.Context, id uuid.UUID) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}

func newProduct(t *testing.T, price string, stock int) *catalog.Product {
	t.Helper()
	p, err := valueobject.NewMoneyFromString(price)
	require.NoError(t, err)
	product, err := catalog.NewProduct("Test Product", p, stock, uuid.New())
	require.NoError(t, err)
	return product
}

func newCartFixture() (*Service, *MockCartRepository, *MockProductRepository) {
	cartRepo := new(MockCartRepository)
	productRepo := new(MockProductRepository)
	svc := NewService(cartRepo, productRepo, zap.NewNop())
	return svc, cartRepo, productRepo
}

func TestGet_NoCartReturnsEmptyView(t *testing.T) {
	svc, cartRepo, _ := newCartFixture()

	userID := uuid.New()
	cartRepo.On("FindByUser", mock.Anything, userID).Return(nil, shared.ErrNotFound)

	resp, err := svc.Get(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, userID, resp.UserID)
	assert.Empty(t, resp.Items)
	assert.Equal(t, "0.00", resp.Total)

	// reading must not create a cart
	cartRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestAddItem_CreatesCartLazily(t *testing.T) {
	svc, cartRepo, productRepo := newCartFixture()

	userID := uuid.New()
	product := newProduct(t, "10.00", 5)

	productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	cartRepo.On("FindByUser", mock.Anything, userID).Return(nil, shared.ErrNotFound)
	cartRepo.On("Save", mock.Anything, mock.AnythingOfType("*cart.Cart")).Return(nil)
	cartRepo.On("FindItem", mock.Anything, mock.Anything, product.ID).Return(nil, shared.ErrNotFound)
	cartRepo.On("SaveItem", mock.Anything, mock.AnythingOfType("*cart.Item")).Return(nil)
	cartRepo.On("Touch", mock.Anything, mock.Anything).Return(nil)
	cartRepo.On("FindItemsWithProduct", mock.Anything, mock.Anything).Return([]cart.ItemDetail{}, nil)

	_, err := svc.AddItem(context.Background(), userID, AddItemRequest{ProductID: product.ID, Quantity: 2})
	require.NoError(t, err)

	cartRepo.AssertCalled(t, "Save", mock.Anything, mock.AnythingOfType("*cart.Cart"))
}

func TestAddItem_MergesExistingLine(t *testing.T) {
	svc, cartRepo, productRepo := newCartFixture()

	userID := uuid.New()
	userCart := cart.NewCart(userID)
	product := newProduct(t, "10.00", 5)

	existing, err := cart.NewItem(userCart.ID, product.ID, 2, product.SalePrice)
	require.NoError(t, err)

	productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	cartRepo.On("FindByUser", mock.Anything, userID).Return(userCart, nil)
	cartRepo.On("FindItem", mock.Anything, userCart.ID, product.ID).Return(existing, nil)
	cartRepo.On("SaveItem", mock.Anything, existing).Return(nil)
	cartRepo.On("Touch", mock.Anything, userCart.ID).Return(nil)
	cartRepo.On("FindItemsWithProduct", mock.Anything, userCart.ID).Return([]cart.ItemDetail{}, nil)

	_, err = svc.AddItem(context.Background(), userID, AddItemRequest{ProductID: product.ID, Quantity: 3})
	require.NoError(t, err)
	assert.Equal(t, 5, existing.Quantity)
}

func TestAddItem_MergedQuantityExceedsStock(t *testing.T) {
	svc, cartRepo, productRepo := newCartFixture()

	userID := uuid.New()
	userCart := cart.NewCart(userID)
	product := newProduct(t, "10.00", 4)

	existing, err := cart.NewItem(userCart.ID, product.ID, 2, product.SalePrice)
	require.NoError(t, err)

	productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	cartRepo.On("FindByUser", mock.Anything, userID).Return(userCart, nil)
	cartRepo.On("FindItem", mock.Anything, userCart.ID, product.ID).Return(existing, nil)

	_, err = svc.AddItem(context.Background(), userID, AddItemRequest{ProductID: product.ID, Quantity: 3})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INSUFFICIENT_STOCK", domainErr.Code)
	assert.Equal(t, 2, existing.Quantity)
	cartRepo.AssertNotCalled(t, "SaveItem", mock.Anything, mock.Anything)
}

func TestAddItem_UnsellableProduct(t *testing.T) {
	svc, cartRepo, productRepo := newCartFixture()

	userID := uuid.New()
	product := newProduct(t, "10.00", 5)
	product.Discontinue()

	productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)

	_, err := svc.AddItem(context.Background(), userID, AddItemRequest{ProductID: product.ID, Quantity: 1})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_STATE", domainErr.Code)
	cartRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestUpdateItem_ForeignLineRejected(t *testing.T) {
	svc, cartRepo, _ := newCartFixture()

	userID := uuid.New()
	userCart := cart.NewCart(userID)

	otherCart := cart.NewCart(uuid.New())
	foreign, err := cart.NewItem(otherCart.ID, uuid.New(), 1, valueobject.Zero())
	require.NoError(t, err)

	cartRepo.On("FindByUser", mock.Anything, userID).Return(userCart, nil)
	cartRepo.On("FindItemByID", mock.Anything, foreign.ID).Return(foreign, nil)

	_, err = svc.UpdateItem(context.Background(), userID, foreign.ID, UpdateItemRequest{Quantity: 2})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "FORBIDDEN", domainErr.Code)
}

func TestEmpty_MissingCartIsNoOp(t *testing.T) {
	svc, cartRepo, _ := newCartFixture()

	userID := uuid.New()
	cartRepo.On("FindByUser", mock.Anything, userID).Return(nil, shared.ErrNotFound)

	require.NoError(t, svc.Empty(context.Background(), userID))
	cartRepo.AssertNotCalled(t, "DeleteItems", mock.Anything, mock.Anything)
}

func TestEmpty_DeletesAllLines(t *testing.T) {
	svc, cartRepo, _ := newCartFixture()

	userID := uuid.New()
	userCart := cart.NewCart(userID)
	cartRepo.On("FindByUser", mock.Anything, userID).Return(userCart, nil)
	cartRepo.On("DeleteItems", mock.Anything, userCart.ID).Return(nil)
	cartRepo.On("Touch", mock.Anything, userCart.ID).Return(nil)

	require.NoError(t, svc.Empty(context.Background(), userID))
	cartRepo.AssertExpectations(t)
}
