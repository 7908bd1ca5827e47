package checkout

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tienda/backend/internal/domain/cart"
	"github.com/tienda/backend/internal/domain/catalog"
	"github.com/tienda/backend/internal/domain/order"
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
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
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

// MockOrderRepository is a mock implementation of order.Repository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Create(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]order.Order, error) {
	args := m.Called(ctx, userID, filter)
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]order.Order, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status order.Status) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func mustMoney(t *testing.T, amount string) valueobject.Money {
	t.Helper()
	m, err := valueobject.NewMoneyFromString(amount)
	require.NoError(t, err)
	return m
}

func detail(t *testing.T, cartID, productID uuid.UUID, quantity int, snapshot string, productPrice string, stock int) cart.ItemDetail {
	t.Helper()
	item, err := cart.NewItem(cartID, productID, quantity, mustMoney(t, snapshot))
	require.NoError(t, err)
	return cart.ItemDetail{
		Item:          *item,
		ProductName:   "Test Product",
		ProductPrice:  mustMoney(t, productPrice),
		ProductStock:  stock,
		ProductStatus: string(catalog.ProductStatusActive),
	}
}

func newCheckoutFixture() (*Service, *MockCartRepository, *MockProductRepository, *MockOrderRepository) {
	cartRepo := new(MockCartRepository)
	productRepo := new(MockProductRepository)
	orderRepo := new(MockOrderRepository)
	scope := NewNoOpTransactionScope(orderRepo, productRepo, cartRepo)
	svc := NewService(cartRepo, scope, zap.NewNop())
	return svc, cartRepo, productRepo, orderRepo
}

func TestCheckout_Success(t *testing.T) {
	svc, cartRepo, productRepo, orderRepo := newCheckoutFixture()

	userID := uuid.New()
	userCart := cart.NewCart(userID)
	productID := uuid.New()

	// 3 units at 10.00, 5 in stock
	details := []cart.ItemDetail{detail(t, userCart.ID, productID, 3, "10.00", "10.00", 5)}

	cartRepo.On("FindByUser", mock.Anything, userID).Return(userCart, nil)
	cartRepo.On("FindItemsWithProduct", mock.Anything, userCart.ID).Return(details, nil)
	orderRepo.On("Create", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil)
	productRepo.On("DecrementStockIfAvailable", mock.Anything, productID, 3).Return(true, nil)
	cartRepo.On("DeleteItems", mock.Anything, userCart.ID).Return(nil)
	cartRepo.On("Touch", mock.Anything, userCart.ID).Return(nil)

	result, err := svc.Checkout(context.Background(), userID)
	require.NoError(t, err)
	require.NotNil(t, result)

	// 30.00 subtotal, 19% tax, 35.70 total
	assert.Equal(t, "30.00", result.Subtotal.String())
	assert.Equal(t, "5.70", result.Tax.String())
	assert.Equal(t, "35.70", result.Total.String())
	assert.Equal(t, 1, result.ItemsCount)

	cartRepo.AssertExpectations(t)
	productRepo.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
}

func TestCheckout_NoCart(t *testing.T) {
	svc, cartRepo, _, orderRepo := newCheckoutFixture()

	userID := uuid.New()
	cartRepo.On("FindByUser", mock.Anything, userID).Return(nil, shared.ErrNotFound)

	result, err := svc.Checkout(context.Background(), userID)
	assert.Nil(t, result)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "CART_NOT_FOUND", domainErr.Code)
	orderRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCheckout_EmptyCart(t *testing.T) {
	svc, cartRepo, _, orderRepo := newCheckoutFixture()

	userID := uuid.New()
	userCart := cart.NewCart(userID)
	cartRepo.On("FindByUser", mock.Anything, userID).Return(userCart, nil)
	cartRepo.On("FindItemsWithProduct", mock.Anything, userCart.ID).Return([]cart.ItemDetail{}, nil)

	result, err := svc.Checkout(context.Background(), userID)
	assert.Nil(t, result)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "EMPTY_CART", domainErr.Code)
	orderRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCheckout_InsufficientStockFastFail(t *testing.T) {
	svc, cartRepo, _, orderRepo := newCheckoutFixture()

	userID := uuid.New()
	userCart := cart.NewCart(userID)
	productID := uuid.New()

	// requested 3, only 2 in stock
	details := []cart.ItemDetail{detail(t, userCart.ID, productID, 3, "10.00", "10.00", 2)}

	cartRepo.On("FindByUser", mock.Anything, userID).Return(userCart, nil)
	cartRepo.On("FindItemsWithProduct", mock.Anything, userCart.ID).Return(details, nil)

	result, err := svc.Checkout(context.Background(), userID)
	assert.Nil(t, result)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INSUFFICIENT_STOCK", domainErr.Code)
	assert.Contains(t, domainErr.Message, "requested 3")
	assert.Contains(t, domainErr.Message, "available 2")

	// Nothing written: the failure happened before the transaction
	orderRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	cartRepo.AssertNotCalled(t, "DeleteItems", mock.Anything, mock.Anything)
}

func TestCheckout_DecrementRace(t *testing.T) {
	svc, cartRepo, productRepo, orderRepo := newCheckoutFixture()

	userID := uuid.New()
	userCart := cart.NewCart(userID)
	productID := uuid.New()

	// Snapshot says 5 in stock, but a competing checkout wins the decrement
	details := []cart.ItemDetail{detail(t, userCart.ID, productID, 3, "10.00", "10.00", 5)}

	cartRepo.On("FindByUser", mock.Anything, userID).Return(userCart, nil)
	cartRepo.On("FindItemsWithProduct", mock.Anything, userCart.ID).Return(details, nil)
	orderRepo.On("Create", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil)
	productRepo.On("DecrementStockIfAvailable", mock.Anything, productID, 3).Return(false, nil)
	productRepo.On("AvailableStock", mock.Anything, productID).Return(1, nil)

	result, err := svc.Checkout(context.Background(), userID)
	assert.Nil(t, result)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INSUFFICIENT_STOCK", domainErr.Code)
	assert.Contains(t, domainErr.Message, "available 1")

	// Cart untouched when the transaction fails
	cartRepo.AssertNotCalled(t, "DeleteItems", mock.Anything, mock.Anything)
	cartRepo.AssertNotCalled(t, "Touch", mock.Anything, mock.Anything)
}

func TestCheckout_NilSnapshotFallsBackToCatalogPrice(t *testing.T) {
	svc, cartRepo, productRepo, orderRepo := newCheckoutFixture()

	userID := uuid.New()
	userCart := cart.NewCart(userID)
	productID := uuid.New()

	// Line without a price snapshot: checkout uses the catalog price
	d := detail(t, userCart.ID, productID, 2, "1.00", "7.50", 10)
	d.UnitPrice = nil
	details := []cart.ItemDetail{d}

	cartRepo.On("FindByUser", mock.Anything, userID).Return(userCart, nil)
	cartRepo.On("FindItemsWithProduct", mock.Anything, userCart.ID).Return(details, nil)
	orderRepo.On("Create", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil)
	productRepo.On("DecrementStockIfAvailable", mock.Anything, productID, 2).Return(true, nil)
	cartRepo.On("DeleteItems", mock.Anything, userCart.ID).Return(nil)
	cartRepo.On("Touch", mock.Anything, userCart.ID).Return(nil)

	result, err := svc.Checkout(context.Background(), userID)
	require.NoError(t, err)

	// 2 x 7.50 = 15.00 subtotal, 2.85 tax
	assert.Equal(t, "15.00", result.Subtotal.String())
	assert.Equal(t, "2.85", result.Tax.String())
	assert.Equal(t, "17.85", result.Total.String())
}

func TestCheckout_SnapshotPriceSurvivesCatalogEdit(t *testing.T) {
	svc, cartRepo, productRepo, orderRepo := newCheckoutFixture()

	userID := uuid.New()
	userCart := cart.NewCart(userID)
	productID := uuid.New()

	// Snapshot captured at 10.00; catalog price has since doubled
	details := []cart.ItemDetail{detail(t, userCart.ID, productID, 1, "10.00", "20.00", 5)}

	cartRepo.On("FindByUser", mock.Anything, userID).Return(userCart, nil)
	cartRepo.On("FindItemsWithProduct", mock.Anything, userCart.ID).Return(details, nil)
	orderRepo.On("Create", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil)
	productRepo.On("DecrementStockIfAvailable", mock.Anything, productID, 1).Return(true, nil)
	cartRepo.On("DeleteItems", mock.Anything, userCart.ID).Return(nil)
	cartRepo.On("Touch", mock.Anything, userCart.ID).Return(nil)

	result, err := svc.Checkout(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, "10.00", result.Subtotal.String())
}

func TestCheckout_PersistenceFailure(t *testing.T) {
	svc, cartRepo, _, orderRepo := newCheckoutFixture()

	userID := uuid.New()
	userCart := cart.NewCart(userID)
	productID := uuid.New()

	details := []cart.ItemDetail{detail(t, userCart.ID, productID, 1, "10.00", "10.00", 5)}

	cartRepo.On("FindByUser", mock.Anything, userID).Return(userCart, nil)
	cartRepo.On("FindItemsWithProduct", mock.Anything, userCart.ID).Return(details, nil)
	orderRepo.On("Create", mock.Anything, mock.AnythingOfType("*order.Order")).Return(errors.New("connection reset"))

	result, err := svc.Checkout(context.Background(), userID)
	assert.Nil(t, result)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "PERSISTENCE_FAILURE", domainErr.Code)
}

func TestCheckout_MultiLineTotals(t *testing.T) {
	svc, cartRepo, productRepo, orderRepo := newCheckoutFixture()

	userID := uuid.New()
	userCart := cart.NewCart(userID)
	productA := uuid.New()
	productB := uuid.New()

	details := []cart.ItemDetail{
		detail(t, userCart.ID, productA, 2, "19.99", "19.99", 10),
		detail(t, userCart.ID, productB, 1, "0.01", "0.01", 1),
	}

	cartRepo.On("FindByUser", mock.Anything, userID).Return(userCart, nil)
	cartRepo.On("FindItemsWithProduct", mock.Anything, userCart.ID).Return(details, nil)
	orderRepo.On("Create", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil)
	productRepo.On("DecrementStockIfAvailable", mock.Anything, productA, 2).Return(true, nil)
	productRepo.On("DecrementStockIfAvailable", mock.Anything, productB, 1).Return(true, nil)
	cartRepo.On("DeleteItems", mock.Anything, userCart.ID).Return(nil)
	cartRepo.On("Touch", mock.Anything, userCart.ID).Return(nil)

	result, err := svc.Checkout(context.Background(), userID)
	require.NoError(t, err)

	// 39.98 + 0.01 = 39.99 subtotal; tax 7.5981 rounds to 7.60
	assert.Equal(t, "39.99", result.Subtotal.String())
	assert.Equal(t, "7.60", result.Tax.String())
	assert.Equal(t, "47.59", result.Total.String())
	assert.Equal(t, 2, result.ItemsCount)
}
