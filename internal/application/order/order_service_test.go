package order

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tienda/backend/internal/application/checkout"
	"github.com/tienda/backend/internal/domain/catalog"
	"github.com/tienda/backend/internal/domain/order"
	"github.com/tienda/backend/internal/domain/shared"
	"github.com/tienda/backend/internal/domain/shared/valueobject"
)

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

func newOrderFixture() (*Service, *MockOrderRepository, *MockProductRepository) {
	orderRepo := new(MockOrderRepository)
	productRepo := new(MockProductRepository)
	scope := checkout.NewNoOpTransactionScope(orderRepo, productRepo, nil)
	svc := NewService(orderRepo, productRepo, scope, zap.NewNop())
	return svc, orderRepo, productRepo
}

func newProduct(t *testing.T, name, price string, stock int) *catalog.Product {
	t.Helper()
	money, err := valueobject.NewMoneyFromString(price)
	require.NoError(t, err)
	product, err := catalog.NewProduct(name, money, stock, uuid.New())
	require.NoError(t, err)
	return product
}

func TestOrderCreate_Success(t *testing.T) {
	svc, orderRepo, productRepo := newOrderFixture()

	userID := uuid.New()
	product := newProduct(t, "Widget", "25.00", 10)

	productRepo.On("FindByIDs", mock.Anything, []uuid.UUID{product.ID}).
		Return([]catalog.Product{*product}, nil)
	orderRepo.On("Create", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil)
	productRepo.On("DecrementStockIfAvailable", mock.Anything, product.ID, 2).Return(true, nil)

	resp, err := svc.Create(context.Background(), CreateOrderRequest{
		UserID: userID,
		Lines:  []CreateOrderLine{{ProductID: product.ID, Quantity: 2}},
	})
	require.NoError(t, err)

	assert.Equal(t, "50.00", resp.Subtotal)
	assert.Equal(t, "9.50", resp.Tax)
	assert.Equal(t, "59.50", resp.Total)
	assert.Equal(t, string(order.StatusPending), resp.Status)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "Widget", resp.Items[0].ProductName)

	orderRepo.AssertExpectations(t)
	productRepo.AssertExpectations(t)
}

func TestOrderCreate_NoLines(t *testing.T) {
	svc, orderRepo, _ := newOrderFixture()

	resp, err := svc.Create(context.Background(), CreateOrderRequest{UserID: uuid.New()})
	assert.Nil(t, resp)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_INPUT", domainErr.Code)
	orderRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestOrderCreate_UnknownProduct(t *testing.T) {
	svc, orderRepo, productRepo := newOrderFixture()

	missing := uuid.New()
	productRepo.On("FindByIDs", mock.Anything, []uuid.UUID{missing}).
		Return([]catalog.Product{}, nil)

	resp, err := svc.Create(context.Background(), CreateOrderRequest{
		UserID: uuid.New(),
		Lines:  []CreateOrderLine{{ProductID: missing, Quantity: 1}},
	})
	assert.Nil(t, resp)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
	orderRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestOrderCreate_InsufficientStock(t *testing.T) {
	svc, orderRepo, productRepo := newOrderFixture()

	product := newProduct(t, "Widget", "25.00", 1)
	productRepo.On("FindByIDs", mock.Anything, []uuid.UUID{product.ID}).
		Return([]catalog.Product{*product}, nil)

	resp, err := svc.Create(context.Background(), CreateOrderRequest{
		UserID: uuid.New(),
		Lines:  []CreateOrderLine{{ProductID: product.ID, Quantity: 3}},
	})
	assert.Nil(t, resp)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INSUFFICIENT_STOCK", domainErr.Code)
	orderRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestOrderCreate_DecrementRace(t *testing.T) {
	svc, orderRepo, productRepo := newOrderFixture()

	product := newProduct(t, "Widget", "25.00", 5)
	productRepo.On("FindByIDs", mock.Anything, []uuid.UUID{product.ID}).
		Return([]catalog.Product{*product}, nil)
	orderRepo.On("Create", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil)
	productRepo.On("DecrementStockIfAvailable", mock.Anything, product.ID, 4).Return(false, nil)
	productRepo.On("AvailableStock", mock.Anything, product.ID).Return(2, nil)

	resp, err := svc.Create(context.Background(), CreateOrderRequest{
		UserID: uuid.New(),
		Lines:  []CreateOrderLine{{ProductID: product.ID, Quantity: 4}},
	})
	assert.Nil(t, resp)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INSUFFICIENT_STOCK", domainErr.Code)
	assert.Contains(t, domainErr.Message, "available 2")
}

func TestOrderCreate_PersistenceFailure(t *testing.T) {
	svc, orderRepo, productRepo := newOrderFixture()

	product := newProduct(t, "Widget", "25.00", 5)
	productRepo.On("FindByIDs", mock.Anything, []uuid.UUID{product.ID}).
		Return([]catalog.Product{*product}, nil)
	orderRepo.On("Create", mock.Anything, mock.AnythingOfType("*order.Order")).
		Return(errors.New("connection reset"))

	resp, err := svc.Create(context.Background(), CreateOrderRequest{
		UserID: uuid.New(),
		Lines:  []CreateOrderLine{{ProductID: product.ID, Quantity: 1}},
	})
	assert.Nil(t, resp)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "PERSISTENCE_FAILURE", domainErr.Code)
}

func TestGetByID_OwnerAccess(t *testing.T) {
	svc, orderRepo, _ := newOrderFixture()

	ownerID := uuid.New()
	o := order.NewOrder(ownerID)
	orderRepo.On("FindByID", mock.Anything, o.ID).Return(o, nil)

	resp, err := svc.GetByID(context.Background(), ownerID, false, o.ID)
	require.NoError(t, err)
	assert.Equal(t, ownerID, resp.UserID)
}

func TestGetByID_ForeignOrderRejected(t *testing.T) {
	svc, orderRepo, _ := newOrderFixture()

	o := order.NewOrder(uuid.New())
	orderRepo.On("FindByID", mock.Anything, o.ID).Return(o, nil)

	resp, err := svc.GetByID(context.Background(), uuid.New(), false, o.ID)
	assert.Nil(t, resp)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "FORBIDDEN", domainErr.Code)
}

func TestGetByID_ManagementSeesAnyOrder(t *testing.T) {
	svc, orderRepo, _ := newOrderFixture()

	o := order.NewOrder(uuid.New())
	orderRepo.On("FindByID", mock.Anything, o.ID).Return(o, nil)

	resp, err := svc.GetByID(context.Background(), uuid.New(), true, o.ID)
	require.NoError(t, err)
	assert.Equal(t, o.ID, resp.ID)
}

func TestUpdateStatus_ValidTransition(t *testing.T) {
	svc, orderRepo, _ := newOrderFixture()

	o := order.NewOrder(uuid.New())
	orderRepo.On("FindByID", mock.Anything, o.ID).Return(o, nil)
	orderRepo.On("UpdateStatus", mock.Anything, o.ID, order.StatusPaid).Return(nil)

	resp, err := svc.UpdateStatus(context.Background(), o.ID, string(order.StatusPaid))
	require.NoError(t, err)
	assert.Equal(t, string(order.StatusPaid), resp.Status)
	orderRepo.AssertExpectations(t)
}

func TestUpdateStatus_InvalidTransition(t *testing.T) {
	svc, orderRepo, _ := newOrderFixture()

	o := order.NewOrder(uuid.New())
	orderRepo.On("FindByID", mock.Anything, o.ID).Return(o, nil)

	// pending orders cannot jump straight to shipped
	resp, err := svc.UpdateStatus(context.Background(), o.ID, string(order.StatusShipped))
	assert.Nil(t, resp)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_STATE", domainErr.Code)
	orderRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}
