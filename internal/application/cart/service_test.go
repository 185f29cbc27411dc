package cart

import (
	"context"
	"testing"

	"github.com/buildmart/backend/internal/domain/cart"
	"github.com/buildmart/backend/internal/domain/catalog"
	"github.com/buildmart/backend/internal/domain/inventory"
	"github.com/buildmart/backend/internal/domain/shared"
	"github.com/buildmart/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockCartLineRepository is a mock implementation of cart.CartLineRepository
type MockCartLineRepository struct {
	mock.Mock
}

func (m *MockCartLineRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]cart.CartLine, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]cart.CartLine), args.Error(1)
}

func (m *MockCartLineRepository) FindByUserAndProduct(ctx context.Context, userID, productID uuid.UUID) (*cart.CartLine, error) {
	args := m.Called(ctx, userID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.CartLine), args.Error(1)
}

func (m *MockCartLineRepository) Save(ctx context.Context, line *cart.CartLine) error {
	args := m.Called(ctx, line)
	return args.Error(0)
}

func (m *MockCartLineRepository) DeleteByUserAndProduct(ctx context.Context, userID, productID uuid.UUID) error {
	args := m.Called(ctx, userID, productID)
	return args.Error(0)
}

func (m *MockCartLineRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
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

func (m *MockProductRepository) FindBySKU(ctx context.Context, sku string) (*catalog.Product, error) {
	args := m.Called(ctx, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
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

// MockStockItemRepository is a mock implementation of inventory.StockItemRepository
type MockStockItemRepository struct {
	mock.Mock
}

func (m *MockStockItemRepository) FindByProductID(ctx context.Context, productID uuid.UUID) (*inventory.StockItem, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.StockItem), args.Error(1)
}

func (m *MockStockItemRepository) FindByProductIDForUpdate(ctx context.Context, productID uuid.UUID) (*inventory.StockItem, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.StockItem), args.Error(1)
}

func (m *MockStockItemRepository) Save(ctx context.Context, item *inventory.StockItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockStockItemRepository) Create(ctx context.Context, item *inventory.StockItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func newTestProduct(t *testing.T, name string, price float64, discount int64) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct("SKU-"+uuid.NewString()[:8], name, "TPI", "bag",
		valueobject.NewMoneyTHBFromFloat(price))
	require.NoError(t, err)
	require.NoError(t, p.SetDiscount(decimal.NewFromInt(discount)))
	return p
}

func newTestStock(t *testing.T, productID uuid.UUID, qty int64) *inventory.StockItem {
	t.Helper()
	item, err := inventory.NewStockItem(productID, qty)
	require.NoError(t, err)
	return item
}

func TestService_UpsertLine(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("adds a new line", func(t *testing.T) {
		lines := new(MockCartLineRepository)
		products := new(MockProductRepository)
		stock := new(MockStockItemRepository)
		service := NewService(lines, products, stock, zap.NewNop())

		product := newTestProduct(t, "Portland Cement 50kg", 150.00, 0)
		products.On("FindByID", ctx, product.ID).Return(product, nil)
		stock.On("FindByProductID", ctx, product.ID).Return(newTestStock(t, product.ID, 10), nil)
		lines.On("FindByUserAndProduct", ctx, userID, product.ID).Return(nil, shared.ErrNotFound)
		lines.On("Save", ctx, mock.MatchedBy(func(l *cart.CartLine) bool {
			return l.UserID == userID && l.ProductID == product.ID && l.Quantity == 3
		})).Return(nil)

		err := service.UpsertLine(ctx, userID, UpsertLineRequest{ProductID: product.ID, Quantity: 3})

		require.NoError(t, err)
		lines.AssertExpectations(t)
	})

	t.Run("replaces the quantity of an existing line", func(t *testing.T) {
		lines := new(MockCartLineRepository)
		products := new(MockProductRepository)
		stock := new(MockStockItemRepository)
		service := NewService(lines, products, stock, zap.NewNop())

		product := newTestProduct(t, "Portland Cement 50kg", 150.00, 0)
		existing, err := cart.NewCartLine(userID, product.ID, 2)
		require.NoError(t, err)

		products.On("FindByID", ctx, product.ID).Return(product, nil)
		stock.On("FindByProductID", ctx, product.ID).Return(newTestStock(t, product.ID, 10), nil)
		lines.On("FindByUserAndProduct", ctx, userID, product.ID).Return(existing, nil)
		lines.On("Save", ctx, mock.MatchedBy(func(l *cart.CartLine) bool {
			return l.ID == existing.ID && l.Quantity == 5
		})).Return(nil)

		err = service.UpsertLine(ctx, userID, UpsertLineRequest{ProductID: product.ID, Quantity: 5})

		require.NoError(t, err)
		lines.AssertExpectations(t)
	})

	t.Run("rejects quantity below one before any lookup", func(t *testing.T) {
		lines := new(MockCartLineRepository)
		products := new(MockProductRepository)
		stock := new(MockStockItemRepository)
		service := NewService(lines, products, stock, zap.NewNop())

		err := service.UpsertLine(ctx, userID, UpsertLineRequest{ProductID: uuid.New(), Quantity: 0})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_QUANTITY", domainErr.Code)
		products.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("advises when quantity exceeds stock", func(t *testing.T) {
		lines := new(MockCartLineRepository)
		products := new(MockProductRepository)
		stock := new(MockStockItemRepository)
		service := NewService(lines, products, stock, zap.NewNop())

		product := newTestProduct(t, "Portland Cement 50kg", 150.00, 0)
		products.On("FindByID", ctx, product.ID).Return(product, nil)
		stock.On("FindByProductID", ctx, product.ID).Return(newTestStock(t, product.ID, 2), nil)

		err := service.UpsertLine(ctx, userID, UpsertLineRequest{ProductID: product.ID, Quantity: 3})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "EXCEEDS_STOCK", domainErr.Code)
		lines.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("missing stock record counts as zero available", func(t *testing.T) {
		lines := new(MockCartLineRepository)
		products := new(MockProductRepository)
		stock := new(MockStockItemRepository)
		service := NewService(lines, products, stock, zap.NewNop())

		product := newTestProduct(t, "Portland Cement 50kg", 150.00, 0)
		products.On("FindByID", ctx, product.ID).Return(product, nil)
		stock.On("FindByProductID", ctx, product.ID).Return(nil, shared.ErrNotFound)

		err := service.UpsertLine(ctx, userID, UpsertLineRequest{ProductID: product.ID, Quantity: 1})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "EXCEEDS_STOCK", domainErr.Code)
	})

	t.Run("disabled product reads as not found", func(t *testing.T) {
		lines := new(MockCartLineRepository)
		products := new(MockProductRepository)
		stock := new(MockStockItemRepository)
		service := NewService(lines, products, stock, zap.NewNop())

		product := newTestProduct(t, "Portland Cement 50kg", 150.00, 0)
		product.Disable()
		products.On("FindByID", ctx, product.ID).Return(product, nil)

		err := service.UpsertLine(ctx, userID, UpsertLineRequest{ProductID: product.ID, Quantity: 1})

		require.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestService_RemoveLine(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	productID := uuid.New()

	lines := new(MockCartLineRepository)
	service := NewService(lines, new(MockProductRepository), new(MockStockItemRepository), zap.NewNop())

	// Removing an absent line is not an error
	lines.On("DeleteByUserAndProduct", ctx, userID, productID).Return(nil)

	require.NoError(t, service.RemoveLine(ctx, userID, productID))
	lines.AssertExpectations(t)
}

func TestService_List(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("joins lines with product data and totals them", func(t *testing.T) {
		lines := new(MockCartLineRepository)
		products := new(MockProductRepository)
		stock := new(MockStockItemRepository)
		service := NewService(lines, products, stock, zap.NewNop())

		cement := newTestProduct(t, "Portland Cement 50kg", 150.00, 0)
		rebar := newTestProduct(t, "Rebar 12mm", 480.00, 5)

		line1, err := cart.NewCartLine(userID, cement.ID, 2)
		require.NoError(t, err)
		line2, err := cart.NewCartLine(userID, rebar.ID, 1)
		require.NoError(t, err)

		lines.On("FindByUser", ctx, userID).Return([]cart.CartLine{*line1, *line2}, nil)
		products.On("FindByIDs", ctx, []uuid.UUID{cement.ID, rebar.ID}).
			Return([]catalog.Product{*cement, *rebar}, nil)
		stock.On("FindByProductID", ctx, cement.ID).Return(newTestStock(t, cement.ID, 10), nil)
		stock.On("FindByProductID", ctx, rebar.ID).Return(newTestStock(t, rebar.ID, 4), nil)

		resp, err := service.List(ctx, userID)

		require.NoError(t, err)
		require.Len(t, resp.Lines, 2)
		assert.Equal(t, "Portland Cement 50kg", resp.Lines[0].ProductName)
		assert.InDelta(t, 300.00, resp.Lines[0].LineSubtotal, 0.001)
		assert.Equal(t, int64(10), resp.Lines[0].AvailableStock)
		assert.InDelta(t, 456.00, resp.Lines[1].LineSubtotal, 0.001)
		assert.InDelta(t, 756.00, resp.Subtotal, 0.001)
	})

	t.Run("skips products withdrawn since they were added", func(t *testing.T) {
		lines := new(MockCartLineRepository)
		products := new(MockProductRepository)
		stock := new(MockStockItemRepository)
		service := NewService(lines, products, stock, zap.NewNop())

		gone := newTestProduct(t, "Discontinued Tile", 80.00, 0)
		gone.Disable()

		line, err := cart.NewCartLine(userID, gone.ID, 4)
		require.NoError(t, err)

		lines.On("FindByUser", ctx, userID).Return([]cart.CartLine{*line}, nil)
		products.On("FindByIDs", ctx, []uuid.UUID{gone.ID}).Return([]catalog.Product{*gone}, nil)

		resp, err := service.List(ctx, userID)

		require.NoError(t, err)
		assert.Empty(t, resp.Lines)
		assert.Zero(t, resp.Subtotal)
	})

	t.Run("empty cart returns an empty response", func(t *testing.T) {
		lines := new(MockCartLineRepository)
		service := NewService(lines, new(MockProductRepository), new(MockStockItemRepository), zap.NewNop())

		lines.On("FindByUser", ctx, userID).Return([]cart.CartLine{}, nil)

		resp, err := service.List(ctx, userID)

		require.NoError(t, err)
		assert.Empty(t, resp.Lines)
		assert.Zero(t, resp.Subtotal)
	})
}
