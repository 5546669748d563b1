package sales

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/willy-peters/SmartPOS/internal/domain/catalog"
	"github.com/willy-peters/SmartPOS/internal/domain/identity"
	dominv "github.com/willy-peters/SmartPOS/internal/domain/inventory"
	domsales "github.com/willy-peters/SmartPOS/internal/domain/sales"
	"github.com/willy-peters/SmartPOS/internal/domain/shared"
	"github.com/willy-peters/SmartPOS/internal/domain/shared/valueobject"
)

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
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) FindLowStock(ctx context.Context, thresholdOverride *int) ([]catalog.Product, error) {
	args := m.Called(ctx, thresholdOverride)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Create(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

// MockLedger is a mock implementation of inventory.Ledger
type MockLedger struct {
	mock.Mock
}

func (m *MockLedger) ReserveAndDeduct(ctx context.Context, items map[uuid.UUID]int) error {
	args := m.Called(ctx, items)
	return args.Error(0)
}

func (m *MockLedger) Replenish(ctx context.Context, productID uuid.UUID, quantity int) error {
	args := m.Called(ctx, productID, quantity)
	return args.Error(0)
}

func (m *MockLedger) IsLowStock(ctx context.Context, productID uuid.UUID) (bool, error) {
	args := m.Called(ctx, productID)
	return args.Bool(0), args.Error(1)
}

func (m *MockLedger) CurrentLevel(ctx context.Context, productID uuid.UUID) (int, error) {
	args := m.Called(ctx, productID)
	return args.Int(0), args.Error(1)
}

// MockSaleRepository is a mock implementation of sales.Repository
type MockSaleRepository struct {
	mock.Mock
}

func (m *MockSaleRepository) Create(ctx context.Context, sale *domsales.Sale) error {
	args := m.Called(ctx, sale)
	return args.Error(0)
}

func (m *MockSaleRepository) FindByID(ctx context.Context, id uuid.UUID) (*domsales.Sale, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domsales.Sale), args.Error(1)
}

func (m *MockSaleRepository) FindByTransactionID(ctx context.Context, transactionID string) (*domsales.Sale, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domsales.Sale), args.Error(1)
}

func (m *MockSaleRepository) FindAll(ctx context.Context, filter domsales.ListFilter) ([]domsales.Sale, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domsales.Sale), args.Error(1)
}

func (m *MockSaleRepository) Count(ctx context.Context, filter domsales.ListFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func newCatalogProduct(t *testing.T, sku, name string, price float64, stock int) *catalog.Product {
	t.Helper()
	cost := valueobject.NewMoneyUSD(decimal.NewFromFloat(price / 2))
	selling := valueobject.NewMoneyUSD(decimal.NewFromFloat(price))
	product, err := catalog.NewProduct(sku, name, "beverages", cost, selling, stock, 5)
	require.NoError(t, err)
	return product
}

func cashierPrincipal() identity.Principal {
	return identity.Principal{
		UserID:   uuid.New(),
		Username: "jamie",
		Role:     identity.RoleCashier,
	}
}

func adminPrincipal() identity.Principal {
	return identity.Principal{
		UserID:   uuid.New(),
		Username: "sam",
		Role:     identity.RoleAdmin,
	}
}

func newTestSaleService(products *MockProductRepository, ledger *MockLedger, salesRepo *MockSaleRepository) *SaleService {
	scope := NewNoOpTransactionScope(ledger, salesRepo)
	return NewSaleService(domsales.NewBuilder(products), salesRepo, scope, zap.NewNop())
}

func TestSaleService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("deducts stock and persists the sale with captured prices", func(t *testing.T) {
		products := new(MockProductRepository)
		ledger := new(MockLedger)
		salesRepo := new(MockSaleRepository)
		service := newTestSaleService(products, ledger, salesRepo)

		principal := cashierPrincipal()
		espresso := newCatalogProduct(t, "COF-001", "Espresso", 4.00, 20)
		croissant := newCatalogProduct(t, "BAK-001", "Croissant", 3.50, 10)

		products.On("FindByIDs", ctx, mock.Anything).
			Return([]catalog.Product{*espresso, *croissant}, nil)
		ledger.On("ReserveAndDeduct", ctx, map[uuid.UUID]int{
			espresso.ID:  2,
			croissant.ID: 1,
		}).Return(nil)

		var persisted *domsales.Sale
		salesRepo.On("Create", ctx, mock.AnythingOfType("*sales.Sale")).
			Run(func(args mock.Arguments) {
				persisted = args.Get(1).(*domsales.Sale)
			}).
			Return(nil)

		response, err := service.Create(ctx, principal, CreateSaleRequest{
			Items: []CreateSaleItemInput{
				{ProductID: espresso.ID, Quantity: 2},
				{ProductID: croissant.ID, Quantity: 1},
			},
		})

		require.NoError(t, err)
		require.NotNil(t, response)
		assert.Regexp(t, `^TXN-[0-9A-F]{12}$`, response.TransactionID)
		assert.Equal(t, principal.UserID, response.CashierID)
		assert.Equal(t, "COMPLETED", response.Status)
		assert.True(t, decimal.NewFromFloat(11.50).Equal(response.TotalAmount))

		require.NotNil(t, persisted)
		require.Len(t, persisted.Items, 2)
		assert.True(t, decimal.NewFromFloat(4.00).Equal(persisted.Items[0].UnitPriceAtSale))
		assert.True(t, decimal.NewFromFloat(8.00).Equal(persisted.Items[0].LineTotal))

		ledger.AssertExpectations(t)
		salesRepo.AssertExpectations(t)
	})

	t.Run("insufficient stock aborts before the sale is persisted", func(t *testing.T) {
		products := new(MockProductRepository)
		ledger := new(MockLedger)
		salesRepo := new(MockSaleRepository)
		service := newTestSaleService(products, ledger, salesRepo)

		principal := cashierPrincipal()
		espresso := newCatalogProduct(t, "COF-001", "Espresso", 4.00, 1)

		products.On("FindByIDs", ctx, mock.Anything).
			Return([]catalog.Product{*espresso}, nil)
		ledger.On("ReserveAndDeduct", ctx, mock.Anything).
			Return(&dominv.InsufficientStockError{
				ProductID:   espresso.ID,
				ProductName: espresso.Name,
				Requested:   5,
				Available:   1,
			})

		response, err := service.Create(ctx, principal, CreateSaleRequest{
			Items: []CreateSaleItemInput{{ProductID: espresso.ID, Quantity: 5}},
		})

		assert.Nil(t, response)
		var stockErr *dominv.InsufficientStockError
		require.ErrorAs(t, err, &stockErr)
		assert.Equal(t, 1, stockErr.Available)

		salesRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("validation failure touches neither ledger nor store", func(t *testing.T) {
		products := new(MockProductRepository)
		ledger := new(MockLedger)
		salesRepo := new(MockSaleRepository)
		service := newTestSaleService(products, ledger, salesRepo)

		unknownID := uuid.New()
		products.On("FindByIDs", ctx, mock.Anything).
			Return([]catalog.Product{}, nil)

		response, err := service.Create(ctx, cashierPrincipal(), CreateSaleRequest{
			Items: []CreateSaleItemInput{{ProductID: unknownID, Quantity: 1}},
		})

		assert.Nil(t, response)
		assert.True(t, domsales.IsValidationError(err))
		ledger.AssertNotCalled(t, "ReserveAndDeduct", mock.Anything, mock.Anything)
		salesRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestSaleService_GetByID(t *testing.T) {
	ctx := context.Background()

	buildSale := func(t *testing.T, cashierID uuid.UUID) *domsales.Sale {
		t.Helper()
		sale, err := domsales.NewSale(cashierID, domsales.NewTransactionID(), &domsales.ValidatedSale{
			CashierID: cashierID,
			Lines: []domsales.ValidatedLine{{
				ProductID:   uuid.New(),
				ProductName: "Espresso",
				ProductSKU:  "COF-001",
				Quantity:    1,
				UnitPrice:   decimal.NewFromFloat(4.00),
				LineTotal:   decimal.NewFromFloat(4.00),
			}},
			TotalAmount: decimal.NewFromFloat(4.00),
		})
		require.NoError(t, err)
		return sale
	}

	t.Run("cashier reads own sale", func(t *testing.T) {
		salesRepo := new(MockSaleRepository)
		service := newTestSaleService(new(MockProductRepository), new(MockLedger), salesRepo)

		principal := cashierPrincipal()
		sale := buildSale(t, principal.UserID)
		salesRepo.On("FindByID", ctx, sale.ID).Return(sale, nil)

		response, err := service.GetByID(ctx, principal, sale.ID)

		require.NoError(t, err)
		assert.Equal(t, sale.TransactionID, response.TransactionID)
	})

	t.Run("cashier cannot read another cashier's sale", func(t *testing.T) {
		salesRepo := new(MockSaleRepository)
		service := newTestSaleService(new(MockProductRepository), new(MockLedger), salesRepo)

		sale := buildSale(t, uuid.New())
		salesRepo.On("FindByID", ctx, sale.ID).Return(sale, nil)

		response, err := service.GetByID(ctx, cashierPrincipal(), sale.ID)

		assert.Nil(t, response)
		assert.ErrorIs(t, err, shared.ErrForbidden)
	})

	t.Run("admin reads any sale", func(t *testing.T) {
		salesRepo := new(MockSaleRepository)
		service := newTestSaleService(new(MockProductRepository), new(MockLedger), salesRepo)

		sale := buildSale(t, uuid.New())
		salesRepo.On("FindByID", ctx, sale.ID).Return(sale, nil)

		response, err := service.GetByID(ctx, adminPrincipal(), sale.ID)

		require.NoError(t, err)
		assert.Equal(t, sale.TransactionID, response.TransactionID)
	})

	t.Run("missing sale", func(t *testing.T) {
		salesRepo := new(MockSaleRepository)
		service := newTestSaleService(new(MockProductRepository), new(MockLedger), salesRepo)

		saleID := uuid.New()
		salesRepo.On("FindByID", ctx, saleID).Return(nil, shared.ErrNotFound)

		response, err := service.GetByID(ctx, adminPrincipal(), saleID)

		assert.Nil(t, response)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestSaleService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("cashier is always restricted to own sales", func(t *testing.T) {
		salesRepo := new(MockSaleRepository)
		service := newTestSaleService(new(MockProductRepository), new(MockLedger), salesRepo)

		principal := cashierPrincipal()
		otherCashier := uuid.New()

		salesRepo.On("FindAll", ctx, mock.MatchedBy(func(filter domsales.ListFilter) bool {
			return filter.CashierID != nil && *filter.CashierID == principal.UserID
		})).Return([]domsales.Sale{}, nil)
		salesRepo.On("Count", ctx, mock.Anything).Return(int64(0), nil)

		// Requesting another cashier's sales is silently overridden.
		_, err := service.List(ctx, principal, ListSalesRequest{CashierID: &otherCashier})

		require.NoError(t, err)
		salesRepo.AssertExpectations(t)
	})

	t.Run("admin filter passes through and page size is capped", func(t *testing.T) {
		salesRepo := new(MockSaleRepository)
		service := newTestSaleService(new(MockProductRepository), new(MockLedger), salesRepo)

		salesRepo.On("FindAll", ctx, mock.MatchedBy(func(filter domsales.ListFilter) bool {
			return filter.CashierID == nil && filter.PageSize == 20
		})).Return([]domsales.Sale{}, nil)
		salesRepo.On("Count", ctx, mock.Anything).Return(int64(0), nil)

		result, err := service.List(ctx, adminPrincipal(), ListSalesRequest{PageSize: 500})

		require.NoError(t, err)
		assert.Equal(t, 20, result.PageSize)
		salesRepo.AssertExpectations(t)
	})
}
