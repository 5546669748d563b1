package sales

import (
	"context"
	"testing"

	"github.com/willy-peters/SmartPOS/internal/domain/catalog"
	"github.com/willy-peters/SmartPOS/internal/domain/shared"
	"github.com/willy-peters/SmartPOS/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
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

func newCatalogProduct(t *testing.T, name string, price float64) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct(
		"SKU-"+name,
		name,
		"",
		valueobject.ZeroUSD(),
		valueobject.NewMoneyUSD(decimal.NewFromFloat(price)),
		100,
		5,
	)
	require.NoError(t, err)
	return product
}

func TestBuilder_Build(t *testing.T) {
	ctx := context.Background()
	cashierID := uuid.New()

	t.Run("prices lines from current catalog", func(t *testing.T) {
		repo := new(MockProductRepository)
		builder := NewBuilder(repo)

		coffee := newCatalogProduct(t, "Coffee", 15.90)
		cups := newCatalogProduct(t, "Cups", 4.25)
		repo.On("FindByIDs", ctx, mock.Anything).
			Return([]catalog.Product{*coffee, *cups}, nil)

		validated, err := builder.Build(ctx, cashierID, []LineRequest{
			{ProductID: coffee.ID, Quantity: 2},
			{ProductID: cups.ID, Quantity: 1},
		})
		require.NoError(t, err)

		require.Len(t, validated.Lines, 2)
		assert.True(t, validated.Lines[0].UnitPrice.Equal(decimal.NewFromFloat(15.90)))
		assert.True(t, validated.Lines[0].LineTotal.Equal(decimal.NewFromFloat(31.80)))
		assert.True(t, validated.TotalAmount.Equal(decimal.NewFromFloat(36.05)))
		repo.AssertExpectations(t)
	})

	t.Run("merges duplicate lines preserving first position", func(t *testing.T) {
		repo := new(MockProductRepository)
		builder := NewBuilder(repo)

		coffee := newCatalogProduct(t, "Coffee", 10.00)
		cups := newCatalogProduct(t, "Cups", 2.00)
		repo.On("FindByIDs", ctx, mock.Anything).
			Return([]catalog.Product{*coffee, *cups}, nil)

		validated, err := builder.Build(ctx, cashierID, []LineRequest{
			{ProductID: coffee.ID, Quantity: 1},
			{ProductID: cups.ID, Quantity: 2},
			{ProductID: coffee.ID, Quantity: 3},
		})
		require.NoError(t, err)

		require.Len(t, validated.Lines, 2)
		assert.Equal(t, coffee.ID, validated.Lines[0].ProductID)
		assert.Equal(t, 4, validated.Lines[0].Quantity)
		assert.Equal(t, cups.ID, validated.Lines[1].ProductID)

		byProduct := validated.QuantityByProduct()
		assert.Equal(t, 4, byProduct[coffee.ID])
		assert.Equal(t, 2, byProduct[cups.ID])
	})

	t.Run("rejects empty line set", func(t *testing.T) {
		builder := NewBuilder(new(MockProductRepository))
		_, err := builder.Build(ctx, cashierID, nil)
		assert.True(t, IsValidationError(err))
	})

	t.Run("rejects more than the line cap", func(t *testing.T) {
		builder := NewBuilder(new(MockProductRepository))
		lines := make([]LineRequest, MaxLineItems+1)
		for i := range lines {
			lines[i] = LineRequest{ProductID: uuid.New(), Quantity: 1}
		}
		_, err := builder.Build(ctx, cashierID, lines)
		assert.True(t, IsValidationError(err))
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		builder := NewBuilder(new(MockProductRepository))
		_, err := builder.Build(ctx, cashierID, []LineRequest{
			{ProductID: uuid.New(), Quantity: 0},
		})
		assert.True(t, IsValidationError(err))
	})

	t.Run("rejects nil cashier", func(t *testing.T) {
		builder := NewBuilder(new(MockProductRepository))
		_, err := builder.Build(ctx, uuid.Nil, []LineRequest{
			{ProductID: uuid.New(), Quantity: 1},
		})
		assert.True(t, IsValidationError(err))
	})

	t.Run("unknown product is a validation error naming the ID", func(t *testing.T) {
		repo := new(MockProductRepository)
		builder := NewBuilder(repo)

		repo.On("FindByIDs", ctx, mock.Anything).Return([]catalog.Product{}, nil)

		missing := uuid.New()
		_, err := builder.Build(ctx, cashierID, []LineRequest{
			{ProductID: missing, Quantity: 1},
		})
		require.True(t, IsValidationError(err))
		assert.Contains(t, err.Error(), missing.String())
	})

	t.Run("inactive product is rejected", func(t *testing.T) {
		repo := new(MockProductRepository)
		builder := NewBuilder(repo)

		retired := newCatalogProduct(t, "Retired", 9.99)
		retired.Retire()
		repo.On("FindByIDs", ctx, mock.Anything).
			Return([]catalog.Product{*retired}, nil)

		_, err := builder.Build(ctx, cashierID, []LineRequest{
			{ProductID: retired.ID, Quantity: 1},
		})
		assert.True(t, IsValidationError(err))
	})
}
