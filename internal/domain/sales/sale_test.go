package sales

import (
	"regexp"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testValidatedSale() *ValidatedSale {
	return &ValidatedSale{
		CashierID: uuid.New(),
		Lines: []ValidatedLine{
			{
				ProductID:   uuid.New(),
				ProductName: "Espresso Beans 1kg",
				ProductSKU:  "SKU-001",
				Quantity:    2,
				UnitPrice:   decimal.NewFromFloat(15.90),
				LineTotal:   decimal.NewFromFloat(31.80),
			},
			{
				ProductID:   uuid.New(),
				ProductName: "Paper Cups 50pk",
				ProductSKU:  "SKU-002",
				Quantity:    1,
				UnitPrice:   decimal.NewFromFloat(4.25),
				LineTotal:   decimal.NewFromFloat(4.25),
			},
		},
		TotalAmount: decimal.NewFromFloat(36.05),
	}
}

func TestNewSale(t *testing.T) {
	t.Run("builds completed sale with items and total", func(t *testing.T) {
		cashierID := uuid.New()
		validated := testValidatedSale()

		sale, err := NewSale(cashierID, NewTransactionID(), validated)
		require.NoError(t, err)

		assert.Equal(t, cashierID, sale.CashierID)
		assert.Equal(t, SaleStatusCompleted, sale.Status)
		assert.True(t, sale.IsCompleted())
		assert.Equal(t, 2, sale.ItemCount())
		assert.True(t, sale.TotalAmount.Equal(decimal.NewFromFloat(36.05)))

		for i, item := range sale.Items {
			assert.Equal(t, i, item.LineIndex)
			assert.Equal(t, sale.ID, item.SaleID)
		}
	})

	t.Run("rejects nil cashier", func(t *testing.T) {
		_, err := NewSale(uuid.Nil, NewTransactionID(), testValidatedSale())
		assert.Error(t, err)
	})

	t.Run("rejects empty transaction ID", func(t *testing.T) {
		_, err := NewSale(uuid.New(), "", testValidatedSale())
		assert.Error(t, err)
	})

	t.Run("rejects empty line set", func(t *testing.T) {
		_, err := NewSale(uuid.New(), NewTransactionID(), &ValidatedSale{})
		assert.Error(t, err)
	})
}

func TestNewTransactionID(t *testing.T) {
	pattern := regexp.MustCompile(`^TXN-[0-9A-F]{12}$`)

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewTransactionID()
		assert.Regexp(t, pattern, id)
		assert.False(t, seen[id], "generated duplicate transaction ID %s", id)
		seen[id] = true
	}
}

func TestSaleStatus(t *testing.T) {
	assert.True(t, SaleStatusCompleted.IsValid())
	assert.True(t, SaleStatusVoided.IsValid())
	assert.False(t, SaleStatus("PENDING").IsValid())
}
