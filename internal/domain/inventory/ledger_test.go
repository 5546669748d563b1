package inventory

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyAvailability(t *testing.T) {
	productA := uuid.New()
	productB := uuid.New()

	levels := map[uuid.UUID]Level{
		productA: {ProductID: productA, ProductName: "Coffee", Quantity: 5},
		productB: {ProductID: productB, ProductName: "Cups", Quantity: 2},
	}

	t.Run("passes when every line is covered", func(t *testing.T) {
		err := VerifyAvailability(levels, map[uuid.UUID]int{
			productA: 5,
			productB: 2,
		})
		assert.NoError(t, err)
	})

	t.Run("fails when any line is short", func(t *testing.T) {
		err := VerifyAvailability(levels, map[uuid.UUID]int{
			productA: 2,
			productB: 3,
		})
		require.Error(t, err)

		var stockErr *InsufficientStockError
		require.ErrorAs(t, err, &stockErr)
		assert.Equal(t, productB, stockErr.ProductID)
		assert.Equal(t, 3, stockErr.Requested)
		assert.Equal(t, 2, stockErr.Available)
	})

	t.Run("unknown product reports zero availability", func(t *testing.T) {
		missing := uuid.New()
		err := VerifyAvailability(levels, map[uuid.UUID]int{missing: 1})

		var stockErr *InsufficientStockError
		require.ErrorAs(t, err, &stockErr)
		assert.Equal(t, missing, stockErr.ProductID)
		assert.Equal(t, 0, stockErr.Available)
	})

	t.Run("reports the same shortfall regardless of map order", func(t *testing.T) {
		requested := map[uuid.UUID]int{
			productA: 99,
			productB: 99,
		}

		var first *InsufficientStockError
		for i := 0; i < 20; i++ {
			err := VerifyAvailability(levels, requested)
			var stockErr *InsufficientStockError
			require.ErrorAs(t, err, &stockErr)
			if first == nil {
				first = stockErr
				continue
			}
			assert.Equal(t, first.ProductID, stockErr.ProductID)
		}
	})
}

func TestInsufficientStockError_Error(t *testing.T) {
	err := &InsufficientStockError{
		ProductID:   uuid.New(),
		ProductName: "Espresso Beans 1kg",
		Requested:   4,
		Available:   1,
	}
	assert.Equal(t, "Insufficient stock for Espresso Beans 1kg. Available: 1, Requested: 4", err.Error())
}

func TestInsufficientStockError_FallsBackToID(t *testing.T) {
	id := uuid.New()
	err := &InsufficientStockError{ProductID: id, Requested: 1}
	assert.Contains(t, err.Error(), id.String())
}
