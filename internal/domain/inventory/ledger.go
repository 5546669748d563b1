package inventory

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
)

// Ledger is the authoritative owner of current stock quantities. All stock
// mutation goes through ReserveAndDeduct and Replenish; no other component
// may write stock quantities directly.
type Ledger interface {
	// ReserveAndDeduct atomically decrements stock for every requested
	// product, or none of them. Availability is validated for the whole
	// request before any decrement is applied. Returns
	// *InsufficientStockError naming the first short product.
	ReserveAndDeduct(ctx context.Context, items map[uuid.UUID]int) error
	// Replenish increases stock for a product
	Replenish(ctx context.Context, productID uuid.UUID, quantity int) error
	// IsLowStock reports whether the product is at or below its threshold
	IsLowStock(ctx context.Context, productID uuid.UUID) (bool, error)
	// CurrentLevel returns a point-in-time stock reading
	CurrentLevel(ctx context.Context, productID uuid.UUID) (int, error)
}

// InsufficientStockError reports a stock shortfall for a specific product
type InsufficientStockError struct {
	ProductID   uuid.UUID
	ProductName string
	Requested   int
	Available   int
}

// Error implements the error interface
func (e *InsufficientStockError) Error() string {
	name := e.ProductName
	if name == "" {
		name = e.ProductID.String()
	}
	return fmt.Sprintf("Insufficient stock for %s. Available: %d, Requested: %d", name, e.Available, e.Requested)
}

// Level is a point-in-time stock reading used during deduction checks
type Level struct {
	ProductID   uuid.UUID
	ProductName string
	Quantity    int
}

// VerifyAvailability checks every requested line against the given levels
// before any decrement is applied (check-all-then-apply-all). Products are
// examined in ascending ID order so the reported shortfall is deterministic
// under identical state.
func VerifyAvailability(levels map[uuid.UUID]Level, requested map[uuid.UUID]int) error {
	ids := make([]uuid.UUID, 0, len(requested))
	for id := range requested {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return ids[i].String() < ids[j].String()
	})

	for _, id := range ids {
		level, ok := levels[id]
		if !ok {
			return &InsufficientStockError{ProductID: id, Requested: requested[id], Available: 0}
		}
		if level.Quantity < requested[id] {
			return &InsufficientStockError{
				ProductID:   id,
				ProductName: level.ProductName,
				Requested:   requested[id],
				Available:   level.Quantity,
			}
		}
	}
	return nil
}
