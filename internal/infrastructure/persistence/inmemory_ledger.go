package persistence

import (
	"context"
	"sync"

	"github.com/willy-peters/SmartPOS/internal/domain/inventory"
	"github.com/willy-peters/SmartPOS/internal/domain/shared"
	"github.com/google/uuid"
)

// InMemoryLedger implements inventory.Ledger with an in-process map guarded
// by a mutex. Used in tests and single-node demos; the whole deduction runs
// under one lock so a request either applies completely or not at all.
type InMemoryLedger struct {
	mu     sync.Mutex
	levels map[uuid.UUID]inventory.Level
	low    map[uuid.UUID]int
}

// NewInMemoryLedger creates an empty in-memory ledger
func NewInMemoryLedger() *InMemoryLedger {
	return &InMemoryLedger{
		levels: make(map[uuid.UUID]inventory.Level),
		low:    make(map[uuid.UUID]int),
	}
}

// SetLevel seeds or overwrites the stock level for a product
func (l *InMemoryLedger) SetLevel(productID uuid.UUID, name string, quantity, lowStockThreshold int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.levels[productID] = inventory.Level{
		ProductID:   productID,
		ProductName: name,
		Quantity:    quantity,
	}
	l.low[productID] = lowStockThreshold
}

// ReserveAndDeduct atomically decrements stock for every requested product,
// or none of them.
func (l *InMemoryLedger) ReserveAndDeduct(ctx context.Context, items map[uuid.UUID]int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if err := inventory.VerifyAvailability(l.levels, items); err != nil {
		return err
	}
	for id, qty := range items {
		level := l.levels[id]
		level.Quantity -= qty
		l.levels[id] = level
	}
	return nil
}

// Replenish increases stock for a product
func (l *InMemoryLedger) Replenish(ctx context.Context, productID uuid.UUID, quantity int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Replenishment quantity must be positive")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	level, ok := l.levels[productID]
	if !ok {
		return shared.ErrNotFound
	}
	level.Quantity += quantity
	l.levels[productID] = level
	return nil
}

// IsLowStock reports whether the product is at or below its threshold
func (l *InMemoryLedger) IsLowStock(ctx context.Context, productID uuid.UUID) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	level, ok := l.levels[productID]
	if !ok {
		return false, shared.ErrNotFound
	}
	return level.Quantity <= l.low[productID], nil
}

// CurrentLevel returns a point-in-time stock reading
func (l *InMemoryLedger) CurrentLevel(ctx context.Context, productID uuid.UUID) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	level, ok := l.levels[productID]
	if !ok {
		return 0, shared.ErrNotFound
	}
	return level.Quantity, nil
}

// Ensure InMemoryLedger implements Ledger
var _ inventory.Ledger = (*InMemoryLedger)(nil)
