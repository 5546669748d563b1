package catalog

import (
	"context"

	"github.com/willy-peters/SmartPOS/internal/domain/shared"
	"github.com/google/uuid"
)

// ProductRepository defines persistence operations for products
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Product, error)
	FindBySKU(ctx context.Context, sku string) (*Product, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	// FindLowStock returns products at or below their replenishment threshold.
	// A non-nil thresholdOverride is evaluated against every product instead
	// of the stored per-product threshold.
	FindLowStock(ctx context.Context, thresholdOverride *int) ([]Product, error)
	Create(ctx context.Context, product *Product) error
	Save(ctx context.Context, product *Product) error
}
