package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ListFilter narrows sale listing queries. Nil fields are ignored.
type ListFilter struct {
	CashierID     *uuid.UUID
	StartDate     *time.Time
	EndDate       *time.Time
	MinAmount     *decimal.Decimal
	MaxAmount     *decimal.Decimal
	TransactionID string
	Page          int
	PageSize      int
}

// DefaultListFilter returns a filter with default pagination
func DefaultListFilter() ListFilter {
	return ListFilter{Page: 1, PageSize: 20}
}

// Repository defines persistence operations for sales. Sales are append-only;
// there are no update or delete operations.
type Repository interface {
	// Create persists a sale and its items as a single atomic unit
	Create(ctx context.Context, sale *Sale) error
	FindByID(ctx context.Context, id uuid.UUID) (*Sale, error)
	FindByTransactionID(ctx context.Context, transactionID string) (*Sale, error)
	FindAll(ctx context.Context, filter ListFilter) ([]Sale, error)
	Count(ctx context.Context, filter ListFilter) (int64, error)
}
