package report

import (
	"context"
	"time"

	"github.com/willy-peters/SmartPOS/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Granularity is the bucket width for time-series reports
type Granularity string

const (
	GranularityDay   Granularity = "day"
	GranularityWeek  Granularity = "week"
	GranularityMonth Granularity = "month"
)

// IsValid checks if the granularity is supported
func (g Granularity) IsValid() bool {
	switch g {
	case GranularityDay, GranularityWeek, GranularityMonth:
		return true
	}
	return false
}

// String returns the string representation of Granularity
func (g Granularity) String() string {
	return string(g)
}

// Window is an inclusive [From, To] reporting period
type Window struct {
	From time.Time
	To   time.Time
}

// Validate checks the window is well formed
func (w Window) Validate() error {
	if w.From.IsZero() || w.To.IsZero() {
		return shared.NewDomainError("INVALID_WINDOW", "Report window requires both start and end")
	}
	if w.To.Before(w.From) {
		return shared.NewDomainError("INVALID_WINDOW", "Report window end must not precede its start")
	}
	return nil
}

// SummaryBucket is one granularity-wide bucket of completed sales
type SummaryBucket struct {
	BucketStart      time.Time       `json:"bucket_start"`
	TotalRevenue     decimal.Decimal `json:"total_revenue"`
	TransactionCount int64           `json:"transaction_count"`
}

// ProductSales aggregates units and revenue for one product, computed from
// captured sale prices rather than current catalog prices.
type ProductSales struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	ProductSKU  string          `json:"product_sku"`
	UnitsSold   int64           `json:"units_sold"`
	Revenue     decimal.Decimal `json:"revenue"`
}

// CashierPerformance aggregates a cashier's completed sales in a window.
// AverageTicket is zero when TransactionCount is zero.
type CashierPerformance struct {
	CashierID        uuid.UUID       `json:"cashier_id"`
	CashierName      string          `json:"cashier_name"`
	TransactionCount int64           `json:"transaction_count"`
	TotalRevenue     decimal.Decimal `json:"total_revenue"`
	AverageTicket    decimal.Decimal `json:"average_ticket"`
}

// InventoryStatus is a point-in-time stock view for one product
type InventoryStatus struct {
	ProductID         uuid.UUID `json:"product_id"`
	ProductName       string    `json:"product_name"`
	ProductSKU        string    `json:"product_sku"`
	StockQuantity     int       `json:"stock_quantity"`
	LowStockThreshold int       `json:"low_stock_threshold"`
	LowStock          bool      `json:"is_low_stock"`
}

// Filter narrows report queries. Nil fields are ignored.
type Filter struct {
	CashierID *uuid.UUID
	ProductID *uuid.UUID
}

// Repository answers aggregate queries over the immutable sale history.
// All queries cover completed sales only.
type Repository interface {
	SalesSummary(ctx context.Context, window Window, granularity Granularity, filter Filter) ([]SummaryBucket, error)
	TopProducts(ctx context.Context, window Window, limit int) ([]ProductSales, error)
	CashierPerformance(ctx context.Context, window Window, filter Filter) ([]CashierPerformance, error)
}
