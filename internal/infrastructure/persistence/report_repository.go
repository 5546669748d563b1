package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/willy-peters/SmartPOS/internal/domain/report"
	"github.com/willy-peters/SmartPOS/internal/domain/sales"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormReportRepository answers aggregate queries over the sale history using
// grouped SQL. Every query restricts to completed sales so voided
// transactions never contribute to totals.
type GormReportRepository struct {
	db *gorm.DB
}

// NewGormReportRepository creates a new GormReportRepository
func NewGormReportRepository(db *gorm.DB) *GormReportRepository {
	return &GormReportRepository{db: db}
}

// truncUnit validates the granularity against the DATE_TRUNC units we accept.
// The unit is interpolated into SQL, so it must come from this whitelist.
func truncUnit(g report.Granularity) (string, error) {
	switch g {
	case report.GranularityDay:
		return "day", nil
	case report.GranularityWeek:
		return "week", nil
	case report.GranularityMonth:
		return "month", nil
	}
	return "", fmt.Errorf("unsupported report granularity %q", g)
}

// SalesSummary buckets completed sales by the given granularity. Buckets with
// no sales are omitted; ordering is oldest bucket first.
func (r *GormReportRepository) SalesSummary(ctx context.Context, window report.Window, granularity report.Granularity, filter report.Filter) ([]report.SummaryBucket, error) {
	if err := window.Validate(); err != nil {
		return nil, err
	}
	unit, err := truncUnit(granularity)
	if err != nil {
		return nil, err
	}

	type row struct {
		BucketStart      time.Time
		TotalRevenue     decimal.Decimal
		TransactionCount int64
	}
	var rows []row

	query := r.db.WithContext(ctx).Table("sales").
		Select(fmt.Sprintf(`
			DATE_TRUNC('%s', created_at) as bucket_start,
			COALESCE(SUM(total_amount), 0) as total_revenue,
			COUNT(*) as transaction_count
		`, unit)).
		Where("status = ?", sales.SaleStatusCompleted).
		Where("created_at BETWEEN ? AND ?", window.From, window.To)

	if filter.CashierID != nil {
		query = query.Where("cashier_id = ?", *filter.CashierID)
	}
	if filter.ProductID != nil {
		query = query.Where(
			"EXISTS (SELECT 1 FROM sale_items si WHERE si.sale_id = sales.id AND si.product_id = ?)",
			*filter.ProductID)
	}

	if err := query.
		Group("bucket_start").
		Order("bucket_start ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	buckets := make([]report.SummaryBucket, len(rows))
	for i, b := range rows {
		buckets[i] = report.SummaryBucket{
			BucketStart:      b.BucketStart,
			TotalRevenue:     b.TotalRevenue,
			TransactionCount: b.TransactionCount,
		}
	}
	return buckets, nil
}

// TopProducts ranks products by revenue over completed sales. Ties resolve by
// units sold, then by product ID, so equal inputs always produce the same
// ranking.
func (r *GormReportRepository) TopProducts(ctx context.Context, window report.Window, limit int) ([]report.ProductSales, error) {
	if err := window.Validate(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 10
	}

	type row struct {
		ProductID   uuid.UUID
		ProductName string
		ProductSKU  string
		UnitsSold   int64
		Revenue     decimal.Decimal
	}
	var rows []row

	if err := r.db.WithContext(ctx).Table("sale_items si").
		Select(`
			si.product_id,
			MAX(si.product_name) as product_name,
			MAX(si.product_sku) as product_sku,
			COALESCE(SUM(si.quantity), 0) as units_sold,
			COALESCE(SUM(si.line_total), 0) as revenue
		`).
		Joins("JOIN sales s ON s.id = si.sale_id").
		Where("s.status = ?", sales.SaleStatusCompleted).
		Where("s.created_at BETWEEN ? AND ?", window.From, window.To).
		Group("si.product_id").
		Order("revenue DESC, units_sold DESC, si.product_id ASC").
		Limit(limit).
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	result := make([]report.ProductSales, len(rows))
	for i, p := range rows {
		result[i] = report.ProductSales{
			ProductID:   p.ProductID,
			ProductName: p.ProductName,
			ProductSKU:  p.ProductSKU,
			UnitsSold:   p.UnitsSold,
			Revenue:     p.Revenue,
		}
	}
	return result, nil
}

// CashierPerformance aggregates completed sales per cashier. The average
// ticket is computed in Go so an empty group can never divide by zero.
func (r *GormReportRepository) CashierPerformance(ctx context.Context, window report.Window, filter report.Filter) ([]report.CashierPerformance, error) {
	if err := window.Validate(); err != nil {
		return nil, err
	}

	type row struct {
		CashierID        uuid.UUID
		CashierName      string
		TransactionCount int64
		TotalRevenue     decimal.Decimal
	}
	var rows []row

	query := r.db.WithContext(ctx).Table("sales s").
		Select(`
			s.cashier_id,
			COALESCE(MAX(u.username), '') as cashier_name,
			COUNT(*) as transaction_count,
			COALESCE(SUM(s.total_amount), 0) as total_revenue
		`).
		Joins("LEFT JOIN users u ON u.id = s.cashier_id").
		Where("s.status = ?", sales.SaleStatusCompleted).
		Where("s.created_at BETWEEN ? AND ?", window.From, window.To)

	if filter.CashierID != nil {
		query = query.Where("s.cashier_id = ?", *filter.CashierID)
	}
	if filter.ProductID != nil {
		query = query.Where(
			"EXISTS (SELECT 1 FROM sale_items si WHERE si.sale_id = s.id AND si.product_id = ?)",
			*filter.ProductID)
	}

	if err := query.
		Group("s.cashier_id").
		Order("total_revenue DESC, s.cashier_id ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	// A cashier with no completed sales in the window has no group row.
	// When the query targets one cashier the caller still expects an
	// answer, so report an explicit zero.
	if len(rows) == 0 && filter.CashierID != nil {
		return r.zeroCashierPerformance(ctx, *filter.CashierID)
	}

	result := make([]report.CashierPerformance, len(rows))
	for i, c := range rows {
		perf := report.CashierPerformance{
			CashierID:        c.CashierID,
			CashierName:      c.CashierName,
			TransactionCount: c.TransactionCount,
			TotalRevenue:     c.TotalRevenue,
			AverageTicket:    decimal.Zero,
		}
		if c.TransactionCount > 0 {
			perf.AverageTicket = c.TotalRevenue.
				Div(decimal.NewFromInt(c.TransactionCount)).
				Round(2)
		}
		result[i] = perf
	}
	return result, nil
}

// zeroCashierPerformance builds the zero-sales row for a single cashier,
// resolving the username so the row matches what a grouped result would carry.
func (r *GormReportRepository) zeroCashierPerformance(ctx context.Context, cashierID uuid.UUID) ([]report.CashierPerformance, error) {
	var username string
	if err := r.db.WithContext(ctx).Table("users").
		Select("username").
		Where("id = ?", cashierID).
		Scan(&username).Error; err != nil {
		return nil, err
	}

	return []report.CashierPerformance{{
		CashierID:        cashierID,
		CashierName:      username,
		TransactionCount: 0,
		TotalRevenue:     decimal.Zero,
		AverageTicket:    decimal.Zero,
	}}, nil
}

// Ensure GormReportRepository implements Repository
var _ report.Repository = (*GormReportRepository)(nil)
