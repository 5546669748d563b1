package report

import (
	"context"
	"fmt"
	"time"

	"github.com/willy-peters/SmartPOS/internal/domain/catalog"
	"github.com/willy-peters/SmartPOS/internal/domain/identity"
	domreport "github.com/willy-peters/SmartPOS/internal/domain/report"
	"github.com/willy-peters/SmartPOS/internal/domain/shared"
	"github.com/willy-peters/SmartPOS/internal/infrastructure/cache"
	"go.uber.org/zap"
)

// ReportService answers aggregate queries over the sale history. Every
// operation is admin-only; results are served through a short-TTL cache so
// repeated dashboard polls do not hammer the database.
type ReportService struct {
	reports  domreport.Repository
	products catalog.ProductRepository
	cache    cache.ReportCache
	topLimit int
	logger   *zap.Logger
}

// NewReportService creates a new ReportService
func NewReportService(reports domreport.Repository, products catalog.ProductRepository, reportCache cache.ReportCache, topLimit int, logger *zap.Logger) *ReportService {
	if topLimit <= 0 {
		topLimit = 10
	}
	return &ReportService{
		reports:  reports,
		products: products,
		cache:    reportCache,
		topLimit: topLimit,
		logger:   logger,
	}
}

// SalesSummary buckets completed sales by granularity over the window
func (s *ReportService) SalesSummary(ctx context.Context, principal identity.Principal, window domreport.Window, granularity domreport.Granularity, filter domreport.Filter) ([]domreport.SummaryBucket, error) {
	if !principal.Role.CanViewReports() {
		return nil, shared.ErrForbidden
	}
	if !granularity.IsValid() {
		return nil, shared.NewDomainError("INVALID_GRANULARITY", "Granularity must be day, week or month")
	}
	if err := window.Validate(); err != nil {
		return nil, err
	}

	key := fmt.Sprintf("summary:%s:%s:%s", granularity, windowKey(window), filterKey(filter))
	var cached []domreport.SummaryBucket
	if hit, err := s.cache.Get(ctx, key, &cached); err != nil {
		s.logger.Warn("Report cache read failed", zap.String("key", key), zap.Error(err))
	} else if hit {
		return cached, nil
	}

	buckets, err := s.reports.SalesSummary(ctx, window, granularity, filter)
	if err != nil {
		return nil, err
	}
	s.cacheSet(ctx, key, buckets)
	return buckets, nil
}

// TopProducts ranks products by revenue over completed sales in the window
func (s *ReportService) TopProducts(ctx context.Context, principal identity.Principal, window domreport.Window, limit int) ([]domreport.ProductSales, error) {
	if !principal.Role.CanViewReports() {
		return nil, shared.ErrForbidden
	}
	if err := window.Validate(); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 100 {
		limit = s.topLimit
	}

	key := fmt.Sprintf("top-products:%s:%d", windowKey(window), limit)
	var cached []domreport.ProductSales
	if hit, err := s.cache.Get(ctx, key, &cached); err != nil {
		s.logger.Warn("Report cache read failed", zap.String("key", key), zap.Error(err))
	} else if hit {
		return cached, nil
	}

	products, err := s.reports.TopProducts(ctx, window, limit)
	if err != nil {
		return nil, err
	}
	s.cacheSet(ctx, key, products)
	return products, nil
}

// CashierPerformance aggregates completed sales per cashier in the window
func (s *ReportService) CashierPerformance(ctx context.Context, principal identity.Principal, window domreport.Window, filter domreport.Filter) ([]domreport.CashierPerformance, error) {
	if !principal.Role.CanViewReports() {
		return nil, shared.ErrForbidden
	}
	if err := window.Validate(); err != nil {
		return nil, err
	}

	key := fmt.Sprintf("cashier-performance:%s:%s", windowKey(window), filterKey(filter))
	var cached []domreport.CashierPerformance
	if hit, err := s.cache.Get(ctx, key, &cached); err != nil {
		s.logger.Warn("Report cache read failed", zap.String("key", key), zap.Error(err))
	} else if hit {
		return cached, nil
	}

	performance, err := s.reports.CashierPerformance(ctx, window, filter)
	if err != nil {
		return nil, err
	}
	s.cacheSet(ctx, key, performance)
	return performance, nil
}

// InventoryStatus returns a point-in-time stock view of the catalog.
// Stock levels move with every sale, so this view is never cached.
func (s *ReportService) InventoryStatus(ctx context.Context, principal identity.Principal) ([]domreport.InventoryStatus, error) {
	if !principal.Role.CanViewReports() {
		return nil, shared.ErrForbidden
	}

	filter := shared.DefaultFilter()
	filter.Page = 0
	filter.PageSize = 0
	filter.OrderBy = "name"
	filter.OrderDir = "asc"

	products, err := s.products.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	statuses := make([]domreport.InventoryStatus, len(products))
	for i, p := range products {
		statuses[i] = domreport.InventoryStatus{
			ProductID:         p.ID,
			ProductName:       p.Name,
			ProductSKU:        p.SKU,
			StockQuantity:     p.StockQuantity,
			LowStockThreshold: p.LowStockThreshold,
			LowStock:          p.IsLowStock(),
		}
	}
	return statuses, nil
}

func (s *ReportService) cacheSet(ctx context.Context, key string, value any) {
	if err := s.cache.Set(ctx, key, value); err != nil {
		s.logger.Warn("Report cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func windowKey(w domreport.Window) string {
	return w.From.UTC().Format(time.RFC3339) + "_" + w.To.UTC().Format(time.RFC3339)
}

// filterKey folds every filter dimension into the cache key so two queries
// differing only in a filter never share an entry.
func filterKey(f domreport.Filter) string {
	cashier := "all"
	if f.CashierID != nil {
		cashier = f.CashierID.String()
	}
	product := "all"
	if f.ProductID != nil {
		product = f.ProductID.String()
	}
	return cashier + ":" + product
}
