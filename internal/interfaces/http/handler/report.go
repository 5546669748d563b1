package handler

import (
	"time"

	appreport "github.com/willy-peters/SmartPOS/internal/application/report"
	domreport "github.com/willy-peters/SmartPOS/internal/domain/report"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ReportHandler exposes aggregate reporting endpoints. All routes are
// mounted behind the admin guard.
type ReportHandler struct {
	BaseHandler
	reportService *appreport.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *appreport.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// reportQuery is the common query shape for windowed reports
type reportQuery struct {
	From        time.Time  `form:"from" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
	To          time.Time  `form:"to" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
	Granularity string     `form:"granularity"`
	CashierID   *uuid.UUID `form:"cashier_id"`
	ProductID   *uuid.UUID `form:"product_id"`
	Limit       int        `form:"limit"`
}

func (q reportQuery) window() domreport.Window {
	return domreport.Window{From: q.From, To: q.To}
}

func (q reportQuery) filter() domreport.Filter {
	return domreport.Filter{CashierID: q.CashierID, ProductID: q.ProductID}
}

// SalesSummary handles GET /api/v1/reports/sales-summary
func (h *ReportHandler) SalesSummary(c *gin.Context) {
	principal, ok := h.Principal(c)
	if !ok {
		return
	}

	var query reportQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.HandleBindingError(c, err)
		return
	}
	granularity := domreport.Granularity(query.Granularity)
	if query.Granularity == "" {
		granularity = domreport.GranularityDay
	}

	buckets, err := h.reportService.SalesSummary(c.Request.Context(), principal, query.window(), granularity, query.filter())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, buckets)
}

// TopProducts handles GET /api/v1/reports/top-products
func (h *ReportHandler) TopProducts(c *gin.Context) {
	principal, ok := h.Principal(c)
	if !ok {
		return
	}

	var query reportQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	products, err := h.reportService.TopProducts(c.Request.Context(), principal, query.window(), query.Limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, products)
}

// CashierPerformance handles GET /api/v1/reports/cashier-performance
func (h *ReportHandler) CashierPerformance(c *gin.Context) {
	principal, ok := h.Principal(c)
	if !ok {
		return
	}

	var query reportQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	performance, err := h.reportService.CashierPerformance(c.Request.Context(), principal, query.window(), query.filter())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, performance)
}

// InventoryStatus handles GET /api/v1/reports/inventory-status
func (h *ReportHandler) InventoryStatus(c *gin.Context) {
	principal, ok := h.Principal(c)
	if !ok {
		return
	}

	statuses, err := h.reportService.InventoryStatus(c.Request.Context(), principal)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, statuses)
}
