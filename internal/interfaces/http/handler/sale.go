package handler

import (
	appsales "github.com/willy-peters/SmartPOS/internal/application/sales"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SaleHandler exposes checkout and sale query endpoints
type SaleHandler struct {
	BaseHandler
	saleService *appsales.SaleService
}

// NewSaleHandler creates a new SaleHandler
func NewSaleHandler(saleService *appsales.SaleService) *SaleHandler {
	return &SaleHandler{saleService: saleService}
}

// Create handles POST /api/v1/sales
func (h *SaleHandler) Create(c *gin.Context) {
	principal, ok := h.Principal(c)
	if !ok {
		return
	}

	var req appsales.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	sale, err := h.saleService.Create(c.Request.Context(), principal, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, sale)
}

// Get handles GET /api/v1/sales/:id
func (h *SaleHandler) Get(c *gin.Context) {
	principal, ok := h.Principal(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid sale ID")
		return
	}

	sale, err := h.saleService.GetByID(c.Request.Context(), principal, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sale)
}

// GetByTransactionID handles GET /api/v1/sales/transaction/:transaction_id
func (h *SaleHandler) GetByTransactionID(c *gin.Context) {
	principal, ok := h.Principal(c)
	if !ok {
		return
	}
	transactionID := c.Param("transaction_id")
	if transactionID == "" {
		h.BadRequest(c, "Transaction ID is required")
		return
	}

	sale, err := h.saleService.GetByTransactionID(c.Request.Context(), principal, transactionID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sale)
}

// List handles GET /api/v1/sales
func (h *SaleHandler) List(c *gin.Context) {
	principal, ok := h.Principal(c)
	if !ok {
		return
	}

	var req appsales.ListSalesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	page, err := h.saleService.List(c.Request.Context(), principal, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}
