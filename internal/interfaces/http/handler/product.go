package handler

import (
	"strconv"

	appinventory "github.com/willy-peters/SmartPOS/internal/application/inventory"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ProductHandler exposes catalog and stock endpoints
type ProductHandler struct {
	BaseHandler
	inventoryService *appinventory.InventoryService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(inventoryService *appinventory.InventoryService) *ProductHandler {
	return &ProductHandler{inventoryService: inventoryService}
}

// Create handles POST /api/v1/products
func (h *ProductHandler) Create(c *gin.Context) {
	principal, ok := h.Principal(c)
	if !ok {
		return
	}

	var req appinventory.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	product, err := h.inventoryService.CreateProduct(c.Request.Context(), principal, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, product)
}

// Update handles PATCH /api/v1/products/:id
func (h *ProductHandler) Update(c *gin.Context) {
	principal, ok := h.Principal(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	var req appinventory.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	product, err := h.inventoryService.UpdateProduct(c.Request.Context(), principal, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// Retire handles DELETE /api/v1/products/:id
func (h *ProductHandler) Retire(c *gin.Context) {
	principal, ok := h.Principal(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	if err := h.inventoryService.RetireProduct(c.Request.Context(), principal, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Get handles GET /api/v1/products/:id
func (h *ProductHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	product, err := h.inventoryService.GetProduct(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// List handles GET /api/v1/products
func (h *ProductHandler) List(c *gin.Context) {
	var req appinventory.ListProductsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	page, err := h.inventoryService.ListProducts(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Replenish handles POST /api/v1/products/:id/replenish
func (h *ProductHandler) Replenish(c *gin.Context) {
	principal, ok := h.Principal(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	var req appinventory.ReplenishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	status, err := h.inventoryService.Replenish(c.Request.Context(), principal, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, status)
}

// Stock handles GET /api/v1/products/:id/stock
func (h *ProductHandler) Stock(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	status, err := h.inventoryService.Status(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, status)
}

// LowStock handles GET /api/v1/products/low-stock?threshold=N
func (h *ProductHandler) LowStock(c *gin.Context) {
	var thresholdOverride *int
	if raw := c.Query("threshold"); raw != "" {
		threshold, err := strconv.Atoi(raw)
		if err != nil {
			h.BadRequest(c, "Threshold must be an integer")
			return
		}
		thresholdOverride = &threshold
	}

	products, err := h.inventoryService.LowStock(c.Request.Context(), thresholdOverride)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, products)
}
