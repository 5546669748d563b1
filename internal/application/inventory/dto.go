package inventory

import (
	"time"

	"github.com/willy-peters/SmartPOS/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateProductRequest represents a request to add a catalog product
type CreateProductRequest struct {
	SKU               string          `json:"sku" binding:"required,min=1,max=100"`
	Name              string          `json:"name" binding:"required,min=1,max=200"`
	Category          string          `json:"category" binding:"max=100"`
	CostPrice         decimal.Decimal `json:"cost_price"`
	SellingPrice      decimal.Decimal `json:"selling_price" binding:"required"`
	StockQuantity     int             `json:"stock_quantity" binding:"gte=0"`
	LowStockThreshold *int            `json:"low_stock_threshold"`
}

// UpdateProductRequest represents a partial product update
type UpdateProductRequest struct {
	Name              *string          `json:"name"`
	Category          *string          `json:"category"`
	CostPrice         *decimal.Decimal `json:"cost_price"`
	SellingPrice      *decimal.Decimal `json:"selling_price"`
	LowStockThreshold *int             `json:"low_stock_threshold"`
}

// ReplenishRequest represents a stock replenishment
type ReplenishRequest struct {
	Quantity int `json:"quantity" binding:"required,gt=0"`
}

// ListProductsRequest narrows a product listing
type ListProductsRequest struct {
	Search   string `form:"search"`
	Category string `form:"category"`
	Active   *bool  `form:"active"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

// ProductResponse represents a catalog product
type ProductResponse struct {
	ID                uuid.UUID       `json:"id"`
	SKU               string          `json:"sku"`
	Name              string          `json:"name"`
	Category          string          `json:"category"`
	CostPrice         decimal.Decimal `json:"cost_price"`
	SellingPrice      decimal.Decimal `json:"selling_price"`
	StockQuantity     int             `json:"stock_quantity"`
	LowStockThreshold int             `json:"low_stock_threshold"`
	Active            bool            `json:"active"`
	LowStock          bool            `json:"is_low_stock"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// StockStatusResponse is a point-in-time stock reading for one product
type StockStatusResponse struct {
	ProductID     uuid.UUID `json:"product_id"`
	ProductName   string    `json:"product_name"`
	ProductSKU    string    `json:"product_sku"`
	StockQuantity int       `json:"stock_quantity"`
	LowStock      bool      `json:"is_low_stock"`
}

// ToProductResponse converts a domain product to its response form
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:                p.ID,
		SKU:               p.SKU,
		Name:              p.Name,
		Category:          p.Category,
		CostPrice:         p.CostPrice,
		SellingPrice:      p.SellingPrice,
		StockQuantity:     p.StockQuantity,
		LowStockThreshold: p.LowStockThreshold,
		Active:            p.Active,
		LowStock:          p.IsLowStock(),
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}
