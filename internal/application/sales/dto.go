package sales

import (
	"time"

	domsales "github.com/willy-peters/SmartPOS/internal/domain/sales"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateSaleItemInput is one requested line in a checkout
type CreateSaleItemInput struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,gt=0"`
}

// CreateSaleRequest represents a checkout request
type CreateSaleRequest struct {
	Items []CreateSaleItemInput `json:"items" binding:"required,min=1,max=100,dive"`
}

// SaleItemResponse is one line of a completed sale
type SaleItemResponse struct {
	ProductID       uuid.UUID       `json:"product_id"`
	ProductName     string          `json:"product_name"`
	ProductSKU      string          `json:"product_sku"`
	Quantity        int             `json:"quantity"`
	UnitPriceAtSale decimal.Decimal `json:"unit_price_at_sale"`
	LineTotal       decimal.Decimal `json:"line_total"`
}

// SaleResponse represents a completed sale
type SaleResponse struct {
	ID            uuid.UUID          `json:"id"`
	TransactionID string             `json:"transaction_id"`
	CashierID     uuid.UUID          `json:"cashier_id"`
	Status        string             `json:"status"`
	TotalAmount   decimal.Decimal    `json:"total_amount"`
	Items         []SaleItemResponse `json:"items"`
	CreatedAt     time.Time          `json:"created_at"`
}

// ListSalesRequest narrows a sale listing
type ListSalesRequest struct {
	CashierID     *uuid.UUID       `form:"cashier_id"`
	StartDate     *time.Time       `form:"start_date" time_format:"2006-01-02T15:04:05Z07:00"`
	EndDate       *time.Time       `form:"end_date" time_format:"2006-01-02T15:04:05Z07:00"`
	MinAmount     *decimal.Decimal `form:"min_amount"`
	MaxAmount     *decimal.Decimal `form:"max_amount"`
	TransactionID string           `form:"transaction_id"`
	Page          int              `form:"page"`
	PageSize      int              `form:"page_size"`
}

// ToSaleResponse converts a domain sale to its response form
func ToSaleResponse(sale *domsales.Sale) SaleResponse {
	items := make([]SaleItemResponse, len(sale.Items))
	for i, item := range sale.Items {
		items[i] = SaleItemResponse{
			ProductID:       item.ProductID,
			ProductName:     item.ProductName,
			ProductSKU:      item.ProductSKU,
			Quantity:        item.Quantity,
			UnitPriceAtSale: item.UnitPriceAtSale,
			LineTotal:       item.LineTotal,
		}
	}
	return SaleResponse{
		ID:            sale.ID,
		TransactionID: sale.TransactionID,
		CashierID:     sale.CashierID,
		Status:        sale.Status.String(),
		TotalAmount:   sale.TotalAmount,
		Items:         items,
		CreatedAt:     sale.CreatedAt,
	}
}
