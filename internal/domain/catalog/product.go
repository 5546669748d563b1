package catalog

import (
	"strings"
	"time"

	"github.com/willy-peters/SmartPOS/internal/domain/shared"
	"github.com/willy-peters/SmartPOS/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// DefaultLowStockThreshold is applied when a product is created without an
// explicit replenishment threshold.
const DefaultLowStockThreshold = 5

// Product is the aggregate root for catalog entries. Stock quantity is only
// mutated through the inventory ledger; catalog operations own the rest.
type Product struct {
	shared.BaseAggregateRoot
	SKU               string          `gorm:"type:varchar(100);not null;uniqueIndex"`
	Name              string          `gorm:"type:varchar(200);not null"`
	Category          string          `gorm:"type:varchar(100);index"`
	CostPrice         decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	SellingPrice      decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	StockQuantity     int             `gorm:"not null;default:0;index"`
	LowStockThreshold int             `gorm:"not null;default:5"`
	Active            bool            `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new catalog product. SKUs are normalized to upper case.
func NewProduct(sku, name, category string, costPrice, sellingPrice valueobject.Money, stockQuantity, lowStockThreshold int) (*Product, error) {
	sku = strings.ToUpper(strings.TrimSpace(sku))
	if sku == "" {
		return nil, shared.NewDomainError("INVALID_SKU", "SKU cannot be empty")
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if costPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Cost price cannot be negative")
	}
	if sellingPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Selling price cannot be negative")
	}
	if stockQuantity < 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Stock quantity cannot be negative")
	}
	if lowStockThreshold < 0 {
		return nil, shared.NewDomainError("INVALID_THRESHOLD", "Low stock threshold cannot be negative")
	}

	return &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SKU:               sku,
		Name:              name,
		Category:          category,
		CostPrice:         costPrice.Amount(),
		SellingPrice:      sellingPrice.Amount(),
		StockQuantity:     stockQuantity,
		LowStockThreshold: lowStockThreshold,
		Active:            true,
	}, nil
}

// IsLowStock reports whether the stock level is at or below the stored
// replenishment threshold.
func (p *Product) IsLowStock() bool {
	return p.StockQuantity <= p.LowStockThreshold
}

// IsLowStockAgainst evaluates low stock against a caller-supplied threshold
// instead of the stored one.
func (p *Product) IsLowStockAgainst(threshold int) bool {
	return p.StockQuantity <= threshold
}

// CanFulfill reports whether the current stock covers the requested quantity
func (p *Product) CanFulfill(quantity int) bool {
	return quantity > 0 && p.StockQuantity >= quantity
}

// DecreaseStock removes quantity units from stock. The stock quantity
// invariant (never negative) is enforced here as the last line of defense;
// callers are expected to have verified availability first.
func (p *Product) DecreaseStock(quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if p.StockQuantity < quantity {
		return shared.ErrInsufficientStock
	}
	p.StockQuantity -= quantity
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// IncreaseStock adds quantity units to stock
func (p *Product) IncreaseStock(quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	p.StockQuantity += quantity
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// UpdatePricing changes the catalog prices. Historical sale items keep the
// price captured at sale time and are unaffected.
func (p *Product) UpdatePricing(costPrice, sellingPrice valueobject.Money) error {
	if costPrice.IsNegative() || sellingPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Prices cannot be negative")
	}
	p.CostPrice = costPrice.Amount()
	p.SellingPrice = sellingPrice.Amount()
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// UpdateDetails changes name and category
func (p *Product) UpdateDetails(name, category string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	p.Name = name
	p.Category = category
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// SetLowStockThreshold changes the replenishment threshold
func (p *Product) SetLowStockThreshold(threshold int) error {
	if threshold < 0 {
		return shared.NewDomainError("INVALID_THRESHOLD", "Low stock threshold cannot be negative")
	}
	p.LowStockThreshold = threshold
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// Retire soft-retires the product. Products referenced by historical sale
// items are never deleted.
func (p *Product) Retire() {
	p.Active = false
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// SellingPriceMoney returns the selling price as Money
func (p *Product) SellingPriceMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(p.SellingPrice)
}

// CostPriceMoney returns the cost price as Money
func (p *Product) CostPriceMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(p.CostPrice)
}
