package sales

import (
	"encoding/hex"
	"strings"
	"time"

	"github.com/willy-peters/SmartPOS/internal/domain/shared"
	"github.com/willy-peters/SmartPOS/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleStatus represents the status of a sale
type SaleStatus string

const (
	SaleStatusCompleted SaleStatus = "COMPLETED"
	SaleStatusVoided    SaleStatus = "VOIDED"
)

// IsValid checks if the status is a valid SaleStatus
func (s SaleStatus) IsValid() bool {
	switch s {
	case SaleStatusCompleted, SaleStatusVoided:
		return true
	}
	return false
}

// String returns the string representation of SaleStatus
func (s SaleStatus) String() string {
	return string(s)
}

// SaleItem is a line item within a sale. The unit price is captured at sale
// time and never recomputed from the catalog.
type SaleItem struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	SaleID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	LineIndex       int             `gorm:"not null"`
	ProductID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductName     string          `gorm:"type:varchar(200);not null"`
	ProductSKU      string          `gorm:"type:varchar(100);not null"`
	Quantity        int             `gorm:"not null"`
	UnitPriceAtSale decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	LineTotal       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CreatedAt       time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (SaleItem) TableName() string {
	return "sale_items"
}

// UnitPriceMoney returns the captured unit price as Money
func (i *SaleItem) UnitPriceMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(i.UnitPriceAtSale)
}

// LineTotalMoney returns the line total as Money
func (i *SaleItem) LineTotalMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(i.LineTotal)
}

// Sale is the aggregate root for a completed sales transaction. Sales are
// append-only: once persisted they are never modified.
type Sale struct {
	shared.BaseEntity
	TransactionID string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	CashierID     uuid.UUID       `gorm:"type:uuid;not null;index:idx_sales_cashier_created"`
	Status        SaleStatus      `gorm:"type:varchar(20);not null;default:'COMPLETED'"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Items         []SaleItem      `gorm:"foreignKey:SaleID;references:ID"`
}

// TableName returns the table name for GORM
func (Sale) TableName() string {
	return "sales"
}

// NewSale creates a completed sale from a validated, priced line set.
// A completed sale always carries at least one item, and its total equals
// the sum of the line totals by construction.
func NewSale(cashierID uuid.UUID, transactionID string, validated *ValidatedSale) (*Sale, error) {
	if cashierID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CASHIER", "Cashier ID cannot be empty")
	}
	if transactionID == "" {
		return nil, shared.NewDomainError("INVALID_TRANSACTION_ID", "Transaction ID cannot be empty")
	}
	if validated == nil || len(validated.Lines) == 0 {
		return nil, shared.NewDomainError("EMPTY_SALE", "Sale must contain at least one item")
	}

	sale := &Sale{
		BaseEntity:    shared.NewBaseEntity(),
		TransactionID: transactionID,
		CashierID:     cashierID,
		Status:        SaleStatusCompleted,
		TotalAmount:   decimal.Zero,
		Items:         make([]SaleItem, 0, len(validated.Lines)),
	}

	total := decimal.Zero
	for idx, line := range validated.Lines {
		item := SaleItem{
			ID:              uuid.New(),
			SaleID:          sale.ID,
			LineIndex:       idx,
			ProductID:       line.ProductID,
			ProductName:     line.ProductName,
			ProductSKU:      line.ProductSKU,
			Quantity:        line.Quantity,
			UnitPriceAtSale: line.UnitPrice,
			LineTotal:       line.LineTotal,
			CreatedAt:       sale.CreatedAt,
		}
		sale.Items = append(sale.Items, item)
		total = total.Add(line.LineTotal)
	}
	sale.TotalAmount = total

	return sale, nil
}

// TotalAmountMoney returns the sale total as Money
func (s *Sale) TotalAmountMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(s.TotalAmount)
}

// ItemCount returns the number of line items
func (s *Sale) ItemCount() int {
	return len(s.Items)
}

// IsCompleted reports whether the sale is in the completed state
func (s *Sale) IsCompleted() bool {
	return s.Status == SaleStatusCompleted
}

// NewTransactionID generates an externally-facing transaction identifier of
// the form TXN-XXXXXXXXXXXX. Uniqueness is backed by the random UUID source
// and enforced by the unique index on the column.
func NewTransactionID() string {
	u := uuid.New()
	return "TXN-" + strings.ToUpper(hex.EncodeToString(u[:6]))
}
