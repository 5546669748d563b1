package sales

import (
	"context"
	"errors"

	"github.com/willy-peters/SmartPOS/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MaxLineItems caps how many distinct lines a single sale may carry
const MaxLineItems = 100

// LineRequest is a raw requested line before validation and pricing
type LineRequest struct {
	ProductID uuid.UUID
	Quantity  int
}

// ValidatedLine is a priced, validated sale line. UnitPrice is the catalog
// selling price snapshotted at build time.
type ValidatedLine struct {
	ProductID   uuid.UUID
	ProductName string
	ProductSKU  string
	Quantity    int
	UnitPrice   decimal.Decimal
	LineTotal   decimal.Decimal
}

// ValidatedSale carries the priced line set for a sale that has not yet been
// committed to the ledger or persisted.
type ValidatedSale struct {
	CashierID   uuid.UUID
	Lines       []ValidatedLine
	TotalAmount decimal.Decimal
}

// QuantityByProduct returns the total requested quantity per product,
// the shape the inventory ledger deducts by.
func (v *ValidatedSale) QuantityByProduct() map[uuid.UUID]int {
	out := make(map[uuid.UUID]int, len(v.Lines))
	for _, line := range v.Lines {
		out[line.ProductID] += line.Quantity
	}
	return out
}

// Builder turns raw line requests into validated, priced sale line sets.
// Building is a pure read of catalog state; all mutation happens later in
// the transaction processor.
type Builder struct {
	products catalog.ProductRepository
}

// NewBuilder creates a sale builder over the given catalog
func NewBuilder(products catalog.ProductRepository) *Builder {
	return &Builder{products: products}
}

// Build validates the requested lines and prices them against the current
// catalog. Duplicate products are merged by summing their quantities; the
// merged line keeps the position of the first occurrence.
func (b *Builder) Build(ctx context.Context, cashierID uuid.UUID, lines []LineRequest) (*ValidatedSale, error) {
	if cashierID == uuid.Nil {
		return nil, NewValidationError("Cashier ID is required")
	}
	if len(lines) == 0 {
		return nil, NewValidationError("Sale must contain at least one item")
	}
	if len(lines) > MaxLineItems {
		return nil, NewValidationError("Sale cannot contain more than %d items", MaxLineItems)
	}

	// Merge duplicate product lines, preserving first-occurrence order.
	merged := make([]LineRequest, 0, len(lines))
	position := make(map[uuid.UUID]int, len(lines))
	for _, line := range lines {
		if line.ProductID == uuid.Nil {
			return nil, NewValidationError("Product ID is required for every item")
		}
		if line.Quantity <= 0 {
			return nil, NewValidationError("Quantity must be positive for product %s", line.ProductID)
		}
		if idx, ok := position[line.ProductID]; ok {
			merged[idx].Quantity += line.Quantity
			continue
		}
		position[line.ProductID] = len(merged)
		merged = append(merged, line)
	}

	ids := make([]uuid.UUID, len(merged))
	for i, line := range merged {
		ids[i] = line.ProductID
	}
	products, err := b.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*catalog.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	validated := &ValidatedSale{
		CashierID:   cashierID,
		Lines:       make([]ValidatedLine, 0, len(merged)),
		TotalAmount: decimal.Zero,
	}
	for _, line := range merged {
		product, ok := byID[line.ProductID]
		if !ok {
			return nil, NewValidationError("Product with id %s does not exist", line.ProductID)
		}
		if !product.Active {
			return nil, NewValidationError("Product %s is no longer available", product.Name)
		}

		unitPrice := product.SellingPrice
		lineTotal := unitPrice.Mul(decimal.NewFromInt(int64(line.Quantity)))
		validated.Lines = append(validated.Lines, ValidatedLine{
			ProductID:   product.ID,
			ProductName: product.Name,
			ProductSKU:  product.SKU,
			Quantity:    line.Quantity,
			UnitPrice:   unitPrice,
			LineTotal:   lineTotal,
		})
		validated.TotalAmount = validated.TotalAmount.Add(lineTotal)
	}

	return validated, nil
}

// IsValidationError reports whether err is a sale validation error
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
