package persistence

import (
	"context"
	"errors"
	"sort"

	"github.com/willy-peters/SmartPOS/internal/domain/catalog"
	"github.com/willy-peters/SmartPOS/internal/domain/inventory"
	"github.com/willy-peters/SmartPOS/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormLedger implements inventory.Ledger on the products table. Deductions
// take row locks in ascending product ID order so concurrent sales touching
// the same products cannot deadlock.
type GormLedger struct {
	db *gorm.DB
}

// NewGormLedger creates a new GormLedger
func NewGormLedger(db *gorm.DB) *GormLedger {
	return &GormLedger{db: db}
}

// ReserveAndDeduct atomically decrements stock for every requested product,
// or none of them. When the ledger is already inside a transaction the caller
// controls, the locks are held until that transaction ends.
func (l *GormLedger) ReserveAndDeduct(ctx context.Context, items map[uuid.UUID]int) error {
	if len(items) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, 0, len(items))
	for id := range items {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return ids[i].String() < ids[j].String()
	})

	return l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var products []catalog.Product
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id IN ?", ids).
			Order("id ASC").
			Find(&products).Error; err != nil {
			return err
		}

		levels := make(map[uuid.UUID]inventory.Level, len(products))
		for _, p := range products {
			if !p.Active {
				continue
			}
			levels[p.ID] = inventory.Level{
				ProductID:   p.ID,
				ProductName: p.Name,
				Quantity:    p.StockQuantity,
			}
		}

		if err := inventory.VerifyAvailability(levels, items); err != nil {
			return err
		}

		for _, id := range ids {
			result := tx.Model(&catalog.Product{}).
				Where("id = ?", id).
				Updates(map[string]any{
					"stock_quantity": gorm.Expr("stock_quantity - ?", items[id]),
					"version":        gorm.Expr("version + 1"),
				})
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return shared.ErrNotFound
			}
		}
		return nil
	})
}

// Replenish increases stock for a product
func (l *GormLedger) Replenish(ctx context.Context, productID uuid.UUID, quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Replenishment quantity must be positive")
	}

	result := l.db.WithContext(ctx).Model(&catalog.Product{}).
		Where("id = ?", productID).
		Updates(map[string]any{
			"stock_quantity": gorm.Expr("stock_quantity + ?", quantity),
			"version":        gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// IsLowStock reports whether the product sits at or below its stored threshold
func (l *GormLedger) IsLowStock(ctx context.Context, productID uuid.UUID) (bool, error) {
	product, err := l.load(ctx, productID)
	if err != nil {
		return false, err
	}
	return product.IsLowStock(), nil
}

// CurrentLevel returns a point-in-time stock reading
func (l *GormLedger) CurrentLevel(ctx context.Context, productID uuid.UUID) (int, error) {
	product, err := l.load(ctx, productID)
	if err != nil {
		return 0, err
	}
	return product.StockQuantity, nil
}

func (l *GormLedger) load(ctx context.Context, productID uuid.UUID) (*catalog.Product, error) {
	var product catalog.Product
	if err := l.db.WithContext(ctx).First(&product, "id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// Ensure GormLedger implements Ledger
var _ inventory.Ledger = (*GormLedger)(nil)
