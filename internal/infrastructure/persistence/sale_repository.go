package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/willy-peters/SmartPOS/internal/domain/sales"
	"github.com/willy-peters/SmartPOS/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormSaleRepository implements sales.Repository using GORM. The sales table
// is append-only; completed transactions are never updated in place.
type GormSaleRepository struct {
	db *gorm.DB
}

// NewGormSaleRepository creates a new GormSaleRepository
func NewGormSaleRepository(db *gorm.DB) *GormSaleRepository {
	return &GormSaleRepository{db: db}
}

// Create persists a sale and its line items as a single atomic unit
func (r *GormSaleRepository) Create(ctx context.Context, sale *sales.Sale) error {
	if err := r.db.WithContext(ctx).Create(sale).Error; err != nil {
		if isUniqueViolation(err) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// FindByID finds a sale with its items by primary key
func (r *GormSaleRepository) FindByID(ctx context.Context, id uuid.UUID) (*sales.Sale, error) {
	var sale sales.Sale
	if err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("line_index ASC")
		}).
		First(&sale, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &sale, nil
}

// FindByTransactionID finds a sale by its public transaction identifier
func (r *GormSaleRepository) FindByTransactionID(ctx context.Context, transactionID string) (*sales.Sale, error) {
	var sale sales.Sale
	if err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("line_index ASC")
		}).
		Where("transaction_id = ?", strings.TrimSpace(transactionID)).
		First(&sale).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &sale, nil
}

// FindAll finds all sales matching the filter, newest first
func (r *GormSaleRepository) FindAll(ctx context.Context, filter sales.ListFilter) ([]sales.Sale, error) {
	query := r.applyFilter(r.db.WithContext(ctx).Model(&sales.Sale{}), filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	var result []sales.Sale
	if err := query.
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("line_index ASC")
		}).
		Order("created_at DESC, id DESC").
		Find(&result).Error; err != nil {
		return nil, err
	}
	return result, nil
}

// Count counts sales matching the filter, ignoring pagination
func (r *GormSaleRepository) Count(ctx context.Context, filter sales.ListFilter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&sales.Sale{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormSaleRepository) applyFilter(query *gorm.DB, filter sales.ListFilter) *gorm.DB {
	if filter.CashierID != nil {
		query = query.Where("cashier_id = ?", *filter.CashierID)
	}
	if filter.StartDate != nil {
		query = query.Where("created_at >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("created_at <= ?", *filter.EndDate)
	}
	if filter.MinAmount != nil {
		query = query.Where("total_amount >= ?", *filter.MinAmount)
	}
	if filter.MaxAmount != nil {
		query = query.Where("total_amount <= ?", *filter.MaxAmount)
	}
	if filter.TransactionID != "" {
		query = query.Where("transaction_id = ?", strings.TrimSpace(filter.TransactionID))
	}
	return query
}

// Ensure GormSaleRepository implements Repository
var _ sales.Repository = (*GormSaleRepository)(nil)
