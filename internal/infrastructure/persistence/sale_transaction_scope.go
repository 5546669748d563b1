package persistence

import (
	"context"

	appsales "github.com/willy-peters/SmartPOS/internal/application/sales"
	"github.com/willy-peters/SmartPOS/internal/domain/inventory"
	"github.com/willy-peters/SmartPOS/internal/domain/sales"
	"gorm.io/gorm"
)

// GormTransactionScope implements the sale transaction scope using GORM
// transactions. The stock deduction and the sale insert run on the same
// connection and commit or roll back together.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs the given function within a database transaction
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos appsales.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
}

// gormTransactionalRepositories provides transaction-scoped repositories
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

// Ledger returns the stock ledger scoped to the current transaction
func (r *gormTransactionalRepositories) Ledger() inventory.Ledger {
	return NewGormLedger(r.tx)
}

// Sales returns the sale repository scoped to the current transaction
func (r *gormTransactionalRepositories) Sales() sales.Repository {
	return NewGormSaleRepository(r.tx)
}

// Ensure GormTransactionScope implements TransactionScope
var _ appsales.TransactionScope = (*GormTransactionScope)(nil)

// Ensure gormTransactionalRepositories implements TransactionalRepositories
var _ appsales.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
