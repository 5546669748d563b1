package sales

import (
	"context"

	"github.com/willy-peters/SmartPOS/internal/domain/inventory"
	domsales "github.com/willy-peters/SmartPOS/internal/domain/sales"
)

// TransactionalRepositories provides access to repositories that share one
// transaction. Stock deduction and sale persistence commit or roll back
// together through this scope.
type TransactionalRepositories interface {
	Ledger() inventory.Ledger
	Sales() domsales.Repository
}

// TransactionScope executes a function atomically. If the function returns
// an error, every repository operation performed through it is rolled back.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// NoOpTransactionScope executes without transaction semantics, passing
// through the repositories it was built with. Used in tests.
type NoOpTransactionScope struct {
	LedgerRepo inventory.Ledger
	SalesRepo  domsales.Repository
}

// NewNoOpTransactionScope creates a scope around existing repositories
func NewNoOpTransactionScope(ledger inventory.Ledger, salesRepo domsales.Repository) *NoOpTransactionScope {
	return &NoOpTransactionScope{LedgerRepo: ledger, SalesRepo: salesRepo}
}

// Execute runs fn directly without a transaction
func (s *NoOpTransactionScope) Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// Ledger returns the wrapped ledger
func (s *NoOpTransactionScope) Ledger() inventory.Ledger { return s.LedgerRepo }

// Sales returns the wrapped sale repository
func (s *NoOpTransactionScope) Sales() domsales.Repository { return s.SalesRepo }

// Ensure NoOpTransactionScope implements both interfaces
var (
	_ TransactionScope          = (*NoOpTransactionScope)(nil)
	_ TransactionalRepositories = (*NoOpTransactionScope)(nil)
)
