package sales

import (
	"context"

	"github.com/willy-peters/SmartPOS/internal/domain/identity"
	domsales "github.com/willy-peters/SmartPOS/internal/domain/sales"
	"github.com/willy-peters/SmartPOS/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SaleService handles checkout and sale retrieval. Checkout deducts stock
// and persists the sale in one transaction; either both happen or neither.
type SaleService struct {
	builder   *domsales.Builder
	salesRepo domsales.Repository
	scope     TransactionScope
	logger    *zap.Logger
}

// NewSaleService creates a new SaleService
func NewSaleService(builder *domsales.Builder, salesRepo domsales.Repository, scope TransactionScope, logger *zap.Logger) *SaleService {
	return &SaleService{
		builder:   builder,
		salesRepo: salesRepo,
		scope:     scope,
		logger:    logger,
	}
}

// Create processes a checkout for the acting cashier. Prices are captured
// from the catalog at this moment and never recomputed afterwards.
func (s *SaleService) Create(ctx context.Context, principal identity.Principal, req CreateSaleRequest) (*SaleResponse, error) {
	lines := make([]domsales.LineRequest, len(req.Items))
	for i, item := range req.Items {
		lines[i] = domsales.LineRequest{ProductID: item.ProductID, Quantity: item.Quantity}
	}

	validated, err := s.builder.Build(ctx, principal.UserID, lines)
	if err != nil {
		return nil, err
	}

	transactionID := domsales.NewTransactionID()

	var sale *domsales.Sale
	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := repos.Ledger().ReserveAndDeduct(ctx, validated.QuantityByProduct()); err != nil {
			return err
		}
		created, err := domsales.NewSale(principal.UserID, transactionID, validated)
		if err != nil {
			return err
		}
		if err := repos.Sales().Create(ctx, created); err != nil {
			return err
		}
		sale = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Sale completed",
		zap.String("transaction_id", sale.TransactionID),
		zap.String("cashier_id", principal.UserID.String()),
		zap.Int("items", sale.ItemCount()),
		zap.String("total", sale.TotalAmount.StringFixed(2)),
	)

	response := ToSaleResponse(sale)
	return &response, nil
}

// GetByID retrieves a sale. Cashiers may only read their own sales.
func (s *SaleService) GetByID(ctx context.Context, principal identity.Principal, id uuid.UUID) (*SaleResponse, error) {
	sale, err := s.salesRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.canView(principal, sale) {
		return nil, shared.ErrForbidden
	}
	response := ToSaleResponse(sale)
	return &response, nil
}

// GetByTransactionID retrieves a sale by its public transaction identifier
func (s *SaleService) GetByTransactionID(ctx context.Context, principal identity.Principal, transactionID string) (*SaleResponse, error) {
	sale, err := s.salesRepo.FindByTransactionID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if !s.canView(principal, sale) {
		return nil, shared.ErrForbidden
	}
	response := ToSaleResponse(sale)
	return &response, nil
}

// List retrieves sales matching the filter. Cashiers are always restricted
// to their own sales regardless of the requested cashier filter.
func (s *SaleService) List(ctx context.Context, principal identity.Principal, req ListSalesRequest) (shared.Paginated[SaleResponse], error) {
	filter := domsales.DefaultListFilter()
	if req.Page > 0 {
		filter.Page = req.Page
	}
	if req.PageSize > 0 && req.PageSize <= 100 {
		filter.PageSize = req.PageSize
	}
	filter.CashierID = req.CashierID
	filter.StartDate = req.StartDate
	filter.EndDate = req.EndDate
	filter.MinAmount = req.MinAmount
	filter.MaxAmount = req.MaxAmount
	filter.TransactionID = req.TransactionID

	if !principal.Role.CanViewAllSales() {
		own := principal.UserID
		filter.CashierID = &own
	}

	items, err := s.salesRepo.FindAll(ctx, filter)
	if err != nil {
		return shared.Paginated[SaleResponse]{}, err
	}
	total, err := s.salesRepo.Count(ctx, filter)
	if err != nil {
		return shared.Paginated[SaleResponse]{}, err
	}

	responses := make([]SaleResponse, len(items))
	for i := range items {
		responses[i] = ToSaleResponse(&items[i])
	}
	return shared.NewPaginated(responses, total, filter.Page, filter.PageSize), nil
}

func (s *SaleService) canView(principal identity.Principal, sale *domsales.Sale) bool {
	if principal.Role.CanViewAllSales() {
		return true
	}
	return sale.CashierID == principal.UserID
}
