package inventory

import (
	"context"

	"github.com/willy-peters/SmartPOS/internal/domain/catalog"
	"github.com/willy-peters/SmartPOS/internal/domain/identity"
	dominv "github.com/willy-peters/SmartPOS/internal/domain/inventory"
	"github.com/willy-peters/SmartPOS/internal/domain/shared"
	"github.com/willy-peters/SmartPOS/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// InventoryService handles catalog management and stock operations. Catalog
// mutation and replenishment require the admin role; reads are open to any
// authenticated principal.
type InventoryService struct {
	products catalog.ProductRepository
	ledger   dominv.Ledger
	logger   *zap.Logger
}

// NewInventoryService creates a new InventoryService
func NewInventoryService(products catalog.ProductRepository, ledger dominv.Ledger, logger *zap.Logger) *InventoryService {
	return &InventoryService{
		products: products,
		ledger:   ledger,
		logger:   logger,
	}
}

// CreateProduct adds a catalog product
func (s *InventoryService) CreateProduct(ctx context.Context, principal identity.Principal, req CreateProductRequest) (*ProductResponse, error) {
	if !principal.Role.CanManageCatalog() {
		return nil, shared.ErrForbidden
	}

	threshold := catalog.DefaultLowStockThreshold
	if req.LowStockThreshold != nil {
		threshold = *req.LowStockThreshold
	}

	product, err := catalog.NewProduct(
		req.SKU,
		req.Name,
		req.Category,
		valueobject.NewMoneyUSD(req.CostPrice),
		valueobject.NewMoneyUSD(req.SellingPrice),
		req.StockQuantity,
		threshold,
	)
	if err != nil {
		return nil, err
	}

	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info("Product created",
		zap.String("product_id", product.ID.String()),
		zap.String("sku", product.SKU),
	)

	response := ToProductResponse(product)
	return &response, nil
}

// UpdateProduct applies a partial update to a product. Price changes never
// touch historical sale items.
func (s *InventoryService) UpdateProduct(ctx context.Context, principal identity.Principal, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	if !principal.Role.CanManageCatalog() {
		return nil, shared.ErrForbidden
	}

	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil || req.Category != nil {
		name := product.Name
		category := product.Category
		if req.Name != nil {
			name = *req.Name
		}
		if req.Category != nil {
			category = *req.Category
		}
		if err := product.UpdateDetails(name, category); err != nil {
			return nil, err
		}
	}
	if req.CostPrice != nil || req.SellingPrice != nil {
		cost := product.CostPriceMoney()
		selling := product.SellingPriceMoney()
		if req.CostPrice != nil {
			cost = valueobject.NewMoneyUSD(*req.CostPrice)
		}
		if req.SellingPrice != nil {
			selling = valueobject.NewMoneyUSD(*req.SellingPrice)
		}
		if err := product.UpdatePricing(cost, selling); err != nil {
			return nil, err
		}
	}
	if req.LowStockThreshold != nil {
		if err := product.SetLowStockThreshold(*req.LowStockThreshold); err != nil {
			return nil, err
		}
	}

	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// RetireProduct soft-retires a product. Historical sale items keep their
// reference; the product simply stops being sellable.
func (s *InventoryService) RetireProduct(ctx context.Context, principal identity.Principal, id uuid.UUID) error {
	if !principal.Role.CanManageCatalog() {
		return shared.ErrForbidden
	}

	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return err
	}
	product.Retire()

	if err := s.products.Save(ctx, product); err != nil {
		return err
	}

	s.logger.Info("Product retired",
		zap.String("product_id", product.ID.String()),
		zap.String("sku", product.SKU),
	)
	return nil
}

// GetProduct retrieves a product by ID
func (s *InventoryService) GetProduct(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// GetProductBySKU retrieves a product by SKU
func (s *InventoryService) GetProductBySKU(ctx context.Context, sku string) (*ProductResponse, error) {
	product, err := s.products.FindBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// ListProducts retrieves products matching the filter with pagination
func (s *InventoryService) ListProducts(ctx context.Context, req ListProductsRequest) (shared.Paginated[ProductResponse], error) {
	filter := shared.DefaultFilter()
	if req.Page > 0 {
		filter.Page = req.Page
	}
	if req.PageSize > 0 && req.PageSize <= 100 {
		filter.PageSize = req.PageSize
	}
	filter.Search = req.Search
	filter.OrderBy = "name"
	filter.OrderDir = "asc"
	if req.Category != "" {
		filter.Filters["category"] = req.Category
	}
	if req.Active != nil {
		filter.Filters["active"] = *req.Active
	}

	items, err := s.products.FindAll(ctx, filter)
	if err != nil {
		return shared.Paginated[ProductResponse]{}, err
	}
	total, err := s.products.Count(ctx, filter)
	if err != nil {
		return shared.Paginated[ProductResponse]{}, err
	}

	responses := make([]ProductResponse, len(items))
	for i := range items {
		responses[i] = ToProductResponse(&items[i])
	}
	return shared.NewPaginated(responses, total, filter.Page, filter.PageSize), nil
}

// Replenish increases stock for a product
func (s *InventoryService) Replenish(ctx context.Context, principal identity.Principal, productID uuid.UUID, req ReplenishRequest) (*StockStatusResponse, error) {
	if !principal.Role.CanManageCatalog() {
		return nil, shared.ErrForbidden
	}

	if err := s.ledger.Replenish(ctx, productID, req.Quantity); err != nil {
		return nil, err
	}

	s.logger.Info("Stock replenished",
		zap.String("product_id", productID.String()),
		zap.Int("quantity", req.Quantity),
	)
	return s.Status(ctx, productID)
}

// Status returns a point-in-time stock reading for a product
func (s *InventoryService) Status(ctx context.Context, productID uuid.UUID) (*StockStatusResponse, error) {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	return &StockStatusResponse{
		ProductID:     product.ID,
		ProductName:   product.Name,
		ProductSKU:    product.SKU,
		StockQuantity: product.StockQuantity,
		LowStock:      product.IsLowStock(),
	}, nil
}

// LowStock lists active products at or below the replenishment threshold.
// A non-nil override is applied to every product instead of the stored one.
func (s *InventoryService) LowStock(ctx context.Context, thresholdOverride *int) ([]ProductResponse, error) {
	if thresholdOverride != nil && *thresholdOverride < 0 {
		return nil, shared.NewDomainError("INVALID_THRESHOLD", "Low stock threshold cannot be negative")
	}

	products, err := s.products.FindLowStock(ctx, thresholdOverride)
	if err != nil {
		return nil, err
	}

	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = ToProductResponse(&products[i])
		if thresholdOverride != nil {
			responses[i].LowStock = products[i].IsLowStockAgainst(*thresholdOverride)
		}
	}
	return responses, nil
}
