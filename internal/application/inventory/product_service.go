package inventory

import (
	"context"

	"github.com/garagehub/backend/internal/domain/inventory"
	"github.com/garagehub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ProductService handles product catalogue management
type ProductService struct {
	stores inventory.StoreResolver
	logger *zap.Logger
}

// NewProductService creates a new product service
func NewProductService(stores inventory.StoreResolver, logger *zap.Logger) *ProductService {
	return &ProductService{stores: stores, logger: logger}
}

// CreateProductInput contains input for creating a product
type CreateProductInput struct {
	SKU       string
	Name      string
	Brand     string
	UnitPrice decimal.Decimal
}

// UpdateProductInput contains input for updating a product; nil fields are kept
type UpdateProductInput struct {
	ID        uuid.UUID
	Name      *string
	Brand     *string
	UnitPrice *decimal.Decimal
}

// Create creates a new product with zero stock
func (s *ProductService) Create(ctx context.Context, tenantDomain string, input CreateProductInput) (*ProductDTO, error) {
	store, err := s.stores.InventoryStore(ctx, tenantDomain)
	if err != nil {
		return nil, err
	}

	product, err := inventory.NewProduct(input.SKU, input.Name, input.UnitPrice)
	if err != nil {
		return nil, err
	}
	product.Brand = input.Brand

	exists, err := store.Products().ExistsBySKU(ctx, product.SKU)
	if err != nil {
		s.logger.Error("Failed to check SKU existence", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to check SKU availability")
	}
	if exists {
		return nil, shared.NewDomainError("SKU_EXISTS", "A product with this SKU already exists")
	}

	if err := store.Products().Create(ctx, product); err != nil {
		s.logger.Error("Failed to create product", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create product")
	}

	s.logger.Info("Product created",
		zap.String("tenant", tenantDomain),
		zap.String("product_id", product.ID.String()),
		zap.String("sku", product.SKU))

	dto := toProductDTO(product)
	return &dto, nil
}

// Update updates a product's mutable fields. SKU is immutable.
func (s *ProductService) Update(ctx context.Context, tenantDomain string, input UpdateProductInput) (*ProductDTO, error) {
	store, err := s.stores.InventoryStore(ctx, tenantDomain)
	if err != nil {
		return nil, err
	}

	product, err := store.Products().FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, shared.NewDomainError("INVALID_INPUT", "Product name cannot be empty")
		}
		product.Name = *input.Name
	}
	if input.Brand != nil {
		product.Brand = *input.Brand
	}
	if input.UnitPrice != nil {
		if input.UnitPrice.IsNegative() {
			return nil, shared.NewDomainError("INVALID_INPUT", "Unit price cannot be negative")
		}
		product.UnitPrice = *input.UnitPrice
	}
	product.Touch()

	if err := store.Products().Update(ctx, product); err != nil {
		s.logger.Error("Failed to update product", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update product")
	}

	dto := toProductDTO(product)
	return &dto, nil
}

// Delete removes a product. A product with ledger entries cannot be deleted.
func (s *ProductService) Delete(ctx context.Context, tenantDomain string, id uuid.UUID) error {
	store, err := s.stores.InventoryStore(ctx, tenantDomain)
	if err != nil {
		return err
	}

	entries, err := store.StockTransactions().FindByProduct(ctx, id)
	if err != nil {
		s.logger.Error("Failed to check product ledger", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to check product usage")
	}
	if len(entries) > 0 {
		return shared.NewDomainErrorf("PRODUCT_IN_USE", "Product has %d stock movement(s) and cannot be deleted", len(entries))
	}

	if err := store.Products().Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Product deleted",
		zap.String("tenant", tenantDomain),
		zap.String("product_id", id.String()))
	return nil
}

// Get returns one product
func (s *ProductService) Get(ctx context.Context, tenantDomain string, id uuid.UUID) (*ProductDTO, error) {
	store, err := s.stores.InventoryStore(ctx, tenantDomain)
	if err != nil {
		return nil, err
	}
	product, err := store.Products().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := toProductDTO(product)
	return &dto, nil
}

// List returns products matching the filter
func (s *ProductService) List(ctx context.Context, tenantDomain string, filter shared.Filter) ([]ProductDTO, ListMeta, error) {
	store, err := s.stores.InventoryStore(ctx, tenantDomain)
	if err != nil {
		return nil, ListMeta{}, err
	}
	filter.Normalize()
	products, total, err := store.Products().FindAll(ctx, filter)
	if err != nil {
		return nil, ListMeta{}, err
	}

	dtos := make([]ProductDTO, 0, len(products))
	for _, product := range products {
		dtos = append(dtos, toProductDTO(product))
	}
	return dtos, NewListMeta(filter.Page, filter.Limit, total), nil
}
