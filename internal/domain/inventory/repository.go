package inventory

import (
	"context"

	"github.com/garagehub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductRepository defines persistence operations for products
type ProductRepository interface {
	Create(ctx context.Context, product *Product) error
	Update(ctx context.Context, product *Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	FindBySKU(ctx context.Context, sku string) (*Product, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]*Product, int64, error)
	ExistsBySKU(ctx context.Context, sku string) (bool, error)
}

// WarehouseRepository defines persistence operations for warehouses
type WarehouseRepository interface {
	Create(ctx context.Context, warehouse *Warehouse) error
	Update(ctx context.Context, warehouse *Warehouse) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Warehouse, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]*Warehouse, int64, error)
	MaxCode(ctx context.Context) (int, error)
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
}

// StockTransactionRepository defines persistence operations for ledger entries
type StockTransactionRepository interface {
	Create(ctx context.Context, entry *StockTransaction) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*StockTransaction, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]*StockTransaction, int64, error)
	FindByProduct(ctx context.Context, productID uuid.UUID) ([]*StockTransaction, error)

	// SumQuantity returns the signed sum of entries for a product at one warehouse
	SumQuantity(ctx context.Context, productID, warehouseID uuid.UUID) (decimal.Decimal, error)
	// SumQuantityAllWarehouses returns the signed sum for a product across all warehouses
	SumQuantityAllWarehouses(ctx context.Context, productID uuid.UUID) (decimal.Decimal, error)
	// CountByWarehouse counts ledger entries referencing a warehouse
	CountByWarehouse(ctx context.Context, warehouseID uuid.UUID) (int64, error)
}

// StockTransferRepository defines persistence operations for transfers
type StockTransferRepository interface {
	Create(ctx context.Context, transfer *StockTransfer) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*StockTransfer, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]*StockTransfer, int64, error)
}

// Store bundles the inventory repositories for one tenant connection
type Store interface {
	Products() ProductRepository
	Warehouses() WarehouseRepository
	StockTransactions() StockTransactionRepository
	StockTransfers() StockTransferRepository

	// Transaction runs fn against a store bound to a database transaction.
	// Stock transfers depend on this for all-or-nothing semantics.
	Transaction(ctx context.Context, fn func(Store) error) error
}

// StoreResolver resolves the inventory store for a tenant domain
type StoreResolver interface {
	InventoryStore(ctx context.Context, tenantDomain string) (Store, error)
}
