package persistence

import (
	"context"

	"github.com/garagehub/backend/internal/domain/finance"
	"github.com/garagehub/backend/internal/domain/garage"
	"github.com/garagehub/backend/internal/domain/identity"
	"github.com/garagehub/backend/internal/domain/inventory"
	"github.com/garagehub/backend/internal/infrastructure/persistence/tenantdb"
	"gorm.io/gorm"
)

// identityStore bundles the identity repositories over one connection
type identityStore struct {
	db *gorm.DB
}

// NewIdentityStore creates an identity store over the given connection
func NewIdentityStore(db *gorm.DB) identity.Store {
	return &identityStore{db: db}
}

func (s *identityStore) Users() identity.UserRepository {
	return NewGormUserRepository(s.db)
}

func (s *identityStore) Roles() identity.RoleRepository {
	return NewGormRoleRepository(s.db)
}

func (s *identityStore) Pages() identity.PageRepository {
	return NewGormPageRepository(s.db)
}

func (s *identityStore) Permissions() identity.PermissionRepository {
	return NewGormPermissionRepository(s.db)
}

func (s *identityStore) Transaction(ctx context.Context, fn func(identity.Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&identityStore{db: tx})
	})
}

// financeStore bundles the finance repositories over one connection
type financeStore struct {
	db *gorm.DB
}

// NewFinanceStore creates a finance store over the given connection
func NewFinanceStore(db *gorm.DB) finance.Store {
	return &financeStore{db: db}
}

func (s *financeStore) ExpenseCategories() finance.ExpenseCategoryRepository {
	return NewGormExpenseCategoryRepository(s.db)
}

func (s *financeStore) Expenses() finance.ExpenseRepository {
	return NewGormExpenseRepository(s.db)
}

func (s *financeStore) Incomes() finance.IncomeRepository {
	return NewGormIncomeRepository(s.db)
}

func (s *financeStore) Transaction(ctx context.Context, fn func(finance.Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&financeStore{db: tx})
	})
}

// inventoryStore bundles the inventory repositories over one connection
type inventoryStore struct {
	db *gorm.DB
}

// NewInventoryStore creates an inventory store over the given connection
func NewInventoryStore(db *gorm.DB) inventory.Store {
	return &inventoryStore{db: db}
}

func (s *inventoryStore) Products() inventory.ProductRepository {
	return NewGormProductRepository(s.db)
}

func (s *inventoryStore) Warehouses() inventory.WarehouseRepository {
	return NewGormWarehouseRepository(s.db)
}

func (s *inventoryStore) StockTransactions() inventory.StockTransactionRepository {
	return NewGormStockTransactionRepository(s.db)
}

func (s *inventoryStore) StockTransfers() inventory.StockTransferRepository {
	return NewGormStockTransferRepository(s.db)
}

func (s *inventoryStore) Transaction(ctx context.Context, fn func(inventory.Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&inventoryStore{db: tx})
	})
}

// garageStore bundles the garage repositories over one connection
type garageStore struct {
	db *gorm.DB
}

// NewGarageStore creates a garage store over the given connection
func NewGarageStore(db *gorm.DB) garage.Store {
	return &garageStore{db: db}
}

func (s *garageStore) Customers() garage.CustomerRepository {
	return NewGormCustomerRepository(s.db)
}

func (s *garageStore) Vehicles() garage.VehicleRepository {
	return NewGormVehicleRepository(s.db)
}

func (s *garageStore) Warranties() garage.WarrantyRepository {
	return NewGormWarrantyRepository(s.db)
}

func (s *garageStore) Transaction(ctx context.Context, fn func(garage.Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&garageStore{db: tx})
	})
}

// TenantStores resolves per-domain stores through the tenant connection
// registry. It implements the StoreResolver interface of every domain
// package, so application services stay unaware of connection management.
type TenantStores struct {
	registry *tenantdb.Registry
}

// NewTenantStores creates a TenantStores over the given registry
func NewTenantStores(registry *tenantdb.Registry) *TenantStores {
	return &TenantStores{registry: registry}
}

// IdentityStore resolves the identity store for a tenant domain
func (t *TenantStores) IdentityStore(ctx context.Context, tenantDomain string) (identity.Store, error) {
	db, err := t.registry.Resolve(ctx, tenantDomain)
	if err != nil {
		return nil, err
	}
	return NewIdentityStore(db), nil
}

// FinanceStore resolves the finance store for a tenant domain
func (t *TenantStores) FinanceStore(ctx context.Context, tenantDomain string) (finance.Store, error) {
	db, err := t.registry.Resolve(ctx, tenantDomain)
	if err != nil {
		return nil, err
	}
	return NewFinanceStore(db), nil
}

// InventoryStore resolves the inventory store for a tenant domain
func (t *TenantStores) InventoryStore(ctx context.Context, tenantDomain string) (inventory.Store, error) {
	db, err := t.registry.Resolve(ctx, tenantDomain)
	if err != nil {
		return nil, err
	}
	return NewInventoryStore(db), nil
}

// GarageStore resolves the garage store for a tenant domain
func (t *TenantStores) GarageStore(ctx context.Context, tenantDomain string) (garage.Store, error) {
	db, err := t.registry.Resolve(ctx, tenantDomain)
	if err != nil {
		return nil, err
	}
	return NewGarageStore(db), nil
}
