package tenantdb

import (
	"context"

	"github.com/garagehub/backend/internal/domain/finance"
	"github.com/garagehub/backend/internal/domain/garage"
	"github.com/garagehub/backend/internal/domain/identity"
	"github.com/garagehub/backend/internal/domain/inventory"
	"github.com/garagehub/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// Entity names the closed set of schemas known to the model registry.
// Requests for anything outside this set fail with UNKNOWN_ENTITY instead
// of being resolved by runtime string matching.
type Entity string

const (
	EntityUser                Entity = "User"
	EntityRole                Entity = "Role"
	EntityRolePermissionEntry Entity = "RolePermissionEntry"
	EntityPage                Entity = "Page"
	EntityPermission          Entity = "Permission"
	EntityExpenseCategory     Entity = "ExpenseCategory"
	EntityExpense             Entity = "Expense"
	EntityExpenseItem         Entity = "ExpenseItem"
	EntityIncome              Entity = "Income"
	EntityIncomeItem          Entity = "IncomeItem"
	EntityProduct             Entity = "Product"
	EntityWarehouse           Entity = "Warehouse"
	EntityStockTransaction    Entity = "StockTransaction"
	EntityStockTransfer       Entity = "StockTransfer"
	EntityCustomer            Entity = "Customer"
	EntityVehicle             Entity = "Vehicle"
	EntityWarranty            Entity = "Warranty"
)

// prototypes maps each entity to a factory for a zero value of its model.
// Migration order matters: referenced tables first.
var prototypes = []struct {
	entity Entity
	new    func() any
}{
	{EntityRole, func() any { return &identity.Role{} }},
	{EntityPage, func() any { return &identity.Page{} }},
	{EntityRolePermissionEntry, func() any { return &identity.RolePermissionEntry{} }},
	{EntityUser, func() any { return &identity.User{} }},
	{EntityPermission, func() any { return &identity.Permission{} }},
	{EntityExpenseCategory, func() any { return &finance.ExpenseCategory{} }},
	{EntityExpense, func() any { return &finance.Expense{} }},
	{EntityExpenseItem, func() any { return &finance.ExpenseItem{} }},
	{EntityIncome, func() any { return &finance.Income{} }},
	{EntityIncomeItem, func() any { return &finance.IncomeItem{} }},
	{EntityProduct, func() any { return &inventory.Product{} }},
	{EntityWarehouse, func() any { return &inventory.Warehouse{} }},
	{EntityStockTransaction, func() any { return &inventory.StockTransaction{} }},
	{EntityStockTransfer, func() any { return &inventory.StockTransfer{} }},
	{EntityCustomer, func() any { return &garage.Customer{} }},
	{EntityVehicle, func() any { return &garage.Vehicle{} }},
	{EntityWarranty, func() any { return &garage.Warranty{} }},
}

// Entities returns the closed set of known entity names
func Entities() []Entity {
	names := make([]Entity, 0, len(prototypes))
	for _, p := range prototypes {
		names = append(names, p.entity)
	}
	return names
}

// Prototype returns a pointer to a zero value of the entity's model
func Prototype(entity Entity) (any, error) {
	for _, p := range prototypes {
		if p.entity == entity {
			return p.new(), nil
		}
	}
	return nil, shared.NewDomainErrorf("UNKNOWN_ENTITY", "unknown entity %q", entity)
}

// Model returns a query handle scoped to the entity's schema on the given
// tenant connection. The handle never leaks across connections: it is
// derived from the connection passed in.
func Model(db *gorm.DB, entity Entity) (*gorm.DB, error) {
	prototype, err := Prototype(entity)
	if err != nil {
		return nil, err
	}
	return db.Model(prototype), nil
}

// TableCounts returns the row count per known entity on the connection.
// Counting goes through Model, so it also proves every table in the closed
// set survived migration. The migrate command runs it after EnsureSchema.
func TableCounts(ctx context.Context, db *gorm.DB) (map[Entity]int64, error) {
	counts := make(map[Entity]int64, len(prototypes))
	for _, entity := range Entities() {
		query, err := Model(db.WithContext(ctx), entity)
		if err != nil {
			return nil, err
		}
		var n int64
		if err := query.Count(&n).Error; err != nil {
			return nil, err
		}
		counts[entity] = n
	}
	return counts, nil
}

// EnsureSchema migrates the full closed entity set against the connection.
// AutoMigrate is idempotent, so a duplicate run under a first-access race
// is harmless; the Registry guards it with the connection single-flight.
func EnsureSchema(db *gorm.DB) error {
	models := make([]any, 0, len(prototypes))
	for _, p := range prototypes {
		models = append(models, p.new())
	}
	return db.AutoMigrate(models...)
}
