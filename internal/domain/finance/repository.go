package finance

import (
	"context"

	"github.com/garagehub/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ExpenseCategoryRepository defines persistence operations for categories
type ExpenseCategoryRepository interface {
	Create(ctx context.Context, category *ExpenseCategory) error
	Update(ctx context.Context, category *ExpenseCategory) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*ExpenseCategory, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]*ExpenseCategory, int64, error)
	ExistsByNameAndCode(ctx context.Context, name, code string) (bool, error)
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
	CountExpenses(ctx context.Context, categoryID uuid.UUID) (int64, error)
}

// ExpenseRepository defines persistence operations for expenses
type ExpenseRepository interface {
	Create(ctx context.Context, expense *Expense) error
	Update(ctx context.Context, expense *Expense) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Expense, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]*Expense, int64, error)
	ReplaceItems(ctx context.Context, expense *Expense) error
}

// IncomeRepository defines persistence operations for incomes
type IncomeRepository interface {
	Create(ctx context.Context, income *Income) error
	Update(ctx context.Context, income *Income) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Income, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]*Income, int64, error)
	ReplaceItems(ctx context.Context, income *Income) error
}

// Store bundles the finance repositories for one tenant connection
type Store interface {
	ExpenseCategories() ExpenseCategoryRepository
	Expenses() ExpenseRepository
	Incomes() IncomeRepository

	Transaction(ctx context.Context, fn func(Store) error) error
}

// StoreResolver resolves the finance store for a tenant domain
type StoreResolver interface {
	FinanceStore(ctx context.Context, tenantDomain string) (Store, error)
}
