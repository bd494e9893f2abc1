package finance

import (
	"context"
	"time"

	"github.com/garagehub/backend/internal/domain/finance"
	"github.com/garagehub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ExpenseService handles expense recording. Totals are always derived from
// the line items and invoice cost; callers cannot set them directly.
type ExpenseService struct {
	stores finance.StoreResolver
	logger *zap.Logger
}

// NewExpenseService creates a new expense service
func NewExpenseService(stores finance.StoreResolver, logger *zap.Logger) *ExpenseService {
	return &ExpenseService{stores: stores, logger: logger}
}

// CreateExpenseInput contains input for recording an expense
type CreateExpenseInput struct {
	CategoryID  uuid.UUID
	Date        time.Time
	InvoiceCost decimal.Decimal
	Notes       string
	Items       []ItemInput
}

// UpdateExpenseInput contains input for updating an expense; nil fields are
// kept. Items, when present, replace the full line item set.
type UpdateExpenseInput struct {
	ID          uuid.UUID
	CategoryID  *uuid.UUID
	Date        *time.Time
	InvoiceCost *decimal.Decimal
	Notes       *string
	Items       *[]ItemInput
}

func toExpenseItems(items []ItemInput) []finance.ExpenseItem {
	out := make([]finance.ExpenseItem, 0, len(items))
	for _, item := range items {
		out = append(out, finance.ExpenseItem{Name: item.Name, Amount: item.Amount})
	}
	return out
}

// Create records a new expense
func (s *ExpenseService) Create(ctx context.Context, tenantDomain string, input CreateExpenseInput) (*ExpenseDTO, error) {
	store, err := s.stores.FinanceStore(ctx, tenantDomain)
	if err != nil {
		return nil, err
	}

	exists, err := store.ExpenseCategories().ExistsByID(ctx, input.CategoryID)
	if err != nil {
		s.logger.Error("Failed to check category existence", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to validate category")
	}
	if !exists {
		return nil, shared.NewDomainError("CATEGORY_NOT_FOUND", "Expense category not found")
	}

	expense, err := finance.NewExpense(input.CategoryID, input.Date, input.InvoiceCost, toExpenseItems(input.Items))
	if err != nil {
		return nil, err
	}
	expense.Notes = input.Notes

	if err := store.Expenses().Create(ctx, expense); err != nil {
		s.logger.Error("Failed to create expense", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create expense")
	}

	s.logger.Info("Expense recorded",
		zap.String("tenant", tenantDomain),
		zap.String("expense_id", expense.ID.String()),
		zap.String("total", expense.TotalAmount.String()))

	dto := toExpenseDTO(expense)
	return &dto, nil
}

// Update updates an expense and recomputes its derived totals
func (s *ExpenseService) Update(ctx context.Context, tenantDomain string, input UpdateExpenseInput) (*ExpenseDTO, error) {
	store, err := s.stores.FinanceStore(ctx, tenantDomain)
	if err != nil {
		return nil, err
	}

	expense, err := store.Expenses().FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.CategoryID != nil {
		exists, err := store.ExpenseCategories().ExistsByID(ctx, *input.CategoryID)
		if err != nil {
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to validate category")
		}
		if !exists {
			return nil, shared.NewDomainError("CATEGORY_NOT_FOUND", "Expense category not found")
		}
		expense.CategoryID = *input.CategoryID
		expense.Category = nil
	}
	if input.Date != nil {
		expense.Date = *input.Date
	}
	if input.Notes != nil {
		expense.Notes = *input.Notes
	}
	if input.InvoiceCost != nil {
		if err := expense.SetInvoiceCost(*input.InvoiceCost); err != nil {
			return nil, err
		}
	}

	if input.Items != nil {
		if err := expense.ReplaceItems(toExpenseItems(*input.Items)); err != nil {
			return nil, err
		}
		if err := store.Expenses().ReplaceItems(ctx, expense); err != nil {
			s.logger.Error("Failed to replace expense items", zap.Error(err))
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update expense items")
		}
	} else {
		if err := store.Expenses().Update(ctx, expense); err != nil {
			s.logger.Error("Failed to update expense", zap.Error(err))
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update expense")
		}
	}

	dto := toExpenseDTO(expense)
	return &dto, nil
}

// Delete removes an expense and its line items
func (s *ExpenseService) Delete(ctx context.Context, tenantDomain string, id uuid.UUID) error {
	store, err := s.stores.FinanceStore(ctx, tenantDomain)
	if err != nil {
		return err
	}
	if err := store.Expenses().Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Expense deleted",
		zap.String("tenant", tenantDomain),
		zap.String("expense_id", id.String()))
	return nil
}

// Get returns one expense with its items
func (s *ExpenseService) Get(ctx context.Context, tenantDomain string, id uuid.UUID) (*ExpenseDTO, error) {
	store, err := s.stores.FinanceStore(ctx, tenantDomain)
	if err != nil {
		return nil, err
	}
	expense, err := store.Expenses().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := toExpenseDTO(expense)
	return &dto, nil
}

// List returns expenses matching the filter
func (s *ExpenseService) List(ctx context.Context, tenantDomain string, filter shared.Filter) ([]ExpenseDTO, ListMeta, error) {
	store, err := s.stores.FinanceStore(ctx, tenantDomain)
	if err != nil {
		return nil, ListMeta{}, err
	}
	filter.Normalize()
	expenses, total, err := store.Expenses().FindAll(ctx, filter)
	if err != nil {
		return nil, ListMeta{}, err
	}

	dtos := make([]ExpenseDTO, 0, len(expenses))
	for _, expense := range expenses {
		dtos = append(dtos, toExpenseDTO(expense))
	}
	return dtos, NewListMeta(filter.Page, filter.Limit, total), nil
}
