package finance

import (
	"context"

	"github.com/garagehub/backend/internal/domain/finance"
	"github.com/garagehub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ExpenseCategoryService handles expense category management
type ExpenseCategoryService struct {
	stores finance.StoreResolver
	logger *zap.Logger
}

// NewExpenseCategoryService creates a new expense category service
func NewExpenseCategoryService(stores finance.StoreResolver, logger *zap.Logger) *ExpenseCategoryService {
	return &ExpenseCategoryService{stores: stores, logger: logger}
}

// CreateCategoryInput contains input for creating a category
type CreateCategoryInput struct {
	Name string
	Code string
}

// UpdateCategoryInput contains input for updating a category; nil fields are kept
type UpdateCategoryInput struct {
	ID   uuid.UUID
	Name *string
	Code *string
}

// Create creates a new expense category. The (name, code) pair must be unique.
func (s *ExpenseCategoryService) Create(ctx context.Context, tenantDomain string, input CreateCategoryInput) (*ExpenseCategoryDTO, error) {
	store, err := s.stores.FinanceStore(ctx, tenantDomain)
	if err != nil {
		return nil, err
	}

	category, err := finance.NewExpenseCategory(input.Name, input.Code)
	if err != nil {
		return nil, err
	}

	exists, err := store.ExpenseCategories().ExistsByNameAndCode(ctx, category.Name, category.Code)
	if err != nil {
		s.logger.Error("Failed to check category existence", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to check category availability")
	}
	if exists {
		return nil, shared.NewDomainError("CATEGORY_EXISTS", "A category with this name and code already exists")
	}

	if err := store.ExpenseCategories().Create(ctx, category); err != nil {
		s.logger.Error("Failed to create expense category", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create category")
	}

	s.logger.Info("Expense category created",
		zap.String("tenant", tenantDomain),
		zap.String("category_id", category.ID.String()))

	dto := toExpenseCategoryDTO(category)
	return &dto, nil
}

// Update updates a category's name and code
func (s *ExpenseCategoryService) Update(ctx context.Context, tenantDomain string, input UpdateCategoryInput) (*ExpenseCategoryDTO, error) {
	store, err := s.stores.FinanceStore(ctx, tenantDomain)
	if err != nil {
		return nil, err
	}

	category, err := store.ExpenseCategories().FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	name := category.Name
	code := category.Code
	if input.Name != nil {
		name = *input.Name
	}
	if input.Code != nil {
		code = *input.Code
	}
	if name != category.Name || code != category.Code {
		updated, err := finance.NewExpenseCategory(name, code)
		if err != nil {
			return nil, err
		}
		exists, err := store.ExpenseCategories().ExistsByNameAndCode(ctx, updated.Name, updated.Code)
		if err != nil {
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to check category availability")
		}
		if exists {
			return nil, shared.NewDomainError("CATEGORY_EXISTS", "A category with this name and code already exists")
		}
		category.Name = updated.Name
		category.Code = updated.Code
		category.Touch()
	}

	if err := store.ExpenseCategories().Update(ctx, category); err != nil {
		s.logger.Error("Failed to update expense category", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update category")
	}

	dto := toExpenseCategoryDTO(category)
	return &dto, nil
}

// Delete removes a category. A category with recorded expenses cannot be deleted.
func (s *ExpenseCategoryService) Delete(ctx context.Context, tenantDomain string, id uuid.UUID) error {
	store, err := s.stores.FinanceStore(ctx, tenantDomain)
	if err != nil {
		return err
	}

	count, err := store.ExpenseCategories().CountExpenses(ctx, id)
	if err != nil {
		s.logger.Error("Failed to count expenses for category", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to check category usage")
	}
	if count > 0 {
		return shared.NewDomainErrorf("CATEGORY_IN_USE", "Category has %d expense(s) and cannot be deleted", count)
	}

	if err := store.ExpenseCategories().Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Expense category deleted",
		zap.String("tenant", tenantDomain),
		zap.String("category_id", id.String()))
	return nil
}

// Get returns one category
func (s *ExpenseCategoryService) Get(ctx context.Context, tenantDomain string, id uuid.UUID) (*ExpenseCategoryDTO, error) {
	store, err := s.stores.FinanceStore(ctx, tenantDomain)
	if err != nil {
		return nil, err
	}
	category, err := store.ExpenseCategories().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := toExpenseCategoryDTO(category)
	return &dto, nil
}

// List returns categories matching the filter
func (s *ExpenseCategoryService) List(ctx context.Context, tenantDomain string, filter shared.Filter) ([]ExpenseCategoryDTO, ListMeta, error) {
	store, err := s.stores.FinanceStore(ctx, tenantDomain)
	if err != nil {
		return nil, ListMeta{}, err
	}
	filter.Normalize()
	categories, total, err := store.ExpenseCategories().FindAll(ctx, filter)
	if err != nil {
		return nil, ListMeta{}, err
	}

	dtos := make([]ExpenseCategoryDTO, 0, len(categories))
	for _, category := range categories {
		dtos = append(dtos, toExpenseCategoryDTO(category))
	}
	return dtos, NewListMeta(filter.Page, filter.Limit, total), nil
}
