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

// IncomeService handles income recording with derived totals
type IncomeService struct {
	stores finance.StoreResolver
	logger *zap.Logger
}

// NewIncomeService creates a new income service
func NewIncomeService(stores finance.StoreResolver, logger *zap.Logger) *IncomeService {
	return &IncomeService{stores: stores, logger: logger}
}

// CreateIncomeInput contains input for recording an income
type CreateIncomeInput struct {
	Date                time.Time
	PartsIncomeAmount   decimal.Decimal
	ServiceIncomeAmount decimal.Decimal
	Notes               string
	Items               []ItemInput
}

// UpdateIncomeInput contains input for updating an income; nil fields are
// kept. Items, when present, replace the full item set.
type UpdateIncomeInput struct {
	ID                  uuid.UUID
	Date                *time.Time
	PartsIncomeAmount   *decimal.Decimal
	ServiceIncomeAmount *decimal.Decimal
	Notes               *string
	Items               *[]ItemInput
}

func toIncomeItems(items []ItemInput) []finance.IncomeItem {
	out := make([]finance.IncomeItem, 0, len(items))
	for _, item := range items {
		out = append(out, finance.IncomeItem{Name: item.Name, Amount: item.Amount})
	}
	return out
}

// Create records a new income
func (s *IncomeService) Create(ctx context.Context, tenantDomain string, input CreateIncomeInput) (*IncomeDTO, error) {
	store, err := s.stores.FinanceStore(ctx, tenantDomain)
	if err != nil {
		return nil, err
	}

	income, err := finance.NewIncome(input.Date, input.PartsIncomeAmount, input.ServiceIncomeAmount, toIncomeItems(input.Items))
	if err != nil {
		return nil, err
	}
	income.Notes = input.Notes

	if err := store.Incomes().Create(ctx, income); err != nil {
		s.logger.Error("Failed to create income", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create income")
	}

	s.logger.Info("Income recorded",
		zap.String("tenant", tenantDomain),
		zap.String("income_id", income.ID.String()),
		zap.String("total", income.TotalAmount.String()))

	dto := toIncomeDTO(income)
	return &dto, nil
}

// Update updates an income and recomputes its derived totals
func (s *IncomeService) Update(ctx context.Context, tenantDomain string, input UpdateIncomeInput) (*IncomeDTO, error) {
	store, err := s.stores.FinanceStore(ctx, tenantDomain)
	if err != nil {
		return nil, err
	}

	income, err := store.Incomes().FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Date != nil {
		income.Date = *input.Date
	}
	if input.Notes != nil {
		income.Notes = *input.Notes
	}
	if input.PartsIncomeAmount != nil || input.ServiceIncomeAmount != nil {
		parts := income.PartsIncomeAmount
		service := income.ServiceIncomeAmount
		if input.PartsIncomeAmount != nil {
			parts = *input.PartsIncomeAmount
		}
		if input.ServiceIncomeAmount != nil {
			service = *input.ServiceIncomeAmount
		}
		if err := income.SetInvoiceAmounts(parts, service); err != nil {
			return nil, err
		}
	}

	if input.Items != nil {
		if err := income.ReplaceItems(toIncomeItems(*input.Items)); err != nil {
			return nil, err
		}
		if err := store.Incomes().ReplaceItems(ctx, income); err != nil {
			s.logger.Error("Failed to replace income items", zap.Error(err))
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update income items")
		}
	} else {
		if err := store.Incomes().Update(ctx, income); err != nil {
			s.logger.Error("Failed to update income", zap.Error(err))
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update income")
		}
	}

	dto := toIncomeDTO(income)
	return &dto, nil
}

// Delete removes an income and its items
func (s *IncomeService) Delete(ctx context.Context, tenantDomain string, id uuid.UUID) error {
	store, err := s.stores.FinanceStore(ctx, tenantDomain)
	if err != nil {
		return err
	}
	if err := store.Incomes().Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Income deleted",
		zap.String("tenant", tenantDomain),
		zap.String("income_id", id.String()))
	return nil
}

// Get returns one income with its items
func (s *IncomeService) Get(ctx context.Context, tenantDomain string, id uuid.UUID) (*IncomeDTO, error) {
	store, err := s.stores.FinanceStore(ctx, tenantDomain)
	if err != nil {
		return nil, err
	}
	income, err := store.Incomes().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := toIncomeDTO(income)
	return &dto, nil
}

// List returns incomes matching the filter
func (s *IncomeService) List(ctx context.Context, tenantDomain string, filter shared.Filter) ([]IncomeDTO, ListMeta, error) {
	store, err := s.stores.FinanceStore(ctx, tenantDomain)
	if err != nil {
		return nil, ListMeta{}, err
	}
	filter.Normalize()
	incomes, total, err := store.Incomes().FindAll(ctx, filter)
	if err != nil {
		return nil, ListMeta{}, err
	}

	dtos := make([]IncomeDTO, 0, len(incomes))
	for _, income := range incomes {
		dtos = append(dtos, toIncomeDTO(income))
	}
	return dtos, NewListMeta(filter.Page, filter.Limit, total), nil
}
