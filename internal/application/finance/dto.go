package finance

import (
	"time"

	"github.com/garagehub/backend/internal/domain/finance"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExpenseCategoryDTO represents an expense category
type ExpenseCategoryDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toExpenseCategoryDTO(c *finance.ExpenseCategory) ExpenseCategoryDTO {
	return ExpenseCategoryDTO{
		ID:        c.ID,
		Name:      c.Name,
		Code:      c.Code,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// ExpenseItemDTO is one expense line item
type ExpenseItemDTO struct {
	ID     uuid.UUID       `json:"id"`
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

// ExpenseDTO represents an expense with derived totals
type ExpenseDTO struct {
	ID                uuid.UUID        `json:"id"`
	CategoryID        uuid.UUID        `json:"category_id"`
	CategoryName      string           `json:"category_name,omitempty"`
	Date              time.Time        `json:"date"`
	InvoiceCost       decimal.Decimal  `json:"invoice_cost"`
	TotalOtherExpense decimal.Decimal  `json:"total_other_expense"`
	TotalAmount       decimal.Decimal  `json:"total_amount"`
	Notes             string           `json:"notes,omitempty"`
	Items             []ExpenseItemDTO `json:"expense_items"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

func toExpenseDTO(e *finance.Expense) ExpenseDTO {
	dto := ExpenseDTO{
		ID:                e.ID,
		CategoryID:        e.CategoryID,
		Date:              e.Date,
		InvoiceCost:       e.InvoiceCost,
		TotalOtherExpense: e.TotalOtherExpense,
		TotalAmount:       e.TotalAmount,
		Notes:             e.Notes,
		Items:             make([]ExpenseItemDTO, 0, len(e.Items)),
		CreatedAt:         e.CreatedAt,
		UpdatedAt:         e.UpdatedAt,
	}
	if e.Category != nil {
		dto.CategoryName = e.Category.Name
	}
	for i := range e.Items {
		dto.Items = append(dto.Items, ExpenseItemDTO{
			ID:     e.Items[i].ID,
			Name:   e.Items[i].Name,
			Amount: e.Items[i].Amount,
		})
	}
	return dto
}

// IncomeItemDTO is one additional income line
type IncomeItemDTO struct {
	ID     uuid.UUID       `json:"id"`
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

// IncomeDTO represents an income record with derived totals
type IncomeDTO struct {
	ID                  uuid.UUID       `json:"id"`
	Date                time.Time       `json:"date"`
	PartsIncomeAmount   decimal.Decimal `json:"parts_income_amount"`
	ServiceIncomeAmount decimal.Decimal `json:"service_income_amount"`
	TotalOtherIncome    decimal.Decimal `json:"total_other_income"`
	TotalInvoiceIncome  decimal.Decimal `json:"total_invoice_income"`
	TotalAmount         decimal.Decimal `json:"total_amount"`
	Notes               string          `json:"notes,omitempty"`
	Items               []IncomeItemDTO `json:"income_items"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

func toIncomeDTO(in *finance.Income) IncomeDTO {
	dto := IncomeDTO{
		ID:                  in.ID,
		Date:                in.Date,
		PartsIncomeAmount:   in.PartsIncomeAmount,
		ServiceIncomeAmount: in.ServiceIncomeAmount,
		TotalOtherIncome:    in.TotalOtherIncome,
		TotalInvoiceIncome:  in.TotalInvoiceIncome,
		TotalAmount:         in.TotalAmount,
		Notes:               in.Notes,
		Items:               make([]IncomeItemDTO, 0, len(in.Items)),
		CreatedAt:           in.CreatedAt,
		UpdatedAt:           in.UpdatedAt,
	}
	for i := range in.Items {
		dto.Items = append(dto.Items, IncomeItemDTO{
			ID:     in.Items[i].ID,
			Name:   in.Items[i].Name,
			Amount: in.Items[i].Amount,
		})
	}
	return dto
}

// ItemInput is one line item in expense/income input
type ItemInput struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

// ListMeta carries pagination metadata for list results
type ListMeta struct {
	Page      int   `json:"page"`
	Limit     int   `json:"limit"`
	Total     int64 `json:"total"`
	TotalPage int   `json:"totalPage"`
}

// NewListMeta computes pagination metadata
func NewListMeta(page, limit int, total int64) ListMeta {
	totalPage := 0
	if limit > 0 {
		totalPage = int((total + int64(limit) - 1) / int64(limit))
	}
	return ListMeta{Page: page, Limit: limit, Total: total, TotalPage: totalPage}
}
