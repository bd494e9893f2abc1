package finance

import (
	"strings"

	"github.com/garagehub/backend/internal/domain/shared"
)

// ExpenseCategory groups expenses. The (name, code) pair is unique per tenant.
type ExpenseCategory struct {
	shared.BaseEntity
	Name string `gorm:"size:100;not null;uniqueIndex:idx_expense_category_name_code,priority:1" json:"name"`
	Code string `gorm:"size:50;not null;uniqueIndex:idx_expense_category_name_code,priority:2" json:"code"`
}

// TableName returns the table name for GORM
func (ExpenseCategory) TableName() string {
	return "expense_categories"
}

// NewExpenseCategory creates a new expense category
func NewExpenseCategory(name, code string) (*ExpenseCategory, error) {
	name = strings.TrimSpace(name)
	code = strings.ToUpper(strings.TrimSpace(code))
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Category name cannot be empty")
	}
	if code == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Category code cannot be empty")
	}

	return &ExpenseCategory{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Code:       code,
	}, nil
}
