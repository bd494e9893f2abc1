package finance

import (
	"time"

	"github.com/garagehub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Expense records money spent against a category. Totals are derived:
//
//	total_other_expense = sum of line item amounts
//	total_amount        = invoice_cost + total_other_expense
type Expense struct {
	shared.BaseEntity
	CategoryID        uuid.UUID        `gorm:"type:uuid;not null;index" json:"category_id"`
	Category          *ExpenseCategory `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Date              time.Time        `gorm:"not null" json:"date"`
	InvoiceCost       decimal.Decimal  `gorm:"type:decimal(18,2);not null;default:0" json:"invoice_cost"`
	TotalOtherExpense decimal.Decimal  `gorm:"type:decimal(18,2);not null;default:0" json:"total_other_expense"`
	TotalAmount       decimal.Decimal  `gorm:"type:decimal(18,2);not null;default:0" json:"total_amount"`
	Notes             string           `gorm:"size:1000" json:"notes"`
	Items             []ExpenseItem    `gorm:"foreignKey:ExpenseID" json:"expense_items"`
}

// ExpenseItem is one line item of an expense
type ExpenseItem struct {
	shared.BaseEntity
	ExpenseID uuid.UUID       `gorm:"type:uuid;not null;index" json:"expense_id"`
	Name      string          `gorm:"size:200;not null" json:"name"`
	Amount    decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"amount"`
}

// TableName returns the table name for GORM
func (Expense) TableName() string {
	return "expenses"
}

// TableName returns the table name for GORM
func (ExpenseItem) TableName() string {
	return "expense_items"
}

// NewExpense creates an expense and computes its derived totals
func NewExpense(categoryID uuid.UUID, date time.Time, invoiceCost decimal.Decimal, items []ExpenseItem) (*Expense, error) {
	if categoryID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Expense category is required")
	}
	if invoiceCost.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invoice cost cannot be negative")
	}
	if date.IsZero() {
		date = time.Now()
	}

	e := &Expense{
		BaseEntity:  shared.NewBaseEntity(),
		CategoryID:  categoryID,
		Date:        date,
		InvoiceCost: invoiceCost,
		Items:       make([]ExpenseItem, 0, len(items)),
	}
	for _, item := range items {
		if err := e.addItem(item.Name, item.Amount); err != nil {
			return nil, err
		}
	}
	e.recalculate()
	return e, nil
}

func (e *Expense) addItem(name string, amount decimal.Decimal) error {
	if name == "" {
		return shared.NewDomainError("INVALID_INPUT", "Expense item name cannot be empty")
	}
	if amount.IsNegative() {
		return shared.NewDomainError("INVALID_INPUT", "Expense item amount cannot be negative")
	}
	e.Items = append(e.Items, ExpenseItem{
		BaseEntity: shared.NewBaseEntity(),
		ExpenseID:  e.ID,
		Name:       name,
		Amount:     amount,
	})
	return nil
}

// ReplaceItems swaps the line items and recomputes totals
func (e *Expense) ReplaceItems(items []ExpenseItem) error {
	e.Items = make([]ExpenseItem, 0, len(items))
	for _, item := range items {
		if err := e.addItem(item.Name, item.Amount); err != nil {
			return err
		}
	}
	e.recalculate()
	return nil
}

// SetInvoiceCost updates the base cost and recomputes totals
func (e *Expense) SetInvoiceCost(cost decimal.Decimal) error {
	if cost.IsNegative() {
		return shared.NewDomainError("INVALID_INPUT", "Invoice cost cannot be negative")
	}
	e.InvoiceCost = cost
	e.recalculate()
	return nil
}

func (e *Expense) recalculate() {
	total := decimal.Zero
	for i := range e.Items {
		total = total.Add(e.Items[i].Amount)
	}
	e.TotalOtherExpense = total
	e.TotalAmount = e.InvoiceCost.Add(total)
	e.Touch()
}
