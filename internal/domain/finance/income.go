package finance

import (
	"time"

	"github.com/garagehub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Income records money received for a job. Totals are derived:
//
//	total_other_income   = sum of income item amounts
//	total_invoice_income = parts_income_amount + service_income_amount
//	total_amount         = total_invoice_income + total_other_income
type Income struct {
	shared.BaseEntity
	Date                time.Time       `gorm:"not null" json:"date"`
	PartsIncomeAmount   decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"parts_income_amount"`
	ServiceIncomeAmount decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"service_income_amount"`
	TotalOtherIncome    decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"total_other_income"`
	TotalInvoiceIncome  decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"total_invoice_income"`
	TotalAmount         decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"total_amount"`
	Notes               string          `gorm:"size:1000" json:"notes"`
	Items               []IncomeItem    `gorm:"foreignKey:IncomeID" json:"income_items"`
}

// IncomeItem is one additional income line (tips, sundries)
type IncomeItem struct {
	shared.BaseEntity
	IncomeID uuid.UUID       `gorm:"type:uuid;not null;index" json:"income_id"`
	Name     string          `gorm:"size:200;not null" json:"name"`
	Amount   decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"amount"`
}

// TableName returns the table name for GORM
func (Income) TableName() string {
	return "incomes"
}

// TableName returns the table name for GORM
func (IncomeItem) TableName() string {
	return "income_items"
}

// NewIncome creates an income record and computes its derived totals
func NewIncome(date time.Time, partsIncome, serviceIncome decimal.Decimal, items []IncomeItem) (*Income, error) {
	if partsIncome.IsNegative() || serviceIncome.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Income amounts cannot be negative")
	}
	if date.IsZero() {
		date = time.Now()
	}

	in := &Income{
		BaseEntity:          shared.NewBaseEntity(),
		Date:                date,
		PartsIncomeAmount:   partsIncome,
		ServiceIncomeAmount: serviceIncome,
		Items:               make([]IncomeItem, 0, len(items)),
	}
	for _, item := range items {
		if err := in.addItem(item.Name, item.Amount); err != nil {
			return nil, err
		}
	}
	in.recalculate()
	return in, nil
}

func (in *Income) addItem(name string, amount decimal.Decimal) error {
	if name == "" {
		return shared.NewDomainError("INVALID_INPUT", "Income item name cannot be empty")
	}
	if amount.IsNegative() {
		return shared.NewDomainError("INVALID_INPUT", "Income item amount cannot be negative")
	}
	in.Items = append(in.Items, IncomeItem{
		BaseEntity: shared.NewBaseEntity(),
		IncomeID:   in.ID,
		Name:       name,
		Amount:     amount,
	})
	return nil
}

// ReplaceItems swaps the income items and recomputes totals
func (in *Income) ReplaceItems(items []IncomeItem) error {
	in.Items = make([]IncomeItem, 0, len(items))
	for _, item := range items {
		if err := in.addItem(item.Name, item.Amount); err != nil {
			return err
		}
	}
	in.recalculate()
	return nil
}

// SetInvoiceAmounts updates parts/service income and recomputes totals
func (in *Income) SetInvoiceAmounts(partsIncome, serviceIncome decimal.Decimal) error {
	if partsIncome.IsNegative() || serviceIncome.IsNegative() {
		return shared.NewDomainError("INVALID_INPUT", "Income amounts cannot be negative")
	}
	in.PartsIncomeAmount = partsIncome
	in.ServiceIncomeAmount = serviceIncome
	in.recalculate()
	return nil
}

func (in *Income) recalculate() {
	other := decimal.Zero
	for i := range in.Items {
		other = other.Add(in.Items[i].Amount)
	}
	in.TotalOtherIncome = other
	in.TotalInvoiceIncome = in.PartsIncomeAmount.Add(in.ServiceIncomeAmount)
	in.TotalAmount = in.TotalInvoiceIncome.Add(other)
	in.Touch()
}
