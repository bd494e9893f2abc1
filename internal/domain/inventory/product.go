package inventory

import (
	"strings"

	"github.com/garagehub/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Product is a stocked part. Quantity is the aggregate on-hand quantity
// across all warehouses, maintained from the stock ledger.
type Product struct {
	shared.BaseEntity
	SKU       string          `gorm:"size:100;not null;uniqueIndex" json:"sku"`
	Name      string          `gorm:"size:200;not null" json:"name"`
	Brand     string          `gorm:"size:100" json:"brand"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"unit_price"`
	Quantity  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"quantity"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product with zero stock
func NewProduct(sku, name string, unitPrice decimal.Decimal) (*Product, error) {
	sku = strings.ToUpper(strings.TrimSpace(sku))
	name = strings.TrimSpace(name)
	if sku == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Product SKU cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Product name cannot be empty")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Unit price cannot be negative")
	}

	return &Product{
		BaseEntity: shared.NewBaseEntity(),
		SKU:        sku,
		Name:       name,
		UnitPrice:  unitPrice,
		Quantity:   decimal.Zero,
	}, nil
}

// SetQuantity replaces the aggregate quantity with the ledger-derived sum
func (p *Product) SetQuantity(quantity decimal.Decimal) {
	p.Quantity = quantity
	p.Touch()
}
