package inventory

import (
	"github.com/garagehub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockDirection is the sign of a ledger entry
type StockDirection string

const (
	StockIn  StockDirection = "in"
	StockOut StockDirection = "out"
)

// StockTransaction is one signed ledger entry for a product at a warehouse.
// Current stock at a warehouse is the sum of signed quantities; no running
// balance is stored on the entry.
type StockTransaction struct {
	shared.BaseEntity
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;index:idx_stock_product_warehouse,priority:1" json:"product_id"`
	WarehouseID uuid.UUID       `gorm:"type:uuid;not null;index:idx_stock_product_warehouse,priority:2" json:"warehouse_id"`
	Direction   StockDirection  `gorm:"size:10;not null" json:"direction"`
	Quantity    decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"quantity"`
	Reference   string          `gorm:"size:200" json:"reference"`
	Note        string          `gorm:"size:500" json:"note"`
}

// TableName returns the table name for GORM
func (StockTransaction) TableName() string {
	return "stock_transactions"
}

// NewStockTransaction creates a signed ledger entry
func NewStockTransaction(productID, warehouseID uuid.UUID, direction StockDirection, quantity decimal.Decimal) (*StockTransaction, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Product is required")
	}
	if warehouseID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Warehouse is required")
	}
	if direction != StockIn && direction != StockOut {
		return nil, shared.NewDomainErrorf("INVALID_INPUT", "unknown stock direction %q", direction)
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_INPUT", "Quantity must be positive")
	}

	return &StockTransaction{
		BaseEntity:  shared.NewBaseEntity(),
		ProductID:   productID,
		WarehouseID: warehouseID,
		Direction:   direction,
		Quantity:    quantity,
	}, nil
}

// SignedQuantity returns the quantity with its ledger sign applied
func (t *StockTransaction) SignedQuantity() decimal.Decimal {
	if t.Direction == StockOut {
		return t.Quantity.Neg()
	}
	return t.Quantity
}
