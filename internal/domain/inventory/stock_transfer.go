package inventory

import (
	"github.com/garagehub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockTransfer records a movement of product quantity between two
// warehouses. It references the paired ledger entries written with it in
// the same transaction.
type StockTransfer struct {
	shared.BaseEntity
	ProductID         uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	SourceWarehouseID uuid.UUID       `gorm:"type:uuid;not null;index" json:"source_warehouse_id"`
	DestWarehouseID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"dest_warehouse_id"`
	Quantity          decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"quantity"`
	OutEntryID        uuid.UUID       `gorm:"type:uuid;not null" json:"out_entry_id"`
	InEntryID         uuid.UUID       `gorm:"type:uuid;not null" json:"in_entry_id"`
	Note              string          `gorm:"size:500" json:"note"`
}

// TableName returns the table name for GORM
func (StockTransfer) TableName() string {
	return "stock_transfers"
}

// NewStockTransfer creates a transfer record referencing its ledger entries
func NewStockTransfer(productID, sourceID, destID uuid.UUID, quantity decimal.Decimal, outEntryID, inEntryID uuid.UUID) (*StockTransfer, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Product is required")
	}
	if sourceID == uuid.Nil || destID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Source and destination warehouses are required")
	}
	if sourceID == destID {
		return nil, shared.NewDomainError("INVALID_INPUT", "Source and destination warehouses must differ")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_INPUT", "Transfer quantity must be positive")
	}
	if outEntryID == uuid.Nil || inEntryID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Transfer must reference its ledger entries")
	}

	return &StockTransfer{
		BaseEntity:        shared.NewBaseEntity(),
		ProductID:         productID,
		SourceWarehouseID: sourceID,
		DestWarehouseID:   destID,
		Quantity:          quantity,
		OutEntryID:        outEntryID,
		InEntryID:         inEntryID,
	}, nil
}
