package inventory

import (
	"time"

	"github.com/garagehub/backend/internal/domain/inventory"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductDTO represents a product with its aggregate quantity
type ProductDTO struct {
	ID        uuid.UUID       `json:"id"`
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	Brand     string          `json:"brand,omitempty"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  decimal.Decimal `json:"quantity"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func toProductDTO(p *inventory.Product) ProductDTO {
	return ProductDTO{
		ID:        p.ID,
		SKU:       p.SKU,
		Name:      p.Name,
		Brand:     p.Brand,
		UnitPrice: p.UnitPrice,
		Quantity:  p.Quantity,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// WarehouseDTO represents a warehouse
type WarehouseDTO struct {
	ID        uuid.UUID `json:"id"`
	Code      int       `json:"code"`
	Name      string    `json:"name"`
	Address   string    `json:"address,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toWarehouseDTO(w *inventory.Warehouse) WarehouseDTO {
	return WarehouseDTO{
		ID:        w.ID,
		Code:      w.Code,
		Name:      w.Name,
		Address:   w.Address,
		Phone:     w.Phone,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}

// StockTransactionDTO represents one signed ledger entry
type StockTransactionDTO struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	WarehouseID uuid.UUID       `json:"warehouse_id"`
	Direction   string          `json:"direction"`
	Quantity    decimal.Decimal `json:"quantity"`
	Reference   string          `json:"reference,omitempty"`
	Note        string          `json:"note,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

func toStockTransactionDTO(t *inventory.StockTransaction) StockTransactionDTO {
	return StockTransactionDTO{
		ID:          t.ID,
		ProductID:   t.ProductID,
		WarehouseID: t.WarehouseID,
		Direction:   string(t.Direction),
		Quantity:    t.Quantity,
		Reference:   t.Reference,
		Note:        t.Note,
		CreatedAt:   t.CreatedAt,
	}
}

// StockTransferDTO represents a warehouse-to-warehouse movement
type StockTransferDTO struct {
	ID                uuid.UUID       `json:"id"`
	ProductID         uuid.UUID       `json:"product_id"`
	SourceWarehouseID uuid.UUID       `json:"source_warehouse_id"`
	DestWarehouseID   uuid.UUID       `json:"dest_warehouse_id"`
	Quantity          decimal.Decimal `json:"quantity"`
	Note              string          `json:"note,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
}

func toStockTransferDTO(t *inventory.StockTransfer) StockTransferDTO {
	return StockTransferDTO{
		ID:                t.ID,
		ProductID:         t.ProductID,
		SourceWarehouseID: t.SourceWarehouseID,
		DestWarehouseID:   t.DestWarehouseID,
		Quantity:          t.Quantity,
		Note:              t.Note,
		CreatedAt:         t.CreatedAt,
	}
}

// StockLevelDTO reports current stock of a product at a warehouse
type StockLevelDTO struct {
	ProductID   uuid.UUID       `json:"product_id"`
	WarehouseID *uuid.UUID      `json:"warehouse_id,omitempty"`
	Quantity    decimal.Decimal `json:"quantity"`
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
