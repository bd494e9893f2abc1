package inventory

import (
	"strings"

	"github.com/garagehub/backend/internal/domain/shared"
)

// Warehouse is a stock location. Code is a per-tenant sequence assigned on
// creation (max existing code + 1).
type Warehouse struct {
	shared.BaseEntity
	Code    int    `gorm:"not null;uniqueIndex" json:"code"`
	Name    string `gorm:"size:200;not null" json:"name"`
	Address string `gorm:"size:500" json:"address"`
	Phone   string `gorm:"size:50" json:"phone"`
}

// TableName returns the table name for GORM
func (Warehouse) TableName() string {
	return "warehouses"
}

// NewWarehouse creates a warehouse with the given sequence code
func NewWarehouse(code int, name string) (*Warehouse, error) {
	name = strings.TrimSpace(name)
	if code <= 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Warehouse code must be positive")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Warehouse name cannot be empty")
	}

	return &Warehouse{
		BaseEntity: shared.NewBaseEntity(),
		Code:       code,
		Name:       name,
	}, nil
}
