package garage

import (
	"strings"

	"github.com/garagehub/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// WarrantyStatus is the lifecycle state of a warranty offer
type WarrantyStatus string

const (
	WarrantyStatusActive   WarrantyStatus = "active"
	WarrantyStatusInactive WarrantyStatus = "inactive"
)

// Warranty is a coverage offer attached to a product
type Warranty struct {
	shared.BaseEntity
	ProductID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"product_id"`
	Name           string         `gorm:"size:200;not null" json:"name"`
	DurationMonths int            `gorm:"not null" json:"duration_months"`
	Terms          string         `gorm:"size:2000" json:"terms"`
	Status         WarrantyStatus `gorm:"size:20;not null;default:active" json:"status"`
}

// TableName returns the table name for GORM
func (Warranty) TableName() string {
	return "warranties"
}

// NewWarranty creates an active warranty for a product
func NewWarranty(productID uuid.UUID, name string, durationMonths int) (*Warranty, error) {
	name = strings.TrimSpace(name)
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Warranty must reference a product")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Warranty name cannot be empty")
	}
	if durationMonths <= 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Warranty duration must be positive")
	}

	return &Warranty{
		BaseEntity:     shared.NewBaseEntity(),
		ProductID:      productID,
		Name:           name,
		DurationMonths: durationMonths,
		Status:         WarrantyStatusActive,
	}, nil
}

// Deactivate marks the warranty inactive
func (w *Warranty) Deactivate() {
	w.Status = WarrantyStatusInactive
	w.Touch()
}
