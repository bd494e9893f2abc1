package garage

import (
	"strings"

	"github.com/garagehub/backend/internal/domain/shared"
)

// Customer is a garage customer. Phone is unique per tenant.
type Customer struct {
	shared.BaseEntity
	Name    string `gorm:"size:200;not null" json:"name"`
	Phone   string `gorm:"size:50;not null;uniqueIndex" json:"phone"`
	Email   string `gorm:"size:200" json:"email"`
	Address string `gorm:"size:500" json:"address"`

	Vehicles []Vehicle `gorm:"foreignKey:CustomerID" json:"vehicles,omitempty"`
}

// TableName returns the table name for GORM
func (Customer) TableName() string {
	return "customers"
}

// NewCustomer creates a new customer
func NewCustomer(name, phone string) (*Customer, error) {
	name = strings.TrimSpace(name)
	phone = strings.TrimSpace(phone)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Customer name cannot be empty")
	}
	if phone == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Customer phone cannot be empty")
	}

	return &Customer{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Phone:      phone,
	}, nil
}
