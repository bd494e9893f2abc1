package garage

import (
	"strings"

	"github.com/garagehub/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Vehicle belongs to one customer. Registration number is unique per tenant.
type Vehicle struct {
	shared.BaseEntity
	CustomerID     uuid.UUID `gorm:"type:uuid;not null;index" json:"customer_id"`
	RegistrationNo string    `gorm:"size:50;not null;uniqueIndex" json:"registration_no"`
	Make           string    `gorm:"size:100" json:"make"`
	Model          string    `gorm:"size:100" json:"model"`
	Year           int       `json:"year"`
}

// TableName returns the table name for GORM
func (Vehicle) TableName() string {
	return "vehicles"
}

// NewVehicle creates a vehicle for a customer
func NewVehicle(customerID uuid.UUID, registrationNo string) (*Vehicle, error) {
	registrationNo = strings.ToUpper(strings.TrimSpace(registrationNo))
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Vehicle must reference a customer")
	}
	if registrationNo == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Registration number cannot be empty")
	}

	return &Vehicle{
		BaseEntity:     shared.NewBaseEntity(),
		CustomerID:     customerID,
		RegistrationNo: registrationNo,
	}, nil
}
