package garage

import (
	"time"

	"github.com/garagehub/backend/internal/domain/garage"
	"github.com/google/uuid"
)

// CustomerDTO represents a customer, optionally with vehicles
type CustomerDTO struct {
	ID        uuid.UUID    `json:"id"`
	Name      string       `json:"name"`
	Phone     string       `json:"phone"`
	Email     string       `json:"email,omitempty"`
	Address   string       `json:"address,omitempty"`
	Vehicles  []VehicleDTO `json:"vehicles,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

func toCustomerDTO(c *garage.Customer) CustomerDTO {
	dto := CustomerDTO{
		ID:        c.ID,
		Name:      c.Name,
		Phone:     c.Phone,
		Email:     c.Email,
		Address:   c.Address,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
	for i := range c.Vehicles {
		dto.Vehicles = append(dto.Vehicles, toVehicleDTO(&c.Vehicles[i]))
	}
	return dto
}

// VehicleDTO represents a vehicle
type VehicleDTO struct {
	ID             uuid.UUID `json:"id"`
	CustomerID     uuid.UUID `json:"customer_id"`
	RegistrationNo string    `json:"registration_no"`
	Make           string    `json:"make,omitempty"`
	Model          string    `json:"model,omitempty"`
	Year           int       `json:"year,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func toVehicleDTO(v *garage.Vehicle) VehicleDTO {
	return VehicleDTO{
		ID:             v.ID,
		CustomerID:     v.CustomerID,
		RegistrationNo: v.RegistrationNo,
		Make:           v.Make,
		Model:          v.Model,
		Year:           v.Year,
		CreatedAt:      v.CreatedAt,
		UpdatedAt:      v.UpdatedAt,
	}
}

// WarrantyDTO represents a warranty offer
type WarrantyDTO struct {
	ID             uuid.UUID `json:"id"`
	ProductID      uuid.UUID `json:"product_id"`
	Name           string    `json:"name"`
	DurationMonths int       `json:"duration_months"`
	Terms          string    `json:"terms,omitempty"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func toWarrantyDTO(w *garage.Warranty) WarrantyDTO {
	return WarrantyDTO{
		ID:             w.ID,
		ProductID:      w.ProductID,
		Name:           w.Name,
		DurationMonths: w.DurationMonths,
		Terms:          w.Terms,
		Status:         string(w.Status),
		CreatedAt:      w.CreatedAt,
		UpdatedAt:      w.UpdatedAt,
	}
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
