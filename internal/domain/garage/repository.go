package garage

import (
	"context"

	"github.com/garagehub/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CustomerRepository defines persistence operations for customers
type CustomerRepository interface {
	Create(ctx context.Context, customer *Customer) error
	Update(ctx context.Context, customer *Customer) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Customer, error)
	FindByIDWithVehicles(ctx context.Context, id uuid.UUID) (*Customer, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]*Customer, int64, error)
	ExistsByPhone(ctx context.Context, phone string) (bool, error)
	CountVehicles(ctx context.Context, customerID uuid.UUID) (int64, error)
}

// VehicleRepository defines persistence operations for vehicles
type VehicleRepository interface {
	Create(ctx context.Context, vehicle *Vehicle) error
	Update(ctx context.Context, vehicle *Vehicle) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Vehicle, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]*Vehicle, int64, error)
	ExistsByRegistrationNo(ctx context.Context, registrationNo string) (bool, error)
}

// WarrantyRepository defines persistence operations for warranties
type WarrantyRepository interface {
	Create(ctx context.Context, warranty *Warranty) error
	Update(ctx context.Context, warranty *Warranty) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Warranty, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]*Warranty, int64, error)
}

// Store bundles the garage repositories for one tenant connection
type Store interface {
	Customers() CustomerRepository
	Vehicles() VehicleRepository
	Warranties() WarrantyRepository

	Transaction(ctx context.Context, fn func(Store) error) error
}

// StoreResolver resolves the garage store for a tenant domain
type StoreResolver interface {
	GarageStore(ctx context.Context, tenantDomain string) (Store, error)
}
