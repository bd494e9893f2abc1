package garage

import (
	"context"

	"github.com/garagehub/backend/internal/domain/garage"
	"github.com/garagehub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// VehicleService handles vehicle management
type VehicleService struct {
	stores garage.StoreResolver
	logger *zap.Logger
}

// NewVehicleService creates a new vehicle service
func NewVehicleService(stores garage.StoreResolver, logger *zap.Logger) *VehicleService {
	return &VehicleService{stores: stores, logger: logger}
}

// CreateVehicleInput contains input for registering a vehicle
type CreateVehicleInput struct {
	CustomerID     uuid.UUID
	RegistrationNo string
	Make           string
	Model          string
	Year           int
}

// UpdateVehicleInput contains input for updating a vehicle; nil fields are kept
type UpdateVehicleInput struct {
	ID    uuid.UUID
	Make  *string
	Model *string
	Year  *int
}

// Create registers a vehicle under a customer. Registration numbers are
// unique per tenant.
func (s *VehicleService) Create(ctx context.Context, tenantDomain string, input CreateVehicleInput) (*VehicleDTO, error) {
	store, err := s.stores.GarageStore(ctx, tenantDomain)
	if err != nil {
		return nil, err
	}

	if _, err := store.Customers().FindByID(ctx, input.CustomerID); err != nil {
		if shared.IsDomainError(err, "NOT_FOUND") {
			return nil, shared.NewDomainError("CUSTOMER_NOT_FOUND", "Customer not found")
		}
		return nil, err
	}

	vehicle, err := garage.NewVehicle(input.CustomerID, input.RegistrationNo)
	if err != nil {
		return nil, err
	}
	vehicle.Make = input.Make
	vehicle.Model = input.Model
	vehicle.Year = input.Year

	exists, err := store.Vehicles().ExistsByRegistrationNo(ctx, vehicle.RegistrationNo)
	if err != nil {
		s.logger.Error("Failed to check registration existence", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to check registration availability")
	}
	if exists {
		return nil, shared.NewDomainError("REGISTRATION_EXISTS", "A vehicle with this registration number already exists")
	}

	if err := store.Vehicles().Create(ctx, vehicle); err != nil {
		s.logger.Error("Failed to create vehicle", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create vehicle")
	}

	s.logger.Info("Vehicle registered",
		zap.String("tenant", tenantDomain),
		zap.String("vehicle_id", vehicle.ID.String()),
		zap.String("registration_no", vehicle.RegistrationNo))

	dto := toVehicleDTO(vehicle)
	return &dto, nil
}

// Update updates a vehicle's descriptive fields. Registration number and
// owning customer are immutable.
func (s *VehicleService) Update(ctx context.Context, tenantDomain string, input UpdateVehicleInput) (*VehicleDTO, error) {
	store, err := s.stores.GarageStore(ctx, tenantDomain)
	if err != nil {
		return nil, err
	}

	vehicle, err := store.Vehicles().FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Make != nil {
		vehicle.Make = *input.Make
	}
	if input.Model != nil {
		vehicle.Model = *input.Model
	}
	if input.Year != nil {
		vehicle.Year = *input.Year
	}
	vehicle.Touch()

	if err := store.Vehicles().Update(ctx, vehicle); err != nil {
		s.logger.Error("Failed to update vehicle", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update vehicle")
	}

	dto := toVehicleDTO(vehicle)
	return &dto, nil
}

// Delete removes a vehicle
func (s *VehicleService) Delete(ctx context.Context, tenantDomain string, id uuid.UUID) error {
	store, err := s.stores.GarageStore(ctx, tenantDomain)
	if err != nil {
		return err
	}
	if err := store.Vehicles().Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Vehicle deleted",
		zap.String("tenant", tenantDomain),
		zap.String("vehicle_id", id.String()))
	return nil
}

// Get returns one vehicle
func (s *VehicleService) Get(ctx context.Context, tenantDomain string, id uuid.UUID) (*VehicleDTO, error) {
	store, err := s.stores.GarageStore(ctx, tenantDomain)
	if err != nil {
		return nil, err
	}
	vehicle, err := store.Vehicles().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := toVehicleDTO(vehicle)
	return &dto, nil
}

// List returns vehicles matching the filter
func (s *VehicleService) List(ctx context.Context, tenantDomain string, filter shared.Filter) ([]VehicleDTO, ListMeta, error) {
	store, err := s.stores.GarageStore(ctx, tenantDomain)
	if err != nil {
		return nil, ListMeta{}, err
	}
	filter.Normalize()
	vehicles, total, err := store.Vehicles().FindAll(ctx, filter)
	if err != nil {
		return nil, ListMeta{}, err
	}

	dtos := make([]VehicleDTO, 0, len(vehicles))
	for _, vehicle := range vehicles {
		dtos = append(dtos, toVehicleDTO(vehicle))
	}
	return dtos, NewListMeta(filter.Page, filter.Limit, total), nil
}
