package garage

import (
	"context"

	"github.com/garagehub/backend/internal/domain/garage"
	"github.com/garagehub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CustomerService handles customer management
type CustomerService struct {
	stores garage.StoreResolver
	logger *zap.Logger
}

// NewCustomerService creates a new customer service
func NewCustomerService(stores garage.StoreResolver, logger *zap.Logger) *CustomerService {
	return &CustomerService{stores: stores, logger: logger}
}

// CreateCustomerInput contains input for creating a customer
type CreateCustomerInput struct {
	Name    string
	Phone   string
	Email   string
	Address string
}

// UpdateCustomerInput contains input for updating a customer; nil fields are kept
type UpdateCustomerInput struct {
	ID      uuid.UUID
	Name    *string
	Phone   *string
	Email   *string
	Address *string
}

// Create creates a customer. Phone numbers are unique per tenant.
func (s *CustomerService) Create(ctx context.Context, tenantDomain string, input CreateCustomerInput) (*CustomerDTO, error) {
	store, err := s.stores.GarageStore(ctx, tenantDomain)
	if err != nil {
		return nil, err
	}

	customer, err := garage.NewCustomer(input.Name, input.Phone)
	if err != nil {
		return nil, err
	}
	customer.Email = input.Email
	customer.Address = input.Address

	exists, err := store.Customers().ExistsByPhone(ctx, customer.Phone)
	if err != nil {
		s.logger.Error("Failed to check phone existence", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to check phone availability")
	}
	if exists {
		return nil, shared.NewDomainError("PHONE_EXISTS", "A customer with this phone number already exists")
	}

	if err := store.Customers().Create(ctx, customer); err != nil {
		s.logger.Error("Failed to create customer", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create customer")
	}

	s.logger.Info("Customer created",
		zap.String("tenant", tenantDomain),
		zap.String("customer_id", customer.ID.String()))

	dto := toCustomerDTO(customer)
	return &dto, nil
}

// Update updates a customer's mutable fields
func (s *CustomerService) Update(ctx context.Context, tenantDomain string, input UpdateCustomerInput) (*CustomerDTO, error) {
	store, err := s.stores.GarageStore(ctx, tenantDomain)
	if err != nil {
		return nil, err
	}

	customer, err := store.Customers().FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, shared.NewDomainError("INVALID_INPUT", "Customer name cannot be empty")
		}
		customer.Name = *input.Name
	}
	if input.Phone != nil && *input.Phone != customer.Phone {
		exists, err := store.Customers().ExistsByPhone(ctx, *input.Phone)
		if err != nil {
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to check phone availability")
		}
		if exists {
			return nil, shared.NewDomainError("PHONE_EXISTS", "A customer with this phone number already exists")
		}
		customer.Phone = *input.Phone
	}
	if input.Email != nil {
		customer.Email = *input.Email
	}
	if input.Address != nil {
		customer.Address = *input.Address
	}
	customer.Touch()

	if err := store.Customers().Update(ctx, customer); err != nil {
		s.logger.Error("Failed to update customer", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update customer")
	}

	dto := toCustomerDTO(customer)
	return &dto, nil
}

// Delete removes a customer. A customer with registered vehicles cannot be deleted.
func (s *CustomerService) Delete(ctx context.Context, tenantDomain string, id uuid.UUID) error {
	store, err := s.stores.GarageStore(ctx, tenantDomain)
	if err != nil {
		return err
	}

	count, err := store.Customers().CountVehicles(ctx, id)
	if err != nil {
		s.logger.Error("Failed to count customer vehicles", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to check customer usage")
	}
	if count > 0 {
		return shared.NewDomainErrorf("CUSTOMER_HAS_VEHICLES", "Customer has %d vehicle(s) and cannot be deleted", count)
	}

	if err := store.Customers().Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Customer deleted",
		zap.String("tenant", tenantDomain),
		zap.String("customer_id", id.String()))
	return nil
}

// Get returns one customer with vehicles preloaded
func (s *CustomerService) Get(ctx context.Context, tenantDomain string, id uuid.UUID) (*CustomerDTO, error) {
	store, err := s.stores.GarageStore(ctx, tenantDomain)
	if err != nil {
		return nil, err
	}
	customer, err := store.Customers().FindByIDWithVehicles(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := toCustomerDTO(customer)
	return &dto, nil
}

// List returns customers matching the filter
func (s *CustomerService) List(ctx context.Context, tenantDomain string, filter shared.Filter) ([]CustomerDTO, ListMeta, error) {
	store, err := s.stores.GarageStore(ctx, tenantDomain)
	if err != nil {
		return nil, ListMeta{}, err
	}
	filter.Normalize()
	customers, total, err := store.Customers().FindAll(ctx, filter)
	if err != nil {
		return nil, ListMeta{}, err
	}

	dtos := make([]CustomerDTO, 0, len(customers))
	for _, customer := range customers {
		dtos = append(dtos, toCustomerDTO(customer))
	}
	return dtos, NewListMeta(filter.Page, filter.Limit, total), nil
}
