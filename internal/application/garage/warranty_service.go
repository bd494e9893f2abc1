package garage

import (
	"context"

	"github.com/garagehub/backend/internal/domain/garage"
	"github.com/garagehub/backend/internal/domain/inventory"
	"github.com/garagehub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// WarrantyService handles warranty offers attached to products
type WarrantyService struct {
	stores    garage.StoreResolver
	inventory inventory.StoreResolver
	logger    *zap.Logger
}

// NewWarrantyService creates a new warranty service
func NewWarrantyService(stores garage.StoreResolver, inv inventory.StoreResolver, logger *zap.Logger) *WarrantyService {
	return &WarrantyService{stores: stores, inventory: inv, logger: logger}
}

// CreateWarrantyInput contains input for creating a warranty
type CreateWarrantyInput struct {
	ProductID      uuid.UUID
	Name           string
	DurationMonths int
	Terms          string
}

// UpdateWarrantyInput contains input for updating a warranty; nil fields are kept
type UpdateWarrantyInput struct {
	ID             uuid.UUID
	Name           *string
	DurationMonths *int
	Terms          *string
	Status         *string
}

// Create creates a warranty for an existing product
func (s *WarrantyService) Create(ctx context.Context, tenantDomain string, input CreateWarrantyInput) (*WarrantyDTO, error) {
	store, err := s.stores.GarageStore(ctx, tenantDomain)
	if err != nil {
		return nil, err
	}

	invStore, err := s.inventory.InventoryStore(ctx, tenantDomain)
	if err != nil {
		return nil, err
	}
	if _, err := invStore.Products().FindByID(ctx, input.ProductID); err != nil {
		if shared.IsDomainError(err, "NOT_FOUND") {
			return nil, shared.NewDomainError("PRODUCT_NOT_FOUND", "Product not found")
		}
		return nil, err
	}

	warranty, err := garage.NewWarranty(input.ProductID, input.Name, input.DurationMonths)
	if err != nil {
		return nil, err
	}
	warranty.Terms = input.Terms

	if err := store.Warranties().Create(ctx, warranty); err != nil {
		s.logger.Error("Failed to create warranty", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create warranty")
	}

	s.logger.Info("Warranty created",
		zap.String("tenant", tenantDomain),
		zap.String("warranty_id", warranty.ID.String()),
		zap.String("product_id", input.ProductID.String()))

	dto := toWarrantyDTO(warranty)
	return &dto, nil
}

// Update updates a warranty's mutable fields
func (s *WarrantyService) Update(ctx context.Context, tenantDomain string, input UpdateWarrantyInput) (*WarrantyDTO, error) {
	store, err := s.stores.GarageStore(ctx, tenantDomain)
	if err != nil {
		return nil, err
	}

	warranty, err := store.Warranties().FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, shared.NewDomainError("INVALID_INPUT", "Warranty name cannot be empty")
		}
		warranty.Name = *input.Name
	}
	if input.DurationMonths != nil {
		if *input.DurationMonths <= 0 {
			return nil, shared.NewDomainError("INVALID_INPUT", "Warranty duration must be positive")
		}
		warranty.DurationMonths = *input.DurationMonths
	}
	if input.Terms != nil {
		warranty.Terms = *input.Terms
	}
	if input.Status != nil {
		switch garage.WarrantyStatus(*input.Status) {
		case garage.WarrantyStatusActive:
			warranty.Status = garage.WarrantyStatusActive
		case garage.WarrantyStatusInactive:
			warranty.Deactivate()
		default:
			return nil, shared.NewDomainErrorf("INVALID_INPUT", "unknown warranty status %q", *input.Status)
		}
	}
	warranty.Touch()

	if err := store.Warranties().Update(ctx, warranty); err != nil {
		s.logger.Error("Failed to update warranty", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update warranty")
	}

	dto := toWarrantyDTO(warranty)
	return &dto, nil
}

// Delete removes a warranty
func (s *WarrantyService) Delete(ctx context.Context, tenantDomain string, id uuid.UUID) error {
	store, err := s.stores.GarageStore(ctx, tenantDomain)
	if err != nil {
		return err
	}
	if err := store.Warranties().Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Warranty deleted",
		zap.String("tenant", tenantDomain),
		zap.String("warranty_id", id.String()))
	return nil
}

// Get returns one warranty
func (s *WarrantyService) Get(ctx context.Context, tenantDomain string, id uuid.UUID) (*WarrantyDTO, error) {
	store, err := s.stores.GarageStore(ctx, tenantDomain)
	if err != nil {
		return nil, err
	}
	warranty, err := store.Warranties().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := toWarrantyDTO(warranty)
	return &dto, nil
}

// List returns warranties matching the filter
func (s *WarrantyService) List(ctx context.Context, tenantDomain string, filter shared.Filter) ([]WarrantyDTO, ListMeta, error) {
	store, err := s.stores.GarageStore(ctx, tenantDomain)
	if err != nil {
		return nil, ListMeta{}, err
	}
	filter.Normalize()
	warranties, total, err := store.Warranties().FindAll(ctx, filter)
	if err != nil {
		return nil, ListMeta{}, err
	}

	dtos := make([]WarrantyDTO, 0, len(warranties))
	for _, warranty := range warranties {
		dtos = append(dtos, toWarrantyDTO(warranty))
	}
	return dtos, NewListMeta(filter.Page, filter.Limit, total), nil
}
