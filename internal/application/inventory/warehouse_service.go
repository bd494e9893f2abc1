package inventory

import (
	"context"

	"github.com/garagehub/backend/internal/domain/inventory"
	"github.com/garagehub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// WarehouseService handles warehouse management. Codes are a per-tenant
// sequence: each new warehouse gets the highest existing code plus one.
type WarehouseService struct {
	stores inventory.StoreResolver
	logger *zap.Logger
}

// NewWarehouseService creates a new warehouse service
func NewWarehouseService(stores inventory.StoreResolver, logger *zap.Logger) *WarehouseService {
	return &WarehouseService{stores: stores, logger: logger}
}

// CreateWarehouseInput contains input for creating a warehouse
type CreateWarehouseInput struct {
	Name    string
	Address string
	Phone   string
}

// UpdateWarehouseInput contains input for updating a warehouse; nil fields are kept
type UpdateWarehouseInput struct {
	ID      uuid.UUID
	Name    *string
	Address *string
	Phone   *string
}

// Create creates a warehouse with the next sequence code. The code is
// assigned inside a transaction so concurrent creates cannot collide.
func (s *WarehouseService) Create(ctx context.Context, tenantDomain string, input CreateWarehouseInput) (*WarehouseDTO, error) {
	store, err := s.stores.InventoryStore(ctx, tenantDomain)
	if err != nil {
		return nil, err
	}

	var warehouse *inventory.Warehouse
	err = store.Transaction(ctx, func(tx inventory.Store) error {
		maxCode, err := tx.Warehouses().MaxCode(ctx)
		if err != nil {
			return shared.NewDomainError("INTERNAL_ERROR", "Failed to determine warehouse code")
		}

		warehouse, err = inventory.NewWarehouse(maxCode+1, input.Name)
		if err != nil {
			return err
		}
		warehouse.Address = input.Address
		warehouse.Phone = input.Phone

		return tx.Warehouses().Create(ctx, warehouse)
	})
	if err != nil {
		s.logger.Error("Failed to create warehouse", zap.Error(err))
		return nil, err
	}

	s.logger.Info("Warehouse created",
		zap.String("tenant", tenantDomain),
		zap.String("warehouse_id", warehouse.ID.String()),
		zap.Int("code", warehouse.Code))

	dto := toWarehouseDTO(warehouse)
	return &dto, nil
}

// Update updates a warehouse's mutable fields. Code is immutable.
func (s *WarehouseService) Update(ctx context.Context, tenantDomain string, input UpdateWarehouseInput) (*WarehouseDTO, error) {
	store, err := s.stores.InventoryStore(ctx, tenantDomain)
	if err != nil {
		return nil, err
	}

	warehouse, err := store.Warehouses().FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, shared.NewDomainError("INVALID_INPUT", "Warehouse name cannot be empty")
		}
		warehouse.Name = *input.Name
	}
	if input.Address != nil {
		warehouse.Address = *input.Address
	}
	if input.Phone != nil {
		warehouse.Phone = *input.Phone
	}
	warehouse.Touch()

	if err := store.Warehouses().Update(ctx, warehouse); err != nil {
		s.logger.Error("Failed to update warehouse", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update warehouse")
	}

	dto := toWarehouseDTO(warehouse)
	return &dto, nil
}

// Delete removes a warehouse. A warehouse with ledger entries cannot be deleted.
func (s *WarehouseService) Delete(ctx context.Context, tenantDomain string, id uuid.UUID) error {
	store, err := s.stores.InventoryStore(ctx, tenantDomain)
	if err != nil {
		return err
	}

	count, err := store.StockTransactions().CountByWarehouse(ctx, id)
	if err != nil {
		s.logger.Error("Failed to count warehouse ledger entries", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to check warehouse usage")
	}
	if count > 0 {
		return shared.NewDomainErrorf("WAREHOUSE_IN_USE", "Warehouse has %d stock movement(s) and cannot be deleted", count)
	}

	if err := store.Warehouses().Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Warehouse deleted",
		zap.String("tenant", tenantDomain),
		zap.String("warehouse_id", id.String()))
	return nil
}

// Get returns one warehouse
func (s *WarehouseService) Get(ctx context.Context, tenantDomain string, id uuid.UUID) (*WarehouseDTO, error) {
	store, err := s.stores.InventoryStore(ctx, tenantDomain)
	if err != nil {
		return nil, err
	}
	warehouse, err := store.Warehouses().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := toWarehouseDTO(warehouse)
	return &dto, nil
}

// List returns warehouses matching the filter
func (s *WarehouseService) List(ctx context.Context, tenantDomain string, filter shared.Filter) ([]WarehouseDTO, ListMeta, error) {
	store, err := s.stores.InventoryStore(ctx, tenantDomain)
	if err != nil {
		return nil, ListMeta{}, err
	}
	filter.Normalize()
	warehouses, total, err := store.Warehouses().FindAll(ctx, filter)
	if err != nil {
		return nil, ListMeta{}, err
	}

	dtos := make([]WarehouseDTO, 0, len(warehouses))
	for _, warehouse := range warehouses {
		dtos = append(dtos, toWarehouseDTO(warehouse))
	}
	return dtos, NewListMeta(filter.Page, filter.Limit, total), nil
}
