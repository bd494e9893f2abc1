package inventory

import (
	"context"

	"github.com/garagehub/backend/internal/domain/inventory"
	"github.com/garagehub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// StockService maintains the stock ledger. Stock at a warehouse is the sum
// of signed ledger entries; the product row carries only a derived aggregate
// across all warehouses.
type StockService struct {
	stores inventory.StoreResolver
	logger *zap.Logger

	// afterTransferWrites runs inside the transfer transaction after all
	// writes; test-only failure injection.
	afterTransferWrites func(inventory.Store) error
}

// NewStockService creates a new stock service
func NewStockService(stores inventory.StoreResolver, logger *zap.Logger) *StockService {
	return &StockService{stores: stores, logger: logger}
}

// MovementInput contains input for a single stock-in or stock-out entry
type MovementInput struct {
	ProductID   uuid.UUID
	WarehouseID uuid.UUID
	Quantity    decimal.Decimal
	Reference   string
	Note        string
}

// TransferInput contains input for a warehouse-to-warehouse transfer
type TransferInput struct {
	ProductID         uuid.UUID
	SourceWarehouseID uuid.UUID
	DestWarehouseID   uuid.UUID
	Quantity          decimal.Decimal
	Note              string
}

// Receive records a stock-in entry and refreshes the product aggregate
func (s *StockService) Receive(ctx context.Context, tenantDomain string, input MovementInput) (*StockTransactionDTO, error) {
	return s.record(ctx, tenantDomain, input, inventory.StockIn)
}

// Issue records a stock-out entry after checking availability at the
// warehouse, then refreshes the product aggregate.
func (s *StockService) Issue(ctx context.Context, tenantDomain string, input MovementInput) (*StockTransactionDTO, error) {
	return s.record(ctx, tenantDomain, input, inventory.StockOut)
}

func (s *StockService) record(ctx context.Context, tenantDomain string, input MovementInput, direction inventory.StockDirection) (*StockTransactionDTO, error) {
	store, err := s.stores.InventoryStore(ctx, tenantDomain)
	if err != nil {
		return nil, err
	}

	entry, err := inventory.NewStockTransaction(input.ProductID, input.WarehouseID, direction, input.Quantity)
	if err != nil {
		return nil, err
	}
	entry.Reference = input.Reference
	entry.Note = input.Note

	err = store.Transaction(ctx, func(tx inventory.Store) error {
		product, err := tx.Products().FindByID(ctx, input.ProductID)
		if err != nil {
			return err
		}
		exists, err := tx.Warehouses().ExistsByID(ctx, input.WarehouseID)
		if err != nil {
			return shared.NewDomainError("INTERNAL_ERROR", "Failed to validate warehouse")
		}
		if !exists {
			return shared.NewDomainError("WAREHOUSE_NOT_FOUND", "Warehouse not found")
		}

		if direction == inventory.StockOut {
			available, err := tx.StockTransactions().SumQuantity(ctx, input.ProductID, input.WarehouseID)
			if err != nil {
				return shared.NewDomainError("INTERNAL_ERROR", "Failed to compute stock level")
			}
			if available.LessThan(input.Quantity) {
				return shared.NewDomainErrorf("INSUFFICIENT_STOCK", "Only %s available at warehouse, %s requested",
					available.String(), input.Quantity.String())
			}
		}

		if err := tx.StockTransactions().Create(ctx, entry); err != nil {
			return shared.NewDomainError("INTERNAL_ERROR", "Failed to record stock movement")
		}
		return s.refreshAggregate(ctx, tx, product)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Stock movement recorded",
		zap.String("tenant", tenantDomain),
		zap.String("product_id", input.ProductID.String()),
		zap.String("warehouse_id", input.WarehouseID.String()),
		zap.String("direction", string(direction)),
		zap.String("quantity", input.Quantity.String()))

	dto := toStockTransactionDTO(entry)
	return &dto, nil
}

// Transfer moves quantity between two warehouses. The out entry, in entry
// and transfer record are written in one transaction: either all three land
// or none do, so no partial movement can ever be observed.
func (s *StockService) Transfer(ctx context.Context, tenantDomain string, input TransferInput) (*StockTransferDTO, error) {
	store, err := s.stores.InventoryStore(ctx, tenantDomain)
	if err != nil {
		return nil, err
	}

	var transfer *inventory.StockTransfer
	err = store.Transaction(ctx, func(tx inventory.Store) error {
		product, err := tx.Products().FindByID(ctx, input.ProductID)
		if err != nil {
			return err
		}
		for _, warehouseID := range []uuid.UUID{input.SourceWarehouseID, input.DestWarehouseID} {
			exists, err := tx.Warehouses().ExistsByID(ctx, warehouseID)
			if err != nil {
				return shared.NewDomainError("INTERNAL_ERROR", "Failed to validate warehouse")
			}
			if !exists {
				return shared.NewDomainError("WAREHOUSE_NOT_FOUND", "Warehouse not found")
			}
		}

		available, err := tx.StockTransactions().SumQuantity(ctx, input.ProductID, input.SourceWarehouseID)
		if err != nil {
			return shared.NewDomainError("INTERNAL_ERROR", "Failed to compute stock level")
		}
		if available.LessThan(input.Quantity) {
			return shared.NewDomainErrorf("INSUFFICIENT_STOCK", "Only %s available at source warehouse, %s requested",
				available.String(), input.Quantity.String())
		}

		outEntry, err := inventory.NewStockTransaction(input.ProductID, input.SourceWarehouseID, inventory.StockOut, input.Quantity)
		if err != nil {
			return err
		}
		inEntry, err := inventory.NewStockTransaction(input.ProductID, input.DestWarehouseID, inventory.StockIn, input.Quantity)
		if err != nil {
			return err
		}
		transfer, err = inventory.NewStockTransfer(input.ProductID, input.SourceWarehouseID, input.DestWarehouseID,
			input.Quantity, outEntry.ID, inEntry.ID)
		if err != nil {
			return err
		}
		transfer.Note = input.Note
		outEntry.Reference = "transfer:" + transfer.ID.String()
		inEntry.Reference = "transfer:" + transfer.ID.String()

		if err := tx.StockTransactions().Create(ctx, outEntry); err != nil {
			return shared.NewDomainError("INTERNAL_ERROR", "Failed to record outbound entry")
		}
		if err := tx.StockTransactions().Create(ctx, inEntry); err != nil {
			return shared.NewDomainError("INTERNAL_ERROR", "Failed to record inbound entry")
		}
		if err := tx.StockTransfers().Create(ctx, transfer); err != nil {
			return shared.NewDomainError("INTERNAL_ERROR", "Failed to record transfer")
		}
		if err := s.refreshAggregate(ctx, tx, product); err != nil {
			return err
		}

		if s.afterTransferWrites != nil {
			return s.afterTransferWrites(tx)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Stock transferred",
		zap.String("tenant", tenantDomain),
		zap.String("transfer_id", transfer.ID.String()),
		zap.String("product_id", input.ProductID.String()),
		zap.String("quantity", input.Quantity.String()))

	dto := toStockTransferDTO(transfer)
	return &dto, nil
}

// DeleteTransfer reverses a transfer by deleting the transfer record and both
// of its ledger entries in one transaction.
func (s *StockService) DeleteTransfer(ctx context.Context, tenantDomain string, id uuid.UUID) error {
	store, err := s.stores.InventoryStore(ctx, tenantDomain)
	if err != nil {
		return err
	}

	err = store.Transaction(ctx, func(tx inventory.Store) error {
		transfer, err := tx.StockTransfers().FindByID(ctx, id)
		if err != nil {
			return err
		}

		// Reversal must not leave the destination short: the in entry being
		// removed may already be consumed by later out entries.
		destStock, err := tx.StockTransactions().SumQuantity(ctx, transfer.ProductID, transfer.DestWarehouseID)
		if err != nil {
			return shared.NewDomainError("INTERNAL_ERROR", "Failed to compute stock level")
		}
		if destStock.LessThan(transfer.Quantity) {
			return shared.NewDomainError("INVALID_STATE", "Transferred stock already consumed at destination")
		}

		if err := tx.StockTransactions().Delete(ctx, transfer.OutEntryID); err != nil {
			return shared.NewDomainError("INTERNAL_ERROR", "Failed to remove outbound entry")
		}
		if err := tx.StockTransactions().Delete(ctx, transfer.InEntryID); err != nil {
			return shared.NewDomainError("INTERNAL_ERROR", "Failed to remove inbound entry")
		}
		if err := tx.StockTransfers().Delete(ctx, id); err != nil {
			return shared.NewDomainError("INTERNAL_ERROR", "Failed to remove transfer")
		}

		product, err := tx.Products().FindByID(ctx, transfer.ProductID)
		if err != nil {
			return err
		}
		return s.refreshAggregate(ctx, tx, product)
	})
	if err != nil {
		return err
	}

	s.logger.Info("Stock transfer reversed",
		zap.String("tenant", tenantDomain),
		zap.String("transfer_id", id.String()))
	return nil
}

// refreshAggregate recomputes the product's cross-warehouse quantity from
// the ledger and persists it.
func (s *StockService) refreshAggregate(ctx context.Context, store inventory.Store, product *inventory.Product) error {
	total, err := store.StockTransactions().SumQuantityAllWarehouses(ctx, product.ID)
	if err != nil {
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to recompute product quantity")
	}
	product.SetQuantity(total)
	if err := store.Products().Update(ctx, product); err != nil {
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to update product quantity")
	}
	return nil
}

// Level reports current stock for a product, at one warehouse or overall
func (s *StockService) Level(ctx context.Context, tenantDomain string, productID uuid.UUID, warehouseID *uuid.UUID) (*StockLevelDTO, error) {
	store, err := s.stores.InventoryStore(ctx, tenantDomain)
	if err != nil {
		return nil, err
	}

	if _, err := store.Products().FindByID(ctx, productID); err != nil {
		return nil, err
	}

	var quantity decimal.Decimal
	if warehouseID != nil {
		quantity, err = store.StockTransactions().SumQuantity(ctx, productID, *warehouseID)
	} else {
		quantity, err = store.StockTransactions().SumQuantityAllWarehouses(ctx, productID)
	}
	if err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to compute stock level")
	}

	return &StockLevelDTO{ProductID: productID, WarehouseID: warehouseID, Quantity: quantity}, nil
}

// ListTransactions returns ledger entries matching the filter
func (s *StockService) ListTransactions(ctx context.Context, tenantDomain string, filter shared.Filter) ([]StockTransactionDTO, ListMeta, error) {
	store, err := s.stores.InventoryStore(ctx, tenantDomain)
	if err != nil {
		return nil, ListMeta{}, err
	}
	filter.Normalize()
	entries, total, err := store.StockTransactions().FindAll(ctx, filter)
	if err != nil {
		return nil, ListMeta{}, err
	}

	dtos := make([]StockTransactionDTO, 0, len(entries))
	for _, entry := range entries {
		dtos = append(dtos, toStockTransactionDTO(entry))
	}
	return dtos, NewListMeta(filter.Page, filter.Limit, total), nil
}

// ListTransfers returns transfer records matching the filter
func (s *StockService) ListTransfers(ctx context.Context, tenantDomain string, filter shared.Filter) ([]StockTransferDTO, ListMeta, error) {
	store, err := s.stores.InventoryStore(ctx, tenantDomain)
	if err != nil {
		return nil, ListMeta{}, err
	}
	filter.Normalize()
	transfers, total, err := store.StockTransfers().FindAll(ctx, filter)
	if err != nil {
		return nil, ListMeta{}, err
	}

	dtos := make([]StockTransferDTO, 0, len(transfers))
	for _, transfer := range transfers {
		dtos = append(dtos, toStockTransferDTO(transfer))
	}
	return dtos, NewListMeta(filter.Page, filter.Limit, total), nil
}
