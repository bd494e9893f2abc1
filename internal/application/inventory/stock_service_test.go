package inventory

import (
	"context"
	"errors"
	"testing"

	"github.com/garagehub/backend/internal/domain/inventory"
	"github.com/garagehub/backend/internal/domain/shared"
	"github.com/garagehub/backend/internal/infrastructure/persistence"
	"github.com/garagehub/backend/internal/infrastructure/persistence/tenantdb"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const testTenant = "alpha"

// singleTenantStores serves every tenant domain from one in-memory database
type singleTenantStores struct {
	db *gorm.DB
}

func (s singleTenantStores) InventoryStore(ctx context.Context, tenantDomain string) (inventory.Store, error) {
	return persistence.NewInventoryStore(s.db), nil
}

func newTestStores(t *testing.T) (singleTenantStores, inventory.Store) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, tenantdb.EnsureSchema(db))
	return singleTenantStores{db: db}, persistence.NewInventoryStore(db)
}

func seedProduct(t *testing.T, store inventory.Store, sku string) *inventory.Product {
	t.Helper()
	product, err := inventory.NewProduct(sku, "Brake Pad Set", decimal.NewFromInt(45))
	require.NoError(t, err)
	require.NoError(t, store.Products().Create(context.Background(), product))
	return product
}

func seedWarehouse(t *testing.T, store inventory.Store, code int, name string) *inventory.Warehouse {
	t.Helper()
	warehouse, err := inventory.NewWarehouse(code, name)
	require.NoError(t, err)
	require.NoError(t, store.Warehouses().Create(context.Background(), warehouse))
	return warehouse
}

func qty(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}

func TestStockService_ReceiveAndIssue(t *testing.T) {
	ctx := context.Background()
	stores, store := newTestStores(t)
	svc := NewStockService(stores, testLogger())

	product := seedProduct(t, store, "BP-100")
	main := seedWarehouse(t, store, 1, "Main")
	annex := seedWarehouse(t, store, 2, "Annex")

	_, err := svc.Receive(ctx, testTenant, MovementInput{
		ProductID: product.ID, WarehouseID: main.ID, Quantity: qty("10"), Reference: "PO-7",
	})
	require.NoError(t, err)
	_, err = svc.Receive(ctx, testTenant, MovementInput{
		ProductID: product.ID, WarehouseID: annex.ID, Quantity: qty("3"),
	})
	require.NoError(t, err)

	t.Run("level per warehouse and overall", func(t *testing.T) {
		level, err := svc.Level(ctx, testTenant, product.ID, &main.ID)
		require.NoError(t, err)
		assert.True(t, level.Quantity.Equal(qty("10")))

		level, err = svc.Level(ctx, testTenant, product.ID, nil)
		require.NoError(t, err)
		assert.True(t, level.Quantity.Equal(qty("13")))
	})

	t.Run("issue reduces the warehouse level", func(t *testing.T) {
		_, err := svc.Issue(ctx, testTenant, MovementInput{
			ProductID: product.ID, WarehouseID: main.ID, Quantity: qty("4"),
		})
		require.NoError(t, err)

		level, err := svc.Level(ctx, testTenant, product.ID, &main.ID)
		require.NoError(t, err)
		assert.True(t, level.Quantity.Equal(qty("6")))
	})

	t.Run("product aggregate follows the ledger", func(t *testing.T) {
		got, err := store.Products().FindByID(ctx, product.ID)
		require.NoError(t, err)
		assert.True(t, got.Quantity.Equal(qty("9")))
	})

	t.Run("issue beyond availability is rejected", func(t *testing.T) {
		_, err := svc.Issue(ctx, testTenant, MovementInput{
			ProductID: product.ID, WarehouseID: main.ID, Quantity: qty("100"),
		})
		require.Error(t, err)
		assert.True(t, shared.IsDomainError(err, "INSUFFICIENT_STOCK"))
	})

	t.Run("issue checks the warehouse, not the total", func(t *testing.T) {
		// 9 on hand overall, but only 3 at the annex.
		_, err := svc.Issue(ctx, testTenant, MovementInput{
			ProductID: product.ID, WarehouseID: annex.ID, Quantity: qty("5"),
		})
		assert.True(t, shared.IsDomainError(err, "INSUFFICIENT_STOCK"))
	})

	t.Run("rejects unknown product and warehouse", func(t *testing.T) {
		_, err := svc.Receive(ctx, testTenant, MovementInput{
			ProductID: uuid.New(), WarehouseID: main.ID, Quantity: qty("1"),
		})
		assert.True(t, shared.IsDomainError(err, "NOT_FOUND"))

		_, err = svc.Receive(ctx, testTenant, MovementInput{
			ProductID: product.ID, WarehouseID: uuid.New(), Quantity: qty("1"),
		})
		assert.True(t, shared.IsDomainError(err, "WAREHOUSE_NOT_FOUND"))
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		_, err := svc.Receive(ctx, testTenant, MovementInput{
			ProductID: product.ID, WarehouseID: main.ID, Quantity: qty("0"),
		})
		assert.True(t, shared.IsDomainError(err, "INVALID_INPUT"))
	})
}

func TestStockService_Transfer(t *testing.T) {
	ctx := context.Background()

	t.Run("moves stock and records both entries", func(t *testing.T) {
		stores, store := newTestStores(t)
		svc := NewStockService(stores, testLogger())

		product := seedProduct(t, store, "BP-100")
		src := seedWarehouse(t, store, 1, "Main")
		dst := seedWarehouse(t, store, 2, "Annex")

		_, err := svc.Receive(ctx, testTenant, MovementInput{
			ProductID: product.ID, WarehouseID: src.ID, Quantity: qty("10"),
		})
		require.NoError(t, err)

		transfer, err := svc.Transfer(ctx, testTenant, TransferInput{
			ProductID: product.ID, SourceWarehouseID: src.ID, DestWarehouseID: dst.ID,
			Quantity: qty("6"), Note: "rebalance",
		})
		require.NoError(t, err)
		assert.Equal(t, src.ID, transfer.SourceWarehouseID)
		assert.Equal(t, dst.ID, transfer.DestWarehouseID)

		srcLevel, err := svc.Level(ctx, testTenant, product.ID, &src.ID)
		require.NoError(t, err)
		assert.True(t, srcLevel.Quantity.Equal(qty("4")))

		dstLevel, err := svc.Level(ctx, testTenant, product.ID, &dst.ID)
		require.NoError(t, err)
		assert.True(t, dstLevel.Quantity.Equal(qty("6")))

		// A transfer never changes the overall quantity.
		got, err := store.Products().FindByID(ctx, product.ID)
		require.NoError(t, err)
		assert.True(t, got.Quantity.Equal(qty("10")))

		entries, _, err := svc.ListTransactions(ctx, testTenant, shared.Filter{})
		require.NoError(t, err)
		assert.Len(t, entries, 3)

		transfers, _, err := svc.ListTransfers(ctx, testTenant, shared.Filter{})
		require.NoError(t, err)
		require.Len(t, transfers, 1)
		assert.Equal(t, transfer.ID, transfers[0].ID)
	})

	t.Run("rejects transfer beyond source availability", func(t *testing.T) {
		stores, store := newTestStores(t)
		svc := NewStockService(stores, testLogger())

		product := seedProduct(t, store, "BP-100")
		src := seedWarehouse(t, store, 1, "Main")
		dst := seedWarehouse(t, store, 2, "Annex")

		_, err := svc.Receive(ctx, testTenant, MovementInput{
			ProductID: product.ID, WarehouseID: src.ID, Quantity: qty("2"),
		})
		require.NoError(t, err)

		_, err = svc.Transfer(ctx, testTenant, TransferInput{
			ProductID: product.ID, SourceWarehouseID: src.ID, DestWarehouseID: dst.ID,
			Quantity: qty("6"),
		})
		assert.True(t, shared.IsDomainError(err, "INSUFFICIENT_STOCK"))
	})

	t.Run("a failure after the writes rolls everything back", func(t *testing.T) {
		stores, store := newTestStores(t)
		svc := NewStockService(stores, testLogger())
		svc.afterTransferWrites = func(inventory.Store) error {
			return errors.New("injected failure")
		}

		product := seedProduct(t, store, "BP-100")
		src := seedWarehouse(t, store, 1, "Main")
		dst := seedWarehouse(t, store, 2, "Annex")

		_, err := svc.Receive(ctx, testTenant, MovementInput{
			ProductID: product.ID, WarehouseID: src.ID, Quantity: qty("10"),
		})
		require.NoError(t, err)

		_, err = svc.Transfer(ctx, testTenant, TransferInput{
			ProductID: product.ID, SourceWarehouseID: src.ID, DestWarehouseID: dst.ID,
			Quantity: qty("6"),
		})
		require.Error(t, err)

		srcLevel, err := svc.Level(ctx, testTenant, product.ID, &src.ID)
		require.NoError(t, err)
		assert.True(t, srcLevel.Quantity.Equal(qty("10")), "source level unchanged")

		dstLevel, err := svc.Level(ctx, testTenant, product.ID, &dst.ID)
		require.NoError(t, err)
		assert.True(t, dstLevel.Quantity.IsZero(), "nothing arrived at destination")

		entries, _, err := svc.ListTransactions(ctx, testTenant, shared.Filter{})
		require.NoError(t, err)
		assert.Len(t, entries, 1, "only the original receive remains")

		transfers, _, err := svc.ListTransfers(ctx, testTenant, shared.Filter{})
		require.NoError(t, err)
		assert.Empty(t, transfers)
	})
}

func TestStockService_DeleteTransfer(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*StockService, inventory.Store, *inventory.Product, *inventory.Warehouse, *inventory.Warehouse, uuid.UUID) {
		stores, store := newTestStores(t)
		svc := NewStockService(stores, testLogger())

		product := seedProduct(t, store, "BP-100")
		src := seedWarehouse(t, store, 1, "Main")
		dst := seedWarehouse(t, store, 2, "Annex")

		_, err := svc.Receive(ctx, testTenant, MovementInput{
			ProductID: product.ID, WarehouseID: src.ID, Quantity: qty("10"),
		})
		require.NoError(t, err)
		transfer, err := svc.Transfer(ctx, testTenant, TransferInput{
			ProductID: product.ID, SourceWarehouseID: src.ID, DestWarehouseID: dst.ID,
			Quantity: qty("6"),
		})
		require.NoError(t, err)
		return svc, store, product, src, dst, transfer.ID
	}

	t.Run("reverses an unconsumed transfer", func(t *testing.T) {
		svc, _, product, src, dst, transferID := setup(t)

		require.NoError(t, svc.DeleteTransfer(ctx, testTenant, transferID))

		srcLevel, err := svc.Level(ctx, testTenant, product.ID, &src.ID)
		require.NoError(t, err)
		assert.True(t, srcLevel.Quantity.Equal(qty("10")))

		dstLevel, err := svc.Level(ctx, testTenant, product.ID, &dst.ID)
		require.NoError(t, err)
		assert.True(t, dstLevel.Quantity.IsZero())

		transfers, _, err := svc.ListTransfers(ctx, testTenant, shared.Filter{})
		require.NoError(t, err)
		assert.Empty(t, transfers)
	})

	t.Run("refuses when the destination has consumed the stock", func(t *testing.T) {
		svc, _, product, _, dst, transferID := setup(t)

		_, err := svc.Issue(ctx, testTenant, MovementInput{
			ProductID: product.ID, WarehouseID: dst.ID, Quantity: qty("5"),
		})
		require.NoError(t, err)

		err = svc.DeleteTransfer(ctx, testTenant, transferID)
		require.Error(t, err)
		assert.True(t, shared.IsDomainError(err, "INVALID_STATE"))
	})

	t.Run("unknown transfer", func(t *testing.T) {
		svc, _, _, _, _, _ := setup(t)
		err := svc.DeleteTransfer(ctx, testTenant, uuid.New())
		assert.True(t, shared.IsDomainError(err, "NOT_FOUND"))
	})
}
