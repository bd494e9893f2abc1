package inventory

import (
	"context"
	"testing"

	"github.com/garagehub/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductService_Create(t *testing.T) {
	ctx := context.Background()
	stores, _ := newTestStores(t)
	svc := NewProductService(stores, testLogger())

	product, err := svc.Create(ctx, testTenant, CreateProductInput{
		SKU: "bp-100", Name: "Brake Pad Set", Brand: "Brembo", UnitPrice: decimal.NewFromInt(45),
	})
	require.NoError(t, err)
	assert.Equal(t, "BP-100", product.SKU, "SKU is normalized to upper case")
	assert.True(t, product.Quantity.IsZero())

	_, err = svc.Create(ctx, testTenant, CreateProductInput{
		SKU: "BP-100", Name: "Other", UnitPrice: decimal.Zero,
	})
	assert.True(t, shared.IsDomainError(err, "SKU_EXISTS"))

	_, err = svc.Create(ctx, testTenant, CreateProductInput{
		SKU: "BP-200", Name: "Rotor", UnitPrice: decimal.NewFromInt(-1),
	})
	assert.True(t, shared.IsDomainError(err, "INVALID_INPUT"))
}

func TestProductService_Update(t *testing.T) {
	ctx := context.Background()
	stores, store := newTestStores(t)
	svc := NewProductService(stores, testLogger())

	product := seedProduct(t, store, "BP-100")

	brand := "Bosch"
	updated, err := svc.Update(ctx, testTenant, UpdateProductInput{ID: product.ID, Brand: &brand})
	require.NoError(t, err)
	assert.Equal(t, "Bosch", updated.Brand)
	assert.Equal(t, "BP-100", updated.SKU)
	assert.Equal(t, product.Name, updated.Name, "omitted fields are kept")
}

func TestProductService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("refuses while ledger entries exist", func(t *testing.T) {
		stores, store := newTestStores(t)
		svc := NewProductService(stores, testLogger())
		stockSvc := NewStockService(stores, testLogger())

		product := seedProduct(t, store, "BP-100")
		warehouse := seedWarehouse(t, store, 1, "Main")

		_, err := stockSvc.Receive(ctx, testTenant, MovementInput{
			ProductID: product.ID, WarehouseID: warehouse.ID, Quantity: qty("5"),
		})
		require.NoError(t, err)

		err = svc.Delete(ctx, testTenant, product.ID)
		require.Error(t, err)
		assert.True(t, shared.IsDomainError(err, "PRODUCT_IN_USE"))
	})

	t.Run("deletes an unused product", func(t *testing.T) {
		stores, store := newTestStores(t)
		svc := NewProductService(stores, testLogger())

		product := seedProduct(t, store, "BP-100")
		require.NoError(t, svc.Delete(ctx, testTenant, product.ID))

		_, err := store.Products().FindByID(ctx, product.ID)
		assert.True(t, shared.IsDomainError(err, "NOT_FOUND"))
	})
}

func TestWarehouseService_Create(t *testing.T) {
	ctx := context.Background()
	stores, _ := newTestStores(t)
	svc := NewWarehouseService(stores, testLogger())

	first, err := svc.Create(ctx, testTenant, CreateWarehouseInput{Name: "Main"})
	require.NoError(t, err)
	assert.Equal(t, 1, first.Code)

	second, err := svc.Create(ctx, testTenant, CreateWarehouseInput{Name: "Annex"})
	require.NoError(t, err)
	assert.Equal(t, 2, second.Code, "codes are assigned sequentially")
}

func TestWarehouseService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("refuses while ledger entries exist", func(t *testing.T) {
		stores, store := newTestStores(t)
		svc := NewWarehouseService(stores, testLogger())
		stockSvc := NewStockService(stores, testLogger())

		product := seedProduct(t, store, "BP-100")
		warehouse := seedWarehouse(t, store, 1, "Main")

		_, err := stockSvc.Receive(ctx, testTenant, MovementInput{
			ProductID: product.ID, WarehouseID: warehouse.ID, Quantity: qty("5"),
		})
		require.NoError(t, err)

		err = svc.Delete(ctx, testTenant, warehouse.ID)
		require.Error(t, err)
		assert.True(t, shared.IsDomainError(err, "WAREHOUSE_IN_USE"))
	})

	t.Run("deletes an unused warehouse", func(t *testing.T) {
		stores, store := newTestStores(t)
		svc := NewWarehouseService(stores, testLogger())

		warehouse := seedWarehouse(t, store, 1, "Main")
		require.NoError(t, svc.Delete(ctx, testTenant, warehouse.ID))
	})
}

func TestProductService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("projects the requested columns only", func(t *testing.T) {
		stores, store := newTestStores(t)
		svc := NewProductService(stores, testLogger())

		product := seedProduct(t, store, "BP-100")

		dtos, _, err := svc.List(ctx, testTenant, shared.Filter{Fields: []string{"id", "sku"}})
		require.NoError(t, err)
		require.Len(t, dtos, 1)

		assert.Equal(t, product.ID, dtos[0].ID)
		assert.Equal(t, "BP-100", dtos[0].SKU)
		assert.Empty(t, dtos[0].Name, "unselected columns must not be loaded")
		assert.True(t, dtos[0].UnitPrice.IsZero())
	})

	t.Run("returns full records without a projection", func(t *testing.T) {
		stores, store := newTestStores(t)
		svc := NewProductService(stores, testLogger())

		seedProduct(t, store, "BP-100")

		dtos, meta, err := svc.List(ctx, testTenant, shared.Filter{})
		require.NoError(t, err)
		require.Len(t, dtos, 1)

		assert.Equal(t, "Brake Pad Set", dtos[0].Name)
		assert.Equal(t, int64(1), meta.Total)
	})
}
