package garage

import (
	"context"
	"testing"

	"github.com/garagehub/backend/internal/domain/garage"
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

func (s singleTenantStores) GarageStore(ctx context.Context, tenantDomain string) (garage.Store, error) {
	return persistence.NewGarageStore(s.db), nil
}

func (s singleTenantStores) InventoryStore(ctx context.Context, tenantDomain string) (inventory.Store, error) {
	return persistence.NewInventoryStore(s.db), nil
}

func newTestStores(t *testing.T) (singleTenantStores, garage.Store) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, tenantdb.EnsureSchema(db))
	return singleTenantStores{db: db}, persistence.NewGarageStore(db)
}

func seedCustomer(t *testing.T, store garage.Store, name, phone string) *garage.Customer {
	t.Helper()
	customer, err := garage.NewCustomer(name, phone)
	require.NoError(t, err)
	require.NoError(t, store.Customers().Create(context.Background(), customer))
	return customer
}

func seedVehicle(t *testing.T, store garage.Store, customerID uuid.UUID, registrationNo string) *garage.Vehicle {
	t.Helper()
	vehicle, err := garage.NewVehicle(customerID, registrationNo)
	require.NoError(t, err)
	require.NoError(t, store.Vehicles().Create(context.Background(), vehicle))
	return vehicle
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}

func TestCustomerService_Create(t *testing.T) {
	ctx := context.Background()
	stores, _ := newTestStores(t)
	svc := NewCustomerService(stores, testLogger())

	customer, err := svc.Create(ctx, testTenant, CreateCustomerInput{
		Name: "Dana Reyes", Phone: "555-0101", Email: "dana@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "Dana Reyes", customer.Name)

	_, err = svc.Create(ctx, testTenant, CreateCustomerInput{Name: "Other", Phone: "555-0101"})
	assert.True(t, shared.IsDomainError(err, "PHONE_EXISTS"))

	_, err = svc.Create(ctx, testTenant, CreateCustomerInput{Name: "", Phone: "555-0102"})
	assert.True(t, shared.IsDomainError(err, "INVALID_INPUT"))
}

func TestCustomerService_Update(t *testing.T) {
	ctx := context.Background()
	stores, store := newTestStores(t)
	svc := NewCustomerService(stores, testLogger())

	customer := seedCustomer(t, store, "Dana Reyes", "555-0101")
	seedCustomer(t, store, "Sam Velez", "555-0102")

	t.Run("patch keeps omitted fields", func(t *testing.T) {
		address := "12 Shop Lane"
		updated, err := svc.Update(ctx, testTenant, UpdateCustomerInput{ID: customer.ID, Address: &address})
		require.NoError(t, err)
		assert.Equal(t, "12 Shop Lane", updated.Address)
		assert.Equal(t, "Dana Reyes", updated.Name)
		assert.Equal(t, "555-0101", updated.Phone)
	})

	t.Run("cannot take another customer's phone", func(t *testing.T) {
		phone := "555-0102"
		_, err := svc.Update(ctx, testTenant, UpdateCustomerInput{ID: customer.ID, Phone: &phone})
		assert.True(t, shared.IsDomainError(err, "PHONE_EXISTS"))
	})
}

func TestCustomerService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("refuses while vehicles are registered", func(t *testing.T) {
		stores, store := newTestStores(t)
		svc := NewCustomerService(stores, testLogger())

		customer := seedCustomer(t, store, "Dana Reyes", "555-0101")
		seedVehicle(t, store, customer.ID, "ABC-123")

		err := svc.Delete(ctx, testTenant, customer.ID)
		require.Error(t, err)
		assert.True(t, shared.IsDomainError(err, "CUSTOMER_HAS_VEHICLES"))
	})

	t.Run("deletes a customer without vehicles", func(t *testing.T) {
		stores, store := newTestStores(t)
		svc := NewCustomerService(stores, testLogger())

		customer := seedCustomer(t, store, "Dana Reyes", "555-0101")
		require.NoError(t, svc.Delete(ctx, testTenant, customer.ID))

		_, err := store.Customers().FindByID(ctx, customer.ID)
		assert.True(t, shared.IsDomainError(err, "NOT_FOUND"))
	})
}

func TestCustomerService_Get(t *testing.T) {
	ctx := context.Background()
	stores, store := newTestStores(t)
	svc := NewCustomerService(stores, testLogger())

	customer := seedCustomer(t, store, "Dana Reyes", "555-0101")
	seedVehicle(t, store, customer.ID, "ABC-123")
	seedVehicle(t, store, customer.ID, "DEF-456")

	got, err := svc.Get(ctx, testTenant, customer.ID)
	require.NoError(t, err)
	assert.Len(t, got.Vehicles, 2)
}

func TestVehicleService_Create(t *testing.T) {
	ctx := context.Background()
	stores, store := newTestStores(t)
	svc := NewVehicleService(stores, testLogger())

	customer := seedCustomer(t, store, "Dana Reyes", "555-0101")

	vehicle, err := svc.Create(ctx, testTenant, CreateVehicleInput{
		CustomerID: customer.ID, RegistrationNo: "abc-123", Make: "Toyota", Model: "Hilux", Year: 2019,
	})
	require.NoError(t, err)
	assert.Equal(t, "ABC-123", vehicle.RegistrationNo, "registration is normalized to upper case")

	_, err = svc.Create(ctx, testTenant, CreateVehicleInput{
		CustomerID: customer.ID, RegistrationNo: "ABC-123",
	})
	assert.True(t, shared.IsDomainError(err, "REGISTRATION_EXISTS"))

	_, err = svc.Create(ctx, testTenant, CreateVehicleInput{
		CustomerID: uuid.New(), RegistrationNo: "XYZ-999",
	})
	assert.True(t, shared.IsDomainError(err, "CUSTOMER_NOT_FOUND"))
}

func TestVehicleService_Update(t *testing.T) {
	ctx := context.Background()
	stores, store := newTestStores(t)
	svc := NewVehicleService(stores, testLogger())

	customer := seedCustomer(t, store, "Dana Reyes", "555-0101")
	vehicle := seedVehicle(t, store, customer.ID, "ABC-123")

	year := 2021
	updated, err := svc.Update(ctx, testTenant, UpdateVehicleInput{ID: vehicle.ID, Year: &year})
	require.NoError(t, err)
	assert.Equal(t, 2021, updated.Year)
	assert.Equal(t, "ABC-123", updated.RegistrationNo)
	assert.Equal(t, customer.ID, updated.CustomerID)
}

func TestWarrantyService(t *testing.T) {
	ctx := context.Background()

	seedTestProduct := func(t *testing.T, stores singleTenantStores) uuid.UUID {
		t.Helper()
		invStore, err := stores.InventoryStore(ctx, testTenant)
		require.NoError(t, err)
		product, err := inventory.NewProduct("BP-100", "Brake Pad Set", decimal.NewFromInt(45))
		require.NoError(t, err)
		require.NoError(t, invStore.Products().Create(ctx, product))
		return product.ID
	}

	t.Run("creates a warranty for an existing product", func(t *testing.T) {
		stores, _ := newTestStores(t)
		svc := NewWarrantyService(stores, stores, testLogger())
		productID := seedTestProduct(t, stores)

		warranty, err := svc.Create(ctx, testTenant, CreateWarrantyInput{
			ProductID: productID, Name: "12-month parts warranty", DurationMonths: 12,
		})
		require.NoError(t, err)
		assert.Equal(t, "active", warranty.Status)
		assert.Equal(t, 12, warranty.DurationMonths)
	})

	t.Run("rejects an unknown product", func(t *testing.T) {
		stores, _ := newTestStores(t)
		svc := NewWarrantyService(stores, stores, testLogger())

		_, err := svc.Create(ctx, testTenant, CreateWarrantyInput{
			ProductID: uuid.New(), Name: "12-month parts warranty", DurationMonths: 12,
		})
		assert.True(t, shared.IsDomainError(err, "PRODUCT_NOT_FOUND"))
	})

	t.Run("update can deactivate and reactivate", func(t *testing.T) {
		stores, _ := newTestStores(t)
		svc := NewWarrantyService(stores, stores, testLogger())
		productID := seedTestProduct(t, stores)

		warranty, err := svc.Create(ctx, testTenant, CreateWarrantyInput{
			ProductID: productID, Name: "12-month parts warranty", DurationMonths: 12,
		})
		require.NoError(t, err)

		status := "inactive"
		updated, err := svc.Update(ctx, testTenant, UpdateWarrantyInput{ID: warranty.ID, Status: &status})
		require.NoError(t, err)
		assert.Equal(t, "inactive", updated.Status)

		bad := "expired"
		_, err = svc.Update(ctx, testTenant, UpdateWarrantyInput{ID: warranty.ID, Status: &bad})
		assert.True(t, shared.IsDomainError(err, "INVALID_INPUT"))
	})

	t.Run("rejects non-positive duration", func(t *testing.T) {
		stores, _ := newTestStores(t)
		svc := NewWarrantyService(stores, stores, testLogger())
		productID := seedTestProduct(t, stores)

		_, err := svc.Create(ctx, testTenant, CreateWarrantyInput{
			ProductID: productID, Name: "Bad", DurationMonths: 0,
		})
		assert.True(t, shared.IsDomainError(err, "INVALID_INPUT"))
	})
}
