package finance

import (
	"context"
	"testing"
	"time"

	"github.com/garagehub/backend/internal/domain/finance"
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

func (s singleTenantStores) FinanceStore(ctx context.Context, tenantDomain string) (finance.Store, error) {
	return persistence.NewFinanceStore(s.db), nil
}

func newTestStores(t *testing.T) (singleTenantStores, finance.Store) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, tenantdb.EnsureSchema(db))
	return singleTenantStores{db: db}, persistence.NewFinanceStore(db)
}

func seedCategory(t *testing.T, store finance.Store, name, code string) *finance.ExpenseCategory {
	t.Helper()
	category, err := finance.NewExpenseCategory(name, code)
	require.NoError(t, err)
	require.NoError(t, store.ExpenseCategories().Create(context.Background(), category))
	return category
}

func amt(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}

func TestExpenseCategoryService_Create(t *testing.T) {
	ctx := context.Background()
	stores, _ := newTestStores(t)
	svc := NewExpenseCategoryService(stores, testLogger())

	_, err := svc.Create(ctx, testTenant, CreateCategoryInput{Name: "Utilities", Code: "UTIL"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, testTenant, CreateCategoryInput{Name: "Utilities", Code: "UTIL"})
	assert.True(t, shared.IsDomainError(err, "CATEGORY_EXISTS"))

	// Same name under a different code is a distinct category.
	_, err = svc.Create(ctx, testTenant, CreateCategoryInput{Name: "Utilities", Code: "UTIL2"})
	require.NoError(t, err)
}

func TestExpenseCategoryService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("refuses while expenses reference the category", func(t *testing.T) {
		stores, store := newTestStores(t)
		svc := NewExpenseCategoryService(stores, testLogger())
		expenseSvc := NewExpenseService(stores, testLogger())

		category := seedCategory(t, store, "Utilities", "UTIL")
		_, err := expenseSvc.Create(ctx, testTenant, CreateExpenseInput{
			CategoryID: category.ID, Date: time.Now(), InvoiceCost: amt("50"),
		})
		require.NoError(t, err)

		err = svc.Delete(ctx, testTenant, category.ID)
		require.Error(t, err)
		assert.True(t, shared.IsDomainError(err, "CATEGORY_IN_USE"))
	})

	t.Run("deletes an unused category", func(t *testing.T) {
		stores, store := newTestStores(t)
		svc := NewExpenseCategoryService(stores, testLogger())

		category := seedCategory(t, store, "Utilities", "UTIL")
		require.NoError(t, svc.Delete(ctx, testTenant, category.ID))
	})
}

func TestExpenseService_Create(t *testing.T) {
	ctx := context.Background()
	stores, store := newTestStores(t)
	svc := NewExpenseService(stores, testLogger())

	category := seedCategory(t, store, "Utilities", "UTIL")

	t.Run("derives totals from items and invoice cost", func(t *testing.T) {
		expense, err := svc.Create(ctx, testTenant, CreateExpenseInput{
			CategoryID:  category.ID,
			Date:        time.Now(),
			InvoiceCost: amt("50"),
			Items: []ItemInput{
				{Name: "Courier", Amount: amt("30")},
				{Name: "Packaging", Amount: amt("20")},
			},
		})
		require.NoError(t, err)
		assert.True(t, expense.TotalOtherExpense.Equal(amt("50")))
		assert.True(t, expense.TotalAmount.Equal(amt("100")))
		assert.Len(t, expense.Items, 2)
	})

	t.Run("rejects unknown category", func(t *testing.T) {
		_, err := svc.Create(ctx, testTenant, CreateExpenseInput{
			CategoryID: uuid.New(), Date: time.Now(), InvoiceCost: amt("10"),
		})
		assert.True(t, shared.IsDomainError(err, "CATEGORY_NOT_FOUND"))
	})

	t.Run("rejects negative amounts", func(t *testing.T) {
		_, err := svc.Create(ctx, testTenant, CreateExpenseInput{
			CategoryID: category.ID, Date: time.Now(), InvoiceCost: amt("-1"),
		})
		assert.True(t, shared.IsDomainError(err, "INVALID_INPUT"))
	})
}

func TestExpenseService_Update(t *testing.T) {
	ctx := context.Background()
	stores, store := newTestStores(t)
	svc := NewExpenseService(stores, testLogger())

	category := seedCategory(t, store, "Utilities", "UTIL")
	expense, err := svc.Create(ctx, testTenant, CreateExpenseInput{
		CategoryID:  category.ID,
		Date:        time.Now(),
		InvoiceCost: amt("50"),
		Items:       []ItemInput{{Name: "Courier", Amount: amt("30")}},
	})
	require.NoError(t, err)

	t.Run("replacing items recomputes totals", func(t *testing.T) {
		items := []ItemInput{
			{Name: "Courier", Amount: amt("25")},
			{Name: "Customs", Amount: amt("75")},
		}
		updated, err := svc.Update(ctx, testTenant, UpdateExpenseInput{ID: expense.ID, Items: &items})
		require.NoError(t, err)
		assert.True(t, updated.TotalOtherExpense.Equal(amt("100")))
		assert.True(t, updated.TotalAmount.Equal(amt("150")))

		// The replacement is persisted, not just returned.
		got, err := svc.Get(ctx, testTenant, expense.ID)
		require.NoError(t, err)
		assert.Len(t, got.Items, 2)
		assert.True(t, got.TotalAmount.Equal(amt("150")))
	})

	t.Run("changing invoice cost keeps items", func(t *testing.T) {
		cost := amt("10")
		updated, err := svc.Update(ctx, testTenant, UpdateExpenseInput{ID: expense.ID, InvoiceCost: &cost})
		require.NoError(t, err)
		assert.True(t, updated.InvoiceCost.Equal(amt("10")))
		assert.True(t, updated.TotalAmount.Equal(amt("110")))
	})

	t.Run("rejects unknown category on update", func(t *testing.T) {
		bad := uuid.New()
		_, err := svc.Update(ctx, testTenant, UpdateExpenseInput{ID: expense.ID, CategoryID: &bad})
		assert.True(t, shared.IsDomainError(err, "CATEGORY_NOT_FOUND"))
	})
}

func TestIncomeService(t *testing.T) {
	ctx := context.Background()
	stores, _ := newTestStores(t)
	svc := NewIncomeService(stores, testLogger())

	t.Run("derives totals from invoice amounts and items", func(t *testing.T) {
		income, err := svc.Create(ctx, testTenant, CreateIncomeInput{
			Date:                time.Now(),
			PartsIncomeAmount:   amt("40"),
			ServiceIncomeAmount: amt("60"),
			Items:               []ItemInput{{Name: "Tips", Amount: amt("15")}},
		})
		require.NoError(t, err)
		assert.True(t, income.TotalInvoiceIncome.Equal(amt("100")))
		assert.True(t, income.TotalOtherIncome.Equal(amt("15")))
		assert.True(t, income.TotalAmount.Equal(amt("115")))
	})

	t.Run("rejects negative invoice amounts", func(t *testing.T) {
		_, err := svc.Create(ctx, testTenant, CreateIncomeInput{
			Date: time.Now(), PartsIncomeAmount: amt("-5"),
		})
		assert.True(t, shared.IsDomainError(err, "INVALID_INPUT"))
	})

	t.Run("update recomputes totals", func(t *testing.T) {
		income, err := svc.Create(ctx, testTenant, CreateIncomeInput{
			Date: time.Now(), PartsIncomeAmount: amt("40"), ServiceIncomeAmount: amt("60"),
		})
		require.NoError(t, err)

		parts := amt("50")
		updated, err := svc.Update(ctx, testTenant, UpdateIncomeInput{ID: income.ID, PartsIncomeAmount: &parts})
		require.NoError(t, err)
		assert.True(t, updated.TotalInvoiceIncome.Equal(amt("110")))
		assert.True(t, updated.TotalAmount.Equal(amt("110")))
	})
}
