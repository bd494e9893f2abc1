package finance

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func TestNewExpense(t *testing.T) {
	categoryID := uuid.New()

	t.Run("derives totals from invoice cost and items", func(t *testing.T) {
		e, err := NewExpense(categoryID, time.Now(), dec("50"), []ExpenseItem{
			{Name: "Disposal fee", Amount: dec("30")},
			{Name: "Courier", Amount: dec("20")},
		})
		require.NoError(t, err)

		assert.True(t, e.TotalOtherExpense.Equal(dec("50")), "total_other_expense = %s", e.TotalOtherExpense)
		assert.True(t, e.TotalAmount.Equal(dec("100")), "total_amount = %s", e.TotalAmount)
		assert.Len(t, e.Items, 2)
	})

	t.Run("no items leaves total equal to invoice cost", func(t *testing.T) {
		e, err := NewExpense(categoryID, time.Now(), dec("75.50"), nil)
		require.NoError(t, err)

		assert.True(t, e.TotalOtherExpense.IsZero())
		assert.True(t, e.TotalAmount.Equal(dec("75.50")))
	})

	t.Run("rejects missing category", func(t *testing.T) {
		_, err := NewExpense(uuid.Nil, time.Now(), dec("10"), nil)
		assert.Error(t, err)
	})

	t.Run("rejects negative invoice cost", func(t *testing.T) {
		_, err := NewExpense(categoryID, time.Now(), dec("-1"), nil)
		assert.Error(t, err)
	})

	t.Run("rejects negative item amount", func(t *testing.T) {
		_, err := NewExpense(categoryID, time.Now(), dec("10"), []ExpenseItem{
			{Name: "Refund", Amount: dec("-5")},
		})
		assert.Error(t, err)
	})

	t.Run("rejects unnamed item", func(t *testing.T) {
		_, err := NewExpense(categoryID, time.Now(), dec("10"), []ExpenseItem{
			{Name: "", Amount: dec("5")},
		})
		assert.Error(t, err)
	})

	t.Run("defaults zero date to now", func(t *testing.T) {
		e, err := NewExpense(categoryID, time.Time{}, dec("10"), nil)
		require.NoError(t, err)
		assert.False(t, e.Date.IsZero())
	})
}

func TestExpense_ReplaceItems(t *testing.T) {
	e, err := NewExpense(uuid.New(), time.Now(), dec("50"), []ExpenseItem{
		{Name: "Old item", Amount: dec("30")},
	})
	require.NoError(t, err)

	err = e.ReplaceItems([]ExpenseItem{
		{Name: "New item", Amount: dec("10")},
		{Name: "Another", Amount: dec("15")},
	})
	require.NoError(t, err)

	assert.Len(t, e.Items, 2)
	assert.True(t, e.TotalOtherExpense.Equal(dec("25")))
	assert.True(t, e.TotalAmount.Equal(dec("75")))
}

func TestExpense_SetInvoiceCost(t *testing.T) {
	e, err := NewExpense(uuid.New(), time.Now(), dec("50"), []ExpenseItem{
		{Name: "Item", Amount: dec("20")},
	})
	require.NoError(t, err)

	require.NoError(t, e.SetInvoiceCost(dec("80")))
	assert.True(t, e.TotalAmount.Equal(dec("100")))

	assert.Error(t, e.SetInvoiceCost(dec("-1")))
}

func TestNewIncome(t *testing.T) {
	t.Run("derives totals from parts, service and items", func(t *testing.T) {
		in, err := NewIncome(time.Now(), dec("40"), dec("60"), []IncomeItem{
			{Name: "Tip", Amount: dec("15")},
		})
		require.NoError(t, err)

		assert.True(t, in.TotalOtherIncome.Equal(dec("15")))
		assert.True(t, in.TotalInvoiceIncome.Equal(dec("100")))
		assert.True(t, in.TotalAmount.Equal(dec("115")))
	})

	t.Run("rejects negative amounts", func(t *testing.T) {
		_, err := NewIncome(time.Now(), dec("-1"), dec("0"), nil)
		assert.Error(t, err)

		_, err = NewIncome(time.Now(), dec("0"), dec("-1"), nil)
		assert.Error(t, err)
	})
}

func TestIncome_SetInvoiceAmounts(t *testing.T) {
	in, err := NewIncome(time.Now(), dec("40"), dec("60"), []IncomeItem{
		{Name: "Tip", Amount: dec("5")},
	})
	require.NoError(t, err)

	require.NoError(t, in.SetInvoiceAmounts(dec("10"), dec("20")))
	assert.True(t, in.TotalInvoiceIncome.Equal(dec("30")))
	assert.True(t, in.TotalAmount.Equal(dec("35")))
}

func TestIncome_ReplaceItems(t *testing.T) {
	in, err := NewIncome(time.Now(), dec("40"), dec("60"), []IncomeItem{
		{Name: "Tip", Amount: dec("5")},
	})
	require.NoError(t, err)

	require.NoError(t, in.ReplaceItems(nil))
	assert.Empty(t, in.Items)
	assert.True(t, in.TotalOtherIncome.IsZero())
	assert.True(t, in.TotalAmount.Equal(dec("100")))
}
