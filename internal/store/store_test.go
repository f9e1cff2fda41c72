package store

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/xpense/internal/history"
	"github.com/theirongolddev/xpense/internal/model"
)

var _ history.Store = (*DB)(nil)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "nested", "xpense.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestExpenseCRUD(t *testing.T) {
	db := openTestDB(t)

	first, err := db.AddExpense(model.Expense{Amount: 12.5, Date: "2025-06-01", Category: "food", Notes: "lunch"})
	require.NoError(t, err)
	assert.NotEmpty(t, first.ID)
	assert.Equal(t, model.CategoryFood, first.Category)

	second, err := db.AddExpense(model.Expense{Amount: 40, Date: "2025-06-02", Category: model.CategoryTravel})
	require.NoError(t, err)

	list, err := db.ListExpenses()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID, "newest first")
	assert.Equal(t, first.ID, list[1].ID)

	first.Amount = 15
	first.Notes = "dinner"
	require.NoError(t, db.UpdateExpense(first))
	got, err := db.GetExpense(first.ID)
	require.NoError(t, err)
	assert.Equal(t, 15.0, got.Amount)
	assert.Equal(t, "dinner", got.Notes)

	list, err = db.ListExpenses()
	require.NoError(t, err)
	assert.Equal(t, second.ID, list[0].ID, "edit keeps position")

	require.NoError(t, db.DeleteExpense(second.ID))
	n, err := db.ExpenseCount()
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	assert.True(t, errors.Is(db.DeleteExpense(second.ID), ErrNotFound))
	_, err = db.GetExpense("missing")
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.True(t, errors.Is(db.UpdateExpense(model.Expense{ID: "missing", Amount: 1, Date: "2025-01-01", Category: "Other"}), ErrNotFound))
}

func TestAddExpenseValidates(t *testing.T) {
	db := openTestDB(t)

	_, err := db.AddExpense(model.Expense{Amount: -1, Date: "2025-06-01", Category: "Food"})
	assert.ErrorIs(t, err, model.ErrInvalidAmount)
	_, err = db.AddExpense(model.Expense{Amount: 1, Date: "2025-06-01", Category: "Rent"})
	assert.ErrorIs(t, err, model.ErrInvalidCategory)
}

func TestBudgets(t *testing.T) {
	db := openTestDB(t)

	b, err := db.MonthlyBudget()
	require.NoError(t, err)
	assert.Equal(t, model.DefaultMonthlyBudget, b)

	require.NoError(t, db.SetMonthlyBudget(2500))
	b, err = db.MonthlyBudget()
	require.NoError(t, err)
	assert.Equal(t, 2500.0, b)

	require.NoError(t, db.SetCategoryBudget("food", 300))
	require.NoError(t, db.SetCategoryBudget(model.CategoryBills, 200))
	require.NoError(t, db.SetCategoryBudget(model.CategoryBills, 0))
	cb, err := db.CategoryBudgets()
	require.NoError(t, err)
	assert.Equal(t, model.CategoryBudgets{model.CategoryFood: 300}, cb)

	assert.ErrorIs(t, db.SetCategoryBudget("Rent", 10), model.ErrInvalidCategory)
}

func TestCurrencySetting(t *testing.T) {
	db := openTestDB(t)

	ok, err := db.HasCurrency()
	require.NoError(t, err)
	assert.False(t, ok)
	c, err := db.Currency()
	require.NoError(t, err)
	assert.Equal(t, "USD", c.Code)

	require.NoError(t, db.SetCurrency("eur"))
	c, err = db.Currency()
	require.NoError(t, err)
	assert.Equal(t, "EUR", c.Code)

	assert.Error(t, db.SetCurrency("XXX"))
}

func TestRatesCache(t *testing.T) {
	db := openTestDB(t)

	_, err := db.LoadRates()
	assert.ErrorIs(t, err, ErrNotFound)

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, db.SaveRates(model.ExchangeRates{
		Base:        "USD",
		Rates:       map[string]float64{"USD": 1, "EUR": 0.9},
		LastUpdated: now,
	}))
	require.NoError(t, db.SaveRates(model.ExchangeRates{
		Base:        "USD",
		Rates:       map[string]float64{"USD": 1, "GBP": 0.8},
		LastUpdated: now,
	}))

	r, err := db.LoadRates()
	require.NoError(t, err)
	assert.Equal(t, "USD", r.Base)
	assert.True(t, r.LastUpdated.Equal(now))
	assert.Equal(t, map[string]float64{"USD": 1, "GBP": 0.8}, r.Rates)
}

func TestHistoryRoundTrip(t *testing.T) {
	db := openTestDB(t)

	entries, err := db.LoadHistory()
	require.NoError(t, err)
	assert.Empty(t, entries)

	want := []string{"2 * 3 = 6", "5 + 3 = 8"}
	require.NoError(t, db.SaveHistory(want))
	got, err := db.LoadHistory()
	require.NoError(t, err)
	assert.Equal(t, want, got)

	require.NoError(t, db.SaveHistory(nil))
	got, err = db.LoadHistory()
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestHistoryLogPersistsThroughStore(t *testing.T) {
	db := openTestDB(t)

	log := history.New(nil)
	log.Add("1 + 1 = 2")
	require.NoError(t, log.Sync(db))

	reloaded, err := history.Load(db)
	require.NoError(t, err)
	assert.Equal(t, []string{"1 + 1 = 2"}, reloaded.Entries())
}

func TestResetAll(t *testing.T) {
	db := openTestDB(t)

	_, err := db.AddExpense(model.Expense{Amount: 5, Date: "2025-06-01", Category: "Other"})
	require.NoError(t, err)
	require.NoError(t, db.SetMonthlyBudget(50))
	require.NoError(t, db.SetCategoryBudget("Other", 10))
	require.NoError(t, db.SaveHistory([]string{"1 + 1 = 2"}))
	require.NoError(t, db.SaveRates(model.ExchangeRates{Base: "USD", Rates: map[string]float64{"USD": 1}}))

	require.NoError(t, db.ResetAll())

	n, err := db.ExpenseCount()
	require.NoError(t, err)
	assert.Zero(t, n)
	b, err := db.MonthlyBudget()
	require.NoError(t, err)
	assert.Equal(t, model.DefaultMonthlyBudget, b)
	cb, err := db.CategoryBudgets()
	require.NoError(t, err)
	assert.Empty(t, cb)
	h, err := db.LoadHistory()
	require.NoError(t, err)
	assert.Empty(t, h)
	_, err = db.LoadRates()
	assert.ErrorIs(t, err, ErrNotFound)
}
