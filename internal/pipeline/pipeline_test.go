package pipeline

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/xpense/internal/model"
)

func exp(id string, amount float64, date string, c model.Category) model.Expense {
	return model.Expense{ID: id, Amount: amount, Date: date, Category: c}
}

func day(s string) time.Time {
	t, err := time.ParseInLocation(model.DateLayout, s, time.Local)
	if err != nil {
		panic(err)
	}
	return t
}

func TestSummarize(t *testing.T) {
	expenses := []model.Expense{
		exp("a", 10, "2025-06-01", model.CategoryFood),
		exp("b", 30, "2025-06-01", model.CategoryBills),
		exp("c", 20, "2025-06-03", model.CategoryFood),
		exp("d", 99, "2025-05-20", model.CategoryOther),
	}

	s := Summarize(expenses, day("2025-06-01"), day("2025-07-01"))
	assert.Equal(t, 3, s.TotalExpenses)
	assert.InDelta(t, 60, s.TotalSpent, 1e-9)
	assert.Equal(t, 2, s.ActiveDays)
	assert.InDelta(t, 30, s.AveragePerDay, 1e-9)
	assert.InDelta(t, 20, s.AverageAmount, 1e-9)
	assert.Equal(t, 30.0, s.LargestAmount)

	all := Summarize(expenses, time.Time{}, time.Time{})
	assert.Equal(t, 4, all.TotalExpenses)
}

func TestByCategoryKeepsFixedOrder(t *testing.T) {
	stats := ByCategory([]model.Expense{
		exp("a", 25, "2025-06-01", model.CategoryOther),
		exp("b", 75, "2025-06-01", model.CategoryFood),
	})
	require.Len(t, stats, len(model.Categories))
	for i, c := range model.Categories {
		assert.Equal(t, c, stats[i].Category)
	}
	assert.InDelta(t, 75, stats[0].SharePercent, 1e-9)
	assert.InDelta(t, 25, stats[4].SharePercent, 1e-9)
	assert.Zero(t, stats[1].Amount)
}

func TestDailyTrendZeroFills(t *testing.T) {
	now := day("2025-06-07").Add(15 * time.Hour)
	trend := DailyTrend([]model.Expense{
		exp("a", 5, "2025-06-07", model.CategoryFood),
		exp("b", 7, "2025-06-07", model.CategoryFood),
		exp("c", 3, "2025-06-01", model.CategoryFood),
		exp("d", 100, "2025-05-31", model.CategoryFood),
	}, 7, now)

	require.Len(t, trend, 7)
	assert.Equal(t, "2025-06-01", trend[0].Date.Format(model.DateLayout))
	assert.Equal(t, "2025-06-07", trend[6].Date.Format(model.DateLayout))
	assert.Equal(t, 3.0, trend[0].Amount)
	assert.Equal(t, 12.0, trend[6].Amount)
	assert.Equal(t, 2, trend[6].Expenses)
	for _, d := range trend[1:6] {
		assert.Zero(t, d.Amount)
	}

	assert.Nil(t, DailyTrend(nil, 0, now))
}

func TestFilterByCategory(t *testing.T) {
	expenses := []model.Expense{
		exp("a", 1, "2025-06-01", model.CategoryFood),
		exp("b", 2, "2025-06-01", model.CategoryBills),
	}
	assert.Len(t, FilterByCategory(expenses, "food"), 1)
	assert.Len(t, FilterByCategory(expenses, ""), 2)
}

func TestCheckBudgetsOverall(t *testing.T) {
	before := []model.Expense{exp("a", 850, "2025-06-01", model.CategoryOther)}

	alerts := CheckBudgets(before, append(before, exp("b", 60, "2025-06-02", model.CategoryOther)), 1000, nil)
	require.Len(t, alerts, 1)
	assert.Equal(t, model.AlertApproaching, alerts[0].Level)
	assert.Empty(t, alerts[0].Category)

	alerts = CheckBudgets(before, append(before, exp("b", 200, "2025-06-02", model.CategoryOther)), 1000, nil)
	require.Len(t, alerts, 1)
	assert.Equal(t, model.AlertExceeded, alerts[0].Level)

	over := []model.Expense{exp("a", 1100, "2025-06-01", model.CategoryOther)}
	assert.Empty(t, CheckBudgets(over, append(over, exp("b", 5, "2025-06-02", model.CategoryOther)), 1000, nil),
		"already over budget")
}

func TestCheckBudgetsIgnoresDecrease(t *testing.T) {
	before := []model.Expense{exp("a", 500, "2025-06-01", model.CategoryFood)}
	after := []model.Expense{exp("a", 100, "2025-06-01", model.CategoryFood)}
	assert.Nil(t, CheckBudgets(before, after, 200, model.CategoryBudgets{model.CategoryFood: 50}))
}

func TestCheckBudgetsCategory(t *testing.T) {
	budgets := model.CategoryBudgets{model.CategoryFood: 100, model.CategoryBills: 50}
	before := []model.Expense{
		exp("a", 80, "2025-06-01", model.CategoryFood),
		exp("b", 60, "2025-06-01", model.CategoryBills),
	}
	after := append([]model.Expense{exp("c", 25, "2025-06-02", model.CategoryFood)}, before...)

	alerts := CheckBudgets(before, after, 0, budgets)
	require.Len(t, alerts, 1)
	assert.Equal(t, model.CategoryFood, alerts[0].Category)
	assert.Equal(t, model.AlertExceeded, alerts[0].Level)
	assert.Equal(t, 105.0, alerts[0].Spent)
}

func TestCategoryProgress(t *testing.T) {
	progress := CategoryProgress([]model.Expense{
		exp("a", 45, "2025-06-01", model.CategoryTravel),
	}, model.CategoryBudgets{model.CategoryTravel: 90, model.CategoryFood: 0})
	require.Len(t, progress, 1)
	assert.Equal(t, model.CategoryTravel, progress[0].Category)
	assert.InDelta(t, 50, progress[0].Percent, 1e-9)
}

func TestComputeBudgetStats(t *testing.T) {
	now := day("2025-06-10").Add(12 * time.Hour)
	stats := ComputeBudgetStats([]model.Expense{
		exp("a", 100, "2025-06-02", model.CategoryFood),
		exp("b", 200, "2025-06-10", model.CategoryFood),
		exp("c", 999, "2025-05-30", model.CategoryFood),
	}, 1000, now)

	assert.Equal(t, 300.0, stats.CurrentSpend)
	assert.Equal(t, 20, stats.DaysRemaining)
	assert.InDelta(t, 30, stats.DailyBurnRate, 1e-9)
	assert.InDelta(t, 900, stats.ProjectedMonthly, 1e-9)
	assert.InDelta(t, 30, stats.BudgetUsedPercent, 1e-9)
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	err := WriteCSV(&buf, []model.Expense{
		{ID: "id-1", Amount: 12.5, Date: "2025-06-01", Category: model.CategoryFood, Notes: `pizza, "large"`},
	}, "EUR")
	require.NoError(t, err)

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"ID", "Date", "Amount", "Currency", "Category", "Notes"}, records[0])
	assert.Equal(t, []string{"id-1", "2025-06-01", "12.50", "EUR", "Food", `pizza, "large"`}, records[1])
}

func TestWriteCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	assert.ErrorIs(t, WriteCSV(&buf, nil, "USD"), ErrNoExpenses)
	assert.Zero(t, buf.Len())
}

func TestExportFilename(t *testing.T) {
	assert.Equal(t, "xpense-data-2025-06-01.csv", ExportFilename(day("2025-06-01")))
}
