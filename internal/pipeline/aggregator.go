// Package pipeline aggregates expenses into summaries, trends and budget
// reports.
package pipeline

import (
	"strings"
	"time"

	"github.com/theirongolddev/xpense/internal/model"
)

// Total sums every expense amount.
func Total(expenses []model.Expense) float64 {
	var sum float64
	for _, e := range expenses {
		sum += e.Amount
	}
	return sum
}

// Summarize computes summary statistics for expenses dated within
// [since, until). Zero bounds are open.
func Summarize(expenses []model.Expense, since, until time.Time) model.SummaryStats {
	filtered := FilterByTime(expenses, since, until)

	var stats model.SummaryStats
	activeDays := make(map[string]struct{})

	for _, e := range filtered {
		stats.TotalExpenses++
		stats.TotalSpent += e.Amount
		if e.Amount > stats.LargestAmount {
			stats.LargestAmount = e.Amount
		}
		activeDays[e.Date] = struct{}{}
	}

	stats.ActiveDays = len(activeDays)
	if stats.ActiveDays > 0 {
		stats.AveragePerDay = stats.TotalSpent / float64(stats.ActiveDays)
	}
	if stats.TotalExpenses > 0 {
		stats.AverageAmount = stats.TotalSpent / float64(stats.TotalExpenses)
	}
	return stats
}

// ByCategory totals spending per category, in model.Categories order.
// Every category is present, including those with no spending.
func ByCategory(expenses []model.Expense) []model.CategoryStats {
	idx := make(map[model.Category]int, len(model.Categories))
	out := make([]model.CategoryStats, len(model.Categories))
	for i, c := range model.Categories {
		out[i].Category = c
		idx[c] = i
	}

	var total float64
	for _, e := range expenses {
		i, ok := idx[e.Category]
		if !ok {
			continue
		}
		out[i].Expenses++
		out[i].Amount += e.Amount
		total += e.Amount
	}

	if total > 0 {
		for i := range out {
			out[i].SharePercent = out[i].Amount / total * 100
		}
	}
	return out
}

// CategoryTotals maps each category to its spending.
func CategoryTotals(expenses []model.Expense) map[model.Category]float64 {
	out := make(map[model.Category]float64)
	for _, e := range expenses {
		out[e.Category] += e.Amount
	}
	return out
}

// DailyTrend returns per-day spending for the last days days ending on
// now's date, oldest first. Days without expenses are zero-filled.
func DailyTrend(expenses []model.Expense, days int, now time.Time) []model.DailyStats {
	if days <= 0 {
		return nil
	}
	end := startOfDay(now)
	start := end.AddDate(0, 0, -(days - 1))

	out := make([]model.DailyStats, days)
	index := make(map[string]int, days)
	for i := range out {
		d := start.AddDate(0, 0, i)
		out[i].Date = d
		index[d.Format(model.DateLayout)] = i
	}

	for _, e := range expenses {
		i, ok := index[e.Date]
		if !ok {
			continue
		}
		out[i].Expenses++
		out[i].Amount += e.Amount
	}
	return out
}

// FilterByTime returns expenses whose date falls within [since, until).
func FilterByTime(expenses []model.Expense, since, until time.Time) []model.Expense {
	if since.IsZero() && until.IsZero() {
		return expenses
	}

	var result []model.Expense
	for _, e := range expenses {
		day := e.Day()
		if day.IsZero() {
			continue
		}
		if !since.IsZero() && day.Before(startOfDay(since)) {
			continue
		}
		if !until.IsZero() && !day.Before(until) {
			continue
		}
		result = append(result, e)
	}
	return result
}

// FilterByCategory returns expenses in the given category. Empty matches all.
func FilterByCategory(expenses []model.Expense, c model.Category) []model.Expense {
	if c == "" {
		return expenses
	}
	var result []model.Expense
	for _, e := range expenses {
		if strings.EqualFold(string(e.Category), string(c)) {
			result = append(result, e)
		}
	}
	return result
}

func startOfDay(t time.Time) time.Time {
	t = t.Local()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
}

func startOfMonth(t time.Time) time.Time {
	t = t.Local()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.Local)
}
