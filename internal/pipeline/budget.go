package pipeline

import (
	"time"

	"github.com/theirongolddev/xpense/internal/model"
)

const approachingRatio = 0.9

// CheckBudgets compares spending before and after a change and returns
// the alerts for thresholds the change crossed. Nothing is reported
// unless the overall total increased.
func CheckBudgets(before, after []model.Expense, budget float64, categoryBudgets model.CategoryBudgets) []model.BudgetAlert {
	oldTotal, newTotal := Total(before), Total(after)
	if newTotal <= oldTotal {
		return nil
	}

	var alerts []model.BudgetAlert
	if level, ok := crossed(oldTotal, newTotal, budget); ok {
		alerts = append(alerts, model.BudgetAlert{Level: level, Spent: newTotal, Budget: budget})
	}

	oldByCat, newByCat := CategoryTotals(before), CategoryTotals(after)
	for _, c := range model.Categories {
		limit := categoryBudgets[c]
		if newByCat[c] <= oldByCat[c] {
			continue
		}
		if level, ok := crossed(oldByCat[c], newByCat[c], limit); ok {
			alerts = append(alerts, model.BudgetAlert{Level: level, Category: c, Spent: newByCat[c], Budget: limit})
		}
	}
	return alerts
}

// crossed reports which threshold, if any, spending moved across.
// Exceeding takes precedence over approaching.
func crossed(oldSpent, newSpent, limit float64) (model.AlertLevel, bool) {
	if limit <= 0 {
		return 0, false
	}
	if newSpent > limit && oldSpent <= limit {
		return model.AlertExceeded, true
	}
	warn := limit * approachingRatio
	if newSpent >= warn && oldSpent < warn {
		return model.AlertApproaching, true
	}
	return 0, false
}

// CategoryProgress reports spending against every category with a budget,
// in model.Categories order.
func CategoryProgress(expenses []model.Expense, categoryBudgets model.CategoryBudgets) []model.CategoryProgress {
	totals := CategoryTotals(expenses)
	var out []model.CategoryProgress
	for _, c := range model.Categories {
		limit := categoryBudgets[c]
		if limit <= 0 {
			continue
		}
		out = append(out, model.CategoryProgress{
			Category: c,
			Spent:    totals[c],
			Budget:   limit,
			Percent:  totals[c] / limit * 100,
		})
	}
	return out
}

// ComputeBudgetStats forecasts month-end spending from expenses dated in
// now's calendar month.
func ComputeBudgetStats(expenses []model.Expense, monthlyBudget float64, now time.Time) model.BudgetStats {
	monthStart := startOfMonth(now)
	nextMonth := monthStart.AddDate(0, 1, 0)
	monthExpenses := FilterByTime(expenses, monthStart, nextMonth)

	stats := model.BudgetStats{
		MonthlyBudget: monthlyBudget,
		CurrentSpend:  Total(monthExpenses),
	}

	daysInMonth := int(nextMonth.Sub(monthStart).Hours()/24 + 0.5)
	elapsed := now.Local().Day()
	stats.DaysRemaining = daysInMonth - elapsed
	stats.DailyBurnRate = stats.CurrentSpend / float64(elapsed)
	stats.ProjectedMonthly = stats.DailyBurnRate * float64(daysInMonth)
	if monthlyBudget > 0 {
		stats.BudgetUsedPercent = stats.CurrentSpend / monthlyBudget * 100
	}
	return stats
}
