package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/xpense/internal/cli"
	"github.com/theirongolddev/xpense/internal/pipeline"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Spending summary with budget forecast",
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(_ *cobra.Command, _ []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	expenses, err := db.ListExpenses()
	if err != nil {
		return err
	}
	cur := displayCurrency(db)

	if len(expenses) == 0 {
		fmt.Println("\n  No expenses recorded yet.")
		fmt.Println("  Add one with `xpense add --amount 12.50 --category Food`.")
		return nil
	}

	now := time.Now()
	since := now.AddDate(0, 0, -(flagDays - 1))
	stats := pipeline.Summarize(expenses, since, time.Time{})
	budget, err := db.MonthlyBudget()
	if err != nil {
		return err
	}
	forecast := pipeline.ComputeBudgetStats(expenses, budget, now)
	money := func(v float64) string { return cli.FormatMoney(v, cur.Symbol) }

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("SPENDING  Last %dd", flagDays)))
	fmt.Println()

	rows := [][]string{
		{"Total Spent (all time)", money(pipeline.Total(expenses))},
		{"---"},
		{"Spent", money(stats.TotalSpent)},
		{"Expenses", cli.FormatNumber(int64(stats.TotalExpenses))},
		{"Active Days", cli.FormatNumber(int64(stats.ActiveDays))},
		{"Avg / Active Day", money(stats.AveragePerDay)},
		{"Largest", money(stats.LargestAmount)},
		{"---"},
		{"Monthly Budget", money(forecast.MonthlyBudget)},
		{"Spent This Month", money(forecast.CurrentSpend)},
		{"Budget Used", cli.FormatPercent(forecast.BudgetUsedPercent)},
		{"Daily Burn", money(forecast.DailyBurnRate) + "/day"},
		{"Projected", money(forecast.ProjectedMonthly) + "/mo"},
		{"Days Remaining", fmt.Sprintf("%d", forecast.DaysRemaining)},
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Metric", "Value"},
		Rows:    rows,
	}))

	var catRows [][]string
	for _, c := range pipeline.ByCategory(expenses) {
		catRows = append(catRows, []string{
			string(c.Category),
			cli.FormatNumber(int64(c.Expenses)),
			money(c.Amount),
			cli.FormatPercent(c.SharePercent),
		})
	}
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "By Category",
		Headers: []string{"Category", "Count", "Spent", "Share"},
		Rows:    catRows,
	}))

	trend := pipeline.DailyTrend(expenses, 7, now)
	values := make([]float64, len(trend))
	var weekTotal float64
	for i, d := range trend {
		values[i] = d.Amount
		weekTotal += d.Amount
	}
	fmt.Println()
	fmt.Printf("  Last 7 days  %s  %s\n", cli.RenderSparkline(values), cli.Muted(money(weekTotal)))

	if !flagQuiet && forecast.MonthlyBudget > 0 && forecast.ProjectedMonthly > forecast.MonthlyBudget {
		fmt.Println()
		fmt.Println("  " + cli.RenderWarning(fmt.Sprintf("On pace to exceed the monthly budget by %s", money(forecast.ProjectedMonthly-forecast.MonthlyBudget))))
	}
	fmt.Println()
	return nil
}
