package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/xpense/internal/cli"
	"github.com/theirongolddev/xpense/internal/model"
	"github.com/theirongolddev/xpense/internal/pipeline"
)

var budgetCmd = &cobra.Command{
	Use:   "budget",
	Short: "Show budget progress and forecast",
	RunE:  runBudgetShow,
}

var budgetSetCmd = &cobra.Command{
	Use:   "set <amount>",
	Short: "Set the overall monthly budget",
	Args:  cobra.ExactArgs(1),
	RunE:  runBudgetSet,
}

var budgetCategoryCmd = &cobra.Command{
	Use:   "category <name> <amount>",
	Short: "Set a per-category budget (0 removes it)",
	Args:  cobra.ExactArgs(2),
	RunE:  runBudgetCategory,
}

func init() {
	budgetCmd.AddCommand(budgetSetCmd, budgetCategoryCmd)
	rootCmd.AddCommand(budgetCmd)
}

func runBudgetShow(_ *cobra.Command, _ []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	expenses, err := db.ListExpenses()
	if err != nil {
		return err
	}
	budget, err := db.MonthlyBudget()
	if err != nil {
		return err
	}
	catBudgets, err := db.CategoryBudgets()
	if err != nil {
		return err
	}
	cur := displayCurrency(db)
	money := func(v float64) string { return cli.FormatMoney(v, cur.Symbol) }

	total := pipeline.Total(expenses)
	forecast := pipeline.ComputeBudgetStats(expenses, budget, time.Now())

	fmt.Println()
	fmt.Println(cli.RenderTitle("BUDGET"))
	fmt.Println()
	fmt.Printf("  Overall    %s of %s\n", money(total), money(budget))
	fmt.Printf("             %s\n", cli.RenderBudgetBar(total, budget, 30))
	fmt.Printf("  Remaining  %s\n\n", money(budget-total))

	progress := pipeline.CategoryProgress(expenses, catBudgets)
	if len(progress) == 0 {
		fmt.Println(cli.Muted("  No category budgets. Set one with `xpense budget category Food 300`."))
	} else {
		for _, p := range progress {
			fmt.Printf("  %-10s %s  %s / %s\n", p.Category, cli.RenderBudgetBar(p.Spent, p.Budget, 20), money(p.Spent), money(p.Budget))
		}
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "This Month",
		Headers: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Spent", money(forecast.CurrentSpend)},
			{"Daily Burn", money(forecast.DailyBurnRate) + "/day"},
			{"Projected", money(forecast.ProjectedMonthly)},
			{"Days Remaining", strconv.Itoa(forecast.DaysRemaining)},
		},
	}))
	return nil
}

func runBudgetSet(_ *cobra.Command, args []string) error {
	amount, err := parseAmount(args[0])
	if err != nil {
		return err
	}

	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.SetMonthlyBudget(amount); err != nil {
		return err
	}
	fmt.Printf("  Monthly budget set to %s\n", cli.FormatMoney(amount, displayCurrency(db).Symbol))
	return nil
}

func runBudgetCategory(_ *cobra.Command, args []string) error {
	c, err := model.ParseCategory(args[0])
	if err != nil {
		return err
	}
	amount, err := parseAmount(args[1])
	if err != nil {
		return err
	}

	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.SetCategoryBudget(c, amount); err != nil {
		return err
	}
	if amount == 0 {
		fmt.Printf("  Removed %s budget\n", c)
		return nil
	}
	fmt.Printf("  %s budget set to %s\n", c, cli.FormatMoney(amount, displayCurrency(db).Symbol))
	return nil
}

func parseAmount(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("%w: %q", model.ErrInvalidAmount, s)
	}
	return v, nil
}
