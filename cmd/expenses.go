package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/theirongolddev/xpense/internal/cli"
	"github.com/theirongolddev/xpense/internal/model"
	"github.com/theirongolddev/xpense/internal/pipeline"
	"github.com/theirongolddev/xpense/internal/store"
)

var (
	flagAmount   float64
	flagCategory string
	flagDate     string
	flagNotes    string

	flagListCategory string
	flagAll          bool
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Record an expense",
	Example: `  xpense add --amount 12.50 --category Food --notes lunch
  xpense add -a 80 -k Travel -d 2025-06-01`,
	Args: cobra.NoArgs,
	RunE: runAdd,
}

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Change fields of an existing expense",
	Args:  cobra.ExactArgs(1),
	RunE:  runEdit,
}

var deleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete an expense",
	Args:    cobra.ExactArgs(1),
	RunE:    runDelete,
}

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List expenses, newest first",
	Args:    cobra.NoArgs,
	RunE:    runList,
}

func init() {
	for _, c := range []*cobra.Command{addCmd, editCmd} {
		c.Flags().Float64VarP(&flagAmount, "amount", "a", 0, "Amount spent")
		c.Flags().StringVarP(&flagCategory, "category", "k", string(model.CategoryOther), "Category: Food, Travel, Bills, Shopping, Other")
		c.Flags().StringVarP(&flagDate, "date", "d", "", "Date as YYYY-MM-DD (default today)")
		c.Flags().StringVar(&flagNotes, "notes", "", "Free-form notes")
	}
	_ = addCmd.MarkFlagRequired("amount")

	listCmd.Flags().StringVarP(&flagListCategory, "category", "k", "", "Only this category")
	listCmd.Flags().BoolVar(&flagAll, "all", false, "Ignore --days and list everything")

	rootCmd.AddCommand(addCmd, editCmd, deleteCmd, listCmd)
}

func runAdd(_ *cobra.Command, _ []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	date := flagDate
	if date == "" {
		date = today()
	}
	e := model.Expense{
		Amount:   flagAmount,
		Date:     date,
		Category: model.Category(flagCategory),
		Notes:    flagNotes,
	}

	before, err := db.ListExpenses()
	if err != nil {
		return err
	}
	saved, err := db.AddExpense(e)
	if err != nil {
		return fmt.Errorf("adding expense: %w", err)
	}
	log.Debug("expense added", zap.String("id", saved.ID), zap.Float64("amount", saved.Amount))

	cur := displayCurrency(db)
	fmt.Printf("  Added %s  %s  %s  %s\n", saved.ID, saved.Date, saved.Category, cli.FormatMoney(saved.Amount, cur.Symbol))

	after := append([]model.Expense{saved}, before...)
	return reportAlerts(db, before, after)
}

func runEdit(cmd *cobra.Command, args []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	before, err := db.ListExpenses()
	if err != nil {
		return err
	}
	e, err := db.GetExpense(args[0])
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("amount") {
		e.Amount = flagAmount
	}
	if flags.Changed("category") {
		c, err := model.ParseCategory(flagCategory)
		if err != nil {
			return err
		}
		e.Category = c
	}
	if flags.Changed("date") {
		e.Date = flagDate
	}
	if flags.Changed("notes") {
		e.Notes = flagNotes
	}
	if err := db.UpdateExpense(e); err != nil {
		return fmt.Errorf("editing expense: %w", err)
	}

	after := make([]model.Expense, len(before))
	for i, old := range before {
		if old.ID == e.ID {
			old = e
		}
		after[i] = old
	}

	cur := displayCurrency(db)
	fmt.Printf("  Updated %s  %s  %s  %s\n", e.ID, e.Date, e.Category, cli.FormatMoney(e.Amount, cur.Symbol))
	return reportAlerts(db, before, after)
}

func runDelete(_ *cobra.Command, args []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.DeleteExpense(args[0]); err != nil {
		return err
	}
	fmt.Printf("  Deleted %s\n", args[0])
	return nil
}

func runList(_ *cobra.Command, _ []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	expenses, err := db.ListExpenses()
	if err != nil {
		return err
	}
	if flagListCategory != "" {
		c, err := model.ParseCategory(flagListCategory)
		if err != nil {
			return err
		}
		expenses = pipeline.FilterByCategory(expenses, c)
	}
	if !flagAll {
		since := time.Now().AddDate(0, 0, -(flagDays - 1))
		expenses = pipeline.FilterByTime(expenses, since, time.Time{})
	}

	if len(expenses) == 0 {
		fmt.Println("\n  No expenses match.")
		return nil
	}

	cur := displayCurrency(db)
	rows := make([][]string, 0, len(expenses)+2)
	for _, e := range expenses {
		rows = append(rows, []string{e.ID, e.Date, string(e.Category), e.Notes, cli.FormatMoney(e.Amount, cur.Symbol)})
	}
	rows = append(rows, []string{"---"}, []string{"Total", "", "", "", cli.FormatMoney(pipeline.Total(expenses), cur.Symbol)})

	title := fmt.Sprintf("Expenses  Last %dd", flagDays)
	if flagAll {
		title = "Expenses"
	}
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:    title,
		Headers:  []string{"ID", "Date", "Category", "Notes", "Amount"},
		Rows:     rows,
		LeftCols: 4,
	}))
	return nil
}

// reportAlerts prints budget warnings for thresholds crossed by a change.
func reportAlerts(db *store.DB, before, after []model.Expense) error {
	budget, err := db.MonthlyBudget()
	if err != nil {
		return err
	}
	catBudgets, err := db.CategoryBudgets()
	if err != nil {
		return err
	}
	for _, a := range pipeline.CheckBudgets(before, after, budget, catBudgets) {
		fmt.Println("  " + cli.RenderWarning(a.Message()))
	}
	return nil
}
