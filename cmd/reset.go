package cmd

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var flagYes bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all expenses, budgets, rates and history",
	Args:  cobra.NoArgs,
	RunE:  runReset,
}

func init() {
	resetCmd.Flags().BoolVarP(&flagYes, "yes", "y", false, "Skip the confirmation prompt")
	rootCmd.AddCommand(resetCmd)
}

func runReset(_ *cobra.Command, _ []string) error {
	if !flagYes {
		confirmed := false
		err := huh.NewConfirm().
			Title("Reset all data?").
			Description("Expenses, budgets, currency, cached rates and calculator history will be deleted. This cannot be undone.").
			Affirmative("Delete everything").
			Negative("Cancel").
			Value(&confirmed).
			Run()
		if err != nil {
			return err
		}
		if !confirmed {
			fmt.Println("  Reset cancelled.")
			return nil
		}
	}

	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.ResetAll(); err != nil {
		return fmt.Errorf("resetting data: %w", err)
	}
	fmt.Println("  All data deleted.")
	return nil
}
