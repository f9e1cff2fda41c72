package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/xpense/internal/cli"
	"github.com/theirongolddev/xpense/internal/history"
)

var flagHistoryLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show calculator history, newest first",
	Args:  cobra.NoArgs,
	RunE:  runHistoryShow,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all calculator history",
	Args:  cobra.NoArgs,
	RunE:  runHistoryClear,
}

func init() {
	historyCmd.Flags().IntVarP(&flagHistoryLimit, "limit", "l", 20, "Number of entries to show (0 for all)")
	historyCmd.AddCommand(historyClearCmd)
	rootCmd.AddCommand(historyCmd)
}

func runHistoryShow(_ *cobra.Command, _ []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	tape, err := history.Load(db)
	if err != nil {
		return err
	}
	entries := tape.Entries()
	if len(entries) == 0 {
		fmt.Println("\n  No calculations yet.")
		return nil
	}
	if flagHistoryLimit > 0 && len(entries) > flagHistoryLimit {
		entries = entries[:flagHistoryLimit]
	}

	fmt.Println()
	for _, e := range entries {
		fmt.Printf("  %s\n", e)
	}
	if len(entries) < tape.Len() {
		fmt.Println(cli.Muted(fmt.Sprintf("  … %d more (use --limit 0)", tape.Len()-len(entries))))
	}
	return nil
}

func runHistoryClear(_ *cobra.Command, _ []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	tape, err := history.Load(db)
	if err != nil {
		return err
	}
	tape.Clear()
	if err := tape.Sync(db); err != nil {
		return fmt.Errorf("clearing history: %w", err)
	}
	fmt.Println("  Calculator history cleared.")
	return nil
}
