package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/xpense/internal/pipeline"
)

var flagOutput string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all expenses as CSV",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "Output file, or - for stdout (default xpense-data-<date>.csv)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(_ *cobra.Command, _ []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	expenses, err := db.ListExpenses()
	if err != nil {
		return err
	}
	if len(expenses) == 0 {
		return pipeline.ErrNoExpenses
	}
	code := displayCurrency(db).Code

	if flagOutput == "-" {
		return pipeline.WriteCSV(os.Stdout, expenses, code)
	}

	path := flagOutput
	if path == "" {
		path = pipeline.ExportFilename(time.Now())
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating export file: %w", err)
	}
	if err := pipeline.WriteCSV(f, expenses, code); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	fmt.Printf("  Exported %d expenses to %s\n", len(expenses), path)
	return nil
}
