package pipeline

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/theirongolddev/xpense/internal/model"
)

// ErrNoExpenses is returned when there is nothing to export.
var ErrNoExpenses = errors.New("no expense data to export")

var csvHeader = []string{"ID", "Date", "Amount", "Currency", "Category", "Notes"}

// WriteCSV writes expenses as CSV, tagging each row with currencyCode.
func WriteCSV(w io.Writer, expenses []model.Expense, currencyCode string) error {
	if len(expenses) == 0 {
		return ErrNoExpenses
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, e := range expenses {
		row := []string{
			e.ID,
			e.Date,
			strconv.FormatFloat(e.Amount, 'f', 2, 64),
			currencyCode,
			string(e.Category),
			e.Notes,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing expense %s: %w", e.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportFilename is the default export file name for the given day.
func ExportFilename(now time.Time) string {
	return "xpense-data-" + now.Format(model.DateLayout) + ".csv"
}
