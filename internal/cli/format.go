// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"math"
	"time"

	"github.com/dustin/go-humanize"
)

// FormatMoney formats an amount with a currency symbol and two decimals.
// e.g., 1234.5, "$" -> "$1,234.50"
func FormatMoney(amount float64, symbol string) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return symbol + fmt.Sprint(amount)
	}
	if amount < 0 {
		return "-" + symbol + humanize.FormatFloat("#,###.##", -amount)
	}
	return symbol + humanize.FormatFloat("#,###.##", amount)
}

// FormatCompactMoney drops cents once amounts reach the thousands.
func FormatCompactMoney(amount float64, symbol string) string {
	if math.Abs(amount) >= 1000 {
		return symbol + FormatNumber(int64(math.Round(amount)))
	}
	return FormatMoney(amount, symbol)
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	return humanize.Comma(n)
}

// FormatPercent formats a 0-100 value as a percentage string.
func FormatPercent(pct float64) string {
	return fmt.Sprintf("%.1f%%", pct)
}

// FormatRate formats an exchange rate with enough precision for small
// and large currencies alike.
func FormatRate(rate float64) string {
	if rate >= 100 {
		return humanize.FormatFloat("#,###.##", rate)
	}
	return humanize.FormatFloat("#,###.####", rate)
}

// FormatAge describes how long ago t was, e.g. "3 hours ago".
func FormatAge(t time.Time) string {
	if t.IsZero() {
		return "never"
	}
	return humanize.Time(t)
}

// FormatDayOfWeek returns a 3-letter day abbreviation from a weekday number.
func FormatDayOfWeek(weekday int) string {
	days := []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
	if weekday >= 0 && weekday < 7 {
		return days[weekday]
	}
	return "???"
}
