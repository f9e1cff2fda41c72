package components

import (
	"strings"

	"github.com/theirongolddev/xpense/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// StatusInfo is the right-hand side of the status bar.
type StatusInfo struct {
	Currency   string  // display currency code
	BudgetUsed float64 // fraction of the monthly budget spent; <0 hides the bar
	RatesAge   string  // human age of cached rates, empty when none
	Busy       string  // spinner + label while a background task runs
	Flash      string  // last action result
}

// RenderStatusBar renders the bottom status bar.
func RenderStatusBar(width int, info StatusInfo) string {
	t := theme.Active

	base := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	accent := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	flash := lipgloss.NewStyle().Foreground(t.GreenBright).Background(t.Surface)

	left := base.Render(" [?]help  [q]uit")
	if info.Flash != "" {
		left += base.Render("  ") + flash.Render(info.Flash)
	}

	var right []string
	if info.Busy != "" {
		right = append(right, base.Render(info.Busy))
	}
	if info.BudgetUsed >= 0 {
		right = append(right, CompactBudgetBar("Month", info.BudgetUsed, 22))
	}
	if info.RatesAge != "" {
		right = append(right, base.Render("rates "+info.RatesAge))
	}
	if info.Currency != "" {
		right = append(right, accent.Render(info.Currency))
	}
	rightStr := strings.Join(right, base.Render("  ")) + base.Render(" ")

	padding := width - lipgloss.Width(left) - lipgloss.Width(rightStr)
	if padding < 0 {
		padding = 0
	}

	return left + base.Render(strings.Repeat(" ", padding)) + rightStr
}
