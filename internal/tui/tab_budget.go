package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/theirongolddev/xpense/internal/cli"
	"github.com/theirongolddev/xpense/internal/model"
	"github.com/theirongolddev/xpense/internal/pipeline"
	"github.com/theirongolddev/xpense/internal/tui/components"
	"github.com/theirongolddev/xpense/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

const trendDays = 30

func (a App) renderBudgetTab(cw int) string {
	t := theme.Active
	now := time.Now()
	stats := pipeline.ComputeBudgetStats(a.expenses, a.budget, now)
	total := pipeline.Total(a.expenses)

	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	warnStyle := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)

	var b strings.Builder

	// Row 1: forecast cards
	projDelta := ""
	if a.budget > 0 {
		projDelta = cli.FormatPercent(stats.ProjectedMonthly/a.budget*100) + " of budget"
	}
	b.WriteString(components.MetricCardRow([]components.Metric{
		{Label: "This Month", Value: a.money(stats.CurrentSpend), Delta: cli.FormatPercent(stats.BudgetUsedPercent) + " used"},
		{Label: "Daily Burn", Value: a.money(stats.DailyBurnRate) + "/day"},
		{Label: "Projected", Value: a.money(stats.ProjectedMonthly), Delta: projDelta},
		{Label: "Days Left", Value: strconv.Itoa(stats.DaysRemaining)},
	}, cw))
	b.WriteString("\n")

	// Row 2: overall and per-category progress
	innerW := components.CardInnerWidth(cw)
	labelW := 10
	amountsW := 26
	barW := innerW - labelW - amountsW - 9
	if barW < 10 {
		barW = 10
	}
	amounts := func(spent, budget float64) string {
		return a.money(spent) + " / " + a.money(budget)
	}

	var bars strings.Builder
	bars.WriteString(components.BudgetBar("Overall", total, a.budget, amounts(total, a.budget), labelW, barW))
	progress := pipeline.CategoryProgress(a.expenses, a.catBudgets)
	for _, p := range progress {
		bars.WriteString("\n")
		bars.WriteString(components.BudgetBar(string(p.Category), p.Spent, p.Budget, amounts(p.Spent, p.Budget), labelW, barW))
	}
	if len(progress) == 0 {
		bars.WriteString("\n\n")
		bars.WriteString(dimStyle.Render("No category budgets. Set them in Settings [x]."))
	}
	if stats.ProjectedMonthly > a.budget && a.budget > 0 {
		bars.WriteString("\n\n")
		bars.WriteString(warnStyle.Render(fmt.Sprintf("On pace to overspend by %s this month", a.money(stats.ProjectedMonthly-a.budget))))
	}
	b.WriteString(components.ContentCard("Budget", bars.String(), cw))
	b.WriteString("\n")

	// Row 3: spending by category and the daily trend
	halves := components.LayoutRow(cw, 2)

	var cats strings.Builder
	byCat := pipeline.ByCategory(a.expenses)
	for i, c := range byCat {
		cats.WriteString(categoryLine(c, a.money(c.Amount), components.CardInnerWidth(halves[0])))
		if i < len(byCat)-1 {
			cats.WriteString("\n")
		}
	}

	trend := pipeline.DailyTrend(a.expenses, trendDays, now)
	vals := make([]float64, len(trend))
	var trendTotal float64
	for i, d := range trend {
		vals[i] = d.Amount
		trendTotal += d.Amount
	}
	sparkW := len(vals)
	var spark strings.Builder
	spark.WriteString(components.Sparkline(vals, t.Accent))
	spark.WriteString("\n")
	if len(trend) > 0 {
		spark.WriteString(components.SparklineAxis(trend[0].Date.Format("Jan 2"), "today", sparkW))
	}
	spark.WriteString("\n\n")
	spark.WriteString(dimStyle.Render(fmt.Sprintf("%s over %d days", a.money(trendTotal), trendDays)))

	b.WriteString(components.CardRow([]string{
		components.ContentCard("By Category", cats.String(), halves[0]),
		components.ContentCard(fmt.Sprintf("Last %d Days", trendDays), spark.String(), halves[1]),
	}))

	return b.String()
}

func categoryLine(c model.CategoryStats, amount string, w int) string {
	t := theme.Active
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	barStyle := lipgloss.NewStyle().Foreground(t.Blue).Background(t.Surface)

	right := fmt.Sprintf("%s %5.1f%%", amount, c.SharePercent)
	barW := w - 10 - lipgloss.Width(right) - 2
	if barW < 1 {
		barW = 1
	}
	filled := int(c.SharePercent / 100 * float64(barW))
	if filled > barW {
		filled = barW
	}

	return labelStyle.Render(fmt.Sprintf("%-10s", c.Category)) +
		barStyle.Render(strings.Repeat("█", filled)+strings.Repeat(" ", barW-filled)) +
		labelStyle.Render("  ") +
		valueStyle.Render(right)
}
