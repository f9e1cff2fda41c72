package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/theirongolddev/xpense/internal/model"
	"github.com/theirongolddev/xpense/internal/pipeline"
	"github.com/theirongolddev/xpense/internal/tui/components"
	"github.com/theirongolddev/xpense/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

// expensesState tracks the expenses tab.
type expensesState struct {
	cursor        int
	filter        model.Category // empty shows all
	confirmDelete string         // ID awaiting a second 'd'
	alerts        []model.BudgetAlert

	form     *huh.Form
	formVals *expenseFormValues
	editID   string // empty when adding
}

type expenseFormValues struct {
	Amount   string
	Category model.Category
	Date     string
	Notes    string
}

func (a App) visibleExpenses() []model.Expense {
	if a.exp.filter == "" {
		return a.expenses
	}
	return pipeline.FilterByCategory(a.expenses, a.exp.filter)
}

func (a *App) clampExpenseCursor() {
	n := len(a.visibleExpenses())
	if a.exp.cursor >= n {
		a.exp.cursor = n - 1
	}
	if a.exp.cursor < 0 {
		a.exp.cursor = 0
	}
}

func (a *App) moveExpenseCursor(delta int) {
	a.exp.cursor += delta
	a.exp.confirmDelete = ""
	a.clampExpenseCursor()
}

func (a App) selectedExpense() (model.Expense, bool) {
	list := a.visibleExpenses()
	if a.exp.cursor < 0 || a.exp.cursor >= len(list) {
		return model.Expense{}, false
	}
	return list[a.exp.cursor], true
}

func (a App) updateExpenses(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "j", "down":
		a.moveExpenseCursor(1)
	case "k", "up":
		a.moveExpenseCursor(-1)
	case "g":
		a.exp.cursor = 0
	case "G":
		a.exp.cursor = len(a.visibleExpenses()) - 1
		a.clampExpenseCursor()
	case "f":
		a.exp.filter = nextCategoryFilter(a.exp.filter)
		a.exp.cursor = 0
	case "a":
		return a.openExpenseForm(model.Expense{})
	case "enter":
		if e, ok := a.selectedExpense(); ok {
			return a.openExpenseForm(e)
		}
	case "d":
		e, ok := a.selectedExpense()
		if !ok {
			return a, nil
		}
		if a.exp.confirmDelete != e.ID {
			a.exp.confirmDelete = e.ID
			a.flash = "Press d again to delete"
			return a, nil
		}
		a.exp.confirmDelete = ""
		if err := a.db.DeleteExpense(e.ID); err != nil {
			a.log.Error("deleting expense", zap.String("id", e.ID), zap.Error(err))
			a.flash = "Delete failed: " + err.Error()
			return a, nil
		}
		a.reloadExpenses()
		a.flash = "Expense deleted"
	case "esc":
		a.exp.confirmDelete = ""
		a.exp.alerts = nil
		a.flash = ""
	}
	return a, nil
}

// nextCategoryFilter cycles all -> Food -> ... -> Other -> all.
func nextCategoryFilter(cur model.Category) model.Category {
	if cur == "" {
		return model.Categories[0]
	}
	for i, c := range model.Categories {
		if c == cur && i+1 < len(model.Categories) {
			return model.Categories[i+1]
		}
	}
	return ""
}

func (a *App) reloadExpenses() {
	list, err := a.db.ListExpenses()
	if err != nil {
		a.log.Error("listing expenses", zap.Error(err))
		a.flash = "Could not reload expenses: " + err.Error()
		return
	}
	a.expenses = list
	a.clampExpenseCursor()
}

// ─── Add / edit form ────────────────────────────────────────────

func newExpenseForm(vals *expenseFormValues, editing bool) *huh.Form {
	opts := make([]huh.Option[model.Category], 0, len(model.Categories))
	for _, c := range model.Categories {
		opts = append(opts, huh.NewOption(string(c), c))
	}

	title := "Add expense"
	if editing {
		title = "Edit expense"
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				Description("Amount").
				Placeholder("12.50").
				Validate(validateAmount).
				Value(&vals.Amount),
			huh.NewSelect[model.Category]().
				Title("Category").
				Options(opts...).
				Value(&vals.Category),
			huh.NewInput().
				Title("Date").
				Placeholder(model.DateLayout).
				Validate(validateDate).
				Value(&vals.Date),
			huh.NewInput().
				Title("Notes").
				Placeholder("optional").
				CharLimit(200).
				Value(&vals.Notes),
		),
	).WithTheme(theme.Form()).WithShowHelp(true)
}

func validateAmount(s string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || !(v > 0) {
		return model.ErrInvalidAmount
	}
	return nil
}

func validateDate(s string) error {
	if _, err := time.Parse(model.DateLayout, strings.TrimSpace(s)); err != nil {
		return errors.New("date must be YYYY-MM-DD")
	}
	return nil
}

func (a App) openExpenseForm(e model.Expense) (tea.Model, tea.Cmd) {
	vals := &expenseFormValues{
		Category: model.CategoryOther,
		Date:     time.Now().Format(model.DateLayout),
	}
	if e.ID != "" {
		vals.Amount = strconv.FormatFloat(e.Amount, 'f', -1, 64)
		vals.Category = e.Category
		vals.Date = e.Date
		vals.Notes = e.Notes
	}

	a.exp.formVals = vals
	a.exp.editID = e.ID
	a.exp.confirmDelete = ""
	a.exp.form = newExpenseForm(vals, e.ID != "")
	if a.width > 0 {
		a.exp.form = a.exp.form.WithWidth(a.contentWidth())
	}
	return a, a.exp.form.Init()
}

func (a App) updateExpenseForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.exp.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.exp.form = f
	}

	switch a.exp.form.State {
	case huh.StateCompleted:
		a.saveExpenseForm()
		a.exp.form = nil
		a.exp.formVals = nil
		return a, nil
	case huh.StateAborted:
		a.exp.form = nil
		a.exp.formVals = nil
		return a, nil
	}
	return a, cmd
}

// saveExpenseForm writes the form to the store and raises budget
// alerts for thresholds the change crossed.
func (a *App) saveExpenseForm() {
	vals := a.exp.formVals
	amount, err := strconv.ParseFloat(strings.TrimSpace(vals.Amount), 64)
	if err != nil {
		a.flash = model.ErrInvalidAmount.Error()
		return
	}
	e := model.Expense{
		ID:       a.exp.editID,
		Amount:   amount,
		Date:     strings.TrimSpace(vals.Date),
		Category: vals.Category,
		Notes:    strings.TrimSpace(vals.Notes),
	}

	before := a.expenses
	if e.ID == "" {
		added, err := a.db.AddExpense(e)
		if err != nil {
			a.log.Error("adding expense", zap.Error(err))
			a.flash = "Not saved: " + err.Error()
			return
		}
		a.log.Debug("expense added", zap.String("id", added.ID))
		a.flash = "Added " + a.money(added.Amount)
	} else {
		if err := a.db.UpdateExpense(e); err != nil {
			a.log.Error("updating expense", zap.String("id", e.ID), zap.Error(err))
			a.flash = "Not saved: " + err.Error()
			return
		}
		a.flash = "Updated " + a.money(e.Amount)
	}

	a.reloadExpenses()
	a.exp.alerts = pipeline.CheckBudgets(before, a.expenses, a.budget, a.catBudgets)
	if e.ID == "" && a.exp.filter == "" {
		a.exp.cursor = 0
	}
}

// ─── Rendering ──────────────────────────────────────────────────

func (a App) renderExpensesTab(cw, h int) string {
	t := theme.Active

	if a.exp.form != nil {
		return components.ContentCard("", a.exp.form.View(), cw)
	}

	headerStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	selStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceBright).Bold(true)
	delStyle := lipgloss.NewStyle().Foreground(t.Red).Background(t.SurfaceBright).Bold(true)
	warnStyle := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface).Bold(true)

	var b strings.Builder

	for _, alert := range a.exp.alerts {
		b.WriteString(warnStyle.Render("⚠ " + alert.Message()))
		b.WriteString("\n")
	}
	if len(a.exp.alerts) > 0 {
		b.WriteString("\n")
	}

	list := a.visibleExpenses()
	innerW := components.CardInnerWidth(cw)
	notesW := innerW - 12 - 10 - 14 - 4
	if notesW < 8 {
		notesW = 8
	}

	line := func(date, cat, amount, notes string) string {
		return fmt.Sprintf("%-12s%-10s%14s  %s", date, cat, amount, truncStr(notes, notesW))
	}
	b.WriteString(headerStyle.Render(line("Date", "Category", "Amount", "Notes")))
	b.WriteString("\n")

	if len(list) == 0 {
		b.WriteString(dimStyle.Render("No expenses yet. Press a to add one."))
	}

	// Keep the cursor inside the visible window
	rows := h - 6 - len(a.exp.alerts)
	if rows < 3 {
		rows = 3
	}
	offset := 0
	if a.exp.cursor >= rows {
		offset = a.exp.cursor - rows + 1
	}

	for i := offset; i < len(list) && i < offset+rows; i++ {
		e := list[i]
		text := line(e.Date, string(e.Category), a.money(e.Amount), e.Notes)
		switch {
		case i == a.exp.cursor && a.exp.confirmDelete == e.ID:
			b.WriteString(delStyle.Width(innerW).Render(text))
		case i == a.exp.cursor:
			b.WriteString(selStyle.Width(innerW).Render(text))
		default:
			b.WriteString(rowStyle.Render(text))
		}
		b.WriteString("\n")
	}

	title := fmt.Sprintf("Expenses (%d)", len(list))
	if a.exp.filter != "" {
		title = fmt.Sprintf("Expenses · %s (%d)", a.exp.filter, len(list))
	}
	footer := dimStyle.Render(fmt.Sprintf("Total %s  ·  [a]dd  [Enter] edit  [d]elete  [f]ilter",
		a.money(pipeline.Total(list))))

	return components.ContentCard(title, b.String()+footer, cw)
}
