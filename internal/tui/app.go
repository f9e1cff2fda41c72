// Package tui provides the interactive Bubble Tea dashboard for xpense.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/theirongolddev/xpense/internal/cli"
	"github.com/theirongolddev/xpense/internal/config"
	"github.com/theirongolddev/xpense/internal/history"
	"github.com/theirongolddev/xpense/internal/logging"
	"github.com/theirongolddev/xpense/internal/model"
	"github.com/theirongolddev/xpense/internal/pipeline"
	"github.com/theirongolddev/xpense/internal/rates"
	"github.com/theirongolddev/xpense/internal/store"
	"github.com/theirongolddev/xpense/internal/tui/components"
	"github.com/theirongolddev/xpense/internal/tui/theme"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

// DataLoadedMsg is sent when the store has been read.
type DataLoadedMsg struct {
	Expenses   []model.Expense
	Budget     float64
	CatBudgets model.CategoryBudgets
	Currency   model.Currency
	History    []string
	Rates      model.ExchangeRates
	HasRates   bool
	Err        error
}

// RatesFetchedMsg is sent when an exchange rate download completes.
type RatesFetchedMsg struct {
	Rates model.ExchangeRates
	Err   error
}

// App is the root Bubble Tea model.
type App struct {
	db  *store.DB
	cfg config.Config
	log *logging.Logger

	// Data
	expenses   []model.Expense
	budget     float64
	catBudgets model.CategoryBudgets
	currency   model.Currency
	rates      model.ExchangeRates
	hasRates   bool
	loaded     bool
	loadErr    error

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool
	flash     string

	// Per-tab state
	calc     calcState
	exp      expensesState
	settings settingsState

	// First-run setup (huh form)
	setupForm *huh.Form
	setupVals *SetupValues // shared with the form across App copies
	needSetup bool

	spinner  spinner.Model
	fetching bool
}

const (
	tabCalculator = iota
	tabExpenses
	tabBudget
	tabSettings
)

const (
	minTerminalWidth = 60
	maxContentWidth  = 140
	minContentHeight = 5

	fetchTimeout = 30 * time.Second
)

// NewApp creates a new TUI app model backed by db.
func NewApp(db *store.DB, cfg config.Config, log *logging.Logger) App {
	if log == nil {
		log = logging.NewNop()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	return App{
		db:        db,
		cfg:       cfg,
		log:       log,
		budget:    model.DefaultMonthlyBudget,
		currency:  model.DefaultCurrency,
		needSetup: !config.Exists(),
		calc:      newCalcState(nil),
		spinner:   sp,
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnableMouseCellMotion,
		loadDataCmd(a.db),
		a.spinner.Tick,
	)
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		if a.exp.form != nil {
			a.exp.form = a.exp.form.WithWidth(a.contentWidth())
		}
		return a, nil

	case tea.MouseMsg:
		if !a.loaded || a.showHelp || a.setupForm != nil || a.exp.form != nil {
			return a, nil
		}
		return a.updateMouse(msg)

	case tea.KeyMsg:
		return a.updateKey(msg)

	case DataLoadedMsg:
		a.loaded = true
		a.loadErr = msg.Err
		if msg.Err != nil {
			a.log.Error("loading data", zap.Error(msg.Err))
		}
		a.expenses = msg.Expenses
		a.budget = msg.Budget
		a.catBudgets = msg.CatBudgets
		a.currency = msg.Currency
		a.rates = msg.Rates
		a.hasRates = msg.HasRates
		a.calc = newCalcState(history.New(msg.History))
		a.clampExpenseCursor()

		if a.needSetup {
			vals := DefaultSetupValues(a.cfg, a.db)
			a.setupVals = &vals
			a.setupForm = NewSetupForm(a.setupVals)
			if a.width > 0 {
				a.setupForm = a.setupForm.WithWidth(a.width).WithHeight(a.height)
			}
			return a, a.setupForm.Init()
		}
		return a, nil

	case RatesFetchedMsg:
		a.fetching = false
		if msg.Err != nil {
			a.log.Warn("rate fetch failed", zap.Error(msg.Err))
			a.flash = "Rate fetch failed: " + msg.Err.Error()
			return a, nil
		}
		if err := a.db.SaveRates(msg.Rates); err != nil {
			a.log.Error("caching rates", zap.Error(err))
			a.flash = "Could not cache rates: " + err.Error()
			return a, nil
		}
		a.rates = msg.Rates
		a.hasRates = true
		a.flash = fmt.Sprintf("Fetched %d rates", len(msg.Rates.Rates))
		a.log.Info("rates fetched", zap.String("base", msg.Rates.Base), zap.Int("count", len(msg.Rates.Rates)))
		return a, nil

	case spinner.TickMsg:
		if !a.loaded || a.fetching {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	// Forward unhandled messages to an active form (cursor blinks, etc.)
	if a.setupForm != nil {
		return a.updateSetupForm(msg)
	}
	if a.exp.form != nil {
		return a.updateExpenseForm(msg)
	}
	return a, nil
}

func (a App) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		return a, tea.Quit
	}
	if !a.loaded {
		return a, nil
	}

	// Forms and text inputs intercept all keys
	if a.setupForm != nil {
		return a.updateSetupForm(msg)
	}
	if a.exp.form != nil {
		return a.updateExpenseForm(msg)
	}
	if a.activeTab == tabSettings && a.settings.editing {
		return a.updateSettingsInput(msg)
	}

	if key == "?" {
		a.showHelp = !a.showHelp
		return a, nil
	}
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	if key == "q" {
		return a, tea.Quit
	}

	// Tab navigation
	switch key {
	case "tab", "right":
		a.switchTab((a.activeTab + 1) % len(components.Tabs))
		return a, nil
	case "shift+tab", "left":
		a.switchTab((a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs))
		return a, nil
	}
	if len(msg.Runes) == 1 {
		if idx := components.TabIdxByKey(msg.Runes[0]); idx >= 0 && msg.Type == tea.KeyRunes {
			a.switchTab(idx)
			return a, nil
		}
	}

	switch a.activeTab {
	case tabCalculator:
		return a.updateCalculator(key)
	case tabExpenses:
		return a.updateExpenses(key)
	case tabSettings:
		return a.updateSettings(key)
	}
	return a, nil
}

func (a *App) switchTab(idx int) {
	a.activeTab = idx
	a.flash = ""
	a.exp.confirmDelete = ""
}

func (a App) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if a.activeTab == tabExpenses {
			a.moveExpenseCursor(-1)
		}
	case tea.MouseButtonWheelDown:
		if a.activeTab == tabExpenses {
			a.moveExpenseCursor(1)
		}
	case tea.MouseButtonLeft:
		if msg.Action == tea.MouseActionPress && msg.Y == 0 {
			if tab := a.tabAtX(msg.X); tab >= 0 {
				a.switchTab(tab)
			}
		}
	}
	return a, nil
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	switch a.setupForm.State {
	case huh.StateCompleted:
		cfg, err := ApplySetup(a.cfg, a.db, *a.setupVals)
		if err != nil {
			a.log.Error("saving setup", zap.Error(err))
			a.flash = "Setup not saved: " + err.Error()
		} else {
			a.cfg = cfg
			a.flash = "Saved to " + config.Path()
		}
		a.needSetup = false
		a.setupForm = nil
		return a, loadDataCmd(a.db)
	case huh.StateAborted:
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	}
	return a, cmd
}

func (a App) contentWidth() int {
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	return cw
}

func (a App) money(v float64) string {
	return cli.FormatMoney(v, a.currency.Symbol)
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}
	if !a.loaded {
		return a.viewLoading()
	}
	if a.setupForm != nil {
		return a.setupForm.View()
	}
	if a.showHelp {
		return a.viewHelp()
	}
	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := a.height
	if h < 5 {
		h = 5
	}
	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  xpense needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)
	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewLoading() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(2, 4)
	logoStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	subtitleStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	body := logoStyle.Render("◈ xpense") +
		subtitleStyle.Render(" · Expenses & Calculator") + "\n\n" +
		a.spinner.View() + subtitleStyle.Render(" Opening ledger...")

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(body),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)
	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Cyan).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	sections := []struct {
		title    string
		bindings []struct{ key, desc string }
	}{
		{"Navigation", []struct{ key, desc string }{
			{"c e b x", "Jump to tab"},
			{"tab ← →", "Previous / Next tab"},
			{"j k", "Navigate lists"},
		}},
		{"Calculator", []struct{ key, desc string }{
			{"0-9 .", "Enter number"},
			{"+ - * /", "Operator"},
			{"= Enter", "Equals"},
			{"%", "Percent"},
			{"n", "Toggle sign"},
			{"⌫", "Backspace"},
			{"Esc", "Clear"},
			{"Del", "Clear history"},
		}},
		{"Expenses", []struct{ key, desc string }{
			{"a", "Add expense"},
			{"Enter", "Edit selected"},
			{"d d", "Delete selected"},
			{"f", "Cycle category filter"},
		}},
		{"Settings", []struct{ key, desc string }{
			{"Enter", "Edit field"},
			{"r", "Fetch exchange rates"},
		}},
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n")
	for _, s := range sections {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render(s.title))
		b.WriteString("\n")
		for _, bind := range s.bindings {
			fmt.Fprintf(&b, "  %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
				descStyle.Render(bind.desc))
		}
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("? toggle help · q quit · press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	header := components.RenderTabBar(a.activeTab, w)
	statusBar := components.RenderStatusBar(w, a.statusInfo())

	contentH := h - lipgloss.Height(header) - lipgloss.Height(statusBar)
	if contentH < minContentHeight {
		contentH = minContentHeight
	}

	var content string
	switch a.activeTab {
	case tabCalculator:
		content = a.renderCalculatorTab(cw, contentH)
	case tabExpenses:
		content = a.renderExpensesTab(cw, contentH)
	case tabBudget:
		content = a.renderBudgetTab(cw)
	case tabSettings:
		content = a.renderSettingsTab(cw)
	}
	if a.loadErr != nil {
		warn := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Background)
		content = warn.Render("Could not load data: "+a.loadErr.Error()) + "\n" + content
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) statusInfo() components.StatusInfo {
	info := components.StatusInfo{
		Currency:   a.currency.Code,
		BudgetUsed: -1,
		Flash:      a.flash,
	}
	if a.budget > 0 {
		stats := pipeline.ComputeBudgetStats(a.expenses, a.budget, time.Now())
		info.BudgetUsed = stats.BudgetUsedPercent / 100
	}
	if a.hasRates {
		info.RatesAge = cli.FormatAge(a.rates.LastUpdated)
	}
	if a.fetching {
		info.Busy = a.spinner.View() + " fetching rates"
	}
	return info
}

// ─── Commands ───────────────────────────────────────────────────

// loadDataCmd reads everything the dashboard shows from the store.
func loadDataCmd(db *store.DB) tea.Cmd {
	return func() tea.Msg {
		return loadData(db)
	}
}

func loadData(db *store.DB) DataLoadedMsg {
	msg := DataLoadedMsg{
		Budget:   model.DefaultMonthlyBudget,
		Currency: model.DefaultCurrency,
	}
	if db == nil {
		msg.Err = errors.New("no database")
		return msg
	}

	var errs []error
	var err error
	if msg.Expenses, err = db.ListExpenses(); err != nil {
		errs = append(errs, err)
	}
	if msg.Budget, err = db.MonthlyBudget(); err != nil {
		errs = append(errs, err)
	}
	if msg.CatBudgets, err = db.CategoryBudgets(); err != nil {
		errs = append(errs, err)
	}
	if c, err := db.Currency(); err == nil {
		msg.Currency = c
	} else {
		errs = append(errs, err)
	}
	if msg.History, err = db.LoadHistory(); err != nil {
		errs = append(errs, err)
	}
	if r, err := db.LoadRates(); err == nil {
		msg.Rates = r
		msg.HasRates = true
	} else if !errors.Is(err, store.ErrNotFound) {
		errs = append(errs, err)
	}
	msg.Err = errors.Join(errs...)
	return msg
}

// fetchRatesCmd downloads exchange rates in the background.
func fetchRatesCmd(cfg config.Config, base string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		client := rates.NewClient(cfg.Rates.BaseURL, cfg.Rates.APIKey)
		r, err := client.Fetch(ctx, base)
		return RatesFetchedMsg{Rates: r, Err: err}
	}
}

// ─── Helpers ────────────────────────────────────────────────────

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w with background color.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")

	var result strings.Builder
	for i, line := range lines {
		result.WriteString(lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg)))
		if i < len(lines)-1 {
			result.WriteString("\n")
		}
	}
	return result.String()
}

// ─── Mouse Support ──────────────────────────────────────────────

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes are derived from the same width rules used by RenderTabBar.
func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)
		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW

		// Separator is one column between tabs.
		if i < len(components.Tabs)-1 {
			pos++
		}
	}
	return -1
}
