package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/xpense/internal/cli"
	"github.com/theirongolddev/xpense/internal/config"
	"github.com/theirongolddev/xpense/internal/model"
	"github.com/theirongolddev/xpense/internal/tui/components"
	"github.com/theirongolddev/xpense/internal/tui/theme"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

const (
	settingsFieldCurrency = iota
	settingsFieldTheme
	settingsFieldBudget
	settingsFieldRatesBase
	settingsFieldCategory // first of len(model.Categories) category budget rows
)

var settingsFieldCount = settingsFieldCategory + len(model.Categories)

// settingsState tracks the settings tab state.
type settingsState struct {
	cursor  int
	editing bool
	input   textinput.Model
	saved   bool  // flash "saved" message briefly
	saveErr error // non-nil if last save failed
}

func newSettingsInput() textinput.Model {
	ti := textinput.New()
	ti.CharLimit = 32
	ti.Width = 30
	return ti
}

// settingsCategory returns the category edited by field, if any.
func settingsCategory(field int) (model.Category, bool) {
	i := field - settingsFieldCategory
	if i < 0 || i >= len(model.Categories) {
		return "", false
	}
	return model.Categories[i], true
}

func (a App) updateSettings(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "j", "down":
		if a.settings.cursor < settingsFieldCount-1 {
			a.settings.cursor++
		}
	case "k", "up":
		if a.settings.cursor > 0 {
			a.settings.cursor--
		}
	case "enter":
		return a.settingsStartEdit()
	case "r":
		if a.fetching {
			return a, nil
		}
		a.fetching = true
		a.flash = ""
		return a, tea.Batch(fetchRatesCmd(a.cfg, a.cfg.Rates.BaseCurrency), a.spinner.Tick)
	}
	return a, nil
}

func (a App) settingsStartEdit() (tea.Model, tea.Cmd) {
	a.settings.editing = true
	a.settings.saved = false
	a.settings.saveErr = nil

	ti := newSettingsInput()
	switch a.settings.cursor {
	case settingsFieldCurrency:
		ti.Placeholder = strings.Join(model.CurrencyCodes(), " ")
		ti.SetValue(a.currency.Code)
	case settingsFieldTheme:
		ti.Placeholder = strings.Join(theme.Names(), ", ")
		ti.SetValue(theme.Active.Name)
	case settingsFieldBudget:
		ti.Placeholder = "1000"
		ti.SetValue(strconv.FormatFloat(a.budget, 'f', -1, 64))
	case settingsFieldRatesBase:
		ti.Placeholder = "USD"
		ti.SetValue(a.cfg.Rates.BaseCurrency)
	default:
		if c, ok := settingsCategory(a.settings.cursor); ok {
			ti.Placeholder = "0 (no limit)"
			if v := a.catBudgets[c]; v > 0 {
				ti.SetValue(strconv.FormatFloat(v, 'f', -1, 64))
			}
		}
	}

	ti.Focus()
	a.settings.input = ti
	return a, textinput.Blink
}

func (a App) updateSettingsInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		a.settingsSave()
		a.settings.editing = false
		a.settings.saved = a.settings.saveErr == nil
		return a, nil
	case "esc":
		a.settings.editing = false
		return a, nil
	}

	var cmd tea.Cmd
	a.settings.input, cmd = a.settings.input.Update(msg)
	return a, cmd
}

func parseBudgetInput(val string) (float64, error) {
	if val == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(val, 64)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("%w: %q", model.ErrInvalidAmount, val)
	}
	return v, nil
}

func (a *App) settingsSave() {
	val := strings.TrimSpace(a.settings.input.Value())
	var err error

	switch a.settings.cursor {
	case settingsFieldCurrency:
		c, ok := model.CurrencyByCode(val)
		if !ok {
			err = fmt.Errorf("unsupported currency %q", val)
			break
		}
		if err = a.db.SetCurrency(c.Code); err == nil {
			a.currency = c
		}
	case settingsFieldTheme:
		if !theme.Valid(val) {
			err = fmt.Errorf("unknown theme %q", val)
			break
		}
		a.cfg.Appearance.Theme = val
		theme.SetActive(val)
		err = config.Save(a.cfg)
	case settingsFieldBudget:
		var v float64
		if v, err = parseBudgetInput(val); err == nil {
			if err = a.db.SetMonthlyBudget(v); err == nil {
				a.budget = v
			}
		}
	case settingsFieldRatesBase:
		c, ok := model.CurrencyByCode(val)
		if !ok {
			err = fmt.Errorf("unsupported currency %q", val)
			break
		}
		a.cfg.Rates.BaseCurrency = c.Code
		err = config.Save(a.cfg)
	default:
		c, ok := settingsCategory(a.settings.cursor)
		if !ok {
			return
		}
		var v float64
		if v, err = parseBudgetInput(val); err == nil {
			if err = a.db.SetCategoryBudget(c, v); err == nil {
				a.catBudgets, err = a.db.CategoryBudgets()
			}
		}
	}

	if err != nil {
		a.log.Warn("saving setting", zap.Int("field", a.settings.cursor), zap.Error(err))
	}
	a.settings.saveErr = err
}

func (a App) renderSettingsTab(cw int) string {
	t := theme.Active

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selectedStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceBright).Bold(true)
	selectedLabelStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.SurfaceBright).Bold(true)
	accentStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface)
	greenStyle := lipgloss.NewStyle().Foreground(t.GreenBright).Background(t.Surface)
	markerStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceBright)

	type field struct {
		label string
		value string
	}

	fields := []field{
		{"Currency", fmt.Sprintf("%s (%s %s)", a.currency.Code, a.currency.Symbol, a.currency.Name)},
		{"Theme", theme.Active.Name},
		{"Monthly Budget", a.money(a.budget)},
		{"Rates Base", a.cfg.Rates.BaseCurrency},
	}
	for _, c := range model.Categories {
		v := "(no limit)"
		if b := a.catBudgets[c]; b > 0 {
			v = a.money(b)
		}
		fields = append(fields, field{string(c) + " Budget", v})
	}

	innerW := components.CardInnerWidth(cw)
	var formBody strings.Builder
	for i, f := range fields {
		if a.settings.editing && i == a.settings.cursor {
			formBody.WriteString(markerStyle.Render("▸ "))
			formBody.WriteString(accentStyle.Render(fmt.Sprintf("%-18s ", f.label)))
			formBody.WriteString(a.settings.input.View())
			formBody.WriteString("\n")
			continue
		}

		if i == a.settings.cursor {
			marker := markerStyle.Render("▸ ")
			label := selectedLabelStyle.Render(fmt.Sprintf("%-18s ", f.label+":"))
			value := selectedStyle.Render(f.value)
			formBody.WriteString(marker + label + value)
			usedWidth := lipgloss.Width(marker) + lipgloss.Width(label) + lipgloss.Width(value)
			if padLen := innerW - usedWidth; padLen > 0 {
				formBody.WriteString(lipgloss.NewStyle().Background(t.SurfaceBright).Render(strings.Repeat(" ", padLen)))
			}
		} else {
			formBody.WriteString(lipgloss.NewStyle().Background(t.Surface).Render("  "))
			formBody.WriteString(labelStyle.Render(fmt.Sprintf("%-18s ", f.label+":")))
			formBody.WriteString(valueStyle.Render(f.value))
		}
		formBody.WriteString("\n")
	}

	if a.settings.saveErr != nil {
		warnStyle := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)
		formBody.WriteString("\n")
		formBody.WriteString(warnStyle.Render(fmt.Sprintf("Save failed: %s", a.settings.saveErr)))
		formBody.WriteString("\n")
	} else if a.settings.saved {
		formBody.WriteString("\n")
		formBody.WriteString(greenStyle.Render("Saved!"))
		formBody.WriteString("\n")
	}

	formBody.WriteString("\n")
	formBody.WriteString(labelStyle.Render("[j/k] navigate  [Enter] edit  [Esc] cancel  [r] fetch rates"))

	// Rates and storage info
	ratesLine := "not fetched"
	if a.hasRates {
		ratesLine = fmt.Sprintf("%d currencies vs %s, updated %s",
			len(a.rates.Rates), a.rates.Base, cli.FormatAge(a.rates.LastUpdated))
	}
	var infoBody strings.Builder
	infoBody.WriteString(labelStyle.Render("Exchange rates:  ") + valueStyle.Render(ratesLine) + "\n")
	infoBody.WriteString(labelStyle.Render("Rates endpoint:  ") + valueStyle.Render(a.cfg.Rates.BaseURL) + "\n")
	infoBody.WriteString(labelStyle.Render("Expenses:        ") + valueStyle.Render(cli.FormatNumber(int64(len(a.expenses)))) + "\n")
	infoBody.WriteString(labelStyle.Render("History entries: ") + valueStyle.Render(strconv.Itoa(a.calc.tape.Len())) + "\n")
	infoBody.WriteString(labelStyle.Render("Database:        ") + valueStyle.Render(a.cfg.DBPath()) + "\n")
	infoBody.WriteString(labelStyle.Render("Config file:     ") + valueStyle.Render(config.Path()))

	var b strings.Builder
	b.WriteString(components.ContentCard("Settings", formBody.String(), cw))
	b.WriteString("\n")
	b.WriteString(components.ContentCard("Data", infoBody.String(), cw))
	return b.String()
}
