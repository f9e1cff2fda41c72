package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/xpense/internal/config"
	"github.com/theirongolddev/xpense/internal/model"
	"github.com/theirongolddev/xpense/internal/store"
	"github.com/theirongolddev/xpense/internal/tui/theme"

	"github.com/charmbracelet/huh"
)

// SetupValues holds the answers of the first-run setup form.
type SetupValues struct {
	Currency string
	Budget   string
	Theme    string
	Days     int
}

// DefaultSetupValues seeds the form from the current config and store.
// db may be nil.
func DefaultSetupValues(cfg config.Config, db *store.DB) SetupValues {
	vals := SetupValues{
		Currency: cfg.General.Currency,
		Budget:   strconv.FormatFloat(model.DefaultMonthlyBudget, 'f', -1, 64),
		Theme:    cfg.Appearance.Theme,
		Days:     cfg.General.DefaultDays,
	}
	if db != nil {
		if ok, err := db.HasCurrency(); err == nil && ok {
			if c, err := db.Currency(); err == nil {
				vals.Currency = c.Code
			}
		}
		if b, err := db.MonthlyBudget(); err == nil {
			vals.Budget = strconv.FormatFloat(b, 'f', -1, 64)
		}
	}
	if _, ok := model.CurrencyByCode(vals.Currency); !ok {
		vals.Currency = model.DefaultCurrency.Code
	}
	if !theme.Valid(vals.Theme) {
		vals.Theme = theme.FlexokiDark.Name
	}
	if vals.Days != 7 && vals.Days != 30 && vals.Days != 90 {
		vals.Days = 30
	}
	return vals
}

// NewSetupForm builds the first-run wizard. Answers are written to vals.
func NewSetupForm(vals *SetupValues) *huh.Form {
	currencyOpts := make([]huh.Option[string], 0, len(model.Currencies))
	for _, c := range model.Currencies {
		currencyOpts = append(currencyOpts, huh.NewOption(fmt.Sprintf("%s  %s  %s", c.Code, c.Symbol, c.Name), c.Code))
	}

	themeOpts := make([]huh.Option[string], 0, len(theme.All))
	for _, t := range theme.All {
		themeOpts = append(themeOpts, huh.NewOption(t.Name, t.Name))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to xpense").
				Description("Track spending, budgets and currencies from the terminal.\nA few questions and you're set."),
			huh.NewSelect[string]().
				Title("Display currency").
				Options(currencyOpts...).
				Value(&vals.Currency),
			huh.NewInput().
				Title("Monthly budget").
				Description("Overall spending limit per month.").
				Placeholder("1000").
				Validate(validateBudget).
				Value(&vals.Budget),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOpts...).
				Value(&vals.Theme),
			huh.NewSelect[int]().
				Title("Default summary window").
				Options(
					huh.NewOption("7 days", 7),
					huh.NewOption("30 days", 30),
					huh.NewOption("90 days", 90),
				).
				Value(&vals.Days),
		),
	).WithTheme(theme.Form())
}

func validateBudget(s string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v < 0 {
		return errors.New("enter a number of 0 or more")
	}
	return nil
}

// ApplySetup saves the answers: display preferences to the config file,
// currency and budget to the store. It returns the saved config.
func ApplySetup(cfg config.Config, db *store.DB, vals SetupValues) (config.Config, error) {
	budget, err := strconv.ParseFloat(strings.TrimSpace(vals.Budget), 64)
	if err != nil {
		return cfg, fmt.Errorf("%w: %q", model.ErrInvalidAmount, vals.Budget)
	}

	cfg.General.Currency = vals.Currency
	cfg.General.DefaultDays = vals.Days
	cfg.Budget.Monthly = &budget
	cfg.Appearance.Theme = vals.Theme
	theme.SetActive(vals.Theme)

	if err := config.Save(cfg); err != nil {
		return cfg, fmt.Errorf("saving config: %w", err)
	}
	if db == nil {
		return cfg, nil
	}
	if err := db.SetCurrency(vals.Currency); err != nil {
		return cfg, err
	}
	if err := db.SetMonthlyBudget(budget); err != nil {
		return cfg, err
	}
	return cfg, nil
}
