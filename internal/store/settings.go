package store

import (
	"fmt"
	"strconv"
	"time"

	"github.com/theirongolddev/xpense/internal/model"
)

// MonthlyBudget returns the overall budget, or the default when unset.
func (s *DB) MonthlyBudget() (float64, error) {
	v, ok, err := s.getSetting(keyMonthlyBudget)
	if err != nil || !ok {
		return model.DefaultMonthlyBudget, err
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return model.DefaultMonthlyBudget, fmt.Errorf("parsing monthly budget %q: %w", v, err)
	}
	return f, nil
}

// SetMonthlyBudget stores the overall budget.
func (s *DB) SetMonthlyBudget(amount float64) error {
	if amount < 0 {
		return model.ErrInvalidAmount
	}
	return setSetting(s.db, keyMonthlyBudget, strconv.FormatFloat(amount, 'f', -1, 64))
}

// CategoryBudgets returns every per-category budget that has been set.
func (s *DB) CategoryBudgets() (model.CategoryBudgets, error) {
	rows, err := s.db.Query("SELECT category, amount FROM category_budgets")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	out := make(model.CategoryBudgets)
	for rows.Next() {
		var cat string
		var amount float64
		if err := rows.Scan(&cat, &amount); err != nil {
			return nil, err
		}
		out[model.Category(cat)] = amount
	}
	return out, rows.Err()
}

// SetCategoryBudget stores one category budget. Zero removes it.
func (s *DB) SetCategoryBudget(c model.Category, amount float64) error {
	c, err := model.ParseCategory(string(c))
	if err != nil {
		return err
	}
	if amount < 0 {
		return model.ErrInvalidAmount
	}
	if amount == 0 {
		_, err = s.db.Exec("DELETE FROM category_budgets WHERE category = ?", string(c))
		return err
	}
	_, err = s.db.Exec(`INSERT INTO category_budgets (category, amount) VALUES (?, ?)
		ON CONFLICT(category) DO UPDATE SET amount = excluded.amount`, string(c), amount)
	return err
}

// Currency returns the selected display currency, or the default.
func (s *DB) Currency() (model.Currency, error) {
	v, ok, err := s.getSetting(keyCurrency)
	if err != nil || !ok {
		return model.DefaultCurrency, err
	}
	c, found := model.CurrencyByCode(v)
	if !found {
		return model.DefaultCurrency, nil
	}
	return c, nil
}

// HasCurrency reports whether a display currency has been stored.
func (s *DB) HasCurrency() (bool, error) {
	_, ok, err := s.getSetting(keyCurrency)
	return ok, err
}

// SetCurrency stores the display currency code.
func (s *DB) SetCurrency(code string) error {
	c, ok := model.CurrencyByCode(code)
	if !ok {
		return fmt.Errorf("unsupported currency %q", code)
	}
	return setSetting(s.db, keyCurrency, c.Code)
}

// SaveRates replaces the cached exchange rates.
func (s *DB) SaveRates(r model.ExchangeRates) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("DELETE FROM exchange_rates"); err != nil {
		return err
	}
	for code, rate := range r.Rates {
		if _, err := tx.Exec("INSERT INTO exchange_rates (code, rate) VALUES (?, ?)", code, rate); err != nil {
			return fmt.Errorf("inserting rate %s: %w", code, err)
		}
	}
	if err := setSetting(tx, keyRatesBase, r.Base); err != nil {
		return err
	}
	if err := setSetting(tx, keyRatesUpdated, r.LastUpdated.UTC().Format(time.RFC3339)); err != nil {
		return err
	}
	return tx.Commit()
}

// LoadRates returns the cached exchange rates, or ErrNotFound when none
// have been fetched.
func (s *DB) LoadRates() (model.ExchangeRates, error) {
	r := model.ExchangeRates{Rates: make(map[string]float64)}

	base, ok, err := s.getSetting(keyRatesBase)
	if err != nil {
		return r, err
	}
	if !ok {
		return r, fmt.Errorf("exchange rates: %w", ErrNotFound)
	}
	r.Base = base
	if updated, ok, err := s.getSetting(keyRatesUpdated); err != nil {
		return r, err
	} else if ok {
		r.LastUpdated, _ = time.Parse(time.RFC3339, updated)
	}

	rows, err := s.db.Query("SELECT code, rate FROM exchange_rates")
	if err != nil {
		return r, err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var code string
		var rate float64
		if err := rows.Scan(&code, &rate); err != nil {
			return r, err
		}
		r.Rates[code] = rate
	}
	return r, rows.Err()
}
