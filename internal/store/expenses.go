package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/theirongolddev/xpense/internal/model"
)

// AddExpense validates and stores a new expense. An empty ID is replaced
// with a fresh UUID. The stored expense is returned.
func (s *DB) AddExpense(e model.Expense) (model.Expense, error) {
	if err := e.Validate(); err != nil {
		return e, err
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	e.Category, _ = model.ParseCategory(string(e.Category))

	_, err := s.db.Exec(`INSERT INTO expenses (id, amount, date, category, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, e.Amount, e.Date, string(e.Category), e.Notes,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return e, fmt.Errorf("inserting expense: %w", err)
	}
	return e, nil
}

// UpdateExpense replaces the expense with the same ID.
func (s *DB) UpdateExpense(e model.Expense) error {
	if err := e.Validate(); err != nil {
		return err
	}
	e.Category, _ = model.ParseCategory(string(e.Category))

	res, err := s.db.Exec(`UPDATE expenses SET amount = ?, date = ?, category = ?, notes = ?
		WHERE id = ?`, e.Amount, e.Date, string(e.Category), e.Notes, e.ID)
	if err != nil {
		return fmt.Errorf("updating expense: %w", err)
	}
	return requireRow(res, e.ID)
}

// DeleteExpense removes an expense by ID.
func (s *DB) DeleteExpense(id string) error {
	res, err := s.db.Exec("DELETE FROM expenses WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting expense: %w", err)
	}
	return requireRow(res, id)
}

// GetExpense loads one expense by ID.
func (s *DB) GetExpense(id string) (model.Expense, error) {
	var e model.Expense
	var cat string
	err := s.db.QueryRow("SELECT id, amount, date, category, notes FROM expenses WHERE id = ?", id).
		Scan(&e.ID, &e.Amount, &e.Date, &cat, &e.Notes)
	if errors.Is(err, sql.ErrNoRows) {
		return e, fmt.Errorf("expense %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return e, err
	}
	e.Category = model.Category(cat)
	return e, nil
}

// ListExpenses returns all expenses, most recently added first.
func (s *DB) ListExpenses() ([]model.Expense, error) {
	rows, err := s.db.Query(`SELECT id, amount, date, category, notes FROM expenses
		ORDER BY rowid DESC`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []model.Expense
	for rows.Next() {
		var e model.Expense
		var cat string
		if err := rows.Scan(&e.ID, &e.Amount, &e.Date, &cat, &e.Notes); err != nil {
			return nil, err
		}
		e.Category = model.Category(cat)
		out = append(out, e)
	}
	return out, rows.Err()
}

// ExpenseCount returns the number of stored expenses.
func (s *DB) ExpenseCount() (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM expenses").Scan(&count)
	return count, err
}

func requireRow(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("expense %s: %w", id, ErrNotFound)
	}
	return nil
}
