// Package model defines domain types for xpense expenses, budgets and currencies.
package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the on-disk and CLI format for expense dates.
const DateLayout = "2006-01-02"

var (
	// ErrInvalidCategory is returned for a category outside Categories.
	ErrInvalidCategory = errors.New("invalid category")
	// ErrInvalidAmount is returned for zero, negative or non-finite amounts.
	ErrInvalidAmount = errors.New("amount must be a positive number")
)

// Category is a spending category.
type Category string

const (
	CategoryFood     Category = "Food"
	CategoryTravel   Category = "Travel"
	CategoryBills    Category = "Bills"
	CategoryShopping Category = "Shopping"
	CategoryOther    Category = "Other"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryFood,
	CategoryTravel,
	CategoryBills,
	CategoryShopping,
	CategoryOther,
}

// ParseCategory matches a category name case-insensitively.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories {
		if strings.EqualFold(string(c), strings.TrimSpace(s)) {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidCategory, s)
}

// Expense is one logged purchase.
type Expense struct {
	ID       string
	Amount   float64
	Date     string // YYYY-MM-DD
	Category Category
	Notes    string
}

// Day parses Date in local time. The zero time is returned for a bad date.
func (e Expense) Day() time.Time {
	t, err := time.ParseInLocation(DateLayout, e.Date, time.Local)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Validate checks amount, date and category.
func (e Expense) Validate() error {
	if !(e.Amount > 0) || e.Amount > 1e15 {
		return ErrInvalidAmount
	}
	if _, err := time.Parse(DateLayout, e.Date); err != nil {
		return fmt.Errorf("invalid date %q: want YYYY-MM-DD", e.Date)
	}
	if _, err := ParseCategory(string(e.Category)); err != nil {
		return err
	}
	return nil
}
