package model

import (
	"errors"
	"math"
	"testing"
)

func TestParseCategory(t *testing.T) {
	c, err := ParseCategory(" food ")
	if err != nil {
		t.Fatalf("ParseCategory: %v", err)
	}
	if c != CategoryFood {
		t.Fatalf("ParseCategory = %q, want Food", c)
	}

	if _, err := ParseCategory("Rent"); !errors.Is(err, ErrInvalidCategory) {
		t.Fatalf("ParseCategory(Rent) err = %v, want ErrInvalidCategory", err)
	}
}

func TestExpenseValidate(t *testing.T) {
	ok := Expense{Amount: 12.5, Date: "2025-06-01", Category: CategoryBills}
	if err := ok.Validate(); err != nil {
		t.Fatalf("valid expense rejected: %v", err)
	}

	bad := []Expense{
		{Amount: 0, Date: "2025-06-01", Category: CategoryBills},
		{Amount: -3, Date: "2025-06-01", Category: CategoryBills},
		{Amount: math.NaN(), Date: "2025-06-01", Category: CategoryBills},
		{Amount: 1, Date: "06/01/2025", Category: CategoryBills},
		{Amount: 1, Date: "2025-06-01", Category: "Rent"},
	}
	for i, e := range bad {
		if err := e.Validate(); err == nil {
			t.Errorf("case %d: expected error for %+v", i, e)
		}
	}
}

func TestCurrencyByCode(t *testing.T) {
	c, ok := CurrencyByCode("eur")
	if !ok || c.Symbol != "€" {
		t.Fatalf("CurrencyByCode(eur) = %+v, %v", c, ok)
	}
	if _, ok := CurrencyByCode("XXX"); ok {
		t.Fatal("CurrencyByCode(XXX) should fail")
	}
}

func TestBudgetAlertMessage(t *testing.T) {
	a := BudgetAlert{Level: AlertExceeded, Category: CategoryFood}
	want := `Warning: You have exceeded your budget for the "Food" category!`
	if got := a.Message(); got != want {
		t.Fatalf("Message() = %q, want %q", got, want)
	}
}
