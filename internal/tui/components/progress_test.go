package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/theirongolddev/xpense/internal/tui/theme"
)

func TestColorForPct(t *testing.T) {
	theme.SetActive("flexoki-dark")
	th := theme.Active

	tests := []struct {
		pct  float64
		want lipgloss.Color
	}{
		{0, th.Green},
		{0.69, th.Green},
		{0.7, th.Yellow},
		{0.9, th.Orange},
		{1.0, th.Orange},
		{1.01, th.Red},
	}
	for _, tt := range tests {
		if got := ColorForPct(tt.pct); got != string(tt.want) {
			t.Errorf("ColorForPct(%v) = %s, want %s", tt.pct, got, tt.want)
		}
	}
}

func TestBudgetBarShowsPercent(t *testing.T) {
	theme.SetActive("flexoki-dark")

	out := BudgetBar("Food", 150, 100, "$150 / $100", 8, 20)
	if !strings.Contains(out, "150%") {
		t.Errorf("overspent bar should show 150%%, got %q", out)
	}
	if !strings.Contains(out, "Food") {
		t.Errorf("bar should include the label, got %q", out)
	}

	zero := BudgetBar("Bills", 10, 0, "", 8, 20)
	if !strings.Contains(zero, "0%") {
		t.Errorf("zero budget should render 0%%, got %q", zero)
	}
}

func TestTabIdxByKey(t *testing.T) {
	for i, tab := range Tabs {
		if got := TabIdxByKey(tab.Key); got != i {
			t.Errorf("TabIdxByKey(%q) = %d, want %d", tab.Key, got, i)
		}
	}
	if got := TabIdxByKey('z'); got != -1 {
		t.Errorf("TabIdxByKey('z') = %d, want -1", got)
	}
}
