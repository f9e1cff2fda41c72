package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		amount float64
		symbol string
		want   string
	}{
		{0, "$", "$0.00"},
		{12.5, "$", "$12.50"},
		{1234.567, "€", "€1,234.57"},
		{1234567, "₹", "₹1,234,567.00"},
		{-42.1, "$", "-$42.10"},
	}
	for _, tt := range tests {
		if got := FormatMoney(tt.amount, tt.symbol); got != tt.want {
			t.Errorf("FormatMoney(%v, %q) = %q, want %q", tt.amount, tt.symbol, got, tt.want)
		}
	}
}

func TestFormatCompactMoney(t *testing.T) {
	if got := FormatCompactMoney(12345.6, "$"); got != "$12,346" {
		t.Fatalf("FormatCompactMoney = %q", got)
	}
	if got := FormatCompactMoney(99.5, "$"); got != "$99.50" {
		t.Fatalf("FormatCompactMoney = %q", got)
	}
}

func TestFormatNumber(t *testing.T) {
	if got := FormatNumber(1234567); got != "1,234,567" {
		t.Fatalf("FormatNumber = %q", got)
	}
	if got := FormatNumber(-1000); got != "-1,000" {
		t.Fatalf("FormatNumber = %q", got)
	}
}

func TestFormatAge(t *testing.T) {
	if got := FormatAge(time.Time{}); got != "never" {
		t.Fatalf("FormatAge(zero) = %q", got)
	}
	if got := FormatAge(time.Now().Add(-3 * time.Hour)); got != "3 hours ago" {
		t.Fatalf("FormatAge(3h) = %q", got)
	}
}

func TestRenderTableAlignsWideRunes(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)

	out := RenderTable(Table{
		Headers:  []string{"Category", "Note", "Amount"},
		Rows:     [][]string{{"Food", "café", "€5.00"}, {"Bills", "rent", "€1,200.00"}},
		LeftCols: 2,
	})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	width := lipgloss.Width(lines[0])
	for i, l := range lines {
		if w := lipgloss.Width(l); w != width {
			t.Fatalf("line %d width %d, want %d:\n%s", i, w, width, out)
		}
	}
	if !strings.Contains(out, "│ café │") {
		t.Fatalf("left-aligned note column missing:\n%s", out)
	}
}

func TestRenderSparkline(t *testing.T) {
	if got := RenderSparkline([]float64{0, 4, 8}); got != "▁▄█" {
		t.Fatalf("RenderSparkline = %q", got)
	}
	if got := RenderSparkline(nil); got != "" {
		t.Fatalf("RenderSparkline(nil) = %q", got)
	}
}

func TestRenderBudgetBar(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)

	if got := RenderBudgetBar(5, 0, 10); got != "no budget" {
		t.Fatalf("RenderBudgetBar(no budget) = %q", got)
	}
	got := RenderBudgetBar(150, 100, 10)
	if !strings.HasPrefix(got, strings.Repeat("█", 10)) || !strings.HasSuffix(got, "150.0%") {
		t.Fatalf("RenderBudgetBar(over) = %q", got)
	}
}
