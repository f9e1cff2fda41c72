package tui

import (
	"strings"

	"github.com/theirongolddev/xpense/internal/calc"
	"github.com/theirongolddev/xpense/internal/history"
	"github.com/theirongolddev/xpense/internal/tui/components"
	"github.com/theirongolddev/xpense/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

// calcState is the calculator tab. The evaluator and tape are pointers
// so every copy of App drives the same session.
type calcState struct {
	ev      *calc.Evaluator
	tape    *history.Log
	saveErr error
}

func newCalcState(tape *history.Log) calcState {
	if tape == nil {
		tape = history.New(nil)
	}
	return calcState{ev: calc.New(tape), tape: tape}
}

func (a App) updateCalculator(key string) (tea.Model, tea.Cmd) {
	if key == "delete" {
		a.calc.tape.Clear()
		a.syncHistory()
		return a, nil
	}
	if !calc.Dispatch(a.calc.ev, key) {
		return a, nil
	}
	a.syncHistory()
	return a, nil
}

// syncHistory saves the tape when an operation changed it.
func (a *App) syncHistory() {
	if !a.calc.tape.Dirty() || a.db == nil {
		return
	}
	if err := a.calc.tape.Sync(a.db); err != nil {
		a.log.Error("saving calculator history", zap.Error(err))
		a.calc.saveErr = err
		return
	}
	a.calc.saveErr = nil
}

func (a App) renderCalculatorTab(cw, h int) string {
	t := theme.Active
	st := a.calc.ev.State()

	halves := components.LayoutRow(cw, 2)
	displayW := components.CardInnerWidth(halves[0])

	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	displayStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceBright).Bold(true).Padding(0, 1)
	previewStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface)
	pendingStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)

	right := func(s string, style lipgloss.Style) string {
		return style.Width(displayW).Align(lipgloss.Right).Render(s)
	}

	var disp strings.Builder
	disp.WriteString(right(st.Equation, mutedStyle))
	disp.WriteString("\n")
	disp.WriteString(displayStyle.Width(displayW).Align(lipgloss.Right).Render(truncStr(st.Display(), displayW-2)))
	disp.WriteString("\n")
	disp.WriteString(right(st.Preview, previewStyle))
	disp.WriteString("\n\n")

	pending := " "
	if st.Pending != calc.OpNone {
		pending = st.Pending.Symbol()
	}
	disp.WriteString(mutedStyle.Render("op ") + pendingStyle.Render(pending))
	disp.WriteString("\n\n")
	disp.WriteString(dimStyle.Render("0-9 .  + - * /  = Enter  % percent  n ±"))
	disp.WriteString("\n")
	disp.WriteString(dimStyle.Render("⌫ backspace  Esc clear  Del clear history"))
	if a.calc.saveErr != nil {
		warn := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)
		disp.WriteString("\n\n")
		disp.WriteString(warn.Render("History not saved: " + a.calc.saveErr.Error()))
	}
	calcCard := components.ContentCard("Calculator", disp.String(), halves[0])

	// History card: as many entries as fit
	entries := a.calc.tape.Entries()
	maxRows := h - 4
	if maxRows < 1 {
		maxRows = 1
	}
	histW := components.CardInnerWidth(halves[1])

	var hist strings.Builder
	if len(entries) == 0 {
		hist.WriteString(dimStyle.Render("No calculations yet"))
	}
	for i, e := range entries {
		if i >= maxRows {
			hist.WriteString(dimStyle.Render("…"))
			break
		}
		style := mutedStyle
		if i == 0 {
			style = lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
		}
		hist.WriteString(style.Render(truncStr(e, histW)))
		if i < len(entries)-1 {
			hist.WriteString("\n")
		}
	}
	histCard := components.ContentCard("History", hist.String(), halves[1])

	return components.CardRow([]string{calcCard, histCard})
}
