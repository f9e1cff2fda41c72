package calc

import "fmt"

// Recorder receives one formatted equation per completed calculation.
// history.Log satisfies it.
type Recorder interface {
	Add(entry string)
}

// State is a snapshot of the evaluator.
//
// Buffer is the text being entered or the last result. It is kept as
// text so "0." and trailing zeros survive until the next operation.
// HasFirst is false only when no operator chain is active. Awaiting is
// true between an operator (or percent) and the next digit.
type State struct {
	Buffer       string
	FirstOperand float64
	HasFirst     bool
	Pending      Operator
	Awaiting     bool
	Equation     string
	Preview      string
}

// Display is the buffer with thousands separators applied.
func (s State) Display() string {
	return FormatDisplay(s.Buffer)
}

func initialState() State {
	return State{Buffer: "0"}
}

// Evaluator is a single-session calculator. It is not safe for
// concurrent use; each UI session owns one.
type Evaluator struct {
	st  State
	rec Recorder
}

// New returns an evaluator in its initial state. rec may be nil.
func New(rec Recorder) *Evaluator {
	return &Evaluator{st: initialState(), rec: rec}
}

// State returns the current snapshot.
func (e *Evaluator) State() State {
	return e.st
}

// InputDigit enters one digit. Anything other than '0'-'9' is ignored.
func (e *Evaluator) InputDigit(d rune) State {
	if d < '0' || d > '9' {
		return e.st
	}
	switch {
	case e.st.Awaiting:
		e.st.Buffer = string(d)
		e.st.Awaiting = false
	case e.st.Buffer == "0":
		e.st.Buffer = string(d)
	default:
		e.st.Buffer += string(d)
	}
	e.updatePreview()
	return e.st
}

// InputDecimal adds a decimal point once per operand.
func (e *Evaluator) InputDecimal() State {
	if e.st.Awaiting {
		e.st.Buffer = "0."
		e.st.Awaiting = false
		e.updatePreview()
		return e.st
	}
	for _, c := range e.st.Buffer {
		if c == '.' {
			return e.st
		}
	}
	e.st.Buffer += "."
	e.updatePreview()
	return e.st
}

// PerformOperation selects the next operator. If an operation is already
// pending and a second operand has been typed, it is applied first, so
// chains evaluate left to right.
func (e *Evaluator) PerformOperation(next Operator) State {
	if next == OpNone {
		return e.st
	}
	input := operandValue(e.st.Buffer)

	if e.st.Pending != OpNone && e.st.HasFirst && !e.st.Awaiting {
		result := e.commit(input)
		e.st.Buffer = NumberText(result)
		e.st.FirstOperand = result
	} else {
		e.st.FirstOperand = input
	}
	e.st.HasFirst = true
	e.st.Equation = fmt.Sprintf("%s %s", FormatDisplay(NumberText(e.st.FirstOperand)), next.Symbol())
	e.st.Pending = next
	e.st.Awaiting = true
	e.st.Preview = ""
	return e.st
}

// Equals applies the pending operator and ends the chain. The current
// buffer is the second operand even if nothing was typed after the
// operator.
func (e *Evaluator) Equals() State {
	if e.st.Pending == OpNone || !e.st.HasFirst {
		return e.st
	}
	result := e.commit(operandValue(e.st.Buffer))

	e.st = State{Buffer: NumberText(result)}
	return e.st
}

// ClearAll resets everything except history.
func (e *Evaluator) ClearAll() State {
	e.st = initialState()
	return e.st
}

// ToggleSign negates the buffer.
func (e *Evaluator) ToggleSign() State {
	e.st.Buffer = NumberText(-operandValue(e.st.Buffer))
	e.updatePreview()
	return e.st
}

// InputPercent divides the buffer by 100 and starts a new operand. It
// does not apply a pending operator.
func (e *Evaluator) InputPercent() State {
	e.st.Buffer = NumberText(operandValue(e.st.Buffer) / 100)
	e.st.Awaiting = true
	e.st.Equation = ""
	e.st.Preview = ""
	return e.st
}

// Backspace removes the last typed character. It does nothing right
// after an operator.
func (e *Evaluator) Backspace() State {
	if e.st.Awaiting {
		return e.st
	}
	buf := e.st.Buffer
	if len(buf) > 0 {
		buf = buf[:len(buf)-1]
	}
	if buf == "" {
		buf = "0"
	}
	e.st.Buffer = buf
	e.updatePreview()
	return e.st
}

// commit applies the pending operator, records the equation and returns
// the rounded result.
func (e *Evaluator) commit(second float64) float64 {
	first := e.st.FirstOperand
	result := RoundResult(Apply(e.st.Pending, first, second))

	if e.rec != nil {
		e.rec.Add(fmt.Sprintf("%s %s %s = %s",
			FormatDisplay(NumberText(first)),
			e.st.Pending.Symbol(),
			FormatDisplay(NumberText(second)),
			FormatDisplay(NumberText(result)),
		))
	}
	return result
}

func (e *Evaluator) updatePreview() {
	if e.st.Pending == OpNone || !e.st.HasFirst {
		return
	}
	second, ok := ParseOperand(e.st.Buffer)
	if !ok {
		return
	}
	result := Apply(e.st.Pending, e.st.FirstOperand, second)
	e.st.Preview = "= " + FormatDisplay(ResultText(result))
}
