package calc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/xpense/internal/history"
)

func press(t *testing.T, e *Evaluator, keys ...string) State {
	t.Helper()
	st, unknown := Run(e, keys)
	require.Empty(t, unknown, "unrecognised keys")
	return st
}

func TestInitialState(t *testing.T) {
	st := New(nil).State()
	assert.Equal(t, "0", st.Buffer)
	assert.Equal(t, OpNone, st.Pending)
	assert.False(t, st.HasFirst)
	assert.False(t, st.Awaiting)
	assert.Empty(t, st.Equation)
	assert.Empty(t, st.Preview)
}

func TestDigitsConcatenateWithoutLeadingZero(t *testing.T) {
	e := New(nil)
	assert.Equal(t, "123", press(t, e, "1", "2", "3").Buffer)

	e.ClearAll()
	assert.Equal(t, "7", press(t, e, "0", "0", "7").Buffer)

	e.ClearAll()
	assert.Equal(t, "0", press(t, e, "0", "0").Buffer)
}

func TestInputDigitIgnoresNonDigits(t *testing.T) {
	e := New(nil)
	assert.Equal(t, "0", e.InputDigit('x').Buffer)
}

func TestSimpleAddition(t *testing.T) {
	log := history.New(nil)
	e := New(log)

	st := e.InputDigit('5')
	assert.Equal(t, "5", st.Buffer)

	st = e.PerformOperation(OpAdd)
	assert.Equal(t, "5", st.Buffer)
	assert.True(t, st.HasFirst)
	assert.Equal(t, 5.0, st.FirstOperand)
	assert.True(t, st.Awaiting)
	assert.Equal(t, "5 +", st.Equation)

	st = e.InputDigit('3')
	assert.Equal(t, "3", st.Buffer)
	assert.False(t, st.Awaiting)
	assert.Equal(t, "= 8", st.Preview)

	st = e.Equals()
	assert.Equal(t, "8", st.Buffer)
	assert.False(t, st.HasFirst)
	assert.Equal(t, OpNone, st.Pending)
	assert.False(t, st.Awaiting)
	assert.Empty(t, st.Equation)
	assert.Empty(t, st.Preview)
	assert.Equal(t, []string{"5 + 3 = 8"}, log.Entries())
}

func TestChainedOperationsAssociateLeftToRight(t *testing.T) {
	log := history.New(nil)
	e := New(log)

	st := press(t, e, "2", "+", "3")
	assert.Equal(t, "3", st.Buffer)

	st = press(t, e, "*")
	assert.Equal(t, "5", st.Buffer)
	assert.Equal(t, 5.0, st.FirstOperand)
	assert.Equal(t, OpMultiply, st.Pending)
	assert.Equal(t, "5 *", st.Equation)
	assert.Equal(t, []string{"2 + 3 = 5"}, log.Entries())

	st = press(t, e, "4", "=")
	assert.Equal(t, "20", st.Buffer)
	assert.Equal(t, []string{"5 * 4 = 20", "2 + 3 = 5"}, log.Entries())
}

func TestEqualsRightAfterOperatorReusesBuffer(t *testing.T) {
	log := history.New(nil)
	e := New(log)

	st := press(t, e, "5", "+", "=")
	assert.Equal(t, "10", st.Buffer)
	assert.Equal(t, []string{"5 + 5 = 10"}, log.Entries())
}

func TestOperatorChangeWhileAwaitingDoesNotCompute(t *testing.T) {
	log := history.New(nil)
	e := New(log)

	st := press(t, e, "6", "+", "-")
	assert.Equal(t, OpSubtract, st.Pending)
	assert.Equal(t, "6 -", st.Equation)
	assert.Zero(t, log.Len())

	st = press(t, e, "2", "=")
	assert.Equal(t, "4", st.Buffer)
}

func TestEqualsWithoutOperatorIsNoop(t *testing.T) {
	log := history.New(nil)
	e := New(log)

	st := press(t, e, "4", "2", "=")
	assert.Equal(t, "42", st.Buffer)
	assert.Zero(t, log.Len())
}

func TestDigitAfterEqualsAppends(t *testing.T) {
	e := New(nil)
	st := press(t, e, "5", "+", "3", "=", "1")
	assert.Equal(t, "81", st.Buffer)
}

func TestDecimalPointIsIdempotent(t *testing.T) {
	e := New(nil)
	st := press(t, e, "1", ".", ".")
	assert.Equal(t, "1.", st.Buffer)
	assert.Equal(t, "1.", st.Display())

	st = press(t, e, "5", ".")
	assert.Equal(t, "1.5", st.Buffer)
}

func TestDecimalWhileAwaitingStartsNewOperand(t *testing.T) {
	e := New(nil)
	st := press(t, e, "5", "+", ".")
	assert.Equal(t, "0.", st.Buffer)
	assert.False(t, st.Awaiting)

	st = press(t, e, "5")
	assert.Equal(t, "0.5", st.Buffer)
	assert.Equal(t, "= 5.5", st.Preview)
}

func TestDivisionByZero(t *testing.T) {
	log := history.New(nil)
	e := New(log)

	st := press(t, e, "5", "/", "0", "=")
	assert.Equal(t, "Infinity", st.Buffer)
	assert.Equal(t, "Infinity", st.Display())
	assert.Equal(t, []string{"5 / 0 = Infinity"}, log.Entries())

	e.ClearAll()
	st = press(t, e, "0", "/", "0", "=")
	assert.Equal(t, "NaN", st.Buffer)
}

func TestFloatingPointNoiseIsRounded(t *testing.T) {
	log := history.New(nil)
	e := New(log)

	st := press(t, e, "0", ".", "1", "+", "0", ".", "2")
	assert.Equal(t, "= 0.3", st.Preview)

	st = press(t, e, "=")
	assert.Equal(t, "0.3", st.Buffer)
	assert.Equal(t, []string{"0.1 + 0.2 = 0.3"}, log.Entries())
}

func TestLargeResultsAreGrouped(t *testing.T) {
	log := history.New(nil)
	e := New(log)

	st := press(t, e, "1", "2", "3", "4", "5", "6", "7", "*", "1", "0", "0", "0", "=")
	assert.Equal(t, "1234567000", st.Buffer)
	assert.Equal(t, "1,234,567,000", st.Display())
	assert.Equal(t, []string{"1,234,567 * 1,000 = 1,234,567,000"}, log.Entries())
}

func TestClearAllResetsChain(t *testing.T) {
	log := history.New([]string{"1 + 1 = 2"})
	e := New(log)

	press(t, e, "9", "*", "8")
	st := press(t, e, "Escape")
	assert.Equal(t, New(nil).State(), st)
	assert.Equal(t, 1, log.Len(), "clear must not touch history")
}

func TestToggleSign(t *testing.T) {
	e := New(nil)
	assert.Equal(t, "0", e.ToggleSign().Buffer)

	st := press(t, e, "5", "n")
	assert.Equal(t, "-5", st.Buffer)
	assert.Equal(t, "5", e.ToggleSign().Buffer)

	e.ClearAll()
	st = press(t, e, "5", "+", "3", "n")
	assert.Equal(t, "-3", st.Buffer)
	assert.Equal(t, "= 2", st.Preview)
}

func TestPercent(t *testing.T) {
	e := New(nil)
	st := press(t, e, "5", "0", "%")
	assert.Equal(t, "0.5", st.Buffer)
	assert.True(t, st.Awaiting)

	st = press(t, e, "7")
	assert.Equal(t, "7", st.Buffer)
}

func TestPercentWithPendingOperatorOnlyTransformsBuffer(t *testing.T) {
	log := history.New(nil)
	e := New(log)

	st := press(t, e, "5", "+", "2", "%")
	assert.Equal(t, "0.02", st.Buffer)
	assert.True(t, st.Awaiting)
	assert.Equal(t, OpAdd, st.Pending)
	assert.Equal(t, 5.0, st.FirstOperand)
	assert.Empty(t, st.Equation)
	assert.Empty(t, st.Preview)
	assert.Zero(t, log.Len())

	st = press(t, e, "=")
	assert.Equal(t, "5.02", st.Buffer)
	assert.Equal(t, []string{"5 + 0.02 = 5.02"}, log.Entries())
}

func TestBackspace(t *testing.T) {
	e := New(nil)
	st := press(t, e, "1", "2", "Backspace")
	assert.Equal(t, "1", st.Buffer)

	st = press(t, e, "backspace")
	assert.Equal(t, "0", st.Buffer)

	st = press(t, e, "backspace")
	assert.Equal(t, "0", st.Buffer)
}

func TestBackspaceWhileAwaitingIsNoop(t *testing.T) {
	e := New(nil)
	st := press(t, e, "4", "2", "+", "Backspace")
	assert.Equal(t, "42", st.Buffer)
	assert.True(t, st.Awaiting)
}

func TestUnparseableBufferKeepsPreview(t *testing.T) {
	e := New(nil)
	st := press(t, e, "5", "+", "3", "n")
	require.Equal(t, "= 2", st.Preview)

	// "-3" -> "-" which is not a number.
	st = press(t, e, "Backspace")
	assert.Equal(t, "-", st.Buffer)
	assert.Equal(t, "= 2", st.Preview)

	st = press(t, e, "Backspace")
	assert.Equal(t, "0", st.Buffer)
	assert.Equal(t, "= 5", st.Preview)
}
