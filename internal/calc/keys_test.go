package calc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDispatchRecognisesKeypadKeys(t *testing.T) {
	keys := []string{
		"0", "1", "2", "3", "4", "5", "6", "7", "8", "9",
		".", "+", "-", "*", "/",
		"enter", "Enter", "=",
		"esc", "Escape",
		"backspace", "Backspace",
		"%", "n",
	}
	for _, k := range keys {
		assert.True(t, Dispatch(New(nil), k), k)
	}
}

func TestDispatchRejectsUnknownKeys(t *testing.T) {
	e := New(nil)
	for _, k := range []string{"a", "x", "ctrl+c", "10", ""} {
		assert.False(t, Dispatch(e, k), k)
	}
	assert.Equal(t, New(nil).State(), e.State())
}

func TestTokenize(t *testing.T) {
	assert.Equal(t,
		[]string{"1", "2", ".", "5", "+", "3", "=", "Escape", "Backspace", "n", "%"},
		Tokenize("12.5 + 3 = C<~%"),
	)
}

func TestRunReportsUnknownKeys(t *testing.T) {
	st, unknown := Run(New(nil), Tokenize("2+2=x"))
	assert.Equal(t, "4", st.Buffer)
	assert.Equal(t, []string{"x"}, unknown)
}
