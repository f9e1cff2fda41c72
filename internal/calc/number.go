package calc

import (
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

// displayDigits is the number of significant digits kept in results.
const displayDigits = 15

// ParseOperand parses a display buffer. A trailing decimal point is
// allowed ("12." is 12) and "Infinity" round-trips. ok is false for text
// that is not a number, including "NaN".
func ParseOperand(buf string) (float64, bool) {
	s := strings.TrimSuffix(buf, ".")
	switch s {
	case "Infinity", "+Infinity":
		return math.Inf(1), true
	case "-Infinity":
		return math.Inf(-1), true
	case "", "-", "+":
		return math.NaN(), false
	}
	for _, c := range s {
		if (c < '0' || c > '9') && c != '.' && c != '-' && c != '+' && c != 'e' {
			return math.NaN(), false
		}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err == nil {
		return v, true
	}
	// A half-deleted exponent such as "1e+" still reads as its mantissa.
	if trimmed := strings.TrimRight(s, "e+-."); trimmed != "" && trimmed != s {
		if v, err := strconv.ParseFloat(trimmed, 64); err == nil {
			return v, true
		}
	}
	return math.NaN(), false
}

// operandValue is ParseOperand without the ok flag; failures are NaN.
func operandValue(buf string) float64 {
	v, _ := ParseOperand(buf)
	return v
}

// NumberText renders v the way it is stored in the display buffer:
// shortest round-trip digits, exponent notation outside [1e-6, 1e21),
// "Infinity"/"-Infinity"/"NaN" for non-finite values.
func NumberText(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	case v == 0:
		return "0"
	}

	abs := math.Abs(v)
	if abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(v, 'e', -1, 64)
		mant, exp, _ := strings.Cut(s, "e")
		sign := exp[:1]
		digits := strings.TrimLeft(exp[1:], "0")
		if digits == "" {
			digits = "0"
		}
		return mant + "e" + sign + digits
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// RoundResult drops floating point noise by rounding to 15 significant
// digits, so 0.1+0.2 gives 0.3.
func RoundResult(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v == 0 {
		return v
	}
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'g', displayDigits, 64), 64)
	if err != nil {
		return v
	}
	return r
}

// ResultText is NumberText(RoundResult(v)).
func ResultText(v float64) string {
	return NumberText(RoundResult(v))
}

// FormatDisplay groups the integer part of a buffer with thousands
// separators and keeps the fraction as typed. Exponent notation and
// non-numeric text pass through unchanged.
func FormatDisplay(text string) string {
	if strings.Contains(text, "e") {
		return text
	}
	intPart, frac, hasFrac := strings.Cut(text, ".")
	if intPart == "" {
		return "0"
	}

	n, ok := new(big.Int).SetString(intPart, 10)
	if !ok {
		return text
	}
	grouped := humanize.BigComma(n)
	if hasFrac {
		return grouped + "." + frac
	}
	return grouped
}
