package rates

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/xpense/internal/model"
)

// Convert converts amount between two currencies through the rate table:
// amount / rates[from] * rates[to].
func Convert(r model.ExchangeRates, amount float64, from, to string) (float64, error) {
	from, to = strings.ToUpper(from), strings.ToUpper(to)
	rateFrom, ok := r.Rates[from]
	if !ok || rateFrom == 0 {
		return 0, fmt.Errorf("%w: %q", ErrUnknownCurrency, from)
	}
	rateTo, ok := r.Rates[to]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownCurrency, to)
	}
	return amount / rateFrom * rateTo, nil
}

// Rate returns units of to per one unit of from.
func Rate(r model.ExchangeRates, from, to string) (float64, error) {
	return Convert(r, 1, from, to)
}
