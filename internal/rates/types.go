package rates

import (
	"strings"
	"time"

	"github.com/theirongolddev/xpense/internal/model"
)

// latestResponse is the raw API response. Providers disagree on the base
// field name, so both spellings are accepted.
type latestResponse struct {
	Result             string             `json:"result"`
	ErrorType          string             `json:"error-type"`
	Base               string             `json:"base"`
	BaseCode           string             `json:"base_code"`
	Rates              map[string]float64 `json:"rates"`
	TimeLastUpdateUnix int64              `json:"time_last_update_unix"`
}

// toExchangeRates keeps only supported currencies with positive rates.
func (r latestResponse) toExchangeRates(requestedBase string, now time.Time) (model.ExchangeRates, error) {
	base := r.BaseCode
	if base == "" {
		base = r.Base
	}
	if base == "" {
		base = requestedBase
	}

	out := model.ExchangeRates{
		Base:        strings.ToUpper(base),
		Rates:       make(map[string]float64),
		LastUpdated: now.UTC(),
	}
	if r.TimeLastUpdateUnix > 0 {
		out.LastUpdated = time.Unix(r.TimeLastUpdateUnix, 0).UTC()
	}

	for code, rate := range r.Rates {
		if _, ok := model.CurrencyByCode(code); !ok || !(rate > 0) {
			continue
		}
		out.Rates[strings.ToUpper(code)] = rate
	}
	if len(out.Rates) == 0 {
		return out, ErrNoRates
	}
	if _, ok := out.Rates[out.Base]; !ok {
		out.Rates[out.Base] = 1
	}
	return out, nil
}
