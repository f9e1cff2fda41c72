package rates

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/xpense/internal/model"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c := NewClient(srv.URL+"/v6/latest/", "secret")
	c.now = func() time.Time { return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC) }
	return c
}

func TestFetch(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v6/latest/EUR", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"result":"success","base_code":"EUR","time_last_update_unix":1748736000,
			"rates":{"EUR":1,"USD":1.1,"GBP":0.85,"XAU":0.0004,"BAD":-1}}`))
	})

	r, err := c.Fetch(context.Background(), "eur")
	require.NoError(t, err)
	assert.Equal(t, "EUR", r.Base)
	assert.Equal(t, map[string]float64{"EUR": 1, "USD": 1.1, "GBP": 0.85}, r.Rates)
	assert.Equal(t, int64(1748736000), r.LastUpdated.Unix())
}

func TestFetchAcceptsBaseField(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"base":"USD","rates":{"EUR":0.9}}`))
	})

	r, err := c.Fetch(context.Background(), "USD")
	require.NoError(t, err)
	assert.Equal(t, "USD", r.Base)
	assert.Equal(t, 1.0, r.Rates["USD"], "base rate filled in")
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), r.LastUpdated)
}

func TestFetchErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{"unauthorized", http.StatusUnauthorized, "", ErrUnauthorized},
		{"forbidden", http.StatusForbidden, "", ErrUnauthorized},
		{"rate limited", http.StatusTooManyRequests, "", ErrRateLimited},
		{"empty rates", http.StatusOK, `{"rates":{}}`, ErrNoRates},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})
			_, err := c.Fetch(context.Background(), "USD")
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestFetchServerErrorAndBadJSON(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	_, err := c.Fetch(context.Background(), "USD")
	assert.ErrorContains(t, err, "unexpected status 502")

	c = newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"result":"error","error-type":"unsupported-code"}`))
	})
	_, err = c.Fetch(context.Background(), "USD")
	assert.ErrorContains(t, err, "unsupported-code")

	c = newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	})
	_, err = c.Fetch(context.Background(), "USD")
	assert.ErrorContains(t, err, "parsing response")
}

func TestFetchUnknownBase(t *testing.T) {
	c := NewClient("http://127.0.0.1:0", "")
	_, err := c.Fetch(context.Background(), "XXX")
	assert.ErrorIs(t, err, ErrUnknownCurrency)
}

func TestConvert(t *testing.T) {
	r := model.ExchangeRates{Base: "USD", Rates: map[string]float64{"USD": 1, "EUR": 0.8, "JPY": 150}}

	got, err := Convert(r, 100, "eur", "JPY")
	require.NoError(t, err)
	assert.InDelta(t, 18750, got, 1e-9)

	rate, err := Rate(r, "USD", "EUR")
	require.NoError(t, err)
	assert.Equal(t, 0.8, rate)

	_, err = Convert(r, 1, "GBP", "USD")
	assert.ErrorIs(t, err, ErrUnknownCurrency)
	_, err = Convert(r, 1, "USD", "GBP")
	assert.ErrorIs(t, err, ErrUnknownCurrency)
}
