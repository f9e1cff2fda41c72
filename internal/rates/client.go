// Package rates fetches and applies currency exchange rates.
package rates

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/theirongolddev/xpense/internal/model"
)

const (
	requestTimeout = 10 * time.Second
	maxBodySize    = 1 << 20 // 1 MB
	userAgent      = "github.com/theirongolddev/xpense/1.0"
)

var (
	// ErrUnauthorized indicates the API key was rejected.
	ErrUnauthorized = errors.New("rates: unauthorized (api key missing or invalid)")
	// ErrRateLimited indicates the API rate limit was hit.
	ErrRateLimited = errors.New("rates: rate limited")
	// ErrNoRates indicates the response carried no usable rates.
	ErrNoRates = errors.New("rates: no exchange rates in response")
	// ErrUnknownCurrency indicates a currency code outside the supported set
	// or missing from the rate table.
	ErrUnknownCurrency = errors.New("rates: unknown currency")
)

// Client fetches exchange rates from a JSON endpoint of the form
// <baseURL>/<BASE>.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	now     func() time.Time
}

// NewClient creates a client for the given endpoint. The API key is optional.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		apiKey:  strings.TrimSpace(apiKey),
		http:    &http.Client{},
		now:     time.Now,
	}
}

// Fetch returns the rates for every supported currency against base.
// One request is made; failures are returned to the caller, not retried.
func (c *Client) Fetch(ctx context.Context, base string) (model.ExchangeRates, error) {
	cur, ok := model.CurrencyByCode(base)
	if !ok {
		return model.ExchangeRates{}, fmt.Errorf("%w: %q", ErrUnknownCurrency, base)
	}

	body, err := c.get(ctx, "/"+cur.Code)
	if err != nil {
		return model.ExchangeRates{}, err
	}

	var raw latestResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return model.ExchangeRates{}, fmt.Errorf("rates: parsing response: %w", err)
	}
	if raw.Result == "error" {
		return model.ExchangeRates{}, fmt.Errorf("rates: api error: %s", raw.ErrorType)
	}

	return raw.toExchangeRates(cur.Code, c.now())
}

// get performs a GET request and returns the response body.
func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("rates: creating request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	//nolint:gosec // URL comes from user configuration
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("rates: request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, ErrUnauthorized
	case http.StatusTooManyRequests:
		return nil, ErrRateLimited
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("rates: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("rates: reading response: %w", err)
	}
	return body, nil
}
