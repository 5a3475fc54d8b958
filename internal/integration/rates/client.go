// Package rates implements the exchange-rate provider client and its cache.
package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/shopspring/decimal"

	"github.com/expense-tracker/core/config"
	"github.com/expense-tracker/core/internal/application/adapter"
	domainerror "github.com/expense-tracker/core/internal/domain/error"
)

// client implements the adapter.RateProvider interface against a
// currencylayer-style /api/live endpoint.
type client struct {
	baseURL    string
	accessKey  string
	httpClient *http.Client
}

// NewClient creates a new exchange-rate client.
func NewClient(cfg *config.RatesConfig) adapter.RateProvider {
	return &client{
		baseURL:   cfg.BaseURL,
		accessKey: cfg.AccessKey,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

type liveResponse struct {
	Success bool                       `json:"success"`
	Source  string                     `json:"source"`
	Quotes  map[string]decimal.Decimal `json:"quotes"`
	Error   *struct {
		Code int    `json:"code"`
		Info string `json:"info"`
	} `json:"error"`
}

// Quote fetches the source→target rate. Quotes come back keyed by the
// concatenated pair, e.g. "USDCAD".
func (c *client) Quote(ctx context.Context, source, target string) (decimal.Decimal, error) {
	endpoint := fmt.Sprintf("%s/api/live?%s", c.baseURL, url.Values{
		"access_key": {c.accessKey},
		"currencies": {target},
		"source":     {source},
		"format":     {"1"},
	}.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to build rate request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %v", domainerror.ErrQuoteUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return decimal.Zero, fmt.Errorf("%w: provider returned %d", domainerror.ErrQuoteUnavailable, resp.StatusCode)
	}

	var live liveResponse
	if err := json.NewDecoder(resp.Body).Decode(&live); err != nil {
		return decimal.Zero, fmt.Errorf("%w: %v", domainerror.ErrQuoteUnavailable, err)
	}
	if !live.Success {
		if live.Error != nil {
			return decimal.Zero, fmt.Errorf("%w: %s", domainerror.ErrQuoteUnavailable, live.Error.Info)
		}
		return decimal.Zero, domainerror.ErrQuoteUnavailable
	}

	rate, ok := live.Quotes[source+target]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: no quote for %s%s", domainerror.ErrUnknownCurrency, source, target)
	}
	return rate, nil
}
