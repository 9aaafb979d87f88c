package ratesource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	portssvc "github.com/payflowhq/payflow_backend/internal/core/ports/services"
	"github.com/payflowhq/payflow_backend/internal/middleware"
	"github.com/payflowhq/payflow_backend/pkg/config"
)

const maxBackoff = 30 * time.Second

// coinCapIDs maps currency codes to CoinCap asset identifiers. Fiat codes are
// quoted through the /v3/rates endpoint instead and are not listed here.
var coinCapIDs = map[string]string{
	"BTC":  "bitcoin",
	"ETH":  "ethereum",
	"USDT": "tether",
	"USDC": "usd-coin",
	"SOL":  "solana",
	"DAI":  "dai",
	"LINK": "chainlink",
	"UNI":  "uniswap",
}

// Client fetches live USD rates from a CoinCap-compatible API.
type Client struct {
	baseURL    string
	apiKey     string
	maxRetries int
	httpClient *http.Client
}

// NewClient creates a rate source client from configuration.
func NewClient(cfg *config.Config) *Client {
	return &Client{
		baseURL:    cfg.RateSourceBaseURL,
		apiKey:     cfg.RateSourceAPIKey,
		maxRetries: cfg.RateSourceMaxRetries,
		httpClient: &http.Client{
			Timeout: cfg.RateSourceTimeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				IdleConnTimeout:     30 * time.Second,
				MaxIdleConnsPerHost: 10,
			},
		},
	}
}

var _ portssvc.RateFetcher = (*Client)(nil)

// FetchUSDRate returns the USD value of one unit of the given currency.
func (c *Client) FetchUSDRate(ctx context.Context, currencyCode string) (decimal.Decimal, error) {
	return c.fetchWithRetry(ctx, currencyCode, 0)
}

func (c *Client) fetchWithRetry(ctx context.Context, currencyCode string, attempt int) (decimal.Decimal, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid rate source base URL: %w", err)
	}

	code := strings.ToUpper(currencyCode)
	if id, ok := coinCapIDs[code]; ok {
		u.Path = fmt.Sprintf("/v3/assets/%s", id)
	} else {
		u.Path = fmt.Sprintf("/v3/rates/%s", strings.ToLower(code))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("creating rate request failed: %w", err)
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if shouldRetry(err) && attempt < c.maxRetries {
			c.waitBackoff(ctx, currencyCode, attempt)
			return c.fetchWithRetry(ctx, currencyCode, attempt+1)
		}
		return decimal.Zero, fmt.Errorf("rate request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		if shouldRetryStatusCode(resp.StatusCode) && attempt < c.maxRetries {
			c.waitBackoff(ctx, currencyCode, attempt)
			return c.fetchWithRetry(ctx, currencyCode, attempt+1)
		}
		return decimal.Zero, c.errorFromResponse(resp)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return decimal.Zero, fmt.Errorf("reading rate response failed: %w", err)
	}

	return parseRateResponse(body)
}

// parseRateResponse handles both the /assets and /rates response shapes; each
// carries a USD price string under data.
func parseRateResponse(body []byte) (decimal.Decimal, error) {
	var response struct {
		Data struct {
			PriceUSD string `json:"priceUsd"`
			RateUSD  string `json:"rateUsd"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		return decimal.Zero, fmt.Errorf("parsing rate response failed: %w", err)
	}

	raw := response.Data.PriceUSD
	if raw == "" {
		raw = response.Data.RateUSD
	}
	rate, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid rate format %q: %w", raw, err)
	}
	if !rate.IsPositive() {
		return decimal.Zero, fmt.Errorf("non-positive rate %s from rate source", rate)
	}
	return rate, nil
}

func (c *Client) errorFromResponse(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("rate source HTTP error %d", resp.StatusCode)
	}

	var errorResp struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &errorResp); err == nil && errorResp.Error != "" {
		return fmt.Errorf("rate source HTTP error %d: %s", resp.StatusCode, errorResp.Error)
	}
	return fmt.Errorf("rate source HTTP error %d: %s", resp.StatusCode, string(body))
}

func (c *Client) waitBackoff(ctx context.Context, currencyCode string, attempt int) {
	backoff := calculateBackoff(attempt)
	middleware.GetLoggerFromCtx(ctx).Warn("Rate source request failed, retrying",
		"currency", currencyCode,
		"attempt", attempt+1,
		"backoff", backoff.String(),
	)
	select {
	case <-ctx.Done():
	case <-time.After(backoff):
	}
}

func shouldRetry(err error) bool {
	if err, ok := err.(interface{ Timeout() bool }); ok && err.Timeout() {
		return true
	}
	if err, ok := err.(interface{ Temporary() bool }); ok && err.Temporary() {
		return true
	}
	return false
}

func shouldRetryStatusCode(statusCode int) bool {
	return statusCode == http.StatusTooManyRequests ||
		statusCode == http.StatusInternalServerError ||
		statusCode == http.StatusBadGateway ||
		statusCode == http.StatusServiceUnavailable ||
		statusCode == http.StatusGatewayTimeout
}

func calculateBackoff(attempt int) time.Duration {
	backoff := time.Second << attempt
	if backoff > maxBackoff {
		backoff = maxBackoff
	}
	return backoff
}
