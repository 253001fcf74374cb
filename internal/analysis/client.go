// Package analysis wraps the external market-analysis service. The core's
// only obligation is to surface the call's result or failure; the returned
// text is opaque and never interpreted.
package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/time/rate"

	"stockguard/internal/common"
	"stockguard/internal/logging"
)

// supportedInstruments is the fixed set the upstream service analyzes.
var supportedInstruments = map[string]struct{}{
	"bitcoin":  {},
	"ethereum": {},
	"ripple":   {},
	"cardano":  {},
	"solana":   {},
}

// SupportedInstrument reports whether the upstream can analyze the symbol.
func SupportedInstrument(symbol string) bool {
	_, ok := supportedInstruments[strings.ToLower(symbol)]
	return ok
}

// Result is the analysis payload handed to the renderer.
type Result struct {
	Symbol   string `json:"symbol"`
	Analysis string `json:"analysis"`
}

// Client performs one-shot analysis requests with rate limiting and
// exponential-backoff retries.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	maxElapsed time.Duration
	log        logging.Logger
}

type ClientOptions struct {
	BaseURL         string
	RequestTimeout  time.Duration
	RequestsPerSec  int
	MaxRetryTimeout time.Duration
}

func NewClient(opts ClientOptions, log logging.Logger) *Client {
	if opts.RequestTimeout == 0 {
		opts.RequestTimeout = 30 * time.Second
	}
	if opts.RequestsPerSec == 0 {
		opts.RequestsPerSec = 5
	}
	if opts.MaxRetryTimeout == 0 {
		opts.MaxRetryTimeout = 30 * time.Second
	}

	return &Client{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		httpClient: &http.Client{Timeout: opts.RequestTimeout},
		limiter:    rate.NewLimiter(rate.Limit(opts.RequestsPerSec), opts.RequestsPerSec),
		maxElapsed: opts.MaxRetryTimeout,
		log:        log.With("component", "analysis-client"),
	}
}

// analyzeResponse mirrors the upstream wire format.
type analyzeResponse struct {
	Analysis string `json:"analysis"`
	Error    string `json:"error"`
}

// Analyze requests analysis text for the symbol. Unknown symbols fail fast
// with a validation error before any network traffic.
func (c *Client) Analyze(ctx context.Context, symbol string) (*Result, error) {
	symbol = strings.ToLower(symbol)
	if !SupportedInstrument(symbol) {
		return nil, fmt.Errorf("%w: unsupported instrument %q", common.ErrValidation, symbol)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/analyze/%s", c.baseURL, url.PathEscape(symbol))

	var body []byte
	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return backoff.Permanent(err)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		body, err = io.ReadAll(resp.Body)
		if err != nil {
			return err
		}
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("analysis service returned %d", resp.StatusCode)
		}
		return nil
	}

	strategy := backoff.NewExponentialBackOff()
	strategy.MaxElapsedTime = c.maxElapsed

	if err := backoff.Retry(operation, backoff.WithContext(strategy, ctx)); err != nil {
		c.log.Error(ctx, "analysis request failed", "symbol", symbol, "error", err)
		return nil, fmt.Errorf("analysis request for %s: %w", symbol, err)
	}

	var parsed analyzeResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decoding analysis response: %w", err)
	}
	if parsed.Error != "" {
		return nil, fmt.Errorf("analysis service error: %s", parsed.Error)
	}

	return &Result{Symbol: symbol, Analysis: parsed.Analysis}, nil
}
