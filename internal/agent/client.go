// Package agent fetches raw prediction text from the external
// prediction-generating agent.
package agent

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

// Client is a rate-limited HTTP client for the agent API. Retries live here
// at the I/O boundary; the pipeline itself never retries.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string
	apiKey     string
	maxWait    time.Duration
	logger     zerolog.Logger
}

// ClientOptions holds options for creating a new Client.
type ClientOptions struct {
	BaseURL         string
	APIKey          string
	Timeout         time.Duration
	RequestsPerSec  int
	MaxRetryTimeout time.Duration
}

// NewClient creates a new agent client with rate limiting.
func NewClient(opts ClientOptions) *Client {
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.RequestsPerSec == 0 {
		opts.RequestsPerSec = 5
	}
	if opts.MaxRetryTimeout == 0 {
		opts.MaxRetryTimeout = 30 * time.Second
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: opts.Timeout,
		},
		limiter: rate.NewLimiter(rate.Every(time.Second), opts.RequestsPerSec),
		baseURL: opts.BaseURL,
		apiKey:  opts.APIKey,
		logger:  log.With().Str("component", "agent_client").Logger(),
		maxWait: opts.MaxRetryTimeout,
	}
}

// FetchPredictions requests the agent's prediction text for one week and
// returns the raw UTF-8 blob.
func (c *Client) FetchPredictions(ctx context.Context, week int) (string, error) {
	// Wait for rate limiter
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter error: %w", err)
	}

	url := fmt.Sprintf("%s/predictions?week=%d", c.baseURL, week)
	c.logger.Debug().Str("url", url).Msg("Fetching predictions")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	// Use exponential backoff for retries
	var resp *http.Response
	operation := func() error {
		var err error
		resp, err = c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("HTTP request failed: %w", err)
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return fmt.Errorf("non-200 status code: %d", resp.StatusCode)
		}
		return nil
	}

	expBackoff := backoff.NewExponentialBackOff()
	expBackoff.MaxElapsedTime = c.maxWait

	if err := backoff.Retry(operation, backoff.WithContext(expBackoff, ctx)); err != nil {
		return "", fmt.Errorf("fetching predictions: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response body: %w", err)
	}

	return string(body), nil
}
