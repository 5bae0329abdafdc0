package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/colthorp/lolfetch-go/internal/core"
	"golang.org/x/time/rate"
)

// ErrNotFound is matched by API errors carrying HTTP 404.
var ErrNotFound = errors.New("not found")

// APIError is returned when the Riot API returns an error response.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (HTTP %d): %s", e.StatusCode, e.Message)
}

// Is lets errors.Is(err, ErrNotFound) match 404 responses.
func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

// Client is the HTTP wrapper around the Riot REST API.
type Client struct {
	apiKey     string
	hostFmt    string
	httpClient *http.Client
	limiters   []*rate.Limiter
	backoff    time.Duration
	maxRetries int
	logger     *slog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithBaseURL overrides the Riot host format. A value without "%s" is used
// for every routing value, which is what tests against httptest need.
func WithBaseURL(hostFmt string) ClientOption {
	return func(c *Client) { c.hostFmt = strings.TrimRight(hostFmt, "/") }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *slog.Logger) ClientOption {
	return func(c *Client) { c.logger = l }
}

// WithBackoff sets the base wait between retries.
func WithBackoff(d time.Duration) ClientOption {
	return func(c *Client) { c.backoff = d }
}

// WithRateLimits replaces the default development-key budgets.
func WithRateLimits(limiters ...*rate.Limiter) ClientOption {
	return func(c *Client) { c.limiters = limiters }
}

// DevKeyLimits returns limiters matching a personal development key:
// 20 requests per second and 100 requests per two minutes.
func DevKeyLimits() []*rate.Limiter {
	return []*rate.Limiter{
		rate.NewLimiter(rate.Limit(20), 20),
		rate.NewLimiter(rate.Every(2*time.Minute/100), 100),
	}
}

// NewClient creates a new API client.
func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		apiKey:  apiKey,
		hostFmt: core.RiotAPIHostFmt,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		limiters:   DevKeyLimits(),
		backoff:    time.Second,
		maxRetries: 3,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With("component", "api")
	return c
}

func (c *Client) baseURL(host string) string {
	if strings.Contains(c.hostFmt, "%s") {
		return fmt.Sprintf(c.hostFmt, host)
	}
	return c.hostFmt
}

func (c *Client) wait(ctx context.Context) error {
	for _, l := range c.limiters {
		if err := l.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter: %w", err)
		}
	}
	return nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Request performs a GET request and returns the raw response body.
// Retries automatically on HTTP 5xx or 429 responses with exponential back-off.
func (c *Client) Request(ctx context.Context, host, path string, params url.Values) ([]byte, error) {
	urlStr := c.baseURL(host) + path
	if len(params) > 0 {
		urlStr += "?" + params.Encode()
	}

	c.logger.Debug("GET", "url", urlStr)

	var lastErr error
	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		if err := c.wait(ctx); err != nil {
			return nil, err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("X-Riot-Token", c.apiKey)
		req.Header.Set("Accept", "application/json")

		wait := c.backoff * time.Duration(1<<(attempt-1))

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = err
			if attempt < c.maxRetries {
				c.logger.Debug("request failed, retrying", "attempt", attempt, "wait", wait, "error", err)
				if err := sleep(ctx, wait); err != nil {
					return nil, err
				}
				continue
			}
			return nil, fmt.Errorf("request failed: %w", err)
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read response body: %w", err)
		}

		if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
			lastErr = &APIError{StatusCode: resp.StatusCode, Message: string(body)}
			if attempt < c.maxRetries {
				if resp.StatusCode == http.StatusTooManyRequests {
					if ra := resp.Header.Get("Retry-After"); ra != "" {
						if secs, err := strconv.Atoi(ra); err == nil {
							wait = time.Duration(secs) * time.Second
						}
					}
				}
				c.logger.Debug("request throttled, retrying", "attempt", attempt, "status", resp.StatusCode, "wait", wait)
				if err := sleep(ctx, wait); err != nil {
					return nil, err
				}
				continue
			}
			return nil, lastErr
		}

		if resp.StatusCode >= 400 {
			return nil, &APIError{StatusCode: resp.StatusCode, Message: string(body)}
		}

		c.logger.Debug("response", "status", resp.StatusCode, "bytes", len(body))
		return body, nil
	}

	return nil, lastErr
}
