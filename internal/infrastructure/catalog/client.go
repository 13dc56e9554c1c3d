package catalog

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/pantrypal/backend/internal/domain"
	"github.com/pantrypal/backend/internal/infrastructure/metrics"
)

const (
	maxAttempts    = 3
	requestTimeout = 30 * time.Second
	userAgent      = "PantryPal/1.0"
)

// Client fetches the icon catalog from the asset CDN
type Client struct {
	httpClient  *resty.Client
	url         string
	rateLimiter *rate.Limiter
	mapper      *Mapper
	logger      *zap.Logger
	debug       bool
	wait        func(context.Context, time.Duration) error
}

// NewClient creates a remote catalog client. requestsPerSecond bounds how
// often the CDN is hit, with a burst of 1.
func NewClient(url string, requestsPerSecond float64, logger *zap.Logger) *Client {
	if requestsPerSecond <= 0 {
		requestsPerSecond = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	httpClient := resty.New().
		SetTimeout(requestTimeout).
		SetHeader("User-Agent", userAgent).
		SetHeader("Accept", "application/json")

	return &Client{
		httpClient:  httpClient,
		url:         url,
		rateLimiter: rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
		mapper:      NewMapper(),
		logger:      logger.Named("catalog-client"),
		wait:        sleepContext,
	}
}

// SetDebug enables verbose logging of each attempt
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

// exponentialBackoff returns the wait before retrying after attempt
func exponentialBackoff(attempt int) time.Duration {
	return time.Duration(500*(1<<(attempt-1))) * time.Millisecond
}

// sleepContext blocks for d or until ctx is done, whichever comes first
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Load fetches and maps the remote catalog, retrying transient failures
func (c *Client) Load(ctx context.Context) ([]domain.CatalogEntry, error) {
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter error: %w", err)
		}

		body, err := c.fetch(ctx)
		if err == nil {
			result, err := c.mapper.Parse(body)
			if err != nil {
				return nil, err
			}
			c.logger.Info("remote catalog loaded",
				zap.String("url", c.url),
				zap.Int("entries", len(result.Entries)),
				zap.Int("skipped", result.Skipped))
			return result.Entries, nil
		}

		if !retryable(err) {
			return nil, err
		}

		lastErr = err
		if c.debug {
			c.logger.Debug("catalog request failed",
				zap.Int("attempt", attempt),
				zap.Error(err))
		}
		if attempt < maxAttempts {
			metrics.RecordCatalogFetchRetry()
			if err := c.wait(ctx, exponentialBackoff(attempt)); err != nil {
				return nil, fmt.Errorf("catalog fetch interrupted: %w", err)
			}
		}
	}

	c.logger.Warn("all catalog fetch attempts failed", zap.String("url", c.url), zap.Error(lastErr))
	return nil, lastErr
}

// statusError is a non-200 catalog response
type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("%v: status %d", domain.ErrCatalogFetchFailure, e.code)
}

func (e *statusError) Unwrap() error {
	return domain.ErrCatalogFetchFailure
}

// retryable reports whether a failed fetch is worth repeating: transport
// errors, throttling and server errors are; other client errors are not
func retryable(err error) bool {
	se, ok := err.(*statusError)
	if !ok {
		return true
	}
	return se.code == http.StatusTooManyRequests || se.code >= http.StatusInternalServerError
}

func (c *Client) fetch(ctx context.Context) ([]byte, error) {
	resp, err := c.httpClient.R().
		SetContext(ctx).
		Get(c.url)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogFetchFailure, err)
	}

	if resp.StatusCode() != http.StatusOK {
		return nil, &statusError{code: resp.StatusCode()}
	}

	return resp.Body(), nil
}
