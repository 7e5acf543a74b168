package scrape

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"

	"companyscout/internal/logging"
	"companyscout/internal/services"
)

// Fetcher returns the parsed HTML document at a URL.
type Fetcher interface {
	Fetch(ctx context.Context, pageURL string) (*goquery.Document, error)
}

// Client downloads listing pages.
type Client struct {
	userAgent  string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger
}

var _ Fetcher = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithDelay sets the minimum pause between two requests. Zero disables pacing.
func WithDelay(delay time.Duration) Option {
	return func(c *Client) {
		c.limiter = newLimiter(delay)
	}
}

// WithLogger attaches a logger for per-page diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient creates a listing client sending userAgent on every request.
func NewClient(userAgent string, timeout time.Duration, opts ...Option) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	client := &Client{
		userAgent:  strings.TrimSpace(userAgent),
		httpClient: &http.Client{Timeout: timeout},
		limiter:    newLimiter(0),
		logger:     logging.NewNop(),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

func newLimiter(delay time.Duration) *rate.Limiter {
	if delay <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(delay), 1)
}

// Fetch waits for the rate limiter, downloads pageURL, and parses it.
func (c *Client) Fetch(ctx context.Context, pageURL string) (*goquery.Document, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "scrape", "build request", pageURL, err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, "scrape", "fetch", fmt.Sprintf("%s (latency=%v)", pageURL, latency), err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, services.Wrap(services.ErrNotFound, "scrape", "fetch", pageURL+" returned 404", nil)
	case resp.StatusCode != http.StatusOK:
		return nil, services.Wrap(services.ErrExternal, "scrape", "fetch", fmt.Sprintf("%s returned %d", pageURL, resp.StatusCode), nil)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, services.Wrap(services.ErrExternal, "scrape", "parse", pageURL, err)
	}
	c.logger.Debug("listing page fetched",
		logging.String("url", pageURL),
		logging.Duration("latency", latency),
		logging.String(logging.FieldEventType, "page_fetched"),
	)
	return doc, nil
}
