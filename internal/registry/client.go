package registry

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"companyscout/internal/logging"
	"companyscout/internal/services"
)

// Searcher defines the registry search used by the resolver.
type Searcher interface {
	Search(ctx context.Context, name string, limit int) (*Response, error)
}

// Store persists raw search payloads between runs.
type Store interface {
	Get(ctx context.Context, query string, limit int, maxAge time.Duration) ([]byte, bool, error)
	Put(ctx context.Context, query string, limit int, payload []byte) error
}

// Client queries the registry search API.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	limiter    *rate.Limiter
	memo       *cache.Cache
	store      Store
	storeTTL   time.Duration
	logger     *slog.Logger
}

var _ Searcher = (*Client)(nil)

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

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		if ua := strings.TrimSpace(userAgent); ua != "" {
			c.userAgent = ua
		}
	}
}

// WithDelay sets the minimum pause between two API requests. Cached answers
// do not consume the budget.
func WithDelay(delay time.Duration) Option {
	return func(c *Client) {
		if delay <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		c.limiter = rate.NewLimiter(rate.Every(delay), 1)
	}
}

// WithStore adds a persistent payload store consulted before the API.
// Entries older than maxAge are ignored.
func WithStore(store Store, maxAge time.Duration) Option {
	return func(c *Client) {
		c.store = store
		c.storeTTL = maxAge
	}
}

// WithLogger attaches a logger for cache and request diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logging.NewComponentLogger(logger, "registry")
		}
	}
}

const (
	defaultUserAgent = "startup-patents-survival/1.0"
	memoTTL          = time.Hour
)

// New creates a registry client for the search endpoint at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, services.Wrap(services.ErrConfiguration, "lookup", "init", "registry base url required", nil)
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "lookup", "init", "parse registry base url", err)
	}
	client := &Client{
		baseURL:    baseURL,
		userAgent:  defaultUserAgent,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		limiter:    rate.NewLimiter(rate.Inf, 1),
		memo:       cache.New(memoTTL, 2*memoTTL),
		logger:     logging.NewNop(),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Search looks name up and returns at most limit candidates in API order. A
// blank name yields an empty response without any request.
func (c *Client) Search(ctx context.Context, name string, limit int) (*Response, error) {
	query := strings.TrimSpace(name)
	if query == "" {
		return &Response{}, nil
	}
	if limit <= 0 {
		limit = 1
	}
	key := memoKey(query, limit)
	if cached, ok := c.memo.Get(key); ok {
		return cached.(*Response), nil
	}

	payload, fromStore := c.loadStored(ctx, query, limit)
	if !fromStore {
		var err error
		payload, err = c.fetch(ctx, query, limit)
		if err != nil {
			return nil, err
		}
	}

	var resp Response
	if err := json.Unmarshal(payload, &resp); err != nil {
		return nil, services.Wrap(services.ErrExternal, "lookup", "decode", "registry response", err)
	}
	if len(resp.Results) > limit {
		resp.Results = resp.Results[:limit]
	}

	if !fromStore && c.store != nil {
		if err := c.store.Put(ctx, query, limit, payload); err != nil {
			logging.WarnWithContext(c.logger, "registry cache write failed", "cache_write_failed",
				logging.String("query", query),
				logging.Error(err),
				logging.String(logging.FieldImpact, "the next run will query the API again"),
			)
		}
	}
	c.memo.SetDefault(key, &resp)
	return &resp, nil
}

func (c *Client) loadStored(ctx context.Context, query string, limit int) ([]byte, bool) {
	if c.store == nil {
		return nil, false
	}
	payload, ok, err := c.store.Get(ctx, query, limit, c.storeTTL)
	if err != nil {
		logging.WarnWithContext(c.logger, "registry cache read failed", "cache_read_failed",
			logging.String("query", query),
			logging.Error(err),
			logging.String(logging.FieldImpact, "falling back to the API"),
		)
		return nil, false
	}
	if ok {
		c.logger.Debug("registry cache hit", logging.String("query", query))
	}
	return payload, ok
}

func (c *Client) fetch(ctx context.Context, query string, limit int) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	endpoint, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "lookup", "parse url", c.baseURL, err)
	}
	params := endpoint.Query()
	params.Set("q", query)
	params.Set("limite", strconv.Itoa(limit))
	params.Set("per_page", strconv.Itoa(limit))
	endpoint.RawQuery = params.Encode()

	requestID := uuid.NewString()
	ctx = services.WithRequestID(ctx, requestID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "lookup", "build request", query, err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, "lookup", "search", fmt.Sprintf("execute request (latency=%v)", latency), err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, "lookup", "search", "read body", err)
	}
	logging.WithContext(ctx, c.logger).Debug("registry search",
		logging.String("query", query),
		logging.Int("status", resp.StatusCode),
		logging.Duration("latency", latency),
	)

	switch {
	case resp.StatusCode == http.StatusOK:
		return body, nil
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return nil, services.Wrap(services.ErrTransient, "lookup", "search", fmt.Sprintf("registry search returned %d (latency=%v)", resp.StatusCode, latency), errors.New(snippet(body)))
	default:
		return nil, services.Wrap(services.ErrExternal, "lookup", "search", fmt.Sprintf("registry search returned %d (latency=%v)", resp.StatusCode, latency), errors.New(snippet(body)))
	}
}

func memoKey(query string, limit int) string {
	return strconv.Itoa(limit) + "|" + query
}

func snippet(body []byte) string {
	body = bytes.TrimSpace(body)
	if len(body) > 200 {
		body = body[:200]
	}
	if len(body) == 0 {
		return "empty body"
	}
	return string(body)
}
