package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/evcraddock/wander/internal/metrics"
	"github.com/evcraddock/wander/internal/tracing"
)

// DefaultCacheTTL matches the hourly refresh of the catalog.
const DefaultCacheTTL = time.Hour

const userAgent = "wander/1.0"

// Client fetches catalog data, optionally through a response cache.
type Client struct {
	httpClient *http.Client
	baseURL    string
	cache      Cache
	ttl        time.Duration
	metrics    *metrics.Metrics
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithCache stores raw responses in cache for ttl.
func WithCache(cache Cache, ttl time.Duration) Option {
	return func(c *Client) {
		c.cache = cache
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithMetrics records request counts and durations.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// NewClient creates a catalog client. An empty baseURL uses DefaultBaseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    strings.TrimRight(baseURL, "/"),
		ttl:        DefaultCacheTTL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Banners fetches the landing page carousel.
func (c *Client) Banners(ctx context.Context) ([]Banner, error) {
	var resp bannersResponse
	if err := c.get(ctx, "banners", "/banners", &resp); err != nil {
		return nil, fmt.Errorf("fetching banners: %w", err)
	}
	return resp.Banners, nil
}

// FeaturedDestinations fetches the destination cards for the landing page.
func (c *Client) FeaturedDestinations(ctx context.Context) ([]Featured, error) {
	var resp featuredResponse
	if err := c.get(ctx, "featured", "/featured-destination", &resp); err != nil {
		return nil, fmt.Errorf("fetching featured destinations: %w", err)
	}
	return resp.Destination, nil
}

// Destination fetches the trips for a handle.
func (c *Client) Destination(ctx context.Context, handle string) (*Destination, error) {
	if !ValidHandle(handle) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidHandle, handle)
	}

	var resp destinationResponse
	if err := c.get(ctx, "destination", "/destination/"+handle, &resp); err != nil {
		return nil, fmt.Errorf("fetching destination %s: %w", handle, err)
	}
	return &Destination{Handle: handle, Trips: resp.Trips}, nil
}

// get decodes the JSON document at path into v, consulting the cache first.
func (c *Client) get(ctx context.Context, endpoint, path string, v any) error {
	ctx, span := tracing.Tracer().Start(ctx, "catalog."+endpoint)
	defer span.End()
	span.SetAttributes(attribute.String("catalog.path", path))

	raw, source, err := c.fetch(ctx, endpoint, path)
	span.SetAttributes(attribute.String("catalog.source", source))
	c.count(endpoint, source)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	if err := json.Unmarshal(raw, v); err != nil {
		span.SetStatus(codes.Error, "decode")
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

func (c *Client) fetch(ctx context.Context, endpoint, path string) ([]byte, string, error) {
	key := cacheKey(path)

	if c.cache != nil {
		raw, ok, err := c.cache.Get(ctx, key)
		if err != nil {
			slog.WarnContext(ctx, "catalog cache read failed", "key", key, "error", err)
		} else if ok {
			return raw, metrics.SourceCache, nil
		}
	}

	start := time.Now()
	raw, err := c.request(ctx, path)
	if c.metrics != nil {
		c.metrics.CatalogDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	}
	if err != nil {
		return nil, metrics.SourceError, err
	}

	if c.cache != nil {
		if err := c.cache.Set(ctx, key, raw, c.ttl); err != nil {
			slog.WarnContext(ctx, "catalog cache write failed", "key", key, "error", err)
		}
	}
	return raw, metrics.SourceRemote, nil
}

func (c *Client) request(ctx context.Context, path string) (raw []byte, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sending request: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing body: %w", closeErr)
		}
	}()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	raw, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if !json.Valid(raw) {
		return nil, fmt.Errorf("response is not valid JSON")
	}
	return raw, nil
}

func (c *Client) count(endpoint, source string) {
	if c.metrics == nil {
		return
	}
	c.metrics.CatalogRequests.WithLabelValues(endpoint, source).Inc()
}
