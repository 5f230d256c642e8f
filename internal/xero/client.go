// Copyright (c) 2025 Steve Taranto staranto@gmail.com.
// SPDX-License-Identifier: Apache-2.0

package xero

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/apex/log"
	"github.com/google/uuid"
	"github.com/hashicorp/go-cleanhttp"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/tidwall/gjson"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/staranto/xeroctlgo/internal/cache"
)

const (
	defaultBaseURL        = "https://api.xero.com/api.xro/2.0"
	defaultConnectionsURL = "https://api.xero.com/connections"
	defaultTokenURL       = "https://identity.xero.com/connect/token"

	// pageSize is the documented maximum for list endpoints.
	pageSize = 100
)

// Config configures a Client. ClientID/ClientSecret come from the config
// file or XERO_CLIENT_ID/XERO_CLIENT_SECRET; everything else has defaults.
type Config struct {
	ClientID     string
	ClientSecret string
	Scopes       []string

	// TenantID pins the tenant. Empty means resolve via /connections and
	// require exactly one connected tenant.
	TenantID string

	BaseURL        string
	ConnectionsURL string
	TokenURL       string

	// Cache backs all read operations. Required.
	Cache *cache.Cache
	// CacheTTL overrides the cache's default TTL for API reads.
	CacheTTL time.Duration
	// NoCache forces every read in this invocation to bypass the cache.
	NoCache bool

	// HTTPClient overrides the OAuth transport entirely. Test hook.
	HTTPClient *http.Client
}

// Client talks to the Xero accounting API. Reads are read-through cached;
// writes invalidate the affected key families.
type Client struct {
	cfg  Config
	http *http.Client

	mu       sync.Mutex
	tenantID string
}

// NewClient validates the config and builds the OAuth client-credentials
// transport with retries. No network traffic happens until the first call.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.ConnectionsURL == "" {
		cfg.ConnectionsURL = defaultConnectionsURL
	}
	if cfg.TokenURL == "" {
		cfg.TokenURL = defaultTokenURL
	}
	if cfg.Cache == nil {
		cfg.Cache = cache.New(cache.Options{Namespace: "xero", DefaultTTL: cache.FiveMinutes})
	}

	base := cfg.HTTPClient
	if base == nil {
		if cfg.ClientID == "" {
			return nil, fmt.Errorf("failed to build client: %w", ErrClientIDNotSet)
		}
		if cfg.ClientSecret == "" {
			return nil, fmt.Errorf("failed to build client: %w", ErrClientSecretNotSet)
		}

		cc := &clientcredentials.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			TokenURL:     cfg.TokenURL,
			Scopes:       cfg.Scopes,
		}

		// Run the token exchange over a pooled transport rather than the
		// default one. oauth2 picks the client out of the context.
		ctx = context.WithValue(ctx, oauth2.HTTPClient, &http.Client{
			Transport: cleanhttp.DefaultPooledTransport(),
			Timeout:   30 * time.Second,
		})
		base = cc.Client(ctx)
	}

	rc := retryablehttp.NewClient()
	rc.HTTPClient = base
	rc.RetryMax = 3
	rc.Logger = retryLogger{}

	return &Client{
		cfg:      cfg,
		http:     rc.StandardClient(),
		tenantID: cfg.TenantID,
	}, nil
}

// Cache exposes the cache for the admin commands (stats/clear/invalidate).
func (c *Client) Cache() *cache.Cache {
	return c.cfg.Cache
}

// Tenant resolves and memoizes the tenant id. With no explicit --tenant, a
// sole connection is used; anything else is an error that names the choices.
func (c *Client) Tenant(ctx context.Context) (string, error) {
	c.mu.Lock()
	tenant := c.tenantID
	c.mu.Unlock()
	if tenant != "" {
		return tenant, nil
	}

	connections, err := c.Connections(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to resolve tenant: %w", err)
	}

	if len(connections) == 0 {
		return "", fmt.Errorf("failed to resolve tenant: %w", ErrNoConnections)
	}
	if len(connections) > 1 {
		names := make([]string, 0, len(connections))
		for _, conn := range connections {
			names = append(names, conn.TenantName)
		}
		return "", fmt.Errorf(
			"failed to resolve tenant (candidates: %s). Set --tenant or tenant in xeroctl.yaml: %w",
			strings.Join(names, ", "), ErrAmbiguousTenant)
	}

	tenant = connections[0].TenantID
	c.mu.Lock()
	c.tenantID = tenant
	c.mu.Unlock()
	log.Debugf("resolved tenant: %s (%s)", connections[0].TenantName, tenant)
	return tenant, nil
}

// Connections lists the tenants connected to this app. Cached for a day;
// connections only change when someone re-consents the app.
func (c *Client) Connections(ctx context.Context) ([]Connection, error) {
	return cachedFetch(ctx, c, "connections", nil, cache.OneDay,
		func(ctx context.Context) ([]Connection, error) {
			var connections []Connection
			if err := c.do(ctx, http.MethodGet, c.cfg.ConnectionsURL, nil, nil, &connections); err != nil {
				return nil, FriendlyXero(err, ErrorContext{
					Operation: "list connections",
					Resource:  "connection",
				})
			}
			return connections, nil
		})
}

// get issues an authenticated GET against the accounting API.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	if _, err := c.Tenant(ctx); err != nil {
		return err
	}
	return c.do(ctx, http.MethodGet, c.cfg.BaseURL+path, query, nil, out)
}

// post issues an authenticated POST (update-or-create in Xero terms).
func (c *Client) post(ctx context.Context, path string, body, out any) error {
	if _, err := c.Tenant(ctx); err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, c.cfg.BaseURL+path, nil, body, out)
}

// put issues an authenticated PUT (strict create in Xero terms).
func (c *Client) put(ctx context.Context, path string, body, out any) error {
	if _, err := c.Tenant(ctx); err != nil {
		return err
	}
	return c.do(ctx, http.MethodPut, c.cfg.BaseURL+path, nil, body, out)
}

// do executes one HTTP round trip. Non-2xx responses come back as *APIError
// with whatever detail the body carried.
func (c *Client) do(ctx context.Context, method, rawURL string, query url.Values, body, out any) error {
	if len(query) > 0 {
		rawURL += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.mu.Lock()
	if c.tenantID != "" {
		req.Header.Set("Xero-Tenant-Id", c.tenantID)
	}
	c.mu.Unlock()

	requestID := uuid.NewString()
	req.Header.Set("X-Request-Id", requestID)
	log.Debugf("%s %s [%s]", method, rawURL, requestID)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{
			StatusCode:    resp.StatusCode,
			Message:       errorDetail(data),
			CorrelationID: resp.Header.Get("Xero-Correlation-Id"),
		}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return nil
}

// errorDetail digs the most useful message out of an error body. The API is
// inconsistent: validation failures use Title/Detail, others use Message.
func errorDetail(data []byte) string {
	doc := gjson.ParseBytes(data)
	for _, path := range []string{"Detail", "Title", "Message", "error"} {
		if v := doc.Get(path); v.Exists() && v.String() != "" {
			return v.String()
		}
	}
	return strings.TrimSpace(string(data))
}

// fetchOptions translates invocation-level cache settings into per-call
// options. ttl is the operation's preferred TTL; an explicit --cache-ttl
// beats it.
func (c *Client) fetchOptions(ttl time.Duration) []cache.FetchOption {
	var opts []cache.FetchOption
	if c.cfg.CacheTTL > 0 {
		opts = append(opts, cache.WithTTL(c.cfg.CacheTTL))
	} else if ttl > 0 {
		opts = append(opts, cache.WithTTL(ttl))
	}
	if c.cfg.NoCache {
		opts = append(opts, cache.Bypass())
	}
	return opts
}

// cachedFetch is the typed read-through wrapper every query goes through.
// The cache stores any, so the type assertion recovers the concrete type for
// the caller.
func cachedFetch[T any](ctx context.Context, c *Client, op string, params map[string]any, ttl time.Duration, fetch func(context.Context) (T, error)) (T, error) {
	var zero T

	value, err := c.cfg.Cache.GetOrFetch(ctx, cache.Key(op, params),
		func(ctx context.Context) (any, error) { return fetch(ctx) },
		c.fetchOptions(ttl)...)
	if err != nil {
		return zero, err
	}

	result, ok := value.(T)
	if !ok {
		return zero, fmt.Errorf("cache entry for %s holds unexpected type %T", op, value)
	}
	return result, nil
}

// paginate drives page-numbered list endpoints. fetchPage returns one page;
// a short page ends the walk. limit <= 0 means unbounded.
func paginate[T any](ctx context.Context, limit int, fetchPage func(ctx context.Context, page int) ([]T, error)) ([]T, error) {
	var results []T

	for page := 1; ; page++ {
		items, err := fetchPage(ctx, page)
		if err != nil {
			return nil, err
		}

		results = append(results, items...)
		log.Debugf("page: %d, total: %d", page, len(results))

		if limit > 0 && len(results) >= limit {
			results = results[:limit]
			break
		}
		if len(items) < pageSize {
			break
		}
	}

	return results, nil
}

// errCtx builds the ErrorContext for FriendlyXero with whatever tenant is
// currently known.
func (c *Client) errCtx(operation, resource string) ErrorContext {
	c.mu.Lock()
	tenant := c.tenantID
	c.mu.Unlock()
	return ErrorContext{
		Tenant:    tenant,
		Operation: operation,
		Resource:  resource,
	}
}

// retryLogger adapts retryablehttp's leveled logger onto apex.
type retryLogger struct{}

func (retryLogger) Error(msg string, kv ...any) { log.Errorf("%s %v", msg, kv) }
func (retryLogger) Warn(msg string, kv ...any)  { log.Warnf("%s %v", msg, kv) }
func (retryLogger) Info(msg string, kv ...any)  { log.Infof("%s %v", msg, kv) }
func (retryLogger) Debug(msg string, kv ...any) { log.Debugf("%s %v", msg, kv) }
