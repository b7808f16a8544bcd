// Package client is the atlas's view of the catalog service. It keeps its
// own short-lived copy of recent answers, separate from the server's cache.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"ParasiteAtlas/internal/cache"
	"ParasiteAtlas/internal/catalog"
)

const (
	DefaultBaseURL = "http://localhost:3002"
	DefaultTimeout = 10 * time.Second

	SearchStaleAfter     = 5 * time.Minute
	CategoriesStaleAfter = 30 * time.Minute

	queryCacheItems = 256
	maxBody         = 4 << 20
)

var (
	ErrBadStatus   = errors.New("catalog bad status")
	ErrUnavailable = errors.New("catalog unavailable")
)

type Client struct {
	BaseURL string
	HTTP    *http.Client

	queries *cache.Ristretto
}

func New(baseURL string, timeout time.Duration) (*Client, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if u, err := url.Parse(baseURL); err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("bad catalog url %q", baseURL)
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	q, err := cache.NewRistretto(queryCacheItems)
	if err != nil {
		return nil, err
	}

	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: timeout},
		queries: q,
	}, nil
}

func (c *Client) Close() error {
	return c.queries.Close()
}

// Search asks for entries matching query. An empty category or "all" means
// no filter.
func (c *Client) Search(ctx context.Context, query, category string) ([]catalog.Entry, error) {
	v := url.Values{}
	v.Set("q", query)
	if category != "" && category != catalog.CategoryAll {
		v.Set("category", category)
	}

	var out []catalog.Entry
	if err := c.getCached(ctx, "/parasites/search?"+v.Encode(), SearchStaleAfter, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Categories(ctx context.Context) ([]string, error) {
	var out []string
	if err := c.getCached(ctx, "/parasites/categories", CategoriesStaleAfter, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get fetches a single entry; found is false when the service answered null.
func (c *Client) Get(ctx context.Context, id string) (e catalog.Entry, found bool, err error) {
	var out *catalog.Entry
	if err := c.getJSON(ctx, "/parasites/"+url.PathEscape(id), &out); err != nil {
		return catalog.Entry{}, false, err
	}
	if out == nil {
		return catalog.Entry{}, false, nil
	}
	return *out, true, nil
}

func (c *Client) getCached(ctx context.Context, path string, staleAfter time.Duration, out any) error {
	if raw, ok, _ := c.queries.Get(ctx, path); ok {
		return json.Unmarshal(raw, out)
	}

	raw, err := c.fetch(ctx, path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}

	_ = c.queries.Set(ctx, path, raw, staleAfter)
	return nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	raw, err := c.fetch(ctx, path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func (c *Client) fetch(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: status=%d", ErrBadStatus, resp.StatusCode)
	}

	return io.ReadAll(io.LimitReader(resp.Body, maxBody))
}
