// Package wiki talks to the encyclopedia's public search and page summary
// APIs. Responses are decoded into records whose fields may all be absent.
package wiki

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
)

const (
	DefaultBaseURL   = "https://en.wikipedia.org"
	DefaultUserAgent = "ParasiteAtlas/1.0 (catalog service)"
	DefaultTimeout   = 8 * time.Second

	searchPath  = "/w/api.php"
	summaryPath = "/api/rest_v1/page/summary/"

	searchLimit = 20
)

var (
	ErrNotFound    = errors.New("wiki page not found")
	ErrBadStatus   = errors.New("wiki bad status")
	ErrUnavailable = errors.New("wiki unavailable")
)

type Client struct {
	BaseURL   string
	UserAgent string
	HTTP      *http.Client
}

func NewClient(baseURL, userAgent string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		BaseURL:   strings.TrimRight(baseURL, "/"),
		UserAgent: userAgent,
		HTTP:      &http.Client{Timeout: timeout},
	}
}

// Search runs a full-text search over article namespace 0. A response
// without a query.search list yields no hits, not an error.
func (c *Client) Search(ctx context.Context, term string) ([]SearchHit, error) {
	q := url.Values{}
	q.Set("action", "query")
	q.Set("format", "json")
	q.Set("list", "search")
	q.Set("srsearch", term)
	q.Set("srlimit", fmt.Sprint(searchLimit))
	q.Set("srnamespace", "0")

	var resp searchResponse
	if err := c.getJSON(ctx, c.BaseURL+searchPath+"?"+q.Encode(), &resp); err != nil {
		return nil, err
	}
	if resp.Query == nil {
		return []SearchHit{}, nil
	}

	hits := make([]SearchHit, 0, len(resp.Query.Search))
	for _, h := range resp.Query.Search {
		if h.Title == nil || *h.Title == "" {
			continue
		}
		hits = append(hits, SearchHit{Title: *h.Title, PageID: h.PageID})
	}
	return hits, nil
}

// Summary fetches the REST page summary for title.
func (c *Client) Summary(ctx context.Context, title string) (Summary, error) {
	var s Summary
	if err := c.getJSON(ctx, c.BaseURL+summaryPath+url.PathEscape(title), &s); err != nil {
		return Summary{}, err
	}
	return s, nil
}

func (c *Client) getJSON(ctx context.Context, u string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.UserAgent)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		_, _ = io.Copy(io.Discard, resp.Body)
		return ErrNotFound
	default:
		_, _ = io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("%w: status=%d", ErrBadStatus, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", req.URL.Path, err)
	}
	return nil
}
