package youtube

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/api/googleapi"
)

const (
	defaultBaseURL = "https://www.googleapis.com"
	searchPath     = "/youtube/v3/search"
)

// HTTPClient interface for making HTTP requests (allows injection for testing).
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient HTTPClient) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithBaseURL sets a custom base URL (useful for testing).
func WithBaseURL(url string) ClientOption {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithRateLimiter paces consecutive page requests. A nil limiter disables pacing.
func WithRateLimiter(limiter *rate.Limiter) ClientOption {
	return func(c *Client) {
		c.limiter = limiter
	}
}

// WithMaxPages stops pagination after n pages. Zero or less means no cap.
func WithMaxPages(n int) ClientOption {
	return func(c *Client) {
		c.maxPages = n
	}
}

// Client is a YouTube Data API search client authenticated by API key.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient HTTPClient
	limiter    *rate.Limiter
	maxPages   int
}

// NewClient creates a new YouTube API client with the given API key.
func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// FetchAll runs a keyword search and follows continuation tokens until the
// last page. Items are returned in API order. Any classified failure aborts
// pagination and discards the pages already fetched.
func (c *Client) FetchAll(ctx context.Context, params SearchParameters) ([]RawItem, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	items := make([]RawItem, 0, params.MaxResults)
	pageToken := ""
	for page := 1; ; page++ {
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return nil, otherError("request cancelled", err)
			}
		}

		resp, err := c.fetchPage(ctx, params, pageToken)
		if err != nil {
			return nil, err
		}
		items = append(items, resp.Items...)

		slog.Debug("youtube search page fetched",
			slog.Int("page", page),
			slog.Int("items", len(resp.Items)),
			slog.Bool("has_next", resp.NextPageToken != ""))

		if resp.NextPageToken == "" {
			break
		}
		if c.maxPages > 0 && page >= c.maxPages {
			slog.Info("youtube search stopped at page cap", slog.Int("max_pages", c.maxPages))
			break
		}
		pageToken = resp.NextPageToken
	}

	return items, nil
}

func (c *Client) fetchPage(ctx context.Context, params SearchParameters, pageToken string) (*searchPage, error) {
	body, err := c.doRequest(ctx, c.searchURL(params, pageToken))
	if err != nil {
		return nil, err
	}

	var raw searchResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, otherError("malformed search response", fmt.Errorf("failed to parse search response: %w", err))
	}
	if raw.Error != nil {
		return nil, classify(raw.Error)
	}
	if raw.Items == nil {
		return nil, otherError("search response has no items field", nil)
	}

	return &searchPage{Items: *raw.Items, NextPageToken: raw.NextPageToken}, nil
}

func (c *Client) searchURL(params SearchParameters, pageToken string) string {
	q := url.Values{}
	q.Set("key", c.apiKey)
	q.Set("q", params.Query)
	q.Set("part", "snippet")
	q.Set("type", "video")
	q.Set("maxResults", fmt.Sprintf("%d", params.MaxResults))
	q.Set("order", string(params.Order))
	q.Set("publishedAfter", params.PublishedAfter.UTC().Format(time.RFC3339))
	q.Set("publishedBefore", params.PublishedBefore.UTC().Format(time.RFC3339))
	if pageToken != "" {
		q.Set("pageToken", pageToken)
	}
	return c.baseURL + searchPath + "?" + q.Encode()
}

func (c *Client) doRequest(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, otherError("failed to create request", err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// The URL carries the API key; report the cause without it.
		var uerr *url.Error
		if errors.As(err, &uerr) {
			err = uerr.Err
		}
		return nil, otherError(err.Error(), err)
	}
	defer func() { _ = resp.Body.Close() }()

	if err := googleapi.CheckResponse(resp); err != nil {
		if gerr, ok := err.(*googleapi.Error); ok {
			return nil, classify(gerr)
		}
		return nil, otherError("unexpected error response", err)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, otherError("failed to read response", err)
	}

	return body, nil
}

// API response types (private - implementation detail)

type searchPage struct {
	Items         []RawItem
	NextPageToken string
}

type searchResponse struct {
	Items         *[]RawItem       `json:"items"`
	NextPageToken string           `json:"nextPageToken"`
	Error         *googleapi.Error `json:"error"`
}
