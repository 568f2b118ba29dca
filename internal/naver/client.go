// Package naver wraps the Naver Book Search API, the canonical bibliographic
// index the rest of the tool resolves against.
package naver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/lehigh-university-libraries/bookid/internal/extract"
)

const (
	// DefaultBaseURL is the book search endpoint.
	DefaultBaseURL = "https://openapi.naver.com/v1/search/book.json"

	defaultHTTPTimeout   = 10 * time.Second
	defaultRetryAttempts = 5
	defaultRetryInterval = 1 * time.Second
)

// ErrRateLimited marks a lookup abandoned after exhausting the bounded retry
// budget on HTTP 429 responses. It is distinguishable from an empty result set.
var ErrRateLimited = errors.New("rate limited")

// StatusError reports a non-200, non-429 response from the search API.
// These are terminal for the current lookup; only 429 is retried.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("naver search: http %d: %s", e.StatusCode, strings.TrimSpace(e.Body))
}

// Book is one result item from the search API. Titles arrive with <b> markup
// around matched terms; the client strips it before anything downstream sees
// the value. ISBN may hold a 10-digit and/or 13-digit token joined by
// whitespace.
type Book struct {
	Title     string
	Author    string
	Publisher string
	Pubdate   string
	Price     string
	ISBN      string
}

// Client issues authenticated queries against the search API with bounded
// retry on rate-limit responses. It performs no caching; memoization belongs
// to the resolution cache one level up.
type Client struct {
	baseURL      string
	clientID     string
	clientSecret string
	httpClient   *http.Client

	retryMaxAttempts int
	retryInterval    time.Duration
	sleeper          func(time.Duration)
}

// Option customizes the client.
type Option func(*Client)

// WithBaseURL overrides the search endpoint (used by tests).
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = baseURL
		}
	}
}

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithRetryPolicy overrides the rate-limit retry budget: maximum attempt count
// and the fixed sleep between attempts.
func WithRetryPolicy(maxAttempts int, interval time.Duration) Option {
	return func(c *Client) {
		if maxAttempts > 0 {
			c.retryMaxAttempts = maxAttempts
		}
		if interval >= 0 {
			c.retryInterval = interval
		}
	}
}

// WithSleeper overrides how retry sleeps are performed (useful for tests).
func WithSleeper(sleeper func(time.Duration)) Option {
	return func(c *Client) {
		if sleeper != nil {
			c.sleeper = sleeper
		}
	}
}

// NewClient constructs a search client for the supplied credential pair.
func NewClient(clientID, clientSecret string, opts ...Option) *Client {
	c := &Client{
		baseURL:          DefaultBaseURL,
		clientID:         strings.TrimSpace(clientID),
		clientSecret:     strings.TrimSpace(clientSecret),
		httpClient:       &http.Client{Timeout: defaultHTTPTimeout},
		retryMaxAttempts: defaultRetryAttempts,
		retryInterval:    defaultRetryInterval,
		sleeper:          time.Sleep,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type searchResponse struct {
	Items []struct {
		Title     string `json:"title"`
		Author    string `json:"author"`
		Publisher string `json:"publisher"`
		Pubdate   string `json:"pubdate"`
		Price     string `json:"price"`
		ISBN      string `json:"isbn"`
	} `json:"items"`
}

// Search issues a single query and returns the result items in API order.
// The slice may be empty; that is not an error. HTTP 429 is retried with a
// fixed sleep up to the configured attempt budget, every other failure is
// returned immediately.
func (c *Client) Search(ctx context.Context, query string, display int) ([]Book, error) {
	endpoint, err := c.buildURL(query, display)
	if err != nil {
		return nil, err
	}

	for attempt := 1; attempt <= c.retryMaxAttempts; attempt++ {
		books, retryable, err := c.searchOnce(ctx, endpoint)
		if err == nil {
			return books, nil
		}
		if !retryable {
			return nil, err
		}
		if attempt < c.retryMaxAttempts {
			c.sleeper(c.retryInterval)
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
	}

	return nil, fmt.Errorf("naver search: %w after %d attempts", ErrRateLimited, c.retryMaxAttempts)
}

// LookupISBN13 fetches the canonical record for a 13-digit identifier.
// Returns nil when the index has no entry for it.
func (c *Client) LookupISBN13(ctx context.Context, isbn13 string) (*Book, error) {
	books, err := c.Search(ctx, isbn13, 1)
	if err != nil {
		return nil, err
	}
	if len(books) == 0 {
		return nil, nil
	}
	return &books[0], nil
}

func (c *Client) buildURL(query string, display int) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("naver search: parse base url: %w", err)
	}
	q := url.Values{}
	q.Set("query", query)
	q.Set("display", strconv.Itoa(display))
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func (c *Client) searchOnce(ctx context.Context, endpoint string) ([]Book, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, false, fmt.Errorf("naver search: new request: %w", err)
	}
	req.Header.Set("X-Naver-Client-Id", c.clientID)
	req.Header.Set("X-Naver-Client-Secret", c.clientSecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, false, fmt.Errorf("naver search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, true, ErrRateLimited
	}

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, false, &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var parsed searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, false, fmt.Errorf("naver search: decode response: %w", err)
	}

	books := make([]Book, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		books = append(books, Book{
			Title:     strings.TrimSpace(extract.StripMarkup(item.Title)),
			Author:    strings.TrimSpace(item.Author),
			Publisher: strings.TrimSpace(item.Publisher),
			Pubdate:   strings.TrimSpace(item.Pubdate),
			Price:     strings.TrimSpace(item.Price),
			ISBN:      strings.TrimSpace(item.ISBN),
		})
	}
	return books, false, nil
}
