// Package vikunja is a thin client for the Vikunja REST API (/api/v1).
//
// The client never deletes tasks; the only DELETE it issues removes a label
// from a task. All mutations mirror Vikunja's verb mapping: PUT creates,
// POST updates.
package vikunja

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	apiPrefix = "/api/v1"

	defaultTimeout = 30 * time.Second

	// taskPageSize is the page size for project and task listings.
	taskPageSize = 100

	// labelPageSize is the page size for label listings. Labels are global
	// per user, so one big page usually covers them all.
	labelPageSize = 250
)

// Client talks to a single Vikunja instance using a Bearer API token.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	userAgent  string
	logger     *log.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithUserAgent sets the User-Agent header sent on every request.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithLogger enables verbose request logging.
func WithLogger(l *log.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// NewClient creates a client for the Vikunja instance at baseURL.
// Trailing slashes on baseURL are ignored.
func NewClient(baseURL, token string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, fmt.Errorf("base URL cannot be empty")
	}
	if strings.TrimSpace(token) == "" {
		return nil, fmt.Errorf("API token cannot be empty")
	}

	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// do issues a single JSON API request. A nil payload sends no body; a nil
// out discards the response body. Non-2xx responses become *APIError.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, payload, out interface{}) error {
	u := c.baseURL + apiPrefix + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal request body for %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return fmt.Errorf("failed to create request for %s %s: %w", method, path, err)
	}

	requestID := uuid.New().String()
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	if c.logger != nil {
		c.logger.Printf("%s %s (request %s)", method, u, requestID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request %s %s failed: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response for %s %s: %w", method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return parseAPIError(method, path, requestID, resp.StatusCode, raw)
	}

	if out == nil || len(raw) == 0 {
		return nil
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to parse response for %s %s: %w", method, path, err)
	}

	return nil
}

// pageQuery builds the standard pagination query parameters.
func pageQuery(page, perPage int) url.Values {
	q := url.Values{}
	q.Set("page", fmt.Sprintf("%d", page))
	q.Set("per_page", fmt.Sprintf("%d", perPage))
	return q
}

// normalizeTitle trims and lowercases a title for case-insensitive lookups.
func normalizeTitle(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
