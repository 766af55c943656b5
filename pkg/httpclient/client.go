package httpclient

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// DefaultMaxBodySize caps how much of a response body is read.
const DefaultMaxBodySize int64 = 32 << 20

// ErrBodyTooLarge is returned when a response exceeds the configured size.
var ErrBodyTooLarge = errors.New("response body too large")

// HTTPClient defines the interface for HTTP client operations
type HTTPClient interface {
	Get(ctx context.Context, path string, headers map[string]string) (*Response, error)
	Post(ctx context.Context, path string, body []byte, headers map[string]string) (*Response, error)
	Do(ctx context.Context, method, path string, body io.Reader, headers map[string]string) (*Response, error)
	BaseURL() string
	Timeout() time.Duration
	Logger() *slog.Logger
}

// Response is a fully read HTTP response. The body is already closed.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// IsSuccess reports whether the status code is in the 2xx range.
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Client represents an HTTP client with configurable settings
type Client struct {
	client      *http.Client
	baseURL     string
	headers     map[string]string
	timeout     time.Duration
	maxBodySize int64
	logger      *slog.Logger

	// customClient is set by WithHTTPClient, timeoutSet by WithTimeout
	customClient bool
	timeoutSet   bool
}

// New creates a new HTTP client with the provided options
func New(opts ...Option) HTTPClient {
	client := &Client{
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		headers:     make(map[string]string),
		timeout:     30 * time.Second,
		maxBodySize: DefaultMaxBodySize,
	}

	for _, opt := range opts {
		opt(client)
	}

	switch {
	case !client.customClient:
		client.client.Timeout = client.timeout
	case client.timeoutSet:
		// the caller's client is copied, never modified
		custom := *client.client
		custom.Timeout = client.timeout
		client.client = &custom
	default:
		client.timeout = client.client.Timeout
	}

	if client.headers == nil {
		client.headers = make(map[string]string)
	}

	return client
}

// Get performs an HTTP GET request
func (c *Client) Get(ctx context.Context, path string, headers map[string]string) (*Response, error) {
	return c.do(ctx, http.MethodGet, path, nil, headers)
}

// Post sends body as is. Callers set Content-Type through headers.
func (c *Client) Post(ctx context.Context, path string, body []byte, headers map[string]string) (*Response, error) {
	return c.do(ctx, http.MethodPost, path, bytes.NewReader(body), headers)
}

// Do performs an HTTP request with the given method, path, and body
func (c *Client) Do(ctx context.Context, method, path string, body io.Reader, headers map[string]string) (*Response, error) {
	return c.do(ctx, method, path, body, headers)
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, headers map[string]string) (*Response, error) {
	url := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	if body != nil && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/octet-stream")
	}

	if c.logger != nil {
		c.logger.DebugContext(ctx, "HTTP request", "method", method, "url", url)
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		if c.logger != nil {
			c.logger.DebugContext(ctx, "HTTP request failed", "method", method, "url", url, "error", err)
		}
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	data, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if int64(len(data)) > c.maxBodySize {
		return nil, fmt.Errorf("%w: limit is %d bytes", ErrBodyTooLarge, c.maxBodySize)
	}

	if c.logger != nil {
		c.logger.DebugContext(ctx, "HTTP response",
			"method", method,
			"url", url,
			"statusCode", resp.StatusCode,
			"duration", time.Since(start),
		)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       data,
	}, nil
}

// BaseURL returns the base URL of the client
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Timeout returns the timeout setting of the client
func (c *Client) Timeout() time.Duration {
	return c.timeout
}

// Logger returns the logger of the client
func (c *Client) Logger() *slog.Logger {
	return c.logger
}
