package httpclient

import (
	"log/slog"
	"net/http"
	"time"
)

// Option is a function that configures a Client
type Option func(*Client)

// WithBaseURL sets the base URL for the client
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithTimeout sets the timeout for requests
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
		c.timeoutSet = true
	}
}

// WithHeaders sets default headers for all requests
func WithHeaders(headers map[string]string) Option {
	return func(c *Client) {
		if c.headers == nil {
			c.headers = make(map[string]string)
		}
		// Make a copy of the headers to ensure immutability after creation
		for k, v := range headers {
			c.headers[k] = v
		}
	}
}

// WithMaxBodySize limits how many bytes of a response are read
func WithMaxBodySize(n int64) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxBodySize = n
		}
	}
}

// WithHTTPClient allows using a custom http.Client. Its timeout is kept
// unless WithTimeout is given too, in which case a copy carries it.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.client = client
		c.customClient = true
	}
}

// WithLogger adds a slog logger to the client for request/response logging
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}
