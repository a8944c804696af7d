package graphql

import (
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/saturnines/zero-e2e/pkg/auth"
)

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithHeader adds a header to every request.
func WithHeader(key, value string) BuilderOption {
	return func(b *Builder) {
		if b.Headers == nil {
			b.Headers = make(map[string]string)
		}
		b.Headers[key] = value
	}
}

// ApplyOptions applies BuilderOption functions in order.
func (b *Builder) ApplyOptions(opts ...BuilderOption) {
	for _, opt := range opts {
		opt(b)
	}
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPDoer swaps the underlying HTTPDoer.
func WithHTTPDoer(doer HTTPDoer) ClientOption {
	return func(c *Client) {
		c.doer = doer
	}
}

// WithTimeout sets the timeout of the HTTP client when it is an
// *http.Client. Zero keeps the current timeout.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		if timeout <= 0 {
			return
		}
		if httpClient, ok := c.doer.(*http.Client); ok {
			httpClient.Timeout = timeout
		}
	}
}

// WithHeaders adds headers to every request.
func WithHeaders(headers map[string]string) ClientOption {
	return func(c *Client) {
		for k, v := range headers {
			WithHeader(k, v)(c.builder)
		}
	}
}

// WithAuthHandler authenticates every request with h.
func WithAuthHandler(h auth.Handler) ClientOption {
	return func(c *Client) {
		c.builder.AuthHandler = h
	}
}

// WithRateLimit caps the request rate. A non-positive rate disables limiting.
func WithRateLimit(requestsPerSecond float64, burst int) ClientOption {
	return func(c *Client) {
		if requestsPerSecond <= 0 {
			c.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), burst)
	}
}

// WithDocumentCheck parses every document before it is sent and fails
// locally on syntax errors.
func WithDocumentCheck(enabled bool) ClientOption {
	return func(c *Client) {
		c.checkDocs = enabled
	}
}

// WithLogger sets the logger. A nil logger discards.
func WithLogger(l *slog.Logger) ClientOption {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}
