package graphql

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/saturnines/zero-e2e/pkg/auth"
	"github.com/saturnines/zero-e2e/pkg/config"
	"github.com/saturnines/zero-e2e/pkg/errors"
	"github.com/saturnines/zero-e2e/pkg/logging"
)

// HTTPDoer is the minimal interface of *http.Client.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Client sends documents to one GraphQL endpoint. Each Execute is exactly
// one HTTP round trip; failures are returned to the caller, never retried.
type Client struct {
	doer      HTTPDoer
	builder   *Builder
	limiter   *rate.Limiter
	logger    *slog.Logger
	checkDocs bool
}

// NewClient creates a client posting to endpoint, the full URL of the API.
func NewClient(endpoint string, opts ...ClientOption) *Client {
	c := &Client{
		doer:    &http.Client{Timeout: config.DefaultTimeout},
		builder: NewBuilder(endpoint),
		logger:  logging.Discard(),
	}
	c.ApplyOptions(opts...)
	return c
}

// NewClientFromConfig wires endpoint, timeout, headers, auth and rate limit
// from cfg. Options are applied after the config.
func NewClientFromConfig(cfg *config.Config, logger *slog.Logger, opts ...ClientOption) (*Client, error) {
	handler, err := auth.New(cfg.Auth)
	if err != nil {
		return nil, err
	}

	base := []ClientOption{
		WithTimeout(cfg.Timeout),
		WithHeaders(cfg.Headers),
		WithLogger(logger),
		WithRateLimit(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst),
	}
	if handler != nil {
		base = append(base, WithAuthHandler(handler))
	}
	return NewClient(cfg.URL(), append(base, opts...)...), nil
}

// Endpoint returns the URL requests are posted to.
func (c *Client) Endpoint() string {
	return c.builder.Endpoint
}

// Execute posts doc as `{"query": doc}` and decodes the envelope. Non-200
// statuses come back in Response.Status, not as an error. GraphQL errors are
// logged at warn level and returned in Response.Errors.
func (c *Client) Execute(ctx context.Context, doc string) (*Response, error) {
	if c.checkDocs {
		if _, err := Parse(doc); err != nil {
			return nil, err
		}
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, errors.WrapError(err, errors.ErrHTTPRequest, "rate limit wait")
		}
	}

	req, err := c.builder.With(doc).Build(ctx)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	httpResp, err := c.doer.Do(req)
	if err != nil {
		return nil, errors.WrapError(err, errors.ErrHTTPRequest, fmt.Sprintf("POST %s", c.builder.Endpoint))
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, errors.WrapError(err, errors.ErrHTTPResponse, "read response body")
	}

	resp, err := decodeResponse(httpResp.StatusCode, body)
	if err != nil {
		c.logger.Error("graphql response is not JSON",
			slog.Int("status", httpResp.StatusCode),
			slog.Int("bytes", len(body)))
		return nil, err
	}

	c.logger.Debug("graphql request",
		slog.Int("status", resp.Status),
		slog.Duration("duration", time.Since(start)))

	if len(resp.Errors) > 0 {
		c.logger.Warn("graphql errors",
			slog.Int("status", resp.Status),
			slog.Int("count", len(resp.Errors)),
			slog.String("errors", resp.Errors.Error()))
	}
	return resp, nil
}

// ApplyOptions applies ClientOption functions in order.
func (c *Client) ApplyOptions(opts ...ClientOption) {
	for _, opt := range opts {
		opt(c)
	}
}
