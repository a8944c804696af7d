package graphql

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/saturnines/zero-e2e/pkg/auth"
	"github.com/saturnines/zero-e2e/pkg/errors"
)

// requestBody is the JSON payload posted to the endpoint.
type requestBody struct {
	Query string `json:"query"`
}

// Builder constructs GraphQL POST requests.
type Builder struct {
	Endpoint    string
	Query       string
	Headers     map[string]string
	AuthHandler auth.Handler
}

// NewBuilder sets up a Builder for the full endpoint URL.
func NewBuilder(endpoint string, opts ...BuilderOption) *Builder {
	b := &Builder{Endpoint: endpoint}
	b.ApplyOptions(opts...)
	return b
}

// Build creates the *http.Request with a `{"query": ...}` JSON body.
func (b *Builder) Build(ctx context.Context) (*http.Request, error) {
	buf, err := json.Marshal(requestBody{Query: b.Query})
	if err != nil {
		return nil, errors.WrapError(err, errors.ErrHTTPRequest, "encode request body")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.Endpoint, bytes.NewReader(buf))
	if err != nil {
		return nil, errors.WrapError(err, errors.ErrHTTPRequest, fmt.Sprintf("create request for %s", b.Endpoint))
	}

	for k, v := range b.Headers {
		req.Header.Set(k, v)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	if b.AuthHandler != nil {
		if err := b.AuthHandler.ApplyAuth(req); err != nil {
			return nil, err
		}
	}
	return req, nil
}

// With returns a copy of b carrying query. The receiver is not modified, so
// one Builder can be shared by concurrent callers.
func (b *Builder) With(query string) *Builder {
	return &Builder{
		Endpoint:    b.Endpoint,
		Query:       query,
		Headers:     b.Headers,
		AuthHandler: b.AuthHandler,
	}
}
