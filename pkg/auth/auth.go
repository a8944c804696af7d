// Package auth attaches credentials to outgoing GraphQL requests. The public
// GraphQLZero API needs none; handlers exist for gateways and proxies placed
// in front of it.
package auth

import (
	"encoding/base64"
	"fmt"
	"net/http"

	"github.com/saturnines/zero-e2e/pkg/errors"
)

// Handler mutates a request before it is sent.
type Handler interface {
	ApplyAuth(req *http.Request) error
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(req *http.Request) error

// ApplyAuth calls f(req).
func (f HandlerFunc) ApplyAuth(req *http.Request) error {
	return f(req)
}

// APIKeyAuth sends a static key as a header, a query parameter, or both.
type APIKeyAuth struct {
	HeaderName string // e.g. "X-API-Key"
	QueryParam string // e.g. "api_key"
	Value      string
}

// NewAPIKeyAuth creates an API key handler.
func NewAPIKeyAuth(headerName, queryParam, value string) *APIKeyAuth {
	return &APIKeyAuth{
		HeaderName: headerName,
		QueryParam: queryParam,
		Value:      value,
	}
}

// ApplyAuth sets the key on the request.
func (a *APIKeyAuth) ApplyAuth(req *http.Request) error {
	if a.Value == "" {
		return errors.WrapError(fmt.Errorf("API key value is required"), errors.ErrAuthentication, "apply api key auth")
	}
	if a.HeaderName == "" && a.QueryParam == "" {
		return errors.WrapError(
			fmt.Errorf("either header name or query parameter name is required"),
			errors.ErrAuthentication,
			"apply api key auth",
		)
	}

	if a.HeaderName != "" {
		req.Header.Set(a.HeaderName, a.Value)
	}
	if a.QueryParam != "" {
		query := req.URL.Query()
		query.Set(a.QueryParam, a.Value)
		req.URL.RawQuery = query.Encode()
	}
	return nil
}

func (a *APIKeyAuth) String() string {
	if a.HeaderName != "" {
		return fmt.Sprintf("APIKeyAuth(header: %s)", a.HeaderName)
	}
	return fmt.Sprintf("APIKeyAuth(query: %s)", a.QueryParam)
}

// BearerAuth sends `Authorization: Bearer <token>`.
type BearerAuth struct {
	Token string
}

// NewBearerAuth creates a bearer token handler.
func NewBearerAuth(token string) *BearerAuth {
	return &BearerAuth{Token: token}
}

// ApplyAuth sets the Authorization header.
func (b *BearerAuth) ApplyAuth(req *http.Request) error {
	if b.Token == "" {
		return errors.WrapError(fmt.Errorf("token is required"), errors.ErrAuthentication, "apply bearer auth")
	}
	req.Header.Set("Authorization", "Bearer "+b.Token)
	return nil
}

// String never includes the token.
func (b *BearerAuth) String() string {
	return "BearerAuth(token: [REDACTED])"
}

// BasicAuth sends HTTP basic credentials. An empty password is allowed.
type BasicAuth struct {
	Username string
	Password string
}

// NewBasicAuth creates a basic auth handler.
func NewBasicAuth(username, password string) *BasicAuth {
	return &BasicAuth{Username: username, Password: password}
}

// ApplyAuth sets the Authorization header.
func (b *BasicAuth) ApplyAuth(req *http.Request) error {
	if b.Username == "" {
		return errors.WrapError(fmt.Errorf("username is required"), errors.ErrAuthentication, "apply basic auth")
	}
	encoded := base64.StdEncoding.EncodeToString([]byte(b.Username + ":" + b.Password))
	req.Header.Set("Authorization", "Basic "+encoded)
	return nil
}

func (b *BasicAuth) String() string {
	return fmt.Sprintf("BasicAuth(username: %s)", b.Username)
}
