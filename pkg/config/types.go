package config

import "time"

// Config is the full configuration for talking to one GraphQLZero-style API.
type Config struct {
	BaseURL    string            `yaml:"base_url" split_words:"true"`          // Required: scheme and host
	Endpoint   string            `yaml:"endpoint" split_words:"true"`          // Path of the GraphQL endpoint (default /api)
	Timeout    time.Duration     `yaml:"timeout" split_words:"true"`           // HTTP client timeout (default 30s)
	Headers    map[string]string `yaml:"headers,omitempty" split_words:"true"` // Extra request headers
	Auth       *Auth             `yaml:"auth,omitempty" ignored:"true"`        // Optional authentication
	RateLimit  RateLimit         `yaml:"rate_limit,omitempty" split_words:"true"`
	Pagination Pagination        `yaml:"pagination,omitempty" split_words:"true"`
	Fixtures   Fixtures          `yaml:"fixtures,omitempty" split_words:"true"`
	Logging    Logging           `yaml:"logging,omitempty" split_words:"true"`
}

// URL returns the full GraphQL endpoint URL.
func (c *Config) URL() string {
	return c.BaseURL + c.Endpoint
}

// Auth defines auth methods.
type Auth struct {
	Type   AuthType    `yaml:"type"`              // Required authentication type
	Basic  *BasicAuth  `yaml:"basic,omitempty"`   // Basic authentication
	APIKey *APIKeyAuth `yaml:"api_key,omitempty"` // API key authentication
	Bearer *BearerAuth `yaml:"bearer,omitempty"`  // Bearer token authentication
}

// AuthType defines current supported authentication types
type AuthType string

const (
	AuthTypeBasic  AuthType = "basic"
	AuthTypeAPIKey AuthType = "api_key"
	AuthTypeBearer AuthType = "bearer"
)

// BasicAuth contains auth credentials for the api
type BasicAuth struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// APIKeyAuth contains API details
type APIKeyAuth struct {
	Header     string `yaml:"header,omitempty"`      // Header name
	QueryParam string `yaml:"query_param,omitempty"` // Query parameter name
	Value      string `yaml:"value"`                 // API key value
}

// BearerAuth contains a static bearer token
type BearerAuth struct {
	Token string `yaml:"token"`
}

// RateLimit throttles outgoing requests. Zero RequestsPerSecond disables it.
type RateLimit struct {
	RequestsPerSecond float64 `yaml:"requests_per_second" split_words:"true"`
	Burst             int     `yaml:"burst" split_words:"true"`
}

// Pagination holds the page and limit used when a caller gives none.
type Pagination struct {
	Page  int `yaml:"page" split_words:"true"`
	Limit int `yaml:"limit" split_words:"true"`
}

// Fixtures points at seed record files.
type Fixtures struct {
	Users  string `yaml:"users" split_words:"true"`
	Albums string `yaml:"albums" split_words:"true"`
}

// Logging configures the slog handler.
type Logging struct {
	Level  string `yaml:"level" split_words:"true"`  // debug, info, warn, error
	Format string `yaml:"format" split_words:"true"` // text or json
}

// Defaults for a GraphQLZero setup.
const (
	DefaultBaseURL  = "https://graphqlzero.almansi.me"
	DefaultEndpoint = "/api"
	DefaultTimeout  = 30 * time.Second
)
