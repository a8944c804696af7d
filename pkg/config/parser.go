package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/saturnines/zero-e2e/pkg/errors"
)

// EnvPrefix prefixes the environment variables that override file values,
// e.g. ZERO_BASE_URL or ZERO_LOGGING_LEVEL.
const EnvPrefix = "ZERO"

type ValidationError struct {
	Field   string
	Message string
}

type Validator interface {
	Validate(cfg *Config) []ValidationError
}

// Returns the string representation of validation error
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is returned when one or more validators reject a config.
type ValidationErrors []ValidationError

func (es ValidationErrors) Error() string {
	msgs := make([]string, len(es))
	for i, e := range es {
		msgs[i] = e.Error()
	}
	return "validation errors: " + strings.Join(msgs, "; ")
}

// DefaultValueSetter fills in values the file left empty
type DefaultValueSetter interface {
	SetDefaults(cfg *Config)
}

// VariableExpander defines the interface for expanding variables
type VariableExpander interface {
	Expand(data []byte) []byte
}

// EnvExpander implements VariableExpander using environment variables
type EnvExpander struct{}

// Expand expands environment variables with the given data
func (e *EnvExpander) Expand(data []byte) []byte {
	expanded := os.Expand(string(data), os.Getenv)
	return []byte(expanded)
}

// Loader reads a Config from YAML, applies ZERO_* environment overrides,
// fills defaults and validates the result.
type Loader struct {
	expander      VariableExpander
	validators    []Validator
	defaultSetter DefaultValueSetter
	envPrefix     string
}

// NewLoader creates a new Loader with the given components
func NewLoader(
	expander VariableExpander,
	defaultSetter DefaultValueSetter,
	validators ...Validator,
) *Loader {
	return &Loader{
		expander:      expander,
		validators:    validators,
		defaultSetter: defaultSetter,
		envPrefix:     EnvPrefix,
	}
}

// NewDefaultLoader returns a Loader with env expansion, defaults and every
// built-in validator.
func NewDefaultLoader() *Loader {
	return NewLoader(
		&EnvExpander{},
		&Defaults{},
		&RequiredFieldValidator{},
		&URLValidator{},
		&PaginationValidator{},
		&AuthValidator{},
	)
}

// WithEnvPrefix changes the environment override prefix. An empty prefix
// disables overrides.
func (l *Loader) WithEnvPrefix(prefix string) *Loader {
	l.envPrefix = prefix
	return l
}

// Load a config from a YAML file. An empty path loads defaults and
// environment overrides only. Every error carries errors.ErrConfiguration.
func (l *Loader) Load(path string) (*Config, error) {
	if path == "" {
		return l.Parse(nil)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapError(err, errors.ErrConfiguration, "failed to read file")
	}

	return l.Parse(data)
}

// Parse parses a yaml config. ValidationErrors stay reachable with
// errors.As.
func (l *Loader) Parse(data []byte) (*Config, error) {
	if l.expander != nil {
		data = l.expander.Expand(data)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.WrapError(err, errors.ErrConfiguration, "failed to parse YAML")
	}

	if l.envPrefix != "" {
		if err := envconfig.Process(l.envPrefix, &cfg); err != nil {
			return nil, errors.WrapError(err, errors.ErrConfiguration, "failed to apply environment overrides")
		}
	}

	if l.defaultSetter != nil {
		l.defaultSetter.SetDefaults(&cfg)
	}

	var allErrors ValidationErrors
	for _, validator := range l.validators {
		allErrors = append(allErrors, validator.Validate(&cfg)...)
	}
	if len(allErrors) > 0 {
		return nil, errors.WrapError(allErrors, errors.ErrConfiguration, "invalid config")
	}

	return &cfg, nil
}

// Defaults implements DefaultValueSetter for Config
type Defaults struct{}

// SetDefaults sets default values for Config
func (d *Defaults) SetDefaults(cfg *Config) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if !strings.HasPrefix(cfg.Endpoint, "/") {
		cfg.Endpoint = "/" + cfg.Endpoint
	}

	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	if cfg.RateLimit.RequestsPerSecond > 0 && cfg.RateLimit.Burst <= 0 {
		cfg.RateLimit.Burst = 1
	}

	if cfg.Pagination.Page == 0 {
		cfg.Pagination.Page = 1
	}
	if cfg.Pagination.Limit == 0 {
		cfg.Pagination.Limit = 10
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
}

// RequiredFieldValidator checks that the endpoint can be addressed
type RequiredFieldValidator struct{}

// Validate checks that all required fields are present
func (v *RequiredFieldValidator) Validate(cfg *Config) []ValidationError {
	var errs []ValidationError

	if cfg.BaseURL == "" {
		errs = append(errs, ValidationError{Field: "base_url", Message: "is required"})
	}
	if cfg.Endpoint == "" {
		errs = append(errs, ValidationError{Field: "endpoint", Message: "is required"})
	}
	if cfg.Timeout < 0 {
		errs = append(errs, ValidationError{Field: "timeout", Message: "must not be negative"})
	}

	return errs
}

// URLValidator checks that base_url is an absolute http(s) URL
type URLValidator struct{}

// Validate parses base_url
func (v *URLValidator) Validate(cfg *Config) []ValidationError {
	if cfg.BaseURL == "" {
		return nil
	}

	u, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return []ValidationError{{Field: "base_url", Message: err.Error()}}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return []ValidationError{{Field: "base_url", Message: fmt.Sprintf("unsupported scheme %q", u.Scheme)}}
	}
	if u.Host == "" {
		return []ValidationError{{Field: "base_url", Message: "host is required"}}
	}
	return nil
}

// PaginationValidator validates the default paging values
type PaginationValidator struct{}

// Validate checks that default pagination is usable. Values passed
// explicitly to a list call are never validated.
func (v *PaginationValidator) Validate(cfg *Config) []ValidationError {
	var errs []ValidationError

	if cfg.Pagination.Page < 1 {
		errs = append(errs, ValidationError{Field: "pagination.page", Message: "must be at least 1"})
	}
	if cfg.Pagination.Limit <= 0 {
		errs = append(errs, ValidationError{Field: "pagination.limit", Message: "must be positive"})
	}
	if cfg.RateLimit.RequestsPerSecond < 0 {
		errs = append(errs, ValidationError{Field: "rate_limit.requests_per_second", Message: "must not be negative"})
	}

	return errs
}

// AuthValidator handles authentication validation
type AuthValidator struct{}

// Validate checks that authentication configuration is valid
func (v *AuthValidator) Validate(cfg *Config) []ValidationError {
	var errs []ValidationError

	// Skip validation if auth is not configured
	if cfg.Auth == nil {
		return errs
	}

	switch cfg.Auth.Type {
	case AuthTypeBasic:
		if cfg.Auth.Basic == nil {
			errs = append(errs, ValidationError{Field: "auth.basic", Message: "is required for basic auth"})
		} else {
			if cfg.Auth.Basic.Username == "" {
				errs = append(errs, ValidationError{Field: "auth.basic.username", Message: "is required for basic auth"})
			}
			if cfg.Auth.Basic.Password == "" {
				errs = append(errs, ValidationError{Field: "auth.basic.password", Message: "is required for basic auth"})
			}
		}
	case AuthTypeAPIKey:
		if cfg.Auth.APIKey == nil {
			errs = append(errs, ValidationError{Field: "auth.api_key", Message: "is required for api_key auth"})
		} else {
			if cfg.Auth.APIKey.Value == "" {
				errs = append(errs, ValidationError{Field: "auth.api_key.value", Message: "is required for api_key auth"})
			}
			if cfg.Auth.APIKey.Header == "" && cfg.Auth.APIKey.QueryParam == "" {
				errs = append(errs, ValidationError{Field: "auth.api_key", Message: "either header or query_param must be specified for api_key auth"})
			}
		}
	case AuthTypeBearer:
		if cfg.Auth.Bearer == nil || cfg.Auth.Bearer.Token == "" {
			errs = append(errs, ValidationError{Field: "auth.bearer.token", Message: "is required for bearer auth"})
		}
	default:
		errs = append(errs, ValidationError{Field: "auth.type", Message: fmt.Sprintf("unknown auth type: %s", cfg.Auth.Type)})
	}

	return errs
}
