package auth

import (
	"fmt"
	"sync"

	"github.com/saturnines/zero-e2e/pkg/config"
	"github.com/saturnines/zero-e2e/pkg/errors"
)

// Creator builds a Handler from its config block.
type Creator func(*config.Auth) (Handler, error)

// Registry maps auth types to creators.
type Registry struct {
	mu       sync.RWMutex
	creators map[config.AuthType]Creator
}

// NewRegistry returns a registry holding the basic, api_key and bearer
// creators.
func NewRegistry() *Registry {
	r := &Registry{creators: make(map[config.AuthType]Creator)}
	r.Register(config.AuthTypeBasic, func(c *config.Auth) (Handler, error) {
		if c.Basic == nil {
			return nil, missing("basic")
		}
		return NewBasicAuth(c.Basic.Username, c.Basic.Password), nil
	})
	r.Register(config.AuthTypeAPIKey, func(c *config.Auth) (Handler, error) {
		if c.APIKey == nil {
			return nil, missing("api_key")
		}
		return NewAPIKeyAuth(c.APIKey.Header, c.APIKey.QueryParam, c.APIKey.Value), nil
	})
	r.Register(config.AuthTypeBearer, func(c *config.Auth) (Handler, error) {
		if c.Bearer == nil {
			return nil, missing("bearer")
		}
		return NewBearerAuth(c.Bearer.Token), nil
	})
	return r
}

func missing(block string) error {
	return errors.WrapError(
		fmt.Errorf("%s configuration is required", block),
		errors.ErrConfiguration,
		"create "+block+" auth",
	)
}

// Register adds or replaces the creator for authType.
func (r *Registry) Register(authType config.AuthType, creator Creator) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.creators[authType] = creator
}

// Create builds the handler for cfg. A nil cfg yields a nil handler and no
// error: requests go out unauthenticated.
func (r *Registry) Create(cfg *config.Auth) (Handler, error) {
	if cfg == nil {
		return nil, nil
	}

	r.mu.RLock()
	creator, ok := r.creators[cfg.Type]
	r.mu.RUnlock()

	if !ok {
		return nil, errors.WrapError(
			fmt.Errorf("unsupported auth type: %s", cfg.Type),
			errors.ErrConfiguration,
			"invalid auth type",
		)
	}
	return creator(cfg)
}

var defaultRegistry = NewRegistry()

// Register adds a creator to the package registry.
func Register(authType config.AuthType, creator Creator) {
	defaultRegistry.Register(authType, creator)
}

// New builds a handler from the package registry.
func New(cfg *config.Auth) (Handler, error) {
	return defaultRegistry.Create(cfg)
}
