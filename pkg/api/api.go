// Package api exposes typed clients for the users and albums of a
// GraphQLZero-style API. Every call is one request; results carry the HTTP
// status and GraphQL errors next to the decoded payload.
package api

import (
	"log/slog"

	"github.com/saturnines/zero-e2e/pkg/config"
	"github.com/saturnines/zero-e2e/pkg/transport/graphql"
)

// Users is the users client.
type Users = Resource[User, CreateUserInput]

// Albums is the albums client.
type Albums = Resource[Album, CreateAlbumInput]

// API groups the resource clients sharing one executor.
type API struct {
	Users  *Users
	Albums *Albums
}

// New builds both clients on exec.
func New(exec Executor, logger *slog.Logger) *API {
	return &API{
		Users:  NewResource[User, CreateUserInput](exec, UserDocument, logger),
		Albums: NewResource[Album, CreateAlbumInput](exec, AlbumDocument, logger),
	}
}

// NewFromConfig builds a GraphQL client from cfg and the clients on top.
func NewFromConfig(cfg *config.Config, logger *slog.Logger, opts ...graphql.ClientOption) (*API, error) {
	client, err := graphql.NewClientFromConfig(cfg, logger, opts...)
	if err != nil {
		return nil, err
	}
	return New(client, logger), nil
}
