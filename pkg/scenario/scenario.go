// Package scenario holds the end-to-end checks run against a GraphQLZero
// endpoint. Scenarios run one at a time against a shared dataset and the
// records they create are deleted afterwards.
package scenario

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/saturnines/zero-e2e/pkg/api"
	"github.com/saturnines/zero-e2e/pkg/fixtures"
	"github.com/saturnines/zero-e2e/pkg/logging"
	"github.com/saturnines/zero-e2e/pkg/session"
)

// Env is what a scenario runs against.
type Env struct {
	API      *api.API
	Session  *session.Session
	Fixtures *fixtures.Set
	Logger   *slog.Logger
}

// NewEnv builds an Env with a fresh session.
func NewEnv(client *api.API, set *fixtures.Set, logger *slog.Logger) *Env {
	s := session.New(client, logger)
	return &Env{
		API:      client,
		Session:  s,
		Fixtures: set,
		Logger:   s.Logger(),
	}
}

// Scenario is one named check. Run returns the first failed expectation.
type Scenario struct {
	Name        string
	Description string
	Run         func(ctx context.Context, env *Env) error
}

// Outcome is the result of one scenario.
type Outcome struct {
	Name     string
	Err      error
	Duration time.Duration
}

// Passed reports whether the scenario succeeded.
func (o Outcome) Passed() bool {
	return o.Err == nil
}

// All returns every scenario in execution order.
func All() []Scenario {
	return []Scenario{
		FetchUserByID,
		CreateUsersFromFixtures,
		FetchAlbumByID,
		ListAllAlbums,
		PaginateAlbums,
		PaginateAlbumsPastEnd,
		CreateAlbumsFromFixtures,
		AlbumForExistingUser,
		AlbumForNewUser,
		AlbumForMissingUser,
		UserAlbumConsistency,
		MultipleAlbumsSameUser,
		AlbumInvalidUserID,
		RelationshipAfterUserCreate,
		BulkUserAlbums,
	}
}

// Select returns the named scenarios in execution order. No names selects
// all of them.
func Select(names ...string) ([]Scenario, error) {
	all := All()
	if len(names) == 0 {
		return all, nil
	}

	wanted := make(map[string]bool, len(names))
	for _, n := range names {
		wanted[n] = true
	}

	var out []Scenario
	for _, s := range all {
		if wanted[s.Name] {
			out = append(out, s)
			delete(wanted, s.Name)
		}
	}
	for n := range wanted {
		return nil, fmt.Errorf("unknown scenario %q", n)
	}
	return out, nil
}

// Run executes scenarios sequentially and then cleans up every record the
// session tracked. A failing scenario does not stop the ones after it.
func Run(ctx context.Context, env *Env, scenarios []Scenario) []Outcome {
	logger := logging.OrDiscard(env.Logger)
	outcomes := make([]Outcome, 0, len(scenarios))

	for _, s := range scenarios {
		start := time.Now()
		err := s.Run(ctx, env)
		o := Outcome{Name: s.Name, Err: err, Duration: time.Since(start)}
		outcomes = append(outcomes, o)

		if err != nil {
			logger.Error("scenario failed",
				slog.String("scenario", s.Name),
				slog.String("error", err.Error()))
			continue
		}
		logger.Info("scenario passed",
			slog.String("scenario", s.Name),
			slog.Duration("duration", o.Duration))
	}

	env.Session.Cleanup(context.WithoutCancel(ctx))
	return outcomes
}

// Failed counts failed outcomes.
func Failed(outcomes []Outcome) int {
	n := 0
	for _, o := range outcomes {
		if !o.Passed() {
			n++
		}
	}
	return n
}
