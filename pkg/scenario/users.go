package scenario

import (
	"context"
	"fmt"
	"log/slog"
)

// FetchUserByID fetches a seeded user by textual id.
var FetchUserByID = Scenario{
	Name:        "fetch-user-by-id",
	Description: "fetch user 5 and check its id",
	Run: func(ctx context.Context, env *Env) error {
		res, err := env.API.Users.Get(ctx, "5")
		if err != nil {
			return err
		}
		env.Logger.Info("fetched user", slog.String("id", res.Data.ID), slog.String("name", res.Data.Name))
		return first(
			expectStatus("fetch user", res.Status),
			expectEqual("user id", "5", res.Data.ID),
		)
	},
}

// CreateUsersFromFixtures creates every fixture user.
var CreateUsersFromFixtures = Scenario{
	Name:        "create-users-from-fixtures",
	Description: "create each user of the seed set",
	Run: func(ctx context.Context, env *Env) error {
		if env.Fixtures == nil || len(env.Fixtures.Users) == 0 {
			return fmt.Errorf("no user fixtures loaded")
		}
		for _, in := range env.Fixtures.Users {
			res, err := env.Session.CreateUser(ctx, in)
			if err != nil {
				return err
			}
			env.Logger.Info("created user", slog.String("id", res.Data.ID), slog.String("username", in.Username))
			if err := first(
				expectStatus("create user "+in.Username, res.Status),
				expectDefined("created user "+in.Username, res.Data.ID),
			); err != nil {
				return err
			}
		}
		return nil
	},
}
