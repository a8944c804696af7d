package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/saturnines/zero-e2e/pkg/fixtures"
	"github.com/saturnines/zero-e2e/pkg/session"
)

func newSeedCmd(a *app) *cobra.Command {
	var (
		usersPath, albumsPath string
		cleanup               bool
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create the fixture users and albums",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if usersPath == "" {
				usersPath = a.cfg.Fixtures.Users
			}
			if albumsPath == "" {
				albumsPath = a.cfg.Fixtures.Albums
			}
			set, err := fixtures.Load(usersPath, albumsPath)
			if err != nil {
				return err
			}

			client, err := a.api()
			if err != nil {
				return err
			}
			s := session.New(client, a.logger)
			ctx := cmd.Context()

			failed := 0
			for _, in := range set.Users {
				res, err := s.CreateUser(ctx, in)
				if err != nil {
					return err
				}
				if res.Status != 200 || res.Data.ID == "" {
					failed++
					s.Logger().Warn("user not created", slog.String("username", in.Username), slog.Int("status", res.Status))
				}
			}
			for _, in := range set.Albums {
				res, err := s.CreateAlbum(ctx, in)
				if err != nil {
					return err
				}
				if res.Status != 200 || res.Data.ID == "" {
					failed++
					s.Logger().Warn("album not created", slog.String("title", in.Title), slog.Int("status", res.Status))
				}
			}

			users, albums := s.Tracked()
			fmt.Fprintf(cmd.OutOrStdout(), "run %s: created %d users and %d albums\n", s.RunID, len(users), len(albums))

			if cleanup {
				report := s.Cleanup(ctx)
				fmt.Fprintf(cmd.OutOrStdout(), "cleanup: %d deleted, %d failed\n", report.Deleted, report.Failed)
			}
			if failed > 0 {
				return fmt.Errorf("%d records were not created", failed)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&usersPath, "users", "", "users fixture file (.json, .yaml); built-in set when unset")
	cmd.Flags().StringVar(&albumsPath, "albums", "", "albums fixture file (.json, .yaml); built-in set when unset")
	cmd.Flags().BoolVar(&cleanup, "cleanup", false, "delete the created records afterwards")
	return cmd
}
