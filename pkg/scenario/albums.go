package scenario

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/saturnines/zero-e2e/pkg/pagination"
)

// FetchAlbumByID fetches a seeded album by textual id.
var FetchAlbumByID = Scenario{
	Name:        "fetch-album-by-id",
	Description: "fetch album 5 and check its id",
	Run: func(ctx context.Context, env *Env) error {
		res, err := env.API.Albums.Get(ctx, "5")
		if err != nil {
			return err
		}
		env.Logger.Info("fetched album", slog.String("id", res.Data.ID), slog.String("title", res.Data.Title))
		return first(
			expectStatus("fetch album", res.Status),
			expectEqual("album id", "5", res.Data.ID),
		)
	},
}

// ListAllAlbums lists albums without pagination.
var ListAllAlbums = Scenario{
	Name:        "list-all-albums",
	Description: "list albums and expect at least one",
	Run: func(ctx context.Context, env *Env) error {
		res, err := env.API.Albums.List(ctx)
		if err != nil {
			return err
		}
		if err := expectStatus("list albums", res.Status); err != nil {
			return err
		}
		if len(res.Items) == 0 {
			return fmt.Errorf("list albums: expected at least one album")
		}
		env.Logger.Info("listed albums", slog.Int("count", len(res.Items)))
		return nil
	},
}

// PaginateAlbums requests the first page of five albums.
var PaginateAlbums = Scenario{
	Name:        "paginate-albums",
	Description: "first page of 5 albums with derived metadata",
	Run: func(ctx context.Context, env *Env) error {
		const page, limit = 1, 5
		res, err := env.API.Albums.ListPage(ctx, page, limit)
		if err != nil {
			return err
		}
		if err := expectStatus("paginate albums", res.Status); err != nil {
			return err
		}

		m := res.Pagination
		env.Logger.Info("paginated albums",
			slog.Int("items", len(res.Items)),
			slog.Int("totalCount", m.TotalCount),
			slog.Int("totalPages", m.TotalPages))

		if len(res.Items) > limit {
			return fmt.Errorf("paginate albums: expected at most %d albums, got %d", limit, len(res.Items))
		}
		if m.TotalCount >= limit && len(res.Items) != limit {
			return fmt.Errorf("paginate albums: expected a full page of %d, got %d", limit, len(res.Items))
		}
		return first(
			expectEqual("currentPage", page, m.CurrentPage),
			expectEqual("limit", limit, m.Limit),
			expectEqual("totalPages", pagination.TotalPages(m.TotalCount, limit), m.TotalPages),
			expectEqual("hasNextPage", m.CurrentPage < m.TotalPages, m.HasNextPage),
			expectEqual("hasPreviousPage", false, m.HasPreviousPage),
		)
	},
}

// PaginateAlbumsPastEnd requests a page far beyond the dataset.
var PaginateAlbumsPastEnd = Scenario{
	Name:        "paginate-albums-past-end",
	Description: "page 999 is empty, has no next page and has a previous one",
	Run: func(ctx context.Context, env *Env) error {
		const page, limit = 999, 10
		res, err := env.API.Albums.ListPage(ctx, page, limit)
		if err != nil {
			return err
		}
		if err := expectStatus("paginate albums", res.Status); err != nil {
			return err
		}
		if len(res.Items) != 0 {
			return fmt.Errorf("paginate albums past end: expected no albums, got %d", len(res.Items))
		}
		m := res.Pagination
		return first(
			expectEqual("currentPage", page, m.CurrentPage),
			expectEqual("hasNextPage", false, m.HasNextPage),
			expectEqual("hasPreviousPage", true, m.HasPreviousPage),
		)
	},
}

// CreateAlbumsFromFixtures creates every fixture album.
var CreateAlbumsFromFixtures = Scenario{
	Name:        "create-albums-from-fixtures",
	Description: "create each album of the seed set",
	Run: func(ctx context.Context, env *Env) error {
		if env.Fixtures == nil || len(env.Fixtures.Albums) == 0 {
			return fmt.Errorf("no album fixtures loaded")
		}
		for _, in := range env.Fixtures.Albums {
			res, err := env.Session.CreateAlbum(ctx, in)
			if err != nil {
				return err
			}
			env.Logger.Info("created album", slog.String("id", res.Data.ID), slog.String("title", in.Title))
			if err := first(
				expectStatus("create album "+in.Title, res.Status),
				expectDefined("created album "+in.Title, res.Data.ID),
				expectEqual("album title", in.Title, res.Data.Title),
			); err != nil {
				return err
			}
		}
		return nil
	},
}
