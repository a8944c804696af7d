package main

import (
	"github.com/spf13/cobra"

	"github.com/saturnines/zero-e2e/pkg/api"
	"github.com/saturnines/zero-e2e/pkg/document"
	"github.com/saturnines/zero-e2e/pkg/pagination"
	"github.com/saturnines/zero-e2e/pkg/transport/graphql"
)

// output is what every resource command prints.
type output struct {
	Status     int                  `json:"status"`
	Data       any                  `json:"data"`
	Pagination *pagination.Metadata `json:"pagination,omitempty"`
	Errors     graphql.Errors       `json:"errors,omitempty"`
}

func resultOutput[T any](res api.Result[T]) output {
	out := output{Status: res.Status, Errors: res.Errors}
	if res.Found {
		out.Data = res.Data
	}
	return out
}

func newUserCmd(a *app) *cobra.Command {
	var in api.CreateUserInput
	cmd := resourceCmd(a, "user", func(c *api.API) *api.Users { return c.Users },
		func(create *cobra.Command) {
			create.Flags().StringVar(&in.Name, "name", "", "user name")
			create.Flags().StringVar(&in.Username, "username", "", "user handle")
			create.Flags().StringVar(&in.Email, "email", "", "email address")
			create.Flags().StringVar(&in.Phone, "phone", "", "phone number, omitted when empty")
			create.Flags().StringVar(&in.Website, "website", "", "website, omitted when empty")
			_ = create.MarkFlagRequired("name")
			_ = create.MarkFlagRequired("username")
			_ = create.MarkFlagRequired("email")
		},
		func() (api.CreateUserInput, error) { return in, nil },
	)
	return cmd
}

func newAlbumCmd(a *app) *cobra.Command {
	var (
		title   string
		userID  string
		numeric bool
	)
	cmd := resourceCmd(a, "album", func(c *api.API) *api.Albums { return c.Albums },
		func(create *cobra.Command) {
			create.Flags().StringVar(&title, "title", "", "album title")
			create.Flags().StringVar(&userID, "user-id", "", "owner id")
			create.Flags().BoolVar(&numeric, "numeric", false, "send the owner id as a number")
			_ = create.MarkFlagRequired("title")
			_ = create.MarkFlagRequired("user-id")
		},
		func() (api.CreateAlbumInput, error) {
			return api.CreateAlbumInput{Title: title, UserID: document.ParseID(userID, numeric)}, nil
		},
	)
	return cmd
}

// resourceCmd builds `<name> get|create|list|delete` for one resource.
func resourceCmd[T any, In any](
	a *app,
	name string,
	pick func(*api.API) *api.Resource[T, In],
	createFlags func(*cobra.Command),
	input func() (In, error),
) *cobra.Command {
	cmd := &cobra.Command{
		Use:   name,
		Short: "Query and mutate " + name + "s",
	}

	resource := func() (*api.Resource[T, In], error) {
		client, err := a.api()
		if err != nil {
			return nil, err
		}
		return pick(client), nil
	}

	var numericID bool
	get := &cobra.Command{
		Use:   "get <id>",
		Short: "Fetch one " + name + " by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := resource()
			if err != nil {
				return err
			}
			res, err := r.Get(cmd.Context(), document.ParseID(args[0], numericID))
			if err != nil {
				return err
			}
			return printJSON(cmd, resultOutput(res))
		},
	}
	get.Flags().BoolVar(&numericID, "numeric", false, "send the id as a number")

	create := &cobra.Command{
		Use:   "create",
		Short: "Create a " + name,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := resource()
			if err != nil {
				return err
			}
			in, err := input()
			if err != nil {
				return err
			}
			res, err := r.Create(cmd.Context(), in)
			if err != nil {
				return err
			}
			return printJSON(cmd, resultOutput(res))
		},
	}
	createFlags(create)

	var (
		page, limit int
		walk        bool
	)
	list := &cobra.Command{
		Use:   "list",
		Short: "List " + name + "s, optionally one page at a time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := resource()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("page") {
				page = a.cfg.Pagination.Page
			}
			if !cmd.Flags().Changed("limit") {
				limit = a.cfg.Pagination.Limit
			}

			switch {
			case walk:
				return walkAll(cmd, r, limit)
			case cmd.Flags().Changed("page") || cmd.Flags().Changed("limit"):
				res, err := r.ListPage(cmd.Context(), page, limit)
				if err != nil {
					return err
				}
				return printJSON(cmd, output{Status: res.Status, Data: res.Items, Pagination: &res.Pagination, Errors: res.Errors})
			default:
				res, err := r.List(cmd.Context())
				if err != nil {
					return err
				}
				return printJSON(cmd, output{Status: res.Status, Data: res.Items, Errors: res.Errors})
			}
		},
	}
	list.Flags().IntVar(&page, "page", pagination.DefaultPage, "page number, sent as given")
	list.Flags().IntVar(&limit, "limit", pagination.DefaultLimit, "page size, sent as given")
	list.Flags().BoolVar(&walk, "all", false, "walk every page with --limit sized pages")

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a " + name + " by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := resource()
			if err != nil {
				return err
			}
			res, err := r.Delete(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd, resultOutput(res))
		},
	}

	cmd.AddCommand(get, create, list, del)
	return cmd
}

func walkAll[T any, In any](cmd *cobra.Command, r *api.Resource[T, In], limit int) error {
	var (
		items []T
		last  api.PageResult[T]
		errs  graphql.Errors
	)
	err := r.Walk(cmd.Context(), limit, func(p api.PageResult[T]) error {
		items = append(items, p.Items...)
		errs = append(errs, p.Errors...)
		last = p
		return nil
	})
	if err != nil {
		return err
	}
	return printJSON(cmd, output{Status: last.Status, Data: items, Pagination: &last.Pagination, Errors: errs})
}
