package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/saturnines/zero-e2e/pkg/api"
	"github.com/saturnines/zero-e2e/pkg/document"
	"github.com/saturnines/zero-e2e/pkg/transport/graphql"
)

func newRenderCmd() *cobra.Command {
	var (
		id          string
		numeric     bool
		page, limit int
		input       string
		check       bool
	)

	cmd := &cobra.Command{
		Use:   "render <user|album> <get|list|page|create|delete>",
		Short: "Print the document a call would send",
		Long: `Print the GraphQL document for one operation without sending it.
Create input is given as JSON, e.g. --input '{"title":"A","userId":1}'.
With --check the document is parsed and its root fields are printed as a
trailing comment. A syntax error fails the command.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				res      document.Resource
				newInput func() any
			)
			switch args[0] {
			case "user":
				res = api.UserDocument
				newInput = func() any { return &api.CreateUserInput{} }
			case "album":
				res = api.AlbumDocument
				newInput = func() any { return &api.CreateAlbumInput{} }
			default:
				return fmt.Errorf("unknown resource %q", args[0])
			}

			var op document.Operation
			switch args[1] {
			case "get":
				op = res.FetchByID(document.ParseID(id, numeric))
			case "list":
				op = res.List()
			case "page":
				op = res.ListPage(page, limit)
			case "create":
				in := newInput()
				if err := json.Unmarshal([]byte(input), in); err != nil {
					return fmt.Errorf("decode --input: %w", err)
				}
				fields, err := document.InputOf(in)
				if err != nil {
					return err
				}
				op = res.Create(fields)
			case "delete":
				op = res.Delete(id)
			default:
				return fmt.Errorf("unknown operation %q", args[1])
			}

			out := cmd.OutOrStdout()
			fmt.Fprint(out, op.Document)
			if !check {
				return nil
			}
			parsed, err := graphql.Parse(op.Document)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "# %s root fields: %s\n", op.Kind, strings.Join(graphql.RootFields(parsed), ", "))
			return nil
		},
	}

	cmd.Flags().StringVar(&id, "id", "1", "record id for get and delete")
	cmd.Flags().BoolVar(&numeric, "numeric", false, "render the id of get as a number")
	cmd.Flags().IntVar(&page, "page", 1, "page for the page operation")
	cmd.Flags().IntVar(&limit, "limit", 10, "limit for the page operation")
	cmd.Flags().StringVar(&input, "input", "{}", "JSON input for create")
	cmd.Flags().BoolVar(&check, "check", false, "parse the rendered document")
	return cmd
}
