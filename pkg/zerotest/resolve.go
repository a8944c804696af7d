package zerotest

import (
	"fmt"
	"strconv"

	"github.com/dgraph-io/gqlparser/v2/ast"
)

// resolver answers one request against a store.
type resolver struct {
	store *Store
	vars  map[string]any
}

// object resolves the fields selected on one value.
type object func(f *ast.Field) (any, error)

// project builds the response map for set. Only plain fields are
// supported; the documents this server answers never use fragments.
func project(set ast.SelectionSet, obj object) (map[string]any, error) {
	out := make(map[string]any, len(set))
	for _, sel := range set {
		f, ok := sel.(*ast.Field)
		if !ok {
			return nil, fmt.Errorf("fragments are not supported")
		}
		v, err := obj(f)
		if err != nil {
			return nil, err
		}
		out[responseKey(f)] = v
	}
	return out, nil
}

func responseKey(f *ast.Field) string {
	if f.Alias != "" {
		return f.Alias
	}
	return f.Name
}

func unknownField(typeName string, f *ast.Field) error {
	return fmt.Errorf("Cannot query field %q on type %q.", f.Name, typeName)
}

// nullable returns nil for an absent record so its fields serialize as null.
func nullable(present bool, v string) any {
	if !present {
		return nil
	}
	return v
}

func (s *resolver) userObject(u User, present bool) object {
	return func(f *ast.Field) (any, error) {
		switch f.Name {
		case "__typename":
			return "User", nil
		case "id":
			return nullable(present, u.ID), nil
		case "name":
			return nullable(present, u.Name), nil
		case "username":
			return nullable(present, u.Username), nil
		case "email":
			return nullable(present, u.Email), nil
		case "phone":
			return nullable(present, u.Phone), nil
		case "website":
			return nullable(present, u.Website), nil
		case "albums":
			var albums []Album
			if present {
				albums = s.store.Albums(u.ID)
			}
			return s.albumPage(f, albums)
		}
		return nil, unknownField("User", f)
	}
}

func (s *resolver) albumObject(a Album, present bool) object {
	return func(f *ast.Field) (any, error) {
		switch f.Name {
		case "__typename":
			return "Album", nil
		case "id":
			return nullable(present, a.ID), nil
		case "title":
			return nullable(present, a.Title), nil
		case "user":
			owner, ok := s.store.User(a.UserID)
			return project(f.SelectionSet, s.userObject(owner, present && ok))
		}
		return nil, unknownField("Album", f)
	}
}

func (s *resolver) albumPage(f *ast.Field, albums []Album) (any, error) {
	objs := make([]object, 0, len(albums))
	for _, a := range albums {
		objs = append(objs, s.albumObject(a, true))
	}
	return s.page(f, objs)
}

func (s *resolver) userPage(f *ast.Field, users []User) (any, error) {
	objs := make([]object, 0, len(users))
	for _, u := range users {
		objs = append(objs, s.userObject(u, true))
	}
	return s.page(f, objs)
}

// page resolves a `{ data meta }` list payload, applying
// options.paginate from the field arguments.
func (s *resolver) page(f *ast.Field, items []object) (any, error) {
	total := len(items)
	pageNum, limit, err := paginateArgs(f, s.vars)
	if err != nil {
		return nil, err
	}
	items = slicePage(items, pageNum, limit)

	return project(f.SelectionSet, func(pf *ast.Field) (any, error) {
		switch pf.Name {
		case "__typename":
			return "Page", nil
		case "data":
			list := make([]any, 0, len(items))
			for _, it := range items {
				m, err := project(pf.SelectionSet, it)
				if err != nil {
					return nil, err
				}
				list = append(list, m)
			}
			return list, nil
		case "meta":
			return project(pf.SelectionSet, func(mf *ast.Field) (any, error) {
				if mf.Name == "totalCount" {
					return total, nil
				}
				return nil, unknownField("PageMetadata", mf)
			})
		}
		return nil, unknownField("Page", pf)
	})
}

// slicePage returns one page of items. A non-positive limit disables
// paging and a page below 1 is page 1.
func slicePage[T any](items []T, page, limit int) []T {
	if limit <= 0 {
		return items
	}
	page = max(page, 1)
	pages := len(items) / limit
	if len(items)%limit != 0 {
		pages++
	}
	if page-1 >= pages {
		return nil
	}
	start := (page - 1) * limit
	end := start + min(limit, len(items)-start)
	return items[start:end]
}

func paginateArgs(f *ast.Field, vars map[string]any) (page, limit int, err error) {
	arg := f.Arguments.ForName("options")
	if arg == nil {
		return 0, 0, nil
	}
	raw, err := arg.Value.Value(vars)
	if err != nil {
		return 0, 0, err
	}
	options, _ := raw.(map[string]any)
	paginate, _ := options["paginate"].(map[string]any)
	if paginate == nil {
		return 0, 0, nil
	}
	if page, err = toInt(paginate["page"]); err != nil {
		return 0, 0, fmt.Errorf("paginate.page: %w", err)
	}
	if limit, err = toInt(paginate["limit"]); err != nil {
		return 0, 0, fmt.Errorf("paginate.limit: %w", err)
	}
	return page, limit, nil
}

func toInt(v any) (int, error) {
	switch x := v.(type) {
	case nil:
		return 0, nil
	case int64:
		return int(x), nil
	case int:
		return x, nil
	case float64:
		return int(x), nil
	case string:
		return strconv.Atoi(x)
	}
	return 0, fmt.Errorf("expected an integer, got %T", v)
}

// idArg reads an ID argument given as string or integer.
func idArg(f *ast.Field, vars map[string]any, name string) (string, error) {
	arg := f.Arguments.ForName(name)
	if arg == nil {
		return "", fmt.Errorf("Field %q argument %q of type \"ID!\" is required but not provided.", f.Name, name)
	}
	v, err := arg.Value.Value(vars)
	if err != nil {
		return "", err
	}
	return idString(v), nil
}

func idString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	}
	return fmt.Sprint(v)
}

func inputArg(f *ast.Field, vars map[string]any) (map[string]any, error) {
	arg := f.Arguments.ForName("input")
	if arg == nil {
		return nil, fmt.Errorf("Field %q argument \"input\" is required but not provided.", f.Name)
	}
	v, err := arg.Value.Value(vars)
	if err != nil {
		return nil, err
	}
	in, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("Field %q argument \"input\" must be an object.", f.Name)
	}
	return in, nil
}

func str(in map[string]any, key string) string {
	if v, ok := in[key].(string); ok {
		return v
	}
	return ""
}

// resolveRoot answers one root field of a query or mutation.
func (s *resolver) resolveRoot(op ast.Operation, f *ast.Field) (any, error) {
	if op == ast.Mutation {
		return s.resolveMutation(f)
	}

	switch f.Name {
	case "__typename":
		return "Query", nil
	case "user":
		id, err := idArg(f, s.vars, "id")
		if err != nil {
			return nil, err
		}
		u, ok := s.store.User(id)
		return project(f.SelectionSet, s.userObject(u, ok))
	case "users":
		return s.userPage(f, s.store.Users())
	case "album":
		id, err := idArg(f, s.vars, "id")
		if err != nil {
			return nil, err
		}
		a, ok := s.store.Album(id)
		return project(f.SelectionSet, s.albumObject(a, ok))
	case "albums":
		return s.albumPage(f, s.store.Albums(""))
	}
	return nil, unknownField("Query", f)
}

func (s *resolver) resolveMutation(f *ast.Field) (any, error) {
	switch f.Name {
	case "__typename":
		return "Mutation", nil
	case "createUser":
		in, err := inputArg(f, s.vars)
		if err != nil {
			return nil, err
		}
		u := s.store.AddUser(User{
			Name:     str(in, "name"),
			Username: str(in, "username"),
			Email:    str(in, "email"),
			Phone:    str(in, "phone"),
			Website:  str(in, "website"),
		})
		return project(f.SelectionSet, s.userObject(u, true))
	case "createAlbum":
		in, err := inputArg(f, s.vars)
		if err != nil {
			return nil, err
		}
		a := s.store.AddAlbum(Album{Title: str(in, "title"), UserID: idString(in["userId"])})
		return project(f.SelectionSet, s.albumObject(a, true))
	case "deleteUser":
		id, err := idArg(f, s.vars, "id")
		if err != nil {
			return nil, err
		}
		return s.store.DeleteUser(id), nil
	case "deleteAlbum":
		id, err := idArg(f, s.vars, "id")
		if err != nil {
			return nil, err
		}
		return s.store.DeleteAlbum(id), nil
	}
	return nil, unknownField("Mutation", f)
}
