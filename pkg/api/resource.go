package api

import (
	"context"
	"log/slog"

	"github.com/saturnines/zero-e2e/pkg/document"
	"github.com/saturnines/zero-e2e/pkg/errors"
	"github.com/saturnines/zero-e2e/pkg/logging"
	"github.com/saturnines/zero-e2e/pkg/pagination"
	"github.com/saturnines/zero-e2e/pkg/transport/graphql"
)

// Executor sends one document. *graphql.Client implements it.
type Executor interface {
	Execute(ctx context.Context, doc string) (*graphql.Response, error)
}

// Result is the outcome of a single-record call. Found is false when
// data.<op> was missing or null.
type Result[T any] struct {
	Status int
	Data   T
	Found  bool
	Errors graphql.Errors
}

// ListResult is the outcome of an unpaginated list call.
type ListResult[T any] struct {
	Status int
	Items  []T
	Errors graphql.Errors
}

// PageResult is one page of a paginated list call.
type PageResult[T any] struct {
	Status     int
	Items      []T
	Pagination pagination.Metadata
	Errors     graphql.Errors
}

// Resource is the client for one entity kind. T is the payload and In the
// creation input.
type Resource[T any, In any] struct {
	exec   Executor
	doc    document.Resource
	logger *slog.Logger
}

// NewResource binds doc to exec.
func NewResource[T any, In any](exec Executor, doc document.Resource, logger *slog.Logger) *Resource[T, In] {
	return &Resource[T, In]{exec: exec, doc: doc, logger: logging.OrDiscard(logger)}
}

func (r *Resource[T, In]) send(ctx context.Context, op document.Operation) (*graphql.Response, error) {
	r.logger.Debug("graphql operation",
		slog.String("kind", string(op.Kind)),
		slog.String("operation", op.Name))
	return r.exec.Execute(ctx, op.Document)
}

// Get fetches one record. id may be a string, an integer or a document.ID.
func (r *Resource[T, In]) Get(ctx context.Context, id any) (Result[T], error) {
	return one[T](ctx, r, r.doc.FetchByID(id))
}

// Create sends create<Type> with the fields present in in.
func (r *Resource[T, In]) Create(ctx context.Context, in In) (Result[T], error) {
	input, err := document.InputOf(in)
	if err != nil {
		return Result[T]{}, errors.WrapError(err, errors.ErrValidation, "build "+r.doc.Singular+" input")
	}
	return one[T](ctx, r, r.doc.Create(input))
}

// Delete sends delete<Type>. Data is the boolean the server answered.
func (r *Resource[T, In]) Delete(ctx context.Context, id any) (Result[bool], error) {
	return one[bool](ctx, r, r.doc.Delete(id))
}

func one[V any, T any, In any](ctx context.Context, r *Resource[T, In], op document.Operation) (Result[V], error) {
	resp, err := r.send(ctx, op)
	if err != nil {
		return Result[V]{}, err
	}

	res := Result[V]{Status: resp.Status, Errors: resp.Errors}
	res.Found, err = resp.Decode(op.Name, &res.Data)
	if err != nil {
		return res, err
	}
	return res, nil
}

type listPayload[T any] struct {
	Data []T `json:"data"`
}

// List fetches every record without pagination. A missing payload yields
// an empty slice.
func (r *Resource[T, In]) List(ctx context.Context) (ListResult[T], error) {
	op := r.doc.List()
	resp, err := r.send(ctx, op)
	if err != nil {
		return ListResult[T]{}, err
	}

	res := ListResult[T]{Status: resp.Status, Errors: resp.Errors, Items: []T{}}
	var payload listPayload[T]
	if _, err := resp.Decode(op.Name, &payload); err != nil {
		return res, err
	}
	if payload.Data != nil {
		res.Items = payload.Data
	}
	return res, nil
}

// ListPage fetches one page. page and limit are sent unchanged; the
// metadata is derived from them and meta.totalCount, which counts as 0
// when missing.
func (r *Resource[T, In]) ListPage(ctx context.Context, page, limit int) (PageResult[T], error) {
	op := r.doc.ListPage(page, limit)
	resp, err := r.send(ctx, op)
	if err != nil {
		return PageResult[T]{}, err
	}

	res := PageResult[T]{Status: resp.Status, Errors: resp.Errors, Items: []T{}}

	var payload listPayload[T]
	if _, err := resp.Decode(op.Name, &payload); err != nil {
		return res, err
	}
	if payload.Data != nil {
		res.Items = payload.Data
	}

	total, _ := resp.LookupInt(op.Name + ".meta.totalCount")
	res.Pagination = pagination.Calculate(page, limit, total)
	return res, nil
}

// Walk calls fn for every page from page 1 until the metadata reports no
// next page, fn returns an error, or a page comes back without items.
func (r *Resource[T, In]) Walk(ctx context.Context, limit int, fn func(PageResult[T]) error) error {
	pager := pagination.NewPagePager(pagination.DefaultPage, limit)
	for {
		page, ok := pager.Next()
		if !ok {
			return nil
		}

		res, err := r.ListPage(ctx, page, pager.Limit())
		if err != nil {
			return err
		}
		pager.Update(res.Pagination.TotalCount)

		if err := fn(res); err != nil {
			return err
		}
		if len(res.Items) == 0 {
			return nil
		}
	}
}
