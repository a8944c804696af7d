// Package zerotest runs an in-process stand-in for the GraphQLZero API. It
// answers the user and album documents the toolkit sends so tests and local
// runs need no network.
package zerotest

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/dgraph-io/gqlparser/v2/ast"
	"github.com/dgraph-io/gqlparser/v2/parser"
	"github.com/gorilla/mux"

	"github.com/saturnines/zero-e2e/pkg/logging"
	"github.com/saturnines/zero-e2e/pkg/transport/graphql"
)

// Path is the route the server answers on.
const Path = "/api"

const maxBodyBytes = 1 << 20

// Server serves POST /api against a Store.
type Server struct {
	store  *Store
	logger *slog.Logger
	router *mux.Router
}

// Option configures a Server.
type Option func(*Server)

// WithLogger logs every request at debug level.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewServer builds a server over store. A nil store is replaced by
// SeededStore().
func NewServer(store *Store, opts ...Option) *Server {
	if store == nil {
		store = SeededStore()
	}
	s := &Server{store: store, logger: logging.Discard()}
	for _, opt := range opts {
		opt(s)
	}

	r := mux.NewRouter()
	r.Use(s.logRequests)
	r.Methods(http.MethodPost).Path(Path).Name("graphql").HandlerFunc(s.handleGraphQL)
	s.router = r
	return s
}

// Store returns the backing store.
func (s *Server) Store() *Store {
	return s.store
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Debug("zerotest request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", rec.status),
			slog.Duration("duration", time.Since(start)))
	})
}

type request struct {
	Query         string         `json:"query"`
	OperationName string         `json:"operationName"`
	Variables     map[string]any `json:"variables"`
}

type response struct {
	Data   map[string]any `json:"data,omitempty"`
	Errors graphql.Errors `json:"errors,omitempty"`
}

func (s *Server) handleGraphQL(w http.ResponseWriter, r *http.Request) {
	var req request
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, response{Errors: graphql.Errors{{Message: "invalid request body: " + err.Error()}}})
		return
	}
	if req.Query == "" {
		writeJSON(w, http.StatusBadRequest, response{Errors: graphql.Errors{{Message: "Must provide query string."}}})
		return
	}

	doc, gqlErr := parser.ParseQuery(&ast.Source{Input: req.Query})
	if gqlErr != nil {
		e := graphql.Error{Message: gqlErr.Message}
		for _, loc := range gqlErr.Locations {
			e.Locations = append(e.Locations, graphql.Location{Line: loc.Line, Column: loc.Column})
		}
		writeJSON(w, http.StatusBadRequest, response{Errors: graphql.Errors{e}})
		return
	}

	op := pickOperation(doc, req.OperationName)
	if op == nil {
		writeJSON(w, http.StatusBadRequest, response{Errors: graphql.Errors{{Message: "Unknown operation."}}})
		return
	}

	res := &resolver{store: s.store, vars: req.Variables}
	out := response{Data: make(map[string]any, len(op.SelectionSet))}
	for _, sel := range op.SelectionSet {
		f, ok := sel.(*ast.Field)
		if !ok {
			out.Errors = append(out.Errors, graphql.Error{Message: "fragments are not supported"})
			continue
		}
		key := responseKey(f)
		v, err := res.resolveRoot(op.Operation, f)
		if err != nil {
			out.Data[key] = nil
			e := graphql.Error{Message: err.Error(), Path: []any{key}}
			if f.Position != nil {
				e.Locations = []graphql.Location{{Line: f.Position.Line, Column: f.Position.Column}}
			}
			out.Errors = append(out.Errors, e)
			continue
		}
		out.Data[key] = v
	}

	if len(out.Errors) > 0 {
		s.logger.Debug("zerotest resolver errors", slog.String("errors", out.Errors.Error()))
	}
	writeJSON(w, http.StatusOK, out)
}

func pickOperation(doc *ast.QueryDocument, name string) *ast.OperationDefinition {
	if name != "" {
		return doc.Operations.ForName(name)
	}
	if len(doc.Operations) == 0 {
		return nil
	}
	return doc.Operations[0]
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
