// Package session tracks the records a run creates so they can be deleted
// when the run ends.
package session

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/saturnines/zero-e2e/pkg/api"
	"github.com/saturnines/zero-e2e/pkg/logging"
)

// Session is the context of one run. Tracking is safe for concurrent use.
type Session struct {
	RunID string

	api    *api.API
	logger *slog.Logger

	mu     sync.Mutex
	users  []string
	albums []string
}

// New starts a session with a fresh run id.
func New(client *api.API, logger *slog.Logger) *Session {
	runID := uuid.NewString()
	return &Session{
		RunID:  runID,
		api:    client,
		logger: logging.WithRun(logging.OrDiscard(logger), runID),
	}
}

// API returns the clients the session creates records with.
func (s *Session) API() *api.API {
	return s.api
}

// Logger returns the session logger, tagged with the run id.
func (s *Session) Logger() *slog.Logger {
	return s.logger
}

// CreateUser creates a user and tracks it when the server assigned an id.
func (s *Session) CreateUser(ctx context.Context, in api.CreateUserInput) (api.Result[api.User], error) {
	res, err := s.api.Users.Create(ctx, in)
	if err == nil && res.Data.ID != "" {
		s.TrackUser(res.Data.ID)
	}
	return res, err
}

// CreateAlbum creates an album and tracks it when the server assigned an id.
func (s *Session) CreateAlbum(ctx context.Context, in api.CreateAlbumInput) (api.Result[api.Album], error) {
	res, err := s.api.Albums.Create(ctx, in)
	if err == nil && res.Data.ID != "" {
		s.TrackAlbum(res.Data.ID)
	}
	return res, err
}

// TrackUser records a user id for cleanup.
func (s *Session) TrackUser(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = append(s.users, id)
}

// TrackAlbum records an album id for cleanup.
func (s *Session) TrackAlbum(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.albums = append(s.albums, id)
}

// Tracked returns copies of the tracked user and album ids.
func (s *Session) Tracked() (users, albums []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.users...), append([]string(nil), s.albums...)
}

// Report summarizes a cleanup.
type Report struct {
	Deleted int
	Failed  int
}

// Cleanup deletes tracked albums, then tracked users, and forgets them.
// Failures are logged and counted, never returned.
func (s *Session) Cleanup(ctx context.Context) Report {
	s.mu.Lock()
	users, albums := s.users, s.albums
	s.users, s.albums = nil, nil
	s.mu.Unlock()

	s.logger.Info("cleaning up",
		slog.Int("albums", len(albums)),
		slog.Int("users", len(users)))

	var report Report
	for _, id := range albums {
		res, err := s.api.Albums.Delete(ctx, id)
		s.record(&report, "album", id, res, err)
	}
	for _, id := range users {
		res, err := s.api.Users.Delete(ctx, id)
		s.record(&report, "user", id, res, err)
	}

	s.logger.Info("cleanup completed",
		slog.Int("deleted", report.Deleted),
		slog.Int("failed", report.Failed))
	return report
}

func (s *Session) record(report *Report, kind, id string, res api.Result[bool], err error) {
	if err != nil {
		report.Failed++
		s.logger.Warn("delete failed",
			slog.String("kind", kind),
			slog.String("id", id),
			slog.String("error", err.Error()))
		return
	}
	if !res.Data {
		report.Failed++
		s.logger.Warn("delete not confirmed",
			slog.String("kind", kind),
			slog.String("id", id),
			slog.Int("status", res.Status))
		return
	}
	report.Deleted++
	s.logger.Debug("deleted",
		slog.String("kind", kind),
		slog.String("id", id),
		slog.Int("status", res.Status))
}
