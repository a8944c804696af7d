package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saturnines/zero-e2e/pkg/api"
	"github.com/saturnines/zero-e2e/pkg/document"
	"github.com/saturnines/zero-e2e/pkg/transport/graphql"
	"github.com/saturnines/zero-e2e/pkg/zerotest/zerotesthttp"
)

func TestSession_CreateAndCleanup(t *testing.T) {
	srv, endpoint := zerotesthttp.Start(t)
	s := New(api.New(graphql.NewClient(endpoint), nil), nil)

	_, err := uuid.Parse(s.RunID)
	require.NoError(t, err)

	ctx := context.Background()
	user, err := s.CreateUser(ctx, api.CreateUserInput{Name: "Bulk Test User", Username: "bulktest", Email: "bulk@test.com"})
	require.NoError(t, err)

	album, err := s.CreateAlbum(ctx, api.CreateAlbumInput{Title: "Bulk Album 1", UserID: document.StringID(user.Data.ID)})
	require.NoError(t, err)

	users, albums := s.Tracked()
	assert.Equal(t, []string{user.Data.ID}, users)
	assert.Equal(t, []string{album.Data.ID}, albums)

	report := s.Cleanup(ctx)
	assert.Equal(t, Report{Deleted: 2}, report)

	_, ok := srv.Store().User(user.Data.ID)
	assert.False(t, ok)
	_, ok = srv.Store().Album(album.Data.ID)
	assert.False(t, ok)

	users, albums = s.Tracked()
	assert.Empty(t, users)
	assert.Empty(t, albums)
}

func TestSession_CleanupDeletesAlbumsFirst(t *testing.T) {
	var (
		mu    sync.Mutex
		order []string
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Query string `json:"query"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		mu.Lock()
		order = append(order, body.Query)
		mu.Unlock()
		w.Write([]byte(`{"data":{"deleteAlbum":true,"deleteUser":false}}`))
	}))
	defer server.Close()

	s := New(api.New(graphql.NewClient(server.URL), nil), nil)
	s.TrackUser("11")
	s.TrackAlbum("101")
	s.TrackAlbum("102")

	report := s.Cleanup(context.Background())
	assert.Equal(t, Report{Deleted: 2, Failed: 1}, report)

	require.Len(t, order, 3)
	assert.Contains(t, order[0], `deleteAlbum(id: "101")`)
	assert.Contains(t, order[1], `deleteAlbum(id: "102")`)
	assert.Contains(t, order[2], `deleteUser(id: "11")`)
}

func TestSession_CleanupNeverFails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	s := New(api.New(graphql.NewClient(url), nil), nil)
	s.TrackAlbum("1")
	s.TrackUser("1")

	report := s.Cleanup(context.Background())
	assert.Equal(t, Report{Failed: 2}, report)
}

func TestSession_ConcurrentTracking(t *testing.T) {
	s := New(nil, nil)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.TrackAlbum("a")
			s.TrackUser("u")
		}()
	}
	wg.Wait()

	users, albums := s.Tracked()
	assert.Len(t, users, 50)
	assert.Len(t, albums, 50)
}
