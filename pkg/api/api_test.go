package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saturnines/zero-e2e/pkg/api"
	"github.com/saturnines/zero-e2e/pkg/config"
	"github.com/saturnines/zero-e2e/pkg/document"
	"github.com/saturnines/zero-e2e/pkg/errors"
	"github.com/saturnines/zero-e2e/pkg/pagination"
	"github.com/saturnines/zero-e2e/pkg/transport/graphql"
	"github.com/saturnines/zero-e2e/pkg/zerotest"
	"github.com/saturnines/zero-e2e/pkg/zerotest/zerotesthttp"
)

func newAPI(t *testing.T) (*api.API, *zerotest.Server) {
	t.Helper()
	srv, endpoint := zerotesthttp.Start(t)
	return api.New(graphql.NewClient(endpoint, graphql.WithDocumentCheck(true)), nil), srv
}

func TestUsers_Get(t *testing.T) {
	client, _ := newAPI(t)
	ctx := context.Background()

	for _, id := range []any{"5", 5, document.IntID(5)} {
		res, err := client.Users.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, res.Status)
		assert.True(t, res.Found)
		assert.Equal(t, "5", res.Data.ID)
		assert.Equal(t, "Kamren", res.Data.Username)
	}
}

func TestUsers_CreateWithoutOptionalFields(t *testing.T) {
	client, srv := newAPI(t)

	res, err := client.Users.Create(context.Background(), api.CreateUserInput{
		Name:     "Romeo Santos",
		Username: "Bachata King",
		Email:    "romeo@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.Status)
	assert.NotEmpty(t, res.Data.ID)
	assert.Equal(t, "Romeo Santos", res.Data.Name)

	stored, ok := srv.Store().User(res.Data.ID)
	require.True(t, ok)
	assert.Empty(t, stored.Phone)
	assert.Empty(t, stored.Website)
}

func TestAlbums_CreateForExistingUser(t *testing.T) {
	client, _ := newAPI(t)

	res, err := client.Albums.Create(context.Background(), api.CreateAlbumInput{
		Title:  "Existing User's Album",
		UserID: document.StringID("1"),
	})
	require.NoError(t, err)

	name, ok := res.Data.OwnerName()
	require.True(t, ok)
	assert.Equal(t, "Leanne Graham", name)
	assert.Equal(t, "Existing User's Album", res.Data.Title)
}

func TestAlbums_GetMissing(t *testing.T) {
	client, _ := newAPI(t)

	res, err := client.Albums.Get(context.Background(), "424242")
	require.NoError(t, err)
	assert.True(t, res.Found)
	assert.Empty(t, res.Data.ID)
	_, ok := res.Data.OwnerName()
	assert.False(t, ok)
}

func TestAlbums_List(t *testing.T) {
	client, _ := newAPI(t)

	res, err := client.Albums.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.Status)
	assert.Len(t, res.Items, 100)
}

func TestAlbums_ListPage(t *testing.T) {
	client, _ := newAPI(t)
	ctx := context.Background()

	tests := []struct {
		name      string
		page      int
		limit     int
		wantItems int
		want      pagination.Metadata
	}{
		{
			name: "first page", page: 1, limit: 5, wantItems: 5,
			want: pagination.Metadata{CurrentPage: 1, Limit: 5, TotalCount: 100, TotalPages: 20, HasNextPage: true},
		},
		{
			name: "past the end", page: 999, limit: 10, wantItems: 0,
			want: pagination.Metadata{CurrentPage: 999, Limit: 10, TotalCount: 100, TotalPages: 10, HasPreviousPage: true},
		},
		{
			name: "page zero is shown as one", page: 0, limit: 10, wantItems: 10,
			want: pagination.Metadata{CurrentPage: 1, Limit: 10, TotalCount: 100, TotalPages: 10, HasNextPage: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := client.Albums.ListPage(ctx, tt.page, tt.limit)
			require.NoError(t, err)
			assert.Len(t, res.Items, tt.wantItems)
			if diff := cmp.Diff(tt.want, res.Pagination); diff != "" {
				t.Errorf("pagination mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAlbums_ListPageMissingMeta(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"albums":{"data":[{"id":"1","title":"t","user":{"name":"n"}}]}}}`))
	}))
	defer server.Close()

	client := api.New(graphql.NewClient(server.URL), nil)
	res, err := client.Albums.ListPage(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.Len(t, res.Items, 1)
	assert.Equal(t, 0, res.Pagination.TotalCount)
	assert.Equal(t, 0, res.Pagination.TotalPages)
	assert.False(t, res.Pagination.HasNextPage)
}

func TestAlbums_ListMissingData(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"albums":null},"errors":[{"message":"upstream failed"}]}`))
	}))
	defer server.Close()

	client := api.New(graphql.NewClient(server.URL), nil)
	res, err := client.Albums.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, res.Items)
	assert.Empty(t, res.Items)
	require.Len(t, res.Errors, 1)
}

func TestAlbums_Walk(t *testing.T) {
	client, _ := newAPI(t)

	var pages []int
	seen := 0
	err := client.Albums.Walk(context.Background(), 30, func(p api.PageResult[api.Album]) error {
		pages = append(pages, p.Pagination.CurrentPage)
		seen += len(p.Items)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4}, pages)
	assert.Equal(t, 100, seen)
}

func TestResource_Delete(t *testing.T) {
	client, srv := newAPI(t)
	ctx := context.Background()

	created, err := client.Albums.Create(ctx, api.CreateAlbumInput{Title: "tmp", UserID: document.IntID(2)})
	require.NoError(t, err)

	res, err := client.Albums.Delete(ctx, created.Data.ID)
	require.NoError(t, err)
	assert.True(t, res.Data)

	_, ok := srv.Store().Album(created.Data.ID)
	assert.False(t, ok)
}

func TestResource_CreateRejectsMalformedDocument(t *testing.T) {
	client, _ := newAPI(t)

	_, err := client.Albums.Create(context.Background(), api.CreateAlbumInput{Title: `say "hi"`, UserID: document.StringID("1")})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrValidation))
}

func TestNewFromConfig(t *testing.T) {
	_, endpoint := zerotesthttp.Start(t)

	cfg := &config.Config{BaseURL: endpoint[:len(endpoint)-len(zerotest.Path)], Endpoint: zerotest.Path}
	client, err := api.NewFromConfig(cfg, nil)
	require.NoError(t, err)

	res, err := client.Users.Get(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, "Leanne Graham", res.Data.Name)
}
