package scenario

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saturnines/zero-e2e/pkg/api"
	"github.com/saturnines/zero-e2e/pkg/fixtures"
	"github.com/saturnines/zero-e2e/pkg/logging"
	"github.com/saturnines/zero-e2e/pkg/transport/graphql"
	"github.com/saturnines/zero-e2e/pkg/zerotest/zerotesthttp"
)

func newEnv(t *testing.T, endpoint string) *Env {
	t.Helper()
	set, err := fixtures.Default()
	require.NoError(t, err)
	client := api.New(graphql.NewClient(endpoint, graphql.WithDocumentCheck(true)), nil)
	return NewEnv(client, set, nil)
}

func TestAll_AgainstStandIn(t *testing.T) {
	srv, endpoint := zerotesthttp.Start(t)
	env := newEnv(t, endpoint)

	outcomes := Run(context.Background(), env, All())

	require.Len(t, outcomes, 15)
	for _, o := range outcomes {
		assert.NoError(t, o.Err, o.Name)
	}
	assert.Equal(t, 0, Failed(outcomes))

	users, albums := env.Session.Tracked()
	assert.Empty(t, users)
	assert.Empty(t, albums)
	assert.Len(t, srv.Store().Users(), 10, "created users are cleaned up")
	assert.Len(t, srv.Store().Albums(""), 100, "created albums are cleaned up")
}

func TestAll_UniqueNames(t *testing.T) {
	seen := map[string]bool{}
	for _, s := range All() {
		assert.False(t, seen[s.Name], "duplicate scenario %s", s.Name)
		seen[s.Name] = true
		assert.NotNil(t, s.Run)
	}
}

func TestSelect(t *testing.T) {
	got, err := Select("paginate-albums", "fetch-user-by-id")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "fetch-user-by-id", got[0].Name, "execution order is kept")
	assert.Equal(t, "paginate-albums", got[1].Name)

	_, err = Select("no-such-scenario")
	assert.Error(t, err)

	all, err := Select()
	require.NoError(t, err)
	assert.Len(t, all, len(All()))
}

func TestRun_ReportsFailuresAndContinues(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"errors":[{"message":"down"}]}`))
	}))
	defer server.Close()

	env := newEnv(t, server.URL)
	scenarios, err := Select("fetch-user-by-id", "fetch-album-by-id")
	require.NoError(t, err)

	outcomes := Run(context.Background(), env, scenarios)
	require.Len(t, outcomes, 2)
	assert.Equal(t, 2, Failed(outcomes))
	assert.Contains(t, outcomes[0].Err.Error(), "expected status 200, got 500")
}

func TestExpectOwner(t *testing.T) {
	env := &Env{Logger: logging.Discard()}

	name := "Leanne Graham"
	assert.NoError(t, expectOwner(env, "a", api.Album{User: &api.AlbumUser{}}, name))
	assert.NoError(t, expectOwner(env, "a", api.Album{User: &api.AlbumUser{Name: &name}}, name))

	other := "Someone Else"
	assert.Error(t, expectOwner(env, "a", api.Album{User: &api.AlbumUser{Name: &other}}, name))
	assert.Error(t, expectOwner(env, "a", api.Album{}, name))
}
