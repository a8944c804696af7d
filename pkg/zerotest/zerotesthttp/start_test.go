package zerotesthttp

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saturnines/zero-e2e/pkg/zerotest"
)

func TestStart(t *testing.T) {
	srv, endpoint := Start(t)

	assert.True(t, strings.HasSuffix(endpoint, zerotest.Path))
	assert.Len(t, srv.Store().Users(), 10)

	res, err := http.Post(endpoint, "application/json", strings.NewReader(`{"query":"{ user(id: 1) { id } }"}`))
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
}
