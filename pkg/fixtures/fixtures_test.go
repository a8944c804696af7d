package fixtures

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saturnines/zero-e2e/pkg/api"
	"github.com/saturnines/zero-e2e/pkg/document"
	"github.com/saturnines/zero-e2e/pkg/errors"
)

func TestDefault(t *testing.T) {
	set, err := Default()
	require.NoError(t, err)

	require.Len(t, set.Users, 4)
	assert.Equal(t, "Romeo Santos", set.Users[0].Name)
	assert.Empty(t, set.Users[3].Phone)
	assert.Empty(t, set.Users[3].Website)

	want := []api.CreateAlbumInput{
		{Title: "Formula Vol. 1", UserID: document.StringID("1")},
		{Title: "Golden", UserID: document.IntID(2)},
		{Title: "Bachata Rosa", UserID: document.StringID("3")},
		{Title: "Contra la Corriente", UserID: document.IntID(4)},
	}
	if diff := cmp.Diff(want, set.Albums, cmp.Comparer(func(a, b document.ID) bool {
		return a.String() == b.String() && a.IsNumeric() == b.IsNumeric()
	})); diff != "" {
		t.Errorf("albums mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadYAML(t *testing.T) {
	users, err := LoadUsers(filepath.Join("testdata", "users.yaml"))
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "yaml.dev", users[1].Website)

	albums, err := LoadAlbums(filepath.Join("testdata", "albums.yml"))
	require.NoError(t, err)
	require.Len(t, albums, 3)
	assert.False(t, albums[0].UserID.IsNumeric())
	assert.True(t, albums[1].UserID.IsNumeric())
	assert.Equal(t, "9", albums[2].UserID.String())
	assert.True(t, albums[2].UserID.IsNumeric())
}

func TestLoad(t *testing.T) {
	set, err := Load(filepath.Join("testdata", "users.yaml"), "")
	require.NoError(t, err)
	assert.Len(t, set.Users, 2)
	assert.Len(t, set.Albums, 4, "empty albums path keeps the built-in albums")
}

func TestLoadAlbums_MissingOwnerIsOmittedFromCreate(t *testing.T) {
	albums, err := LoadAlbums(filepath.Join("testdata", "albums_without_owner.json"))
	require.NoError(t, err)
	require.Len(t, albums, 1)
	assert.True(t, albums[0].UserID.IsZero())

	in, err := document.InputOf(albums[0])
	require.NoError(t, err)
	doc := api.AlbumDocument.Create(in).Document

	assert.Contains(t, doc, `title: "Unassigned"`)
	assert.NotContains(t, doc, "userId")
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		load func() error
	}{
		{"missing file", func() error { _, err := LoadUsers(filepath.Join("testdata", "nope.json")); return err }},
		{"bad id type", func() error { _, err := LoadAlbums(filepath.Join("testdata", "bad_albums.json")); return err }},
		{"unsupported extension", func() error { _, err := decodeUsers("users.toml", []byte("x")); return err }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.load()
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrFixture))
		})
	}
}
