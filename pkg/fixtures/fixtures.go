// Package fixtures loads seed records for user and album creation from
// JSON or YAML arrays.
package fixtures

import (
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/saturnines/zero-e2e/pkg/api"
	"github.com/saturnines/zero-e2e/pkg/document"
	"github.com/saturnines/zero-e2e/pkg/errors"
)

//go:embed data/*.json
var builtin embed.FS

// Set is a loaded pair of seed arrays.
type Set struct {
	Users  []api.CreateUserInput
	Albums []api.CreateAlbumInput
}

// albumRecord accepts both "userId" and the older "userid" key.
type albumRecord struct {
	Title        string       `json:"title" yaml:"title"`
	UserID       *document.ID `json:"userId" yaml:"userId"`
	LegacyUserID *document.ID `json:"userid" yaml:"userid"`
}

func (r albumRecord) input() api.CreateAlbumInput {
	in := api.CreateAlbumInput{Title: r.Title}
	switch {
	case r.UserID != nil:
		in.UserID = *r.UserID
	case r.LegacyUserID != nil:
		in.UserID = *r.LegacyUserID
	}
	return in
}

// LoadUsers reads a users array from path.
func LoadUsers(path string) ([]api.CreateUserInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapError(err, errors.ErrFixture, "read users fixture")
	}
	return decodeUsers(path, data)
}

// LoadAlbums reads an albums array from path.
func LoadAlbums(path string) ([]api.CreateAlbumInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapError(err, errors.ErrFixture, "read albums fixture")
	}
	return decodeAlbums(path, data)
}

// Load reads both arrays. An empty path falls back to the built-in set for
// that array.
func Load(usersPath, albumsPath string) (*Set, error) {
	def, err := Default()
	if err != nil {
		return nil, err
	}

	set := &Set{Users: def.Users, Albums: def.Albums}
	if usersPath != "" {
		if set.Users, err = LoadUsers(usersPath); err != nil {
			return nil, err
		}
	}
	if albumsPath != "" {
		if set.Albums, err = LoadAlbums(albumsPath); err != nil {
			return nil, err
		}
	}
	return set, nil
}

// Default returns the built-in seed set.
func Default() (*Set, error) {
	users, err := builtin.ReadFile("data/arrayUsers.json")
	if err != nil {
		return nil, errors.WrapError(err, errors.ErrFixture, "read built-in users")
	}
	albums, err := builtin.ReadFile("data/arrayAlbums.json")
	if err != nil {
		return nil, errors.WrapError(err, errors.ErrFixture, "read built-in albums")
	}

	set := &Set{}
	if set.Users, err = decodeUsers("arrayUsers.json", users); err != nil {
		return nil, err
	}
	if set.Albums, err = decodeAlbums("arrayAlbums.json", albums); err != nil {
		return nil, err
	}
	return set, nil
}

func decodeUsers(name string, data []byte) ([]api.CreateUserInput, error) {
	var users []api.CreateUserInput
	if err := unmarshal(name, data, &users); err != nil {
		return nil, errors.WrapError(err, errors.ErrFixture, fmt.Sprintf("decode users from %s", name))
	}
	return users, nil
}

func decodeAlbums(name string, data []byte) ([]api.CreateAlbumInput, error) {
	var records []albumRecord
	if err := unmarshal(name, data, &records); err != nil {
		return nil, errors.WrapError(err, errors.ErrFixture, fmt.Sprintf("decode albums from %s", name))
	}
	albums := make([]api.CreateAlbumInput, len(records))
	for i, r := range records {
		albums[i] = r.input()
	}
	return albums, nil
}

func unmarshal(name string, data []byte, v any) error {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, v)
	case ".json", "":
		return json.Unmarshal(data, v)
	default:
		return fmt.Errorf("unsupported fixture format %q", filepath.Ext(name))
	}
}
