package api

import (
	"github.com/saturnines/zero-e2e/pkg/document"
)

// User is the user payload. Fields of an unknown user come back null and
// decode to empty strings.
type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Website  string `json:"website"`
}

// Album is the album payload. User.Name is nil when the owner could not be
// resolved, which the public API does for users created in the same run.
type Album struct {
	ID    string     `json:"id"`
	Title string     `json:"title"`
	User  *AlbumUser `json:"user"`
}

// AlbumUser is the owner selection of an album.
type AlbumUser struct {
	Name *string `json:"name"`
}

// OwnerName returns the owner name and whether it resolved.
func (a Album) OwnerName() (string, bool) {
	if a.User == nil || a.User.Name == nil {
		return "", false
	}
	return *a.User.Name, true
}

// CreateUserInput is the input of createUser. Phone and Website are left
// out of the document when empty.
type CreateUserInput struct {
	Name     string `graphql:"name" json:"name" yaml:"name"`
	Username string `graphql:"username" json:"username" yaml:"username"`
	Email    string `graphql:"email" json:"email" yaml:"email"`
	Phone    string `graphql:"phone,omitempty" json:"phone,omitempty" yaml:"phone,omitempty"`
	Website  string `graphql:"website,omitempty" json:"website,omitempty" yaml:"website,omitempty"`
}

// CreateAlbumInput is the input of createAlbum. UserID is quoted when it
// was given as text and bare when it was given as a number.
type CreateAlbumInput struct {
	Title  string      `graphql:"title" json:"title" yaml:"title"`
	UserID document.ID `graphql:"userId,omitempty" json:"userId" yaml:"userId"`
}

// UserDocument describes users: `user`, `users`, `createUser`, `deleteUser`.
var UserDocument = document.Resource{
	Singular:  "user",
	Plural:    "users",
	TypeName:  "User",
	Selection: document.Fields("id", "name", "username", "email", "phone", "website"),
}

// AlbumDocument describes albums with their owner's name.
var AlbumDocument = document.Resource{
	Singular:  "album",
	Plural:    "albums",
	TypeName:  "Album",
	Selection: append(document.Fields("id", "title"), document.Field("user", document.Field("name"))),
}
