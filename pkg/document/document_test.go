package document

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/dgraph-io/gqlparser/v2/ast"
	"github.com/dgraph-io/gqlparser/v2/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

var albums = Resource{
	Singular:  "album",
	Plural:    "albums",
	TypeName:  "Album",
	Selection: append(Fields("id", "title"), Field("user", Field("name"))),
}

var users = Resource{
	Singular:  "user",
	Plural:    "users",
	TypeName:  "User",
	Selection: Fields("id", "name", "username", "email", "phone", "website"),
}

type albumInput struct {
	Title  string `graphql:"title"`
	UserID any    `graphql:"userId"`
}

type userInput struct {
	Name     string `graphql:"name"`
	Username string `graphql:"username"`
	Email    string `graphql:"email"`
	Phone    string `graphql:"phone,omitempty"`
	Website  string `graphql:"website,omitempty"`
	internal string
	Ignored  string
}

func mustParse(t *testing.T, doc string) *ast.QueryDocument {
	t.Helper()
	parsed, gqlErr := parser.ParseQuery(&ast.Source{Input: doc})
	require.Nil(t, gqlErr, "document should parse:\n%s", doc)
	require.Len(t, parsed.Operations, 1)
	return parsed
}

func TestCreateAlbum_QuotesTextualUserID(t *testing.T) {
	in, err := InputOf(albumInput{Title: "A", UserID: "1"})
	require.NoError(t, err)

	op := albums.Create(in)
	assert.Equal(t, "createAlbum", op.Name)
	assert.Equal(t, Mutation, op.Kind)
	assert.Contains(t, op.Document, `title: "A"`)
	assert.Contains(t, op.Document, `userId: "1"`)
	mustParse(t, op.Document)
}

func TestCreateAlbum_NumericUserIDIsBare(t *testing.T) {
	in, err := InputOf(albumInput{Title: "A", UserID: 1})
	require.NoError(t, err)

	op := albums.Create(in)
	assert.Contains(t, op.Document, "userId: 1\n")
	assert.NotContains(t, op.Document, `userId: "1"`)
	mustParse(t, op.Document)
}

func TestCreateAlbum_IDKeepsRepresentation(t *testing.T) {
	for _, tc := range []struct {
		name string
		id   ID
		want string
	}{
		{"string id", StringID("7"), `userId: "7"`},
		{"numeric id", IntID(7), "userId: 7\n"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			in, err := InputOf(albumInput{Title: "A", UserID: tc.id})
			require.NoError(t, err)
			assert.Contains(t, albums.Create(in).Document, tc.want)
		})
	}
}

func TestCreateUser_OmitsAbsentOptionalFields(t *testing.T) {
	in, err := InputOf(userInput{Name: "New User Test", Username: "newusertest", Email: "newuser@test.com"})
	require.NoError(t, err)

	op := users.Create(in)
	assert.Contains(t, op.Document, `name: "New User Test"`)
	assert.Contains(t, op.Document, `username: "newusertest"`)
	assert.Contains(t, op.Document, `email: "newuser@test.com"`)

	// The selection set still asks for phone and website, the input must not.
	input := op.Document[:strings.Index(op.Document, "})")]
	assert.NotContains(t, input, "phone")
	assert.NotContains(t, input, "website")
	assert.NotContains(t, op.Document, "null")
	mustParse(t, op.Document)
}

func TestCreateUser_IncludesPresentOptionalFields(t *testing.T) {
	in, err := InputOf(&userInput{Name: "n", Username: "u", Email: "e", Phone: "555", Website: "w.example"})
	require.NoError(t, err)
	require.Len(t, in, 5)

	op := users.Create(in)
	assert.Contains(t, op.Document, `phone: "555"`)
	assert.Contains(t, op.Document, `website: "w.example"`)
}

func TestFetchByID(t *testing.T) {
	tests := []struct {
		name string
		id   any
		want string
	}{
		{"textual id", "5", `album(id: "5")`},
		{"numeric id", 5, `album(id: 5)`},
		{"typed numeric id", IntID(5), `album(id: 5)`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			op := albums.FetchByID(tt.id)
			assert.Equal(t, "album", op.Name)
			assert.Contains(t, op.Document, tt.want)

			doc := mustParse(t, op.Document)
			root := doc.Operations[0].SelectionSet[0].(*ast.Field)
			assert.Equal(t, "album", root.Name)
			assert.NotNil(t, root.SelectionSet)
		})
	}
}

func TestList(t *testing.T) {
	op := albums.List()
	assert.Equal(t, "albums", op.Name)
	assert.Equal(t, Query, op.Kind)

	doc := mustParse(t, op.Document)
	root := doc.Operations[0].SelectionSet[0].(*ast.Field)
	assert.Equal(t, "albums", root.Name)
	assert.Empty(t, root.Arguments)
	data := root.SelectionSet[0].(*ast.Field)
	assert.Equal(t, "data", data.Name)
}

func TestListPage_SendsRawValues(t *testing.T) {
	for _, tc := range []struct{ page, limit int }{{1, 5}, {0, 10}, {-3, 10}, {999, 0}} {
		op := albums.ListPage(tc.page, tc.limit)
		doc := mustParse(t, op.Document)

		root := doc.Operations[0].SelectionSet[0].(*ast.Field)
		paginate := root.Arguments.ForName("options").Value.Children.ForName("paginate")
		require.NotNil(t, paginate)
		assert.Equal(t, itoa(tc.page), paginate.Children.ForName("page").Raw)
		assert.Equal(t, itoa(tc.limit), paginate.Children.ForName("limit").Raw)
		assert.Contains(t, op.Document, "totalCount")
	}
}

func TestDelete_AlwaysQuotesID(t *testing.T) {
	for _, id := range []any{"12", 12, IntID(12)} {
		op := users.Delete(id)
		assert.Equal(t, "deleteUser", op.Name)
		assert.Contains(t, op.Document, `deleteUser(id: "12")`)
		mustParse(t, op.Document)
	}
}

func TestCreate_EmbeddedQuoteIsNotEscaped(t *testing.T) {
	in, err := InputOf(albumInput{Title: `Say "hi"`, UserID: "1"})
	require.NoError(t, err)

	op := albums.Create(in)
	assert.Contains(t, op.Document, `title: "Say "hi""`)
	_, gqlErr := parser.ParseQuery(&ast.Source{Input: op.Document})
	assert.NotNil(t, gqlErr)
}

func TestInputOf_Errors(t *testing.T) {
	_, err := InputOf(42)
	assert.Error(t, err)

	var nilInput *userInput
	_, err = InputOf(nilInput)
	assert.Error(t, err)
}

func TestLiteral(t *testing.T) {
	s := "ptr"
	var nilPtr *string
	tests := []struct {
		in   any
		want string
	}{
		{"x", `"x"`},
		{7, "7"},
		{int64(-2), "-2"},
		{1.5, "1.5"},
		{true, "true"},
		{nil, "null"},
		{&s, `"ptr"`},
		{nilPtr, "null"},
		{Input{{"page", 1}, {"limit", 5}}, "{ page: 1, limit: 5 }"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Literal(tt.in))
	}
}

func TestID_JSON(t *testing.T) {
	var ids []ID
	require.NoError(t, json.Unmarshal([]byte(`["3", 4, null]`), &ids))
	require.Len(t, ids, 3)

	assert.False(t, ids[0].IsNumeric())
	assert.Equal(t, `"3"`, ids[0].Literal())
	assert.True(t, ids[1].IsNumeric())
	assert.Equal(t, "4", ids[1].Literal())
	assert.True(t, ids[2].IsZero())

	out, err := json.Marshal(ids[:2])
	require.NoError(t, err)
	assert.JSONEq(t, `["3", 4]`, string(out))

	var bad ID
	assert.Error(t, json.Unmarshal([]byte(`{}`), &bad))
}

func TestID_YAML(t *testing.T) {
	var v struct {
		A ID `yaml:"a"`
		B ID `yaml:"b"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("a: \"3\"\nb: 4\n"), &v))
	assert.Equal(t, StringID("3"), v.A)
	assert.Equal(t, IntID(4), v.B)
}

func TestParseID(t *testing.T) {
	assert.Equal(t, IntID(9), ParseID("9", true))
	assert.Equal(t, StringID("9"), ParseID("9", false))
	assert.Equal(t, StringID("abc"), ParseID("abc", true))
}

func itoa(n int) string {
	b, _ := json.Marshal(n)
	return string(b)
}
