// Package document builds GraphQL query and mutation documents as text for
// resources exposed by a GraphQLZero-style API.
package document

import (
	"fmt"
	"strings"
)

// Kind is the operation type of a document.
type Kind string

const (
	Query    Kind = "query"
	Mutation Kind = "mutation"
)

// Operation is a rendered document together with the root field whose
// payload callers read from data.<Name>.
type Operation struct {
	Kind     Kind
	Name     string
	Document string
}

// Resource describes one entity kind of the API: how it is named and which
// fields are selected for it.
type Resource struct {
	Singular  string // e.g. "album"
	Plural    string // e.g. "albums"
	TypeName  string // e.g. "Album", used in create/delete mutation names
	Selection []Selection
}

// FetchByID renders `query { <singular>(id: <id>) { ... } }`. The id is
// quoted when it is textual and bare when it is numeric.
func (r Resource) FetchByID(id any) Operation {
	w := &writer{}
	w.open(string(Query))
	w.open(fmt.Sprintf("%s(id: %s)", r.Singular, Literal(id)))
	w.selections(r.Selection)
	w.close("")
	w.close("")
	return Operation{Kind: Query, Name: r.Singular, Document: w.String()}
}

// List renders `query { <plural> { data { ... } } }`.
func (r Resource) List() Operation {
	w := &writer{}
	w.open(string(Query))
	w.open(r.Plural)
	w.open("data")
	w.selections(r.Selection)
	w.close("")
	w.close("")
	w.close("")
	return Operation{Kind: Query, Name: r.Plural, Document: w.String()}
}

// ListPage renders the paginated list query. page and limit are sent
// exactly as given.
func (r Resource) ListPage(page, limit int) Operation {
	w := &writer{}
	w.open(string(Query))
	w.open(fmt.Sprintf("%s(options: { paginate: { page: %d, limit: %d } })", r.Plural, page, limit))
	w.open("data")
	w.selections(r.Selection)
	w.close("")
	w.open("meta")
	w.line("totalCount")
	w.close("")
	w.close("")
	w.close("")
	return Operation{Kind: Query, Name: r.Plural, Document: w.String()}
}

// Create renders `mutation { create<Type>(input: { ... }) { ... } }`.
// Only the fields present in in are written.
func (r Resource) Create(in Input) Operation {
	name := "create" + r.TypeName

	w := &writer{}
	w.open(string(Mutation))
	w.open(name + "(input:")
	for _, a := range in {
		w.line(a.Name + ": " + Literal(a.Value))
	}
	w.depth--
	w.open("})")
	w.selections(r.Selection)
	w.close("")
	w.close("")
	return Operation{Kind: Mutation, Name: name, Document: w.String()}
}

// Delete renders `mutation { delete<Type>(id: "<id>") }`. The id is always
// sent as a string.
func (r Resource) Delete(id any) Operation {
	name := "delete" + r.TypeName

	w := &writer{}
	w.open(string(Mutation))
	w.line(fmt.Sprintf("%s(id: %s)", name, quote(idText(id))))
	w.close("")
	return Operation{Kind: Mutation, Name: name, Document: w.String()}
}

func idText(id any) string {
	if v, err := IDOf(id); err == nil {
		return v.String()
	}
	return strings.TrimSpace(fmt.Sprint(id))
}
