package graphql

import (
	"fmt"

	"github.com/dgraph-io/gqlparser/v2/ast"
	"github.com/dgraph-io/gqlparser/v2/parser"

	"github.com/saturnines/zero-e2e/pkg/errors"
)

// Parse checks that doc is syntactically valid GraphQL. It does not
// validate against a schema.
func Parse(doc string) (*ast.QueryDocument, error) {
	parsed, gqlErr := parser.ParseQuery(&ast.Source{Input: doc})
	if gqlErr != nil {
		return nil, errors.WrapError(gqlErr, errors.ErrValidation, "parse document")
	}
	if len(parsed.Operations) == 0 {
		return nil, errors.WrapError(fmt.Errorf("no operation defined"), errors.ErrValidation, "parse document")
	}
	return parsed, nil
}

// RootFields returns the names of the top level fields of the first
// operation in doc.
func RootFields(doc *ast.QueryDocument) []string {
	if doc == nil || len(doc.Operations) == 0 {
		return nil
	}
	var names []string
	for _, sel := range doc.Operations[0].SelectionSet {
		if f, ok := sel.(*ast.Field); ok {
			names = append(names, f.Name)
		}
	}
	return names
}
