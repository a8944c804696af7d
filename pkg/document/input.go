package document

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// TagName is the struct tag read by InputOf.
const TagName = "graphql"

// Arg is one named argument or input field.
type Arg struct {
	Name  string
	Value any
}

// Input is an ordered list of input fields.
type Input []Arg

// Literal renders v as a GraphQL value. Strings are quoted as-is; embedded
// quotes are not escaped, so a value containing `"` produces a malformed
// document.
func Literal(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case ID:
		return x.Literal()
	case *ID:
		if x == nil {
			return "null"
		}
		return x.Literal()
	case string:
		return quote(x)
	case bool:
		return strconv.FormatBool(x)
	case int:
		return strconv.Itoa(x)
	case int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", x)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case Input:
		return x.inline()
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return "null"
		}
		return Literal(rv.Elem().Interface())
	}
	return quote(fmt.Sprint(v))
}

func quote(s string) string {
	return `"` + s + `"`
}

func (in Input) inline() string {
	parts := make([]string, 0, len(in))
	for _, a := range in {
		parts = append(parts, a.Name+": "+Literal(a.Value))
	}
	return "{ " + strings.Join(parts, ", ") + " }"
}

// InputOf reflects a struct into an Input using `graphql` tags.
// Fields tagged "-" or without a tag are skipped; fields tagged omitempty
// are dropped when they hold their zero value.
func InputOf(v any) (Input, error) {
	if in, ok := v.(Input); ok {
		return in, nil
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return nil, fmt.Errorf("input is a nil %s", rv.Type())
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, fmt.Errorf("input must be a struct, got %s", rv.Kind())
	}

	rt := rv.Type()
	in := make(Input, 0, rt.NumField())
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}
		tag, ok := sf.Tag.Lookup(TagName)
		if !ok || tag == "-" {
			continue
		}
		name, opts, _ := strings.Cut(tag, ",")
		if name == "" {
			name = sf.Name
		}

		fv := rv.Field(i)
		if opts == "omitempty" && isEmpty(fv) {
			continue
		}
		in = append(in, Arg{Name: name, Value: fv.Interface()})
	}
	return in, nil
}

func isEmpty(v reflect.Value) bool {
	if id, ok := v.Interface().(ID); ok {
		return id.IsZero()
	}
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface:
		return v.IsNil()
	case reflect.String:
		return v.Len() == 0
	default:
		return v.IsZero()
	}
}
