package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ID is an identifier that remembers whether it was supplied as text or as a
// number. Textual IDs are quoted in documents, numeric IDs are not.
type ID struct {
	raw     string
	numeric bool
}

// StringID returns a textual ID.
func StringID(s string) ID {
	return ID{raw: s}
}

// IntID returns a numeric ID.
func IntID(n int64) ID {
	return ID{raw: strconv.FormatInt(n, 10), numeric: true}
}

// ParseID returns a numeric ID when numeric is set and s is an integer,
// and a textual ID otherwise.
func ParseID(s string, numeric bool) ID {
	if numeric {
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return IntID(n)
		}
	}
	return StringID(s)
}

// IDOf converts a string, an integer or an ID into an ID.
func IDOf(v any) (ID, error) {
	switch x := v.(type) {
	case ID:
		return x, nil
	case string:
		return StringID(x), nil
	case int:
		return IntID(int64(x)), nil
	case int32:
		return IntID(int64(x)), nil
	case int64:
		return IntID(x), nil
	case uint:
		return ID{raw: strconv.FormatUint(uint64(x), 10), numeric: true}, nil
	case uint64:
		return ID{raw: strconv.FormatUint(x, 10), numeric: true}, nil
	default:
		return ID{}, fmt.Errorf("unsupported id type %T", v)
	}
}

func (id ID) String() string { return id.raw }

// IsNumeric reports whether the ID was supplied as a number.
func (id ID) IsNumeric() bool { return id.numeric }

// IsZero reports whether the ID is empty.
func (id ID) IsZero() bool { return id.raw == "" }

// Literal renders the ID the way it appears in a document.
func (id ID) Literal() string {
	if id.numeric {
		return id.raw
	}
	return quote(id.raw)
}

// MarshalJSON keeps the representation the ID was created with.
func (id ID) MarshalJSON() ([]byte, error) {
	if id.numeric {
		return []byte(id.raw), nil
	}
	return json.Marshal(id.raw)
}

// UnmarshalJSON accepts both JSON strings and JSON numbers.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ID{}
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = StringID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a string or a number: %w", err)
	}
	*id = ID{raw: n.String(), numeric: true}
	return nil
}

// UnmarshalYAML accepts both YAML strings and YAML integers.
func (id *ID) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: id must be a scalar", node.Line)
	}
	switch node.Tag {
	case "!!null":
		*id = ID{}
	case "!!int":
		*id = ID{raw: node.Value, numeric: true}
	default:
		*id = StringID(node.Value)
	}
	return nil
}
